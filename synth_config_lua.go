// synth_config_lua.go - Engine configuration from a Lua file

/*
 ██▓ ███▄    █ ▄▄▄█████▓ █    ██  ██▓▄▄▄█████▓ ██▓ ▒█████   ███▄    █    ▓█████  ███▄    █   ▄████  ██▓ ███▄    █ ▓█████
▓██▒ ██ ▀█   █ ▓  ██▒ ▓▒ ██  ▓██▒▓██▒▓  ██▒ ▓▒▓██▒▒██▒  ██▒ ██ ▀█   █    ▓█   ▀  ██ ▀█   █  ██▒ ▀█▒▓██▒ ██ ▀█   █ ▓█   ▀
▒██▒▓██  ▀█ ██▒▒ ▓██░ ▒░▓██  ▒██░▒██▒▒ ▓██░ ▒░▒██▒▒██░  ██▒▓██  ▀█ ██▒   ▒███   ▓██  ▀█ ██▒▒██░▄▄▄░▒██▒▓██  ▀█ ██▒▒███
░██░▓██▒  ▐▌██▒░ ▓██▓ ░ ▓▓█  ░██░░██░░ ▓██▓ ░ ░██░▒██   ██░▓██▒  ▐▌██▒   ▒▓█  ▄ ▓██▒  ▐▌██▒░▓█  ██▓░██░▓██▒  ▐▌██▒▒▓█  ▄
░██░▒██░   ▓██░  ▒██▒ ░ ▒▒█████▓ ░██░  ▒██▒ ░ ░██░░ ████▓▒░▒██░   ▓██░   ░▒████▒▒██░   ▓██░░▒▓███▀▒░██░▒██░   ▓██░░▒████▒
░▓  ░ ▒░   ▒ ▒   ▒ ░░   ░▒▓▒ ▒ ▒ ░▓    ▒ ░░   ░▓  ░ ▒░▒░▒░ ░ ▒░   ▒ ▒    ░░ ▒░ ░░ ▒░   ▒ ▒  ░▒   ▒ ░▓  ░ ▒░   ▒ ▒ ░░ ▒░ ░
 ▒ ░░ ░░   ░ ▒░    ░    ░░▒░ ░ ░  ▒ ░    ░     ▒ ░  ░ ▒ ▒░ ░ ░░   ░ ▒░    ░ ░  ░░ ░░   ░ ▒░  ░   ░  ▒ ░░ ░░   ░ ▒░ ░ ░  ░
 ▒ ░   ░   ░ ░   ░       ░░░ ░ ░  ▒ ░  ░       ▒ ░░ ░ ░ ▒     ░   ░ ░       ░      ░   ░ ░ ░ ░   ░  ▒ ░   ░   ░ ░    ░
 ░           ░             ░      ░            ░      ░ ░           ░       ░  ░         ░       ░  ░           ░    ░  ░

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/BreathEngine
License: GPLv3 or later
*/

package main

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"
)

// LoadSynthConfigLua runs a Lua config file and overrides fields of base
// with any of these globals it defines:
//
//	sample_rate, polyphony, attack_time, release_time, noise_release_time,
//	breath, chiff, steal_policy ("first"|"oldest"|"quietest"),
//	legato ("retune"|"retrigger"), note_off ("first"|"held"), fast_sine,
//	event_queue
func LoadSynthConfigLua(path string, base SynthConfig) (SynthConfig, error) {
	return loadSynthConfigLua(base, func(L *lua.LState) error { return L.DoFile(path) })
}

func LoadSynthConfigLuaString(src string, base SynthConfig) (SynthConfig, error) {
	return loadSynthConfigLua(base, func(L *lua.LState) error { return L.DoString(src) })
}

func loadSynthConfigLua(cfg SynthConfig, run func(*lua.LState) error) (SynthConfig, error) {
	L, err := newSandboxedLua()
	if err != nil {
		return cfg, err
	}
	defer L.Close()

	if err := run(L); err != nil {
		return cfg, fmt.Errorf("config script: %w", err)
	}

	ints := []struct {
		name string
		dst  *int
	}{
		{"sample_rate", &cfg.SampleRate},
		{"polyphony", &cfg.Polyphony},
		{"event_queue", &cfg.EventQueueDepth},
	}
	for _, f := range ints {
		v, ok, err := luaNumberGlobal(L, f.name)
		if err != nil {
			return cfg, err
		}
		if ok {
			*f.dst = int(v)
		}
	}

	floats := []struct {
		name string
		dst  *float64
	}{
		{"attack_time", &cfg.AttackTime},
		{"release_time", &cfg.ReleaseTime},
		{"noise_release_time", &cfg.NoiseReleaseTime},
	}
	for _, f := range floats {
		v, ok, err := luaNumberGlobal(L, f.name)
		if err != nil {
			return cfg, err
		}
		if ok {
			*f.dst = v
		}
	}

	if v, ok, err := luaNumberGlobal(L, "breath"); err != nil {
		return cfg, err
	} else if ok {
		cfg.BreathAmount = float32(v)
	}
	if v, ok, err := luaNumberGlobal(L, "chiff"); err != nil {
		return cfg, err
	} else if ok {
		cfg.ChiffLevel = float32(v)
	}

	if s, ok, err := luaStringGlobal(L, "steal_policy"); err != nil {
		return cfg, err
	} else if ok {
		if cfg.StealPolicy, err = ParseStealPolicy(s); err != nil {
			return cfg, err
		}
	}
	if s, ok, err := luaStringGlobal(L, "legato"); err != nil {
		return cfg, err
	} else if ok {
		if cfg.LegatoPolicy, err = ParseLegatoPolicy(s); err != nil {
			return cfg, err
		}
	}
	if s, ok, err := luaStringGlobal(L, "note_off"); err != nil {
		return cfg, err
	} else if ok {
		if cfg.NoteOffPolicy, err = ParseNoteOffPolicy(s); err != nil {
			return cfg, err
		}
	}

	switch v := L.GetGlobal("fast_sine").(type) {
	case *lua.LNilType:
	case lua.LBool:
		cfg.FastSine = bool(v)
	default:
		return cfg, fmt.Errorf("fast_sine: expected boolean, got %s", v.Type())
	}

	return cfg, cfg.Validate()
}

// newSandboxedLua opens only the base, table, string and math libraries.
func newSandboxedLua() (*lua.LState, error) {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	for _, lib := range []struct {
		name string
		open lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	} {
		if err := L.CallByParam(lua.P{
			Fn:      L.NewFunction(lib.open),
			NRet:    0,
			Protect: true,
		}, lua.LString(lib.name)); err != nil {
			L.Close()
			return nil, fmt.Errorf("open lua %s library: %w", lib.name, err)
		}
	}
	return L, nil
}

func luaNumberGlobal(L *lua.LState, name string) (float64, bool, error) {
	switch v := L.GetGlobal(name).(type) {
	case *lua.LNilType:
		return 0, false, nil
	case lua.LNumber:
		return float64(v), true, nil
	default:
		return 0, false, fmt.Errorf("%s: expected number, got %s", name, v.Type())
	}
}

func luaStringGlobal(L *lua.LState, name string) (string, bool, error) {
	switch v := L.GetGlobal(name).(type) {
	case *lua.LNilType:
		return "", false, nil
	case lua.LString:
		return string(v), true, nil
	default:
		return "", false, fmt.Errorf("%s: expected string, got %s", name, v.Type())
	}
}
