package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadSynthConfigLuaString_Overrides(t *testing.T) {
	src := `
polyphony = 12
attack_time = 0.02
release_time = 0.03
noise_release_time = 0.004 * 2
breath = 0.01
chiff = 0.5
steal_policy = "quietest"
legato = "retrigger"
note_off = "held"
fast_sine = true
event_queue = 256
`
	cfg, err := LoadSynthConfigLuaString(src, DefaultSynthConfig())
	if err != nil {
		t.Fatalf("LoadSynthConfigLuaString: %v", err)
	}
	if cfg.Polyphony != 12 || cfg.AttackTime != 0.02 || cfg.ReleaseTime != 0.03 || cfg.NoiseReleaseTime != 0.008 {
		t.Errorf("timing/voices not applied: %+v", cfg)
	}
	if cfg.BreathAmount != 0.01 || cfg.ChiffLevel != 0.5 {
		t.Errorf("levels not applied: breath %v chiff %v", cfg.BreathAmount, cfg.ChiffLevel)
	}
	if cfg.StealPolicy != STEAL_QUIETEST || cfg.LegatoPolicy != LEGATO_RETRIGGER || cfg.NoteOffPolicy != NOTE_OFF_HELD_FIRST || !cfg.FastSine {
		t.Errorf("policies not applied: %+v", cfg)
	}
	if cfg.EventQueueDepth != 256 || cfg.SampleRate != SAMPLE_RATE {
		t.Errorf("queue %d rate %d", cfg.EventQueueDepth, cfg.SampleRate)
	}
}

func TestLoadSynthConfigLuaString_KeepsUnsetFields(t *testing.T) {
	base := DefaultSynthConfig()
	base.Polyphony = 3
	cfg, err := LoadSynthConfigLuaString(`chiff = 0.9`, base)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Polyphony != 3 || cfg.ChiffLevel != 0.9 {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestLoadSynthConfigLuaString_Errors(t *testing.T) {
	tests := []struct {
		src     string
		wantErr string
	}{
		{`polyphony = "many"`, "polyphony: expected number"},
		{`steal_policy = 3`, "steal_policy: expected string"},
		{`legato = "glide"`, "legato policy"},
		{`note_off = "last"`, "note-off policy"},
		{`fast_sine = 1`, "fast_sine: expected boolean"},
		{`polyphony = 0`, "polyphony must be at least 1"},
		{`attack_time = -1`, "envelope time"},
		{`this is not lua`, "config script"},
		{`os.exit(1)`, "config script"},
	}
	for _, tc := range tests {
		_, err := LoadSynthConfigLuaString(tc.src, DefaultSynthConfig())
		if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
			t.Errorf("%q: err = %v, want %q", tc.src, err, tc.wantErr)
		}
	}
}

func TestLoadSynthConfigLua_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "synth.lua")
	if err := os.WriteFile(path, []byte("polyphony = 4\nsteal_policy = \"oldest\"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadSynthConfigLua(path, DefaultSynthConfig())
	if err != nil {
		t.Fatalf("LoadSynthConfigLua: %v", err)
	}
	if cfg.Polyphony != 4 || cfg.StealPolicy != STEAL_OLDEST {
		t.Errorf("cfg = %+v", cfg)
	}

	if _, err := LoadSynthConfigLua(filepath.Join(t.TempDir(), "missing.lua"), DefaultSynthConfig()); err == nil {
		t.Error("missing file should fail")
	}
}
