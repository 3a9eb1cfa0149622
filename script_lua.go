// script_lua.go - Lua performance scripts driving the event API

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
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"
)

// RunScript executes a performance script against target until it returns
// or ctx is cancelled. Scripts see:
//
//	note_on(note [, velocity])   note_off(note)   all_notes_off()
//	sleep(ms)                    frequency(note) -> Hz
func RunScript(ctx context.Context, target NoteTarget, name, src string) error {
	return runScript(ctx, target, func(L *lua.LState) error {
		fn, err := L.LoadString(src)
		if err != nil {
			return err
		}
		L.Push(fn)
		return L.PCall(0, lua.MultRet, nil)
	}, name)
}

func RunScriptFile(ctx context.Context, target NoteTarget, path string) error {
	return runScript(ctx, target, func(L *lua.LState) error { return L.DoFile(path) }, path)
}

func runScript(ctx context.Context, target NoteTarget, run func(*lua.LState) error, name string) error {
	L, err := newSandboxedLua()
	if err != nil {
		return err
	}
	defer L.Close()
	L.SetContext(ctx)
	registerScriptAPI(L, ctx, target)

	if err := run(L); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("script %s: %w", name, err)
	}
	return nil
}

func registerScriptAPI(L *lua.LState, ctx context.Context, target NoteTarget) {
	L.SetGlobal("note_on", L.NewFunction(func(L *lua.LState) int {
		note := L.CheckInt(1)
		vel := L.OptInt(2, DEFAULT_VELOCITY)
		target.NoteOn(note, vel)
		return 0
	}))
	L.SetGlobal("note_off", L.NewFunction(func(L *lua.LState) int {
		target.NoteOff(L.CheckInt(1))
		return 0
	}))
	L.SetGlobal("all_notes_off", L.NewFunction(func(L *lua.LState) int {
		target.AllNotesOff()
		return 0
	}))
	L.SetGlobal("sleep", L.NewFunction(func(L *lua.LState) int {
		ms := L.CheckNumber(1)
		if ms <= 0 {
			return 0
		}
		t := time.NewTimer(time.Duration(float64(ms) * float64(time.Millisecond)))
		defer t.Stop()
		select {
		case <-ctx.Done():
			L.RaiseError("%v", ctx.Err())
		case <-t.C:
		}
		return 0
	}))
	L.SetGlobal("frequency", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LNumber(NoteFrequency(L.CheckInt(1))))
		return 1
	}))
}

// ScriptHost runs at most one script at a time on its own goroutine.
// Starting a new run cancels the previous one and silences the target.
type ScriptHost struct {
	target NoteTarget

	ctl    sync.Mutex // Serializes Start and Stop
	cancel context.CancelFunc

	mu      sync.Mutex // Guards the fields below
	done    chan struct{}
	lastErr error
	runs    int
}

func NewScriptHost(target NoteTarget) *ScriptHost {
	return &ScriptHost{target: target}
}

// Start (re)runs the script at path.
func (h *ScriptHost) Start(path string) {
	h.ctl.Lock()
	defer h.ctl.Unlock()
	h.stopRun()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	h.cancel = cancel
	h.mu.Lock()
	h.done = done
	h.runs++
	h.mu.Unlock()

	go func() {
		defer close(done)
		err := RunScriptFile(ctx, h.target, path)
		if err != nil && !errors.Is(err, context.Canceled) {
			fmt.Fprintf(os.Stderr, "script: %v\n", err)
		}
		h.mu.Lock()
		if h.done == done {
			h.lastErr = err
		}
		h.mu.Unlock()
	}()
}

func (h *ScriptHost) Stop() {
	h.ctl.Lock()
	defer h.ctl.Unlock()
	h.stopRun()
}

func (h *ScriptHost) stopRun() {
	if h.cancel == nil {
		return
	}
	h.cancel()
	h.cancel = nil
	h.mu.Lock()
	done := h.done
	h.mu.Unlock()
	<-done
	h.target.AllNotesOff()
}

// Done is closed when the current run ends. Nil before the first Start.
func (h *ScriptHost) Done() <-chan struct{} {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.done
}

func (h *ScriptHost) Err() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.lastErr
}

func (h *ScriptHost) Runs() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.runs
}
