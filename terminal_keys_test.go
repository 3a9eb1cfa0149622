package main

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func newTestTerminalKeyboard(hold time.Duration) (*TerminalKeyboard, *recordingTarget, *bytes.Buffer) {
	rec := &recordingTarget{}
	out := &bytes.Buffer{}
	k := NewTerminalKeyboard(rec, out)
	k.hold = hold
	return k, rec, out
}

func waitCalls(t *testing.T, rec *recordingTarget, n int) []string {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for len(rec.Calls()) < n && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	return rec.Calls()
}

func TestTerminalKeyboard_PressReleases(t *testing.T) {
	k, rec, _ := newTestTerminalKeyboard(20 * time.Millisecond)
	k.handleKey('a')
	if k.Held() != 1 {
		t.Fatalf("Held = %d, want 1", k.Held())
	}

	calls := waitCalls(t, rec, 2)
	if !equalCalls(calls, []string{"on 60 100", "off 60"}) {
		t.Errorf("calls = %v", calls)
	}
	if k.Held() != 0 {
		t.Errorf("Held = %d after release", k.Held())
	}
}

func TestTerminalKeyboard_RepeatExtendsHold(t *testing.T) {
	k, rec, _ := newTestTerminalKeyboard(200 * time.Millisecond)
	k.handleKey('s')
	for i := 0; i < 5; i++ {
		time.Sleep(20 * time.Millisecond)
		k.handleKey('s')
	}
	if got := rec.Calls(); !equalCalls(got, []string{"on 62 100"}) {
		t.Fatalf("auto-repeat retriggered: %v", got)
	}
	calls := waitCalls(t, rec, 2)
	if !equalCalls(calls, []string{"on 62 100", "off 62"}) {
		t.Errorf("calls = %v", calls)
	}
}

func TestTerminalKeyboard_OctaveAndPanic(t *testing.T) {
	k, rec, out := newTestTerminalKeyboard(time.Hour)
	k.handleKey('z')
	k.handleKey('a')
	k.handleKey('x')
	k.handleKey('x')
	k.handleKey('a')
	k.handleKey(' ')

	want := []string{"on 48 100", "on 72 100", "panic"}
	if got := rec.Calls(); !equalCalls(got, want) {
		t.Errorf("calls = %v, want %v", got, want)
	}
	if k.Held() != 0 {
		t.Errorf("Held = %d after panic", k.Held())
	}
	if !strings.Contains(out.String(), "base note 48") {
		t.Errorf("octave change not reported: %q", out.String())
	}
}

func TestTerminalKeyboard_Quit(t *testing.T) {
	for _, key := range []byte{'q', keyCtrlC, keyEsc} {
		k, _, _ := newTestTerminalKeyboard(time.Hour)
		k.handleKey(key)
		k.handleKey(key)
		select {
		case <-k.Quit():
		default:
			t.Errorf("key %#x did not quit", key)
		}
	}
}

func TestTerminalKeyboard_IgnoresUnmappedKeys(t *testing.T) {
	k, rec, _ := newTestTerminalKeyboard(time.Hour)
	for _, b := range []byte("bnm1") {
		k.handleKey(b)
	}
	if len(rec.Calls()) != 0 || k.Held() != 0 {
		t.Errorf("unmapped keys produced %v", rec.Calls())
	}
}
