package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestRunScript_DrivesTarget(t *testing.T) {
	src := `
note_on(60)
note_on(64, 90)
sleep(1)
note_off(60)
if frequency(69) ~= 440 then error("bad frequency") end
all_notes_off()
`
	rec := &recordingTarget{}
	if err := RunScript(context.Background(), rec, "test", src); err != nil {
		t.Fatalf("RunScript: %v", err)
	}
	want := []string{"on 60 100", "on 64 90", "off 60", "panic"}
	if got := rec.Calls(); !equalCalls(got, want) {
		t.Errorf("calls = %v, want %v", got, want)
	}
}

func TestRunScript_Errors(t *testing.T) {
	rec := &recordingTarget{}
	err := RunScript(context.Background(), rec, "broken", `note_on("x")`)
	if err == nil || !strings.Contains(err.Error(), "script broken") {
		t.Errorf("err = %v, want a script error", err)
	}
	if err := RunScript(context.Background(), rec, "sandbox", `io.write("x")`); err == nil {
		t.Error("io library should not be available")
	}
}

func TestRunScript_CancelDuringSleep(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	rec := &recordingTarget{}
	done := make(chan error, 1)
	go func() {
		done <- RunScript(ctx, rec, "long", `note_on(60) sleep(60000) note_off(60)`)
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("err = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("script ignored cancellation")
	}
	if got := rec.Calls(); !equalCalls(got, []string{"on 60 100"}) {
		t.Errorf("calls = %v", got)
	}
}

func TestRunScript_CancelBusyLoop(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	err := RunScript(ctx, &recordingTarget{}, "spin", `while true do end`)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("err = %v, want context.DeadlineExceeded", err)
	}
}

func writeScript(t *testing.T, dir, src string) string {
	t.Helper()
	path := filepath.Join(dir, "perf.lua")
	if err := os.WriteFile(path, []byte(src), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func waitDone(t *testing.T, ch <-chan struct{}) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatal("script run did not finish")
	}
}

func TestScriptHost_RunAndRestart(t *testing.T) {
	path := writeScript(t, t.TempDir(), `note_on(70) sleep(60000)`)
	rec := &recordingTarget{}
	h := NewScriptHost(rec)
	if h.Done() != nil {
		t.Fatal("Done should be nil before the first run")
	}

	h.Start(path)
	first := h.Done()
	deadline := time.Now().Add(time.Second)
	for len(rec.Calls()) == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}

	h.Start(path)
	waitDone(t, first)
	h.Stop()
	waitDone(t, h.Done())

	if h.Runs() != 2 {
		t.Errorf("Runs = %d, want 2", h.Runs())
	}
	calls := rec.Calls()
	if len(calls) < 3 || calls[0] != "on 70 100" || calls[1] != "panic" || calls[len(calls)-1] != "panic" {
		t.Errorf("calls = %v, want on/panic around each run", calls)
	}
	if h.Err() != nil && !errors.Is(h.Err(), context.Canceled) {
		t.Errorf("Err = %v", h.Err())
	}
}

func TestScriptHost_ReportsError(t *testing.T) {
	path := writeScript(t, t.TempDir(), `error("boom")`)
	h := NewScriptHost(&recordingTarget{})
	h.Start(path)
	waitDone(t, h.Done())
	if h.Err() == nil || !strings.Contains(h.Err().Error(), "boom") {
		t.Errorf("Err = %v, want boom", h.Err())
	}
	h.Stop()
}
