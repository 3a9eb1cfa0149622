package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatchScript_ReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := writeScript(t, dir, `note_on(60) sleep(60000)`)
	rec := &recordingTarget{}
	host := NewScriptHost(rec)

	sw, err := WatchScript(host, path)
	if err != nil {
		t.Fatalf("WatchScript: %v", err)
	}
	defer sw.Close()

	if host.Runs() != 1 {
		t.Fatalf("Runs = %d after WatchScript, want 1", host.Runs())
	}

	// Unrelated files in the directory are ignored
	if err := os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	time.Sleep(3 * SCRIPT_RELOAD_DEBOUNCE)
	if host.Runs() != 1 {
		t.Fatalf("Runs = %d after touching another file, want 1", host.Runs())
	}

	if err := os.WriteFile(path, []byte(`note_on(67) sleep(60000)`), 0644); err != nil {
		t.Fatal(err)
	}
	deadline := time.Now().Add(3 * time.Second)
	for host.Runs() < 2 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if host.Runs() != 2 {
		t.Fatalf("Runs = %d after rewriting the script, want 2", host.Runs())
	}

	deadline = time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		calls := rec.Calls()
		if len(calls) > 0 && calls[len(calls)-1] == "on 67 100" {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}
	calls := rec.Calls()
	if len(calls) == 0 || calls[len(calls)-1] != "on 67 100" {
		t.Errorf("calls = %v, want the rewritten script running", calls)
	}

	if err := sw.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
	if err := sw.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
}

func TestWatchScript_MissingDirectory(t *testing.T) {
	host := NewScriptHost(&recordingTarget{})
	if _, err := WatchScript(host, filepath.Join(t.TempDir(), "nope", "perf.lua")); err == nil {
		t.Error("expected error watching a missing directory")
	}
}
