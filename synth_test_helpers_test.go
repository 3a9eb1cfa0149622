package main

import (
	"fmt"
	"math/rand/v2"
	"sync"
	"testing"
)

// newTestSynthEngine builds an engine with a fixed noise seed. mutate may
// adjust the default config first.
func newTestSynthEngine(t testing.TB, mutate func(*SynthConfig)) *SynthEngine {
	t.Helper()
	cfg := DefaultSynthConfig()
	if mutate != nil {
		mutate(&cfg)
	}
	e, err := newSynthEngine(cfg, rand.New(rand.NewPCG(1, 2)))
	if err != nil {
		t.Fatalf("newSynthEngine: %v", err)
	}
	return e
}

func renderTestFrames(e *SynthEngine, n int) *BufferSink {
	sink := NewBufferSink(n)
	e.RenderFrames(n, sink)
	return sink
}

// applyPending drains queued events without advancing time.
func applyPending(e *SynthEngine) {
	e.RenderFrames(0, NewBufferSink(0))
}

// recordingTarget logs event calls as "on N V", "off N" and "panic".
type recordingTarget struct {
	mu    sync.Mutex
	calls []string
}

func (r *recordingTarget) NoteOn(note, velocity int) { r.record(fmt.Sprintf("on %d %d", note, velocity)) }
func (r *recordingTarget) NoteOff(note int)          { r.record(fmt.Sprintf("off %d", note)) }
func (r *recordingTarget) AllNotesOff()              { r.record("panic") }

func (r *recordingTarget) Snapshot() []VoiceStatus {
	return []VoiceStatus{{Slot: 0, Note: 60, Amplitude: 0.5, Stage: STAGE_SUSTAIN}}
}

func (r *recordingTarget) Stats() EngineStats {
	return EngineStats{FramesRendered: 1024, ActiveVoices: 1}
}

func (r *recordingTarget) record(s string) {
	r.mu.Lock()
	r.calls = append(r.calls, s)
	r.mu.Unlock()
}

func (r *recordingTarget) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

func equalCalls(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}
