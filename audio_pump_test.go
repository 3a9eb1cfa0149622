package main

import (
	"testing"
	"time"
)

func TestRenderPump_KeepsRingFull(t *testing.T) {
	e := newTestSynthEngine(t, nil)
	ring := NewFrameRing(256)
	pump := NewRenderPump(e, ring, time.Millisecond)
	pump.Start()
	pump.Start() // Second start is a no-op
	defer pump.Stop()

	deadline := time.Now().Add(time.Second)
	for ring.FramesAvailable() != 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if ring.FramesAvailable() != 0 {
		t.Fatalf("ring not filled, %d frames free", ring.FramesAvailable())
	}

	for i := 0; i < 128; i++ {
		ring.ReadFrame()
	}
	for ring.FramesAvailable() != 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if ring.FramesAvailable() != 0 {
		t.Errorf("ring not refilled, %d frames free", ring.FramesAvailable())
	}
	if pump.Passes() < 2 {
		t.Errorf("Passes = %d, want at least 2", pump.Passes())
	}
}

func TestRenderPump_StopIsIdempotent(t *testing.T) {
	e := newTestSynthEngine(t, nil)
	pump := NewRenderPump(e, NewFrameRing(64), 0)
	if pump.interval != PUMP_INTERVAL_MS*time.Millisecond {
		t.Errorf("default interval = %v", pump.interval)
	}
	pump.Start()
	pump.Stop()
	pump.Stop()
	frames := e.Stats().FramesRendered
	time.Sleep(20 * time.Millisecond)
	if e.Stats().FramesRendered != frames {
		t.Error("pump kept rendering after Stop")
	}
}

func TestRenderPump_StopBeforeStart(t *testing.T) {
	pump := NewRenderPump(newTestSynthEngine(t, nil), NewFrameRing(64), time.Millisecond)
	done := make(chan struct{})
	go func() {
		pump.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop blocked on a pump that never started")
	}
}
