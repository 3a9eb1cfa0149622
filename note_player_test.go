package main

import (
	"testing"
	"time"
)

func TestPlayNoteEvents_Order(t *testing.T) {
	events, err := ParseNoteEventsString("0 on 60 90\n5 off 60\n10 on 62\n15 panic\n")
	if err != nil {
		t.Fatal(err)
	}
	rec := &recordingTarget{}
	p := PlayNoteEvents(rec, events)

	select {
	case <-p.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("playback did not finish")
	}
	want := []string{"on 60 90", "off 60", "on 62 100", "panic"}
	if got := rec.Calls(); !equalCalls(got, want) {
		t.Errorf("calls = %v, want %v", got, want)
	}
}

func TestPlayNoteEvents_StopSilences(t *testing.T) {
	events, err := ParseNoteEventsString("0 on 60\n10000 off 60\n")
	if err != nil {
		t.Fatal(err)
	}
	rec := &recordingTarget{}
	p := PlayNoteEvents(rec, events)

	deadline := time.Now().Add(time.Second)
	for len(rec.Calls()) == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	p.Stop()
	p.Stop()

	want := []string{"on 60 100", "panic"}
	if got := rec.Calls(); !equalCalls(got, want) {
		t.Errorf("calls = %v, want %v", got, want)
	}
}

func TestRenderNoteEvents_SampleAccurate(t *testing.T) {
	events, err := ParseNoteEventsString("10 on 69 127\n")
	if err != nil {
		t.Fatal(err)
	}
	e := newTestSynthEngine(t, nil)
	sink := NewBufferSink(0)

	onset := SAMPLE_RATE / 100 // 10ms
	n := RenderNoteEvents(e, events, sink, 64)
	if n != onset+64 || sink.Len() != n {
		t.Fatalf("rendered %d frames (sink %d), want %d", n, sink.Len(), onset+64)
	}
	for i := 0; i < onset; i++ {
		if sink.Left[i] != 0 {
			t.Fatalf("frame %d = %v before the note started", i, sink.Left[i])
		}
	}
	if sink.Left[onset] == 0 && sink.Left[onset+1] == 0 {
		t.Errorf("no sound at the onset frame %d", onset)
	}
}

func TestEventsDuration(t *testing.T) {
	if EventsDuration(nil) != 0 {
		t.Error("empty list should have zero duration")
	}
	events, _ := ParseNoteEventsString("0 on 60\n1500 off 60\n")
	if got := EventsDuration(events); got != 1500*time.Millisecond {
		t.Errorf("EventsDuration = %v, want 1.5s", got)
	}
}
