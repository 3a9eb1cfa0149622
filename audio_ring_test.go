package main

import "testing"

func TestFrameRing_RoundsUpToPowerOfTwo(t *testing.T) {
	tests := []struct{ frames, want int }{{1, 1}, {3, 4}, {882, 1024}, {1024, 1024}}
	for _, tc := range tests {
		if got := NewFrameRing(tc.frames).Cap(); got != tc.want {
			t.Errorf("NewFrameRing(%d).Cap() = %d, want %d", tc.frames, got, tc.want)
		}
	}
	if got := RingFramesForMs(RING_BUFFER_MS, SAMPLE_RATE); got != 882 {
		t.Errorf("RingFramesForMs(20, 44100) = %d, want 882", got)
	}
}

func TestFrameRing_PushRead(t *testing.T) {
	r := NewFrameRing(4)
	if r.FramesAvailable() != 4 || r.Buffered() != 0 {
		t.Fatalf("empty ring: available %d buffered %d", r.FramesAvailable(), r.Buffered())
	}
	for i := 0; i < 6; i++ {
		r.PushFrame(float32(i), -float32(i))
	}
	if r.Buffered() != 4 || r.FramesAvailable() != 0 {
		t.Fatalf("full ring: buffered %d available %d", r.Buffered(), r.FramesAvailable())
	}
	for i := 0; i < 4; i++ {
		l, rt := r.ReadFrame()
		if l != float32(i) || rt != -float32(i) {
			t.Fatalf("frame %d = (%v,%v), pushes past capacity must be dropped", i, l, rt)
		}
	}
	if r.Underruns() != 0 {
		t.Errorf("Underruns = %d before the ring ran dry", r.Underruns())
	}
	if l, rt := r.ReadFrame(); l != 0 || rt != 0 || r.Underruns() != 1 {
		t.Errorf("empty read = (%v,%v), underruns %d", l, rt, r.Underruns())
	}
}

func TestFrameRing_EngineRenderFillsFreeSpace(t *testing.T) {
	e := newTestSynthEngine(t, nil)
	r := NewFrameRing(RingFramesForMs(RING_BUFFER_MS, SAMPLE_RATE))
	e.NoteOn(69, 100)

	if n := e.Render(r); n != r.Cap() {
		t.Fatalf("first render = %d frames, want %d", n, r.Cap())
	}
	for i := 0; i < 100; i++ {
		r.ReadFrame()
	}
	if n := e.Render(r); n != 100 {
		t.Errorf("second render = %d frames, want 100", n)
	}
}
