//go:build !headless

package main

import (
	"encoding/binary"
	"math"
	"testing"
)

func TestOtoPlayer_ReadInterleavesRing(t *testing.T) {
	ring := NewFrameRing(4)
	ring.PushFrame(0.5, -0.5)
	ring.PushFrame(0.25, -0.25)

	op := &OtoPlayer{}
	op.ring.Store(ring)

	p := make([]byte, 4*8+3) // Trailing partial frame is zeroed
	for i := range p {
		p[i] = 0xFF
	}
	n, err := op.Read(p)
	if err != nil || n != len(p) {
		t.Fatalf("Read = %d, %v; want %d, nil", n, err, len(p))
	}

	want := []float32{0.5, -0.5, 0.25, -0.25, 0, 0, 0, 0}
	for i, w := range want {
		got := math.Float32frombits(binary.LittleEndian.Uint32(p[i*4:]))
		if got != w {
			t.Errorf("sample %d = %v, want %v", i, got, w)
		}
	}
	for i, b := range p[32:] {
		if b != 0 {
			t.Errorf("tail byte %d = %#x, want 0", i, b)
		}
	}
	if ring.Underruns() != 2 {
		t.Errorf("Underruns = %d, want 2", ring.Underruns())
	}
}

func TestOtoPlayer_ReadWithoutRing(t *testing.T) {
	op := &OtoPlayer{}
	p := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	if n, _ := op.Read(p); n != len(p) {
		t.Fatalf("Read = %d", n)
	}
	for i, b := range p {
		if b != 0 {
			t.Fatalf("byte %d = %d, want silence", i, b)
		}
	}
	if op.IsStarted() {
		t.Error("player without a device reports started")
	}
	op.Start() // No player yet: no-op
	if op.IsStarted() {
		t.Error("Start without SetupPlayer should not start")
	}
}
