package main

import "testing"

func TestVoicePool_AllocateFirstFree(t *testing.T) {
	p := NewVoicePool(4, STEAL_FIRST_SLOT, NOTE_OFF_FIRST_MATCH)
	if p.Capacity() != 4 || p.ActiveCount() != 0 {
		t.Fatalf("new pool: capacity %d active %d", p.Capacity(), p.ActiveCount())
	}

	for i := 0; i < 4; i++ {
		v := p.Allocate()
		if v != p.Voice(i) {
			t.Fatalf("allocation %d did not take slot %d", i, i)
		}
		v.noteID = 60 + i
	}
	p.Voice(2).reset()

	if v := p.Allocate(); v != p.Voice(2) {
		t.Error("allocation should reuse the freed slot 2")
	}
	if p.Steals() != 0 {
		t.Errorf("Steals = %d, want 0", p.Steals())
	}
}

func TestVoicePool_StealWhenFull(t *testing.T) {
	p := NewVoicePool(2, STEAL_FIRST_SLOT, NOTE_OFF_FIRST_MATCH)
	p.Allocate().noteID = 60
	p.Allocate().noteID = 62

	if v := p.Allocate(); v != p.Voice(0) {
		t.Fatal("full pool should steal slot 0")
	}
	if p.Steals() != 1 {
		t.Errorf("Steals = %d, want 1", p.Steals())
	}
}

func TestVoicePool_FindActiveByNote(t *testing.T) {
	p := NewVoicePool(4, STEAL_FIRST_SLOT, NOTE_OFF_FIRST_MATCH)
	if p.FindActiveByNote(60) != nil {
		t.Fatal("empty pool found a voice")
	}
	if p.FindActiveByNote(NOTE_NONE) != nil {
		t.Fatal("NOTE_NONE matched a free voice")
	}
	p.Allocate().noteID = 62
	p.Allocate().noteID = 60
	if got := p.FindActiveByNote(60); got != p.Voice(1) {
		t.Error("note 60 should match slot 1")
	}
}

func TestVoicePool_FindActiveByNotePolicies(t *testing.T) {
	tests := []struct {
		name     string
		policy   int
		heldWant int // slot expected while slot 1 is held
	}{
		{"first match", NOTE_OFF_FIRST_MATCH, 0},
		{"held first", NOTE_OFF_HELD_FIRST, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewVoicePool(4, STEAL_FIRST_SLOT, tt.policy)
			releasing := p.Allocate()
			releasing.noteID = 60
			releasing.amplitude = 0.4
			held := p.Allocate()
			held.noteID = 60
			held.targetAmplitude = 0.7

			if got := p.FindActiveByNote(60); got != p.Voice(tt.heldWant) {
				t.Errorf("FindActiveByNote(60) picked the wrong slot, want %d", tt.heldWant)
			}
			held.targetAmplitude = 0
			if got := p.FindActiveByNote(60); got != releasing {
				t.Error("with both releasing, the first slot should match")
			}
		})
	}
}

func TestVoicePool_OnsetOrder(t *testing.T) {
	p := NewVoicePool(3, STEAL_OLDEST, NOTE_OFF_FIRST_MATCH)
	for i := 0; i < 3; i++ {
		p.Allocate().noteID = 60 + i
	}
	for i := 1; i < 3; i++ {
		if p.Voice(i).onset <= p.Voice(i-1).onset {
			t.Fatalf("onsets not increasing: %d then %d", p.Voice(i-1).onset, p.Voice(i).onset)
		}
	}
	if got := p.stealSlot(); got != 0 {
		t.Errorf("oldest slot = %d, want 0", got)
	}
}
