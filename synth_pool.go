// synth_pool.go - Fixed set of voices, allocation and note lookup

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

// VoicePool is a small fixed-capacity pool scanned linearly. Capacity stays
// well under MAX_POLYPHONY, so a free list would buy nothing.
type VoicePool struct {
	voices        []Voice
	stealPolicy   int
	noteOffPolicy int
	onsets        uint64
	steals        uint64
}

func NewVoicePool(capacity, stealPolicy, noteOffPolicy int) *VoicePool {
	p := &VoicePool{
		voices:        make([]Voice, capacity),
		stealPolicy:   stealPolicy,
		noteOffPolicy: noteOffPolicy,
	}
	for i := range p.voices {
		p.voices[i].reset()
	}
	return p
}

func (p *VoicePool) Capacity() int { return len(p.voices) }

// Voice returns the voice in slot i.
func (p *VoicePool) Voice(i int) *Voice { return &p.voices[i] }

// FindActiveByNote returns the first active voice playing note, or nil.
// Under NOTE_OFF_HELD_FIRST a held voice wins over one already releasing
// the same note.
func (p *VoicePool) FindActiveByNote(note int) *Voice {
	if note == NOTE_NONE {
		return nil
	}
	var releasing *Voice
	for i := range p.voices {
		v := &p.voices[i]
		if v.noteID != note {
			continue
		}
		if v.targetAmplitude > 0 || p.noteOffPolicy == NOTE_OFF_FIRST_MATCH {
			return v
		}
		if releasing == nil {
			releasing = v
		}
	}
	return releasing
}

// Allocate returns the first free voice. When every slot is busy a voice is
// stolen according to the pool's policy; the stolen note is dropped without a
// fade. The caller decides between fresh attack and legato.
func (p *VoicePool) Allocate() *Voice {
	var v *Voice
	for i := range p.voices {
		if p.voices[i].noteID == NOTE_NONE {
			v = &p.voices[i]
			break
		}
	}
	if v == nil {
		v = &p.voices[p.stealSlot()]
		p.steals++
	}
	p.onsets++
	v.onset = p.onsets
	return v
}

func (p *VoicePool) stealSlot() int {
	slot := 0
	switch p.stealPolicy {
	case STEAL_OLDEST:
		for i := 1; i < len(p.voices); i++ {
			if p.voices[i].onset < p.voices[slot].onset {
				slot = i
			}
		}
	case STEAL_QUIETEST:
		for i := 1; i < len(p.voices); i++ {
			if p.voices[i].amplitude < p.voices[slot].amplitude {
				slot = i
			}
		}
	}
	return slot
}

func (p *VoicePool) ActiveCount() int {
	n := 0
	for i := range p.voices {
		if p.voices[i].Active() {
			n++
		}
	}
	return n
}

// Steals reports how many allocations evicted a busy voice.
func (p *VoicePool) Steals() uint64 { return p.steals }
