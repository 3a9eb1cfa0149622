// synth_config.go - Engine configuration, fixed at construction

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

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrNoPolyphony         = errors.New("polyphony must be at least 1")
	ErrInvalidSampleRate   = errors.New("sample rate must be positive")
	ErrInvalidEnvelopeTime = errors.New("envelope time must be positive")
	ErrInvalidPolicy       = errors.New("unknown voice policy")
)

type SynthConfig struct {
	SampleRate       int
	Polyphony        int
	AttackTime       float64 // seconds
	ReleaseTime      float64 // seconds
	NoiseReleaseTime float64 // seconds
	BreathAmount     float32
	ChiffLevel       float32
	StealPolicy      int
	LegatoPolicy     int
	NoteOffPolicy    int
	FastSine         bool // Use the sine table for the harmonic sum
	EventQueueDepth  int
}

func DefaultSynthConfig() SynthConfig {
	return SynthConfig{
		SampleRate:       SAMPLE_RATE,
		Polyphony:        DEFAULT_POLYPHONY,
		AttackTime:       DEFAULT_ATTACK_TIME,
		ReleaseTime:      DEFAULT_RELEASE_TIME,
		NoiseReleaseTime: DEFAULT_NOISE_RELEASE_TIME,
		BreathAmount:     SUSTAINED_BREATH_AMOUNT,
		ChiffLevel:       CHIFF_LEVEL,
		StealPolicy:      STEAL_FIRST_SLOT,
		LegatoPolicy:     LEGATO_RETUNE,
		NoteOffPolicy:    NOTE_OFF_FIRST_MATCH,
		EventQueueDepth:  EVENT_QUEUE_DEPTH,
	}
}

func (c SynthConfig) Validate() error {
	if c.Polyphony <= 0 {
		return ErrNoPolyphony
	}
	if c.Polyphony > MAX_POLYPHONY {
		return fmt.Errorf("polyphony %d exceeds %d", c.Polyphony, MAX_POLYPHONY)
	}
	if c.SampleRate <= 0 {
		return ErrInvalidSampleRate
	}
	for _, env := range []struct {
		name string
		t    float64
	}{
		{"attack", c.AttackTime},
		{"release", c.ReleaseTime},
		{"noise release", c.NoiseReleaseTime},
	} {
		if !(env.t > 0) || math.IsInf(env.t, 0) {
			return fmt.Errorf("%s time %v: %w", env.name, env.t, ErrInvalidEnvelopeTime)
		}
	}
	if c.StealPolicy < STEAL_FIRST_SLOT || c.StealPolicy > STEAL_QUIETEST {
		return fmt.Errorf("steal policy %d: %w", c.StealPolicy, ErrInvalidPolicy)
	}
	if c.LegatoPolicy != LEGATO_RETUNE && c.LegatoPolicy != LEGATO_RETRIGGER {
		return fmt.Errorf("legato policy %d: %w", c.LegatoPolicy, ErrInvalidPolicy)
	}
	if c.NoteOffPolicy != NOTE_OFF_FIRST_MATCH && c.NoteOffPolicy != NOTE_OFF_HELD_FIRST {
		return fmt.Errorf("note-off policy %d: %w", c.NoteOffPolicy, ErrInvalidPolicy)
	}
	return nil
}

// envelopeSteps holds the per-sample linear ramp increments.
type envelopeSteps struct {
	attack  float32
	release float32
	noise   float32
}

func (c SynthConfig) steps() envelopeSteps {
	sr := float64(c.SampleRate)
	return envelopeSteps{
		attack:  float32(1.0 / (c.AttackTime * sr)),
		release: float32(1.0 / (c.ReleaseTime * sr)),
		noise:   float32(1.0 / (c.NoiseReleaseTime * sr)),
	}
}

// NoteFrequency maps a MIDI key number to equal-tempered Hz (A4 = key 69 = 440 Hz).
func NoteFrequency(note int) float32 {
	return float32(FREQ_A4 * math.Pow(2, float64(note-MIDI_NOTE_A4)/NOTES_PER_OCT))
}

// ParseStealPolicy accepts "first", "oldest" or "quietest".
func ParseStealPolicy(name string) (int, error) {
	switch name {
	case "first", "":
		return STEAL_FIRST_SLOT, nil
	case "oldest":
		return STEAL_OLDEST, nil
	case "quietest":
		return STEAL_QUIETEST, nil
	}
	return 0, fmt.Errorf("steal policy %q: %w", name, ErrInvalidPolicy)
}

// ParseLegatoPolicy accepts "retune" or "retrigger".
func ParseLegatoPolicy(name string) (int, error) {
	switch name {
	case "retune", "":
		return LEGATO_RETUNE, nil
	case "retrigger":
		return LEGATO_RETRIGGER, nil
	}
	return 0, fmt.Errorf("legato policy %q: %w", name, ErrInvalidPolicy)
}

// ParseNoteOffPolicy accepts "first" or "held".
func ParseNoteOffPolicy(name string) (int, error) {
	switch name {
	case "first", "":
		return NOTE_OFF_FIRST_MATCH, nil
	case "held":
		return NOTE_OFF_HELD_FIRST, nil
	}
	return 0, fmt.Errorf("note-off policy %q: %w", name, ErrInvalidPolicy)
}
