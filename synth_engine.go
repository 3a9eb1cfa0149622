// synth_engine.go - Polyphonic breath synthesizer: event API and render loop

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
	"math"
	"math/rand/v2"
	"sync/atomic"
)

// SynthEngine turns note events into a mono flute signal written to both
// channels of a RenderSink.
//
// NoteOn, NoteOff and AllNotesOff may be called from any goroutine at any
// time. Render and RenderFrames belong to a single render goroutine; every
// voice field is written there only, so the render loop takes no locks.
type SynthEngine struct {
	// Render-goroutine state
	config  SynthConfig
	steps   envelopeSteps
	pool    *VoicePool
	noise   *NoiseSource
	divisor float32 // polyphony * headroom

	events *eventQueue

	// Published after every render call for other goroutines
	meters         []voiceMeter
	framesRendered atomic.Uint64
	steals         atomic.Uint64
}

type voiceMeter struct {
	note      atomic.Int32
	stage     atomic.Int32
	amplitude atomic.Uint32 // float32 bits
	noise     atomic.Uint32 // float32 bits
}

// VoiceStatus is a point-in-time copy of one slot, as of the last render call.
type VoiceStatus struct {
	Slot           int     `json:"slot"`
	Note           int     `json:"note"`
	Amplitude      float32 `json:"amplitude"`
	NoiseAmplitude float32 `json:"noise_amplitude"`
	Stage          int     `json:"stage"`
}

type EngineStats struct {
	FramesRendered uint64 `json:"frames_rendered"`
	EventsApplied  uint64 `json:"events_applied"`
	EventsDropped  uint64 `json:"events_dropped"`
	Steals         uint64 `json:"steals"`
	ActiveVoices   int    `json:"active_voices"`
}

func NewSynthEngine(cfg SynthConfig) (*SynthEngine, error) {
	return newSynthEngine(cfg, nil)
}

func newSynthEngine(cfg SynthConfig, rng *rand.Rand) (*SynthEngine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	e := &SynthEngine{
		config:  cfg,
		steps:   cfg.steps(),
		pool:    NewVoicePool(cfg.Polyphony, cfg.StealPolicy, cfg.NoteOffPolicy),
		noise:   NewNoiseSource(cfg.SampleRate, rng),
		divisor: float32(cfg.Polyphony) * MIX_HEADROOM,
		events:  newEventQueue(cfg.EventQueueDepth),
		meters:  make([]voiceMeter, cfg.Polyphony),
	}
	e.publish()
	return e, nil
}

func (e *SynthEngine) Config() SynthConfig { return e.config }

// NoteOn starts note at velocity 0..127. Velocity 0 is a note-off.
func (e *SynthEngine) NoteOn(note, velocity int) {
	e.events.push(synthEvent{kind: EVT_NOTE_ON, note: int32(note), velocity: int32(velocity)})
}

// NoteOff releases the first voice playing note.
func (e *SynthEngine) NoteOff(note int) {
	e.events.push(synthEvent{kind: EVT_NOTE_OFF, note: int32(note)})
}

// AllNotesOff releases every voice and cuts any chiff at once.
func (e *SynthEngine) AllNotesOff() {
	e.events.push(synthEvent{kind: EVT_ALL_NOTES_OFF})
}

// Render produces exactly sink.FramesAvailable() frames.
func (e *SynthEngine) Render(sink RenderSink) int {
	n := max(sink.FramesAvailable(), 0)
	e.RenderFrames(n, sink)
	return n
}

// RenderFrames applies pending events, then mixes n frames into sink.
func (e *SynthEngine) RenderFrames(n int, sink RenderSink) {
	e.events.drain(e.applyEvent)

	voices := e.pool.voices
	for i := 0; i < n; i++ {
		var sum float32
		for j := range voices {
			sum += voices[j].tick(e.noise, &e.steps, &e.config)
		}
		s := sum / e.divisor
		if s > MAX_SAMPLE {
			s = MAX_SAMPLE
		} else if s < MIN_SAMPLE {
			s = MIN_SAMPLE
		}
		sink.PushFrame(s, s)
	}

	e.framesRendered.Add(uint64(n))
	e.publish()
}

func (e *SynthEngine) applyEvent(ev synthEvent) {
	switch ev.kind {
	case EVT_NOTE_ON:
		e.noteOn(clampNote(int(ev.note)), int(ev.velocity))
	case EVT_NOTE_OFF:
		e.noteOff(clampNote(int(ev.note)))
	case EVT_ALL_NOTES_OFF:
		e.allNotesOff()
	}
}

func (e *SynthEngine) noteOn(note, velocity int) {
	if velocity <= 0 {
		e.noteOff(note)
		return
	}
	target := min(float32(velocity)/MAX_VELOCITY, 1)

	v := e.pool.Allocate()
	if v.amplitude == 0 || e.config.LegatoPolicy == LEGATO_RETRIGGER {
		v.triggerFresh()
	}
	v.setFrequency(NoteFrequency(note), e.config.SampleRate)
	v.noteID = note
	v.targetAmplitude = target
}

func (e *SynthEngine) noteOff(note int) {
	if v := e.pool.FindActiveByNote(note); v != nil {
		v.targetAmplitude = 0
	}
}

func (e *SynthEngine) allNotesOff() {
	for i := range e.pool.voices {
		v := &e.pool.voices[i]
		v.targetAmplitude = 0
		v.noiseAmplitude = 0
		v.chiffPending = false
	}
}

func (e *SynthEngine) publish() {
	for i := range e.pool.voices {
		v := &e.pool.voices[i]
		m := &e.meters[i]
		m.note.Store(int32(v.noteID))
		m.stage.Store(int32(v.Stage()))
		m.amplitude.Store(math.Float32bits(v.amplitude))
		m.noise.Store(math.Float32bits(v.noiseAmplitude))
	}
	e.steals.Store(e.pool.Steals())
}

// Snapshot is safe to call from any goroutine.
func (e *SynthEngine) Snapshot() []VoiceStatus {
	out := make([]VoiceStatus, len(e.meters))
	for i := range e.meters {
		m := &e.meters[i]
		out[i] = VoiceStatus{
			Slot:           i,
			Note:           int(m.note.Load()),
			Amplitude:      math.Float32frombits(m.amplitude.Load()),
			NoiseAmplitude: math.Float32frombits(m.noise.Load()),
			Stage:          int(m.stage.Load()),
		}
	}
	return out
}

func (e *SynthEngine) Stats() EngineStats {
	active := 0
	for i := range e.meters {
		if e.meters[i].note.Load() != NOTE_NONE {
			active++
		}
	}
	return EngineStats{
		FramesRendered: e.framesRendered.Load(),
		EventsApplied:  e.events.applied.Load(),
		EventsDropped:  e.events.dropped.Load(),
		Steals:         e.steals.Load(),
		ActiveVoices:   active,
	}
}

func clampNote(note int) int {
	return min(max(note, 0), MAX_NOTE)
}
