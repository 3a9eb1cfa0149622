// synth_constants.go - Fixed parameters of the breath voice

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

const (
	SAMPLE_RATE       = 44100 // Working mix rate (Hz)
	DEFAULT_POLYPHONY = 8     // Voices in the pool
	MAX_POLYPHONY     = 64    // Upper bound accepted by Validate
)

// Envelope timing (seconds)
const (
	DEFAULT_ATTACK_TIME        = 0.015 // Tone fade in (~15ms)
	DEFAULT_RELEASE_TIME       = 0.015 // Tone fade out (~15ms)
	DEFAULT_NOISE_RELEASE_TIME = 0.008 // Chiff fade (~8ms)
)

// Mix levels
const (
	SUSTAINED_BREATH_AMOUNT = 0.015 // Noise riding on the tone while it sounds
	CHIFF_LEVEL             = 0.7   // Noise gain at chiff onset
	MIX_HEADROOM            = 0.5   // Sum is divided by polyphony*headroom
	MAX_SAMPLE              = 1.0
	MIN_SAMPLE              = -1.0
)

const (
	NOTE_NONE       = -1  // Voice owns no note
	MAX_NOTE        = 127 // Notes are clamped to 0..MAX_NOTE
	MIDI_NOTE_COUNT = MAX_NOTE + 1
	MAX_VELOCITY    = 127 // MIDI velocity ceiling
	MIDI_NOTE_A4    = 69
	FREQ_A4         = 440.0
	NOTES_PER_OCT   = 12
)

const HARMONIC_COUNT = 9

// HARMONIC_WEIGHTS is the flute recipe: H1=35%, H2=25%, H3=15%, H4=10%, H5=7%,
// H6=3%, H7=2%, H8=2%, H9=1% (total 100%).
var HARMONIC_WEIGHTS = [HARMONIC_COUNT]float32{0.35, 0.25, 0.15, 0.10, 0.07, 0.03, 0.02, 0.02, 0.01}

const TWO_PI = 6.283185307179586

// Voice stealing when every slot is busy
const (
	STEAL_FIRST_SLOT = iota // Always evict slot 0
	STEAL_OLDEST            // Evict the earliest onset
	STEAL_QUIETEST          // Evict the lowest tone amplitude
)

// What a note-on does to a stolen voice that is still sounding
const (
	LEGATO_RETUNE    = iota // Jump pitch, keep phase, no chiff
	LEGATO_RETRIGGER        // Restart phase and chiff
)

// Which voice a note-off releases when several carry the same note
const (
	NOTE_OFF_FIRST_MATCH = iota // Lowest slot, held or releasing
	NOTE_OFF_HELD_FIRST         // A held voice before a releasing one
)

// Emergent voice stages, derived from amplitude vs target
const (
	STAGE_FREE = iota
	STAGE_ATTACK
	STAGE_SUSTAIN
	STAGE_RELEASE
)

const (
	EVENT_QUEUE_DEPTH   = 1024 // Pending note events between render calls
	RING_BUFFER_MS      = 20   // Output ring length, matches the generator buffer
	PUMP_INTERVAL_MS    = 5    // RenderPump tick
	RELEASE_TAIL_FRAMES = SAMPLE_RATE / 10
)
