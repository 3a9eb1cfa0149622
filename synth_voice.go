// synth_voice.go - One sounding note: oscillator phase plus tone and chiff envelopes

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

import "math"

// Voice is owned by the render goroutine. Event calls never touch it
// directly; they are queued and applied at the start of a render call.
type Voice struct {
	// Hot fields, touched every sample
	phase           float32 // Position in the waveform cycle [0,1)
	increment       float32 // frequency / sampleRate
	amplitude       float32 // Current tone gain
	targetAmplitude float32 // Sustain level from velocity, 0 while releasing
	noiseAmplitude  float32 // Current chiff gain

	frequency    float32 // Oscillator rate (Hz)
	noteID       int     // NOTE_NONE when free
	onset        uint64  // Allocation order, used by STEAL_OLDEST
	chiffPending bool    // Consumed once by the render path
}

func (v *Voice) Active() bool { return v.noteID != NOTE_NONE }

func (v *Voice) Silent() bool { return v.amplitude == 0 && v.noiseAmplitude == 0 }

func (v *Voice) Stage() int {
	switch {
	case !v.Active():
		return STAGE_FREE
	case v.targetAmplitude == 0:
		return STAGE_RELEASE
	case v.amplitude < v.targetAmplitude:
		return STAGE_ATTACK
	default:
		return STAGE_SUSTAIN
	}
}

func (v *Voice) reset() {
	*v = Voice{noteID: NOTE_NONE}
}

func (v *Voice) setFrequency(freq float32, sampleRate int) {
	v.frequency = freq
	v.increment = freq / float32(sampleRate)
}

// triggerFresh starts a new attack: phase restarts and a chiff is queued
// for the next processed sample.
func (v *Voice) triggerFresh() {
	v.phase = 0
	v.chiffPending = true
}

// tick advances the voice by one sample and returns its contribution.
func (v *Voice) tick(noise *NoiseSource, st *envelopeSteps, cfg *SynthConfig) float32 {
	if v.noteID == NOTE_NONE {
		return 0
	}

	// 1. Chiff trigger
	if v.chiffPending {
		v.noiseAmplitude = 1
		v.phase = 0
		v.chiffPending = false
	}

	// 2. Tone envelope, linear ramps. The fall clamps at 0, so a drop to a
	// lower held level can undershoot by one step before the rise corrects it.
	if v.amplitude < v.targetAmplitude {
		v.amplitude = min(v.amplitude+st.attack, v.targetAmplitude)
	} else if v.amplitude > v.targetAmplitude {
		v.amplitude = max(v.amplitude-st.release, 0)
	}

	// 3. Chiff envelope, only ever falls here
	if v.noiseAmplitude > 0 {
		v.noiseAmplitude = max(v.noiseAmplitude-st.noise, 0)
	}

	// 4. Release finished
	if v.targetAmplitude == 0 && v.amplitude == 0 && v.noiseAmplitude == 0 {
		v.noteID = NOTE_NONE
		return 0
	}

	// 5. Tone, phase frozen at zero amplitude
	n := noise.Next()
	var tone float32
	if v.amplitude > 0 {
		if cfg.FastSine {
			tone = harmonicSumFast(v.phase)
		} else {
			tone = harmonicSum(v.phase)
		}
		tone += n * cfg.BreathAmount
		v.phase = wrapPhase(v.phase + v.increment)
	}

	// 6. Voice output
	return tone*v.amplitude + n*v.noiseAmplitude*cfg.ChiffLevel
}

// wrapPhase is a non-negative modulo 1.
func wrapPhase(p float32) float32 {
	p -= float32(math.Floor(float64(p)))
	if p >= 1 {
		p = 0
	}
	return p
}

func StageName(stage int) string {
	switch stage {
	case STAGE_ATTACK:
		return "attack"
	case STAGE_SUSTAIN:
		return "sustain"
	case STAGE_RELEASE:
		return "release"
	default:
		return "free"
	}
}
