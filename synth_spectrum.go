// synth_spectrum.go - Harmonic profile of rendered audio

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

	"github.com/ktye/fft"
)

const (
	SPECTRUM_MIN_SIZE  = 1024
	SPECTRUM_LOBE_BINS = 3 // Bins summed either side of a harmonic
)

var ErrShortSignal = errors.New("signal too short for spectrum analysis")

// HarmonicProfile measures the first count harmonics of fundamental in
// samples. The signal is cut to the largest power of two that fits, Hann
// windowed, and each harmonic's magnitude is the energy of its main lobe.
// The result is normalized to sum to 1, so for the flute voice it should
// track HARMONIC_WEIGHTS.
func HarmonicProfile(samples []float32, sampleRate int, fundamental float64, count int) ([]float64, error) {
	n := SPECTRUM_MIN_SIZE
	if len(samples) < n {
		return nil, ErrShortSignal
	}
	for n*2 <= len(samples) {
		n *= 2
	}

	f, err := fft.New(n)
	if err != nil {
		return nil, fmt.Errorf("fft setup: %w", err)
	}
	buf := make([]complex128, n)
	for i := range buf {
		w := (1 - math.Cos(2*math.Pi*float64(i)/float64(n))) / 2
		buf[i] = complex(float64(samples[i])*w, 0)
	}
	buf = f.Transform(buf)

	binHz := float64(sampleRate) / float64(n)
	profile := make([]float64, count)
	var total float64
	for k := 1; k <= count; k++ {
		center := int(math.Round(float64(k) * fundamental / binHz))
		if center+SPECTRUM_LOBE_BINS >= n/2 {
			break
		}
		var energy float64
		for b := center - SPECTRUM_LOBE_BINS; b <= center+SPECTRUM_LOBE_BINS; b++ {
			if b < 0 {
				continue
			}
			re, im := real(buf[b]), imag(buf[b])
			energy += re*re + im*im
		}
		profile[k-1] = math.Sqrt(energy)
		total += profile[k-1]
	}
	if total > 0 {
		for i := range profile {
			profile[i] /= total
		}
	}
	return profile, nil
}

// AnalyzeNote renders a single held note and returns its harmonic profile.
func AnalyzeNote(cfg SynthConfig, note int) ([]float64, error) {
	engine, err := NewSynthEngine(cfg)
	if err != nil {
		return nil, err
	}
	settle := cfg.SampleRate / 20 // Past attack and chiff
	sink := NewBufferSink(settle + 8192)
	engine.NoteOn(note, MAX_VELOCITY)
	engine.Render(sink)
	return HarmonicProfile(sink.Left[settle:], cfg.SampleRate, float64(NoteFrequency(note)), HARMONIC_COUNT)
}
