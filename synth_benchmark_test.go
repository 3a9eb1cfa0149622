// synth_benchmark_test.go - Render loop throughput

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

import "testing"

// benchmarkRender measures one 20ms block (882 frames) with voices sounding.
func benchmarkRender(b *testing.B, voices int, fastSine bool) {
	e := newTestSynthEngine(b, func(c *SynthConfig) {
		c.Polyphony = max(voices, 1)
		c.FastSine = fastSine
	})
	for i := 0; i < voices; i++ {
		e.NoteOn(60+i*3, 100)
	}
	block := RingFramesForMs(RING_BUFFER_MS, SAMPLE_RATE)
	sink := NewBufferSink(block)
	e.RenderFrames(block, sink)

	b.ReportAllocs()
	for b.Loop() {
		sink.Left, sink.Right = sink.Left[:0], sink.Right[:0]
		e.RenderFrames(block, sink)
	}
	b.ReportMetric(float64(block), "frames/op")
}

func BenchmarkRender_Idle(b *testing.B) { benchmarkRender(b, 0, false) }
func BenchmarkRender_OneVoice(b *testing.B) { benchmarkRender(b, 1, false) }
func BenchmarkRender_EightVoices(b *testing.B) { benchmarkRender(b, 8, false) }
func BenchmarkRender_EightVoicesFastSine(b *testing.B) {
	benchmarkRender(b, 8, true)
}

func BenchmarkNoteOnOff(b *testing.B) {
	e := newTestSynthEngine(b, nil)
	sink := NewBufferSink(0)
	for i := 0; b.Loop(); i++ {
		e.NoteOn(60+i%12, 100)
		e.NoteOff(60 + i%12)
		if i%256 == 0 {
			e.RenderFrames(0, sink)
		}
	}
}
