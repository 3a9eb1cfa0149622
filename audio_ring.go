// audio_ring.go - Lock-free stereo frame ring between the render pump and the audio device

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

import "sync/atomic"

// FrameRing is a single-producer, single-consumer ring of stereo frames.
// The render pump is the producer (through the RenderSink methods) and the
// audio backend's Read is the consumer. Neither side ever blocks.
type FrameRing struct {
	buf       [][2]float32
	mask      uint64
	write     atomic.Uint64 // Producer cursor
	read      atomic.Uint64 // Consumer cursor
	underruns atomic.Uint64
}

// NewFrameRing allocates room for at least frames frames (rounded up to a
// power of two).
func NewFrameRing(frames int) *FrameRing {
	size := 1
	for size < frames {
		size <<= 1
	}
	return &FrameRing{
		buf:  make([][2]float32, size),
		mask: uint64(size - 1),
	}
}

// RingFramesForMs converts a latency in milliseconds to a frame count.
func RingFramesForMs(ms, sampleRate int) int {
	return max(ms*sampleRate/1000, 1)
}

func (r *FrameRing) Cap() int { return len(r.buf) }

// Buffered is the number of frames waiting for the consumer.
func (r *FrameRing) Buffered() int {
	return int(r.write.Load() - r.read.Load())
}

// FramesAvailable is the free space, which is what the engine should render.
func (r *FrameRing) FramesAvailable() int {
	return len(r.buf) - r.Buffered()
}

func (r *FrameRing) PushFrame(left, right float32) {
	w := r.write.Load()
	if w-r.read.Load() >= uint64(len(r.buf)) {
		return
	}
	r.buf[w&r.mask] = [2]float32{left, right}
	r.write.Store(w + 1)
}

// ReadFrame pops one frame, or returns silence and counts an underrun.
func (r *FrameRing) ReadFrame() (left, right float32) {
	rd := r.read.Load()
	if rd == r.write.Load() {
		r.underruns.Add(1)
		return 0, 0
	}
	f := r.buf[rd&r.mask]
	r.read.Store(rd + 1)
	return f[0], f[1]
}

func (r *FrameRing) Underruns() uint64 { return r.underruns.Load() }
