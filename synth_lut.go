// synth_lut.go - Sine table for the fast harmonic path

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

const (
	sinLUTSize = 8192           // 8192 entries per cycle
	sinLUTMask = sinLUTSize - 1 // Mask for fast modulo
)

// sinLUT holds sin(2π·i/sinLUTSize) for one full cycle.
var sinLUT [sinLUTSize]float32

func init() {
	for i := 0; i < sinLUTSize; i++ {
		sinLUT[i] = float32(math.Sin(TWO_PI * float64(i) / sinLUTSize))
	}
}

// fastSinCycle returns sin(2π·cycles) by table lookup with linear
// interpolation. cycles must be non-negative; the integer part is discarded.
//
//go:nosplit
func fastSinCycle(cycles float32) float32 {
	indexF := (cycles - float32(int(cycles))) * sinLUTSize
	index := int(indexF)
	frac := indexF - float32(index)

	index &= sinLUTMask
	next := (index + 1) & sinLUTMask
	return sinLUT[index] + frac*(sinLUT[next]-sinLUT[index])
}

// harmonicSum is the exact flute recipe at the given phase (cycles in [0,1)).
func harmonicSum(phase float32) float32 {
	rad := float64(phase) * TWO_PI
	var s float32
	for k := 0; k < HARMONIC_COUNT; k++ {
		s += float32(math.Sin(rad*float64(k+1))) * HARMONIC_WEIGHTS[k]
	}
	return s
}

// harmonicSumFast is harmonicSum through the sine table.
func harmonicSumFast(phase float32) float32 {
	var s float32
	for k := 0; k < HARMONIC_COUNT; k++ {
		s += fastSinCycle(phase*float32(k+1)) * HARMONIC_WEIGHTS[k]
	}
	return s
}
