package main

import (
	"math"
	"testing"
)

func TestFastSinCycle_MatchesSin(t *testing.T) {
	for i := 0; i < 1000; i++ {
		c := float32(i) / 997
		want := math.Sin(TWO_PI * float64(c))
		if got := float64(fastSinCycle(c)); math.Abs(got-want) > 1e-4 {
			t.Fatalf("fastSinCycle(%v) = %v, want %v", c, got, want)
		}
	}
}

func TestHarmonicSumFast_MatchesExact(t *testing.T) {
	var peak float32
	for i := 0; i < 4096; i++ {
		p := float32(i) / 4096
		exact := harmonicSum(p)
		if d := float32(math.Abs(float64(harmonicSumFast(p) - exact))); d > 1e-3 {
			t.Fatalf("phase %v: fast %v exact %v", p, harmonicSumFast(p), exact)
		}
		peak = max(peak, float32(math.Abs(float64(exact))))
	}
	if peak > 1 {
		t.Errorf("harmonic sum peak %v exceeds the weight total", peak)
	}
	if harmonicSum(0) != 0 {
		t.Errorf("harmonicSum(0) = %v, want 0", harmonicSum(0))
	}
}

func BenchmarkHarmonicSum(b *testing.B) {
	var s float32
	for i := 0; b.Loop(); i++ {
		s += harmonicSum(float32(i&1023) / 1024)
	}
	_ = s
}

func BenchmarkHarmonicSumFast(b *testing.B) {
	var s float32
	for i := 0; b.Loop(); i++ {
		s += harmonicSumFast(float32(i&1023) / 1024)
	}
	_ = s
}
