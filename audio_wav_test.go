package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/wav"
)

func decodeWav(t *testing.T, path string) (*wav.Decoder, []int) {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	t.Cleanup(func() { f.Close() })

	d := wav.NewDecoder(f)
	if !d.IsValidFile() {
		t.Fatalf("%s is not a valid wav file", path)
	}
	buf, err := d.FullPCMBuffer()
	if err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
	return d, buf.Data
}

func TestPcm16(t *testing.T) {
	tests := []struct {
		in   float32
		want int
	}{
		{0, 0},
		{1, WAV_FULL_SCALE},
		{-1, -WAV_FULL_SCALE},
		{2, WAV_FULL_SCALE},
		{-3, -WAV_FULL_SCALE},
		{0.5, 16384},
	}
	for _, tc := range tests {
		if got := pcm16(tc.in); got != tc.want {
			t.Errorf("pcm16(%v) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestWavSink_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tone.wav")
	sink, err := CreateWavFile(path, SAMPLE_RATE)
	if err != nil {
		t.Fatalf("CreateWavFile: %v", err)
	}

	frames := WAV_BLOCK_FRAMES + 100 // One full block plus a partial one
	for i := 0; i < frames; i++ {
		v := float32(i%200)/100 - 1
		sink.PushFrame(v, -v)
	}
	if sink.Frames() != frames {
		t.Fatalf("Frames = %d, want %d", sink.Frames(), frames)
	}
	if err := sink.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	d, data := decodeWav(t, path)
	if d.SampleRate != SAMPLE_RATE || d.NumChans != 2 || d.BitDepth != WAV_BIT_DEPTH {
		t.Fatalf("header = %d Hz, %d ch, %d bit", d.SampleRate, d.NumChans, d.BitDepth)
	}
	if len(data) != frames*2 {
		t.Fatalf("decoded %d samples, want %d", len(data), frames*2)
	}
	for i := 0; i < frames; i++ {
		v := float32(i%200)/100 - 1
		if data[2*i] != pcm16(v) || data[2*i+1] != pcm16(-v) {
			t.Fatalf("frame %d = (%d,%d), want (%d,%d)", i, data[2*i], data[2*i+1], pcm16(v), pcm16(-v))
		}
	}
}

func TestWavSink_FramesAvailableTracksBlock(t *testing.T) {
	sink, err := CreateWavFile(filepath.Join(t.TempDir(), "block.wav"), SAMPLE_RATE)
	if err != nil {
		t.Fatalf("CreateWavFile: %v", err)
	}
	defer sink.Close()

	if sink.FramesAvailable() != WAV_BLOCK_FRAMES {
		t.Fatalf("FramesAvailable = %d, want %d", sink.FramesAvailable(), WAV_BLOCK_FRAMES)
	}
	sink.PushFrame(0, 0)
	if sink.FramesAvailable() != WAV_BLOCK_FRAMES-1 {
		t.Errorf("FramesAvailable = %d after one frame", sink.FramesAvailable())
	}
}

func TestRenderNoteEventsToWav(t *testing.T) {
	events, err := ParseNoteEventsString("0 on 69 127\n100 off 69\n")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	e := newTestSynthEngine(t, nil)
	path := filepath.Join(t.TempDir(), "note.wav")

	frames, err := RenderNoteEventsToWav(e, events, path)
	if err != nil {
		t.Fatalf("RenderNoteEventsToWav: %v", err)
	}
	want := SAMPLE_RATE/10 + RELEASE_TAIL_FRAMES
	if frames != want {
		t.Fatalf("rendered %d frames, want %d", frames, want)
	}

	_, data := decodeWav(t, path)
	if len(data) != want*2 {
		t.Fatalf("file holds %d samples, want %d", len(data), want*2)
	}
	var peak int
	for _, s := range data[:SAMPLE_RATE/10*2] {
		peak = max(peak, s, -s)
	}
	if peak == 0 {
		t.Error("held note rendered silence")
	}
	for i, s := range data[len(data)-200:] {
		if s != 0 {
			t.Fatalf("tail sample %d = %d, release should have finished", i, s)
		}
	}
	if e.Stats().ActiveVoices != 0 {
		t.Errorf("ActiveVoices = %d after the tail", e.Stats().ActiveVoices)
	}
}

func TestCreateWavFile_BadPath(t *testing.T) {
	if _, err := CreateWavFile(filepath.Join(t.TempDir(), "missing", "x.wav"), SAMPLE_RATE); err == nil {
		t.Error("expected error for a missing directory")
	}
}
