// audio_wav.go - 16-bit stereo WAV sink for offline rendering

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
	"fmt"
	"io"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const (
	WAV_BIT_DEPTH    = 16
	WAV_PCM_FORMAT   = 1 // WAVE_FORMAT_PCM
	WAV_BLOCK_FRAMES = 4096
	WAV_FULL_SCALE   = 32767
)

// WavSink encodes pushed frames as 16-bit PCM. Frames are collected in
// blocks of WAV_BLOCK_FRAMES; FramesAvailable is the room left in the
// current block, so an engine driven by Render writes one block at a time.
type WavSink struct {
	enc    *wav.Encoder
	file   *os.File // Closed by Close when the sink opened it
	buf    *audio.IntBuffer
	frames int
	err    error
}

func NewWavSink(w io.WriteSeeker, sampleRate int) *WavSink {
	return &WavSink{
		enc: wav.NewEncoder(w, sampleRate, WAV_BIT_DEPTH, 2, WAV_PCM_FORMAT),
		buf: &audio.IntBuffer{
			Format:         &audio.Format{NumChannels: 2, SampleRate: sampleRate},
			Data:           make([]int, 0, WAV_BLOCK_FRAMES*2),
			SourceBitDepth: WAV_BIT_DEPTH,
		},
	}
}

func CreateWavFile(path string, sampleRate int) (*WavSink, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create wav: %w", err)
	}
	s := NewWavSink(f, sampleRate)
	s.file = f
	return s, nil
}

func (s *WavSink) FramesAvailable() int {
	return WAV_BLOCK_FRAMES - len(s.buf.Data)/2
}

func (s *WavSink) PushFrame(left, right float32) {
	s.buf.Data = append(s.buf.Data, pcm16(left), pcm16(right))
	s.frames++
	if len(s.buf.Data) >= WAV_BLOCK_FRAMES*2 {
		s.flush()
	}
}

func (s *WavSink) Frames() int { return s.frames }

func (s *WavSink) flush() {
	if len(s.buf.Data) == 0 || s.err != nil {
		s.buf.Data = s.buf.Data[:0]
		return
	}
	if err := s.enc.Write(s.buf); err != nil {
		s.err = fmt.Errorf("write wav block: %w", err)
	}
	s.buf.Data = s.buf.Data[:0]
}

// Close writes the remaining frames and finalizes the headers. It reports
// the first error seen while pushing.
func (s *WavSink) Close() error {
	s.flush()
	err := s.err
	if cerr := s.enc.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("finalize wav: %w", cerr)
	}
	if s.file != nil {
		if cerr := s.file.Close(); err == nil && cerr != nil {
			err = cerr
		}
		s.file = nil
	}
	return err
}

func pcm16(x float32) int {
	return int(math.Round(float64(min(max(x, MIN_SAMPLE), MAX_SAMPLE)) * WAV_FULL_SCALE))
}

// RenderNoteEventsToWav renders an event list plus a release tail to path.
func RenderNoteEventsToWav(engine *SynthEngine, events []NoteEvent, path string) (int, error) {
	sink, err := CreateWavFile(path, engine.Config().SampleRate)
	if err != nil {
		return 0, err
	}
	frames := RenderNoteEvents(engine, events, sink, RELEASE_TAIL_FRAMES)
	if err := sink.Close(); err != nil {
		return frames, err
	}
	return frames, nil
}
