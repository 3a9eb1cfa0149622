// audio_output.go - Audio backend selection

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
	"sort"
	"strings"
)

const (
	AUDIO_BACKEND_OTO  = "oto"
	AUDIO_BACKEND_ALSA = "alsa" // Linux, built with -tags alsa
)

// AudioOutput plays whatever the render pump leaves in a FrameRing.
type AudioOutput interface {
	SetupPlayer(ring *FrameRing)
	Start()
	Close()
}

// audioBackends is filled by the init functions of the backends compiled in.
var audioBackends = map[string]func(sampleRate int) (AudioOutput, error){}

func NewAudioOutput(backend string, sampleRate int) (AudioOutput, error) {
	open, ok := audioBackends[backend]
	if !ok {
		return nil, fmt.Errorf("audio backend %q not compiled in (have: %s)", backend, strings.Join(AudioBackends(), ", "))
	}
	out, err := open(sampleRate)
	if err != nil {
		return nil, fmt.Errorf("initialize %s audio: %w", backend, err)
	}
	return out, nil
}

// AudioBackends lists the compiled-in backend names.
func AudioBackends() []string {
	names := make([]string, 0, len(audioBackends))
	for name := range audioBackends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
