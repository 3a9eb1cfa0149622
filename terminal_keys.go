// terminal_keys.go - Playing the synth from a raw-mode terminal

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
	"sync"
	"time"
)

const TERMINAL_NOTE_HOLD = 350 * time.Millisecond

const (
	keyCtrlC = 0x03
	keyEsc   = 0x1B
)

// TerminalKeyboard turns key presses into note events. Terminals report
// presses only, never releases, so each press holds its note for
// TERMINAL_NOTE_HOLD; auto-repeat of a held key extends the hold.
type TerminalKeyboard struct {
	target   NoteTarget
	layout   *KeyboardLayout
	velocity int
	hold     time.Duration
	out      io.Writer

	mu    sync.Mutex
	held  map[int]*time.Timer
	quit  chan struct{}
	quitO sync.Once

	stopCh  chan struct{}
	done    chan struct{}
	stopped sync.Once
	fd      int
}

func NewTerminalKeyboard(target NoteTarget, out io.Writer) *TerminalKeyboard {
	return &TerminalKeyboard{
		target:   target,
		layout:   NewKeyboardLayout(),
		velocity: DEFAULT_VELOCITY,
		hold:     TERMINAL_NOTE_HOLD,
		out:      out,
		held:     make(map[int]*time.Timer),
		quit:     make(chan struct{}),
		stopCh:   make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Quit is closed when the user asks to leave ('q', Esc or Ctrl-C).
func (k *TerminalKeyboard) Quit() <-chan struct{} { return k.quit }

func (k *TerminalKeyboard) printHelp() {
	// Raw mode: explicit carriage returns
	fmt.Fprintf(k.out, "keys: a w s e d f t g y h u j k o l p ; '  play\r\n")
	fmt.Fprintf(k.out, "      z/x octave down/up, space panic, q quit\r\n")
	fmt.Fprintf(k.out, "base note %d\r\n", k.layout.BaseNote())
}

func (k *TerminalKeyboard) handleKey(b byte) {
	switch b {
	case 'q', keyCtrlC, keyEsc:
		k.quitO.Do(func() { close(k.quit) })
		return
	case 'z':
		k.layout.OctaveDown()
		fmt.Fprintf(k.out, "base note %d\r\n", k.layout.BaseNote())
		return
	case 'x':
		k.layout.OctaveUp()
		fmt.Fprintf(k.out, "base note %d\r\n", k.layout.BaseNote())
		return
	case ' ':
		k.releaseAll()
		k.target.AllNotesOff()
		return
	}

	note, ok := k.layout.NoteForKey(rune(b))
	if !ok {
		return
	}

	k.mu.Lock()
	defer k.mu.Unlock()
	if t, ok := k.held[note]; ok {
		if t.Stop() {
			t.Reset(k.hold)
			return
		}
		// Release already firing; a new timer makes it leave the note on
		k.held[note] = k.releaseAfter(note)
		return
	}
	k.target.NoteOn(note, k.velocity)
	k.held[note] = k.releaseAfter(note)
}

// releaseAfter must be called with k.mu held.
func (k *TerminalKeyboard) releaseAfter(note int) *time.Timer {
	var t *time.Timer
	t = time.AfterFunc(k.hold, func() {
		k.mu.Lock()
		if k.held[note] != t {
			k.mu.Unlock()
			return
		}
		delete(k.held, note)
		k.mu.Unlock()
		k.target.NoteOff(note)
	})
	return t
}

func (k *TerminalKeyboard) releaseAll() {
	k.mu.Lock()
	defer k.mu.Unlock()
	for note, t := range k.held {
		t.Stop()
		delete(k.held, note)
	}
}

// Held reports how many notes the keyboard is currently holding.
func (k *TerminalKeyboard) Held() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.held)
}
