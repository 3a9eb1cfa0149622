// keyboard_map.go - QWERTY piano layout shared by the terminal and window frontends

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

const (
	DEFAULT_BASE_NOTE = 60 // Middle C on the 'a' key
	MIN_BASE_NOTE     = 0
	MAX_BASE_NOTE     = 108
)

// Two rows of a QWERTY keyboard as a chromatic run: the home row holds the
// white keys and the row above the black keys.
var pianoKeyOffsets = map[rune]int{
	'a': 0, 'w': 1, 's': 2, 'e': 3, 'd': 4, 'f': 5, 't': 6, 'g': 7, 'y': 8,
	'h': 9, 'u': 10, 'j': 11, 'k': 12, 'o': 13, 'l': 14, 'p': 15, ';': 16, '\'': 17,
}

// KeyboardLayout tracks the octave the piano keys currently map to.
type KeyboardLayout struct {
	baseNote int
}

func NewKeyboardLayout() *KeyboardLayout {
	return &KeyboardLayout{baseNote: DEFAULT_BASE_NOTE}
}

// NoteForKey maps a piano key to a note number.
func (k *KeyboardLayout) NoteForKey(r rune) (int, bool) {
	off, ok := pianoKeyOffsets[r]
	if !ok {
		return 0, false
	}
	note := k.baseNote + off
	if note > 127 {
		return 0, false
	}
	return note, true
}

func (k *KeyboardLayout) OctaveUp() {
	k.baseNote = min(k.baseNote+NOTES_PER_OCT, MAX_BASE_NOTE)
}

func (k *KeyboardLayout) OctaveDown() {
	k.baseNote = max(k.baseNote-NOTES_PER_OCT, MIN_BASE_NOTE)
}

func (k *KeyboardLayout) BaseNote() int { return k.baseNote }
