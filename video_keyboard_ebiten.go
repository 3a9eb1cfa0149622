//go:build !headless

// video_keyboard_ebiten.go - Keyboard window with per-voice meters

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
	"image/color"
	"os"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.design/x/clipboard"
	"golang.org/x/image/font/basicfont"
)

func init() {
	compiledFeatures = append(compiledFeatures, "window:ebiten")
}

const (
	windowWidth    = 480
	windowHeight   = 320
	meterTop       = 48
	meterRowHeight = 30
	meterMaxWidth  = 300
	pasteMaxBytes  = 64 << 10
)

var ebitenPianoKeys = map[ebiten.Key]rune{
	ebiten.KeyA: 'a', ebiten.KeyW: 'w', ebiten.KeyS: 's', ebiten.KeyE: 'e',
	ebiten.KeyD: 'd', ebiten.KeyF: 'f', ebiten.KeyT: 't', ebiten.KeyG: 'g',
	ebiten.KeyY: 'y', ebiten.KeyH: 'h', ebiten.KeyU: 'u', ebiten.KeyJ: 'j',
	ebiten.KeyK: 'k', ebiten.KeyO: 'o', ebiten.KeyL: 'l', ebiten.KeyP: 'p',
	ebiten.KeySemicolon: ';', ebiten.KeyQuote: '\'',
}

var (
	colorBackground = color.RGBA{0x10, 0x10, 0x18, 0xFF}
	colorText       = color.RGBA{0xE0, 0xE0, 0xE0, 0xFF}
	colorTone       = color.RGBA{0xFF, 0x14, 0x93, 0xFF}
	colorChiff      = color.RGBA{0xFF, 0xE6, 0x93, 0xFF}
	colorTrack      = color.RGBA{0x30, 0x30, 0x40, 0xFF}
)

// KeyboardWindow plays the engine from the computer keyboard with real
// key-up events and shows what every voice is doing. Ctrl+Shift+V pastes a
// note event list from the clipboard and plays it.
type KeyboardWindow struct {
	target   ControlTarget
	layout   *KeyboardLayout
	velocity int
	held     map[ebiten.Key]int // Note captured at press time

	player        *EventPlayer
	clipboardOnce sync.Once
	clipboardOK   bool
	status        string
}

func NewKeyboardWindow(target ControlTarget) *KeyboardWindow {
	return &KeyboardWindow{
		target:   target,
		layout:   NewKeyboardLayout(),
		velocity: DEFAULT_VELOCITY,
		held:     make(map[ebiten.Key]int),
		status:   "z/x octave  space panic  ctrl+shift+v paste events  esc quit",
	}
}

// Run blocks on the main goroutine until the window closes.
func (kw *KeyboardWindow) Run() error {
	ebiten.SetWindowSize(windowWidth*2, windowHeight*2)
	ebiten.SetWindowTitle("Breath Engine (c) 2024 - 2026 Zayn Otley")
	ebiten.SetWindowResizable(true)
	ebiten.SetRunnableOnUnfocused(true)
	defer kw.stopPlayer()
	return ebiten.RunGame(kw)
}

func (kw *KeyboardWindow) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	ctrl := ebiten.IsKeyPressed(ebiten.KeyControlLeft) || ebiten.IsKeyPressed(ebiten.KeyControlRight)
	shift := ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight)
	if ctrl && shift && inpututil.IsKeyJustPressed(ebiten.KeyV) {
		kw.handleClipboardPaste()
		return nil
	}
	if ctrl {
		return nil
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyZ) {
		kw.layout.OctaveDown()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyX) {
		kw.layout.OctaveUp()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		kw.stopPlayer()
		clear(kw.held)
		kw.target.AllNotesOff()
	}

	for key, r := range ebitenPianoKeys {
		if inpututil.IsKeyJustPressed(key) {
			if note, ok := kw.layout.NoteForKey(r); ok {
				kw.target.NoteOn(note, kw.velocity)
				kw.held[key] = note
			}
		}
		if inpututil.IsKeyJustReleased(key) {
			if note, ok := kw.held[key]; ok {
				kw.target.NoteOff(note)
				delete(kw.held, key)
			}
		}
	}
	return nil
}

func (kw *KeyboardWindow) handleClipboardPaste() {
	kw.clipboardOnce.Do(func() {
		kw.clipboardOK = clipboard.Init() == nil
	})
	if !kw.clipboardOK {
		kw.status = "clipboard unavailable"
		return
	}
	data := clipboard.Read(clipboard.FmtText)
	if len(data) == 0 {
		return
	}
	if len(data) > pasteMaxBytes {
		data = data[:pasteMaxBytes]
	}
	events, err := ParseNoteEventsString(string(data))
	if err != nil {
		kw.status = "paste: " + err.Error()
		fmt.Fprintf(os.Stderr, "keyboard_window: paste: %v\n", err)
		return
	}
	kw.stopPlayer()
	kw.player = PlayNoteEvents(kw.target, events)
	kw.status = fmt.Sprintf("playing %d pasted events", len(events))
}

func (kw *KeyboardWindow) stopPlayer() {
	if kw.player != nil {
		kw.player.Stop()
		kw.player = nil
	}
}

func (kw *KeyboardWindow) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)
	face := basicfont.Face7x13

	stats := kw.target.Stats()
	header := fmt.Sprintf("base %d  active %d  steals %d  dropped %d",
		kw.layout.BaseNote(), stats.ActiveVoices, stats.Steals, stats.EventsDropped)
	text.Draw(screen, header, face, 8, 18, colorText)
	text.Draw(screen, kw.status, face, 8, 34, colorText)

	for _, v := range kw.target.Snapshot() {
		y := meterTop + v.Slot*meterRowHeight
		label := fmt.Sprintf("%d", v.Slot)
		if v.Note != NOTE_NONE {
			label = fmt.Sprintf("%d %3d %s", v.Slot, v.Note, StageName(v.Stage))
		}
		text.Draw(screen, label, face, 8, y+12, colorText)

		x := 150.0
		ebitenutil.DrawRect(screen, x, float64(y), meterMaxWidth, 10, colorTrack)
		ebitenutil.DrawRect(screen, x, float64(y), float64(v.Amplitude)*meterMaxWidth, 10, colorTone)
		ebitenutil.DrawRect(screen, x, float64(y+12), meterMaxWidth, 4, colorTrack)
		ebitenutil.DrawRect(screen, x, float64(y+12), float64(v.NoiseAmplitude)*meterMaxWidth, 4, colorChiff)
	}
}

func (kw *KeyboardWindow) Layout(_, _ int) (int, int) {
	return windowWidth, windowHeight
}
