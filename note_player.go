// note_player.go - Playing event lists in real time and rendering them offline

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
	"math"
	"sync"
	"time"
)

// EventPlayer feeds an event list to a target on wall-clock time.
type EventPlayer struct {
	target  NoteTarget
	events  []NoteEvent
	stopCh  chan struct{}
	done    chan struct{}
	stopped sync.Once
}

// PlayNoteEvents starts playback on its own goroutine.
func PlayNoteEvents(target NoteTarget, events []NoteEvent) *EventPlayer {
	p := &EventPlayer{
		target: target,
		events: events,
		stopCh: make(chan struct{}),
		done:   make(chan struct{}),
	}
	go p.run()
	return p
}

func (p *EventPlayer) run() {
	defer close(p.done)
	start := time.Now()
	timer := time.NewTimer(0)
	defer timer.Stop()
	<-timer.C

	for _, ev := range p.events {
		if wait := time.Until(start.Add(ev.At)); wait > 0 {
			timer.Reset(wait)
			select {
			case <-p.stopCh:
				return
			case <-timer.C:
			}
		}
		select {
		case <-p.stopCh:
			return
		default:
		}
		ev.Apply(p.target)
	}
}

// Stop aborts playback and silences anything it left sounding.
func (p *EventPlayer) Stop() {
	p.stopped.Do(func() {
		close(p.stopCh)
		<-p.done
		p.target.AllNotesOff()
	})
}

func (p *EventPlayer) Done() <-chan struct{} { return p.done }

// RenderNoteEvents renders events sample-accurately into sink, followed by
// tailFrames of release. Each event is applied before the frame at its
// timestamp. Returns the number of frames rendered.
func RenderNoteEvents(engine *SynthEngine, events []NoteEvent, sink RenderSink, tailFrames int) int {
	sr := float64(engine.Config().SampleRate)
	cursor := 0
	for _, ev := range events {
		frame := int(math.Round(ev.At.Seconds() * sr))
		if frame > cursor {
			engine.RenderFrames(frame-cursor, sink)
			cursor = frame
		}
		ev.Apply(engine)
		// Drain at this frame
		engine.RenderFrames(0, sink)
	}
	if tailFrames > 0 {
		engine.RenderFrames(tailFrames, sink)
		cursor += tailFrames
	}
	return cursor
}

// EventsDuration is the timestamp of the last event.
func EventsDuration(events []NoteEvent) time.Duration {
	if len(events) == 0 {
		return 0
	}
	return events[len(events)-1].At
}
