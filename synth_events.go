// synth_events.go - Note events queued from any goroutine, drained by the render path

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

const (
	EVT_NOTE_ON = iota
	EVT_NOTE_OFF
	EVT_ALL_NOTES_OFF
)

type synthEvent struct {
	kind     uint8
	note     int32
	velocity int32
}

// eventQueue is a bounded multi-producer, single-consumer queue. Producers
// never block: a full queue drops a note-on and counts it. Releases are not
// lost: an overflowed note-off marks its note in pendingOff and an
// overflowed panic raises panicOverflow, both applied after the drain.
type eventQueue struct {
	ch            chan synthEvent
	dropped       atomic.Uint64
	applied       atomic.Uint64
	panicOverflow atomic.Bool
	offOverflow   atomic.Bool
	pendingOff    [MIDI_NOTE_COUNT]atomic.Bool
}

func newEventQueue(depth int) *eventQueue {
	if depth <= 0 {
		depth = EVENT_QUEUE_DEPTH
	}
	return &eventQueue{ch: make(chan synthEvent, depth)}
}

func (q *eventQueue) push(ev synthEvent) {
	select {
	case q.ch <- ev:
	default:
		switch {
		case ev.kind == EVT_ALL_NOTES_OFF:
			q.panicOverflow.Store(true)
		case ev.kind == EVT_NOTE_OFF, ev.kind == EVT_NOTE_ON && ev.velocity <= 0:
			q.pendingOff[clampNote(int(ev.note))].Store(true)
			q.offOverflow.Store(true)
		default:
			q.dropped.Add(1)
		}
	}
}

// drain applies at most the events queued when it started, so a busy
// producer cannot keep the render path inside the loop.
func (q *eventQueue) drain(apply func(synthEvent)) {
	for n := len(q.ch); n > 0; n-- {
		select {
		case ev := <-q.ch:
			apply(ev)
			q.applied.Add(1)
		default:
			n = 1
		}
	}
	if q.offOverflow.CompareAndSwap(true, false) {
		for note := range q.pendingOff {
			if q.pendingOff[note].Swap(false) {
				apply(synthEvent{kind: EVT_NOTE_OFF, note: int32(note)})
				q.applied.Add(1)
			}
		}
	}
	if q.panicOverflow.CompareAndSwap(true, false) {
		apply(synthEvent{kind: EVT_ALL_NOTES_OFF})
		q.applied.Add(1)
	}
}
