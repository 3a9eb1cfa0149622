// note_events.go - Timed note event lists: text format, parsing and formatting

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
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"
)

const (
	NOTE_EVENT_ON = iota
	NOTE_EVENT_OFF
	NOTE_EVENT_PANIC
)

const DEFAULT_VELOCITY = 100

// NoteTarget is anything that accepts the engine's event API.
type NoteTarget interface {
	NoteOn(note, velocity int)
	NoteOff(note int)
	AllNotesOff()
}

// NoteEvent is one line of an event list:
//
//	<time_ms> on <note> [velocity]
//	<time_ms> off <note>
//	<time_ms> panic
type NoteEvent struct {
	At       time.Duration
	Kind     int
	Note     int
	Velocity int
}

func (ev NoteEvent) Apply(t NoteTarget) {
	switch ev.Kind {
	case NOTE_EVENT_ON:
		t.NoteOn(ev.Note, ev.Velocity)
	case NOTE_EVENT_OFF:
		t.NoteOff(ev.Note)
	case NOTE_EVENT_PANIC:
		t.AllNotesOff()
	}
}

func (ev NoteEvent) String() string {
	ms := strconv.FormatFloat(float64(ev.At)/float64(time.Millisecond), 'f', -1, 64)
	switch ev.Kind {
	case NOTE_EVENT_ON:
		return fmt.Sprintf("%s on %d %d", ms, ev.Note, ev.Velocity)
	case NOTE_EVENT_OFF:
		return fmt.Sprintf("%s off %d", ms, ev.Note)
	default:
		return ms + " panic"
	}
}

// ParseNoteEvents reads an event list. Blank lines and '#' comments are
// skipped. The result is ordered by time, keeping file order for ties.
func ParseNoteEvents(r io.Reader) ([]NoteEvent, error) {
	var events []NoteEvent
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		ev, err := parseNoteEventFields(fields)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		events = append(events, ev)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read note events: %w", err)
	}
	sort.SliceStable(events, func(i, j int) bool { return events[i].At < events[j].At })
	return events, nil
}

func ParseNoteEventsString(s string) ([]NoteEvent, error) {
	return ParseNoteEvents(strings.NewReader(s))
}

func parseNoteEventFields(fields []string) (NoteEvent, error) {
	var ev NoteEvent
	ms, err := strconv.ParseFloat(fields[0], 64)
	if err != nil || ms < 0 {
		return ev, fmt.Errorf("bad time %q", fields[0])
	}
	ev.At = time.Duration(ms * float64(time.Millisecond))

	if len(fields) < 2 {
		return ev, fmt.Errorf("missing event after time %q", fields[0])
	}
	switch strings.ToLower(fields[1]) {
	case "on":
		if len(fields) < 3 || len(fields) > 4 {
			return ev, fmt.Errorf("on expects <note> [velocity]")
		}
		ev.Kind = NOTE_EVENT_ON
		if ev.Note, err = parseMidiValue(fields[2], "note"); err != nil {
			return ev, err
		}
		ev.Velocity = DEFAULT_VELOCITY
		if len(fields) == 4 {
			if ev.Velocity, err = parseMidiValue(fields[3], "velocity"); err != nil {
				return ev, err
			}
		}
	case "off":
		if len(fields) != 3 {
			return ev, fmt.Errorf("off expects <note>")
		}
		ev.Kind = NOTE_EVENT_OFF
		if ev.Note, err = parseMidiValue(fields[2], "note"); err != nil {
			return ev, err
		}
	case "panic":
		if len(fields) != 2 {
			return ev, fmt.Errorf("panic takes no arguments")
		}
		ev.Kind = NOTE_EVENT_PANIC
	default:
		return ev, fmt.Errorf("unknown event %q", fields[1])
	}
	return ev, nil
}

func parseMidiValue(s, what string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 || v > 127 {
		return 0, fmt.Errorf("bad %s %q (want 0-127)", what, s)
	}
	return v, nil
}

func FormatNoteEvents(w io.Writer, events []NoteEvent) error {
	bw := bufio.NewWriter(w)
	for _, ev := range events {
		if _, err := fmt.Fprintln(bw, ev.String()); err != nil {
			return err
		}
	}
	return bw.Flush()
}
