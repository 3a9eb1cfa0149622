package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

// EventKind classifies an output line.
type EventKind int

const (
	EventOn EventKind = iota
	EventOff
	EventPanic
)

// CC 123, All Notes Off
const ccAllNotesOff = 123

// Event is one line of the synthesizer's note event format.
type Event struct {
	AtMicros int64
	Kind     EventKind
	Note     uint8
	Velocity uint8
}

func (ev Event) String() string {
	ms := strconv.FormatFloat(float64(ev.AtMicros)/1000, 'f', -1, 64)
	switch ev.Kind {
	case EventOn:
		return fmt.Sprintf("%s on %d %d", ms, ev.Note, ev.Velocity)
	case EventOff:
		return fmt.Sprintf("%s off %d", ms, ev.Note)
	default:
		return ms + " panic"
	}
}

// Stats counts what a conversion kept and skipped.
type Stats struct {
	Tracks   int
	NotesOn  int
	NotesOff int
	Panics   int
	Skipped  int // Notes on other channels
}

// Converter turns Standard MIDI Files into note event lists.
type Converter struct {
	channel int // 1-16, 0 for all
	noHeader bool
	stats    Stats
}

// NewConverter creates a Converter that keeps every channel.
func NewConverter() *Converter {
	return &Converter{}
}

// SetChannel restricts conversion to one MIDI channel (1-16), or 0 for all.
func (c *Converter) SetChannel(ch int) error {
	if ch < 0 || ch > 16 {
		return fmt.Errorf("channel %d out of range 1-16", ch)
	}
	c.channel = ch
	return nil
}

func (c *Converter) Stats() Stats { return c.stats }

func (c *Converter) wantChannel(ch uint8) bool {
	if c.channel == 0 {
		return true
	}
	if int(ch)+1 == c.channel {
		return true
	}
	c.stats.Skipped++
	return false
}

// Convert reads an SMF and returns its note events in time order.
func (c *Converter) Convert(r io.Reader) ([]Event, error) {
	c.stats = Stats{}
	tracks := map[int]bool{}
	var events []Event

	rd := smf.ReadTracksFrom(r).Do(func(te smf.TrackEvent) {
		tracks[te.TrackNo] = true
		msg := midi.Message(te.Message)
		var ch, key, vel, ctl uint8

		switch {
		case msg.GetNoteStart(&ch, &key, &vel):
			if c.wantChannel(ch) {
				events = append(events, Event{AtMicros: te.AbsMicroSeconds, Kind: EventOn, Note: key, Velocity: vel})
				c.stats.NotesOn++
			}
		case msg.GetNoteEnd(&ch, &key):
			if c.wantChannel(ch) {
				events = append(events, Event{AtMicros: te.AbsMicroSeconds, Kind: EventOff, Note: key})
				c.stats.NotesOff++
			}
		case msg.GetControlChange(&ch, &ctl, &vel) && ctl == ccAllNotesOff:
			if c.channel == 0 || int(ch)+1 == c.channel {
				events = append(events, Event{AtMicros: te.AbsMicroSeconds, Kind: EventPanic})
				c.stats.Panics++
			}
		}
	})
	if err := rd.Error(); err != nil {
		return nil, fmt.Errorf("read midi: %w", err)
	}
	c.stats.Tracks = len(tracks)

	sort.SliceStable(events, func(i, j int) bool { return events[i].AtMicros < events[j].AtMicros })
	return events, nil
}

// ConvertFileFromPath converts the file at path.
func (c *Converter) ConvertFileFromPath(path string) ([]Event, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return c.Convert(f)
}

// Write emits events in the text format, with a comment header unless
// disabled.
func (c *Converter) Write(w io.Writer, source string, events []Event) error {
	bw := bufio.NewWriter(w)
	if !c.noHeader {
		fmt.Fprintf(bw, "# Converted from %s by mid2events\n", source)
		fmt.Fprintf(bw, "# <time_ms> on <note> <velocity> | <time_ms> off <note> | <time_ms> panic\n")
	}
	for _, ev := range events {
		fmt.Fprintln(bw, ev.String())
	}
	return bw.Flush()
}
