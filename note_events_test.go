package main

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestParseNoteEvents(t *testing.T) {
	src := `# tune
0 on 60 100
250   off 60   # trailing comment

125.5 on 64
300 PANIC
`
	events, err := ParseNoteEventsString(src)
	if err != nil {
		t.Fatalf("ParseNoteEvents: %v", err)
	}
	want := []NoteEvent{
		{At: 0, Kind: NOTE_EVENT_ON, Note: 60, Velocity: 100},
		{At: 125500 * time.Microsecond, Kind: NOTE_EVENT_ON, Note: 64, Velocity: DEFAULT_VELOCITY},
		{At: 250 * time.Millisecond, Kind: NOTE_EVENT_OFF, Note: 60},
		{At: 300 * time.Millisecond, Kind: NOTE_EVENT_PANIC},
	}
	if len(events) != len(want) {
		t.Fatalf("got %d events, want %d", len(events), len(want))
	}
	for i := range want {
		if events[i] != want[i] {
			t.Errorf("event %d = %+v, want %+v", i, events[i], want[i])
		}
	}
}

func TestParseNoteEvents_StableForTies(t *testing.T) {
	events, err := ParseNoteEventsString("10 off 60\n10 on 62\n10 on 60\n")
	if err != nil {
		t.Fatal(err)
	}
	got := []string{events[0].String(), events[1].String(), events[2].String()}
	want := []string{"10 off 60", "10 on 62 100", "10 on 60 100"}
	if !equalCalls(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
}

func TestParseNoteEvents_Errors(t *testing.T) {
	tests := []struct {
		src     string
		wantErr string
	}{
		{"x on 60", "line 1: bad time"},
		{"-5 on 60", "line 1: bad time"},
		{"0", "missing event"},
		{"0 on", "on expects"},
		{"0 on 60 100 7", "on expects"},
		{"0 on 128", "bad note"},
		{"0 on 60 200", "bad velocity"},
		{"0 off", "off expects"},
		{"0 panic now", "panic takes no arguments"},
		{"0 on 60\n\n5 hum 3", "line 3: unknown event"},
	}
	for _, tc := range tests {
		_, err := ParseNoteEventsString(tc.src)
		if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
			t.Errorf("%q: err = %v, want %q", tc.src, err, tc.wantErr)
		}
	}
}

func TestFormatNoteEvents_RoundTrip(t *testing.T) {
	src := "0 on 60 90\n12.5 off 60\n40 panic\n"
	events, err := ParseNoteEventsString(src)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := FormatNoteEvents(&buf, events); err != nil {
		t.Fatalf("FormatNoteEvents: %v", err)
	}
	if buf.String() != src {
		t.Errorf("formatted:\n%s\nwant:\n%s", buf.String(), src)
	}
}

func TestNoteEvent_Apply(t *testing.T) {
	rec := &recordingTarget{}
	for _, ev := range []NoteEvent{
		{Kind: NOTE_EVENT_ON, Note: 60, Velocity: 80},
		{Kind: NOTE_EVENT_OFF, Note: 60},
		{Kind: NOTE_EVENT_PANIC},
	} {
		ev.Apply(rec)
	}
	want := []string{"on 60 80", "off 60", "panic"}
	if got := rec.Calls(); !equalCalls(got, want) {
		t.Errorf("calls = %v, want %v", got, want)
	}
}
