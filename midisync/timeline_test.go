package midisync

import (
	"math"
	"strings"
	"testing"
)

func TestBuildTimelineValidation(t *testing.T) {
	ok := []NoteEvent{{Note: 60, Time: 0}}
	cases := []struct {
		name     string
		events   []NoteEvent
		duration float64
		bpm      float64
		wantErr  string
	}{
		{"bpm zero", ok, 10, 0, "BPM must be between 4 and 999"},
		{"bpm thousand", ok, 10, 1000, "BPM must be between 4 and 999"},
		{"bpm nan", ok, 10, math.NaN(), "BPM must be between 4 and 999"},
		{"duration zero", ok, 0, 120, "duration"},
		{"duration negative", ok, -3, 120, "duration"},
		{"duration inf", ok, math.Inf(1), 120, "duration"},
		{"no events", nil, 10, 120, "no notes provided"},
		{"note too high", []NoteEvent{{Note: 128, Time: 0}}, 10, 120, "event 0"},
		{"note negative", []NoteEvent{{Note: 60, Time: 0}, {Note: -1, Time: 1}}, 10, 120, "event 1"},
		{"nan time", []NoteEvent{{Note: 60, Time: 0}, {Note: 1, Time: math.NaN()}}, 10, 120, "event 1"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := BuildTimeline(c.events, c.duration, c.bpm)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), c.wantErr) {
				t.Errorf("error %q does not mention %q", err, c.wantErr)
			}
		})
	}
}

func TestBuildTimelineTicks(t *testing.T) {
	// 120 BPM: 960 ticks per second.
	events := []NoteEvent{{Note: 60, Time: 0}, {Note: 0, Time: 2.5}}
	got, err := BuildTimeline(events, 5, 120)
	if err != nil {
		t.Fatal(err)
	}

	want := []TickEvent{
		{Tick: 0, On: true, Note: 60, Velocity: 100},
		{Tick: 2400, On: false, Note: 60},
		{Tick: 2400, On: true, Note: 0, Velocity: 100},
		{Tick: 4800, On: false, Note: 0},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d events, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d: got %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestBuildTimelineMinimumDuration(t *testing.T) {
	// Two simultaneous events: the first note still has to last a tick.
	events := []NoteEvent{{Note: 60, Time: 1}, {Note: 0, Time: 1}}
	got, err := BuildTimeline(events, 1, 120)
	if err != nil {
		t.Fatal(err)
	}
	if got[1].Tick != got[0].Tick+1 {
		t.Errorf("note-off at %d, want note-on %d + 1", got[1].Tick, got[0].Tick)
	}
	// Last note's off clamps to end of track, then to on+1.
	if got[3].Tick <= got[2].Tick {
		t.Errorf("final note-off %d not after note-on %d", got[3].Tick, got[2].Tick)
	}
}

func TestMicrosecondsPerBeat(t *testing.T) {
	if got := MicrosecondsPerBeat(120); got != 500000 {
		t.Errorf("MicrosecondsPerBeat(120) = %d, want 500000", got)
	}
	if got := MicrosecondsPerBeat(60); got != 1000000 {
		t.Errorf("MicrosecondsPerBeat(60) = %d, want 1000000", got)
	}
}
