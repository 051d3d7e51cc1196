package midisync

import (
	"errors"
	"fmt"
	"math"
)

// NoteEvent is one semantic trigger from the caller's cue list: a slide
// index (0-59), blank, or one of the action notes, at a time in seconds
// from the start of the backing track. Ties are allowed.
type NoteEvent struct {
	Note int
	Time float64
}

// TickEvent is one channel event in the tick domain, ready for the
// assembler. Events carry absolute ticks; the assembler turns them into
// delta times.
type TickEvent struct {
	Tick     uint32
	On       bool
	Note     uint8
	Velocity uint8
}

// BuildTimeline converts a time-ordered cue list into Note-On/Note-Off
// pairs in the tick domain. Each note is held until the next event (or
// the end of the track for the last one) and is never shorter than one
// tick, since a zero-length note is invalid in SMF semantics.
//
// Invalid input fails here, before any bytes are produced: a malformed
// file must never be emitted.
func BuildTimeline(events []NoteEvent, totalDuration, bpm float64) ([]TickEvent, error) {
	if math.IsNaN(bpm) || bpm < MinBPM || bpm > MaxBPM {
		return nil, fmt.Errorf("BPM must be between %d and %d", MinBPM, MaxBPM)
	}
	if math.IsNaN(totalDuration) || math.IsInf(totalDuration, 0) || totalDuration <= 0 {
		return nil, errors.New("duration must be a positive number of seconds")
	}
	if len(events) == 0 {
		return nil, errors.New("no notes provided")
	}
	for i, ev := range events {
		if math.IsNaN(ev.Time) || math.IsInf(ev.Time, 0) {
			return nil, fmt.Errorf("event %d: time is not a finite number", i)
		}
		if ev.Note < 0 || ev.Note > 127 {
			return nil, fmt.Errorf("event %d: note %d out of range 0-127", i, ev.Note)
		}
	}

	tickRate := bpm / 60 * TicksPerBeat
	endTick := secondsToTick(totalDuration, tickRate)

	out := make([]TickEvent, 0, len(events)*2)
	for i, ev := range events {
		on := secondsToTick(ev.Time, tickRate)
		off := endTick
		if i+1 < len(events) {
			off = secondsToTick(events[i+1].Time, tickRate)
		}
		if off <= on {
			off = on + 1
		}
		out = append(out,
			TickEvent{Tick: on, On: true, Note: uint8(ev.Note), Velocity: DefaultVelocity},
			TickEvent{Tick: off, On: false, Note: uint8(ev.Note)},
		)
	}
	return out, nil
}

// MicrosecondsPerBeat converts a BPM to the tempo meta-event unit.
func MicrosecondsPerBeat(bpm float64) uint32 {
	return uint32(math.Round(60e6 / bpm))
}

func secondsToTick(sec, tickRate float64) uint32 {
	t := math.Round(sec * tickRate)
	if t < 0 {
		t = 0
	}
	return uint32(t)
}
