package midisync

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
)

// Assemble serializes a Type-0 SMF from a tick-domain event list. The
// track is built in one strictly ordered pass:
//
//  1. tempo meta-event at delta 0
//  2. payload text meta-event at delta 0 (if a payload is present)
//  3. item-type CC at delta 0 (omitted for ItemSong, keeping files
//     byte-compatible with ones that predate item-type tagging)
//  4. identity Note-Ons a couple of ticks in, so the CC is observed
//     before them
//  5. all cue events in chronological tick order
//  6. identity Note-Offs, then End-of-Track
//
// The byte layout is load-bearing: commercial DAWs and ParsePayload
// both depend on it.
func Assemble(events []TickEvent, tempoMicros uint32, identity *IdentityPair, payload any, itemType ItemType) ([]byte, error) {
	var payloadText []byte
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode payload: %w", err)
		}
		payloadText = append([]byte(payloadPrefix), data...)
	}

	track := make([]byte, 0, 32+len(payloadText)+len(events)*8)

	// Tempo: FF 51 03 + 24-bit microseconds per beat.
	track = AppendVLQ(track, 0)
	track = append(track, metaStatus, metaTempo, 3,
		byte(tempoMicros>>16), byte(tempoMicros>>8), byte(tempoMicros))

	// Payload rides in a text meta-event; generic MIDI readers skip it
	// and the file stays a valid SMF.
	if payloadText != nil {
		track = AppendVLQ(track, 0)
		track = append(track, metaStatus, metaText)
		track = AppendVLQ(track, int64(len(payloadText)))
		track = append(track, payloadText...)
	}

	if itemType > 0 {
		track = AppendVLQ(track, 0)
		track = append(track, statusCC, ccItemType, byte(itemType))
	}

	// cursor is the absolute tick of the last emitted event; it only
	// ever advances.
	var cursor uint32
	if identity != nil {
		track = AppendVLQ(track, identityLeadTicks)
		track = append(track, statusNoteOn, identity[0].Pitch, identity[0].Velocity)
		track = AppendVLQ(track, identityGapTicks)
		track = append(track, statusNoteOn, identity[1].Pitch, identity[1].Velocity)
		cursor = identityLeadTicks + identityGapTicks
	}

	for _, ev := range events {
		var delta uint32
		if ev.Tick > cursor {
			delta = ev.Tick - cursor
		}
		track = AppendVLQ(track, int64(delta))
		cursor += delta

		if ev.On {
			track = append(track, statusNoteOn, ev.Note, ev.Velocity)
		} else {
			track = append(track, statusNoteOff, ev.Note, 0)
		}
	}

	// Identity notes span the whole file; close them at the end.
	if identity != nil {
		track = AppendVLQ(track, 0)
		track = append(track, statusNoteOff, identity[0].Pitch, 0)
		track = AppendVLQ(track, 0)
		track = append(track, statusNoteOff, identity[1].Pitch, 0)
	}

	track = AppendVLQ(track, 0)
	track = append(track, metaStatus, metaEOT, 0)

	out := make([]byte, 0, 14+8+len(track))
	out = append(out, "MThd"...)
	out = binary.BigEndian.AppendUint32(out, 6)
	out = binary.BigEndian.AppendUint16(out, 0) // format 0
	out = binary.BigEndian.AppendUint16(out, 1) // one track
	out = binary.BigEndian.AppendUint16(out, TicksPerBeat)
	out = append(out, "MTrk"...)
	out = binary.BigEndian.AppendUint32(out, uint32(len(track)))
	out = append(out, track...)
	return out, nil
}
