package midisync

import (
	"bytes"
	"encoding/binary"
	"encoding/json"

	"github.com/shilo-maker/solupresenter-sub006/debug"
)

// ParsePayload scans an arbitrary byte buffer for SMF structure and
// extracts the embedded item payload. The input may be foreign or
// corrupt (the user can point the importer at any file), so every
// structural anomaly resolves to nil; this function never panics and
// never mutates or retains buf.
func ParsePayload(buf []byte) any {
	track := findTrack(buf)
	if track == nil {
		return nil
	}

	var payload any
	walkTrack(track, func(ev trackEvent) bool {
		if ev.status != metaStatus || ev.meta != metaText {
			return true
		}
		if !bytes.HasPrefix(ev.data, []byte(payloadPrefix)) {
			return true
		}
		if err := json.Unmarshal(ev.data[len(payloadPrefix):], &payload); err != nil {
			debug.Log("parse", "payload meta-event with unparsable JSON: %v", err)
			payload = nil
		}
		return false
	})
	return payload
}

// ParseIdentity recovers the identity hash from the two fingerprint
// Note-Ons, in whichever order they appear. It reports false when the
// buffer is not a sync file (or carries no fingerprint).
func ParseIdentity(buf []byte) (uint32, bool) {
	track := findTrack(buf)
	if track == nil {
		return 0, false
	}

	var notes []IdentityNote
	walkTrack(track, func(ev trackEvent) bool {
		if ev.status&0xf0 == statusNoteOn && len(ev.data) == 2 &&
			ev.data[1] > 0 && IsIdentityNote(ev.data[0]) {
			notes = append(notes, IdentityNote{Pitch: ev.data[0], Velocity: ev.data[1]})
			if len(notes) == 2 {
				return false
			}
		}
		return true
	})
	if len(notes) != 2 {
		return 0, false
	}
	return DecodeIdentity(notes[0], notes[1]), true
}

// findTrack locates the first MTrk chunk: verify the MThd magic, skip
// the fixed 14-byte header, then hop chunks by their stated length. A
// truncated final chunk yields whatever bytes remain.
func findTrack(buf []byte) []byte {
	if len(buf) < 14 || string(buf[0:4]) != "MThd" {
		return nil
	}
	off := 14
	for off+8 <= len(buf) {
		length := int(binary.BigEndian.Uint32(buf[off+4 : off+8]))
		if length < 0 {
			return nil
		}
		body := off + 8
		if string(buf[off:off+4]) == "MTrk" {
			end := body + length
			if end > len(buf) || end < body {
				end = len(buf)
			}
			return buf[body:end]
		}
		next := body + length
		if next <= off {
			return nil
		}
		off = next
	}
	return nil
}

// trackEvent is one decoded track event. For channel messages, status
// includes the channel nibble and data holds the data bytes; for meta
// events, meta holds the type and data the content.
type trackEvent struct {
	delta  uint32
	status byte
	meta   byte
	data   []byte
}

// walkTrack steps through a track chunk event by event, honoring MIDI's
// running-status compression (without it the byte stream desyncs). The
// visitor returns false to stop; the walk also stops at End-of-Track,
// at the first byte it cannot make sense of, or at the end of the
// buffer — whichever comes first.
func walkTrack(track []byte, visit func(trackEvent) bool) {
	off := 0
	var running byte

	for off < len(track) {
		delta, n := DecodeVLQ(track, off)
		off += n
		if off >= len(track) {
			return
		}

		b := track[off]
		switch {
		case b == metaStatus:
			if off+1 >= len(track) {
				return
			}
			typ := track[off+1]
			length, n := DecodeVLQ(track, off+2)
			body := off + 2 + n
			end := body + int(length)
			if end > len(track) || end < body {
				end = len(track)
			}
			if !visit(trackEvent{delta: delta, status: metaStatus, meta: typ, data: track[body:end]}) {
				return
			}
			if typ == metaEOT {
				return
			}
			off = end

		case b == sysexStart || b == sysexEscape:
			length, n := DecodeVLQ(track, off+1)
			end := off + 1 + n + int(length)
			if end > len(track) || end < off {
				return
			}
			off = end

		case b >= 0x80:
			dlen := channelDataLen(b)
			if dlen == 0 {
				// System message inside a track chunk: not SMF.
				return
			}
			running = b
			end := off + 1 + dlen
			if end > len(track) {
				return
			}
			if !visit(trackEvent{delta: delta, status: b, data: track[off+1 : end]}) {
				return
			}
			off = end

		default:
			// Data byte under running status.
			if running == 0 {
				return
			}
			dlen := channelDataLen(running)
			end := off + dlen
			if end > len(track) {
				return
			}
			if !visit(trackEvent{delta: delta, status: running, data: track[off:end]}) {
				return
			}
			off = end
		}
	}
}

// channelDataLen returns the data-byte count for a channel status, or 0
// for statuses that are not channel messages.
func channelDataLen(status byte) int {
	switch status & 0xf0 {
	case 0xc0, 0xd0: // program change, channel pressure
		return 1
	case 0x80, 0x90, 0xa0, 0xb0, 0xe0:
		return 2
	}
	return 0
}
