// Package midisync encodes a presentation's cue timeline into a Type-0
// Standard MIDI File that a DAW can play alongside a backing track, and
// recovers the embedded item payload from such a file.
package midisync

// Tick resolution of every file we write. The builder, assembler and
// parser all assume this value; it is baked into the MThd chunk.
const TicksPerBeat = 480

// Note zones on channel 0. The zones never overlap.
const (
	MaxSlideNote = 59 // 0-59 trigger the slide at that index

	NoteBlank    = 60
	NoteActivate = 61
	NotePause    = 62
	NoteStop     = 63
	NoteLoopOn   = 64
	NoteLoopOff  = 65

	IdentityBase = 96 // 96-127 carry the identity fingerprint
)

// Identity hash space: each of the two fingerprint notes encodes one of
// 32 pitches x 127 velocities = 4064 values, order-normalized.
const (
	identityPartSpan = 32 * 127
	HashSpace        = identityPartSpan * identityPartSpan
)

// Identity note scheduling inside the track. The lead keeps the
// item-type CC ahead of the fingerprint (simultaneous events have no
// ordering guarantee in a DAW); the gap is an ordering hint only and
// decode never depends on it.
const (
	identityLeadTicks = 2
	identityGapTicks  = 2
)

const (
	MinBPM = 4
	MaxBPM = 999
)

// DefaultVelocity is used for every cue Note-On.
const DefaultVelocity = 100

// ccItemType is the controller number carrying the item type.
const ccItemType = 3

// payloadPrefix marks our text meta-event among arbitrary SMF text.
const payloadPrefix = "SOLUCAST:"

// SMF status and meta bytes.
const (
	statusNoteOff = 0x80
	statusNoteOn  = 0x90
	statusCC      = 0xB0

	metaStatus = 0xFF
	metaText   = 0x01
	metaTempo  = 0x51
	metaEOT    = 0x2F

	sysexStart  = 0xF0
	sysexEscape = 0xF7
)

// ItemType tags what kind of presentation item a file belongs to.
// Song is the default and is omitted from the output entirely, keeping
// files byte-identical to ones generated before item-type tagging.
type ItemType uint8

const (
	ItemSong ItemType = iota
	ItemBible
	ItemPrayer
	ItemAnnouncement
)

func (t ItemType) String() string {
	switch t {
	case ItemSong:
		return "song"
	case ItemBible:
		return "bible"
	case ItemPrayer:
		return "prayer"
	case ItemAnnouncement:
		return "announcement"
	}
	return "unknown"
}
