package midisync

// SyncFile describes one presentation item scheduled against a backing
// track. It is the caller-facing entry point: the presentation layer
// fills it in from its cue list and writes the encoded bytes to disk
// itself.
type SyncFile struct {
	Events   []NoteEvent
	Duration float64 // seconds
	BPM      float64
	ItemType ItemType
	Key      string // canonical identity key; empty skips the fingerprint
	Payload  any    // JSON-serializable; embedded verbatim, nil skips it
}

// Encode validates the cue list, builds the tick timeline, fingerprints
// the identity key and assembles the SMF buffer. It either fully
// succeeds or returns an error before producing any output.
func (f *SyncFile) Encode() ([]byte, error) {
	events, err := BuildTimeline(f.Events, f.Duration, f.BPM)
	if err != nil {
		return nil, err
	}

	var identity *IdentityPair
	if f.Key != "" {
		pair := EncodeIdentity(HashKey(f.Key))
		identity = &pair
	}

	return Assemble(events, MicrosecondsPerBeat(f.BPM), identity, f.Payload, f.ItemType)
}
