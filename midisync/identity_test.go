package midisync

import "testing"

func TestHashKeyDeterministic(t *testing.T) {
	keys := []string{
		"",
		"amazing grace how sweet",
		"גדול אדונינו ומהולל מאוד",
		"bible john 3 16",
	}
	for _, k := range keys {
		if HashKey(k) != HashKey(k) {
			t.Errorf("HashKey(%q) not deterministic", k)
		}
		if HashKey(k) >= HashSpace {
			t.Errorf("HashKey(%q) = %d outside hash space", k, HashKey(k))
		}
	}

	// FNV-1a offset basis 0x811c9dc5 reduced mod 4064^2, already
	// canonical (621 <= 3941).
	if got := HashKey(""); got != 2527685 {
		t.Errorf("HashKey(\"\") = %d, want 2527685", got)
	}
}

func TestIdentityRoundTrip(t *testing.T) {
	keys := []string{
		"amazing grace how sweet",
		"how great thou art o lord",
		"x",
		"prayer our father",
		"10,000 reasons bless the",
	}
	for _, k := range keys {
		h := HashKey(k)
		pair := EncodeIdentity(h)

		if got := DecodeIdentity(pair[0], pair[1]); got != h {
			t.Errorf("decode(encode(%d)) = %d", h, got)
		}
		// The DAW may hand the two simultaneous notes back in either
		// order; both must decode identically.
		if got := DecodeIdentity(pair[1], pair[0]); got != h {
			t.Errorf("swapped decode(encode(%d)) = %d", h, got)
		}
	}
}

func TestEncodeIdentityNoteRanges(t *testing.T) {
	for h := uint32(0); h < HashSpace; h += 1013 {
		pair := EncodeIdentity(h)
		for _, n := range pair {
			if n.Pitch < IdentityBase || n.Pitch > 127 {
				t.Fatalf("hash %d: pitch %d outside [96,127]", h, n.Pitch)
			}
			if n.Velocity < 1 || n.Velocity > 127 {
				t.Fatalf("hash %d: velocity %d outside [1,127]", h, n.Velocity)
			}
		}
	}
	// Extremes of the space.
	for _, h := range []uint32{0, HashSpace - 1} {
		pair := EncodeIdentity(h)
		if pair[0].Pitch < IdentityBase || pair[1].Pitch > 127 {
			t.Errorf("hash %d: pair %v out of zone", h, pair)
		}
	}
}

func TestSongKeyNormalization(t *testing.T) {
	// Two independently constructed items with different database IDs
	// but the same title and leading lyric must produce the same key.
	a := SongKey("  Amazing   GRACE ", []string{"", "How sweet the sound"})
	b := SongKey("Amazing Grace", []string{"how   SWEET the sound of it"})
	if a != b {
		t.Errorf("keys differ: %q vs %q", a, b)
	}
	if a != "amazing grace how sweet" {
		t.Errorf("SongKey = %q, want %q", a, "amazing grace how sweet")
	}

	if got := SongKey("Title Only", nil); got != "title only" {
		t.Errorf("SongKey without slides = %q", got)
	}
	if got := SongKey("One", []string{"word"}); got != "one word" {
		t.Errorf("SongKey single-word slide = %q", got)
	}
}

func TestItemKey(t *testing.T) {
	if got := ItemKey("Bible", "John", "", " 3 ", "16"); got != "bible john 3 16" {
		t.Errorf("ItemKey = %q", got)
	}
}

func TestIsIdentityNote(t *testing.T) {
	if IsIdentityNote(95) || !IsIdentityNote(96) || !IsIdentityNote(127) || IsIdentityNote(200) {
		t.Error("identity zone boundaries wrong")
	}
}
