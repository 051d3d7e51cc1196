package midisync

import "hash/fnv"

// IdentityNote is one half of the two-note fingerprint embedded in a
// sync file. Pitch is always in the identity zone (96-127) and velocity
// in 1-127 (velocity 0 would read as a Note-Off).
type IdentityNote struct {
	Pitch    uint8
	Velocity uint8
}

// IdentityPair is the two notes that jointly encode one hash. The pair
// decodes to the same hash in either order: the consuming DAW gives no
// ordering guarantee for simultaneous events, so the arithmetic is
// normalized over min/max of the two parts.
type IdentityPair [2]IdentityNote

// HashKey fingerprints a canonical item key. FNV-1a over the UTF-8
// bytes, reduced into the hash space and order-normalized so that
// DecodeIdentity(EncodeIdentity(h)) == h regardless of note order.
func HashKey(key string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(key))
	v := h.Sum32() % HashSpace

	a := v / identityPartSpan
	b := v % identityPartSpan
	if a > b {
		a, b = b, a
	}
	return a*identityPartSpan + b
}

// EncodeIdentity splits a hash into its two note descriptors.
func EncodeIdentity(hash uint32) IdentityPair {
	return IdentityPair{
		partToNote(hash / identityPartSpan),
		partToNote(hash % identityPartSpan),
	}
}

// DecodeIdentity reconstructs the hash from two identity notes, in
// whichever order they arrived.
func DecodeIdentity(a, b IdentityNote) uint32 {
	pa := noteToPart(a)
	pb := noteToPart(b)
	if pa > pb {
		pa, pb = pb, pa
	}
	return pa*identityPartSpan + pb
}

// IsIdentityNote reports whether a pitch falls in the identity zone.
func IsIdentityNote(pitch uint8) bool {
	return pitch >= IdentityBase && pitch <= 127
}

func partToNote(part uint32) IdentityNote {
	return IdentityNote{
		Pitch:    uint8(IdentityBase + part/127),
		Velocity: uint8(part%127 + 1),
	}
}

func noteToPart(n IdentityNote) uint32 {
	return (uint32(n.Pitch)-IdentityBase)*127 + uint32(n.Velocity) - 1
}
