package midisync

// AppendVLQ appends v to dst as an SMF variable-length quantity:
// base-128, most significant byte first, continuation bit 0x80 on every
// byte except the last. Negative input is clamped to zero (there is no
// such thing as a negative delta time).
func AppendVLQ(dst []byte, v int64) []byte {
	if v < 0 {
		v = 0
	}
	// Collect 7-bit groups least significant first, then reverse.
	var groups [10]byte
	n := 0
	for {
		groups[n] = byte(v & 0x7f)
		n++
		v >>= 7
		if v == 0 {
			break
		}
	}
	for i := n - 1; i >= 0; i-- {
		b := groups[i]
		if i != 0 {
			b |= 0x80
		}
		dst = append(dst, b)
	}
	return dst
}

// EncodeVLQ returns the VLQ encoding of v.
func EncodeVLQ(v int64) []byte {
	return AppendVLQ(nil, v)
}

// DecodeVLQ reads a VLQ starting at buf[offset]. It returns the decoded
// value and the number of bytes consumed. If the buffer runs out before
// a terminating byte, it returns whatever was accumulated and however
// many bytes it read; it never fails, since the parser has to tolerate
// truncated and corrupt input.
func DecodeVLQ(buf []byte, offset int) (value uint32, n int) {
	for offset+n < len(buf) {
		b := buf[offset+n]
		n++
		value = value<<7 | uint32(b&0x7f)
		if b&0x80 == 0 {
			break
		}
	}
	return value, n
}
