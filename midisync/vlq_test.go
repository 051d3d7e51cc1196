package midisync

import (
	"bytes"
	"testing"
)

func TestEncodeVLQKnownValues(t *testing.T) {
	// Reference encodings from the SMF specification.
	cases := []struct {
		value int64
		want  []byte
	}{
		{0x00, []byte{0x00}},
		{0x40, []byte{0x40}},
		{0x7f, []byte{0x7f}},
		{0x80, []byte{0x81, 0x00}},
		{0x2000, []byte{0xc0, 0x00}},
		{0x3fff, []byte{0xff, 0x7f}},
		{0x4000, []byte{0x81, 0x80, 0x00}},
		{0x100000, []byte{0xc0, 0x80, 0x00}},
		{0x1fffff, []byte{0xff, 0xff, 0x7f}},
		{0x200000, []byte{0x81, 0x80, 0x80, 0x00}},
		{0x0fffffff, []byte{0xff, 0xff, 0xff, 0x7f}},
	}
	for _, c := range cases {
		got := EncodeVLQ(c.value)
		if !bytes.Equal(got, c.want) {
			t.Errorf("EncodeVLQ(%#x) = % x, want % x", c.value, got, c.want)
		}
	}
}

func TestEncodeVLQClampsNegative(t *testing.T) {
	if got := EncodeVLQ(-5); !bytes.Equal(got, []byte{0x00}) {
		t.Errorf("EncodeVLQ(-5) = % x, want 00", got)
	}
}

func TestVLQRoundTrip(t *testing.T) {
	for v := int64(0); v <= 1<<28; v += 997 {
		enc := EncodeVLQ(v)
		got, n := DecodeVLQ(enc, 0)
		if int64(got) != v || n != len(enc) {
			t.Fatalf("round trip %d: got (%d, %d), want (%d, %d)", v, got, n, v, len(enc))
		}
	}
}

func TestDecodeVLQOffset(t *testing.T) {
	buf := []byte{0xaa, 0xbb, 0x81, 0x00, 0x7f}
	v, n := DecodeVLQ(buf, 2)
	if v != 0x80 || n != 2 {
		t.Errorf("DecodeVLQ at offset 2 = (%d, %d), want (128, 2)", v, n)
	}
}

func TestDecodeVLQTruncated(t *testing.T) {
	// A lone continuation byte: partial value, one byte consumed, no
	// failure.
	v, n := DecodeVLQ([]byte{0x81}, 0)
	if v != 1 || n != 1 {
		t.Errorf("DecodeVLQ(81) = (%d, %d), want (1, 1)", v, n)
	}

	v, n = DecodeVLQ(nil, 0)
	if v != 0 || n != 0 {
		t.Errorf("DecodeVLQ(empty) = (%d, %d), want (0, 0)", v, n)
	}

	v, n = DecodeVLQ([]byte{0x40}, 5)
	if v != 0 || n != 0 {
		t.Errorf("DecodeVLQ past end = (%d, %d), want (0, 0)", v, n)
	}
}
