package wire_test

import (
	"bytes"
	"testing"

	"github.com/nivschuman/difficulty-core/internal/wire"
)

func TestCompactSizeRoundTrip(t *testing.T) {
	sizes := []uint64{0, 1, 0xFC, 0xFD, 0xFFFF, 0x10000, 0xFFFFFFFF, 0x100000000, 1 << 40}

	for _, size := range sizes {
		encoded, err := wire.GetCompactSizeBytes(size)
		if err != nil {
			t.Fatalf("encode(%d): %v", size, err)
		}

		got, err := wire.ReadCompactSize(bytes.NewReader(encoded))
		if err != nil {
			t.Fatalf("decode(%d): %v", size, err)
		}
		if got != size {
			t.Fatalf("round trip mismatch: got %d, want %d", got, size)
		}
	}
}

func TestCompactSizeMarkerWidths(t *testing.T) {
	cases := []struct {
		size     uint64
		wantLen  int
	}{
		{0, 1},
		{0xFC, 1},
		{0xFD, 3},
		{0xFFFF, 3},
		{0x10000, 5},
		{0xFFFFFFFF, 5},
		{0x100000000, 9},
	}

	for _, c := range cases {
		encoded, err := wire.GetCompactSizeBytes(c.size)
		if err != nil {
			t.Fatalf("encode(%d): %v", c.size, err)
		}
		if len(encoded) != c.wantLen {
			t.Fatalf("size %d: encoded length = %d, want %d", c.size, len(encoded), c.wantLen)
		}
	}
}
