package bigint_test

import (
	"math/big"
	"testing"

	"github.com/nivschuman/difficulty-core/internal/bigint"
)

func TestDecodeCompact(t *testing.T) {
	value, negative, overflow := bigint.DecodeCompact(0x1d00ffff)

	expected := new(big.Int)
	expected.SetString("00000000ffff0000000000000000000000000000000000000000000000000000", 16)

	if value.Big().Cmp(expected) != 0 {
		t.Fatalf("expected %s, got %s", expected.Text(16), value.String())
	}
	if negative {
		t.Fatalf("expected not negative")
	}
	if overflow {
		t.Fatalf("expected not overflow")
	}
}

func TestDecodeCompactOverflowThresholds(t *testing.T) {
	tests := []struct {
		name     string
		nBits    uint32
		overflow bool
	}{
		{"size 34 with mantissa is fine", 34<<24 | 0x000001, false},
		{"size 35 overflows", 35<<24 | 0x000001, true},
		{"size 34 mantissa 0x100 overflows", 34<<24 | 0x000100, true},
		{"size 33 mantissa 0xff is fine", 33<<24 | 0x0000ff, false},
		{"size 33 mantissa 0x10000 overflows", 33<<24 | 0x010000, true},
		{"size 32 mantissa 0xffff is fine", 32<<24 | 0x00ffff, false},
		{"zero mantissa never overflows", 40<<24 | 0x000000, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, overflow := bigint.DecodeCompact(tt.nBits)
			if overflow != tt.overflow {
				t.Fatalf("nBits=%08x: expected overflow=%v, got %v", tt.nBits, tt.overflow, overflow)
			}
		})
	}
}

func TestDecodeCompactNegative(t *testing.T) {
	_, negative, _ := bigint.DecodeCompact(0x01800001)
	if !negative {
		t.Fatalf("expected negative flag set when sign bit is set and mantissa is nonzero")
	}

	_, negative, _ = bigint.DecodeCompact(0x01800000)
	if negative {
		t.Fatalf("sign bit with zero mantissa is not negative")
	}
}

func TestEncodeCompactTruncRoundTrip(t *testing.T) {
	tests := []uint32{0x1d00ffff, 0x1c0fffff, 0x1e0fffff, 0x1f00ffff, 0x01010000, 0x03008000}

	for _, nBits := range tests {
		value, _, _ := bigint.DecodeCompact(nBits)
		got := bigint.EncodeCompactTrunc(value)
		if got != nBits {
			t.Fatalf("round trip mismatch: nBits=%08x decoded=%s encoded=%08x", nBits, value.String(), got)
		}
	}
}

func TestEncodeCompactTruncNeverExceedsInput(t *testing.T) {
	values := []*big.Int{
		big.NewInt(0),
		big.NewInt(1),
		big.NewInt(0x123456),
		new(big.Int).Lsh(big.NewInt(0xffffff), 200),
	}

	for _, v := range values {
		u := bigint.NewUint256FromBig(v)
		nBits := bigint.EncodeCompactTrunc(u)
		decoded, neg, overflow := bigint.DecodeCompact(nBits)
		if neg || overflow {
			t.Fatalf("unexpected neg/overflow for value %s", v.Text(16))
		}
		if decoded.Big().Cmp(v) > 0 {
			t.Fatalf("decoded value %s exceeds original %s", decoded.String(), v.Text(16))
		}
	}
}

func TestEncodeCompactRoundedTiesToEven(t *testing.T) {
	// A mantissa that is exactly half way between two representable
	// values at the truncation boundary rounds to the even candidate.
	// 0xffff80 is encoded with size 4, keeping mantissa 0xffff and
	// discarding one byte (0x80), exactly half of 0x100: the low bit of
	// 0xffff is odd, so it rounds up to the even mantissa 0x010000.
	shift := uint(8)
	base := big.NewInt(0x00ffff)
	base.Lsh(base, shift)
	base.Or(base, big.NewInt(0x80)) // exact half

	v := bigint.NewUint256FromBig(base)
	nBits := bigint.EncodeCompactRounded(v)

	decoded, _, _ := bigint.DecodeCompact(nBits)
	roundedToEven := new(big.Int).Lsh(big.NewInt(0x010000), shift)
	if decoded.Big().Cmp(roundedToEven) != 0 {
		t.Fatalf("expected tie to round to even %s, got %s (input %s)", roundedToEven.Text(16), decoded.String(), base.Text(16))
	}
}

func TestEncodeCompactRoundedMinimizesError(t *testing.T) {
	// Non-tie case: rounding must pick whichever candidate is closer.
	shift := uint(8)
	base := new(big.Int).Lsh(big.NewInt(0x00ffff), shift)
	base.Or(base, big.NewInt(0xf0)) // closer to rounding up

	v := bigint.NewUint256FromBig(base)
	nBits := bigint.EncodeCompactRounded(v)
	decoded, _, _ := bigint.DecodeCompact(nBits)

	roundedUp := new(big.Int).Add(base, new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), shift), big.NewInt(0xf0)))
	if decoded.Big().Cmp(roundedUp) != 0 {
		t.Fatalf("expected round up to %s, got %s", roundedUp.Text(16), decoded.String())
	}
}

func TestMul256x256To512AndTrim256(t *testing.T) {
	x := bigint.Uint256FromUint64(0xffffffffffffffff)
	y := bigint.Uint256FromUint64(0xffffffffffffffff)

	product := bigint.Mul256x256To512(x, y)
	trimmed, fits := product.Trim256()

	expected := new(big.Int).Mul(x.Big(), y.Big())
	if trimmed.Big().Cmp(expected) != 0 {
		t.Fatalf("expected %s, got %s", expected.Text(16), trimmed.String())
	}
	if !fits {
		t.Fatalf("small product should fit in 256 bits")
	}
}

func TestTrim256DiscardsHighBits(t *testing.T) {
	huge := new(big.Int).Lsh(big.NewInt(1), 300)
	u512 := bigint.NewUint512FromBig(huge)
	trimmed, fits := u512.Trim256()

	if fits {
		t.Fatalf("value with bits above 256 must not report fits=true")
	}
	if !trimmed.IsZero() {
		t.Fatalf("expected trimmed low 256 bits of 2^300 to be zero, got %s", trimmed.String())
	}
}

func TestWrappingMulUint32Truncates(t *testing.T) {
	// x is already at the top of the 256-bit range; multiplying by a
	// small factor must silently wrap rather than growing past 256 bits.
	almostMax := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))
	x := bigint.NewUint256FromBig(almostMax)

	wrapped := x.MulUint32(2)
	expected := new(big.Int).Mod(new(big.Int).Mul(almostMax, big.NewInt(2)), new(big.Int).Lsh(big.NewInt(1), 256))

	if wrapped.Big().Cmp(expected) != 0 {
		t.Fatalf("expected wrapped product %s, got %s", expected.Text(16), wrapped.String())
	}
}
