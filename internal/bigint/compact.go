package bigint

import "math/big"

// DecodeCompact decodes a 32-bit "nBits" compact target into a Uint256,
// mirroring arith_uint256::SetCompact from original_source/src/pow.cpp
// and the corpus's own GetTargetFromNBits (internal/difficulty). The
// overflow/negative thresholds below are part of consensus, not
// defensive coding.
func DecodeCompact(c uint32) (value Uint256, negative bool, overflow bool) {
	size := c >> 24
	word := c & 0x007fffff
	sign := c&0x00800000 != 0

	v := big.NewInt(int64(word))
	if size <= 3 {
		v.Rsh(v, uint(8*(3-size)))
	} else {
		v.Lsh(v, uint(8*(size-3)))
	}

	negative = sign && word != 0
	overflow = word != 0 && (size > 34 || (word > 0xff && size > 33) || (word > 0xffff && size > 32))

	return NewUint256FromBig(v), negative, overflow
}

// normalizeMantissa keeps shifting a candidate mantissa right by whole
// bytes until it fits in 24 bits, bumping size to match. Rounding can
// carry a 0xffffff mantissa up to 0x1000000, one byte wider than a plain
// truncation could ever produce, so both encoders funnel through this.
func normalizeMantissa(word *big.Int, size uint32) (uint32, uint32) {
	for word.BitLen() > 24 {
		word = new(big.Int).Rsh(word, 8)
		size++
	}
	w := uint32(word.Uint64())
	if w&0x00800000 != 0 {
		w >>= 8
		size++
	}
	return size, w
}

// EncodeCompactTrunc encodes v truncating at the mantissa boundary, the
// pre-nMandatoryUpgradeBlock[1] encoding rule.
func EncodeCompactTrunc(v Uint256) uint32 {
	full := v.Big()
	bitlen := full.BitLen()
	size := uint32((bitlen + 7) / 8)

	var word *big.Int
	if size <= 3 {
		word = new(big.Int).Lsh(full, uint(8*(3-size)))
	} else {
		word = new(big.Int).Rsh(full, uint(8*(size-3)))
	}

	size, w := normalizeMantissa(word, size)
	return size<<24 | w
}

// EncodeCompactRounded encodes v with round-half-to-even at the
// truncation boundary, mandatory from nMandatoryUpgradeBlock[1] onward,
// mirroring arith_uint256::GetCompactRounded.
func EncodeCompactRounded(v Uint256) uint32 {
	full := v.Big()
	bitlen := full.BitLen()
	size := uint32((bitlen + 7) / 8)
	// A top byte with its high bit set is shifted out to keep the sign
	// bit clear, so widen size first and round at that final boundary.
	if bitlen > 0 && bitlen%8 == 0 {
		size++
	}

	var word *big.Int
	if size <= 3 {
		word = new(big.Int).Lsh(full, uint(8*(3-size)))
	} else {
		shift := uint(8 * (size - 3))
		word = new(big.Int).Rsh(full, shift)

		mask := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), shift), big.NewInt(1))
		remainder := new(big.Int).And(full, mask)
		half := new(big.Int).Lsh(big.NewInt(1), shift-1)

		cmp := remainder.Cmp(half)
		if cmp > 0 || (cmp == 0 && word.Bit(0) == 1) {
			word.Add(word, big.NewInt(1))
		}
	}

	size, w := normalizeMantissa(word, size)
	return size<<24 | w
}
