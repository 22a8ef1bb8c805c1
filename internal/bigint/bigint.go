// Package bigint implements the fixed-width unsigned integers and the
// compact ("nBits") target encoding used by difficulty retargeting.
//
// Uint256 and Uint512 are thin wrappers over math/big.Int, following the
// corpus's own choice of math/big for every big-integer need (see
// internal/database/types.BigInt). What they add over a bare *big.Int is
// the fixed-width, wraparound semantics that consensus arithmetic
// depends on: trimming to 256 bits after a 512-bit product must discard
// the high bits silently, not grow the integer.
package bigint

import "math/big"

const (
	byteWidth256 = 32
	byteWidth512 = 64
)

// Uint256 is an unsigned integer represented with at most 256 bits.
type Uint256 struct {
	v big.Int
}

// Uint512 is an unsigned integer represented with at most 512 bits.
type Uint512 struct {
	v big.Int
}

func maskTo(v *big.Int, byteWidth int) big.Int {
	if v.Sign() < 0 {
		v = new(big.Int).Set(v)
		v.Abs(v)
	}
	limit := new(big.Int).Lsh(big.NewInt(1), uint(byteWidth*8))
	if v.Cmp(limit) >= 0 {
		v = new(big.Int).Mod(v, limit)
	}
	return *v
}

// NewUint256FromBig truncates v to its low 256 bits.
func NewUint256FromBig(v *big.Int) Uint256 {
	return Uint256{v: maskTo(v, byteWidth256)}
}

// NewUint512FromBig truncates v to its low 512 bits.
func NewUint512FromBig(v *big.Int) Uint512 {
	return Uint512{v: maskTo(v, byteWidth512)}
}

// Uint256FromUint64 constructs a Uint256 from a native integer.
func Uint256FromUint64(v uint64) Uint256 {
	return Uint256{v: *new(big.Int).SetUint64(v)}
}

// Uint256FromBytesLE interprets b as a little-endian encoded integer.
func Uint256FromBytesLE(b []byte) Uint256 {
	be := make([]byte, len(b))
	for i, c := range b {
		be[len(b)-1-i] = c
	}
	return NewUint256FromBig(new(big.Int).SetBytes(be))
}

// Bytes32LE serializes x as 32 little-endian bytes.
func (x Uint256) Bytes32LE() [32]byte {
	var out [32]byte
	be := x.v.Bytes()
	for i, c := range be {
		out[len(be)-1-i] = c
	}
	return out
}

func (x Uint256) Big() *big.Int  { return new(big.Int).Set(&x.v) }
func (x Uint512) Big() *big.Int  { return new(big.Int).Set(&x.v) }
func (x Uint256) String() string { return x.v.Text(16) }
func (x Uint512) String() string { return x.v.Text(16) }

func (x Uint256) Sign() int      { return x.v.Sign() }
func (x Uint256) IsZero() bool   { return x.v.Sign() == 0 }
func (x Uint256) BitLen() int    { return x.v.BitLen() }
func (x Uint256) Cmp(y Uint256) int { return x.v.Cmp(&y.v) }

// Add returns x+y trimmed to 256 bits (used only where wraparound is the
// defined behavior; ordinary consensus additions never overflow 256 bits
// in practice but the trim keeps the type's invariant intact).
func (x Uint256) Add(y Uint256) Uint256 {
	return NewUint256FromBig(new(big.Int).Add(&x.v, &y.v))
}

func (x Uint256) Sub(y Uint256) Uint256 {
	r := new(big.Int).Sub(&x.v, &y.v)
	if r.Sign() < 0 {
		r = new(big.Int)
	}
	return NewUint256FromBig(r)
}

// DivUint32 truncates toward zero, matching arith_uint256::operator/=.
func (x Uint256) DivUint32(d uint32) Uint256 {
	if d == 0 {
		return Uint256{}
	}
	return NewUint256FromBig(new(big.Int).Div(&x.v, big.NewInt(int64(d))))
}

// MulUint32 multiplies and silently truncates to 256 bits. This is the
// legacy wraparound multiply required by the pre-upgrade Quark/Scrypt²
// retargeting regime: the on-chain history was produced by a 256-bit
// accumulator overflowing, and that overflow is now part of consensus.
func (x Uint256) MulUint32(m uint32) Uint256 {
	return NewUint256FromBig(new(big.Int).Mul(&x.v, big.NewInt(int64(m))))
}

// Mul256x256To512 computes the full 512-bit product of two 256-bit
// values. Every retargeting formula except the legacy-overflow exception
// must route its multiply through this function before dividing.
func Mul256x256To512(x, y Uint256) Uint512 {
	return NewUint512FromBig(new(big.Int).Mul(&x.v, &y.v))
}

// MulUint32To512 computes x*m without truncating to 256 bits first.
func MulUint32To512(x Uint256, m uint32) Uint512 {
	return NewUint512FromBig(new(big.Int).Mul(&x.v, big.NewInt(int64(m))))
}

// DivUint32 truncates toward zero on a 512-bit value.
func (x Uint512) DivUint32(d uint32) Uint512 {
	if d == 0 {
		return Uint512{}
	}
	return NewUint512FromBig(new(big.Int).Div(&x.v, big.NewInt(int64(d))))
}

// DivUint256 truncates toward zero on a 512-bit value by an arbitrary
// 256-bit divisor, used where a denominator does not fit a uint32 (the
// cubic ASERT approximation's 50*timespan^3).
func (x Uint512) DivUint256(d Uint256) Uint512 {
	if d.IsZero() {
		return Uint512{}
	}
	return NewUint512FromBig(new(big.Int).Div(&x.v, &d.v))
}

func (x Uint512) Cmp(y Uint512) int { return x.v.Cmp(&y.v) }

// Trim256 returns the low 256 bits of x and whether the high 256 bits
// were all zero (i.e. whether x "fit" into 256 bits without loss).
func (x Uint512) Trim256() (Uint256, bool) {
	limit := new(big.Int).Lsh(big.NewInt(1), 256)
	fits := x.v.Cmp(limit) < 0
	low := new(big.Int).Mod(&x.v, limit)
	return Uint256{v: *low}, fits
}

// Min returns the smaller of x and y.
func (x Uint256) Min(y Uint256) Uint256 {
	if x.Cmp(y) <= 0 {
		return x
	}
	return y
}
