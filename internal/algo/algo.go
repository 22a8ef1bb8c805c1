// Package algo classifies block headers by proof algorithm and encodes
// their canonical 80-byte wire form, grounded on the corpus's own header
// model (internal/models/block.go) and original_source's
// primitives/block.h (CBlockHeader::GetAlgo / IsProofOfStake).
package algo

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/nivschuman/difficulty-core/internal/bigint"
)

// Algorithm tags. ALGO_COUNT is 5: one PoS slot plus four PoW hash
// functions. original_source predates SHA1D/Argon2d and only carries 3;
// this module implements the full 5-algo table.
const (
	AlgoPOS = iota
	AlgoPowQuark
	AlgoPowScryptSquared
	AlgoPowSHA1D
	AlgoPowArgon2D
	AlgoCount
)

// AlgoNone is returned by GetAlgo for legacy (pre-CURRENT_VERSION)
// headers, which carry no algo tag in nVersion at all.
const AlgoNone = -1

const CurrentVersion = uint32(9)

const (
	versionPOS               = 1 << 29
	versionPowQuark          = 2 << 29
	versionPowScryptSquared  = 3 << 29
	versionPowSHA1D          = 4 << 29
	versionPowArgon2D        = 5 << 29
	versionAlgoMask          = 7 << 29
	versionPowMask           = 6 << 29 // any non-POS, non-legacy algo bit pattern
)

// Header is the 80-byte block header record, independent of any PoS
// kernel or transaction content.
type Header struct {
	Version        uint32
	HashPrevBlock  bigint.Uint256
	HashMerkleRoot bigint.Uint256
	Time           uint32
	NBits          uint32
	Nonce          uint32
}

// GetAlgo extracts the 3-bit algorithm tag from nVersion. Legacy headers
// (version < CurrentVersion) carry no tag and report AlgoNone; callers
// resolve their algo via the nonce-based PoS/PoW split instead.
func GetAlgo(version uint32) int {
	if version < CurrentVersion {
		return AlgoNone
	}
	switch version & versionAlgoMask {
	case versionPOS:
		return AlgoPOS
	case versionPowQuark:
		return AlgoPowQuark
	case versionPowScryptSquared:
		return AlgoPowScryptSquared
	case versionPowSHA1D:
		return AlgoPowSHA1D
	case versionPowArgon2D:
		return AlgoPowArgon2D
	default:
		return AlgoNone
	}
}

// GetVersionForAlgo is the inverse of GetAlgo, used by block templates
// choosing which version bits to set for a given target algorithm.
func GetVersionForAlgo(a int) uint32 {
	switch a {
	case AlgoPOS:
		return versionPOS
	case AlgoPowQuark:
		return versionPowQuark
	case AlgoPowScryptSquared:
		return versionPowScryptSquared
	case AlgoPowSHA1D:
		return versionPowSHA1D
	case AlgoPowArgon2D:
		return versionPowArgon2D
	default:
		return CurrentVersion
	}
}

// IsProofOfStake mirrors CBlockHeader::IsProofOfStake: either the
// explicit PoS tag is set, or the header predates tagged versions and
// carries a zero nonce.
func (h *Header) IsProofOfStake() bool {
	if h.Version&versionAlgoMask == versionPOS {
		return true
	}
	return h.Version < CurrentVersion && h.Nonce == 0
}

// IsProofOfWork is the symmetric negation on the legacy branch plus the
// explicit PoW tag set on the new branch.
func (h *Header) IsProofOfWork() bool {
	if h.Version&versionPowMask != 0 {
		return true
	}
	return h.Version < CurrentVersion && h.Nonce != 0
}

// Algo returns GetAlgo(h.Version).
func (h *Header) Algo() int {
	return GetAlgo(h.Version)
}

// AsBytes serializes the header to its canonical 80-byte little-endian
// wire form.
func (h *Header) AsBytes() []byte {
	buf := new(bytes.Buffer)
	binary.Write(buf, binary.LittleEndian, h.Version)
	prev := h.HashPrevBlock.Bytes32LE()
	buf.Write(prev[:])
	merkle := h.HashMerkleRoot.Bytes32LE()
	buf.Write(merkle[:])
	binary.Write(buf, binary.LittleEndian, h.Time)
	binary.Write(buf, binary.LittleEndian, h.NBits)
	binary.Write(buf, binary.LittleEndian, h.Nonce)
	return buf.Bytes()
}

// HeaderFromBytes parses the canonical 80-byte wire form.
func HeaderFromBytes(b []byte) (*Header, error) {
	if len(b) != 80 {
		return nil, fmt.Errorf("algo: header must be 80 bytes, got %d", len(b))
	}

	buf := bytes.NewReader(b)
	h := &Header{}

	if err := binary.Read(buf, binary.LittleEndian, &h.Version); err != nil {
		return nil, err
	}

	prev := make([]byte, 32)
	if _, err := buf.Read(prev); err != nil {
		return nil, err
	}
	h.HashPrevBlock = bigint.Uint256FromBytesLE(prev)

	merkle := make([]byte, 32)
	if _, err := buf.Read(merkle); err != nil {
		return nil, err
	}
	h.HashMerkleRoot = bigint.Uint256FromBytesLE(merkle)

	if err := binary.Read(buf, binary.LittleEndian, &h.Time); err != nil {
		return nil, err
	}
	if err := binary.Read(buf, binary.LittleEndian, &h.NBits); err != nil {
		return nil, err
	}
	if err := binary.Read(buf, binary.LittleEndian, &h.Nonce); err != nil {
		return nil, err
	}

	return h, nil
}

// HashFunc computes a header's proof-of-work hash. The real hash
// primitives (Quark, Scrypt², SHA1D, Argon2d) are external collaborators;
// this module only defines the interface they must satisfy.
type HashFunc func(header80 [80]byte) bigint.Uint256

// NewOpaqueHashTable returns a table, indexed by algo tag, whose entries
// panic if invoked, standing in for hash primitives this module never
// implements or calls. No code in this module supplies a concrete
// implementation.
func NewOpaqueHashTable() [AlgoCount]HashFunc {
	var table [AlgoCount]HashFunc
	for i := range table {
		algoName := i
		table[i] = func(header80 [80]byte) bigint.Uint256 {
			panic(fmt.Sprintf("algo: hash primitive for algo %d is an external collaborator and was never wired", algoName))
		}
	}
	return table
}
