// Package chainindex implements the back-linked, in-memory block index
// the retargeter walks: an arena of immutable nodes connected only by a
// prev pointer. It is grounded on original_source's
// GetLastBlockIndex / GetLastBlockIndexForAlgo (src/pow.cpp) and on the
// corpus's own back-pointer traversal idiom in
// internal/structures/block_locator.go.
package chainindex

import (
	"github.com/nivschuman/difficulty-core/internal/algo"
	"github.com/nivschuman/difficulty-core/internal/bigint"
)

// Node is one entry in the back-linked chain index. Nodes are owned by
// whichever component builds the chain (an external block-index store,
// or a test fixture); this package only reads them.
type Node struct {
	Prev      *Node
	Height    uint32
	Version   uint32
	Nonce     uint32
	NBits     uint32
	Time      uint32
	BlockHash bigint.Uint256
}

// IsProofOfStake mirrors algo.Header.IsProofOfStake for an index node.
func (n *Node) IsProofOfStake() bool {
	h := algo.Header{Version: n.Version, Nonce: n.Nonce}
	return h.IsProofOfStake()
}

// Algo mirrors algo.GetAlgo for an index node.
func (n *Node) Algo() int {
	return algo.GetAlgo(n.Version)
}

// LastOfKind walks start.Prev while both the current node and its
// predecessor exist and the current node's PoS/PoW kind does not match
// wantPOS. It never walks past the genesis node (Prev == nil).
func LastOfKind(start *Node, wantPOS bool) *Node {
	n := start
	for n != nil && n.Prev != nil && n.IsProofOfStake() != wantPOS {
		n = n.Prev
	}
	return n
}

// LastOfAlgo walks start.Prev while both the current node and its
// predecessor exist and the current node's algo tag does not match want.
func LastOfAlgo(start *Node, want int) *Node {
	n := start
	for n != nil && n.Prev != nil && n.Algo() != want {
		n = n.Prev
	}
	return n
}

// Locator builds an exponentially-spaced list of ancestor hashes, in the
// same shape as the corpus's BlockLocator (internal/structures/block_locator.go),
// useful for describing a chain position without walking every block.
type Locator struct {
	hashes []bigint.Uint256
}

// BuildLocator walks back from tip doubling the stride after the first
// ten entries, terminating at genesis.
func BuildLocator(tip *Node) *Locator {
	loc := &Locator{}
	step := 1
	n := tip
	count := 0
	for n != nil {
		loc.hashes = append(loc.hashes, n.BlockHash)
		count++
		if count >= 10 {
			step *= 2
		}
		for i := 0; i < step && n != nil; i++ {
			n = n.Prev
		}
	}
	return loc
}

func (l *Locator) Hashes() []bigint.Uint256 {
	out := make([]bigint.Uint256, len(l.hashes))
	copy(out, l.hashes)
	return out
}

func (l *Locator) Len() int { return len(l.hashes) }
