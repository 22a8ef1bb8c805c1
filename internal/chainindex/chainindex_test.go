package chainindex_test

import (
	"testing"

	"github.com/nivschuman/difficulty-core/internal/algo"
	"github.com/nivschuman/difficulty-core/internal/chainindex"
)

// chain builds a linked list of n nodes, node[0] is genesis (Prev == nil).
// versions[i] and nonces[i] control each node's PoS/algo classification.
func chain(versions []uint32, nonces []uint32) []*chainindex.Node {
	nodes := make([]*chainindex.Node, len(versions))
	for i := range versions {
		nodes[i] = &chainindex.Node{Height: uint32(i), Version: versions[i], Nonce: nonces[i]}
		if i > 0 {
			nodes[i].Prev = nodes[i-1]
		}
	}
	return nodes
}

func TestLastOfKindStopsAtGenesis(t *testing.T) {
	posVersion := algo.CurrentVersion | algo.GetVersionForAlgo(algo.AlgoPOS)
	powVersion := algo.CurrentVersion | algo.GetVersionForAlgo(algo.AlgoPowQuark)

	// genesis, pow, pow, pow -- looking for PoS never finds one and must
	// stop at genesis instead of walking past it (Prev == nil guard).
	nodes := chain([]uint32{powVersion, powVersion, powVersion, powVersion}, []uint32{1, 1, 1, 1})

	result := chainindex.LastOfKind(nodes[3], true)
	if result != nodes[0] {
		t.Fatalf("expected walk to terminate at genesis, got height %d", result.Height)
	}

	_ = posVersion
}

func TestLastOfKindFindsMatch(t *testing.T) {
	posVersion := algo.CurrentVersion | algo.GetVersionForAlgo(algo.AlgoPOS)
	powVersion := algo.CurrentVersion | algo.GetVersionForAlgo(algo.AlgoPowQuark)

	nodes := chain([]uint32{powVersion, posVersion, powVersion, posVersion}, []uint32{1, 0, 1, 0})

	result := chainindex.LastOfKind(nodes[3], true)
	if result != nodes[3] {
		t.Fatalf("tip itself is PoS, expected immediate match, got height %d", result.Height)
	}

	result = chainindex.LastOfKind(nodes[2], true)
	if result != nodes[1] {
		t.Fatalf("expected height 1, got height %d", result.Height)
	}
}

func TestLastOfAlgoFiltersByTag(t *testing.T) {
	quark := algo.CurrentVersion | algo.GetVersionForAlgo(algo.AlgoPowQuark)
	scrypt := algo.CurrentVersion | algo.GetVersionForAlgo(algo.AlgoPowScryptSquared)

	nodes := chain([]uint32{quark, scrypt, scrypt, quark}, []uint32{1, 1, 1, 1})

	result := chainindex.LastOfAlgo(nodes[3], algo.AlgoPowQuark)
	if result != nodes[3] {
		t.Fatalf("tip matches algo, expected immediate return")
	}

	result = chainindex.LastOfAlgo(nodes[2], algo.AlgoPowQuark)
	if result != nodes[0] {
		t.Fatalf("expected walk back to height 0 (only quark predecessor), got height %d", result.Height)
	}
}

func TestBuildLocatorIncludesTipAndGenesis(t *testing.T) {
	powVersion := algo.CurrentVersion | algo.GetVersionForAlgo(algo.AlgoPowQuark)
	versions := make([]uint32, 30)
	nonces := make([]uint32, 30)
	for i := range versions {
		versions[i] = powVersion
		nonces[i] = 1
	}
	nodes := chain(versions, nonces)

	loc := chainindex.BuildLocator(nodes[len(nodes)-1])
	hashes := loc.Hashes()

	if loc.Len() == 0 {
		t.Fatalf("expected nonempty locator")
	}
	if hashes[0].Cmp(nodes[len(nodes)-1].BlockHash) != 0 {
		t.Fatalf("expected first locator entry to be the tip")
	}
}
