package store

import (
	"math/big"

	"github.com/nivschuman/difficulty-core/internal/bigint"
	"github.com/nivschuman/difficulty-core/internal/chainindex"
	db_types "github.com/nivschuman/difficulty-core/internal/database/types"
)

func hashToHex(h bigint.Uint256) string {
	b := h.Bytes32LE()
	return new(big.Int).SetBytes(b[:]).Text(16)
}

func hexToHash(s string) bigint.Uint256 {
	v, ok := new(big.Int).SetString(s, 16)
	if !ok || v.Sign() < 0 || v.BitLen() > 256 {
		return bigint.Uint256{}
	}
	b := make([]byte, 32)
	v.FillBytes(b)
	return bigint.Uint256FromBytesLE(b)
}

// nodeToNodeDB captures prevHash separately because chainindex.Node
// itself carries only a Prev pointer, not a persisted hash of it.
func nodeToNodeDB(n *chainindex.Node, prevHash bigint.Uint256, cumulativeWork db_types.BigInt) *NodeDB {
	return &NodeDB{
		BlockHash:      hashToHex(n.BlockHash),
		PrevHash:       hashToHex(prevHash),
		Height:         n.Height,
		Version:        n.Version,
		Nonce:          n.Nonce,
		NBits:          n.NBits,
		Time:           n.Time,
		CumulativeWork: cumulativeWork,
	}
}

func nodeDBToNode(row *NodeDB) *chainindex.Node {
	return &chainindex.Node{
		Height:    row.Height,
		Version:   row.Version,
		Nonce:     row.Nonce,
		NBits:     row.NBits,
		Time:      row.Time,
		BlockHash: hexToHash(row.BlockHash),
	}
}
