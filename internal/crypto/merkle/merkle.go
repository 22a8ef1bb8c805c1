// Package merkle computes the merkle root over a list of hashable
// leaves (double-SHA256 internal nodes), the single piece of this
// core's own teacher carryover actually exercised outside its own
// package: genesis block construction.
package merkle

import (
	"github.com/nivschuman/difficulty-core/internal/crypto/hash"
)

func CalculateMerkleRoot(hashables []hash.Hashable) []byte {
	hashes := getHashes(hashables)
	for len(hashes) > 1 {
		var newLevel [][]byte
		if len(hashes)%2 != 0 {
			hashes = append(hashes, hashes[len(hashes)-1])
		}

		for i := 0; i < len(hashes); i += 2 {
			newLevel = append(newLevel, hashPair(hashes[i], hashes[i+1]))
		}

		hashes = newLevel
	}

	return hashes[0]
}

func getHashes(hashables []hash.Hashable) [][]byte {
	var hashes [][]byte
	for _, item := range hashables {
		hashes = append(hashes, item.GetHash())
	}
	return hashes
}

func hashPair(left []byte, right []byte) []byte {
	combined := append(append([]byte{}, left...), right...)
	return hash.HashBytesD(combined)
}
