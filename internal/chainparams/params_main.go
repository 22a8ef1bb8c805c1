package chainparams

import (
	"math/big"

	"github.com/nivschuman/difficulty-core/internal/algo"
	"github.com/nivschuman/difficulty-core/internal/bigint"
)

func hexLimit(hex string) bigint.Uint256 {
	v, ok := new(big.Int).SetString(hex, 16)
	if !ok {
		panic("chainparams: invalid literal pow limit hex: " + hex)
	}
	return bigint.NewUint256FromBig(v)
}

// MainNetParams reproduces the literal constants of original_source's
// CMainParams (src/chainparams.cpp), extended with the full 5-algo
// pow limit table (original_source predates SHA1D/Argon2d).
func MainNetParams() *Params {
	p := &Params{
		Name: "main",

		PowLimit: [algo.AlgoCount]bigint.Uint256{
			algo.AlgoPOS:              hexLimit("00000fffff000000000000000000000000000000000000000000000000000000"),
			algo.AlgoPowQuark:         hexLimit("0000ffff00000000000000000000000000000000000000000000000000000000"),
			algo.AlgoPowScryptSquared: hexLimit("001fffff00000000000000000000000000000000000000000000000000000000"),
			algo.AlgoPowSHA1D:         hexLimit("000000ffff000000000000000000000000000000000000000000000000000000"),
			algo.AlgoPowArgon2D:       hexLimit("0000ffff00000000000000000000000000000000000000000000000000000000"),
		},

		PowTargetTimespan: 2 * 60 * 60,
		PowTargetSpacing:  80,

		MandatoryUpgradeBlock: [2]uint32{1030000, 1450000},
		UpgradeBlockVersion:   [2]uint32{8, 9},

		PowAllowMinDifficultyBlocks: true,
		PowNoRetargeting:            false,

		MinerConfirmationWindow: 7 * 24 * 60 * 60 / 80,

		MessageStart: [4]byte{0xb3, 0x07, 0x9a, 0x1e},
		DefaultPort:  11957,
		Bech32HRP:    "sp",
		CoinType:     448,

		PubKeyPrefix: 18,
		ScriptPrefix: 59,
		SecretPrefix: 93,

		Overrides: []Override{
			{
				Height:   1035619,
				Time:     1574157019,
				Algo:     algo.AlgoPowScryptSquared,
				PrevHash: hexBE("676df2e0427b68622343a0f1fb4e683dfc587ed6d49e5566dcca2dcbb179f5d2"),
				NBits:    0x1f099ab7,
			},
			{
				Height:   1035629,
				Time:     1574158315,
				Algo:     algo.AlgoPowScryptSquared,
				PrevHash: hexBE("1787ac2c2d10543cdea74c15f1cbbdd95988eeea420cf55c5f50890c208f4f14"),
				NBits:    0x1f0382e8,
			},
		},

		Checkpoints: map[uint32]bigint.Uint256{
			0:      hexBE("f4bbfc518aa3622dbeb8d2818a606b82c2b8b1ac2f28553ebdb6fc04d7abaccf"),
			50000:  hexBE("525c080ed904eeaaf00ac0c088c6cd0ceabe3918bebbd80ec2ed494939077965"),
			100000: hexBE("9c8f67b0d656a451250b1f4e1fca9980e23ae5eb2d70e0798b76ea4c30e63bad"),
			500000: hexBE("8c9974c78873ca6f3636c096007b90a3d23ed6f79b645a6d3e83d875c90b79f5"),
		},
	}

	return p
}

// mustHash decodes a hex block-hash literal, written
// most-significant-byte first as uint256S() literals are in C++ source,
// and returns its bytes reversed into little-endian order, ready for
// Uint256FromBytesLE.
func mustHash(hex string) []byte {
	b := make([]byte, len(hex)/2)
	for i := range b {
		var v int
		for j := 0; j < 2; j++ {
			c := hex[i*2+j]
			v <<= 4
			switch {
			case c >= '0' && c <= '9':
				v |= int(c - '0')
			case c >= 'a' && c <= 'f':
				v |= int(c-'a') + 10
			case c >= 'A' && c <= 'F':
				v |= int(c-'A') + 10
			}
		}
		b[i] = byte(v)
	}
	// reverse: the literal is written most-significant-byte first.
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return b
}

func hexBE(hex string) bigint.Uint256 {
	return bigint.Uint256FromBytesLE(mustHash(hex))
}
