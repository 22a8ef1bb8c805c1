package chainparams

import (
	"github.com/nivschuman/difficulty-core/internal/algo"
	"github.com/nivschuman/difficulty-core/internal/bigint"
)

// TestNetParams reproduces the literal constants of original_source's
// CTestNetParams.
func TestNetParams() *Params {
	return &Params{
		Name: "test",

		PowLimit: [algo.AlgoCount]bigint.Uint256{
			algo.AlgoPOS:              hexLimit("000000ffff000000000000000000000000000000000000000000000000000000"),
			algo.AlgoPowQuark:         hexLimit("000000ffff000000000000000000000000000000000000000000000000000000"),
			algo.AlgoPowScryptSquared: hexLimit("001fffff00000000000000000000000000000000000000000000000000000000"),
			algo.AlgoPowSHA1D:         hexLimit("000000ffff000000000000000000000000000000000000000000000000000000"),
			algo.AlgoPowArgon2D:       hexLimit("0000ffff00000000000000000000000000000000000000000000000000000000"),
		},

		PowTargetTimespan: 2 * 60 * 60,
		PowTargetSpacing:  64,

		MandatoryUpgradeBlock: [2]uint32{1030000, 1450000},
		UpgradeBlockVersion:   [2]uint32{8, 9},

		PowAllowMinDifficultyBlocks: true,
		PowNoRetargeting:            false,

		MinerConfirmationWindow: 7 * 24 * 60 * 60 / 64,

		MessageStart: [4]byte{0xf1, 0xe3, 0xdc, 0xc6},
		DefaultPort:  21957,
		Bech32HRP:    "ts",
		CoinType:     1,

		PubKeyPrefix: 139,
		ScriptPrefix: 19,
		SecretPrefix: 239,

		Checkpoints: map[uint32]bigint.Uint256{
			0: hexBE("16e0228f2712c94c10ec590a98a416a664bdf42ebd10a6ffe563d817ee19b6b9"),
		},
	}
}
