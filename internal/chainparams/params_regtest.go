package chainparams

import (
	"github.com/nivschuman/difficulty-core/internal/algo"
	"github.com/nivschuman/difficulty-core/internal/bigint"
)

// RegtestParams reproduces the literal constants of original_source's
// CRegTestParams: a uniform, permissive pow-limit across every algo so
// regtest mining stays cheap.
func RegtestParams() *Params {
	limit := hexLimit("7fffff0000000000000000000000000000000000000000000000000000000000")

	return &Params{
		Name: "regtest",

		PowLimit: [algo.AlgoCount]bigint.Uint256{
			algo.AlgoPOS:              limit,
			algo.AlgoPowQuark:         limit,
			algo.AlgoPowScryptSquared: limit,
			algo.AlgoPowSHA1D:         limit,
			algo.AlgoPowArgon2D:       limit,
		},

		PowTargetTimespan: 2 * 60 * 60,
		PowTargetSpacing:  32,

		MandatoryUpgradeBlock: [2]uint32{1030000, 1450000},
		UpgradeBlockVersion:   [2]uint32{8, 9},

		PowAllowMinDifficultyBlocks: true,
		PowNoRetargeting:            false,

		MinerConfirmationWindow: 24 * 60 * 60 / 32,

		MessageStart: [4]byte{0xfa, 0xbf, 0xb5, 0xda},
		DefaultPort:  18444,
		Bech32HRP:    "sprt",
		CoinType:     1,

		PubKeyPrefix: 139,
		ScriptPrefix: 19,
		SecretPrefix: 239,

		Checkpoints: map[uint32]bigint.Uint256{
			0: hexBE("bccd4c5f87de046e4cd9e222982371c0cf0ad8b5fcfa6753be472f04544fb41f"),
		},
	}
}
