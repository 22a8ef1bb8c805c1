package retarget

import (
	"github.com/nivschuman/difficulty-core/internal/algo"
	"github.com/nivschuman/difficulty-core/internal/bigint"
	"github.com/nivschuman/difficulty-core/internal/chainindex"
	"github.com/nivschuman/difficulty-core/internal/chainparams"
)

// CalculateNextTargetRequired is the peercoin-style per-block EMA,
// grounded on original_source's function of the same name.
func CalculateNextTargetRequired(tip *chainindex.Node, candidateHeader algo.Header, params *chainparams.Params) uint32 {
	a := candidateHeader.Algo()
	isPOS := candidateHeader.IsProofOfStake()
	powLimit := powLimitFor(params, a, isPOS)
	limitCompact := bigint.EncodeCompactTrunc(powLimit)

	if tip == nil {
		return limitCompact
	}

	prev := lastOfKindOrAlgo(tip, a, isPOS)
	if prev.Prev == nil {
		return limitCompact
	}
	prevPrev := lastOfKindOrAlgo(prev.Prev, a, isPOS)
	if prevPrev.Prev == nil {
		return limitCompact
	}

	dt := int64(prev.Time) - int64(prevPrev.Time)

	bnNew, _, _ := bigint.DecodeCompact(prev.NBits)

	targetSpacing := int64(params.PowTargetSpacing)
	targetTimespan := int64(params.PowTargetTimespan)
	nHeight := tip.Height + 1

	var interval int64

	switch {
	case nHeight < params.MandatoryUpgradeBlock[0]:
		targetSpacing = 80
		targetTimespan = 20 * 60
		interval = targetTimespan / targetSpacing

		if dt < 0 {
			dt = targetSpacing
		}

	case nHeight < params.MandatoryUpgradeBlock[1]:
		targetSpacing = 80
		targetTimespan = 20 * 60
		interval = targetTimespan / targetSpacing

		if nBits, ok := params.FindOverride(nHeight, candidateHeader.Time, a, prev.BlockHash); ok {
			return nBits
		}

		if !isPOS {
			targetSpacing *= 4
		} else {
			targetSpacing *= 2
		}

		if dt < 1 {
			dt = 1
		}

	default:
		targetSpacing *= 2
		if !isPOS {
			targetSpacing *= int64(algo.AlgoCount - 1)
		}
		interval = targetTimespan / targetSpacing
	}

	if dt <= -((interval-1)*targetSpacing/2) {
		dt = -((interval-1)*targetSpacing/2) + 1
	}

	numerator := uint32((interval-1)*targetSpacing + 2*dt)
	denominator := uint32((interval + 1) * targetSpacing)

	var next bigint.Uint256
	if nHeight < params.MandatoryUpgradeBlock[1] && (a == algo.AlgoPowQuark || a == algo.AlgoPowScryptSquared) {
		next = bnNew.MulUint32(numerator).DivUint32(denominator)
	} else {
		wide := bigint.MulUint32To512(bnNew, numerator).DivUint32(denominator)
		next, _ = wide.Trim256()
	}

	next = next.Min(powLimit)

	if nHeight < params.MandatoryUpgradeBlock[1] {
		return bigint.EncodeCompactTrunc(next)
	}
	return bigint.EncodeCompactRounded(next)
}
