package retarget

import (
	"github.com/nivschuman/difficulty-core/internal/algo"
	"github.com/nivschuman/difficulty-core/internal/bigint"
	"github.com/nivschuman/difficulty-core/internal/chainindex"
	"github.com/nivschuman/difficulty-core/internal/chainparams"
)

// WeightedTargetExponentialMovingAverage is the bootstrap fallback used
// while the chain is too short for SimpleMovingAverageTarget, grounded
// on original_source's function of the same name.
func WeightedTargetExponentialMovingAverage(tip *chainindex.Node, candidateHeader algo.Header, params *chainparams.Params) uint32 {
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

	targetSpacing := int64(params.PowTargetSpacing) * 2
	if !isPOS {
		targetSpacing *= int64(algo.AlgoCount - 1)
	}
	targetTimespan := int64(params.PowTargetTimespan)
	interval := targetTimespan / targetSpacing

	if dt <= -((interval - 1) * targetSpacing) {
		dt = -((interval-1)*targetSpacing) + 1
	}

	numerator := uint32((interval-1)*targetSpacing + dt)
	denominator := uint32(interval * targetSpacing)

	wide := bigint.MulUint32To512(bnNew, numerator).DivUint32(denominator)
	next, _ := wide.Trim256()
	next = next.Min(powLimit)

	return bigint.EncodeCompactRounded(next)
}
