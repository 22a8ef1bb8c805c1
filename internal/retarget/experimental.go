package retarget

import (
	"math/big"

	"github.com/nivschuman/difficulty-core/internal/algo"
	"github.com/nivschuman/difficulty-core/internal/bigint"
	"github.com/nivschuman/difficulty-core/internal/chainindex"
	"github.com/nivschuman/difficulty-core/internal/chainparams"
)

// ExperimentalRetargeter names one of the alternative formulas retained
// for regtest-only experimentation. None of these
// are reachable from GetNextWorkRequired; a caller opts in by calling
// RunExperimental, which works only on the regtest network. Nothing in
// cmd/retargetd calls it.
type ExperimentalRetargeter string

const (
	ExperimentalASERT                ExperimentalRetargeter = "asert"
	ExperimentalSimpleTargetFrontier ExperimentalRetargeter = "stf"
	ExperimentalWeightedMovingAverage ExperimentalRetargeter = "wma"
)

// RunExperimental dispatches to one of the regtest-only formulas. It
// panics on any network other than regtest and on an unknown name;
// callers gate this behind their own regtest + flag check first.
func RunExperimental(name ExperimentalRetargeter, tip *chainindex.Node, candidateHeader algo.Header, params *chainparams.Params) uint32 {
	if params.Name != "regtest" {
		panic("retarget: experimental retargeters are permitted on regtest only")
	}
	switch name {
	case ExperimentalASERT:
		return ASERT(tip, candidateHeader, params)
	case ExperimentalSimpleTargetFrontier:
		return SimpleTargetFrontier(tip, candidateHeader, params)
	case ExperimentalWeightedMovingAverage:
		return WeightedMovingAverageTarget(tip, candidateHeader, params)
	default:
		panic("retarget: unknown experimental retargeter " + string(name))
	}
}

// genesisOfKind walks LastOfKind/LastOfAlgo repeatedly back to the
// earliest ancestor of the requested kind, used by the anchor-relative
// experimental formulas below.
func genesisOfKind(start *chainindex.Node, a int, isPOS bool) *chainindex.Node {
	n := lastOfKindOrAlgo(start, a, isPOS)
	for n != nil && n.Prev != nil {
		n = lastOfKindOrAlgo(n.Prev, a, isPOS)
	}
	return n
}

// WeightedMovingAverageTarget linearly weights past solvetimes so that
// more recent blocks carry more influence than a plain SMA, grounded
// on original_source's function of the same name.
func WeightedMovingAverageTarget(tip *chainindex.Node, candidateHeader algo.Header, params *chainparams.Params) uint32 {
	a := candidateHeader.Algo()
	isPOS := candidateHeader.IsProofOfStake()
	powLimit := powLimitFor(params, a, isPOS)
	limitCompact := bigint.EncodeCompactTrunc(powLimit)

	targetSpacing := int64(params.PowTargetSpacing) * 2
	if !isPOS {
		targetSpacing *= int64(algo.AlgoCount - 1)
	}

	const xCubedMulti = 0
	const xSquaredMulti = 0
	const xMulti = 1

	pastBlocks := int64(params.PowTargetTimespan) / targetSpacing

	if tip == nil {
		return limitCompact
	}

	prev := lastOfKindOrAlgo(tip, a, isPOS)
	if prev.Prev == nil {
		return limitCompact
	}

	if int64(tip.Height) < pastBlocks+2 {
		return WeightedTargetExponentialMovingAverage(tip, candidateHeader, params)
	}

	pindex := prev
	var pastTargetAvg bigint.Uint256
	var sumWeighted int64
	var elementsAveraged uint32

	for nCountBlocks := pastBlocks; nCountBlocks >= 1; nCountBlocks-- {
		pprev := lastOfKindOrAlgo(pindex.Prev, a, isPOS)

		if pindex.NBits != limitCompact || !params.PowAllowMinDifficultyBlocks {
			target, _, _ := bigint.DecodeCompact(pindex.NBits)
			pastTargetAvg = pastTargetAvg.Add(target.DivUint32(uint32(pastBlocks)))

			if pprev != nil && pprev.Height != 0 {
				weightMultiplier := uint32(xCubedMulti*nCountBlocks*nCountBlocks*nCountBlocks +
					xSquaredMulti*nCountBlocks*nCountBlocks +
					xMulti*nCountBlocks)
				sumWeighted += (int64(pindex.Time) - int64(pprev.Time)) * int64(weightMultiplier)
				elementsAveraged += weightMultiplier
			}
		} else {
			nCountBlocks++
		}

		if pprev != nil && pprev.Height != 0 {
			pindex = pprev
		} else {
			break
		}
	}

	next := pastTargetAvg
	if next.IsZero() {
		next = powLimit
	}

	actualTimespanWeighted := sumWeighted
	targetTimespan := pastBlocks * targetSpacing * int64(elementsAveraged)

	if actualTimespanWeighted < 1 {
		actualTimespanWeighted = 1
	}

	wide := bigint.MulUint32To512(next, uint32(actualTimespanWeighted)).DivUint32(uint32(targetTimespan))
	result, _ := wide.Trim256()
	result = result.Min(powLimit)

	return bigint.EncodeCompactRounded(result)
}

// ASERT scales the target anchored at the algo's genesis block
// exponentially by how far actual elapsed time has drifted from the
// scheduled time: next = anchorTarget *
// 2^((elapsed-scheduled)/timespan). The fractional part of the exponent
// has no closed integer form, so it is approximated with the cubic
// (4x^3+11x^2*b+35x*b^2+50b^3)/(50b^3), x=remainder, b=timespan.
func ASERT(tip *chainindex.Node, candidateHeader algo.Header, params *chainparams.Params) uint32 {
	a := candidateHeader.Algo()
	isPOS := candidateHeader.IsProofOfStake()
	powLimit := powLimitFor(params, a, isPOS)
	limitCompact := bigint.EncodeCompactTrunc(powLimit)

	if tip == nil {
		return limitCompact
	}

	prev := lastOfKindOrAlgo(tip, a, isPOS)
	genesis := genesisOfKind(tip, a, isPOS)
	if prev == genesis {
		return limitCompact
	}

	targetSpacing := int64(params.PowTargetSpacing) * 2
	if !isPOS {
		targetSpacing *= int64(algo.AlgoCount - 1)
	}

	heightDiff := int64(prev.Height) - int64(genesis.Height)
	elapsed := int64(prev.Time) - int64(genesis.Time)
	scheduled := targetSpacing * heightDiff
	dt := elapsed - scheduled

	timespan := int64(params.PowTargetTimespan)
	quotient := dt / timespan
	remainder := dt % timespan
	if remainder < 0 {
		remainder += timespan
		quotient--
	}

	anchorTarget, _, _ := bigint.DecodeCompact(genesis.NBits)
	scaled := shiftTargetBy2Pow(anchorTarget, quotient)

	x := big.NewInt(remainder)
	b := big.NewInt(timespan)

	x2 := new(big.Int).Mul(x, x)
	x3 := new(big.Int).Mul(x2, x)
	b2 := new(big.Int).Mul(b, b)
	b3 := new(big.Int).Mul(b2, b)

	num := new(big.Int).Add(new(big.Int).Mul(big.NewInt(4), x3), new(big.Int).Mul(big.NewInt(11), new(big.Int).Mul(x2, b)))
	num.Add(num, new(big.Int).Mul(big.NewInt(35), new(big.Int).Mul(x, b2)))
	num.Add(num, new(big.Int).Mul(big.NewInt(50), b3))

	den := new(big.Int).Mul(big.NewInt(50), b3)

	wide := bigint.Mul256x256To512(scaled, bigint.NewUint256FromBig(num))
	wide = wide.DivUint256(bigint.NewUint256FromBig(den))

	result, _ := wide.Trim256()
	result = result.Min(powLimit)

	return bigint.EncodeCompactRounded(result)
}

// shiftTargetBy2Pow multiplies v by 2^n for positive n (left shift) or
// divides for negative n (right shift), clamping to zero if the target
// would otherwise underflow to nothing.
func shiftTargetBy2Pow(v bigint.Uint256, n int64) bigint.Uint256 {
	if n == 0 {
		return v
	}
	if n > 0 {
		if n > 256 {
			n = 256
		}
		return bigint.NewUint256FromBig(new(big.Int).Lsh(v.Big(), uint(n)))
	}
	shift := uint(-n)
	if shift > 256 {
		shift = 256
	}
	return bigint.NewUint256FromBig(new(big.Int).Rsh(v.Big(), shift))
}

// SimpleTargetFrontier changes the effective target spacing by 10% and
// raises the per-block adjustment step tenfold whenever the chain has
// drifted at least 100 blocks ahead of or behind its schedule.
func SimpleTargetFrontier(tip *chainindex.Node, candidateHeader algo.Header, params *chainparams.Params) uint32 {
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

	genesis := genesisOfKind(tip, a, isPOS)

	baseSpacing := int64(params.PowTargetSpacing) * 2
	if !isPOS {
		baseSpacing *= int64(algo.AlgoCount - 1)
	}

	heightDiff := int64(prev.Height) - int64(genesis.Height)
	elapsed := int64(prev.Time) - int64(genesis.Time)
	scheduled := baseSpacing * heightDiff
	drift := elapsed - scheduled
	blocksDrift := drift / baseSpacing

	spacing := baseSpacing
	adjustmentPercent := int64(1)
	switch {
	case blocksDrift >= 100:
		spacing = spacing * 110 / 100
		adjustmentPercent = 10
	case blocksDrift <= -100:
		spacing = spacing * 90 / 100
		adjustmentPercent = 10
	}

	dt := int64(prev.Time) - int64(prevPrev.Time)
	if dt <= 0 {
		dt = 1
	}

	bnNew, _, _ := bigint.DecodeCompact(prev.NBits)

	numerator := uint32(spacing + adjustmentPercent*(dt-spacing)/100)
	denominator := uint32(spacing)

	wide := bigint.MulUint32To512(bnNew, numerator).DivUint32(denominator)
	next, _ := wide.Trim256()
	next = next.Min(powLimit)

	return bigint.EncodeCompactRounded(next)
}
