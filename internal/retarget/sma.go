package retarget

import (
	"github.com/nivschuman/difficulty-core/internal/algo"
	"github.com/nivschuman/difficulty-core/internal/bigint"
	"github.com/nivschuman/difficulty-core/internal/chainindex"
	"github.com/nivschuman/difficulty-core/internal/chainparams"
)

// SimpleMovingAverageTarget is the DigiShield-tempered SMA used for PoS
// once the chain has cleared the super-majority height, grounded on
// original_source's function of the same name.
func SimpleMovingAverageTarget(tip *chainindex.Node, candidateHeader algo.Header, params *chainparams.Params) uint32 {
	a := candidateHeader.Algo()
	isPOS := candidateHeader.IsProofOfStake()
	powLimit := powLimitFor(params, a, isPOS)
	limitCompact := bigint.EncodeCompactTrunc(powLimit)

	targetSpacing := int64(params.PowTargetSpacing) * 2
	if !isPOS {
		targetSpacing *= int64(algo.AlgoCount - 1)
	}

	const temperingFactor = 4
	const firstWeightMultiplier = 1

	pastBlocks := int64(params.PowTargetTimespan) / targetSpacing / temperingFactor

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
	divisor := uint32(pastBlocks + firstWeightMultiplier - 1)

	nCountBlocks := int64(1)
	for nCountBlocks <= pastBlocks {
		if pindex.NBits != limitCompact || !params.PowAllowMinDifficultyBlocks {
			target, _, _ := bigint.DecodeCompact(pindex.NBits)
			if nCountBlocks == 1 {
				target = target.MulUint32(firstWeightMultiplier)
			}
			pastTargetAvg = pastTargetAvg.Add(target.DivUint32(divisor))
		} else {
			nCountBlocks--
		}

		pprev := lastOfKindOrAlgo(pindex.Prev, a, isPOS)
		if pprev != nil && pprev.Height != 0 {
			pindex = pprev
		} else {
			break
		}
		nCountBlocks++
	}

	next := pastTargetAvg
	if next.IsZero() {
		next = powLimit
	}

	actualTimespan := int64(prev.Time) - int64(pindex.Time)
	targetTimespan := pastBlocks * targetSpacing
	useTempering := actualTimespan > targetTimespan/2

	if useTempering {
		actualTimespan += (temperingFactor - 1) * targetTimespan
		targetTimespan *= temperingFactor
	}

	if actualTimespan < 1 {
		actualTimespan = 1
	}

	wide := bigint.MulUint32To512(next, uint32(actualTimespan)).DivUint32(uint32(targetTimespan))
	result, _ := wide.Trim256()
	result = result.Min(powLimit)

	return bigint.EncodeCompactRounded(result)
}
