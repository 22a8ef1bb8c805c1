// Package retarget implements the difficulty retargeting state machine:
// dispatch by height and algorithm to one of the historical formulas,
// grounded bit-for-bit on original_source's src/pow.cpp.
package retarget

import (
	"time"

	"github.com/nivschuman/difficulty-core/internal/algo"
	"github.com/nivschuman/difficulty-core/internal/bigint"
	"github.com/nivschuman/difficulty-core/internal/chainindex"
	"github.com/nivschuman/difficulty-core/internal/chainparams"
	"github.com/nivschuman/difficulty-core/internal/metrics"
)

// dispatchOptions carries the optional metrics hook GetNextWorkRequired
// accepts. A caller that never passes an Option gets a nil recorder,
// which no-ops every observation.
type dispatchOptions struct {
	recorder *metrics.Recorder
}

// Option configures a single GetNextWorkRequired call.
type Option func(*dispatchOptions)

// WithMetrics attaches a recorder that observes which formula produced
// each result. Passing a nil recorder is equivalent to omitting the
// option entirely.
func WithMetrics(r *metrics.Recorder) Option {
	return func(o *dispatchOptions) {
		o.recorder = r
	}
}

// lastOfKindOrAlgo picks LastOfKind for legacy (untagged) headers and
// LastOfAlgo for tagged ones, mirroring the `algo == -1 ? ... : ...`
// idiom that recurs in every formula in pow.cpp.
func lastOfKindOrAlgo(start *chainindex.Node, a int, wantPOS bool) *chainindex.Node {
	if a == algo.AlgoNone {
		return chainindex.LastOfKind(start, wantPOS)
	}
	return chainindex.LastOfAlgo(start, a)
}

// powLimitFor mirrors the `algo == -1 ? (fProofOfStake ? ALGO_POS :
// ALGO_POW_QUARK) : algo` idiom used to pick a pow limit for a legacy
// header, splitting on PoS/PoW instead of always defaulting to Quark
// (that variant is reserved for GetNextWorkRequired's top-level limit).
func powLimitFor(params *chainparams.Params, a int, isPOS bool) bigint.Uint256 {
	if a == algo.AlgoNone {
		if isPOS {
			return params.PowLimit[algo.AlgoPOS]
		}
		return params.PowLimit[algo.AlgoPowQuark]
	}
	return params.PowLimit[a]
}

// GetNextWorkRequired is the single entry point: given the current tip
// and a candidate header, it returns the compact target the candidate
// must satisfy. Passing WithMetrics records which branch of
// the dispatch produced the result; without it the call remains pure.
func GetNextWorkRequired(tip *chainindex.Node, candidateHeader algo.Header, params *chainparams.Params, opts ...Option) uint32 {
	start := time.Now()
	var o dispatchOptions
	for _, opt := range opts {
		opt(&o)
	}

	a := candidateHeader.Algo()
	powLimit := params.PowLimitFor(a)
	limitCompact := bigint.EncodeCompactTrunc(powLimit)

	if tip == nil || params.PowNoRetargeting {
		o.recorder.ObserveRetarget("pow-limit", time.Since(start).Seconds())
		return limitCompact
	}

	nextHeight := tip.Height + 1

	if nextHeight >= params.MandatoryUpgradeBlock[1] && params.PowAllowMinDifficultyBlocks && a != algo.AlgoNone {
		if nBits, ok := MinDifficultyRule(tip, candidateHeader, params); ok {
			o.recorder.ObserveMinDifficultyHit()
			o.recorder.ObserveRetarget("min-difficulty", time.Since(start).Seconds())
			return nBits
		}
	}

	if candidateHeader.IsProofOfStake() && nextHeight >= params.MandatoryUpgradeBlock[1]+params.MinerConfirmationWindow {
		nBits := SimpleMovingAverageTarget(tip, candidateHeader, params)
		o.recorder.ObserveRetarget("sma", time.Since(start).Seconds())
		return nBits
	}

	nBits := CalculateNextTargetRequired(tip, candidateHeader, params)
	o.recorder.ObserveRetarget("ema", time.Since(start).Seconds())
	return nBits
}

// MinDifficultyRule implements the testnet-style relaxation: a long gap
// since the last same-algo block permits mining at
// the algo's pow limit. The bool return reports whether the rule fired;
// a false return means the caller must fall through to the general
// formula.
func MinDifficultyRule(tip *chainindex.Node, candidateHeader algo.Header, params *chainparams.Params) (uint32, bool) {
	a := candidateHeader.Algo()
	limitCompact := bigint.EncodeCompactTrunc(params.PowLimitFor(a))

	prev := chainindex.LastOfAlgo(tip, a)
	if prev.Height > 10 && candidateHeader.Time > prev.Time+30*60 {
		return limitCompact, true
	}

	if prev.Prev != nil && prev.NBits == limitCompact {
		n := prev
		for n.Prev != nil && (n.NBits == limitCompact || n.Algo() != a) {
			n = n.Prev
		}
		pprev := chainindex.LastOfAlgo(n.Prev, a)
		if pprev != nil && pprev.Height > 10 {
			if pprev.NBits != limitCompact {
				return pprev.NBits, true
			}
			return n.NBits, true
		}
	}

	return 0, false
}
