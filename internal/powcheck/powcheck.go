// Package powcheck validates a candidate proof-of-work hash against a
// compact target, grounded on original_source's CheckProofOfWork
// (src/pow.cpp).
package powcheck

import (
	"github.com/nivschuman/difficulty-core/internal/algo"
	"github.com/nivschuman/difficulty-core/internal/bigint"
	"github.com/nivschuman/difficulty-core/internal/chainparams"
	"github.com/nivschuman/difficulty-core/internal/metrics"
)

// Option configures a single CheckProofOfWork call.
type Option func(*options)

type options struct {
	recorder *metrics.Recorder
}

// WithMetrics attaches a recorder that observes the accept/reject
// outcome. A nil recorder is equivalent to omitting the option.
func WithMetrics(r *metrics.Recorder) Option {
	return func(o *options) {
		o.recorder = r
	}
}

// CheckProofOfWork reports whether hash satisfies nBits under the given
// algo tag and network params. It is otherwise pure: any failure is a
// plain false, never a panic or an error return.
func CheckProofOfWork(hash bigint.Uint256, nBits uint32, algoTag int, params *chainparams.Params, opts ...Option) bool {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	accepted := checkProofOfWork(hash, nBits, algoTag, params)
	o.recorder.ObservePowCheck(accepted)
	return accepted
}

func checkProofOfWork(hash bigint.Uint256, nBits uint32, algoTag int, params *chainparams.Params) bool {
	target, negative, overflow := bigint.DecodeCompact(nBits)

	if negative || target.IsZero() || overflow {
		return false
	}

	if algoTag < algo.AlgoNone || algoTag == algo.AlgoPOS || algoTag >= algo.AlgoCount {
		return false
	}

	if target.Cmp(params.PowLimitFor(algoTag)) > 0 {
		return false
	}

	if hash.Cmp(target) > 0 {
		return false
	}

	return true
}
