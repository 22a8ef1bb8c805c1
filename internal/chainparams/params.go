// Package chainparams carries the immutable, per-network consensus
// constants that the retargeter and PoW checker read from. It follows
// the corpus's own once-only-singleton pattern
// (internal/config.InitializeGlobalConfig,
// internal/database/connection.InitializeGlobalDB) instead of hiding
// the active network behind thread-local or global mutable state.
package chainparams

import (
	"fmt"
	"sync"

	"github.com/nivschuman/difficulty-core/internal/algo"
	"github.com/nivschuman/difficulty-core/internal/bigint"
)

// Override is a literal historical exception to the general retargeting
// formula: at a specific height, with a specific candidate timestamp,
// algo and previous-block hash, the chain accepted a literal nBits
// value that the general formula would not reproduce.
type Override struct {
	Height   uint32
	PrevHash bigint.Uint256
	Time     uint32
	Algo     int
	NBits    uint32
}

// Params is the full constant set for one network. Every field is set
// once by a constructor (MainNetParams, TestNetParams, RegtestParams)
// and never mutated afterward.
type Params struct {
	Name string

	PowLimit [algo.AlgoCount]bigint.Uint256

	PowTargetSpacing uint32
	PowTargetTimespan uint32

	MandatoryUpgradeBlock [2]uint32
	UpgradeBlockVersion   [2]uint32

	PowAllowMinDifficultyBlocks bool
	PowNoRetargeting            bool

	MinerConfirmationWindow uint32

	Overrides   []Override
	Checkpoints map[uint32]bigint.Uint256

	MessageStart [4]byte
	DefaultPort  uint16
	Bech32HRP    string
	CoinType     uint32

	PubKeyPrefix byte
	ScriptPrefix byte
	SecretPrefix byte
}

// DifficultyAdjustmentInterval mirrors Consensus::Params::DifficultyAdjustmentInterval:
// the number of blocks that would elapse across one timespan at the
// configured spacing.
func (p *Params) DifficultyAdjustmentInterval() uint32 {
	return p.PowTargetTimespan / p.PowTargetSpacing
}

// PowLimitFor resolves the pow limit for an algo tag, falling back to
// Quark when algo is AlgoNone (legacy header), matching
// original_source's `algo == -1 ? ALGO_POW_QUARK : algo` idiom used
// throughout pow.cpp.
func (p *Params) PowLimitFor(a int) bigint.Uint256 {
	if a == algo.AlgoNone {
		return p.PowLimit[algo.AlgoPowQuark]
	}
	return p.PowLimit[a]
}

// FindOverride looks up a literal historical override matching the
// given height/time/algo/prevHash tuple. A miss is not an error; the
// caller falls through to the general formula.
func (p *Params) FindOverride(height uint32, t uint32, a int, prevHash bigint.Uint256) (uint32, bool) {
	for _, o := range p.Overrides {
		if o.Height == height && o.Time == t && o.Algo == a && o.PrevHash.Cmp(prevHash) == 0 {
			return o.NBits, true
		}
	}
	return 0, false
}

var (
	globalMu     sync.Mutex
	globalParams *Params
)

// SelectParams initializes the process-wide network parameters exactly
// once, mirroring config.InitializeGlobalConfig's no-op-if-already-set
// shape. Subsequent calls with a different name are a configuration
// error: an unknown chain name must fail fast.
func SelectParams(network string) (*Params, error) {
	globalMu.Lock()
	defer globalMu.Unlock()

	if globalParams != nil {
		if globalParams.Name != network {
			return nil, fmt.Errorf("chainparams: network already selected as %q, cannot reselect as %q", globalParams.Name, network)
		}
		return globalParams, nil
	}

	p, err := paramsForNetwork(network)
	if err != nil {
		return nil, err
	}

	globalParams = p
	return globalParams, nil
}

// Current returns the currently selected network params, or nil if
// SelectParams has not been called yet.
func Current() *Params {
	globalMu.Lock()
	defer globalMu.Unlock()
	return globalParams
}

func paramsForNetwork(network string) (*Params, error) {
	switch network {
	case "main":
		return MainNetParams(), nil
	case "test":
		return TestNetParams(), nil
	case "regtest":
		return RegtestParams(), nil
	default:
		return nil, fmt.Errorf("chainparams: unknown network %q", network)
	}
}
