package chainparams_test

import (
	"testing"

	"github.com/nivschuman/difficulty-core/internal/algo"
	"github.com/nivschuman/difficulty-core/internal/chainparams"
)

func TestSelectParamsSingletonSameNetwork(t *testing.T) {
	p1, err := chainparams.SelectParams("regtest")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p2, err := chainparams.SelectParams("regtest")
	if err != nil {
		t.Fatalf("unexpected error on reselect: %v", err)
	}
	if p1 != p2 {
		t.Fatalf("expected SelectParams to return the same instance once initialized")
	}
	if chainparams.Current() != p1 {
		t.Fatalf("expected Current() to return the selected params")
	}
}

func TestSelectParamsUnknownNetwork(t *testing.T) {
	_, err := chainparams.SelectParams("nonexistent-network")
	if err == nil {
		t.Fatalf("expected error for unknown network")
	}
}

func TestPowLimitForFallsBackToQuarkForLegacyHeader(t *testing.T) {
	p := chainparams.MainNetParams()

	got := p.PowLimitFor(algo.AlgoNone)
	want := p.PowLimit[algo.AlgoPowQuark]

	if got.Cmp(want) != 0 {
		t.Fatalf("expected AlgoNone to resolve to quark's pow limit")
	}
}

func TestFindOverrideHitAndMiss(t *testing.T) {
	p := chainparams.MainNetParams()

	o := p.Overrides[0]
	nBits, ok := p.FindOverride(o.Height, o.Time, o.Algo, o.PrevHash)
	if !ok {
		t.Fatalf("expected override lookup to hit")
	}
	if nBits != o.NBits {
		t.Fatalf("nBits = %#x, want %#x", nBits, o.NBits)
	}

	_, ok = p.FindOverride(o.Height+1, o.Time, o.Algo, o.PrevHash)
	if ok {
		t.Fatalf("expected override lookup to miss on height mismatch")
	}
}

func TestDifficultyAdjustmentIntervalMatchesSpacingAndTimespan(t *testing.T) {
	p := chainparams.MainNetParams()
	got := p.DifficultyAdjustmentInterval()
	want := p.PowTargetTimespan / p.PowTargetSpacing
	if got != want {
		t.Fatalf("DifficultyAdjustmentInterval() = %d, want %d", got, want)
	}
}

func TestNetworkParamsAreDistinct(t *testing.T) {
	main := chainparams.MainNetParams()
	test := chainparams.TestNetParams()
	regtest := chainparams.RegtestParams()

	if main.MessageStart == test.MessageStart || main.MessageStart == regtest.MessageStart || test.MessageStart == regtest.MessageStart {
		t.Fatalf("expected distinct message-start magic bytes per network")
	}
	if main.DefaultPort == test.DefaultPort || main.DefaultPort == regtest.DefaultPort {
		t.Fatalf("expected distinct default ports per network")
	}
}

func TestRegtestUsesUniformPowLimitAcrossAlgos(t *testing.T) {
	p := chainparams.RegtestParams()
	first := p.PowLimit[0]
	for a := 1; a < algo.AlgoCount; a++ {
		if p.PowLimit[a].Cmp(first) != 0 {
			t.Fatalf("expected regtest pow limit uniform across algos, algo %d differs", a)
		}
	}
}
