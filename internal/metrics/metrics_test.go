package metrics_test

import (
	"testing"

	"github.com/nivschuman/difficulty-core/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestNewRegistersCollectorsOnce(t *testing.T) {
	reg := prometheus.NewRegistry()

	if _, err := metrics.New(reg); err != nil {
		t.Fatalf("New: %v", err)
	}

	if _, err := metrics.New(reg); err == nil {
		t.Fatalf("expected duplicate registration to fail")
	}
}

func TestObserveRetargetIncrementsCounterByFormula(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec, err := metrics.New(reg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	rec.ObserveRetarget("sma", 0.002)
	rec.ObserveRetarget("sma", 0.003)

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}

	found := false
	for _, family := range families {
		if family.GetName() != "difficulty_core_retargets_total" {
			continue
		}
		for _, m := range family.Metric {
			if labelValue(m, "formula") == "sma" && m.GetCounter().GetValue() == 2 {
				found = true
			}
		}
	}
	if !found {
		t.Fatalf("expected retargets_total{formula=sma} == 2")
	}
}

func TestNilRecorderMethodsAreNoOps(t *testing.T) {
	var rec *metrics.Recorder

	rec.ObserveRetarget("wtema", 0.001)
	rec.ObservePowCheck(true)
	rec.ObserveMinDifficultyHit()
}

func labelValue(m *dto.Metric, name string) string {
	for _, l := range m.Label {
		if l.GetName() == name {
			return l.GetValue()
		}
	}
	return ""
}
