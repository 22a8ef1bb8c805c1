package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nivschuman/difficulty-core/internal/config"
)

func writeTempConfig(t *testing.T, contents string) string {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write temp config: %v", err)
	}
	return path
}

func TestLoadConfigFileAppliesYAMLValues(t *testing.T) {
	path := writeTempConfig(t, "network:\n  network: testnet\n  database-path: /tmp/chain\nmetrics:\n  enabled: true\n  port: 9101\n")

	cfg, err := config.LoadConfigFile(path)
	if err != nil {
		t.Fatalf("LoadConfigFile: %v", err)
	}

	if cfg.NetworkConfig.Network != "testnet" {
		t.Fatalf("expected network testnet, got %q", cfg.NetworkConfig.Network)
	}
	if cfg.NetworkConfig.DatabasePath != "/tmp/chain" {
		t.Fatalf("unexpected database path %q", cfg.NetworkConfig.DatabasePath)
	}
	if !cfg.MetricsConfig.Enabled || cfg.MetricsConfig.ListenPort != 9101 {
		t.Fatalf("unexpected metrics config %+v", cfg.MetricsConfig)
	}
}

func TestLoadConfigFileDefaultsWithNoPath(t *testing.T) {
	cfg, err := config.LoadConfigFile("")
	if err != nil {
		t.Fatalf("LoadConfigFile: %v", err)
	}

	if cfg.NetworkConfig.Network != "main" {
		t.Fatalf("expected default network main, got %q", cfg.NetworkConfig.Network)
	}
}

func TestEnvironmentOverridesFileValue(t *testing.T) {
	path := writeTempConfig(t, "network:\n  network: testnet\n")

	t.Setenv("RETARGETD_NETWORK", "regtest")

	cfg, err := config.LoadConfigFile(path)
	if err != nil {
		t.Fatalf("LoadConfigFile: %v", err)
	}

	if cfg.NetworkConfig.Network != "regtest" {
		t.Fatalf("expected environment override to win, got %q", cfg.NetworkConfig.Network)
	}
}

func TestExperimentalRetargeterLoadsFromYAML(t *testing.T) {
	path := writeTempConfig(t, "network:\n  network: regtest\n  experimental-retargeter: asert\n")

	cfg, err := config.LoadConfigFile(path)
	if err != nil {
		t.Fatalf("LoadConfigFile: %v", err)
	}
	if cfg.NetworkConfig.ExperimentalRetargeter != "asert" {
		t.Fatalf("expected experimental-retargeter to load, got %q", cfg.NetworkConfig.ExperimentalRetargeter)
	}
}

func TestApplyRegtestFlagsRejectedOutsideRegtest(t *testing.T) {
	cfg := &config.Config{NetworkConfig: config.NetworkConfig{Network: "main"}}

	if err := config.ApplyRegtestFlags(cfg, 500, ""); err == nil {
		t.Fatalf("expected non-regtest network to reject segwitheight override")
	}
}

func TestApplyRegtestFlagsAcceptedOnRegtest(t *testing.T) {
	cfg := &config.Config{NetworkConfig: config.NetworkConfig{Network: "regtest"}}

	if err := config.ApplyRegtestFlags(cfg, 500, "testdummy:0:999999999"); err != nil {
		t.Fatalf("ApplyRegtestFlags: %v", err)
	}
	if cfg.RegtestConfig.SegwitHeight != 500 {
		t.Fatalf("expected override to be applied")
	}
}
