// Package config loads node configuration the way the corpus does it:
// a YAML file (internal/config in nivschuman-VotingBlockchain) layered
// with environment variable overrides via envconfig (as
// blinklabs-io-cdnsd's internal/config does), plus a small set of
// regtest-only command-line overrides.
package config

import (
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// NetworkConfig selects which chainparams network this process runs
// against. DatabasePath is loaded but not read: the chain index
// database location is fixed by internal/database/connection.
type NetworkConfig struct {
	Network      string `yaml:"network"       envconfig:"NETWORK"`
	DatabasePath string `yaml:"database-path" envconfig:"DATABASE_PATH"`

	// ExperimentalRetargeter holds the name of one of
	// retarget.ExperimentalASERT, retarget.ExperimentalSimpleTargetFrontier
	// or retarget.ExperimentalWeightedMovingAverage. It is loaded but
	// nothing in this module reads it; the canonical dispatch is always
	// used. retarget.RunExperimental panics outside network "regtest".
	ExperimentalRetargeter string `yaml:"experimental-retargeter" envconfig:"EXPERIMENTAL_RETARGETER"`
}

// MetricsConfig configures the prometheus exporter, mirroring
// blinklabs-io-cdnsd's MetricsConfig shape.
type MetricsConfig struct {
	Enabled       bool   `yaml:"enabled" envconfig:"METRICS_ENABLED"`
	ListenAddress string `yaml:"address" envconfig:"METRICS_LISTEN_ADDRESS"`
	ListenPort    uint   `yaml:"port"    envconfig:"METRICS_LISTEN_PORT"`
}

// RegtestConfig carries two regtest-only knobs: an override height for
// testing an upgrade boundary, and a raw
// version-bits string for testing candidate header construction. Both
// are ignored outside NetworkConfig.Network == "regtest".
type RegtestConfig struct {
	SegwitHeight uint32 `yaml:"-"`
	VBParams     string `yaml:"-"`
}

type Config struct {
	NetworkConfig NetworkConfig `yaml:"network"`
	MetricsConfig MetricsConfig `yaml:"metrics"`
	RegtestConfig RegtestConfig `yaml:"-"`
}

var GlobalConfig *Config = nil

// InitializeGlobalConfig mirrors the corpus's own
// InitializeGlobalConfig: idempotent, loads once per process.
func InitializeGlobalConfig(path string) error {
	if GlobalConfig != nil {
		return nil
	}

	var err error
	GlobalConfig, err = LoadConfigFile(path)

	return err
}

// LoadConfigFile reads path as YAML, then overlays environment
// variables via envconfig, the same two-stage load blinklabs-io-cdnsd
// uses (file first, environment authoritative last).
func LoadConfigFile(path string) (*Config, error) {
	cfg := &Config{
		NetworkConfig: NetworkConfig{
			Network:      "main",
			DatabasePath: "databases",
		},
	}

	if path != "" {
		file, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer file.Close()

		d := yaml.NewDecoder(file)
		if err := d.Decode(cfg); err != nil {
			return nil, err
		}
	}

	if err := envconfig.Process("retargetd", &cfg.NetworkConfig); err != nil {
		return nil, fmt.Errorf("config: processing environment: %w", err)
	}
	if err := envconfig.Process("retargetd", &cfg.MetricsConfig); err != nil {
		return nil, fmt.Errorf("config: processing environment: %w", err)
	}

	return cfg, nil
}

// ApplyRegtestFlags overlays the regtest-only CLI overrides onto cfg.
// Outside network "regtest" it leaves cfg unchanged, and returns an
// error if either override is non-zero: these knobs exist to let tests pin an upgrade boundary or a version-bits
// string, and doing that on a live network would silently diverge
// consensus from every other node.
func ApplyRegtestFlags(cfg *Config, segwitHeight uint32, vbParams string) error {
	if cfg.NetworkConfig.Network != "regtest" {
		if segwitHeight != 0 || vbParams != "" {
			return fmt.Errorf("config: -segwitheight and -vbparams are regtest-only, network is %q", cfg.NetworkConfig.Network)
		}
		return nil
	}

	cfg.RegtestConfig.SegwitHeight = segwitHeight
	cfg.RegtestConfig.VBParams = vbParams
	return nil
}
