package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/big"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nivschuman/difficulty-core/internal/bigint"
	"github.com/nivschuman/difficulty-core/internal/chainindex"
	"github.com/nivschuman/difficulty-core/internal/chainparams"
	"github.com/nivschuman/difficulty-core/internal/config"
	dbconnection "github.com/nivschuman/difficulty-core/internal/database/connection"
	db_types "github.com/nivschuman/difficulty-core/internal/database/types"
	"github.com/nivschuman/difficulty-core/internal/genesis"
	"github.com/nivschuman/difficulty-core/internal/metrics"
	"github.com/nivschuman/difficulty-core/internal/store"
)

func main() {
	configFile := flag.String("config", os.Getenv("CONFIG_FILE"), "path to config.yml")
	segwitHeight := flag.Uint("segwitheight", 0, "regtest only: override upgrade boundary height")
	vbParams := flag.String("vbparams", "", "regtest only: name:start:timeout version-bits override")
	flag.Parse()

	if *configFile == "" {
		*configFile = "config/config.yml"
	}

	if err := config.InitializeGlobalConfig(*configFile); err != nil {
		log.Fatalf("failed to load config file: %v", err)
	}

	if err := config.ApplyRegtestFlags(config.GlobalConfig, uint32(*segwitHeight), *vbParams); err != nil {
		log.Fatalf("invalid regtest override: %v", err)
	}

	if err := validateVBParams(*vbParams); err != nil {
		log.Fatalf("invalid -vbparams: %v", err)
	}

	params, err := chainparams.SelectParams(config.GlobalConfig.NetworkConfig.Network)
	if err != nil {
		log.Fatalf("unknown chain name %q: %v", config.GlobalConfig.NetworkConfig.Network, err)
	}

	if os.Getenv("APP_ENV") == "" {
		os.Setenv("APP_ENV", params.Name)
	}

	if err := dbconnection.InitializeGlobalDB(); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	genesisHash, err := hashGenesis(genesisFor(params.Name))
	if err != nil {
		log.Fatalf("failed to compute genesis hash: %v", err)
	}

	if _, err := store.GlobalChainIndexRepository.GetNode(genesisHash); err != nil {
		if err := seedGenesis(params.Name); err != nil {
			log.Fatalf("failed to seed genesis block: %v", err)
		}
	}

	if config.GlobalConfig.MetricsConfig.Enabled {
		startMetricsServer(config.GlobalConfig.MetricsConfig)
	}

	log.Printf("retargetd running on network %q", params.Name)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	log.Println("shutting down")
}

// hashGenesis computes a genesis block's identity hash, converting the
// panic Block.GetHash raises on an untagged (nVersion<=1) header's
// unimplemented Quark primitive into a plain error: mainnet's genesis
// carries that literal untagged version, so running this daemon
// against "main" fails fast here with a clear message rather than a
// bare stack trace.
func hashGenesis(block *genesis.Block) (hash bigint.Uint256, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("genesis hash for version %d requires an unimplemented hash primitive: %v", block.Header.Version, r)
		}
	}()

	return block.GetHash(), nil
}

func genesisFor(network string) *genesis.Block {
	switch network {
	case "test":
		return genesis.Test()
	case "regtest":
		return genesis.Regtest()
	default:
		return genesis.Main()
	}
}

func seedGenesis(network string) error {
	block := genesisFor(network)
	hash, err := hashGenesis(block)
	if err != nil {
		return err
	}

	node := &chainindex.Node{
		Height:    0,
		Version:   block.Header.Version,
		Nonce:     block.Header.Nonce,
		NBits:     block.Header.NBits,
		Time:      block.Header.Time,
		BlockHash: hash,
	}

	return store.GlobalChainIndexRepository.InsertNode(
		node,
		block.Header.HashPrevBlock,
		db_types.NewBigInt(big.NewInt(0)),
	)
}

func startMetricsServer(cfg config.MetricsConfig) {
	reg := prometheus.NewRegistry()
	if _, err := metrics.New(reg); err != nil {
		log.Fatalf("failed to register metrics: %v", err)
	}

	addr := fmt.Sprintf("%s:%d", cfg.ListenAddress, cfg.ListenPort)
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			log.Printf("metrics server stopped: %v", err)
		}
	}()
}

func validateVBParams(spec string) error {
	if spec == "" {
		return nil
	}

	parts := strings.Split(spec, ":")
	if len(parts) != 3 {
		return fmt.Errorf("expected name:start:timeout, got %q", spec)
	}
	if _, err := strconv.ParseInt(parts[1], 10, 64); err != nil {
		return fmt.Errorf("invalid start time %q: %w", parts[1], err)
	}
	if _, err := strconv.ParseInt(parts[2], 10, 64); err != nil {
		return fmt.Errorf("invalid timeout %q: %w", parts[2], err)
	}

	return nil
}
