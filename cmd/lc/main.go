// Command lc is the light-client front-end: it persists the operator's
// trusted genesis/bootstrap/state blobs and runs one-shot update
// verification against a persisted store.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"

	"github.com/klave-network/evm-light-client/config"
	"github.com/klave-network/evm-light-client/lcstore"
	"github.com/klave-network/evm-light-client/light"
	"github.com/klave-network/evm-light-client/rpc"
)

func main() {
	log.SetDefault(log.NewLogger(log.NewTerminalHandlerWithLevel(os.Stderr, log.LevelInfo, true)))

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	var err error
	switch os.Args[1] {
	case "persist":
		err = runPersist(os.Args[2:])
	case "verify":
		err = runVerify(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		log.Error("Command failed", "err", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: lc <persist|verify> [flags]")
}

// runPersist stores the operator-supplied genesis, bootstrap and state
// documents. Genesis is required; the other two are optional.
func runPersist(args []string) error {
	fs := flag.NewFlagSet("persist", flag.ExitOnError)
	storeDir := fs.String("store-dir", "lightclient", "blob store directory")
	genesisInfo := fs.String("genesis-info", "", "genesis data JSON")
	bootstrapInfo := fs.String("bootstrap-info", "", "bootstrap data JSON")
	stateInfo := fs.String("state-info", "", "state projection JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *genesisInfo == "" {
		return fmt.Errorf("genesis info is required")
	}
	var genesis rpc.GenesisData
	if err := json.Unmarshal([]byte(*genesisInfo), &genesis); err != nil {
		return fmt.Errorf("invalid genesis info: %w", err)
	}

	blobs, err := lcstore.NewFileStore(*storeDir)
	if err != nil {
		return err
	}

	if *bootstrapInfo != "" {
		var bootstrap rpc.LightClientBootstrapData
		if err := json.Unmarshal([]byte(*bootstrapInfo), &bootstrap); err != nil {
			return fmt.Errorf("invalid bootstrap info: %w", err)
		}
		if err := lcstore.PutJSON(blobs, lcstore.KeyBootstrap, &bootstrap); err != nil {
			return err
		}
	}
	if *stateInfo != "" {
		var state lcstore.StateProjection
		if err := json.Unmarshal([]byte(*stateInfo), &state); err != nil {
			return fmt.Errorf("invalid state info: %w", err)
		}
		if err := lcstore.PutJSON(blobs, lcstore.KeyState, &state); err != nil {
			return err
		}
	}
	if err := lcstore.PutJSON(blobs, lcstore.KeyGenesis, &genesis); err != nil {
		return err
	}
	log.Info("Persisted light client info", "dir", *storeDir)
	return nil
}

// runVerify bootstraps a store from persisted blobs, processes one update
// from a file and persists the resulting state projection.
func runVerify(args []string) error {
	fs := flag.NewFlagSet("verify", flag.ExitOnError)
	storeDir := fs.String("store-dir", "lightclient", "blob store directory")
	network := fs.String("network", "mainnet", "built-in network name")
	configPath := fs.String("config", "", "network config YAML (overrides -network)")
	updatePath := fs.String("update", "", "light client update response JSON file")
	trustedRoot := fs.String("trusted-root", "", "trusted block root for the bootstrap (hex)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *updatePath == "" {
		return fmt.Errorf("update file is required")
	}

	cfg, err := loadConfig(*network, *configPath)
	if err != nil {
		return err
	}

	blobs, err := lcstore.NewFileStore(*storeDir)
	if err != nil {
		return err
	}
	var genesis rpc.GenesisData
	if err := lcstore.GetJSON(blobs, lcstore.KeyGenesis, &genesis); err != nil {
		return err
	}
	var bootstrapData rpc.LightClientBootstrapData
	if err := lcstore.GetJSON(blobs, lcstore.KeyBootstrap, &bootstrapData); err != nil {
		return err
	}

	converter, err := rpc.NewConverter(cfg)
	if err != nil {
		return err
	}
	bootstrap, err := converter.Bootstrap(&bootstrapData)
	if err != nil {
		return err
	}

	threshold := light.TwoThirds
	ctx, err := light.NewContext(cfg, genesis.GenesisValidatorsRoot, uint64(genesis.GenesisTime), threshold, unixNow)
	if err != nil {
		return err
	}

	var pinned common.Hash
	if *trustedRoot != "" {
		pinned = common.HexToHash(*trustedRoot)
	}
	store, err := light.NewStore(ctx, bootstrap, pinned)
	if err != nil {
		return err
	}

	raw, err := os.ReadFile(*updatePath)
	if err != nil {
		return err
	}
	var updateResp rpc.LightClientUpdateResponse
	if err := json.Unmarshal(raw, &updateResp); err != nil {
		return fmt.Errorf("invalid update file: %w", err)
	}
	update, err := converter.Update(&updateResp)
	if err != nil {
		return err
	}

	if err := store.ProcessUpdate(ctx, update); err != nil {
		return err
	}

	finalized := store.FinalizedHeader()
	optimistic := store.OptimisticHeader()
	curMax, prevMax := store.MaxActiveParticipants()
	state := lcstore.StateProjection{
		FinalizedSlot:      uint64(finalized.Beacon.Slot),
		FinalizedStateRoot: finalized.Beacon.StateRoot,
		FinalizedBlockRoot: finalized.Beacon.HashTreeRoot(),
		OptimisticSlot:     uint64(optimistic.Beacon.Slot),
		OptimisticRoot:     optimistic.Beacon.HashTreeRoot(),
		Period:             ctx.SyncCommitteePeriod(finalized.Beacon.Slot),
		NextCommitteeKnown: store.NextSyncCommittee() != nil,
		CurrentMaxActive:   curMax,
		PreviousMaxActive:  prevMax,
	}
	if err := lcstore.PutJSON(blobs, lcstore.KeyState, &state); err != nil {
		return err
	}
	log.Info("Verified light client update",
		"finalizedSlot", state.FinalizedSlot,
		"optimisticSlot", state.OptimisticSlot,
		"period", state.Period)
	return nil
}

func loadConfig(network, path string) (config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	return config.ByNetwork(network)
}

func unixNow() uint64 {
	return uint64(time.Now().Unix())
}
