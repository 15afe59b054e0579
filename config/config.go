// Package config carries the per-network presets and fork schedules the
// verifier reads at startup. Presets mirror the consensus-spec preset
// files; the fork schedule mirrors the network config's *_FORK_VERSION /
// *_FORK_EPOCH pairs.
package config

import (
	"errors"
	"fmt"

	"github.com/klave-network/evm-light-client/beacon"
	"github.com/klave-network/evm-light-client/fork"
)

// Preset holds the consensus constants the verifier consumes.
type Preset struct {
	SlotsPerEpoch                uint64
	EpochsPerSyncCommitteePeriod uint64
	SecondsPerSlot               uint64
	MinSyncCommitteeParticipants int
	SyncCommitteeSize            int
	BytesPerLogsBloom            int
	MaxExtraDataBytes            int
}

// Mainnet is the mainnet preset.
var Mainnet = Preset{
	SlotsPerEpoch:                32,
	EpochsPerSyncCommitteePeriod: 256,
	SecondsPerSlot:               12,
	MinSyncCommitteeParticipants: 1,
	SyncCommitteeSize:            512,
	BytesPerLogsBloom:            256,
	MaxExtraDataBytes:            32,
}

// Minimal is the minimal (testing) preset.
var Minimal = Preset{
	SlotsPerEpoch:                8,
	EpochsPerSyncCommitteePeriod: 8,
	SecondsPerSlot:               6,
	MinSyncCommitteeParticipants: 1,
	SyncCommitteeSize:            32,
	BytesPerLogsBloom:            256,
	MaxExtraDataBytes:            32,
}

// Validate rejects presets the verifier cannot operate with.
func (p Preset) Validate() error {
	if p.SlotsPerEpoch == 0 || p.EpochsPerSyncCommitteePeriod == 0 || p.SecondsPerSlot == 0 {
		return errors.New("config: preset time parameters must be non-zero")
	}
	if p.SyncCommitteeSize <= 0 {
		return errors.New("config: sync committee size must be positive")
	}
	if p.MinSyncCommitteeParticipants <= 0 || p.MinSyncCommitteeParticipants > p.SyncCommitteeSize {
		return errors.New("config: min sync committee participants out of range")
	}
	return nil
}

// Config is a network description: preset constants, the genesis fork
// version and the ordered fork schedule.
type Config struct {
	Preset             Preset
	GenesisForkVersion beacon.Version
	Forks              []fork.ForkParameter
}

// ForkParameters builds the validated fork table.
func (c *Config) ForkParameters() (*fork.ForkParameters, error) {
	if err := c.Preset.Validate(); err != nil {
		return nil, err
	}
	return fork.NewForkParameters(c.GenesisForkVersion, c.Forks)
}

// MainnetConfig returns the Ethereum mainnet network description.
func MainnetConfig() Config {
	return Config{
		Preset:             Mainnet,
		GenesisForkVersion: beacon.Version{0x00, 0x00, 0x00, 0x00},
		Forks: []fork.ForkParameter{
			{Version: beacon.Version{0x01, 0x00, 0x00, 0x00}, Epoch: 74240, Spec: fork.AltairForkSpec},
			{Version: beacon.Version{0x02, 0x00, 0x00, 0x00}, Epoch: 144896, Spec: fork.BellatrixForkSpec},
			{Version: beacon.Version{0x03, 0x00, 0x00, 0x00}, Epoch: 194048, Spec: fork.CapellaForkSpec},
			{Version: beacon.Version{0x04, 0x00, 0x00, 0x00}, Epoch: 269568, Spec: fork.DenebForkSpec},
			{Version: beacon.Version{0x05, 0x00, 0x00, 0x00}, Epoch: 364032, Spec: fork.ElectraForkSpec},
		},
	}
}

// SepoliaConfig returns the Sepolia testnet network description.
func SepoliaConfig() Config {
	return Config{
		Preset:             Mainnet,
		GenesisForkVersion: beacon.Version{0x90, 0x00, 0x00, 0x69},
		Forks: []fork.ForkParameter{
			{Version: beacon.Version{0x90, 0x00, 0x00, 0x70}, Epoch: 50, Spec: fork.AltairForkSpec},
			{Version: beacon.Version{0x90, 0x00, 0x00, 0x71}, Epoch: 100, Spec: fork.BellatrixForkSpec},
			{Version: beacon.Version{0x90, 0x00, 0x00, 0x72}, Epoch: 56832, Spec: fork.CapellaForkSpec},
			{Version: beacon.Version{0x90, 0x00, 0x00, 0x73}, Epoch: 132608, Spec: fork.DenebForkSpec},
			{Version: beacon.Version{0x90, 0x00, 0x00, 0x74}, Epoch: 222464, Spec: fork.ElectraForkSpec},
		},
	}
}

// ByNetwork resolves a named built-in network.
func ByNetwork(name string) (Config, error) {
	switch name {
	case "mainnet":
		return MainnetConfig(), nil
	case "sepolia":
		return SepoliaConfig(), nil
	default:
		return Config{}, fmt.Errorf("config: unknown network %q", name)
	}
}
