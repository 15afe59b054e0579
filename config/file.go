package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/klave-network/evm-light-client/beacon"
	"github.com/klave-network/evm-light-client/fork"
)

// fileConfig is the YAML schema for a network description. Fork rows name
// one of the well-known forks so the matching gindex set can be attached.
type fileConfig struct {
	Preset struct {
		SlotsPerEpoch                uint64 `yaml:"SLOTS_PER_EPOCH"`
		EpochsPerSyncCommitteePeriod uint64 `yaml:"EPOCHS_PER_SYNC_COMMITTEE_PERIOD"`
		SecondsPerSlot               uint64 `yaml:"SECONDS_PER_SLOT"`
		MinSyncCommitteeParticipants int    `yaml:"MIN_SYNC_COMMITTEE_PARTICIPANTS"`
		SyncCommitteeSize            int    `yaml:"SYNC_COMMITTEE_SIZE"`
		BytesPerLogsBloom            int    `yaml:"BYTES_PER_LOGS_BLOOM"`
		MaxExtraDataBytes            int    `yaml:"MAX_EXTRA_DATA_BYTES"`
	} `yaml:"preset"`
	GenesisForkVersion string     `yaml:"GENESIS_FORK_VERSION"`
	Forks              []fileFork `yaml:"forks"`
}

type fileFork struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
	Epoch   uint64 `yaml:"epoch"`
}

// LoadFile reads a YAML network description.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a YAML network description and resolves fork names to
// their gindex sets.
func Parse(data []byte) (Config, error) {
	var fc fileConfig
	if err := yaml.UnmarshalStrict(data, &fc); err != nil {
		return Config{}, fmt.Errorf("config: parse yaml: %w", err)
	}

	genesisVersion, err := beacon.VersionFromHex(fc.GenesisForkVersion)
	if err != nil {
		return Config{}, err
	}

	forks := make([]fork.ForkParameter, 0, len(fc.Forks))
	for _, f := range fc.Forks {
		idx, ok := fork.IndexByName(f.Name)
		if !ok {
			return Config{}, fmt.Errorf("config: unknown fork name %q", f.Name)
		}
		spec, _ := fork.SpecByIndex(idx)
		version, err := beacon.VersionFromHex(f.Version)
		if err != nil {
			return Config{}, fmt.Errorf("config: fork %s: %w", f.Name, err)
		}
		forks = append(forks, fork.ForkParameter{
			Version: version,
			Epoch:   beacon.Epoch(f.Epoch),
			Spec:    spec,
		})
	}

	cfg := Config{
		Preset: Preset{
			SlotsPerEpoch:                fc.Preset.SlotsPerEpoch,
			EpochsPerSyncCommitteePeriod: fc.Preset.EpochsPerSyncCommitteePeriod,
			SecondsPerSlot:               fc.Preset.SecondsPerSlot,
			MinSyncCommitteeParticipants: fc.Preset.MinSyncCommitteeParticipants,
			SyncCommitteeSize:            fc.Preset.SyncCommitteeSize,
			BytesPerLogsBloom:            fc.Preset.BytesPerLogsBloom,
			MaxExtraDataBytes:            fc.Preset.MaxExtraDataBytes,
		},
		GenesisForkVersion: genesisVersion,
		Forks:              forks,
	}
	if err := cfg.Preset.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
