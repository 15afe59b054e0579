// Package light implements the consensus verifier core of an Ethereum
// beacon-chain light client: the chain context, the sync-committee
// signature verifier, the update validator and the store application rules.
// The verifier is passive; it receives bootstrap and update objects from an
// adapter and either advances its store or returns a typed rejection.
package light

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/klave-network/evm-light-client/beacon"
	"github.com/klave-network/evm-light-client/config"
	"github.com/klave-network/evm-light-client/fork"
)

// Fraction is a participation threshold. The usual value is 2/3.
type Fraction struct {
	Numerator   uint64
	Denominator uint64
}

// NewFraction validates a threshold: the denominator must be non-zero and
// the numerator must not exceed it.
func NewFraction(numerator, denominator uint64) (Fraction, error) {
	if denominator == 0 || numerator > denominator {
		return Fraction{}, ErrInvalidFraction
	}
	return Fraction{Numerator: numerator, Denominator: denominator}, nil
}

// TwoThirds is the supermajority threshold used on all public networks.
var TwoThirds = Fraction{Numerator: 2, Denominator: 3}

// Context carries the chain parameters and clock the verifier needs:
// genesis data, the fork table, preset constants and the signature
// threshold. Immutable after construction and freely shareable.
type Context struct {
	forkParameters               *fork.ForkParameters
	secondsPerSlot               uint64
	slotsPerEpoch                uint64
	epochsPerSyncCommitteePeriod uint64
	genesisTime                  uint64
	genesisValidatorsRoot        common.Hash
	minSyncCommitteeParticipants int
	syncCommitteeSize            int
	maxExtraDataBytes            int
	signatureThreshold           Fraction
	now                          func() uint64
}

// NewContext builds a verification context from a network config and the
// chain's genesis data. now supplies the verifier's local unix clock; it is
// only consulted by CurrentSlot.
func NewContext(
	cfg config.Config,
	genesisValidatorsRoot common.Hash,
	genesisTime uint64,
	signatureThreshold Fraction,
	now func() uint64,
) (*Context, error) {
	if _, err := NewFraction(signatureThreshold.Numerator, signatureThreshold.Denominator); err != nil {
		return nil, err
	}
	params, err := cfg.ForkParameters()
	if err != nil {
		return nil, err
	}
	return &Context{
		forkParameters:               params,
		secondsPerSlot:               cfg.Preset.SecondsPerSlot,
		slotsPerEpoch:                cfg.Preset.SlotsPerEpoch,
		epochsPerSyncCommitteePeriod: cfg.Preset.EpochsPerSyncCommitteePeriod,
		genesisTime:                  genesisTime,
		genesisValidatorsRoot:        genesisValidatorsRoot,
		minSyncCommitteeParticipants: cfg.Preset.MinSyncCommitteeParticipants,
		syncCommitteeSize:            cfg.Preset.SyncCommitteeSize,
		maxExtraDataBytes:            cfg.Preset.MaxExtraDataBytes,
		signatureThreshold:           signatureThreshold,
		now:                          now,
	}, nil
}

// ForkParameters returns the fork table.
func (c *Context) ForkParameters() *fork.ForkParameters {
	return c.forkParameters
}

// GenesisValidatorsRoot returns the chain identity used in domain
// computation.
func (c *Context) GenesisValidatorsRoot() common.Hash {
	return c.genesisValidatorsRoot
}

// SyncCommitteeSize returns the per-network committee size.
func (c *Context) SyncCommitteeSize() int {
	return c.syncCommitteeSize
}

// SignatureThreshold returns the configured participation threshold.
func (c *Context) SignatureThreshold() Fraction {
	return c.signatureThreshold
}

// EpochAtSlot returns slot / SLOTS_PER_EPOCH.
func (c *Context) EpochAtSlot(slot beacon.Slot) beacon.Epoch {
	return beacon.Epoch(uint64(slot) / c.slotsPerEpoch)
}

// SlotAtTimestamp converts a unix timestamp to a slot number.
func (c *Context) SlotAtTimestamp(timestamp uint64) (beacon.Slot, error) {
	if timestamp < c.genesisTime {
		return 0, ErrTimestampBeforeGenesis
	}
	return beacon.Slot((timestamp - c.genesisTime) / c.secondsPerSlot), nil
}

// CurrentSlot derives the slot for the verifier's local clock. Before
// genesis it reports slot 0.
func (c *Context) CurrentSlot() beacon.Slot {
	slot, err := c.SlotAtTimestamp(c.now())
	if err != nil {
		return 0
	}
	return slot
}

// SyncCommitteePeriod returns the sync-committee period serving a slot.
func (c *Context) SyncCommitteePeriod(slot beacon.Slot) uint64 {
	return uint64(c.EpochAtSlot(slot)) / c.epochsPerSyncCommitteePeriod
}

// ForkVersion returns the fork version active at an epoch.
func (c *Context) ForkVersion(epoch beacon.Epoch) beacon.Version {
	return c.forkParameters.ComputeForkVersion(epoch)
}

// ForkSpecAtEpoch returns the gindex set active at an epoch.
func (c *Context) ForkSpecAtEpoch(epoch beacon.Epoch) fork.ForkSpec {
	return c.forkParameters.ComputeForkSpec(epoch)
}

// ForkSpecAtSlot returns the gindex set active at a slot's epoch.
func (c *Context) ForkSpecAtSlot(slot beacon.Slot) fork.ForkSpec {
	return c.ForkSpecAtEpoch(c.EpochAtSlot(slot))
}

// DomainAtSignatureSlot computes the sync-committee signing domain for a
// signature slot. The signing fork is derived from the signature slot, not
// the attested slot; the two differ across fork boundaries.
func (c *Context) DomainAtSignatureSlot(signatureSlot beacon.Slot) beacon.Domain {
	version := c.ForkVersion(c.EpochAtSlot(signatureSlot))
	return beacon.ComputeDomain(beacon.DomainTypeSyncCommittee, version, c.genesisValidatorsRoot)
}
