// Package fork maps epochs to fork identities and the per-fork generalized
// Merkle indices the light-client verifier must use. Beacon state layouts
// change across forks, so the gindex of the same logical field moves; the
// fork table is the single authority for which indices apply at an epoch.
package fork

import (
	"errors"
	"fmt"

	"github.com/klave-network/evm-light-client/beacon"
)

// Positions of the well-known forks inside an ordered fork table.
const (
	AltairIndex = iota
	BellatrixIndex
	CapellaIndex
	DenebIndex
	ElectraIndex
)

// Fork table errors.
var (
	ErrNotSupportedLightClient     = errors.New("fork: genesis-only chains do not support the light client protocol")
	ErrInvalidForkParametersOrder  = errors.New("fork: fork activation epochs must be non-decreasing")
	ErrNotSupportedExecutionFormat = errors.New("fork: execution payload not supported at this fork")
)

// UnknownForkError reports an object claiming a fork the table does not
// contain.
type UnknownForkError struct {
	Epoch   beacon.Epoch
	Version beacon.Version
	Index   int
}

func (e *UnknownForkError) Error() string {
	return fmt.Sprintf("fork: unknown fork: epoch=%d version=%s index=%d", e.Epoch, e.Version, e.Index)
}

// NotSupportedExecutionPayloadError reports a header carrying an execution
// payload at a fork whose light-client header has none.
type NotSupportedExecutionPayloadError struct {
	Version beacon.Version
}

func (e *NotSupportedExecutionPayloadError) Error() string {
	return fmt.Sprintf("fork: fork version %s does not support execution payload", e.Version)
}

// ForkSpec carries the generalized indices in effect at a fork.
type ForkSpec struct {
	// FinalizedRootGIndex is get_generalized_index(BeaconState,
	// 'finalized_checkpoint', 'root').
	FinalizedRootGIndex uint64
	// CurrentSyncCommitteeGIndex is get_generalized_index(BeaconState,
	// 'current_sync_committee').
	CurrentSyncCommitteeGIndex uint64
	// NextSyncCommitteeGIndex is get_generalized_index(BeaconState,
	// 'next_sync_committee').
	NextSyncCommitteeGIndex uint64
	// ExecutionPayloadGIndex is get_generalized_index(BeaconBlockBody,
	// 'execution_payload').
	ExecutionPayloadGIndex uint64
	// ExecutionPayloadStateRootGIndex is
	// get_generalized_index(ExecutionPayload, 'state_root').
	ExecutionPayloadStateRootGIndex uint64
	// ExecutionPayloadBlockNumberGIndex is
	// get_generalized_index(ExecutionPayload, 'block_number').
	ExecutionPayloadBlockNumberGIndex uint64
}

// GenesisSpec applies before the first tabled fork activates.
var GenesisSpec = ForkSpec{
	FinalizedRootGIndex: 105,
}

// ForkParameter is one row of the fork table.
type ForkParameter struct {
	Version beacon.Version
	Epoch   beacon.Epoch
	Spec    ForkSpec
}

// ForkParameters is the ordered fork table plus the genesis version.
// Immutable after construction.
type ForkParameters struct {
	genesisVersion beacon.Version
	forks          []ForkParameter
}

// NewForkParameters validates and builds a fork table. The table must be
// non-empty (a genesis-only chain cannot run the light-client protocol)
// with non-decreasing activation epochs.
func NewForkParameters(genesisVersion beacon.Version, forks []ForkParameter) (*ForkParameters, error) {
	if len(forks) == 0 {
		return nil, ErrNotSupportedLightClient
	}
	for i := 1; i < len(forks); i++ {
		if forks[i-1].Epoch > forks[i].Epoch {
			return nil, ErrInvalidForkParametersOrder
		}
	}
	cp := make([]ForkParameter, len(forks))
	copy(cp, forks)
	return &ForkParameters{genesisVersion: genesisVersion, forks: cp}, nil
}

// GenesisVersion returns the pre-fork version.
func (fp *ForkParameters) GenesisVersion() beacon.Version {
	return fp.genesisVersion
}

// Forks returns the ordered fork rows.
func (fp *ForkParameters) Forks() []ForkParameter {
	return fp.forks
}

// computeFork returns the last fork whose activation epoch is <= epoch,
// with its table position. ok is false before the first activation.
func (fp *ForkParameters) computeFork(epoch beacon.Epoch) (int, *ForkParameter, bool) {
	for i := len(fp.forks) - 1; i >= 0; i-- {
		if epoch >= fp.forks[i].Epoch {
			return i, &fp.forks[i], true
		}
	}
	return 0, nil, false
}

// ComputeForkVersion returns the fork version active at epoch, falling back
// to the genesis version before the first activation.
func (fp *ForkParameters) ComputeForkVersion(epoch beacon.Epoch) beacon.Version {
	if _, f, ok := fp.computeFork(epoch); ok {
		return f.Version
	}
	return fp.genesisVersion
}

// ComputeForkSpec returns the gindex set active at epoch, falling back to
// GenesisSpec before the first activation.
func (fp *ForkParameters) ComputeForkSpec(epoch beacon.Epoch) ForkSpec {
	if _, f, ok := fp.computeFork(epoch); ok {
		return f.Spec
	}
	return GenesisSpec
}

// IsFork reports whether the fork active at epoch is at or after the given
// table position.
func (fp *ForkParameters) IsFork(epoch beacon.Epoch, forkIndex int) bool {
	if current, _, ok := fp.computeFork(epoch); ok {
		return current >= forkIndex
	}
	return false
}
