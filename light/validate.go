package light

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"github.com/klave-network/evm-light-client/beacon"
	"github.com/klave-network/evm-light-client/fork"
	"github.com/klave-network/evm-light-client/merkle"
	"github.com/klave-network/evm-light-client/ssz"
)

// payloadVersionAt maps a header's epoch to the execution payload shape in
// effect there.
func (c *Context) payloadVersionAt(epoch beacon.Epoch) beacon.PayloadVersion {
	if c.forkParameters.IsFork(epoch, fork.DenebIndex) {
		return beacon.PayloadDeneb
	}
	return beacon.PayloadCapella
}

// validateHeader checks a light-client header's execution payload against
// the fork active at the header's own epoch: Capella onward the payload
// must be present and merkleize into the beacon body root at the fork's
// execution-payload gindex; before Capella it must be absent.
func (c *Context) validateHeader(header *LightClientHeader) error {
	epoch := c.EpochAtSlot(header.Beacon.Slot)

	if !c.forkParameters.IsFork(epoch, fork.CapellaIndex) {
		if header.Execution != nil {
			return &fork.NotSupportedExecutionPayloadError{Version: c.ForkVersion(epoch)}
		}
		return nil
	}

	if header.Execution == nil {
		return ErrMissingExecutionPayload
	}
	spec := c.ForkSpecAtEpoch(epoch)
	payloadRoot := header.Execution.HashTreeRoot(c.payloadVersionAt(epoch), c.maxExtraDataBytes)
	if err := merkle.VerifyBranch(payloadRoot, header.ExecutionBranch, spec.ExecutionPayloadGIndex, header.Beacon.BodyRoot); err != nil {
		return fmt.Errorf("light: execution branch: %w", err)
	}
	return nil
}

// ValidateBootstrap checks a bootstrap against the operator's trusted block
// root: the header must hash to the trusted root, the committee branch must
// prove the current sync committee under the header's state root, and the
// committee's aggregate pubkey must equal the aggregation of its members.
func (c *Context) ValidateBootstrap(bootstrap *LightClientBootstrap, trustedBlockRoot common.Hash) error {
	if trustedBlockRoot != (common.Hash{}) {
		if got := bootstrap.Header.Beacon.HashTreeRoot(); got != trustedBlockRoot {
			return fmt.Errorf("light: bootstrap header root %s does not match trusted root %s", got, trustedBlockRoot)
		}
	}
	if err := c.validateHeader(&bootstrap.Header); err != nil {
		return err
	}

	spec := c.ForkSpecAtSlot(bootstrap.Header.Beacon.Slot)
	leaf := bootstrap.CurrentSyncCommittee.HashTreeRoot()
	if err := merkle.VerifyBranch(leaf, bootstrap.CurrentSyncCommitteeBranch, spec.CurrentSyncCommitteeGIndex, bootstrap.Header.Beacon.StateRoot); err != nil {
		return fmt.Errorf("light: current sync committee branch: %w", err)
	}
	if err := bootstrap.CurrentSyncCommittee.ValidateAggregate(); err != nil {
		return err
	}
	return nil
}

// storeView is the read-only projection of the Store that validation
// consults.
type storeView struct {
	finalizedSlot        beacon.Slot
	currentSyncCommittee *beacon.SyncCommittee
	nextSyncCommittee    *beacon.SyncCommittee
}

// validateUpdate runs the full update validation against a store snapshot:
// time sanity, period relation, committee selection, finality and
// next-committee branches, per-header execution proofs and the aggregate
// signature. It never mutates anything; on success it returns the committee
// that signed.
func (c *Context) validateUpdate(view *storeView, update *LightClientUpdate, currentSlot beacon.Slot) (*beacon.SyncCommittee, error) {
	attestedSlot := update.AttestedHeader.Beacon.Slot

	// Time sanity.
	if update.SignatureSlot <= attestedSlot {
		return nil, ErrNonMonotonicSlot
	}
	if update.HasFinality() && attestedSlot < update.FinalizedSlot() {
		return nil, ErrNonMonotonicSlot
	}
	if update.SignatureSlot > currentSlot {
		return nil, ErrFutureSignatureSlot
	}

	// Period relation: with a known next committee the signature may come
	// from the store period or the one after; otherwise only the store
	// period itself.
	storePeriod := c.SyncCommitteePeriod(view.finalizedSlot)
	signaturePeriod := c.SyncCommitteePeriod(update.SignatureSlot)
	if view.nextSyncCommittee != nil {
		if signaturePeriod != storePeriod && signaturePeriod != storePeriod+1 {
			return nil, ErrSignatureSlotNotInWindow
		}
	} else if signaturePeriod != storePeriod {
		return nil, ErrSignatureSlotNotInWindow
	}

	// Committee selection.
	committee := view.currentSyncCommittee
	if signaturePeriod == storePeriod+1 {
		if view.nextSyncCommittee == nil {
			return nil, ErrUnknownNextSyncCommittee
		}
		committee = view.nextSyncCommittee
	}

	attestedSpec := c.ForkSpecAtSlot(attestedSlot)

	// Finality branch.
	if update.HasFinality() {
		leaf := update.FinalizedHeader.Beacon.HashTreeRoot()
		if err := merkle.VerifyBranch(leaf, update.FinalityBranch, attestedSpec.FinalizedRootGIndex, update.AttestedHeader.Beacon.StateRoot); err != nil {
			return nil, fmt.Errorf("light: finality branch: %w", err)
		}
	} else if !isZeroBranch(update.FinalityBranch) {
		return nil, ErrUnexpectedFinalityBranch
	}

	// Next-committee branch, plus consistency with an already-known next
	// committee for the same period.
	if update.HasNextSyncCommittee() {
		if view.nextSyncCommittee != nil && c.SyncCommitteePeriod(attestedSlot) == storePeriod {
			if update.NextSyncCommittee.HashTreeRoot() != view.nextSyncCommittee.HashTreeRoot() {
				return nil, ErrNextSyncCommitteeMismatch
			}
		}
		leaf := update.NextSyncCommittee.HashTreeRoot()
		if err := merkle.VerifyBranch(leaf, update.NextSyncCommitteeBranch, attestedSpec.NextSyncCommitteeGIndex, update.AttestedHeader.Beacon.StateRoot); err != nil {
			return nil, fmt.Errorf("light: next sync committee branch: %w", err)
		}
		if err := update.NextSyncCommittee.ValidateAggregate(); err != nil {
			return nil, err
		}
	} else if !isZeroBranch(update.NextSyncCommitteeBranch) {
		return nil, ErrUnexpectedCommitteeBranch
	}

	// Execution payload proofs run against each header's own epoch.
	if err := c.validateHeader(&update.AttestedHeader); err != nil {
		return nil, err
	}
	if update.HasFinality() && !update.FinalizedHeader.Beacon.IsEmpty() {
		if err := c.validateHeader(update.FinalizedHeader); err != nil {
			return nil, err
		}
	}

	// Aggregate signature over the attested block root.
	attestedRoot := update.AttestedHeader.Beacon.HashTreeRoot()
	if err := c.VerifySyncCommitteeAggregate(committee, &update.SyncAggregate, update.SignatureSlot, attestedRoot); err != nil {
		return nil, err
	}
	return committee, nil
}

// VerifyExecutionPayloadStateRoot proves an execution state root against a
// verified execution payload root, for execution-layer consumers.
func (c *Context) VerifyExecutionPayloadStateRoot(headerSlot beacon.Slot, payloadRoot, stateRoot common.Hash, branch []common.Hash) error {
	spec := c.ForkSpecAtSlot(headerSlot)
	return merkle.VerifyBranch(stateRoot, branch, spec.ExecutionPayloadStateRootGIndex, payloadRoot)
}

// VerifyExecutionPayloadBlockNumber proves an execution block number
// against a verified execution payload root.
func (c *Context) VerifyExecutionPayloadBlockNumber(headerSlot beacon.Slot, payloadRoot common.Hash, blockNumber uint64, branch []common.Hash) error {
	spec := c.ForkSpecAtSlot(headerSlot)
	leaf := common.Hash(ssz.HashTreeRootUint64(blockNumber))
	return merkle.VerifyBranch(leaf, branch, spec.ExecutionPayloadBlockNumberGIndex, payloadRoot)
}
