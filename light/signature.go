package light

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/klave-network/evm-light-client/beacon"
	"github.com/klave-network/evm-light-client/bls"
)

// VerifySyncCommitteeAggregate checks that a sufficient quorum of the given
// committee signed the attested block root at the signature slot.
//
// The signing fork version is derived from the signature slot. Participants
// are selected by the aggregate's bitvector in committee order, so the
// result is independent of any iteration order.
func (c *Context) VerifySyncCommitteeAggregate(
	committee *beacon.SyncCommittee,
	aggregate *beacon.SyncAggregate,
	signatureSlot beacon.Slot,
	attestedBlockRoot common.Hash,
) error {
	participation := aggregate.ParticipationCount()
	if participation < c.minSyncCommitteeParticipants {
		return ErrInsufficientParticipation
	}

	domain := c.DomainAtSignatureSlot(signatureSlot)
	signingRoot := beacon.ComputeSigningRoot(attestedBlockRoot, domain)

	participants := aggregate.ParticipantPubkeys(committee)
	if !bls.FastAggregateVerify(participants, [32]byte(signingRoot), aggregate.SyncCommitteeSignature) {
		return ErrInvalidSignature
	}

	// Quorum: participation/size >= threshold, in integer arithmetic.
	threshold := c.signatureThreshold
	if uint64(participation)*threshold.Denominator < uint64(len(committee.Pubkeys))*threshold.Numerator {
		return ErrInsufficientParticipation
	}
	return nil
}
