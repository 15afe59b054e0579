package light

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/klave-network/evm-light-client/beacon"
)

// LightClientHeader is a beacon block header optionally paired with the
// execution payload header it commits to. From Capella onward the execution
// part is present and must merkleize into the beacon body root.
type LightClientHeader struct {
	Beacon          beacon.BeaconBlockHeader
	Execution       *beacon.ExecutionPayloadHeader
	ExecutionBranch []common.Hash
}

// LightClientBootstrap initializes a store from an out-of-band trusted
// checkpoint.
type LightClientBootstrap struct {
	Header                     LightClientHeader
	CurrentSyncCommittee       beacon.SyncCommittee
	CurrentSyncCommitteeBranch []common.Hash
}

// LightClientUpdate advances a store. The next-sync-committee and finality
// pairs are optional together: a committee without its branch (or the
// reverse) is malformed.
type LightClientUpdate struct {
	AttestedHeader          LightClientHeader
	NextSyncCommittee       *beacon.SyncCommittee
	NextSyncCommitteeBranch []common.Hash
	FinalizedHeader         *LightClientHeader
	FinalityBranch          []common.Hash
	SyncAggregate           beacon.SyncAggregate
	SignatureSlot           beacon.Slot
}

// HasFinality reports whether the update proves a finalized header.
func (u *LightClientUpdate) HasFinality() bool {
	return u.FinalizedHeader != nil
}

// HasNextSyncCommittee reports whether the update proves a next sync
// committee.
func (u *LightClientUpdate) HasNextSyncCommittee() bool {
	return u.NextSyncCommittee != nil
}

// FinalizedSlot returns the finalized header's slot, or 0 when the update
// carries no finality proof.
func (u *LightClientUpdate) FinalizedSlot() beacon.Slot {
	if u.FinalizedHeader == nil {
		return 0
	}
	return u.FinalizedHeader.Beacon.Slot
}

// Participation returns the number of committee members that signed.
func (u *LightClientUpdate) Participation() uint64 {
	return uint64(u.SyncAggregate.ParticipationCount())
}

// isZeroBranch reports whether every element of a branch is the zero hash.
// Wire encodings pad absent proofs with zero branches.
func isZeroBranch(branch []common.Hash) bool {
	for _, h := range branch {
		if h != (common.Hash{}) {
			return false
		}
	}
	return true
}
