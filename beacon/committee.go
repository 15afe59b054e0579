package beacon

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/klave-network/evm-light-client/bls"
	"github.com/klave-network/evm-light-client/ssz"
)

// SyncCommittee is the rotating validator subset that signs block roots for
// light clients. The pubkey count is the per-network SYNC_COMMITTEE_SIZE,
// validated once at acceptance.
type SyncCommittee struct {
	Pubkeys         []bls.PublicKey
	AggregatePubkey bls.PublicKey
}

// HashTreeRoot computes the SSZ hash tree root of the committee: the
// pubkey-vector root and the aggregate-pubkey root merkleized as a
// two-field container.
func (sc *SyncCommittee) HashTreeRoot() common.Hash {
	roots := make([][32]byte, len(sc.Pubkeys))
	for i := range sc.Pubkeys {
		roots[i] = pubkeyRoot(sc.Pubkeys[i])
	}
	fields := [][32]byte{
		ssz.HashTreeRootVector(roots),
		pubkeyRoot(sc.AggregatePubkey),
	}
	return common.Hash(ssz.HashTreeRootContainer(fields))
}

// ValidateAggregate checks once that the stored aggregate pubkey equals the
// BLS aggregation of the member pubkeys. Accepted committees are trusted
// afterwards.
func (sc *SyncCommittee) ValidateAggregate() error {
	return bls.VerifyAggregatePubkey(sc.Pubkeys, sc.AggregatePubkey)
}

// IsZero reports whether every pubkey in the committee is the zero
// sentinel. A zero committee on the wire means "absent".
func (sc *SyncCommittee) IsZero() bool {
	if !sc.AggregatePubkey.IsZero() {
		return false
	}
	for i := range sc.Pubkeys {
		if !sc.Pubkeys[i].IsZero() {
			return false
		}
	}
	return true
}

// pubkeyRoot merkleizes a 48-byte pubkey as an SSZ byte vector: two chunks,
// the second zero-padded.
func pubkeyRoot(pk bls.PublicKey) [32]byte {
	return ssz.HashTreeRootByteVector(pk[:])
}

// SyncAggregate carries the committee participation bitvector and the
// aggregate BLS signature over the signing root.
type SyncAggregate struct {
	SyncCommitteeBits      ssz.Bitvector
	SyncCommitteeSignature bls.Signature
}

// ParticipantPubkeys returns the pubkeys whose participation bit is set,
// in committee order.
func (sa *SyncAggregate) ParticipantPubkeys(committee *SyncCommittee) []bls.PublicKey {
	var participants []bls.PublicKey
	for i := range committee.Pubkeys {
		if sa.SyncCommitteeBits.Get(i) {
			participants = append(participants, committee.Pubkeys[i])
		}
	}
	return participants
}

// ParticipationCount returns the number of set participation bits.
func (sa *SyncAggregate) ParticipationCount() int {
	return sa.SyncCommitteeBits.Count()
}
