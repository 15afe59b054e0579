package lcstore

import "github.com/ethereum/go-ethereum/common"

// StateProjection is the persisted summary of a verifier store. It is a
// host-side convenience, not a consensus object; byte-exact compatibility
// across versions is not required.
type StateProjection struct {
	FinalizedSlot      uint64      `json:"finalized_slot"`
	FinalizedStateRoot common.Hash `json:"finalized_state_root"`
	FinalizedBlockRoot common.Hash `json:"finalized_block_root"`
	OptimisticSlot     uint64      `json:"optimistic_slot"`
	OptimisticRoot     common.Hash `json:"optimistic_block_root"`
	Period             uint64      `json:"period"`
	NextCommitteeKnown bool        `json:"next_committee_known"`
	CurrentMaxActive   uint64      `json:"current_max_active_participants"`
	PreviousMaxActive  uint64      `json:"previous_max_active_participants"`
}
