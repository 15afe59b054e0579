// Package rpc models the beacon-node HTTP API responses the light client
// consumes and converts them into verifier types. The verifier itself is
// format-agnostic; everything JSON-specific stays here.
package rpc

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// GenesisResponse wraps /eth/v1/beacon/genesis.
type GenesisResponse struct {
	Data GenesisData `json:"data"`
}

// GenesisData is the chain's genesis identity.
type GenesisData struct {
	GenesisValidatorsRoot common.Hash    `json:"genesis_validators_root"`
	GenesisTime           common.Decimal `json:"genesis_time"`
	GenesisForkVersion    string         `json:"genesis_fork_version"`
}

// BeaconBlockRootResponse wraps /eth/v1/beacon/blocks/{id}/root.
type BeaconBlockRootResponse struct {
	Data                BeaconBlockRoot `json:"data"`
	ExecutionOptimistic bool            `json:"execution_optimistic"`
}

// BeaconBlockRoot carries a block root.
type BeaconBlockRoot struct {
	Root common.Hash `json:"root"`
}

// BeaconBlockHeaderJSON is the API encoding of a beacon block header.
type BeaconBlockHeaderJSON struct {
	Slot          common.Decimal `json:"slot"`
	ProposerIndex common.Decimal `json:"proposer_index"`
	ParentRoot    common.Hash    `json:"parent_root"`
	StateRoot     common.Hash    `json:"state_root"`
	BodyRoot      common.Hash    `json:"body_root"`
}

// ExecutionPayloadHeaderJSON is the API encoding of an execution payload
// header (Capella/Deneb shape; the blob-gas pair is absent pre-Deneb).
type ExecutionPayloadHeaderJSON struct {
	ParentHash       common.Hash     `json:"parent_hash"`
	FeeRecipient     hexutil.Bytes   `json:"fee_recipient"`
	StateRoot        common.Hash     `json:"state_root"`
	ReceiptsRoot     common.Hash     `json:"receipts_root"`
	LogsBloom        hexutil.Bytes   `json:"logs_bloom"`
	PrevRandao       common.Hash     `json:"prev_randao"`
	BlockNumber      common.Decimal  `json:"block_number"`
	GasLimit         common.Decimal  `json:"gas_limit"`
	GasUsed          common.Decimal  `json:"gas_used"`
	Timestamp        common.Decimal  `json:"timestamp"`
	ExtraData        hexutil.Bytes   `json:"extra_data"`
	BaseFeePerGas    string          `json:"base_fee_per_gas"`
	BlockHash        common.Hash     `json:"block_hash"`
	TransactionsRoot common.Hash     `json:"transactions_root"`
	WithdrawalsRoot  common.Hash     `json:"withdrawals_root"`
	BlobGasUsed      *common.Decimal `json:"blob_gas_used,omitempty"`
	ExcessBlobGas    *common.Decimal `json:"excess_blob_gas,omitempty"`
}

// LightClientHeaderJSON is the API encoding of a light-client header.
type LightClientHeaderJSON struct {
	Beacon          BeaconBlockHeaderJSON       `json:"beacon"`
	Execution       *ExecutionPayloadHeaderJSON `json:"execution,omitempty"`
	ExecutionBranch []common.Hash               `json:"execution_branch,omitempty"`
}

// SyncCommitteeJSON is the API encoding of a sync committee.
type SyncCommitteeJSON struct {
	Pubkeys         []hexutil.Bytes `json:"pubkeys"`
	AggregatePubkey hexutil.Bytes   `json:"aggregate_pubkey"`
}

// SyncAggregateJSON is the API encoding of a sync aggregate.
type SyncAggregateJSON struct {
	SyncCommitteeBits      hexutil.Bytes `json:"sync_committee_bits"`
	SyncCommitteeSignature hexutil.Bytes `json:"sync_committee_signature"`
}

// LightClientBootstrapResponse wraps
// /eth/v1/beacon/light_client/bootstrap/{root}.
type LightClientBootstrapResponse struct {
	Data LightClientBootstrapData `json:"data"`
}

// LightClientBootstrapData is the bootstrap payload.
type LightClientBootstrapData struct {
	Header                     LightClientHeaderJSON `json:"header"`
	CurrentSyncCommittee       SyncCommitteeJSON     `json:"current_sync_committee"`
	CurrentSyncCommitteeBranch []common.Hash         `json:"current_sync_committee_branch"`
}

// LightClientUpdatesResponse wraps /eth/v1/beacon/light_client/updates.
type LightClientUpdatesResponse []LightClientUpdateResponse

// LightClientUpdateResponse is one element of the updates listing; Version
// names the fork the update was built at.
type LightClientUpdateResponse struct {
	Version string                `json:"version"`
	Data    LightClientUpdateData `json:"data"`
}

// LightClientUpdateData is a full update. An all-default
// next_sync_committee means "absent"; an all-default finalized_header
// means the update proves no finality.
type LightClientUpdateData struct {
	AttestedHeader          LightClientHeaderJSON `json:"attested_header"`
	NextSyncCommittee       SyncCommitteeJSON     `json:"next_sync_committee"`
	NextSyncCommitteeBranch []common.Hash         `json:"next_sync_committee_branch"`
	FinalizedHeader         LightClientHeaderJSON `json:"finalized_header"`
	FinalityBranch          []common.Hash         `json:"finality_branch"`
	SyncAggregate           SyncAggregateJSON     `json:"sync_aggregate"`
	SignatureSlot           common.Decimal        `json:"signature_slot"`
}

// LightClientFinalityUpdateResponse wraps
// /eth/v1/beacon/light_client/finality_update.
type LightClientFinalityUpdateResponse struct {
	Data LightClientFinalityUpdateData `json:"data"`
}

// LightClientFinalityUpdateData is an update that never carries a next
// sync committee.
type LightClientFinalityUpdateData struct {
	AttestedHeader  LightClientHeaderJSON `json:"attested_header"`
	FinalizedHeader LightClientHeaderJSON `json:"finalized_header"`
	FinalityBranch  []common.Hash         `json:"finality_branch"`
	SyncAggregate   SyncAggregateJSON     `json:"sync_aggregate"`
	SignatureSlot   common.Decimal        `json:"signature_slot"`
}
