package fork

// Per-fork generalized-index sets. Values follow the consensus
// specification's container layouts:
//
//   - finalized_checkpoint.root, current_sync_committee and
//     next_sync_committee sit in the BeaconState; Electra widens the state
//     to 64 leaves, moving all three.
//   - execution_payload sits in the BeaconBlockBody from Bellatrix onward.
//   - state_root and block_number sit in the ExecutionPayload; Deneb widens
//     the payload to 32 leaves.

// AltairForkSpec has no execution payload in the light-client header.
var AltairForkSpec = ForkSpec{
	FinalizedRootGIndex:        105,
	CurrentSyncCommitteeGIndex: 54,
	NextSyncCommitteeGIndex:    55,
}

// BellatrixForkSpec introduces the execution payload in the block body.
var BellatrixForkSpec = ForkSpec{
	FinalizedRootGIndex:               105,
	CurrentSyncCommitteeGIndex:        54,
	NextSyncCommitteeGIndex:           55,
	ExecutionPayloadGIndex:            25,
	ExecutionPayloadStateRootGIndex:   18,
	ExecutionPayloadBlockNumberGIndex: 22,
}

// CapellaForkSpec adds withdrawals without moving any tracked field.
var CapellaForkSpec = ForkSpec{
	FinalizedRootGIndex:               105,
	CurrentSyncCommitteeGIndex:        54,
	NextSyncCommitteeGIndex:           55,
	ExecutionPayloadGIndex:            25,
	ExecutionPayloadStateRootGIndex:   18,
	ExecutionPayloadBlockNumberGIndex: 22,
}

// DenebForkSpec widens the execution payload to 32 leaves (blob gas
// fields).
var DenebForkSpec = ForkSpec{
	FinalizedRootGIndex:               105,
	CurrentSyncCommitteeGIndex:        54,
	NextSyncCommitteeGIndex:           55,
	ExecutionPayloadGIndex:            25,
	ExecutionPayloadStateRootGIndex:   34,
	ExecutionPayloadBlockNumberGIndex: 38,
}

// ElectraForkSpec widens the beacon state to 64 leaves, moving the
// finalized checkpoint and both sync committees.
var ElectraForkSpec = ForkSpec{
	FinalizedRootGIndex:               169,
	CurrentSyncCommitteeGIndex:        86,
	NextSyncCommitteeGIndex:           87,
	ExecutionPayloadGIndex:            25,
	ExecutionPayloadStateRootGIndex:   34,
	ExecutionPayloadBlockNumberGIndex: 38,
}
