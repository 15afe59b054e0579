package beacon

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/klave-network/evm-light-client/ssz"
)

// PayloadVersion selects the execution payload header shape, which grew
// fields across forks.
type PayloadVersion int

const (
	// PayloadCapella is the 15-field header introduced with withdrawals.
	PayloadCapella PayloadVersion = iota
	// PayloadDeneb appends blob_gas_used and excess_blob_gas; Electra
	// keeps this shape.
	PayloadDeneb
)

// ExecutionPayloadHeader is the consensus-side summary of an execution
// block, carried inside light-client headers from Capella onward. Sizes of
// LogsBloom and ExtraData are per-network preset values checked at the
// decoding boundary.
type ExecutionPayloadHeader struct {
	ParentHash       common.Hash
	FeeRecipient     common.Address
	StateRoot        common.Hash
	ReceiptsRoot     common.Hash
	LogsBloom        []byte
	PrevRandao       common.Hash
	BlockNumber      uint64
	GasLimit         uint64
	GasUsed          uint64
	Timestamp        uint64
	ExtraData        []byte
	BaseFeePerGas    *uint256.Int
	BlockHash        common.Hash
	TransactionsRoot common.Hash
	WithdrawalsRoot  common.Hash

	// Deneb onward.
	BlobGasUsed   uint64
	ExcessBlobGas uint64
}

// HashTreeRoot computes the SSZ hash tree root of the payload header under
// the given shape. MaxExtraDataBytes bounds the extra_data byte list per
// the network preset.
func (h *ExecutionPayloadHeader) HashTreeRoot(v PayloadVersion, maxExtraDataBytes int) common.Hash {
	baseFee := h.BaseFeePerGas
	if baseFee == nil {
		baseFee = uint256.NewInt(0)
	}
	// SSZ uint256 chunks are little-endian; Bytes32 is big-endian.
	var baseFeeChunk [32]byte
	be := baseFee.Bytes32()
	for i := 0; i < 32; i++ {
		baseFeeChunk[i] = be[31-i]
	}

	fields := [][32]byte{
		[32]byte(h.ParentHash),
		addressRoot(h.FeeRecipient),
		[32]byte(h.StateRoot),
		[32]byte(h.ReceiptsRoot),
		ssz.HashTreeRootByteVector(h.LogsBloom),
		[32]byte(h.PrevRandao),
		ssz.HashTreeRootUint64(h.BlockNumber),
		ssz.HashTreeRootUint64(h.GasLimit),
		ssz.HashTreeRootUint64(h.GasUsed),
		ssz.HashTreeRootUint64(h.Timestamp),
		ssz.HashTreeRootByteList(h.ExtraData, maxExtraDataBytes),
		baseFeeChunk,
		[32]byte(h.BlockHash),
		[32]byte(h.TransactionsRoot),
		[32]byte(h.WithdrawalsRoot),
	}
	if v >= PayloadDeneb {
		fields = append(fields,
			ssz.HashTreeRootUint64(h.BlobGasUsed),
			ssz.HashTreeRootUint64(h.ExcessBlobGas),
		)
	}
	return common.Hash(ssz.HashTreeRootContainer(fields))
}

// addressRoot chunks a 20-byte address into a zero-padded leaf.
func addressRoot(a common.Address) [32]byte {
	var chunk [32]byte
	copy(chunk[:], a[:])
	return chunk
}
