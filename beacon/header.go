package beacon

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/klave-network/evm-light-client/ssz"
)

// BeaconBlockHeader is the consensus block header.
//
// https://github.com/ethereum/consensus-specs/blob/dev/specs/phase0/beacon-chain.md#beaconblockheader
type BeaconBlockHeader struct {
	Slot          Slot
	ProposerIndex uint64
	ParentRoot    common.Hash
	StateRoot     common.Hash
	BodyRoot      common.Hash
}

// HashTreeRoot computes the SSZ hash tree root of the header: the five
// field roots merkleized as a container.
func (h *BeaconBlockHeader) HashTreeRoot() common.Hash {
	fields := [][32]byte{
		ssz.HashTreeRootUint64(uint64(h.Slot)),
		ssz.HashTreeRootUint64(h.ProposerIndex),
		[32]byte(h.ParentRoot),
		[32]byte(h.StateRoot),
		[32]byte(h.BodyRoot),
	}
	return common.Hash(ssz.HashTreeRootContainer(fields))
}

// IsEmpty reports whether the header is the zero value. Updates without a
// finalized header carry an empty header on the wire.
func (h *BeaconBlockHeader) IsEmpty() bool {
	return *h == BeaconBlockHeader{}
}
