package beacon

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/klave-network/evm-light-client/bls"
	"github.com/klave-network/evm-light-client/ssz"
)

func TestBeaconBlockHeaderHashTreeRoot(t *testing.T) {
	h := &BeaconBlockHeader{
		Slot:          12345,
		ProposerIndex: 42,
		ParentRoot:    common.HexToHash("0x01"),
		StateRoot:     common.HexToHash("0x02"),
		BodyRoot:      common.HexToHash("0x03"),
	}

	// Manual container merkleization: five leaves padded to eight.
	leaves := [][32]byte{
		ssz.HashTreeRootUint64(12345),
		ssz.HashTreeRootUint64(42),
		[32]byte(h.ParentRoot),
		[32]byte(h.StateRoot),
		[32]byte(h.BodyRoot),
		{}, {}, {},
	}
	l0 := ssz.Hash(leaves[0], leaves[1])
	l1 := ssz.Hash(leaves[2], leaves[3])
	l2 := ssz.Hash(leaves[4], leaves[5])
	l3 := ssz.Hash(leaves[6], leaves[7])
	want := common.Hash(ssz.Hash(ssz.Hash(l0, l1), ssz.Hash(l2, l3)))

	if got := h.HashTreeRoot(); got != want {
		t.Errorf("header root = %s, want %s", got, want)
	}
}

func TestBeaconBlockHeaderIsEmpty(t *testing.T) {
	var h BeaconBlockHeader
	if !h.IsEmpty() {
		t.Error("zero header must be empty")
	}
	h.Slot = 1
	if h.IsEmpty() {
		t.Error("non-zero header must not be empty")
	}
}

func TestComputeDomain(t *testing.T) {
	version := Version{1, 0, 0, 0}
	root := common.HexToHash("0xabcdef")
	domain := ComputeDomain(DomainTypeSyncCommittee, version, root)

	if domain[0] != 0x07 || domain[1] != 0 || domain[2] != 0 || domain[3] != 0 {
		t.Errorf("domain type prefix wrong: %x", domain[:4])
	}

	var versionChunk [32]byte
	copy(versionChunk[:], version[:])
	forkDataRoot := ssz.Hash(versionChunk, [32]byte(root))
	for i := 0; i < 28; i++ {
		if domain[4+i] != forkDataRoot[i] {
			t.Fatalf("domain body does not match fork data root")
		}
	}

	// A different fork version produces a different domain.
	other := ComputeDomain(DomainTypeSyncCommittee, Version{2, 0, 0, 0}, root)
	if other == domain {
		t.Error("domains for different fork versions must differ")
	}
}

func TestComputeSigningRoot(t *testing.T) {
	objectRoot := common.HexToHash("0x1234")
	domain := ComputeDomain(DomainTypeSyncCommittee, Version{3, 0, 0, 0}, common.Hash{})
	want := common.Hash(ssz.Hash([32]byte(objectRoot), [32]byte(domain)))
	if got := ComputeSigningRoot(objectRoot, domain); got != want {
		t.Errorf("signing root = %s, want %s", got, want)
	}
}

func TestVersionHexRoundTrip(t *testing.T) {
	v, err := VersionFromHex("0x90000069")
	if err != nil {
		t.Fatalf("VersionFromHex: %v", err)
	}
	if v != (Version{0x90, 0x00, 0x00, 0x69}) {
		t.Errorf("parsed version = %v", v)
	}
	if v.String() != "0x90000069" {
		t.Errorf("String = %s", v.String())
	}
	if _, err := VersionFromHex("0x112233"); err == nil {
		t.Error("3-byte version must be rejected")
	}
}

func TestSyncCommitteeHashTreeRoot(t *testing.T) {
	// Two distinct committees must have distinct roots, and the root must
	// follow the pubkey-vector + aggregate container shape.
	sc := testCommittee(4, 1)
	other := testCommittee(4, 2)
	if sc.HashTreeRoot() == other.HashTreeRoot() {
		t.Error("different committees share a root")
	}

	roots := make([][32]byte, 4)
	for i, pk := range sc.Pubkeys {
		roots[i] = ssz.HashTreeRootByteVector(pk[:])
	}
	want := common.Hash(ssz.Hash(
		ssz.Merkleize(roots, 0),
		ssz.HashTreeRootByteVector(sc.AggregatePubkey[:]),
	))
	if got := sc.HashTreeRoot(); got != want {
		t.Errorf("committee root = %s, want %s", got, want)
	}
}

func TestSyncCommitteeIsZero(t *testing.T) {
	zero := SyncCommittee{Pubkeys: make([]bls.PublicKey, 8)}
	if !zero.IsZero() {
		t.Error("all-zero committee must read as absent")
	}
	nonzero := testCommittee(8, 3)
	if nonzero.IsZero() {
		t.Error("populated committee must not read as absent")
	}
}

func TestSyncAggregateParticipants(t *testing.T) {
	sc := testCommittee(8, 1)
	bits, err := ssz.NewBitvector(8)
	if err != nil {
		t.Fatalf("NewBitvector: %v", err)
	}
	bits.Set(1)
	bits.Set(6)
	sa := SyncAggregate{SyncCommitteeBits: bits}

	if sa.ParticipationCount() != 2 {
		t.Errorf("participation = %d, want 2", sa.ParticipationCount())
	}
	participants := sa.ParticipantPubkeys(&sc)
	if len(participants) != 2 {
		t.Fatalf("participants = %d, want 2", len(participants))
	}
	if participants[0] != sc.Pubkeys[1] || participants[1] != sc.Pubkeys[6] {
		t.Error("participants selected out of committee order")
	}
}

func TestExecutionPayloadHeaderRootShape(t *testing.T) {
	h := testPayloadHeader()

	capella := h.HashTreeRoot(PayloadCapella, 32)
	deneb := h.HashTreeRoot(PayloadDeneb, 32)
	if capella == deneb {
		t.Error("capella and deneb payload shapes must produce different roots")
	}

	// Any field change must move the root.
	h.BlockNumber++
	if h.HashTreeRoot(PayloadCapella, 32) == capella {
		t.Error("block number change did not move the root")
	}
	h.BlockNumber--

	h.ExtraData = []byte("other")
	if h.HashTreeRoot(PayloadCapella, 32) == capella {
		t.Error("extra data change did not move the root")
	}
}

func TestExecutionPayloadBaseFeeChunk(t *testing.T) {
	// The base fee occupies a little-endian uint256 chunk; two values
	// differing only there must differ in root.
	h := testPayloadHeader()
	rootA := h.HashTreeRoot(PayloadCapella, 32)
	h.BaseFeePerGas = uint256.NewInt(7_000_000_001)
	if h.HashTreeRoot(PayloadCapella, 32) == rootA {
		t.Error("base fee change did not move the root")
	}

	// A nil base fee behaves as zero.
	h.BaseFeePerGas = nil
	rootNil := h.HashTreeRoot(PayloadCapella, 32)
	h.BaseFeePerGas = uint256.NewInt(0)
	if h.HashTreeRoot(PayloadCapella, 32) != rootNil {
		t.Error("nil base fee must hash as zero")
	}
}

// testCommittee builds a committee of synthetic (non-curve) pubkeys for
// shape tests; signature tests with real keys live in the light package.
func testCommittee(size int, seed byte) SyncCommittee {
	sc := SyncCommittee{Pubkeys: make([]bls.PublicKey, size)}
	for i := range sc.Pubkeys {
		sc.Pubkeys[i][0] = seed
		sc.Pubkeys[i][1] = byte(i + 1)
	}
	sc.AggregatePubkey[0] = seed
	sc.AggregatePubkey[47] = 0xee
	return sc
}

func testPayloadHeader() *ExecutionPayloadHeader {
	return &ExecutionPayloadHeader{
		ParentHash:       common.HexToHash("0x0a"),
		FeeRecipient:     common.HexToAddress("0x00000000219ab540356cbb839cbe05303d7705fa"),
		StateRoot:        common.HexToHash("0x0b"),
		ReceiptsRoot:     common.HexToHash("0x0c"),
		LogsBloom:        make([]byte, 256),
		PrevRandao:       common.HexToHash("0x0d"),
		BlockNumber:      19_000_000,
		GasLimit:         30_000_000,
		GasUsed:          12_345_678,
		Timestamp:        1_700_000_000,
		ExtraData:        []byte("geth"),
		BaseFeePerGas:    uint256.NewInt(7_000_000_000),
		BlockHash:        common.HexToHash("0x0e"),
		TransactionsRoot: common.HexToHash("0x0f"),
		WithdrawalsRoot:  common.HexToHash("0x10"),
		BlobGasUsed:      131072,
		ExcessBlobGas:    0,
	}
}
