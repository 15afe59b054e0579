package light

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"

	"github.com/klave-network/evm-light-client/beacon"
	"github.com/klave-network/evm-light-client/bls"
	"github.com/klave-network/evm-light-client/config"
	"github.com/klave-network/evm-light-client/fork"
	"github.com/klave-network/evm-light-client/merkle"
	"github.com/klave-network/evm-light-client/ssz"
)

// The fixture chain runs the minimal preset (8 slots/epoch, 8 epochs per
// committee period, 32-member committees) with a single Altair fork, so
// headers carry no execution payload. Execution-specific cases build their
// own Capella context.

var (
	testGenesisTime           = uint64(1_600_000_000)
	testGenesisValidatorsRoot = common.HexToHash("0x99aa")
)

func altairConfig() config.Config {
	return config.Config{
		Preset:             config.Minimal,
		GenesisForkVersion: beacon.Version{0, 0, 0, 1},
		Forks: []fork.ForkParameter{
			{Version: beacon.Version{1, 0, 0, 1}, Epoch: 0, Spec: fork.AltairForkSpec},
		},
	}
}

// testContext pins the clock far past the fixture slots.
func testContext(t *testing.T) *Context {
	t.Helper()
	now := func() uint64 { return testGenesisTime + 100_000*config.Minimal.SecondsPerSlot }
	ctx, err := NewContext(altairConfig(), testGenesisValidatorsRoot, testGenesisTime, TwoThirds, now)
	if err != nil {
		t.Fatalf("NewContext: %v", err)
	}
	return ctx
}

// makeCommittee builds a committee with real BLS keypairs derived from the
// seed, returning the matching secret keys for signing.
func makeCommittee(t *testing.T, size int, seed byte) (beacon.SyncCommittee, []*bls.SecretKey) {
	t.Helper()
	sc := beacon.SyncCommittee{Pubkeys: make([]bls.PublicKey, size)}
	secrets := make([]*bls.SecretKey, size)
	for i := 0; i < size; i++ {
		ikm := make([]byte, 32)
		ikm[0] = seed
		ikm[1] = byte(i + 1)
		ikm[2] = byte(i >> 8)
		sk, err := bls.KeyGen(ikm)
		if err != nil {
			t.Fatalf("KeyGen: %v", err)
		}
		secrets[i] = sk
		sc.Pubkeys[i] = sk.PublicKey()
	}
	agg, err := bls.AggregatePublicKeys(sc.Pubkeys)
	if err != nil {
		t.Fatalf("AggregatePublicKeys: %v", err)
	}
	sc.AggregatePubkey = agg
	return sc, secrets
}

// participationBits sets the first n of size bits.
func participationBits(t *testing.T, size, n int) ssz.Bitvector {
	t.Helper()
	bits, err := ssz.NewBitvector(size)
	if err != nil {
		t.Fatalf("NewBitvector: %v", err)
	}
	for i := 0; i < n; i++ {
		bits.Set(i)
	}
	return bits
}

// signAggregate produces the sync aggregate the verifier expects: each
// participant signs the signing root for the attested block root at the
// signature slot.
func signAggregate(
	t *testing.T,
	ctx *Context,
	secrets []*bls.SecretKey,
	bits ssz.Bitvector,
	signatureSlot beacon.Slot,
	attestedBlockRoot common.Hash,
) beacon.SyncAggregate {
	t.Helper()
	domain := ctx.DomainAtSignatureSlot(signatureSlot)
	signingRoot := beacon.ComputeSigningRoot(attestedBlockRoot, domain)

	var sigs []bls.Signature
	for i, sk := range secrets {
		if bits.Get(i) {
			sigs = append(sigs, sk.Sign(signingRoot[:]))
		}
	}
	agg, err := bls.AggregateSignatures(sigs)
	if err != nil {
		t.Fatalf("AggregateSignatures: %v", err)
	}
	return beacon.SyncAggregate{SyncCommitteeBits: bits, SyncCommitteeSignature: agg}
}

// branchOf fabricates sibling hashes for proof fixtures.
func branchOf(depth int, seed byte) []common.Hash {
	branch := make([]common.Hash, depth)
	for i := range branch {
		branch[i][0] = seed
		branch[i][1] = byte(i + 1)
	}
	return branch
}

// provedRoot computes the root a fabricated branch implies, so a fixture
// can plant it as the state root the proof verifies against.
func provedRoot(t *testing.T, leaf common.Hash, branch []common.Hash, gindex uint64) common.Hash {
	t.Helper()
	root, err := merkle.ComputeRoot(leaf, branch, gindex)
	if err != nil {
		t.Fatalf("ComputeRoot: %v", err)
	}
	return root
}

// makeBootstrap builds a verifiable bootstrap for the committee at slot.
func makeBootstrap(t *testing.T, committee beacon.SyncCommittee, slot beacon.Slot) *LightClientBootstrap {
	t.Helper()
	branch := branchOf(merkle.Depth(fork.AltairForkSpec.CurrentSyncCommitteeGIndex), 0xb0)
	stateRoot := provedRoot(t, committee.HashTreeRoot(), branch, fork.AltairForkSpec.CurrentSyncCommitteeGIndex)
	return &LightClientBootstrap{
		Header: LightClientHeader{Beacon: beacon.BeaconBlockHeader{
			Slot:      slot,
			StateRoot: stateRoot,
			BodyRoot:  common.HexToHash("0xb1"),
		}},
		CurrentSyncCommittee:       committee,
		CurrentSyncCommitteeBranch: branch,
	}
}

// makeFinalityUpdate builds an update proving finalizedSlot under an
// attested header, signed by the given secrets with participation n.
func makeFinalityUpdate(
	t *testing.T,
	ctx *Context,
	secrets []*bls.SecretKey,
	finalizedSlot, attestedSlot, signatureSlot beacon.Slot,
	participation int,
) *LightClientUpdate {
	t.Helper()
	finalized := &LightClientHeader{Beacon: beacon.BeaconBlockHeader{
		Slot:      finalizedSlot,
		StateRoot: common.HexToHash("0xf1"),
		BodyRoot:  common.HexToHash("0xf2"),
	}}

	spec := fork.AltairForkSpec
	branch := branchOf(merkle.Depth(spec.FinalizedRootGIndex), 0xfa)
	stateRoot := provedRoot(t, finalized.Beacon.HashTreeRoot(), branch, spec.FinalizedRootGIndex)

	update := &LightClientUpdate{
		AttestedHeader: LightClientHeader{Beacon: beacon.BeaconBlockHeader{
			Slot:      attestedSlot,
			StateRoot: stateRoot,
			BodyRoot:  common.HexToHash("0xa2"),
		}},
		FinalizedHeader: finalized,
		FinalityBranch:  branch,
		SignatureSlot:   signatureSlot,
	}

	bits := participationBits(t, len(secrets), participation)
	update.SyncAggregate = signAggregate(t, ctx, secrets, bits, signatureSlot, update.AttestedHeader.Beacon.HashTreeRoot())
	return update
}

// makeCommitteeUpdate builds an update introducing nextCommittee at the
// attested slot's period, with no finality proof.
func makeCommitteeUpdate(
	t *testing.T,
	ctx *Context,
	secrets []*bls.SecretKey,
	nextCommittee beacon.SyncCommittee,
	attestedSlot, signatureSlot beacon.Slot,
	participation int,
) *LightClientUpdate {
	t.Helper()
	spec := fork.AltairForkSpec
	branch := branchOf(merkle.Depth(spec.NextSyncCommitteeGIndex), 0xcc)
	stateRoot := provedRoot(t, nextCommittee.HashTreeRoot(), branch, spec.NextSyncCommitteeGIndex)

	update := &LightClientUpdate{
		AttestedHeader: LightClientHeader{Beacon: beacon.BeaconBlockHeader{
			Slot:      attestedSlot,
			StateRoot: stateRoot,
			BodyRoot:  common.HexToHash("0xa3"),
		}},
		NextSyncCommittee:       &nextCommittee,
		NextSyncCommitteeBranch: branch,
		SignatureSlot:           signatureSlot,
	}

	bits := participationBits(t, len(secrets), participation)
	update.SyncAggregate = signAggregate(t, ctx, secrets, bits, signatureSlot, update.AttestedHeader.Beacon.HashTreeRoot())
	return update
}
