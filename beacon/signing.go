package beacon

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/klave-network/evm-light-client/ssz"
)

// ForkData binds a fork version to a chain identity. Its hash tree root
// feeds domain computation.
type ForkData struct {
	CurrentVersion        Version
	GenesisValidatorsRoot common.Hash
}

// HashTreeRoot merkleizes the two fields; the version occupies a
// zero-padded chunk.
func (fd *ForkData) HashTreeRoot() common.Hash {
	var versionChunk [32]byte
	copy(versionChunk[:], fd.CurrentVersion[:])
	return common.Hash(ssz.Hash(versionChunk, [32]byte(fd.GenesisValidatorsRoot)))
}

// SigningData pairs an object root with a domain; its hash tree root is
// the message BLS signatures cover.
type SigningData struct {
	ObjectRoot common.Hash
	Domain     Domain
}

// HashTreeRoot merkleizes the object root and domain.
func (sd *SigningData) HashTreeRoot() common.Hash {
	return common.Hash(ssz.Hash([32]byte(sd.ObjectRoot), [32]byte(sd.Domain)))
}

// ComputeDomain builds the 32-byte signing domain: the 4-byte domain type
// followed by the first 28 bytes of the ForkData root.
func ComputeDomain(domainType DomainType, forkVersion Version, genesisValidatorsRoot common.Hash) Domain {
	forkDataRoot := (&ForkData{
		CurrentVersion:        forkVersion,
		GenesisValidatorsRoot: genesisValidatorsRoot,
	}).HashTreeRoot()

	var domain Domain
	copy(domain[:4], domainType[:])
	copy(domain[4:], forkDataRoot[:28])
	return domain
}

// ComputeSigningRoot computes the digest a signature covers for the given
// object root and domain.
func ComputeSigningRoot(objectRoot common.Hash, domain Domain) common.Hash {
	return (&SigningData{ObjectRoot: objectRoot, Domain: domain}).HashTreeRoot()
}
