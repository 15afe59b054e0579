// Package beacon defines the primitive consensus types and SSZ containers
// the light-client verifier consumes: slots, epochs, fork versions, signing
// domains, beacon block headers, sync committees and execution payload
// headers, together with their hash tree roots.
package beacon

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Slot is a beacon-chain slot number.
type Slot uint64

// Epoch is a beacon-chain epoch number.
type Epoch uint64

// Version is a 4-byte fork version identifier.
type Version [4]byte

// DomainType is the 4-byte signature purpose tag.
type DomainType [4]byte

// Domain is the 32-byte tag binding a signature to a purpose, fork version
// and chain identity.
type Domain [32]byte

// DomainTypeSyncCommittee is the domain type under which sync committees
// sign block roots.
var DomainTypeSyncCommittee = DomainType{0x07, 0x00, 0x00, 0x00}

// VersionFromBytes converts a byte slice into a Version.
func VersionFromBytes(b []byte) (Version, error) {
	var v Version
	if len(b) != len(v) {
		return v, fmt.Errorf("beacon: invalid fork version length: expected=%d actual=%d", len(v), len(b))
	}
	copy(v[:], b)
	return v, nil
}

// VersionFromHex parses a 0x-prefixed hex fork version, the encoding used
// by the beacon node API.
func VersionFromHex(s string) (Version, error) {
	b, err := hexutil.Decode(s)
	if err != nil {
		return Version{}, fmt.Errorf("beacon: decode fork version: %w", err)
	}
	return VersionFromBytes(b)
}

// String returns the 0x-prefixed hex encoding.
func (v Version) String() string {
	return hexutil.Encode(v[:])
}

// MarshalText implements encoding.TextMarshaler.
func (v Version) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (v *Version) UnmarshalText(text []byte) error {
	parsed, err := VersionFromHex(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
