// Package bls wraps BLS12-381 aggregate signatures for sync-committee
// verification, using the supranational/blst library with the "MinPk"
// scheme used by Ethereum:
//   - public keys in G1 (48-byte compressed)
//   - signatures in G2 (96-byte compressed)
//   - DST: BLS_SIG_BLS12381G2_XMD:SHA-256_SSWU_RO_POP_
package bls

import (
	"bytes"
	"errors"
	"fmt"

	blst "github.com/supranational/blst/bindings/go"
)

// Key and signature sizes for the MinPk scheme.
const (
	PublicKeyLength = 48 // compressed G1
	SignatureLength = 96 // compressed G2
	SecretKeyLength = 32 // scalar field element
)

// dst is the domain separation tag for Ethereum consensus signatures.
var dst = []byte("BLS_SIG_BLS12381G2_XMD:SHA-256_SSWU_RO_POP_")

// Errors returned by key and signature handling.
var (
	ErrInvalidPublicKey        = errors.New("bls: invalid public key")
	ErrInvalidSignature        = errors.New("bls: invalid signature")
	ErrNoPublicKeys            = errors.New("bls: no public keys to aggregate")
	ErrAggregatePubkeyMismatch = errors.New("bls: aggregate public key does not match aggregation of pubkeys")
	ErrInvalidSecretKey        = errors.New("bls: invalid secret key material")
)

// LengthKind names which object a LengthError refers to.
type LengthKind int

const (
	// PublicKeyKind marks a public key length failure.
	PublicKeyKind LengthKind = iota
	// SignatureKind marks a signature length failure.
	SignatureKind
)

// LengthError reports a byte-length mismatch when decoding a key or
// signature.
type LengthError struct {
	Kind LengthKind
	Want int
	Got  int
}

func (e *LengthError) Error() string {
	name := "public key"
	if e.Kind == SignatureKind {
		name = "signature"
	}
	return fmt.Sprintf("bls: invalid %s length: expected=%d actual=%d", name, e.Want, e.Got)
}

// PublicKey is a compressed G1 public key.
type PublicKey [PublicKeyLength]byte

// Signature is a compressed G2 signature.
type Signature [SignatureLength]byte

// PublicKeyFromBytes decodes and validates a compressed 48-byte G1 public
// key. The point must be on the curve, in the correct subgroup and not the
// identity.
func PublicKeyFromBytes(b []byte) (PublicKey, error) {
	var pk PublicKey
	if len(b) != PublicKeyLength {
		return pk, &LengthError{Kind: PublicKeyKind, Want: PublicKeyLength, Got: len(b)}
	}
	p := new(blst.P1Affine).Uncompress(b)
	if p == nil || !p.KeyValidate() {
		return pk, ErrInvalidPublicKey
	}
	copy(pk[:], b)
	return pk, nil
}

// SignatureFromBytes decodes a compressed 96-byte G2 signature. Group
// membership is checked again during verification, so decoding only
// validates the encoding.
func SignatureFromBytes(b []byte) (Signature, error) {
	var sig Signature
	if len(b) != SignatureLength {
		return sig, &LengthError{Kind: SignatureKind, Want: SignatureLength, Got: len(b)}
	}
	if new(blst.P2Affine).Uncompress(b) == nil {
		return sig, ErrInvalidSignature
	}
	copy(sig[:], b)
	return sig, nil
}

// Bytes returns the compressed encoding.
func (pk PublicKey) Bytes() []byte {
	out := make([]byte, PublicKeyLength)
	copy(out, pk[:])
	return out
}

// IsZero reports whether the key is all-zero bytes. Zeroed keys appear on
// the wire as the absence sentinel for optional committees.
func (pk PublicKey) IsZero() bool {
	return pk == PublicKey{}
}

// Bytes returns the compressed encoding.
func (s Signature) Bytes() []byte {
	out := make([]byte, SignatureLength)
	copy(out, s[:])
	return out
}

// decodeAffine uncompresses a batch of public keys for verification.
func decodeAffine(keys []PublicKey) ([]*blst.P1Affine, error) {
	pks := make([]*blst.P1Affine, len(keys))
	for i := range keys {
		pks[i] = new(blst.P1Affine).Uncompress(keys[i][:])
		if pks[i] == nil {
			return nil, ErrInvalidPublicKey
		}
	}
	return pks, nil
}

// AggregatePublicKeys aggregates compressed public keys into their sum in
// G1 and returns the compressed result.
func AggregatePublicKeys(keys []PublicKey) (PublicKey, error) {
	var out PublicKey
	if len(keys) == 0 {
		return out, ErrNoPublicKeys
	}
	pks, err := decodeAffine(keys)
	if err != nil {
		return out, err
	}
	var agg blst.P1Aggregate
	if !agg.Aggregate(pks, true) {
		return out, ErrInvalidPublicKey
	}
	copy(out[:], agg.ToAffine().Compress())
	return out, nil
}

// VerifyAggregatePubkey checks that agg equals the aggregation of keys.
// Committee acceptance performs this once; updates then trust the stored
// aggregate.
func VerifyAggregatePubkey(keys []PublicKey, agg PublicKey) error {
	computed, err := AggregatePublicKeys(keys)
	if err != nil {
		return err
	}
	if !bytes.Equal(computed[:], agg[:]) {
		return ErrAggregatePubkeyMismatch
	}
	return nil
}

// FastAggregateVerify checks an aggregate signature where every signer
// signed the same 32-byte message, the common case for sync aggregates.
func FastAggregateVerify(keys []PublicKey, msg [32]byte, sig Signature) bool {
	if len(keys) == 0 {
		return false
	}
	s := new(blst.P2Affine).Uncompress(sig[:])
	if s == nil {
		return false
	}
	pks, err := decodeAffine(keys)
	if err != nil {
		return false
	}
	return s.FastAggregateVerify(true, pks, msg[:], dst)
}
