package bls

import (
	blst "github.com/supranational/blst/bindings/go"
)

// SecretKey is a BLS12-381 scalar used to produce signatures. The verifier
// never holds secret keys in production; they exist for committee fixtures
// and local signing tools.
type SecretKey struct {
	scalar *blst.SecretKey
}

// KeyGen derives a secret key from at least 32 bytes of input key material
// per the BLS key-generation procedure.
func KeyGen(ikm []byte) (*SecretKey, error) {
	if len(ikm) < SecretKeyLength {
		return nil, ErrInvalidSecretKey
	}
	sk := blst.KeyGen(ikm)
	if sk == nil {
		return nil, ErrInvalidSecretKey
	}
	return &SecretKey{scalar: sk}, nil
}

// PublicKey returns the compressed G1 public key for the secret key.
func (sk *SecretKey) PublicKey() PublicKey {
	var pk PublicKey
	copy(pk[:], new(blst.P1Affine).From(sk.scalar).Compress())
	return pk
}

// Sign produces a signature over msg under the Ethereum consensus DST.
func (sk *SecretKey) Sign(msg []byte) Signature {
	var sig Signature
	copy(sig[:], new(blst.P2Affine).Sign(sk.scalar, msg, dst).Compress())
	return sig
}

// AggregateSignatures aggregates compressed signatures into their sum in G2.
func AggregateSignatures(sigs []Signature) (Signature, error) {
	var out Signature
	if len(sigs) == 0 {
		return out, ErrInvalidSignature
	}
	affines := make([]*blst.P2Affine, len(sigs))
	for i := range sigs {
		affines[i] = new(blst.P2Affine).Uncompress(sigs[i][:])
		if affines[i] == nil {
			return out, ErrInvalidSignature
		}
	}
	var agg blst.P2Aggregate
	if !agg.Aggregate(affines, true) {
		return out, ErrInvalidSignature
	}
	copy(out[:], agg.ToAffine().Compress())
	return out, nil
}
