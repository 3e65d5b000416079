// Copyright (c) 2013-2014 The btcsuite developers
// Copyright (c) 2015-2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package schnorr

import (
	"crypto/sha256"
	"fmt"

	secp256k1 "github.com/ModChain/secp256k1engine"
)

const (
	// SignatureSize is the size of an encoded Schnorr signature.
	SignatureSize = 64

	// scalarSize is the size of an encoded big endian scalar.
	scalarSize = 32
)

var (
	// rfc6979Algo is the algorithm tag mixed into the RFC6979 nonce so that
	// Schnorr and ECDSA signatures with the same key and hash never share a
	// nonce.
	rfc6979Algo = []byte("Schnorr+SHA256  ")
)

// Signature is a type representing a Schnorr signature.
type Signature struct {
	r secp256k1.FieldVal
	s secp256k1.ModNScalar
}

// NewSignature instantiates a new signature given some r and s values.
func NewSignature(r *secp256k1.FieldVal, s *secp256k1.ModNScalar) *Signature {
	var sig Signature
	sig.r.Set(r)
	sig.s.Set(s)
	return &sig
}

// Serialize returns the Schnorr signature in the more strict format.
//
// The signatures are encoded as
//
//	sig[0:32]  x coordinate of the point R, encoded as a big-endian uint256
//	sig[32:64] s, encoded also as big-endian uint256
func (sig Signature) Serialize() []byte {
	// Total length of returned signature is the length of r and s.
	var b [SignatureSize]byte
	sig.r.PutBytesUnchecked(b[0:32])
	sig.s.PutBytesUnchecked(b[32:64])
	return b[:]
}

// ParseSignature parses a signature according to the format described by
// Serialize and enforces the following additional restrictions specific to
// secp256k1:
//
//   - The r component must be in the valid range for secp256k1 field elements
//   - The s component must be in the valid range for secp256k1 scalars
func ParseSignature(sig []byte) (*Signature, error) {
	// The signature must be the correct length.
	sigLen := len(sig)
	if sigLen < SignatureSize {
		str := fmt.Sprintf("malformed signature: too short: %d < %d", sigLen,
			SignatureSize)
		return nil, signatureError(ErrSigTooShort, str)
	}
	if sigLen > SignatureSize {
		str := fmt.Sprintf("malformed signature: too long: %d > %d", sigLen,
			SignatureSize)
		return nil, signatureError(ErrSigTooLong, str)
	}

	// The signature is validly encoded at this point, however, enforce
	// additional restrictions to ensure r is in the range [0, p-1], and s is in
	// the range [0, n-1] since valid Schnorr signatures are required to be in
	// that range.
	var r secp256k1.FieldVal
	if overflow := r.SetByteSlice(sig[0:32]); overflow {
		str := "invalid signature: r >= field prime"
		return nil, signatureError(ErrSigRTooBig, str)
	}
	var s secp256k1.ModNScalar
	if overflow := s.SetByteSlice(sig[32:64]); overflow {
		str := "invalid signature: s >= group order"
		return nil, signatureError(ErrSigSTooBig, str)
	}

	// Return the signature.
	return NewSignature(&r, &s), nil
}

// IsEqual compares this Signature instance to the one passed, returning true
// if both Signatures are equivalent.  A signature is equivalent to another, if
// they both have the same scalar value for R and S.
func (sig Signature) IsEqual(otherSig *Signature) bool {
	return sig.r.Equals(&otherSig.r) && sig.s.Equals(&otherSig.s)
}

// challenge computes e = SHA256(r || P compressed || m) mod n.
func challenge(r *secp256k1.FieldVal, pubKey *secp256k1.PublicKey, hash []byte) secp256k1.ModNScalar {
	var rBytes [32]byte
	r.PutBytes(&rBytes)

	h := sha256.New()
	h.Write(rBytes[:])
	h.Write(pubKey.SerializeCompressed())
	h.Write(hash)
	var digest [32]byte
	h.Sum(digest[:0])

	var e secp256k1.ModNScalar
	e.SetBytes(&digest)
	return e
}

// verify attempts to verify the signature for the provided hash and
// secp256k1 public key and either returns nil if successful or a specific
// error indicating why it failed if not successful.
func verify(ctx *secp256k1.Context, sig *Signature, hash []byte, pubKey *secp256k1.PublicKey) error {
	// 1. Fail if m is not 32 bytes
	// 2. Fail if Q is not a point on the curve
	// 3. e = SHA256(r || Q compressed || m) mod n
	// 4. R = s*G - e*Q
	// 5. Fail if R is the point at infinity
	// 6. Fail if R.y is not a quadratic residue
	// 7. Verified if R.x == r
	//
	// The range checks of r and s are done when parsing.

	// Step 1.
	if len(hash) != scalarSize {
		str := fmt.Sprintf("wrong size for message hash (got %v, want %v)",
			len(hash), scalarSize)
		return signatureError(ErrInvalidHashLen, str)
	}

	// Step 2.
	if !pubKey.IsOnCurve() {
		str := "pubkey point is not on curve"
		return signatureError(ErrPubKeyNotOnCurve, str)
	}

	// Step 3.
	e := challenge(&sig.r, pubKey, hash)

	// Step 4.
	var Q, sG, eQ, R secp256k1.ProjectivePoint
	pubKey.AsProjective(&Q)
	ctx.ScalarBaseMult(&sig.s, &sG)
	secp256k1.ScalarMult(&e, &Q, &eQ)
	secp256k1.NegatePoint(&eQ, &eQ)
	secp256k1.AddPoints(&sG, &eQ, &R)

	// Step 5.
	if R.IsInfinity() {
		str := "calculated R point is the point at infinity"
		return signatureError(ErrSigRIsInfinity, str)
	}

	// Step 6.
	R.ToAffine()
	if !R.Y.IsQuadResidue() {
		str := "calculated R y-value is not a quadratic residue"
		return signatureError(ErrSigRNotQuadResidue, str)
	}

	// Step 7.
	if !sig.r.Equals(&R.X) {
		str := "calculated R point was not given R"
		return signatureError(ErrUnequalRValues, str)
	}

	return nil
}

// Verify returns whether or not the signature is valid for the provided hash
// and secp256k1 public key.
func (sig *Signature) Verify(ctx *secp256k1.Context, hash []byte, pubKey *secp256k1.PublicKey) bool {
	return verify(ctx, sig, hash, pubKey) == nil
}

// Sign generates a deterministic Schnorr signature for the passed 32-byte hash
// with the private key.  The nonce is derived with RFC6979 from the key and
// the hash, tagged with the Schnorr algorithm identifier.
func Sign(ctx *secp256k1.Context, privKey *secp256k1.PrivateKey, hash []byte) (*Signature, error) {
	// 1. Fail if m is not 32 bytes
	// 2. Fail if d = 0
	// 3. k = RFC6979(d, m, algo)
	// 4. R = kG, negate k if R.y is not a quadratic residue
	// 5. e = SHA256(R.x || P compressed || m) mod n
	// 6. s = k + e*d mod n
	// 7. Return (R.x, s)

	// Step 1.
	if len(hash) != scalarSize {
		str := fmt.Sprintf("wrong size for message hash (got %v, want %v)",
			len(hash), scalarSize)
		return nil, signatureError(ErrInvalidHashLen, str)
	}

	// Step 2.
	d := &privKey.Key
	if d.IsZero() {
		str := "private key is zero"
		return nil, signatureError(ErrPrivateKeyIsZero, str)
	}
	pubKey := ctx.PubKey(privKey)

	// Step 3.
	privKeyBytes := d.Bytes()
	k := secp256k1.NonceRFC6979(privKeyBytes[:], hash, nil, rfc6979Algo, 0)
	for i := range privKeyBytes {
		privKeyBytes[i] = 0
	}

	// Step 4.
	var R secp256k1.ProjectivePoint
	ctx.ScalarBaseMult(k, &R)
	R.ToAffine()
	if !R.Y.IsQuadResidue() {
		k.Negate()
	}

	// Step 5.
	e := challenge(&R.X, pubKey, hash)

	// Step 6.
	s := new(secp256k1.ModNScalar).Mul2(&e, d).Add(k)
	k.Zero()

	// Step 7.
	return NewSignature(&R.X, s), nil
}
