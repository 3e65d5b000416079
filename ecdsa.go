// Copyright (c) 2013-2014 The btcsuite developers
// Copyright (c) 2015-2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secp256k1

import (
	"fmt"
)

// HashLen is the required length of a message digest passed to Sign.
const HashLen = 32

// signRFC6979Inner attempts a single ECDSA signature with the nonce k.  It
// reports false when the nonce yields R = 0 or S = 0 and the caller must move
// on to the next nonce.
func (ctx *Context) signRFC6979Inner(d, k, e *ModNScalar) (*Signature, bool) {
	// r = kG.x mod N
	var kG ProjectivePoint
	ctx.ScalarBaseMult(k, &kG)
	kG.ToAffine()
	r, _ := fieldToModNScalar(&kG.X)
	if r.IsZero() {
		return nil, false
	}

	// s = k^-1(e + dr) mod N
	var kInv ModNScalar
	kInv.InverseVal(k)
	s := new(ModNScalar).Mul2(d, &r).Add(e).Mul(&kInv)
	kInv.Zero()
	if s.IsZero() {
		return nil, false
	}
	return NewSignature(&r, s), true
}

// Sign generates a deterministic ECDSA signature of the 32-byte hash with the
// passed private key per RFC6979.  Signing is a pure function of the key and
// the hash.
//
// The S value is NOT normalized to the lower half of the group order.  Callers
// that require canonical low S signatures should use Signature.NormalizeS.
func (ctx *Context) Sign(key *PrivateKey, hash []byte) (*Signature, error) {
	// The algorithm for producing an ECDSA signature is given as algorithm 4.29
	// in [GECC].
	//
	// 1. Select nonce k in [1, N-1] with RFC6979
	// 2. Compute kG
	// 3. r = kG.x mod N
	//    Repeat from step 1 if r = 0
	// 4. e = H(m)
	// 5. s = k^-1(e + dr) mod N
	//    Repeat from step 1 if s = 0
	// 6. Return (r,s)
	if len(hash) != HashLen {
		str := fmt.Sprintf("malformed hash: invalid length: %d", len(hash))
		return nil, makeError(ErrHashInvalidLen, str)
	}
	if key.Key.IsZero() {
		return nil, makeError(ErrPrivKeyOutOfRange, "invalid private key: zero")
	}

	privKeyBytes := key.Key.Bytes()
	defer zeroArray32(&privKeyBytes)

	var e ModNScalar
	e.SetByteSlice(hash)
	for iteration := uint32(0); ; iteration++ {
		k := NonceRFC6979(privKeyBytes[:], hash, nil, nil, iteration)
		sig, ok := ctx.signRFC6979Inner(&key.Key, k, &e)
		k.Zero()
		if ok {
			return sig, nil
		}
	}
}

// Sign generates a deterministic ECDSA signature with the default Context.
func Sign(key *PrivateKey, hash []byte) (*Signature, error) {
	return DefaultContext().Sign(key, hash)
}
