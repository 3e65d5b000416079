// Copyright (c) 2015-2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secp256k1

import (
	"fmt"
)

// tweakLen is the length of a serialized tweak.
const tweakLen = 32

// parseTweak decodes a 32-byte big-endian tweak which must be less than the
// group order.  Zero is accepted.
func parseTweak(tweak []byte) (ModNScalar, error) {
	var t ModNScalar
	if len(tweak) != tweakLen {
		str := fmt.Sprintf("malformed tweak: invalid length: %d", len(tweak))
		return t, makeError(ErrTweakInvalidLen, str)
	}
	if overflow := t.SetByteSlice(tweak); overflow {
		t.Zero()
		return t, makeError(ErrTweakOverflow, "invalid tweak: >= group order")
	}
	return t, nil
}

// TweakAddPrivKey returns the private key (key + tweak) mod N.  The tweak must
// be 32 bytes encoding a value less than N.  A zero sum is rejected with
// ErrTweakResultInvalid.
func TweakAddPrivKey(key *PrivateKey, tweak []byte) (*PrivateKey, error) {
	if key.Key.IsZero() {
		return nil, makeError(ErrPrivKeyOutOfRange, "invalid private key: zero")
	}
	t, err := parseTweak(tweak)
	if err != nil {
		return nil, err
	}

	var result PrivateKey
	result.Key.Add2(&key.Key, &t)
	t.Zero()
	if result.Key.IsZero() {
		return nil, makeError(ErrTweakResultInvalid, "tweaked private key is zero")
	}
	return &result, nil
}

// TweakMulPrivKey returns the private key (key * tweak) mod N.  The tweak must
// be 32 bytes encoding a value in [1, N-1].
func TweakMulPrivKey(key *PrivateKey, tweak []byte) (*PrivateKey, error) {
	if key.Key.IsZero() {
		return nil, makeError(ErrPrivKeyOutOfRange, "invalid private key: zero")
	}
	t, err := parseTweak(tweak)
	if err != nil {
		return nil, err
	}
	if t.IsZero() {
		return nil, makeError(ErrTweakZero, "invalid tweak: zero")
	}

	// The group order is prime, so the product of two nonzero scalars is
	// nonzero.
	var result PrivateKey
	result.Key.Mul2(&key.Key, &t)
	t.Zero()
	return &result, nil
}

// TweakAddPubKey returns the public key P + tweak*G.  The tweak must be 32
// bytes encoding a value less than N.  A result at infinity is rejected with
// ErrTweakResultInvalid.
func (ctx *Context) TweakAddPubKey(pubKey *PublicKey, tweak []byte) (*PublicKey, error) {
	t, err := parseTweak(tweak)
	if err != nil {
		return nil, err
	}

	var p, tG ProjectivePoint
	pubKey.AsProjective(&p)
	ctx.ScalarBaseMult(&t, &tG)
	t.Zero()
	AddPoints(&p, &tG, &p)

	result, ok := publicKeyFromPoint(&p)
	if !ok {
		return nil, makeError(ErrTweakResultInvalid,
			"tweaked public key is the point at infinity")
	}
	return result, nil
}

// TweakAddPubKey returns P + tweak*G with the default Context.
func TweakAddPubKey(pubKey *PublicKey, tweak []byte) (*PublicKey, error) {
	return DefaultContext().TweakAddPubKey(pubKey, tweak)
}

// TweakMulPubKey returns the public key tweak*P.  The tweak must be 32 bytes
// encoding a value in [1, N-1].
func TweakMulPubKey(pubKey *PublicKey, tweak []byte) (*PublicKey, error) {
	t, err := parseTweak(tweak)
	if err != nil {
		return nil, err
	}
	if t.IsZero() {
		return nil, makeError(ErrTweakZero, "invalid tweak: zero")
	}

	var p ProjectivePoint
	pubKey.AsProjective(&p)
	ScalarMult(&t, &p, &p)
	t.Zero()

	result, ok := publicKeyFromPoint(&p)
	if !ok {
		return nil, makeError(ErrTweakResultInvalid,
			"tweaked public key is the point at infinity")
	}
	return result, nil
}
