// Copyright (c) 2015 The btcsuite developers
// Copyright (c) 2015-2023 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secp256k1

import (
	"crypto/sha256"
)

// GenerateSharedSecret generates a shared secret based on a private key and a
// public key using Diffie-Hellman key exchange (ECDH) (RFC 5903).
//
// The secret is the SHA-256 digest of the 33-byte compressed encoding of the
// shared point, so the raw coordinate is never handed out.  It returns nil
// when the key is zero or the public key is not on the curve.
func GenerateSharedSecret(privkey *PrivateKey, pubkey *PublicKey) []byte {
	if privkey.Key.IsZero() || !pubkey.IsOnCurve() {
		return nil
	}

	var point, result ProjectivePoint
	pubkey.AsProjective(&point)
	ScalarMult(&privkey.Key, &point, &result)
	shared, ok := publicKeyFromPoint(&result)
	if !ok {
		return nil
	}
	compressed := shared.SerializeCompressed()
	secret := sha256.Sum256(compressed)
	zeroSlice(compressed)
	return secret[:]
}

// ECDH generates a shared secret and is an alias to GenerateSharedSecret, however
// by being part of the private key it is closer to go's own ecdh api.
func (privkey *PrivateKey) ECDH(remote *PublicKey) ([]byte, error) {
	if privkey.Key.IsZero() {
		return nil, makeError(ErrPrivKeyOutOfRange, "invalid private key: zero")
	}
	if !remote.IsOnCurve() {
		return nil, makeError(ErrPubKeyNotOnCurve, "invalid public key: not on curve")
	}
	return GenerateSharedSecret(privkey, remote), nil
}
