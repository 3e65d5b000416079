// Copyright (c) 2013-2014 The btcsuite developers
// Copyright (c) 2015-2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secp256k1

import (
	"crypto/hmac"
	"crypto/sha256"
	"hash"
)

// hmacDRBG is the HMAC-SHA256 deterministic random bit generator of RFC6979
// section 3.2.  It is used both to derive signing nonces and to derive the
// blinding values of a Context from a seed.
type hmacDRBG struct {
	k, v  [sha256.Size]byte
	mac   hash.Hash
	retry bool
}

// newHMACDRBG instantiates the generator with the concatenation of the passed
// seed material (steps B through G of RFC6979 section 3.2).
func newHMACDRBG(seed ...[]byte) *hmacDRBG {
	d := new(hmacDRBG)
	for i := range d.v {
		d.v[i] = 0x01
	}

	// K = HMAC_K(V || 0x00 || seed), V = HMAC_K(V)
	d.update(0x00, seed)
	// K = HMAC_K(V || 0x01 || seed), V = HMAC_K(V)
	d.update(0x01, seed)
	return d
}

// update performs K = HMAC_K(V || sep || seed) followed by V = HMAC_K(V).
func (d *hmacDRBG) update(sep byte, seed [][]byte) {
	d.mac = hmac.New(sha256.New, d.k[:])
	d.mac.Write(d.v[:])
	d.mac.Write([]byte{sep})
	for _, s := range seed {
		d.mac.Write(s)
	}
	d.mac.Sum(d.k[:0])
	d.mac = hmac.New(sha256.New, d.k[:])
	d.mac.Write(d.v[:])
	d.mac.Sum(d.v[:0])
}

// generate writes the next 32 bytes of output to out.  Every call after the
// first reseeds the state with K = HMAC_K(V || 0x00), V = HMAC_K(V) before
// producing output, as required when a candidate was rejected.
func (d *hmacDRBG) generate(out *[32]byte) {
	if d.retry {
		d.update(0x00, nil)
	}
	d.mac.Reset()
	d.mac.Write(d.v[:])
	d.mac.Sum(d.v[:0])
	copy(out[:], d.v[:])
	d.retry = true
}

// zero clears the generator state.
func (d *hmacDRBG) zero() {
	zeroArray32(&d.k)
	zeroArray32(&d.v)
	d.mac = nil
}

// NonceRFC6979 generates a nonce deterministically according to RFC 6979 using
// HMAC-SHA256 for the hashing function.  It takes a 32-byte hash as an input
// and returns a 32-byte nonce to be used for deterministic signing.  The extra
// and algo arguments are optional, but allow additional data to be added to
// the input of the HMAC.  When provided, the extra data must be 32 bytes and
// algo must be 16 bytes or they will be ignored.
//
// The HMAC input is laid out as
//
//	int2octets(key) || bits2octets(hash) [|| extra] [|| algo]
//
// so that an algo tag given without extra data directly follows the hash.
// This matches the nonce function of libsecp256k1 and lets the same key and
// message produce unrelated nonces for different signing algorithms.
//
// Finally, the extraIterations parameter provides a method to produce a stream
// of deterministic nonces to ensure the signing code is able to produce a nonce
// that results in a valid signature in the extremely unlikely event the
// original nonce produced results in an invalid signature (e.g. R == 0).
// Signing code should start with 0 and increment it if necessary.
func NonceRFC6979(privKey []byte, hash []byte, extra []byte, algo []byte, extraIterations uint32) *ModNScalar {
	const (
		privKeyLen = 32
		extraLen   = 32
		algoLen    = 16
	)

	// int2octets(x): the key left padded to 32 bytes.
	var keyBuf [privKeyLen]byte
	if len(privKey) > privKeyLen {
		privKey = privKey[:privKeyLen]
	}
	copy(keyBuf[privKeyLen-len(privKey):], privKey)
	defer zeroArray32(&keyBuf)

	// bits2octets(h1): the leftmost 256 bits of the hash reduced modulo N.
	var h ModNScalar
	h.SetByteSlice(hash)
	hashBuf := h.Bytes()

	seed := [][]byte{keyBuf[:], hashBuf[:]}
	if len(extra) == extraLen {
		seed = append(seed, extra)
	}
	if len(algo) == algoLen {
		seed = append(seed, algo)
	}
	drbg := newHMACDRBG(seed...)
	defer drbg.zero()

	// Repeat until the value is nonzero and less than the curve order.
	var t [32]byte
	var generated uint32
	for {
		drbg.generate(&t)

		var secret ModNScalar
		overflow := secret.SetBytes(&t)
		if overflow == 0 && !secret.IsZero() {
			generated++
			if generated > extraIterations {
				zeroArray32(&t)
				return &secret
			}
		}
	}
}
