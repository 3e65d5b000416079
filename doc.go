// Copyright (c) 2013-2014 The btcsuite developers
// Copyright (c) 2015-2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package secp256k1 implements constant time secp256k1 elliptic curve operations
in pure Go.

This package provides a pure Go implementation of elliptic curve cryptography
operations over the secp256k1 curve as well as data structures and functions
for working with public and private secp256k1 keys.  See
https://www.secg.org/sec2-v2.pdf for details on the standard.

The schnorr sub package produces and verifies 64-byte Schnorr signatures and
the engine sub package exposes every operation through a byte buffer contract
that never panics and signals failure with an empty result.

An overview of the features provided by this package are as follows:

  - Private key generation, serialization, and parsing
  - Public key generation, serialization and parsing per ANSI X9.62-1998
  - Parses uncompressed, compressed, and hybrid public keys
  - Serializes uncompressed, compressed, and hybrid public keys
  - FieldVal type for working modulo the secp256k1 field prime
  - ModNScalar type for working modulo the secp256k1 group order
  - Elliptic curve operations in homogeneous projective coordinates with
    complete addition formulas
  - Scalar multiplication with an arbitrary point using a fixed window
  - Scalar multiplication with the base point using a precomputed table held
    by a Context, blinded with a caller supplied seed
  - Point decompression from a given x coordinate
  - Additive and multiplicative tweaks of private and public keys
  - Nonce generation via RFC6979 with support for extra data and algorithm
    tags that can be used to prevent nonce reuse between signing algorithms
  - ECDH shared secrets hashed with SHA-256

All arithmetic on secret values is constant time.  No branch and no memory
index depends on a secret scalar or coordinate.

This package also provides data structures and functions necessary to produce
and verify deterministic signatures in accordance with RFC6979 using the
Elliptic Curve Digital Signature Algorithm (ECDSA), as defined in FIPS 186-3.
Signatures are not normalized to a low S value and high S signatures verify.
Signature.NormalizeS is available to callers that need the canonical form.

It also provides functions to parse and serialize the ECDSA signatures with the
more strict Distinguished Encoding Rules (DER) of ISO/IEC 8825-1 and some
additional restrictions specific to secp256k1.

# Errors

Errors returned by this package are of type secp256k1.Error and wrap an
ErrorKind.  IsFormatError reports errors found while decoding a buffer and
IsDomainError reports well formed values that are out of range.
*/
package secp256k1
