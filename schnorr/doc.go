// Copyright (c) 2013-2017 The btcsuite developers
// Copyright (c) 2015-2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package schnorr provides custom Schnorr signing and verification via secp256k1.

This package provides data structures and functions necessary to produce and
verify deterministic Schnorr signatures over the secp256k1 curve in the form
of the 2018 BIP-Schnorr proposal, as used by the libsecp256k1 schnorr module.
Signatures are 64 bytes and commit to the full compressed public key.

# Signing

Given a private key d with public key P = dG and a 32-byte message hash m:

  - k = RFC6979(d, m) with the 16-byte algorithm tag "Schnorr+SHA256  "
  - R = kG, and k is negated when R.y is not a quadratic residue mod p
  - e = SHA256(R.x || P compressed || m) mod n
  - s = k + e*d mod n
  - the signature is R.x || s

# Verification

A signature (r, s) is valid for P and m when r < p, s < n and the point
R = sG - eP, with e computed as above, is not the point at infinity, has a
y coordinate that is a quadratic residue and has x coordinate r.

Verification through Verify only reports a bool.  The error returned by
verify describes why a signature was rejected and is available to tests.
*/
package schnorr
