// Copyright (c) 2015-2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package engine exposes the secp256k1 operations through a plain byte buffer
call contract, suitable for a marshalling layer that copies buffers across a
language or process boundary.

Every operation takes and returns raw bytes.  Operations that produce a value
report failure with an empty result and never with a partial one, so a
non-empty result is the only success indicator.  Verification operations
return a boolean and treat malformed input the same as a signature that does
not verify.

Encodings at this boundary:

  - Scalars (private keys, tweaks) and digests are 32 bytes big endian
  - Public keys are 33 byte compressed or 65 byte uncompressed points
  - ECDSA signatures are DER encoded
  - Schnorr signatures are 64 bytes, R.x followed by s
  - Randomization seeds are 32 bytes

An Engine wraps a secp256k1.Context.  The package level functions use an
Engine over the process wide default context.  Engines are safe for
concurrent use.
*/
package engine
