// Copyright (c) 2015-2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package engine

// The functions below run on Default().

func Verify(data, sig, pub []byte) bool { return Default().Verify(data, sig, pub) }

func Sign(data, sec []byte) []byte { return Default().Sign(data, sec) }

func SecKeyVerify(sec []byte) bool { return Default().SecKeyVerify(sec) }

func ComputePubkey(sec []byte, compressed bool) []byte {
	return Default().ComputePubkey(sec, compressed)
}

func PrivKeyTweakAdd(sec, tweak []byte) []byte { return Default().PrivKeyTweakAdd(sec, tweak) }

func PrivKeyTweakMul(sec, tweak []byte) []byte { return Default().PrivKeyTweakMul(sec, tweak) }

func PubKeyTweakAdd(pub, tweak []byte, compressed bool) []byte {
	return Default().PubKeyTweakAdd(pub, tweak, compressed)
}

func PubKeyTweakMul(pub, tweak []byte, compressed bool) []byte {
	return Default().PubKeyTweakMul(pub, tweak, compressed)
}

func Randomize(seed []byte) bool { return Default().Randomize(seed) }

func Decompress(pub []byte) []byte { return Default().Decompress(pub) }

func IsValidPubKey(pub []byte) bool { return Default().IsValidPubKey(pub) }

func SchnorrSign(data, sec []byte) []byte { return Default().SchnorrSign(data, sec) }

func SchnorrVerify(data, sig, pub []byte) bool { return Default().SchnorrVerify(data, sig, pub) }

func CreateECDHSecret(sec, pub []byte) []byte { return Default().CreateECDHSecret(sec, pub) }
