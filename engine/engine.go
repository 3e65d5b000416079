// Copyright (c) 2015-2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package engine

import (
	"sync"

	secp256k1 "github.com/ModChain/secp256k1engine"
	"github.com/ModChain/secp256k1engine/schnorr"
)

// Engine runs the byte level operations against one Context.
type Engine struct {
	ctx *secp256k1.Context
}

// New returns an Engine with its own Context.  Randomizing it does not
// affect other engines.
func New() *Engine {
	return &Engine{ctx: secp256k1.NewContext()}
}

// NewWithContext returns an Engine using the passed Context.
func NewWithContext(ctx *secp256k1.Context) *Engine {
	return &Engine{ctx: ctx}
}

var (
	defaultEngine     *Engine
	defaultEngineOnce sync.Once
)

// Default returns the Engine over secp256k1.DefaultContext.
func Default() *Engine {
	defaultEngineOnce.Do(func() {
		defaultEngine = NewWithContext(secp256k1.DefaultContext())
	})
	return defaultEngine
}

// Context returns the Context the engine runs on.
func (e *Engine) Context() *secp256k1.Context {
	return e.ctx
}

// serializePubKey encodes the key in compressed or uncompressed form.
func serializePubKey(pub *secp256k1.PublicKey, compressed bool) []byte {
	if compressed {
		return pub.SerializeCompressed()
	}
	return pub.SerializeUncompressed()
}

// parsePrivKey parses a strict 32-byte secret key.  The caller must zero the
// returned key.
func parsePrivKey(sec []byte) (*secp256k1.PrivateKey, bool) {
	key, err := secp256k1.ParsePrivKey(sec)
	if err != nil {
		return nil, false
	}
	return key, true
}

// Verify reports whether sig is a valid DER encoded ECDSA signature of the
// 32-byte digest data for the public key pub.
func (e *Engine) Verify(data, sig, pub []byte) bool {
	if len(data) != secp256k1.HashLen {
		return false
	}
	pubKey, err := secp256k1.ParsePubKey(pub)
	if err != nil {
		return false
	}
	signature, err := secp256k1.ParseDERSignature(sig)
	if err != nil {
		return false
	}
	return e.ctx.Verify(signature, data, pubKey)
}

// Sign returns the DER encoded deterministic ECDSA signature of the 32-byte
// digest data with the secret key sec.
func (e *Engine) Sign(data, sec []byte) []byte {
	key, ok := parsePrivKey(sec)
	if !ok {
		return nil
	}
	defer key.Zero()

	sig, err := e.ctx.Sign(key, data)
	if err != nil {
		return nil
	}
	return sig.Serialize()
}

// SecKeyVerify reports whether sec is a valid secret key.
func (e *Engine) SecKeyVerify(sec []byte) bool {
	return secp256k1.SecKeyVerify(sec)
}

// ComputePubkey returns the public key of the secret key sec.
func (e *Engine) ComputePubkey(sec []byte, compressed bool) []byte {
	key, ok := parsePrivKey(sec)
	if !ok {
		return nil
	}
	defer key.Zero()

	pub := e.ctx.PubKey(key)
	if pub == nil {
		return nil
	}
	return serializePubKey(pub, compressed)
}

// PrivKeyTweakAdd returns (sec + tweak) mod n.
func (e *Engine) PrivKeyTweakAdd(sec, tweak []byte) []byte {
	key, ok := parsePrivKey(sec)
	if !ok {
		return nil
	}
	defer key.Zero()

	result, err := secp256k1.TweakAddPrivKey(key, tweak)
	if err != nil {
		return nil
	}
	defer result.Zero()
	return result.Serialize()
}

// PrivKeyTweakMul returns (sec * tweak) mod n.
func (e *Engine) PrivKeyTweakMul(sec, tweak []byte) []byte {
	key, ok := parsePrivKey(sec)
	if !ok {
		return nil
	}
	defer key.Zero()

	result, err := secp256k1.TweakMulPrivKey(key, tweak)
	if err != nil {
		return nil
	}
	defer result.Zero()
	return result.Serialize()
}

// PubKeyTweakAdd returns pub + tweak*G.
func (e *Engine) PubKeyTweakAdd(pub, tweak []byte, compressed bool) []byte {
	pubKey, err := secp256k1.ParsePubKey(pub)
	if err != nil {
		return nil
	}
	result, err := e.ctx.TweakAddPubKey(pubKey, tweak)
	if err != nil {
		return nil
	}
	return serializePubKey(result, compressed)
}

// PubKeyTweakMul returns tweak*pub.
func (e *Engine) PubKeyTweakMul(pub, tweak []byte, compressed bool) []byte {
	pubKey, err := secp256k1.ParsePubKey(pub)
	if err != nil {
		return nil
	}
	result, err := secp256k1.TweakMulPubKey(pubKey, tweak)
	if err != nil {
		return nil
	}
	return serializePubKey(result, compressed)
}

// Randomize refreshes the blinding of the engine context from a 32-byte seed.
// It only fails on a malformed seed.
func (e *Engine) Randomize(seed []byte) bool {
	return e.ctx.Randomize(seed) == nil
}

// Decompress returns the 65-byte uncompressed form of pub.  An uncompressed
// key is passed through.
func (e *Engine) Decompress(pub []byte) []byte {
	result, err := secp256k1.DecompressPubKey(pub)
	if err != nil {
		return nil
	}
	return result
}

// IsValidPubKey reports whether pub is a valid public key encoding of a point
// on the curve.
func (e *Engine) IsValidPubKey(pub []byte) bool {
	return secp256k1.IsValidPubKey(pub)
}

// SchnorrSign returns the 64-byte Schnorr signature of the 32-byte digest
// data with the secret key sec.
func (e *Engine) SchnorrSign(data, sec []byte) []byte {
	key, ok := parsePrivKey(sec)
	if !ok {
		return nil
	}
	defer key.Zero()

	sig, err := schnorr.Sign(e.ctx, key, data)
	if err != nil {
		return nil
	}
	return sig.Serialize()
}

// SchnorrVerify reports whether sig is a valid 64-byte Schnorr signature of
// the 32-byte digest data for the public key pub.
func (e *Engine) SchnorrVerify(data, sig, pub []byte) bool {
	pubKey, err := secp256k1.ParsePubKey(pub)
	if err != nil {
		return false
	}
	signature, err := schnorr.ParseSignature(sig)
	if err != nil {
		return false
	}
	return signature.Verify(e.ctx, data, pubKey)
}

// CreateECDHSecret returns the 32-byte ECDH shared secret of sec and pub,
// the SHA-256 digest of the compressed shared point.
func (e *Engine) CreateECDHSecret(sec, pub []byte) []byte {
	key, ok := parsePrivKey(sec)
	if !ok {
		return nil
	}
	defer key.Zero()

	pubKey, err := secp256k1.ParsePubKey(pub)
	if err != nil {
		return nil
	}
	secret, err := key.ECDH(pubKey)
	if err != nil {
		return nil
	}
	return secret
}
