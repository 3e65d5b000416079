// Copyright (c) 2015-2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secp256k1

import (
	"fmt"
	"sync"
)

const (
	// baseTableWindows is the number of 4-bit windows of a 256-bit scalar.
	baseTableWindows = 64

	// seedLen is the required length of a Context randomization seed.
	seedLen = 32
)

var (
	// baseTable holds j*16^i*G for every window i and digit j.  It is a pure
	// function of the curve constants, so it is computed once on first use
	// and shared by every Context.
	baseTable     *[baseTableWindows]pointTable
	baseTableOnce sync.Once
)

// buildBaseTable computes the comb table used by ScalarBaseMult.
func buildBaseTable() {
	table := new([baseTableWindows]pointTable)
	g := Generator()
	for i := range table {
		table[i][0].SetInfinity()
		table[i][1].Set(&g)
		for j := 2; j < len(table[i]); j++ {
			AddPoints(&table[i][j-1], &g, &table[i][j])
		}
		// The next window starts at 16 times the current base.
		AddPoints(&table[i][15], &g, &g)
	}
	for i := range table {
		for j := range table[i] {
			table[i][j].ToAffine()
		}
	}
	baseTable = table
}

// precomputedBaseTable returns the shared comb table, building it on first
// use.
func precomputedBaseTable() *[baseTableWindows]pointTable {
	baseTableOnce.Do(buildBaseTable)
	return baseTable
}

// Context holds the state needed for fast and side channel resistant
// multiplication of the base point.  A Context is safe for concurrent use by
// multiple goroutines.
//
// Base point multiplications through a Context are blinded: the context keeps
// a secret scalar b and computes k*G as b*G + (k-b)*G so the table lookups
// operate on a value unrelated to k.  A new Context uses b = 0 until
// Randomize is called.  Blinding never changes results.
type Context struct {
	mu sync.RWMutex

	// blind is -b.
	blind ModNScalar

	// initial is b*G with its projective coordinates scaled by a random
	// nonzero factor.
	initial ProjectivePoint
}

// NewContext returns a new unblinded Context.
func NewContext() *Context {
	precomputedBaseTable()
	ctx := new(Context)
	ctx.initial.SetInfinity()
	return ctx
}

var (
	defaultCtx     *Context
	defaultCtxOnce sync.Once
)

// DefaultContext returns the process wide Context used by the convenience
// functions of this package that do not take a Context.
func DefaultContext() *Context {
	defaultCtxOnce.Do(func() {
		defaultCtx = NewContext()
	})
	return defaultCtx
}

// scalarBaseMultUnblinded computes k*G with the comb table.  Every window
// performs one constant time table scan and one addition.
func scalarBaseMultUnblinded(k *ModNScalar, acc *ProjectivePoint) {
	table := precomputedBaseTable()
	kb := k.Bytes()
	var sel ProjectivePoint
	for i := 0; i < baseTableWindows; i++ {
		b := kb[31-i/2]
		digit := uint32(b>>(4*uint(i%2))) & 0x0f
		table[i].lookup(digit, &sel)
		AddPoints(acc, &sel, acc)
	}
	zeroArray32(&kb)
}

// ScalarBaseMult multiplies k*G where G is the base point of the group and k
// is a scalar modulo the group order, and stores the result in the provided
// projective point in constant time.
func (ctx *Context) ScalarBaseMult(k *ModNScalar, result *ProjectivePoint) {
	var blinded ModNScalar
	var acc ProjectivePoint
	ctx.mu.RLock()
	blinded.Add2(k, &ctx.blind)
	acc.Set(&ctx.initial)
	ctx.mu.RUnlock()

	scalarBaseMultUnblinded(&blinded, &acc)
	blinded.Zero()
	result.Set(&acc)
}

// ScalarBaseMult multiplies k*G with the default Context.
func ScalarBaseMult(k *ModNScalar, result *ProjectivePoint) {
	DefaultContext().ScalarBaseMult(k, result)
}

// Randomize refreshes the blinding of the Context from the passed 32-byte
// seed.  The new blinding is derived from both the seed and the previous
// blinding, so repeated calls accumulate entropy.  Results of every operation
// are unaffected.
func (ctx *Context) Randomize(seed []byte) error {
	if len(seed) != seedLen {
		str := fmt.Sprintf("malformed seed: %d bytes, want %d", len(seed),
			seedLen)
		return makeError(ErrSeedInvalidLen, str)
	}

	ctx.mu.Lock()
	defer ctx.mu.Unlock()

	prev := ctx.blind.Bytes()
	drbg := newHMACDRBG(seed, prev[:])
	zeroArray32(&prev)
	defer drbg.zero()

	var buf [32]byte
	defer zeroArray32(&buf)

	// Blinding scalar b in [1, N-1].
	var b ModNScalar
	for {
		drbg.generate(&buf)
		if b.SetBytes(&buf) == 0 && !b.IsZero() {
			break
		}
	}

	// Projective scaling factor in [1, P-1].
	var lambda FieldVal
	for {
		drbg.generate(&buf)
		if lambda.SetBytes(&buf) == 0 && !lambda.IsZero() {
			break
		}
	}

	var bG ProjectivePoint
	bG.SetInfinity()
	scalarBaseMultUnblinded(&b, &bG)
	bG.X.Mul(&lambda)
	bG.Y.Mul(&lambda)
	bG.Z.Mul(&lambda)

	ctx.blind.NegateVal(&b)
	ctx.initial.Set(&bG)
	b.Zero()
	lambda.Zero()
	return nil
}
