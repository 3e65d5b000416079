// Copyright (c) 2013-2014 The btcsuite developers
// Copyright (c) 2015-2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secp256k1

// References:
//   [HAC]: Handbook of Applied Cryptography Menezes, van Oorschot, Vanstone.
//     http://cacr.uwaterloo.ca/hac/

// All elliptic curve operations for secp256k1 are done in a finite field
// characterized by a 256-bit prime.  This package implements specialized
// fixed-precision field arithmetic rather than relying on an
// arbitrary-precision arithmetic package such as math/big since the size is
// known and, more importantly, since arbitrary-precision packages are not
// constant time.
//
// Field elements are represented as 4 uint64s with each word treated as base
// 2^64 and the intermediate 128-bit results handled with math/bits.  Unlike a
// lazily normalized representation, every value produced by the methods in
// this file is fully reduced modulo the prime, so there is no notion of
// magnitude and callers never need to normalize.
//
// All methods are constant time with respect to the values involved unless
// explicitly documented otherwise.  None of them branch or index memory based
// on the value of a field element.

import (
	"encoding/binary"
	"encoding/hex"
	"math/bits"
)

// Constants related to the field representation.
const (
	// fieldPrimeWordZero is the least significant word of the secp256k1
	// prime.  The other three words of the prime are all ones.
	fieldPrimeWordZero = 0xfffffffefffffc2f

	// fieldPrimeWordOne is any of the three most significant words of the
	// secp256k1 prime.
	fieldPrimeWordOne = 0xffffffffffffffff

	// fieldPrimeComplement is 2^256 - P.  It is used to fold the upper half of
	// a product back into the lower half since 2^256 = 2^32 + 977 (mod P).
	fieldPrimeComplement = 0x1000003d1
)

var (
	// fieldPrimeMinusTwo is P-2 and is the exponent used to compute a
	// multiplicative inverse by Fermat's little theorem.
	fieldPrimeMinusTwo = [4]uint64{
		0xfffffffefffffc2d, 0xffffffffffffffff,
		0xffffffffffffffff, 0xffffffffffffffff,
	}

	// fieldSqrtExponent is (P+1)/4 and is the exponent used to compute a
	// square root since P = 3 (mod 4).
	fieldSqrtExponent = [4]uint64{
		0xffffffffbfffff0c, 0xffffffffffffffff,
		0xffffffffffffffff, 0x3fffffffffffffff,
	}

	// fieldEulerExponent is (P-1)/2 and is the exponent used to compute the
	// Legendre symbol per Euler's criterion.
	fieldEulerExponent = [4]uint64{
		0xffffffff7ffffe17, 0xffffffffffffffff,
		0xffffffffffffffff, 0x7fffffffffffffff,
	}
)

// FieldVal implements constant-time fixed-precision arithmetic over the
// secp256k1 finite field.  This means all arithmetic is performed modulo
//
//	0xfffffffffffffffffffffffffffffffffffffffffffffffffffffffefffffc2f.
//
// The zero value is the field element zero.  All methods that produce a new
// value return the receiver so calls can be chained, for example:
//
//	var f FieldVal
//	f.SetInt(5).Mul(&g).Add(&h)
//
// Every method leaves the receiver fully reduced.
type FieldVal struct {
	// n holds the value as 4 little-endian words in base 2^64.
	n [4]uint64
}

// String returns the field value as a normalized human-readable hex string.
//
// This is NOT constant time.
func (f FieldVal) String() string {
	return hex.EncodeToString(f.Bytes()[:])
}

// Zero sets the field value to zero in constant time.  A newly created field
// value is already set to zero.  This function can be useful to clear an
// existing field value for reuse.
func (f *FieldVal) Zero() {
	f.n = [4]uint64{}
}

// Set sets the field value equal to the passed value.
//
// The field value is returned to support chaining.
func (f *FieldVal) Set(val *FieldVal) *FieldVal {
	f.n = val.n
	return f
}

// SetInt sets the field value to the passed integer.  This is a convenience
// function since it is fairly common to perform some arithmetic with small
// native integers.
//
// The field value is returned to support chaining.
func (f *FieldVal) SetInt(ui uint64) *FieldVal {
	f.n = [4]uint64{ui, 0, 0, 0}
	f.reduce()
	return f
}

// reduce conditionally subtracts the prime from the field value when it is
// greater than or equal to it and returns 1 when the subtraction happened or 0
// otherwise.  The value must be less than twice the prime which holds for any
// 256-bit value.
func (f *FieldVal) reduce() uint32 {
	var t [4]uint64
	var borrow uint64
	t[0], borrow = bits.Sub64(f.n[0], fieldPrimeWordZero, 0)
	t[1], borrow = bits.Sub64(f.n[1], fieldPrimeWordOne, borrow)
	t[2], borrow = bits.Sub64(f.n[2], fieldPrimeWordOne, borrow)
	t[3], borrow = bits.Sub64(f.n[3], fieldPrimeWordOne, borrow)

	// No borrow means the value was >= P, so keep the difference.
	mask := borrow - 1
	f.n[0] = (t[0] & mask) | (f.n[0] &^ mask)
	f.n[1] = (t[1] & mask) | (f.n[1] &^ mask)
	f.n[2] = (t[2] & mask) | (f.n[2] &^ mask)
	f.n[3] = (t[3] & mask) | (f.n[3] &^ mask)
	return uint32(borrow ^ 1)
}

// reduceCarry reduces the 257-bit value carry*2^256 + f which must be less
// than twice the prime.
func (f *FieldVal) reduceCarry(carry uint64) {
	var t [4]uint64
	var borrow uint64
	t[0], borrow = bits.Sub64(f.n[0], fieldPrimeWordZero, 0)
	t[1], borrow = bits.Sub64(f.n[1], fieldPrimeWordOne, borrow)
	t[2], borrow = bits.Sub64(f.n[2], fieldPrimeWordOne, borrow)
	t[3], borrow = bits.Sub64(f.n[3], fieldPrimeWordOne, borrow)

	// Keep the difference when the sum overflowed 256 bits or when it did not
	// underflow, i.e. the full value was >= P.
	mask := -(carry | (borrow ^ 1))
	f.n[0] = (t[0] & mask) | (f.n[0] &^ mask)
	f.n[1] = (t[1] & mask) | (f.n[1] &^ mask)
	f.n[2] = (t[2] & mask) | (f.n[2] &^ mask)
	f.n[3] = (t[3] & mask) | (f.n[3] &^ mask)
}

// SetBytes packs the passed 32-byte big-endian value into the internal field
// value representation in constant time.  SetBytes interprets the provided
// array as a 256-bit big-endian unsigned integer, packs it into the internal
// field value representation, and returns either 1 if it is greater than or
// equal to the field prime (aka it overflowed) or 0 otherwise in constant
// time.  An overflowed value is reduced modulo the prime.
//
// Note that a bool is not used here because it is not possible in Go to convert
// from a bool to numeric value in constant time and many constant-time
// operations require a numeric value.
func (f *FieldVal) SetBytes(b *[32]byte) uint32 {
	f.n[0] = binary.BigEndian.Uint64(b[24:32])
	f.n[1] = binary.BigEndian.Uint64(b[16:24])
	f.n[2] = binary.BigEndian.Uint64(b[8:16])
	f.n[3] = binary.BigEndian.Uint64(b[0:8])
	return f.reduce()
}

// SetByteSlice interprets the provided slice as a 256-bit big-endian unsigned
// integer (meaning it is truncated to the first 32 bytes), packs it into the
// internal field value representation, and returns whether or not the
// resulting value is greater than or equal to the field prime (aka it
// overflowed).  Slices shorter than 32 bytes are treated as if they were
// padded with leading zeros.
//
// Preconditions: None
// Output Normalized: Yes since the value is always reduced
func (f *FieldVal) SetByteSlice(b []byte) bool {
	var b32 [32]byte
	if len(b) > 32 {
		b = b[:32]
	}
	copy(b32[32-len(b):], b)
	result := f.SetBytes(&b32)
	zeroArray32(&b32)
	return result != 0
}

// PutBytesUnchecked unpacks the field value to a 32-byte big-endian value
// directly into the passed byte slice in constant time.  The target slice must
// have at least 32 bytes available or it will panic.
//
// There is a similar function, PutBytes, which unpacks the field value into a
// 32-byte array directly.  This version is provided since it can be useful to
// write directly into part of a larger buffer without needing a separate
// allocation.
func (f *FieldVal) PutBytesUnchecked(b []byte) {
	binary.BigEndian.PutUint64(b[0:8], f.n[3])
	binary.BigEndian.PutUint64(b[8:16], f.n[2])
	binary.BigEndian.PutUint64(b[16:24], f.n[1])
	binary.BigEndian.PutUint64(b[24:32], f.n[0])
}

// PutBytes unpacks the field value to a 32-byte big-endian value using the
// passed byte array in constant time.
func (f *FieldVal) PutBytes(b *[32]byte) {
	f.PutBytesUnchecked(b[:])
}

// Bytes unpacks the field value to a 32-byte big-endian value in constant
// time.
//
// See PutBytes and PutBytesUnchecked for variants that allow an array or slice
// to be passed which can be useful to cut down on the number of allocations by
// allowing the caller to reuse a buffer or write directly into part of a
// larger buffer.
func (f *FieldVal) Bytes() *[32]byte {
	b := new([32]byte)
	f.PutBytesUnchecked(b[:])
	return b
}

// IsZeroBit returns 1 when the field value is equal to zero or 0 otherwise in
// constant time.
//
// Note that a bool is not used here because it is not possible in Go to convert
// from a bool to numeric value in constant time and many constant-time
// operations require a numeric value.  See IsZero for the version that returns
// a bool.
func (f *FieldVal) IsZeroBit() uint32 {
	bits := f.n[0] | f.n[1] | f.n[2] | f.n[3]
	return uint32(((bits | -bits) >> 63) ^ 1)
}

// IsZero returns whether or not the field value is equal to zero in constant
// time.
func (f *FieldVal) IsZero() bool {
	return f.IsZeroBit() == 1
}

// IsOneBit returns 1 when the field value is equal to one or 0 otherwise in
// constant time.
func (f *FieldVal) IsOneBit() uint32 {
	bits := (f.n[0] ^ 1) | f.n[1] | f.n[2] | f.n[3]
	return uint32(((bits | -bits) >> 63) ^ 1)
}

// IsOne returns whether or not the field value is equal to one in constant
// time.
func (f *FieldVal) IsOne() bool {
	return f.IsOneBit() == 1
}

// IsOddBit returns 1 when the field value is an odd number or 0 otherwise in
// constant time.
func (f *FieldVal) IsOddBit() uint32 {
	return uint32(f.n[0] & 1)
}

// IsOdd returns whether or not the field value is an odd number in constant
// time.
func (f *FieldVal) IsOdd() bool {
	return f.n[0]&1 == 1
}

// Equals returns whether or not the two field values are the same in constant
// time.
func (f *FieldVal) Equals(val *FieldVal) bool {
	bits := (f.n[0] ^ val.n[0]) | (f.n[1] ^ val.n[1]) |
		(f.n[2] ^ val.n[2]) | (f.n[3] ^ val.n[3])
	return bits == 0
}

// CondAssign sets the field value to the passed value when choice is 1 and
// leaves it unchanged when choice is 0.  The choice must be 0 or 1.  No branch
// is taken on choice.
//
// The field value is returned to support chaining.
func (f *FieldVal) CondAssign(choice uint32, val *FieldVal) *FieldVal {
	mask := -uint64(choice & 1)
	f.n[0] ^= (f.n[0] ^ val.n[0]) & mask
	f.n[1] ^= (f.n[1] ^ val.n[1]) & mask
	f.n[2] ^= (f.n[2] ^ val.n[2]) & mask
	f.n[3] ^= (f.n[3] ^ val.n[3]) & mask
	return f
}

// Add2 adds the passed two field values together and stores the result in f
// in constant time.
//
// The field value is returned to support chaining.  This enables syntax like:
// f3.Add2(f, f2).AddInt(1) so that f3 = f + f2 + 1.
func (f *FieldVal) Add2(val *FieldVal, val2 *FieldVal) *FieldVal {
	var carry uint64
	f.n[0], carry = bits.Add64(val.n[0], val2.n[0], 0)
	f.n[1], carry = bits.Add64(val.n[1], val2.n[1], carry)
	f.n[2], carry = bits.Add64(val.n[2], val2.n[2], carry)
	f.n[3], carry = bits.Add64(val.n[3], val2.n[3], carry)
	f.reduceCarry(carry)
	return f
}

// Add adds the passed value to the existing field value and stores the result
// in f in constant time.
//
// The field value is returned to support chaining.  This enables syntax like:
// f.Add(f2).AddInt(1) so that f = f + f2 + 1.
func (f *FieldVal) Add(val *FieldVal) *FieldVal {
	return f.Add2(f, val)
}

// AddInt adds the passed integer to the existing field value and stores the
// result in f in constant time.
//
// The field value is returned to support chaining.
func (f *FieldVal) AddInt(ui uint64) *FieldVal {
	var v FieldVal
	v.SetInt(ui)
	return f.Add2(f, &v)
}

// Sub2 subtracts the second passed field value from the first and stores the
// result in f in constant time.
//
// The field value is returned to support chaining.
func (f *FieldVal) Sub2(val *FieldVal, val2 *FieldVal) *FieldVal {
	var borrow, carry uint64
	f.n[0], borrow = bits.Sub64(val.n[0], val2.n[0], 0)
	f.n[1], borrow = bits.Sub64(val.n[1], val2.n[1], borrow)
	f.n[2], borrow = bits.Sub64(val.n[2], val2.n[2], borrow)
	f.n[3], borrow = bits.Sub64(val.n[3], val2.n[3], borrow)

	// Add the prime back when the subtraction underflowed.
	mask := -borrow
	f.n[0], carry = bits.Add64(f.n[0], fieldPrimeWordZero&mask, 0)
	f.n[1], carry = bits.Add64(f.n[1], fieldPrimeWordOne&mask, carry)
	f.n[2], carry = bits.Add64(f.n[2], fieldPrimeWordOne&mask, carry)
	f.n[3], _ = bits.Add64(f.n[3], fieldPrimeWordOne&mask, carry)
	return f
}

// Sub subtracts the passed value from the existing field value and stores the
// result in f in constant time.
//
// The field value is returned to support chaining.
func (f *FieldVal) Sub(val *FieldVal) *FieldVal {
	return f.Sub2(f, val)
}

// NegateVal negates the passed value and stores the result in f in constant
// time.  The negation of zero is zero.
//
// The field value is returned to support chaining.
func (f *FieldVal) NegateVal(val *FieldVal) *FieldVal {
	var zero FieldVal
	return f.Sub2(&zero, val)
}

// Negate negates the field value in constant time.  The existing field value
// is modified.
//
// The field value is returned to support chaining.
func (f *FieldVal) Negate() *FieldVal {
	return f.NegateVal(f)
}

// mul256 computes the full 512-bit product of the two 256-bit values as 8
// little-endian words.
func mul256(a, b *[4]uint64) [8]uint64 {
	var r [8]uint64
	for i := 0; i < 4; i++ {
		var carry uint64
		for j := 0; j < 4; j++ {
			hi, lo := bits.Mul64(a[i], b[j])
			var c uint64
			lo, c = bits.Add64(lo, r[i+j], 0)
			hi += c
			lo, c = bits.Add64(lo, carry, 0)
			hi += c
			r[i+j] = lo
			carry = hi
		}
		r[i+4] = carry
	}
	return r
}

// reduce320 reduces the value t4*2^256 + t0..t3 modulo the prime and stores
// it in f.
func (f *FieldVal) reduce320(t0, t1, t2, t3, t4 uint64) {
	// 2^256 = fieldPrimeComplement (mod P), so fold the top word in.  The
	// high half of the product is at most 33 bits.
	hi, lo := bits.Mul64(t4, fieldPrimeComplement)
	var c uint64
	t0, c = bits.Add64(t0, lo, 0)
	t1, c = bits.Add64(t1, hi, c)
	t2, c = bits.Add64(t2, 0, c)
	t3, c = bits.Add64(t3, 0, c)

	// A final carry means the low 256 bits are smaller than 2^98, so adding
	// the complement once more can not overflow.
	t0, c = bits.Add64(t0, fieldPrimeComplement&(-c), 0)
	t1, c = bits.Add64(t1, 0, c)
	t2, c = bits.Add64(t2, 0, c)
	t3, _ = bits.Add64(t3, 0, c)

	f.n = [4]uint64{t0, t1, t2, t3}
	f.reduce()
}

// reduce512 reduces the 512-bit value r modulo the prime and stores it in f.
func (f *FieldVal) reduce512(r *[8]uint64) {
	// Fold the upper 256 bits by multiplying them by 2^256 mod P.  Every
	// high half of the word products is at most 33 bits, so adding carries to
	// them can not overflow.
	var t [5]uint64
	var carry, c uint64
	for i := 0; i < 4; i++ {
		hi, lo := bits.Mul64(r[i+4], fieldPrimeComplement)
		lo, c = bits.Add64(lo, carry, 0)
		hi += c
		t[i], c = bits.Add64(r[i], lo, 0)
		carry = hi + c
	}
	t[4] = carry
	f.reduce320(t[0], t[1], t[2], t[3], t[4])
}

// Mul2 multiplies the passed two field values together and stores the result
// in f in constant time.
//
// The field value is returned to support chaining.  This enables syntax like:
// f3.Mul2(f, f2).AddInt(1) so that f3 = (f * f2) + 1.
func (f *FieldVal) Mul2(val *FieldVal, val2 *FieldVal) *FieldVal {
	r := mul256(&val.n, &val2.n)
	f.reduce512(&r)
	return f
}

// Mul multiplies the passed value to the existing field value and stores the
// result in f in constant time.
//
// The field value is returned to support chaining.
func (f *FieldVal) Mul(val *FieldVal) *FieldVal {
	return f.Mul2(f, val)
}

// MulInt multiplies the field value by the passed integer and stores the
// result in f in constant time.
//
// The field value is returned to support chaining.
func (f *FieldVal) MulInt(val uint64) *FieldVal {
	var t [5]uint64
	var carry, c uint64
	for i := 0; i < 4; i++ {
		hi, lo := bits.Mul64(f.n[i], val)
		t[i], c = bits.Add64(lo, carry, 0)
		carry = hi + c
	}
	t[4] = carry
	f.reduce320(t[0], t[1], t[2], t[3], t[4])
	return f
}

// SquareVal squares the passed value and stores the result in f in constant
// time.
//
// The field value is returned to support chaining.
func (f *FieldVal) SquareVal(val *FieldVal) *FieldVal {
	return f.Mul2(val, val)
}

// Square squares the field value in constant time.  The existing field value
// is modified.
//
// The field value is returned to support chaining.
func (f *FieldVal) Square() *FieldVal {
	return f.Mul2(f, f)
}

// powVal raises the passed value to the passed exponent and stores the result
// in f.  The exponent is always one of the package level constants, so
// branching on its bits does not leak anything about the value.
func (f *FieldVal) powVal(val *FieldVal, exp *[4]uint64) *FieldVal {
	base := *val
	var result FieldVal
	result.SetInt(1)
	for i := 3; i >= 0; i-- {
		for j := 63; j >= 0; j-- {
			result.Square()
			if (exp[i]>>uint(j))&1 == 1 {
				result.Mul(&base)
			}
		}
	}
	f.n = result.n
	return f
}

// Inverse finds the modular multiplicative inverse of the field value in
// constant time using Fermat's little theorem (a^(p-2) mod p).  The existing
// field value is modified.
//
// The inverse of zero is mathematically undefined.  This method maps zero to
// zero, so callers that can encounter zero must either check beforehand or use
// InverseVal which reports it.
//
// The field value is returned to support chaining.
func (f *FieldVal) Inverse() *FieldVal {
	return f.powVal(f, &fieldPrimeMinusTwo)
}

// InverseVal sets f to the modular multiplicative inverse of the passed value
// and returns whether the inverse exists, which is the case for every value
// except zero.
func (f *FieldVal) InverseVal(val *FieldVal) bool {
	ok := val.IsZeroBit() == 0
	f.powVal(val, &fieldPrimeMinusTwo)
	return ok
}

// SquareRootVal either calculates the square root of the passed value when it
// exists or the square root of the negation of the value when it does not
// exist and stores the result in f in constant time.  The return flag is true
// when the calculated square root is for the passed value itself and false
// when it is for its negation.
//
// Since P = 3 (mod 4), the root, when it exists, is val^((P+1)/4).
func (f *FieldVal) SquareRootVal(val *FieldVal) bool {
	var root, check FieldVal
	root.powVal(val, &fieldSqrtExponent)
	check.SquareVal(&root)
	valid := check.Equals(val)
	f.n = root.n
	return valid
}

// IsQuadResidue returns whether the field value is a nonzero quadratic
// residue, that is, whether it has a square root and is not zero.  It is
// computed in constant time with Euler's criterion.
func (f *FieldVal) IsQuadResidue() bool {
	var legendre FieldVal
	legendre.powVal(f, &fieldEulerExponent)
	return legendre.IsOne()
}
