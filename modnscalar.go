// Copyright (c) 2020-2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secp256k1

import (
	"encoding/binary"
	"encoding/hex"
	"math/bits"
)

// References:
//   [SECG]: Recommended Elliptic Curve Domain Parameters
//     https://www.secg.org/sec2-v2.pdf
//
//   [HAC]: Handbook of Applied Cryptography Menezes, van Oorschot, Vanstone.
//     http://cacr.uwaterloo.ca/hac/
//
//   [KAK]: Analyzing and Comparing Montgomery Multiplication Algorithms
//     Koc, Acar, Kaliski. (the CIOS method)

// Many elliptic curve operations require working with scalars in a finite field
// characterized by the order of the group underlying the secp256k1 curve.
// Given this precision is larger than the biggest available native type,
// obviously some form of bignum math is needed.  This code implements
// specialized fixed-precision field arithmetic rather than relying on an
// arbitrary-precision arithmetic package such as math/big for dealing with the
// math modulo the group order since the size is known.  As a result, rather
// large performance gains are achieved by taking advantage of many
// optimizations not available to arbitrary-precision arithmetic and generic
// modular arithmetic algorithms.
//
// Scalars are stored as 4 uint64 words in little-endian order and always kept
// fully reduced modulo the group order.  Multiplication is carried out in the
// Montgomery domain with R = 2^256 using the coarsely integrated operand
// scanning (CIOS) method [KAK], with values converted in and out of the domain
// by multiplying with R^2 and 1 respectively.

// Constants used to make the code more readable.
const (
	// orderWordZero through orderWordThree are the words of the secp256k1
	// curve order N in little-endian order.
	orderWordZero  uint64 = 0xbfd25e8cd0364141
	orderWordOne   uint64 = 0xbaaedce6af48a03b
	orderWordTwo   uint64 = 0xfffffffffffffffe
	orderWordThree uint64 = 0xffffffffffffffff

	// halfOrderWordZero through halfOrderWordThree are the words of floor(N/2).
	halfOrderWordZero  uint64 = 0xdfe92f46681b20a0
	halfOrderWordOne   uint64 = 0x5d576e7357a4501d
	halfOrderWordTwo   uint64 = 0xffffffffffffffff
	halfOrderWordThree uint64 = 0x7fffffffffffffff

	// orderMontInv is -N^-1 mod 2^64 and is used to compute the Montgomery
	// reduction factor of each word.
	orderMontInv uint64 = 0x4b0dff665588b13f
)

var (
	// orderWords is the curve order N as little-endian words.
	orderWords = [4]uint64{orderWordZero, orderWordOne, orderWordTwo, orderWordThree}

	// orderMontR2 is R^2 mod N = 2^512 mod N.  Multiplying a reduced value by
	// it in the Montgomery domain converts it into the domain.
	orderMontR2 = [4]uint64{
		0x896cf21467d7d140, 0x741496c20e7cf878,
		0xe697f5e45bcd07c6, 0x9d671cd581c69bc5,
	}

	// orderMontOne is R mod N, which is the value one in the Montgomery
	// domain.
	orderMontOne = [4]uint64{0x402da1732fc9bebf, 0x4551231950b75fc4, 1, 0}

	// orderMinusTwo is N-2 and is the exponent used to compute a
	// multiplicative inverse by Fermat's little theorem.
	orderMinusTwo = [4]uint64{
		0xbfd25e8cd036413f, 0xbaaedce6af48a03b,
		0xfffffffffffffffe, 0xffffffffffffffff,
	}

	// zero32 is an array of 32 bytes used for the purposes of zeroing and is
	// defined here to avoid extra allocations.
	zero32 = [32]byte{}
)

// ModNScalar implements optimized 256-bit constant-time fixed-precision
// arithmetic over the secp256k1 group order.  This means all arithmetic is
// performed modulo:
//
//	0xfffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141
//
// It only implements the arithmetic needed for elliptic curve operations,
// however, the operations that are not implemented can typically be worked
// around if absolutely needed.  For example, subtraction can be performed by
// adding the negation.
//
// Should it be absolutely necessary, conversion to the standard library
// math/big.Int can be accomplished by using the Bytes method, slicing the
// resulting fixed-size array, and feeding it to big.Int.SetBytes.  However,
// that should typically be avoided when possible as conversion to big.Ints
// requires allocations, is not constant time, and is slower when working modulo
// the group order.
type ModNScalar struct {
	// n holds the scalar as 4 little-endian words in base 2^64.  The value is
	// always less than the group order.
	n [4]uint64
}

// zeroArray32 zeroes the provided 32-byte buffer.
func zeroArray32(b *[32]byte) {
	copy(b[:], zero32[:])
}

// zeroSlice zeroes the provided byte slice.
func zeroSlice(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// Set sets the scalar equal to a copy of the passed one in constant time.
//
// The scalar is returned to support chaining.  This enables syntax like:
// s := new(ModNScalar).Set(s2).Add(1) so that s = s2 + 1 where s2 is not
// modified.
func (s *ModNScalar) Set(val *ModNScalar) *ModNScalar {
	s.n = val.n
	return s
}

// Zero sets the scalar to zero in constant time.  A newly created scalar is
// already set to zero.  This function can be useful to clear an existing scalar
// for reuse.
func (s *ModNScalar) Zero() {
	s.n = [4]uint64{}
}

// IsZeroBit returns 1 when the scalar is equal to zero or 0 otherwise in
// constant time.
//
// Note that a bool is not used here because it is not possible in Go to convert
// from a bool to numeric value in constant time and many constant-time
// operations require a numeric value.  See IsZero for the version that returns
// a bool.
func (s *ModNScalar) IsZeroBit() uint32 {
	bits := s.n[0] | s.n[1] | s.n[2] | s.n[3]
	return uint32(((bits | -bits) >> 63) ^ 1)
}

// IsZero returns whether or not the scalar is equal to zero in constant time.
func (s *ModNScalar) IsZero() bool {
	return s.IsZeroBit() == 1
}

// SetInt sets the scalar to the passed integer in constant time.  This is a
// convenience function since it is fairly common to perform some arithmetic
// with small native integers.
//
// The scalar is returned to support chaining.  This enables syntax like:
// s := new(ModNScalar).SetInt(2).Mul(s2) so that s = 2 * s2.
func (s *ModNScalar) SetInt(ui uint64) *ModNScalar {
	s.n = [4]uint64{ui, 0, 0, 0}
	return s
}

// reduceCarry reduces the 257-bit value carry*2^256 + s which must be less
// than twice the group order and returns 1 when the order was subtracted.
func (s *ModNScalar) reduceCarry(carry uint64) uint32 {
	var t [4]uint64
	var borrow uint64
	t[0], borrow = bits.Sub64(s.n[0], orderWordZero, 0)
	t[1], borrow = bits.Sub64(s.n[1], orderWordOne, borrow)
	t[2], borrow = bits.Sub64(s.n[2], orderWordTwo, borrow)
	t[3], borrow = bits.Sub64(s.n[3], orderWordThree, borrow)

	choice := carry | (borrow ^ 1)
	mask := -choice
	s.n[0] = (t[0] & mask) | (s.n[0] &^ mask)
	s.n[1] = (t[1] & mask) | (s.n[1] &^ mask)
	s.n[2] = (t[2] & mask) | (s.n[2] &^ mask)
	s.n[3] = (t[3] & mask) | (s.n[3] &^ mask)
	return uint32(choice)
}

// SetBytes interprets the provided array as a 256-bit big-endian unsigned
// integer, reduces it modulo the group order, sets the scalar to the result,
// and returns either 1 if it was reduced (aka it overflowed) or 0 otherwise in
// constant time.
//
// Note that a bool is not used here because it is not possible in Go to convert
// from a bool to numeric value in constant time and many constant-time
// operations require a numeric value.
func (s *ModNScalar) SetBytes(b *[32]byte) uint32 {
	s.n[0] = binary.BigEndian.Uint64(b[24:32])
	s.n[1] = binary.BigEndian.Uint64(b[16:24])
	s.n[2] = binary.BigEndian.Uint64(b[8:16])
	s.n[3] = binary.BigEndian.Uint64(b[0:8])
	return s.reduceCarry(0)
}

// SetByteSlice interprets the provided slice as a 256-bit big-endian unsigned
// integer (meaning it is truncated to the first 32 bytes), reduces it modulo
// the group order, sets the scalar to the result, and returns whether or not
// the resulting truncated 256-bit integer overflowed in constant time.
//
// Note that since passing a slice with more than 32 bytes is truncated, it is
// possible that the truncated value is less than the order of the curve and
// hence it will not be reported as having overflowed in that case.  It is up to
// the caller to decide whether it needs to provide numbers of the appropriate
// size or it is acceptable to use this function with the described truncation
// and overflow behavior.
func (s *ModNScalar) SetByteSlice(b []byte) bool {
	var b32 [32]byte
	if len(b) > 32 {
		b = b[:32]
	}
	copy(b32[32-len(b):], b)
	result := s.SetBytes(&b32)
	zeroArray32(&b32)
	return result != 0
}

// PutBytesUnchecked unpacks the scalar to a 32-byte big-endian value directly
// into the passed byte slice in constant time.  The target slice must must have
// at least 32 bytes available or it will panic.
//
// There is a similar function, PutBytes, which unpacks the scalar into a
// 32-byte array directly.  This version is provided since it can be useful to
// write directly into part of a larger buffer without needing a separate
// allocation.
func (s *ModNScalar) PutBytesUnchecked(b []byte) {
	binary.BigEndian.PutUint64(b[0:8], s.n[3])
	binary.BigEndian.PutUint64(b[8:16], s.n[2])
	binary.BigEndian.PutUint64(b[16:24], s.n[1])
	binary.BigEndian.PutUint64(b[24:32], s.n[0])
}

// PutBytes unpacks the scalar to a 32-byte big-endian value using the passed
// byte array in constant time.
func (s *ModNScalar) PutBytes(b *[32]byte) {
	s.PutBytesUnchecked(b[:])
}

// Bytes unpacks the scalar to a 32-byte big-endian value in constant time.
//
// See PutBytes and PutBytesUnchecked for variants that allow an array or slice
// to be passed which can be useful to cut down on the number of allocations
// by allowing the caller to reuse a buffer or write directly into part of a
// larger buffer.
func (s *ModNScalar) Bytes() [32]byte {
	var b [32]byte
	s.PutBytesUnchecked(b[:])
	return b
}

// IsOdd returns whether or not the scalar is an odd number in constant time.
func (s *ModNScalar) IsOdd() bool {
	return s.n[0]&1 == 1
}

// Equals returns whether or not the two scalars are the same in constant time.
func (s *ModNScalar) Equals(val *ModNScalar) bool {
	bits := (s.n[0] ^ val.n[0]) | (s.n[1] ^ val.n[1]) |
		(s.n[2] ^ val.n[2]) | (s.n[3] ^ val.n[3])
	return bits == 0
}

// CondAssign sets the scalar to the passed value when choice is 1 and leaves
// it unchanged when choice is 0, without branching on choice.
//
// The scalar is returned to support chaining.
func (s *ModNScalar) CondAssign(choice uint32, val *ModNScalar) *ModNScalar {
	mask := -uint64(choice & 1)
	s.n[0] ^= (s.n[0] ^ val.n[0]) & mask
	s.n[1] ^= (s.n[1] ^ val.n[1]) & mask
	s.n[2] ^= (s.n[2] ^ val.n[2]) & mask
	s.n[3] ^= (s.n[3] ^ val.n[3]) & mask
	return s
}

// Add2 adds the passed two scalars together modulo the group order in constant
// time and stores the result in s.
//
// The scalar is returned to support chaining.  This enables syntax like:
// s3.Add2(s, s2).AddInt(1) so that s3 = s + s2 + 1.
func (s *ModNScalar) Add2(val1, val2 *ModNScalar) *ModNScalar {
	var carry uint64
	s.n[0], carry = bits.Add64(val1.n[0], val2.n[0], 0)
	s.n[1], carry = bits.Add64(val1.n[1], val2.n[1], carry)
	s.n[2], carry = bits.Add64(val1.n[2], val2.n[2], carry)
	s.n[3], carry = bits.Add64(val1.n[3], val2.n[3], carry)
	s.reduceCarry(carry)
	return s
}

// Add adds the passed scalar to the existing one modulo the group order in
// constant time and stores the result in s.
//
// The scalar is returned to support chaining.  This enables syntax like:
// s.Add(s2).AddInt(1) so that s = s + s2 + 1.
func (s *ModNScalar) Add(val *ModNScalar) *ModNScalar {
	return s.Add2(s, val)
}

// Sub2 subtracts the second passed scalar from the first modulo the group
// order in constant time and stores the result in s.
//
// The scalar is returned to support chaining.
func (s *ModNScalar) Sub2(val1, val2 *ModNScalar) *ModNScalar {
	var borrow, carry uint64
	s.n[0], borrow = bits.Sub64(val1.n[0], val2.n[0], 0)
	s.n[1], borrow = bits.Sub64(val1.n[1], val2.n[1], borrow)
	s.n[2], borrow = bits.Sub64(val1.n[2], val2.n[2], borrow)
	s.n[3], borrow = bits.Sub64(val1.n[3], val2.n[3], borrow)

	mask := -borrow
	s.n[0], carry = bits.Add64(s.n[0], orderWordZero&mask, 0)
	s.n[1], carry = bits.Add64(s.n[1], orderWordOne&mask, carry)
	s.n[2], carry = bits.Add64(s.n[2], orderWordTwo&mask, carry)
	s.n[3], _ = bits.Add64(s.n[3], orderWordThree&mask, carry)
	return s
}

// NegateVal negates the passed scalar modulo the group order and stores the
// result in s in constant time.
//
// The scalar is returned to support chaining.  This enables syntax like:
// s.NegateVal(s2).AddInt(1) so that s = -s2 + 1.
func (s *ModNScalar) NegateVal(val *ModNScalar) *ModNScalar {
	var zero ModNScalar
	return s.Sub2(&zero, val)
}

// Negate negates the scalar modulo the group order in constant time.  The
// existing scalar is modified.
//
// The scalar is returned to support chaining.  This enables syntax like:
// s.Negate().AddInt(1) so that s = -s + 1.
func (s *ModNScalar) Negate() *ModNScalar {
	return s.NegateVal(s)
}

// montMul returns a*b*R^-1 mod N for reduced inputs a and b.
func montMul(a, b *[4]uint64) [4]uint64 {
	var t [6]uint64
	for i := 0; i < 4; i++ {
		// t += a[i] * b
		var c, cc uint64
		for j := 0; j < 4; j++ {
			hi, lo := bits.Mul64(a[i], b[j])
			lo, cc = bits.Add64(lo, t[j], 0)
			hi += cc
			lo, cc = bits.Add64(lo, c, 0)
			hi += cc
			t[j] = lo
			c = hi
		}
		t[4], cc = bits.Add64(t[4], c, 0)
		t[5] = cc

		// t = (t + m*N) / 2^64 where m makes the low word vanish.
		m := t[0] * orderMontInv
		hi, lo := bits.Mul64(m, orderWords[0])
		_, cc = bits.Add64(lo, t[0], 0)
		c = hi + cc
		for j := 1; j < 4; j++ {
			hi, lo = bits.Mul64(m, orderWords[j])
			lo, cc = bits.Add64(lo, t[j], 0)
			hi += cc
			lo, cc = bits.Add64(lo, c, 0)
			hi += cc
			t[j-1] = lo
			c = hi
		}
		t[3], cc = bits.Add64(t[4], c, 0)
		t[4] = t[5] + cc
	}

	// The result is less than 2N.
	r := ModNScalar{n: [4]uint64{t[0], t[1], t[2], t[3]}}
	r.reduceCarry(t[4])
	return r.n
}

// Mul2 multiplies the passed two scalars together modulo the group order in
// constant time and stores the result in s.
//
// The scalar is returned to support chaining.  This enables syntax like:
// s3.Mul2(s, s2).AddInt(1) so that s3 = (s * s2) + 1.
func (s *ModNScalar) Mul2(val, val2 *ModNScalar) *ModNScalar {
	// a*b*R^-1 followed by (a*b*R^-1)*R^2*R^-1 = a*b.
	t := montMul(&val.n, &val2.n)
	s.n = montMul(&t, &orderMontR2)
	return s
}

// Mul multiplies the passed scalar with the existing one modulo the group
// order in constant time and stores the result in s.
//
// The scalar is returned to support chaining.  This enables syntax like:
// s.Mul(s2).AddInt(1) so that s = (s * s2) + 1.
func (s *ModNScalar) Mul(val *ModNScalar) *ModNScalar {
	return s.Mul2(s, val)
}

// SquareVal squares the passed scalar modulo the group order in constant time
// and stores the result in s.
//
// The scalar is returned to support chaining.
func (s *ModNScalar) SquareVal(val *ModNScalar) *ModNScalar {
	return s.Mul2(val, val)
}

// Square squares the scalar modulo the group order in constant time.  The
// existing scalar is modified.
//
// The scalar is returned to support chaining.
func (s *ModNScalar) Square() *ModNScalar {
	return s.Mul2(s, s)
}

// InverseVal sets s to the multiplicative inverse of the passed scalar modulo
// the group order and returns whether the inverse exists, which is the case
// for every value except zero.  The inverse of zero is set to zero.
//
// The inverse is computed as val^(N-2) in the Montgomery domain.  The exponent
// is public, so the square and multiply sequence does not depend on the value.
func (s *ModNScalar) InverseVal(val *ModNScalar) bool {
	ok := val.IsZeroBit() == 0
	base := montMul(&val.n, &orderMontR2)
	result := orderMontOne
	for i := 3; i >= 0; i-- {
		for j := 63; j >= 0; j-- {
			result = montMul(&result, &result)
			if (orderMinusTwo[i]>>uint(j))&1 == 1 {
				result = montMul(&result, &base)
			}
		}
	}
	one := [4]uint64{1, 0, 0, 0}
	s.n = montMul(&result, &one)
	return ok
}

// IsOverHalfOrder returns whether or not the scalar exceeds the group order
// divided by 2 in constant time.
func (s *ModNScalar) IsOverHalfOrder() bool {
	var borrow uint64
	_, borrow = bits.Sub64(halfOrderWordZero, s.n[0], 0)
	_, borrow = bits.Sub64(halfOrderWordOne, s.n[1], borrow)
	_, borrow = bits.Sub64(halfOrderWordTwo, s.n[2], borrow)
	_, borrow = bits.Sub64(halfOrderWordThree, s.n[3], borrow)
	return borrow == 1
}

// String returns the scalar as a human-readable hex string.
//
// This is NOT constant time.
func (s ModNScalar) String() string {
	b := s.Bytes()
	return hex.EncodeToString(b[:])
}
