// Copyright (c) 2015-2022 The Decred developers
// Copyright 2013-2014 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secp256k1

import (
	"encoding/hex"
)

// References:
//   [SECG]: Recommended Elliptic Curve Domain Parameters
//     https://www.secg.org/sec2-v2.pdf
//
//   [RCB]: Complete addition formulas for prime order elliptic curves
//     (Renes, Costello, Batina) https://eprint.iacr.org/2015/1060

// All group operations are performed using homogeneous projective coordinates.
// For a given (x, y) position on the curve, the projective coordinates are
// (X, Y, Z) where x = X/Z and y = Y/Z.  The point at infinity is (0 : 1 : 0).
//
// Addition and doubling use the complete formulas of [RCB] specialized for
// a = 0.  They are correct for every pair of inputs, including the point at
// infinity and equal points, so neither routine branches on its inputs.

// hexToFieldVal converts the passed hex string into a FieldVal and will panic
// if there is an error.  This is only provided for the hard-coded constants so
// errors in the source code can be detected. It will only (and must only) be
// called with hard-coded values.
func hexToFieldVal(s string) *FieldVal {
	b, err := hex.DecodeString(s)
	if err != nil {
		panic("invalid hex in source file: " + s)
	}
	var f FieldVal
	if overflow := f.SetByteSlice(b); overflow {
		panic("hex in source file overflows mod P: " + s)
	}
	return &f
}

var (
	// curveB is the constant b = 7 of the curve equation y^2 = x^3 + 7.
	curveB = new(FieldVal).SetInt(7)

	// curveB3 is 3*b and appears in the complete addition formulas.
	curveB3 uint64 = 21

	// generatorX and generatorY are the affine coordinates of the base point
	// G of the group.
	generatorX = hexToFieldVal("79be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798")
	generatorY = hexToFieldVal("483ada7726a3c4655da4fbfc0e1108a8fd17b448a68554199c47d08ffb10d4b8")
)

// ProjectivePoint is an element of the group formed by the secp256k1 curve in
// homogeneous projective coordinates and thus represents a point on the curve.
//
// The zero value is not a valid point.  Use SetInfinity or one of the
// constructors.
type ProjectivePoint struct {
	// The X coordinate in projective coordinates.  The affine point is X/Z.
	X FieldVal

	// The Y coordinate in projective coordinates.  The affine point is Y/Z.
	Y FieldVal

	// The Z coordinate in projective coordinates.
	Z FieldVal
}

// MakeProjectivePoint returns a projective point with the provided X, Y, and
// Z coordinates.
func MakeProjectivePoint(x, y, z *FieldVal) ProjectivePoint {
	var p ProjectivePoint
	p.X.Set(x)
	p.Y.Set(y)
	p.Z.Set(z)
	return p
}

// Generator returns the base point of the group with Z = 1.
func Generator() ProjectivePoint {
	var one FieldVal
	one.SetInt(1)
	return MakeProjectivePoint(generatorX, generatorY, &one)
}

// Set sets the projective point to the provided point.
func (p *ProjectivePoint) Set(other *ProjectivePoint) {
	p.X.Set(&other.X)
	p.Y.Set(&other.Y)
	p.Z.Set(&other.Z)
}

// SetInfinity sets the point to the point at infinity (0 : 1 : 0).
func (p *ProjectivePoint) SetInfinity() {
	p.X.Zero()
	p.Y.SetInt(1)
	p.Z.Zero()
}

// IsInfinity returns whether the point is the point at infinity, which is the
// case exactly when Z is zero.
func (p *ProjectivePoint) IsInfinity() bool {
	return p.Z.IsZero()
}

// CondAssign sets the point to other when choice is 1 and leaves it unchanged
// when choice is 0.
func (p *ProjectivePoint) CondAssign(choice uint32, other *ProjectivePoint) {
	p.X.CondAssign(choice, &other.X)
	p.Y.CondAssign(choice, &other.Y)
	p.Z.CondAssign(choice, &other.Z)
}

// ToAffine scales the point so that Z is 1, which makes X and Y the affine
// coordinates.  The point at infinity has no affine form and is left as is.
func (p *ProjectivePoint) ToAffine() {
	if p.IsInfinity() {
		return
	}
	var zInv FieldVal
	zInv.Set(&p.Z).Inverse()
	p.X.Mul(&zInv)
	p.Y.Mul(&zInv)
	p.Z.SetInt(1)
}

// EquivalentNonConst returns whether the two points represent the same group
// element.  Projective coordinates are not unique, so the comparison is done
// by cross multiplying with the other point's Z.
//
// This is NOT constant time.
func (p *ProjectivePoint) EquivalentNonConst(other *ProjectivePoint) bool {
	pInf, oInf := p.IsInfinity(), other.IsInfinity()
	if pInf || oInf {
		return pInf && oInf
	}

	var a, b FieldVal
	a.Mul2(&p.X, &other.Z)
	b.Mul2(&other.X, &p.Z)
	if !a.Equals(&b) {
		return false
	}
	a.Mul2(&p.Y, &other.Z)
	b.Mul2(&other.Y, &p.Z)
	return a.Equals(&b)
}

// AddPoints adds the passed projective points together and stores the result
// in the provided result param in constant time.  Any of the arguments may
// alias one another.
//
// This is algorithm 7 of [RCB] (12M + 2m3b + 19a).
func AddPoints(p1, p2, result *ProjectivePoint) {
	var t0, t1, t2, t3, t4, x3, y3, z3 FieldVal
	t0.Mul2(&p1.X, &p2.X)
	t1.Mul2(&p1.Y, &p2.Y)
	t2.Mul2(&p1.Z, &p2.Z)
	t3.Add2(&p1.X, &p1.Y)
	t4.Add2(&p2.X, &p2.Y)
	t3.Mul(&t4)
	t4.Add2(&t0, &t1)
	t3.Sub(&t4) // t3 = X1*Y2 + X2*Y1
	t4.Add2(&p1.Y, &p1.Z)
	x3.Add2(&p2.Y, &p2.Z)
	t4.Mul(&x3)
	x3.Add2(&t1, &t2)
	t4.Sub(&x3) // t4 = Y1*Z2 + Y2*Z1
	x3.Add2(&p1.X, &p1.Z)
	y3.Add2(&p2.X, &p2.Z)
	x3.Mul(&y3)
	y3.Add2(&t0, &t2)
	y3.Sub2(&x3, &y3) // y3 = X1*Z2 + X2*Z1
	x3.Add2(&t0, &t0)
	t0.Add(&x3) // t0 = 3*X1*X2
	t2.MulInt(curveB3)
	z3.Add2(&t1, &t2)
	t1.Sub(&t2)
	y3.MulInt(curveB3)
	x3.Mul2(&t4, &y3)
	t2.Mul2(&t3, &t1)
	x3.Sub2(&t2, &x3)
	y3.Mul(&t0)
	t1.Mul(&z3)
	y3.Add(&t1)
	t0.Mul(&t3)
	z3.Mul(&t4)
	z3.Add(&t0)

	result.X.Set(&x3)
	result.Y.Set(&y3)
	result.Z.Set(&z3)
}

// DoublePoint doubles the passed projective point and stores the result in
// the provided result param in constant time.  The arguments may alias.
//
// This is algorithm 9 of [RCB] (6M + 2S + 1m3b + 9a).
func DoublePoint(p, result *ProjectivePoint) {
	var t0, t1, t2, x3, y3, z3 FieldVal
	t0.SquareVal(&p.Y)
	z3.Add2(&t0, &t0)
	z3.Add(&z3)
	z3.Add(&z3) // z3 = 8*Y^2
	t1.Mul2(&p.Y, &p.Z)
	t2.SquareVal(&p.Z)
	t2.MulInt(curveB3)
	x3.Mul2(&t2, &z3)
	y3.Add2(&t0, &t2)
	z3.Mul(&t1)
	t1.Add2(&t2, &t2)
	t2.Add(&t1) // t2 = 9*b*Z^2
	t0.Sub(&t2)
	y3.Mul(&t0)
	y3.Add(&x3)
	t1.Mul2(&p.X, &p.Y)
	x3.Mul2(&t0, &t1)
	x3.Add(&x3)

	result.X.Set(&x3)
	result.Y.Set(&y3)
	result.Z.Set(&z3)
}

// NegatePoint sets result to the negation of the passed point.  The negation
// of the point at infinity is itself.
func NegatePoint(p, result *ProjectivePoint) {
	result.X.Set(&p.X)
	result.Y.NegateVal(&p.Y)
	result.Z.Set(&p.Z)
}

// constTimeEq returns 1 when a == b or 0 otherwise without branching.  Both
// values must be less than 2^31.
func constTimeEq(a, b uint32) uint32 {
	x := a ^ b
	return ((x | -x) >> 31) ^ 1
}

// pointTable holds the multiples 0*P through 15*P of a point.
type pointTable [16]ProjectivePoint

// lookup sets result to the entry at index idx.  Every entry is read, so the
// memory access pattern does not depend on idx.
func (t *pointTable) lookup(idx uint32, result *ProjectivePoint) {
	result.SetInfinity()
	for i := range t {
		result.CondAssign(constTimeEq(uint32(i), idx), &t[i])
	}
}

// ScalarMult multiplies k*P where k is a scalar modulo the curve order and P
// is a point in projective coordinates, and stores the result in the provided
// result param in constant time.
//
// It uses a fixed 4-bit window: a table of the multiples 0*P through 15*P is
// built per call and every window performs four doublings followed by one
// addition of the selected entry, regardless of the scalar.
func ScalarMult(k *ModNScalar, point, result *ProjectivePoint) {
	var table pointTable
	table[0].SetInfinity()
	table[1].Set(point)
	for i := 2; i < len(table); i++ {
		AddPoints(&table[i-1], point, &table[i])
	}

	kb := k.Bytes()
	var acc, sel ProjectivePoint
	acc.SetInfinity()
	for _, b := range kb {
		DoublePoint(&acc, &acc)
		DoublePoint(&acc, &acc)
		DoublePoint(&acc, &acc)
		DoublePoint(&acc, &acc)
		table.lookup(uint32(b>>4), &sel)
		AddPoints(&acc, &sel, &acc)

		DoublePoint(&acc, &acc)
		DoublePoint(&acc, &acc)
		DoublePoint(&acc, &acc)
		DoublePoint(&acc, &acc)
		table.lookup(uint32(b&0x0f), &sel)
		AddPoints(&acc, &sel, &acc)
	}
	zeroArray32(&kb)
	result.Set(&acc)
}

// IsOnCurve returns whether or not the affine point (x,y) is on the curve,
// that is, whether y^2 = x^3 + 7.
func IsOnCurve(x, y *FieldVal) bool {
	var lhs, rhs FieldVal
	lhs.SquareVal(y)
	rhs.SquareVal(x).Mul(x).Add(curveB)
	return lhs.Equals(&rhs)
}

// DecompressY attempts to calculate the Y coordinate for the given X
// coordinate such that the result pair is a point on the secp256k1 curve.  It
// adjusts Y based on the desired oddness and returns whether or not it was
// successful since not all X coordinates are valid.
func DecompressY(x *FieldVal, odd bool, resultY *FieldVal) bool {
	// The curve equation for secp256k1 is: y^2 = x^3 + 7.  Thus
	// y = +-sqrt(x^3 + 7).
	var rhs FieldVal
	rhs.SquareVal(x).Mul(x).Add(curveB)
	if !resultY.SquareRootVal(&rhs) {
		return false
	}

	var wantOdd uint32
	if odd {
		wantOdd = 1
	}
	var negY FieldVal
	negY.NegateVal(resultY)
	resultY.CondAssign(resultY.IsOddBit()^wantOdd, &negY)
	return true
}
