// Copyright (c) 2013-2014 The btcsuite developers
// Copyright (c) 2015-2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secp256k1

import (
	"fmt"
)

// References:
//   [SEC1] Elliptic Curve Cryptography
//     https://www.secg.org/sec1-v2.pdf
//
//   [SEC2] Recommended Elliptic Curve Domain Parameters
//     https://www.secg.org/sec2-v2.pdf
//
//   [ANSI X9.62-1998] Public Key Cryptography For The Financial Services
//     Industry: The Elliptic Curve Digital Signature Algorithm (ECDSA)

const (
	// PubKeyBytesLenCompressed is the number of bytes of a serialized
	// compressed public key.
	PubKeyBytesLenCompressed = 33

	// PubKeyBytesLenUncompressed is the number of bytes of a serialized
	// uncompressed public key.
	PubKeyBytesLenUncompressed = 65

	// PubKeyFormatCompressedEven is the identifier prefix byte for a public
	// key whose Y coordinate is even when serialized in the compressed format per
	// section 2.3.4 of [SEC1](https://secg.org/sec1-v2.pdf#subsubsection.2.3.4).
	PubKeyFormatCompressedEven byte = 0x02

	// PubKeyFormatCompressedOdd is the identifier prefix byte for a public key
	// whose Y coordinate is odd when serialized in the compressed format per
	// section 2.3.4 of [SEC1](https://secg.org/sec1-v2.pdf#subsubsection.2.3.4).
	PubKeyFormatCompressedOdd byte = 0x03

	// pubkeyUncompressed is the header byte for an uncompressed public key.
	pubkeyUncompressed byte = 0x04

	// pubkeyHybrid is the header byte for a hybrid public key.  The low bit
	// carries the oddness of the Y coordinate.
	pubkeyHybrid byte = 0x06
)

// PubKeyFormat identifies which of the supported encodings a serialized public
// key uses.
type PubKeyFormat int

const (
	// PubKeyFormatUnknown is not a supported encoding.
	PubKeyFormatUnknown PubKeyFormat = iota

	// PubKeyFormatCompressed is 0x02 or 0x03 followed by the 32-byte X
	// coordinate.
	PubKeyFormatCompressed

	// PubKeyFormatUncompressed is 0x04 followed by the 32-byte X and Y
	// coordinates.
	PubKeyFormatUncompressed

	// PubKeyFormatHybrid is 0x06 or 0x07 followed by the 32-byte X and Y
	// coordinates, where the prefix also carries the oddness of Y.
	PubKeyFormatHybrid
)

// String returns the name of the format.
func (f PubKeyFormat) String() string {
	switch f {
	case PubKeyFormatCompressed:
		return "compressed"
	case PubKeyFormatUncompressed:
		return "uncompressed"
	case PubKeyFormatHybrid:
		return "hybrid"
	}
	return "unknown"
}

// PubKeyFormatOf returns the encoding of the passed serialized public key as
// indicated by its length and prefix byte.  It does not validate the
// coordinates.
func PubKeyFormatOf(serialized []byte) PubKeyFormat {
	switch len(serialized) {
	case PubKeyBytesLenCompressed:
		switch serialized[0] {
		case PubKeyFormatCompressedEven, PubKeyFormatCompressedOdd:
			return PubKeyFormatCompressed
		}
	case PubKeyBytesLenUncompressed:
		switch serialized[0] {
		case pubkeyUncompressed:
			return PubKeyFormatUncompressed
		case pubkeyHybrid, pubkeyHybrid | 0x01:
			return PubKeyFormatHybrid
		}
	}
	return PubKeyFormatUnknown
}

// PublicKey provides facilities for efficiently working with secp256k1 public
// keys within this package and includes functions to serialize in both
// uncompressed and compressed SEC (Standards for Efficient Cryptography)
// formats.
//
// A PublicKey is never the point at infinity.
type PublicKey struct {
	x FieldVal
	y FieldVal
}

// NewPublicKey instantiates a new public key with the given x and y
// coordinates.
//
// It should be noted that, unlike ParsePubKey, since this accepts arbitrary x
// and y coordinates, it allows creation of public keys that are not valid
// points on the secp256k1 curve.  The IsOnCurve method of the returned
// instance can be used to determine validity.
func NewPublicKey(x, y *FieldVal) *PublicKey {
	var pubKey PublicKey
	pubKey.x.Set(x)
	pubKey.y.Set(y)
	return &pubKey
}

// publicKeyFromPoint converts the passed point to a public key.  It reports
// false when the point is the point at infinity.
func publicKeyFromPoint(point *ProjectivePoint) (*PublicKey, bool) {
	if point.IsInfinity() {
		return nil, false
	}
	var affine ProjectivePoint
	affine.Set(point)
	affine.ToAffine()
	return NewPublicKey(&affine.X, &affine.Y), true
}

// ParsePubKey parses a secp256k1 public key encoded according to the format
// specified by ANSI X9.62-1998, which means it is also compatible with the
// SEC (Standards for Efficient Cryptography) specification which is a subset of
// the former.  In other words, it supports the uncompressed, compressed, and
// hybrid formats as follows:
//
// Compressed:
//
//	<format byte = 0x02/0x03><32-byte X coordinate>
//
// Uncompressed:
//
//	<format byte = 0x04><32-byte X coordinate><32-byte Y coordinate>
//
// Hybrid:
//
//	<format byte = 0x06/0x07><32-byte X coordinate><32-byte Y coordinate>
//
// NOTE: The hybrid format makes little sense in practice an therefore this
// package will not produce public keys serialized in this format unless
// explicitly asked.  However, this function will properly parse them since
// they exist in the wild.
func ParsePubKey(serialized []byte) (key *PublicKey, err error) {
	var x, y FieldVal
	switch len(serialized) {
	case PubKeyBytesLenUncompressed:
		// Reject unsupported public key formats for the given length.
		format := serialized[0]
		switch format {
		case pubkeyUncompressed:
		case pubkeyHybrid, pubkeyHybrid | 0x01:
		default:
			str := fmt.Sprintf("invalid public key: unsupported format: %x",
				format)
			return nil, makeError(ErrPubKeyInvalidFormat, str)
		}

		// Parse the x and y coordinates while ensuring that they are in the
		// allowed range.
		if overflow := x.SetByteSlice(serialized[1:33]); overflow {
			str := "invalid public key: x >= field prime"
			return nil, makeError(ErrPubKeyXTooBig, str)
		}
		if overflow := y.SetByteSlice(serialized[33:]); overflow {
			str := "invalid public key: y >= field prime"
			return nil, makeError(ErrPubKeyYTooBig, str)
		}

		// Ensure the oddness of the y coordinate matches the specified
		// oddness for hybrid public keys.
		if format&pubkeyHybrid == pubkeyHybrid {
			wantOddY := format&0x01 == 0x01
			if y.IsOdd() != wantOddY {
				str := fmt.Sprintf("invalid public key: y oddness does not "+
					"match specified value of %v", wantOddY)
				return nil, makeError(ErrPubKeyMismatchedOddness, str)
			}
		}

		// Reject public keys that are not on the secp256k1 curve.
		if !IsOnCurve(&x, &y) {
			str := fmt.Sprintf("invalid public key: [%v,%v] not on secp256k1 "+
				"curve", x, y)
			return nil, makeError(ErrPubKeyNotOnCurve, str)
		}

	case PubKeyBytesLenCompressed:
		// Reject unsupported public key formats for the given length.
		format := serialized[0]
		switch format {
		case PubKeyFormatCompressedEven, PubKeyFormatCompressedOdd:
		default:
			str := fmt.Sprintf("invalid public key: unsupported format: %x",
				format)
			return nil, makeError(ErrPubKeyInvalidFormat, str)
		}

		// Parse the x coordinate while ensuring that it is in the allowed
		// range.
		if overflow := x.SetByteSlice(serialized[1:33]); overflow {
			str := "invalid public key: x >= field prime"
			return nil, makeError(ErrPubKeyXTooBig, str)
		}

		// Attempt to calculate the y coordinate for the given x coordinate such
		// that the result pair is a point on the secp256k1 curve and the
		// solution with desired oddness is chosen.
		wantOddY := format == PubKeyFormatCompressedOdd
		if !DecompressY(&x, wantOddY, &y) {
			str := fmt.Sprintf("invalid public key: x coordinate %v is not on "+
				"the secp256k1 curve", x)
			return nil, makeError(ErrPubKeyNotOnCurve, str)
		}

	default:
		str := fmt.Sprintf("malformed public key: invalid length: %d",
			len(serialized))
		return nil, makeError(ErrPubKeyInvalidLen, str)
	}

	return NewPublicKey(&x, &y), nil
}

// SerializeUncompressed serializes a public key in the 65-byte uncompressed
// format.
func (p *PublicKey) SerializeUncompressed() []byte {
	// 0x04 || 32-byte x coordinate || 32-byte y coordinate
	var b [PubKeyBytesLenUncompressed]byte
	b[0] = pubkeyUncompressed
	p.x.PutBytesUnchecked(b[1:33])
	p.y.PutBytesUnchecked(b[33:65])
	return b[:]
}

// SerializeCompressed serializes a public key in the 33-byte compressed
// format.
func (p *PublicKey) SerializeCompressed() []byte {
	// Choose the format byte depending on the oddness of the Y coordinate.
	format := PubKeyFormatCompressedEven
	if p.y.IsOdd() {
		format = PubKeyFormatCompressedOdd
	}

	// 0x02 or 0x03 || 32-byte x coordinate
	var b [PubKeyBytesLenCompressed]byte
	b[0] = format
	p.x.PutBytesUnchecked(b[1:33])
	return b[:]
}

// SerializeHybrid serializes a public key in the 65-byte hybrid format.
func (p *PublicKey) SerializeHybrid() []byte {
	b := p.SerializeUncompressed()
	b[0] = pubkeyHybrid | byte(p.y.IsOddBit())
	return b
}

// Serialize serializes the public key in the requested format.  An unknown
// format yields nil.
func (p *PublicKey) Serialize(format PubKeyFormat) []byte {
	switch format {
	case PubKeyFormatCompressed:
		return p.SerializeCompressed()
	case PubKeyFormatUncompressed:
		return p.SerializeUncompressed()
	case PubKeyFormatHybrid:
		return p.SerializeHybrid()
	}
	return nil
}

// IsEqual compares this public key instance to the one passed, returning true
// if both public keys are equivalent.  A public key is equivalent to another,
// if they both have the same X and Y coordinates.
func (p *PublicKey) IsEqual(otherPubKey *PublicKey) bool {
	return p.x.Equals(&otherPubKey.x) && p.y.Equals(&otherPubKey.y)
}

// AsProjective converts the public key into a projective point with Z=1 and
// stores the result in the provided result param.  This allows the public key
// to be treated a point in the group with the arithmetic of this package.
func (p *PublicKey) AsProjective(result *ProjectivePoint) {
	result.X.Set(&p.x)
	result.Y.Set(&p.y)
	result.Z.SetInt(1)
}

// IsOnCurve returns whether or not the public key represents a point on the
// secp256k1 curve.
func (p *PublicKey) IsOnCurve() bool {
	return IsOnCurve(&p.x, &p.y)
}

// XBytes returns the 32-byte big-endian X coordinate of the public key.
func (p *PublicKey) XBytes() [32]byte {
	var b [32]byte
	p.x.PutBytes(&b)
	return b
}

// IsValidPubKey returns whether the passed bytes are a public key encoding
// accepted by ParsePubKey.
func IsValidPubKey(serialized []byte) bool {
	_, err := ParsePubKey(serialized)
	return err == nil
}

// DecompressPubKey returns the 65-byte uncompressed encoding of the passed
// serialized public key.  An uncompressed input is returned re-encoded, so
// applying it twice is the same as applying it once.  A compressed input
// whose X coordinate is not on the curve fails with ErrPubKeyNotOnCurve.
func DecompressPubKey(serialized []byte) ([]byte, error) {
	pubKey, err := ParsePubKey(serialized)
	if err != nil {
		return nil, err
	}
	return pubKey.SerializeUncompressed(), nil
}
