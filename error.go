// Copyright (c) 2020-2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secp256k1

import "errors"

// ErrorKind identifies a kind of error.  It has full support for errors.Is and
// errors.As, so the caller can directly check against an error kind when
// determining the reason for an error.
type ErrorKind string

// These constants are used to identify a specific key, tweak, or context
// Error.
const (
	// ErrPubKeyInvalidLen indicates that the length of a serialized public
	// key is not one of the allowed lengths.
	ErrPubKeyInvalidLen = ErrorKind("ErrPubKeyInvalidLen")

	// ErrPubKeyInvalidFormat indicates an attempt was made to parse a public
	// key that does not specify one of the supported formats.
	ErrPubKeyInvalidFormat = ErrorKind("ErrPubKeyInvalidFormat")

	// ErrPubKeyXTooBig indicates that the x coordinate for a public key
	// is greater than or equal to the prime of the field underlying the group.
	ErrPubKeyXTooBig = ErrorKind("ErrPubKeyXTooBig")

	// ErrPubKeyYTooBig indicates that the y coordinate for a public key is
	// greater than or equal to the prime of the field underlying the group.
	ErrPubKeyYTooBig = ErrorKind("ErrPubKeyYTooBig")

	// ErrPubKeyNotOnCurve indicates that a public key is not a point on the
	// secp256k1 curve.
	ErrPubKeyNotOnCurve = ErrorKind("ErrPubKeyNotOnCurve")

	// ErrPubKeyMismatchedOddness indicates that a hybrid public key specified
	// an oddness of the y coordinate that does not match the actual oddness of
	// the provided y coordinate.
	ErrPubKeyMismatchedOddness = ErrorKind("ErrPubKeyMismatchedOddness")

	// ErrPrivKeyInvalidLen indicates that the length of a serialized private
	// key is not 32 bytes.
	ErrPrivKeyInvalidLen = ErrorKind("ErrPrivKeyInvalidLen")

	// ErrPrivKeyOutOfRange indicates that a private key is zero or greater
	// than or equal to the group order.
	ErrPrivKeyOutOfRange = ErrorKind("ErrPrivKeyOutOfRange")

	// ErrTweakInvalidLen indicates that a tweak is not 32 bytes.
	ErrTweakInvalidLen = ErrorKind("ErrTweakInvalidLen")

	// ErrTweakOverflow indicates that a tweak is greater than or equal to the
	// group order.
	ErrTweakOverflow = ErrorKind("ErrTweakOverflow")

	// ErrTweakZero indicates a multiplicative tweak of zero.
	ErrTweakZero = ErrorKind("ErrTweakZero")

	// ErrTweakResultInvalid indicates that applying a tweak produced the zero
	// scalar or the point at infinity.
	ErrTweakResultInvalid = ErrorKind("ErrTweakResultInvalid")

	// ErrHashInvalidLen indicates that a message digest is not 32 bytes.
	ErrHashInvalidLen = ErrorKind("ErrHashInvalidLen")

	// ErrSeedInvalidLen indicates that a context randomization seed is not 32
	// bytes.
	ErrSeedInvalidLen = ErrorKind("ErrSeedInvalidLen")
)

// Error satisfies the error interface and prints human-readable errors.
func (e ErrorKind) Error() string {
	return string(e)
}

// Error identifies an error related to secp256k1 keys, signatures, and
// tweaks.  It has full support for errors.Is and errors.As, so the caller can
// ascertain the specific reason for the error by checking the underlying error.
type Error struct {
	Err         error
	Description string
}

// Error satisfies the error interface and prints human-readable errors.
func (e Error) Error() string {
	return e.Description
}

// Unwrap returns the underlying wrapped error.
func (e Error) Unwrap() error {
	return e.Err
}

// makeError creates an Error given a set of arguments.
func makeError(kind ErrorKind, desc string) Error {
	return Error{Err: kind, Description: desc}
}

// isFormatKind returns whether the kind is detected while decoding a buffer,
// before any value it carries is interpreted.
func isFormatKind(kind ErrorKind) bool {
	switch kind {
	case ErrPubKeyInvalidLen, ErrPubKeyInvalidFormat, ErrPubKeyMismatchedOddness,
		ErrPrivKeyInvalidLen, ErrTweakInvalidLen, ErrHashInvalidLen,
		ErrSeedInvalidLen:
		return true
	}
	return isDERFormatKind(kind)
}

// IsFormatError returns whether the error was raised while decoding a buffer:
// a wrong length, a malformed DER structure, or an invalid prefix byte.
func IsFormatError(err error) bool {
	var kind ErrorKind
	if !errors.As(err, &kind) {
		return false
	}
	return isFormatKind(kind)
}

// IsDomainError returns whether the error indicates a well-formed input whose
// value is outside the valid range, such as a scalar that is not less than the
// group order, a point that is not on the curve, or a tweak that produces an
// invalid key.
func IsDomainError(err error) bool {
	var kind ErrorKind
	if !errors.As(err, &kind) {
		return false
	}
	return !isFormatKind(kind)
}
