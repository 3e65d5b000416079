// Copyright (c) 2020-2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secp256k1

// Error kinds raised while decoding the DER structure of an ECDSA signature.
// The structure is checked in the order the kinds are listed.
const (
	// ErrSigTooShort is returned for fewer than 8 bytes.
	ErrSigTooShort = ErrorKind("ErrSigTooShort")

	// ErrSigTooLong is returned for more than 72 bytes.
	ErrSigTooLong = ErrorKind("ErrSigTooLong")

	// ErrSigInvalidSeqID is returned when the first byte is not the ASN.1
	// sequence identifier 0x30.
	ErrSigInvalidSeqID = ErrorKind("ErrSigInvalidSeqID")

	// ErrSigInvalidDataLen is returned when the sequence length does not
	// cover exactly the rest of the buffer.
	ErrSigInvalidDataLen = ErrorKind("ErrSigInvalidDataLen")

	// ErrSigMissingSTypeID is returned when R runs up to the end of the
	// buffer and leaves no room for the S integer marker.
	ErrSigMissingSTypeID = ErrorKind("ErrSigMissingSTypeID")

	// ErrSigMissingSLen is returned when the buffer ends after the S integer
	// marker.
	ErrSigMissingSLen = ErrorKind("ErrSigMissingSLen")

	// ErrSigInvalidSLen is returned when the declared S length does not end
	// at the end of the buffer.
	ErrSigInvalidSLen = ErrorKind("ErrSigInvalidSLen")

	// ErrSigInvalidRIntID is returned when R is not tagged as an ASN.1
	// integer.
	ErrSigInvalidRIntID = ErrorKind("ErrSigInvalidRIntID")

	// ErrSigZeroRLen is returned for an R integer with no content bytes.
	ErrSigZeroRLen = ErrorKind("ErrSigZeroRLen")

	// ErrSigNegativeR is returned when the high bit of the first R byte is
	// set.
	ErrSigNegativeR = ErrorKind("ErrSigNegativeR")

	// ErrSigTooMuchRPadding is returned when R has a leading zero byte that
	// is not needed to keep it positive.
	ErrSigTooMuchRPadding = ErrorKind("ErrSigTooMuchRPadding")

	// ErrSigInvalidSIntID is returned when S is not tagged as an ASN.1
	// integer.
	ErrSigInvalidSIntID = ErrorKind("ErrSigInvalidSIntID")

	// ErrSigZeroSLen is returned for an S integer with no content bytes.
	ErrSigZeroSLen = ErrorKind("ErrSigZeroSLen")

	// ErrSigNegativeS is returned when the high bit of the first S byte is
	// set.
	ErrSigNegativeS = ErrorKind("ErrSigNegativeS")

	// ErrSigTooMuchSPadding is returned when S has a leading zero byte that
	// is not needed to keep it positive.
	ErrSigTooMuchSPadding = ErrorKind("ErrSigTooMuchSPadding")
)

// Error kinds raised for a well-formed DER signature whose integers are not
// in [1, N-1].
const (
	// ErrSigRIsZero is returned when R is zero.
	ErrSigRIsZero = ErrorKind("ErrSigRIsZero")

	// ErrSigSIsZero is returned when S is zero.
	ErrSigSIsZero = ErrorKind("ErrSigSIsZero")

	// ErrSigRTooBig is returned when R is not less than the group order.
	ErrSigRTooBig = ErrorKind("ErrSigRTooBig")

	// ErrSigSTooBig is returned when S is not less than the group order.
	ErrSigSTooBig = ErrorKind("ErrSigSTooBig")
)

// isDERFormatKind returns whether the kind belongs to the first group above.
func isDERFormatKind(kind ErrorKind) bool {
	switch kind {
	case ErrSigTooShort, ErrSigTooLong, ErrSigInvalidSeqID,
		ErrSigInvalidDataLen, ErrSigMissingSTypeID, ErrSigMissingSLen,
		ErrSigInvalidSLen, ErrSigInvalidRIntID, ErrSigZeroRLen, ErrSigNegativeR,
		ErrSigTooMuchRPadding, ErrSigInvalidSIntID, ErrSigZeroSLen,
		ErrSigNegativeS, ErrSigTooMuchSPadding:
		return true
	}
	return false
}

// signatureError creates an Error given a set of arguments.
func signatureError(kind ErrorKind, desc string) Error {
	return Error{Err: kind, Description: desc}
}
