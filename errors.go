// Copyright (c) 2013-2022 The btccore developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secp256k1

import "fmt"

// ErrorKind identifies a kind of error produced by this package. It has
// full support for errors.Is and errors.As, so the caller can programmatically
// determine the specific failure without parsing error strings.
type ErrorKind string

// Error satisfies the error interface and prints human-readable errors.
func (e ErrorKind) Error() string {
	return string(e)
}

// Error identifies an error related to secp256k1 curve, field, codec, or
// ECDSA operations. It carries both a machine-readable ErrorKind and a
// human-readable description of the specific failure.
type Error struct {
	Err         ErrorKind
	Description string
}

// Error satisfies the error interface and prints human-readable errors.
func (e Error) Error() string {
	return e.Description
}

// Is implements the interface to work with the standard library's
// errors.Is. It returns true when the target is an ErrorKind (or an
// Error wrapping the same ErrorKind) that matches e's kind.
func (e Error) Is(target error) bool {
	switch target := target.(type) {
	case Error:
		return e.Err == target.Err
	case ErrorKind:
		return e.Err == target
	}
	return false
}

// makeError creates an Error given a set of arguments.
func makeError(kind ErrorKind, desc string) Error {
	return Error{Err: kind, Description: desc}
}

// These constants identify the kinds of errors surfaced by the
// public-key codec (C3) and curve (C1/C2) per spec.md's error table.
const (
	// ErrPubKeyInvalidLen indicates a SEC1-encoded public key does not
	// have the correct length for its format prefix.
	ErrPubKeyInvalidLen = ErrorKind("ErrPubKeyInvalidLen")

	// ErrPubKeyInvalidFormat indicates a SEC1-encoded public key does not
	// start with one of the recognized format prefixes.
	ErrPubKeyInvalidFormat = ErrorKind("ErrPubKeyInvalidFormat")

	// ErrPubKeyXTooBig indicates an encoded X coordinate is not a valid
	// field element (it is >= the field prime).
	ErrPubKeyXTooBig = ErrorKind("ErrPubKeyXTooBig")

	// ErrPubKeyYTooBig indicates an encoded Y coordinate is not a valid
	// field element (it is >= the field prime).
	ErrPubKeyYTooBig = ErrorKind("ErrPubKeyYTooBig")

	// ErrPubKeyNotOnCurve indicates a decoded point does not satisfy the
	// secp256k1 curve equation.
	ErrPubKeyNotOnCurve = ErrorKind("ErrPubKeyNotOnCurve")

	// ErrPubKeyMismatchedOddness indicates a compressed public key's
	// prefix byte does not match either valid even/odd value.
	ErrPubKeyMismatchedOddness = ErrorKind("ErrPubKeyMismatchedOddness")

	// ErrPubKeyIsInfinity indicates a decoded public key is the point at
	// infinity or the forbidden (0, 0) pair, per spec.md's validate()
	// rule.
	ErrPubKeyIsInfinity = ErrorKind("ErrPubKeyIsInfinity")
)

// These constants identify the kinds of errors surfaced when parsing or
// validating ECDSA signatures (C4).
const (
	ErrSigTooShort            = ErrorKind("ErrSigTooShort")
	ErrSigTooLong             = ErrorKind("ErrSigTooLong")
	ErrSigInvalidSeqID        = ErrorKind("ErrSigInvalidSeqID")
	ErrSigInvalidDataLen      = ErrorKind("ErrSigInvalidDataLen")
	ErrSigMissingSTypeID      = ErrorKind("ErrSigMissingSTypeID")
	ErrSigMissingSLen         = ErrorKind("ErrSigMissingSLen")
	ErrSigInvalidSLen         = ErrorKind("ErrSigInvalidSLen")
	ErrSigInvalidRIntID       = ErrorKind("ErrSigInvalidRIntID")
	ErrSigZeroRLen            = ErrorKind("ErrSigZeroRLen")
	ErrSigNegativeR           = ErrorKind("ErrSigNegativeR")
	ErrSigTooMuchRPadding     = ErrorKind("ErrSigTooMuchRPadding")
	ErrSigRIsZero             = ErrorKind("ErrSigRIsZero")
	ErrSigRTooBig             = ErrorKind("ErrSigRTooBig")
	ErrSigInvalidSIntID       = ErrorKind("ErrSigInvalidSIntID")
	ErrSigZeroSLen            = ErrorKind("ErrSigZeroSLen")
	ErrSigNegativeS           = ErrorKind("ErrSigNegativeS")
	ErrSigTooMuchSPadding     = ErrorKind("ErrSigTooMuchSPadding")
	ErrSigSIsZero             = ErrorKind("ErrSigSIsZero")
	ErrSigSTooBig             = ErrorKind("ErrSigSTooBig")
	ErrSigInvalidLen          = ErrorKind("ErrSigInvalidLen")
	ErrSigInvalidRecoveryCode = ErrorKind("ErrSigInvalidRecoveryCode")
	ErrSigOverflowsPrime      = ErrorKind("ErrSigOverflowsPrime")
	ErrPointNotOnCurve        = ErrorKind("ErrPointNotOnCurve")

	// ErrDigestShape indicates a digest passed to Sign was not exactly 32
	// bytes, per spec.md §4.2/§7. Verify does not check the digest length.
	ErrDigestShape = ErrorKind("ErrDigestShape")

	// ErrPrivateKeyMissing indicates a signing request had no private
	// scalar to sign with.
	ErrPrivateKeyMissing = ErrorKind("ErrPrivateKeyMissing")

	// ErrRecoveryExhausted indicates CalcRecovery tried all four
	// candidate recovery codes without finding one that reproduces the
	// expected public key, per spec.md §4.2.
	ErrRecoveryExhausted = ErrorKind("ErrRecoveryExhausted")
)

func signatureError(kind ErrorKind, desc string) Error {
	return makeError(kind, desc)
}

func codecErrorf(kind ErrorKind, format string, args ...interface{}) Error {
	return makeError(kind, fmt.Sprintf(format, args...))
}
