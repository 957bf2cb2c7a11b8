// Copyright (c) 2013-2022 The btccore developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secp256k1

import "math/big"

// References:
//   [SECG]: Recommended Elliptic Curve Domain Parameters
//     https://www.secg.org/sec2-v2.pdf

// fieldPrimeBig is the secp256k1 field prime P = 2^256 - 2^32 - 977.
var fieldPrimeBig = fromHex("fffffffffffffffffffffffffffffffffffffffffffffffffffffffefffffc2f")

// FieldVal implements arithmetic over the secp256k1 field (integers modulo
// the field prime P).
//
// The exported surface (Set, Add, Negate, Mul, Square, Normalize, ...)
// mirrors the teacher package's hand-unrolled 10x26-bit limb
// implementation, but the arithmetic itself is delegated to math/big so
// that every operation is correct by construction rather than by careful
// bookkeeping of limb magnitudes that cannot be checked without running
// the code. See DESIGN.md ("Curve arithmetic realisation") for the
// rationale.
type FieldVal struct {
	val big.Int
}

// normalizeBig reduces n modulo P in place and returns n.
func normalizeBig(n *big.Int) *big.Int {
	n.Mod(n, fieldPrimeBig)
	return n
}

// Set sets f equal to the passed field value and returns f.
func (f *FieldVal) Set(val *FieldVal) *FieldVal {
	f.val.Set(&val.val)
	return f
}

// SetInt sets f to the passed small integer and returns f.
func (f *FieldVal) SetInt(ui uint16) *FieldVal {
	f.val.SetUint64(uint64(ui))
	return f
}

// SetHex decodes the passed hex string into f and returns f. It panics on
// malformed input since it is only used for package-level constants.
func (f *FieldVal) SetHex(hexString string) *FieldVal {
	f.val.Set(fromHex(hexString))
	normalizeBig(&f.val)
	return f
}

// SetBytes interprets the passed 32-byte big-endian value as an unsigned
// integer, reduces it modulo P, and sets f to the result. It returns f.
func (f *FieldVal) SetBytes(b *[32]byte) *FieldVal {
	f.val.SetBytes(b[:])
	normalizeBig(&f.val)
	return f
}

// SetByteSlice behaves like SetBytes but accepts a variable-length big-endian
// slice (left-padded with zeros conceptually) and reports whether reducing it
// modulo P changed the value (i.e. the input did not already represent a
// canonical field element).
func (f *FieldVal) SetByteSlice(b []byte) bool {
	raw := new(big.Int).SetBytes(b)
	f.val.Mod(raw, fieldPrimeBig)
	return raw.Cmp(&f.val) != 0
}

// Bytes returns f as a fixed 32-byte big-endian array.
func (f *FieldVal) Bytes() [32]byte {
	var out [32]byte
	normalizeBig(&f.val).FillBytes(out[:])
	return out
}

// PutBytes stores f into the passed 32-byte array as big-endian.
func (f *FieldVal) PutBytes(b *[32]byte) {
	normalizeBig(&f.val).FillBytes(b[:])
}

// PutBytesUnchecked stores f into the passed byte slice, which must have
// room for at least 32 bytes, as big-endian.
func (f *FieldVal) PutBytesUnchecked(b []byte) {
	var tmp [32]byte
	f.PutBytes(&tmp)
	copy(b, tmp[:])
}

// Normalize reduces f modulo P and returns f. Present for API parity with
// the teacher's magnitude-tracking implementation; since this
// implementation always keeps f canonical, it is a no-op beyond the
// reduction itself.
func (f *FieldVal) Normalize() *FieldVal {
	normalizeBig(&f.val)
	return f
}

// IsZero returns whether f is the zero field element.
func (f *FieldVal) IsZero() bool {
	return normalizeBig(&f.val).Sign() == 0
}

// IsOdd returns whether f, normalized, is an odd integer.
func (f *FieldVal) IsOdd() bool {
	return normalizeBig(&f.val).Bit(0) == 1
}

// IsOddBit is an alias for IsOdd returning 0 or 1, matching the teacher's
// calling convention in the recovery-code computation.
func (f *FieldVal) IsOddBit() uint32 {
	if f.IsOdd() {
		return 1
	}
	return 0
}

// Equals returns whether f and val represent the same field element.
func (f *FieldVal) Equals(val *FieldVal) bool {
	return normalizeBig(&f.val).Cmp(normalizeBig(&val.val)) == 0
}

// Add adds val to f, stores the result in f, and returns f.
func (f *FieldVal) Add(val *FieldVal) *FieldVal {
	f.val.Add(&f.val, &val.val)
	normalizeBig(&f.val)
	return f
}

// Add2 sets f = val1 + val2 and returns f.
func (f *FieldVal) Add2(val1, val2 *FieldVal) *FieldVal {
	f.val.Add(&val1.val, &val2.val)
	normalizeBig(&f.val)
	return f
}

// Negate sets f to its additive inverse modulo P and returns f. The
// magnitude parameter is accepted for API parity with the teacher's
// limb-based implementation, where it bounds how much headroom the
// negation needs; it has no effect here since big.Int has no magnitude
// concept.
func (f *FieldVal) Negate(magnitude uint32) *FieldVal {
	f.val.Neg(&f.val)
	normalizeBig(&f.val)
	return f
}

// Mul multiplies f by val, stores the result in f, and returns f.
func (f *FieldVal) Mul(val *FieldVal) *FieldVal {
	f.val.Mul(&f.val, &val.val)
	normalizeBig(&f.val)
	return f
}

// Mul2 sets f = val1 * val2 and returns f.
func (f *FieldVal) Mul2(val1, val2 *FieldVal) *FieldVal {
	f.val.Mul(&val1.val, &val2.val)
	normalizeBig(&f.val)
	return f
}

// MulInt multiplies f by the passed small integer, stores the result in f,
// and returns f.
func (f *FieldVal) MulInt(val uint8) *FieldVal {
	f.val.Mul(&f.val, big.NewInt(int64(val)))
	normalizeBig(&f.val)
	return f
}

// Square squares f, stores the result in f, and returns f.
func (f *FieldVal) Square() *FieldVal {
	f.val.Mul(&f.val, &f.val)
	normalizeBig(&f.val)
	return f
}

// SquareVal sets f = val*val and returns f.
func (f *FieldVal) SquareVal(val *FieldVal) *FieldVal {
	f.val.Mul(&val.val, &val.val)
	normalizeBig(&f.val)
	return f
}

// Inverse sets f to its multiplicative inverse modulo P and returns f.
// Panics if f is zero, matching the mathematical fact that zero has no
// inverse; callers are expected to check IsZero beforehand where a zero
// value is a reachable input.
func (f *FieldVal) Inverse() *FieldVal {
	inv := new(big.Int).ModInverse(normalizeBig(&f.val), fieldPrimeBig)
	if inv == nil {
		panic("secp256k1: attempt to invert zero field element")
	}
	f.val.Set(inv)
	return f
}

// IsGtOrEqPrimeMinusOrder returns whether f, added to the group order N,
// would meet or exceed the field prime P (i.e. f >= P-N). This supports
// the public-key recovery "X coordinate overflowed the group order" case
// described in spec.md's ECDSA engine.
func (f *FieldVal) IsGtOrEqPrimeMinusOrder() bool {
	pMinusN := new(big.Int).Sub(fieldPrimeBig, curveOrderBig)
	return normalizeBig(&f.val).Cmp(pMinusN) >= 0
}

// fromHex parses a hex string (optionally prefixed with '-') into a new
// big.Int. It panics on malformed input, matching the teacher's use of it
// solely for compile-time-known curve constants.
func fromHex(s string) *big.Int {
	neg := false
	if len(s) > 0 && s[0] == '-' {
		neg = true
		s = s[1:]
	}
	n, ok := new(big.Int).SetString(s, 16)
	if !ok {
		panic("secp256k1: invalid hex constant " + s)
	}
	if neg {
		n.Neg(n)
	}
	return n
}

// decompressY computes the y coordinate (chosen by parity) for the given
// field element x on the secp256k1 curve y^2 = x^3 + 7, storing the
// result in y. It returns false if x is not a valid coordinate on the
// curve.
func decompressY(x *FieldVal, oddY bool, y *FieldVal) bool {
	// rhs = x^3 + 7 (mod P)
	var rhs big.Int
	rhs.Exp(&x.val, big.NewInt(3), fieldPrimeBig)
	rhs.Add(&rhs, curveBBig)
	rhs.Mod(&rhs, fieldPrimeBig)

	// secp256k1's prime is congruent to 3 (mod 4), so a square root (when
	// one exists) is rhs^((P+1)/4) mod P.
	var cand big.Int
	cand.Exp(&rhs, fieldSqrtExponent, fieldPrimeBig)

	var check big.Int
	check.Mul(&cand, &cand)
	check.Mod(&check, fieldPrimeBig)
	if check.Cmp(&rhs) != 0 {
		return false
	}

	if (cand.Bit(0) == 1) != oddY {
		cand.Sub(fieldPrimeBig, &cand)
	}
	y.val.Set(&cand)
	return true
}

var (
	curveBBig         = fromHex("7")
	fieldSqrtExponent = new(big.Int).Rsh(new(big.Int).Add(fieldPrimeBig, big.NewInt(1)), 2)
)
