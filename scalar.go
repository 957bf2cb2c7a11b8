// Copyright (c) 2013-2022 The btccore developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secp256k1

import "math/big"

// curveOrderBig is N, the order of the secp256k1 base point group.
var curveOrderBig = fromHex("fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141")

// halfOrderBig is floor(N/2), the low-S threshold defined in spec.md's
// data model for the Signature type.
var halfOrderBig = new(big.Int).Rsh(curveOrderBig, 1)

// ModNScalar implements scalar arithmetic modulo the secp256k1 group
// order N. As with FieldVal, the exported surface mirrors the teacher
// package's API but is backed by math/big rather than hand-unrolled limb
// arithmetic.
type ModNScalar struct {
	val big.Int
}

func normalizeN(n *big.Int) *big.Int {
	n.Mod(n, curveOrderBig)
	return n
}

// Set sets s equal to val and returns s.
func (s *ModNScalar) Set(val *ModNScalar) *ModNScalar {
	s.val.Set(&val.val)
	return s
}

// SetInt sets s to the passed small integer and returns s.
func (s *ModNScalar) SetInt(ui uint32) *ModNScalar {
	s.val.SetUint64(uint64(ui))
	return s
}

// SetByteSlice interprets b as a big-endian unsigned integer, reduces it
// modulo N, and sets s to the result. It returns whether the reduction
// changed the value (i.e. the input overflowed the group order).
func (s *ModNScalar) SetByteSlice(b []byte) bool {
	raw := new(big.Int).SetBytes(b)
	s.val.Mod(raw, curveOrderBig)
	return raw.Cmp(&s.val) != 0
}

// SetBytes behaves like SetByteSlice for a fixed 32-byte input and returns
// 1 if the value overflowed N, 0 otherwise, matching the teacher's
// constant-time-flavored calling convention.
func (s *ModNScalar) SetBytes(b *[32]byte) uint32 {
	if s.SetByteSlice(b[:]) {
		return 1
	}
	return 0
}

// SetByteSliceLE interprets b as a little-endian unsigned integer, reduces
// it modulo N, and sets s to the result. It returns whether the reduction
// changed the value (i.e. the input overflowed the group order).
//
// This is the little-endian counterpart to SetByteSlice, added so the
// ECDSA engine can honor spec.md §4.2's "e <- integer(h, configured
// endianness)" requirement for callers (such as Bitcoin transaction
// digests) that need the little-endian reading rather than the
// big-endian-by-default one every exported Sign/Verify entry point uses.
func (s *ModNScalar) SetByteSliceLE(b []byte) bool {
	return s.SetByteSlice(reverseBytes(b))
}

// Bytes returns s as a fixed 32-byte big-endian array.
func (s *ModNScalar) Bytes() [32]byte {
	var out [32]byte
	normalizeN(&s.val).FillBytes(out[:])
	return out
}

// PutBytes stores s into the passed array as big-endian.
func (s *ModNScalar) PutBytes(b *[32]byte) {
	normalizeN(&s.val).FillBytes(b[:])
}

// PutBytesUnchecked stores s into the passed slice, which must have room
// for at least 32 bytes, as big-endian.
func (s *ModNScalar) PutBytesUnchecked(b []byte) {
	var tmp [32]byte
	s.PutBytes(&tmp)
	copy(b, tmp[:])
}

// IsZero returns whether s is the zero scalar.
func (s *ModNScalar) IsZero() bool {
	return normalizeN(&s.val).Sign() == 0
}

// Equals returns whether s and val represent the same scalar.
func (s *ModNScalar) Equals(val *ModNScalar) bool {
	return normalizeN(&s.val).Cmp(normalizeN(&val.val)) == 0
}

// IsOverHalfOrder returns whether s is strictly greater than N/2, the
// low-S threshold from spec.md's Signature invariant.
func (s *ModNScalar) IsOverHalfOrder() bool {
	return normalizeN(&s.val).Cmp(halfOrderBig) > 0
}

// Add adds val to s, stores the result in s, and returns s.
func (s *ModNScalar) Add(val *ModNScalar) *ModNScalar {
	s.val.Add(&s.val, &val.val)
	normalizeN(&s.val)
	return s
}

// Add2 sets s = val1 + val2 and returns s.
func (s *ModNScalar) Add2(val1, val2 *ModNScalar) *ModNScalar {
	s.val.Add(&val1.val, &val2.val)
	normalizeN(&s.val)
	return s
}

// Mul multiplies s by val, stores the result in s, and returns s.
func (s *ModNScalar) Mul(val *ModNScalar) *ModNScalar {
	s.val.Mul(&s.val, &val.val)
	normalizeN(&s.val)
	return s
}

// Mul2 sets s = val1 * val2 and returns s.
func (s *ModNScalar) Mul2(val1, val2 *ModNScalar) *ModNScalar {
	s.val.Mul(&val1.val, &val2.val)
	normalizeN(&s.val)
	return s
}

// Negate sets s to its additive inverse modulo N and returns s.
func (s *ModNScalar) Negate() *ModNScalar {
	s.val.Neg(&s.val)
	normalizeN(&s.val)
	return s
}

// InverseValNonConst sets s to the multiplicative inverse of val modulo N
// and returns s. The name is retained from the teacher package, which
// uses it to flag that the operation is not constant-time; this
// implementation, being math/big-backed, makes no constant-time claims
// for any operation (see DESIGN.md).
func (s *ModNScalar) InverseValNonConst(val *ModNScalar) *ModNScalar {
	inv := new(big.Int).ModInverse(normalizeN(&val.val), curveOrderBig)
	if inv == nil {
		panic("secp256k1: attempt to invert zero scalar")
	}
	s.val.Set(inv)
	return s
}

// Zero overwrites s with the zero scalar, used to scrub ephemeral nonces
// from memory once they are no longer needed.
func (s *ModNScalar) Zero() {
	s.val.SetInt64(0)
}

// orderAsFieldVal returns the secp256k1 group order N represented as a field
// value, used by the public-key recovery procedure when shifting an
// overflowed R coordinate back into [0, P).
func orderAsFieldVal() *FieldVal {
	var f FieldVal
	f.val.Set(curveOrderBig)
	return &f
}
