// Copyright (c) 2013-2022 The btccore developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secp256k1

import (
	"crypto/rand"
	"math/big"
	"testing"
)

// TestScalarInverse ensures that multiplying a nonzero scalar by its own
// inverse modulo N yields one.
func TestScalarInverse(t *testing.T) {
	one := new(ModNScalar).SetInt(1)
	for i := 0; i < 128; i++ {
		vBig, _ := rand.Int(rand.Reader, curveOrderBig)
		if vBig.Sign() == 0 {
			continue
		}
		var v, inv, product ModNScalar
		var vBytes [32]byte
		vBig.FillBytes(vBytes[:])
		v.SetBytes(&vBytes)
		inv.InverseValNonConst(&v)
		product.Mul2(&v, &inv)
		if !product.Equals(one) {
			t.Fatalf("iteration %d: v*inv != 1 for v=%x", i, v.Bytes())
		}
	}
}

// TestIsOverHalfOrder checks the low-S threshold boundary described in
// spec.md's Signature invariant: s <= floor(N/2) is "not over half order".
func TestIsOverHalfOrder(t *testing.T) {
	var atHalf ModNScalar
	var halfBytes [32]byte
	halfOrderBig.FillBytes(halfBytes[:])
	atHalf.SetBytes(&halfBytes)
	if atHalf.IsOverHalfOrder() {
		t.Fatal("floor(N/2) itself reported as over half order")
	}

	oneOver := new(big.Int).Add(halfOrderBig, big.NewInt(1))
	var overBytes [32]byte
	oneOver.FillBytes(overBytes[:])
	var over ModNScalar
	over.SetBytes(&overBytes)
	if !over.IsOverHalfOrder() {
		t.Fatal("floor(N/2)+1 not reported as over half order")
	}
}

// TestScalarSetByteSliceOverflow ensures SetByteSlice reports overflow
// exactly when the input is >= N.
func TestScalarSetByteSliceOverflow(t *testing.T) {
	var nMinusOne ModNScalar
	nMinus1Big := new(big.Int).Sub(curveOrderBig, big.NewInt(1))
	var buf [32]byte
	nMinus1Big.FillBytes(buf[:])
	if overflow := nMinusOne.SetByteSlice(buf[:]); overflow {
		t.Fatal("N-1 incorrectly reported as overflowing N")
	}

	var atN ModNScalar
	var nBuf [32]byte
	curveOrderBig.FillBytes(nBuf[:])
	if overflow := atN.SetByteSlice(nBuf[:]); !overflow {
		t.Fatal("N itself not reported as overflowing N")
	}
}
