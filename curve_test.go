// Copyright (c) 2013-2022 The btccore developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secp256k1

import "testing"

// TestGeneratorOnCurve ensures the hardcoded generator constant satisfies
// the secp256k1 curve equation, per spec.md §3's Point invariant.
func TestGeneratorOnCurve(t *testing.T) {
	g := generator()
	if !isOnCurve(&g.X, &g.Y) {
		t.Fatal("generator point does not satisfy y^2 = x^3 + 7")
	}
}

// TestScalarMultByOrderIsInfinity checks spec.md §3's invariant that
// n*Point = infinity where n = N, using the generator.
func TestScalarMultByOrderIsInfinity(t *testing.T) {
	g := generator()
	var nG JacobianPoint
	scalarMultBigNonConst(curveOrderBig.Bytes(), &g, &nG)
	if !nG.IsInfinity() {
		t.Fatal("N*G did not reduce to the point at infinity")
	}
}

// TestDoubleMatchesAdd ensures DoubleNonConst(p) and AddNonConst(p, p)
// agree, for both the generator and an arbitrary multiple of it.
func TestDoubleMatchesAdd(t *testing.T) {
	g := generator()

	var viaDouble, viaAdd JacobianPoint
	DoubleNonConst(&g, &viaDouble)
	AddNonConst(&g, &g, &viaAdd)
	viaDouble.ToAffine()
	viaAdd.ToAffine()
	if !viaDouble.X.Equals(&viaAdd.X) || !viaDouble.Y.Equals(&viaAdd.Y) {
		t.Fatal("DoubleNonConst(G) != AddNonConst(G, G)")
	}

	k := new(ModNScalar).SetInt(12345)
	var kG JacobianPoint
	ScalarMultNonConst(k, &g, &kG)

	var viaDouble2, viaAdd2 JacobianPoint
	DoubleNonConst(&kG, &viaDouble2)
	AddNonConst(&kG, &kG, &viaAdd2)
	viaDouble2.ToAffine()
	viaAdd2.ToAffine()
	if !viaDouble2.X.Equals(&viaAdd2.X) || !viaDouble2.Y.Equals(&viaAdd2.Y) {
		t.Fatal("DoubleNonConst(kG) != AddNonConst(kG, kG)")
	}
}

// TestAddInverseIsInfinity checks that P + (-P) = infinity.
func TestAddInverseIsInfinity(t *testing.T) {
	g := generator()
	var negG JacobianPoint
	negG.X.Set(&g.X)
	negG.Y.Set(&g.Y).Negate(1)
	negG.Z.SetInt(1)

	var sum JacobianPoint
	AddNonConst(&g, &negG, &sum)
	if !sum.IsInfinity() {
		t.Fatal("G + (-G) did not reduce to the point at infinity")
	}
}

// TestScalarMultDistributesOverAddition checks (a+b)*G == a*G + b*G for
// small scalars, a basic sanity check on the double-and-add implementation.
func TestScalarMultDistributesOverAddition(t *testing.T) {
	g := generator()
	a := new(ModNScalar).SetInt(7)
	b := new(ModNScalar).SetInt(19)
	sum := new(ModNScalar).Add2(a, b)

	var aG, bG, sumG, aGplusbG JacobianPoint
	ScalarBaseMultNonConst(a, &aG)
	ScalarBaseMultNonConst(b, &bG)
	ScalarBaseMultNonConst(sum, &sumG)
	AddNonConst(&aG, &bG, &aGplusbG)

	sumG.ToAffine()
	aGplusbG.ToAffine()
	if !sumG.X.Equals(&aGplusbG.X) || !sumG.Y.Equals(&aGplusbG.Y) {
		t.Fatal("(a+b)*G != a*G + b*G")
	}
	_ = g
}

// TestDecompressYMatchesScalarMult cross-checks DecompressY against a point
// produced via scalar multiplication: lifting the X coordinate of k*G with
// k*G's own Y parity must reproduce k*G exactly.
func TestDecompressYMatchesScalarMult(t *testing.T) {
	k := new(ModNScalar).SetInt(424242)
	var kG JacobianPoint
	ScalarBaseMultNonConst(k, &kG)
	kG.ToAffine()

	var y FieldVal
	if !DecompressY(&kG.X, kG.Y.IsOdd(), &y) {
		t.Fatal("DecompressY failed to lift a known-good X coordinate")
	}
	if !y.Equals(&kG.Y) {
		t.Fatal("DecompressY produced a Y that doesn't match the original point")
	}
}
