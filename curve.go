// Copyright (c) 2013-2022 The btccore developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secp256k1

// References:
//   [SECG]: Recommended Elliptic Curve Domain Parameters
//     https://www.secg.org/sec2-v2.pdf
//   [GECC]: Guide to Elliptic Curve Cryptography (Hankerson, Menezes, Vanstone)

// JacobianPoint represents a secp256k1 group element. Despite the name
// (kept for parity with the teacher package, whose hot paths operate in
// Jacobian projective coordinates for speed), this implementation keeps
// points normalized to affine form at all times: Z is either 1 (an
// ordinary point) or 0 (the point at infinity). See DESIGN.md for why the
// projective speedups were traded for math/big-backed affine arithmetic.
type JacobianPoint struct {
	X, Y, Z FieldVal
}

// IsInfinity reports whether p is the distinguished point at infinity.
func (p *JacobianPoint) IsInfinity() bool {
	return p.Z.IsZero() || (p.X.IsZero() && p.Y.IsZero())
}

// ToAffine is a no-op beyond normalizing the coordinates, since this
// implementation never leaves affine form. Present for API parity with
// the teacher package, whose Jacobian points require an explicit
// conversion before their X/Y fields can be read directly.
func (p *JacobianPoint) ToAffine() {
	p.X.Normalize()
	p.Y.Normalize()
	p.Z.Normalize()
}

// setInfinity sets p to the point at infinity.
func (p *JacobianPoint) setInfinity() {
	p.X.SetInt(0)
	p.Y.SetInt(0)
	p.Z.SetInt(0)
}

// set copies src into p and returns p.
func (p *JacobianPoint) set(src *JacobianPoint) *JacobianPoint {
	p.X.Set(&src.X)
	p.Y.Set(&src.Y)
	p.Z.Set(&src.Z)
	return p
}

// generator returns the secp256k1 base point (generator G).
func generator() JacobianPoint {
	var g JacobianPoint
	g.X.SetHex("79be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798")
	g.Y.SetHex("483ada7726a3c4655da4fbfc0e1108a8fd17b448a68554199c47d08ffb10d4b8")
	g.Z.SetInt(1)
	return g
}

// isOnCurve reports whether the affine point (x, y) satisfies the
// secp256k1 curve equation y^2 = x^3 + 7 (mod P).
func isOnCurve(x, y *FieldVal) bool {
	var lhs, rhs FieldVal
	lhs.SquareVal(y)
	rhs.SquareVal(x).Mul(x)
	rhs.Add(new(FieldVal).SetInt(7))
	return lhs.Equals(&rhs)
}

// DoubleNonConst sets result = 2*p, using the standard short-Weierstrass
// doubling formula in affine coordinates (a=0 for secp256k1).
func DoubleNonConst(p *JacobianPoint, result *JacobianPoint) {
	if p.IsInfinity() || p.Y.IsZero() {
		result.setInfinity()
		return
	}

	// lambda = (3*x^2) / (2*y)
	var xSq, num, denom, lambda FieldVal
	xSq.SquareVal(&p.X)
	num.Set(&xSq).MulInt(3)
	denom.Set(&p.Y).MulInt(2)
	lambda.Mul2(&num, denom.Inverse())

	// x3 = lambda^2 - 2*x
	var x3, y3, lambdaSq, twoX FieldVal
	lambdaSq.SquareVal(&lambda)
	twoX.Set(&p.X).MulInt(2)
	x3.Set(&lambdaSq).Add(twoX.Negate(1))

	// y3 = lambda*(x - x3) - y
	var xMinusX3, negX3, negY FieldVal
	negX3.Set(&x3).Negate(1)
	xMinusX3.Set(&p.X).Add(&negX3)
	negY.Set(&p.Y).Negate(1)
	y3.Mul2(&lambda, &xMinusX3).Add(&negY)

	result.X.Set(x3.Normalize())
	result.Y.Set(y3.Normalize())
	result.Z.SetInt(1)
}

// AddNonConst sets result = p1 + p2, using the standard short-Weierstrass
// addition formula in affine coordinates.
func AddNonConst(p1, p2, result *JacobianPoint) {
	if p1.IsInfinity() {
		result.set(p2)
		return
	}
	if p2.IsInfinity() {
		result.set(p1)
		return
	}

	x1 := new(FieldVal).Set(&p1.X).Normalize()
	y1 := new(FieldVal).Set(&p1.Y).Normalize()
	x2 := new(FieldVal).Set(&p2.X).Normalize()
	y2 := new(FieldVal).Set(&p2.Y).Normalize()

	if x1.Equals(x2) {
		if y1.Equals(y2) {
			DoubleNonConst(p1, result)
			return
		}
		// x1 == x2, y1 == -y2: sum is the point at infinity.
		result.setInfinity()
		return
	}

	// lambda = (y2 - y1) / (x2 - x1)
	var num, denom, lambda, negY1, negX1 FieldVal
	negY1.Set(y1).Negate(1)
	num.Set(y2).Add(&negY1)
	negX1.Set(x1).Negate(1)
	denom.Set(x2).Add(&negX1)
	lambda.Mul2(&num, denom.Inverse())

	// x3 = lambda^2 - x1 - x2
	var x3, y3, lambdaSq, negX2 FieldVal
	lambdaSq.SquareVal(&lambda)
	negX2.Set(x2).Negate(1)
	x3.Set(&lambdaSq).Add(&negX1).Add(&negX2)

	// y3 = lambda*(x1 - x3) - y1
	var x1MinusX3, negX3 FieldVal
	negX3.Set(&x3).Negate(1)
	x1MinusX3.Set(x1).Add(&negX3)
	y3.Mul2(&lambda, &x1MinusX3).Add(&negY1)

	result.X.Set(x3.Normalize())
	result.Y.Set(y3.Normalize())
	result.Z.SetInt(1)
}

// ScalarMultNonConst sets result = k*point, using the standard
// double-and-add method over the scalar's bits, most-significant bit
// first.
func ScalarMultNonConst(k *ModNScalar, point *JacobianPoint, result *JacobianPoint) {
	var acc JacobianPoint
	acc.setInfinity()

	kBytes := k.Bytes()
	for _, b := range kBytes {
		for bit := 7; bit >= 0; bit-- {
			var doubled JacobianPoint
			DoubleNonConst(&acc, &doubled)
			acc.set(&doubled)
			if b&(1<<uint(bit)) != 0 {
				var sum JacobianPoint
				AddNonConst(&acc, point, &sum)
				acc.set(&sum)
			}
		}
	}
	result.set(&acc)
}

// ScalarBaseMultNonConst sets result = k*G, where G is the secp256k1
// generator.
func ScalarBaseMultNonConst(k *ModNScalar, result *JacobianPoint) {
	g := generator()
	ScalarMultNonConst(k, &g, result)
}

// DecompressY computes the y coordinate matching the requested parity for
// the given x coordinate on the secp256k1 curve, storing the result in y.
// It returns false when x does not correspond to a point on the curve.
func DecompressY(x *FieldVal, oddY bool, y *FieldVal) bool {
	return decompressY(x, oddY, y)
}

// scalarMultBigNonConst sets result = k*point for an arbitrary big-endian
// scalar that is not first reduced modulo N. It exists solely to support the
// public-key recovery cofactor check, which must multiply by the curve
// order N itself rather than by N mod N (which ModNScalar would collapse to
// zero).
func scalarMultBigNonConst(kBytes []byte, point, result *JacobianPoint) {
	var acc JacobianPoint
	acc.setInfinity()

	for _, b := range kBytes {
		for bit := 7; bit >= 0; bit-- {
			var doubled JacobianPoint
			DoubleNonConst(&acc, &doubled)
			acc.set(&doubled)
			if b&(1<<uint(bit)) != 0 {
				var sum JacobianPoint
				AddNonConst(&acc, point, &sum)
				acc.set(&sum)
			}
		}
	}
	result.set(&acc)
}
