// Copyright (c) 2013-2014 The btcsuite developers
// Copyright (c) 2015-2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secp256k1

import (
	"crypto/hmac"
	"crypto/sha256"
)

// Endianness selects how a 32-byte digest is read as the integer e in
// spec.md §4.2's signing/verification procedures ("e <- integer(h,
// configured endianness)"). Every exported Sign/Verify/recovery entry point
// defaults to BigEndian, the natural reading of a raw hash output; the
// *Endian variants let a caller (e.g. one hashing a Bitcoin transaction
// sighash under a convention that reads it little-endian) opt into
// LittleEndian explicitly.
type Endianness int

const (
	BigEndian Endianness = iota
	LittleEndian
)

// setDigestScalar sets e to the integer value of hash under the requested
// endianness.
func setDigestScalar(e *ModNScalar, hash []byte, endian Endianness) {
	if endian == LittleEndian {
		e.SetByteSliceLE(hash)
		return
	}
	e.SetByteSlice(hash)
}

// nonceRFC6979 generates a deterministic per-message secret parameterized by
// a 32-byte private scalar and a 32-byte message digest.
//
// The procedure follows RFC 6979 with two deliberate departures, both
// preserved for bit-for-bit compatibility with the system this package
// reimplements: step 3 applies the V-update HMAC twice in a row rather than
// once, and badrs lets the caller force extra retry rounds so that a signer
// can skip over a k that is known (from a previous attempt) to yield an
// invalid (r, s) pair without having to recompute anything about that pair.
func nonceRFC6979(privKeyBytes [32]byte, hash []byte, badrs int) *ModNScalar {
	hmacRound := func(key, data []byte) []byte {
		mac := hmac.New(sha256.New, key)
		mac.Write(data)
		return mac.Sum(nil)
	}

	// Step 1.
	v := make([]byte, 32)
	for i := range v {
		v[i] = 0x01
	}
	k := make([]byte, 32)

	// Step 2.
	k = hmacRound(k, concatBytes(v, []byte{0x00}, privKeyBytes[:], hash))
	v = hmacRound(k, v)

	// Step 3. The second V update here is the source's double-application
	// quirk; a strict RFC 6979 reading would stop after the first.
	k = hmacRound(k, concatBytes(v, []byte{0x01}, privKeyBytes[:], hash))
	v = hmacRound(k, v)
	v = hmacRound(k, v)

	// Step 4.
	var t ModNScalar
	overflow := t.SetByteSlice(v)

	// Step 5.
	for t.IsZero() || overflow || badrs > 0 {
		if badrs > 0 {
			badrs--
		}
		k = hmacRound(k, concatBytes(v, []byte{0x00}))
		v = hmacRound(k, v)
		v = hmacRound(k, v)
		overflow = t.SetByteSlice(v)
	}
	return &t
}

// concatBytes returns the concatenation of the passed byte slices. It exists
// to keep the HMAC call sites in nonceRFC6979 readable.
func concatBytes(parts ...[]byte) []byte {
	n := 0
	for _, p := range parts {
		n += len(p)
	}
	out := make([]byte, 0, n)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// sign is the core deterministic ECDSA signing loop: it derives successive
// RFC 6979 nonces (incrementing badrs on each attempt so a repeat draw skips
// the value that just failed) until it finds one producing r, s both
// strictly positive, then normalizes s to the low-S form.
func sign(privKey *PrivateKey, hash []byte, endian Endianness) (*Signature, error) {
	var privKeyBytes [32]byte
	privKey.key.PutBytes(&privKeyBytes)
	defer zeroArray32(&privKeyBytes)

	var e ModNScalar
	setDigestScalar(&e, hash, endian)

	for badrs := 0; ; badrs++ {
		k := nonceRFC6979(privKeyBytes, hash, badrs)

		var kG JacobianPoint
		ScalarBaseMultNonConst(k, &kG)
		kG.ToAffine()

		r, _ := fieldToModNScalar(&kG.X)
		if r.IsZero() {
			k.Zero()
			continue
		}

		kinv := new(ModNScalar).InverseValNonConst(k)
		k.Zero()
		s := new(ModNScalar).Mul2(&privKey.key, &r).Add(&e).Mul(kinv)
		if s.IsZero() {
			continue
		}

		// Low-S normalization (BIP 62): both s and N-s are valid, so force
		// the smaller one to remove the malleability.
		if s.IsOverHalfOrder() {
			s.Negate()
		}

		return NewSignature(&r, s), nil
	}
}

// Sign generates an ECDSA signature over the secp256k1 curve for the
// provided 32-byte digest using the given private key. The produced
// signature is deterministic (same digest and same key yield the same
// signature) and canonical in accordance with RFC 6979 and BIP 62. The
// digest is read as a big-endian integer; use SignEndian to read it as
// little-endian instead.
func Sign(key *PrivateKey, hash []byte) (*Signature, error) {
	return SignEndian(key, hash, BigEndian)
}

// SignEndian behaves like Sign but lets the caller choose the endianness
// used to interpret hash as the integer e, per spec.md §4.2.
func SignEndian(key *PrivateKey, hash []byte, endian Endianness) (*Signature, error) {
	if key == nil {
		return nil, makeError(ErrPrivateKeyMissing, "a private key is required to sign")
	}
	if len(hash) != 32 {
		return nil, codecErrorf(ErrDigestShape, "digest must be exactly 32 bytes, got %d", len(hash))
	}
	return sign(key, hash, endian)
}

// verify implements the ECDSA verification equation and returns a short
// diagnostic string describing the failure, or the empty string when the
// signature is valid. The inverted sense (empty means success) mirrors the
// source's own verify() so callers porting scripts can rely on the same
// convention; Verify below wraps it as a conventional boolean predicate.
func verify(hash []byte, sig *Signature, pubKey *PublicKey, endian Endianness) string {
	if sig.r.IsZero() || sig.s.IsZero() {
		return "signature R or S is zero"
	}
	if err := pubKey.Validate(); err != nil {
		return err.Error()
	}

	var e ModNScalar
	setDigestScalar(&e, hash, endian)

	sInv := new(ModNScalar).InverseValNonConst(&sig.s)
	u1 := new(ModNScalar).Mul2(&e, sInv)
	u2 := new(ModNScalar).Mul2(&sig.r, sInv)

	var Q, u1G, u2Q, P JacobianPoint
	pubKey.AsJacobian(&Q)
	ScalarBaseMultNonConst(u1, &u1G)
	ScalarMultNonConst(u2, &Q, &u2Q)
	AddNonConst(&u1G, &u2Q, &P)

	if P.IsInfinity() {
		return "signature verification resulted in point at infinity"
	}
	P.ToAffine()

	var x ModNScalar
	pxBytes := P.X.Bytes()
	x.SetByteSlice(pxBytes[:])
	if !x.Equals(&sig.r) {
		return "signature does not verify for the given hash and public key"
	}
	return ""
}

// Verify returns whether or not the signature is valid for the provided
// 32-byte digest and public key. The digest is read as a big-endian
// integer; use VerifyEndian to read it as little-endian instead.
func Verify(hash []byte, sig *Signature, pubKey *PublicKey) bool {
	return VerifyEndian(hash, sig, pubKey, BigEndian)
}

// VerifyEndian behaves like Verify but lets the caller choose the
// endianness used to interpret hash as the integer e, per spec.md §4.2.
func VerifyEndian(hash []byte, sig *Signature, pubKey *PublicKey, endian Endianness) bool {
	return verify(hash, sig, pubKey, endian) == ""
}

// Verify returns whether or not the signature is valid for the provided hash
// and secp256k1 public key. It is a convenience method wrapping the
// package-level Verify function.
func (sig *Signature) Verify(hash []byte, pubKey *PublicKey) bool {
	return Verify(hash, sig, pubKey)
}

// sig2pubkey recovers the public key candidate implied by sig's r, s and the
// given recovery code, per section 4.1.6 of [SEC1] specialized to
// secp256k1's cofactor-1 curve.
func sig2pubkey(r, s *ModNScalar, recovery byte, hash []byte, endian Endianness) (*PublicKey, error) {
	isYOdd := recovery&pubKeyRecoveryCodeOddnessBit != 0
	isSecondKey := recovery&pubKeyRecoveryCodeOverflowBit != 0

	fieldR := modNScalarToField(r)
	if isSecondKey {
		if fieldR.IsGtOrEqPrimeMinusOrder() {
			return nil, signatureError(ErrSigOverflowsPrime, "invalid signature: signature R + N >= P")
		}
		fieldR.Add(orderAsFieldVal())
	}

	var y FieldVal
	if valid := DecompressY(&fieldR, isYOdd, &y); !valid {
		return nil, signatureError(ErrPointNotOnCurve, "invalid signature: not for a valid curve point")
	}

	var R JacobianPoint
	R.X.Set(fieldR.Normalize())
	R.Y.Set(y.Normalize())
	R.Z.SetInt(1)

	// N*R must be the point at infinity; this is the cofactor check called
	// for by the recovery procedure.
	var NR JacobianPoint
	scalarMultBigNonConst(curveOrderBig.Bytes(), &R, &NR)
	if !NR.IsInfinity() {
		return nil, signatureError(ErrPointNotOnCurve, "invalid signature: recovered point has the wrong order")
	}

	var e ModNScalar
	setDigestScalar(&e, hash, endian)

	rInv := new(ModNScalar).InverseValNonConst(r)
	negE := new(ModNScalar).Set(&e).Negate()

	var sR, negEG, sum, Q JacobianPoint
	ScalarMultNonConst(s, &R, &sR)
	ScalarBaseMultNonConst(negE, &negEG)
	AddNonConst(&sR, &negEG, &sum)
	ScalarMultNonConst(rInv, &sum, &Q)

	if Q.IsInfinity() {
		return nil, signatureError(ErrPointNotOnCurve, "invalid signature: recovered pubkey is the point at infinity")
	}

	Q.ToAffine()
	return NewPublicKey(&Q.X, &Q.Y), nil
}

// RecoverPublicKey recovers the public key used to produce sig over hash,
// using the recovery code previously attached to sig (via CalcRecovery or a
// recovery-carrying parse). It panics if sig carries no recovery code. The
// digest is read as a big-endian integer; use RecoverPublicKeyEndian to
// read it as little-endian instead.
func (sig *Signature) RecoverPublicKey(hash []byte) (*PublicKey, error) {
	return sig.RecoverPublicKeyEndian(hash, BigEndian)
}

// RecoverPublicKeyEndian behaves like RecoverPublicKey but lets the caller
// choose the endianness used to interpret hash as the integer e, per
// spec.md §4.2.
func (sig *Signature) RecoverPublicKeyEndian(hash []byte, endian Endianness) (*PublicKey, error) {
	if sig.v == 0xff {
		panic("cannot recover public key without recovery code")
	}
	pubKey, err := sig2pubkey(&sig.r, &sig.s, sig.v, hash, endian)
	if err != nil {
		return nil, err
	}
	pubKey.SetCompressed(sig.compressed)
	return pubKey, nil
}

// CalcRecovery determines which of the four recovery codes reproduces
// expectedPubKey for the given digest, and records the matching recovery
// code and compressed flag on sig. It fails with ErrRecoveryExhausted if no
// candidate matches. The digest is read as a big-endian integer; use
// CalcRecoveryEndian to read it as little-endian instead.
func (sig *Signature) CalcRecovery(hash []byte, expectedPubKey *PublicKey) error {
	return sig.CalcRecoveryEndian(hash, expectedPubKey, BigEndian)
}

// CalcRecoveryEndian behaves like CalcRecovery but lets the caller choose
// the endianness used to interpret hash as the integer e, per spec.md §4.2.
func (sig *Signature) CalcRecoveryEndian(hash []byte, expectedPubKey *PublicKey, endian Endianness) error {
	for recovery := byte(0); recovery < 4; recovery++ {
		candidate, err := sig2pubkey(&sig.r, &sig.s, recovery, hash, endian)
		if err != nil {
			continue
		}
		if candidate.IsEqual(expectedPubKey) {
			sig.v = recovery
			sig.compressed = expectedPubKey.IsCompressed()
			return nil
		}
	}
	return makeError(ErrRecoveryExhausted, "Unable to find valid recovery factor")
}

// BruteforceRecoveryCode computes what the recovery code is based on the
// public key and message rather than assuming it is already known. It is
// equivalent to CalcRecovery but reports success as a boolean instead of an
// error, matching the teacher package's historical calling convention.
func (sig *Signature) BruteforceRecoveryCode(hash []byte, pubKey *PublicKey) bool {
	return sig.CalcRecovery(hash, pubKey) == nil
}
