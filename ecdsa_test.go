// Copyright (c) 2013-2022 The btccore developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secp256k1

import (
	"bytes"
	"crypto/sha256"
	"testing"

	"github.com/davecgh/go-spew/spew"
)

func mustPrivKey(t *testing.T, seed byte) *PrivateKey {
	t.Helper()
	var b [32]byte
	for i := range b {
		b[i] = seed + byte(i)
	}
	d := PrivKeyFromBytes(b[:])
	if d.key.IsZero() {
		t.Fatalf("seed %d produced the zero scalar", seed)
	}
	return d
}

func digestOf(msg string) []byte {
	h := sha256.Sum256([]byte(msg))
	return h[:]
}

// TestSignVerifyRoundTrip is property 1 of spec.md §8: a signature produced
// by Sign over (digest, privkey) verifies against (digest, privkey*G).
func TestSignVerifyRoundTrip(t *testing.T) {
	priv := mustPrivKey(t, 1)
	pub := FromPrivateKey(priv, true)
	digest := digestOf("hello, secp256k1")

	sig, err := Sign(priv, digest)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if !Verify(digest, sig, pub) {
		t.Fatalf("Verify rejected a freshly produced signature: %s", spew.Sdump(sig))
	}
}

// TestSignIsDeterministic is property 3: two calls to Sign with the same
// inputs produce byte-identical (r, s).
func TestSignIsDeterministic(t *testing.T) {
	priv := mustPrivKey(t, 2)
	digest := digestOf("deterministic please")

	sig1, err := Sign(priv, digest)
	if err != nil {
		t.Fatalf("Sign (1st): %v", err)
	}
	sig2, err := Sign(priv, digest)
	if err != nil {
		t.Fatalf("Sign (2nd): %v", err)
	}
	if !sig1.IsEqual(sig2) {
		t.Fatalf("Sign was not deterministic:\nsig1: %s\nsig2: %s", spew.Sdump(sig1), spew.Sdump(sig2))
	}
}

// TestSignatureIsLowS is property 7: every signature Sign produces has
// s <= floor(N/2).
func TestSignatureIsLowS(t *testing.T) {
	for seed := byte(0); seed < 20; seed++ {
		priv := mustPrivKey(t, seed)
		digest := digestOf("low-s check")
		sig, err := Sign(priv, digest)
		if err != nil {
			t.Fatalf("seed %d: Sign: %v", seed, err)
		}
		s := sig.S()
		if s.IsOverHalfOrder() {
			t.Fatalf("seed %d: signature s exceeds floor(N/2)", seed)
		}
	}
}

// TestTamperedSignatureFailsVerify is property 2: flipping any single bit
// of the signature or the digest must invalidate it.
func TestTamperedSignatureFailsVerify(t *testing.T) {
	priv := mustPrivKey(t, 3)
	pub := FromPrivateKey(priv, true)
	digest := digestOf("do not tamper with me")

	sig, err := Sign(priv, digest)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if !Verify(digest, sig, pub) {
		t.Fatal("baseline signature failed to verify before tampering")
	}

	tamperedDigest := append([]byte(nil), digest...)
	tamperedDigest[0] ^= 0x01
	if Verify(tamperedDigest, sig, pub) {
		t.Fatal("Verify accepted a signature against a tampered digest")
	}

	r := sig.R()
	rBytes := r.Bytes()
	rBytes[0] ^= 0x01
	var tamperedR ModNScalar
	tamperedR.SetBytes(&rBytes)
	tamperedSig := NewSignature(&tamperedR, &sig.s)
	if Verify(digest, tamperedSig, pub) {
		t.Fatal("Verify accepted a signature with a tampered R")
	}
}

// TestRecoverPublicKey is property 5: recovering the signer's public key
// from a signature produced with a recovery code reproduces the original
// key.
func TestRecoverPublicKey(t *testing.T) {
	priv := mustPrivKey(t, 4)
	pub := FromPrivateKey(priv, true)
	digest := digestOf("recover me")

	sig, err := Sign(priv, digest)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if err := sig.CalcRecovery(digest, pub); err != nil {
		t.Fatalf("CalcRecovery: %v", err)
	}

	recovered, err := sig.RecoverPublicKey(digest)
	if err != nil {
		t.Fatalf("RecoverPublicKey: %v", err)
	}
	if !recovered.IsEqual(pub) {
		t.Fatalf("recovered public key does not match original:\nwant: %x\ngot:  %x",
			pub.Serialize(), recovered.Serialize())
	}
}

// TestCalcRecoveryFindsValidCode is property 6: after CalcRecovery, the
// stored recovery code is in {0,1,2,3} and sig2pubkey reproduces the
// expected key.
func TestCalcRecoveryFindsValidCode(t *testing.T) {
	for seed := byte(0); seed < 10; seed++ {
		priv := mustPrivKey(t, seed+50)
		pub := FromPrivateKey(priv, seed%2 == 0)
		digest := digestOf("calc recovery")

		sig, err := Sign(priv, digest)
		if err != nil {
			t.Fatalf("seed %d: Sign: %v", seed, err)
		}
		if err := sig.CalcRecovery(digest, pub); err != nil {
			t.Fatalf("seed %d: CalcRecovery: %v", seed, err)
		}
		if sig.RecoveryCode() > 3 {
			t.Fatalf("seed %d: recovery code %d out of range", seed, sig.RecoveryCode())
		}
		recovered, err := sig2pubkey(&sig.r, &sig.s, sig.RecoveryCode(), digest, BigEndian)
		if err != nil {
			t.Fatalf("seed %d: sig2pubkey: %v", seed, err)
		}
		if !recovered.IsEqual(pub) {
			t.Fatalf("seed %d: sig2pubkey(recovery code) != expected pubkey", seed)
		}
		if sig.IsCompressed() != pub.IsCompressed() {
			t.Fatalf("seed %d: CalcRecovery did not record the expected compressed flag", seed)
		}
	}
}

// IsCompressed is a small test-only accessor; Signature otherwise keeps the
// flag private and only exposes it through RecoverPublicKey.
func (sig *Signature) IsCompressed() bool { return sig.compressed }

// TestCalcRecoveryExhausted ensures CalcRecovery reports
// ErrRecoveryExhausted when no recovery code reproduces the expected key
// (here, a key that has nothing to do with the signature).
func TestCalcRecoveryExhausted(t *testing.T) {
	priv := mustPrivKey(t, 5)
	digest := digestOf("mismatched key")
	sig, err := Sign(priv, digest)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	other := mustPrivKey(t, 6)
	otherPub := FromPrivateKey(other, true)

	err = sig.CalcRecovery(digest, otherPub)
	if err == nil {
		t.Fatal("CalcRecovery unexpectedly succeeded against an unrelated public key")
	}
	if !bytes.Contains([]byte(err.Error()), []byte("Unable to find valid recovery factor")) {
		t.Fatalf("unexpected error message: %v", err)
	}
}

// TestSignRejectsWrongDigestLength checks the DigestShape failure mode from
// spec.md §7.
func TestSignRejectsWrongDigestLength(t *testing.T) {
	priv := mustPrivKey(t, 7)
	if _, err := Sign(priv, make([]byte, 31)); err == nil {
		t.Fatal("Sign accepted a 31-byte digest")
	}
	if _, err := Sign(priv, make([]byte, 33)); err == nil {
		t.Fatal("Sign accepted a 33-byte digest")
	}
}

// TestSignRejectsMissingKey checks the PrivateKeyMissing failure mode from
// spec.md §7.
func TestSignRejectsMissingKey(t *testing.T) {
	if _, err := Sign(nil, digestOf("no key here")); err == nil {
		t.Fatal("Sign accepted a nil private key")
	}
}

// TestSignEndianRoundTrip checks spec.md §4.2's "e <- integer(h, configured
// endianness)" requirement: signing and verifying under the same explicit
// endianness round-trips, and a little-endian digest (one that isn't
// byte-palindromic) produces a different signature than the same bytes read
// big-endian.
func TestSignEndianRoundTrip(t *testing.T) {
	priv := mustPrivKey(t, 8)
	pub := FromPrivateKey(priv, true)
	digest := digestOf("endian-sensitive digest")

	sigBE, err := SignEndian(priv, digest, BigEndian)
	if err != nil {
		t.Fatalf("SignEndian(BigEndian): %v", err)
	}
	if !VerifyEndian(digest, sigBE, pub, BigEndian) {
		t.Fatal("VerifyEndian(BigEndian) rejected a signature produced with BigEndian")
	}
	if VerifyEndian(digest, sigBE, pub, LittleEndian) {
		t.Fatal("VerifyEndian(LittleEndian) accepted a signature produced with BigEndian")
	}

	sigLE, err := SignEndian(priv, digest, LittleEndian)
	if err != nil {
		t.Fatalf("SignEndian(LittleEndian): %v", err)
	}
	if !VerifyEndian(digest, sigLE, pub, LittleEndian) {
		t.Fatal("VerifyEndian(LittleEndian) rejected a signature produced with LittleEndian")
	}
	if sigBE.IsEqual(sigLE) {
		t.Fatal("SignEndian produced the same signature for BigEndian and LittleEndian over a non-palindromic digest")
	}
}
