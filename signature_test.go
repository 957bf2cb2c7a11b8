// Copyright (c) 2013-2022 The btccore developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secp256k1

import (
	"errors"
	"testing"
)

// TestDERSignatureRoundTrip ensures Serialize/ParseDERSignature round-trip
// a freshly produced, low-S-normalized signature.
func TestDERSignatureRoundTrip(t *testing.T) {
	priv := mustPrivKey(t, 30)
	digest := digestOf("der round trip")

	sig, err := Sign(priv, digest)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	der := sig.Serialize()
	parsed, err := ParseDERSignature(der)
	if err != nil {
		t.Fatalf("ParseDERSignature: %v", err)
	}
	if !sig.IsEqual(parsed) {
		t.Fatal("DER round trip produced a different signature")
	}
}

// TestParseDERSignatureRejectsMalformed exercises a handful of the
// malformed-signature error paths spec.md §7 calls ScalarOutOfRange /
// structural codec failures.
func TestParseDERSignatureRejectsMalformed(t *testing.T) {
	tests := []struct {
		name string
		sig  []byte
		want ErrorKind
	}{
		{"empty", nil, ErrSigTooShort},
		{"wrong sequence id", []byte{0x00, 0x06, 0x02, 0x01, 0x01, 0x02, 0x01, 0x01}, ErrSigInvalidSeqID},
		{"bad data length", []byte{0x30, 0x00, 0x02, 0x01, 0x01, 0x02, 0x01, 0x01}, ErrSigInvalidDataLen},
	}
	for _, tc := range tests {
		_, err := ParseDERSignature(tc.sig)
		if err == nil {
			t.Errorf("%s: expected an error, got none", tc.name)
			continue
		}
		var sigErr Error
		if !errors.As(err, &sigErr) {
			t.Errorf("%s: error is not an Error: %v", tc.name, err)
			continue
		}
		if sigErr.Err != tc.want {
			t.Errorf("%s: got error kind %v, want %v", tc.name, sigErr.Err, tc.want)
		}
	}
}

// TestCompactSignatureRoundTrip exercises SignCompact/RecoverCompact, the
// wire form spec.md §6 names for the recovery byte.
func TestCompactSignatureRoundTrip(t *testing.T) {
	priv := mustPrivKey(t, 31)
	digest := digestOf("compact round trip")

	for _, compressed := range []bool{true, false} {
		compact, err := SignCompact(priv, digest, compressed)
		if err != nil {
			t.Fatalf("compressed=%v: SignCompact: %v", compressed, err)
		}
		pub, wasCompressed, err := RecoverCompact(compact, digest)
		if err != nil {
			t.Fatalf("compressed=%v: RecoverCompact: %v", compressed, err)
		}
		if wasCompressed != compressed {
			t.Fatalf("compressed=%v: RecoverCompact reported wasCompressed=%v", compressed, wasCompressed)
		}
		want := FromPrivateKey(priv, compressed)
		if !pub.IsEqual(want) {
			t.Fatalf("compressed=%v: RecoverCompact recovered the wrong key", compressed)
		}
	}
}
