// Copyright (c) 2013-2014 The btcsuite developers
// Copyright (c) 2015-2020 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secp256k1

import (
	"crypto/rand"
)

// PrivateKey provides facilities for working with secp256k1 private keys within
// this package and includes functionality such as serializing and parsing them
// as well as computing their associated public key.
type PrivateKey struct {
	key ModNScalar
}

// NewPrivateKey instantiates a new private key from a scalar encoded as a
// big integer.
func NewPrivateKey(key *ModNScalar) *PrivateKey {
	return &PrivateKey{key: *key}
}

// PrivKeyFromBytes returns a private based on the provided byte slice which is
// interpreted as an unsigned 256-bit big-endian integer in the range [0, N-1],
// where N is the order of the curve.
//
// Note that a slice of any length is read in full as a big-endian integer and
// that value is reduced modulo N.  It is up to the caller to either
// provide a value in the appropriate range or choose to accept the described
// behavior.
//
// Typically callers should simply make use of GeneratePrivateKey when creating
// private keys which properly handles generation of appropriate values.
func PrivKeyFromBytes(privKeyBytes []byte) *PrivateKey {
	var d ModNScalar
	d.SetByteSlice(privKeyBytes)
	return NewPrivateKey(&d)
}

// GeneratePrivateKey returns a private key that is suitable for use with
// secp256k1, drawing uniformly from [1, N-1] by rejection sampling raw
// entropy against the group order.
func GeneratePrivateKey() (*PrivateKey, error) {
	var b [32]byte
	for {
		if _, err := rand.Read(b[:]); err != nil {
			return nil, err
		}
		var d ModNScalar
		overflow := d.SetByteSlice(b[:])
		if overflow || d.IsZero() {
			continue
		}
		return NewPrivateKey(&d), nil
	}
}

// PubKey computes and returns the public key corresponding to this private
// key, in its default (compressed) serialization form.
func (p *PrivateKey) PubKey() *PublicKey {
	return FromPrivateKey(p, true)
}

// Sign generates an ECDSA signature for the provided hash (which should be the
// result of hashing a larger message) using the private key. Produced signature
// is deterministic (same message and same key yield the same signature) and
// canonical in accordance with RFC6979 and BIP0062. The digest is read as a
// big-endian integer; use SignEndian to read it as little-endian instead.
func (p *PrivateKey) Sign(hash []byte) (*Signature, error) {
	return Sign(p, hash)
}

// SignEndian behaves like Sign but lets the caller choose the endianness
// used to interpret hash as the integer e, per spec.md §4.2.
func (p *PrivateKey) SignEndian(hash []byte, endian Endianness) (*Signature, error) {
	return SignEndian(p, hash, endian)
}

// PrivKeyBytesLen defines the length in bytes of a serialized private key.
const PrivKeyBytesLen = 32

// Serialize returns the private key as a 256-bit big-endian binary-encoded
// number, padded to a length of 32 bytes.
func (p PrivateKey) Serialize() []byte {
	privKeyBytes := p.key.Bytes()
	return privKeyBytes[:]
}

// Zero manually clears the memory associated with the private key, which can
// be used to explicitly clear key material from memory once it is no longer
// needed.
func (p *PrivateKey) Zero() {
	p.key.Zero()
}
