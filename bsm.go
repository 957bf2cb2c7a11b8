// Copyright (c) 2013-2022 The btccore developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secp256k1

import (
	"bytes"
	"crypto/sha256"
	"encoding/base64"
	"encoding/binary"
)

// bsmMagic is prepended to every Bitcoin Signed Message before hashing, so
// that a signature over a message can never be replayed as a signature over
// a raw transaction digest or vice versa.
const bsmMagic = "Bitcoin Signed Message:\n"

// writeVarInt appends v to buf using the Bitcoin variable-length integer
// encoding.
func writeVarInt(buf *bytes.Buffer, v uint64) {
	switch {
	case v < 0xfd:
		buf.WriteByte(byte(v))
	case v <= 0xffff:
		var b [2]byte
		binary.LittleEndian.PutUint16(b[:], uint16(v))
		buf.WriteByte(0xfd)
		buf.Write(b[:])
	case v <= 0xffffffff:
		var b [4]byte
		binary.LittleEndian.PutUint32(b[:], uint32(v))
		buf.WriteByte(0xfe)
		buf.Write(b[:])
	default:
		var b [8]byte
		binary.LittleEndian.PutUint64(b[:], v)
		buf.WriteByte(0xff)
		buf.Write(b[:])
	}
}

// messageDigest computes the double-SHA256 digest of a Bitcoin Signed
// Message: the magic prefix (itself length-prefixed as a single byte, since
// it is always under 0xfd bytes long), followed by the message's own
// varint-prefixed length and bytes.
func messageDigest(message string) [32]byte {
	var buf bytes.Buffer
	buf.WriteByte(byte(len(bsmMagic)))
	buf.WriteString(bsmMagic)
	writeVarInt(&buf, uint64(len(message)))
	buf.WriteString(message)
	first := sha256.Sum256(buf.Bytes())
	return sha256.Sum256(first[:])
}

// SignMessage produces a Bitcoin Signed Message compact signature over
// message, base64-encoded per spec.md §6's recovery-byte convention (a
// single leading byte 27+recovery+(4 if compressed) followed by R and S).
func SignMessage(key *PrivateKey, message string, compressed bool) (string, error) {
	digest := messageDigest(message)
	compact, err := SignCompact(key, digest[:], compressed)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(compact), nil
}

// RecoverMessageSigner recovers the public key that produced sigBase64 over
// message, along with whether the recovered key should be serialized in
// compressed form. It fails if sigBase64 is not valid base64, is not a
// 65-byte compact signature once decoded, or does not recover to a valid
// public key.
func RecoverMessageSigner(sigBase64 string, message string) (*PublicKey, bool, error) {
	raw, err := base64.StdEncoding.DecodeString(sigBase64)
	if err != nil {
		return nil, false, codecErrorf(ErrSigInvalidLen, "malformed base64 signature: %v", err)
	}
	digest := messageDigest(message)
	return RecoverCompact(raw, digest[:])
}

// VerifyMessage reports whether sigBase64 is a valid Bitcoin Signed Message
// signature over message by pubKey. Address encoding/decoding is out of
// scope for this package (spec.md §1's non-goal on address encoding), so
// verification compares directly against the caller-supplied public key
// rather than an address string.
func VerifyMessage(sigBase64 string, message string, pubKey *PublicKey) bool {
	recovered, _, err := RecoverMessageSigner(sigBase64, message)
	if err != nil {
		return false
	}
	return recovered.IsEqual(pubKey)
}
