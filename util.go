// Copyright (c) 2013-2022 The btccore developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secp256k1

// zeroArray32 sets all bytes in the passed 32-byte array to zero, used to
// scrub sensitive material such as private key bytes from memory once they
// are no longer needed.
func zeroArray32(b *[32]byte) {
	for i := range b {
		b[i] = 0
	}
}

// reverseBytes returns a reversed copy of b. It backs ModNScalar's
// little-endian digest interpretation (spec.md §4.2's "configured
// endianness" requirement).
func reverseBytes(b []byte) []byte {
	out := make([]byte, len(b))
	for i, v := range b {
		out[len(b)-1-i] = v
	}
	return out
}
