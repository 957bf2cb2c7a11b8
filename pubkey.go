// Copyright (c) 2013-2022 The btccore developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secp256k1

// PublicKey is a secp256k1 public key: a curve point together with the
// serialization flag spec.md's data model calls for. The flag never
// changes the point's semantics, only which SEC1 form Serialize()
// produces.
type PublicKey struct {
	x, y       FieldVal
	compressed bool
}

// pubKeyFormatHybridOdd identifies a hybrid-encoded public key (§4.1, §6)
// whose embedded Y is odd; pubKeyFormatHybridEven the even counterpart.
// pubKeyFormatUncompressed and pubKeyFormatCompressedEven/Odd are the
// standard SEC1 prefixes.
const (
	pubKeyFormatUncompressed = 0x04
	pubKeyFormatCompressedEven = 0x02
	pubKeyFormatCompressedOdd  = 0x03
	pubKeyFormatHybridEven     = 0x06
	pubKeyFormatHybridOdd      = 0x07
)

// NewPublicKey instantiates a new public key from the given X and Y
// coordinates. The key defaults to the compressed serialization form;
// use SetCompressed to change it.
func NewPublicKey(x, y *FieldVal) *PublicKey {
	pk := &PublicKey{compressed: true}
	pk.x.Set(x).Normalize()
	pk.y.Set(y).Normalize()
	return pk
}

// FromPrivateKey computes the public key point = privkey*G for the given
// private scalar, per spec.md §3 PublicKey's construction-from-scalar
// lifecycle.
func FromPrivateKey(priv *PrivateKey, compressed bool) *PublicKey {
	var q JacobianPoint
	ScalarBaseMultNonConst(&priv.key, &q)
	q.ToAffine()
	pk := NewPublicKey(&q.X, &q.Y)
	pk.compressed = compressed
	return pk
}

// SetCompressed overrides the key's serialization flag and returns the
// key for chaining.
func (p *PublicKey) SetCompressed(compressed bool) *PublicKey {
	p.compressed = compressed
	return p
}

// IsCompressed reports the key's serialization flag.
func (p *PublicKey) IsCompressed() bool {
	return p.compressed
}

// X returns the public key's X coordinate.
func (p *PublicKey) X() FieldVal { return p.x }

// Y returns the public key's Y coordinate.
func (p *PublicKey) Y() FieldVal { return p.y }

// AsJacobian fills result with p's coordinates in (affine-as-Jacobian,
// Z=1) form for use with the curve operations in curve.go.
func (p *PublicKey) AsJacobian(result *JacobianPoint) {
	result.X.Set(&p.x)
	result.Y.Set(&p.y)
	result.Z.SetInt(1)
}

// IsEqual reports whether p and other represent the same curve point,
// ignoring the serialization flag.
func (p *PublicKey) IsEqual(other *PublicKey) bool {
	if other == nil {
		return false
	}
	return p.x.Equals(&other.x) && p.y.Equals(&other.y)
}

// Validate implements spec.md §4.1's validity predicate: a public key is
// invalid if its point is at infinity, equals (0, 0), or fails the curve
// equation.
func (p *PublicKey) Validate() error {
	x := new(FieldVal).Set(&p.x).Normalize()
	y := new(FieldVal).Set(&p.y).Normalize()
	if x.IsZero() && y.IsZero() {
		return makeError(ErrPubKeyIsInfinity, "public key is the point at infinity or (0, 0)")
	}
	if !isOnCurve(x, y) {
		return makeError(ErrPubKeyNotOnCurve, "public key point is not on the secp256k1 curve")
	}
	return nil
}

// Serialize encodes p per spec.md §4.1/§6 using p's stored compressed
// flag: 0x04||X||Y when uncompressed, 0x02|0x03||X when compressed.
func (p *PublicKey) Serialize() []byte {
	if p.compressed {
		return p.SerializeCompressed()
	}
	return p.SerializeUncompressed()
}

// SerializeUncompressed encodes p as 0x04 || X(32) || Y(32).
func (p *PublicKey) SerializeUncompressed() []byte {
	b := make([]byte, 65)
	b[0] = pubKeyFormatUncompressed
	x := p.x
	y := p.y
	x.PutBytesUnchecked(b[1:33])
	y.PutBytesUnchecked(b[33:65])
	return b
}

// SerializeCompressed encodes p as 0x02|0x03 || X(32), the prefix
// encoding the parity of Y (0x02 = even).
func (p *PublicKey) SerializeCompressed() []byte {
	b := make([]byte, 33)
	y := p.y
	if y.IsOdd() {
		b[0] = pubKeyFormatCompressedOdd
	} else {
		b[0] = pubKeyFormatCompressedEven
	}
	x := p.x
	x.PutBytesUnchecked(b[1:33])
	return b
}

// ParsePubKey decodes a SEC1-encoded public key per spec.md §4.1's DER
// decode rules:
//
//   - 0x04: 65 bytes, uncompressed.
//   - 0x02/0x03: 33 bytes, compressed (prefix encodes Y parity).
//   - 0x06/0x07: 65 bytes, "hybrid" — accepted only when strict is false.
//
// Any other prefix or a length mismatch for the given prefix is a
// CodecError (ErrPubKeyInvalidLen/ErrPubKeyInvalidFormat). When the
// decoded point fails Validate, that error is returned instead.
//
// strict has no default; every caller passes it. It is taken at face
// value: false accepts the hybrid prefixes, true rejects them. This
// resolves the §9 open question rather than replicating the source's
// documented strict/non-strict inversion.
func ParsePubKey(serialized []byte, strict bool) (*PublicKey, error) {
	if len(serialized) == 0 {
		return nil, codecErrorf(ErrPubKeyInvalidLen, "empty public key")
	}

	format := serialized[0]
	switch format {
	case pubKeyFormatUncompressed, pubKeyFormatHybridEven, pubKeyFormatHybridOdd:
		if format != pubKeyFormatUncompressed && strict {
			return nil, codecErrorf(ErrPubKeyInvalidFormat,
				"hybrid public key format %#x rejected in strict mode", format)
		}
		if len(serialized) != 65 {
			return nil, codecErrorf(ErrPubKeyInvalidLen,
				"invalid pubkey length %d for format %#x, want 65", len(serialized), format)
		}
		var x, y FieldVal
		if x.SetByteSlice(serialized[1:33]) {
			return nil, codecErrorf(ErrPubKeyXTooBig, "public key X coordinate is not canonical")
		}
		if y.SetByteSlice(serialized[33:65]) {
			return nil, codecErrorf(ErrPubKeyYTooBig, "public key Y coordinate is not canonical")
		}
		pk := NewPublicKey(&x, &y).SetCompressed(false)
		if err := pk.Validate(); err != nil {
			return nil, err
		}
		return pk, nil

	case pubKeyFormatCompressedEven, pubKeyFormatCompressedOdd:
		if len(serialized) != 33 {
			return nil, codecErrorf(ErrPubKeyInvalidLen,
				"invalid pubkey length %d for format %#x, want 33", len(serialized), format)
		}
		var x FieldVal
		if x.SetByteSlice(serialized[1:33]) {
			return nil, codecErrorf(ErrPubKeyXTooBig, "public key X coordinate is not canonical")
		}
		oddY := format == pubKeyFormatCompressedOdd
		var y FieldVal
		if !DecompressY(&x, oddY, &y) {
			return nil, makeError(ErrPubKeyNotOnCurve, "public key X coordinate is not on the curve")
		}
		pk := NewPublicKey(&x, &y).SetCompressed(true)
		if err := pk.Validate(); err != nil {
			return nil, err
		}
		return pk, nil

	default:
		return nil, codecErrorf(ErrPubKeyInvalidFormat, "unknown public key format %#x", format)
	}
}

// IsCanonicalPubKeyEncoding implements spec.md §4.1's canonical-encoding
// predicate: true iff the length/prefix pair matches {0x04, 65} or
// {0x02|0x03, 33}. Hybrid prefixes, regardless of length, fail.
func IsCanonicalPubKeyEncoding(serialized []byte) bool {
	if len(serialized) == 0 {
		return false
	}
	switch serialized[0] {
	case pubKeyFormatUncompressed:
		return len(serialized) == 65
	case pubKeyFormatCompressedEven, pubKeyFormatCompressedOdd:
		return len(serialized) == 33
	default:
		return false
	}
}

// fastBufferLen is the size of the internal worker-boundary transport form:
// 1 flag byte plus the 65-byte uncompressed DER encoding. An empty buffer
// denotes "unset".
const fastBufferLen = 66

// ToFastBuffer encodes p using the internal worker-boundary transport
// form described in spec.md §4.1: a single prefix byte (0 or 1 for the
// compressed flag) followed by the uncompressed 65-byte DER encoding.
func (p *PublicKey) ToFastBuffer() []byte {
	buf := make([]byte, fastBufferLen)
	if p.compressed {
		buf[0] = 1
	}
	copy(buf[1:], p.SerializeUncompressed())
	return buf
}

// FromFastBuffer decodes the internal transport form produced by
// ToFastBuffer. An empty slice denotes "unset" and yields (nil, nil).
func FromFastBuffer(buf []byte) (*PublicKey, error) {
	if len(buf) == 0 {
		return nil, nil
	}
	if len(buf) != fastBufferLen {
		return nil, codecErrorf(ErrPubKeyInvalidLen,
			"invalid fast-buffer length %d, want %d", len(buf), fastBufferLen)
	}
	pk, err := ParsePubKey(buf[1:], true)
	if err != nil {
		return nil, err
	}
	pk.compressed = buf[0] == 1
	return pk, nil
}
