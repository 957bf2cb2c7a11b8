// Copyright (c) 2013-2022 The btccore developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package tx

import (
	"encoding/binary"

	"github.com/btcverifycore/btccore/txverify"
	"github.com/decred/dcrd/chaincfg/chainhash"
)

// Package-local aliases of package txverify's legacy signature hash types,
// used by Sighash below. They are unexported; callers building a hashType
// use the txverify constants.
const (
	sighashAll          = txverify.SighashAll
	sighashNone         = txverify.SighashNone
	sighashSingle       = txverify.SighashSingle
	sighashAnyOneCanPay = txverify.SighashAnyOneCanPay
)

// oneHash is the 32-byte little-endian encoding of the integer 1: the
// digest the SIGHASH_SINGLE bug returns when there is no matching output
// to hash, per spec.md §4.3.
var oneHash = func() [32]byte {
	var h [32]byte
	h[0] = 0x01
	return h
}()

// Sighash implements txverify.Tx.Sighash: the legacy pre-SegWit signature
// hash algorithm, including the SIGHASH_SINGLE bug (spec.md §4.3) — when
// hashType's low 5 bits select SIGHASH_SINGLE and nin is out of range for
// Outputs, the digest is oneHash rather than a computed hash.
func (t *Transaction) Sighash(hashType uint32, nin int, subscript []byte) [32]byte {
	// nin indexing an input outside the transaction is not a case
	// spec.md §4.3 defines (VerifyStr only ever calls Sighash for a valid
	// input index); this guard exists purely so an out-of-contract nin
	// fails closed with the same sentinel digest instead of panicking on
	// the t.Inputs[nin] access below. It is deliberately distinct from,
	// and checked before, the spec-mandated SIGHASH_SINGLE bug check that
	// follows.
	if nin < 0 || nin >= len(t.Inputs) {
		return oneHash
	}

	// This is the SIGHASH_SINGLE bug spec.md §4.3 requires preserved: a
	// valid input index with no corresponding output.
	baseType := hashType & 0x1f
	if baseType == sighashSingle && nin >= len(t.Outputs) {
		return oneHash
	}

	anyoneCanPay := hashType&sighashAnyOneCanPay != 0

	shallow := &Transaction{
		Version:  t.Version,
		LockTime: t.LockTime,
	}

	if anyoneCanPay {
		in := blank(t.Inputs[nin])
		in.Script = append([]byte(nil), subscript...)
		shallow.Inputs = []Input{in}
	} else {
		shallow.Inputs = make([]Input, len(t.Inputs))
		for i, in := range t.Inputs {
			blanked := blank(in)
			if i == nin {
				blanked.Script = append([]byte(nil), subscript...)
			}
			if (baseType == sighashNone || baseType == sighashSingle) && i != nin {
				blanked.Sequence = 0
			}
			shallow.Inputs[i] = blanked
		}
	}

	switch baseType {
	case sighashNone:
		shallow.Outputs = nil
	case sighashSingle:
		shallow.Outputs = make([]Output, nin+1)
		for i := range shallow.Outputs {
			if i == nin {
				shallow.Outputs[i] = t.Outputs[i]
				continue
			}
			shallow.Outputs[i] = Output{Val: -1}
		}
	default: // sighashAll and any unrecognized base type
		shallow.Outputs = append([]Output(nil), t.Outputs...)
	}

	serialized := shallow.Serialize()
	var hashTypeBuf [4]byte
	binary.LittleEndian.PutUint32(hashTypeBuf[:], hashType)
	serialized = append(serialized, hashTypeBuf[:]...)

	digest := chainhash.DoubleHashH(serialized)
	return [32]byte(digest)
}
