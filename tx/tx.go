// Copyright (c) 2013-2022 The btccore developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package tx implements spec.md's "[ADD] C7" reference wire transaction: a
// minimal legacy (pre-SegWit) Bitcoin transaction capable of being parsed,
// serialized, identified (ID), and sighashed, so that package txverify's
// C5 verifier has something concrete to drive in tests. It intentionally
// carries no script-execution logic of its own (that lives behind the
// txverify.ScriptVerifier interface) and no SegWit or transaction-builder
// support; both are out of scope per spec.md §1.
package tx

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/btcverifycore/btccore/txverify"
	"github.com/decred/dcrd/chaincfg/chainhash"
)

// Input is a single transaction input in wire order.
type Input struct {
	PrevHash  [32]byte
	PrevIndex uint32
	Script    []byte
	Sequence  uint32
}

// PrevTxHash implements txverify.TxIn.
func (in *Input) PrevTxHash() [32]byte { return in.PrevHash }

// PrevOutIndex implements txverify.TxIn.
func (in *Input) PrevOutIndex() uint32 { return in.PrevIndex }

// SignatureScript implements txverify.TxIn.
func (in *Input) SignatureScript() []byte { return in.Script }

// IsNull reports whether in is the coinbase's synthetic "null input": an
// all-zero previous-tx hash and a previous-output index of 0xFFFFFFFF.
func (in *Input) IsNull() bool {
	return in.PrevHash == [32]byte{} && in.PrevIndex == 0xFFFFFFFF
}

// Output is a single transaction output in wire order.
type Output struct {
	Val    int64
	Script []byte
}

// Value implements txverify.TxOut.
func (o *Output) Value() int64 { return o.Val }

// PubKeyScript implements txverify.TxOut.
func (o *Output) PubKeyScript() []byte { return o.Script }

// Transaction is a minimal legacy Bitcoin transaction.
type Transaction struct {
	Version  int32
	Inputs   []Input
	Outputs  []Output
	LockTime uint32
}

// TxIns returns tx's inputs as the txverify.TxIn interface slice the
// verifier's Tx.Inputs method requires.
func (t *Transaction) TxIns() []txverify.TxIn {
	out := make([]txverify.TxIn, len(t.Inputs))
	for i := range t.Inputs {
		out[i] = &t.Inputs[i]
	}
	return out
}

// Inputs implements txverify.Tx.
func (t *Transaction) Inputs() []txverify.TxIn {
	return t.TxIns()
}

// Outputs implements txverify.Tx.
func (t *Transaction) Outputs() []txverify.TxOut {
	out := make([]txverify.TxOut, len(t.Outputs))
	for i := range t.Outputs {
		out[i] = &t.Outputs[i]
	}
	return out
}

// IsCoinbase implements txverify.Tx: true iff tx has exactly one input and
// that input is the synthetic null input.
func (t *Transaction) IsCoinbase() bool {
	return len(t.Inputs) == 1 && t.Inputs[0].IsNull()
}

// SerializeSize implements txverify.Tx.
func (t *Transaction) SerializeSize() int {
	return len(t.Serialize())
}

// encodeVarInt appends v to buf using the Bitcoin variable-length integer
// encoding.
func encodeVarInt(buf *bytes.Buffer, v uint64) {
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

// decodeVarInt reads a Bitcoin variable-length integer from the front of
// data and reports how many bytes it consumed.
func decodeVarInt(data []byte) (value uint64, read int, err error) {
	if len(data) == 0 {
		return 0, 0, errors.New("tx: empty varint")
	}
	switch first := data[0]; {
	case first < 0xfd:
		return uint64(first), 1, nil
	case first == 0xfd:
		if len(data) < 3 {
			return 0, 0, errors.New("tx: truncated fd varint")
		}
		return uint64(binary.LittleEndian.Uint16(data[1:3])), 3, nil
	case first == 0xfe:
		if len(data) < 5 {
			return 0, 0, errors.New("tx: truncated fe varint")
		}
		return uint64(binary.LittleEndian.Uint32(data[1:5])), 5, nil
	default:
		if len(data) < 9 {
			return 0, 0, errors.New("tx: truncated ff varint")
		}
		return binary.LittleEndian.Uint64(data[1:9]), 9, nil
	}
}

// reverse32 returns a byte-reversed copy of a 32-byte array. Serialize and
// Parse use it so that Input.PrevHash holds the 32 previous-output hash
// bytes in the reverse of the order in which they appear on the wire.
func reverse32(h [32]byte) [32]byte {
	var out [32]byte
	for i := range h {
		out[i] = h[31-i]
	}
	return out
}

// Serialize encodes tx using the legacy (pre-SegWit) Bitcoin wire format:
// 4-byte little-endian version, varint input count, inputs (32-byte
// reversed previous-tx hash, 4-byte little-endian index, varint script
// length + script, 4-byte little-endian sequence), varint output count,
// outputs (8-byte little-endian value, varint script length + script),
// 4-byte little-endian locktime.
func (t *Transaction) Serialize() []byte {
	var buf bytes.Buffer

	var verBuf [4]byte
	binary.LittleEndian.PutUint32(verBuf[:], uint32(t.Version))
	buf.Write(verBuf[:])

	encodeVarInt(&buf, uint64(len(t.Inputs)))
	for _, in := range t.Inputs {
		reversed := reverse32(in.PrevHash)
		buf.Write(reversed[:])
		var idxBuf [4]byte
		binary.LittleEndian.PutUint32(idxBuf[:], in.PrevIndex)
		buf.Write(idxBuf[:])
		encodeVarInt(&buf, uint64(len(in.Script)))
		buf.Write(in.Script)
		var seqBuf [4]byte
		binary.LittleEndian.PutUint32(seqBuf[:], in.Sequence)
		buf.Write(seqBuf[:])
	}

	encodeVarInt(&buf, uint64(len(t.Outputs)))
	for _, out := range t.Outputs {
		var valBuf [8]byte
		binary.LittleEndian.PutUint64(valBuf[:], uint64(out.Val))
		buf.Write(valBuf[:])
		encodeVarInt(&buf, uint64(len(out.Script)))
		buf.Write(out.Script)
	}

	var lockBuf [4]byte
	binary.LittleEndian.PutUint32(lockBuf[:], t.LockTime)
	buf.Write(lockBuf[:])

	return buf.Bytes()
}

// Parse decodes a legacy-format transaction from raw wire bytes, the
// inverse of Serialize.
func Parse(raw []byte) (*Transaction, error) {
	if len(raw) < 10 {
		return nil, errors.New("tx: too short to be a transaction")
	}
	t := &Transaction{}
	offset := 0

	t.Version = int32(binary.LittleEndian.Uint32(raw[offset : offset+4]))
	offset += 4

	inCount, n, err := decodeVarInt(raw[offset:])
	if err != nil {
		return nil, fmt.Errorf("tx: input count: %w", err)
	}
	offset += n
	if inCount > uint64(len(raw)) {
		return nil, fmt.Errorf("tx: implausible input count %d", inCount)
	}

	t.Inputs = make([]Input, inCount)
	for i := range t.Inputs {
		if len(raw[offset:]) < 32 {
			return nil, fmt.Errorf("tx: truncated input %d hash", i)
		}
		var wireHash [32]byte
		copy(wireHash[:], raw[offset:offset+32])
		t.Inputs[i].PrevHash = reverse32(wireHash)
		offset += 32

		if len(raw[offset:]) < 4 {
			return nil, fmt.Errorf("tx: truncated input %d index", i)
		}
		t.Inputs[i].PrevIndex = binary.LittleEndian.Uint32(raw[offset : offset+4])
		offset += 4

		scriptLen, n, err := decodeVarInt(raw[offset:])
		if err != nil {
			return nil, fmt.Errorf("tx: input %d script length: %w", i, err)
		}
		offset += n
		if len(raw[offset:]) < int(scriptLen) {
			return nil, fmt.Errorf("tx: truncated input %d script", i)
		}
		t.Inputs[i].Script = append([]byte(nil), raw[offset:offset+int(scriptLen)]...)
		offset += int(scriptLen)

		if len(raw[offset:]) < 4 {
			return nil, fmt.Errorf("tx: truncated input %d sequence", i)
		}
		t.Inputs[i].Sequence = binary.LittleEndian.Uint32(raw[offset : offset+4])
		offset += 4
	}

	outCount, n, err := decodeVarInt(raw[offset:])
	if err != nil {
		return nil, fmt.Errorf("tx: output count: %w", err)
	}
	offset += n
	if outCount > uint64(len(raw)) {
		return nil, fmt.Errorf("tx: implausible output count %d", outCount)
	}

	t.Outputs = make([]Output, outCount)
	for i := range t.Outputs {
		if len(raw[offset:]) < 8 {
			return nil, fmt.Errorf("tx: truncated output %d value", i)
		}
		t.Outputs[i].Val = int64(binary.LittleEndian.Uint64(raw[offset : offset+8]))
		offset += 8

		scriptLen, n, err := decodeVarInt(raw[offset:])
		if err != nil {
			return nil, fmt.Errorf("tx: output %d script length: %w", i, err)
		}
		offset += n
		if len(raw[offset:]) < int(scriptLen) {
			return nil, fmt.Errorf("tx: truncated output %d script", i)
		}
		t.Outputs[i].Script = append([]byte(nil), raw[offset:offset+int(scriptLen)]...)
		offset += int(scriptLen)
	}

	if len(raw[offset:]) < 4 {
		return nil, errors.New("tx: truncated locktime")
	}
	t.LockTime = binary.LittleEndian.Uint32(raw[offset : offset+4])
	offset += 4

	return t, nil
}

// ID returns tx's double-SHA256 transaction hash. chainhash.Hash stores
// bytes in the same internal (little-endian) order Bitcoin itself uses
// when serializing a transaction hash as a previous-output reference;
// chainhash.Hash.String reverses that order for conventional display,
// matching the convention block explorers use.
func (t *Transaction) ID() chainhash.Hash {
	return chainhash.DoubleHashH(t.Serialize())
}

// blank returns a copy of in with its signature script cleared, used when
// building the modified transaction that Sighash hashes.
func blank(in Input) Input {
	in.Script = nil
	return in
}
