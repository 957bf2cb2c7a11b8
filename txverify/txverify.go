// Copyright (c) 2013-2022 The btccore developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package txverify implements spec.md §4.3's transaction verifier (C5): a
// context-free sanity pass over a transaction's shape, followed by
// per-input script verification delegated to an external collaborator
// (C6, the script interpreter). Neither the script interpreter nor the
// concrete transaction type live in this package; both are named here only
// as interfaces (§6), so that this package stays exactly what spec.md
// scopes it to be.
package txverify

import (
	"encoding/hex"
	"fmt"
)

// Tx is the subset of transaction behavior the verifier needs. A concrete
// transaction type (see package tx) implements it.
type Tx interface {
	Inputs() []TxIn
	Outputs() []TxOut
	IsCoinbase() bool
	SerializeSize() int
	Sighash(hashType uint32, nin int, subscript []byte) [32]byte
}

// TxIn is a single transaction input as seen by the verifier.
type TxIn interface {
	PrevTxHash() [32]byte
	PrevOutIndex() uint32
	SignatureScript() []byte
	IsNull() bool
}

// TxOut is a single transaction output as seen by the verifier.
type TxOut interface {
	Value() int64
	PubKeyScript() []byte
}

// Output is a previously spent output as returned by a UTXOSource lookup.
type Output struct {
	Value        int64
	PubKeyScript []byte
}

// UTXOSource is the read-only UTXO lookup contract from spec.md §3/§6. A
// missing entry is treated by VerifyStr as a verification failure, never
// as a programming error.
type UTXOSource interface {
	Get(txHash [32]byte, outIndex uint32) (Output, bool)
}

// ScriptVerifier is the script-interpreter contract from spec.md §6 (C6).
// It evaluates scriptSig against scriptPubKey in the context of tx's nin'th
// input, honoring whatever consensus flags the interpreter recognizes.
// This package does not prescribe how it calls back into Tx.Sighash or an
// ECDSA engine to do so.
type ScriptVerifier interface {
	Verify(scriptSig, scriptPubKey []byte, tx Tx, nin int, flags uint32) bool
}

// Params carries the two network constants spec.md §3/§6 name as supplied
// by an external Block/Tx collaborator rather than defined here.
type Params struct {
	MaxBlockSize int64
	MaxMoney     int64
}

// DefaultParams returns Bitcoin mainnet's MaxBlockSize/MaxMoney, so the
// verifier is usable standalone. Callers validating against a different
// network (testnet, regtest) supply their own Params.
func DefaultParams() Params {
	return Params{
		MaxBlockSize: 1000000,
		MaxMoney:     21000000 * 100000000,
	}
}

// coinbaseScriptMin and coinbaseScriptMax bound a coinbase transaction's
// sole input script, per spec.md §4.3 item 6.
const (
	coinbaseScriptMin = 2
	coinbaseScriptMax = 100
)

// nullOutIndex is the sentinel previous-output index (alongside an
// all-zero previous-tx hash) that marks a coinbase-style "null input".
const nullOutIndex = 0xFFFFFFFF

// CheckStr performs spec.md §4.3's context-free sanity checks and returns
// the first violation found, in the canonical order specified, or the
// empty string if tx passes all of them.
func CheckStr(tx Tx, params Params) string {
	inputs := tx.Inputs()
	outputs := tx.Outputs()

	if len(inputs) == 0 {
		return "trasaction has no inputs"
	}
	if len(outputs) == 0 {
		return "tranasction has no outputs"
	}
	if int64(tx.SerializeSize()) > params.MaxBlockSize {
		return "transaction size exceeds maximum block size"
	}

	var total int64
	for i, out := range outputs {
		if out.Value() < 0 {
			return fmt.Sprintf("transaction output %d has negative value", i)
		}
		if out.Value() > params.MaxMoney {
			return fmt.Sprintf("transaction output %d value exceeds max money", i)
		}
		total += out.Value()
		if total > params.MaxMoney {
			return fmt.Sprintf("transaction output %d total value exceeds max money", i)
		}
	}

	seen := make(map[string]struct{}, len(inputs))
	for i, in := range inputs {
		prevHash := in.PrevTxHash()
		fp := hex.EncodeToString(prevHash[:]) + ":" + fmt.Sprint(in.PrevOutIndex())
		if _, dup := seen[fp]; dup {
			return fmt.Sprintf("transaction input %d duplicate input", i)
		}
		seen[fp] = struct{}{}
	}

	if tx.IsCoinbase() {
		scriptLen := len(inputs[0].SignatureScript())
		if scriptLen < coinbaseScriptMin || scriptLen > coinbaseScriptMax {
			return fmt.Sprintf("coinbase script length %d out of range [%d, %d]",
				scriptLen, coinbaseScriptMin, coinbaseScriptMax)
		}
		return ""
	}

	for i, in := range inputs {
		if in.IsNull() {
			return fmt.Sprintf("transaction input %d is a null input in a non-coinbase transaction", i)
		}
	}
	return ""
}

// VerifyStr evaluates each input's scriptSig against its referenced
// output's scriptPubKey, in ascending index order, and returns a
// description of the first failure or the empty string if every input
// verifies. A missing UTXO lookup is treated as a fatal failure for that
// input, per spec.md §3/§6.
func VerifyStr(tx Tx, utxo UTXOSource, verifier ScriptVerifier, flags uint32) string {
	for i, in := range tx.Inputs() {
		prevOut, ok := utxo.Get(in.PrevTxHash(), in.PrevOutIndex())
		if !ok {
			return fmt.Sprintf("input %d references a missing or already-spent output", i)
		}
		if !verifier.Verify(in.SignatureScript(), prevOut.PubKeyScript, tx, i, flags) {
			return fmt.Sprintf("input %d failed script verify", i)
		}
	}
	return ""
}

// Verify reports whether tx passes both CheckStr and VerifyStr, i.e. the
// full contract of spec.md §4.3's verify(tx, utxoMap, flags).
func Verify(tx Tx, utxo UTXOSource, verifier ScriptVerifier, params Params, flags uint32) bool {
	if CheckStr(tx, params) != "" {
		return false
	}
	return VerifyStr(tx, utxo, verifier, flags) == ""
}

// MapUTXOSource is a simple read-only in-memory UTXOSource backed by a Go
// map, suitable as the caller-supplied UTXO snapshot spec.md §5 requires to
// remain unmodified for the duration of a single Verify call.
type MapUTXOSource map[[32]byte]map[uint32]Output

// Get implements UTXOSource.
func (m MapUTXOSource) Get(txHash [32]byte, outIndex uint32) (Output, bool) {
	byIndex, ok := m[txHash]
	if !ok {
		return Output{}, false
	}
	out, ok := byIndex[outIndex]
	return out, ok
}

// Put records prevOut as spendable at (txHash, outIndex). It exists to make
// MapUTXOSource convenient to populate in tests and small standalone
// callers; it is not part of the read-only contract Verify itself relies
// on (UTXOSource.Get is all that's required).
func (m MapUTXOSource) Put(txHash [32]byte, outIndex uint32, out Output) {
	byIndex, ok := m[txHash]
	if !ok {
		byIndex = make(map[uint32]Output)
		m[txHash] = byIndex
	}
	byIndex[outIndex] = out
}

// NewMapUTXOSource returns an empty MapUTXOSource ready for Put calls.
func NewMapUTXOSource() MapUTXOSource {
	return make(MapUTXOSource)
}

// SighashAll, SighashNone, SighashSingle and SighashAnyOneCanPay are the
// legacy signature hash type bits a Tx.Sighash implementation is expected
// to honor (§4.3's collaborator contract names the SIGHASH_SINGLE case
// explicitly; the others are listed here for any ScriptVerifier that needs
// to construct a hashType to pass through).
const (
	SighashAll          = 0x1
	SighashNone         = 0x2
	SighashSingle       = 0x3
	SighashAnyOneCanPay = 0x80
)
