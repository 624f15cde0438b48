package wallet

import (
	"bytes"
	"fmt"

	"github.com/btcsuite/btcd/wire"
	"github.com/shopspring/decimal"
)

// TxLookup resolves a transaction id to its raw hex. It is the minimal
// contract the fee-bump engine needs to recover the values and scripts
// of the outputs a transaction spends. Satisfied by explorer.Service.
type TxLookup interface {
	GetTransactionHex(txid string) (string, error)
}

// CreateRBFTransactionOpts is the struct given to CreateRBFTransaction method
type CreateRBFTransactionOpts struct {
	TxHex              string
	TargetSatsPerVByte decimal.Decimal
	WalletScripts      [][]byte
	Lookup             TxLookup
}

func (o CreateRBFTransactionOpts) validate() error {
	if len(o.TxHex) <= 0 {
		return ErrNullTxHex
	}
	if _, err := NewTxFromHex(o.TxHex); err != nil {
		return err
	}
	if o.Lookup == nil {
		return ErrNullTxLookup
	}
	if o.TargetSatsPerVByte.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidFeeRate
	}
	return nil
}

// CreateRBFTransaction builds an unsigned replacement for the given
// transaction paying the target fee rate, per BIP125. The fee increase is
// absorbed by the wallet-owned change output, identified as the first
// output locked by one of the given wallet scripts, or assumed to be the
// last output when none matches. The returned transaction must be signed
// again since the replacement invalidates all existing signatures.
func CreateRBFTransaction(opts CreateRBFTransactionOpts) (string, error) {
	if err := opts.validate(); err != nil {
		return "", err
	}

	tx, _ := NewTxFromHex(opts.TxHex)

	rbfEnabled := false
	for _, in := range tx.TxIn {
		if in.Sequence < SequenceRbfThreshold {
			rbfEnabled = true
			break
		}
	}
	if !rbfEnabled {
		return "", ErrRbfNotEnabled
	}

	prevouts, err := fetchPrevouts(tx, opts.Lookup)
	if err != nil {
		return "", err
	}

	totalIn := uint64(0)
	for _, prevout := range prevouts {
		totalIn += prevout.value
	}
	totalOut := uint64(0)
	for _, out := range tx.TxOut {
		totalOut += uint64(out.Value)
	}
	if totalIn < totalOut {
		return "", ErrInsufficientFunds
	}
	originalFee := totalIn - totalOut

	newSize := EstimateTxSize(inputScriptTypes(prevouts), len(tx.TxOut))
	newFee := EstimateFeeAmount(newSize, opts.TargetSatsPerVByte)
	if newFee <= originalFee {
		return "", ErrInsufficientFeeBump
	}
	feeDelta := newFee - originalFee

	if len(tx.TxOut) <= 0 {
		return "", ErrCannotBumpFee
	}
	changeIndex := len(tx.TxOut) - 1
	for i, out := range tx.TxOut {
		if isWalletScript(out.PkScript, opts.WalletScripts) {
			changeIndex = i
			break
		}
	}

	changeValue := uint64(tx.TxOut[changeIndex].Value)
	if changeValue < feeDelta {
		return "", ErrInsufficientFunds
	}
	if newValue := changeValue - feeDelta; newValue >= DustLimit {
		tx.TxOut[changeIndex].Value = int64(newValue)
	} else {
		// under the dust limit the output is dropped and its remainder
		// absorbed into the fee
		tx.TxOut = append(tx.TxOut[:changeIndex], tx.TxOut[changeIndex+1:]...)
	}

	// the replacement reuses the same inputs but must be signed anew
	for _, in := range tx.TxIn {
		in.SignatureScript = nil
		in.Witness = nil
	}
	return TxToHex(tx)
}

func isWalletScript(script []byte, walletScripts [][]byte) bool {
	for _, s := range walletScripts {
		if bytes.Equal(script, s) {
			return true
		}
	}
	return false
}

// fetchPrevouts resolves the value and script of every output spent by
// the transaction through the given lookup service.
func fetchPrevouts(tx *wire.MsgTx, lookup TxLookup) ([]scriptToValue, error) {
	prevouts := make([]scriptToValue, 0, len(tx.TxIn))
	for i, in := range tx.TxIn {
		prevTxHex, err := lookup.GetTransactionHex(in.PreviousOutPoint.Hash.String())
		if err != nil {
			return nil, fmt.Errorf(
				"failed to retrieve previous tx for input %d: %v", i, err,
			)
		}
		prevTx, err := NewTxFromHex(prevTxHex)
		if err != nil {
			return nil, err
		}
		vout := int(in.PreviousOutPoint.Index)
		if vout >= len(prevTx.TxOut) {
			return nil, fmt.Errorf("input %d: %w", i, ErrMissingUnspent)
		}
		prevouts = append(prevouts, scriptToValue{
			script: prevTx.TxOut[vout].PkScript,
			value:  uint64(prevTx.TxOut[vout].Value),
		})
	}
	return prevouts, nil
}
