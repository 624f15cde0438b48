package wallet

import (
	"bytes"
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"

	"github.com/orangesats/orangesats-wallet/pkg/cryptoutil"
	"github.com/orangesats/orangesats-wallet/pkg/explorer"
	"github.com/orangesats/orangesats-wallet/pkg/scriptutil"
)

// SignTransactionOpts is the struct given to SignTransaction method
type SignTransactionOpts struct {
	TxHex             string
	Unspents          []explorer.Utxo
	DerivationPathMap map[string]string
	Network           *chaincfg.Params
}

func (o SignTransactionOpts) validate() error {
	if len(o.TxHex) <= 0 {
		return ErrNullTxHex
	}
	tx, err := NewTxFromHex(o.TxHex)
	if err != nil {
		return err
	}
	if o.Network == nil {
		return ErrNullNetwork
	}
	if len(o.Unspents) <= 0 {
		return ErrEmptyUnspents
	}

	prevouts, err := prevoutsForInputs(tx, o.Unspents)
	if err != nil {
		return err
	}
	for i, prevout := range prevouts {
		script := hex.EncodeToString(prevout.PkScript)
		path, ok := o.DerivationPathMap[script]
		if !ok {
			return fmt.Errorf(
				"input %d with script '%s': %w", i, script, ErrMissingDerivationPath,
			)
		}
		if _, err := ParseDerivationPath(path); err != nil {
			return fmt.Errorf(
				"invalid derivation path '%s' for script '%s': %v", path, script, err,
			)
		}
	}
	return nil
}

// SignTransaction signs all inputs of the given transaction using the
// keys derived with the help of the map script:derivation_path. The
// signing procedure for every input is selected by the script type of the
// previous output it spends.
func (w *Wallet) SignTransaction(opts SignTransactionOpts) (string, error) {
	if err := opts.validate(); err != nil {
		return "", err
	}
	if err := w.validate(); err != nil {
		return "", err
	}

	tx, _ := NewTxFromHex(opts.TxHex)
	prevouts, err := prevoutsForInputs(tx, opts.Unspents)
	if err != nil {
		return "", err
	}

	prvkeys := make([]*btcec.PrivateKey, 0, len(tx.TxIn))
	for _, prevout := range prevouts {
		path := opts.DerivationPathMap[hex.EncodeToString(prevout.PkScript)]
		prvkey, _, err := w.DeriveSigningKeyPair(DeriveSigningKeyPairOpts{
			DerivationPath: path,
			Network:        opts.Network,
		})
		if err != nil {
			return "", err
		}
		prvkeys = append(prvkeys, prvkey)
	}

	if err := signTxInputs(tx, prevouts, prvkeys); err != nil {
		return "", err
	}
	return TxToHex(tx)
}

// SignTransactionWithKeysOpts is the struct given to the
// SignTransactionWithKeys method
type SignTransactionWithKeysOpts struct {
	TxHex       string
	Unspents    []explorer.Utxo
	PrivateKeys [][]byte
}

func (o SignTransactionWithKeysOpts) validate() error {
	if len(o.TxHex) <= 0 {
		return ErrNullTxHex
	}
	tx, err := NewTxFromHex(o.TxHex)
	if err != nil {
		return err
	}
	// fail fast before any signing attempt
	if len(o.PrivateKeys) != len(tx.TxIn) {
		return ErrPrivateKeyMismatch
	}
	for _, prvkey := range o.PrivateKeys {
		if !cryptoutil.IsValidPrivateKey(prvkey) {
			return cryptoutil.ErrInvalidPrivateKey
		}
	}
	if len(o.Unspents) <= 0 {
		return ErrEmptyUnspents
	}
	return nil
}

// SignTransactionWithKeys signs all inputs of the given transaction with
// the provided private keys, one per input in input order.
func SignTransactionWithKeys(opts SignTransactionWithKeysOpts) (string, error) {
	if err := opts.validate(); err != nil {
		return "", err
	}

	tx, _ := NewTxFromHex(opts.TxHex)
	prevouts, err := prevoutsForInputs(tx, opts.Unspents)
	if err != nil {
		return "", err
	}

	prvkeys := make([]*btcec.PrivateKey, 0, len(opts.PrivateKeys))
	for _, buf := range opts.PrivateKeys {
		prvkey, _ := btcec.PrivKeyFromBytes(buf)
		prvkeys = append(prvkeys, prvkey)
	}

	if err := signTxInputs(tx, prevouts, prvkeys); err != nil {
		return "", err
	}
	return TxToHex(tx)
}

// prevoutsForInputs resolves, for every input of the transaction, the
// output it spends among the given unspents, preserving input order.
func prevoutsForInputs(
	tx *wire.MsgTx, unspents []explorer.Utxo,
) ([]*wire.TxOut, error) {
	utxoByOutpoint := make(map[wire.OutPoint]*wire.TxOut, len(unspents))
	for _, u := range unspents {
		input, output, err := u.Parse()
		if err != nil {
			return nil, err
		}
		utxoByOutpoint[input.PreviousOutPoint] = output
	}

	prevouts := make([]*wire.TxOut, 0, len(tx.TxIn))
	for i, in := range tx.TxIn {
		prevout, ok := utxoByOutpoint[in.PreviousOutPoint]
		if !ok {
			return nil, fmt.Errorf(
				"input %d (%s): %w", i, in.PreviousOutPoint, ErrMissingUnspent,
			)
		}
		prevouts = append(prevouts, prevout)
	}
	return prevouts, nil
}

func signTxInputs(
	tx *wire.MsgTx, prevouts []*wire.TxOut, prvkeys []*btcec.PrivateKey,
) error {
	if len(prvkeys) != len(tx.TxIn) {
		return ErrPrivateKeyMismatch
	}

	fetcher := txscript.NewMultiPrevOutFetcher(nil)
	for i, in := range tx.TxIn {
		fetcher.AddPrevOut(in.PreviousOutPoint, prevouts[i])
	}
	sigHashes := txscript.NewTxSigHashes(tx, fetcher)

	for i := range tx.TxIn {
		if err := signTxInput(tx, i, prevouts[i], prvkeys[i], sigHashes); err != nil {
			return err
		}
		// run the input through the script engine to catch a bad
		// signature before the tx leaves the wallet
		vm, err := txscript.NewEngine(
			prevouts[i].PkScript, tx, i, txscript.StandardVerifyFlags,
			nil, sigHashes, prevouts[i].Value, fetcher,
		)
		if err != nil {
			return err
		}
		if err := vm.Execute(); err != nil {
			return fmt.Errorf("signature verification failed for input %d: %v", i, err)
		}
	}
	return nil
}

func signTxInput(
	tx *wire.MsgTx, inIndex int, prevout *wire.TxOut,
	prvkey *btcec.PrivateKey, sigHashes *txscript.TxSigHashes,
) error {
	switch scriptutil.DetectScriptType(prevout.PkScript) {
	case scriptutil.P2PKH:
		// legacy sighash, signature and pubkey pushed in the scriptSig
		sigScript, err := txscript.SignatureScript(
			tx, inIndex, prevout.PkScript, txscript.SigHashAll, prvkey, true,
		)
		if err != nil {
			return err
		}
		tx.TxIn[inIndex].SignatureScript = sigScript
		return nil

	case scriptutil.P2WPKH:
		// BIP143 sighash, signature and pubkey in the witness stack,
		// scriptSig stays empty
		witness, err := txscript.WitnessSignature(
			tx, sigHashes, inIndex, prevout.Value, prevout.PkScript,
			txscript.SigHashAll, prvkey, true,
		)
		if err != nil {
			return err
		}
		tx.TxIn[inIndex].Witness = witness
		return nil

	case scriptutil.P2SH:
		// nested segwit: witness as P2WPKH, scriptSig pushes the redeem
		// script
		pubkeyHash := cryptoutil.Hash160(prvkey.PubKey().SerializeCompressed())
		redeemScript, err := scriptutil.P2WPKHScript(pubkeyHash)
		if err != nil {
			return err
		}
		expected, err := scriptutil.P2SHScript(cryptoutil.Hash160(redeemScript))
		if err != nil {
			return err
		}
		if !bytes.Equal(expected, prevout.PkScript) {
			return fmt.Errorf(
				"input %d: redeem script does not match previous output script hash",
				inIndex,
			)
		}

		witness, err := txscript.WitnessSignature(
			tx, sigHashes, inIndex, prevout.Value, redeemScript,
			txscript.SigHashAll, prvkey, true,
		)
		if err != nil {
			return err
		}
		sigScript, err := txscript.NewScriptBuilder().AddData(redeemScript).Script()
		if err != nil {
			return err
		}
		tx.TxIn[inIndex].Witness = witness
		tx.TxIn[inIndex].SignatureScript = sigScript
		return nil

	default:
		return ErrUnsupportedScriptType
	}
}
