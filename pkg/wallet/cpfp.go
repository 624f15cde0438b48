package wallet

import (
	"fmt"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/wire"
	"github.com/shopspring/decimal"

	"github.com/orangesats/orangesats-wallet/pkg/explorer"
	"github.com/orangesats/orangesats-wallet/pkg/scriptutil"
)

// CreateCPFPTransactionOpts is the struct given to CreateCPFPTransaction method
type CreateCPFPTransactionOpts struct {
	ParentTxHex        string
	Unspents           []explorer.Utxo
	OutputAddress      string
	TargetSatsPerVByte decimal.Decimal
	Network            *chaincfg.Params
	Lookup             TxLookup
}

func (o CreateCPFPTransactionOpts) validate() error {
	if len(o.ParentTxHex) <= 0 {
		return ErrNullTxHex
	}
	parentTx, err := NewTxFromHex(o.ParentTxHex)
	if err != nil {
		return err
	}
	if o.Network == nil {
		return ErrNullNetwork
	}
	if o.Lookup == nil {
		return ErrNullTxLookup
	}
	if len(o.Unspents) <= 0 {
		return ErrNoUnspentOutputs
	}
	parentTxid := parentTx.TxHash().String()
	for _, u := range o.Unspents {
		if u.Hash() != parentTxid {
			return fmt.Errorf(
				"unspent %s:%d does not belong to the parent transaction",
				u.Hash(), u.Index(),
			)
		}
	}
	if len(o.OutputAddress) <= 0 {
		return ErrNullOutputAddress
	}
	if _, err := scriptutil.ScriptFromAddress(o.OutputAddress, o.Network); err != nil {
		return ErrInvalidOutputAddress
	}
	if o.TargetSatsPerVByte.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidFeeRate
	}
	return nil
}

// CreateCPFPTransaction builds an unsigned child transaction spending the
// given unspent outputs of the parent into a single wallet-owned output,
// sized so that parent and child together pay the target fee rate. Child
// inputs keep replaceability available on the child itself.
func CreateCPFPTransaction(opts CreateCPFPTransactionOpts) (string, error) {
	if err := opts.validate(); err != nil {
		return "", err
	}

	parentTx, _ := NewTxFromHex(opts.ParentTxHex)
	parentPrevouts, err := fetchPrevouts(parentTx, opts.Lookup)
	if err != nil {
		return "", err
	}

	parentTotalIn := uint64(0)
	for _, prevout := range parentPrevouts {
		parentTotalIn += prevout.value
	}
	parentTotalOut := uint64(0)
	for _, out := range parentTx.TxOut {
		parentTotalOut += uint64(out.Value)
	}
	if parentTotalIn < parentTotalOut {
		return "", ErrInsufficientFunds
	}
	parentFee := parentTotalIn - parentTotalOut
	parentSize := TxVirtualSize(parentTx)

	childTx := wire.NewMsgTx(TxVersion)
	childUnspents := make([]scriptToValue, 0, len(opts.Unspents))
	childTotalIn := uint64(0)
	for _, u := range opts.Unspents {
		input, prevout, err := u.Parse()
		if err != nil {
			return "", err
		}
		input.Sequence = SequenceRbfEnabled
		childTx.AddTxIn(input)
		childUnspents = append(childUnspents, scriptToValue{
			script: prevout.PkScript,
			value:  uint64(prevout.Value),
		})
		childTotalIn += uint64(prevout.Value)
	}

	childSize := EstimateTxSize(inputScriptTypes(childUnspents), 1)
	requiredFee := EstimateFeeAmount(parentSize+childSize, opts.TargetSatsPerVByte)
	if requiredFee <= parentFee {
		return "", ErrParentFeeAlreadySufficient
	}
	childFee := requiredFee - parentFee

	if childTotalIn < childFee+DustLimit {
		return "", ErrInsufficientFunds
	}
	outScript, _ := scriptutil.ScriptFromAddress(opts.OutputAddress, opts.Network)
	childTx.AddTxOut(wire.NewTxOut(int64(childTotalIn-childFee), outScript))

	return TxToHex(childTx)
}
