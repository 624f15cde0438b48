package wallet

import (
	"bytes"
	"encoding/hex"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/wire"
	"github.com/shopspring/decimal"

	"github.com/orangesats/orangesats-wallet/pkg/explorer"
	"github.com/orangesats/orangesats-wallet/pkg/scriptutil"
)

const (
	// TxVersion is the version all transactions are created with.
	TxVersion = 2
	// SequenceRbfEnabled is the input sequence signaling opt-in
	// replaceability per BIP125.
	SequenceRbfEnabled = wire.MaxTxInSequenceNum - 2
	// SequenceRbfThreshold is the lowest sequence that does NOT signal
	// replaceability. An input opts in only if its sequence is below it.
	SequenceRbfThreshold = wire.MaxTxInSequenceNum - 1
)

// NewTxFromHex deserializes a transaction from its hex format, witness
// data included when present.
func NewTxFromHex(txHex string) (*wire.MsgTx, error) {
	buf, err := hex.DecodeString(txHex)
	if err != nil {
		return nil, err
	}
	tx := &wire.MsgTx{}
	if err := tx.Deserialize(bytes.NewReader(buf)); err != nil {
		return nil, err
	}
	return tx, nil
}

// TxToHex serializes a transaction to its hex format. The segwit
// marker/flag and witness stacks are emitted only when at least one input
// carries witness data.
func TxToHex(tx *wire.MsgTx) (string, error) {
	var buf bytes.Buffer
	if err := tx.Serialize(&buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf.Bytes()), nil
}

// TxVirtualSize returns the virtual size in vbytes of a fully serialized
// transaction, per the segwit weight formula.
func TxVirtualSize(tx *wire.MsgTx) int {
	baseSize := tx.SerializeSizeStripped()
	totalSize := tx.SerializeSize()
	weight := baseSize*3 + totalSize
	return (weight + 3) / 4
}

// Recipient is a requested payment: an address and an amount in satoshis.
type Recipient struct {
	Address string
	Amount  uint64
}

// BuildTransactionOpts is the struct given to BuildTransaction method
type BuildTransactionOpts struct {
	Unspents      []explorer.Utxo
	Outputs       []Recipient
	ChangeAddress string
	SatsPerVByte  decimal.Decimal
	Network       *chaincfg.Params
}

func (o BuildTransactionOpts) validate() error {
	if o.Network == nil {
		return ErrNullNetwork
	}
	if len(o.Unspents) <= 0 {
		return ErrEmptyUnspents
	}
	for _, u := range o.Unspents {
		if _, _, err := u.Parse(); err != nil {
			return err
		}
	}
	if len(o.Outputs) <= 0 {
		return ErrEmptyOutputs
	}
	for _, out := range o.Outputs {
		if len(out.Address) <= 0 {
			return ErrNullOutputAddress
		}
		if _, err := scriptutil.ScriptFromAddress(out.Address, o.Network); err != nil {
			return ErrInvalidOutputAddress
		}
		if out.Amount < DustLimit {
			return ErrAmountBelowDust
		}
	}
	if len(o.ChangeAddress) <= 0 {
		return ErrNullChangeAddress
	}
	if _, err := scriptutil.ScriptFromAddress(o.ChangeAddress, o.Network); err != nil {
		return ErrInvalidChangeAddress
	}
	if !o.SatsPerVByte.IsPositive() {
		return ErrInvalidFeeRate
	}
	return nil
}

// BuildTransactionResult is the struct returned by BuildTransaction.
// TxHex is the unsigned transaction with empty scriptSigs/witnesses,
// FeeAmount the fee it pays and ChangeAmount the value of the change
// output, zero when the change was absorbed into the fee.
type BuildTransactionResult struct {
	TxHex        string
	FeeAmount    uint64
	ChangeAmount uint64
}

// BuildTransaction assembles an unsigned transaction spending the given
// unspents into the requested outputs. All inputs signal replaceability.
// The fee is estimated from the spent output script types at the given
// rate; the leftover goes to the change address unless it falls within
// the dust limit, in which case it is absorbed into the fee.
func BuildTransaction(opts BuildTransactionOpts) (*BuildTransactionResult, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	tx := wire.NewMsgTx(TxVersion)

	totalIn := uint64(0)
	inTypes := make([]scriptutil.ScriptType, 0, len(opts.Unspents))
	for _, u := range opts.Unspents {
		input, _, err := u.Parse()
		if err != nil {
			return nil, err
		}
		input.Sequence = SequenceRbfEnabled
		tx.AddTxIn(input)
		totalIn += u.Value()
		inTypes = append(inTypes, scriptutil.DetectScriptType(u.Script()))
	}

	totalOut := uint64(0)
	for _, out := range opts.Outputs {
		script, err := scriptutil.ScriptFromAddress(out.Address, opts.Network)
		if err != nil {
			return nil, ErrInvalidOutputAddress
		}
		tx.AddTxOut(wire.NewTxOut(int64(out.Amount), script))
		totalOut += out.Amount
	}

	txSize := EstimateTxSize(inTypes, len(opts.Outputs))
	feeAmount := EstimateFeeAmount(txSize, opts.SatsPerVByte)

	if totalIn < totalOut+feeAmount {
		return nil, ErrInsufficientFunds
	}

	changeAmount := totalIn - totalOut - feeAmount
	if changeAmount > DustLimit {
		changeScript, err := scriptutil.ScriptFromAddress(
			opts.ChangeAddress, opts.Network,
		)
		if err != nil {
			return nil, ErrInvalidChangeAddress
		}
		tx.AddTxOut(wire.NewTxOut(int64(changeAmount), changeScript))
	} else {
		// change within the dust limit is left to the miners
		feeAmount += changeAmount
		changeAmount = 0
	}

	txHex, err := TxToHex(tx)
	if err != nil {
		return nil, err
	}
	return &BuildTransactionResult{
		TxHex:        txHex,
		FeeAmount:    feeAmount,
		ChangeAmount: changeAmount,
	}, nil
}
