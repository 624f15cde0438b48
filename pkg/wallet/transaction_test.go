package wallet

import (
	"testing"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orangesats/orangesats-wallet/pkg/explorer"
	"github.com/orangesats/orangesats-wallet/pkg/scriptutil"
)

const (
	testOutputAddress = "bc1qw508d6qejxtdg4y5r3zarvary0c5xw7kv8f3t4"
	testChangeAddress = "bc1qcr8te4kr609gcawutmrza0j4xv80jy8z306fyu"
	testDummyTxid     = "1111111111111111111111111111111111111111111111111111111111111111"
)

func newTestUtxo(t *testing.T, address string, value uint64) explorer.Utxo {
	t.Helper()
	script, err := scriptutil.ScriptFromAddress(address, &chaincfg.MainNetParams)
	require.NoError(t, err)
	return explorer.NewWitnessUtxo(testDummyTxid, 0, value, script, address, 1)
}

func TestBuildTransaction(t *testing.T) {
	utxo := newTestUtxo(t, testChangeAddress, 100000)

	result, err := BuildTransaction(BuildTransactionOpts{
		Unspents:      []explorer.Utxo{utxo},
		Outputs:       []Recipient{{Address: testOutputAddress, Amount: 50000}},
		ChangeAddress: testChangeAddress,
		SatsPerVByte:  decimal.NewFromInt(10),
		Network:       &chaincfg.MainNetParams,
	})
	require.NoError(t, err)

	// 1 P2WPKH input and 1 requested output estimate to 112 vbytes
	assert.Equal(t, uint64(1120), result.FeeAmount)
	assert.Equal(t, uint64(48880), result.ChangeAmount)

	tx, err := NewTxFromHex(result.TxHex)
	require.NoError(t, err)
	require.Len(t, tx.TxIn, 1)
	require.Len(t, tx.TxOut, 2)
	assert.Equal(t, uint32(SequenceRbfEnabled), tx.TxIn[0].Sequence)
	assert.Empty(t, tx.TxIn[0].SignatureScript)
	assert.Empty(t, tx.TxIn[0].Witness)
	assert.Equal(t, int64(50000), tx.TxOut[0].Value)
	assert.Equal(t, int64(48880), tx.TxOut[1].Value)

	// conservation: inputs fully split between outputs and fee
	totalOut := uint64(0)
	for _, out := range tx.TxOut {
		totalOut += uint64(out.Value)
	}
	assert.Equal(t, uint64(100000), totalOut+result.FeeAmount)
}

func TestBuildTransactionChangeBelowDustIsAbsorbed(t *testing.T) {
	utxo := newTestUtxo(t, testChangeAddress, 51420)

	result, err := BuildTransaction(BuildTransactionOpts{
		Unspents:      []explorer.Utxo{utxo},
		Outputs:       []Recipient{{Address: testOutputAddress, Amount: 50000}},
		ChangeAddress: testChangeAddress,
		SatsPerVByte:  decimal.NewFromInt(10),
		Network:       &chaincfg.MainNetParams,
	})
	require.NoError(t, err)

	assert.Equal(t, uint64(0), result.ChangeAmount)
	assert.Equal(t, uint64(1420), result.FeeAmount)

	tx, err := NewTxFromHex(result.TxHex)
	require.NoError(t, err)
	assert.Len(t, tx.TxOut, 1)
}

func TestBuildTransactionFailures(t *testing.T) {
	utxo := newTestUtxo(t, testChangeAddress, 100000)
	net := &chaincfg.MainNetParams
	rate := decimal.NewFromInt(10)

	tests := []struct {
		name string
		opts BuildTransactionOpts
		err  error
	}{
		{
			name: "insufficient funds",
			opts: BuildTransactionOpts{
				Unspents:      []explorer.Utxo{utxo},
				Outputs:       []Recipient{{Address: testOutputAddress, Amount: 99500}},
				ChangeAddress: testChangeAddress,
				SatsPerVByte:  rate,
				Network:       net,
			},
			err: ErrInsufficientFunds,
		},
		{
			name: "null network",
			opts: BuildTransactionOpts{
				Unspents:      []explorer.Utxo{utxo},
				Outputs:       []Recipient{{Address: testOutputAddress, Amount: 50000}},
				ChangeAddress: testChangeAddress,
				SatsPerVByte:  rate,
			},
			err: ErrNullNetwork,
		},
		{
			name: "empty unspents",
			opts: BuildTransactionOpts{
				Outputs:       []Recipient{{Address: testOutputAddress, Amount: 50000}},
				ChangeAddress: testChangeAddress,
				SatsPerVByte:  rate,
				Network:       net,
			},
			err: ErrEmptyUnspents,
		},
		{
			name: "empty outputs",
			opts: BuildTransactionOpts{
				Unspents:      []explorer.Utxo{utxo},
				ChangeAddress: testChangeAddress,
				SatsPerVByte:  rate,
				Network:       net,
			},
			err: ErrEmptyOutputs,
		},
		{
			name: "amount below dust",
			opts: BuildTransactionOpts{
				Unspents:      []explorer.Utxo{utxo},
				Outputs:       []Recipient{{Address: testOutputAddress, Amount: 545}},
				ChangeAddress: testChangeAddress,
				SatsPerVByte:  rate,
				Network:       net,
			},
			err: ErrAmountBelowDust,
		},
		{
			name: "invalid output address",
			opts: BuildTransactionOpts{
				Unspents:      []explorer.Utxo{utxo},
				Outputs:       []Recipient{{Address: "notanaddress", Amount: 50000}},
				ChangeAddress: testChangeAddress,
				SatsPerVByte:  rate,
				Network:       net,
			},
			err: ErrInvalidOutputAddress,
		},
		{
			name: "invalid change address",
			opts: BuildTransactionOpts{
				Unspents:      []explorer.Utxo{utxo},
				Outputs:       []Recipient{{Address: testOutputAddress, Amount: 50000}},
				ChangeAddress: "notanaddress",
				SatsPerVByte:  rate,
				Network:       net,
			},
			err: ErrInvalidChangeAddress,
		},
		{
			name: "invalid fee rate",
			opts: BuildTransactionOpts{
				Unspents:      []explorer.Utxo{utxo},
				Outputs:       []Recipient{{Address: testOutputAddress, Amount: 50000}},
				ChangeAddress: testChangeAddress,
				Network:       net,
			},
			err: ErrInvalidFeeRate,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildTransaction(tt.opts)
			assert.Equal(t, tt.err, err)
		})
	}
}

func TestNewTxFromHexFailure(t *testing.T) {
	tests := []string{
		"nothex",
		"0200",
	}
	for _, txHex := range tests {
		_, err := NewTxFromHex(txHex)
		assert.Error(t, err)
	}
}
