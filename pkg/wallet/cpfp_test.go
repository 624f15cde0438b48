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

// buildCpfpParent builds an underpaying parent transaction and returns its
// hex, the unspent of its change output and the lookup resolving the
// transaction it spends.
func buildCpfpParent(t *testing.T) (string, explorer.Utxo, mockTxLookup) {
	t.Helper()

	utxo, lookup := fundAddress(t, testChangeAddress, 100000)
	result, err := BuildTransaction(BuildTransactionOpts{
		Unspents:      []explorer.Utxo{utxo},
		Outputs:       []Recipient{{Address: testOutputAddress, Amount: 50000}},
		ChangeAddress: testChangeAddress,
		SatsPerVByte:  decimal.NewFromInt(1),
		Network:       &chaincfg.MainNetParams,
	})
	require.NoError(t, err)

	parentTx, err := NewTxFromHex(result.TxHex)
	require.NoError(t, err)
	changeScript, err := scriptutil.ScriptFromAddress(
		testChangeAddress, &chaincfg.MainNetParams,
	)
	require.NoError(t, err)

	changeUtxo := explorer.NewWitnessUtxo(
		parentTx.TxHash().String(), 1, uint64(parentTx.TxOut[1].Value),
		changeScript, testChangeAddress, 0,
	)
	return result.TxHex, changeUtxo, lookup
}

func TestCreateCPFPTransaction(t *testing.T) {
	parentTxHex, changeUtxo, lookup := buildCpfpParent(t)

	// parent pays 112 sat over 113 vbytes, the child must cover the gap
	// up to 2 sat/vB for the 225 combined vbytes
	childTxHex, err := CreateCPFPTransaction(CreateCPFPTransactionOpts{
		ParentTxHex:        parentTxHex,
		Unspents:           []explorer.Utxo{changeUtxo},
		OutputAddress:      testOutputAddress,
		TargetSatsPerVByte: decimal.NewFromInt(2),
		Network:            &chaincfg.MainNetParams,
		Lookup:             lookup,
	})
	require.NoError(t, err)

	childTx, err := NewTxFromHex(childTxHex)
	require.NoError(t, err)
	require.Len(t, childTx.TxIn, 1)
	require.Len(t, childTx.TxOut, 1)

	assert.Equal(t, uint32(SequenceRbfEnabled), childTx.TxIn[0].Sequence)
	assert.Equal(t, changeUtxo.Hash(), childTx.TxIn[0].PreviousOutPoint.Hash.String())
	assert.Equal(t, uint32(1), childTx.TxIn[0].PreviousOutPoint.Index)

	// 49888 funding the child minus the 338 sat child fee
	assert.Equal(t, int64(49550), childTx.TxOut[0].Value)

	outScript, err := scriptutil.ScriptFromAddress(
		testOutputAddress, &chaincfg.MainNetParams,
	)
	require.NoError(t, err)
	assert.Equal(t, outScript, childTx.TxOut[0].PkScript)
}

func TestCreateCPFPTransactionFailures(t *testing.T) {
	parentTxHex, changeUtxo, lookup := buildCpfpParent(t)
	net := &chaincfg.MainNetParams

	tests := []struct {
		name string
		opts CreateCPFPTransactionOpts
		err  error
	}{
		{
			name: "no unspent outputs",
			opts: CreateCPFPTransactionOpts{
				ParentTxHex:        parentTxHex,
				OutputAddress:      testOutputAddress,
				TargetSatsPerVByte: decimal.NewFromInt(2),
				Network:            net,
				Lookup:             lookup,
			},
			err: ErrNoUnspentOutputs,
		},
		{
			name: "parent fee already sufficient",
			opts: CreateCPFPTransactionOpts{
				ParentTxHex:        parentTxHex,
				Unspents:           []explorer.Utxo{changeUtxo},
				OutputAddress:      testOutputAddress,
				TargetSatsPerVByte: decimal.NewFromFloat(0.4),
				Network:            net,
				Lookup:             lookup,
			},
			err: ErrParentFeeAlreadySufficient,
		},
		{
			name: "insufficient funds",
			opts: CreateCPFPTransactionOpts{
				ParentTxHex:        parentTxHex,
				Unspents:           []explorer.Utxo{changeUtxo},
				OutputAddress:      testOutputAddress,
				TargetSatsPerVByte: decimal.NewFromInt(220),
				Network:            net,
				Lookup:             lookup,
			},
			err: ErrInsufficientFunds,
		},
		{
			name: "invalid output address",
			opts: CreateCPFPTransactionOpts{
				ParentTxHex:        parentTxHex,
				Unspents:           []explorer.Utxo{changeUtxo},
				OutputAddress:      "notanaddress",
				TargetSatsPerVByte: decimal.NewFromInt(2),
				Network:            net,
				Lookup:             lookup,
			},
			err: ErrInvalidOutputAddress,
		},
		{
			name: "invalid fee rate",
			opts: CreateCPFPTransactionOpts{
				ParentTxHex:   parentTxHex,
				Unspents:      []explorer.Utxo{changeUtxo},
				OutputAddress: testOutputAddress,
				Network:       net,
				Lookup:        lookup,
			},
			err: ErrInvalidFeeRate,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CreateCPFPTransaction(tt.opts)
			assert.Equal(t, tt.err, err)
		})
	}
}

func TestCreateCPFPTransactionForeignUnspent(t *testing.T) {
	parentTxHex, _, lookup := buildCpfpParent(t)

	foreignUtxo := explorer.NewWitnessUtxo(
		testDummyTxid, 0, 100000, nil, "", 0,
	)
	_, err := CreateCPFPTransaction(CreateCPFPTransactionOpts{
		ParentTxHex:        parentTxHex,
		Unspents:           []explorer.Utxo{foreignUtxo},
		OutputAddress:      testOutputAddress,
		TargetSatsPerVByte: decimal.NewFromInt(2),
		Network:            &chaincfg.MainNetParams,
		Lookup:             lookup,
	})
	assert.Error(t, err)
}
