package wallet

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/orangesats/orangesats-wallet/pkg/scriptutil"
)

func TestEstimateTxSize(t *testing.T) {
	tests := []struct {
		inScriptTypes []scriptutil.ScriptType
		numOutputs    int
		expectedSize  int
	}{
		{
			inScriptTypes: []scriptutil.ScriptType{scriptutil.P2WPKH},
			numOutputs:    1,
			expectedSize:  112,
		},
		{
			inScriptTypes: []scriptutil.ScriptType{scriptutil.P2PKH},
			numOutputs:    2,
			expectedSize:  226,
		},
		{
			inScriptTypes: []scriptutil.ScriptType{scriptutil.P2SH},
			numOutputs:    1,
			expectedSize:  135,
		},
		{
			inScriptTypes: []scriptutil.ScriptType{
				scriptutil.P2WPKH, scriptutil.P2WPKH, scriptutil.P2PKH,
			},
			numOutputs:   2,
			expectedSize: 362,
		},
		{
			// unknown types use the conservative default
			inScriptTypes: []scriptutil.ScriptType{scriptutil.P2WSH},
			numOutputs:    1,
			expectedSize:  192,
		},
	}
	for _, tt := range tests {
		size := EstimateTxSize(tt.inScriptTypes, tt.numOutputs)
		assert.Equal(t, tt.expectedSize, size)
	}
}

func TestEstimateFeeAmount(t *testing.T) {
	tests := []struct {
		txSize       int
		satsPerVByte string
		expectedFee  uint64
	}{
		{112, "10", 1120},
		{112, "1", 112},
		{112, "1.5", 168},
		{113, "1.1", 125},
		{226, "0.5", 113},
	}
	for _, tt := range tests {
		rate, err := decimal.NewFromString(tt.satsPerVByte)
		if err != nil {
			t.Fatal(err)
		}
		assert.Equal(t, tt.expectedFee, EstimateFeeAmount(tt.txSize, rate))
	}
}
