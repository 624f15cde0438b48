package wallet

import (
	"github.com/shopspring/decimal"

	"github.com/orangesats/orangesats-wallet/pkg/scriptutil"
)

const (
	// DustLimit is the minimum amount in satoshis an output must carry to
	// be economically spendable.
	DustLimit = 546

	// each output accounts for value(8) + script length + a ~25 byte
	// script
	txOutputSize = 34
	// version(4) + locktime(4) + in/out counters
	txBaseSize = 10
	// conservative default for unknown prevout script types
	txDefaultInputSize = 148
)

// inputSizeByScriptType estimates the vbyte cost of spending an output of
// the given script type, witness discount already applied.
var inputSizeByScriptType = map[scriptutil.ScriptType]int{
	// outpoint(36) + scriptSig(1+107) + sequence(4)
	scriptutil.P2PKH: 148,
	// outpoint(36) + empty scriptSig(1) + sequence(4) + witness/4
	scriptutil.P2WPKH: 68,
	// nested segwit pays the 23 byte redeem script on top
	scriptutil.P2SH: 91,
}

// EstimateTxSize returns the approximated virtual size of a transaction
// spending the given previous output script types into numOutputs
// outputs. This is a vbyte approximation driven by per-script lookup
// costs, not exact weight accounting.
func EstimateTxSize(inScriptTypes []scriptutil.ScriptType, numOutputs int) int {
	size := txBaseSize
	for _, scriptType := range inScriptTypes {
		inSize, ok := inputSizeByScriptType[scriptType]
		if !ok {
			inSize = txDefaultInputSize
		}
		size += inSize
	}
	size += numOutputs * txOutputSize
	return size
}

// EstimateFeeAmount returns the fee in satoshis for a transaction of the
// given virtual size at the given rate, rounded up to the next satoshi.
func EstimateFeeAmount(txSize int, satsPerVByte decimal.Decimal) uint64 {
	fee := decimal.NewFromInt(int64(txSize)).Mul(satsPerVByte).Ceil()
	return uint64(fee.IntPart())
}

func inputScriptTypes(unspents []scriptToValue) []scriptutil.ScriptType {
	types := make([]scriptutil.ScriptType, 0, len(unspents))
	for _, u := range unspents {
		types = append(types, scriptutil.DetectScriptType(u.script))
	}
	return types
}

// scriptToValue pairs a previous output's locking script with its value,
// the two facts fee accounting needs about an input.
type scriptToValue struct {
	script []byte
	value  uint64
}
