package explorer

import (
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
)

// NewWitnessUtxo returns a Utxo for the given outpoint, amount and locking
// script.
func NewWitnessUtxo(
	hash string, index uint32,
	value uint64, script []byte,
	address string, confirmations uint32,
) Utxo {
	return witnessUtxo{
		UHash:          hash,
		UIndex:         index,
		UValue:         value,
		UScript:        script,
		UAddress:       address,
		UConfirmations: confirmations,
	}
}

type witnessUtxo struct {
	UHash          string `json:"txid"`
	UIndex         uint32 `json:"vout"`
	UValue         uint64 `json:"value"`
	UScript        []byte `json:"-"`
	UAddress       string `json:"-"`
	UConfirmations uint32 `json:"-"`
}

func (wu witnessUtxo) Hash() string {
	return wu.UHash
}

func (wu witnessUtxo) Index() uint32 {
	return wu.UIndex
}

func (wu witnessUtxo) Value() uint64 {
	return wu.UValue
}

func (wu witnessUtxo) Script() []byte {
	return wu.UScript
}

func (wu witnessUtxo) Address() string {
	return wu.UAddress
}

func (wu witnessUtxo) Confirmations() uint32 {
	return wu.UConfirmations
}

func (wu witnessUtxo) IsConfirmed() bool {
	return wu.UConfirmations > 0
}

func (wu witnessUtxo) Parse() (*wire.TxIn, *wire.TxOut, error) {
	hash, err := chainhash.NewHashFromStr(wu.UHash)
	if err != nil {
		return nil, nil, err
	}
	input := wire.NewTxIn(wire.NewOutPoint(hash, wu.UIndex), nil, nil)
	output := wire.NewTxOut(int64(wu.UValue), wu.UScript)
	return input, output, nil
}
