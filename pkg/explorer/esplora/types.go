package esplora

import (
	"encoding/hex"
	"encoding/json"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/orangesats/orangesats-wallet/pkg/explorer"
)

// utxoStatus is the confirmation state the esplora API attaches to an
// unspent output.
type utxoStatus struct {
	Confirmed   bool   `json:"confirmed"`
	BlockHeight int    `json:"block_height"`
	BlockHash   string `json:"block_hash"`
}

// utxo is the unspent output of the esplora /address/{addr}/utxo
// endpoint. The locking script is not part of the payload and must be
// recovered from the transaction the output belongs to.
type utxo struct {
	Txid   string     `json:"txid"`
	Vout   uint32     `json:"vout"`
	Amount uint64     `json:"value"`
	Status utxoStatus `json:"status"`
}

func (u utxo) confirmations(tipHeight int) uint32 {
	if !u.Status.Confirmed || u.Status.BlockHeight <= 0 {
		return 0
	}
	if tipHeight < u.Status.BlockHeight {
		return 0
	}
	return uint32(tipHeight - u.Status.BlockHeight + 1)
}

func (u utxo) toUtxo(
	script []byte, address string, tipHeight int,
) explorer.Utxo {
	return explorer.NewWitnessUtxo(
		u.Txid, u.Vout, u.Amount, script, address, u.confirmations(tipHeight),
	)
}

func parseUtxoList(resp string) ([]utxo, error) {
	utxos := make([]utxo, 0)
	if err := json.Unmarshal([]byte(resp), &utxos); err != nil {
		return nil, err
	}
	return utxos, nil
}

type txInputJSON struct {
	Txid      string   `json:"txid"`
	Vout      uint32   `json:"vout"`
	ScriptSig string   `json:"scriptsig"`
	Witness   []string `json:"witness"`
	Sequence  uint32   `json:"sequence"`
}

type txOutputJSON struct {
	ScriptPubKey string `json:"scriptpubkey"`
	Value        uint64 `json:"value"`
}

type txJSON struct {
	Txid     string         `json:"txid"`
	Version  int            `json:"version"`
	Locktime int            `json:"locktime"`
	Inputs   []txInputJSON  `json:"vin"`
	Outputs  []txOutputJSON `json:"vout"`
	Size     int            `json:"size"`
	Weight   int            `json:"weight"`
	Fee      uint64         `json:"fee"`
	Status   utxoStatus     `json:"status"`
}

// tx implements the explorer.Transaction interface.
type tx struct {
	hash      string
	version   int
	locktime  int
	inputs    []*wire.TxIn
	outputs   []*wire.TxOut
	size      int
	weight    int
	fee       uint64
	confirmed bool
}

func (t *tx) Hash() string {
	return t.hash
}

func (t *tx) Version() int {
	return t.version
}

func (t *tx) Locktime() int {
	return t.locktime
}

func (t *tx) Inputs() []*wire.TxIn {
	return t.inputs
}

func (t *tx) Outputs() []*wire.TxOut {
	return t.outputs
}

func (t *tx) Size() int {
	return t.size
}

func (t *tx) Weight() int {
	return t.weight
}

func (t *tx) Fee() uint64 {
	return t.fee
}

func (t *tx) Confirmed() bool {
	return t.confirmed
}

func (t txJSON) toTransaction() (*tx, error) {
	inputs := make([]*wire.TxIn, 0, len(t.Inputs))
	for _, in := range t.Inputs {
		hash, err := chainhash.NewHashFromStr(in.Txid)
		if err != nil {
			return nil, err
		}
		scriptSig, err := hex.DecodeString(in.ScriptSig)
		if err != nil {
			return nil, err
		}
		witness := make(wire.TxWitness, 0, len(in.Witness))
		for _, item := range in.Witness {
			decoded, err := hex.DecodeString(item)
			if err != nil {
				return nil, err
			}
			witness = append(witness, decoded)
		}
		txIn := wire.NewTxIn(
			wire.NewOutPoint(hash, in.Vout), scriptSig, witness,
		)
		txIn.Sequence = in.Sequence
		inputs = append(inputs, txIn)
	}

	outputs := make([]*wire.TxOut, 0, len(t.Outputs))
	for _, out := range t.Outputs {
		script, err := hex.DecodeString(out.ScriptPubKey)
		if err != nil {
			return nil, err
		}
		outputs = append(outputs, wire.NewTxOut(int64(out.Value), script))
	}

	return &tx{
		hash:      t.Txid,
		version:   t.Version,
		locktime:  t.Locktime,
		inputs:    inputs,
		outputs:   outputs,
		size:      t.Size,
		weight:    t.Weight,
		fee:       t.Fee,
		confirmed: t.Status.Confirmed,
	}, nil
}

func parseTransaction(resp string) (*tx, error) {
	parsed := txJSON{}
	if err := json.Unmarshal([]byte(resp), &parsed); err != nil {
		return nil, err
	}
	return parsed.toTransaction()
}

func parseTransactions(resp string) ([]explorer.Transaction, error) {
	list := make([]txJSON, 0)
	if err := json.Unmarshal([]byte(resp), &list); err != nil {
		return nil, err
	}

	txs := make([]explorer.Transaction, 0, len(list))
	for _, parsed := range list {
		trx, err := parsed.toTransaction()
		if err != nil {
			return nil, err
		}
		txs = append(txs, trx)
	}
	return txs, nil
}
