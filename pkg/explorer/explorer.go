package explorer

import (
	"github.com/btcsuite/btcd/wire"
	"github.com/shopspring/decimal"
)

// Utxo represents an unspent transaction output in the bitcoin chain.
type Utxo interface {
	Hash() string
	Index() uint32
	Value() uint64
	Script() []byte
	Address() string
	Confirmations() uint32
	IsConfirmed() bool
	// Parse returns the utxo as the input that would spend it along with
	// the output it locks.
	Parse() (*wire.TxIn, *wire.TxOut, error)
}

// Transaction is the detail about a confirmed or mempool transaction
// returned by the explorer.
type Transaction interface {
	Hash() string
	Version() int
	Locktime() int
	Inputs() []*wire.TxIn
	Outputs() []*wire.TxOut
	Size() int
	Weight() int
	Fee() uint64
	Confirmed() bool
}

// FeeEstimates groups the fee-market rates returned by the explorer,
// expressed in sat/vByte.
type FeeEstimates struct {
	Slow    decimal.Decimal
	Normal  decimal.Decimal
	Fast    decimal.Decimal
	Fastest decimal.Decimal
}

// Service is the representation of a blockchain indexing server that
// allows to fetch data from the chain, to broadcast transactions, and for
// regtest ONLY, to fund an address with coins.
type Service interface {
	// GetUnspents fetches the utxos for the given address.
	GetUnspents(addr string) (unspents []Utxo, err error)
	// GetUnspentsForAddresses fetches the utxos of the given list of
	// addresses.
	GetUnspentsForAddresses(addresses []string) (unspents []Utxo, err error)
	// GetTransactionHex fetches the transaction in hex format given its
	// hash.
	GetTransactionHex(txid string) (txhex string, err error)
	// IsTransactionConfirmed returns whether the tx identified by its hash
	// has been included in the blockchain.
	IsTransactionConfirmed(txid string) (confirmed bool, err error)
	// GetTransactionStatus returns the status of the tx identified by its
	// hash.
	GetTransactionStatus(txid string) (status map[string]interface{}, err error)
	// GetTransaction fetches the details of the tx identified by its hash.
	GetTransaction(txid string) (tx Transaction, err error)
	// GetTransactionsForAddress returns the list of all txs involving the
	// given address.
	GetTransactionsForAddress(address string) (txs []Transaction, err error)
	// BroadcastTransaction attempts to add the given tx in hex format to
	// the mempool and returns its tx hash.
	BroadcastTransaction(txhex string) (txid string, err error)
	// GetFeeEstimates returns the current fee-market rates in sat/vByte.
	GetFeeEstimates() (*FeeEstimates, error)
	// GetBlockHeight returns the number of blocks of the blockchain.
	GetBlockHeight() (int, error)
	/**** REGTEST ONLY ****/
	// Faucet funds the given address with 1 BTC.
	Faucet(address string) (txid string, err error)
}
