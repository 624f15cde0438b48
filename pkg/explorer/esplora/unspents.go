package esplora

import (
	"fmt"
	"net/http"

	"github.com/orangesats/orangesats-wallet/pkg/explorer"
	"github.com/orangesats/orangesats-wallet/pkg/wallet"
)

func (e *esplora) GetUnspents(addr string) ([]explorer.Utxo, error) {
	tipHeight, err := e.GetBlockHeight()
	if err != nil {
		return nil, err
	}
	return e.getUnspents(addr, tipHeight)
}

func (e *esplora) GetUnspentsForAddresses(
	addresses []string,
) ([]explorer.Utxo, error) {
	tipHeight, err := e.GetBlockHeight()
	if err != nil {
		return nil, err
	}

	chUnspents := make(chan []explorer.Utxo)
	chErr := make(chan error, 1)
	unspents := make([]explorer.Utxo, 0)

	for _, addr := range addresses {
		go e.getUnspentsForAddress(addr, tipHeight, chUnspents, chErr)

		select {
		case err := <-chErr:
			close(chErr)
			close(chUnspents)
			return nil, err
		case unspentsForAddress := <-chUnspents:
			unspents = append(unspents, unspentsForAddress...)
		}
	}

	return unspents, nil
}

func (e *esplora) getUnspents(
	addr string, tipHeight int,
) ([]explorer.Utxo, error) {
	url := fmt.Sprintf("%s/address/%s/utxo", e.apiURL, addr)
	status, resp, err := e.request("GET", url, "", nil)
	if err != nil {
		return nil, fmt.Errorf("error on retrieving utxos: %s", err)
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf(resp)
	}

	outs, err := parseUtxoList(resp)
	if err != nil {
		return nil, fmt.Errorf("error on retrieving utxos: %s", err)
	}

	unspents := make([]explorer.Utxo, 0, len(outs))
	for _, out := range outs {
		// the payload carries no locking script, it is recovered from the
		// transaction the output belongs to
		script, err := e.getOutputScript(out.Txid, out.Vout)
		if err != nil {
			return nil, err
		}
		unspents = append(unspents, out.toUtxo(script, addr, tipHeight))
	}

	return unspents, nil
}

func (e *esplora) getUnspentsForAddress(
	addr string,
	tipHeight int,
	chUnspents chan []explorer.Utxo,
	chErr chan error,
) {
	unspents, err := e.getUnspents(addr, tipHeight)
	if err != nil {
		chErr <- err
		return
	}
	chUnspents <- unspents
}

func (e *esplora) getOutputScript(txid string, vout uint32) ([]byte, error) {
	txHex, err := e.GetTransactionHex(txid)
	if err != nil {
		return nil, err
	}
	tx, err := wallet.NewTxFromHex(txHex)
	if err != nil {
		return nil, err
	}
	if int(vout) >= len(tx.TxOut) {
		return nil, fmt.Errorf("transaction %s has no output %d", txid, vout)
	}
	return tx.TxOut[vout].PkScript, nil
}
