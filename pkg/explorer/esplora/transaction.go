package esplora

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/orangesats/orangesats-wallet/pkg/explorer"
)

func (e *esplora) GetTransaction(txid string) (explorer.Transaction, error) {
	url := fmt.Sprintf("%s/tx/%s", e.apiURL, txid)
	status, resp, err := e.request("GET", url, "", nil)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf(resp)
	}

	return parseTransaction(resp)
}

func (e *esplora) GetTransactionsForAddress(
	address string,
) ([]explorer.Transaction, error) {
	url := fmt.Sprintf("%s/address/%s/txs", e.apiURL, address)
	status, resp, err := e.request("GET", url, "", nil)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf(resp)
	}

	return parseTransactions(resp)
}

func (e *esplora) GetTransactionHex(txid string) (string, error) {
	url := fmt.Sprintf("%s/tx/%s/hex", e.apiURL, txid)
	status, resp, err := e.request("GET", url, "", nil)
	if err != nil {
		return "", err
	}
	if status != http.StatusOK {
		return "", fmt.Errorf(resp)
	}

	return resp, nil
}

func (e *esplora) IsTransactionConfirmed(txid string) (bool, error) {
	trxStatus, err := e.GetTransactionStatus(txid)
	if err != nil {
		return false, err
	}

	var confirmed bool
	if iConfirmed, ok := trxStatus["confirmed"]; ok {
		confirmed, _ = iConfirmed.(bool)
	}
	return confirmed, nil
}

func (e *esplora) GetTransactionStatus(
	txid string,
) (map[string]interface{}, error) {
	url := fmt.Sprintf("%s/tx/%s/status", e.apiURL, txid)
	status, resp, err := e.request("GET", url, "", nil)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf(resp)
	}

	trxStatus := map[string]interface{}{}
	if err := json.Unmarshal([]byte(resp), &trxStatus); err != nil {
		return nil, err
	}

	return trxStatus, nil
}

func (e *esplora) BroadcastTransaction(txHex string) (string, error) {
	url := fmt.Sprintf("%s/tx", e.apiURL)
	headers := map[string]string{
		"Content-Type": "text/plain",
	}

	status, resp, err := e.request("POST", url, txHex, headers)
	if err != nil {
		return "", err
	}
	if status != http.StatusOK {
		return "", fmt.Errorf(resp)
	}

	return resp, nil
}

func (e *esplora) Faucet(address string) (string, error) {
	url := fmt.Sprintf("%s/faucet", e.apiURL)
	payload := map[string]interface{}{"address": address}
	body, _ := json.Marshal(payload)
	headers := map[string]string{
		"Content-Type": "application/json",
	}

	status, resp, err := e.request("POST", url, string(body), headers)
	if err != nil {
		return "", err
	}
	if status != http.StatusOK {
		return "", fmt.Errorf(resp)
	}

	var rr map[string]string
	json.Unmarshal([]byte(resp), &rr)

	return rr["txId"], nil
}
