package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/btcsuite/btcd/wire"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/orangesats/orangesats-wallet/config"
	"github.com/orangesats/orangesats-wallet/pkg/explorer"
	"github.com/orangesats/orangesats-wallet/pkg/explorer/esplora"
	"github.com/orangesats/orangesats-wallet/pkg/wallet"
)

const mnemonicEnvKey = "ORANGESATS_MNEMONIC"

func main() {
	app := cli.NewApp()

	app.Version = "0.1.0"
	app.Name = "orangesats CLI"
	app.Usage = "command line interface for the orangesats wallet"
	app.Before = func(ctx *cli.Context) error {
		return config.InitConfig()
	}
	app.Commands = append(
		app.Commands,
		&genmnemonic,
		&address,
		&balance,
		&send,
		&bumpfee,
		&cpfp,
		&txinfo,
	)

	if err := app.Run(os.Args); err != nil {
		fatal(err)
	}
}

func getWallet(ctx *cli.Context) (*wallet.Wallet, error) {
	mnemonic := ctx.String("mnemonic")
	if len(mnemonic) <= 0 {
		mnemonic = os.Getenv(mnemonicEnvKey)
	}
	if len(mnemonic) <= 0 {
		return nil, fmt.Errorf(
			"missing mnemonic: use --mnemonic or export %s", mnemonicEnvKey,
		)
	}
	return wallet.NewWalletFromMnemonic(wallet.NewWalletFromMnemonicOpts{
		Mnemonic:   mnemonic,
		Passphrase: ctx.String("passphrase"),
	})
}

func getExplorer() (explorer.Service, error) {
	return esplora.NewService(
		config.GetExplorerEndpoint(),
		config.GetInt(config.ExplorerRequestsPerSecondKey),
	)
}

// unspentsForTxInputs resolves the outputs spent by the given transaction
// as unspents usable for fee accounting and signing.
func unspentsForTxInputs(
	svc explorer.Service, tx *wire.MsgTx,
) ([]explorer.Utxo, error) {
	unspents := make([]explorer.Utxo, 0, len(tx.TxIn))
	for _, in := range tx.TxIn {
		txid := in.PreviousOutPoint.Hash.String()
		prevTxHex, err := svc.GetTransactionHex(txid)
		if err != nil {
			return nil, err
		}
		prevTx, err := wallet.NewTxFromHex(prevTxHex)
		if err != nil {
			return nil, err
		}
		vout := in.PreviousOutPoint.Index
		if int(vout) >= len(prevTx.TxOut) {
			return nil, fmt.Errorf("transaction %s has no output %d", txid, vout)
		}
		prevout := prevTx.TxOut[vout]
		unspents = append(unspents, explorer.NewWitnessUtxo(
			txid, vout, uint64(prevout.Value), prevout.PkScript, "", 1,
		))
	}
	return unspents, nil
}

func printRespJSON(resp interface{}) {
	jsonBytes, err := json.MarshalIndent(resp, "", "\t")
	if err != nil {
		fatal(err)
	}
	fmt.Println(string(jsonBytes))
}

func fatal(err error) {
	log.Fatalf("[orangesats] %v", err)
}
