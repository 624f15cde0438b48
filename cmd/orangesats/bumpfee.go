package main

import (
	"encoding/hex"

	"github.com/urfave/cli/v2"

	"github.com/orangesats/orangesats-wallet/config"
	"github.com/orangesats/orangesats-wallet/pkg/scriptutil"
	"github.com/orangesats/orangesats-wallet/pkg/wallet"
)

var bumpfee = cli.Command{
	Name:  "bumpfee",
	Usage: "replace an unconfirmed transaction with one paying a higher fee",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "mnemonic",
			Usage: "the wallet mnemonic",
		},
		&cli.StringFlag{
			Name:  "passphrase",
			Usage: "the optional mnemonic passphrase",
		},
		&cli.StringFlag{
			Name:  "path",
			Usage: "the derivation path of the address holding the funds",
			Value: "m/84'/0'/0'/0/0",
		},
		&cli.StringFlag{
			Name:     "txid",
			Usage:    "the id of the transaction to replace",
			Required: true,
		},
		&cli.Float64Flag{
			Name:  "fee-rate",
			Usage: "the target fee rate in sat/vByte, current market rate when omitted",
		},
	},
	Action: bumpFeeAction,
}

func bumpFeeAction(ctx *cli.Context) error {
	w, err := getWallet(ctx)
	if err != nil {
		return err
	}
	net, err := config.GetNetwork()
	if err != nil {
		return err
	}
	svc, err := getExplorer()
	if err != nil {
		return err
	}

	txHex, err := svc.GetTransactionHex(ctx.String("txid"))
	if err != nil {
		return err
	}

	path := ctx.String("path")
	_, addr, err := w.DeriveAddress(wallet.DeriveAddressOpts{
		DerivationPath: path,
		Network:        net,
	})
	if err != nil {
		return err
	}
	script, err := scriptutil.ScriptFromAddress(addr, net)
	if err != nil {
		return err
	}

	satsPerVByte, err := feeRate(ctx, svc)
	if err != nil {
		return err
	}

	newTxHex, err := wallet.CreateRBFTransaction(wallet.CreateRBFTransactionOpts{
		TxHex:              txHex,
		TargetSatsPerVByte: satsPerVByte,
		WalletScripts:      [][]byte{script},
		Lookup:             svc,
	})
	if err != nil {
		return err
	}

	newTx, err := wallet.NewTxFromHex(newTxHex)
	if err != nil {
		return err
	}
	unspents, err := unspentsForTxInputs(svc, newTx)
	if err != nil {
		return err
	}

	signedTxHex, err := w.SignTransaction(wallet.SignTransactionOpts{
		TxHex:    newTxHex,
		Unspents: unspents,
		DerivationPathMap: map[string]string{
			hex.EncodeToString(script): path,
		},
		Network: net,
	})
	if err != nil {
		return err
	}

	txid, err := svc.BroadcastTransaction(signedTxHex)
	if err != nil {
		return err
	}

	printRespJSON(map[string]string{"txid": txid})
	return nil
}
