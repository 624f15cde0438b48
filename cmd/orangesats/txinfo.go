package main

import (
	"github.com/urfave/cli/v2"

	"github.com/orangesats/orangesats-wallet/pkg/wallet"
)

var txinfo = cli.Command{
	Name:  "txinfo",
	Usage: "return info about a transaction",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "txid",
			Usage:    "the id of the transaction",
			Required: true,
		},
	},
	Action: txInfoAction,
}

func txInfoAction(ctx *cli.Context) error {
	svc, err := getExplorer()
	if err != nil {
		return err
	}

	txid := ctx.String("txid")
	txHex, err := svc.GetTransactionHex(txid)
	if err != nil {
		return err
	}
	trx, err := svc.GetTransaction(txid)
	if err != nil {
		return err
	}

	tx, err := wallet.NewTxFromHex(txHex)
	if err != nil {
		return err
	}

	printRespJSON(map[string]interface{}{
		"txid":      txid,
		"hex":       txHex,
		"vsize":     wallet.TxVirtualSize(tx),
		"inputs":    len(tx.TxIn),
		"outputs":   len(tx.TxOut),
		"size":      trx.Size(),
		"weight":    trx.Weight(),
		"fee":       trx.Fee(),
		"confirmed": trx.Confirmed(),
	})
	return nil
}
