package main

import (
	"encoding/hex"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/orangesats/orangesats-wallet/config"
	"github.com/orangesats/orangesats-wallet/pkg/explorer"
	"github.com/orangesats/orangesats-wallet/pkg/scriptutil"
	"github.com/orangesats/orangesats-wallet/pkg/wallet"
)

var cpfp = cli.Command{
	Name:  "cpfp",
	Usage: "spend the outputs of an unconfirmed transaction to raise its effective fee rate",
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
			Usage: "the derivation path of the address owning the parent outputs",
			Value: "m/84'/0'/0'/0/0",
		},
		&cli.StringFlag{
			Name:     "txid",
			Usage:    "the id of the parent transaction",
			Required: true,
		},
		&cli.Float64Flag{
			Name:  "fee-rate",
			Usage: "the target combined fee rate in sat/vByte, current market rate when omitted",
		},
	},
	Action: cpfpAction,
}

func cpfpAction(ctx *cli.Context) error {
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

	parentTxid := ctx.String("txid")
	parentTxHex, err := svc.GetTransactionHex(parentTxid)
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

	unspents, err := svc.GetUnspents(addr)
	if err != nil {
		return err
	}
	parentUnspents := make([]explorer.Utxo, 0, len(unspents))
	for _, u := range unspents {
		if u.Hash() == parentTxid {
			parentUnspents = append(parentUnspents, u)
		}
	}
	if len(parentUnspents) <= 0 {
		return fmt.Errorf(
			"transaction %s pays no unspent output to address %s", parentTxid, addr,
		)
	}

	satsPerVByte, err := feeRate(ctx, svc)
	if err != nil {
		return err
	}

	childTxHex, err := wallet.CreateCPFPTransaction(wallet.CreateCPFPTransactionOpts{
		ParentTxHex:        parentTxHex,
		Unspents:           parentUnspents,
		OutputAddress:      addr,
		TargetSatsPerVByte: satsPerVByte,
		Network:            net,
		Lookup:             svc,
	})
	if err != nil {
		return err
	}

	script, err := scriptutil.ScriptFromAddress(addr, net)
	if err != nil {
		return err
	}
	signedTxHex, err := w.SignTransaction(wallet.SignTransactionOpts{
		TxHex:    childTxHex,
		Unspents: parentUnspents,
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
