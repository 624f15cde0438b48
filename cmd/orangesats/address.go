package main

import (
	"github.com/urfave/cli/v2"

	"github.com/orangesats/orangesats-wallet/config"
	"github.com/orangesats/orangesats-wallet/pkg/wallet"
)

var address = cli.Command{
	Name:  "address",
	Usage: "derive an address of the wallet",
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
			Usage: "the derivation path of the address",
			Value: "m/84'/0'/0'/0/0",
		},
	},
	Action: addressAction,
}

func addressAction(ctx *cli.Context) error {
	w, err := getWallet(ctx)
	if err != nil {
		return err
	}
	net, err := config.GetNetwork()
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

	printRespJSON(map[string]string{
		"address": addr,
		"path":    path,
	})
	return nil
}
