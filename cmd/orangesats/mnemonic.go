package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/orangesats/orangesats-wallet/pkg/wallet"
)

var genmnemonic = cli.Command{
	Name:  "genmnemonic",
	Usage: "generate a new mnemonic seed phrase",
	Flags: []cli.Flag{
		&cli.IntFlag{
			Name:  "entropy",
			Usage: "entropy size in bits, one of 128, 160, 192, 224, 256",
			Value: 128,
		},
	},
	Action: genMnemonicAction,
}

func genMnemonicAction(ctx *cli.Context) error {
	mnemonic, err := wallet.NewMnemonic(wallet.NewMnemonicOpts{
		EntropySize: ctx.Int("entropy"),
	})
	if err != nil {
		return err
	}

	fmt.Println(mnemonic)
	return nil
}
