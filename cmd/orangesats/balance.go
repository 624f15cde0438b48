package main

import (
	"github.com/urfave/cli/v2"
)

var balance = cli.Command{
	Name:  "balance",
	Usage: "return the balance of the given addresses",
	Flags: []cli.Flag{
		&cli.StringSliceFlag{
			Name:     "addresses",
			Usage:    "the addresses to fetch the balance of",
			Required: true,
		},
	},
	Action: balanceAction,
}

type balanceInfo struct {
	TotalBalance       uint64 `json:"total_balance"`
	ConfirmedBalance   uint64 `json:"confirmed_balance"`
	UnconfirmedBalance uint64 `json:"unconfirmed_balance"`
}

func balanceAction(ctx *cli.Context) error {
	svc, err := getExplorer()
	if err != nil {
		return err
	}

	unspents, err := svc.GetUnspentsForAddresses(ctx.StringSlice("addresses"))
	if err != nil {
		return err
	}

	info := balanceInfo{}
	for _, unspent := range unspents {
		info.TotalBalance += unspent.Value()
		if unspent.IsConfirmed() {
			info.ConfirmedBalance += unspent.Value()
		} else {
			info.UnconfirmedBalance += unspent.Value()
		}
	}

	printRespJSON(info)
	return nil
}
