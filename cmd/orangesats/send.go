package main

import (
	"encoding/hex"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v2"

	"github.com/orangesats/orangesats-wallet/config"
	"github.com/orangesats/orangesats-wallet/pkg/explorer"
	"github.com/orangesats/orangesats-wallet/pkg/scriptutil"
	"github.com/orangesats/orangesats-wallet/pkg/wallet"
)

var send = cli.Command{
	Name:  "send",
	Usage: "send funds to an address",
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
			Name:     "to",
			Usage:    "the recipient address",
			Required: true,
		},
		&cli.Uint64Flag{
			Name:     "amount",
			Usage:    "the amount to send in satoshis",
			Required: true,
		},
		&cli.Float64Flag{
			Name:  "fee-rate",
			Usage: "the fee rate in sat/vByte, current market rate when omitted",
		},
	},
	Action: sendAction,
}

func sendAction(ctx *cli.Context) error {
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
	if len(unspents) <= 0 {
		return fmt.Errorf("no funds on address %s", addr)
	}

	satsPerVByte, err := feeRate(ctx, svc)
	if err != nil {
		return err
	}

	// coins are selected against the worst case fee of spending every
	// unspent, the builder then computes the exact one
	amount := ctx.Uint64("amount")
	maxFee := wallet.EstimateFeeAmount(
		wallet.EstimateTxSize(unspentScriptTypes(unspents), 2), satsPerVByte,
	)
	selectedUnspents, _, err := explorer.SelectUnspents(unspents, amount+maxFee)
	if err != nil {
		return err
	}

	result, err := wallet.BuildTransaction(wallet.BuildTransactionOpts{
		Unspents: selectedUnspents,
		Outputs: []wallet.Recipient{
			{Address: ctx.String("to"), Amount: amount},
		},
		ChangeAddress: addr,
		SatsPerVByte:  satsPerVByte,
		Network:       net,
	})
	if err != nil {
		return err
	}

	script, err := scriptutil.ScriptFromAddress(addr, net)
	if err != nil {
		return err
	}
	signedTxHex, err := w.SignTransaction(wallet.SignTransactionOpts{
		TxHex:    result.TxHex,
		Unspents: selectedUnspents,
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

	printRespJSON(map[string]interface{}{
		"txid":   txid,
		"fee":    result.FeeAmount,
		"change": result.ChangeAmount,
	})
	return nil
}

func unspentScriptTypes(unspents []explorer.Utxo) []scriptutil.ScriptType {
	types := make([]scriptutil.ScriptType, 0, len(unspents))
	for _, u := range unspents {
		types = append(types, scriptutil.DetectScriptType(u.Script()))
	}
	return types
}

func feeRate(ctx *cli.Context, svc explorer.Service) (decimal.Decimal, error) {
	if rate := ctx.Float64("fee-rate"); rate > 0 {
		return decimal.NewFromFloat(rate), nil
	}
	estimates, err := svc.GetFeeEstimates()
	if err != nil {
		return decimal.Zero, err
	}
	return estimates.Normal, nil
}
