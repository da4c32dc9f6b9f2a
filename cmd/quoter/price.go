package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func runPrice(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := newApp(ctx, cmd, true)
	if err != nil {
		return err
	}
	defer app.Close()

	pool, _ := cmd.Flags().GetString("pool")
	tokenIn, _ := cmd.Flags().GetString("token-in")
	tokenOut, _ := cmd.Flags().GetString("token-out")

	q, snap, err := app.client.SpotPrice(ctx, pool, tokenIn, tokenOut)
	if err != nil {
		return err
	}

	app.logger.Info("spot price",
		zap.String("pool", snap.Pool),
		zap.String("price", q.Price.String()),
		zap.Uint64("block", snap.Block),
	)

	return printJSON(struct {
		Pool         string `json:"pool"`
		TokenIn      string `json:"token_in"`
		TokenOut     string `json:"token_out"`
		Price        string `json:"price"`
		PriceSansFee string `json:"price_sans_fee"`
		Block        uint64 `json:"block"`
	}{
		Pool:         snap.Pool,
		TokenIn:      q.In.Address,
		TokenOut:     q.Out.Address,
		Price:        q.Price.String(),
		PriceSansFee: q.PriceNoFee.String(),
		Block:        snap.Block,
	})
}
