package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"poolQuote/internal/model"
)

func runSwap(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := newApp(ctx, cmd, true)
	if err != nil {
		return err
	}
	defer app.Close()

	flags := cmd.Flags()
	pool, _ := flags.GetString("pool")
	tokenIn, _ := flags.GetString("token-in")
	tokenOut, _ := flags.GetString("token-out")

	amountIn, err := flagDec(flags, "amount-in")
	if err != nil {
		return err
	}
	amountOut, err := flagDec(flags, "amount-out")
	if err != nil {
		return err
	}
	maxPrice, err := flagDec(flags, "max-price")
	if err != nil {
		return err
	}

	var op model.Operation
	switch {
	case !amountIn.IsNil() && !amountOut.IsNil():
		return fmt.Errorf("set exactly one of --amount-in and --amount-out")

	case !amountIn.IsNil():
		minOut, err := flagDec(flags, "min-out")
		if err != nil {
			return err
		}
		op, err = app.client.QuoteSwapExactIn(ctx, pool, tokenIn, tokenOut, amountIn, minOut, maxPrice)
		if err != nil {
			return err
		}

	case !amountOut.IsNil():
		maxIn, err := flagDec(flags, "max-in")
		if err != nil {
			return err
		}
		op, err = app.client.QuoteSwapExactOut(ctx, pool, tokenIn, tokenOut, amountOut, maxIn, maxPrice)
		if err != nil {
			return err
		}

	default:
		return fmt.Errorf("set one of --amount-in and --amount-out")
	}

	if err := printJSON(op); err != nil {
		return err
	}

	return app.submitOperation(ctx, cmd, op, op.TokenIn, op.AmountIn)
}
