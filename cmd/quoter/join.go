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

func runJoin(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := newApp(ctx, cmd, true)
	if err != nil {
		return err
	}
	defer app.Close()

	flags := cmd.Flags()
	pool, _ := flags.GetString("pool")
	token, _ := flags.GetString("token")

	amountIn, err := flagDec(flags, "amount-in")
	if err != nil {
		return err
	}
	poolOut, err := flagDec(flags, "pool-out")
	if err != nil {
		return err
	}

	var op model.Operation
	switch {
	case !amountIn.IsNil() && !poolOut.IsNil():
		return fmt.Errorf("set exactly one of --amount-in and --pool-out")

	case !amountIn.IsNil():
		minPoolOut, err := flagDec(flags, "min-pool-out")
		if err != nil {
			return err
		}
		op, err = app.client.QuoteJoinSingleIn(ctx, pool, token, amountIn, minPoolOut)
		if err != nil {
			return err
		}

	case !poolOut.IsNil():
		maxIn, err := flagDec(flags, "max-in")
		if err != nil {
			return err
		}
		op, err = app.client.QuoteJoinPoolOut(ctx, pool, token, poolOut, maxIn)
		if err != nil {
			return err
		}

	default:
		return fmt.Errorf("set one of --amount-in and --pool-out")
	}

	if err := printJSON(op); err != nil {
		return err
	}

	return app.submitOperation(ctx, cmd, op, op.TokenIn, op.AmountIn)
}
