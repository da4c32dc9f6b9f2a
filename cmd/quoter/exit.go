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

func runExit(cmd *cobra.Command, _ []string) error {
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

	poolIn, err := flagDec(flags, "pool-in")
	if err != nil {
		return err
	}
	amountOut, err := flagDec(flags, "amount-out")
	if err != nil {
		return err
	}

	var op model.Operation
	switch {
	case !poolIn.IsNil() && !amountOut.IsNil():
		return fmt.Errorf("set exactly one of --pool-in and --amount-out")

	case !poolIn.IsNil():
		minOut, err := flagDec(flags, "min-out")
		if err != nil {
			return err
		}
		op, err = app.client.QuoteExitPoolIn(ctx, pool, token, poolIn, minOut)
		if err != nil {
			return err
		}

	case !amountOut.IsNil():
		maxPoolIn, err := flagDec(flags, "max-pool-in")
		if err != nil {
			return err
		}
		op, err = app.client.QuoteExitSingleOut(ctx, pool, token, amountOut, maxPoolIn)
		if err != nil {
			return err
		}

	default:
		return fmt.Errorf("set one of --pool-in and --amount-out")
	}

	if err := printJSON(op); err != nil {
		return err
	}

	// Burning shares draws nothing from the trader's token balances, so
	// no allowance step here.
	return app.submitOperation(ctx, cmd, op, "", "")
}
