package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"cosmossdk.io/math"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"poolQuote/internal/bpool"
	"poolQuote/internal/model"
)

func runCreate(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	flags := cmd.Flags()
	doSubmit, _ := flags.GetBool("submit")

	// Planning is pure; the chain is only needed to run the setup.
	app, err := newApp(ctx, cmd, doSubmit)
	if err != nil {
		return err
	}
	defer app.Close()

	named, _ := flags.GetString("named-token")
	derived, _ := flags.GetString("derived-token")

	amount, err := requireFlagDec(flags, "amount")
	if err != nil {
		return err
	}
	weight, err := requireFlagDec(flags, "weight")
	if err != nil {
		return err
	}
	fee, err := flagDec(flags, "fee")
	if err != nil {
		return err
	}
	if fee.IsNil() {
		fee = math.LegacyZeroDec()
	}

	plan, err := app.client.PlanCreation(ctx, named, derived, amount, weight, fee)
	if err != nil {
		return err
	}

	if err := printJSON(plan); err != nil {
		return err
	}

	if !doSubmit {
		return nil
	}
	if err := app.requireKey(); err != nil {
		return err
	}

	pool, _ := flags.GetString("pool")
	if pool == "" {
		return fmt.Errorf("--pool is required to run the setup")
	}

	doApprove, _ := flags.GetBool("approve")
	if doApprove {
		for _, side := range []model.SetupSide{plan.Named, plan.Derived} {
			amt, err := bpool.ParseAmount(side.Amount)
			if err != nil {
				return err
			}
			rec, err := app.client.EnsureAllowance(ctx, side.Token, pool, amt)
			if err != nil {
				return err
			}
			if rec != nil {
				app.logger.Info("allowance approved",
					zap.String("token", side.Token),
					zap.String("tx", rec.TxHash))
			}
		}
	}

	receipts, err := app.client.Setup(ctx, pool, plan)
	if len(receipts) > 0 {
		if perr := printJSON(receipts); perr != nil {
			return perr
		}
	}
	return err
}
