package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	root := &cobra.Command{
		Use:          "quoter",
		Short:        "Weighted pool pricing and trading client",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file path")

	priceCmd := &cobra.Command{
		Use:   "price",
		Short: "Quote the spot price of a trading pair",
		RunE:  runPrice,
	}

	priceCmd.Flags().String("pool", "", "pool address")
	priceCmd.Flags().String("token-in", "", "input token address")
	priceCmd.Flags().String("token-out", "", "output token address")
	addCommonFlags(priceCmd)

	root.AddCommand(priceCmd)

	swapCmd := &cobra.Command{
		Use:   "swap",
		Short: "Quote a swap and optionally submit it",
		RunE:  runSwap,
	}

	swapCmd.Flags().String("pool", "", "pool address")
	swapCmd.Flags().String("token-in", "", "input token address")
	swapCmd.Flags().String("token-out", "", "output token address")
	swapCmd.Flags().String("amount-in", "", "exact amount to pay")
	swapCmd.Flags().String("amount-out", "", "exact amount to receive")
	swapCmd.Flags().String("min-out", "", "minimum acceptable receipt")
	swapCmd.Flags().String("max-in", "", "maximum acceptable payment")
	swapCmd.Flags().String("max-price", "", "maximum spot price after the swap")
	swapCmd.Flags().Bool("submit", false, "sign and submit the operation")
	swapCmd.Flags().Bool("approve", false, "ensure the pool allowance before submitting")
	addCommonFlags(swapCmd)

	root.AddCommand(swapCmd)

	joinCmd := &cobra.Command{
		Use:   "join",
		Short: "Quote a single-asset deposit and optionally submit it",
		RunE:  runJoin,
	}

	joinCmd.Flags().String("pool", "", "pool address")
	joinCmd.Flags().String("token", "", "deposit token address")
	joinCmd.Flags().String("amount-in", "", "exact amount to deposit")
	joinCmd.Flags().String("pool-out", "", "exact shares to mint")
	joinCmd.Flags().String("min-pool-out", "", "minimum acceptable shares")
	joinCmd.Flags().String("max-in", "", "maximum acceptable deposit")
	joinCmd.Flags().Bool("submit", false, "sign and submit the operation")
	joinCmd.Flags().Bool("approve", false, "ensure the pool allowance before submitting")
	addCommonFlags(joinCmd)

	root.AddCommand(joinCmd)

	exitCmd := &cobra.Command{
		Use:   "exit",
		Short: "Quote a single-asset withdrawal and optionally submit it",
		RunE:  runExit,
	}

	exitCmd.Flags().String("pool", "", "pool address")
	exitCmd.Flags().String("token", "", "withdrawal token address")
	exitCmd.Flags().String("pool-in", "", "exact shares to burn")
	exitCmd.Flags().String("amount-out", "", "exact amount to withdraw")
	exitCmd.Flags().String("min-out", "", "minimum acceptable receipt")
	exitCmd.Flags().String("max-pool-in", "", "maximum acceptable shares to burn")
	exitCmd.Flags().Bool("submit", false, "sign and submit the operation")
	addCommonFlags(exitCmd)

	root.AddCommand(exitCmd)

	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Plan a two-token pool and optionally run its setup",
		RunE:  runCreate,
	}

	createCmd.Flags().String("named-token", "", "token whose amount and weight are given")
	createCmd.Flags().String("derived-token", "", "token whose amount is derived")
	createCmd.Flags().String("amount", "", "named token amount")
	createCmd.Flags().String("weight", "", "named token weight, 1 to 9 of a 10 unit split")
	createCmd.Flags().String("fee", "", "swap fee, at most 0.1")
	createCmd.Flags().String("pool", "", "deployed pool address for setup")
	createCmd.Flags().Bool("submit", false, "run bind, fee and finalize against the pool")
	createCmd.Flags().Bool("approve", false, "ensure pool allowances before binding")
	addCommonFlags(createCmd)

	root.AddCommand(createCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func addCommonFlags(cmd *cobra.Command) {
	cmd.Flags().String("rpc", "", "chain RPC URL")
	cmd.Flags().String("key", "", "hex private key for signing")
	cmd.Flags().String("key-env", "", "environment variable holding the private key")
	cmd.Flags().String("journal", "./data/operations.jsonl", "operation journal JSONL path")
	cmd.Flags().Bool("journal-enabled", true, "enable the operation journal")
	cmd.Flags().String("pg-dsn", "", "Postgres DSN for the journal, overrides JSONL")
	cmd.Flags().Int("max-retries", 5, "maximum read retry attempts")
	cmd.Flags().Duration("retry-backoff", 500*time.Millisecond, "initial read retry backoff")
	cmd.Flags().Uint64("gas-limit", 0, "fixed gas limit, 0 estimates per transaction")
	cmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevel()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}
