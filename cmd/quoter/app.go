package main

import (
	"context"
	"crypto/ecdsa"
	"encoding/json"
	"fmt"

	"cosmossdk.io/math"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"poolQuote/internal/bpool"
	"poolQuote/internal/chain"
	"poolQuote/internal/config"
	"poolQuote/internal/model"
	"poolQuote/internal/storage"
	"poolQuote/internal/storage/postgres"
	"poolQuote/internal/submit"
	"poolQuote/internal/trader"
)

// app bundles the wired dependencies of one command invocation.
type app struct {
	cfg    config.Config
	logger *zap.Logger
	client *trader.Client
	hasKey bool

	closers []func()
}

// newApp loads config, builds the logger and journal, and, when the
// command touches the chain, dials the RPC endpoint and wires the
// accessor and optional submitter.
func newApp(ctx context.Context, cmd *cobra.Command, needChain bool) (*app, error) {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return nil, err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, logger: logger}

	journal, err := a.newJournal(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}

	var (
		accessor  trader.Accessor
		submitter trader.Submitter
	)
	if needChain {
		if cfg.RPCURL == "" {
			a.Close()
			return nil, fmt.Errorf("rpc url is required")
		}

		chainClient, err := chain.NewClient(ctx, cfg.RPCURL)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("connect rpc: %w", err)
		}
		a.closers = append(a.closers, chainClient.Close)

		acc := bpool.NewAccessor(chainClient, cfg.MaxRetries, cfg.RetryBackoff, logger)
		accessor = acc

		key, err := loadKey(cfg)
		if err != nil {
			a.Close()
			return nil, err
		}
		if key != nil {
			sub, err := submit.NewSubmitter(ctx, chainClient, acc, key, cfg.GasLimit, logger)
			if err != nil {
				a.Close()
				return nil, err
			}
			submitter = sub
			a.hasKey = true
		}
	}

	a.client = trader.NewClient(accessor, submitter, journal, logger)
	return a, nil
}

func (a *app) newJournal(ctx context.Context) (storage.Journal, error) {
	if a.cfg.PGDSN != "" {
		store, err := postgres.NewStore(ctx, a.cfg.PGDSN)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		a.closers = append(a.closers, store.Close)
		if err := store.EnsureSchema(ctx); err != nil {
			return nil, fmt.Errorf("ensure journal schema: %w", err)
		}
		return store, nil
	}
	if a.cfg.JournalEnabled {
		return storage.NewJsonlJournal(a.cfg.Journal), nil
	}
	return nil, nil
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

// requireKey guards the submit paths: quoting works without a key,
// submission does not.
func (a *app) requireKey() error {
	if !a.hasKey {
		return fmt.Errorf("a signing key is required for --submit, set --key or --key-env")
	}
	return nil
}

func loadKey(cfg config.Config) (*ecdsa.PrivateKey, error) {
	switch {
	case cfg.Key != "":
		return submit.LoadKey(cfg.Key)
	case cfg.KeyEnv != "":
		return submit.LoadKeyFromEnv(cfg.KeyEnv)
	default:
		return nil, nil
	}
}

// flagDec parses an optional decimal flag; empty means a nil dec,
// which the guards treat as a disabled bound.
func flagDec(flags *pflag.FlagSet, name string) (math.LegacyDec, error) {
	s, err := flags.GetString(name)
	if err != nil {
		return math.LegacyDec{}, err
	}
	if s == "" {
		return math.LegacyDec{}, nil
	}
	return bpool.ParseAmount(s)
}

func requireFlagDec(flags *pflag.FlagSet, name string) (math.LegacyDec, error) {
	d, err := flagDec(flags, name)
	if err != nil {
		return math.LegacyDec{}, err
	}
	if d.IsNil() {
		return math.LegacyDec{}, fmt.Errorf("--%s is required", name)
	}
	return d, nil
}

func printJSON(v interface{}) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

// submitOperation executes a quoted descriptor when --submit is set,
// ensuring the pool allowance first when --approve is set. payToken and
// payAmount name what the pool will pull; empty skips the allowance
// step.
func (a *app) submitOperation(ctx context.Context, cmd *cobra.Command, op model.Operation, payToken, payAmount string) error {
	doSubmit, _ := cmd.Flags().GetBool("submit")
	if !doSubmit {
		return nil
	}
	if err := a.requireKey(); err != nil {
		return err
	}

	doApprove, _ := cmd.Flags().GetBool("approve")
	if doApprove && payToken != "" {
		amount, err := bpool.ParseAmount(payAmount)
		if err != nil {
			return err
		}
		rec, err := a.client.EnsureAllowance(ctx, payToken, op.Pool, amount)
		if err != nil {
			return err
		}
		if rec != nil {
			a.logger.Info("allowance approved",
				zap.String("token", payToken),
				zap.String("tx", rec.TxHash))
		}
	}

	rec, err := a.client.Execute(ctx, op)
	if rec != nil {
		if perr := printJSON(rec); perr != nil {
			return perr
		}
	}
	return err
}
