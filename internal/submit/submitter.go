// Package submit signs and broadcasts pool transactions built from
// operation descriptors. Amounts cross from fixed-point decimals to
// on-chain integers here; nothing in this package re-checks pricing,
// the descriptors are submitted as built.
package submit

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"go.uber.org/zap"

	"poolQuote/internal/bpool"
	"poolQuote/internal/model"
)

const defaultPollInterval = 2 * time.Second

// TxSender is the chain surface needed for sending transactions.
type TxSender interface {
	GetChainID(ctx context.Context) (*big.Int, error)
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
}

// MetaSource resolves token decimals for amount conversion.
type MetaSource interface {
	TokenMeta(ctx context.Context, token common.Address) (model.TokenMeta, error)
}

// Submitter turns operation descriptors into signed transactions and
// waits for their receipts. Submissions are never retried; any failure
// is returned to the caller as is.
type Submitter struct {
	sender TxSender
	meta   MetaSource
	key    *ecdsa.PrivateKey
	from   common.Address

	chainID      *big.Int
	gasLimit     uint64
	pollInterval time.Duration
	logger       *zap.Logger
}

// NewSubmitter creates a submitter for the given key. The chain ID is
// fetched once up front. A gasLimit of zero means estimate per
// transaction.
func NewSubmitter(ctx context.Context, sender TxSender, meta MetaSource, key *ecdsa.PrivateKey, gasLimit uint64, logger *zap.Logger) (*Submitter, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	chainID, err := sender.GetChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch chain id: %w", err)
	}

	return &Submitter{
		sender:       sender,
		meta:         meta,
		key:          key,
		from:         crypto.PubkeyToAddress(key.PublicKey),
		chainID:      chainID,
		gasLimit:     gasLimit,
		pollInterval: defaultPollInterval,
		logger:       logger,
	}, nil
}

// From returns the sender address derived from the signing key.
func (s *Submitter) From() common.Address {
	return s.from
}

// Submit signs and broadcasts the transaction for an operation
// descriptor and waits for it to be mined. A reverted transaction
// returns both the receipt and an error.
func (s *Submitter) Submit(ctx context.Context, op model.Operation) (*model.Receipt, error) {
	pool := common.HexToAddress(op.Pool)

	data, err := s.packOperation(ctx, op)
	if err != nil {
		return nil, err
	}

	s.logger.Info("submitting operation",
		zap.String("kind", string(op.Kind)),
		zap.String("pool", op.Pool))

	return s.send(ctx, pool, data)
}

// Setup runs the pool setup sequence for a creation plan: bind the
// named token, bind the derived token, set the swap fee, finalize.
// The sequence stops at the first failure and returns the receipts
// collected so far.
func (s *Submitter) Setup(ctx context.Context, pool common.Address, plan model.SetupPlan) ([]model.Receipt, error) {
	poolABI, err := bpool.PoolABI()
	if err != nil {
		return nil, err
	}

	var receipts []model.Receipt
	step := func(name string, args ...interface{}) error {
		data, err := poolABI.Pack(name, args...)
		if err != nil {
			return fmt.Errorf("pack %s: %w", name, err)
		}
		rec, err := s.send(ctx, pool, data)
		if rec != nil {
			receipts = append(receipts, *rec)
		}
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		return nil
	}

	for _, side := range []model.SetupSide{plan.Named, plan.Derived} {
		token := common.HexToAddress(side.Token)
		balance, err := s.tokenWei(ctx, side.Token, side.Amount, true)
		if err != nil {
			return receipts, err
		}
		denorm, err := shareWei(side.Weight, true)
		if err != nil {
			return receipts, err
		}
		if err := step("bind", token, balance, denorm); err != nil {
			return receipts, err
		}
	}

	fee, err := shareWei(plan.SwapFee, false)
	if err != nil {
		return receipts, err
	}
	if err := step("setSwapFee", fee); err != nil {
		return receipts, err
	}
	if err := step("finalize"); err != nil {
		return receipts, err
	}

	s.logger.Info("pool setup complete",
		zap.String("pool", pool.Hex()),
		zap.Int("transactions", len(receipts)))
	return receipts, nil
}

// Approve grants the spender an allowance on the token. The amount is
// converted at the token's decimals, rounding up so the allowance
// covers the intended spend.
func (s *Submitter) Approve(ctx context.Context, token, spender common.Address, amount string) (*model.Receipt, error) {
	wei, err := s.tokenWei(ctx, token.Hex(), amount, true)
	if err != nil {
		return nil, err
	}

	erc, err := bpool.ERC20ABI()
	if err != nil {
		return nil, err
	}
	data, err := erc.Pack("approve", spender, wei)
	if err != nil {
		return nil, fmt.Errorf("pack approve: %w", err)
	}

	s.logger.Info("approving allowance",
		zap.String("token", token.Hex()),
		zap.String("spender", spender.Hex()),
		zap.String("amount", amount))

	return s.send(ctx, token, data)
}

func (s *Submitter) send(ctx context.Context, to common.Address, data []byte) (*model.Receipt, error) {
	nonce, err := s.sender.PendingNonceAt(ctx, s.from)
	if err != nil {
		return nil, fmt.Errorf("fetch nonce: %w", err)
	}

	gasPrice, err := s.sender.SuggestGasPrice(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch gas price: %w", err)
	}

	gasLimit := s.gasLimit
	if gasLimit == 0 {
		gasLimit, err = s.sender.EstimateGas(ctx, ethereum.CallMsg{From: s.from, To: &to, Data: data})
		if err != nil {
			return nil, fmt.Errorf("estimate gas: %w", err)
		}
	}

	tx := types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		To:       &to,
		Value:    big.NewInt(0),
		Gas:      gasLimit,
		GasPrice: gasPrice,
		Data:     data,
	})
	signed, err := types.SignTx(tx, types.LatestSignerForChainID(s.chainID), s.key)
	if err != nil {
		return nil, fmt.Errorf("sign transaction: %w", err)
	}

	if err := s.sender.SendTransaction(ctx, signed); err != nil {
		return nil, fmt.Errorf("send transaction: %w", err)
	}

	s.logger.Debug("transaction sent",
		zap.String("tx", signed.Hash().Hex()),
		zap.Uint64("nonce", nonce))

	receipt, err := s.waitMined(ctx, signed.Hash())
	if err != nil {
		return nil, err
	}

	rec := &model.Receipt{
		TxHash:  receipt.TxHash.Hex(),
		Block:   receipt.BlockNumber.Uint64(),
		GasUsed: receipt.GasUsed,
		Status:  receipt.Status,
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return rec, fmt.Errorf("transaction %s reverted", rec.TxHash)
	}

	s.logger.Info("transaction mined",
		zap.String("tx", rec.TxHash),
		zap.Uint64("block", rec.Block),
		zap.Uint64("gasUsed", rec.GasUsed))
	return rec, nil
}

func (s *Submitter) waitMined(ctx context.Context, txHash common.Hash) (*types.Receipt, error) {
	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for {
		receipt, err := s.sender.TransactionReceipt(ctx, txHash)
		if err == nil {
			return receipt, nil
		}
		if !errors.Is(err, ethereum.NotFound) {
			return nil, fmt.Errorf("fetch receipt: %w", err)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}
