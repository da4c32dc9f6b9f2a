package bpool

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"cosmossdk.io/math"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"poolQuote/internal/model"
)

// Caller is the read surface the accessor needs from a chain client.
type Caller interface {
	CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
	LatestBlockNumber(ctx context.Context) (uint64, error)
	BlockTimestamp(ctx context.Context, number uint64) (uint64, error)
}

// Accessor reads weighted-pool state. Every field of a snapshot is read at
// one pinned block so concurrent pool activity cannot tear the view.
type Accessor struct {
	caller     Caller
	tokens     *TokenMetaCache
	maxRetries int
	baseDelay  time.Duration
	logger     *zap.Logger
}

func NewAccessor(caller Caller, maxRetries int, baseDelay time.Duration, logger *zap.Logger) *Accessor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Accessor{
		caller:     caller,
		tokens:     NewTokenMetaCache(),
		maxRetries: maxRetries,
		baseDelay:  baseDelay,
		logger:     logger,
	}
}

// call packs, calls, and unpacks one view method, retrying transient RPC
// failures.
func (a *Accessor) call(ctx context.Context, target common.Address, parsed abi.ABI, block *big.Int, method string, args ...interface{}) ([]interface{}, error) {
	data, err := parsed.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("pack %s: %w", method, err)
	}
	msg := ethereum.CallMsg{To: &target, Data: data}
	var resp []byte
	err = withRetry(ctx, a.maxRetries, a.baseDelay, func(ctx context.Context) error {
		var callErr error
		resp, callErr = a.caller.CallContract(ctx, msg, block)
		return callErr
	})
	if err != nil {
		return nil, fmt.Errorf("call %s: %w", method, err)
	}
	values, err := parsed.Unpack(method, resp)
	if err != nil {
		return nil, fmt.Errorf("unpack %s: %w", method, err)
	}
	return values, nil
}

// FetchSnapshot captures the full state of one pool with every view call
// pinned at the latest block.
func (a *Accessor) FetchSnapshot(ctx context.Context, pool common.Address) (*model.Snapshot, error) {
	poolABI, err := PoolABI()
	if err != nil {
		return nil, fmt.Errorf("parse pool abi: %w", err)
	}

	var block uint64
	err = withRetry(ctx, a.maxRetries, a.baseDelay, func(ctx context.Context) error {
		var rpcErr error
		block, rpcErr = a.caller.LatestBlockNumber(ctx)
		return rpcErr
	})
	if err != nil {
		return nil, fmt.Errorf("latest block: %w", err)
	}
	blockPtr := new(big.Int).SetUint64(block)

	values, err := a.call(ctx, pool, poolABI, blockPtr, "getCurrentTokens")
	if err != nil {
		return nil, err
	}
	addrs, err := asAddresses(values[0])
	if err != nil {
		return nil, fmt.Errorf("current tokens: %w", err)
	}

	snap := &model.Snapshot{Pool: pool.Hex(), Block: block}

	for _, addr := range addrs {
		meta, err := a.TokenMeta(ctx, addr)
		if err != nil {
			return nil, fmt.Errorf("token %s metadata: %w", addr.Hex(), err)
		}

		values, err = a.call(ctx, pool, poolABI, blockPtr, "getBalance", addr)
		if err != nil {
			return nil, err
		}
		balance, err := asBigInt(values[0])
		if err != nil {
			return nil, fmt.Errorf("balance of %s: %w", addr.Hex(), err)
		}

		values, err = a.call(ctx, pool, poolABI, blockPtr, "getDenormalizedWeight", addr)
		if err != nil {
			return nil, err
		}
		weight, err := asBigInt(values[0])
		if err != nil {
			return nil, fmt.Errorf("weight of %s: %w", addr.Hex(), err)
		}

		snap.Tokens = append(snap.Tokens, model.PoolToken{
			Address: addr.Hex(),
			Reserve: DecFromWei(balance, meta.Decimals),
			Weight:  DecFromWei(weight, decPrecision),
		})
	}

	values, err = a.call(ctx, pool, poolABI, blockPtr, "getSwapFee")
	if err != nil {
		return nil, err
	}
	fee, err := asBigInt(values[0])
	if err != nil {
		return nil, fmt.Errorf("swap fee: %w", err)
	}
	snap.SwapFee = DecFromWei(fee, decPrecision)

	values, err = a.call(ctx, pool, poolABI, blockPtr, "totalSupply")
	if err != nil {
		return nil, err
	}
	supply, err := asBigInt(values[0])
	if err != nil {
		return nil, fmt.Errorf("total supply: %w", err)
	}
	snap.ShareSupply = DecFromWei(supply, decPrecision)

	values, err = a.call(ctx, pool, poolABI, blockPtr, "isFinalized")
	if err != nil {
		return nil, err
	}
	finalized, err := asBool(values[0])
	if err != nil {
		return nil, fmt.Errorf("finalized flag: %w", err)
	}
	snap.Finalized = finalized

	if ts, err := a.caller.BlockTimestamp(ctx, block); err == nil {
		snap.BlockTime = time.Unix(int64(ts), 0).UTC()
	} else {
		a.logger.Debug("block timestamp fetch failed", zap.Uint64("block", block), zap.Error(err))
	}

	a.logger.Debug("snapshot captured",
		zap.String("pool", pool.Hex()),
		zap.Uint64("block", block),
		zap.Int("tokens", len(snap.Tokens)))

	return snap, nil
}

// ShareBalance returns the holder's pool-share balance. Pass the snapshot
// block so holdings are checked against the same state they will guard; a
// zero block reads the latest state.
func (a *Accessor) ShareBalance(ctx context.Context, pool, holder common.Address, block uint64) (math.LegacyDec, error) {
	poolABI, err := PoolABI()
	if err != nil {
		return math.LegacyDec{}, fmt.Errorf("parse pool abi: %w", err)
	}
	var blockPtr *big.Int
	if block > 0 {
		blockPtr = new(big.Int).SetUint64(block)
	}
	values, err := a.call(ctx, pool, poolABI, blockPtr, "balanceOf", holder)
	if err != nil {
		return math.LegacyDec{}, err
	}
	balance, err := asBigInt(values[0])
	if err != nil {
		return math.LegacyDec{}, fmt.Errorf("share balance: %w", err)
	}
	return DecFromWei(balance, decPrecision), nil
}

// Allowance returns how much of token the owner has approved the spender
// to move, in raw ledger units.
func (a *Accessor) Allowance(ctx context.Context, token, owner, spender common.Address) (*big.Int, error) {
	tokenABI, err := ERC20ABI()
	if err != nil {
		return nil, fmt.Errorf("parse erc20 abi: %w", err)
	}
	values, err := a.call(ctx, token, tokenABI, nil, "allowance", owner, spender)
	if err != nil {
		return nil, err
	}
	allowance, err := asBigInt(values[0])
	if err != nil {
		return nil, fmt.Errorf("allowance: %w", err)
	}
	return allowance, nil
}
