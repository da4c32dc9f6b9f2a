package submit

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	ethmath "github.com/ethereum/go-ethereum/common/math"

	"poolQuote/internal/bpool"
	"poolQuote/internal/model"
)

const shareDecimals = 18

// packOperation builds the calldata for an operation descriptor.
// Exact amounts and pay-side bounds round up, receive-side amounts and
// bounds round down, so the integer call never promises more than the
// quote did. Empty bounds become 0 for minimums and the maximum
// uint256 for maximums.
func (s *Submitter) packOperation(ctx context.Context, op model.Operation) ([]byte, error) {
	poolABI, err := bpool.PoolABI()
	if err != nil {
		return nil, err
	}

	switch op.Kind {
	case model.OpSwapExactIn:
		amountIn, err := s.tokenWei(ctx, op.TokenIn, op.AmountIn, true)
		if err != nil {
			return nil, err
		}
		minOut, err := s.tokenBound(ctx, op.TokenOut, op.Limit, false)
		if err != nil {
			return nil, err
		}
		maxPrice, err := priceBound(op.MaxPrice)
		if err != nil {
			return nil, err
		}
		return poolABI.Pack("swapExactAmountIn",
			common.HexToAddress(op.TokenIn), amountIn,
			common.HexToAddress(op.TokenOut), minOut,
			maxPrice)

	case model.OpSwapExactOut:
		maxIn, err := s.tokenBound(ctx, op.TokenIn, op.Limit, true)
		if err != nil {
			return nil, err
		}
		amountOut, err := s.tokenWei(ctx, op.TokenOut, op.AmountOut, false)
		if err != nil {
			return nil, err
		}
		maxPrice, err := priceBound(op.MaxPrice)
		if err != nil {
			return nil, err
		}
		return poolABI.Pack("swapExactAmountOut",
			common.HexToAddress(op.TokenIn), maxIn,
			common.HexToAddress(op.TokenOut), amountOut,
			maxPrice)

	case model.OpJoinSingleIn:
		amountIn, err := s.tokenWei(ctx, op.TokenIn, op.AmountIn, true)
		if err != nil {
			return nil, err
		}
		minPoolOut, err := shareBound(op.Limit, false)
		if err != nil {
			return nil, err
		}
		return poolABI.Pack("joinswapExternAmountIn",
			common.HexToAddress(op.TokenIn), amountIn, minPoolOut)

	case model.OpJoinPoolOut:
		poolOut, err := shareWei(op.PoolOut, false)
		if err != nil {
			return nil, err
		}
		maxIn, err := s.tokenBound(ctx, op.TokenIn, op.Limit, true)
		if err != nil {
			return nil, err
		}
		return poolABI.Pack("joinswapPoolAmountOut",
			common.HexToAddress(op.TokenIn), poolOut, maxIn)

	case model.OpExitPoolIn:
		poolIn, err := shareWei(op.PoolIn, true)
		if err != nil {
			return nil, err
		}
		minOut, err := s.tokenBound(ctx, op.TokenOut, op.Limit, false)
		if err != nil {
			return nil, err
		}
		return poolABI.Pack("exitswapPoolAmountIn",
			common.HexToAddress(op.TokenOut), poolIn, minOut)

	case model.OpExitSingleOut:
		amountOut, err := s.tokenWei(ctx, op.TokenOut, op.AmountOut, false)
		if err != nil {
			return nil, err
		}
		maxPoolIn, err := shareBound(op.Limit, true)
		if err != nil {
			return nil, err
		}
		return poolABI.Pack("exitswapExternAmountOut",
			common.HexToAddress(op.TokenOut), amountOut, maxPoolIn)
	}

	return nil, model.ErrValidation.Wrapf("unsupported operation kind %q", op.Kind)
}

// tokenWei converts a decimal amount string to the token's integer
// representation, rounding up when ceil is set.
func (s *Submitter) tokenWei(ctx context.Context, token, amount string, ceil bool) (*big.Int, error) {
	d, err := bpool.ParseAmount(amount)
	if err != nil {
		return nil, err
	}

	meta, err := s.meta.TokenMeta(ctx, common.HexToAddress(token))
	if err != nil {
		return nil, fmt.Errorf("token meta %s: %w", token, err)
	}

	if ceil {
		return bpool.WeiCeil(d, meta.Decimals), nil
	}
	return bpool.WeiFloor(d, meta.Decimals), nil
}

// tokenBound converts an optional token-amount bound. Empty means
// unbounded: zero for minimums, max uint256 for maximums.
func (s *Submitter) tokenBound(ctx context.Context, token, bound string, max bool) (*big.Int, error) {
	if bound == "" {
		if max {
			return ethmath.MaxBig256, nil
		}
		return big.NewInt(0), nil
	}
	return s.tokenWei(ctx, token, bound, max)
}

// shareWei converts a pool-share amount, always 18 decimals.
func shareWei(amount string, ceil bool) (*big.Int, error) {
	d, err := bpool.ParseAmount(amount)
	if err != nil {
		return nil, err
	}
	if ceil {
		return bpool.WeiCeil(d, shareDecimals), nil
	}
	return bpool.WeiFloor(d, shareDecimals), nil
}

func shareBound(bound string, max bool) (*big.Int, error) {
	if bound == "" {
		if max {
			return ethmath.MaxBig256, nil
		}
		return big.NewInt(0), nil
	}
	return shareWei(bound, max)
}

// priceBound converts a spot price limit, scaled like pool shares. An
// empty limit disables the check with the maximum uint256.
func priceBound(price string) (*big.Int, error) {
	if price == "" {
		return ethmath.MaxBig256, nil
	}
	d, err := bpool.ParseAmount(price)
	if err != nil {
		return nil, err
	}
	return bpool.WeiCeil(d, shareDecimals), nil
}
