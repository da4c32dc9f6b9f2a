// Package guard screens pool operations before anything is submitted to
// the ledger. Every check mirrors a revert the pool contract itself would
// raise, so an approved request cannot fail the contract's own limits, and
// a rejected one never costs gas. Guards are pure: they read a snapshot
// and a request, and either return canonical amounts or a typed rejection.
package guard

import (
	"strings"

	"cosmossdk.io/math"

	"poolQuote/internal/model"
	"poolQuote/internal/poolmath"
)

// Contract caps. Swap legs and single-asset exits may move at most a third
// of the touched reserve; single-asset deposits at most half. Boundaries
// are inclusive at 18-digit truncation.
func maxSwapAmount(reserve math.LegacyDec) math.LegacyDec { return reserve.QuoInt64(3) }
func maxJoinAmount(reserve math.LegacyDec) math.LegacyDec { return reserve.QuoInt64(2) }
func maxExitAmount(reserve math.LegacyDec) math.LegacyDec { return reserve.QuoInt64(3) }

// SwapQuote is an approved two-token swap.
type SwapQuote struct {
	In, Out   model.PoolToken
	AmountIn  math.LegacyDec
	AmountOut math.LegacyDec
}

// JoinQuote is an approved single-asset deposit.
type JoinQuote struct {
	Token    model.PoolToken
	AmountIn math.LegacyDec
	PoolOut  math.LegacyDec
}

// ExitQuote is an approved single-asset withdrawal.
type ExitQuote struct {
	Token     model.PoolToken
	PoolIn    math.LegacyDec
	AmountOut math.LegacyDec
}

// PriceQuote is the marginal price of a bound trading pair.
type PriceQuote struct {
	In, Out    model.PoolToken
	Price      math.LegacyDec
	PriceNoFee math.LegacyDec
}

func tradingPair(snap *model.Snapshot, tokenIn, tokenOut string) (model.PoolToken, model.PoolToken, error) {
	if snap.Status() != model.StatusFinalized {
		return model.PoolToken{}, model.PoolToken{}, model.ErrValidation.Wrapf(
			"pool %s is %s, not finalized", snap.Pool, snap.Status())
	}
	if strings.EqualFold(tokenIn, tokenOut) {
		return model.PoolToken{}, model.PoolToken{}, model.ErrValidation.Wrapf(
			"cannot trade %s against itself", tokenIn)
	}
	in, ok := snap.Token(tokenIn)
	if !ok {
		return model.PoolToken{}, model.PoolToken{}, model.ErrValidation.Wrapf(
			"token %s not bound to pool %s", tokenIn, snap.Pool)
	}
	out, ok := snap.Token(tokenOut)
	if !ok {
		return model.PoolToken{}, model.PoolToken{}, model.ErrValidation.Wrapf(
			"token %s not bound to pool %s", tokenOut, snap.Pool)
	}
	return in, out, nil
}

func boundToken(snap *model.Snapshot, token string) (model.PoolToken, error) {
	if snap.Status() != model.StatusFinalized {
		return model.PoolToken{}, model.ErrValidation.Wrapf(
			"pool %s is %s, not finalized", snap.Pool, snap.Status())
	}
	t, ok := snap.Token(token)
	if !ok {
		return model.PoolToken{}, model.ErrValidation.Wrapf(
			"token %s not bound to pool %s", token, snap.Pool)
	}
	return t, nil
}

func requirePositive(name string, amount math.LegacyDec) error {
	if !amount.IsPositive() {
		return model.ErrValidation.Wrapf("%s %s must be positive", name, amount)
	}
	return nil
}

// SpotPrice quotes the marginal price of tokenOut in units of tokenIn,
// with and without the swap fee.
func SpotPrice(snap *model.Snapshot, tokenIn, tokenOut string) (PriceQuote, error) {
	in, out, err := tradingPair(snap, tokenIn, tokenOut)
	if err != nil {
		return PriceQuote{}, err
	}
	price, err := poolmath.SpotPrice(in.Reserve, in.Weight, out.Reserve, out.Weight, snap.SwapFee)
	if err != nil {
		return PriceQuote{}, err
	}
	noFee, err := poolmath.SpotPriceNoFee(in.Reserve, in.Weight, out.Reserve, out.Weight)
	if err != nil {
		return PriceQuote{}, err
	}
	return PriceQuote{In: in, Out: out, Price: price, PriceNoFee: noFee}, nil
}

// SwapExactIn approves a fixed payment of amountIn for at least minOut of
// the output token. A zero minOut disables the slippage check.
func SwapExactIn(snap *model.Snapshot, tokenIn, tokenOut string, amountIn, minOut math.LegacyDec) (SwapQuote, error) {
	in, out, err := tradingPair(snap, tokenIn, tokenOut)
	if err != nil {
		return SwapQuote{}, err
	}
	if err := requirePositive("amount in", amountIn); err != nil {
		return SwapQuote{}, err
	}
	if limit := maxSwapAmount(in.Reserve); amountIn.GT(limit) {
		return SwapQuote{}, model.ErrValidation.Wrapf(
			"amount in %s exceeds a third of reserve %s", amountIn, in.Reserve)
	}
	amountOut, err := poolmath.OutGivenIn(in.Reserve, in.Weight, out.Reserve, out.Weight, amountIn, snap.SwapFee)
	if err != nil {
		return SwapQuote{}, err
	}
	if limit := maxSwapAmount(out.Reserve); amountOut.GT(limit) {
		return SwapQuote{}, model.ErrValidation.Wrapf(
			"amount out %s exceeds a third of reserve %s", amountOut, out.Reserve)
	}
	if !minOut.IsNil() && minOut.IsPositive() && amountOut.LT(minOut) {
		return SwapQuote{}, model.ErrSlippageExceeded.Wrapf(
			"expected out %s below minimum %s", amountOut, minOut)
	}
	return SwapQuote{In: in, Out: out, AmountIn: amountIn, AmountOut: amountOut}, nil
}

// SwapExactOut approves a fixed receipt of amountOut for at most maxIn of
// the input token. A zero maxIn disables the slippage check.
func SwapExactOut(snap *model.Snapshot, tokenIn, tokenOut string, amountOut, maxIn math.LegacyDec) (SwapQuote, error) {
	in, out, err := tradingPair(snap, tokenIn, tokenOut)
	if err != nil {
		return SwapQuote{}, err
	}
	if err := requirePositive("amount out", amountOut); err != nil {
		return SwapQuote{}, err
	}
	if limit := maxSwapAmount(out.Reserve); amountOut.GT(limit) {
		return SwapQuote{}, model.ErrValidation.Wrapf(
			"amount out %s exceeds a third of reserve %s", amountOut, out.Reserve)
	}
	amountIn, err := poolmath.InGivenOut(in.Reserve, in.Weight, out.Reserve, out.Weight, amountOut, snap.SwapFee)
	if err != nil {
		return SwapQuote{}, err
	}
	if limit := maxSwapAmount(in.Reserve); amountIn.GT(limit) {
		return SwapQuote{}, model.ErrValidation.Wrapf(
			"amount in %s exceeds a third of reserve %s", amountIn, in.Reserve)
	}
	if !maxIn.IsNil() && maxIn.IsPositive() && amountIn.GT(maxIn) {
		return SwapQuote{}, model.ErrSlippageExceeded.Wrapf(
			"required in %s above maximum %s", amountIn, maxIn)
	}
	return SwapQuote{In: in, Out: out, AmountIn: amountIn, AmountOut: amountOut}, nil
}

// JoinSingleIn approves a single-asset deposit of amountIn for at least
// minPoolOut shares.
func JoinSingleIn(snap *model.Snapshot, token string, amountIn, minPoolOut math.LegacyDec) (JoinQuote, error) {
	tok, err := boundToken(snap, token)
	if err != nil {
		return JoinQuote{}, err
	}
	if err := requirePositive("amount in", amountIn); err != nil {
		return JoinQuote{}, err
	}
	if limit := maxJoinAmount(tok.Reserve); amountIn.GT(limit) {
		return JoinQuote{}, model.ErrValidation.Wrapf(
			"deposit %s exceeds half of reserve %s", amountIn, tok.Reserve)
	}
	poolOut, err := poolmath.PoolOutGivenSingleIn(tok.Reserve, tok.Weight, snap.ShareSupply, snap.TotalWeight(), amountIn, snap.SwapFee)
	if err != nil {
		return JoinQuote{}, err
	}
	if !minPoolOut.IsNil() && minPoolOut.IsPositive() && poolOut.LT(minPoolOut) {
		return JoinQuote{}, model.ErrSlippageExceeded.Wrapf(
			"expected shares %s below minimum %s", poolOut, minPoolOut)
	}
	return JoinQuote{Token: tok, AmountIn: amountIn, PoolOut: poolOut}, nil
}

// JoinPoolOut approves minting exactly poolOut shares from a single-asset
// deposit of at most maxIn.
func JoinPoolOut(snap *model.Snapshot, token string, poolOut, maxIn math.LegacyDec) (JoinQuote, error) {
	tok, err := boundToken(snap, token)
	if err != nil {
		return JoinQuote{}, err
	}
	if err := requirePositive("pool amount out", poolOut); err != nil {
		return JoinQuote{}, err
	}
	amountIn, err := poolmath.SingleInGivenPoolOut(tok.Reserve, tok.Weight, snap.ShareSupply, snap.TotalWeight(), poolOut, snap.SwapFee)
	if err != nil {
		return JoinQuote{}, err
	}
	if limit := maxJoinAmount(tok.Reserve); amountIn.GT(limit) {
		return JoinQuote{}, model.ErrValidation.Wrapf(
			"deposit %s exceeds half of reserve %s", amountIn, tok.Reserve)
	}
	if !maxIn.IsNil() && maxIn.IsPositive() && amountIn.GT(maxIn) {
		return JoinQuote{}, model.ErrSlippageExceeded.Wrapf(
			"required deposit %s above maximum %s", amountIn, maxIn)
	}
	return JoinQuote{Token: tok, AmountIn: amountIn, PoolOut: poolOut}, nil
}

// ExitPoolIn approves burning poolIn shares for at least minOut of a
// single token. heldShares is the caller's share balance; pass a nil dec
// to skip the holdings check when quoting without an account.
func ExitPoolIn(snap *model.Snapshot, token string, poolIn, minOut, heldShares math.LegacyDec) (ExitQuote, error) {
	tok, err := boundToken(snap, token)
	if err != nil {
		return ExitQuote{}, err
	}
	if err := requirePositive("pool amount in", poolIn); err != nil {
		return ExitQuote{}, err
	}
	if !heldShares.IsNil() && poolIn.GT(heldShares) {
		return ExitQuote{}, model.ErrInsufficientBalance.Wrapf(
			"held shares %s below burn amount %s", heldShares, poolIn)
	}
	amountOut, err := poolmath.SingleOutGivenPoolIn(tok.Reserve, tok.Weight, snap.ShareSupply, snap.TotalWeight(), poolIn, snap.SwapFee)
	if err != nil {
		return ExitQuote{}, err
	}
	if limit := maxExitAmount(tok.Reserve); amountOut.GT(limit) {
		return ExitQuote{}, model.ErrValidation.Wrapf(
			"withdrawal %s exceeds a third of reserve %s", amountOut, tok.Reserve)
	}
	if !minOut.IsNil() && minOut.IsPositive() && amountOut.LT(minOut) {
		return ExitQuote{}, model.ErrSlippageExceeded.Wrapf(
			"expected out %s below minimum %s", amountOut, minOut)
	}
	return ExitQuote{Token: tok, PoolIn: poolIn, AmountOut: amountOut}, nil
}

// ExitSingleOut approves withdrawing exactly amountOut of a single token
// for at most maxPoolIn burned shares.
func ExitSingleOut(snap *model.Snapshot, token string, amountOut, maxPoolIn, heldShares math.LegacyDec) (ExitQuote, error) {
	tok, err := boundToken(snap, token)
	if err != nil {
		return ExitQuote{}, err
	}
	if err := requirePositive("amount out", amountOut); err != nil {
		return ExitQuote{}, err
	}
	if limit := maxExitAmount(tok.Reserve); amountOut.GT(limit) {
		return ExitQuote{}, model.ErrValidation.Wrapf(
			"withdrawal %s exceeds a third of reserve %s", amountOut, tok.Reserve)
	}
	poolIn, err := poolmath.PoolInGivenSingleOut(tok.Reserve, tok.Weight, snap.ShareSupply, snap.TotalWeight(), amountOut, snap.SwapFee)
	if err != nil {
		return ExitQuote{}, err
	}
	if !heldShares.IsNil() && poolIn.GT(heldShares) {
		return ExitQuote{}, model.ErrInsufficientBalance.Wrapf(
			"held shares %s below burn amount %s", heldShares, poolIn)
	}
	if !maxPoolIn.IsNil() && maxPoolIn.IsPositive() && poolIn.GT(maxPoolIn) {
		return ExitQuote{}, model.ErrSlippageExceeded.Wrapf(
			"required shares %s above maximum %s", poolIn, maxPoolIn)
	}
	return ExitQuote{Token: tok, PoolIn: poolIn, AmountOut: amountOut}, nil
}
