package poolmath

import (
	"cosmossdk.io/math"

	"poolQuote/internal/model"
)

func validateShares(bal, weight, supply, totalWeight math.LegacyDec) error {
	switch {
	case !bal.IsPositive():
		return model.ErrValidation.Wrapf("reserve %s must be positive", bal)
	case !weight.IsPositive():
		return model.ErrValidation.Wrapf("weight %s must be positive", weight)
	case !supply.IsPositive():
		return model.ErrValidation.Wrapf("share supply %s must be positive", supply)
	case !totalWeight.IsPositive():
		return model.ErrValidation.Wrapf("total weight %s must be positive", totalWeight)
	case weight.GT(totalWeight):
		return model.ErrValidation.Wrapf("weight %s exceeds total weight %s", weight, totalWeight)
	}
	return nil
}

// PoolOutGivenSingleIn quotes the shares minted for a single-asset deposit.
// The deposit is implicitly part-swapped into the other tokens, so the swap
// fee applies only to the (1 - weightIn/totalWeight) portion. A zero
// deposit mints zero shares with no fee applied.
func PoolOutGivenSingleIn(balIn, weightIn, supply, totalWeight, amountIn, swapFee math.LegacyDec) (math.LegacyDec, error) {
	if err := validateShares(balIn, weightIn, supply, totalWeight); err != nil {
		return math.LegacyDec{}, err
	}
	if err := validateFee(swapFee); err != nil {
		return math.LegacyDec{}, err
	}
	if err := validateAmount("amount in", amountIn); err != nil {
		return math.LegacyDec{}, err
	}
	if amountIn.IsZero() {
		return math.LegacyZeroDec(), nil
	}
	normWeight := weightIn.Quo(totalWeight)
	feeShare := math.LegacyOneDec().Sub(normWeight).MulRoundUp(swapFee)
	afterFee := amountIn.MulTruncate(math.LegacyOneDec().Sub(feeShare))
	balanceRatio := balIn.Add(afterFee).QuoTruncate(balIn)
	poolRatio, err := pow(balanceRatio, normWeight)
	if err != nil {
		return math.LegacyDec{}, err
	}
	minted := poolRatio.MulTruncate(supply).Sub(supply)
	if minted.IsNegative() {
		minted = math.LegacyZeroDec()
	}
	return minted, nil
}

// SingleInGivenPoolOut quotes the single-asset deposit required to mint
// exactly poolOut shares.
func SingleInGivenPoolOut(balIn, weightIn, supply, totalWeight, poolOut, swapFee math.LegacyDec) (math.LegacyDec, error) {
	if err := validateShares(balIn, weightIn, supply, totalWeight); err != nil {
		return math.LegacyDec{}, err
	}
	if err := validateFee(swapFee); err != nil {
		return math.LegacyDec{}, err
	}
	if err := validateAmount("pool amount out", poolOut); err != nil {
		return math.LegacyDec{}, err
	}
	if poolOut.IsZero() {
		return math.LegacyZeroDec(), nil
	}
	normWeight := weightIn.Quo(totalWeight)
	poolRatio := supply.Add(poolOut).QuoRoundUp(supply)
	tokenRatio, err := pow(poolRatio, math.LegacyOneDec().QuoRoundUp(normWeight))
	if err != nil {
		return math.LegacyDec{}, err
	}
	grossIn := tokenRatio.MulRoundUp(balIn).Sub(balIn)
	feeShare := math.LegacyOneDec().Sub(normWeight).MulRoundUp(swapFee)
	return grossIn.QuoRoundUp(math.LegacyOneDec().Sub(feeShare)), nil
}

// SingleOutGivenPoolIn quotes the tokens released for burning poolIn
// shares against a single token.
func SingleOutGivenPoolIn(balOut, weightOut, supply, totalWeight, poolIn, swapFee math.LegacyDec) (math.LegacyDec, error) {
	if err := validateShares(balOut, weightOut, supply, totalWeight); err != nil {
		return math.LegacyDec{}, err
	}
	if err := validateFee(swapFee); err != nil {
		return math.LegacyDec{}, err
	}
	if err := validateAmount("pool amount in", poolIn); err != nil {
		return math.LegacyDec{}, err
	}
	if poolIn.IsZero() {
		return math.LegacyZeroDec(), nil
	}
	if poolIn.GTE(supply) {
		return math.LegacyDec{}, model.ErrInsufficientLiquidity.Wrapf(
			"shares burned %s reach supply %s", poolIn, supply)
	}
	normWeight := weightOut.Quo(totalWeight)
	poolRatio := supply.Sub(poolIn).QuoRoundUp(supply)
	tokenRatio, err := pow(poolRatio, math.LegacyOneDec().QuoTruncate(normWeight))
	if err != nil {
		return math.LegacyDec{}, err
	}
	grossOut := balOut.Sub(balOut.MulRoundUp(tokenRatio))
	if grossOut.IsNegative() {
		grossOut = math.LegacyZeroDec()
	}
	feeShare := math.LegacyOneDec().Sub(normWeight).MulRoundUp(swapFee)
	return grossOut.MulTruncate(math.LegacyOneDec().Sub(feeShare)), nil
}

// PoolInGivenSingleOut quotes the shares to burn for a fixed single-asset
// withdrawal of amountOut. Fails with ErrInsufficientLiquidity once the
// pre-fee withdrawal reaches the reserve.
func PoolInGivenSingleOut(balOut, weightOut, supply, totalWeight, amountOut, swapFee math.LegacyDec) (math.LegacyDec, error) {
	if err := validateShares(balOut, weightOut, supply, totalWeight); err != nil {
		return math.LegacyDec{}, err
	}
	if err := validateFee(swapFee); err != nil {
		return math.LegacyDec{}, err
	}
	if err := validateAmount("amount out", amountOut); err != nil {
		return math.LegacyDec{}, err
	}
	if amountOut.IsZero() {
		return math.LegacyZeroDec(), nil
	}
	normWeight := weightOut.Quo(totalWeight)
	feeShare := math.LegacyOneDec().Sub(normWeight).MulRoundUp(swapFee)
	grossOut := amountOut.QuoRoundUp(math.LegacyOneDec().Sub(feeShare))
	if grossOut.GTE(balOut) {
		return math.LegacyDec{}, model.ErrInsufficientLiquidity.Wrapf(
			"withdrawal %s reaches reserve %s", grossOut, balOut)
	}
	balanceRatio := balOut.Sub(grossOut).QuoTruncate(balOut)
	poolRatio, err := pow(balanceRatio, normWeight)
	if err != nil {
		return math.LegacyDec{}, err
	}
	return supply.Sub(poolRatio.MulTruncate(supply)), nil
}
