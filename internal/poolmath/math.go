// Package poolmath implements pricing for weighted constant-product pools.
// All functions are pure and operate on 18-fractional-digit fixed point.
// Every lossy step rounds against the caller: amounts the caller will
// receive truncate, amounts the caller must pay round up. Quoted receipts
// therefore never overstate what the ledger grants and quoted payments
// never understate what it charges.
package poolmath

import (
	"cosmossdk.io/math"

	"poolQuote/internal/model"
)

func validatePool(balIn, weightIn, balOut, weightOut math.LegacyDec) error {
	switch {
	case !balIn.IsPositive():
		return model.ErrValidation.Wrapf("input reserve %s must be positive", balIn)
	case !balOut.IsPositive():
		return model.ErrValidation.Wrapf("output reserve %s must be positive", balOut)
	case !weightIn.IsPositive():
		return model.ErrValidation.Wrapf("input weight %s must be positive", weightIn)
	case !weightOut.IsPositive():
		return model.ErrValidation.Wrapf("output weight %s must be positive", weightOut)
	}
	return nil
}

func validateFee(swapFee math.LegacyDec) error {
	if swapFee.IsNegative() || swapFee.GTE(math.LegacyOneDec()) {
		return model.ErrValidation.Wrapf("swap fee %s outside [0, 1)", swapFee)
	}
	return nil
}

func validateAmount(name string, amount math.LegacyDec) error {
	if amount.IsNegative() {
		return model.ErrValidation.Wrapf("%s %s must not be negative", name, amount)
	}
	return nil
}

// SpotPrice is the instantaneous price of the output token in units of the
// input token, fee included:
//
//	(balIn/weightIn) / (balOut/weightOut) * 1/(1-swapFee)
func SpotPrice(balIn, weightIn, balOut, weightOut, swapFee math.LegacyDec) (math.LegacyDec, error) {
	if err := validatePool(balIn, weightIn, balOut, weightOut); err != nil {
		return math.LegacyDec{}, err
	}
	if err := validateFee(swapFee); err != nil {
		return math.LegacyDec{}, err
	}
	ratio := balIn.Quo(weightIn).Quo(balOut.Quo(weightOut))
	scale := math.LegacyOneDec().Quo(math.LegacyOneDec().Sub(swapFee))
	return ratio.Mul(scale), nil
}

// SpotPriceNoFee is SpotPrice with the fee factor removed.
func SpotPriceNoFee(balIn, weightIn, balOut, weightOut math.LegacyDec) (math.LegacyDec, error) {
	return SpotPrice(balIn, weightIn, balOut, weightOut, math.LegacyZeroDec())
}

// OutGivenIn quotes the receipt for a fixed payment of amountIn:
//
//	balOut * (1 - (balIn / (balIn + amountIn*(1-fee)))^(weightIn/weightOut))
//
// A zero amountIn returns zero with no fee applied. An extreme weight
// ratio can truncate the power term to zero, which would price the
// entire output reserve; that fails with ErrInsufficientLiquidity.
func OutGivenIn(balIn, weightIn, balOut, weightOut, amountIn, swapFee math.LegacyDec) (math.LegacyDec, error) {
	if err := validatePool(balIn, weightIn, balOut, weightOut); err != nil {
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
	adjustedIn := amountIn.MulTruncate(math.LegacyOneDec().Sub(swapFee))
	base := balIn.QuoRoundUp(balIn.Add(adjustedIn))
	power, err := pow(base, weightIn.Quo(weightOut))
	if err != nil {
		return math.LegacyDec{}, err
	}
	ratio := math.LegacyOneDec().Sub(power)
	// The series may overshoot one by less than powPrecision.
	if ratio.IsNegative() {
		ratio = math.LegacyZeroDec()
	}
	out := balOut.MulTruncate(ratio)
	if out.GTE(balOut) {
		return math.LegacyDec{}, model.ErrInsufficientLiquidity.Wrapf(
			"amount out %s reaches reserve %s", out, balOut)
	}
	return out, nil
}

// InGivenOut quotes the payment required for a fixed receipt of amountOut:
//
//	balIn * ((balOut / (balOut - amountOut))^(weightOut/weightIn) - 1) / (1-fee)
//
// Fails with ErrInsufficientLiquidity once amountOut reaches the output
// reserve. Receipts above half the reserve push the power base past its
// convergence domain and fail with ErrComputation.
func InGivenOut(balIn, weightIn, balOut, weightOut, amountOut, swapFee math.LegacyDec) (math.LegacyDec, error) {
	if err := validatePool(balIn, weightIn, balOut, weightOut); err != nil {
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
	if amountOut.GTE(balOut) {
		return math.LegacyDec{}, model.ErrInsufficientLiquidity.Wrapf(
			"amount out %s reaches reserve %s", amountOut, balOut)
	}
	base := balOut.QuoRoundUp(balOut.Sub(amountOut))
	power, err := pow(base, weightOut.Quo(weightIn))
	if err != nil {
		return math.LegacyDec{}, err
	}
	grossIn := balIn.MulRoundUp(power.Sub(math.LegacyOneDec()))
	return grossIn.QuoRoundUp(math.LegacyOneDec().Sub(swapFee)), nil
}
