package guard

import (
	"strings"

	"cosmossdk.io/math"

	"poolQuote/internal/model"
)

// Creation limits. A new pool splits ten weight units between two tokens;
// the named side keeps between one and nine of them. The swap fee may not
// exceed ten percent.
var (
	creationWeightTotal = math.LegacyNewDec(10)
	creationWeightMin   = math.LegacyOneDec()
	creationWeightMax   = math.LegacyNewDec(9)
	creationFeeMax      = math.LegacyNewDecWithPrec(1, 1)
)

// Creation is an approved pool setup: the caller-named side plus the
// derived counterparty side that keeps the pool balanced at the requested
// weights.
type Creation struct {
	NamedToken    string
	NamedAmount   math.LegacyDec
	NamedWeight   math.LegacyDec
	DerivedToken  string
	DerivedAmount math.LegacyDec
	DerivedWeight math.LegacyDec
	SwapFee       math.LegacyDec
}

// PlanCreation validates a two-token pool setup and derives the
// counterparty side: derivedWeight = 10 - weight and
// derivedAmount = amount * derivedWeight / weight.
func PlanCreation(namedToken, derivedToken string, amount, weight, swapFee math.LegacyDec) (Creation, error) {
	if namedToken == "" || derivedToken == "" {
		return Creation{}, model.ErrValidation.Wrap("both token addresses are required")
	}
	if strings.EqualFold(namedToken, derivedToken) {
		return Creation{}, model.ErrValidation.Wrapf("pool tokens must differ, got %s twice", namedToken)
	}
	if err := requirePositive("amount", amount); err != nil {
		return Creation{}, err
	}
	if weight.LT(creationWeightMin) || weight.GT(creationWeightMax) {
		return Creation{}, model.ErrValidation.Wrapf(
			"weight %s outside [%s, %s]", weight, creationWeightMin, creationWeightMax)
	}
	if swapFee.IsNegative() || swapFee.GT(creationFeeMax) {
		return Creation{}, model.ErrValidation.Wrapf(
			"swap fee %s outside [0, %s]", swapFee, creationFeeMax)
	}
	derivedWeight := creationWeightTotal.Sub(weight)
	derivedAmount := amount.Mul(derivedWeight).Quo(weight)
	return Creation{
		NamedToken:    namedToken,
		NamedAmount:   amount,
		NamedWeight:   weight,
		DerivedToken:  derivedToken,
		DerivedAmount: derivedAmount,
		DerivedWeight: derivedWeight,
		SwapFee:       swapFee,
	}, nil
}
