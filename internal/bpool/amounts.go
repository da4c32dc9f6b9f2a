package bpool

import (
	"math/big"

	"cosmossdk.io/math"

	"poolQuote/internal/model"
)

// decPrecision is the fixed-point precision of pool arithmetic; share
// balances and BONE-scaled contract values always use it.
const decPrecision = 18

func pow10(n uint8) *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(n)), nil)
}

// DecFromWei converts an integer ledger amount into token units. For
// tokens with more than 18 decimals the sub-precision digits are dropped,
// which can only understate a reserve, never overstate it.
func DecFromWei(wei *big.Int, decimals uint8) math.LegacyDec {
	if wei == nil {
		return math.LegacyZeroDec()
	}
	if decimals <= decPrecision {
		return math.LegacyNewDecFromBigIntWithPrec(wei, int64(decimals))
	}
	scaled := new(big.Int).Quo(wei, pow10(decimals-decPrecision))
	return math.LegacyNewDecFromBigIntWithPrec(scaled, decPrecision)
}

// WeiFloor converts token units into an integer ledger amount, rounding
// down. Use for amounts the caller receives.
func WeiFloor(d math.LegacyDec, decimals uint8) *big.Int {
	raw := d.BigInt()
	switch {
	case decimals == decPrecision:
		return raw
	case decimals < decPrecision:
		return raw.Quo(raw, pow10(decPrecision-decimals))
	default:
		return raw.Mul(raw, pow10(decimals-decPrecision))
	}
}

// WeiCeil converts token units into an integer ledger amount, rounding
// up. Use for amounts the caller pays or approves.
func WeiCeil(d math.LegacyDec, decimals uint8) *big.Int {
	raw := d.BigInt()
	switch {
	case decimals == decPrecision:
		return raw
	case decimals < decPrecision:
		quo, rem := new(big.Int).QuoRem(raw, pow10(decPrecision-decimals), new(big.Int))
		if rem.Sign() > 0 {
			quo.Add(quo, big.NewInt(1))
		}
		return quo
	default:
		return raw.Mul(raw, pow10(decimals-decPrecision))
	}
}

// ParseAmount parses a user-supplied decimal amount string.
func ParseAmount(s string) (math.LegacyDec, error) {
	d, err := math.LegacyNewDecFromStr(s)
	if err != nil {
		return math.LegacyDec{}, model.ErrValidation.Wrapf("invalid amount %q: %v", s, err)
	}
	return d, nil
}
