package poolmath

import (
	"cosmossdk.io/math"

	"poolQuote/internal/model"
)

// The fractional-power series converges only for bases in (0, 2). Terms
// below powPrecision are cut off, matching the exponentiation used by the
// on-ledger pool implementation.
var (
	powPrecision = math.LegacyNewDecWithPrec(1, 10)
	maxPowBase   = math.LegacyNewDec(2)
)

// pow computes base**exp for a non-negative exponent. The integer part of
// the exponent is raised exactly; the fractional part uses powApprox.
func pow(base, exp math.LegacyDec) (math.LegacyDec, error) {
	if !base.IsPositive() || base.GTE(maxPowBase) {
		return math.LegacyDec{}, model.ErrComputation.Wrapf("power base %s outside (0, 2)", base)
	}
	if exp.IsNegative() {
		return math.LegacyDec{}, model.ErrComputation.Wrapf("negative exponent %s", exp)
	}
	whole := exp.TruncateDec()
	remain := exp.Sub(whole)
	result := base.Power(whole.TruncateInt().Uint64())
	if remain.IsZero() {
		return result, nil
	}
	return result.Mul(powApprox(base, remain)), nil
}

// powApprox evaluates base**exp for exp in (0, 1) by binomial expansion
// around base = 1, accumulating terms until one falls below powPrecision.
func powApprox(base, exp math.LegacyDec) math.LegacyDec {
	if exp.IsZero() {
		return math.LegacyOneDec()
	}
	one := math.LegacyOneDec()
	x, xneg := absDifferenceWithSign(base, one)
	term := math.LegacyOneDec()
	sum := math.LegacyOneDec()
	negative := false
	for i := int64(1); term.GTE(powPrecision); i++ {
		bigK := math.LegacyNewDec(i)
		c, cneg := absDifferenceWithSign(exp, bigK.Sub(one))
		term = term.Mul(c.Mul(x)).Quo(bigK)
		if term.IsZero() {
			break
		}
		if xneg {
			negative = !negative
		}
		if cneg {
			negative = !negative
		}
		if negative {
			sum = sum.Sub(term)
		} else {
			sum = sum.Add(term)
		}
	}
	return sum
}

// absDifferenceWithSign returns |a-b| and whether a < b.
func absDifferenceWithSign(a, b math.LegacyDec) (math.LegacyDec, bool) {
	if a.GTE(b) {
		return a.Sub(b), false
	}
	return b.Sub(a), true
}
