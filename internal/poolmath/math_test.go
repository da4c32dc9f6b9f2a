package poolmath

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"poolQuote/internal/model"
)

// TestSpotPrice_Reference tests the price of a 100/5 vs 200/5 pool
func TestSpotPrice_Reference(t *testing.T) {
	price, err := SpotPrice(dec("100"), dec("5"), dec("200"), dec("5"), math.LegacyZeroDec())
	require.NoError(t, err)
	require.True(t, price.Equal(dec("0.5")), "got %s", price)

	price, err = SpotPrice(dec("100"), dec("5"), dec("200"), dec("5"), dec("0.1"))
	require.NoError(t, err)
	requireClose(t, dec("0.555555555555555556"), price)
}

// TestSpotPrice_FeeRaisesPrice tests that the fee-free price never exceeds
// the fee-inclusive one
func TestSpotPrice_FeeRaisesPrice(t *testing.T) {
	sans, err := SpotPriceNoFee(dec("120"), dec("3"), dec("80"), dec("7"))
	require.NoError(t, err)
	with, err := SpotPrice(dec("120"), dec("3"), dec("80"), dec("7"), dec("0.02"))
	require.NoError(t, err)
	require.True(t, sans.LT(with), "sans %s should be below %s", sans, with)
}

// TestSpotPrice_InvalidParams tests parameter validation
func TestSpotPrice_InvalidParams(t *testing.T) {
	_, err := SpotPrice(math.LegacyZeroDec(), dec("5"), dec("200"), dec("5"), math.LegacyZeroDec())
	require.ErrorIs(t, err, model.ErrValidation)

	_, err = SpotPrice(dec("100"), dec("5"), dec("200"), math.LegacyZeroDec(), math.LegacyZeroDec())
	require.ErrorIs(t, err, model.ErrValidation)

	_, err = SpotPrice(dec("100"), dec("5"), dec("200"), dec("5"), math.LegacyOneDec())
	require.ErrorIs(t, err, model.ErrValidation)
}

// TestOutGivenIn_Reference tests the documented equal-weight scenario:
// reserves 100/200, weights 5/5, no fee, pay 10, receive ~18.1818
func TestOutGivenIn_Reference(t *testing.T) {
	out, err := OutGivenIn(dec("100"), dec("5"), dec("200"), dec("5"), dec("10"), math.LegacyZeroDec())
	require.NoError(t, err)
	requireClose(t, dec("18.181818181818181818"), out)
}

// TestOutGivenIn_ZeroAmount tests that a zero payment buys exactly zero
func TestOutGivenIn_ZeroAmount(t *testing.T) {
	out, err := OutGivenIn(dec("100"), dec("5"), dec("200"), dec("5"), math.LegacyZeroDec(), dec("0.1"))
	require.NoError(t, err)
	require.True(t, out.IsZero(), "got %s", out)
}

// TestOutGivenIn_Monotonic tests that larger payments buy strictly more
func TestOutGivenIn_Monotonic(t *testing.T) {
	prev := math.LegacyZeroDec()
	for _, amt := range []string{"1", "2", "5", "10", "20"} {
		out, err := OutGivenIn(dec("100"), dec("3"), dec("200"), dec("7"), dec(amt), dec("0.003"))
		require.NoError(t, err)
		require.True(t, out.GT(prev), "amount %s: out %s not above %s", amt, out, prev)
		prev = out
	}
}

// TestOutGivenIn_FeeReducesOutput tests that the fee only ever costs the
// trader
func TestOutGivenIn_FeeReducesOutput(t *testing.T) {
	free, err := OutGivenIn(dec("100"), dec("5"), dec("200"), dec("5"), dec("10"), math.LegacyZeroDec())
	require.NoError(t, err)
	charged, err := OutGivenIn(dec("100"), dec("5"), dec("200"), dec("5"), dec("10"), dec("0.05"))
	require.NoError(t, err)
	require.True(t, charged.LT(free), "charged %s should be below %s", charged, free)
}

// TestOutGivenIn_ExtremeWeightRatio tests that a payment large enough to
// truncate the power term to zero cannot quote the entire output reserve
func TestOutGivenIn_ExtremeWeightRatio(t *testing.T) {
	_, err := OutGivenIn(dec("1"), dec("9"), dec("200"), dec("1"), dec("1000"), math.LegacyZeroDec())
	require.ErrorIs(t, err, model.ErrInsufficientLiquidity)
}

// TestInGivenOut_RoundTrip tests that quoting the payment for a quoted
// receipt recovers the original payment
func TestInGivenOut_RoundTrip(t *testing.T) {
	out, err := OutGivenIn(dec("100"), dec("5"), dec("200"), dec("5"), dec("10"), dec("0.01"))
	require.NoError(t, err)
	in, err := InGivenOut(dec("100"), dec("5"), dec("200"), dec("5"), out, dec("0.01"))
	require.NoError(t, err)
	requireClose(t, dec("10"), in)
}

// TestInGivenOut_RoundTripUnequalWeights tests the round trip through the
// fractional-power path
func TestInGivenOut_RoundTripUnequalWeights(t *testing.T) {
	out, err := OutGivenIn(dec("100"), dec("1"), dec("100"), dec("9"), dec("10"), math.LegacyZeroDec())
	require.NoError(t, err)
	require.True(t, out.IsPositive())
	in, err := InGivenOut(dec("100"), dec("1"), dec("100"), dec("9"), out, math.LegacyZeroDec())
	require.NoError(t, err)
	requireClose(t, dec("10"), in)
}

// TestInGivenOut_ZeroAmount tests that a zero receipt costs exactly zero
func TestInGivenOut_ZeroAmount(t *testing.T) {
	in, err := InGivenOut(dec("100"), dec("5"), dec("200"), dec("5"), math.LegacyZeroDec(), dec("0.1"))
	require.NoError(t, err)
	require.True(t, in.IsZero(), "got %s", in)
}

// TestInGivenOut_InsufficientLiquidity tests that draining the reserve is
// rejected
func TestInGivenOut_InsufficientLiquidity(t *testing.T) {
	_, err := InGivenOut(dec("100"), dec("5"), dec("200"), dec("5"), dec("200"), math.LegacyZeroDec())
	require.ErrorIs(t, err, model.ErrInsufficientLiquidity)

	_, err = InGivenOut(dec("100"), dec("5"), dec("200"), dec("5"), dec("250"), math.LegacyZeroDec())
	require.ErrorIs(t, err, model.ErrInsufficientLiquidity)
}

// TestInGivenOut_DeepReceiptOutsideDomain tests that receipts above half
// the reserve fail as a computation error rather than a wrong number
func TestInGivenOut_DeepReceiptOutsideDomain(t *testing.T) {
	_, err := InGivenOut(dec("100"), dec("5"), dec("200"), dec("5"), dec("120"), math.LegacyZeroDec())
	require.ErrorIs(t, err, model.ErrComputation)
}

// TestSwapQuotes_InvalidParams tests shared parameter validation
func TestSwapQuotes_InvalidParams(t *testing.T) {
	_, err := OutGivenIn(dec("100"), dec("5"), dec("200"), dec("5"), dec("-1"), math.LegacyZeroDec())
	require.ErrorIs(t, err, model.ErrValidation)

	_, err = OutGivenIn(dec("100"), dec("5"), dec("200"), dec("5"), dec("10"), dec("1"))
	require.ErrorIs(t, err, model.ErrValidation)

	_, err = InGivenOut(dec("100"), math.LegacyZeroDec(), dec("200"), dec("5"), dec("10"), math.LegacyZeroDec())
	require.ErrorIs(t, err, model.ErrValidation)
}
