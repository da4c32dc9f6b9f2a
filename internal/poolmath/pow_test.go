package poolmath

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"poolQuote/internal/model"
)

func dec(s string) math.LegacyDec {
	return math.LegacyMustNewDecFromStr(s)
}

// closeTol absorbs the series cutoff plus directional rounding; formula
// errors show up orders of magnitude above it.
var closeTol = math.LegacyNewDecWithPrec(1, 6)

func requireClose(t *testing.T, want, got math.LegacyDec) {
	t.Helper()
	diff := want.Sub(got).Abs()
	require.True(t, diff.LTE(closeTol), "want %s, got %s (diff %s)", want, got, diff)
}

// TestPow_IntegerExponent tests that whole exponents are raised exactly
func TestPow_IntegerExponent(t *testing.T) {
	got, err := pow(dec("1.5"), dec("2"))
	require.NoError(t, err)
	require.True(t, got.Equal(dec("2.25")), "got %s", got)

	got, err = pow(dec("0.5"), dec("3"))
	require.NoError(t, err)
	require.True(t, got.Equal(dec("0.125")), "got %s", got)
}

// TestPow_ZeroExponent tests that anything to the zero is one
func TestPow_ZeroExponent(t *testing.T) {
	got, err := pow(dec("1.7"), math.LegacyZeroDec())
	require.NoError(t, err)
	require.True(t, got.Equal(math.LegacyOneDec()), "got %s", got)
}

// TestPow_FractionalExponent tests the series against known square roots
func TestPow_FractionalExponent(t *testing.T) {
	got, err := pow(dec("1.21"), dec("0.5"))
	require.NoError(t, err)
	requireClose(t, dec("1.1"), got)

	got, err = pow(dec("0.25"), dec("0.5"))
	require.NoError(t, err)
	requireClose(t, dec("0.5"), got)
}

// TestPow_MixedExponent tests an exponent with whole and fractional parts
func TestPow_MixedExponent(t *testing.T) {
	// 1.1^2.5 = 1.21 * sqrt(1.1)
	got, err := pow(dec("1.1"), dec("2.5"))
	require.NoError(t, err)
	requireClose(t, dec("1.269058706"), got)
}

// TestPow_DomainErrors tests rejection of bases outside (0, 2)
func TestPow_DomainErrors(t *testing.T) {
	_, err := pow(math.LegacyZeroDec(), dec("0.5"))
	require.ErrorIs(t, err, model.ErrComputation)

	_, err = pow(dec("2"), dec("0.5"))
	require.ErrorIs(t, err, model.ErrComputation)

	_, err = pow(dec("2.5"), dec("0.5"))
	require.ErrorIs(t, err, model.ErrComputation)

	_, err = pow(dec("1.5"), dec("-1"))
	require.ErrorIs(t, err, model.ErrComputation)
}

// TestPow_JustInsideDomain tests the widest bases the series accepts
func TestPow_JustInsideDomain(t *testing.T) {
	got, err := pow(math.LegacySmallestDec(), dec("1"))
	require.NoError(t, err)
	require.True(t, got.Equal(math.LegacySmallestDec()))

	got, err = pow(dec("1.999999999999999999"), dec("1"))
	require.NoError(t, err)
	require.True(t, got.Equal(dec("1.999999999999999999")))
}
