package guard

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"poolQuote/internal/model"
)

const (
	tokenA = "0x00000000000000000000000000000000000000c1"
	tokenB = "0x00000000000000000000000000000000000000c2"
)

// TestPlanCreation_Reference tests the documented split: amount 10 at
// weight 3 pairs with weight 7 and amount ~23.333
func TestPlanCreation_Reference(t *testing.T) {
	plan, err := PlanCreation(tokenA, tokenB, dec("10"), dec("3"), dec("0.05"))
	require.NoError(t, err)
	require.True(t, plan.NamedAmount.Equal(dec("10")))
	require.True(t, plan.NamedWeight.Equal(dec("3")))
	require.True(t, plan.DerivedWeight.Equal(dec("7")))
	requireClose(t, dec("23.333333333333333333"), plan.DerivedAmount)
}

// TestPlanCreation_FractionalWeight tests a non-integer weight inside the
// allowed range
func TestPlanCreation_FractionalWeight(t *testing.T) {
	plan, err := PlanCreation(tokenA, tokenB, dec("10"), dec("2.5"), math.LegacyZeroDec())
	require.NoError(t, err)
	require.True(t, plan.DerivedWeight.Equal(dec("7.5")))
	require.True(t, plan.DerivedAmount.Equal(dec("30")), "got %s", plan.DerivedAmount)
}

// TestPlanCreation_WeightBounds tests the [1, 9] weight window edges
func TestPlanCreation_WeightBounds(t *testing.T) {
	_, err := PlanCreation(tokenA, tokenB, dec("10"), dec("1"), math.LegacyZeroDec())
	require.NoError(t, err)

	_, err = PlanCreation(tokenA, tokenB, dec("10"), dec("9"), math.LegacyZeroDec())
	require.NoError(t, err)

	_, err = PlanCreation(tokenA, tokenB, dec("10"), dec("0.5"), math.LegacyZeroDec())
	require.ErrorIs(t, err, model.ErrValidation)

	_, err = PlanCreation(tokenA, tokenB, dec("10"), dec("9.5"), math.LegacyZeroDec())
	require.ErrorIs(t, err, model.ErrValidation)
}

// TestPlanCreation_FeeBounds tests the [0, 0.1] fee window edges
func TestPlanCreation_FeeBounds(t *testing.T) {
	_, err := PlanCreation(tokenA, tokenB, dec("10"), dec("5"), dec("0.1"))
	require.NoError(t, err)

	_, err = PlanCreation(tokenA, tokenB, dec("10"), dec("5"), math.LegacyZeroDec())
	require.NoError(t, err)

	_, err = PlanCreation(tokenA, tokenB, dec("10"), dec("5"), dec("0.2"))
	require.ErrorIs(t, err, model.ErrValidation)

	_, err = PlanCreation(tokenA, tokenB, dec("10"), dec("5"), dec("-0.01"))
	require.ErrorIs(t, err, model.ErrValidation)
}

// TestPlanCreation_TokenValidation tests token identity checks
func TestPlanCreation_TokenValidation(t *testing.T) {
	_, err := PlanCreation(tokenA, tokenA, dec("10"), dec("5"), math.LegacyZeroDec())
	require.ErrorIs(t, err, model.ErrValidation)

	_, err = PlanCreation("", tokenB, dec("10"), dec("5"), math.LegacyZeroDec())
	require.ErrorIs(t, err, model.ErrValidation)

	_, err = PlanCreation(tokenA, tokenB, math.LegacyZeroDec(), dec("5"), math.LegacyZeroDec())
	require.ErrorIs(t, err, model.ErrValidation)
}
