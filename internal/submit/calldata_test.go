package submit

import (
	"context"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	ethmath "github.com/ethereum/go-ethereum/common/math"
	"github.com/stretchr/testify/require"

	"poolQuote/internal/bpool"
	"poolQuote/internal/model"
)

const (
	testPool   = "0x00000000000000000000000000000000000000aa"
	testTokenA = "0x00000000000000000000000000000000000000a1"
	testTokenB = "0x00000000000000000000000000000000000000a2"
)

// fakeMeta serves token decimals from a fixed table.
type fakeMeta struct {
	decimals map[string]uint8
}

func (f *fakeMeta) TokenMeta(ctx context.Context, token common.Address) (model.TokenMeta, error) {
	dec, ok := f.decimals[token.Hex()]
	if !ok {
		dec = 18
	}
	return model.TokenMeta{Address: token.Hex(), Decimals: dec}, nil
}

func newTestMeta() *fakeMeta {
	return &fakeMeta{decimals: map[string]uint8{
		common.HexToAddress(testTokenA).Hex(): 18,
		common.HexToAddress(testTokenB).Hex(): 6,
	}}
}

func packerForTest(t *testing.T) *Submitter {
	t.Helper()
	return &Submitter{meta: newTestMeta()}
}

func unpackCall(t *testing.T, data []byte, method string) []interface{} {
	t.Helper()
	poolABI, err := bpool.PoolABI()
	require.NoError(t, err)
	m, ok := poolABI.Methods[method]
	require.True(t, ok)
	require.Equal(t, m.ID, data[:4])
	args, err := m.Inputs.Unpack(data[4:])
	require.NoError(t, err)
	return args
}

func TestPackSwapExactIn(t *testing.T) {
	s := packerForTest(t)

	data, err := s.packOperation(context.Background(), model.Operation{
		Kind:     model.OpSwapExactIn,
		Pool:     testPool,
		TokenIn:  testTokenA,
		TokenOut: testTokenB,
		AmountIn: "10",
		Limit:    "18.123456",
	})
	require.NoError(t, err)

	args := unpackCall(t, data, "swapExactAmountIn")
	require.Equal(t, common.HexToAddress(testTokenA), args[0])
	require.Equal(t, new(big.Int).Mul(big.NewInt(10), big.NewInt(1e18)), args[1])
	require.Equal(t, common.HexToAddress(testTokenB), args[2])
	require.Equal(t, big.NewInt(18_123_456), args[3])
	require.Equal(t, ethmath.MaxBig256, args[4])
}

func TestPackSwapExactOut(t *testing.T) {
	s := packerForTest(t)

	data, err := s.packOperation(context.Background(), model.Operation{
		Kind:      model.OpSwapExactOut,
		Pool:      testPool,
		TokenIn:   testTokenB,
		TokenOut:  testTokenA,
		AmountOut: "5",
		Limit:     "2.5000001",
		MaxPrice:  "0.75",
	})
	require.NoError(t, err)

	args := unpackCall(t, data, "swapExactAmountOut")
	require.Equal(t, common.HexToAddress(testTokenB), args[0])
	require.Equal(t, big.NewInt(2_500_001), args[1], "max in rounds up at 6 decimals")
	require.Equal(t, common.HexToAddress(testTokenA), args[2])
	require.Equal(t, new(big.Int).Mul(big.NewInt(5), big.NewInt(1e18)), args[3])
	require.Equal(t, big.NewInt(750_000_000_000_000_000), args[4])
}

func TestPackJoinSingleIn(t *testing.T) {
	s := packerForTest(t)

	data, err := s.packOperation(context.Background(), model.Operation{
		Kind:     model.OpJoinSingleIn,
		Pool:     testPool,
		TokenIn:  testTokenB,
		AmountIn: "1.0000005",
		Limit:    "",
	})
	require.NoError(t, err)

	args := unpackCall(t, data, "joinswapExternAmountIn")
	require.Equal(t, common.HexToAddress(testTokenB), args[0])
	require.Equal(t, big.NewInt(1_000_001), args[1], "pay side rounds up")
	require.Zero(t, args[2].(*big.Int).Cmp(big.NewInt(0)), "empty minimum becomes zero")
}

func TestPackJoinPoolOut(t *testing.T) {
	s := packerForTest(t)

	data, err := s.packOperation(context.Background(), model.Operation{
		Kind:    model.OpJoinPoolOut,
		Pool:    testPool,
		TokenIn: testTokenA,
		PoolOut: "2.5",
		Limit:   "",
	})
	require.NoError(t, err)

	args := unpackCall(t, data, "joinswapPoolAmountOut")
	require.Equal(t, common.HexToAddress(testTokenA), args[0])
	require.Equal(t, big.NewInt(2_500_000_000_000_000_000), args[1])
	require.Equal(t, ethmath.MaxBig256, args[2], "empty maximum becomes max uint256")
}

func TestPackExitPoolIn(t *testing.T) {
	s := packerForTest(t)

	data, err := s.packOperation(context.Background(), model.Operation{
		Kind:     model.OpExitPoolIn,
		Pool:     testPool,
		TokenOut: testTokenB,
		PoolIn:   "10.5",
		Limit:    "19.000001",
	})
	require.NoError(t, err)

	args := unpackCall(t, data, "exitswapPoolAmountIn")
	require.Equal(t, common.HexToAddress(testTokenB), args[0])
	require.Equal(t, new(big.Int).Mul(big.NewInt(105), big.NewInt(1e17)), args[1])
	require.Equal(t, big.NewInt(19_000_001), args[2])
}

func TestPackExitSingleOut(t *testing.T) {
	s := packerForTest(t)

	data, err := s.packOperation(context.Background(), model.Operation{
		Kind:      model.OpExitSingleOut,
		Pool:      testPool,
		TokenOut:  testTokenA,
		AmountOut: "7",
		Limit:     "3.5",
	})
	require.NoError(t, err)

	args := unpackCall(t, data, "exitswapExternAmountOut")
	require.Equal(t, common.HexToAddress(testTokenA), args[0])
	require.Equal(t, new(big.Int).Mul(big.NewInt(7), big.NewInt(1e18)), args[1])
	require.Equal(t, new(big.Int).Mul(big.NewInt(35), big.NewInt(1e17)), args[2])
}

func TestPackUnknownKind(t *testing.T) {
	s := packerForTest(t)

	_, err := s.packOperation(context.Background(), model.Operation{Kind: "stake"})
	require.ErrorIs(t, err, model.ErrValidation)
}

func TestPackBadAmount(t *testing.T) {
	s := packerForTest(t)

	_, err := s.packOperation(context.Background(), model.Operation{
		Kind:     model.OpSwapExactIn,
		Pool:     testPool,
		TokenIn:  testTokenA,
		TokenOut: testTokenB,
		AmountIn: "not-a-number",
	})
	require.ErrorIs(t, err, model.ErrValidation)
}
