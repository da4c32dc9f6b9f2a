package bpool

import (
	"context"
	"fmt"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"

	"poolQuote/internal/model"
)

// fakeCaller answers ABI-encoded view calls from in-memory pool state and
// records which block each pool call was pinned to.
type fakeCaller struct {
	pool      common.Address
	tokens    []common.Address
	balances  map[common.Address]*big.Int
	weights   map[common.Address]*big.Int
	decimals  map[common.Address]uint8
	fee       *big.Int
	supply    *big.Int
	shareBal  *big.Int
	finalized bool
	block     uint64

	poolCallBlocks []*big.Int
}

func (f *fakeCaller) LatestBlockNumber(ctx context.Context) (uint64, error) {
	return f.block, nil
}

func (f *fakeCaller) BlockTimestamp(ctx context.Context, number uint64) (uint64, error) {
	return 1700000000, nil
}

func (f *fakeCaller) CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error) {
	if msg.To == nil || len(msg.Data) < 4 {
		return nil, fmt.Errorf("malformed call")
	}

	poolABI, err := PoolABI()
	if err != nil {
		return nil, err
	}
	if *msg.To == f.pool {
		method, err := poolABI.MethodById(msg.Data[:4])
		if err != nil {
			return nil, err
		}
		f.poolCallBlocks = append(f.poolCallBlocks, blockNumber)
		switch method.Name {
		case "getCurrentTokens":
			return method.Outputs.Pack(f.tokens)
		case "getBalance":
			args, err := method.Inputs.Unpack(msg.Data[4:])
			if err != nil {
				return nil, err
			}
			return method.Outputs.Pack(f.balances[args[0].(common.Address)])
		case "getDenormalizedWeight":
			args, err := method.Inputs.Unpack(msg.Data[4:])
			if err != nil {
				return nil, err
			}
			return method.Outputs.Pack(f.weights[args[0].(common.Address)])
		case "getSwapFee":
			return method.Outputs.Pack(f.fee)
		case "totalSupply":
			return method.Outputs.Pack(f.supply)
		case "isFinalized":
			return method.Outputs.Pack(f.finalized)
		case "balanceOf":
			return method.Outputs.Pack(f.shareBal)
		}
		return nil, fmt.Errorf("unexpected pool method %s", method.Name)
	}

	tokenABI, err := ERC20ABI()
	if err != nil {
		return nil, err
	}
	method, err := tokenABI.MethodById(msg.Data[:4])
	if err != nil {
		return nil, err
	}
	switch method.Name {
	case "decimals":
		return method.Outputs.Pack(f.decimals[*msg.To])
	case "symbol":
		return method.Outputs.Pack("TKN")
	case "name":
		return method.Outputs.Pack("Test Token")
	}
	return nil, fmt.Errorf("unexpected token method %s", method.Name)
}

func bone(units int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(units), pow10(18))
}

func newFake() *fakeCaller {
	tokenA := common.HexToAddress("0x00000000000000000000000000000000000000a1")
	tokenB := common.HexToAddress("0x00000000000000000000000000000000000000a2")
	return &fakeCaller{
		pool:   common.HexToAddress("0x00000000000000000000000000000000000000aa"),
		tokens: []common.Address{tokenA, tokenB},
		balances: map[common.Address]*big.Int{
			tokenA: bone(100),
			tokenB: big.NewInt(200_000_000),
		},
		weights: map[common.Address]*big.Int{
			tokenA: bone(3),
			tokenB: bone(7),
		},
		decimals: map[common.Address]uint8{
			tokenA: 18,
			tokenB: 6,
		},
		fee:       big.NewInt(3_000_000_000_000_000), // 0.003
		supply:    bone(100),
		shareBal:  bone(40),
		finalized: true,
		block:     123456,
	}
}

func TestFetchSnapshot(t *testing.T) {
	fake := newFake()
	acc := NewAccessor(fake, 0, 0, nil)

	snap, err := acc.FetchSnapshot(context.Background(), fake.pool)
	if err != nil {
		t.Fatalf("fetch snapshot: %v", err)
	}

	if snap.Block != fake.block {
		t.Fatalf("block = %d, want %d", snap.Block, fake.block)
	}
	if len(snap.Tokens) != 2 {
		t.Fatalf("tokens = %d, want 2", len(snap.Tokens))
	}
	if !snap.Tokens[0].Reserve.Equal(mustDec(t, "100")) {
		t.Fatalf("token A reserve = %s, want 100", snap.Tokens[0].Reserve)
	}
	if !snap.Tokens[1].Reserve.Equal(mustDec(t, "200")) {
		t.Fatalf("token B reserve = %s, want 200", snap.Tokens[1].Reserve)
	}
	if !snap.Tokens[0].Weight.Equal(mustDec(t, "3")) || !snap.Tokens[1].Weight.Equal(mustDec(t, "7")) {
		t.Fatalf("weights = %s/%s, want 3/7", snap.Tokens[0].Weight, snap.Tokens[1].Weight)
	}
	if !snap.TotalWeight().Equal(mustDec(t, "10")) {
		t.Fatalf("total weight = %s, want 10", snap.TotalWeight())
	}
	if !snap.SwapFee.Equal(mustDec(t, "0.003")) {
		t.Fatalf("swap fee = %s, want 0.003", snap.SwapFee)
	}
	if !snap.ShareSupply.Equal(mustDec(t, "100")) {
		t.Fatalf("share supply = %s, want 100", snap.ShareSupply)
	}
	if snap.Status() != model.StatusFinalized {
		t.Fatalf("status = %s, want finalized", snap.Status())
	}
	if snap.BlockTime.IsZero() {
		t.Fatal("block time not set")
	}

	// Every pool view call must have been pinned to the same block.
	if len(fake.poolCallBlocks) == 0 {
		t.Fatal("no pool calls recorded")
	}
	for i, b := range fake.poolCallBlocks {
		if b == nil || b.Uint64() != fake.block {
			t.Fatalf("pool call %d pinned to %v, want %d", i, b, fake.block)
		}
	}
}

func TestShareBalance(t *testing.T) {
	fake := newFake()
	acc := NewAccessor(fake, 0, 0, nil)

	bal, err := acc.ShareBalance(context.Background(), fake.pool, common.HexToAddress("0x00000000000000000000000000000000000000f1"), fake.block)
	if err != nil {
		t.Fatalf("share balance: %v", err)
	}
	if !bal.Equal(mustDec(t, "40")) {
		t.Fatalf("share balance = %s, want 40", bal)
	}
}
