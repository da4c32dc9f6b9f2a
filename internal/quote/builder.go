// Package quote assembles approved guard results into operation
// descriptors. Building is deterministic: the same snapshot and quote
// always yield an identical descriptor, so descriptors can be journaled,
// diffed, and replayed.
package quote

import (
	"cosmossdk.io/math"

	"poolQuote/internal/guard"
	"poolQuote/internal/model"
)

// decString renders a bound; zero and nil bounds are omitted from the
// descriptor, matching the guards that treat them as disabled.
func decString(d math.LegacyDec) string {
	if d.IsNil() || d.IsZero() {
		return ""
	}
	return d.String()
}

// SwapExactIn builds the descriptor for a fixed-payment swap.
func SwapExactIn(snap *model.Snapshot, q guard.SwapQuote, minOut, maxPrice math.LegacyDec) model.Operation {
	return model.Operation{
		Kind:      model.OpSwapExactIn,
		Pool:      snap.Pool,
		TokenIn:   q.In.Address,
		TokenOut:  q.Out.Address,
		AmountIn:  q.AmountIn.String(),
		AmountOut: q.AmountOut.String(),
		Limit:     decString(minOut),
		MaxPrice:  decString(maxPrice),
		Block:     snap.Block,
	}
}

// SwapExactOut builds the descriptor for a fixed-receipt swap.
func SwapExactOut(snap *model.Snapshot, q guard.SwapQuote, maxIn, maxPrice math.LegacyDec) model.Operation {
	return model.Operation{
		Kind:      model.OpSwapExactOut,
		Pool:      snap.Pool,
		TokenIn:   q.In.Address,
		TokenOut:  q.Out.Address,
		AmountIn:  q.AmountIn.String(),
		AmountOut: q.AmountOut.String(),
		Limit:     decString(maxIn),
		MaxPrice:  decString(maxPrice),
		Block:     snap.Block,
	}
}

// JoinSingleIn builds the descriptor for a fixed single-asset deposit.
func JoinSingleIn(snap *model.Snapshot, q guard.JoinQuote, minPoolOut math.LegacyDec) model.Operation {
	return model.Operation{
		Kind:     model.OpJoinSingleIn,
		Pool:     snap.Pool,
		TokenIn:  q.Token.Address,
		AmountIn: q.AmountIn.String(),
		PoolOut:  q.PoolOut.String(),
		Limit:    decString(minPoolOut),
		Block:    snap.Block,
	}
}

// JoinPoolOut builds the descriptor for minting a fixed number of shares.
func JoinPoolOut(snap *model.Snapshot, q guard.JoinQuote, maxIn math.LegacyDec) model.Operation {
	return model.Operation{
		Kind:     model.OpJoinPoolOut,
		Pool:     snap.Pool,
		TokenIn:  q.Token.Address,
		AmountIn: q.AmountIn.String(),
		PoolOut:  q.PoolOut.String(),
		Limit:    decString(maxIn),
		Block:    snap.Block,
	}
}

// ExitPoolIn builds the descriptor for burning a fixed number of shares.
func ExitPoolIn(snap *model.Snapshot, q guard.ExitQuote, minOut math.LegacyDec) model.Operation {
	return model.Operation{
		Kind:      model.OpExitPoolIn,
		Pool:      snap.Pool,
		TokenOut:  q.Token.Address,
		AmountOut: q.AmountOut.String(),
		PoolIn:    q.PoolIn.String(),
		Limit:     decString(minOut),
		Block:     snap.Block,
	}
}

// ExitSingleOut builds the descriptor for a fixed single-asset withdrawal.
func ExitSingleOut(snap *model.Snapshot, q guard.ExitQuote, maxPoolIn math.LegacyDec) model.Operation {
	return model.Operation{
		Kind:      model.OpExitSingleOut,
		Pool:      snap.Pool,
		TokenOut:  q.Token.Address,
		AmountOut: q.AmountOut.String(),
		PoolIn:    q.PoolIn.String(),
		Limit:     decString(maxPoolIn),
		Block:     snap.Block,
	}
}

// Setup builds the creation plan descriptor from an approved creation.
func Setup(c guard.Creation) model.SetupPlan {
	return model.SetupPlan{
		Named: model.SetupSide{
			Token:  c.NamedToken,
			Amount: c.NamedAmount.String(),
			Weight: c.NamedWeight.String(),
		},
		Derived: model.SetupSide{
			Token:  c.DerivedToken,
			Amount: c.DerivedAmount.String(),
			Weight: c.DerivedWeight.String(),
		},
		SwapFee: c.SwapFee.String(),
	}
}
