package model

// OperationKind enumerates the ledger operations a quote can resolve to.
type OperationKind string

const (
	OpSwapExactIn   OperationKind = "swap_exact_in"
	OpSwapExactOut  OperationKind = "swap_exact_out"
	OpJoinSingleIn  OperationKind = "join_single_in"
	OpJoinPoolOut   OperationKind = "join_pool_out"
	OpExitPoolIn    OperationKind = "exit_pool_in"
	OpExitSingleOut OperationKind = "exit_single_out"
)

// Operation is a fully resolved, submittable descriptor. Amounts are
// decimal strings in token units; share amounts are in pool-share units.
// Building one is deterministic: the same snapshot and request always
// produce the same descriptor.
type Operation struct {
	Kind     OperationKind `json:"kind"`
	Pool     string        `json:"pool"`
	TokenIn  string        `json:"tokenIn,omitempty"`
	TokenOut string        `json:"tokenOut,omitempty"`

	// Quoted amounts. For exact-in kinds AmountIn is caller-fixed and
	// AmountOut/PoolOut is the expected receipt; for exact-out kinds the
	// roles flip.
	AmountIn  string `json:"amountIn,omitempty"`
	AmountOut string `json:"amountOut,omitempty"`
	PoolIn    string `json:"poolIn,omitempty"`
	PoolOut   string `json:"poolOut,omitempty"`

	// Limit is the caller's bound in canonical form: a minimum receipt for
	// exact-in kinds, a maximum payment for exact-out kinds.
	Limit string `json:"limit,omitempty"`
	// MaxPrice optionally bounds the post-trade spot price; empty means
	// unbounded.
	MaxPrice string `json:"maxPrice,omitempty"`

	// Block is the snapshot block the quote was computed against.
	Block uint64 `json:"block"`
}

// SetupSide is one half of a pool creation plan.
type SetupSide struct {
	Token  string `json:"token"`
	Amount string `json:"amount"`
	Weight string `json:"weight"`
}

// SetupPlan describes pool creation as submitted to the ledger: bind both
// sides, set the swap fee, finalize. Named is the side the caller
// specified; Derived is the complementary side computed from the 10-unit
// weight split.
type SetupPlan struct {
	Pool    string    `json:"pool,omitempty"`
	Named   SetupSide `json:"named"`
	Derived SetupSide `json:"derived"`
	SwapFee string    `json:"swapFee"`
}
