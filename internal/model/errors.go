package model

import (
	"cosmossdk.io/errors"
)

// Codespace scopes the registered error codes for this module.
const Codespace = "pool"

// Sentinel failure kinds surfaced by math, guards, and quoting. Call sites
// attach detail with Wrap/Wrapf; callers branch with errors.Is.
var (
	ErrValidation            = errors.Register(Codespace, 1, "validation failed")
	ErrInsufficientLiquidity = errors.Register(Codespace, 2, "insufficient liquidity in pool")
	ErrSlippageExceeded      = errors.Register(Codespace, 3, "slippage exceeded limit")
	ErrInsufficientBalance   = errors.Register(Codespace, 4, "insufficient balance")
	ErrComputation           = errors.Register(Codespace, 5, "computation failed")
)
