package model

import (
	"strings"
	"time"

	"cosmossdk.io/math"
)

// PoolStatus is the lifecycle stage of a pool.
type PoolStatus string

const (
	// StatusUnbound means no tokens are bound yet.
	StatusUnbound PoolStatus = "unbound"
	// StatusBinding means tokens are bound but the pool is not finalized;
	// fee and weights are still mutable and trading is not open.
	StatusBinding PoolStatus = "binding"
	// StatusFinalized means the pool is open for trading and liquidity
	// operations. The transition is irreversible.
	StatusFinalized PoolStatus = "finalized"
)

// Snapshot is the observed state of one pool, with every field read at the
// same block. Amount fields carry 18 fractional digits.
type Snapshot struct {
	Pool        string         `json:"pool"`
	Tokens      []PoolToken    `json:"tokens"`
	SwapFee     math.LegacyDec `json:"swapFee"`
	ShareSupply math.LegacyDec `json:"shareSupply"`
	Finalized   bool           `json:"finalized"`
	Block       uint64         `json:"block"`
	BlockTime   time.Time      `json:"blockTime"`
}

// Status derives the lifecycle stage from the bound token set and the
// finalized flag.
func (s *Snapshot) Status() PoolStatus {
	switch {
	case s.Finalized:
		return StatusFinalized
	case len(s.Tokens) > 0:
		return StatusBinding
	default:
		return StatusUnbound
	}
}

// TotalWeight sums the denormalized weights of the bound tokens. Derived on
// every call so it cannot drift from the token set.
func (s *Snapshot) TotalWeight() math.LegacyDec {
	total := math.LegacyZeroDec()
	for _, t := range s.Tokens {
		total = total.Add(t.Weight)
	}
	return total
}

// Token returns the bound token with the given address. Addresses compare
// case-insensitively so checksummed and lowercase forms match.
func (s *Snapshot) Token(addr string) (PoolToken, bool) {
	for _, t := range s.Tokens {
		if strings.EqualFold(t.Address, addr) {
			return t, true
		}
	}
	return PoolToken{}, false
}
