package model

import (
	"cosmossdk.io/math"
)

// PoolToken is one token bound into a pool, as captured in a snapshot.
// Reserve is expressed in token units with 18 fractional digits; Weight is
// the denormalized weight. Normalized weights are always derived from the
// snapshot, never stored.
type PoolToken struct {
	Address string         `json:"address"`
	Reserve math.LegacyDec `json:"reserve"`
	Weight  math.LegacyDec `json:"weight"`
}

// TokenMeta describes an ERC-20 token. Decimals drive the conversion
// between on-chain integer amounts and token units.
type TokenMeta struct {
	Address  string `json:"address"`
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Decimals uint8  `json:"decimals"`
}
