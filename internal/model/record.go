package model

import (
	"time"
)

// RecordKind distinguishes journal entries.
type RecordKind string

const (
	RecordQuote  RecordKind = "quote"
	RecordSubmit RecordKind = "submit"
	RecordSetup  RecordKind = "setup"
)

// Record is one journal entry: a built quote, a submission outcome, or a
// pool setup. Exactly one of Operation and Plan is set; Receipt and Error
// are filled for submissions only.
type Record struct {
	Kind      RecordKind `json:"kind"`
	CreatedAt time.Time  `json:"createdAt"`
	Operation *Operation `json:"operation,omitempty"`
	Plan      *SetupPlan `json:"plan,omitempty"`
	Receipt   *Receipt   `json:"receipt,omitempty"`
	Error     string     `json:"error,omitempty"`
}
