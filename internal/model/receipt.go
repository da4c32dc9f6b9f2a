package model

// Receipt reports one mined ledger transaction.
type Receipt struct {
	TxHash  string `json:"txHash"`
	Block   uint64 `json:"block"`
	GasUsed uint64 `json:"gasUsed"`
	// Status is 1 for success, 0 for a revert.
	Status uint64 `json:"status"`
}
