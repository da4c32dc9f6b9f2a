package model

import (
	"encoding/json"
	"reflect"
	"testing"
	"time"
)

func TestRecordJSONRoundTrip(t *testing.T) {
	rec := Record{
		Kind:      RecordSubmit,
		CreatedAt: time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC),
		Operation: &Operation{
			Kind:      OpSwapExactIn,
			Pool:      "0x00000000000000000000000000000000000000aa",
			TokenIn:   "0x00000000000000000000000000000000000000a1",
			TokenOut:  "0x00000000000000000000000000000000000000a2",
			AmountIn:  "10.000000000000000000",
			AmountOut: "18.181818181818181800",
			Limit:     "18.000000000000000000",
			Block:     42,
		},
		Receipt: &Receipt{
			TxHash:  "0x1111111111111111111111111111111111111111111111111111111111111111",
			Block:   43,
			GasUsed: 120000,
			Status:  1,
		},
	}

	raw, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var back Record
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !reflect.DeepEqual(rec, back) {
		t.Fatalf("round trip mismatch:\n  in:  %+v\n  out: %+v", rec, back)
	}
}

func TestOperationJSONOmitsEmpty(t *testing.T) {
	op := Operation{
		Kind:     OpExitPoolIn,
		Pool:     "0x00000000000000000000000000000000000000aa",
		TokenOut: "0x00000000000000000000000000000000000000a2",
		PoolIn:   "10.000000000000000000",
		Block:    7,
	}

	raw, err := json.Marshal(op)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, absent := range []string{"tokenIn", "amountIn", "amountOut", "limit", "maxPrice"} {
		if _, ok := fields[absent]; ok {
			t.Fatalf("field %q should be omitted when empty", absent)
		}
	}
}
