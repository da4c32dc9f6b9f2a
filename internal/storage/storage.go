package storage

import (
	"context"

	"poolQuote/internal/model"
)

// Journal defines a sink for operation records.
type Journal interface {
	PutRecordBatch(ctx context.Context, records []model.Record) error
}
