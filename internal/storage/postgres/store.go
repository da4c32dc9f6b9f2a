package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"poolQuote/internal/model"
)

// Store provides Postgres persistence for operation records.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("pg dsn is required")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// EnsureSchema creates the journal table when it does not exist yet.
func (s *Store) EnsureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS operation_records (
			id BIGSERIAL PRIMARY KEY,
			kind TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL,
			pool_address TEXT,
			op_kind TEXT,
			block_number BIGINT,
			tx_hash TEXT,
			tx_status BIGINT,
			gas_used BIGINT,
			error TEXT,
			payload JSONB NOT NULL
		)
	`)
	return err
}

// PutRecordBatch inserts a batch of operation records.
func (s *Store) PutRecordBatch(ctx context.Context, records []model.Record) error {
	if len(records) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, record := range records {
		payload, err := json.Marshal(record)
		if err != nil {
			return fmt.Errorf("marshal record: %w", err)
		}

		var (
			poolAddress string
			opKind      string
			blockNumber int64
		)
		if record.Operation != nil {
			poolAddress = record.Operation.Pool
			opKind = string(record.Operation.Kind)
			blockNumber = int64(record.Operation.Block)
		} else if record.Plan != nil {
			poolAddress = record.Plan.Pool
		}

		var (
			txHash   string
			txStatus int64
			gasUsed  int64
		)
		if record.Receipt != nil {
			txHash = record.Receipt.TxHash
			txStatus = int64(record.Receipt.Status)
			gasUsed = int64(record.Receipt.GasUsed)
		}

		batch.Queue(`
			INSERT INTO operation_records (
				kind, created_at, pool_address, op_kind, block_number,
				tx_hash, tx_status, gas_used, error, payload
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		`,
			string(record.Kind),
			record.CreatedAt,
			poolAddress,
			opKind,
			blockNumber,
			txHash,
			txStatus,
			gasUsed,
			record.Error,
			payload,
		)
	}

	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()

	for range records {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}
