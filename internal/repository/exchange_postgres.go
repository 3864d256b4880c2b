package repository

import (
	"context"
	"fmt"

	"github.com/futig/ragchat-backend/internal/entity"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ExchangeRepository defines the interface for exchange persistence
type ExchangeRepository interface {
	RecordExchange(ctx context.Context, exchange *entity.Exchange) error
}

var _ ExchangeRepository = &ExchangePostgres{}

type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

const insertExchange = `
INSERT INTO chat_exchanges (
    id, request_id, message_count, submitted_count, outcome,
    content_length, citation_count, duration_ms, created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, COALESCE($9, NOW()))`

// ExchangePostgres implements ExchangeRepository using PostgreSQL
type ExchangePostgres struct {
	db execer
}

func NewExchangePostgres(db *pgxpool.Pool) *ExchangePostgres {
	return &ExchangePostgres{db: db}
}

func (r *ExchangePostgres) RecordExchange(ctx context.Context, exchange *entity.Exchange) error {
	row, err := toExchangeRow(exchange)
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, insertExchange,
		row.ID,
		row.RequestID,
		row.MessageCount,
		row.SubmittedCount,
		row.Outcome,
		row.ContentLength,
		row.CitationCount,
		row.DurationMs,
		row.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert exchange: %w", err)
	}

	if tag.RowsAffected() != 1 {
		return fmt.Errorf("insert exchange: %d rows affected", tag.RowsAffected())
	}

	return nil
}
