package repository

import (
	"fmt"

	"github.com/futig/ragchat-backend/internal/entity"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// exchangeRow mirrors a chat_exchanges row
type exchangeRow struct {
	ID             pgtype.UUID
	RequestID      pgtype.Text
	MessageCount   int32
	SubmittedCount int32
	Outcome        string
	ContentLength  int32
	CitationCount  int32
	DurationMs     int64
	CreatedAt      pgtype.Timestamptz
}

func toExchangeRow(e *entity.Exchange) (*exchangeRow, error) {
	id, err := uuid.Parse(e.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid exchange ID: %w", err)
	}

	return &exchangeRow{
		ID:             pgtype.UUID{Bytes: id, Valid: true},
		RequestID:      pgtype.Text{String: e.RequestID, Valid: e.RequestID != ""},
		MessageCount:   int32(e.MessageCount),
		SubmittedCount: int32(e.SubmittedCount),
		Outcome:        string(e.Outcome),
		ContentLength:  int32(e.ContentLength),
		CitationCount:  int32(e.CitationCount),
		DurationMs:     e.Duration.Milliseconds(),
		CreatedAt:      pgtype.Timestamptz{Time: e.CreatedAt, Valid: !e.CreatedAt.IsZero()},
	}, nil
}
