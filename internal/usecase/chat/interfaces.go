package chat

import (
	"context"

	"github.com/futig/ragchat-backend/internal/entity"
)

type CompletionConnector interface {
	GetChatCompletions(ctx context.Context, req *entity.CompletionRequest) (*entity.ChatCompletions, error)
}

type ExchangeJournal interface {
	RecordExchange(ctx context.Context, exchange *entity.Exchange) error
}
