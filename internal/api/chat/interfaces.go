package chat

import (
	"context"

	"github.com/futig/ragchat-backend/internal/entity"
)

type ChatUsecase interface {
	Complete(ctx context.Context, history []entity.ChatMessage) (*entity.ChatCompletions, error)
}
