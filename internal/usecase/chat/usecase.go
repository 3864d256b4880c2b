package chat

import (
	"context"
	"fmt"
	"time"

	"github.com/futig/ragchat-backend/internal/entity"
	applogger "github.com/futig/ragchat-backend/internal/pkg/logger"
	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// ChatUsecase shapes chat history into a grounded completion request and
// dispatches it. It holds no per-request state.
type ChatUsecase struct {
	settings  Settings
	connector CompletionConnector
	journal   ExchangeJournal
	logger    *zap.Logger
	now       func() time.Time
}

// NewUsecase creates a new chat use case. journal may be nil.
func NewUsecase(
	settings Settings,
	connector CompletionConnector,
	journal ExchangeJournal,
	logger *zap.Logger,
) (*ChatUsecase, error) {
	if err := settings.validate(); err != nil {
		return nil, err
	}

	logger.Info("chat usecase initialized",
		zap.String("chat_deployment", settings.ChatDeployment),
		zap.String("search_index", settings.SearchIndex),
		zap.Bool("journal_enabled", journal != nil),
	)

	return &ChatUsecase{
		settings:  settings,
		connector: connector,
		journal:   journal,
		logger:    logger,
		now:       time.Now,
	}, nil
}

// Complete sends one grounded completion request for the normalized history.
// Exactly one result or one error is returned; nothing is retried.
func (uc *ChatUsecase) Complete(ctx context.Context, history []entity.ChatMessage) (*entity.ChatCompletions, error) {
	start := uc.now()

	req := BuildCompletionRequest(history, uc.settings)

	ctxzap.Debug(ctx, "dispatching grounded completion",
		zap.Int("history_count", len(history)),
		zap.Int("submitted_count", len(req.Messages)),
	)

	completions, err := uc.connector.GetChatCompletions(ctx, req)

	uc.record(ctx, &entity.Exchange{
		MessageCount:   len(history),
		SubmittedCount: len(req.Messages),
		Duration:       uc.now().Sub(start),
	}, completions, err)

	if err != nil {
		return nil, fmt.Errorf("chat completion: %w", err)
	}

	return completions, nil
}

func (uc *ChatUsecase) record(ctx context.Context, exchange *entity.Exchange, completions *entity.ChatCompletions, callErr error) {
	if uc.journal == nil {
		return
	}

	exchange.ID = uuid.New().String()
	exchange.RequestID = applogger.RequestID(ctx)
	exchange.CreatedAt = uc.now()

	switch {
	case callErr == nil:
		exchange.Outcome = entity.ExchangeOutcomeSuccess
		if completions != nil && len(completions.Choices) > 0 && completions.Choices[0].Message != nil {
			msg := completions.Choices[0].Message
			exchange.ContentLength = len(msg.Text())
			if msg.Context != nil {
				exchange.CitationCount = len(msg.Context.Citations)
			}
		}
	case IsRateLimited(callErr):
		exchange.Outcome = entity.ExchangeOutcomeRateLimited
	default:
		exchange.Outcome = entity.ExchangeOutcomeFailed
	}

	if err := uc.journal.RecordExchange(ctx, exchange); err != nil {
		ctxzap.Warn(ctx, "failed to record chat exchange", zap.Error(err))
	}
}
