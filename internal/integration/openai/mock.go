package openai

import (
	"context"
	"fmt"

	"github.com/futig/ragchat-backend/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// MockConnector answers without calling Azure, for local UI work
type MockConnector struct {
	logger *zap.Logger
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{
		logger: logger,
	}
}

// GetChatCompletions echoes the last user message with two canned citations
func (m *MockConnector) GetChatCompletions(ctx context.Context, req *entity.CompletionRequest) (
	*entity.ChatCompletions, error,
) {
	ctxzap.Info(ctx, "[MOCK] requesting chat completion", zap.Int("message_count", len(req.Messages)))

	question := ""
	for i := len(req.Messages) - 1; i >= 0; i-- {
		if req.Messages[i].Role == entity.RoleUser {
			question = req.Messages[i].Content
			break
		}
	}

	index := "mock-index"
	if len(req.DataSources) > 0 {
		index = req.DataSources[0].Parameters.IndexName
	}

	answer := fmt.Sprintf("You asked: %q. This is a mock answer grounded in [doc1] and [doc2].", question)

	return &entity.ChatCompletions{
		ID:    "chatcmpl-mock",
		Model: req.Deployment,
		Choices: []entity.ChatChoice{
			{
				Index: 0,
				Message: &entity.ResponseMessage{
					Role:    string(entity.RoleAssistant),
					Content: &answer,
					Context: &entity.MessageContext{
						Citations: []entity.ProviderCitation{
							{
								Title:    "Getting started",
								Content:  fmt.Sprintf("Sample passage from index %s.", index),
								Filepath: "getting-started.md",
								URL:      "https://example.com/docs/getting-started",
								ChunkID:  "0",
							},
							{
								Title:    "FAQ",
								Content:  "Frequently asked questions.",
								Filepath: "faq.md",
								URL:      "https://example.com/docs/faq",
								ChunkID:  "3",
							},
						},
					},
				},
				FinishReason: "stop",
			},
		},
	}, nil
}
