package openai

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/futig/ragchat-backend/internal/config"
	"github.com/futig/ragchat-backend/internal/entity"
	"github.com/futig/ragchat-backend/internal/integration/common"
	pkghttp "github.com/futig/ragchat-backend/pkg/http"
	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const (
	chatCompletionsEndpoint = "/openai/deployments/%s/chat/completions"
	apiKeyHeader            = "api-key"
	clientRequestIDHeader   = "x-ms-client-request-id"
)

// Connector calls the Azure OpenAI chat completions API
type Connector struct {
	config    config.OpenAIConfig
	connector *pkghttp.Connector
	logger    *zap.Logger
}

// NewConnector authenticates with cfg.APIKey when set and with the managed
// identity credential chain otherwise.
func NewConnector(
	cfg config.OpenAIConfig,
	logger *zap.Logger,
) (*Connector, error) {
	var auth pkghttp.HttpOpts
	if cfg.APIKey != "" {
		logger.Info("authenticating to Azure OpenAI with API key")
		auth = pkghttp.WithAPIKey(apiKeyHeader, cfg.APIKey)
	} else {
		logger.Info("authenticating to Azure OpenAI with managed identity")
		tokens, err := common.NewManagedIdentityTokenSource(common.CognitiveServicesScope)
		if err != nil {
			return nil, err
		}
		auth = pkghttp.WithTokenSource(tokens)
	}

	return newConnector(cfg, auth, logger), nil
}

func newConnector(cfg config.OpenAIConfig, auth pkghttp.HttpOpts, logger *zap.Logger) *Connector {
	return &Connector{
		connector: common.NewBaseConnector(cfg.Endpoint, cfg.HTTPClientConfig, logger, auth),
		config:    cfg,
		logger:    logger,
	}
}

// GetChatCompletions sends the request to the deployment named in req.
// A single attempt is made; provider failures are returned as is.
func (c *Connector) GetChatCompletions(ctx context.Context, req *entity.CompletionRequest) (
	*entity.ChatCompletions, error,
) {
	// Azure echoes this id in its diagnostics
	clientRequestID := uuid.NewString()

	ctxzap.Info(ctx, "requesting chat completion from Azure OpenAI",
		zap.String("deployment", req.Deployment),
		zap.String("client_request_id", clientRequestID),
		zap.Int("message_count", len(req.Messages)),
		zap.Int("data_source_count", len(req.DataSources)),
	)

	endpoint := fmt.Sprintf(chatCompletionsEndpoint, url.PathEscape(req.Deployment))

	var resp entity.ChatCompletions
	err := c.connector.DoRequest(ctx, http.MethodPost, endpoint, req, &resp,
		pkghttp.WithQueryParam("api-version", c.config.APIVersion),
		pkghttp.WithHeader(clientRequestIDHeader, clientRequestID),
	)
	if err != nil {
		return nil, fmt.Errorf("get chat completions: %w", err)
	}

	ctxzap.Info(ctx, "chat completion received",
		zap.String("completion_id", resp.ID),
		zap.Int("choice_count", len(resp.Choices)),
	)

	return &resp, nil
}
