package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/futig/ragchat-backend/internal/entity"
	"github.com/futig/ragchat-backend/internal/pkg/logger"
	"github.com/futig/ragchat-backend/internal/pkg/response"
	"github.com/futig/ragchat-backend/internal/pkg/validator"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

type Handler struct {
	usecase   ChatUsecase
	validator *validator.Validator
}

func NewHandler(usecase ChatUsecase, validator *validator.Validator) *Handler {
	return &Handler{
		usecase:   usecase,
		validator: validator,
	}
}

// Completion handles POST /api/chat/completion.
// Every outcome except an undecodable body is answered with 200 and the
// failure carried in the error field.
func (h *Handler) Completion(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "ChatCompletion")

	var req entity.ChatCompletionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ctxzap.Warn(ctx, "failed to decode request body", zap.Error(err))
		response.JSON(w, r, http.StatusBadRequest, entity.NewChatErrorResponse(msgInvalidBody))
		return
	}

	ctxzap.Debug(ctx, "received chat completion request", zap.Int("message_count", len(req.Messages)))

	if err := h.validator.ValidateCompletionRequest(&req); err != nil {
		ctxzap.Error(ctx, "request messages are empty", zap.Error(err))
		h.respondError(w, r, err)
		return
	}

	history := toProviderMessages(req.Messages)
	if len(history) == 0 {
		ctxzap.Warn(ctx, "no valid messages after filtering", zap.Int("received", len(req.Messages)))
		h.respondError(w, r, fmt.Errorf("%w: %d received", entity.ErrNoValidMessages, len(req.Messages)))
		return
	}

	// The provider call outlives a dropped client connection
	completions, err := h.usecase.Complete(context.WithoutCancel(ctx), history)
	if err != nil {
		ctxzap.Error(ctx, "failed to process chat completion", zap.Error(err))
		h.respondError(w, r, err)
		return
	}

	resp := toChatResponse(completions)
	ctxzap.Debug(ctx, "chat completion finished", zap.Int("citation_count", len(resp.Citations)))

	response.Success(w, r, resp)
}

// RateLimited answers a throttled client the same way a throttled provider is answered
func (h *Handler) RateLimited(w http.ResponseWriter, r *http.Request) {
	response.Success(w, r, entity.NewChatErrorResponse(msgRateLimited))
}

func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	response.Success(w, r, entity.NewChatErrorResponse(userMessage(err)))
}
