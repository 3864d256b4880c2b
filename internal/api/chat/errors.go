package chat

import (
	"errors"

	"github.com/futig/ragchat-backend/internal/entity"
	chatuc "github.com/futig/ragchat-backend/internal/usecase/chat"
)

// Messages returned to the client in the error field
const (
	msgEmptyMessages   = "Chat messages cannot be null or empty"
	msgNoValidMessages = "No valid messages to process"
	msgRateLimited     = "The AI service is currently experiencing high demand. Please wait a moment and try again."
	msgGeneric         = "Error processing request"
	msgInvalidBody     = "Invalid request body"
)

// userMessage maps an error onto a client safe message. Provider details
// never leave the server.
func userMessage(err error) string {
	switch {
	case errors.Is(err, entity.ErrEmptyMessages):
		return msgEmptyMessages
	case errors.Is(err, entity.ErrNoValidMessages):
		return msgNoValidMessages
	case chatuc.IsRateLimited(err):
		return msgRateLimited
	default:
		return msgGeneric
	}
}
