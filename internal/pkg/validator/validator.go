package validator

import (
	"fmt"

	"github.com/futig/ragchat-backend/internal/entity"
)

// Validator checks inbound API requests before any conversion happens
type Validator struct{}

func NewValidator() *Validator {
	return &Validator{}
}

// ValidateCompletionRequest rejects requests without any messages.
// Per-message checks belong to normalization, which drops bad entries instead.
func (v *Validator) ValidateCompletionRequest(req *entity.ChatCompletionRequest) error {
	if req == nil || len(req.Messages) == 0 {
		return fmt.Errorf("%w: messages", entity.ErrEmptyMessages)
	}

	return nil
}
