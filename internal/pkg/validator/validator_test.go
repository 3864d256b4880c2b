package validator

import (
	"testing"

	"github.com/futig/ragchat-backend/internal/entity"
	"github.com/stretchr/testify/assert"
)

func TestValidateCompletionRequest(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name    string
		req     *entity.ChatCompletionRequest
		wantErr bool
	}{
		{name: "nil request", req: nil, wantErr: true},
		{name: "nil messages", req: &entity.ChatCompletionRequest{}, wantErr: true},
		{name: "empty messages", req: &entity.ChatCompletionRequest{Messages: []entity.ClientMessage{}}, wantErr: true},
		{
			name:    "blank content still passes",
			req:     &entity.ChatCompletionRequest{Messages: []entity.ClientMessage{{Role: "user", Content: " "}}},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateCompletionRequest(tt.req)
			if tt.wantErr {
				assert.ErrorIs(t, err, entity.ErrEmptyMessages)
				return
			}
			assert.NoError(t, err)
		})
	}
}
