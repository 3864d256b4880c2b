package chat

import (
	"strings"

	"github.com/futig/ragchat-backend/internal/entity"
)

// toProviderMessages drops blank entries and unknown roles, keeping order
func toProviderMessages(in []entity.ClientMessage) []entity.ChatMessage {
	out := make([]entity.ChatMessage, 0, len(in))
	for _, m := range in {
		if strings.TrimSpace(m.Content) == "" {
			continue
		}

		role, ok := entity.ParseRole(m.Role)
		if !ok {
			continue
		}

		out = append(out, entity.ChatMessage{Role: role, Content: m.Content})
	}

	return out
}

// toChatResponse takes the first choice. Citation indexes are positional,
// starting at 1. Null provider content stays null.
func toChatResponse(c *entity.ChatCompletions) *entity.ChatResponse {
	if c == nil || len(c.Choices) == 0 || c.Choices[0].Message == nil {
		return entity.NewChatResponse("", nil)
	}

	msg := c.Choices[0].Message

	var citations []entity.Citation
	if msg.Context != nil {
		citations = make([]entity.Citation, len(msg.Context.Citations))
		for i, pc := range msg.Context.Citations {
			citations[i] = entity.Citation{
				Index:    i + 1,
				Title:    pc.Title,
				Content:  pc.Content,
				FilePath: pc.Filepath,
				URL:      pc.URL,
			}
		}
	}

	resp := entity.NewChatResponse(msg.Text(), citations)
	if msg.Content == nil {
		resp.Content = nil
	}

	return resp
}
