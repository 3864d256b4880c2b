package chat

import (
	"fmt"

	"github.com/futig/ragchat-backend/internal/config"
	"github.com/futig/ragchat-backend/internal/entity"
)

// Settings is the read-only slice of configuration used to shape requests
type Settings struct {
	ChatDeployment      string
	EmbeddingDeployment string
	SearchEndpoint      string
	SearchIndex         string
	SystemPrompt        string
}

func NewSettings(cfg *config.Config) Settings {
	return Settings{
		ChatDeployment:      cfg.OpenAICfg.GPTDeployment,
		EmbeddingDeployment: cfg.OpenAICfg.EmbeddingDeployment,
		SearchEndpoint:      cfg.SearchCfg.URL,
		SearchIndex:         cfg.SearchCfg.IndexName,
		SystemPrompt:        cfg.SystemPrompt,
	}
}

func (s Settings) validate() error {
	switch {
	case s.ChatDeployment == "":
		return fmt.Errorf("%w: chat deployment", entity.ErrMissingSetting)
	case s.EmbeddingDeployment == "":
		return fmt.Errorf("%w: embedding deployment", entity.ErrMissingSetting)
	case s.SearchEndpoint == "":
		return fmt.Errorf("%w: search endpoint", entity.ErrMissingSetting)
	case s.SearchIndex == "":
		return fmt.Errorf("%w: search index", entity.ErrMissingSetting)
	}
	return nil
}
