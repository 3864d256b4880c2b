package chat

import "github.com/futig/ragchat-backend/internal/entity"

const (
	// MaxHistoryMessages caps the history sent to the model. Older turns are
	// dropped, which only approximates the token budget.
	MaxHistoryMessages = 20

	searchTopNDocuments         = 2
	semanticConfigurationSuffix = "-semantic-configuration"
)

// BuildCompletionRequest trims history to the last MaxHistoryMessages turns,
// puts the system prompt in front and attaches the search grounding.
// history is not modified.
func BuildCompletionRequest(history []entity.ChatMessage, s Settings) *entity.CompletionRequest {
	recent := history
	if len(recent) > MaxHistoryMessages {
		recent = recent[len(recent)-MaxHistoryMessages:]
	}

	messages := make([]entity.ChatMessage, 0, len(recent)+1)
	messages = append(messages, entity.ChatMessage{
		Role:    entity.RoleSystem,
		Content: s.SystemPrompt,
	})
	messages = append(messages, recent...)

	return &entity.CompletionRequest{
		Deployment: s.ChatDeployment,
		Messages:   messages,
		DataSources: []entity.DataSource{
			{
				Type:       entity.DataSourceTypeAzureSearch,
				Parameters: NewSearchGrounding(s),
			},
		},
	}
}

// NewSearchGrounding returns hybrid vector + semantic retrieval over the
// configured index, limited to indexed content.
func NewSearchGrounding(s Settings) entity.SearchGrounding {
	return entity.SearchGrounding{
		Endpoint:              s.SearchEndpoint,
		IndexName:             s.SearchIndex,
		SemanticConfiguration: s.SearchIndex + semanticConfigurationSuffix,
		QueryType:             entity.SearchQueryTypeVectorSemanticHybrid,
		InScope:               true,
		TopNDocuments:         searchTopNDocuments,
		Authentication: entity.DataSourceAuthentication{
			Type: entity.AuthenticationSystemAssignedManagedIdentity,
		},
		EmbeddingDependency: &entity.VectorizationSource{
			Type:           entity.VectorizationSourceDeploymentName,
			DeploymentName: s.EmbeddingDeployment,
		},
	}
}
