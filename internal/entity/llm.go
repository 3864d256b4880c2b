package entity

// Wire types of the Azure OpenAI chat completions API with an
// "On Your Data" Azure AI Search data source.

type ChatMessage struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

type CompletionRequest struct {
	Deployment  string        `json:"-"`
	Messages    []ChatMessage `json:"messages"`
	DataSources []DataSource  `json:"data_sources,omitempty"`
}

type DataSourceType string

const DataSourceTypeAzureSearch DataSourceType = "azure_search"

type DataSource struct {
	Type       DataSourceType  `json:"type"`
	Parameters SearchGrounding `json:"parameters"`
}

type SearchQueryType string

const (
	SearchQueryTypeSimple               SearchQueryType = "simple"
	SearchQueryTypeSemantic             SearchQueryType = "semantic"
	SearchQueryTypeVector               SearchQueryType = "vector"
	SearchQueryTypeVectorSimpleHybrid   SearchQueryType = "vector_simple_hybrid"
	SearchQueryTypeVectorSemanticHybrid SearchQueryType = "vector_semantic_hybrid"
)

// SearchGrounding configures the retrieval the provider runs before generating
type SearchGrounding struct {
	Endpoint              string                   `json:"endpoint"`
	IndexName             string                   `json:"index_name"`
	SemanticConfiguration string                   `json:"semantic_configuration,omitempty"`
	QueryType             SearchQueryType          `json:"query_type"`
	InScope               bool                     `json:"in_scope"`
	TopNDocuments         int                      `json:"top_n_documents"`
	Authentication        DataSourceAuthentication `json:"authentication"`
	EmbeddingDependency   *VectorizationSource     `json:"embedding_dependency,omitempty"`
}

const AuthenticationSystemAssignedManagedIdentity = "system_assigned_managed_identity"

type DataSourceAuthentication struct {
	Type string `json:"type"`
}

const VectorizationSourceDeploymentName = "deployment_name"

type VectorizationSource struct {
	Type           string `json:"type"`
	DeploymentName string `json:"deployment_name"`
}

type ChatCompletions struct {
	ID      string       `json:"id"`
	Model   string       `json:"model"`
	Choices []ChatChoice `json:"choices"`
}

type ChatChoice struct {
	Index        int              `json:"index"`
	Message      *ResponseMessage `json:"message"`
	FinishReason string           `json:"finish_reason"`
}

// ResponseMessage.Content is nil when the provider returns null, e.g. for a
// content filtered choice.
type ResponseMessage struct {
	Role    string          `json:"role"`
	Content *string         `json:"content"`
	Context *MessageContext `json:"context,omitempty"`
}

// Text returns the content or "" when it is null
func (m *ResponseMessage) Text() string {
	if m == nil || m.Content == nil {
		return ""
	}
	return *m.Content
}

type MessageContext struct {
	Citations []ProviderCitation `json:"citations"`
	Intent    string             `json:"intent,omitempty"`
}

type ProviderCitation struct {
	Content  string `json:"content"`
	Title    string `json:"title"`
	URL      string `json:"url"`
	Filepath string `json:"filepath"`
	ChunkID  string `json:"chunk_id"`
}
