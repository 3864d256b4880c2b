package entity

// ClientMessage is a single chat turn as sent by the browser
type ClientMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatCompletionRequest struct {
	Messages []ClientMessage `json:"messages"`
}

type Citation struct {
	Index    int    `json:"index"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	FilePath string `json:"filePath"`
	URL      string `json:"url"`
}

// ChatResponse is returned for every chat request. Content and Error encode
// as null when unset; Citations is never nil.
type ChatResponse struct {
	Content   *string    `json:"content"`
	Error     *string    `json:"error"`
	Citations []Citation `json:"citations"`
}

func NewChatResponse(content string, citations []Citation) *ChatResponse {
	if citations == nil {
		citations = []Citation{}
	}
	return &ChatResponse{
		Content:   &content,
		Citations: citations,
	}
}

func NewChatErrorResponse(message string) *ChatResponse {
	return &ChatResponse{
		Error:     &message,
		Citations: []Citation{},
	}
}
