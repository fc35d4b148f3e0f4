package domain

// SummarizeRequest is a validated request to summarize one page of text.
// Text is non-empty; PageNumber, when set, is at least 1.
type SummarizeRequest struct {
	Text       string
	PDFName    *string
	PageNumber *int
}

// SummarizeResponse is the uniform response envelope.
// Exactly one of Summary and Error is set.
type SummarizeResponse struct {
	Summary *string `json:"summary"`
	Success bool    `json:"success"`
	Error   *string `json:"error"`
}

// NewSuccessResponse wraps a generated summary.
func NewSuccessResponse(summary string) *SummarizeResponse {
	return &SummarizeResponse{
		Summary: &summary,
		Success: true,
		Error:   nil,
	}
}

// NewFailureResponse wraps a failure message.
func NewFailureResponse(message string) *SummarizeResponse {
	return &SummarizeResponse{
		Summary: nil,
		Success: false,
		Error:   &message,
	}
}

// CompletionRequest represents a single chat completion call.
type CompletionRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
}

// Message represents a chat message.
type Message struct {
	Role    string `json:"role"` // user, system
	Content string `json:"content"`
}

// Message roles understood by chat completion providers.
const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// CompletionResult carries the first generated choice. Content may be empty.
type CompletionResult struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Content string `json:"content"`
	Usage   Usage  `json:"usage"`
}

// Usage tracks token consumption.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// ModelSettings are the completion parameters applied to every request.
type ModelSettings struct {
	Model       string
	MaxTokens   int
	Temperature float64
}
