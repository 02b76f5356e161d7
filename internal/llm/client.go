package llm

import "context"

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type Message struct {
	Role    string
	Content string
}

type Response struct {
	Content          string
	Model            string
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// Client is the single request/response primitive used by the interviewer.
// Replies are free text; callers parse them defensively.
type Client interface {
	Generate(ctx context.Context, messages []Message) (Response, error)
}
