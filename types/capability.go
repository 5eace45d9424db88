package types

import (
	"context"
	"net/http"
)

// CompletionRequest carries one text-completion call made by an openai
// action node.
type CompletionRequest struct {
	Model        string
	SystemPrompt string
	Prompt       string
	MaxTokens    int
	Temperature  float64
}

// Completer is the AI completion capability injected into the engine.
// Production code uses the openai-backed client; tests inject fakes.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// HTTPDoer is the HTTP fetch capability injected into the engine.
// *http.Client satisfies it.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}
