package runtime

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/juju/errors"
	"github.com/spf13/cast"

	"github.com/akulearn/sandbox/types"
)

const (
	defaultAIModel        = "gpt-4o-mini"
	defaultAISystemPrompt = "You are a helpful assistant."
	defaultAIMaxTokens    = 500
	defaultAITemperature  = 0.7

	// responsePreviewLen bounds the response excerpt embedded in the
	// success log entry.
	responsePreviewLen = 100
)

// aiExecutor runs an openai action node: it renders the prompt template
// against the node input and calls the injected completion capability.
type aiExecutor struct {
	completer types.Completer
	timeout   time.Duration
}

func (e *aiExecutor) execute(ctx context.Context, node *types.Node, ec *execContext, input any) (any, error) {
	if e.completer == nil {
		msg := "no completion capability configured"
		ec.logError(node.ID, msg)
		return nil, types.NewExecutorErrorf(node.ID, "%s", msg)
	}

	cfg := node.Config

	tmpl, _ := cfg.GetString("prompt")
	if tmpl == "" {
		tmpl = "{{input}}"
	}
	req := types.CompletionRequest{
		Model:        defaultAIModel,
		SystemPrompt: defaultAISystemPrompt,
		Prompt:       substitutePrompt(tmpl, input),
		MaxTokens:    defaultAIMaxTokens,
		Temperature:  defaultAITemperature,
	}
	if v, exists := cfg.GetString("model"); exists && v != "" {
		req.Model = v
	}
	if v, exists := cfg.GetString("systemPrompt"); exists && v != "" {
		req.SystemPrompt = v
	}
	if v, exists := cfg.GetInt("maxTokens"); exists && v > 0 {
		req.MaxTokens = v
	}
	if v, exists := cfg.GetFloat64("temperature"); exists {
		req.Temperature = v
	}

	ec.logStart(node.ID, fmt.Sprintf("calling model %s", req.Model))

	callCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	text, err := e.completer.Complete(callCtx, req)
	if err != nil {
		ec.logError(node.ID, err.Error())
		return nil, types.NewExecutorError(node.ID, errors.Trace(err))
	}

	ec.logSuccess(node.ID, "model responded", types.Data{"preview": truncate(text, responsePreviewLen)})
	return types.Data{"response": text, "model": req.Model}, nil
}

// substitutePrompt replaces {{input}} with the stringified input and, when
// the input is a map, {{key}} with each key's stringified value.
func substitutePrompt(tmpl string, input any) string {
	out := strings.ReplaceAll(tmpl, "{{input}}", stringifyValue(input))
	if m, ok := types.AsData(input); ok {
		for k, v := range m {
			out = strings.ReplaceAll(out, "{{"+k+"}}", stringifyValue(v))
		}
	}
	return out
}

func stringifyValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	}
	if s, err := cast.ToStringE(v); err == nil {
		return s
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}

// truncate bounds s to n characters, not bytes, so a multibyte response
// never yields an undersized preview or a cut mid-rune.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
