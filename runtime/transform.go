package runtime

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/akulearn/sandbox/types"
)

// transformExecutor runs a code action node: a closed set of named,
// side-effect-free transforms. Unknown names fall back to passthrough.
type transformExecutor struct{}

func (transformExecutor) execute(ctx context.Context, node *types.Node, ec *execContext, input any) (any, error) {
	name, _ := node.Config.GetString("transform")
	if name == "" {
		name = "passthrough"
	}

	ec.logStart(node.ID, fmt.Sprintf("applying transform %s", name))
	out := applyTransform(name, input)
	ec.logSuccess(node.ID, fmt.Sprintf("transform %s applied", name), nil)
	return out, nil
}

func applyTransform(name string, input any) any {
	switch name {
	case "stringify":
		return stringifyPretty(input)

	case "extract-response":
		if m, ok := types.AsData(input); ok {
			if v, exists := m.Get("response"); exists {
				return v
			}
		}
		return input

	case "uppercase":
		if s, ok := input.(string); ok {
			return strings.ToUpper(s)
		}
		// a map with a string response field gets only that field
		// cased; the rest of the map is preserved
		if m, ok := types.AsData(input); ok {
			if s, isStr := m["response"].(string); isStr {
				out := m.Clone()
				out.Set("response", strings.ToUpper(s))
				return out
			}
		}
		return input

	case "lowercase":
		// unlike uppercase, no map handling: bare strings only
		if s, ok := input.(string); ok {
			return strings.ToLower(s)
		}
		return input

	default:
		// passthrough, and the fallback for unknown transform names
		return input
	}
}

func stringifyPretty(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}
