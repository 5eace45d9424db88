package runtime

import (
	"context"
	"fmt"

	"github.com/spf13/cast"

	"github.com/akulearn/sandbox/types"
)

// ifElseExecutor evaluates a named condition against a map-shaped input and
// reports which branch was taken. It does not decide which successor runs;
// that is the walker's job.
type ifElseExecutor struct{}

func (ifElseExecutor) execute(ctx context.Context, node *types.Node, ec *execContext, input any) (any, error) {
	cond, _ := node.Config.GetString("condition")
	if cond == "" {
		cond = "true"
	}

	result := evaluateCondition(cond, input)
	branch := "false"
	if result {
		branch = "true"
	}

	ec.logSuccess(node.ID, fmt.Sprintf("condition %s evaluated %t", cond, result), nil)
	return types.Data{"result": input, "branch": branch}, nil
}

// evaluateCondition resolves the closed condition set; any other name is
// looked up on the input as a field and judged for truthiness.
func evaluateCondition(name string, input any) bool {
	m, _ := types.AsData(input)
	switch name {
	case "true":
		return true
	case "false":
		return false
	case "hasResponse":
		v, exists := m.Get("response")
		return exists && truthy(v)
	case "hasData":
		v, exists := m.Get("data")
		return exists && truthy(v)
	case "isSuccess":
		if status, exists := m.GetInt("status"); exists && status == 200 {
			return true
		}
		success, exists := m.GetBool("success")
		return exists && success
	default:
		v, exists := m.Get(name)
		return exists && truthy(v)
	}
}

// truthy mirrors the loose boolean coercion workflow authors expect from
// the learner editor: empty strings, zeros, nil and false are falsy,
// everything else is truthy.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	}
	if f, err := cast.ToFloat64E(v); err == nil {
		return f != 0
	}
	return true
}
