package runtime

import (
	"context"

	"github.com/akulearn/sandbox/types"
)

// outputExecutor terminates a chain. Map inputs are projected down to their
// response (or data) field; the log entry keeps the original, unprojected
// input for audit, so the returned and logged values may differ.
type outputExecutor struct{}

func (outputExecutor) execute(ctx context.Context, node *types.Node, ec *execContext, input any) (any, error) {
	out := input
	if m, ok := types.AsData(input); ok {
		if v, exists := m.Get("response"); exists {
			out = v
		} else if v, exists := m.Get("data"); exists {
			out = v
		}
	}

	ec.logSuccess(node.ID, "workflow output captured", input)
	return out, nil
}
