package runtime

import (
	"context"
	"time"

	"github.com/akulearn/sandbox/types"
)

// manualTriggerExecutor starts a run from a learner-initiated trigger. It
// ignores its input: the run's seed value comes from config.inputData or a
// default payload.
type manualTriggerExecutor struct{}

func (manualTriggerExecutor) execute(ctx context.Context, node *types.Node, ec *execContext, _ any) (any, error) {
	var out any
	if v, exists := node.Config.Get("inputData"); exists {
		out = v
	} else {
		out = types.Data{
			"triggered": true,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"message":   "Workflow started",
		}
	}
	ec.logSuccess(node.ID, "workflow triggered manually", nil)
	return out, nil
}

// webhookTriggerExecutor simulates a webhook delivery; real ingestion lives
// outside the engine. The payload comes from config.testData or a default.
type webhookTriggerExecutor struct{}

func (webhookTriggerExecutor) execute(ctx context.Context, node *types.Node, ec *execContext, _ any) (any, error) {
	var out any
	if v, exists := node.Config.Get("testData"); exists {
		out = v
	} else {
		out = types.Data{
			"webhook": true,
			"payload": types.Data{},
		}
	}
	ec.logSuccess(node.ID, "simulated webhook received", nil)
	return out, nil
}
