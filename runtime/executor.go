package runtime

import (
	"context"
	"fmt"
	"time"

	"github.com/akulearn/sandbox/types"
)

// executor runs one node category. Implementations side-effect only through
// the execution context (log and outputs) and never let an error escape
// without first logging an error entry for the node.
type executor interface {
	execute(ctx context.Context, node *types.Node, ec *execContext, input any) (any, error)
}

type executorKey struct {
	kind    types.NodeKind
	service string
}

// registry is the explicit dispatch table from (kind, service) to executor.
// Output nodes dispatch on kind alone; action nodes with an unmatched
// service fall back to a pass-through, which is the single visible
// fallback branch.
type registry struct {
	table    map[executorKey]executor
	output   executor
	fallback executor
}

func newRegistry(opts *types.RunnerOptions) *registry {
	httpTimeout := time.Duration(opts.HTTPTimeoutSeconds) * time.Second
	aiTimeout := time.Duration(opts.AITimeoutSeconds) * time.Second

	return &registry{
		table: map[executorKey]executor{
			{types.KindTrigger, ServiceManual}:  manualTriggerExecutor{},
			{types.KindTrigger, ServiceWebhook}: webhookTriggerExecutor{},
			{types.KindAction, ServiceOpenAI}:   &aiExecutor{completer: opts.Completer, timeout: aiTimeout},
			{types.KindAction, ServiceHTTP}:     &httpExecutor{client: opts.HTTPClient, timeout: httpTimeout},
			{types.KindAction, ServiceCode}:     transformExecutor{},
			{types.KindLogic, ServiceIfElse}:    ifElseExecutor{},
		},
		output:   outputExecutor{},
		fallback: passthroughExecutor{},
	}
}

func (r *registry) lookup(node *types.Node) executor {
	if node.Kind == types.KindOutput {
		return r.output
	}
	if e, exists := r.table[executorKey{node.Kind, node.Service}]; exists {
		return e
	}
	// graph load guarantees only action nodes reach this point
	return r.fallback
}

// passthroughExecutor handles action nodes whose service matches no known
// executor: the input flows through unchanged.
type passthroughExecutor struct{}

func (passthroughExecutor) execute(ctx context.Context, node *types.Node, ec *execContext, input any) (any, error) {
	ec.logSuccess(node.ID, fmt.Sprintf("no executor for service %q, passing input through", node.Service), nil)
	return input, nil
}
