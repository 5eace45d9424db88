package runtime

import (
	"context"
	"sync"

	"github.com/gammazero/workerpool"
	"github.com/juju/errors"
	log "github.com/sirupsen/logrus"

	"github.com/akulearn/sandbox/store"
	"github.com/akulearn/sandbox/types"
)

// Runner executes learner workflow graphs. It holds only injected
// capabilities and configuration; all per-run state lives in a fresh
// execution context, so a Runner is safe for concurrent use.
type Runner struct {
	reg   *registry
	store store.Store
	opts  *types.RunnerOptions
}

// NewRunner builds a Runner on top of the given archive store (may be nil
// to disable archiving) and options. Capabilities (Completer, HTTPClient)
// come in through the options.
func NewRunner(s store.Store, opts *types.RunnerOptions) *Runner {
	return &Runner{
		reg:   newRegistry(opts),
		store: s,
		opts:  opts,
	}
}

// runCtx substitutes the configured fallback context when the caller
// passes nil.
func (r *Runner) runCtx(ctx context.Context) context.Context {
	if ctx != nil {
		return ctx
	}
	if r.opts.Ctx != nil {
		return r.opts.Ctx
	}
	return context.Background()
}

// Execute drives one run of the given node list and always returns a
// fully-formed result: structural errors and executor failures surface as
// Success=false with the error message and the partial log, never as a
// panic or a bare error.
func (r *Runner) Execute(ctx context.Context, nodes []*types.Node) *types.ExecutionResult {
	ctx = r.runCtx(ctx)

	graph, err := LoadGraph(nodes)
	if err != nil {
		ec := newExecContext()
		ec.logError(systemNodeID, err.Error())
		return &types.ExecutionResult{
			Success: false,
			Outputs: ec.outputs,
			Log:     ec.log,
			Error:   err.Error(),
		}
	}

	return newWalker(graph, r.reg, r.opts.StrictBranching).run(ctx)
}

// Run executes the node list and archives the result under runID. The
// returned error reports archive failures only; the run outcome itself is
// always in the result.
func (r *Runner) Run(ctx context.Context, runID string, nodes []*types.Node) (*types.ExecutionResult, error) {
	ctx = r.runCtx(ctx)

	result := r.Execute(ctx, nodes)
	if r.store == nil {
		return result, nil
	}
	if err := r.saveResult(ctx, runID, result); err != nil {
		return result, errors.Trace(err)
	}
	return result, nil
}

// BatchItem is one independent attempt inside a RunBatch call.
type BatchItem struct {
	RunID string
	Nodes []*types.Node
}

// RunBatch executes many independent attempts concurrently, at most
// BatchConcurrency at a time. Each individual run stays strictly
// sequential; only whole runs are parallel, so no node outputs are shared
// across goroutines.
func (r *Runner) RunBatch(ctx context.Context, items []BatchItem) map[string]*types.ExecutionResult {
	ctx = r.runCtx(ctx)
	wp := workerpool.New(r.opts.BatchConcurrency)

	var mu sync.Mutex
	results := make(map[string]*types.ExecutionResult, len(items))

	for _, item := range items {
		item := item
		wp.Submit(func() {
			result, err := r.Run(ctx, item.RunID, item.Nodes)
			if err != nil {
				log.Errorf("%s failed to archive result: %v", item.RunID, err)
			}
			mu.Lock()
			results[item.RunID] = result
			mu.Unlock()
		})
	}
	wp.StopWait()

	return results
}
