package runtime

import (
	"context"

	"github.com/juju/errors"

	"github.com/akulearn/sandbox/types"
)

// walker drives exactly one run of a graph from its trigger node to
// exhaustion: depth-first, successors in listed order, one node at a time.
// A visited set guarantees each node executes at most once per run, even
// when it is reachable over several paths or the successor links cycle.
type walker struct {
	graph  *Graph
	reg    *registry
	strict bool

	ec      *execContext
	visited map[string]bool

	// finalOutput is the value captured by the last-reached output node;
	// last writer wins when several output nodes are reachable.
	finalOutput    any
	hasFinalOutput bool
}

func newWalker(graph *Graph, reg *registry, strict bool) *walker {
	return &walker{
		graph:   graph,
		reg:     reg,
		strict:  strict,
		ec:      newExecContext(),
		visited: make(map[string]bool),
	}
}

func (w *walker) run(ctx context.Context) *types.ExecutionResult {
	trigger := w.graph.Trigger()
	if trigger == nil {
		err := types.NewStructuralErrorf("no trigger node found")
		w.ec.logError(systemNodeID, err.Error())
		return w.result(err)
	}

	return w.result(w.runNode(ctx, trigger.ID, nil))
}

func (w *walker) runNode(ctx context.Context, id string, input any) error {
	node, exists := w.graph.Get(id)
	if !exists {
		// dangling successor id: treated as "no successor"
		return nil
	}
	if w.visited[id] {
		return nil
	}
	w.visited[id] = true

	output, err := w.reg.lookup(node).execute(ctx, node, w.ec, input)
	if err != nil {
		// the executor already logged the error entry; abort the run
		// keeping the partial outputs and log for diagnosis
		return errors.Trace(err)
	}
	w.ec.outputs[id] = output

	if node.Kind == types.KindOutput {
		w.finalOutput = output
		w.hasFinalOutput = true
	}

	if node.Kind == types.KindLogic && node.Service == ServiceIfElse {
		return w.runBranch(ctx, node, output)
	}

	for _, succ := range node.Successors {
		if err := w.runNode(ctx, succ, output); err != nil {
			return errors.Trace(err)
		}
	}
	return nil
}

// runBranch hands control past an if-else node. The inner result value, not
// the {result, branch} pair, becomes the successor's input.
//
// Legacy mode follows successors[0] regardless of the evaluated branch,
// reproducing the learner runtime this engine replaces. Strict mode selects
// successors[0] for "true" and successors[1] for "false"; a missing entry
// ends the chain.
func (w *walker) runBranch(ctx context.Context, node *types.Node, output any) error {
	pair, _ := types.AsData(output)
	next, _ := pair.Get("result")

	idx := 0
	if w.strict {
		if branch, _ := pair.GetString("branch"); branch == "false" {
			idx = 1
		}
	}
	if idx >= len(node.Successors) {
		return nil
	}
	return errors.Trace(w.runNode(ctx, node.Successors[idx], next))
}

func (w *walker) result(err error) *types.ExecutionResult {
	result := &types.ExecutionResult{
		Success: err == nil,
		Outputs: w.ec.outputs,
		Log:     w.ec.log,
	}
	if w.hasFinalOutput {
		result.FinalOutput = w.finalOutput
	}
	if err != nil {
		result.Error = err.Error()
	}
	return result
}
