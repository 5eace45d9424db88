package runtime

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akulearn/sandbox/types"
)

type fakeCompleter struct {
	lastReq  types.CompletionRequest
	response string
	err      error
}

func (f *fakeCompleter) Complete(ctx context.Context, req types.CompletionRequest) (string, error) {
	f.lastReq = req
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func newTestOptions() *types.RunnerOptions {
	opts := types.NewRunnerOptions()
	opts.Completer = &fakeCompleter{response: "ok"}
	opts.HTTPClient = http.DefaultClient
	return opts
}

func newTestRunner() *Runner {
	return NewRunner(nil, newTestOptions())
}

func codeNode(id, transform string, successors ...string) *types.Node {
	node := &types.Node{ID: id, Kind: types.KindAction, Service: ServiceCode, Successors: successors}
	if transform != "" {
		node.Config = types.Data{"transform": transform}
	}
	return node
}

func successEvents(entries []types.LogEntry, nodeID string) int {
	n := 0
	for _, e := range entries {
		if e.NodeID == nodeID && e.Event == types.EventSuccess {
			n++
		}
	}
	return n
}

func TestRunNoTrigger(t *testing.T) {
	runner := newTestRunner()

	result := runner.Execute(context.Background(), []*types.Node{
		codeNode("a", ""),
		{ID: "out", Kind: types.KindOutput},
	})

	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "no trigger node found")
	assert.Empty(t, result.Outputs)
	require.Len(t, result.Log, 1)
	assert.Equal(t, systemNodeID, result.Log[0].NodeID)
	assert.Equal(t, types.EventError, result.Log[0].Event)
}

func TestRunEmptyGraph(t *testing.T) {
	runner := newTestRunner()

	result := runner.Execute(context.Background(), nil)
	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "workflow graph is empty")
	assert.Empty(t, result.Outputs)
}

func TestRunLinearChain(t *testing.T) {
	runner := newTestRunner()

	result := runner.Execute(context.Background(), []*types.Node{
		{ID: "start", Kind: types.KindTrigger, Service: ServiceManual, Successors: []string{"fmt"}},
		codeNode("fmt", "stringify", "out"),
		{ID: "out", Kind: types.KindOutput},
	})

	require.True(t, result.Success, "error: %s", result.Error)
	assert.Len(t, result.Outputs, 3)

	final, ok := result.FinalOutput.(string)
	require.True(t, ok, "final output should be the stringified trigger payload")
	assert.Contains(t, final, `"triggered": true`)
	assert.Contains(t, final, "Workflow started")

	for _, id := range []string{"start", "fmt", "out"} {
		assert.Equal(t, 1, successEvents(result.Log, id), "node %s", id)
	}
}

func TestIdempotentVisitationWithCycle(t *testing.T) {
	runner := newTestRunner()

	// a and b link back to each other; c is reachable twice
	result := runner.Execute(context.Background(), []*types.Node{
		{ID: "start", Kind: types.KindTrigger, Service: ServiceManual, Successors: []string{"a", "c"}},
		codeNode("a", "", "b"),
		codeNode("b", "", "a", "c"),
		{ID: "c", Kind: types.KindOutput},
	})

	require.True(t, result.Success, "error: %s", result.Error)
	for _, id := range []string{"start", "a", "b", "c"} {
		assert.Equal(t, 1, successEvents(result.Log, id), "node %s must run exactly once", id)
	}
}

func TestDanglingSuccessor(t *testing.T) {
	runner := newTestRunner()

	result := runner.Execute(context.Background(), []*types.Node{
		{ID: "start", Kind: types.KindTrigger, Service: ServiceManual, Successors: []string{"ghost"}},
	})

	assert.True(t, result.Success)
	assert.Empty(t, result.Error)
	assert.Len(t, result.Outputs, 1)
}

func branchGraph(condition string) []*types.Node {
	return []*types.Node{
		{
			ID: "start", Kind: types.KindTrigger, Service: ServiceManual,
			Config:     types.Data{"inputData": types.Data{"response": "ok"}},
			Successors: []string{"cond"},
		},
		{
			ID: "cond", Kind: types.KindLogic, Service: ServiceIfElse,
			Config:     types.Data{"condition": condition},
			Successors: []string{"first", "second"},
		},
		codeNode("first", ""),
		codeNode("second", ""),
	}
}

func TestBranchingLegacyAlwaysTakesFirstSuccessor(t *testing.T) {
	runner := newTestRunner()

	for _, condition := range []string{"hasResponse", "false"} {
		result := runner.Execute(context.Background(), branchGraph(condition))
		require.True(t, result.Success, "condition %s: %s", condition, result.Error)

		assert.Contains(t, result.Outputs, "first", "condition %s", condition)
		assert.NotContains(t, result.Outputs, "second", "condition %s", condition)
		// the successor receives the inner result, not the branch pair
		assert.Equal(t, types.Data{"response": "ok"}, result.Outputs["first"])
	}
}

func TestBranchingStrictSelectsByBranch(t *testing.T) {
	opts := newTestOptions()
	opts.StrictBranching = true
	runner := NewRunner(nil, opts)

	result := runner.Execute(context.Background(), branchGraph("hasResponse"))
	require.True(t, result.Success, "error: %s", result.Error)
	assert.Contains(t, result.Outputs, "first")
	assert.NotContains(t, result.Outputs, "second")

	result = runner.Execute(context.Background(), branchGraph("false"))
	require.True(t, result.Success, "error: %s", result.Error)
	assert.Contains(t, result.Outputs, "second")
	assert.NotContains(t, result.Outputs, "first")
}

func TestBranchingStrictMissingFalseSuccessorEndsChain(t *testing.T) {
	opts := newTestOptions()
	opts.StrictBranching = true
	runner := NewRunner(nil, opts)

	nodes := branchGraph("false")
	nodes[1].Successors = []string{"first"}

	result := runner.Execute(context.Background(), nodes)
	assert.True(t, result.Success)
	assert.NotContains(t, result.Outputs, "first")
	assert.NotContains(t, result.Outputs, "second")
}

func TestExecutorErrorAbortsRun(t *testing.T) {
	opts := newTestOptions()
	completer := &fakeCompleter{err: assert.AnError}
	opts.Completer = completer
	runner := NewRunner(nil, opts)

	result := runner.Execute(context.Background(), []*types.Node{
		{ID: "start", Kind: types.KindTrigger, Service: ServiceManual, Successors: []string{"ask"}},
		{ID: "ask", Kind: types.KindAction, Service: ServiceOpenAI, Successors: []string{"out"}},
		{ID: "out", Kind: types.KindOutput},
	})

	assert.False(t, result.Success)
	assert.Contains(t, result.Error, assert.AnError.Error())

	// partial state up to the failure is preserved
	assert.Contains(t, result.Outputs, "start")
	assert.NotContains(t, result.Outputs, "ask")
	assert.NotContains(t, result.Outputs, "out")

	var sawError bool
	for _, e := range result.Log {
		if e.NodeID == "ask" && e.Event == types.EventError {
			sawError = true
			assert.Contains(t, e.Message, assert.AnError.Error())
		}
	}
	assert.True(t, sawError, "the failing node must log an error entry")
}

func TestMultipleOutputNodesLastWriterWins(t *testing.T) {
	runner := newTestRunner()

	result := runner.Execute(context.Background(), []*types.Node{
		{
			ID: "start", Kind: types.KindTrigger, Service: ServiceManual,
			Config:     types.Data{"inputData": "payload"},
			Successors: []string{"out1"},
		},
		{ID: "out1", Kind: types.KindOutput, Successors: []string{"up"}},
		codeNode("up", "uppercase", "out2"),
		{ID: "out2", Kind: types.KindOutput},
	})

	require.True(t, result.Success, "error: %s", result.Error)
	assert.Equal(t, "PAYLOAD", result.FinalOutput)
}

func TestUnknownActionServicePassesThrough(t *testing.T) {
	runner := newTestRunner()

	result := runner.Execute(context.Background(), []*types.Node{
		{
			ID: "start", Kind: types.KindTrigger, Service: ServiceManual,
			Config:     types.Data{"inputData": "untouched"},
			Successors: []string{"mystery"},
		},
		{ID: "mystery", Kind: types.KindAction, Service: "no-such-service", Successors: []string{"out"}},
		{ID: "out", Kind: types.KindOutput},
	})

	require.True(t, result.Success, "error: %s", result.Error)
	assert.Equal(t, "untouched", result.Outputs["mystery"])
	assert.Equal(t, "untouched", result.FinalOutput)
}

func TestLoadGraphValidation(t *testing.T) {
	cases := []struct {
		name  string
		nodes []*types.Node
		msg   string
	}{
		{
			"duplicate ids",
			[]*types.Node{
				{ID: "a", Kind: types.KindTrigger, Service: ServiceManual},
				{ID: "a", Kind: types.KindOutput},
			},
			"duplicate node id",
		},
		{
			"unknown kind",
			[]*types.Node{{ID: "a", Kind: "widget"}},
			"unknown kind",
		},
		{
			"unknown trigger service",
			[]*types.Node{{ID: "a", Kind: types.KindTrigger, Service: "cron"}},
			"unknown trigger service",
		},
		{
			"unknown logic service",
			[]*types.Node{{ID: "a", Kind: types.KindLogic, Service: "switch"}},
			"unknown logic service",
		},
		{
			"multiple triggers",
			[]*types.Node{
				{ID: "a", Kind: types.KindTrigger, Service: ServiceManual},
				{ID: "b", Kind: types.KindTrigger, Service: ServiceWebhook},
			},
			"multiple trigger nodes",
		},
		{
			"missing id",
			[]*types.Node{{Kind: types.KindOutput}},
			"without an id",
		},
	}

	for _, c := range cases {
		_, err := LoadGraph(c.nodes)
		require.NotNil(t, err, c.name)
		assert.True(t, types.IsStructural(err), c.name)
		assert.True(t, strings.Contains(err.Error(), c.msg), "%s: %v", c.name, err)
	}
}

func TestWebhookTriggerDefaults(t *testing.T) {
	runner := newTestRunner()

	result := runner.Execute(context.Background(), []*types.Node{
		{ID: "hook", Kind: types.KindTrigger, Service: ServiceWebhook, Successors: []string{"out"}},
		{ID: "out", Kind: types.KindOutput},
	})

	require.True(t, result.Success, "error: %s", result.Error)
	payload, ok := types.AsData(result.Outputs["hook"])
	require.True(t, ok)
	flag, _ := payload.GetBool("webhook")
	assert.True(t, flag)

	// testData overrides the simulated payload
	result = runner.Execute(context.Background(), []*types.Node{
		{
			ID: "hook", Kind: types.KindTrigger, Service: ServiceWebhook,
			Config:     types.Data{"testData": types.Data{"order": 42}},
			Successors: []string{"out"},
		},
		{ID: "out", Kind: types.KindOutput},
	})
	require.True(t, result.Success)
	assert.Equal(t, types.Data{"order": 42}, result.Outputs["hook"])
}
