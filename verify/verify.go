// Package verify decides whether a learner attempt passes certification
// checks and computes its struggle score. It is a pure function of the
// attempt it is handed: no I/O, no clocks beyond the result timestamp, and
// the sandbox state is never mutated.
package verify

import (
	"encoding/base64"
	"math"
	"time"

	"github.com/juju/errors"

	"github.com/akulearn/sandbox/types"
	"github.com/akulearn/sandbox/utils"
)

// Scoring constants. Hints and slow completion each weigh up to 40 points,
// failed execution requirements 10 points apiece.
const (
	MaxHints         = 3
	ExpectedDuration = 120 // seconds
	hintWeight       = 40.0
	timeWeight       = 40.0
	timePenaltySlope = 20.0
	failureCheckCost = 10
	maxStruggleScore = 100
)

// Names of the structural output validations.
const (
	CheckWorkflowNodes    = "workflow_nodes"
	CheckExecutionSuccess = "execution_success"
	CheckOutputNode       = "output_node"
)

// Names of the behavioral execution requirement checks.
const (
	CheckWorkflowExecuted = "workflow_executed"
	CheckNoErrors         = "no_errors"
	CheckStatusComplete   = "status_complete"
)

// Verify checks an attempt against the structural and behavioral
// requirements and computes its struggle score. A failing check is a
// normal result (Passed=false), never an error; the error return covers
// only a snapshot that cannot be serialized.
func Verify(attempt *types.Attempt) (*types.VerificationResult, error) {
	if attempt == nil {
		return nil, errors.BadRequestf("attempt is nil")
	}
	sandbox := attempt.Sandbox

	outputValidations := []types.Check{
		{Name: CheckWorkflowNodes, Passed: len(sandbox.Workflow) >= 2},
		{Name: CheckExecutionSuccess, Passed: hasEvent(sandbox.ExecutionLog, types.EventSuccess)},
		{Name: CheckOutputNode, Passed: hasOutputNode(sandbox.Workflow)},
	}

	executionResults := []types.Check{
		{Name: CheckWorkflowExecuted, Passed: len(sandbox.ExecutionLog) > 0},
		{Name: CheckNoErrors, Passed: !hasEvent(sandbox.ExecutionLog, types.EventError)},
		{Name: CheckStatusComplete, Passed: sandbox.Status == types.StatusComplete},
	}

	failedRequirements := 0
	for _, check := range executionResults {
		if !check.Passed {
			failedRequirements++
		}
	}

	timestamp := time.Now().UTC()
	snapshot, err := encodeSnapshot(sandbox.Workflow, timestamp)
	if err != nil {
		return nil, errors.Trace(err)
	}

	timeToComplete := int(attempt.EndTime.Sub(attempt.StartTime).Seconds())

	return &types.VerificationResult{
		Passed:            allPassed(outputValidations) && allPassed(executionResults),
		AkuID:             attempt.AkuID,
		LearnerID:         sandbox.LearnerID,
		Timestamp:         timestamp,
		OutputValidations: outputValidations,
		ExecutionResults:  executionResults,
		StruggleScore:     StruggleScore(attempt.HintsUsed, timeToComplete, failedRequirements),
		HintsUsed:         attempt.HintsUsed,
		TimeToComplete:    timeToComplete,
		WorkflowSnapshot:  snapshot,
	}, nil
}

// StruggleScore converts learner behavior into a 0-100 metric, lower is
// better. Three penalties are computed and clamped independently before the
// rounded sum is clamped again:
//
//	hintPenalty    = min(40, hintsUsed/3 * 40)
//	timePenalty    = 0 while within the 120s expected duration,
//	                 else min(40, (ratio-1) * 20)
//	failurePenalty = failedRequirements * 10
func StruggleScore(hintsUsed, timeToComplete, failedRequirements int) int {
	hintPenalty := float64(hintsUsed) / MaxHints * hintWeight
	if hintPenalty > hintWeight {
		hintPenalty = hintWeight
	}

	timePenalty := 0.0
	if timeRatio := float64(timeToComplete) / ExpectedDuration; timeRatio > 1 {
		timePenalty = math.Min(timeWeight, (timeRatio-1)*timePenaltySlope)
	}

	failurePenalty := float64(failedRequirements * failureCheckCost)

	score := int(math.Round(hintPenalty + timePenalty + failurePenalty))
	if score < 0 {
		return 0
	}
	if score > maxStruggleScore {
		return maxStruggleScore
	}
	return score
}

// encodeSnapshot produces the opaque audit copy of the graph. The encoding
// only needs to be byte-stable, not queryable.
func encodeSnapshot(workflow []*types.Node, timestamp time.Time) (string, error) {
	b, err := utils.Serialize(struct {
		Workflow  []*types.Node `json:"workflow"`
		Timestamp time.Time     `json:"timestamp"`
	}{workflow, timestamp})
	if err != nil {
		return "", errors.Trace(err)
	}
	return base64.StdEncoding.EncodeToString(b), nil
}

func hasEvent(entries []types.LogEntry, event types.EventType) bool {
	for _, e := range entries {
		if e.Event == event {
			return true
		}
	}
	return false
}

func hasOutputNode(workflow []*types.Node) bool {
	for _, node := range workflow {
		if node != nil && node.Kind == types.KindOutput {
			return true
		}
	}
	return false
}

func allPassed(checks []types.Check) bool {
	for _, check := range checks {
		if !check.Passed {
			return false
		}
	}
	return true
}
