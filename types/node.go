package types

import "time"

// Node is one task in a learner-authored workflow graph.
//
// Service selects the concrete executor within Kind (e.g. "openai", "http",
// "code", "if-else", "manual", "webhook"). Config is interpreted only by the
// matching executor. Successors lists the node ids control may be handed to;
// ids that do not exist in the graph are treated as "no successor".
type Node struct {
	ID         string   `json:"id" yaml:"id"`
	Kind       NodeKind `json:"kind" yaml:"kind"`
	Service    string   `json:"service,omitempty" yaml:"service,omitempty"`
	Config     Data     `json:"config,omitempty" yaml:"config,omitempty"`
	Successors []string `json:"successors,omitempty" yaml:"successors,omitempty"`
}

// LogEntry is one ordered element of a run's execution log.
type LogEntry struct {
	NodeID    string    `json:"nodeId" yaml:"nodeId"`
	Event     EventType `json:"event" yaml:"event"`
	Message   string    `json:"message" yaml:"message"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
	Data      any       `json:"data,omitempty" yaml:"data,omitempty"`
}

// ExecutionResult is the final outcome of one graph run. Error is set iff
// Success is false; FinalOutput is the value captured by the last-reached
// output node, if any.
type ExecutionResult struct {
	Success     bool           `json:"success"`
	Outputs     map[string]any `json:"outputs"`
	Log         []LogEntry     `json:"logs"`
	FinalOutput any            `json:"finalOutput,omitempty"`
	Error       string         `json:"error,omitempty"`
}

// SandboxState bundles a learner attempt: the graph that was run, the
// execution log it produced, and the attempt status reported by the
// learner-facing runtime. It is a read-only snapshot for verification.
type SandboxState struct {
	LearnerID    string     `json:"learnerId" yaml:"learnerId"`
	SessionID    string     `json:"sessionId" yaml:"sessionId"`
	Workflow     []*Node    `json:"workflow" yaml:"workflow"`
	ExecutionLog []LogEntry `json:"executionLog" yaml:"executionLog"`
	Status       Status     `json:"status" yaml:"status"`
}

// Attempt is the verification input handed over by the calling application.
// TimeToComplete is derived from EndTime-StartTime by the verifier so it
// stays a pure function of its inputs.
type Attempt struct {
	AkuID     string       `json:"akuId" yaml:"akuId"`
	Sandbox   SandboxState `json:"sandboxState" yaml:"sandboxState"`
	HintsUsed int          `json:"hintsUsed" yaml:"hintsUsed"`
	StartTime time.Time    `json:"startTime" yaml:"startTime"`
	EndTime   time.Time    `json:"endTime" yaml:"endTime"`
}

// Check is one named boolean verification check with its observed value.
type Check struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
}

// VerificationResult is the pass/fail outcome plus the struggle score for a
// learner attempt. It is handed to certification collaborators as-is.
type VerificationResult struct {
	Passed            bool      `json:"passed"`
	AkuID             string    `json:"akuId"`
	LearnerID         string    `json:"learnerId"`
	Timestamp         time.Time `json:"timestamp"`
	OutputValidations []Check   `json:"outputValidations"`
	ExecutionResults  []Check   `json:"executionResults"`
	StruggleScore     int       `json:"struggleScore"`
	HintsUsed         int       `json:"hintsUsed"`
	TimeToComplete    int       `json:"timeToComplete"`
	WorkflowSnapshot  string    `json:"workflowSnapshot"`
}
