package types

// NodeKind classifies a workflow node. The enumeration is closed: graphs
// carrying any other kind are rejected at load time.
type NodeKind string

const (
	KindTrigger NodeKind = "trigger"
	KindAction  NodeKind = "action"
	KindLogic   NodeKind = "logic"
	KindOutput  NodeKind = "output"
)

// EventType is the category of an execution log entry.
type EventType string

const (
	EventStart   EventType = "start"
	EventSuccess EventType = "success"
	EventError   EventType = "error"
	// EventSkip belongs to the wire contract for logs produced by
	// learner-facing runtimes; the core engine itself never emits it.
	EventSkip EventType = "skip"
)

// Status describes a sandbox attempt as reported by the learner runtime.
type Status string

const (
	StatusIdle     Status = "idle"
	StatusRunning  Status = "running"
	StatusComplete Status = "complete"
	StatusError    Status = "error"
)
