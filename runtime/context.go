package runtime

import (
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/akulearn/sandbox/types"
)

// systemNodeID marks log entries emitted by the walker itself rather than
// by a node executor.
const systemNodeID = "system"

// execContext is the mutable per-run state. It is owned exclusively by a
// single run and discarded when the run returns.
type execContext struct {
	// variables is a scratch bag reserved for future node kinds. No
	// current executor reads it, but it is part of the run contract.
	variables types.Data

	// outputs maps node id to the value that node produced; append-only.
	outputs map[string]any

	// log is the ordered execution trace, appended in strict execution
	// order.
	log []types.LogEntry
}

func newExecContext() *execContext {
	return &execContext{
		variables: types.Data{},
		outputs:   make(map[string]any),
	}
}

func (ec *execContext) append(nodeID string, event types.EventType, message string, data any) {
	log.Debugf("node %s: %s %s", nodeID, event, message)
	ec.log = append(ec.log, types.LogEntry{
		NodeID:    nodeID,
		Event:     event,
		Message:   message,
		Timestamp: time.Now().UTC(),
		Data:      data,
	})
}

func (ec *execContext) logStart(nodeID, message string) {
	ec.append(nodeID, types.EventStart, message, nil)
}

func (ec *execContext) logSuccess(nodeID, message string, data any) {
	ec.append(nodeID, types.EventSuccess, message, data)
}

func (ec *execContext) logError(nodeID, message string) {
	ec.append(nodeID, types.EventError, message, nil)
}
