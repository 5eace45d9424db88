package runtime

import (
	"fmt"
	"strings"

	"github.com/akulearn/sandbox/types"
)

// RenderDOT renders a node list as a GraphViz DOT document. When a run's
// log entries are supplied, nodes are colored by how they fared: green for
// success, red for error, yellow for a start without a matching finish.
func RenderDOT(nodes []*types.Node, entries []types.LogEntry) string {
	r := newGraphRenderer()
	return r.generateDOT(nodes, entries)
}

func newGraphRenderer() *graphRenderer {
	return &graphRenderer{sb: &strings.Builder{}}
}

type graphRenderer struct {
	events map[string]types.EventType
	sb     *strings.Builder
}

func (r *graphRenderer) setEvents(entries []types.LogEntry) {
	r.events = make(map[string]types.EventType, len(entries))
	for _, e := range entries {
		// later entries win: a start followed by success/error settles
		// on the final event
		r.events[e.NodeID] = e.Event
	}
}

func (r *graphRenderer) generateDOT(nodes []*types.Node, entries []types.LogEntry) string {
	r.setEvents(entries)

	r.write("digraph G {")
	r.write("rankdir=LR")
	for _, node := range nodes {
		r.drawNode(node)
	}
	for _, node := range nodes {
		r.drawLinks(node)
	}
	r.write("}")
	return r.sb.String()
}

func (r *graphRenderer) drawNode(node *types.Node) {
	shape := "record"
	switch node.Kind {
	case types.KindTrigger:
		shape = "circle"
	case types.KindLogic:
		shape = "diamond"
	case types.KindOutput:
		shape = "doublecircle"
	}

	label := node.ID
	if node.Service != "" {
		label = fmt.Sprintf("%s\\n%s/%s", node.ID, node.Kind, node.Service)
	}

	r.write("%s [label=%s shape=\"%s\"%s]", idString(node.ID), quoteString(label), shape, r.calcAttr(node.ID))
}

func (r *graphRenderer) calcAttr(nodeID string) string {
	event, exists := r.events[nodeID]
	if !exists {
		return ""
	}

	color := "white"
	switch event {
	case types.EventSuccess:
		color = "green"
	case types.EventError:
		color = "red"
	case types.EventStart:
		color = "yellow"
	}
	return fmt.Sprintf(" style=\"filled\" color=\"%s\"", color)
}

func (r *graphRenderer) drawLinks(node *types.Node) {
	isCond := node.Kind == types.KindLogic && node.Service == ServiceIfElse
	for i, succ := range node.Successors {
		label := ""
		if isCond {
			// the first successor is the one the legacy walker takes;
			// strict mode reads index 0 as True and index 1 as False
			switch i {
			case 0:
				label = " [label=\"True\"]"
			case 1:
				label = " [label=\"False\"]"
			}
		}
		r.write("%s -> %s%s", idString(node.ID), idString(succ), label)
	}
}

func (r *graphRenderer) write(format string, args ...any) {
	fmt.Fprintf(r.sb, format, args...)
	r.sb.WriteString("\n")
}

var idleChars = []string{" ", "'", "\"", "(", ")", "*", "&", "^", "%", "$", "#", "@", "!", "?", "<", ">", "[", "]", "{", "}", "."}

func idString(s string) string {
	for _, ch := range idleChars {
		s = strings.ReplaceAll(s, ch, "_")
	}
	return s
}

func quoteString(s string) string {
	return "\"" + strings.ReplaceAll(s, "\"", "\\\"") + "\""
}
