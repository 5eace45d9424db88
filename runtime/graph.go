package runtime

import (
	"github.com/akulearn/sandbox/types"
)

// Service names recognized by the dispatch table.
const (
	ServiceManual  = "manual"
	ServiceWebhook = "webhook"
	ServiceOpenAI  = "openai"
	ServiceHTTP    = "http"
	ServiceCode    = "code"
	ServiceIfElse  = "if-else"
)

// Graph is an immutable workflow description: typed nodes plus directed
// successor links. It is built once from the caller's node list and never
// mutated by a run.
type Graph struct {
	nodes   []*types.Node
	byID    map[string]*types.Node
	trigger *types.Node
}

// LoadGraph validates the caller-supplied node list and builds a Graph.
//
// Rejected up front: empty graphs, empty or duplicate ids, unknown kinds,
// unknown services for trigger and logic nodes, and more than one trigger.
// Deliberately allowed: unknown action services (run as a pass-through) and
// successor ids that reference no node (treated as "no successor"). A graph
// with zero trigger nodes also loads; the walker reports it at run start so
// callers receive a fully-formed failed result rather than a load error.
func LoadGraph(nodes []*types.Node) (*Graph, error) {
	if len(nodes) == 0 {
		return nil, types.NewStructuralErrorf("workflow graph is empty")
	}

	g := &Graph{
		nodes: nodes,
		byID:  make(map[string]*types.Node, len(nodes)),
	}
	for _, node := range nodes {
		if node == nil || node.ID == "" {
			return nil, types.NewStructuralErrorf("workflow node without an id")
		}
		if _, exists := g.byID[node.ID]; exists {
			return nil, types.NewStructuralErrorf("duplicate node id: %s", node.ID)
		}
		if err := validateNode(node); err != nil {
			return nil, err
		}
		g.byID[node.ID] = node

		if node.Kind == types.KindTrigger {
			if g.trigger != nil {
				return nil, types.NewStructuralErrorf("multiple trigger nodes: %s and %s", g.trigger.ID, node.ID)
			}
			g.trigger = node
		}
	}
	return g, nil
}

func validateNode(node *types.Node) error {
	switch node.Kind {
	case types.KindTrigger:
		if node.Service != ServiceManual && node.Service != ServiceWebhook {
			return types.NewStructuralErrorf("node %s: unknown trigger service: %s", node.ID, node.Service)
		}
	case types.KindLogic:
		if node.Service != ServiceIfElse {
			return types.NewStructuralErrorf("node %s: unknown logic service: %s", node.ID, node.Service)
		}
	case types.KindAction, types.KindOutput:
		// any service string is accepted; unmatched action services run
		// as a pass-through
	default:
		return types.NewStructuralErrorf("node %s: unknown kind: %s", node.ID, node.Kind)
	}
	return nil
}

// Get returns a node by id.
func (g *Graph) Get(id string) (*types.Node, bool) {
	node, exists := g.byID[id]
	return node, exists
}

// Trigger returns the graph's trigger node, or nil if it has none.
func (g *Graph) Trigger() *types.Node {
	return g.trigger
}

// Nodes returns the nodes in their authored order.
func (g *Graph) Nodes() []*types.Node {
	return g.nodes
}

func (g *Graph) Len() int {
	return len(g.nodes)
}
