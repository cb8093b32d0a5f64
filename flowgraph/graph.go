// Package flowgraph builds and validates the directed-graph view of a
// workflow: one node per step, edges for execution order and branch actions.
// The graph is a derived, disposable view — built fresh for each validation or
// visualization request and never mutated after construction.
package flowgraph

// EdgeType represents the relationship an edge encodes between two steps.
type EdgeType string

const (
	// EdgeTypeSequential indicates plain step-order execution.
	EdgeTypeSequential EdgeType = "sequential"
	// EdgeTypeConditional indicates execution guarded by success criteria.
	EdgeTypeConditional EdgeType = "conditional"
	// EdgeTypeDataDependency indicates the target consumes an output of the source.
	EdgeTypeDataDependency EdgeType = "dataDependency"
	// EdgeTypeOnSuccess indicates a goto taken when the source step succeeds.
	EdgeTypeOnSuccess EdgeType = "onSuccess"
	// EdgeTypeOnFailure indicates a goto taken when the source step fails.
	EdgeTypeOnFailure EdgeType = "onFailure"
)

// FlowNode represents one step of a workflow.
type FlowNode struct {
	// StepID is the step's identifier and the node's identity within the graph.
	StepID string
	// OperationID is the resolved operation id, if the step references one.
	OperationID string
	// OperationPath is the "METHOD /path" reference, if the step uses one.
	OperationPath string
	// Method is the HTTP method resolved from the interface document, if known.
	Method string
	// Description is the step's description, if any.
	Description string
	// DependsOn lists the steps whose outputs this step consumes, sorted and
	// deduplicated. Dependencies are carried as node metadata; ordering is
	// already guaranteed by the sequential edges.
	DependsOn []string
	// HasOutputs records whether the step declares outputs.
	HasOutputs bool
	// HasSuccessCriteria records whether the step's downstream behavior is
	// conditional. This is a node attribute, not an edge.
	HasSuccessCriteria bool
}

// FlowEdge represents a directed relationship between two steps.
type FlowEdge struct {
	// Source is the step id the edge leaves from.
	Source string
	// Target is the step id the edge points at.
	Target string
	// Type is the relationship the edge encodes.
	Type EdgeType
	// DataRef is the runtime expression behind a data dependency edge, if any.
	DataRef string
	// Description is a human-readable description of the relationship, if any.
	Description string
}

// NewSequentialEdge creates an edge encoding plain step-order execution.
func NewSequentialEdge(source, target string) *FlowEdge {
	return &FlowEdge{Source: source, Target: target, Type: EdgeTypeSequential}
}

// NewConditionalEdge creates an edge encoding criteria-guarded execution.
func NewConditionalEdge(source, target, description string) *FlowEdge {
	return &FlowEdge{Source: source, Target: target, Type: EdgeTypeConditional, Description: description}
}

// NewDataDependencyEdge creates an edge encoding an output consumed by a later step.
func NewDataDependencyEdge(source, target, dataRef string) *FlowEdge {
	return &FlowEdge{Source: source, Target: target, Type: EdgeTypeDataDependency, DataRef: dataRef, Description: "Data dependency: " + dataRef}
}

// NewOnSuccessEdge creates an edge encoding a goto taken on step success.
func NewOnSuccessEdge(source, target, description string) *FlowEdge {
	return &FlowEdge{Source: source, Target: target, Type: EdgeTypeOnSuccess, Description: description}
}

// NewOnFailureEdge creates an edge encoding a goto taken on step failure.
func NewOnFailureEdge(source, target, description string) *FlowEdge {
	return &FlowEdge{Source: source, Target: target, Type: EdgeTypeOnFailure, Description: description}
}

// FlowGraph is the directed graph over the steps of a single workflow. Nodes
// keep insertion order (the workflow's step order) and step ids resolve to
// nodes in O(1). Self-loops are permitted.
type FlowGraph struct {
	// WorkflowID is the id of the workflow this graph represents.
	WorkflowID string

	nodes     []*FlowNode
	stepIndex map[string]*FlowNode
	edges     []*FlowEdge
	out       map[string][]*FlowEdge
	in        map[string][]*FlowEdge
}

// New creates an empty flow graph for the provided workflow id.
func New(workflowID string) *FlowGraph {
	return &FlowGraph{
		WorkflowID: workflowID,
		stepIndex:  make(map[string]*FlowNode),
		out:        make(map[string][]*FlowEdge),
		in:         make(map[string][]*FlowEdge),
	}
}

// AddNode adds a node to the graph. Adding a node with an existing step id is a no-op.
func (g *FlowGraph) AddNode(node *FlowNode) {
	if _, exists := g.stepIndex[node.StepID]; exists {
		return
	}

	g.nodes = append(g.nodes, node)
	g.stepIndex[node.StepID] = node
}

// AddEdge adds an edge to the graph. Both endpoints must already be nodes.
func (g *FlowGraph) AddEdge(edge *FlowEdge) {
	if _, ok := g.stepIndex[edge.Source]; !ok {
		return
	}
	if _, ok := g.stepIndex[edge.Target]; !ok {
		return
	}

	g.edges = append(g.edges, edge)
	g.out[edge.Source] = append(g.out[edge.Source], edge)
	g.in[edge.Target] = append(g.in[edge.Target], edge)
}

// GetNode resolves a step id to its node.
func (g *FlowGraph) GetNode(stepID string) (*FlowNode, bool) {
	node, ok := g.stepIndex[stepID]
	return node, ok
}

// Nodes returns the graph's nodes in insertion (step) order.
func (g *FlowGraph) Nodes() []*FlowNode {
	return g.nodes
}

// Edges returns the graph's edges in insertion order.
func (g *FlowGraph) Edges() []*FlowEdge {
	return g.edges
}

// OutEdges returns the edges leaving the provided step.
func (g *FlowGraph) OutEdges(stepID string) []*FlowEdge {
	return g.out[stepID]
}

// InEdges returns the edges pointing at the provided step.
func (g *FlowGraph) InEdges(stepID string) []*FlowEdge {
	return g.in[stepID]
}

// NodeCount returns the number of nodes in the graph.
func (g *FlowGraph) NodeCount() int {
	return len(g.nodes)
}

// EdgeCount returns the number of edges in the graph.
func (g *FlowGraph) EdgeCount() int {
	return len(g.edges)
}
