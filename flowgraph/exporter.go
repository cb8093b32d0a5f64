package flowgraph

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Exporter renders a flow graph into interchange formats for external
// tooling. Export never validates: a cyclic graph renders fine, the exporter
// is a diagnostic tool, not a gatekeeper.
type Exporter struct {
	graph *FlowGraph
}

// NewExporter creates an exporter for the provided graph.
func NewExporter(graph *FlowGraph) *Exporter {
	return &Exporter{graph: graph}
}

// ExportMermaid renders the graph as a Mermaid flowchart. Node shape marks
// the step's attributes: rounded for conditional steps, stadium for steps
// with outputs, rectangular otherwise.
func (e *Exporter) ExportMermaid() string {
	var sb strings.Builder
	sb.WriteString("flowchart LR\n")

	for _, node := range e.graph.Nodes() {
		open, closing := mermaidNodeShape(node)
		fmt.Fprintf(&sb, "  %s%s%s%s\n", mermaidSafeID(node.StepID), open, mermaidNodeLabel(node), closing)
	}

	sb.WriteString("\n")

	for _, edge := range e.graph.Edges() {
		source := mermaidSafeID(edge.Source)
		target := mermaidSafeID(edge.Target)
		arrow := mermaidArrow(edge.Type)

		if label := edgeLabel(edge); label != "" {
			fmt.Fprintf(&sb, "  %s %s|%s| %s\n", source, arrow, label, target)
		} else {
			fmt.Fprintf(&sb, "  %s %s %s\n", source, arrow, target)
		}
	}

	return sb.String()
}

// ExportDOT renders the graph in Graphviz DOT. Node color marks the step's
// attributes: orange for conditional steps, blue for steps with outputs,
// black otherwise.
func (e *Exporter) ExportDOT() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "digraph %q {\n", e.graph.WorkflowID)
	sb.WriteString("  rankdir=LR;\n")
	sb.WriteString("  node [shape=box, style=rounded];\n\n")

	for _, node := range e.graph.Nodes() {
		color := dotNodeColor(node)
		fmt.Fprintf(&sb, "  %q [label=%q, color=%q, fillcolor=%q, style=\"rounded,filled\"];\n",
			node.StepID, dotNodeLabel(node), color, dotFillColor(color))
	}

	sb.WriteString("\n")

	for _, edge := range e.graph.Edges() {
		style, color := dotEdgeStyle(edge.Type)
		fmt.Fprintf(&sb, "  %q -> %q [style=%q, color=%q, label=%q];\n",
			edge.Source, edge.Target, style, color, edgeLabel(edge))
	}

	sb.WriteString("}\n")

	return sb.String()
}

type jsonNode struct {
	ID                 string  `json:"id"`
	OperationID        *string `json:"operationId"`
	OperationPath      *string `json:"operationPath"`
	Method             *string `json:"method"`
	Description        *string `json:"description"`
	HasOutputs         bool    `json:"hasOutputs"`
	HasSuccessCriteria bool    `json:"hasSuccessCriteria"`
}

type jsonEdge struct {
	Source      string   `json:"source"`
	Target      string   `json:"target"`
	Type        EdgeType `json:"edge_type"`
	DataRef     *string  `json:"dataRef"`
	Description *string  `json:"description"`
}

type jsonStats struct {
	NodeCount int `json:"nodeCount"`
	EdgeCount int `json:"edgeCount"`
}

type jsonGraph struct {
	WorkflowID string     `json:"workflowId"`
	Nodes      []jsonNode `json:"nodes"`
	Edges      []jsonEdge `json:"edges"`
	Stats      jsonStats  `json:"stats"`
}

// ExportJSON renders the graph as a JSON document. Unset optional fields
// serialize as null.
func (e *Exporter) ExportJSON() ([]byte, error) {
	out := jsonGraph{
		WorkflowID: e.graph.WorkflowID,
		Nodes:      make([]jsonNode, 0, e.graph.NodeCount()),
		Edges:      make([]jsonEdge, 0, e.graph.EdgeCount()),
		Stats:      jsonStats{NodeCount: e.graph.NodeCount(), EdgeCount: e.graph.EdgeCount()},
	}

	for _, node := range e.graph.Nodes() {
		out.Nodes = append(out.Nodes, jsonNode{
			ID:                 node.StepID,
			OperationID:        nullable(node.OperationID),
			OperationPath:      nullable(node.OperationPath),
			Method:             nullable(node.Method),
			Description:        nullable(node.Description),
			HasOutputs:         node.HasOutputs,
			HasSuccessCriteria: node.HasSuccessCriteria,
		})
	}

	for _, edge := range e.graph.Edges() {
		out.Edges = append(out.Edges, jsonEdge{
			Source:      edge.Source,
			Target:      edge.Target,
			Type:        edge.Type,
			DataRef:     nullable(edge.DataRef),
			Description: nullable(edge.Description),
		})
	}

	return json.MarshalIndent(out, "", "  ")
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func mermaidNodeLabel(node *FlowNode) string {
	label := node.StepID
	if node.OperationID != "" {
		label += "<br/>" + node.OperationID
	}
	if node.Method != "" {
		label += "<br/>[" + node.Method + "]"
	}
	return label
}

func mermaidNodeShape(node *FlowNode) (string, string) {
	switch {
	case node.HasSuccessCriteria:
		return "(", ")"
	case node.HasOutputs:
		return "([", "])"
	default:
		return "[", "]"
	}
}

func mermaidArrow(typ EdgeType) string {
	switch typ {
	case EdgeTypeConditional, EdgeTypeOnFailure:
		return "-.->"
	case EdgeTypeDataDependency, EdgeTypeOnSuccess:
		return "==>"
	default:
		return "-->"
	}
}

// mermaidSafeID normalizes a step id into a Mermaid-safe identifier.
func mermaidSafeID(id string) string {
	var sb strings.Builder
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			sb.WriteRune(r)
		default:
			sb.WriteRune('_')
		}
	}
	return sb.String()
}

func dotNodeLabel(node *FlowNode) string {
	label := node.StepID
	if node.OperationID != "" {
		label += "\n" + node.OperationID
	}
	if node.Method != "" {
		label += "\n[" + node.Method + "]"
	}
	return label
}

func dotNodeColor(node *FlowNode) string {
	switch {
	case node.HasSuccessCriteria:
		return "orange"
	case node.HasOutputs:
		return "blue"
	default:
		return "black"
	}
}

func dotFillColor(color string) string {
	switch color {
	case "orange":
		return "lightyellow"
	case "blue":
		return "lightblue"
	default:
		return "lightgray"
	}
}

func dotEdgeStyle(typ EdgeType) (string, string) {
	switch typ {
	case EdgeTypeConditional:
		return "dashed", "orange"
	case EdgeTypeDataDependency:
		return "dotted", "blue"
	case EdgeTypeOnSuccess:
		return "solid", "green"
	case EdgeTypeOnFailure:
		return "solid", "red"
	default:
		return "solid", "black"
	}
}

// edgeLabel returns the label rendered next to an edge. Sequential edges are
// unlabeled; branch and conditional edges show their description, data
// dependency edges show the referenced expression.
func edgeLabel(edge *FlowEdge) string {
	switch edge.Type {
	case EdgeTypeSequential:
		return ""
	case EdgeTypeDataDependency:
		return edge.DataRef
	default:
		return edge.Description
	}
}
