package flowgraph

import (
	"fmt"
	"strings"
)

// ValidationResult holds the findings of a structural validation pass.
type ValidationResult struct {
	// IsValid is false when the graph contains cycles. Warnings do not affect it.
	IsValid bool
	// Errors lists structural problems that make the workflow unexecutable.
	Errors []string
	// Warnings lists suspicious but executable structure.
	Warnings []string
}

// Validate runs the structural checks over the graph: cycle detection,
// unreachable-step detection, dead-end detection and topological ordering.
// All edge types participate; a goto back-edge that forms a loop is reported
// as a cycle.
func Validate(graph *FlowGraph) ValidationResult {
	result := ValidationResult{IsValid: true}

	order, acyclic := topologicalOrder(graph)

	if !acyclic {
		result.IsValid = false
		result.Errors = append(result.Errors, "Graph contains cycles (not a DAG)")
	}

	if unreachable := unreachableSteps(graph); len(unreachable) > 0 {
		result.Warnings = append(result.Warnings, fmt.Sprintf("Found %d unreachable nodes: %s", len(unreachable), strings.Join(unreachable, ", ")))
	}

	if deadEnds := deadEndSteps(graph); len(deadEnds) > 1 {
		result.Warnings = append(result.Warnings, fmt.Sprintf("Found %d nodes with no outgoing edges: %s", len(deadEnds), strings.Join(deadEnds, ", ")))
	}

	if acyclic {
		if len(order) > 0 {
			result.Warnings = append(result.Warnings, "Topological order: "+strings.Join(order, " → "))
		}
	} else {
		result.Errors = append(result.Errors, "Failed to compute topological order: graph contains cycles")
	}

	return result
}

// topologicalOrder computes a topological order of the graph's steps using
// Kahn's algorithm. Ties break by node insertion order, so an acyclic chain
// of sequential edges always orders exactly as the steps were declared.
// Self-loops keep their node's in-degree from ever reaching zero, so they
// report as cycles like any other loop.
func topologicalOrder(graph *FlowGraph) ([]string, bool) {
	nodes := graph.Nodes()

	indegree := make(map[string]int, len(nodes))
	for _, node := range nodes {
		indegree[node.StepID] = len(graph.InEdges(node.StepID))
	}

	visited := make(map[string]bool, len(nodes))
	order := make([]string, 0, len(nodes))

	for len(order) < len(nodes) {
		next := ""
		for _, node := range nodes {
			if !visited[node.StepID] && indegree[node.StepID] == 0 {
				next = node.StepID
				break
			}
		}
		if next == "" {
			// Every remaining node has an incoming edge from another
			// remaining node: a cycle.
			return nil, false
		}

		visited[next] = true
		order = append(order, next)
		for _, edge := range graph.OutEdges(next) {
			indegree[edge.Target]--
		}
	}

	return order, true
}

// unreachableSteps returns the steps that have no incoming edges and are not
// the workflow's entry point (the first declared step).
func unreachableSteps(graph *FlowGraph) []string {
	var unreachable []string
	for i, node := range graph.Nodes() {
		if i == 0 {
			continue
		}
		if len(graph.InEdges(node.StepID)) == 0 {
			unreachable = append(unreachable, node.StepID)
		}
	}
	return unreachable
}

// deadEndSteps returns the steps with no outgoing edges. Exactly one dead end
// is the normal shape of a linear workflow; multiple dead ends suggest a
// branch that never converges.
func deadEndSteps(graph *FlowGraph) []string {
	var deadEnds []string
	for _, node := range graph.Nodes() {
		if len(graph.OutEdges(node.StepID)) == 0 {
			deadEnds = append(deadEnds, node.StepID)
		}
	}
	return deadEnds
}
