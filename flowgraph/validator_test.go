package flowgraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chainGraph(stepIDs ...string) *FlowGraph {
	graph := New("test-workflow")
	for _, id := range stepIDs {
		graph.AddNode(&FlowNode{StepID: id})
	}
	for i := 0; i+1 < len(stepIDs); i++ {
		graph.AddEdge(NewSequentialEdge(stepIDs[i], stepIDs[i+1]))
	}
	return graph
}

func TestValidate_LinearGraph(t *testing.T) {
	graph := chainGraph("login", "getProfile", "logout")

	result := Validate(graph)

	assert.True(t, result.IsValid)
	assert.Empty(t, result.Errors)
	require.Len(t, result.Warnings, 1, "a single dead end is expected and not reported")
	assert.Equal(t, "Topological order: login → getProfile → logout", result.Warnings[0])
}

func TestValidate_SingleConditionalNode(t *testing.T) {
	graph := New("single")
	graph.AddNode(&FlowNode{StepID: "only", HasSuccessCriteria: true})

	result := Validate(graph)

	assert.True(t, result.IsValid)
	assert.Empty(t, result.Errors)
}

func TestValidate_CycleFromGotoBackEdge(t *testing.T) {
	graph := chainGraph("login", "getProfile")
	graph.AddEdge(NewOnFailureEdge("getProfile", "login", "retryLogin"))

	result := Validate(graph)

	assert.False(t, result.IsValid)
	require.Len(t, result.Errors, 2)
	assert.Equal(t, "Graph contains cycles (not a DAG)", result.Errors[0])
	assert.Equal(t, "Failed to compute topological order: graph contains cycles", result.Errors[1])
}

func TestValidate_SelfLoop(t *testing.T) {
	graph := chainGraph("a", "b")
	graph.AddEdge(NewOnFailureEdge("b", "b", "retry"))

	result := Validate(graph)

	assert.False(t, result.IsValid, "a step that retries itself loops")
}

func TestValidate_UnreachableStep(t *testing.T) {
	graph := New("unreachable")
	graph.AddNode(&FlowNode{StepID: "first"})
	graph.AddNode(&FlowNode{StepID: "second"})
	graph.AddNode(&FlowNode{StepID: "orphan"})
	graph.AddEdge(NewSequentialEdge("first", "second"))

	result := Validate(graph)

	assert.True(t, result.IsValid, "unreachable steps warn, they do not invalidate")

	require.NotEmpty(t, result.Warnings)
	assert.Contains(t, result.Warnings[0], "unreachable")
	assert.Contains(t, result.Warnings[0], "orphan")
	assert.NotContains(t, result.Warnings[0], "first", "the entry step never counts as unreachable")
}

func TestValidate_MultipleDeadEnds(t *testing.T) {
	graph := New("branches")
	graph.AddNode(&FlowNode{StepID: "start"})
	graph.AddNode(&FlowNode{StepID: "left"})
	graph.AddNode(&FlowNode{StepID: "right"})
	graph.AddEdge(NewOnSuccessEdge("start", "left", "onOK"))
	graph.AddEdge(NewOnFailureEdge("start", "right", "onFail"))

	result := Validate(graph)

	assert.True(t, result.IsValid)

	var deadEndWarning string
	for _, warning := range result.Warnings {
		if len(warning) >= 5 && warning[:5] == "Found" {
			deadEndWarning = warning
		}
	}
	require.NotEmpty(t, deadEndWarning)
	assert.Contains(t, deadEndWarning, "no outgoing edges")
	assert.Contains(t, deadEndWarning, "left")
	assert.Contains(t, deadEndWarning, "right")
}

func TestValidate_TopologicalOrderMatchesStepOrder(t *testing.T) {
	graph := chainGraph("a", "b", "c", "d", "e")

	result := Validate(graph)

	require.True(t, result.IsValid)
	assert.Contains(t, result.Warnings, "Topological order: a → b → c → d → e")
}
