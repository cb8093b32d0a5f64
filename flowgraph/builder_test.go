package flowgraph

import (
	"testing"

	"github.com/flowlint/flowlint/arazzo"
	"github.com/flowlint/flowlint/expression"
	"github.com/flowlint/flowlint/openapi"
	"github.com/flowlint/flowlint/pointer"
	"github.com/flowlint/flowlint/sequencedmap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func linearWorkflow(stepIDs ...string) *arazzo.Workflow {
	workflow := &arazzo.Workflow{WorkflowID: "test-workflow"}
	for _, id := range stepIDs {
		workflow.Steps = append(workflow.Steps, &arazzo.Step{
			StepID:      id,
			OperationID: pointer.From("op-" + id),
		})
	}
	return workflow
}

func gotoAction(name, target string) (string, arazzo.ActionType, *sequencedmap.Map[string, *yaml.Node]) {
	config := sequencedmap.New[string, *yaml.Node]()
	config.Set("stepId", &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: target})
	return name, arazzo.ActionTypeGoto, config
}

func TestBuilder_Build_LinearWorkflow(t *testing.T) {
	workflow := linearWorkflow("login", "getProfile", "logout")

	graph := NewBuilder(workflow).Build()

	assert.Equal(t, "test-workflow", graph.WorkflowID)
	assert.Equal(t, 3, graph.NodeCount())
	require.Equal(t, 2, graph.EdgeCount())

	for _, edge := range graph.Edges() {
		assert.Equal(t, EdgeTypeSequential, edge.Type)
	}

	assert.Equal(t, "login", graph.Edges()[0].Source)
	assert.Equal(t, "getProfile", graph.Edges()[0].Target)
	assert.Equal(t, "getProfile", graph.Edges()[1].Source)
	assert.Equal(t, "logout", graph.Edges()[1].Target)
}

func TestBuilder_Build_SuccessCriteriaAddsNoEdge(t *testing.T) {
	workflow := linearWorkflow("login", "getProfile")
	workflow.Steps[0].SuccessCriteria = []*arazzo.Criterion{
		{Condition: "$statusCode == 200"},
		{Condition: "$response.body.token != null"},
	}

	graph := NewBuilder(workflow).Build()

	assert.Equal(t, 2, graph.NodeCount())
	assert.Equal(t, 1, graph.EdgeCount())

	node, ok := graph.GetNode("login")
	require.True(t, ok)
	assert.True(t, node.HasSuccessCriteria)

	other, ok := graph.GetNode("getProfile")
	require.True(t, ok)
	assert.False(t, other.HasSuccessCriteria)
}

func stepOutputs(pairs ...string) *arazzo.Outputs {
	outputs := sequencedmap.New[string, expression.Expression]()
	for i := 0; i+1 < len(pairs); i += 2 {
		outputs.Set(pairs[i], expression.Expression(pairs[i+1]))
	}
	return outputs
}

func TestBuilder_Build_NodeAttributes(t *testing.T) {
	workflow := &arazzo.Workflow{
		WorkflowID: "attrs",
		Steps: arazzo.Steps{
			{
				StepID:      "login",
				Description: pointer.From("Log the user in"),
				OperationID: pointer.From("loginUser"),
				Outputs:     stepOutputs("token", "$response.body.token"),
			},
			{
				StepID:        "delete",
				OperationPath: pointer.From("delete /users/{id}"),
			},
		},
	}

	graph := NewBuilder(workflow).Build()

	login, ok := graph.GetNode("login")
	require.True(t, ok)
	assert.Equal(t, "loginUser", login.OperationID)
	assert.Equal(t, "Log the user in", login.Description)
	assert.True(t, login.HasOutputs)

	del, ok := graph.GetNode("delete")
	require.True(t, ok)
	assert.Equal(t, "delete /users/{id}", del.OperationPath)
	assert.Equal(t, "DELETE", del.Method, "method should come from the operation path, uppercased")
	assert.False(t, del.HasOutputs)
}

func TestBuilder_Build_ResolvesMethodFromDocument(t *testing.T) {
	paths := sequencedmap.New[string, *openapi.PathItem]()
	paths.Set("/login", &openapi.PathItem{
		Post: &openapi.Operation{OperationID: "loginUser"},
	})
	paths.Set("/users/{id}", &openapi.PathItem{
		Get:    &openapi.Operation{OperationID: "getUser"},
		Delete: &openapi.Operation{OperationID: "deleteUser"},
	})
	doc := &openapi.Document{OpenAPI: "3.0.3", Paths: paths}

	workflow := &arazzo.Workflow{
		WorkflowID: "methods",
		Steps: arazzo.Steps{
			{StepID: "login", OperationID: pointer.From("loginUser")},
			{StepID: "remove", OperationID: pointer.From("deleteUser")},
			{StepID: "unknown", OperationID: pointer.From("noSuchOperation")},
		},
	}

	graph := NewBuilder(workflow).WithDocument(doc).Build()

	login, _ := graph.GetNode("login")
	assert.Equal(t, "POST", login.Method)

	remove, _ := graph.GetNode("remove")
	assert.Equal(t, "DELETE", remove.Method)

	unknown, _ := graph.GetNode("unknown")
	assert.Empty(t, unknown.Method, "unresolvable operations leave the method unset")
}

func TestBuilder_Build_ResolvesMethodAcrossDocuments(t *testing.T) {
	userPaths := sequencedmap.New[string, *openapi.PathItem]()
	userPaths.Set("/login", &openapi.PathItem{
		Post: &openapi.Operation{OperationID: "loginUser"},
	})

	orderPaths := sequencedmap.New[string, *openapi.PathItem]()
	orderPaths.Set("/orders", &openapi.PathItem{
		Put: &openapi.Operation{OperationID: "updateOrder"},
	})

	resolver := openapi.NewResolver()
	resolver.AddDocument("userAPI", &openapi.Document{OpenAPI: "3.1.0", Paths: userPaths})
	resolver.AddDocument("orderAPI", &openapi.Document{OpenAPI: "3.1.0", Paths: orderPaths})

	workflow := &arazzo.Workflow{
		WorkflowID: "multi-source",
		Steps: arazzo.Steps{
			{StepID: "login", OperationID: pointer.From("loginUser")},
			{StepID: "update", OperationID: pointer.From("updateOrder")},
		},
	}

	graph := NewBuilder(workflow).WithResolver(resolver).Build()

	login, _ := graph.GetNode("login")
	assert.Equal(t, "POST", login.Method)

	update, _ := graph.GetNode("update")
	assert.Equal(t, "PUT", update.Method, "operations declared in later sources still resolve")
}

func TestBuilder_Build_DataDependencies(t *testing.T) {
	workflow := &arazzo.Workflow{
		WorkflowID: "deps",
		Steps: arazzo.Steps{
			{StepID: "login", OperationID: pointer.From("loginUser")},
			{StepID: "createOrder", OperationID: pointer.From("createOrder")},
			{
				StepID:      "getReceipt",
				OperationID: pointer.From("getReceipt"),
				Parameters: []*arazzo.Parameter{
					{Name: "orderId", In: arazzo.InPath, Value: "$steps.createOrder.outputs.id"},
					{Name: "Authorization", In: arazzo.InHeader, Value: "Bearer $steps.login.outputs.token"},
				},
				RequestBody: &arazzo.RequestBody{
					ContentType: pointer.From("application/json"),
					Payload:     map[string]any{"token": "$steps.login.outputs.token"},
				},
			},
		},
	}

	graph := NewBuilder(workflow).Build()

	receipt, ok := graph.GetNode("getReceipt")
	require.True(t, ok)
	assert.Equal(t, []string{"createOrder", "login"}, receipt.DependsOn, "dependencies are sorted and deduplicated")

	login, ok := graph.GetNode("login")
	require.True(t, ok)
	assert.Empty(t, login.DependsOn)

	// Dependency information lives on the nodes; the edges stay sequential.
	require.Equal(t, 2, graph.EdgeCount())
	for _, edge := range graph.Edges() {
		assert.Equal(t, EdgeTypeSequential, edge.Type)
	}
}

func TestBuilder_Build_OutputExpressionDependencies(t *testing.T) {
	workflow := &arazzo.Workflow{
		WorkflowID: "output-deps",
		Steps: arazzo.Steps{
			{StepID: "login", OperationID: pointer.From("loginUser")},
			{
				StepID:      "summarize",
				OperationID: pointer.From("summarize"),
				Outputs:     stepOutputs("session", "$steps.login.outputs.token"),
			},
		},
	}

	graph := NewBuilder(workflow).Build()

	summarize, ok := graph.GetNode("summarize")
	require.True(t, ok)
	assert.Equal(t, []string{"login"}, summarize.DependsOn, "output expressions count as consumption")
}

func TestBuilder_Build_GotoActions(t *testing.T) {
	workflow := linearWorkflow("login", "getProfile", "logout")

	retry := &arazzo.FailureAction{}
	retry.Name, retry.Type, retry.Config = gotoAction("retryLogin", "login")
	workflow.Steps[1].OnFailure = []*arazzo.FailureAction{retry}

	skip := &arazzo.SuccessAction{}
	skip.Name, skip.Type, skip.Config = gotoAction("skipAhead", "logout")
	workflow.Steps[1].OnSuccess = []*arazzo.SuccessAction{skip}

	graph := NewBuilder(workflow).Build()

	assert.Equal(t, 3, graph.NodeCount())
	require.Equal(t, 3, graph.EdgeCount(), "one sequential edge plus the two branch edges")

	out := graph.OutEdges("getProfile")
	require.Len(t, out, 2, "a branching step gets branch edges instead of a sequential edge")

	types := map[EdgeType]string{}
	for _, edge := range out {
		types[edge.Type] = edge.Target
	}
	assert.Equal(t, "logout", types[EdgeTypeOnSuccess])
	assert.Equal(t, "login", types[EdgeTypeOnFailure])
}

func TestBuilder_Build_DanglingGotoTarget(t *testing.T) {
	workflow := linearWorkflow("login", "getProfile")

	dangling := &arazzo.SuccessAction{}
	dangling.Name, dangling.Type, dangling.Config = gotoAction("jump", "noSuchStep")
	workflow.Steps[0].OnSuccess = []*arazzo.SuccessAction{dangling}

	graph := NewBuilder(workflow).Build()

	// The dangling target yields no edge, and the goto still suppresses the
	// sequential edge. The consistency engine reports the broken reference.
	assert.Equal(t, 0, graph.EdgeCount())
}
