package flowgraph

import (
	"sort"
	"strings"

	"github.com/flowlint/flowlint/arazzo"
	"github.com/flowlint/flowlint/expression"
	"github.com/flowlint/flowlint/openapi"
	"github.com/flowlint/flowlint/pointer"
)

// Builder constructs the flow graph for a single workflow. The interface
// documents are optional; without them nodes simply carry no resolved method.
type Builder struct {
	workflow *arazzo.Workflow
	resolver *openapi.Resolver
}

// NewBuilder creates a builder for the provided workflow.
func NewBuilder(workflow *arazzo.Workflow) *Builder {
	return &Builder{workflow: workflow}
}

// WithResolver attaches the loaded interface documents used to resolve HTTP
// methods for steps that reference operations by id. Documents are consulted
// in registration order, so a method declared in any source resolves.
func (b *Builder) WithResolver(resolver *openapi.Resolver) *Builder {
	b.resolver = resolver
	return b
}

// WithDocument attaches a single interface document used to resolve HTTP
// methods for steps that reference operations by id.
func (b *Builder) WithDocument(doc *openapi.Document) *Builder {
	resolver := openapi.NewResolver()
	resolver.AddDocument("document", doc)
	return b.WithResolver(resolver)
}

// Build constructs the flow graph. Construction is total: unresolvable
// operations and dangling goto targets degrade to missing metadata and
// missing edges, never to an error. Consistency problems are reported by the
// consistency engine, not here.
func (b *Builder) Build() *FlowGraph {
	graph := New(b.workflow.WorkflowID)

	for _, step := range b.workflow.Steps {
		graph.AddNode(b.buildNode(step))
	}

	// Sequential edges connect consecutive steps. A step whose actions
	// redirect the flow gets branch edges instead of a sequential edge.
	for i := 0; i+1 < len(b.workflow.Steps); i++ {
		step := b.workflow.Steps[i]
		if step.HasGotoAction() {
			continue
		}

		graph.AddEdge(NewSequentialEdge(step.StepID, b.workflow.Steps[i+1].StepID))
	}

	for _, step := range b.workflow.Steps {
		for _, action := range step.OnSuccess {
			if target, ok := action.GotoStepID(); ok {
				graph.AddEdge(NewOnSuccessEdge(step.StepID, target, action.Name))
			}
		}

		for _, action := range step.OnFailure {
			if target, ok := action.GotoStepID(); ok {
				graph.AddEdge(NewOnFailureEdge(step.StepID, target, action.Name))
			}
		}
	}

	return graph
}

func (b *Builder) buildNode(step *arazzo.Step) *FlowNode {
	node := &FlowNode{
		StepID:             step.StepID,
		OperationID:        pointer.ValueOrZero(step.OperationID),
		OperationPath:      pointer.ValueOrZero(step.OperationPath),
		Description:        pointer.ValueOrZero(step.Description),
		DependsOn:          stepDependencies(step),
		HasOutputs:         step.HasOutputs(),
		HasSuccessCriteria: step.HasSuccessCriteria(),
	}
	node.Method = b.resolveMethod(step)

	return node
}

// resolveMethod determines the HTTP method behind a step's operation
// reference. Path references carry the method inline; id references require
// scanning the loaded interface documents.
func (b *Builder) resolveMethod(step *arazzo.Step) string {
	if step.OperationPath != nil {
		method, _, ok := strings.Cut(*step.OperationPath, " ")
		if ok {
			return strings.ToUpper(method)
		}
		return ""
	}

	if step.OperationID == nil || b.resolver == nil {
		return ""
	}

	if ref, _, ok := b.resolver.FindOperationByID(*step.OperationID); ok {
		return ref.Method
	}

	return ""
}

// stepDependencies collects the ids of steps whose outputs the step consumes
// through its parameter values, request body payload and output expressions.
// The result is sorted and deduplicated.
func stepDependencies(step *arazzo.Step) []string {
	seen := make(map[string]bool)

	collect := func(text string) {
		for _, ref := range expression.ExtractReferences(text) {
			if ref.Kind == expression.KindStepOutput {
				seen[ref.StepID] = true
			}
		}
	}

	for _, param := range step.Parameters {
		collect(param.ValueText())
	}
	collect(step.RequestBody.PayloadText())
	for expr := range step.Outputs.Values() {
		collect(string(expr))
	}

	if len(seen) == 0 {
		return nil
	}

	deps := make([]string, 0, len(seen))
	for id := range seen {
		deps = append(deps, id)
	}
	sort.Strings(deps)

	return deps
}
