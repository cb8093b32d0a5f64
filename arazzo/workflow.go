package arazzo

import (
	"github.com/flowlint/flowlint/expression"
	"github.com/flowlint/flowlint/extensions"
	"github.com/flowlint/flowlint/sequencedmap"
	"gopkg.in/yaml.v3"
)

// Outputs is an ordered mapping of output name to the runtime expression that produces it.
type Outputs = sequencedmap.Map[string, expression.Expression]

// Workflows is a list of Workflow objects.
type Workflows []*Workflow

// Find returns the first workflow with the matching workflowId, or nil.
func (w Workflows) Find(id string) *Workflow {
	for _, workflow := range w {
		if workflow.WorkflowID == id {
			return workflow
		}
	}
	return nil
}

// Workflow represents a named, ordered sequence of steps plus metadata. It is
// the unit the engine validates and graphs.
type Workflow struct {
	// WorkflowID is a unique identifier for the workflow within the document.
	WorkflowID string `yaml:"workflowId"`
	// Summary is a short description of the purpose of the workflow.
	Summary *string `yaml:"summary,omitempty"`
	// Description is a longer description of the purpose of the workflow.
	Description *string `yaml:"description,omitempty"`
	// Inputs is a free-form JSON Schema describing the workflow's input object.
	Inputs map[string]any `yaml:"inputs,omitempty"`
	// Steps is the ordered list of steps executed by the workflow.
	Steps Steps `yaml:"steps"`
	// SuccessCriteria are workflow-level criteria that must hold for the workflow to succeed.
	SuccessCriteria []*Criterion `yaml:"successCriteria,omitempty"`
	// Outputs is an ordered mapping of workflow outputs to runtime expressions.
	Outputs *Outputs `yaml:"outputs,omitempty"`
	// Extensions holds any vendor extension fields on the workflow, in document order.
	Extensions *extensions.Extensions `yaml:"-"`
}

// UnmarshalYAML decodes the workflow, capturing vendor extensions.
func (w *Workflow) UnmarshalYAML(node *yaml.Node) error {
	type plain Workflow

	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}

	*w = Workflow(p)
	w.Extensions = extensions.Collect(node)

	return nil
}

// MarshalYAML encodes the workflow, re-appending vendor extensions in their
// original order.
func (w *Workflow) MarshalYAML() (any, error) {
	type plain Workflow
	return extensions.Marshal((*plain)(w), w.Extensions)
}

// HasInputs reports whether the workflow declares an input schema at all.
func (w *Workflow) HasInputs() bool {
	return w != nil && w.Inputs != nil
}
