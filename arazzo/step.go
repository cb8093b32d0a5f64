package arazzo

import (
	"github.com/flowlint/flowlint/extensions"
	"gopkg.in/yaml.v3"
)

// Steps is a list of Step objects describing the operations performed by a workflow.
type Steps []*Step

// Find returns the first step with the provided id, or nil.
func (s Steps) Find(id string) *Step {
	for _, step := range s {
		if step.StepID == id {
			return step
		}
	}
	return nil
}

// Step represents one action in a workflow. A step references exactly one of
// an operation by id, an operation by "METHOD /path" pair, or another
// workflow; the loader enforces that invariant and the engines assume it.
type Step struct {
	// StepID is a unique identifier for the step within its workflow.
	StepID string `yaml:"stepId"`
	// Description is a description of the step.
	Description *string `yaml:"description,omitempty"`
	// OperationID references an operation in a source description by its operation id.
	OperationID *string `yaml:"operationId,omitempty"`
	// OperationPath references an operation by a "METHOD /path" pair, e.g. "GET /users/{id}".
	OperationPath *string `yaml:"operationPath,omitempty"`
	// WorkflowID references another workflow declared in the same document.
	WorkflowID *string `yaml:"workflowId,omitempty"`
	// Parameters is the ordered list of parameters passed to the referenced operation or workflow.
	Parameters []*Parameter `yaml:"parameters,omitempty"`
	// RequestBody is the request body passed to the referenced operation.
	RequestBody *RequestBody `yaml:"requestBody,omitempty"`
	// SuccessCriteria is the ordered list of criteria that must be met for the step to succeed.
	SuccessCriteria []*Criterion `yaml:"successCriteria,omitempty"`
	// OnSuccess lists the actions taken when the step succeeds.
	OnSuccess []*SuccessAction `yaml:"onSuccess,omitempty"`
	// OnFailure lists the actions taken when the step fails.
	OnFailure []*FailureAction `yaml:"onFailure,omitempty"`
	// Outputs is an ordered mapping of step outputs to runtime expressions.
	Outputs *Outputs `yaml:"outputs,omitempty"`
	// Extensions holds any vendor extension fields on the step, in document order.
	Extensions *extensions.Extensions `yaml:"-"`
}

// UnmarshalYAML decodes the step, capturing vendor extensions.
func (s *Step) UnmarshalYAML(node *yaml.Node) error {
	type plain Step

	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}

	*s = Step(p)
	s.Extensions = extensions.Collect(node)

	return nil
}

// MarshalYAML encodes the step, re-appending vendor extensions in their
// original order.
func (s *Step) MarshalYAML() (any, error) {
	type plain Step
	return extensions.Marshal((*plain)(s), s.Extensions)
}

// HasOutputs reports whether the step declares any outputs.
func (s *Step) HasOutputs() bool {
	return s != nil && s.Outputs.Len() > 0
}

// HasSuccessCriteria reports whether the step declares any success criteria.
func (s *Step) HasSuccessCriteria() bool {
	return s != nil && len(s.SuccessCriteria) > 0
}

// HasGotoAction reports whether any success or failure action of the step
// redirects the flow to another step.
func (s *Step) HasGotoAction() bool {
	if s == nil {
		return false
	}

	for _, action := range s.OnSuccess {
		if action.Type == ActionTypeGoto {
			return true
		}
	}

	for _, action := range s.OnFailure {
		if action.Type == ActionTypeGoto {
			return true
		}
	}

	return false
}
