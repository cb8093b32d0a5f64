package consistency

import (
	"fmt"

	"github.com/flowlint/flowlint/arazzo"
	"github.com/flowlint/flowlint/expression"
)

// validateDependencies checks the runtime expressions embedded in each step:
// every $steps reference must name an existing step that executes strictly
// earlier, $inputs references require the workflow to declare inputs, and
// declared step outputs should be consumed somewhere downstream.
func (v *Validator) validateDependencies() ([]Error, []Warning) {
	var errs []Error
	var warns []Warning

	for _, workflow := range v.arazzo.Workflows {
		stepIndex := make(map[string]int, len(workflow.Steps))
		for i, step := range workflow.Steps {
			stepIndex[step.StepID] = i
		}

		// Outputs referenced anywhere in the workflow, keyed by step id.
		referenced := make(map[string]bool)

		for current, step := range workflow.Steps {
			for _, ref := range stepReferences(step) {
				switch ref.Kind {
				case expression.KindStepOutput:
					index, exists := stepIndex[ref.StepID]
					if !exists {
						errs = append(errs, Error{
							WorkflowID: workflow.WorkflowID,
							StepID:     step.StepID,
							Type:       ErrorTypeInvalidStepReference,
							Message:    fmt.Sprintf("invalid step reference: %s refers to non-existent step %q", ref.Raw, ref.StepID),
						})
						continue
					}

					// Self-references and forward references both violate
					// execution order.
					if index >= current {
						errs = append(errs, Error{
							WorkflowID: workflow.WorkflowID,
							StepID:     step.StepID,
							Type:       ErrorTypeStepOrderViolation,
							Message:    fmt.Sprintf("step order violation: step %q references outputs of step %q which does not execute before it", step.StepID, ref.StepID),
						})
					}

					referenced[ref.StepID] = true
				case expression.KindInput:
					if !workflow.HasInputs() {
						warns = append(warns, Warning{
							WorkflowID: workflow.WorkflowID,
							StepID:     step.StepID,
							Message:    fmt.Sprintf("input reference %s used but workflow declares no inputs", ref.Raw),
						})
					}
				}
			}
		}

		// Workflow-level outputs consume step outputs too.
		if workflow.Outputs != nil {
			for expr := range workflow.Outputs.Values() {
				for _, ref := range expression.ExtractReferences(string(expr)) {
					if ref.Kind == expression.KindStepOutput {
						referenced[ref.StepID] = true
					}
				}
			}
		}

		for _, step := range workflow.Steps {
			if step.HasOutputs() && !referenced[step.StepID] {
				warns = append(warns, Warning{
					WorkflowID: workflow.WorkflowID,
					StepID:     step.StepID,
					Message:    "unused output: step declares outputs that are never referenced by a later step or the workflow outputs",
				})
			}
		}
	}

	return errs, warns
}

// stepReferences extracts every runtime-expression reference embedded in a
// step's parameter values, request body payload and success criteria.
func stepReferences(step *arazzo.Step) []expression.Reference {
	var refs []expression.Reference

	for _, param := range step.Parameters {
		refs = append(refs, expression.ExtractReferences(param.ValueText())...)
	}

	refs = append(refs, expression.ExtractReferences(step.RequestBody.PayloadText())...)

	for _, criterion := range step.SuccessCriteria {
		refs = append(refs, expression.ExtractReferences(criterion.Text())...)
	}

	return refs
}
