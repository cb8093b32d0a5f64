package consistency

import (
	"fmt"

	"github.com/flowlint/flowlint/arazzo"
	"github.com/flowlint/flowlint/openapi"
)

// validateParameters compares each step's declared parameters against the
// parameters of the operation it references, matching by name and location.
// Steps referencing another workflow have no operation and are skipped, as
// are steps whose operation did not resolve (phase 1 already reported those).
func (v *Validator) validateParameters() ([]Error, []Warning) {
	var errs []Error
	var warns []Warning

	for _, workflow := range v.arazzo.Workflows {
		for _, step := range workflow.Steps {
			if step.WorkflowID != nil {
				continue
			}

			_, op, ok := v.operationForStep(step)
			if !ok {
				continue
			}

			// Required operation parameters must appear in the step,
			// with a matching location.
			for _, opParam := range op.Parameters {
				if !opParam.Required {
					continue
				}

				if findStepParameter(step, opParam.Name, opParam.In) == nil {
					errs = append(errs, Error{
						WorkflowID: workflow.WorkflowID,
						StepID:     step.StepID,
						Type:       ErrorTypeRequiredParameterMissing,
						Message:    fmt.Sprintf("required parameter missing: %q (in: %s) is required by the operation but not provided by the step", opParam.Name, opParam.In),
					})
				}
			}

			for _, stepParam := range step.Parameters {
				opParam := findOperationParameter(op.Parameters, stepParam.Name)
				switch {
				case opParam == nil:
					// Unknown parameters are advisory unless the value is a
					// runtime expression, which is assumed intentional.
					if !stepParam.IsExpressionValue() {
						warns = append(warns, Warning{
							WorkflowID: workflow.WorkflowID,
							StepID:     step.StepID,
							Message:    fmt.Sprintf("extra parameter: %q (in: %s) is not declared by the operation", stepParam.Name, stepParam.In),
						})
					}
				case opParam.In != string(stepParam.In):
					errs = append(errs, Error{
						WorkflowID: workflow.WorkflowID,
						StepID:     step.StepID,
						Type:       ErrorTypeParameterLocationMismatch,
						Message:    fmt.Sprintf("parameter location mismatch: %q is declared with in: %s by the operation but provided with in: %s by the step", stepParam.Name, opParam.In, stepParam.In),
					})
				}
			}
		}
	}

	return errs, warns
}

func findStepParameter(step *arazzo.Step, name, in string) *arazzo.Parameter {
	for _, param := range step.Parameters {
		if param.Name == name && string(param.In) == in {
			return param
		}
	}
	return nil
}

func findOperationParameter(params []*openapi.Parameter, name string) *openapi.Parameter {
	for _, param := range params {
		if param.Name == name {
			return param
		}
	}
	return nil
}
