package consistency

import "fmt"

// validateOperations checks that every operation and workflow reference in
// every step resolves: operation ids and "METHOD /path" pairs against the
// loaded interface documents, workflow ids against the workflow document
// itself.
func (v *Validator) validateOperations() ([]Error, []Warning) {
	var errs []Error

	workflowIDs := make(map[string]bool, len(v.arazzo.Workflows))
	for _, workflow := range v.arazzo.Workflows {
		workflowIDs[workflow.WorkflowID] = true
	}

	for _, workflow := range v.arazzo.Workflows {
		for _, step := range workflow.Steps {
			if step.OperationID != nil {
				if _, _, ok := v.resolver.FindOperationByID(*step.OperationID); !ok {
					errs = append(errs, Error{
						WorkflowID: workflow.WorkflowID,
						StepID:     step.StepID,
						Type:       ErrorTypeOperationIDNotFound,
						Message:    fmt.Sprintf("operation not found: operationId %q does not exist in any source description", *step.OperationID),
					})
				}
			}

			if step.OperationPath != nil {
				if _, _, ok := v.resolver.FindOperationByPathRef(*step.OperationPath); !ok {
					errs = append(errs, Error{
						WorkflowID: workflow.WorkflowID,
						StepID:     step.StepID,
						Type:       ErrorTypeOperationPathNotFound,
						Message:    fmt.Sprintf("operation not found: operationPath %q does not exist in any source description", *step.OperationPath),
					})
				}
			}

			if step.WorkflowID != nil && !workflowIDs[*step.WorkflowID] {
				errs = append(errs, Error{
					WorkflowID: workflow.WorkflowID,
					StepID:     step.StepID,
					Type:       ErrorTypeWorkflowRefNotFound,
					Message:    fmt.Sprintf("workflow reference not found: workflowId %q is not declared in the document", *step.WorkflowID),
				})
			}
		}
	}

	return errs, nil
}
