// Package loader reads workflow and interface documents from disk, applies
// the structural checks the engines assume to be true, and resolves source
// descriptions into loaded interface documents.
package loader

import (
	"fmt"
	"os"
	"strings"

	"github.com/flowlint/flowlint/arazzo"
	"github.com/flowlint/flowlint/openapi"
	"gopkg.in/yaml.v3"
)

// LoadArazzo reads and parses a workflow document, then validates its
// structure. A non-nil error means the document cannot be handed to the
// graph or consistency engines.
func LoadArazzo(path string) (*arazzo.Arazzo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var doc arazzo.Arazzo
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if err := validateArazzo(&doc); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return &doc, nil
}

// SaveArazzo validates and writes a workflow document. Ordered maps (outputs,
// vendor extensions) serialize in their original insertion order.
func SaveArazzo(path string, doc *arazzo.Arazzo) error {
	if err := validateArazzo(doc); err != nil {
		return err
	}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to serialize workflow document: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return nil
}

// validateArazzo enforces the structural invariants the engines assume:
// a supported version, unique workflow and step ids, exactly one operation
// reference per step, and well-formed success criteria.
func validateArazzo(doc *arazzo.Arazzo) error {
	if !strings.HasPrefix(doc.Arazzo, "1.0") {
		return fmt.Errorf("unsupported arazzo version %q, only 1.0.x is supported", doc.Arazzo)
	}

	if len(doc.Workflows) == 0 {
		return fmt.Errorf("document declares no workflows")
	}

	workflowIDs := make(map[string]bool, len(doc.Workflows))
	for _, workflow := range doc.Workflows {
		if workflow.WorkflowID == "" {
			return fmt.Errorf("workflow missing workflowId")
		}
		if workflowIDs[workflow.WorkflowID] {
			return fmt.Errorf("duplicate workflowId %q", workflow.WorkflowID)
		}
		workflowIDs[workflow.WorkflowID] = true

		if len(workflow.Steps) == 0 {
			return fmt.Errorf("workflow %q declares no steps", workflow.WorkflowID)
		}

		stepIDs := make(map[string]bool, len(workflow.Steps))
		for _, step := range workflow.Steps {
			if step.StepID == "" {
				return fmt.Errorf("workflow %q has a step missing stepId", workflow.WorkflowID)
			}
			if stepIDs[step.StepID] {
				return fmt.Errorf("workflow %q has duplicate stepId %q", workflow.WorkflowID, step.StepID)
			}
			stepIDs[step.StepID] = true

			if err := validateStepReference(step); err != nil {
				return fmt.Errorf("workflow %q step %q: %w", workflow.WorkflowID, step.StepID, err)
			}

			for i, criterion := range step.SuccessCriteria {
				if errs := criterion.Validate(); len(errs) > 0 {
					return fmt.Errorf("workflow %q step %q: successCriteria[%d]: %w", workflow.WorkflowID, step.StepID, i, errs[0])
				}
			}
		}
	}

	return nil
}

// validateStepReference enforces that a step names exactly one of an
// operation id, an operation path, or a workflow.
func validateStepReference(step *arazzo.Step) error {
	count := 0
	if step.OperationID != nil {
		count++
	}
	if step.OperationPath != nil {
		count++
	}
	if step.WorkflowID != nil {
		count++
	}

	switch count {
	case 0:
		return fmt.Errorf("step must reference an operationId, operationPath or workflowId")
	case 1:
		return nil
	default:
		return fmt.Errorf("step must reference exactly one of operationId, operationPath or workflowId")
	}
}

// LoadOpenAPI reads and parses an interface document.
func LoadOpenAPI(path string) (*openapi.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var doc openapi.Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if !strings.HasPrefix(doc.OpenAPI, "3.0") && !strings.HasPrefix(doc.OpenAPI, "3.1") {
		return nil, fmt.Errorf("%s: unsupported openapi version %q, only 3.0.x and 3.1.x are supported", path, doc.OpenAPI)
	}

	if doc.Paths.Len() == 0 {
		return nil, fmt.Errorf("%s: document declares no paths", path)
	}

	return &doc, nil
}
