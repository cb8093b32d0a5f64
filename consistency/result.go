package consistency

import (
	"fmt"
	"strings"
)

// ErrorType classifies a consistency error. The enumeration is closed;
// several members are reserved for checks that are not populated yet.
type ErrorType string

const (
	ErrorTypeOperationIDNotFound       ErrorType = "OperationIdNotFound"
	ErrorTypeOperationPathNotFound     ErrorType = "OperationPathNotFound"
	ErrorTypeWorkflowRefNotFound       ErrorType = "WorkflowRefNotFound"
	ErrorTypeRequiredParameterMissing  ErrorType = "RequiredParameterMissing"
	ErrorTypeParameterTypeMismatch     ErrorType = "ParameterTypeMismatch"
	ErrorTypeParameterLocationMismatch ErrorType = "ParameterLocationMismatch"
	ErrorTypeInvalidStepReference      ErrorType = "InvalidStepReference"
	ErrorTypeStepOrderViolation        ErrorType = "StepOrderViolation"
	ErrorTypeInvalidInputReference     ErrorType = "InvalidInputReference"
	ErrorTypeInvalidResponseRefContext ErrorType = "InvalidResponseRefContext"
	ErrorTypeRequestBodySchemaMismatch ErrorType = "RequestBodySchemaMismatch"
	ErrorTypeResponseSchemaMismatch    ErrorType = "ResponseSchemaMismatch"
)

// Error is a classified consistency finding fatal to the workflow.
type Error struct {
	// WorkflowID is the workflow the finding belongs to, if any.
	WorkflowID string
	// StepID is the step the finding belongs to, if any.
	StepID string
	// SourceName is the source description involved, if any.
	SourceName string
	// Type classifies the error.
	Type ErrorType
	// Message is the human-readable description of the finding.
	Message string
	// FilePath and LineNumber locate the finding in the source document when known.
	FilePath   string
	LineNumber int
}

// String renders the error with its location context for diagnostic output.
func (e Error) String() string {
	var parts []string

	if e.FilePath != "" && e.LineNumber > 0 {
		parts = append(parts, fmt.Sprintf("%s:%d", e.FilePath, e.LineNumber))
	}
	if e.SourceName != "" {
		parts = append(parts, fmt.Sprintf("[source: %s]", e.SourceName))
	}
	parts = append(parts, context(e.WorkflowID, e.StepID)...)
	parts = append(parts, e.Message)

	return strings.Join(parts, " ")
}

// Warning is an advisory consistency finding.
type Warning struct {
	// WorkflowID is the workflow the finding belongs to, if any.
	WorkflowID string
	// StepID is the step the finding belongs to, if any.
	StepID string
	// Message is the human-readable description of the finding.
	Message string
	// FilePath and LineNumber locate the finding in the source document when known.
	FilePath   string
	LineNumber int
}

// String renders the warning with its location context for diagnostic output.
func (w Warning) String() string {
	var parts []string

	if w.FilePath != "" && w.LineNumber > 0 {
		parts = append(parts, fmt.Sprintf("%s:%d", w.FilePath, w.LineNumber))
	}
	parts = append(parts, context(w.WorkflowID, w.StepID)...)
	parts = append(parts, w.Message)

	return strings.Join(parts, " ")
}

func context(workflowID, stepID string) []string {
	switch {
	case workflowID != "" && stepID != "":
		return []string{fmt.Sprintf("[workflow: %s, step: %s]", workflowID, stepID)}
	case workflowID != "":
		return []string{fmt.Sprintf("[workflow: %s]", workflowID)}
	case stepID != "":
		return []string{fmt.Sprintf("[step: %s]", stepID)}
	default:
		return nil
	}
}

// Result accumulates the findings of a consistency validation run.
type Result struct {
	// IsValid is true when no errors were found. Warnings do not affect it.
	IsValid bool
	// Errors lists the classified errors, in phase then document order.
	Errors []Error
	// Warnings lists the advisory findings, in phase then document order.
	Warnings []Warning
}
