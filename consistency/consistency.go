// Package consistency cross-validates a workflow document against the
// interface documents it references. Validation runs in four ordered phases:
// operation references, parameter compatibility, data dependencies and
// ordering, and schemas. Findings accumulate into a Result; the engine never
// logs or halts, with one exception: when the first phase finds a broken
// operation reference the remaining phases are skipped, since comparing
// parameters or payloads against an operation that does not exist is
// meaningless.
package consistency

import (
	"github.com/flowlint/flowlint/arazzo"
	"github.com/flowlint/flowlint/openapi"
)

// Validator validates a workflow document against the union of the loaded
// interface documents. Construction is cheap; a Validator holds only
// references to its immutable inputs, so one can be built per request.
type Validator struct {
	arazzo   *arazzo.Arazzo
	resolver *openapi.Resolver
}

// NewValidator creates a validator for the provided workflow document and
// interface-document resolver.
func NewValidator(doc *arazzo.Arazzo, resolver *openapi.Resolver) *Validator {
	return &Validator{arazzo: doc, resolver: resolver}
}

// Validate runs all four phases and returns the accumulated findings.
func (v *Validator) Validate() Result {
	result := Result{IsValid: true}

	errs, warns := v.validateOperations()
	result.Errors = append(result.Errors, errs...)
	result.Warnings = append(result.Warnings, warns...)

	if len(result.Errors) > 0 {
		result.IsValid = false
		return result
	}

	errs, warns = v.validateParameters()
	result.Errors = append(result.Errors, errs...)
	result.Warnings = append(result.Warnings, warns...)

	errs, warns = v.validateDependencies()
	result.Errors = append(result.Errors, errs...)
	result.Warnings = append(result.Warnings, warns...)

	errs, warns = v.validateSchemas()
	result.Errors = append(result.Errors, errs...)
	result.Warnings = append(result.Warnings, warns...)

	result.IsValid = len(result.Errors) == 0

	return result
}

// operationForStep resolves the operation a step references, by id or by
// "METHOD /path" pair. Steps referencing another workflow resolve to nothing.
func (v *Validator) operationForStep(step *arazzo.Step) (openapi.OperationRef, *openapi.Operation, bool) {
	if step.OperationID != nil {
		return v.resolver.FindOperationByID(*step.OperationID)
	}

	if step.OperationPath != nil {
		return v.resolver.FindOperationByPathRef(*step.OperationPath)
	}

	return openapi.OperationRef{}, nil, false
}
