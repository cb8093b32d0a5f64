package loader

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/flowlint/flowlint/arazzo"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var inputsPrinter = message.NewPrinter(language.English)

// CompileInputsSchema compiles a workflow's input schema into a validator.
// Workflows without an input schema compile to nil.
func CompileInputsSchema(workflow *arazzo.Workflow) (*jsonschema.Schema, error) {
	if !workflow.HasInputs() {
		return nil, nil
	}

	doc, err := toJSONValue(workflow.Inputs)
	if err != nil {
		return nil, fmt.Errorf("workflow %q inputs schema is not valid json: %w", workflow.WorkflowID, err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("inputs.json", doc); err != nil {
		return nil, fmt.Errorf("workflow %q inputs schema is invalid: %w", workflow.WorkflowID, err)
	}

	schema, err := compiler.Compile("inputs.json")
	if err != nil {
		return nil, fmt.Errorf("workflow %q inputs schema is invalid: %w", workflow.WorkflowID, err)
	}

	return schema, nil
}

// ValidateInputs checks an input instance against a workflow's input schema.
// Workflows without an input schema accept any instance. Each returned error
// names the offending field.
func ValidateInputs(workflow *arazzo.Workflow, instance any) []error {
	schema, err := CompileInputsSchema(workflow)
	if err != nil {
		return []error{err}
	}
	if schema == nil {
		return nil
	}

	doc, err := toJSONValue(instance)
	if err != nil {
		return []error{fmt.Errorf("inputs are not valid json: %w", err)}
	}

	if err := schema.Validate(doc); err != nil {
		var validationErr *jsonschema.ValidationError
		if errors.As(err, &validationErr) {
			return rootCauses(validationErr)
		}
		return []error{err}
	}

	return nil
}

// toJSONValue round-trips a value through JSON so YAML-decoded documents
// (integer scalars, typed maps) take the shapes the schema validator expects.
func toJSONValue(v any) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	return jsonschema.UnmarshalJSON(bytes.NewReader(data))
}

// rootCauses flattens a validation error tree into its leaf findings.
func rootCauses(err *jsonschema.ValidationError) []error {
	if len(err.Causes) == 0 {
		field := "inputs"
		if len(err.InstanceLocation) > 0 {
			field += "." + strings.Join(err.InstanceLocation, ".")
		}
		return []error{fmt.Errorf("%s: %s", field, err.ErrorKind.LocalizedString(inputsPrinter))}
	}

	var errs []error
	for _, cause := range err.Causes {
		errs = append(errs, rootCauses(cause)...)
	}

	return errs
}
