package arazzo

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/flowlint/flowlint/expression"
	"github.com/speakeasy-api/jsonpath/pkg/jsonpath"
)

// CriterionType represents the type of a success criterion condition.
type CriterionType string

const (
	// CriterionTypeSimple indicates a simple comparison condition.
	CriterionTypeSimple CriterionType = "simple"
	// CriterionTypeRegex indicates a regular expression condition.
	CriterionTypeRegex CriterionType = "regex"
	// CriterionTypeJSONPath indicates a JSONPath condition.
	CriterionTypeJSONPath CriterionType = "jsonpath"
	// CriterionTypeXPath indicates an XPath condition.
	CriterionTypeXPath CriterionType = "xpath"
)

// Criterion represents a condition evaluated against a step's outcome, such as
// asserting on the response status code or a response body field.
type Criterion struct {
	// Context is the runtime expression the condition is evaluated against, e.g. "$statusCode".
	Context expression.Expression `yaml:"context,omitempty"`
	// Condition is the condition to evaluate, e.g. "$statusCode == 200".
	Condition string `yaml:"condition"`
	// Value is the optional expected value compared against the context.
	Value any `yaml:"value,omitempty"`
	// Type is the type of the condition. Defaults to simple.
	Type CriterionType `yaml:"type,omitempty"`
}

// GetType returns the effective type of the criterion.
func (c *Criterion) GetType() CriterionType {
	if c == nil || c.Type == "" {
		return CriterionTypeSimple
	}
	return c.Type
}

// Validate checks that the criterion's condition is well formed for its type.
func (c *Criterion) Validate() []error {
	errs := []error{}

	if c.Condition == "" {
		errs = append(errs, fmt.Errorf("condition is required"))
	}

	switch c.GetType() {
	case CriterionTypeSimple:
	case CriterionTypeRegex:
		if _, err := regexp.Compile(c.Condition); err != nil {
			errs = append(errs, fmt.Errorf("invalid regex condition: %s", err.Error()))
		}
	case CriterionTypeJSONPath:
		if _, err := jsonpath.NewPath(c.Condition); err != nil {
			errs = append(errs, fmt.Errorf("invalid jsonpath condition: %s", err))
		}
	case CriterionTypeXPath:
	default:
		errs = append(errs, fmt.Errorf("type must be one of [%s]: %s", strings.Join([]string{
			string(CriterionTypeSimple),
			string(CriterionTypeRegex),
			string(CriterionTypeJSONPath),
			string(CriterionTypeXPath),
		}, ", "), c.Type))
	}

	return errs
}

// Text returns the textual content of the criterion for expression scanning.
func (c *Criterion) Text() string {
	if c == nil {
		return ""
	}

	parts := []string{string(c.Context), c.Condition}
	if s, ok := c.Value.(string); ok {
		parts = append(parts, s)
	}

	return strings.Join(parts, " ")
}
