package arazzo

import (
	"fmt"

	"github.com/flowlint/flowlint/expression"
)

// In represents the location of a parameter within an operation.
type In string

const (
	// InPath indicates that the parameter is in the path of the request.
	InPath In = "path"
	// InQuery indicates that the parameter is in the query of the request.
	InQuery In = "query"
	// InHeader indicates that the parameter is in the header of the request.
	InHeader In = "header"
	// InCookie indicates that the parameter is in the cookie of the request.
	InCookie In = "cookie"
)

// ValueOrExpression is either a literal value or a runtime expression string.
type ValueOrExpression = any

// Parameter represents a parameter passed to the workflow or operation referenced by a step.
type Parameter struct {
	// Name is the case sensitive name of the parameter.
	Name string `yaml:"name"`
	// In is the location of the parameter within the operation.
	In In `yaml:"in,omitempty"`
	// Value is the static value of the parameter or a runtime expression evaluated at execution time.
	Value ValueOrExpression `yaml:"value"`
}

// ValueText returns the parameter value rendered as a string for expression scanning.
func (p *Parameter) ValueText() string {
	if p == nil || p.Value == nil {
		return ""
	}

	if s, ok := p.Value.(string); ok {
		return s
	}

	return fmt.Sprintf("%v", p.Value)
}

// IsExpressionValue reports whether the parameter value is a runtime expression.
func (p *Parameter) IsExpressionValue() bool {
	if p == nil {
		return false
	}

	s, ok := p.Value.(string)
	return ok && expression.Expression(s).IsExpression()
}
