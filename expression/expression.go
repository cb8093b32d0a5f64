// Package expression implements the runtime expression grammar shared by the
// workflow documents and the validators. Runtime expressions are `$`-prefixed
// references that are resolved when a workflow executes:
//
//	$inputs.<dotted.path>                    workflow input field
//	$steps.<stepId>.outputs.<dotted.path>    output field of a named step
//	$response.body.<dotted.path>             current response body field
//	$response.header.<name>                  current response header
//	$statusCode                              current response status code
//
// Classification is total: strings not beginning with `$` are literals and any
// other `$`-prefixed form degrades to an unrecognized reference rather than
// erroring.
package expression

import "strings"

// ReferenceKind represents the classified form of a runtime expression.
type ReferenceKind string

const (
	// KindLiteral indicates the value is not a runtime expression at all.
	KindLiteral ReferenceKind = "literal"
	// KindInput indicates a reference to a workflow input field.
	KindInput ReferenceKind = "inputs"
	// KindStepOutput indicates a reference to an output field of a named step.
	KindStepOutput ReferenceKind = "stepOutput"
	// KindResponseBody indicates a reference to a field of the current response body.
	KindResponseBody ReferenceKind = "responseBody"
	// KindResponseHeader indicates a reference to a header of the current response.
	KindResponseHeader ReferenceKind = "responseHeader"
	// KindStatusCode indicates a reference to the current response status code.
	KindStatusCode ReferenceKind = "statusCode"
	// KindUnrecognized indicates a `$`-prefixed value matching no documented form.
	KindUnrecognized ReferenceKind = "unrecognized"
)

// Reference is a classified runtime expression.
type Reference struct {
	// Kind is the classified form of the expression.
	Kind ReferenceKind
	// StepID is the referenced step for KindStepOutput.
	StepID string
	// Field is the dotted field path for KindInput, KindStepOutput and KindResponseBody.
	Field string
	// Name is the header name for KindResponseHeader.
	Name string
	// Raw is the original expression text.
	Raw string
}

// Expression represents a runtime expression as it appears in a document.
type Expression string

// IsExpression returns true if the value begins with the `$` expression marker.
// Values that are not expressions are literals.
func (e Expression) IsExpression() bool {
	return strings.HasPrefix(string(e), "$")
}

// Classify returns the classified form of the expression.
func (e Expression) Classify() Reference {
	return Classify(string(e))
}

// Classify classifies a single string as one of the runtime expression forms.
// It is a pure function of its input and never fails.
func Classify(s string) Reference {
	ref := Reference{Kind: KindUnrecognized, Raw: s}

	if !strings.HasPrefix(s, "$") {
		ref.Kind = KindLiteral
		return ref
	}

	if s == "$statusCode" {
		ref.Kind = KindStatusCode
		return ref
	}

	switch {
	case strings.HasPrefix(s, "$inputs."):
		if field := s[len("$inputs."):]; validFieldPath(field) {
			ref.Kind = KindInput
			ref.Field = field
		}
	case strings.HasPrefix(s, "$steps."):
		stepID, field, ok := strings.Cut(s[len("$steps."):], ".outputs.")
		if ok && validName(stepID) && validFieldPath(field) {
			ref.Kind = KindStepOutput
			ref.StepID = stepID
			ref.Field = field
		}
	case strings.HasPrefix(s, "$response.body."):
		if field := s[len("$response.body."):]; validFieldPath(field) {
			ref.Kind = KindResponseBody
			ref.Field = field
		}
	case strings.HasPrefix(s, "$response.header."):
		if name := s[len("$response.header."):]; validName(name) {
			ref.Kind = KindResponseHeader
			ref.Name = name
		}
	}

	return ref
}

// validName reports whether s is a single non-empty name segment.
func validName(s string) bool {
	if s == "" {
		return false
	}

	for _, r := range s {
		if !isNameRune(r) || r == '.' {
			return false
		}
	}

	return true
}

// validFieldPath reports whether s is a non-empty dotted path with no empty segments.
func validFieldPath(s string) bool {
	if s == "" {
		return false
	}

	for _, part := range strings.Split(s, ".") {
		if part == "" {
			return false
		}

		for _, r := range part {
			if !isNameRune(r) {
				return false
			}
		}
	}

	return true
}

func isNameRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z':
		return true
	case r >= 'A' && r <= 'Z':
		return true
	case r >= '0' && r <= '9':
		return true
	case r == '_' || r == '-' || r == '.':
		return true
	default:
		return false
	}
}
