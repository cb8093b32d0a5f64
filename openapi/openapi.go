// Package openapi provides the minimal view of an OpenAPI interface document
// needed to cross-validate workflows: the path → method → operation mapping
// and the parameter lists declared on each operation. Full document semantics
// (schemas, responses, references) are out of scope.
package openapi

import (
	"strings"

	"github.com/flowlint/flowlint/sequencedmap"
)

// HTTPMethod represents an HTTP method of a path item.
type HTTPMethod string

const (
	HTTPMethodGet     HTTPMethod = "GET"
	HTTPMethodPost    HTTPMethod = "POST"
	HTTPMethodPut     HTTPMethod = "PUT"
	HTTPMethodDelete  HTTPMethod = "DELETE"
	HTTPMethodPatch   HTTPMethod = "PATCH"
	HTTPMethodHead    HTTPMethod = "HEAD"
	HTTPMethodOptions HTTPMethod = "OPTIONS"
	HTTPMethodTrace   HTTPMethod = "TRACE"
)

// methodOrder is the fixed order path item operations are scanned in. First match wins.
var methodOrder = []HTTPMethod{
	HTTPMethodGet,
	HTTPMethodPost,
	HTTPMethodPut,
	HTTPMethodDelete,
	HTTPMethodPatch,
	HTTPMethodHead,
	HTTPMethodOptions,
	HTTPMethodTrace,
}

// Document is the consumed shape of an OpenAPI interface document.
type Document struct {
	// OpenAPI is the version of the OpenAPI Specification the document conforms to.
	OpenAPI string `yaml:"openapi"`
	// Info carries the document title and version.
	Info Info `yaml:"info"`
	// Paths maps path strings to their path items, in document order.
	Paths *sequencedmap.Map[string, *PathItem] `yaml:"paths"`
}

// Info carries interface-document metadata.
type Info struct {
	// Title is the title of the document.
	Title string `yaml:"title"`
	// Version is the version of the document.
	Version string `yaml:"version"`
}

// PathItem holds the operations declared for a single path.
type PathItem struct {
	Get     *Operation `yaml:"get,omitempty"`
	Post    *Operation `yaml:"post,omitempty"`
	Put     *Operation `yaml:"put,omitempty"`
	Delete  *Operation `yaml:"delete,omitempty"`
	Patch   *Operation `yaml:"patch,omitempty"`
	Head    *Operation `yaml:"head,omitempty"`
	Options *Operation `yaml:"options,omitempty"`
	Trace   *Operation `yaml:"trace,omitempty"`
}

// GetOperation returns the operation for the provided method, or nil.
// The method is matched case-insensitively.
func (p *PathItem) GetOperation(method string) *Operation {
	if p == nil {
		return nil
	}

	switch HTTPMethod(strings.ToUpper(method)) {
	case HTTPMethodGet:
		return p.Get
	case HTTPMethodPost:
		return p.Post
	case HTTPMethodPut:
		return p.Put
	case HTTPMethodDelete:
		return p.Delete
	case HTTPMethodPatch:
		return p.Patch
	case HTTPMethodHead:
		return p.Head
	case HTTPMethodOptions:
		return p.Options
	case HTTPMethodTrace:
		return p.Trace
	default:
		return nil
	}
}

// Operations iterates the declared operations of the path item in the fixed method order.
func (p *PathItem) Operations(yield func(method HTTPMethod, op *Operation) bool) {
	if p == nil {
		return
	}

	for _, method := range methodOrder {
		if op := p.GetOperation(string(method)); op != nil {
			if !yield(method, op) {
				return
			}
		}
	}
}

// Operation is an operation descriptor: an HTTP method+path pair declared in
// the interface document, optionally named by an operation id.
type Operation struct {
	// OperationID is the unique name of the operation within the document, if any.
	OperationID string `yaml:"operationId,omitempty"`
	// Summary is a short summary of the operation.
	Summary *string `yaml:"summary,omitempty"`
	// Description is a longer description of the operation.
	Description *string `yaml:"description,omitempty"`
	// Parameters lists the parameters declared on the operation.
	Parameters []*Parameter `yaml:"parameters,omitempty"`
}

// Parameter is a parameter declared on an operation.
type Parameter struct {
	// Name is the case sensitive name of the parameter.
	Name string `yaml:"name"`
	// In is the location of the parameter: query, header, path or cookie.
	In string `yaml:"in"`
	// Required indicates whether the parameter must be supplied.
	Required bool `yaml:"required,omitempty"`
}
