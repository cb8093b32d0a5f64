package openapi

import (
	"strings"

	"github.com/flowlint/flowlint/sequencedmap"
)

// OperationRef locates an operation within the set of loaded documents.
type OperationRef struct {
	// SourceName is the name of the source description the operation was found in.
	SourceName string
	// Method is the uppercased HTTP method of the operation.
	Method string
	// Path is the path the operation is declared under.
	Path string
}

// Resolver answers operation lookups across multiple loaded interface
// documents, keyed by source name. A workflow's source descriptions may span
// several documents, so lookups run against the union of all of them in the
// order they were added.
type Resolver struct {
	documents *sequencedmap.Map[string, *Document]
}

// NewResolver creates an empty resolver.
func NewResolver() *Resolver {
	return &Resolver{
		documents: sequencedmap.New[string, *Document](),
	}
}

// AddDocument registers a document under the provided source name.
// Adding a document under an existing name replaces it.
func (r *Resolver) AddDocument(name string, doc *Document) {
	r.documents.Set(name, doc)
}

// GetDocument returns the document registered under the provided source name.
func (r *Resolver) GetDocument(name string) (*Document, bool) {
	return r.documents.Get(name)
}

// SourceNames returns the registered source names in the order they were added.
func (r *Resolver) SourceNames() []string {
	names := make([]string, 0, r.documents.Len())
	for name := range r.documents.Keys() {
		names = append(names, name)
	}
	return names
}

// Len returns the number of registered documents.
func (r *Resolver) Len() int {
	return r.documents.Len()
}

// FindOperationByID locates an operation by its operation id across all
// loaded documents. Documents are scanned in registration order and path
// items in document order; the first match wins.
func (r *Resolver) FindOperationByID(operationID string) (OperationRef, *Operation, bool) {
	if r == nil || operationID == "" {
		return OperationRef{}, nil, false
	}

	for sourceName, doc := range r.documents.All() {
		for path, pathItem := range doc.Paths.All() {
			var foundRef OperationRef
			var foundOp *Operation

			pathItem.Operations(func(method HTTPMethod, op *Operation) bool {
				if op.OperationID == operationID {
					foundRef = OperationRef{SourceName: sourceName, Method: string(method), Path: path}
					foundOp = op
					return false
				}
				return true
			})

			if foundOp != nil {
				return foundRef, foundOp, true
			}
		}
	}

	return OperationRef{}, nil, false
}

// FindOperationByPath locates an operation by path and method across all
// loaded documents. The method is matched case-insensitively.
func (r *Resolver) FindOperationByPath(path, method string) (OperationRef, *Operation, bool) {
	if r == nil {
		return OperationRef{}, nil, false
	}

	for sourceName, doc := range r.documents.All() {
		pathItem, ok := doc.Paths.Get(path)
		if !ok {
			continue
		}

		if op := pathItem.GetOperation(method); op != nil {
			ref := OperationRef{SourceName: sourceName, Method: strings.ToUpper(method), Path: path}
			return ref, op, true
		}
	}

	return OperationRef{}, nil, false
}

// FindOperationByPathRef locates an operation from a "METHOD /path" reference,
// e.g. "GET /users/{id}". Malformed references resolve to nothing.
func (r *Resolver) FindOperationByPathRef(operationPath string) (OperationRef, *Operation, bool) {
	method, path, ok := strings.Cut(operationPath, " ")
	if !ok || method == "" || path == "" {
		return OperationRef{}, nil, false
	}

	return r.FindOperationByPath(path, method)
}
