// Package arazzo provides the in-memory model of an Arazzo workflow document.
// Documents are produced by the loader package and treated as read-only by the
// graph and consistency engines.
package arazzo

import (
	"github.com/flowlint/flowlint/extensions"
	"gopkg.in/yaml.v3"
)

// Version is the major version line of the Arazzo Specification supported by this module.
const Version = "1.0.0"

// Arazzo is the root object of an Arazzo workflow document.
type Arazzo struct {
	// Arazzo is the version of the Arazzo Specification the document conforms to.
	Arazzo string `yaml:"arazzo"`
	// Info provides metadata about the document.
	Info Info `yaml:"info"`
	// SourceDescriptions lists the interface documents the workflows operate against.
	SourceDescriptions SourceDescriptions `yaml:"sourceDescriptions"`
	// Workflows is the list of workflows described by the document.
	Workflows Workflows `yaml:"workflows"`
	// Extensions holds any vendor extension fields on the document root, in document order.
	Extensions *extensions.Extensions `yaml:"-"`
}

// UnmarshalYAML decodes the document root, capturing vendor extensions.
func (a *Arazzo) UnmarshalYAML(node *yaml.Node) error {
	type plain Arazzo

	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}

	*a = Arazzo(p)
	a.Extensions = extensions.Collect(node)

	return nil
}

// MarshalYAML encodes the document root, re-appending vendor extensions in
// their original order.
func (a *Arazzo) MarshalYAML() (any, error) {
	type plain Arazzo
	return extensions.Marshal((*plain)(a), a.Extensions)
}

// Info provides metadata about an Arazzo document.
type Info struct {
	// Title is the title of the document.
	Title string `yaml:"title"`
	// Summary is a short summary of the document.
	Summary *string `yaml:"summary,omitempty"`
	// Description is a longer description of the document.
	Description *string `yaml:"description,omitempty"`
	// Version is the version of the document itself.
	Version string `yaml:"version"`
}

// SourceDescriptionType represents the type of document a source description points at.
type SourceDescriptionType string

const (
	// SourceDescriptionTypeOpenAPI indicates the source is an OpenAPI document.
	SourceDescriptionTypeOpenAPI SourceDescriptionType = "openapi"
	// SourceDescriptionTypeArazzo indicates the source is another Arazzo document.
	SourceDescriptionTypeArazzo SourceDescriptionType = "arazzo"
)

// SourceDescriptions is a list of SourceDescription objects.
type SourceDescriptions []*SourceDescription

// Find returns the first source description with the provided name, or nil.
func (s SourceDescriptions) Find(name string) *SourceDescription {
	for _, sd := range s {
		if sd.Name == name {
			return sd
		}
	}
	return nil
}

// SourceDescription is a named pointer from a workflow document to one interface document.
type SourceDescription struct {
	// Name is the unique name of the source description.
	Name string `yaml:"name"`
	// URL is the location of the referenced document. Remote resolution is not supported;
	// the loader resolves relative paths against the workflow document's directory.
	URL string `yaml:"url"`
	// Type is the type of the referenced document. Defaults to openapi.
	Type SourceDescriptionType `yaml:"type,omitempty"`
}
