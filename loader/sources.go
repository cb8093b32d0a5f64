package loader

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/flowlint/flowlint/arazzo"
	"github.com/flowlint/flowlint/openapi"
)

// SourceLoadError records a source description that could not be loaded.
// Broken sources do not abort loading: the remaining sources still resolve
// and validation reports what it can.
type SourceLoadError struct {
	// Name is the source description's name.
	Name string
	// URL is the source description's url as written in the document.
	URL string
	// Message describes why the source failed to load.
	Message string
}

func (e SourceLoadError) Error() string {
	return fmt.Sprintf("source %q (%s): %s", e.Name, e.URL, e.Message)
}

// LoadSources resolves and loads the interface documents named by a workflow
// document's source descriptions. Relative urls resolve against the workflow
// document's directory. Sources typed as anything other than openapi are
// skipped; an untyped source defaults to openapi.
func LoadSources(arazzoPath string, sources arazzo.SourceDescriptions) (*openapi.Resolver, []SourceLoadError) {
	baseDir := filepath.Dir(arazzoPath)
	resolver := openapi.NewResolver()

	var errs []SourceLoadError

	for _, source := range sources {
		if source.Type != "" && source.Type != arazzo.SourceDescriptionTypeOpenAPI {
			continue
		}

		path, err := resolveSourceURL(baseDir, source.URL)
		if err != nil {
			errs = append(errs, SourceLoadError{Name: source.Name, URL: source.URL, Message: err.Error()})
			continue
		}

		doc, err := LoadOpenAPI(path)
		if err != nil {
			errs = append(errs, SourceLoadError{Name: source.Name, URL: source.URL, Message: err.Error()})
			continue
		}

		resolver.AddDocument(source.Name, doc)
	}

	return resolver, errs
}

// resolveSourceURL turns a source description url into a local file path.
// Remote documents are not resolved.
func resolveSourceURL(baseDir, url string) (string, error) {
	if strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://") {
		return "", fmt.Errorf("remote source urls are not supported: %s", url)
	}

	if filepath.IsAbs(url) {
		return url, nil
	}

	return filepath.Join(baseDir, url), nil
}
