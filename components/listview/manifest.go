package listview

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	manifestVersionV1 = "1"
	// ManifestVersion exposes the current manifest format version for tooling.
	ManifestVersion = manifestVersionV1
)

// PageManifestDocument models a YAML/JSON manifest describing list pages.
type PageManifestDocument struct {
	Version string         `json:"version" yaml:"version"`
	Name    string         `json:"name,omitempty" yaml:"name,omitempty"`
	Pages   []ManifestPage `json:"pages" yaml:"pages"`
	Source  string         `json:"-" yaml:"-"`
}

// ManifestPage describes a single page entry within a manifest.
type ManifestPage struct {
	Definition  PageDefinition `json:"definition" yaml:"definition"`
	Maintainers []string       `json:"maintainers,omitempty" yaml:"maintainers,omitempty"`
	Tags        []string       `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// LoadManifestFile reads a manifest from disk, registers it against the
// registry, and returns the document.
func (r *Registry) LoadManifestFile(path string) (*PageManifestDocument, error) {
	doc, err := ReadManifest(path)
	if err != nil {
		return nil, err
	}
	if err := r.LoadManifestDocument(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// LoadManifestDocument registers definitions from a decoded manifest.
func (r *Registry) LoadManifestDocument(doc *PageManifestDocument) error {
	if doc == nil {
		return fmt.Errorf("listview: manifest document is nil")
	}
	for _, page := range doc.Pages {
		if err := r.RegisterDefinition(page.Definition); err != nil {
			return fmt.Errorf("listview: register page %s from %s: %w", page.Definition.Code, doc.Source, err)
		}
	}
	return nil
}

// ReadManifest loads a manifest file from disk without registering it.
func ReadManifest(path string) (*PageManifestDocument, error) {
	f, err := os.Open(path) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("listview: open manifest %s: %w", path, err)
	}
	defer f.Close()
	doc, err := DecodeManifest(f)
	if err != nil {
		return nil, fmt.Errorf("listview: decode manifest %s: %w", path, err)
	}
	doc.Source = path
	return doc, nil
}

// DecodeManifest reads a manifest from any reader.
func DecodeManifest(r io.Reader) (*PageManifestDocument, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	var doc PageManifestDocument
	if err := decoder.Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("listview: manifest is empty")
		}
		return nil, fmt.Errorf("listview: parse manifest: %w", err)
	}
	doc.applyDefaults()
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// WriteManifest serializes a manifest document to the given writer as YAML.
func WriteManifest(w io.Writer, doc *PageManifestDocument) error {
	if doc == nil {
		return fmt.Errorf("listview: manifest document is nil")
	}
	doc.applyDefaults()
	if err := doc.Validate(); err != nil {
		return err
	}
	encoder := yaml.NewEncoder(w)
	defer encoder.Close()
	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("listview: encode manifest: %w", err)
	}
	return nil
}

// Validate ensures the manifest satisfies required fields.
func (doc *PageManifestDocument) Validate() error {
	if doc.Version != manifestVersionV1 {
		return fmt.Errorf("listview: unsupported manifest version %q", doc.Version)
	}
	seen := make(map[string]struct{}, len(doc.Pages))
	for idx, page := range doc.Pages {
		if page.Definition.Code == "" {
			return fmt.Errorf("listview: manifest page at index %d is missing definition.code", idx)
		}
		if page.Definition.Name == "" {
			return fmt.Errorf("listview: manifest page %s missing definition.name", page.Definition.Code)
		}
		if page.Definition.Resource == "" {
			return fmt.Errorf("listview: manifest page %s missing definition.resource", page.Definition.Code)
		}
		if _, exists := seen[page.Definition.Code]; exists {
			return fmt.Errorf("listview: manifest duplicates page code %s", page.Definition.Code)
		}
		seen[page.Definition.Code] = struct{}{}
	}
	return nil
}

func (doc *PageManifestDocument) applyDefaults() {
	if doc.Version == "" {
		doc.Version = manifestVersionV1
	}
}
