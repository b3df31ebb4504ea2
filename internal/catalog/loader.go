package catalog

import (
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/osse101/satchel/internal/validation"
)

//go:embed schema/*.json data/*.json
var embedded embed.FS

const defaultCatalogPath = "data/default_catalog.json"

// Loader handles loading and validating catalog files
type Loader interface {
	Load(path string) (*Catalog, error)
	Parse(data []byte, format string) (*Catalog, error)
}

type catalogLoader struct {
	schemaValidator validation.SchemaValidator
}

// NewLoader creates a Loader that validates against the embedded catalog schema
func NewLoader() Loader {
	return &catalogLoader{
		schemaValidator: validation.NewSchemaValidator(validation.WithSchemaFS(embedded)),
	}
}

// Default returns the catalog bundled with the binary
func Default() (*Catalog, error) {
	data, err := embedded.ReadFile(defaultCatalogPath)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgReadConfigFileFailed, err)
	}
	return NewLoader().Parse(data, "json")
}

// Load reads a catalog file; the format follows the extension (.yaml/.yml or JSON)
func (l *catalogLoader) Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgReadConfigFileFailed, err)
	}

	format := "json"
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		format = "yaml"
	}

	c, err := l.Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes, schema-validates and builds a catalog
func (l *catalogLoader) Parse(data []byte, format string) (*Catalog, error) {
	if format == "yaml" {
		// Normalize YAML to JSON so one schema covers both formats.
		var doc any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf(ErrMsgParseYAMLFailed, err)
		}
		converted, err := json.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf(ErrMsgParseYAMLFailed, err)
		}
		data = converted
	}

	if err := l.schemaValidator.ValidateBytes(data, SchemaPath); err != nil {
		return nil, fmt.Errorf("schema validation failed: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf(ErrMsgParseConfigFailed, err)
	}

	return New(&cfg)
}
