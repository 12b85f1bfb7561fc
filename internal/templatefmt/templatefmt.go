// Package templatefmt encodes and decodes synthesized templates.
package templatefmt

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	sst "github.com/Tejasv446/serverless-stack"
)

// ToJSON serializes the template to indented JSON.
func ToJSON(t *sst.Template) ([]byte, error) {
	return json.MarshalIndent(t, "", "  ")
}

// ToYAML serializes the template to YAML.
func ToYAML(t *sst.Template) ([]byte, error) {
	return yaml.Marshal(t)
}

// Encode picks the encoder by format name ("json" or "yaml").
func Encode(t *sst.Template, format string) ([]byte, error) {
	switch format {
	case "json":
		return ToJSON(t)
	case "yaml", "yml":
		return ToYAML(t)
	default:
		return nil, fmt.Errorf("unknown format: %s", format)
	}
}

// ParseFile reads a template file, picking the decoder from the file
// extension (.json, .yaml, .yml).
func ParseFile(path string) (*sst.Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading template: %w", err)
	}

	var tmpl sst.Template
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(data, &tmpl); err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &tmpl); err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported template extension: %s", path)
	}
	return &tmpl, nil
}
