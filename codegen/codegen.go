// Package codegen runs the schema-codegen step for GraphQL API constructs.
//
// A codegen config file points at a GraphQL schema and a set of generation
// targets. Run validates the schema locally with gqlparser, then invokes
// the external codegen tool:
//
//	graphql-codegen -c <configPath>
//
// The tool inherits the caller's stdio; a nonzero exit fails the run.
package codegen

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
	"gopkg.in/yaml.v3"

	"github.com/Tejasv446/serverless-stack/internal/log"
)

// DefaultTool is the codegen executable invoked when Runner.Tool is empty.
const DefaultTool = "graphql-codegen"

// Config is the subset of the codegen config file this package reads.
type Config struct {
	// Schema is the path (or URL) of the GraphQL schema.
	Schema string `yaml:"schema"`
	// Generates maps output paths to generator settings. The settings are
	// opaque to this package; only the keys matter for reporting.
	Generates map[string]any `yaml:"generates"`
}

// LoadConfig parses a codegen config file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading codegen config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing codegen config %s: %w", path, err)
	}
	return &cfg, nil
}

// ValidateSchema parses the GraphQL schema at path and reports any schema
// errors before the external tool ever runs.
func ValidateSchema(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading schema: %w", err)
	}
	_, gqlErr := gqlparser.LoadSchema(&ast.Source{
		Name:  path,
		Input: string(data),
	})
	if gqlErr != nil {
		return fmt.Errorf("invalid schema %s: %w", path, gqlErr)
	}
	return nil
}

// Runner invokes the external codegen tool.
type Runner struct {
	// Tool is the codegen executable. Defaults to DefaultTool.
	Tool string
	// Stdin, Stdout, Stderr are passed to the tool. They default to the
	// process's own streams so the tool's output reaches the terminal.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Run executes the codegen step for the given config file: load the
// config, validate the schema it references (when it is a local file),
// then invoke the tool synchronously. It blocks until the tool exits.
func (r *Runner) Run(ctx context.Context, configPath string) error {
	logger := log.FromContext(ctx)

	cfg, err := LoadConfig(configPath)
	if err != nil {
		return err
	}

	if schema := localSchemaPath(configPath, cfg.Schema); schema != "" {
		logger.V(1).Info("validating schema", "schema", schema)
		if err := ValidateSchema(schema); err != nil {
			return err
		}
	}

	tool := r.Tool
	if tool == "" {
		tool = DefaultTool
	}

	logger.Info("running codegen", "tool", tool, "config", configPath)
	cmd := exec.CommandContext(ctx, tool, "-c", configPath)
	cmd.Stdin = r.Stdin
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr
	if cmd.Stdin == nil {
		cmd.Stdin = os.Stdin
	}
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s -c %s: %w", tool, configPath, err)
	}
	return nil
}

// localSchemaPath resolves the config's schema reference to a local file
// path, or "" when the schema is remote or missing. Remote schemas and
// globs are left to the tool itself.
func localSchemaPath(configPath, schema string) string {
	if schema == "" {
		return ""
	}
	if strings.Contains(schema, "://") || strings.ContainsAny(schema, "*?[") {
		return ""
	}
	path := schema
	if !filepath.IsAbs(path) {
		path = filepath.Join(filepath.Dir(configPath), path)
	}
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}
