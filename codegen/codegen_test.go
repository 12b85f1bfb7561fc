package codegen

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validSchema = `
type Query {
  notes: [String!]!
}

type Mutation {
  createNote(text: String!): String!
}
`

// writeCodegenFixture writes a codegen config plus schema into a temp dir
// and returns the config path.
func writeCodegenFixture(t *testing.T, schema string) string {
	t.Helper()
	dir := t.TempDir()

	schemaPath := filepath.Join(dir, "schema.graphql")
	require.NoError(t, os.WriteFile(schemaPath, []byte(schema), 0644))

	configPath := filepath.Join(dir, "codegen.yml")
	config := heredoc.Doc(`
		schema: schema.graphql
		generates:
		  src/generated/graphql.ts:
		    plugins:
		      - typescript
	`)
	require.NoError(t, os.WriteFile(configPath, []byte(config), 0644))
	return configPath
}

func TestLoadConfig(t *testing.T) {
	configPath := writeCodegenFixture(t, validSchema)

	cfg, err := LoadConfig(configPath)
	require.NoError(t, err)
	assert.Equal(t, "schema.graphql", cfg.Schema)
	assert.Contains(t, cfg.Generates, "src/generated/graphql.ts")
}

func TestLoadConfig_Missing(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)
}

func TestValidateSchema(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "schema.graphql")
	require.NoError(t, os.WriteFile(path, []byte(validSchema), 0644))

	assert.NoError(t, ValidateSchema(path))
}

func TestValidateSchema_Invalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "schema.graphql")
	broken := heredoc.Doc(`
		type Query {
		  notes: [Missing!]!
		}
	`)
	require.NoError(t, os.WriteFile(path, []byte(broken), 0644))

	err := ValidateSchema(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid schema")
}

func TestRunner_Run(t *testing.T) {
	configPath := writeCodegenFixture(t, validSchema)

	r := &Runner{Tool: "true"}
	assert.NoError(t, r.Run(context.Background(), configPath))
}

func TestRunner_Run_ToolFails(t *testing.T) {
	configPath := writeCodegenFixture(t, validSchema)

	r := &Runner{Tool: "false"}
	err := r.Run(context.Background(), configPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "false -c")
}

func TestRunner_Run_SchemaErrorBeforeTool(t *testing.T) {
	configPath := writeCodegenFixture(t, "type Query { broken }")

	// The tool would succeed; the run must still fail on the schema.
	r := &Runner{Tool: "true"}
	err := r.Run(context.Background(), configPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid schema")
}

func TestRunner_Run_MissingTool(t *testing.T) {
	configPath := writeCodegenFixture(t, validSchema)

	r := &Runner{Tool: "definitely-not-a-real-codegen-tool"}
	assert.Error(t, r.Run(context.Background(), configPath))
}

func TestLocalSchemaPath(t *testing.T) {
	configPath := writeCodegenFixture(t, validSchema)
	dir := filepath.Dir(configPath)

	tests := []struct {
		name     string
		schema   string
		expected string
	}{
		{
			name:     "relative file",
			schema:   "schema.graphql",
			expected: filepath.Join(dir, "schema.graphql"),
		},
		{
			name:     "url skipped",
			schema:   "https://example.com/graphql",
			expected: "",
		},
		{
			name:     "glob skipped",
			schema:   "src/**/*.graphql",
			expected: "",
		},
		{
			name:     "missing file skipped",
			schema:   "other.graphql",
			expected: "",
		},
		{
			name:     "empty",
			schema:   "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, localSchemaPath(configPath, tt.schema))
		})
	}
}
