// Package construct provides the deployment-definition tree: an App roots
// one or more Stacks, and each construct registers the resources it owns
// with its Stack. Synthesis walks the tree and produces one CloudFormation
// template per stack.
package construct

import (
	"fmt"
	"strings"
	"unicode"

	sst "github.com/Tejasv446/serverless-stack"
)

// AppProps configures an App.
type AppProps struct {
	// Local marks the app as running in local development mode. Constructs
	// skip cloud-side build steps (such as schema codegen) in local mode.
	// Callers decide what triggers local mode; the CLI sets it from the
	// SST_LOCAL environment variable.
	Local bool
}

// App is the root of the deployment-definition tree.
type App struct {
	local  bool
	stacks []*Stack
}

// NewApp creates an empty app.
func NewApp(props AppProps) *App {
	return &App{local: props.Local}
}

// Local reports whether the app is in local development mode.
func (a *App) Local() bool {
	return a.local
}

// Stacks returns the stacks registered with the app, in creation order.
func (a *App) Stacks() []*Stack {
	return a.stacks
}

// Synth produces one template per stack, keyed by stack name.
func (a *App) Synth() (map[string]*sst.Template, error) {
	templates := make(map[string]*sst.Template, len(a.stacks))
	for _, stack := range a.stacks {
		templates[stack.Name()] = stack.Synth()
	}
	return templates, nil
}

// Stack owns an ordered set of resources and the metadata of the
// constructs that created them.
type Stack struct {
	app        *App
	name       string
	resources  map[string]sst.ResourceDef
	order      []string
	outputs    map[string]sst.Output
	constructs map[string]bool
	metadata   []sst.ConstructMetadata
}

// NewStack creates a stack and registers it with the app.
func NewStack(app *App, name string) *Stack {
	s := &Stack{
		app:        app,
		name:       name,
		resources:  make(map[string]sst.ResourceDef),
		outputs:    make(map[string]sst.Output),
		constructs: make(map[string]bool),
	}
	app.stacks = append(app.stacks, s)
	return s
}

// App returns the enclosing app.
func (s *Stack) App() *App {
	return s.app
}

// Name returns the stack name.
func (s *Stack) Name() string {
	return s.name
}

// Path returns the tree path of a construct inside this stack.
func (s *Stack) Path(id string) string {
	return s.name + "/" + id
}

// AddConstruct claims a construct ID within the stack. Construct IDs must
// be unique per stack.
func (s *Stack) AddConstruct(id string) error {
	if id == "" {
		return &sst.ConfigurationError{
			Construct: s.name,
			Field:     "id",
			Reason:    "construct id must not be empty",
		}
	}
	if s.constructs[id] {
		return &sst.ConfigurationError{
			Construct: s.Path(id),
			Field:     "id",
			Reason:    fmt.Sprintf("construct %q already exists in stack %q", id, s.name),
		}
	}
	s.constructs[id] = true
	return nil
}

// AddResource registers a resource under a logical ID. Logical IDs must
// be unique per stack.
func (s *Stack) AddResource(logicalID string, def sst.ResourceDef) error {
	if _, exists := s.resources[logicalID]; exists {
		return &sst.ConfigurationError{
			Construct: s.name,
			Field:     "logicalID",
			Reason:    fmt.Sprintf("resource %q already exists in stack %q", logicalID, s.name),
		}
	}
	s.resources[logicalID] = def
	s.order = append(s.order, logicalID)
	return nil
}

// Resource looks up a registered resource by logical ID.
func (s *Stack) Resource(logicalID string) (sst.ResourceDef, bool) {
	def, ok := s.resources[logicalID]
	return def, ok
}

// ResourceOrder returns logical IDs in registration order.
func (s *Stack) ResourceOrder() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// AddOutput registers a template output.
func (s *Stack) AddOutput(name string, out sst.Output) {
	s.outputs[name] = out
}

// AddMetadata records construct metadata for tooling consumers.
func (s *Stack) AddMetadata(md sst.ConstructMetadata) {
	s.metadata = append(s.metadata, md)
}

// Metadata returns all recorded construct metadata, in creation order.
func (s *Stack) Metadata() []sst.ConstructMetadata {
	out := make([]sst.ConstructMetadata, len(s.metadata))
	copy(out, s.metadata)
	return out
}

// Synth builds the stack's template.
func (s *Stack) Synth() *sst.Template {
	tmpl := &sst.Template{
		FormatVersion: "2010-09-09",
		Resources:     make(map[string]sst.ResourceDef, len(s.resources)),
	}
	for id, def := range s.resources {
		tmpl.Resources[id] = def
	}
	if len(s.outputs) > 0 {
		tmpl.Outputs = make(map[string]sst.Output, len(s.outputs))
		for name, out := range s.outputs {
			tmpl.Outputs[name] = out
		}
	}
	return tmpl
}

// LogicalID derives a CloudFormation logical ID from construct ID parts:
// non-alphanumeric characters are dropped and each part is capitalized.
func LogicalID(parts ...string) string {
	var sb strings.Builder
	for _, part := range parts {
		first := true
		for _, r := range part {
			if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
				first = true
				continue
			}
			if first {
				r = unicode.ToUpper(r)
				first = false
			}
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
