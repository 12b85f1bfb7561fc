// Package function defines the Function construct: a deployable compute
// unit that API constructs bind their routes to.
package function

import (
	"github.com/Tejasv446/serverless-stack/construct"

	sst "github.com/Tejasv446/serverless-stack"
)

// Defaults applied when the corresponding Props field is zero.
const (
	DefaultRuntime    = "nodejs18.x"
	DefaultTimeout    = 10
	DefaultMemorySize = 1024
)

// Props configures a Function.
type Props struct {
	// Handler is the entry point, e.g. "src/server.handler". Required.
	Handler string
	// Runtime identifier. Defaults to DefaultRuntime.
	Runtime string
	// Timeout in seconds. Defaults to DefaultTimeout.
	Timeout int
	// MemorySize in MB. Defaults to DefaultMemorySize.
	MemorySize int
	// Environment variables passed to the handler.
	Environment map[string]string
}

// Function is a handler descriptor: an opaque reference to server-side
// logic that API constructs pass through unmodified.
type Function struct {
	stack     *construct.Stack
	id        string
	logicalID string
	props     Props
}

// New creates a Function and registers its resource with the stack.
func New(stack *construct.Stack, id string, props Props) (*Function, error) {
	if err := stack.AddConstruct(id); err != nil {
		return nil, err
	}
	if props.Handler == "" {
		return nil, &sst.ConfigurationError{
			Construct: stack.Path(id),
			Field:     "Handler",
			Reason:    "field is required",
		}
	}
	if props.Runtime == "" {
		props.Runtime = DefaultRuntime
	}
	if props.Timeout == 0 {
		props.Timeout = DefaultTimeout
	}
	if props.MemorySize == 0 {
		props.MemorySize = DefaultMemorySize
	}

	fn := &Function{
		stack:     stack,
		id:        id,
		logicalID: construct.LogicalID(id, "Function"),
		props:     props,
	}

	properties := map[string]any{
		"Handler":    props.Handler,
		"Runtime":    props.Runtime,
		"Timeout":    props.Timeout,
		"MemorySize": props.MemorySize,
	}
	if len(props.Environment) > 0 {
		vars := make(map[string]any, len(props.Environment))
		for k, v := range props.Environment {
			vars[k] = v
		}
		properties["Environment"] = map[string]any{"Variables": vars}
	}

	err := stack.AddResource(fn.logicalID, sst.ResourceDef{
		Type:       "AWS::Lambda::Function",
		Properties: properties,
	})
	if err != nil {
		return nil, err
	}

	stack.AddMetadata(fn.ConstructMetadata())
	return fn, nil
}

// ID returns the construct ID.
func (f *Function) ID() string {
	return f.id
}

// LogicalID returns the logical ID of the underlying resource.
func (f *Function) LogicalID() string {
	return f.logicalID
}

// Handler returns the configured entry point.
func (f *Function) Handler() string {
	return f.props.Handler
}

// Arn returns a GetAtt reference to the function's ARN.
func (f *Function) Arn() sst.AttrRef {
	return sst.AttrRef{Resource: f.logicalID, Attribute: "Arn"}
}

// ConstructMetadata exports the function's metadata.
func (f *Function) ConstructMetadata() sst.ConstructMetadata {
	return sst.ConstructMetadata{
		Type: "Function",
		Data: map[string]any{
			"handler": f.props.Handler,
			"runtime": f.props.Runtime,
		},
	}
}
