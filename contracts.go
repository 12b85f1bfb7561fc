// Package sst provides Go constructs for defining serverless application
// infrastructure.
//
// Applications compose constructs into a tree rooted at an App:
//
//	app := construct.NewApp(construct.AppProps{})
//	stack := construct.NewStack(app, "my-stack")
//
//	server, _ := function.New(stack, "Server", function.Props{
//	    Handler: "src/server.handler",
//	})
//
//	graphqlapi.New(ctx, stack, "Api", graphqlapi.Props{
//	    Server:   server,
//	    RootPath: "/graphql",
//	})
//
// Calling app.Synth() produces one CloudFormation template document per
// stack. The sst CLI builds, lints, graphs, and watches those templates.
package sst

import "encoding/json"

// Template is a synthesized CloudFormation template document.
type Template struct {
	FormatVersion string                 `json:"AWSTemplateFormatVersion" yaml:"AWSTemplateFormatVersion"`
	Description   string                 `json:"Description,omitempty" yaml:"Description,omitempty"`
	Parameters    map[string]Parameter   `json:"Parameters,omitempty" yaml:"Parameters,omitempty"`
	Resources     map[string]ResourceDef `json:"Resources" yaml:"Resources"`
	Outputs       map[string]Output      `json:"Outputs,omitempty" yaml:"Outputs,omitempty"`
}

// ResourceDef is a single resource in a synthesized template.
type ResourceDef struct {
	Type       string         `json:"Type" yaml:"Type"`
	Properties map[string]any `json:"Properties,omitempty" yaml:"Properties,omitempty"`
	DependsOn  []string       `json:"DependsOn,omitempty" yaml:"DependsOn,omitempty"`
}

// Parameter is a template parameter.
type Parameter struct {
	Type          string   `json:"Type" yaml:"Type"`
	Description   string   `json:"Description,omitempty" yaml:"Description,omitempty"`
	Default       any      `json:"Default,omitempty" yaml:"Default,omitempty"`
	AllowedValues []string `json:"AllowedValues,omitempty" yaml:"AllowedValues,omitempty"`
}

// Output is a template output.
type Output struct {
	Description string `json:"Description,omitempty" yaml:"Description,omitempty"`
	Value       any    `json:"Value" yaml:"Value"`
}

// Ref references another resource by logical ID.
// Serializes to {"Ref": "LogicalId"}.
type Ref struct {
	Resource string
}

// MarshalJSON serializes Ref to CloudFormation Ref syntax.
func (r Ref) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]string{"Ref": r.Resource})
}

// MarshalYAML serializes Ref to CloudFormation Ref syntax.
func (r Ref) MarshalYAML() (any, error) {
	return map[string]string{"Ref": r.Resource}, nil
}

// AttrRef is a GetAtt reference to a resource attribute.
//
// When serialized, AttrRef becomes:
//
//	{"Fn::GetAtt": ["ServerFunction", "Arn"]}
type AttrRef struct {
	// Resource is the logical ID of the referenced resource
	Resource string
	// Attribute is the attribute name (e.g., "Arn")
	Attribute string
}

// MarshalJSON serializes AttrRef to CloudFormation GetAtt syntax.
func (a AttrRef) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string][]string{
		"Fn::GetAtt": {a.Resource, a.Attribute},
	})
}

// MarshalYAML serializes AttrRef to CloudFormation GetAtt syntax.
func (a AttrRef) MarshalYAML() (any, error) {
	return map[string][]string{
		"Fn::GetAtt": {a.Resource, a.Attribute},
	}, nil
}

// IsZero returns true if the AttrRef has not been populated.
func (a AttrRef) IsZero() bool {
	return a.Resource == "" && a.Attribute == ""
}

// Join is the Fn::Join intrinsic.
type Join struct {
	Delimiter string
	Values    []any
}

// MarshalJSON serializes Join to CloudFormation Fn::Join syntax.
func (j Join) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string][]any{
		"Fn::Join": {j.Delimiter, j.Values},
	})
}

// MarshalYAML serializes Join to CloudFormation Fn::Join syntax.
func (j Join) MarshalYAML() (any, error) {
	return map[string][]any{
		"Fn::Join": {j.Delimiter, j.Values},
	}, nil
}

// Sub is the Fn::Sub intrinsic.
type Sub struct {
	String string
}

// MarshalJSON serializes Sub to CloudFormation Fn::Sub syntax.
func (s Sub) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]string{"Fn::Sub": s.String})
}

// MarshalYAML serializes Sub to CloudFormation Fn::Sub syntax.
func (s Sub) MarshalYAML() (any, error) {
	return map[string]string{"Fn::Sub": s.String}, nil
}

// ConstructMetadata describes a construct for tooling and introspection
// consumers. Each construct type decides what goes in Data.
type ConstructMetadata struct {
	Type string         `json:"type" yaml:"type"`
	Data map[string]any `json:"data" yaml:"data"`
}

// BuildResult is the JSON result summary `sst build` writes next to the
// synthesized templates, one entry in Stacks per stack.
type BuildResult struct {
	Success   bool                 `json:"success"`
	Stacks    map[string]*Template `json:"stacks,omitempty"`
	Resources []string             `json:"resources,omitempty"`
	Errors    []string             `json:"errors,omitempty"`
}

// LintResult is the JSON output from `sst lint`.
type LintResult struct {
	Success bool        `json:"success"`
	Issues  []LintIssue `json:"issues,omitempty"`
}

// LintIssue is a single linting issue.
type LintIssue struct {
	File     string `json:"file"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	Severity string `json:"severity"` // "error", "warning", "info"
	Message  string `json:"message"`
	Rule     string `json:"rule"`
}
