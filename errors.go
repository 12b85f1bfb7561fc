package sst

import "fmt"

// ConfigurationError reports invalid construct configuration: a missing
// required field or a field that conflicts with another. It is raised
// before any resource is added to the stack.
type ConfigurationError struct {
	// Construct is the path of the construct that rejected the configuration.
	Construct string
	// Field is the offending configuration field.
	Field string
	// Reason explains what is wrong and how to fix it.
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s: invalid configuration for %q: %s", e.Construct, e.Field, e.Reason)
}

// CodegenError reports a failed schema-codegen step during construction.
// The codegen tool's own output goes to the inherited stdio streams; this
// error names the construct that triggered the run.
type CodegenError struct {
	Construct string
	Err       error
}

func (e *CodegenError) Error() string {
	return fmt.Sprintf("%s: codegen failed: %v", e.Construct, e.Err)
}

func (e *CodegenError) Unwrap() error {
	return e.Err
}

// InternalConsistencyError indicates a defect: construct bookkeeping
// reached a state that construction should have made impossible. It is
// not a user error and should surface loudly.
type InternalConsistencyError struct {
	Construct string
	Detail    string
}

func (e *InternalConsistencyError) Error() string {
	return fmt.Sprintf("%s: internal consistency error: %s", e.Construct, e.Detail)
}
