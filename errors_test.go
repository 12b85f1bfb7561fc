package sst

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigurationError_Error(t *testing.T) {
	err := &ConfigurationError{
		Construct: "my-stack/Api",
		Field:     "Server",
		Reason:    "field is required",
	}

	assert.Contains(t, err.Error(), "my-stack/Api")
	assert.Contains(t, err.Error(), "Server")
	assert.Contains(t, err.Error(), "field is required")
}

func TestConfigurationError_As(t *testing.T) {
	var err error = fmt.Errorf("constructing api: %w", &ConfigurationError{
		Construct: "my-stack/Api",
		Field:     "Routes",
		Reason:    "use Server instead",
	})

	var cfgErr *ConfigurationError
	assert.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "Routes", cfgErr.Field)
}

func TestCodegenError_Unwrap(t *testing.T) {
	cause := errors.New("exit status 1")
	err := &CodegenError{Construct: "my-stack/Api", Err: cause}

	assert.Contains(t, err.Error(), "my-stack/Api")
	assert.ErrorIs(t, err, cause)
}

func TestInternalConsistencyError_Error(t *testing.T) {
	err := &InternalConsistencyError{
		Construct: "my-stack/Api",
		Detail:    `no function registered for route "GET /graphql"`,
	}

	assert.Contains(t, err.Error(), "internal consistency error")
	assert.Contains(t, err.Error(), "GET /graphql")
}
