package function

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sst "github.com/Tejasv446/serverless-stack"
	"github.com/Tejasv446/serverless-stack/construct"
)

func newStack(t *testing.T) *construct.Stack {
	t.Helper()
	return construct.NewStack(construct.NewApp(construct.AppProps{}), "my-stack")
}

func TestNew(t *testing.T) {
	stack := newStack(t)

	fn, err := New(stack, "Server", Props{Handler: "src/server.handler"})
	require.NoError(t, err)

	assert.Equal(t, "Server", fn.ID())
	assert.Equal(t, "ServerFunction", fn.LogicalID())
	assert.Equal(t, "src/server.handler", fn.Handler())

	def, ok := stack.Resource("ServerFunction")
	require.True(t, ok)
	assert.Equal(t, "AWS::Lambda::Function", def.Type)
	assert.Equal(t, "src/server.handler", def.Properties["Handler"])
}

func TestNew_Defaults(t *testing.T) {
	stack := newStack(t)

	_, err := New(stack, "Server", Props{Handler: "src/server.handler"})
	require.NoError(t, err)

	def, _ := stack.Resource("ServerFunction")
	assert.Equal(t, DefaultRuntime, def.Properties["Runtime"])
	assert.Equal(t, DefaultTimeout, def.Properties["Timeout"])
	assert.Equal(t, DefaultMemorySize, def.Properties["MemorySize"])
}

func TestNew_MissingHandler(t *testing.T) {
	stack := newStack(t)

	_, err := New(stack, "Server", Props{})
	var cfgErr *sst.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "my-stack/Server", cfgErr.Construct)
	assert.Equal(t, "Handler", cfgErr.Field)
}

func TestNew_Environment(t *testing.T) {
	stack := newStack(t)

	_, err := New(stack, "Server", Props{
		Handler:     "src/server.handler",
		Environment: map[string]string{"TABLE_NAME": "notes"},
	})
	require.NoError(t, err)

	def, _ := stack.Resource("ServerFunction")
	env, ok := def.Properties["Environment"].(map[string]any)
	require.True(t, ok)
	vars, ok := env["Variables"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "notes", vars["TABLE_NAME"])
}

func TestArn(t *testing.T) {
	stack := newStack(t)

	fn, err := New(stack, "Server", Props{Handler: "src/server.handler"})
	require.NoError(t, err)

	assert.Equal(t, sst.AttrRef{Resource: "ServerFunction", Attribute: "Arn"}, fn.Arn())
}
