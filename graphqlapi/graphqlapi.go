// Package graphqlapi defines the GraphQL API construct: one function
// serving both the query and mutation verbs of a single root path behind
// an HTTP API gateway.
//
// The construct derives a two-entry route map (GET and POST at RootPath,
// both pointing at Server) and delegates to the generic api construct.
// It replaces the default route-to-integration factory with a memoizing
// one so that both routes share a single integration: separate
// integrations for the same handler would let invocation permissions and
// authorization wiring diverge between the two verbs.
package graphqlapi

import (
	"context"

	"github.com/Tejasv446/serverless-stack/api"
	"github.com/Tejasv446/serverless-stack/codegen"
	"github.com/Tejasv446/serverless-stack/construct"
	"github.com/Tejasv446/serverless-stack/function"

	sst "github.com/Tejasv446/serverless-stack"
)

// Props configures a GraphQLApi.
type Props struct {
	// Server handles every GraphQL request. Required.
	Server *function.Function
	// RootPath of the GraphQL endpoint. Defaults to "/".
	RootPath string
	// Codegen is an optional path to a schema-codegen config file. When
	// set and the app is not in local mode, construction runs the codegen
	// tool synchronously and fails on a nonzero exit.
	Codegen string
	// Name of the gateway. Defaults to the construct ID.
	Name string
	// DefaultPayloadFormatVersion for the integration. Defaults to "2.0".
	DefaultPayloadFormatVersion string
	// Routes must not be set; the route map is derived from Server and
	// RootPath. Present so callers migrating from the generic api
	// construct get an actionable error instead of silent misrouting.
	Routes map[string]*function.Function
	// Runner overrides the codegen runner, mainly for tests and for
	// callers shipping their own codegen tool.
	Runner *codegen.Runner
}

// GraphQLApi is the GraphQL API construct.
type GraphQLApi struct {
	stack       *construct.Stack
	id          string
	api         *api.Api
	rootPath    string
	codegenPath string
}

// New validates props, optionally runs the codegen step, and builds the
// underlying gateway with both verbs bound to Server through one shared
// integration.
func New(ctx context.Context, stack *construct.Stack, id string, props Props) (*GraphQLApi, error) {
	path := stack.Path(id)

	if props.Routes != nil {
		return nil, &sst.ConfigurationError{
			Construct: path,
			Field:     "Routes",
			Reason:    "cannot be set on a GraphQL API; set Server instead",
		}
	}
	if props.Server == nil {
		return nil, &sst.ConfigurationError{
			Construct: path,
			Field:     "Server",
			Reason:    "field is required",
		}
	}

	if props.Codegen != "" && !stack.App().Local() {
		runner := props.Runner
		if runner == nil {
			runner = &codegen.Runner{}
		}
		if err := runner.Run(ctx, props.Codegen); err != nil {
			return nil, &sst.CodegenError{Construct: path, Err: err}
		}
	}

	rootPath := normalizeRootPath(props.RootPath)
	routes := map[string]*function.Function{
		"GET " + rootPath:  props.Server,
		"POST " + rootPath: props.Server,
	}

	factory := &sharedIntegrationFactory{
		delegate: api.NewDefaultIntegrationFactory(),
	}
	inner, err := api.New(stack, id, api.Props{
		Name:                        props.Name,
		Routes:                      routes,
		DefaultPayloadFormatVersion: props.DefaultPayloadFormatVersion,
	}, api.WithIntegrationFactory(factory), api.WithoutStackMetadata())
	if err != nil {
		return nil, err
	}

	g := &GraphQLApi{
		stack:       stack,
		id:          id,
		api:         inner,
		rootPath:    rootPath,
		codegenPath: props.Codegen,
	}
	stack.AddMetadata(g.ConstructMetadata())
	return g, nil
}

// ID returns the construct ID.
func (g *GraphQLApi) ID() string {
	return g.id
}

// Path returns the construct's tree path.
func (g *GraphQLApi) Path() string {
	return g.stack.Path(g.id)
}

// RootPath returns the normalized GraphQL endpoint path.
func (g *GraphQLApi) RootPath() string {
	return g.rootPath
}

// Api returns the underlying generic gateway construct.
func (g *GraphQLApi) Api() *api.Api {
	return g.api
}

// ServerFunction returns the handler registered for the query verb at
// RootPath. It panics with an InternalConsistencyError when the gateway's
// bookkeeping disagrees with the derived route map; that state indicates
// a defect, not bad user input, and must not be papered over with nil.
func (g *GraphQLApi) ServerFunction() *function.Function {
	fn := g.api.GetFunction("GET " + g.rootPath)
	if fn == nil {
		panic(&sst.InternalConsistencyError{
			Construct: g.Path(),
			Detail:    `no function registered for route "GET ` + g.rootPath + `"`,
		})
	}
	return fn
}

// ConstructMetadata exports the gateway's metadata plus the codegen
// config path.
func (g *GraphQLApi) ConstructMetadata() sst.ConstructMetadata {
	md := g.api.ConstructMetadata()
	data := make(map[string]any, len(md.Data)+1)
	for k, v := range md.Data {
		data[k] = v
	}
	data["codegen"] = g.codegenPath
	return sst.ConstructMetadata{
		Type: "GraphQLApi",
		Data: data,
	}
}

func normalizeRootPath(path string) string {
	if path == "" {
		return "/"
	}
	if path[0] != '/' {
		return "/" + path
	}
	return path
}

// sharedIntegrationFactory memoizes the first integration the delegate
// produces and returns it for every later route, ignoring the per-route
// parameters. All routes of one GraphQL API must share one integration
// so their invocation wiring cannot diverge.
type sharedIntegrationFactory struct {
	delegate api.IntegrationFactory
	shared   *api.Integration
}

func (f *sharedIntegrationFactory) CreateIntegration(a *api.Api, routeKey string, route api.RouteProps, nameSuffix string) (*api.Integration, error) {
	if f.shared != nil {
		return f.shared, nil
	}
	integration, err := f.delegate.CreateIntegration(a, routeKey, route, nameSuffix)
	if err != nil {
		return nil, err
	}
	f.shared = integration
	return integration, nil
}
