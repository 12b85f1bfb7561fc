// Package api defines the generic HTTP API construct: an API gateway that
// maps "<VERB> <path>" route keys to Functions.
//
// Route-to-integration binding goes through the IntegrationFactory
// capability. The default factory creates one integration per route;
// wrapping constructs can substitute their own factory to change the
// binding policy (see package graphqlapi).
package api

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Tejasv446/serverless-stack/construct"
	"github.com/Tejasv446/serverless-stack/function"

	sst "github.com/Tejasv446/serverless-stack"
)

// DefaultPayloadFormatVersion is used when Props leaves the field empty.
const DefaultPayloadFormatVersion = "2.0"

var allowedVerbs = map[string]bool{
	"GET": true, "POST": true, "PUT": true, "DELETE": true,
	"PATCH": true, "HEAD": true, "OPTIONS": true, "ANY": true,
}

// Props configures an Api.
type Props struct {
	// Name of the gateway. Defaults to the construct ID.
	Name string
	// Routes maps "<VERB> <path>" keys to handler functions.
	Routes map[string]*function.Function
	// DefaultPayloadFormatVersion for integrations. Defaults to "2.0".
	DefaultPayloadFormatVersion string
}

// RouteProps carries the per-route parameters handed to the
// IntegrationFactory.
type RouteProps struct {
	Function *function.Function
}

// Integration is the binding between a gateway route and the function
// that serves it. A single Integration may back multiple routes.
type Integration struct {
	logicalID string
}

// LogicalID returns the logical ID of the integration resource.
func (i *Integration) LogicalID() string {
	return i.logicalID
}

// IntegrationFactory produces the integration for each route the Api
// registers. It is invoked once per route during construction, in sorted
// route-key order.
type IntegrationFactory interface {
	CreateIntegration(a *Api, routeKey string, route RouteProps, nameSuffix string) (*Integration, error)
}

// Option customizes Api construction.
type Option func(*Api)

// WithIntegrationFactory replaces the default route-to-integration
// factory.
func WithIntegrationFactory(f IntegrationFactory) Option {
	return func(a *Api) {
		a.factory = f
	}
}

// WithoutStackMetadata suppresses the gateway's own metadata entry on
// the stack. Wrapping constructs use this when they record an entry that
// subsumes the inner gateway's, so tooling sees one construct, not two.
func WithoutStackMetadata() Option {
	return func(a *Api) {
		a.skipMetadata = true
	}
}

// Api is the generic HTTP API construct.
type Api struct {
	stack                *construct.Stack
	id                   string
	logicalID            string
	payloadFormatVersion string
	factory              IntegrationFactory
	skipMetadata         bool
	routes               map[string]*function.Function
	routeOrder           []string
	integrations         map[string]*Integration
}

// New creates the gateway and registers one route per Props.Routes entry.
func New(stack *construct.Stack, id string, props Props, opts ...Option) (*Api, error) {
	if err := stack.AddConstruct(id); err != nil {
		return nil, err
	}

	name := props.Name
	if name == "" {
		name = id
	}
	payloadVersion := props.DefaultPayloadFormatVersion
	if payloadVersion == "" {
		payloadVersion = DefaultPayloadFormatVersion
	}

	a := &Api{
		stack:                stack,
		id:                   id,
		logicalID:            construct.LogicalID(id, "HttpApi"),
		payloadFormatVersion: payloadVersion,
		routes:               make(map[string]*function.Function),
		integrations:         make(map[string]*Integration),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.factory == nil {
		a.factory = NewDefaultIntegrationFactory()
	}

	err := stack.AddResource(a.logicalID, sst.ResourceDef{
		Type: "AWS::ApiGatewayV2::Api",
		Properties: map[string]any{
			"Name":         name,
			"ProtocolType": "HTTP",
		},
	})
	if err != nil {
		return nil, err
	}

	// Routes register in sorted key order so synthesis is deterministic.
	keys := make([]string, 0, len(props.Routes))
	for key := range props.Routes {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if err := a.addRoute(key, props.Routes[key]); err != nil {
			return nil, err
		}
	}

	stack.AddOutput(a.logicalID+"Endpoint", sst.Output{
		Description: "HTTP API endpoint",
		Value:       sst.AttrRef{Resource: a.logicalID, Attribute: "ApiEndpoint"},
	})
	if !a.skipMetadata {
		stack.AddMetadata(a.ConstructMetadata())
	}
	return a, nil
}

func (a *Api) addRoute(key string, fn *function.Function) error {
	routeKey, err := NormalizeRouteKey(key)
	if err != nil {
		return &sst.ConfigurationError{
			Construct: a.Path(),
			Field:     "Routes",
			Reason:    err.Error(),
		}
	}
	if fn == nil {
		return &sst.ConfigurationError{
			Construct: a.Path(),
			Field:     "Routes",
			Reason:    fmt.Sprintf("route %q has no function", routeKey),
		}
	}
	if _, exists := a.routes[routeKey]; exists {
		return &sst.ConfigurationError{
			Construct: a.Path(),
			Field:     "Routes",
			Reason:    fmt.Sprintf("duplicate route %q", routeKey),
		}
	}

	suffix := construct.LogicalID(routeKey)
	integration, err := a.factory.CreateIntegration(a, routeKey, RouteProps{Function: fn}, suffix)
	if err != nil {
		return err
	}

	routeLogicalID := construct.LogicalID(a.id, "Route", routeKey)
	err = a.stack.AddResource(routeLogicalID, sst.ResourceDef{
		Type: "AWS::ApiGatewayV2::Route",
		Properties: map[string]any{
			"ApiId":    sst.Ref{Resource: a.logicalID},
			"RouteKey": routeKey,
			"Target": sst.Join{
				Delimiter: "/",
				Values:    []any{"integrations", sst.Ref{Resource: integration.LogicalID()}},
			},
		},
	})
	if err != nil {
		return err
	}

	a.routes[routeKey] = fn
	a.routeOrder = append(a.routeOrder, routeKey)
	a.integrations[routeKey] = integration
	return nil
}

// ID returns the construct ID.
func (a *Api) ID() string {
	return a.id
}

// Path returns the construct's tree path.
func (a *Api) Path() string {
	return a.stack.Path(a.id)
}

// Stack returns the enclosing stack.
func (a *Api) Stack() *construct.Stack {
	return a.stack
}

// LogicalID returns the logical ID of the gateway resource.
func (a *Api) LogicalID() string {
	return a.logicalID
}

// PayloadFormatVersion returns the integration payload format version.
func (a *Api) PayloadFormatVersion() string {
	return a.payloadFormatVersion
}

// Routes returns the registered route keys in registration order.
func (a *Api) Routes() []string {
	out := make([]string, len(a.routeOrder))
	copy(out, a.routeOrder)
	return out
}

// GetFunction returns the function registered for a route key, or nil
// when the route does not exist.
func (a *Api) GetFunction(routeKey string) *function.Function {
	normalized, err := NormalizeRouteKey(routeKey)
	if err != nil {
		return nil
	}
	return a.routes[normalized]
}

// GetIntegration returns the integration handle bound to a route key, or
// nil when the route does not exist.
func (a *Api) GetIntegration(routeKey string) *Integration {
	normalized, err := NormalizeRouteKey(routeKey)
	if err != nil {
		return nil
	}
	return a.integrations[normalized]
}

// ConstructMetadata exports the gateway's metadata.
func (a *Api) ConstructMetadata() sst.ConstructMetadata {
	return sst.ConstructMetadata{
		Type: "Api",
		Data: map[string]any{
			"httpApiId": a.logicalID,
			"routes":    a.Routes(),
		},
	}
}

// NormalizeRouteKey validates a "<VERB> <path>" route key and returns it
// with the verb uppercased.
func NormalizeRouteKey(key string) (string, error) {
	parts := strings.Fields(key)
	if len(parts) != 2 {
		return "", fmt.Errorf("route key %q must be \"<VERB> <path>\"", key)
	}
	verb := strings.ToUpper(parts[0])
	path := parts[1]
	if !allowedVerbs[verb] {
		return "", fmt.Errorf("route key %q has unsupported verb %q", key, parts[0])
	}
	if !strings.HasPrefix(path, "/") {
		return "", fmt.Errorf("route key %q path must start with \"/\"", key)
	}
	return verb + " " + path, nil
}

// NewDefaultIntegrationFactory returns the default route-to-integration
// policy: one AWS_PROXY integration plus one invoke permission per call.
func NewDefaultIntegrationFactory() IntegrationFactory {
	return &defaultFactory{}
}

type defaultFactory struct{}

func (f *defaultFactory) CreateIntegration(a *Api, routeKey string, route RouteProps, nameSuffix string) (*Integration, error) {
	integrationID := construct.LogicalID(a.id, "Integration", nameSuffix)
	err := a.stack.AddResource(integrationID, sst.ResourceDef{
		Type: "AWS::ApiGatewayV2::Integration",
		Properties: map[string]any{
			"ApiId":                sst.Ref{Resource: a.logicalID},
			"IntegrationType":      "AWS_PROXY",
			"IntegrationUri":       route.Function.Arn(),
			"PayloadFormatVersion": a.payloadFormatVersion,
		},
	})
	if err != nil {
		return nil, err
	}

	permissionID := construct.LogicalID(a.id, "Permission", nameSuffix)
	err = a.stack.AddResource(permissionID, sst.ResourceDef{
		Type: "AWS::Lambda::Permission",
		Properties: map[string]any{
			"FunctionName": route.Function.Arn(),
			"Action":       "lambda:InvokeFunction",
			"Principal":    "apigateway.amazonaws.com",
			"SourceArn": sst.Join{
				Delimiter: "",
				Values: []any{
					"arn:aws:execute-api:",
					sst.Sub{String: "${AWS::Region}"},
					":",
					sst.Sub{String: "${AWS::AccountId}"},
					":",
					sst.Ref{Resource: a.logicalID},
					"/*",
				},
			},
		},
	})
	if err != nil {
		return nil, err
	}

	return &Integration{logicalID: integrationID}, nil
}
