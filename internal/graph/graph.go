// Package graph generates DOT and Mermaid format dependency graphs from
// synthesized templates.
package graph

import (
	"io"
	"sort"
	"strings"

	"github.com/emicklei/dot"

	sst "github.com/Tejasv446/serverless-stack"
)

// Format specifies the output format for the graph.
type Format string

const (
	// FormatDOT outputs Graphviz DOT format.
	FormatDOT Format = "dot"
	// FormatMermaid outputs Mermaid format for GitHub/markdown rendering.
	FormatMermaid Format = "mermaid"
)

// Generator creates dependency graphs from synthesized templates.
type Generator struct {
	// Format specifies the output format (dot or mermaid). Defaults to dot.
	Format Format

	// ClusterByService groups resources by AWS service (the middle segment
	// of the resource type, e.g. "Lambda" in "AWS::Lambda::Function").
	ClusterByService bool
}

// Generate creates a dependency graph from the template and writes it to w.
func (g *Generator) Generate(tmpl *sst.Template, w io.Writer) error {
	graph := g.buildGraph(tmpl)

	format := g.Format
	if format == "" {
		format = FormatDOT
	}

	var output string
	if format == FormatMermaid {
		output = dot.MermaidGraph(graph, dot.MermaidTopToBottom)
	} else {
		output = graph.String()
	}

	_, err := w.Write([]byte(output))
	return err
}

// GenerateString is a convenience method that returns the graph as a string.
func (g *Generator) GenerateString(tmpl *sst.Template) (string, error) {
	var sb strings.Builder
	if err := g.Generate(tmpl, &sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func (g *Generator) buildGraph(tmpl *sst.Template) *dot.Graph {
	graph := dot.NewGraph(dot.Directed)
	graph.Attr("rankdir", "TB")

	graph.NodeInitializer(func(n dot.Node) {
		n.Attr("shape", "box")
		n.Attr("fontname", "Arial")
	})
	graph.EdgeInitializer(func(e dot.Edge) {
		e.Attr("fontname", "Arial")
		e.Attr("fontsize", "10")
	})

	names := make([]string, 0, len(tmpl.Resources))
	for name := range tmpl.Resources {
		names = append(names, name)
	}
	sort.Strings(names)

	if g.ClusterByService {
		g.addClusteredNodes(graph, tmpl, names)
	} else {
		for _, name := range names {
			n := graph.Node(name)
			n.Label(name + "\n" + tmpl.Resources[name].Type)
		}
	}

	for _, name := range names {
		refs := collectRefs(tmpl.Resources[name].Properties)
		for _, dep := range sortedKeys(refs) {
			if _, exists := tmpl.Resources[dep]; !exists || dep == name {
				continue
			}
			e := graph.Edge(graph.Node(name), graph.Node(dep))
			if refs[dep] == refGetAtt {
				e.Attr("color", "blue")
				e.Label("GetAtt")
			}
		}
	}

	return graph
}

func (g *Generator) addClusteredNodes(graph *dot.Graph, tmpl *sst.Template, names []string) {
	serviceResources := make(map[string][]string)
	for _, name := range names {
		service := serviceOf(tmpl.Resources[name].Type)
		serviceResources[service] = append(serviceResources[service], name)
	}

	// Clusters only pay off with more than one resource per service.
	for _, service := range sortedStrings(serviceResources) {
		resNames := serviceResources[service]
		if len(resNames) > 1 {
			cluster := graph.Subgraph("cluster_"+service, dot.ClusterOption{})
			cluster.Attr("label", service)
			cluster.Attr("style", "rounded")
			for _, name := range resNames {
				n := cluster.Node(name)
				n.Label(name + "\n" + tmpl.Resources[name].Type)
			}
		} else {
			for _, name := range resNames {
				n := graph.Node(name)
				n.Label(name + "\n" + tmpl.Resources[name].Type)
			}
		}
	}
}

type refKind int

const (
	refPlain refKind = iota
	refGetAtt
)

// collectRefs walks resource properties and gathers every referenced
// logical ID. Both typed intrinsics (from in-process synthesis) and their
// decoded map forms (from parsed template files) are recognized.
func collectRefs(value any) map[string]refKind {
	refs := make(map[string]refKind)
	walkRefs(value, refs)
	return refs
}

func walkRefs(value any, refs map[string]refKind) {
	switch v := value.(type) {
	case sst.Ref:
		refs[v.Resource] = refPlain
	case sst.AttrRef:
		refs[v.Resource] = refGetAtt
	case sst.Join:
		for _, item := range v.Values {
			walkRefs(item, refs)
		}
	case map[string]any:
		if target, ok := decodedRef(v); ok {
			refs[target] = refPlain
			return
		}
		if target, ok := decodedGetAtt(v); ok {
			refs[target] = refGetAtt
			return
		}
		for _, item := range v {
			walkRefs(item, refs)
		}
	case []any:
		for _, item := range v {
			walkRefs(item, refs)
		}
	}
}

func decodedRef(m map[string]any) (string, bool) {
	if len(m) != 1 {
		return "", false
	}
	target, ok := m["Ref"].(string)
	return target, ok
}

func decodedGetAtt(m map[string]any) (string, bool) {
	if len(m) != 1 {
		return "", false
	}
	parts, ok := m["Fn::GetAtt"].([]any)
	if !ok || len(parts) != 2 {
		return "", false
	}
	target, ok := parts[0].(string)
	return target, ok
}

func serviceOf(resourceType string) string {
	parts := strings.Split(resourceType, "::")
	if len(parts) >= 2 {
		return parts[1]
	}
	return resourceType
}

func sortedKeys(m map[string]refKind) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedStrings(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
