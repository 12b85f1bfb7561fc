package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Tejasv446/serverless-stack/internal/graph"
	"github.com/Tejasv446/serverless-stack/internal/templatefmt"
)

func newGraphCmd() *cobra.Command {
	var (
		outputFormat     string
		clusterByService bool
	)

	cmd := &cobra.Command{
		Use:   "graph [template]",
		Short: "Generate DOT graph of resource dependencies",
		Long: `Generate a DOT or Mermaid format graph of a synthesized template.

The output can be rendered with Graphviz:
    sst graph .sst/my-stack.template.json | dot -Tpng -o deps.png

Or used in GitHub markdown (Mermaid format):
    sst graph .sst/my-stack.template.json -f mermaid

Examples:
    sst graph .sst/my-stack.template.json
    sst graph .sst/my-stack.template.json -c    # cluster by service`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGraph(args[0], outputFormat, clusterByService)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "dot", "Output format: dot or mermaid")
	cmd.Flags().BoolVarP(&clusterByService, "cluster", "c", false, "Cluster resources by AWS service")

	return cmd
}

func runGraph(templatePath string, format string, cluster bool) error {
	tmpl, err := templatefmt.ParseFile(templatePath)
	if err != nil {
		return err
	}

	if len(tmpl.Resources) == 0 {
		return fmt.Errorf("no resources found in %s", templatePath)
	}

	var graphFormat graph.Format
	switch format {
	case "dot":
		graphFormat = graph.FormatDOT
	case "mermaid":
		graphFormat = graph.FormatMermaid
	default:
		return fmt.Errorf("unknown format: %s (use 'dot' or 'mermaid')", format)
	}

	gen := &graph.Generator{
		Format:           graphFormat,
		ClusterByService: cluster,
	}

	return gen.Generate(tmpl, os.Stdout)
}
