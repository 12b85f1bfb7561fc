// Command sst builds, lints, graphs, and watches serverless-stack apps.
//
// Usage:
//
//	sst build ./infra          Synthesize templates from a Go app
//	sst lint template.json     Lint a synthesized template
//	sst graph template.json    Render a dependency graph
//	sst watch ./infra          Auto-rebuild on file changes
//	sst version                Show version
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "sst",
		Short: "Build serverless-stack apps",
		Long: `sst synthesizes CloudFormation templates from Go construct apps.

Define your infrastructure using constructs:

    app := construct.NewApp(construct.AppProps{})
    stack := construct.NewStack(app, "my-stack")
    graphqlapi.New(ctx, stack, "Api", graphqlapi.Props{Server: server})

Then synthesize:

    sst build ./infra`,
	}

	rootCmd.AddCommand(
		newBuildCmd(),
		newLintCmd(),
		newGraphCmd(),
		newWatchCmd(),
		newVersionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("sst %s\n", getVersion())
		},
	}
}
