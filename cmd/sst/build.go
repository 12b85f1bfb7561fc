package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/Tejasv446/serverless-stack/internal/templatefmt"

	sst "github.com/Tejasv446/serverless-stack"
)

func newBuildCmd() *cobra.Command {
	var (
		outputFormat string
		outputDir    string
		local        bool
	)

	cmd := &cobra.Command{
		Use:   "build [dir]",
		Short: "Synthesize templates from a Go construct app",
		Long: `Build runs the app program in the given directory and writes one
template per stack, plus a machine-readable result.json summary.

The app program must print the JSON encoding of app.Synth() to stdout.
In local mode (--local) the program runs with SST_LOCAL=true, which
suppresses cloud-side build steps such as schema codegen.

Examples:
    sst build ./infra
    sst build ./infra -o build --format yaml
    sst build ./infra --local`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(args[0], outputFormat, outputDir, local)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "json", "Output format: json or yaml")
	cmd.Flags().StringVarP(&outputDir, "output", "o", ".sst", "Output directory for templates")
	cmd.Flags().BoolVar(&local, "local", false, "Run the app in local development mode")

	return cmd
}

func runBuild(dir, format, outputDir string, local bool) error {
	templates, err := synthApp(dir, local)
	if err != nil {
		return outputResult(sst.BuildResult{
			Success: false,
			Errors:  []string{err.Error()},
		}, outputDir)
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	ext := "json"
	if format == "yaml" || format == "yml" {
		ext = "yaml"
	}

	names := make([]string, 0, len(templates))
	for name := range templates {
		names = append(names, name)
	}
	sort.Strings(names)

	var resources []string
	for _, name := range names {
		data, err := templatefmt.Encode(templates[name], format)
		if err != nil {
			return err
		}
		path := filepath.Join(outputDir, name+".template."+ext)
		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("writing template: %w", err)
		}
		for id := range templates[name].Resources {
			resources = append(resources, id)
		}
		fmt.Printf("%s: %d resources -> %s\n", name, len(templates[name].Resources), path)
	}
	sort.Strings(resources)

	return outputResult(sst.BuildResult{
		Success:   true,
		Stacks:    templates,
		Resources: resources,
	}, outputDir)
}

// outputResult reports build failures on stderr and, on success, writes
// the machine-readable result summary alongside the templates.
func outputResult(result sst.BuildResult, outputDir string) error {
	if !result.Success {
		for _, e := range result.Errors {
			fmt.Fprintln(os.Stderr, e)
		}
		return fmt.Errorf("build failed")
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	path := filepath.Join(outputDir, "result.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing build result: %w", err)
	}
	return nil
}

func goRunCommand(dir string) *exec.Cmd {
	return exec.Command("go", "run", dir)
}

// synthApp runs the app program and decodes the templates it prints.
func synthApp(dir string, local bool) (map[string]*sst.Template, error) {
	var stdout bytes.Buffer
	cmd := goRunCommand(dir)
	cmd.Stdout = &stdout
	cmd.Stderr = os.Stderr
	cmd.Env = os.Environ()
	if local {
		cmd.Env = append(cmd.Env, "SST_LOCAL=true")
	}

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("running app in %s: %w", dir, err)
	}

	var templates map[string]*sst.Template
	if err := json.Unmarshal(stdout.Bytes(), &templates); err != nil {
		return nil, fmt.Errorf("decoding app output: %w", err)
	}
	if len(templates) == 0 {
		return nil, fmt.Errorf("app in %s produced no stacks", dir)
	}
	return templates, nil
}
