package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/lex00/cfn-lint-go/pkg/lint"
	"github.com/spf13/cobra"

	sst "github.com/Tejasv446/serverless-stack"
)

func newLintCmd() *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "lint [template]",
		Short: "Lint a synthesized template",
		Long: `Lint checks a synthesized template with cfn-lint rules.

Examples:
    sst lint .sst/my-stack.template.json
    sst lint .sst/my-stack.template.json -f json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(args[0], outputFormat)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "Output format: text or json")

	return cmd
}

func runLint(templatePath string, format string) error {
	if _, err := os.Stat(templatePath); err != nil {
		return fmt.Errorf("template not found: %s", templatePath)
	}

	linter := lint.New(lint.Options{})
	matches, err := linter.LintFile(templatePath)
	if err != nil {
		return fmt.Errorf("lint failed: %w", err)
	}

	result := sst.LintResult{Success: true}
	for _, match := range matches {
		severity := strings.ToLower(match.Level)
		if severity == "error" {
			result.Success = false
		}
		result.Issues = append(result.Issues, sst.LintIssue{
			File:     templatePath,
			Line:     match.Location.Start.LineNumber,
			Column:   match.Location.Start.ColumnNumber,
			Severity: severity,
			Message:  match.Message,
			Rule:     match.Rule.ID,
		})
	}

	switch format {
	case "json":
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
	case "text":
		for _, issue := range result.Issues {
			fmt.Printf("%s:%d:%d: %s: %s [%s]\n",
				issue.File, issue.Line, issue.Column,
				issue.Severity, issue.Message, issue.Rule)
		}
		if len(result.Issues) == 0 {
			fmt.Println("No issues found")
		}
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	if !result.Success {
		return fmt.Errorf("lint found errors")
	}
	return nil
}
