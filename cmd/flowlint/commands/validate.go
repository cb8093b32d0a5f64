package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/flowlint/flowlint/arazzo"
	"github.com/flowlint/flowlint/consistency"
	"github.com/flowlint/flowlint/flowgraph"
	"github.com/flowlint/flowlint/loader"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

var (
	inputsFile     string
	inputsWorkflow string
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Validate an Arazzo workflow document against its OpenAPI sources",
	Long: `Validate an Arazzo workflow document against the OpenAPI documents named
by its source descriptions.

This command will:
- Load the workflow document and check its structural invariants
- Load every OpenAPI source description (relative urls resolve against the
  workflow document's directory)
- Check each workflow's graph for cycles, unreachable steps and dead ends
- Cross-check operation references, parameter compatibility and data
  dependencies between the two documents

With --inputs, the provided YAML or JSON file is additionally validated
against the workflow input schemas:
  flowlint validate workflows.arazzo.yaml --inputs inputs.yaml --workflow login-flow`,
	Args: cobra.ExactArgs(1),
	Run:  runValidate,
}

// GetValidateCommand returns the validate command for external use.
func GetValidateCommand() *cobra.Command {
	validateCmd.Flags().StringVar(&inputsFile, "inputs", "", "YAML or JSON file of input values to validate against the workflow input schemas")
	validateCmd.Flags().StringVar(&inputsWorkflow, "workflow", "", "restrict input validation to the named workflow")
	return validateCmd
}

func runValidate(cmd *cobra.Command, args []string) {
	if err := validate(filepath.Clean(args[0])); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func validate(file string) error {
	fmt.Fprintf(os.Stderr, "Validating workflow document: %s\n", file)

	doc, err := loader.LoadArazzo(file)
	if err != nil {
		return err
	}

	resolver, sourceErrs := loader.LoadSources(file, doc.SourceDescriptions)
	for _, sourceErr := range sourceErrs {
		fmt.Fprintf(os.Stderr, "⚠️  %s\n", sourceErr.Error())
	}

	// Structural validation is independent per workflow, so the graphs build
	// and validate concurrently.
	structural := make([]flowgraph.ValidationResult, len(doc.Workflows))

	var g errgroup.Group
	for i, workflow := range doc.Workflows {
		g.Go(func() error {
			builder := flowgraph.NewBuilder(workflow).WithResolver(resolver)
			structural[i] = flowgraph.Validate(builder.Build())
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	failed := false

	for i, workflow := range doc.Workflows {
		failed = printStructural(workflow.WorkflowID, structural[i]) || failed
	}

	result := consistency.NewValidator(doc, resolver).Validate()
	failed = printConsistency(result) || failed

	if inputsFile != "" {
		inputsFailed, err := validateInputs(doc)
		if err != nil {
			return err
		}
		failed = inputsFailed || failed
	}

	if failed {
		return errors.New("workflow document validation failed")
	}

	fmt.Fprintf(os.Stderr, "✅ Workflow document is valid\n")
	return nil
}

// printStructural renders one workflow's structural findings and reports
// whether any were fatal.
func printStructural(workflowID string, result flowgraph.ValidationResult) bool {
	for _, msg := range result.Errors {
		fmt.Fprintf(os.Stderr, "❌ [workflow: %s] %s\n", workflowID, msg)
	}
	for _, msg := range result.Warnings {
		fmt.Fprintf(os.Stderr, "⚠️  [workflow: %s] %s\n", workflowID, msg)
	}

	return !result.IsValid
}

// printConsistency renders the cross-document findings and reports whether
// any were fatal.
func printConsistency(result consistency.Result) bool {
	for _, err := range result.Errors {
		fmt.Fprintf(os.Stderr, "❌ %s\n", err.String())
	}
	for _, warning := range result.Warnings {
		fmt.Fprintf(os.Stderr, "⚠️  %s\n", warning.String())
	}

	return !result.IsValid
}

// validateInputs checks the --inputs file against the input schemas of the
// selected workflows.
func validateInputs(doc *arazzo.Arazzo) (bool, error) {
	data, err := os.ReadFile(inputsFile)
	if err != nil {
		return false, fmt.Errorf("failed to read inputs file: %w", err)
	}

	var instance any
	if err := yaml.Unmarshal(data, &instance); err != nil {
		return false, fmt.Errorf("failed to parse inputs file: %w", err)
	}

	workflows := doc.Workflows
	if inputsWorkflow != "" {
		workflow := doc.Workflows.Find(inputsWorkflow)
		if workflow == nil {
			return false, fmt.Errorf("workflow %q not found in document", inputsWorkflow)
		}
		workflows = arazzo.Workflows{workflow}
	}

	failed := false
	for _, workflow := range workflows {
		for _, err := range loader.ValidateInputs(workflow, instance) {
			fmt.Fprintf(os.Stderr, "❌ [workflow: %s] %s\n", workflow.WorkflowID, err.Error())
			failed = true
		}
	}

	return failed, nil
}
