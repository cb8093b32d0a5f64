package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/flowlint/flowlint/flowgraph"
	"github.com/flowlint/flowlint/loader"
	"github.com/spf13/cobra"
)

var (
	visualizeFormat string
	visualizeOutput string
)

var visualizeCmd = &cobra.Command{
	Use:   "visualize <file> [workflow-id]",
	Short: "Render a workflow's graph as Mermaid, Graphviz DOT or JSON",
	Long: `Render the flow graph of one workflow from an Arazzo document.

When the document declares more than one workflow, name the one to render as
the second argument; otherwise the first workflow is used. The graph renders
even when validation would fail, so broken workflows can be inspected:
  flowlint visualize workflows.arazzo.yaml login-flow --format dot --output graph.dot`,
	Args: cobra.RangeArgs(1, 2),
	Run:  runVisualize,
}

// GetVisualizeCommand returns the visualize command for external use.
func GetVisualizeCommand() *cobra.Command {
	visualizeCmd.Flags().StringVar(&visualizeFormat, "format", "mermaid", "output format: mermaid, dot or json")
	visualizeCmd.Flags().StringVar(&visualizeOutput, "output", "", "write to a file instead of stdout")
	return visualizeCmd
}

func runVisualize(cmd *cobra.Command, args []string) {
	workflowID := ""
	if len(args) > 1 {
		workflowID = args[1]
	}

	if err := visualize(filepath.Clean(args[0]), workflowID); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func visualize(file, workflowID string) error {
	doc, err := loader.LoadArazzo(file)
	if err != nil {
		return err
	}

	workflow := doc.Workflows[0]
	if workflowID != "" {
		if workflow = doc.Workflows.Find(workflowID); workflow == nil {
			return fmt.Errorf("workflow %q not found in document", workflowID)
		}
	}

	// Methods resolve from whichever loadable source declares the operation.
	// Broken sources only cost method labels, never the rendering.
	resolver, _ := loader.LoadSources(file, doc.SourceDescriptions)
	builder := flowgraph.NewBuilder(workflow).WithResolver(resolver)

	exporter := flowgraph.NewExporter(builder.Build())

	var rendered []byte
	switch visualizeFormat {
	case "mermaid":
		rendered = []byte(exporter.ExportMermaid())
	case "dot":
		rendered = []byte(exporter.ExportDOT())
	case "json":
		rendered, err = exporter.ExportJSON()
		if err != nil {
			return fmt.Errorf("failed to render graph as json: %w", err)
		}
		rendered = append(rendered, '\n')
	default:
		return fmt.Errorf("unknown format %q, expected mermaid, dot or json", visualizeFormat)
	}

	if visualizeOutput == "" {
		_, err = os.Stdout.Write(rendered)
		return err
	}

	if err := os.WriteFile(visualizeOutput, rendered, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", visualizeOutput, err)
	}

	fmt.Fprintf(os.Stderr, "Wrote %s graph to %s\n", visualizeFormat, visualizeOutput)
	return nil
}
