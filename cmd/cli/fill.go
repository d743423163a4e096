package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/quadgen/dss-templater/internal/pipeline"
	"github.com/quadgen/dss-templater/internal/types"
)

var (
	fillTemplate string
	fillOut      string
	fillOutput   string
)

// fillCmd represents the fill command
var fillCmd = &cobra.Command{
	Use:   "fill <workbook>",
	Short: "Fill a DSS activation template from a site workbook",
	Long: `Fill a DSS activation template from a site engineering workbook. This command
reads the workbook (.xlsx), extracts the primary node, DSS sector cells, and band
codes, substitutes them into the template, and writes the filled document next to
the template unless --out is given.

The run only fails when the workbook or the template cannot be read; missing
worksheets, columns, or malformed values degrade into warnings.`,
	Example: `  dss-templater fill ./site_SITE1.xlsx --template ./dss_template.txt
  dss-templater fill ./site_SITE1.xlsx --template ./dss_template.txt --out ./SITE1.txt
  dss-templater fill ./site_SITE1.xlsx --template ./dss_template.txt --output json`,
	Args: cobra.ExactArgs(1),
	RunE: runFill,
}

func init() {
	rootCmd.AddCommand(fillCmd)

	fillCmd.Flags().StringVar(&fillTemplate, "template", "", "Template file (required)")
	fillCmd.Flags().StringVar(&fillOut, "out", "", "Output file (default <template>_FILLED.txt)")
	fillCmd.Flags().StringVar(&fillOutput, "output", "table", "Report format: table or json")
	fillCmd.MarkFlagRequired("template")
}

func runFill(cmd *cobra.Command, args []string) error {
	workbookPath := args[0]

	logger.Info().Str("workbook", workbookPath).Str("template", fillTemplate).Msg("Starting fill run")

	report, err := pipeline.Run(workbookPath, fillTemplate)
	if err != nil {
		return err
	}

	outPath := fillOut
	if outPath == "" {
		base := strings.TrimSuffix(fillTemplate, filepath.Ext(fillTemplate))
		outPath = base + "_FILLED.txt"
	}
	if err := os.WriteFile(outPath, []byte(report.Filled), 0o644); err != nil {
		return fmt.Errorf("failed to write filled template: %w", err)
	}
	logger.Info().Str("out", outPath).Msg("Filled template written")

	switch strings.ToLower(fillOutput) {
	case "json":
		return outputFillJSON(report)
	case "table":
		outputFillTable(report)
	default:
		return fmt.Errorf("invalid output format: %s (use 'table' or 'json')", fillOutput)
	}

	return nil
}

func outputFillTable(report *types.FillReport) {
	fmt.Printf("\nFill Results\n")
	fmt.Println(strings.Repeat("-", 60))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
	fmt.Fprintf(w, "Metric\tValue\n")
	fmt.Fprintf(w, "------\t-----\n")
	fmt.Fprintf(w, "Template Placeholders\t%d\n", len(report.Placeholders))
	fmt.Fprintf(w, "Placeholders Replaced\t%d\n", len(report.Counts))
	fmt.Fprintf(w, "Total Replacements\t%d\n", report.TotalReplacements())
	fmt.Fprintf(w, "Warnings\t%d\n", len(report.Warnings))
	w.Flush()

	if len(report.Counts) > 0 {
		fmt.Printf("\nReplacements:\n")
		fmt.Println(strings.Repeat("-", 60))
		keys := make([]string, 0, len(report.Counts))
		for k := range report.Counts {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Printf("%-45s x%d\n", k, report.Counts[k])
		}
	}

	if len(report.Warnings) > 0 {
		preview := 5
		if cfg != nil && cfg.Processing.WarningPreview > 0 {
			preview = cfg.Processing.WarningPreview
		}
		fmt.Printf("\nFirst %d Warnings:\n", min(len(report.Warnings), preview))
		fmt.Println(strings.Repeat("-", 60))
		for i, warn := range report.Warnings {
			if i >= preview {
				break
			}
			fmt.Printf("[%s] %s\n", warn.Stage, warn.Message)
		}
		if len(report.Warnings) > preview {
			fmt.Printf("... and %d more warnings\n", len(report.Warnings)-preview)
		}
	}
}

func outputFillJSON(report *types.FillReport) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
