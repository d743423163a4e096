// Package pipeline sequences one template-fill run: open the workbook, load
// the three worksheets (each optional), read the template, extract the
// placeholder map, and fill the template. The run is synchronous and holds
// exactly one workbook and one template in memory; nothing persists between
// invocations.
package pipeline

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/quadgen/dss-templater/internal/extract"
	"github.com/quadgen/dss-templater/internal/telemetry"
	"github.com/quadgen/dss-templater/internal/template"
	"github.com/quadgen/dss-templater/internal/types"
	"github.com/quadgen/dss-templater/internal/workbook"
)

// Run executes a fill from files on disk. It fails only when the workbook
// cannot be opened or the template cannot be read; every downstream absence
// degrades into warnings on the report.
func Run(workbookPath, templatePath string) (*types.FillReport, error) {
	wb, err := workbook.Open(workbookPath)
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	tmpl, err := os.ReadFile(templatePath)
	if err != nil {
		return nil, fmt.Errorf("cannot read template %s: %w", templatePath, err)
	}

	return run(wb, string(tmpl)), nil
}

// RunReader executes a fill from in-memory inputs, for callers that receive
// the workbook and template as byte streams.
func RunReader(workbookData io.Reader, templateText string) (*types.FillReport, error) {
	wb, err := workbook.OpenReader(workbookData)
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	return run(wb, templateText), nil
}

func run(wb *workbook.Workbook, templateText string) *types.FillReport {
	start := time.Now()

	log.Info().Strs("sheets", wb.SheetNames()).Msg("Workbook opened")

	sheets := extract.Sheets{
		MixedMode: loadSheet(wb, extract.SheetMixedMode),
		FiveG:     loadSheet(wb, extract.SheetFiveG),
		EUtran:    loadSheet(wb, extract.SheetEUtran),
	}

	placeholders := template.Scan(templateText)
	log.Info().Int("placeholders", len(placeholders)).Msg("Template scanned")

	result := extract.Run(sheets)

	filled, counts := template.Fill(templateText, result.Replacements)

	report := &types.FillReport{
		Filled:       filled,
		Placeholders: placeholders,
		Counts:       counts,
		Warnings:     result.Warnings,
	}

	log.Info().
		Int("replaced", len(counts)).
		Int("occurrences", report.TotalReplacements()).
		Int("warnings", len(result.Warnings)).
		Msg("Template filled")

	telemetry.RecordRun(time.Since(start), len(counts), len(result.Warnings))
	return report
}

func loadSheet(wb *workbook.Workbook, canonical string) *workbook.Table {
	t := wb.Sheet(canonical, extract.SheetAliases[canonical]...)
	if t != nil {
		log.Info().Str("sheet", t.Name).Int("rows", t.Len()).Msg("Worksheet loaded")
	}
	return t
}
