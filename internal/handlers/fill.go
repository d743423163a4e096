package handlers

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/quadgen/dss-templater/internal/pipeline"
	"github.com/quadgen/dss-templater/internal/storage"
	"github.com/quadgen/dss-templater/internal/types"
)

// FillOptions configures the fill endpoints.
type FillOptions struct {
	// UploadDir is where uploaded workbooks are spooled for the duration of
	// one run. Files are removed when the run finishes.
	UploadDir string
	// MaxUploadBytes caps the size of each uploaded file.
	MaxUploadBytes int64
	// WarningPreview caps the human-readable warning summary. The full
	// warnings array is always returned.
	WarningPreview int
}

// FillSummary is the human-oriented digest of one run.
type FillSummary struct {
	PlaceholdersReplaced int      `json:"placeholdersReplaced"`
	TotalReplacements    int      `json:"totalReplacements"`
	Warnings             int      `json:"warnings"`
	WarningPreview       []string `json:"warningPreview,omitempty"`
}

// FillResponse is the JSON body returned by POST /fill.
type FillResponse struct {
	Summary      FillSummary     `json:"summary"`
	Filled       string          `json:"filled"`
	Placeholders []string        `json:"placeholders"`
	Counts       map[string]int  `json:"counts"`
	Warnings     []types.Warning `json:"warnings"`
}

// Fill handles POST /fill: multipart fields "workbook" (xlsx) and
// "template" (txt); responds with the filled text and the run report.
func Fill(opts FillOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		report, _, ok := processUpload(c, opts)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, buildResponse(report, opts.WarningPreview))
	}
}

// FillDownload handles POST /fill/download: same inputs as Fill, responds
// with the filled text as a plain-text attachment named after the template.
func FillDownload(opts FillOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		report, templateName, ok := processUpload(c, opts)
		if !ok {
			return
		}
		name := strings.TrimSuffix(filepath.Base(templateName), ".txt") + "_FILLED.txt"
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
		c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(report.Filled))
	}
}

// processUpload reads both multipart files, spools the workbook to the
// upload dir, runs the pipeline, and cleans up. Replies with an error status
// and returns ok=false on any upload or fatal pipeline failure.
func processUpload(c *gin.Context, opts FillOptions) (*types.FillReport, string, bool) {
	workbookFile, err := c.FormFile("workbook")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing workbook file"})
		return nil, "", false
	}
	templateFile, err := c.FormFile("template")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing template file"})
		return nil, "", false
	}
	if opts.MaxUploadBytes > 0 && (workbookFile.Size > opts.MaxUploadBytes || templateFile.Size > opts.MaxUploadBytes) {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Uploaded file too large"})
		return nil, "", false
	}

	spool, err := storage.NewSpool(opts.UploadDir)
	if err != nil {
		log.Error().Err(err).Msg("Failed to prepare upload spool")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store upload"})
		return nil, "", false
	}
	spooled, err := saveUpload(spool, workbookFile)
	if err != nil {
		log.Error().Err(err).Msg("Failed to spool workbook upload")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store upload"})
		return nil, "", false
	}
	defer spool.Discard(spooled)

	templateText, err := readUpload(templateFile)
	if err != nil {
		log.Error().Err(err).Msg("Failed to read template upload")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read template"})
		return nil, "", false
	}

	wb, err := os.Open(spooled)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read upload"})
		return nil, "", false
	}
	defer wb.Close()

	report, err := pipeline.RunReader(wb, templateText)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return nil, "", false
	}
	return report, templateFile.Filename, true
}

func saveUpload(spool *storage.Spool, file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()
	return spool.Save("upload-*.xlsx", src)
}

func readUpload(file *multipart.FileHeader) (string, error) {
	f, err := file.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func buildResponse(report *types.FillReport, previewCap int) FillResponse {
	preview := make([]string, 0, previewCap)
	for _, w := range report.Warnings {
		if len(preview) >= previewCap {
			break
		}
		preview = append(preview, w.Message)
	}
	warnings := report.Warnings
	if warnings == nil {
		warnings = []types.Warning{}
	}
	return FillResponse{
		Summary: FillSummary{
			PlaceholdersReplaced: len(report.Counts),
			TotalReplacements:    report.TotalReplacements(),
			Warnings:             len(report.Warnings),
			WarningPreview:       preview,
		},
		Filled:       report.Filled,
		Placeholders: report.Placeholders,
		Counts:       report.Counts,
		Warnings:     warnings,
	}
}
