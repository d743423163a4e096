package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func testRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	opts := FillOptions{
		UploadDir:      t.TempDir(),
		MaxUploadBytes: 1 << 20,
		WarningPreview: 5,
	}
	r := gin.New()
	r.POST("/fill", Fill(opts))
	r.POST("/fill/download", FillDownload(opts))
	return r
}

func siteWorkbookBytes(t *testing.T) []byte {
	t.Helper()

	f := excelize.NewFile()
	require.NoError(t, f.SetSheetName("Sheet1", "Mixed Mode Info"))
	rows := [][]interface{}{
		{"Cabinet Controlling DUL", "eNodeB Name", "eNBId", "gNodeB Name", "gNBId"},
		{"TRUE", "SITE1", "100", "GSITE1", "200"},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Mixed Mode Info", cell, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return buf.Bytes()
}

func multipartBody(t *testing.T, workbook []byte, template string) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	if workbook != nil {
		part, err := w.CreateFormFile("workbook", "site.xlsx")
		require.NoError(t, err)
		_, err = part.Write(workbook)
		require.NoError(t, err)
	}
	if template != "" {
		part, err := w.CreateFormFile("template", "dss_template.txt")
		require.NoError(t, err)
		_, err = part.Write([]byte(template))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return body, w.FormDataContentType()
}

func TestFillEndpoint(t *testing.T) {
	r := testRouter(t)

	body, contentType := multipartBody(t, siteWorkbookBytes(t), "node=xxMMBB_Primary_Node_Namexx id=xxLTE_eNBIDxx")
	req := httptest.NewRequest(http.MethodPost, "/fill", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp FillResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "node=SITE1 id=100", resp.Filled)
	assert.Equal(t, 2, resp.Summary.PlaceholdersReplaced)
	// workbook has no 5G sheet: warnings expected, preview capped
	assert.NotEmpty(t, resp.Warnings)
	assert.LessOrEqual(t, len(resp.Summary.WarningPreview), 5)
}

func TestFillEndpointMissingPart(t *testing.T) {
	r := testRouter(t)

	body, contentType := multipartBody(t, siteWorkbookBytes(t), "")
	req := httptest.NewRequest(http.MethodPost, "/fill", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFillEndpointBadWorkbook(t *testing.T) {
	r := testRouter(t)

	body, contentType := multipartBody(t, []byte("not an xlsx"), "xxAxx")
	req := httptest.NewRequest(http.MethodPost, "/fill", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestFillDownloadEndpoint(t *testing.T) {
	r := testRouter(t)

	body, contentType := multipartBody(t, siteWorkbookBytes(t), "site=xxLTE_Site_IDxx")
	req := httptest.NewRequest(http.MethodPost, "/fill/download", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "site=SITE1", rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "dss_template_FILLED.txt")
}
