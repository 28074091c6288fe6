package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"labtrack-api/internal/auth"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withOperator(req *http.Request) *http.Request {
	id := uuid.New()
	ctx := context.WithValue(req.Context(), auth.ClaimsKey, &auth.Claims{UserID: id, Superuser: true})
	ctx = context.WithValue(ctx, auth.UserIDKey, id)
	return req.WithContext(ctx)
}

func TestImportsHandler_UploadExcel(t *testing.T) {
	// No real database; every case here fails before the pool is touched.
	handler := &ImportsHandler{
		DB:         nil,
		MaxBytes:   20 << 20,
		DefaultMap: "configs/mapping/lab_items.yaml",
	}

	t.Run("Rejects non-multipart content type", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/imports/excel", nil)
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		handler.UploadExcel(w, withOperator(req))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "content-type must be multipart/form-data")
	})

	t.Run("Rejects missing file", func(t *testing.T) {
		body := &bytes.Buffer{}
		writer := multipart.NewWriter(body)
		writer.Close()

		req := httptest.NewRequest("POST", "/imports/excel", body)
		req.Header.Set("Content-Type", writer.FormDataContentType())

		w := httptest.NewRecorder()
		handler.UploadExcel(w, withOperator(req))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "file is required")
	})

	t.Run("Rejects non-xlsx file", func(t *testing.T) {
		body := &bytes.Buffer{}
		writer := multipart.NewWriter(body)
		fileWriter, _ := writer.CreateFormFile("file", "test.xls")
		fileWriter.Write([]byte("fake excel content"))
		writer.Close()

		req := httptest.NewRequest("POST", "/imports/excel", body)
		req.Header.Set("Content-Type", writer.FormDataContentType())

		w := httptest.NewRecorder()
		handler.UploadExcel(w, withOperator(req))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "only .xlsx files are accepted")
	})

	t.Run("Unreadable workbook fails as import error", func(t *testing.T) {
		body := &bytes.Buffer{}
		writer := multipart.NewWriter(body)
		writer.WriteField("dry_run", "true")
		fileWriter, _ := writer.CreateFormFile("file", "test.xlsx")
		fileWriter.Write([]byte("not really a workbook"))
		writer.Close()

		req := httptest.NewRequest("POST", "/imports/excel", body)
		req.Header.Set("Content-Type", writer.FormDataContentType())

		w := httptest.NewRecorder()
		handler.UploadExcel(w, withOperator(req))

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Body.String(), "IMPORT_FAILED")
	})
}

func TestIsXLSX(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		expected bool
	}{
		{"Valid xlsx", "test.xlsx", true},
		{"Valid xlsx uppercase", "TEST.XLSX", true},
		{"Valid xlsx mixed case", "Test.XlSx", true},
		{"Invalid xls", "test.xls", false},
		{"Invalid xlsm", "test.xlsm", false},
		{"Invalid txt", "test.txt", false},
		{"No extension", "test", false},
		{"Empty filename", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header := &multipart.FileHeader{
				Filename: tt.filename,
			}
			assert.Equal(t, tt.expected, isXLSX(header))
		})
	}
}

func TestWriteJSON(t *testing.T) {
	w := httptest.NewRecorder()
	data := map[string]interface{}{
		"message": "test",
		"count":   42,
	}

	writeJSON(w, http.StatusOK, data)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)
	assert.Equal(t, "test", response["message"])
	assert.Equal(t, float64(42), response["count"])
}
