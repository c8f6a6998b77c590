package controllers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fountains-be/models"
	"fountains-be/routes"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	t.Setenv("DATA_DIR", t.TempDir())
	gin.SetMode(gin.TestMode)
	r := gin.New()
	routes.FountainRoutes(r)
	return r
}

func doRequest(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestListFountainsEmpty(t *testing.T) {
	r := setupRouter(t)

	w := doRequest(t, r, http.MethodGet, "/api/v1/fountains", "")
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(0), body["count"])
	assert.Empty(t, body["data"])
}

func TestListFountainsWithFilters(t *testing.T) {
	r := setupRouter(t)

	_, err := models.CreateFountain(models.Fountain{Name: "A", InPark: "Y"})
	require.NoError(t, err)
	_, err = models.CreateFountain(models.Fountain{Name: "B", InPark: "N"})
	require.NoError(t, err)

	w := doRequest(t, r, http.MethodGet, "/api/v1/fountains?inpark=Y&status=working", "")
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, float64(1), body["count"])
}

func TestListFountainsRejectsBadQueryParams(t *testing.T) {
	r := setupRouter(t)

	w := doRequest(t, r, http.MethodGet, "/api/v1/fountains?inpark=X&status=broken", "")
	require.Equal(t, http.StatusBadRequest, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "Invalid query parameters", body["error"])
	assert.Len(t, body["messages"], 2)
}

func TestListFountainsCorruptStorage(t *testing.T) {
	r := setupRouter(t)

	dir := os.Getenv("DATA_DIR")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "fountains.json"), []byte("{broken"), 0o644))

	w := doRequest(t, r, http.MethodGet, "/api/v1/fountains", "")
	require.Equal(t, http.StatusInternalServerError, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "Internal server error", body["error"])
	assert.Equal(t, "Failed to retrieve fountains", body["message"])
}

func TestGetFountainNotFound(t *testing.T) {
	r := setupRouter(t)

	w := doRequest(t, r, http.MethodGet, "/api/v1/fountains/42", "")
	require.Equal(t, http.StatusNotFound, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "Not found", body["error"])
	assert.Contains(t, body["message"], "42")
}

func TestGetFountainRejectsBadID(t *testing.T) {
	r := setupRouter(t)

	for _, id := range []string{"abc", "0", "-3"} {
		w := doRequest(t, r, http.MethodGet, "/api/v1/fountains/"+id, "")
		require.Equal(t, http.StatusBadRequest, w.Code, id)

		body := decodeBody(t, w)
		assert.Equal(t, "Invalid fountain ID", body["error"], id)
	}
}

func TestGetFountainIncludesReports(t *testing.T) {
	r := setupRouter(t)

	id, err := models.CreateFountain(models.Fountain{Name: "With reports"})
	require.NoError(t, err)
	_, err = models.CreateReport(models.Report{FountainID: models.FountainRef(id), IssueType: models.IssueOther})
	require.NoError(t, err)

	w := doRequest(t, r, http.MethodGet, "/api/v1/fountains/1", "")
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	data := body["data"].(map[string]any)
	assert.Equal(t, "With reports", data["name"])
	reports := data["reports"].([]any)
	require.Len(t, reports, 1)
}

func TestUpdateFountainMergesNote(t *testing.T) {
	r := setupRouter(t)

	_, err := models.CreateFountain(models.Fountain{Name: "Keep me", Location: "Somewhere", InPark: "Y"})
	require.NoError(t, err)

	w := doRequest(t, r, http.MethodPut, "/api/v1/fountains/1", `{"note": "fixed"}`)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "Fountain updated successfully", body["message"])

	data := body["data"].(map[string]any)
	assert.Equal(t, "fixed", data["note"])
	assert.Equal(t, "Keep me", data["name"])
	assert.Equal(t, "Somewhere", data["location"])
	assert.Equal(t, "working", data["status"])
}

func TestUpdateFountainAcceptsNumericAccessible(t *testing.T) {
	r := setupRouter(t)

	_, err := models.CreateFountain(models.Fountain{Name: "A"})
	require.NoError(t, err)

	w := doRequest(t, r, http.MethodPut, "/api/v1/fountains/1", `{"accessible": 0}`)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	data := body["data"].(map[string]any)
	assert.Equal(t, false, data["accessible"])
}

func TestUpdateFountainNotFound(t *testing.T) {
	r := setupRouter(t)

	w := doRequest(t, r, http.MethodPut, "/api/v1/fountains/7", `{"note": "x"}`)
	require.Equal(t, http.StatusNotFound, w.Code)

	body := decodeBody(t, w)
	assert.Contains(t, body["message"], "7")
}

func TestUpdateFountainRejectsEmptyBody(t *testing.T) {
	r := setupRouter(t)

	_, err := models.CreateFountain(models.Fountain{Name: "A"})
	require.NoError(t, err)

	w := doRequest(t, r, http.MethodPut, "/api/v1/fountains/1", `{}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "Validation failed", body["error"])
	messages := body["messages"].([]any)
	assert.Contains(t, messages, "At least one field must be provided for update")
}
