package ui

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/shoumique/employee-reporter/adapters/bijoy"
	"github.com/shoumique/employee-reporter/internal/config"
	apperrors "github.com/shoumique/employee-reporter/internal/errors"
	"github.com/shoumique/employee-reporter/ports"
)

// memRepo is an in-memory ports.UploadRepository for handler tests.
type memRepo struct {
	mu      sync.Mutex
	uploads map[string]*ports.Upload
}

func newMemRepo() *memRepo {
	return &memRepo{uploads: make(map[string]*ports.Upload)}
}

func (r *memRepo) Create(_ context.Context, up *ports.Upload) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.uploads[up.ID] = up
	return nil
}

func (r *memRepo) GetByID(_ context.Context, id string) (*ports.Upload, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	up, ok := r.uploads[id]
	if !ok {
		return nil, apperrors.NotFound("upload")
	}
	return up, nil
}

func (r *memRepo) List(_ context.Context, limit, offset int) ([]*ports.Upload, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*ports.Upload, 0, len(r.uploads))
	for _, up := range r.uploads {
		out = append(out, up)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.uploads, id)
	return nil
}

func newTestServer(t *testing.T) (*Server, *memRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Server:  config.ServerConfig{Port: "0", GinMode: gin.TestMode},
		Storage: config.StorageConfig{UploadDir: t.TempDir(), MaxUploadBytes: 50 * 1024 * 1024},
	}
	repo := newMemRepo()
	return NewServer(cfg, repo, bijoy.New()), repo
}

func uploadCSV(t *testing.T, s *Server, filename, content string) string {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("excel_file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/uploads", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp struct {
		Upload ports.Upload `json:"upload"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Upload.ID
}

// Bijoy-encoded fixture. The "bvg" header converts to the Bengali word for
// name, so the role resolver finds it by exact match.
const fixtureCSV = "id,bvg,designation\n101,Avgvi,Officer\n102,evsjv,Clerk\n"

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ok"`)
}

func TestUploadRejectsUnknownExtension(t *testing.T) {
	s, _ := newTestServer(t)

	// Legacy BIFF .xls is rejected up front: the xlsx reader cannot open it.
	for _, filename := range []string{"report.pdf", "employees.xls"} {
		var body bytes.Buffer
		w := multipart.NewWriter(&body)
		part, err := w.CreateFormFile("excel_file", filename)
		require.NoError(t, err)
		_, err = part.Write([]byte{0xD0, 0xCF, 0x11, 0xE0})
		require.NoError(t, err)
		require.NoError(t, w.Close())

		req := httptest.NewRequest(http.MethodPost, "/api/uploads", &body)
		req.Header.Set("Content-Type", w.FormDataContentType())
		rec := httptest.NewRecorder()
		s.router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code, filename)
	}
}

func TestUploadAndSummary(t *testing.T) {
	s, repo := newTestServer(t)
	id := uploadCSV(t, s, "employees.csv", fixtureCSV)

	stored, err := repo.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.RowCount)
	assert.Equal(t, 3, stored.ColumnCount)

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/uploads/"+id+"/summary", nil))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Columns   []string `json:"columns"`
		RowCount  int      `json:"row_count"`
		Employees []struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"employees"`
		Roles struct {
			IDColumn   string `json:"id_column"`
			NameColumn string `json:"name_column"`
		} `json:"roles"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, []string{"id", "নাম", "designation"}, resp.Columns)
	assert.Equal(t, 2, resp.RowCount)
	assert.Equal(t, "id", resp.Roles.IDColumn)
	assert.Equal(t, "নাম", resp.Roles.NameColumn)

	require.Len(t, resp.Employees, 2)
	assert.Equal(t, "101", resp.Employees[0].ID)
	assert.Equal(t, "আমার", resp.Employees[0].Name)
	assert.Equal(t, "বাংলা", resp.Employees[1].Name)
}

func TestSummaryUnknownUpload(t *testing.T) {
	s, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/uploads/nope/summary", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPresetColumns(t *testing.T) {
	s, _ := newTestServer(t)
	id := uploadCSV(t, s, "employees.csv", fixtureCSV)

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet,
		"/api/uploads/"+id+"/presets/basic_info/columns", nil))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Columns []string `json:"columns"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	// Only positions that exist in this narrow sheet survive.
	for _, col := range resp.Columns {
		assert.Contains(t, []string{"id", "নাম", "designation"}, col)
	}

	rec = httptest.NewRecorder()
	s.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet,
		"/api/uploads/"+id+"/presets/bogus/columns", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExportExcelFiltersRows(t *testing.T) {
	s, _ := newTestServer(t)
	id := uploadCSV(t, s, "employees.csv", fixtureCSV)

	body, err := json.Marshal(map[string]any{
		"employees":    []string{"101"},
		"report_title": "Officer Report",
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/uploads/"+id+"/export/excel", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "Officer Report.xlsx")

	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetList()[0])
	require.NoError(t, err)
	require.Len(t, rows, 2) // header + the one selected employee
	assert.Equal(t, "101", rows[1][0])
}

func TestExportDocxSingleAndZip(t *testing.T) {
	s, _ := newTestServer(t)
	id := uploadCSV(t, s, "employees.csv", fixtureCSV)

	post := func(payload map[string]any) *httptest.ResponseRecorder {
		body, err := json.Marshal(payload)
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodPost, "/api/uploads/"+id+"/export/docx", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		s.router.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		return rec
	}

	one := post(map[string]any{"employees": []string{"101"}})
	assert.Contains(t, one.Header().Get("Content-Disposition"), ".docx")

	all := post(map[string]any{})
	assert.Contains(t, all.Header().Get("Content-Disposition"), ".zip")
	assert.Equal(t, "application/zip", all.Header().Get("Content-Type"))
}

func TestExportDocxNamesSurviveColumnSelection(t *testing.T) {
	s, _ := newTestServer(t)
	id := uploadCSV(t, s, "employees.csv", fixtureCSV)

	// A column selection that drops both the id and name columns must not
	// change the per-employee filenames.
	body, err := json.Marshal(map[string]any{"columns": []string{"designation"}})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/uploads/"+id+"/export/docx", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	zr, err := zip.NewReader(bytes.NewReader(rec.Body.Bytes()), int64(rec.Body.Len()))
	require.NoError(t, err)

	names := make([]string, 0, len(zr.File))
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	assert.ElementsMatch(t, []string{"আমার_101.docx", "বাংলা_102.docx"}, names)
}

func TestDeleteUploadDropsCache(t *testing.T) {
	s, _ := newTestServer(t)
	id := uploadCSV(t, s, "employees.csv", fixtureCSV)

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/uploads/"+id, nil))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	s.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/uploads/"+id+"/summary", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListPresets(t *testing.T) {
	s, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/presets", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Presets []struct {
			Key         string `json:"key"`
			Description string `json:"description"`
		} `json:"presets"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Presets)
	// Descriptions are rendered from markdown to HTML.
	assert.Contains(t, resp.Presets[0].Description, "<")
}
