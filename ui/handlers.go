package ui

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gomarkdown/markdown"
	"github.com/google/uuid"

	"github.com/shoumique/employee-reporter/adapters/excel"
	"github.com/shoumique/employee-reporter/domain/report"
	"github.com/shoumique/employee-reporter/domain/table"
	"github.com/shoumique/employee-reporter/internal/errors"
	"github.com/shoumique/employee-reporter/ports"
)

// errorStatus maps repository and loader errors onto HTTP statuses by their
// application error code.
func errorStatus(err error) int {
	if errors.GetCode(err) == errors.CodeNotFound {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handleUpload stores a spreadsheet and registers it for reporting.
func (s *Server) handleUpload(c *gin.Context) {
	file, header, err := c.Request.FormFile("excel_file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no file uploaded"})
		return
	}
	defer file.Close()

	if header.Size > s.cfg.Storage.MaxUploadBytes {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("file size %.1f MB exceeds the limit", float64(header.Size)/(1024*1024)),
		})
		return
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	switch ext {
	case ".xlsx", ".csv":
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "only .xlsx and .csv files are allowed"})
		return
	}

	if err := os.MkdirAll(s.cfg.Storage.UploadDir, 0o755); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to prepare upload directory"})
		return
	}

	id := uuid.New().String()
	path := filepath.Join(s.cfg.Storage.UploadDir, id+ext)
	if err := c.SaveUploadedFile(header, path); err != nil {
		log.Printf("[handleUpload] FAILED - saving %s: %v", header.Filename, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store file"})
		return
	}

	up := &ports.Upload{
		ID:               id,
		OriginalFilename: header.Filename,
		FilePath:         path,
		FileSize:         header.Size,
		CreatedAt:        time.Now().UTC(),
	}

	// Read and normalize once up front: rejects broken files early and
	// fills the row/column counts.
	cached, err := s.loadTableFromUpload(c, up)
	if err != nil {
		os.Remove(path)
		log.Printf("[handleUpload] FAILED - processing %s: %v", header.Filename, err)
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("failed to process file: %v", err)})
		return
	}
	up.RowCount = len(cached.table.Rows)
	up.ColumnCount = len(cached.table.Headers)

	if err := s.repo.Create(c.Request.Context(), up); err != nil {
		os.Remove(path)
		s.dropCached(id)
		log.Printf("[handleUpload] FAILED - persisting upload: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to register upload"})
		return
	}

	log.Printf("[handleUpload] Stored %s as %s (%d rows, %d columns)",
		header.Filename, id, up.RowCount, up.ColumnCount)
	c.JSON(http.StatusCreated, gin.H{"upload": up})
}

// loadTableFromUpload normalizes a just-uploaded file and seeds the cache.
func (s *Server) loadTableFromUpload(c *gin.Context, up *ports.Upload) (*cachedTable, error) {
	raw, err := excel.NewReader(up.FilePath).Read()
	if err != nil {
		return nil, err
	}
	normalized, stats := table.Normalize(raw, s.gate)
	cached := &cachedTable{table: normalized, stats: stats, loadedAt: time.Now()}
	s.cacheMutex.Lock()
	s.tableCache[up.ID] = cached
	s.cacheMutex.Unlock()
	return cached, nil
}

func (s *Server) handleListUploads(c *gin.Context) {
	uploads, err := s.repo.List(c.Request.Context(), 100, 0)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list uploads"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"uploads": uploads})
}

func (s *Server) handleDeleteUpload(c *gin.Context) {
	id := c.Param("id")

	up, err := s.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(errorStatus(err), gin.H{"error": "upload not found"})
		return
	}
	if err := s.repo.Delete(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete upload"})
		return
	}
	s.dropCached(id)
	if err := os.Remove(up.FilePath); err != nil && !os.IsNotExist(err) {
		log.Printf("[handleDeleteUpload] file cleanup failed for %s: %v", id, err)
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

// handlePresets lists the available report presets with rendered
// descriptions.
func (s *Server) handlePresets(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"presets": renderedPresets(nil)})
}

// handleSummary is the configure-screen payload: normalized columns, the
// employee list, presets mapped onto this sheet, and column profiles.
func (s *Server) handleSummary(c *gin.Context) {
	id := c.Param("id")

	cached, err := s.loadTable(c.Request.Context(), id)
	if err != nil {
		c.JSON(errorStatus(err), gin.H{"error": fmt.Sprintf("upload unavailable: %v", err)})
		return
	}

	t := cached.table
	payload := gin.H{
		"columns":    t.Headers,
		"row_count":  len(t.Rows),
		"presets":    renderedPresets(t.Headers),
		"conversion": cached.stats,
		"profiles":   profileColumns(t),
	}
	if len(t.Headers) > 0 {
		roles := s.resolveRoles(id, t.Headers)
		payload["employees"] = table.ExtractRecords(t, roles.IDIndex, roles.NameIndex, table.DefaultExtractOptions())
		payload["roles"] = gin.H{
			"id_column":     t.Headers[clampIndex(roles.IDIndex, len(t.Headers))],
			"name_column":   t.Headers[clampIndex(roles.NameIndex, len(t.Headers))],
			"used_fallback": roles.IDFallback || roles.NameFallback,
		}
	}
	c.JSON(http.StatusOK, payload)
}

func (s *Server) handlePresetColumns(c *gin.Context) {
	id := c.Param("id")
	key := c.Param("key")

	if _, ok := report.Find(key); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unknown preset %q", key)})
		return
	}

	cached, err := s.loadTable(c.Request.Context(), id)
	if err != nil {
		c.JSON(errorStatus(err), gin.H{"error": fmt.Sprintf("upload unavailable: %v", err)})
		return
	}

	c.JSON(http.StatusOK, gin.H{"columns": report.Columns(key, cached.table.Headers)})
}

// exportRequest selects what goes into an export.
type exportRequest struct {
	Columns     []string `json:"columns"`
	EmployeeIDs []string `json:"employees"`
	Preset      string   `json:"preset"`
	ReportTitle string   `json:"report_title"`
}

func (r *exportRequest) title() string {
	title := strings.TrimSpace(r.ReportTitle)
	if title == "" {
		return "Employee Report"
	}
	return title
}

// exportTable applies the shared filtering path: rows by employee ids,
// columns by explicit selection or preset. The returned records are the
// per-row id/name keys, taken from the full-width table before any column
// narrowing so a selection that drops the id or name column cannot lose
// them.
func (s *Server) exportTable(c *gin.Context) (table.Table, []table.Record, exportRequest, bool) {
	id := c.Param("id")

	var req exportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid export request"})
		return table.Table{}, nil, req, false
	}

	cached, err := s.loadTable(c.Request.Context(), id)
	if err != nil {
		c.JSON(errorStatus(err), gin.H{"error": fmt.Sprintf("upload unavailable: %v", err)})
		return table.Table{}, nil, req, false
	}

	t := cached.table
	roles := s.resolveRoles(id, t.Headers)

	filtered := table.FilterRows(t, roles.IDIndex, req.EmployeeIDs)
	records := table.RowRecords(filtered, roles.IDIndex, roles.NameIndex)

	columns := req.Columns
	if len(columns) == 0 && req.Preset != "" {
		columns = report.Columns(req.Preset, t.Headers)
	}
	if len(columns) > 0 {
		filtered = filtered.SelectColumns(columns)
	}

	return filtered, records, req, true
}

func (s *Server) handleExportExcel(c *gin.Context) {
	filtered, _, req, ok := s.exportTable(c)
	if !ok {
		return
	}

	data, err := s.excelWriter.Write(filtered, req.title())
	if err != nil {
		log.Printf("[handleExportExcel] FAILED: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build workbook"})
		return
	}

	serveAttachment(c, data, attachmentName(req.title())+".xlsx",
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
}

func (s *Server) handleExportDocx(c *gin.Context) {
	filtered, records, req, ok := s.exportTable(c)
	if !ok {
		return
	}

	data, isZip, err := s.docxWriter.Export(filtered, records, req.title())
	if err != nil {
		log.Printf("[handleExportDocx] FAILED: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build documents"})
		return
	}

	name := attachmentName(req.title())
	if isZip {
		serveAttachment(c, data, name+".zip", "application/zip")
		return
	}
	serveAttachment(c, data, name+".docx",
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document")
}

func serveAttachment(c *gin.Context, data []byte, filename, contentType string) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	// Let browser fetch clients read the filename.
	c.Header("Access-Control-Expose-Headers", "Content-Disposition")
	c.Data(http.StatusOK, contentType, data)
}

func attachmentName(title string) string {
	var b strings.Builder
	for _, r := range title {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == ' ', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return strings.TrimSpace(b.String())
}

// renderedPresets maps presets to their API form, resolving descriptions
// from markdown and, when headers are known, column positions to names.
func renderedPresets(headers []string) []gin.H {
	presets := report.Presets()
	out := make([]gin.H, 0, len(presets))
	for _, p := range presets {
		entry := gin.H{
			"key":         p.Key,
			"label":       p.Label,
			"icon":        p.Icon,
			"description": string(markdown.ToHTML([]byte(p.Description), nil, nil)),
		}
		if headers != nil {
			entry["columns"] = report.Columns(p.Key, headers)
		}
		out = append(out, entry)
	}
	return out
}

func clampIndex(idx, n int) int {
	if idx >= n {
		return n - 1
	}
	if idx < 0 {
		return 0
	}
	return idx
}
