// Package ui exposes the employee-reporter JSON API: upload a spreadsheet,
// inspect its normalized columns and employees, and export filtered Excel
// or per-employee Word reports.
package ui

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/singleflight"

	"github.com/shoumique/employee-reporter/adapters/docx"
	"github.com/shoumique/employee-reporter/adapters/excel"
	"github.com/shoumique/employee-reporter/domain/bangla"
	"github.com/shoumique/employee-reporter/domain/table"
	"github.com/shoumique/employee-reporter/internal/config"
	"github.com/shoumique/employee-reporter/ports"
)

// cacheTTL bounds how long a normalized table is served without re-reading
// the uploaded file.
const cacheTTL = 5 * time.Minute

type cachedTable struct {
	table    table.Table
	stats    table.NormalizeStats
	loadedAt time.Time
}

// Server is the web server for the employee reporter.
type Server struct {
	router *gin.Engine
	cfg    *config.Config
	repo   ports.UploadRepository
	gate   *bangla.Gate
	roles  table.RolesConfig

	excelWriter *excel.Writer
	docxWriter  *docx.Writer

	// Normalized-table caching; loads are deduplicated so concurrent
	// requests for the same upload read the file once.
	tableCache map[string]*cachedTable
	cacheMutex sync.RWMutex
	loadGroup  singleflight.Group
}

// NewServer wires the server with its repository and converter.
func NewServer(cfg *config.Config, repo ports.UploadRepository, conv ports.Converter) *Server {
	gin.SetMode(cfg.Server.GinMode)

	s := &Server{
		router:      gin.Default(),
		cfg:         cfg,
		repo:        repo,
		gate:        bangla.NewGate(conv),
		roles:       table.DefaultRoles(),
		excelWriter: excel.NewWriter(),
		docxWriter:  docx.NewWriter(),
		tableCache:  make(map[string]*cachedTable),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handleHealth)

	api := s.router.Group("/api")
	{
		api.GET("/presets", s.handlePresets)

		api.POST("/uploads", s.handleUpload)
		api.GET("/uploads", s.handleListUploads)
		api.DELETE("/uploads/:id", s.handleDeleteUpload)

		api.GET("/uploads/:id/summary", s.handleSummary)
		api.GET("/uploads/:id/presets/:key/columns", s.handlePresetColumns)
		api.POST("/uploads/:id/export/excel", s.handleExportExcel)
		api.POST("/uploads/:id/export/docx", s.handleExportDocx)
	}
}

// Run starts the HTTP server on the configured port.
func (s *Server) Run() error {
	addr := ":" + s.cfg.Server.Port
	log.Printf("[Server] Listening on %s", addr)
	return s.router.Run(addr)
}

// loadTable returns the normalized table for an upload, reading and
// converting the file on a cache miss.
func (s *Server) loadTable(ctx context.Context, id string) (*cachedTable, error) {
	s.cacheMutex.RLock()
	if cached, ok := s.tableCache[id]; ok && time.Since(cached.loadedAt) < cacheTTL {
		s.cacheMutex.RUnlock()
		return cached, nil
	}
	s.cacheMutex.RUnlock()

	result, err, _ := s.loadGroup.Do(id, func() (any, error) {
		up, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}

		raw, err := excel.NewReader(up.FilePath).Read()
		if err != nil {
			return nil, fmt.Errorf("failed to read upload %s: %w", id, err)
		}

		normalized, stats := table.Normalize(raw, s.gate)
		log.Printf("[Server] Upload %s normalized: %d converted, %d rejected, %d passthrough",
			id, stats.Converted, stats.Rejected, stats.Passthrough)

		cached := &cachedTable{table: normalized, stats: stats, loadedAt: time.Now()}
		s.cacheMutex.Lock()
		s.tableCache[id] = cached
		s.cacheMutex.Unlock()
		return cached, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*cachedTable), nil
}

// resolveRoles locates the id and name columns, logging when a positional
// fallback had to be used.
func (s *Server) resolveRoles(id string, headers []string) table.RoleAssignment {
	roles := table.ResolveRoles(headers, s.roles)
	if roles.IDFallback || roles.NameFallback {
		log.Printf("[Server] Upload %s: positional fallback used for column roles (id=%v name=%v)",
			id, roles.IDFallback, roles.NameFallback)
	}
	return roles
}

func (s *Server) dropCached(id string) {
	s.cacheMutex.Lock()
	delete(s.tableCache, id)
	s.cacheMutex.Unlock()
}
