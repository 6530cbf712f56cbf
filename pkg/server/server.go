package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/yurifrl/termsheet/pkg/config"
	"github.com/yurifrl/termsheet/pkg/models"
	"github.com/yurifrl/termsheet/pkg/parser"
	"github.com/yurifrl/termsheet/pkg/service"
	"github.com/yurifrl/termsheet/pkg/workbook"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	// Extracted workbooks stay downloadable for cacheTTL; at most
	// maxCachedFiles are kept, oldest evicted first.
	cacheTTL       = 30 * time.Minute
	maxCachedFiles = 100
)

// Server converts uploaded term sheets over HTTP.
type Server struct {
	config    *config.Config
	logger    *log.Logger
	mux       *http.ServeMux
	processor *service.Processor
	writer    *workbook.Writer
	files     sync.Map
	ttl       time.Duration
	maxFiles  int
	now       func() time.Time
}

// cachedFile is a generated workbook kept for re-download.
type cachedFile struct {
	name    string
	data    []byte
	created time.Time
}

type conversion struct {
	id    string
	sheet *models.TermSheet
	file  cachedFile
}

// New creates a new HTTP server
func New(config *config.Config, logger *log.Logger) *Server {
	s := &Server{
		config:    config,
		logger:    logger,
		mux:       http.NewServeMux(),
		processor: service.NewProcessor(config, logger),
		writer:    workbook.New(logger),
		ttl:       cacheTTL,
		maxFiles:  maxCachedFiles,
		now:       time.Now,
	}
	s.setupRoutes()
	return s
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start starts the HTTP server
func (s *Server) Start(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return srv.ListenAndServe()
}

func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/health", s.withLogging(s.handleHealth))
	s.mux.HandleFunc("/api/convert", s.withLogging(s.handleConvert))
	s.mux.HandleFunc("/api/extract", s.withLogging(s.handleExtract))
	s.mux.HandleFunc("/api/files/", s.withLogging(s.handleFiles))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}); err != nil {
		s.logger.Warn("failed to write json response", "err", err)
	}
}

// ---------------- conversion handlers ----------------

// handleConvert returns the workbook for the uploaded document. The client
// receives it in full, so nothing is cached.
func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	c, ok := s.convertUpload(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", c.file.name))
	if _, err := w.Write(c.file.data); err != nil {
		s.logger.Warn("failed to write workbook response", "err", err)
	}
}

// extractResponse is the JSON body of /api/extract.
type extractResponse struct {
	Status  string              `json:"status"`
	ID      string              `json:"id"`
	File    string              `json:"file"`
	Fields  *models.Registry    `json:"fields"`
	Coupons []string            `json:"coupons,omitempty"`
	Debug   []models.DebugEntry `json:"debug,omitempty"`
}

// handleExtract returns the extracted fields as JSON. The workbook stays
// available under /api/files/{id}.
func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	c, ok := s.convertUpload(w, r)
	if !ok {
		return
	}
	s.cache(c.id, c.file)

	if err := s.writeJSON(w, http.StatusOK, extractResponse{
		Status:  "success",
		ID:      c.id,
		File:    c.file.name,
		Fields:  c.sheet.Fields,
		Coupons: c.sheet.Coupons,
		Debug:   c.sheet.Debug,
	}); err != nil {
		s.logger.Warn("failed to write json response", "err", err)
	}
}

// convertUpload runs the pipeline for the multipart "document" field and
// builds the resulting workbook. On failure the error response has already
// been written.
func (s *Server) convertUpload(w http.ResponseWriter, r *http.Request) (conversion, bool) {
	if r.Method != http.MethodPost {
		s.respondError(w, r, http.StatusMethodNotAllowed, "method not allowed", nil)
		return conversion{}, false
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.config.MaxUploadBytes())
	file, header, err := r.FormFile("document")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.respondError(w, r, http.StatusRequestEntityTooLarge, "document too large", err)
			return conversion{}, false
		}
		s.respondError(w, r, http.StatusBadRequest, "document file required", err)
		return conversion{}, false
	}
	defer file.Close()

	if !parser.Supported(header.Filename) {
		s.respondError(w, r, http.StatusBadRequest, "unsupported file type", nil)
		return conversion{}, false
	}

	data, err := io.ReadAll(file)
	if err != nil {
		s.respondError(w, r, http.StatusInternalServerError, "failed to read file", err)
		return conversion{}, false
	}

	opts, err := s.options(r)
	if err != nil {
		s.respondError(w, r, http.StatusBadRequest, "invalid debug value", err)
		return conversion{}, false
	}

	sheet, err := s.processor.ConvertBytes(data, header.Filename, opts)
	if err != nil {
		s.respondError(w, r, http.StatusBadRequest, "failed to process document", err)
		return conversion{}, false
	}

	var buf bytes.Buffer
	if err := s.writer.Write(&buf, sheet); err != nil {
		s.respondError(w, r, http.StatusInternalServerError, "failed to build workbook", err)
		return conversion{}, false
	}

	c := conversion{
		id:    uuid.NewString(),
		sheet: sheet,
		file: cachedFile{
			name:    strings.TrimSuffix(header.Filename, filepath.Ext(header.Filename)) + ".xlsx",
			data:    buf.Bytes(),
			created: s.now(),
		},
	}
	s.logger.Info("converted document", "file", header.Filename, "id", c.id, "fields", sheet.Fields.Len())

	return c, true
}

// options reads processing_date and debug from the form, falling back to the
// server configuration.
func (s *Server) options(r *http.Request) (service.Options, error) {
	opts := s.processor.Options()
	if date := strings.TrimSpace(r.FormValue("processing_date")); date != "" {
		opts.ProcessingDate = date
	}
	if raw := r.FormValue("debug"); raw != "" {
		debug, err := strconv.ParseBool(raw)
		if err != nil {
			return opts, err
		}
		opts.Debug = debug
	}
	return opts, nil
}

// ---------------- file download handler ----------------

func (s *Server) handleFiles(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.respondError(w, r, http.StatusMethodNotAllowed, "method not allowed", nil)
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/files/")
	if id == "" {
		s.respondError(w, r, http.StatusBadRequest, "id required", nil)
		return
	}

	value, ok := s.files.Load(id)
	if !ok {
		s.respondError(w, r, http.StatusNotFound, "file not found", nil)
		return
	}
	file, ok := value.(cachedFile)
	if !ok {
		s.respondError(w, r, http.StatusInternalServerError, "internal type assertion error", nil)
		return
	}
	if s.expired(file) {
		s.files.Delete(id)
		s.respondError(w, r, http.StatusNotFound, "file not found", nil)
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", file.name))
	if _, err := w.Write(file.data); err != nil {
		s.logger.Warn("failed to write workbook response", "err", err)
	}
}

// --- cache ---

// cache stores file under id after dropping expired entries and, when the
// cache is full, the oldest ones.
func (s *Server) cache(id string, file cachedFile) {
	type entry struct {
		id      string
		created time.Time
	}
	var live []entry
	s.files.Range(func(key, value any) bool {
		f := value.(cachedFile)
		if s.expired(f) {
			s.files.Delete(key)
			return true
		}
		live = append(live, entry{id: key.(string), created: f.created})
		return true
	})

	sort.Slice(live, func(i, j int) bool { return live[i].created.Before(live[j].created) })
	for len(live) >= s.maxFiles && len(live) > 0 {
		s.files.Delete(live[0].id)
		live = live[1:]
	}

	s.files.Store(id, file)
}

func (s *Server) expired(f cachedFile) bool {
	return s.now().Sub(f.created) > s.ttl
}

// --- helpers ---

// writeJSON encodes v as JSON with the given status and writes headers.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

// respondError logs the error and returns a minimal JSON error body.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, status int, message string, err error) {
	if err != nil {
		s.logger.Warn("request error", "status", status, "msg", message, "err", err, "method", r.Method, "path", r.URL.Path)
	} else {
		s.logger.Warn("request error", "status", status, "msg", message, "method", r.Method, "path", r.URL.Path)
	}
	_ = s.writeJSON(w, status, map[string]string{
		"status": "error",
		"error":  message,
	})
}

// withLogging wraps a handler to log request start/end and recover panics.
func (s *Server) withLogging(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.logger.Debug("http request", "method", r.Method, "path", r.URL.Path, "remote", r.RemoteAddr)
		defer func() {
			if rec := recover(); rec != nil {
				s.logger.Error("panic recovered", "panic", rec, "method", r.Method, "path", r.URL.Path)
				s.respondError(w, r, http.StatusInternalServerError, "internal server error", fmt.Errorf("panic: %v", rec))
			}
		}()
		next(w, r)
	}
}
