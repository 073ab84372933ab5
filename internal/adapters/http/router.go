package httpadapter

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/oapi-codegen/runtime"

	"github.com/ymatsuda/docfiler/internal/core/ports"
	"github.com/ymatsuda/docfiler/internal/observability/metrics"
)

const serviceName = "api"

type Router struct {
	ingestUC ports.DocumentIngestor
	searchUC ports.DocumentSearcher
	exportUC ports.LogExportService
	repo     ports.DocumentRepository
	metrics  *metrics.HTTPServerMetrics
	opts     Options
}

type Options struct {
	MaxUploadBytes  int64
	RateLimitPerSec float64
	RateLimitBurst  int
	MaxConcurrent   int
}

func NewRouter(
	ingestUC ports.DocumentIngestor,
	searchUC ports.DocumentSearcher,
	exportUC ports.LogExportService,
	repo ports.DocumentRepository,
	serverMetrics *metrics.HTTPServerMetrics,
	opts Options,
) *Router {
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = 32 << 20
	}
	return &Router{
		ingestUC: ingestUC,
		searchUC: searchUC,
		exportUC: exportUC,
		repo:     repo,
		metrics:  serverMetrics,
		opts:     opts,
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", rt.healthz)
	if rt.metrics != nil {
		mux.Handle("/metrics", rt.metrics.Handler())
	}
	mux.HandleFunc("/v1/documents", rt.uploadDocument)
	mux.HandleFunc("/v1/documents/", rt.getDocumentByID)
	mux.HandleFunc("/v1/search", rt.searchDocuments)
	mux.HandleFunc("/v1/export/log.xlsx", rt.exportLog)

	handler := http.Handler(mux)
	handler = requestValidationMiddleware(handler)
	if rt.opts.MaxConcurrent > 0 {
		handler = backpressureMiddleware(handler, rt.opts.MaxConcurrent, defaultBackpressureWait)
	}
	if rt.opts.RateLimitPerSec > 0 {
		handler = rateLimitMiddleware(handler, rt.opts.RateLimitPerSec, rt.opts.RateLimitBurst)
	}
	if rt.metrics != nil {
		handler = rt.metrics.Middleware(serviceName, handler)
	}
	handler = accessLogMiddleware(handler)
	handler = requestIDMiddleware(handler)
	return handler
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (rt *Router) uploadDocument(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, rt.opts.MaxUploadBytes)
	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "multipart field 'file' is required"})
		return
	}
	defer file.Close()

	doc, err := rt.ingestUC.Upload(
		r.Context(),
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		file,
	)
	if err != nil {
		writeError(w, err)
		return
	}

	if rt.metrics != nil {
		rt.metrics.RecordUpload(serviceName, doc.MimeType, fileHeader.Size)
	}
	writeJSON(w, http.StatusAccepted, doc)
}

func (rt *Router) getDocumentByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/v1/documents/")
	if id == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "document id is required"})
		return
	}

	doc, err := rt.repo.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (rt *Router) searchDocuments(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	var patient string
	if err := runtime.BindQueryParameter("form", true, true, "patient", r.URL.Query(), &patient); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "query parameter 'patient' is required"})
		return
	}
	limit := 0
	if r.URL.Query().Has("limit") {
		if err := runtime.BindQueryParameter("form", true, false, "limit", r.URL.Query(), &limit); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "query parameter 'limit' must be an integer"})
			return
		}
	}

	docs, err := rt.searchUC.SearchByPatient(r.Context(), patient, limit)
	if err != nil {
		writeError(w, err)
		return
	}

	if rt.metrics != nil {
		rt.metrics.RecordSearch(serviceName, len(docs))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"count":     len(docs),
		"documents": docs,
	})
}

func (rt *Router) exportLog(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	limit := 0
	if r.URL.Query().Has("limit") {
		if err := runtime.BindQueryParameter("form", true, false, "limit", r.URL.Query(), &limit); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "query parameter 'limit' must be an integer"})
			return
		}
	}

	workbook, err := rt.exportUC.ExportLog(r.Context(), limit)
	if err != nil {
		writeError(w, err)
		return
	}

	if rt.metrics != nil {
		rt.metrics.RecordExport(serviceName, len(workbook))
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="filing_log.xlsx"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(workbook)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
}
