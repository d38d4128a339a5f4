package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	appanalyses "github.com/belalnote2/InsightAssistant/internal/application/analyses"
	domanalysis "github.com/belalnote2/InsightAssistant/internal/domain/analysis"
	domfailures "github.com/belalnote2/InsightAssistant/internal/domain/failures"
	"github.com/belalnote2/InsightAssistant/internal/middleware"
)

type Router struct {
	svc      *appanalyses.Service
	failures domfailures.Repository // optional
}

func NewRouter(svc *appanalyses.Service, failures domfailures.Repository, checkers map[string]middleware.HealthChecker) http.Handler {
	r := &Router{svc: svc, failures: failures}
	mux := chi.NewRouter()

	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	mux.Get("/health", middleware.HealthHandler(checkers))
	mux.Get("/ready", middleware.ReadinessHandler)
	mux.Get("/live", middleware.LivenessHandler)
	mux.Get("/metrics", middleware.MetricsHandler)

	mux.Post("/analyze", r.wrap(r.handleAnalyze))
	mux.Get("/analyses/latest", r.wrap(r.handleLatest))
	mux.Get("/export", r.wrap(r.handleExport))
	mux.Post("/export/archive", r.wrap(r.handleArchiveExport))
	mux.Get("/failures/latest", r.wrap(r.handleFailuresLatest))

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

// badRequestError marks caller mistakes so wrap maps them to 400.
type badRequestError struct{ msg string }

func (e *badRequestError) Error() string { return e.msg }

func badRequest(msg string) error { return &badRequestError{msg: msg} }

func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if err := h(w, req); err != nil {
			status := http.StatusInternalServerError
			var br *badRequestError
			switch {
			case errors.As(err, &br):
				status = http.StatusBadRequest
			case errors.Is(err, appanalyses.ErrNoSnapshotStore):
				status = http.StatusServiceUnavailable
			}
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(status)
			json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
		}
	}
}

// POST /analyze
// Accepts a form field "text" or a JSON body {"text": "..."} and responds
// with {summary, persons, category, id}. Analysis itself cannot fail; an
// error here is always the persistence layer refusing the row.
func (r *Router) handleAnalyze(w http.ResponseWriter, req *http.Request) error {
	text, err := articleText(req)
	if err != nil {
		return err
	}
	if err := middleware.ValidateArticleText(text); err != nil {
		return badRequest(err.Error())
	}

	entry, err := r.svc.AnalyzeAndStore(req.Context(), text)
	if err != nil {
		return err
	}
	middleware.IncrementAnalyses()

	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(map[string]any{
		"summary":  entry.Summary,
		"persons":  entry.Persons,
		"category": entry.Category,
		"id":       entry.ID,
	})
}

func articleText(req *http.Request) (string, error) {
	ct := req.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "application/json") {
		var body struct {
			Text string `json:"text"`
		}
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			return "", badRequest("invalid JSON body")
		}
		return strings.TrimSpace(body.Text), nil
	}
	return strings.TrimSpace(req.FormValue("text")), nil
}

// GET /analyses/latest?limit=10
func (r *Router) handleLatest(w http.ResponseWriter, req *http.Request) error {
	limit, _ := strconv.Atoi(req.URL.Query().Get("limit"))
	limit = middleware.ValidateLimit(limit)

	list, err := r.svc.Latest(req.Context(), limit)
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(list)
}

// GET /export
// Bulk download of every stored analysis, full fields.
func (r *Router) handleExport(w http.ResponseWriter, req *http.Request) error {
	list, err := r.svc.Export(req.Context())
	if err != nil {
		return err
	}
	if list == nil {
		list = []*domanalysis.Analysis{} // empty array, not null
	}
	middleware.IncrementExports()
	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(list)
}

// POST /export/archive
// Uploads the current export to object storage; 503 when not configured.
func (r *Router) handleArchiveExport(w http.ResponseWriter, req *http.Request) error {
	url, err := r.svc.ArchiveExport(req.Context())
	if err != nil {
		return err
	}
	middleware.IncrementExports()
	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(map[string]string{"url": url})
}

// GET /failures/latest?limit=20
func (r *Router) handleFailuresLatest(w http.ResponseWriter, req *http.Request) error {
	if r.failures == nil {
		return badRequest("failure audit not available for this store")
	}
	limit, _ := strconv.Atoi(req.URL.Query().Get("limit"))
	limit = middleware.ValidateLimit(limit)

	list, err := r.failures.Recent(req.Context(), limit)
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(list)
}
