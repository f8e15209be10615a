package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	appanalyses "github.com/bryanwahyu/account-risk/internal/application/analyses"
	domain "github.com/bryanwahyu/account-risk/internal/domain/analyses"
	"github.com/bryanwahyu/account-risk/internal/domain/risk"
	"github.com/bryanwahyu/account-risk/internal/logging"
	"github.com/bryanwahyu/account-risk/internal/middleware"
)

// Version is reported by the index endpoint.
const Version = "2.0.0"

// maxBodyBytes keeps a single request from exhausting memory; profiles are tiny.
const maxBodyBytes = 1 << 20

type Router struct {
	svc     *appanalyses.Service
	metrics *middleware.Metrics
}

// NewRouter wires the API routes. metrics may be nil, in which case a
// private registry is created.
func NewRouter(svc *appanalyses.Service, metrics *middleware.Metrics, logger *slog.Logger) http.Handler {
	if metrics == nil {
		metrics = middleware.NewMetrics()
	}
	r := &Router{svc: svc, metrics: metrics}
	mux := chi.NewRouter()

	mux.Use(chimw.Recoverer)
	mux.Use(middleware.Logging(logger))
	mux.Use(metrics.Middleware)
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{middleware.RequestIDHeader},
		MaxAge:         300,
	}))

	checkers := map[string]middleware.HealthChecker{
		"store": &middleware.StoreHealthChecker{Store: svc.Repo},
	}
	mux.Get("/health", middleware.HealthHandler(checkers))
	mux.Get("/health/live", middleware.LivenessHandler)
	mux.Get("/health/ready", middleware.ReadinessHandler(checkers))
	mux.Handle("/metrics", metrics.Handler())

	mux.Get("/", r.wrap(r.handleIndex))
	mux.Get("/docs", r.wrap(r.handleDocs))
	mux.Route("/api", func(rt chi.Router) {
		rt.Post("/analyze", r.wrap(r.handleAnalyze))
		rt.Get("/history", r.wrap(r.handleHistory))
	})

	return mux
}

// apiError carries the status code and client-facing detail for a failure.
type apiError struct {
	status int
	detail string
	err    error
}

func (e *apiError) Error() string { return e.detail }
func (e *apiError) Unwrap() error { return e.err }

func badRequest(err error) error {
	return &apiError{status: http.StatusBadRequest, detail: err.Error(), err: err}
}

func unprocessable(err error) error {
	return &apiError{status: http.StatusUnprocessableEntity, detail: err.Error(), err: err}
}

func internal(prefix string, err error) error {
	return &apiError{status: http.StatusInternalServerError, detail: prefix + err.Error(), err: err}
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		err := h(w, req)
		if err == nil {
			return
		}

		var ae *apiError
		switch {
		case errors.As(err, &ae):
		case errors.Is(err, domain.ErrInvalidProfile):
			ae = &apiError{status: http.StatusUnprocessableEntity, detail: err.Error(), err: err}
		default:
			ae = &apiError{status: http.StatusInternalServerError, detail: err.Error(), err: err}
		}

		log := logging.L(req.Context())
		if ae.status >= http.StatusInternalServerError {
			log.Error("request failed", "path", req.URL.Path, "error", ae.err)
		} else {
			log.Info("request rejected", "path", req.URL.Path, "status", ae.status, "detail", ae.detail)
		}
		writeJSON(w, ae.status, map[string]string{"detail": ae.detail})
	}
}

// GET /
func (r *Router) handleIndex(w http.ResponseWriter, req *http.Request) error {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Instagram Account Risk Detector API",
		"version": Version,
		"status":  "active",
		"docs":    "/docs",
	})
	return nil
}

// POST /api/analyze
// Body: AccountProfile; only username is required.
func (r *Router) handleAnalyze(w http.ResponseWriter, req *http.Request) error {
	p, err := decodeProfile(req)
	if err != nil {
		return err
	}

	rec, err := r.svc.Analyze(req.Context(), p)
	if err != nil {
		return internal("Analysis failed: ", err)
	}
	r.metrics.RecordAnalysis(string(rec.RiskLevel))

	writeJSON(w, http.StatusOK, rec.Assessment)
	return nil
}

// GET /api/history?limit=
func (r *Router) handleHistory(w http.ResponseWriter, req *http.Request) error {
	limit, err := middleware.ParseLimit(req.URL.Query().Get("limit"), domain.DefaultHistoryLimit)
	if err != nil {
		return unprocessable(err)
	}

	list, err := r.svc.History(req.Context(), limit)
	if err != nil {
		return internal("Failed to fetch history: ", err)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"history": list,
		"count":   len(list),
	})
	return nil
}

func decodeProfile(req *http.Request) (risk.AccountProfile, error) {
	var p risk.AccountProfile
	dec := json.NewDecoder(io.LimitReader(req.Body, maxBodyBytes))
	if err := dec.Decode(&p); err != nil {
		var typeErr *json.UnmarshalTypeError
		switch {
		case errors.Is(err, io.EOF):
			return p, badRequest(errors.New("request body is empty"))
		case errors.As(err, &typeErr):
			return p, badRequest(fmt.Errorf("field %s must be %s", typeErr.Field, typeErr.Type))
		default:
			return p, badRequest(fmt.Errorf("invalid JSON body: %w", err))
		}
	}
	// exactly one JSON value; only whitespace may follow it
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return p, badRequest(errors.New("invalid JSON body: unexpected data after the profile object"))
	}
	if err := middleware.ValidateStruct(p); err != nil {
		return p, fmt.Errorf("%w: %v", domain.ErrInvalidProfile, err)
	}
	return p, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
