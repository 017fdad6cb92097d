package httpserver

import (
	"encoding/json"
	"io"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	appassess "github.com/autolens/damage-api/internal/application/assessments"
	domain "github.com/autolens/damage-api/internal/domain/assessment"
	"github.com/autolens/damage-api/internal/middleware"
)

type Router struct {
	svc *appassess.Service
}

// NewRouter wires the HTTP surface: one endpoint to submit an image,
// one to read history, plus health and metrics.
func NewRouter(svc *appassess.Service, allowedOrigins []string, checkers map[string]middleware.HealthChecker) http.Handler {
	r := &Router{svc: svc}
	mux := chi.NewRouter()

	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
	}))
	mux.Use(middleware.LoggingMiddleware)
	mux.Use(middleware.MetricsMiddleware)

	mux.Get("/health", middleware.HealthHandler(checkers))
	mux.Get("/metrics", middleware.MetricsHandler)

	mux.Post("/analyze", r.handleAnalyze)
	mux.Get("/history", r.wrap(r.handleHistory))

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if err := h(w, req); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	}
}

// POST /analyze
// Multipart form with an image under "file". The response always has
// the {"analysis": ...} shape: on any failure the inner object carries
// an "error" field instead of analysis data, and nothing is persisted.
func (r *Router) handleAnalyze(w http.ResponseWriter, req *http.Request) {
	middleware.IncrementAnalyses()

	req.Body = http.MaxBytesReader(w, req.Body, middleware.MaxUploadBytes+1<<20)
	file, header, err := req.FormFile("file")
	if err != nil {
		r.writeAnalyzeError(w, req, err)
		return
	}
	defer file.Close()

	if err := middleware.ValidateUpload(header.Filename, header.Size); err != nil {
		r.writeAnalyzeError(w, req, err)
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		r.writeAnalyzeError(w, req, err)
		return
	}

	analysis, err := r.svc.Analyze(req.Context(), data, header.Filename)
	if err != nil {
		r.writeAnalyzeError(w, req, err)
		return
	}

	writeJSON(w, map[string]any{"analysis": analysis})
}

// GET /history
func (r *Router) handleHistory(w http.ResponseWriter, req *http.Request) error {
	list, err := r.svc.History(req.Context())
	if err != nil {
		return err
	}
	if list == nil {
		// empty history serializes as [], not null
		list = []*domain.Assessment{}
	}
	writeJSON(w, list)
	return nil
}

func (r *Router) writeAnalyzeError(w http.ResponseWriter, req *http.Request, err error) {
	middleware.IncrementAnalysesFailed()
	log.Printf("analyze error: path=%s err=%v", req.URL.Path, err)
	writeJSON(w, map[string]any{
		"analysis": map[string]string{"error": err.Error()},
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write response: %v", err)
	}
}
