package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/advsearch/internal/domain"
	"github.com/kailas-cloud/advsearch/internal/domain/search"
	"github.com/kailas-cloud/advsearch/internal/domain/user"
	logpkg "github.com/kailas-cloud/advsearch/internal/logger"
	healthuc "github.com/kailas-cloud/advsearch/internal/usecase/health"
	hookuc "github.com/kailas-cloud/advsearch/internal/usecase/hook"
	"github.com/kailas-cloud/advsearch/internal/version"
)

// maxBodyBytes caps hook request bodies; a search URL plus params is small.
const maxBodyBytes = 64 << 10

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

// Server serves the host-facing hook API.
type Server struct {
	hook          *hookuc.Service
	health        *healthuc.Service
	defaultLang   string
	metrics       http.Handler
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server. defaultLang is used when the host sends no lang.
func NewServer(hook *hookuc.Service, health *healthuc.Service, defaultLang string, logger *zap.Logger) *Server {
	s := &Server{
		hook:        hook,
		health:      health,
		defaultLang: defaultLang,
		metrics:     promhttp.Handler(),
		logger:      logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrInvalidRequest, http.StatusBadRequest, ErrorResponseCodeValidationFailed, true),
		sentinelHandler(domain.ErrStoreUnavailable, http.StatusServiceUnavailable, ErrorResponseCodeStoreUnavailable, false),
	}
	return s
}

// WithMetricsHandler replaces the /metrics handler (e.g. for a custom registry).
func (s *Server) WithMetricsHandler(h http.Handler) *Server {
	s.metrics = h
	return s
}

// Routes registers all endpoints on r.
func (s *Server) Routes(r chi.Router) {
	r.Post("/hooks/search-results-prepend", s.SearchResultsPrepend)
	r.Get("/preferences", s.Preferences)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

// SearchResultsPrepend handles POST /hooks/search-results-prepend.
func (s *Server) SearchResultsPrepend(w http.ResponseWriter, r *http.Request) {
	var body PrependRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, ErrorResponseCodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	req, err := requestFromDTO(body.Request)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	lang := body.Lang
	if lang == "" {
		lang = s.defaultLang
	}

	u := user.Identity{ID: body.User.ID, Name: body.User.Name, Named: body.User.Named}
	ctx := logpkg.WithFields(r.Context(), zap.Int64("user_id", u.ID), zap.String("lang", lang))
	out, err := s.hook.SearchResultsPrepend(ctx, req, u, lang)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, PrependResponse{
		Active:       out.Active,
		HTML:         out.HTML,
		Modules:      out.Modules,
		ModuleStyles: out.ModuleStyles,
		ConfigVars:   out.ConfigVars,
	})
}

// Preferences handles GET /preferences.
func (s *Server) Preferences(w http.ResponseWriter, _ *http.Request) {
	defs := s.hook.Preferences()
	items := make([]PreferenceDTO, len(defs))
	for i, d := range defs {
		items[i] = PreferenceDTO{
			Key:          d.Key,
			Type:         d.Type,
			LabelMessage: d.LabelMessage,
			Section:      d.Section,
			HelpMessage:  d.HelpMessage,
		}
	}
	writeJSON(w, http.StatusOK, PreferencesResponse{Items: items})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	status := http.StatusOK
	if report.Status != healthuc.Healthy {
		status = http.StatusServiceUnavailable
	}

	writeJSON(w, status, HealthResponse{
		Status:  string(report.Status),
		Version: version.String(),
		Checks:  checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	s.metrics.ServeHTTP(w, r)
}

func requestFromDTO(d SearchRequestDTO) (search.Request, error) {
	if d.Params == nil {
		return search.RequestFromURL(d.URL) //nolint:wrapcheck // domain error already carries context
	}
	return search.NewRequest(d.Params, d.URL) //nolint:wrapcheck // domain error already carries context
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorResponseCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// sentinelHandler maps sentinel to status. Unless detailed, the client only sees
// the sentinel text so store addresses and driver errors stay internal.
func sentinelHandler(sentinel error, status int, code ErrorResponseCode, detailed bool) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		msg := sentinel.Error()
		if detailed {
			msg = err.Error()
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := logpkg.FromContext(r.Context())
	log.Warn("domain error", zap.Error(err))
	for _, h := range s.errorHandlers {
		if h(w, err) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, ErrorResponseCodeInternalError, "internal error")
}
