package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/wikisearch/internal/domain"
	"github.com/kailas-cloud/wikisearch/internal/domain/search"
	healthuc "github.com/kailas-cloud/wikisearch/internal/usecase/health"
	indexeruc "github.com/kailas-cloud/wikisearch/internal/usecase/indexer"
	queryuc "github.com/kailas-cloud/wikisearch/internal/usecase/query"
)

// maxBodyBytes caps request bodies; a query tree never gets close.
const maxBodyBytes = 1 << 20

// Error codes returned in ErrorResponse.Code.
const (
	CodeBadRequest    = "bad_request"
	CodeInvalidQuery  = "invalid_query"
	CodeInvalidURL    = "invalid_url"
	CodeUnauthorized  = "unauthorized"
	CodeLookupFailed  = "index_lookup_failed"
	CodePageFetch     = "page_fetch_failed"
	CodeInternalError = "internal_error"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server serves the query and indexing API.
type Server struct {
	query         *queryuc.Service
	indexer       *indexeruc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server. indexer may be nil, in which case
// POST /pages answers 501.
func NewServer(
	query *queryuc.Service,
	indexer *indexeruc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		query:   query,
		indexer: indexer,
		health:  health,
		logger:  logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrInvalidQuery, http.StatusBadRequest, CodeInvalidQuery),
		sentinelHandler(domain.ErrInvalidURL, http.StatusBadRequest, CodeInvalidURL),
		sentinelHandler(search.ErrLookup, http.StatusBadGateway, CodeLookupFailed),
		sentinelHandler(domain.ErrPageFetch, http.StatusBadGateway, CodePageFetch),
	}
	return s
}

// Routes mounts the API handlers on r.
func (s *Server) Routes(r chi.Router) {
	r.Post("/search", s.Search)
	r.Get("/terms/{term}", s.LookupTerm)
	r.Post("/pages", s.IndexPage)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

// SearchRequest is the body of POST /search.
type SearchRequest struct {
	Query *ExprDTO `json:"query"`
	Order string   `json:"order,omitempty"`
}

// SearchResponse is the ranked answer to a query.
type SearchResponse struct {
	Query   string         `json:"query,omitempty"`
	Results []search.Entry `json:"results"`
	Total   int            `json:"total"`
}

// Search handles POST /search.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.Query == nil {
		writeError(w, http.StatusBadRequest, CodeInvalidQuery, "query is required")
		return
	}

	expr, err := req.Query.toExpr(1)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	order, err := queryuc.ParseOrder(req.Order)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	entries, err := s.query.Rank(r.Context(), expr, order)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, SearchResponse{
		Query:   expr.String(),
		Results: nonNil(entries),
		Total:   len(entries),
	})
}

// LookupTerm handles GET /terms/{term}.
func (s *Server) LookupTerm(w http.ResponseWriter, r *http.Request) {
	term := chi.URLParam(r, "term")
	order, err := queryuc.ParseOrder(r.URL.Query().Get("order"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	res, err := s.query.Term(r.Context(), term)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	entries := res.Sort(order.Comparator())
	writeJSON(w, http.StatusOK, SearchResponse{
		Query:   term,
		Results: nonNil(entries),
		Total:   len(entries),
	})
}

// IndexPageRequest is the body of POST /pages.
type IndexPageRequest struct {
	URL   string `json:"url"`
	Force bool   `json:"force,omitempty"`
}

// IndexPage handles POST /pages.
func (s *Server) IndexPage(w http.ResponseWriter, r *http.Request) {
	if s.indexer == nil {
		writeError(w, http.StatusNotImplemented, CodeBadRequest, "indexing is disabled")
		return
	}

	var req IndexPageRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.URL == "" {
		writeError(w, http.StatusBadRequest, CodeInvalidURL, "url is required")
		return
	}

	out, err := s.indexer.IndexURL(r.Context(), req.URL, req.Force)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	status := http.StatusCreated
	if out.Skipped {
		status = http.StatusOK
	}
	writeJSON(w, status, out)
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}
	writeJSON(w, httpStatus, report)
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func nonNil(entries []search.Entry) []search.Entry {
	if entries == nil {
		return []search.Entry{}
	}
	return entries
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a client-safe message. Query validation errors
// carry user input only, so their full text is returned.
func safeDomainMessage(err error) string {
	if errors.Is(err, domain.ErrInvalidQuery) {
		return err.Error()
	}
	sentinels := []error{
		domain.ErrInvalidURL,
		search.ErrLookup,
		domain.ErrPageFetch,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, CodeInternalError, "internal error")
}
