package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	webflow "github.com/mpoindexter/spring-webflow"
	"github.com/mpoindexter/spring-webflow/internal/compiler"
	"github.com/mpoindexter/spring-webflow/internal/presentation/graph"
	"github.com/mpoindexter/spring-webflow/pkg/model"
	"github.com/mpoindexter/spring-webflow/pkg/ports"
)

// Assembler defines what the server needs from a flow assembler.
type Assembler interface {
	Inspect(ctx context.Context) ([]string, error)
	Assemble(ctx context.Context, id string) (*model.Flow, error)
	Definition(ctx context.Context, id string) (*model.Flow, error)
	Watch(ctx context.Context) (<-chan string, error)
}

var _ Assembler = (*webflow.Assembler)(nil)

// Server serves read-only views of assembled flows.
type Server struct {
	Assembler Assembler
	Logger    *slog.Logger
	metrics   http.Handler
}

// HandlerOption configures NewHandler.
type HandlerOption func(*Server)

// WithMetricsHandler mounts h on /metrics.
func WithMetricsHandler(h http.Handler) HandlerOption {
	return func(s *Server) {
		s.metrics = h
	}
}

// WithLogger sets the logger used for request errors.
func WithLogger(logger *slog.Logger) HandlerOption {
	return func(s *Server) {
		s.Logger = logger
	}
}

// NewHandler creates a new HTTP handler for the assembler.
func NewHandler(asm Assembler, opts ...HandlerOption) http.Handler {
	server := &Server{
		Assembler: asm,
		Logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(server)
	}

	r := chi.NewRouter()
	r.Get("/health", server.GetHealth)
	r.Get("/info", server.GetInfo)
	r.Get("/flows", server.ListFlows)
	r.Get("/flows/{id}", server.GetFlow)
	r.Get("/flows/{id}/graph", server.GetGraph)
	r.Get("/events", server.SubscribeEvents)
	if server.metrics != nil {
		r.Method(http.MethodGet, "/metrics", server.metrics)
	}

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

var errBadID = errors.New("malformed flow id")

// ErrorResponse is the JSON body of every failed request.
type ErrorResponse struct {
	Error    string   `json:"error"`
	Problems []string `json:"problems,omitempty"`
}

// GetHealth handles GET /health.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles GET /info.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"version": webflow.Version})
}

// ListFlows handles GET /flows.
func (s *Server) ListFlows(w http.ResponseWriter, r *http.Request) {
	ids, err := s.Assembler.Inspect(r.Context())
	if err != nil {
		s.fail(w, "ListFlows", err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	writeJSON(w, http.StatusOK, map[string][]string{"flows": ids})
}

// GetFlow handles GET /flows/{id}. With ?raw=true the definition is returned
// as declared, without its parents. Nested identifiers such as sub/booking
// must be requested as sub%2Fbooking.
func (s *Server) GetFlow(w http.ResponseWriter, r *http.Request) {
	flow, err := s.load(r)
	if err != nil {
		s.fail(w, "GetFlow", err)
		return
	}
	writeJSON(w, http.StatusOK, compiler.ToDocument(flow))
}

// GetGraph handles GET /flows/{id}/graph, returning a Mermaid flowchart.
// States inherited from parents are highlighted.
func (s *Server) GetGraph(w http.ResponseWriter, r *http.Request) {
	flow, err := s.load(r)
	if err != nil {
		s.fail(w, "GetGraph", err)
		return
	}

	var overlay *graph.GraphOverlay
	if len(flow.Parents) > 0 && r.URL.Query().Get("raw") != "true" {
		id, _ := flowID(r)
		own, err := s.Assembler.Definition(r.Context(), id)
		if err != nil {
			s.fail(w, "GetGraph", err)
			return
		}
		overlay = &graph.GraphOverlay{Inherited: graph.InheritedStates(flow, own), Focus: r.URL.Query().Get("focus")}
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, graph.GenerateMermaid(flow, overlay))
}

// SubscribeEvents handles GET /events (SSE), emitting the ID of every changed flow.
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		s.Logger.Error("SubscribeEvents: Streaming not supported")
		return
	}

	events, err := s.Assembler.Watch(r.Context())
	if err != nil {
		writeJSON(w, http.StatusNotImplemented, ErrorResponse{Error: err.Error()})
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case id, ok := <-events:
			if !ok {
				return
			}
			fmt.Fprintf(w, "event: changed\ndata: %s\n\n", id)
			flusher.Flush()
		}
	}
}

func (s *Server) load(r *http.Request) (*model.Flow, error) {
	id, err := flowID(r)
	if err != nil {
		return nil, err
	}
	if r.URL.Query().Get("raw") == "true" {
		return s.Assembler.Definition(r.Context(), id)
	}
	return s.Assembler.Assemble(r.Context(), id)
}

// fail maps assembly errors to HTTP statuses.
func (s *Server) fail(w http.ResponseWriter, op string, err error) {
	status := http.StatusInternalServerError
	resp := ErrorResponse{Error: err.Error()}

	var (
		aggr     *webflow.AggregateError
		cycle    *webflow.InheritanceCycleError
		mismatch *model.KindMismatchError
	)
	switch {
	case errors.Is(err, errBadID):
		status = http.StatusBadRequest
	case errors.Is(err, ports.ErrFlowNotFound):
		status = http.StatusNotFound
	case errors.As(err, &aggr):
		status = http.StatusUnprocessableEntity
		resp.Error = fmt.Sprintf("flow %q is invalid", aggr.Flow)
		for _, problem := range aggr.Errors {
			resp.Problems = append(resp.Problems, problem.Error())
		}
	case errors.Is(err, webflow.ErrAbstractFlow), errors.Is(err, webflow.ErrInvalidDocument),
		errors.As(err, &cycle), errors.As(err, &mismatch):
		status = http.StatusUnprocessableEntity
	}

	if status == http.StatusInternalServerError {
		s.Logger.Error(op+" failed", "error", err)
	} else {
		s.Logger.Debug(op+" rejected", "error", err, "status", status)
	}
	writeJSON(w, status, resp)
}

// flowID reads the {id} segment. Identifiers containing "/" arrive
// path-escaped, in which case chi routes on the raw path.
func flowID(r *http.Request) (string, error) {
	id := chi.URLParam(r, "id")
	if r.URL.RawPath == "" {
		return id, nil
	}
	unescaped, err := url.PathUnescape(id)
	if err != nil {
		return "", fmt.Errorf("%w: %q", errBadID, id)
	}
	return unescaped, nil
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
