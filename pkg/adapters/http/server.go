package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aretw0/tmsim"
	"github.com/aretw0/tmsim/internal/service"
	"github.com/aretw0/tmsim/pkg/domain"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

//go:generate go tool oapi-codegen -package http -generate types,chi-server,spec -o api.gen.go ../../../api/openapi.yaml

// maxBodyBytes bounds request bodies; listings and tapes are small.
const maxBodyBytes = 4 << 20

// Server implements the generated ServerInterface on top of a Service.
type Server struct {
	Service  *service.Service
	Gatherer prometheus.Gatherer
}

// Ensure Server implements ServerInterface
var _ ServerInterface = (*Server)(nil)

// NewHandler creates the HTTP handler. A nil gatherer disables /metrics.
func NewHandler(svc *service.Service, gatherer prometheus.Gatherer) http.Handler {
	s := &Server{Service: svc, Gatherer: gatherer}
	r := chi.NewRouter()

	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		spec, err := rawSpec()
		if err != nil {
			http.Error(w, "Failed to load spec", http.StatusInternalServerError)
			slog.Error("Failed to load OpenAPI spec", "error", err)
			return
		}
		w.Header().Set("Content-Type", "text/yaml")
		_, _ = w.Write(spec)
	})
	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(swaggerHTML))
	})
	if gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	return enableCORS(HandlerFromMux(s, r))
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

const swaggerHTML = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>tmsim API Documentation</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui.css" />
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui-bundle.js" crossorigin></script>
<script>
    window.onload = () => {
    window.ui = SwaggerUIBundle({
        url: '/openapi.yaml',
        dom_id: '#swagger-ui',
    });
    };
</script>
</body>
</html>
`

// Run handles POST /v1/run.
func (s *Server) Run(w http.ResponseWriter, r *http.Request) {
	var body RunJSONRequestBody
	if !decode(w, r, "Run", &body) {
		return
	}
	s.run(w, r, mapRunRequest(body))
}

// RunMachine handles POST /v1/machines/{id}/run. The body is optional and
// may override tapes and run options.
func (s *Server) RunMachine(w http.ResponseWriter, r *http.Request, id MachineID) {
	var body RunMachineJSONRequestBody
	if r.ContentLength != 0 {
		if !decode(w, r, "RunMachine", &body) {
			return
		}
	}
	req := mapRunRequest(body)
	req.ID = id
	req.Rules = ""
	s.run(w, r, req)
}

func (s *Server) run(w http.ResponseWriter, r *http.Request, req service.RunRequest) {
	results, err := s.Service.Run(r.Context(), req)
	if err != nil {
		writeError(w, "Run", err)
		return
	}

	resp := RunResponse{Results: make([]Result, len(results))}
	for i, res := range results {
		resp.Results[i] = *res
	}
	writeJSON(w, "Run", http.StatusOK, resp)
}

// Validate handles POST /v1/validate.
func (s *Server) Validate(w http.ResponseWriter, r *http.Request) {
	var body ValidateJSONRequestBody
	if !decode(w, r, "Validate", &body) {
		return
	}
	req := service.MachineRequest{
		ID:              deref(body.Id),
		Rules:           deref(body.Rules),
		Start:           deref(body.Start),
		Blank:           deref(body.Blank),
		DeferDirections: deref(body.DeferDirections),
	}
	resp, err := s.Service.Validate(r.Context(), req, deref(body.Strict))
	if err != nil {
		writeError(w, "Validate", err)
		return
	}
	writeJSON(w, "Validate", http.StatusOK, resp)
}

// Graph handles POST /v1/graph and answers with Mermaid text.
func (s *Server) Graph(w http.ResponseWriter, r *http.Request) {
	var body GraphJSONRequestBody
	if !decode(w, r, "Graph", &body) {
		return
	}
	req := service.MachineRequest{
		ID:              deref(body.Id),
		Rules:           deref(body.Rules),
		Start:           deref(body.Start),
		Blank:           deref(body.Blank),
		MaxSteps:        deref(body.MaxSteps),
		DeferDirections: deref(body.DeferDirections),
	}
	out, err := s.Service.Graph(r.Context(), req, body.Input)
	if err != nil {
		writeError(w, "Graph", err)
		return
	}
	w.Header().Set("Content-Type", "text/vnd.mermaid; charset=utf-8")
	_, _ = w.Write([]byte(out))
}

// ListMachines handles GET /v1/machines.
func (s *Server) ListMachines(w http.ResponseWriter, r *http.Request) {
	ids, err := s.Service.ListMachines(r.Context())
	if err != nil {
		writeError(w, "ListMachines", err)
		return
	}
	writeJSON(w, "ListMachines", http.StatusOK, MachineList{Machines: ids})
}

// GetMachine handles GET /v1/machines/{id}.
func (s *Server) GetMachine(w http.ResponseWriter, r *http.Request, id MachineID) {
	m, err := s.Service.GetMachine(r.Context(), id)
	if err != nil {
		writeError(w, "GetMachine", err)
		return
	}
	writeJSON(w, "GetMachine", http.StatusOK, m)
}

// GetHealth handles GET /healthz.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, "GetHealth", http.StatusOK, HealthResponse{Status: "ok"})
}

// GetInfo handles GET /info.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	apiVersion := "unknown"
	if swagger, err := GetSwagger(); err == nil && swagger.Info != nil {
		apiVersion = swagger.Info.Version
	}

	writeJSON(w, "GetInfo", http.StatusOK, InfoResponse{
		App:        "tmsim-http",
		Version:    strings.TrimSpace(tmsim.Version),
		ApiVersion: apiVersion,
	})
}

func decode(w http.ResponseWriter, r *http.Request, op string, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		slog.Warn(op+": Invalid request body", "error", err)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, op string, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error(op+" response encode failed", "error", err)
	}
}

func writeError(w http.ResponseWriter, op string, err error) {
	code := statusFor(err)
	if code >= http.StatusInternalServerError {
		slog.Error(op+" failed", "error", err)
	} else {
		slog.Warn(op+" rejected", "error", err)
	}
	writeJSON(w, op, code, Error{Error: err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrMachineNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrInvalidMachine):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func mapRunRequest(body RunRequest) service.RunRequest {
	return service.RunRequest{
		MachineRequest: service.MachineRequest{
			ID:              deref(body.Id),
			Rules:           deref(body.Rules),
			Start:           deref(body.Start),
			Blank:           deref(body.Blank),
			MaxSteps:        deref(body.MaxSteps),
			DeferDirections: deref(body.DeferDirections),
		},
		Tapes: deref(body.Tapes),
		Trace: deref(body.Trace),
	}
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
