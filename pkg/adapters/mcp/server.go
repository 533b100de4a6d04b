package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/tmsim"
	"github.com/aretw0/tmsim/internal/service"
	"github.com/aretw0/tmsim/pkg/domain"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// MachineArgs selects a machine by library id or inline rules.
type MachineArgs struct {
	ID              string `json:"id,omitempty"`
	Rules           string `json:"rules,omitempty"`
	Start           string `json:"start,omitempty"`
	Blank           string `json:"blank,omitempty"`
	MaxSteps        int    `json:"max_steps,omitempty"`
	DeferDirections bool   `json:"defer_directions,omitempty"`
}

func (a MachineArgs) request() service.MachineRequest {
	return service.MachineRequest{
		ID:              a.ID,
		Rules:           a.Rules,
		Start:           a.Start,
		Blank:           a.Blank,
		MaxSteps:        a.MaxSteps,
		DeferDirections: a.DeferDirections,
	}
}

// RunArgs are the arguments of run_machine.
type RunArgs struct {
	MachineArgs
	Tapes   []string `json:"tapes,omitempty"`
	Verbose bool     `json:"verbose,omitempty"`
}

// ValidateArgs are the arguments of validate_machine.
type ValidateArgs struct {
	MachineArgs
	Strict bool `json:"strict,omitempty"`
}

// GraphArgs are the arguments of graph_machine.
type GraphArgs struct {
	MachineArgs
	Input *string `json:"input,omitempty"`
}

// RunResponse is the structured result of run_machine.
type RunResponse struct {
	Results []*domain.Result `json:"results" jsonschema_description:"One result per tape, in input order"`
}

// ListResponse is the structured result of list_machines.
type ListResponse struct {
	Machines []string `json:"machines" jsonschema_description:"Library machine ids"`
}

// Server exposes a Service as an MCP server.
type Server struct {
	svc       *service.Service
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(svc *service.Service) *Server {
	s := &Server{
		svc:       svc,
		mcpServer: server.NewMCPServer("tmsim-mcp", strings.TrimSpace(tmsim.Version)),
	}
	s.registerTools()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		slog.Info("Shutdown signal received, shutting down MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		slog.Debug("CORS Middleware", "method", r.Method, "path", r.URL.Path)
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func machineParams() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithString("id", mcp.Description("Library machine id (exclusive with rules)")),
		mcp.WithString("rules", mcp.Description("Inline listing, one 'state read write l|r next' rule per line")),
		mcp.WithString("start", mcp.Description("Start state (default \"1\")")),
		mcp.WithString("blank", mcp.Description("Blank symbol (default \"_\")")),
		mcp.WithNumber("max_steps", mcp.Description("Step budget; capped by the server")),
		mcp.WithBoolean("defer_directions", mcp.Description("Report invalid directions when executed instead of rejecting the listing")),
	}
}

func (s *Server) registerTools() {
	// TOOL: run_machine
	runOpts := append([]mcp.ToolOption{
		mcp.WithDescription("Run a Turing machine over one or more input tapes and return the full trace of each run."),
		mcp.WithArray("tapes", mcp.Description("Input tapes; defaults to the machine's own tapes"), mcp.WithStringItems()),
		mcp.WithBoolean("verbose", mcp.Description("Keep every record instead of only START and the final one")),
		mcp.WithOutputSchema[RunResponse](),
	}, machineParams()...)
	s.mcpServer.AddTool(mcp.NewTool("run_machine", runOpts...), mcp.NewStructuredToolHandler(s.handleRun))

	// TOOL: validate_machine
	validateOpts := append([]mcp.ToolOption{
		mcp.WithDescription("Statically analyze a Turing machine: reachable, unreachable and halting states, alphabet, warnings."),
		mcp.WithBoolean("strict", mcp.Description("Treat warnings as invalid")),
		mcp.WithOutputSchema[service.ValidateResponse](),
	}, machineParams()...)
	s.mcpServer.AddTool(mcp.NewTool("validate_machine", validateOpts...), mcp.NewStructuredToolHandler(s.handleValidate))

	// TOOL: graph_machine
	graphOpts := append([]mcp.ToolOption{
		mcp.WithDescription("Render a Turing machine as a Mermaid flowchart, optionally highlighting the path taken on one input."),
		mcp.WithString("input", mcp.Description("Optional input tape to trace")),
	}, machineParams()...)
	s.mcpServer.AddTool(mcp.NewTool("graph_machine", graphOpts...), s.handleGraph)

	// TOOL: list_machines
	s.mcpServer.AddTool(mcp.NewTool("list_machines",
		mcp.WithDescription("List the machines available in the library."),
		mcp.WithOutputSchema[ListResponse](),
	), mcp.NewStructuredToolHandler(s.handleList))
}

func (s *Server) handleRun(ctx context.Context, request mcp.CallToolRequest, args RunArgs) (RunResponse, error) {
	results, err := s.svc.Run(ctx, service.RunRequest{
		MachineRequest: args.request(),
		Tapes:          args.Tapes,
		Trace:          args.Verbose,
	})
	if err != nil {
		slog.Warn("MCP run_machine failed", "error", err)
		return RunResponse{}, fmt.Errorf("run failed: %w", err)
	}

	return RunResponse{Results: results}, nil
}

func (s *Server) handleValidate(ctx context.Context, request mcp.CallToolRequest, args ValidateArgs) (service.ValidateResponse, error) {
	resp, err := s.svc.Validate(ctx, args.request(), args.Strict)
	if err != nil {
		return service.ValidateResponse{}, fmt.Errorf("validate failed: %w", err)
	}
	return *resp, nil
}

func (s *Server) handleGraph(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args GraphArgs
	if err := request.BindArguments(&args); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	out, err := s.svc.Graph(ctx, args.request(), args.Input)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("graph failed: %v", err)), nil
	}
	return mcp.NewToolResultText(out), nil
}

func (s *Server) handleList(ctx context.Context, request mcp.CallToolRequest, args map[string]any) (ListResponse, error) {
	ids, err := s.svc.ListMachines(ctx)
	if err != nil {
		return ListResponse{}, fmt.Errorf("list failed: %w", err)
	}
	return ListResponse{Machines: ids}, nil
}
