package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	webflow "github.com/mpoindexter/spring-webflow"
	"github.com/mpoindexter/spring-webflow/internal/compiler"
	"github.com/mpoindexter/spring-webflow/internal/presentation/graph"
	"github.com/mpoindexter/spring-webflow/pkg/model"
)

// FlowsURI is the resource listing every flow identifier.
const FlowsURI = "webflow://flows"

// Assembler defines what the MCP server needs from a flow assembler.
type Assembler interface {
	Inspect(ctx context.Context) ([]string, error)
	Assemble(ctx context.Context, id string) (*model.Flow, error)
	Definition(ctx context.Context, id string) (*model.Flow, error)
}

var _ Assembler = (*webflow.Assembler)(nil)

// ValidationReport is the structured result of validate_flow.
type ValidationReport struct {
	Flow     string   `json:"flow" jsonschema_description:"The flow identifier"`
	Valid    bool     `json:"valid" jsonschema_description:"Whether the assembled flow passed validation"`
	Problems []string `json:"problems,omitempty" jsonschema_description:"Validation problems, one per entry"`
}

// Server exposes an assembler as MCP tools for agents.
type Server struct {
	asm       Assembler
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(asm Assembler, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		asm:    asm,
		logger: logger,
		mcpServer: server.NewMCPServer("webflow-mcp", strings.TrimSpace(webflow.Version),
			server.WithToolCapabilities(false),
			server.WithResourceCapabilities(false, false),
		),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves over SSE on port until ctx is cancelled.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("list_flows",
		mcp.WithDescription("List the identifiers of every flow definition in the repository."),
	), s.handleListFlows)

	s.mcpServer.AddTool(mcp.NewTool("assemble_flow",
		mcp.WithDescription("Assemble a flow by merging its parents and return the resulting definition."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Flow identifier")),
		mcp.WithBoolean("raw", mcp.Description("Return the flow as declared, without merging parents")),
	), s.handleAssembleFlow)

	s.mcpServer.AddTool(mcp.NewTool("validate_flow",
		mcp.WithDescription("Assemble and validate a flow, reporting every problem found."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Flow identifier")),
		mcp.WithOutputSchema[ValidationReport](),
	), mcp.NewStructuredToolHandler(s.handleValidateFlow))

	s.mcpServer.AddTool(mcp.NewTool("get_graph",
		mcp.WithDescription("Render the assembled flow as a Mermaid state diagram."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Flow identifier")),
		mcp.WithString("focus", mcp.Description("State to highlight")),
	), s.handleGetGraph)
}

func (s *Server) handleListFlows(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ids, err := s.asm.Inspect(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("list failed: %v", err)), nil
	}
	return mcp.NewToolResultText(strings.Join(ids, "\n")), nil
}

func (s *Server) handleAssembleFlow(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	load := s.asm.Assemble
	if request.GetBool("raw", false) {
		load = s.asm.Definition
	}
	flow, err := load(ctx, id)
	if err != nil {
		s.logger.Warn("MCP assemble failed", "flow", id, "err", err)
		return mcp.NewToolResultError(fmt.Sprintf("assemble failed: %v", err)), nil
	}

	out, err := compiler.Encode(flow)
	if err != nil {
		return nil, fmt.Errorf("encode flow %q: %w", id, err)
	}
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) handleValidateFlow(ctx context.Context, request mcp.CallToolRequest, args map[string]any) (ValidationReport, error) {
	id, _ := args["id"].(string)
	if id == "" {
		return ValidationReport{}, errors.New("id is required")
	}

	report := ValidationReport{Flow: id, Valid: true}
	_, err := s.asm.Assemble(ctx, id)
	if err == nil {
		return report, nil
	}

	problems := webflow.ValidationErrors(err)
	if problems == nil {
		return ValidationReport{}, fmt.Errorf("assemble failed: %w", err)
	}
	report.Valid = false
	for _, p := range problems {
		report.Problems = append(report.Problems, p.Error())
	}
	return report, nil
}

func (s *Server) handleGetGraph(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	flow, err := s.asm.Assemble(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("assemble failed: %v", err)), nil
	}
	overlay := &graph.GraphOverlay{Focus: request.GetString("focus", "")}
	if len(flow.Parents) > 0 {
		own, err := s.asm.Definition(ctx, id)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("load definition failed: %v", err)), nil
		}
		overlay.Inherited = graph.InheritedStates(flow, own)
	}
	return mcp.NewToolResultText(graph.GenerateMermaid(flow, overlay)), nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(FlowsURI, "Flow identifiers",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		ids, err := s.asm.Inspect(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list flows: %w", err)
		}
		jsonBytes, err := json.Marshal(ids)
		if err != nil {
			return nil, err
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      FlowsURI,
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
