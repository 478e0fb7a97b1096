// Package mcp serves the structured PDF parser as Model Context Protocol
// tools over stdio, so clients can run the pipeline without the CLI surface.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/docstruct/pdfstruct/internal/config"
	"github.com/docstruct/pdfstruct/internal/extract"
	"github.com/docstruct/pdfstruct/internal/parser"
)

// Server represents the MCP server instance
type Server struct {
	config    *config.Config
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP server instance
func NewServer(cfg *config.Config) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	mcpServer := server.NewMCPServer(
		cfg.ServerName,
		cfg.Version,
		server.WithToolCapabilities(false), // We don't support dynamic tool capabilities
	)

	s := &Server{
		config:    cfg,
		mcpServer: mcpServer,
	}

	s.registerTools()

	return s, nil
}

// registerTools registers all available MCP tools
func (s *Server) registerTools() {
	parseTool := mcp.NewTool(
		"pdf_parse_structured",
		mcp.WithDescription("Parse a PDF into structured pages of paragraph, table, and chart blocks "+
			"tagged with their section and sub-section"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the PDF file"),
		),
		mcp.WithString("output",
			mcp.Description("Optional path to also write the JSON result to"),
		),
	)
	s.mcpServer.AddTool(parseTool, s.handleParseStructured)

	validateTool := mcp.NewTool(
		"pdf_validate_file",
		mcp.WithDescription("Validate if a file is a readable PDF"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the PDF file"),
		),
	)
	s.mcpServer.AddTool(validateTool, s.handleValidateFile)
}

// Handler functions

func (s *Server) handleParseStructured(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	session, err := parser.NewSession(path, s.config.MaxFileSize)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	doc, err := session.Parse(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	output := ""
	if o, ok := request.GetArguments()["output"].(string); ok {
		output = o
	}
	if output != "" {
		if err := session.SaveJSON(doc, output); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	responseText := fmt.Sprintf("Successfully parsed PDF: %s\n", path)
	responseText += fmt.Sprintf("Pages: %d\n\n", len(doc.Pages))
	responseText += string(data)

	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handleValidateFile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	validator := extract.NewValidator(s.config.MaxFileSize)

	var responseText string
	if validationErr := validator.ValidateFile(path); validationErr != nil {
		responseText = fmt.Sprintf("PDF validation failed for %s: %s", path, validationErr)
	} else {
		responseText = fmt.Sprintf("PDF file %s is valid and readable", path)
	}

	return mcp.NewToolResultText(responseText), nil
}

// Run starts the MCP server over stdio and blocks until the stream closes.
func (s *Server) Run(_ context.Context) error {
	if err := server.ServeStdio(s.mcpServer); err != nil {
		return fmt.Errorf("failed to serve stdio: %w", err)
	}
	return nil
}
