// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes Cortex queries for LLM integration via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/nathanvale/cortex/internal/docservice"
	"github.com/nathanvale/cortex/internal/output"
	"github.com/nathanvale/cortex/internal/query"
)

// DocFormatURI identifies the format contract resource.
const DocFormatURI = "cortex://doc-format"

// Server wraps the MCP server with Cortex tools.
type Server struct {
	mcp    *server.MCPServer
	svc    *docservice.Service
	logger *slog.Logger
}

// New creates a new MCP server with all Cortex tools registered.
func New(svc *docservice.Service, version string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{svc: svc, logger: logger.With("component", "mcp")}

	s.mcp = server.NewMCPServer(
		"Cortex",
		version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("list_docs",
		mcp.WithDescription("List documents, newest first. Filters are case-insensitive exact matches; "+
			"tags match when a document has any of them."),
		mcp.WithString("type", mcp.Description("Document type, e.g. research, plan, decision")),
		mcp.WithString("status", mcp.Description("Status, e.g. draft, final")),
		mcp.WithString("project", mcp.Description("Project name")),
		mcp.WithString("tags", mcp.Description("Comma-separated tags (any match)")),
		mcp.WithString("fields", mcp.Description("Comma-separated fields to return, e.g. title,path")),
	), s.listDocs)

	s.mcp.AddTool(mcp.NewTool("search_docs",
		mcp.WithDescription("Case-insensitive substring search over title, type, project, tags, body and file name."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Text to search for")),
		mcp.WithNumber("limit", mcp.Description("Max results (default 20)")),
		mcp.WithString("fields", mcp.Description("Comma-separated fields to return")),
	), s.searchDocs)

	s.mcp.AddTool(mcp.NewTool("read_doc",
		mcp.WithDescription("Read the full Markdown source of one document. The identifier is matched "+
			"against file names: exact first, then a unique substring."),
		mcp.WithString("identifier", mcp.Required(), mcp.Description("File name without .md, or a unique part of it")),
	), s.readDoc)

	s.mcp.AddTool(mcp.NewTool("get_doc_contract",
		mcp.WithDescription("Returns the Cortex document format contract. "+
			"Call this before writing documents Cortex should index."),
	), s.getDocContract)

	// Resource: document format contract.
	s.mcp.AddResource(
		mcp.NewResource(DocFormatURI, "Document Format Contract",
			mcp.WithResourceDescription("Frontmatter format of the Markdown documents Cortex indexes."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readDocFormatResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) envelope(data any, count int, warnings []string) (*mcp.CallToolResult, error) {
	out, err := json.Marshal(output.NewSuccess(data, output.WithCount(count), output.WithWarnings(warnings)))
	if err != nil {
		return nil, fmt.Errorf("mcpserver: marshal result: %w", err)
	}
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) fail(tool string, err error) (*mcp.CallToolResult, error) {
	s.logger.Debug("tool failed", slog.String("tool", tool), slog.String("error", err.Error()))
	return mcp.NewToolResultError(err.Error()), nil
}

func (s *Server) listDocs(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	f := query.Filters{
		Type:    req.GetString("type", ""),
		Status:  req.GetString("status", ""),
		Project: req.GetString("project", ""),
		Tags:    query.ParseList(req.GetString("tags", "")),
	}
	page, err := s.svc.List(ctx, f)
	if err != nil {
		return s.fail("list_docs", err)
	}
	return s.envelope(output.Docs(page.Docs, query.ParseList(req.GetString("fields", ""))), len(page.Docs), page.Warnings)
}

func (s *Server) searchDocs(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	q, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	limit := req.GetInt("limit", query.DefaultLimit)
	if limit < 1 {
		return mcp.NewToolResultError(fmt.Sprintf("Invalid limit value: %d. Must be a positive integer.", limit)), nil
	}
	page, err := s.svc.Search(ctx, q, limit)
	if err != nil {
		return s.fail("search_docs", err)
	}
	return s.envelope(output.Docs(page.Docs, query.ParseList(req.GetString("fields", ""))), len(page.Docs), page.Warnings)
}

func (s *Server) readDoc(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("identifier")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	page, err := s.svc.Resolve(ctx, id)
	if err != nil {
		return s.fail("read_doc", err)
	}
	path := page.Docs[0].Path
	data, err := os.ReadFile(path)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("cannot read %s", path)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func (s *Server) getDocContract(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(DocFormatContract), nil
}

func (s *Server) readDocFormatResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      DocFormatURI,
			MIMEType: "text/markdown",
			Text:     DocFormatContract,
		},
	}, nil
}
