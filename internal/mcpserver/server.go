// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes Glossa tools for LLM integration via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/RmnRj/glossa/internal/docservice"
	"github.com/RmnRj/glossa/internal/models"
)

// Server wraps the MCP server with Glossa tools.
type Server struct {
	mcp *server.MCPServer
	svc *docservice.Service
}

// New creates a new MCP server with all Glossa tools registered.
func New(svc *docservice.Service) *Server {
	s := &Server{svc: svc}

	s.mcp = server.NewMCPServer(
		"Glossa",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("search_annotations",
		mcp.WithDescription("Full-text search across every annotated document in the library."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search query string")),
	), s.searchAnnotations)

	s.mcp.AddTool(mcp.NewTool("list_documents",
		mcp.WithDescription("List every document that has stored annotations."),
	), s.listDocuments)

	s.mcp.AddTool(mcp.NewTool("get_annotations",
		mcp.WithDescription("Read all highlights, comments, notes, and topics of one document."),
		mcp.WithString("document", mcp.Required(), mcp.Description("Document name (e.g. paper.pdf)")),
	), s.getAnnotations)

	s.mcp.AddTool(mcp.NewTool("get_summary",
		mcp.WithDescription("Annotation counts and last-modified timestamp for one document."),
		mcp.WithString("document", mcp.Required(), mcp.Description("Document name")),
	), s.getSummary)

	s.mcp.AddTool(mcp.NewTool("add_highlight",
		mcp.WithDescription("Record a highlight on a document. Color names follow the "+
			"annotation format contract; read it first via the get_annotation_contract "+
			"tool or the glossa://annotation-format resource."),
		mcp.WithString("document", mcp.Required(), mcp.Description("Document name")),
		mcp.WithString("text", mcp.Required(), mcp.Description("The highlighted passage")),
		mcp.WithString("color", mcp.Description("Color name (default Light Yellow)")),
	), s.addHighlight)

	s.mcp.AddTool(mcp.NewTool("add_comment",
		mcp.WithDescription("Record a comment on a passage of a document."),
		mcp.WithString("document", mcp.Required(), mcp.Description("Document name")),
		mcp.WithString("text", mcp.Description("The passage being commented on")),
		mcp.WithString("comment", mcp.Required(), mcp.Description("The comment body")),
	), s.addComment)

	s.mcp.AddTool(mcp.NewTool("add_note",
		mcp.WithDescription("Record a note on a document, filed under a topic."),
		mcp.WithString("document", mcp.Required(), mcp.Description("Document name")),
		mcp.WithString("text", mcp.Description("The referenced passage")),
		mcp.WithString("note", mcp.Required(), mcp.Description("The note body")),
		mcp.WithString("topic", mcp.Description("Topic name (default General Notes)")),
	), s.addNote)

	s.mcp.AddTool(mcp.NewTool("compile_notes",
		mcp.WithDescription("Render a document's annotations into a Markdown notes file and return its content."),
		mcp.WithString("document", mcp.Required(), mcp.Description("Document name")),
	), s.compileNotes)

	s.mcp.AddTool(mcp.NewTool("get_annotation_contract",
		mcp.WithDescription("Returns the canonical Glossa annotation format contract. "+
			"Call this before adding annotations to use valid kinds and colors."),
	), s.getAnnotationContract)

	// Resource: annotation format contract.
	s.mcp.AddResource(
		mcp.NewResource("glossa://annotation-format", "Annotation Format Contract",
			mcp.WithResourceDescription("Canonical annotation structure, kinds, and highlight colors."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readAnnotationFormatResource,
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

func (s *Server) searchAnnotations(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	results, err := s.svc.SearchLibrary(ctx, query, 20)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(results, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) listDocuments(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	docs := s.svc.Docs(ctx)
	if len(docs) == 0 {
		return mcp.NewToolResultText("no annotated documents"), nil
	}
	return mcp.NewToolResultText(strings.Join(docs, "\n")), nil
}

func (s *Server) getAnnotations(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	doc, err := req.RequireString("document")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	set, topics := s.svc.Annotations(ctx, doc)
	out, _ := json.MarshalIndent(map[string]any{
		"document":    doc,
		"annotations": set,
		"topics":      topics,
	}, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) getSummary(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	doc, err := req.RequireString("document")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(s.svc.Summary(ctx, doc), "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) addHighlight(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	doc, err := req.RequireString("document")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	text, err := req.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	color := req.GetString("color", models.DefaultColor)

	h, err := s.svc.AddHighlight(ctx, doc, text, color)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("highlight %d added to %s", h.ID, doc)), nil
}

func (s *Server) addComment(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	doc, err := req.RequireString("document")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	comment, err := req.RequireString("comment")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	text := req.GetString("text", "")

	c, err := s.svc.AddComment(ctx, doc, text, comment)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("comment %d added to %s", c.ID, doc)), nil
}

func (s *Server) addNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	doc, err := req.RequireString("document")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	note, err := req.RequireString("note")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	text := req.GetString("text", "")
	topic := req.GetString("topic", "")

	n, _, err := s.svc.AddNote(ctx, doc, text, note, topic)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("note %d added to %s under topic %q", n.ID, doc, n.Topic)), nil
}

func (s *Server) compileNotes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	doc, err := req.RequireString("document")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	path, data, err := s.svc.Compile(ctx, doc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("written to %s\n\n%s", path, data)), nil
}

func (s *Server) getAnnotationContract(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(AnnotationFormatContract), nil
}

func (s *Server) readAnnotationFormatResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "glossa://annotation-format",
			MIMEType: "text/markdown",
			Text:     AnnotationFormatContract,
		},
	}, nil
}
