package mcpserver

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/RmnRj/glossa/internal/annotation"
	"github.com/RmnRj/glossa/internal/docservice"
	"github.com/RmnRj/glossa/internal/index"
	"github.com/RmnRj/glossa/internal/models"
	"github.com/RmnRj/glossa/internal/storage"
)

func testServer(t *testing.T) *Server {
	t.Helper()

	root := t.TempDir()
	mkdir := func(name string) storage.Provider {
		p, err := storage.NewDir(filepath.Join(root, name))
		if err != nil {
			t.Fatal(err)
		}
		return p
	}
	ann := mkdir("annotations")
	top := mkdir("topics")
	library := mkdir("library")
	output := mkdir("output")
	exports := mkdir("exports")

	db, err := index.Open(filepath.Join(root, "index.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })

	store := annotation.NewStore(ann, top)
	svc := docservice.NewService(store, db, library, output, exports)
	return New(svc)
}

func callTool(t *testing.T, srv *Server, name string, args map[string]interface{}) *mcp.CallToolResult {
	t.Helper()
	ctx := context.Background()
	req := mcp.CallToolRequest{}
	req.Method = "tools/call"
	req.Params.Name = name
	req.Params.Arguments = args

	// mcp-go has no direct "call tool" test helper; call handlers directly.
	var result *mcp.CallToolResult
	var err error

	switch name {
	case "search_annotations":
		result, err = srv.searchAnnotations(ctx, req)
	case "list_documents":
		result, err = srv.listDocuments(ctx, req)
	case "get_annotations":
		result, err = srv.getAnnotations(ctx, req)
	case "get_summary":
		result, err = srv.getSummary(ctx, req)
	case "add_highlight":
		result, err = srv.addHighlight(ctx, req)
	case "add_comment":
		result, err = srv.addComment(ctx, req)
	case "add_note":
		result, err = srv.addNote(ctx, req)
	case "compile_notes":
		result, err = srv.compileNotes(ctx, req)
	case "get_annotation_contract":
		result, err = srv.getAnnotationContract(ctx, req)
	default:
		t.Fatalf("unknown tool: %s", name)
	}

	if err != nil {
		t.Fatalf("tool %s error: %v", name, err)
	}
	return result
}

func resultText(r *mcp.CallToolResult) string {
	if len(r.Content) > 0 {
		if tc, ok := r.Content[0].(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func setClock(t *testing.T, stamp string) {
	t.Helper()
	prev := models.Now
	models.Now = func() string { return stamp }
	t.Cleanup(func() { models.Now = prev })
}

func TestAddHighlightAndListDocuments(t *testing.T) {
	setClock(t, "2026-08-29T09:00:00.000000")
	srv := testServer(t)

	r := callTool(t, srv, "add_highlight", map[string]interface{}{
		"document": "paper.pdf",
		"text":     "key passage",
	})
	if text := resultText(r); text != "highlight 1 added to paper.pdf" {
		t.Errorf("add result = %q", text)
	}

	r = callTool(t, srv, "list_documents", map[string]interface{}{})
	if text := resultText(r); text != "paper.pdf" {
		t.Errorf("list result = %q", text)
	}
}

func TestListDocumentsEmpty(t *testing.T) {
	srv := testServer(t)
	r := callTool(t, srv, "list_documents", map[string]interface{}{})
	if text := resultText(r); text != "no annotated documents" {
		t.Errorf("result = %q", text)
	}
}

func TestAddNoteDefaultsTopic(t *testing.T) {
	setClock(t, "2026-08-29T09:00:00.000000")
	srv := testServer(t)

	r := callTool(t, srv, "add_note", map[string]interface{}{
		"document": "paper.pdf",
		"note":     "remember this",
	})
	text := resultText(r)
	if !strings.Contains(text, `under topic "General Notes"`) {
		t.Errorf("result = %q", text)
	}
}

func TestAddNoteMissingBody(t *testing.T) {
	srv := testServer(t)
	r := callTool(t, srv, "add_note", map[string]interface{}{"document": "paper.pdf"})
	if !r.IsError {
		t.Error("expected error for missing note body")
	}
}

func TestGetSummary(t *testing.T) {
	setClock(t, "2026-08-29T09:00:00.000000")
	srv := testServer(t)

	_ = callTool(t, srv, "add_comment", map[string]interface{}{
		"document": "paper.pdf",
		"comment":  "a remark",
	})

	r := callTool(t, srv, "get_summary", map[string]interface{}{"document": "paper.pdf"})
	text := resultText(r)
	if !strings.Contains(text, `"total_comments": 1`) {
		t.Errorf("summary = %q", text)
	}
}

func TestGetAnnotations(t *testing.T) {
	setClock(t, "2026-08-29T09:00:00.000000")
	srv := testServer(t)

	_ = callTool(t, srv, "add_highlight", map[string]interface{}{
		"document": "paper.pdf",
		"text":     "passage",
		"color":    "Light Blue",
	})

	r := callTool(t, srv, "get_annotations", map[string]interface{}{"document": "paper.pdf"})
	text := resultText(r)
	if !strings.Contains(text, `"color": "Light Blue"`) {
		t.Errorf("annotations = %q", text)
	}
}

func TestCompileNotes(t *testing.T) {
	setClock(t, "2026-08-29T09:00:00.000000")
	srv := testServer(t)

	_ = callTool(t, srv, "add_highlight", map[string]interface{}{
		"document": "paper.pdf",
		"text":     "passage",
	})

	r := callTool(t, srv, "compile_notes", map[string]interface{}{"document": "paper.pdf"})
	text := resultText(r)
	if !strings.Contains(text, "# Notes from: paper.pdf") {
		t.Errorf("compile output = %q", text)
	}
}

func TestContractTool(t *testing.T) {
	srv := testServer(t)
	r := callTool(t, srv, "get_annotation_contract", map[string]interface{}{})
	if !strings.Contains(resultText(r), "Light Yellow") {
		t.Error("contract missing palette")
	}
}
