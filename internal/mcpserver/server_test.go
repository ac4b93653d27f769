package mcpserver

import (
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/nathanvale/cortex/internal/docservice"
	"github.com/nathanvale/cortex/internal/models"
	"github.com/nathanvale/cortex/internal/testutil"
)

func testServer(t *testing.T) *Server {
	t.Helper()

	root := testutil.TestRoot(t)
	testutil.WriteFile(t, root, "docs/plans/auth-design.md", testutil.Doc("title: Auth design\ntype: plan\ncreated: 2026-01-01\ntags: [x]", "alpha body\n"))
	testutil.WriteFile(t, root, "docs/plans/auth-design-v2.md", testutil.Doc("title: Auth v2\ntype: plan\ncreated: 2026-02-01", "beta\n"))
	testutil.WriteFile(t, root, "docs/meetings/standup.md", testutil.Doc("title: Standup\ntype: meeting\ncreated: 2026-03-01\ntags: [x]", "Alphabet\n"))

	svc := docservice.NewService([]models.Source{{Path: filepath.Join(root, "docs"), Scope: models.ScopeGlobal}}, testutil.Logger())
	return New(svc, "test", testutil.Logger())
}

func callTool(t *testing.T, srv *Server, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	ctx := context.Background()
	req := mcp.CallToolRequest{}
	req.Method = "tools/call"
	req.Params.Name = name
	req.Params.Arguments = args

	// mcp-go has no direct "call tool" test helper, so the handlers are
	// invoked directly.
	var result *mcp.CallToolResult
	var err error

	switch name {
	case "list_docs":
		result, err = srv.listDocs(ctx, req)
	case "search_docs":
		result, err = srv.searchDocs(ctx, req)
	case "read_doc":
		result, err = srv.readDoc(ctx, req)
	case "get_doc_contract":
		result, err = srv.getDocContract(ctx, req)
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

type envelope struct {
	Status string           `json:"status"`
	Count  int              `json:"count"`
	Data   []map[string]any `json:"data"`
}

func decode(t *testing.T, r *mcp.CallToolResult) envelope {
	t.Helper()
	if r.IsError {
		t.Fatalf("tool error: %s", resultText(r))
	}
	var env envelope
	if err := json.Unmarshal([]byte(resultText(r)), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return env
}

func TestListDocs(t *testing.T) {
	srv := testServer(t)

	env := decode(t, callTool(t, srv, "list_docs", map[string]any{"tags": "x", "fields": "stem,type"}))
	if env.Status != "ok" || env.Count != 2 {
		t.Fatalf("envelope = %+v", env)
	}
	if env.Data[0]["stem"] != "standup" || env.Data[1]["stem"] != "auth-design" {
		t.Errorf("data = %v", env.Data)
	}
	if len(env.Data[0]) != 2 {
		t.Errorf("projection leaked fields: %v", env.Data[0])
	}
}

func TestListDocs_NoFilters(t *testing.T) {
	srv := testServer(t)

	env := decode(t, callTool(t, srv, "list_docs", map[string]any{}))
	if env.Count != 3 {
		t.Errorf("count = %d, want 3", env.Count)
	}
	if _, ok := env.Data[0]["path"]; !ok {
		t.Errorf("default shape should carry path: %v", env.Data[0])
	}
}

func TestSearchDocs(t *testing.T) {
	srv := testServer(t)

	env := decode(t, callTool(t, srv, "search_docs", map[string]any{"query": "ALPHA", "limit": float64(1)}))
	if env.Count != 1 || env.Data[0]["stem"] != "standup" {
		t.Errorf("envelope = %+v", env)
	}
}

func TestSearchDocs_Validation(t *testing.T) {
	srv := testServer(t)

	if r := callTool(t, srv, "search_docs", map[string]any{}); !r.IsError {
		t.Error("missing query should fail")
	}
	if r := callTool(t, srv, "search_docs", map[string]any{"query": "a", "limit": float64(0)}); !r.IsError {
		t.Error("zero limit should fail")
	}
}

func TestReadDoc(t *testing.T) {
	srv := testServer(t)

	r := callTool(t, srv, "read_doc", map[string]any{"identifier": "standup"})
	if r.IsError {
		t.Fatalf("read_doc: %s", resultText(r))
	}
	want := testutil.Doc("title: Standup\ntype: meeting\ncreated: 2026-03-01\ntags: [x]", "Alphabet\n")
	if got := resultText(r); got != want {
		t.Errorf("read_doc = %q, want %q", got, want)
	}
}

func TestReadDoc_AmbiguousAndMissing(t *testing.T) {
	srv := testServer(t)

	r := callTool(t, srv, "read_doc", map[string]any{"identifier": "auth"})
	if !r.IsError || !strings.Contains(resultText(r), "Multiple matches") {
		t.Errorf("ambiguous = %q", resultText(r))
	}

	r = callTool(t, srv, "read_doc", map[string]any{"identifier": "auth-review"})
	if !r.IsError || !strings.Contains(resultText(r), "Did you mean") {
		t.Errorf("missing = %q", resultText(r))
	}
}

func TestDocContract(t *testing.T) {
	srv := testServer(t)

	r := callTool(t, srv, "get_doc_contract", nil)
	if resultText(r) != DocFormatContract {
		t.Error("contract text mismatch")
	}

	contents, err := srv.readDocFormatResource(context.Background(), mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatal(err)
	}
	tc, ok := contents[0].(mcp.TextResourceContents)
	if !ok || tc.URI != DocFormatURI || tc.Text != DocFormatContract {
		t.Errorf("resource = %+v", contents[0])
	}
}
