package mcp

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"appshelf/internal/domain"
)

func testCatalog() *domain.Catalog {
	c := domain.NewCatalog(domain.DuplicateKeepFirst)
	c.Insert(domain.App{ID: 570, Name: domain.StringPtr("Dota 2"), Type: domain.AppTypeGame, Platforms: domain.PlatformAll})
	c.Insert(domain.App{ID: 400, Name: domain.StringPtr("Portal"), Type: domain.AppTypeGame, Platforms: domain.PlatformWindows | domain.PlatformMac})
	c.Insert(domain.App{ID: 228980, Name: domain.StringPtr("Steamworks Common Redistributables"), Type: domain.AppTypeTool, Platforms: domain.PlatformWindows})
	c.Insert(domain.App{ID: 7, Type: domain.AppTypeUnknown, Platforms: domain.PlatformAll})
	return c
}

func call(t *testing.T, h server.ToolHandlerFunc, args map[string]any) (string, bool) {
	t.Helper()
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	result, err := h(context.Background(), req)
	if err != nil {
		t.Fatalf("handler returned Go error: %v", err)
	}
	if len(result.Content) == 0 {
		t.Fatal("empty result")
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("content is %T, want mcp.TextContent", result.Content[0])
	}
	return text.Text, result.IsError
}

func TestListHandler(t *testing.T) {
	h := listHandler(Static(testCatalog()))

	tests := []struct {
		name     string
		args     map[string]any
		want     []string
		dontWant []string
		isError  bool
	}{
		{
			name: "all",
			args: nil,
			want: []string{"7  App 7", "400  Portal", "570  Dota 2", "228980"},
		},
		{
			name:     "tools",
			args:     map[string]any{"type": "tool"},
			want:     []string{"228980"},
			dontWant: []string{"Portal"},
		},
		{
			name:     "linux",
			args:     map[string]any{"platform": "linux"},
			want:     []string{"570", "App 7"},
			dontWant: []string{"Portal", "228980"},
		},
		{
			name:     "limit",
			args:     map[string]any{"limit": 1},
			want:     []string{"App 7"},
			dontWant: []string{"Portal"},
		},
		{
			name:    "bad type",
			args:    map[string]any{"type": "spaceship"},
			want:    []string{"spaceship"},
			isError: true,
		},
		{
			name:    "negative limit",
			args:    map[string]any{"limit": -1},
			isError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, isError := call(t, h, tt.args)
			if isError != tt.isError {
				t.Fatalf("IsError = %v, want %v (%s)", isError, tt.isError, text)
			}
			for _, w := range tt.want {
				if !strings.Contains(text, w) {
					t.Errorf("output missing %q:\n%s", w, text)
				}
			}
			for _, w := range tt.dontWant {
				if strings.Contains(text, w) {
					t.Errorf("output should not contain %q:\n%s", w, text)
				}
			}
		})
	}
}

func TestSearchHandler(t *testing.T) {
	h := searchHandler(Static(testCatalog()))

	text, isError := call(t, h, map[string]any{"query": "portal"})
	if isError {
		t.Fatalf("unexpected error: %s", text)
	}
	if !strings.HasPrefix(text, "400  Portal") {
		t.Errorf("expected Portal first, got:\n%s", text)
	}

	text, _ = call(t, h, map[string]any{"query": "x"})
	if text != "No results found." {
		t.Errorf("short query = %q", text)
	}

	if _, isError := call(t, h, nil); !isError {
		t.Error("missing query should be a tool error")
	}
}

func TestGetHandler(t *testing.T) {
	h := getHandler(Static(testCatalog()))

	text, isError := call(t, h, map[string]any{"id": "570"})
	if isError {
		t.Fatalf("unexpected error: %s", text)
	}
	for _, w := range []string{"id: 570", "name: Dota 2", "type: Game", "steam://store/570"} {
		if !strings.Contains(text, w) {
			t.Errorf("output missing %q:\n%s", w, text)
		}
	}

	text, _ = call(t, h, map[string]any{"id": "7"})
	if !strings.Contains(text, "name: (none)") {
		t.Errorf("unnamed app output:\n%s", text)
	}

	for _, id := range []string{"", "abc", "-1", "999"} {
		if _, isError := call(t, h, map[string]any{"id": id}); !isError {
			t.Errorf("id %q should be a tool error", id)
		}
	}
}

func TestStatsHandler(t *testing.T) {
	text, isError := call(t, statsHandler(Static(testCatalog())), nil)
	if isError {
		t.Fatalf("unexpected error: %s", text)
	}
	for _, w := range []string{"apps: 4 (3 named)", "Game", "Tool", "windows"} {
		if !strings.Contains(text, w) {
			t.Errorf("output missing %q:\n%s", w, text)
		}
	}
}

func TestCached(t *testing.T) {
	calls := 0
	fail := true
	load := Cached(func(context.Context) (*domain.Catalog, error) {
		calls++
		if fail {
			return nil, errors.New("boom")
		}
		return testCatalog(), nil
	})

	if _, err := load(context.Background()); err == nil {
		t.Fatal("expected first load to fail")
	}
	fail = false
	for range 3 {
		c, err := load(context.Background())
		if err != nil || c.Len() != 4 {
			t.Fatalf("load = %v, %v", c, err)
		}
	}
	if calls != 2 {
		t.Errorf("load called %d times, want 2", calls)
	}

	text, isError := call(t, statsHandler(Cached(func(context.Context) (*domain.Catalog, error) {
		return nil, errors.New("no appinfo")
	})), nil)
	if !isError || text != "no appinfo" {
		t.Errorf("load failure = %q, %v", text, isError)
	}
}
