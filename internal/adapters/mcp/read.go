package mcp

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"appshelf/internal/application"
	"appshelf/internal/application/commands"
	"appshelf/internal/domain"
)

const (
	defaultListLimit   = 50
	defaultSearchLimit = 20
)

// CatalogFunc returns the catalog the tools answer from
type CatalogFunc func(ctx context.Context) (*domain.Catalog, error)

// Static serves a catalog that is already loaded
func Static(c *domain.Catalog) CatalogFunc {
	return func(context.Context) (*domain.Catalog, error) {
		return c, nil
	}
}

// Cached calls load on first use and keeps the result. A failed load is
// retried on the next call.
func Cached(load CatalogFunc) CatalogFunc {
	var (
		mu      sync.Mutex
		catalog *domain.Catalog
	)
	return func(ctx context.Context) (*domain.Catalog, error) {
		mu.Lock()
		defer mu.Unlock()
		if catalog != nil {
			return catalog, nil
		}
		c, err := load(ctx)
		if err != nil {
			return nil, err
		}
		catalog = c
		return catalog, nil
	}
}

// RegisterReadTools adds the catalog query tools to the MCP server.
func RegisterReadTools(s *server.MCPServer, catalog CatalogFunc) {
	s.AddTool(listTool(), listHandler(catalog))
	s.AddTool(searchTool(), searchHandler(catalog))
	s.AddTool(getTool(), getHandler(catalog))
	s.AddTool(statsTool(), statsHandler(catalog))
}

// --- list_apps ---

func listTool() mcp.Tool {
	return mcp.NewTool("list_apps",
		mcp.WithDescription("List apps from the Steam appinfo catalog ordered by id, optionally filtered by type and platform."),
		mcp.WithString("type",
			mcp.Description("Comma-separated app types (game, application, demo, dlc, media, tool, other, unknown). Omit for all types."),
		),
		mcp.WithString("platform",
			mcp.Description("Comma-separated platforms the app must support (windows, macos, linux)."),
		),
		mcp.WithNumber("limit",
			mcp.Description(fmt.Sprintf("Maximum number of apps to return (default %d, 0 for no limit).", defaultListLimit)),
		),
	)
}

func listHandler(catalog CatalogFunc) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		filter, err := application.BuildFilter(
			splitList(req.GetString("type", "")),
			req.GetString("platform", ""),
			req.GetInt("limit", defaultListLimit),
		)
		if err != nil {
			return toolError(err)
		}

		c, err := catalog(ctx)
		if err != nil {
			return toolError(err)
		}

		apps, err := commands.NewListCommand(c, filter).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return formatEntities(apps, formatApp)
	}
}

// --- search_apps ---

func searchTool() mcp.Tool {
	return mcp.NewTool("search_apps",
		mcp.WithDescription("Fuzzy search apps by name or id. Returns the best matches first."),
		mcp.WithString("query",
			mcp.Description("Search query, at least two characters"),
			mcp.Required(),
		),
		mcp.WithNumber("limit",
			mcp.Description(fmt.Sprintf("Maximum number of results (default %d).", defaultSearchLimit)),
		),
	)
}

func searchHandler(catalog CatalogFunc) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query := req.GetString("query", "")
		if query == "" {
			return toolError(fmt.Errorf("query is required"))
		}

		c, err := catalog(ctx)
		if err != nil {
			return toolError(err)
		}

		results, err := commands.NewSearchCommand(c, query, req.GetInt("limit", defaultSearchLimit)).Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		if len(results) == 0 {
			return mcp.NewToolResultText("No results found."), nil
		}

		var sb strings.Builder
		for _, r := range results {
			fmt.Fprintf(&sb, "%s  (score %d)\n", formatApp(r.App), r.Score)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- get_app ---

func getTool() mcp.Tool {
	return mcp.NewTool("get_app",
		mcp.WithDescription("Get one app by its Steam app id."),
		mcp.WithString("id",
			mcp.Description("Steam app id (e.g. 570)"),
			mcp.Required(),
		),
	)
}

func getHandler(catalog CatalogFunc) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		raw := req.GetString("id", "")
		if raw == "" {
			return toolError(fmt.Errorf("id is required"))
		}
		id, err := application.ParseAppID(raw)
		if err != nil {
			return toolError(err)
		}

		c, err := catalog(ctx)
		if err != nil {
			return toolError(err)
		}

		app, err := commands.NewShowCommand(c, id).Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		var sb strings.Builder
		fmt.Fprintf(&sb, "id: %d\n", app.ID)
		if app.HasName() {
			fmt.Fprintf(&sb, "name: %s\n", *app.Name)
		} else {
			sb.WriteString("name: (none)\n")
		}
		fmt.Fprintf(&sb, "type: %s\n", app.Type)
		fmt.Fprintf(&sb, "platforms: %s\n", app.Platforms)
		fmt.Fprintf(&sb, "store: %s\n", app.StoreURI())
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- catalog_stats ---

func statsTool() mcp.Tool {
	return mcp.NewTool("catalog_stats",
		mcp.WithDescription("Count catalog apps per type and per platform."),
	)
}

func statsHandler(catalog CatalogFunc) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		c, err := catalog(ctx)
		if err != nil {
			return toolError(err)
		}

		summary, err := commands.NewStatsCommand(c).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(formatSummary(summary)), nil
	}
}

// --- helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

func formatEntities[T any](entities []T, format func(T) string) (*mcp.CallToolResult, error) {
	if len(entities) == 0 {
		return mcp.NewToolResultText("No results."), nil
	}
	var sb strings.Builder
	for _, e := range entities {
		sb.WriteString(format(e))
		sb.WriteByte('\n')
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func formatApp(a domain.App) string {
	return fmt.Sprintf("%d  %s  [%s] %s", a.ID, a.DisplayName(), a.Type, a.Platforms)
}

func formatSummary(s domain.Summary) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "apps: %d (%d named)\n", s.Total, s.Named)

	sb.WriteString("by type:\n")
	for _, t := range domain.AppTypes {
		if n := s.ByType[t]; n > 0 {
			fmt.Fprintf(&sb, "  %-12s %d\n", t, n)
		}
	}

	sb.WriteString("by platform:\n")
	names := make([]string, 0, len(s.ByPlatform))
	for name := range s.ByPlatform {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(&sb, "  %-12s %d\n", name, s.ByPlatform[name])
	}
	return sb.String()
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
