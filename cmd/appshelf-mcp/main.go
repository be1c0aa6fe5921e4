package main

import (
	"context"
	"flag"
	"log"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	mcpadapter "appshelf/internal/adapters/mcp"
	"appshelf/internal/bootstrap"
	"appshelf/internal/config"
	"appshelf/internal/domain"
)

func main() {
	appInfoFlag := flag.String("appinfo", "", "path to appinfo.vdf (overrides config)")
	verbose := flag.Bool("verbose", false, "debug logging to stderr")
	flag.Parse()

	// stdout carries the protocol; zap writes to stderr
	logger, err := bootstrap.NewLogger(*verbose)
	if err != nil {
		log.Fatalf("appshelf-mcp: %v", err)
	}
	defer logger.Sync()
	bootstrap.InstallLogger(logger)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("appshelf-mcp: %v", err)
	}
	if *appInfoFlag != "" {
		cfg.AppInfoPath = config.ExpandHome(*appInfoFlag)
	}

	services, err := bootstrap.New(cfg)
	if err != nil {
		log.Fatalf("appshelf-mcp: %v", err)
	}

	// The catalog loads on the first tool call, so the server answers the
	// handshake even when appinfo is missing.
	catalog := mcpadapter.Cached(func(ctx context.Context) (*domain.Catalog, error) {
		result, err := services.LoadCommand(false).Execute(ctx)
		if err != nil {
			return nil, err
		}
		if result.CacheErr != nil {
			logger.Warn("snapshot not stored", zap.Error(result.CacheErr))
		}
		return result.Catalog, nil
	})

	mcpServer := server.NewMCPServer(
		"appshelf-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check, returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	mcpadapter.RegisterReadTools(mcpServer, catalog)

	if err := server.ServeStdio(mcpServer); err != nil {
		log.Fatalf("appshelf-mcp: %v", err)
	}
}
