package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"appshelf/internal/adapters/steam"
	"appshelf/internal/adapters/tui"
	"appshelf/internal/bootstrap"
	"appshelf/internal/config"
)

func main() {
	appInfo := flag.String("appinfo", "", "path to appinfo.vdf (overrides config)")
	noCache := flag.Bool("no-cache", false, "parse appinfo even if a snapshot exists")
	page := flag.String("page", "store", "Steam page opened by 'o': store, library, run or install")
	flag.Parse()

	if err := run(*appInfo, *noCache, *page); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(appInfo string, noCache bool, pageName string) error {
	page, err := steam.ParsePage(pageName)
	if err != nil {
		return err
	}

	// The terminal belongs to the TUI, so only warnings reach stderr
	logger, err := bootstrap.NewLogger(false)
	if err != nil {
		return err
	}
	defer logger.Sync()
	bootstrap.InstallLogger(logger)

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if appInfo != "" {
		cfg.AppInfoPath = config.ExpandHome(appInfo)
	}

	services, err := bootstrap.New(cfg)
	if err != nil {
		return err
	}

	app := tui.NewApp(services.LoadCommand(noCache), steam.NewOpener(page))

	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
