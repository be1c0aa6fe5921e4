package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"appshelf/internal/adapters/tui/views"
	"appshelf/internal/ports"
)

// ViewState represents the current view
type ViewState int

const (
	ViewBrowser ViewState = iota
	ViewHelp
)

// App is the main TUI application model
type App struct {
	state   ViewState
	browser *views.BrowserModel
	help    *views.HelpModel

	width  int
	height int
}

// NewApp creates a new TUI application. opener may be nil.
func NewApp(loader views.CatalogLoader, opener ports.StoreOpener) *App {
	return &App{
		state:   ViewBrowser,
		browser: views.NewBrowserModel(loader, opener),
		help:    views.NewHelpModel(),
	}
}

// Init initializes the application
func (a *App) Init() tea.Cmd {
	return a.browser.Init()
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.browser.SetSize(msg.Width, msg.Height)
		a.help.SetSize(msg.Width, msg.Height)
		return a, nil

	case views.SwitchToHelpMsg:
		a.state = ViewHelp
		return a, nil

	case views.SwitchToBrowserMsg:
		a.state = ViewBrowser
		return a, nil
	}

	// Delegate to current view. Background results always go to the
	// browser so a load finishing behind the help screen is not lost.
	var cmd tea.Cmd
	switch a.state {
	case ViewHelp:
		if _, ok := msg.(tea.KeyMsg); ok {
			_, cmd = a.help.Update(msg)
		} else {
			_, cmd = a.browser.Update(msg)
		}
	default:
		_, cmd = a.browser.Update(msg)
	}

	return a, cmd
}

// View renders the current view
func (a *App) View() string {
	switch a.state {
	case ViewHelp:
		return a.help.View()
	default:
		return a.browser.View()
	}
}
