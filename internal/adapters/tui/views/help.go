package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"appshelf/internal/adapters/tui/styles"
	"appshelf/internal/domain"
)

// HelpKeyMap defines key bindings for the help view
type HelpKeyMap struct {
	Close key.Binding
}

var HelpKeys = HelpKeyMap{
	Close: key.NewBinding(
		key.WithKeys("esc", "q", "?"),
		key.WithHelp("esc/q/?", "close"),
	),
}

// HelpModel is the model for the help view
type HelpModel struct {
	ViewState
}

// NewHelpModel creates a new help view model
func NewHelpModel() *HelpModel {
	return &HelpModel{}
}

// Init initializes the help view
func (m *HelpModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the help view
func (m *HelpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, HelpKeys.Close) {
			return m, func() tea.Msg {
				return SwitchToBrowserMsg{}
			}
		}
	}

	return m, nil
}

// View renders the help view
func (m *HelpModel) View() string {
	v := NewViewBuilder().
		Title("appshelf Help").
		Subtitle("Browse the Steam appinfo cache")

	v.Section("Navigation").
		Raw(helpLine("j / k / ↑ / ↓", "Move up/down")).
		Raw(helpLine("Ctrl+F / Ctrl+B", "Next / previous page")).
		Raw(helpLine("g / G", "First / last app")).
		BlankLine()

	v.Section("Filtering").
		Raw(helpLine("/", "Search by name or id")).
		Raw(helpLine("Enter", "Keep results, leave the search box")).
		Raw(helpLine("Esc", "Clear search")).
		Raw(helpLine("t", "Cycle app type")).
		Raw(helpLine("p", "Cycle platform")).
		BlankLine()

	v.Section("Actions").
		Raw(helpLine("y", "Copy app id to clipboard")).
		Raw(helpLine("o", "Open store page in Steam")).
		Raw(helpLine("r", "Reload appinfo")).
		BlankLine()

	v.Section("General").
		Raw(helpLine("?", "Toggle help")).
		Raw(helpLine("q / Ctrl+C", "Quit")).
		BlankLine()

	names := make([]string, len(domain.AppTypes))
	for i, t := range domain.AppTypes {
		names[i] = t.String()
	}
	v.Section("App types").
		Muted("  " + strings.Join(names, ", ")).
		BlankLine()

	return v.Raw(styles.HelpDesc.Render("Press ")).
		Raw(styles.HelpKey.Render("esc")).
		Raw(styles.HelpDesc.Render(" or ")).
		Raw(styles.HelpKey.Render("?")).
		Raw(styles.HelpDesc.Render(" to close")).
		String()
}

func helpLine(key, desc string) string {
	return "  " + styles.HelpKey.Render(padRight(key, 20)) + styles.HelpDesc.Render(desc) + "\n"
}

func padRight(s string, length int) string {
	n := len([]rune(s))
	if n >= length {
		return s
	}
	return s + strings.Repeat(" ", length-n)
}
