package views

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"appshelf/internal/adapters/tui/styles"
	"appshelf/internal/application/commands"
	"appshelf/internal/domain"
)

// minQueryLen is the shortest query that narrows the list
const minQueryLen = 2

// SearchKeyMap defines key bindings while the search box has focus
type SearchKeyMap struct {
	Accept key.Binding
	Cancel key.Binding
}

var SearchKeys = SearchKeyMap{
	Accept: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "keep results"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "clear search"),
	),
}

// SearchBox is the inline search input of the browser
type SearchBox struct {
	input textinput.Model
}

// NewSearchBox creates an unfocused, empty search box
func NewSearchBox() *SearchBox {
	input := textinput.New()
	input.Placeholder = "name or app id"
	input.Prompt = "/ "
	input.CharLimit = 128
	return &SearchBox{input: input}
}

// Focus gives the box keyboard focus
func (s *SearchBox) Focus() tea.Cmd {
	return s.input.Focus()
}

// Blur releases keyboard focus and keeps the query
func (s *SearchBox) Blur() {
	s.input.Blur()
}

// Focused reports whether the box has keyboard focus
func (s *SearchBox) Focused() bool {
	return s.input.Focused()
}

// Clear empties the query and releases focus
func (s *SearchBox) Clear() {
	s.input.SetValue("")
	s.input.Blur()
}

// Query returns the trimmed query
func (s *SearchBox) Query() string {
	return strings.TrimSpace(s.input.Value())
}

// Active reports whether the query is long enough to narrow the list
func (s *SearchBox) Active() bool {
	return len(s.Query()) >= minQueryLen
}

// Update forwards a message to the input and reports whether the query
// changed
func (s *SearchBox) Update(msg tea.Msg) (bool, tea.Cmd) {
	before := s.input.Value()
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s.input.Value() != before, cmd
}

// View renders the box, or nothing when it is empty and unfocused
func (s *SearchBox) View() string {
	if !s.Focused() && s.input.Value() == "" {
		return ""
	}
	if s.Focused() {
		return styles.InputFocused.Render(s.input.View())
	}
	return styles.InputField.Render(s.input.View())
}

// Apply narrows catalog to the apps matching filter and, when the box is
// active, ranks them by fuzzy score. Without a query the apps come back
// ordered by id.
func (s *SearchBox) Apply(catalog *domain.Catalog, filter domain.Filter) []domain.App {
	if catalog == nil {
		return nil
	}
	if !s.Active() {
		return catalog.List(filter)
	}

	results, err := commands.NewSearchCommand(catalog, s.Query(), 0).Execute(context.Background())
	if err != nil {
		return nil
	}
	apps := make([]domain.App, 0, len(results))
	for _, r := range results {
		if filter.Matches(r.App) {
			apps = append(apps, r.App)
		}
	}
	return apps
}
