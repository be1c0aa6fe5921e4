package views

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"appshelf/internal/adapters/tui/styles"
	"appshelf/internal/application/commands"
	"appshelf/internal/domain"
	"appshelf/internal/ports"
)

// BrowserKeyMap defines key bindings for the browser view
type BrowserKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextPage key.Binding
	PrevPage key.Binding
	Home     key.Binding
	End      key.Binding
	Search   key.Binding
	Type     key.Binding
	Platform key.Binding
	Copy     key.Binding
	Open     key.Binding
	Reload   key.Binding
	Help     key.Binding
	Quit     key.Binding
}

var BrowserKeys = BrowserKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	NextPage: key.NewBinding(
		key.WithKeys("ctrl+f", "pgdown", "l", "right"),
		key.WithHelp("ctrl+f", "next page"),
	),
	PrevPage: key.NewBinding(
		key.WithKeys("ctrl+b", "pgup", "h", "left"),
		key.WithHelp("ctrl+b", "prev page"),
	),
	Home: key.NewBinding(
		key.WithKeys("g", "home"),
		key.WithHelp("g", "top"),
	),
	End: key.NewBinding(
		key.WithKeys("G", "end"),
		key.WithHelp("G", "bottom"),
	),
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search"),
	),
	Type: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "type"),
	),
	Platform: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "platform"),
	),
	Copy: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy id"),
	),
	Open: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "open in steam"),
	),
	Reload: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reload"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// CatalogLoader produces the catalog the browser shows.
// *commands.LoadCommand satisfies it.
type CatalogLoader interface {
	Execute(ctx context.Context) (*commands.LoadResult, error)
}

// rows taken by everything except the list itself
const browserChrome = 14

var platformCycle = []domain.Platforms{
	domain.PlatformNone,
	domain.PlatformWindows,
	domain.PlatformMac,
	domain.PlatformLinux,
}

// BrowserModel is the paginated catalog browser
type BrowserModel struct {
	ViewState
	loader   CatalogLoader
	opener   ports.StoreOpener
	copyText func(string) error

	catalog *domain.Catalog
	stats   domain.LoadStats
	apps    []domain.App
	loading bool
	spinner spinner.Model

	pager       *Paginator
	search      *SearchBox
	typeIdx     int // -1 means every type
	platformIdx int
}

// NewBrowserModel creates a new browser model. opener may be nil, in
// which case the open action reports that it is unavailable.
func NewBrowserModel(loader CatalogLoader, opener ports.StoreOpener) *BrowserModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.Spinner

	return &BrowserModel{
		loader:   loader,
		opener:   opener,
		copyText: clipboard.WriteAll,
		spinner:  s,
		pager:    NewPaginator(defaultPageSize),
		search:   NewSearchBox(),
		typeIdx:  -1,
		loading:  true,
	}
}

// Init starts loading the catalog
func (m *BrowserModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadCatalog)
}

func (m *BrowserModel) loadCatalog() tea.Msg {
	result, err := m.loader.Execute(context.Background())
	if err != nil {
		return errMsg{err}
	}
	loaded := catalogLoadedMsg{catalog: result.Catalog, stats: result.Stats}
	if result.CacheErr != nil {
		loaded.warning = result.CacheErr.Error()
	}
	return loaded
}

// Update handles messages for the browser
func (m *BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case catalogLoadedMsg:
		m.loading = false
		m.catalog = msg.catalog
		m.stats = msg.stats
		m.ClearMessage()
		if msg.warning != "" {
			m.SetMessage(msg.warning, true)
		}
		m.pager.Reset()
		m.refresh()
		return m, nil

	case errMsg:
		m.loading = false
		m.SetMessage(msg.err.Error(), true)
		return m, nil

	case statusMsg:
		m.SetMessage(msg.text, msg.isErr)
		return m, nil

	case tea.KeyMsg:
		if m.search.Focused() {
			return m, m.updateSearch(msg)
		}
		return m, m.handleKey(msg)
	}

	return m, nil
}

func (m *BrowserModel) updateSearch(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, SearchKeys.Cancel):
		m.search.Clear()
		m.pager.Reset()
		m.refresh()
		return nil
	case key.Matches(msg, SearchKeys.Accept):
		m.search.Blur()
		return nil
	}

	changed, cmd := m.search.Update(msg)
	if changed {
		m.pager.Reset()
		m.refresh()
	}
	return cmd
}

func (m *BrowserModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	m.ClearMessage()

	switch {
	case key.Matches(msg, BrowserKeys.Quit):
		return tea.Quit

	case key.Matches(msg, BrowserKeys.Help):
		return func() tea.Msg {
			return SwitchToHelpMsg{}
		}

	case key.Matches(msg, BrowserKeys.Reload):
		m.loading = true
		return tea.Batch(m.spinner.Tick, m.loadCatalog)
	}

	if m.loading {
		return nil
	}

	switch {
	case key.Matches(msg, BrowserKeys.Up):
		m.pager.CursorUp()
	case key.Matches(msg, BrowserKeys.Down):
		m.pager.CursorDown()
	case key.Matches(msg, BrowserKeys.NextPage):
		m.pager.NextPage()
	case key.Matches(msg, BrowserKeys.PrevPage):
		m.pager.PrevPage()
	case key.Matches(msg, BrowserKeys.Home):
		m.pager.Home()
	case key.Matches(msg, BrowserKeys.End):
		m.pager.End()

	case key.Matches(msg, BrowserKeys.Search):
		return m.search.Focus()

	case key.Matches(msg, SearchKeys.Cancel):
		if m.search.Query() != "" {
			m.search.Clear()
			m.pager.Reset()
			m.refresh()
		}

	case key.Matches(msg, BrowserKeys.Type):
		m.typeIdx++
		if m.typeIdx >= len(domain.AppTypes) {
			m.typeIdx = -1
		}
		m.pager.Reset()
		m.refresh()

	case key.Matches(msg, BrowserKeys.Platform):
		m.platformIdx = (m.platformIdx + 1) % len(platformCycle)
		m.pager.Reset()
		m.refresh()

	case key.Matches(msg, BrowserKeys.Copy):
		if app, ok := m.Selected(); ok {
			return m.copyID(app)
		}

	case key.Matches(msg, BrowserKeys.Open):
		if app, ok := m.Selected(); ok {
			return m.openApp(app)
		}
	}
	return nil
}

func (m *BrowserModel) copyID(app domain.App) tea.Cmd {
	copyText := m.copyText
	return func() tea.Msg {
		if err := copyText(strconv.Itoa(app.ID)); err != nil {
			return statusMsg{text: fmt.Sprintf("copy failed: %v", err), isErr: true}
		}
		return statusMsg{text: fmt.Sprintf("Copied %d", app.ID)}
	}
}

func (m *BrowserModel) openApp(app domain.App) tea.Cmd {
	opener := m.opener
	return func() tea.Msg {
		if opener == nil {
			return statusMsg{text: "opening Steam is not available", isErr: true}
		}
		if err := opener.OpenApp(app.ID); err != nil {
			return statusMsg{text: fmt.Sprintf("open failed: %v", err), isErr: true}
		}
		return statusMsg{text: fmt.Sprintf("Opened %s in Steam", app.DisplayName())}
	}
}

// Filter returns the type and platform filter currently applied
func (m *BrowserModel) Filter() domain.Filter {
	var f domain.Filter
	if m.typeIdx >= 0 {
		f.Types = []domain.AppType{domain.AppTypes[m.typeIdx]}
	}
	f.Platforms = platformCycle[m.platformIdx]
	return f
}

// Apps returns the apps currently listed, in display order
func (m *BrowserModel) Apps() []domain.App {
	return m.apps
}

// Selected returns the app under the cursor
func (m *BrowserModel) Selected() (domain.App, bool) {
	i := m.pager.Cursor()
	if i < 0 || i >= len(m.apps) {
		return domain.App{}, false
	}
	return m.apps[i], true
}

func (m *BrowserModel) refresh() {
	m.apps = m.search.Apply(m.catalog, m.Filter())
	m.pager.SetTotal(len(m.apps))
}

// View renders the browser
func (m *BrowserModel) View() string {
	v := NewViewBuilder().Title("appshelf")

	if m.loading {
		return v.Line(m.spinner.View() + " Loading appinfo...").
			Message(m.Message, m.MessageErr).
			String()
	}
	if m.catalog == nil {
		return v.Message(m.Message, m.MessageErr).
			Muted("Press r to retry or q to quit").
			String()
	}

	v.Subtitle(m.subtitle())
	if box := m.search.View(); box != "" {
		v.Line(box)
	}

	if len(m.apps) == 0 {
		if m.search.Query() != "" && !m.search.Active() {
			v.Muted(fmt.Sprintf("Type at least %d characters to search", minQueryLen))
		} else {
			v.Muted("No apps match")
		}
	} else {
		start, end := m.pager.VisibleRange()
		for i := start; i < end; i++ {
			v.Line(RenderAppRow(m.apps[i], i == m.pager.Cursor()))
		}
		if m.pager.TotalPages() > 1 {
			v.BlankLine().Muted(fmt.Sprintf("Page %d/%d", m.pager.CurrentPage(), m.pager.TotalPages()))
		}
		if app, ok := m.Selected(); ok {
			v.BlankLine().Line(RenderAppDetail(app))
		}
	}

	v.Message(m.Message, m.MessageErr)

	if m.search.Focused() {
		return v.Help(SearchKeys.Accept, SearchKeys.Cancel).String()
	}
	return v.Help(
		BrowserKeys.Down,
		BrowserKeys.NextPage,
		BrowserKeys.Search,
		BrowserKeys.Type,
		BrowserKeys.Copy,
		BrowserKeys.Open,
		BrowserKeys.Help,
		BrowserKeys.Quit,
	).String()
}

func (m *BrowserModel) subtitle() string {
	parts := []string{fmt.Sprintf("%d of %d apps", len(m.apps), m.catalog.Len())}

	f := m.Filter()
	if len(f.Types) > 0 {
		parts = append(parts, "type "+f.Types[0].String())
	}
	if f.Platforms != domain.PlatformNone {
		parts = append(parts, "on "+f.Platforms.String())
	}
	if m.stats.FromCache {
		parts = append(parts, "cached")
	} else if m.stats.Skipped > 0 {
		parts = append(parts, fmt.Sprintf("%d entries skipped", m.stats.Skipped))
	}
	return strings.Join(parts, " · ")
}

// SetSize updates the view dimensions and the page size that fits them
func (m *BrowserModel) SetSize(width, height int) {
	m.ViewState.SetSize(width, height)
	if height > 0 {
		m.pager.SetPageSize(max(height-browserChrome, 5))
	}
}

// Reload reloads the catalog from its source
func (m *BrowserModel) Reload() tea.Cmd {
	m.loading = true
	return tea.Batch(m.spinner.Tick, m.loadCatalog)
}
