package views

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"appshelf/internal/adapters/tui/styles"
	"appshelf/internal/domain"
)

// RenderKeyHelp formats a key binding as help text (key + description)
func RenderKeyHelp(b key.Binding) string {
	help := b.Help()
	return fmt.Sprintf("%s %s",
		styles.HelpKey.Render(help.Key),
		styles.HelpDesc.Render(help.Desc),
	)
}

// RenderHelpLine renders multiple key bindings as a help line separated by bullets
func RenderHelpLine(bindings ...key.Binding) string {
	var parts []string
	for _, b := range bindings {
		parts = append(parts, RenderKeyHelp(b))
	}
	return strings.Join(parts, styles.HelpSeparator.String())
}

// RenderMessage renders a message with appropriate styling based on isError
func RenderMessage(message string, isError bool) string {
	if message == "" {
		return ""
	}
	if isError {
		return styles.ErrorMsg.Render(message)
	}
	return styles.Success.Render(message)
}

// RenderLabelValue renders a label: value pair
func RenderLabelValue(label, value string) string {
	return fmt.Sprintf("%s %s",
		styles.InputLabel.Render(label+":"),
		value,
	)
}

// RenderAppRow renders one catalog line: id, type badge, name, platforms
func RenderAppRow(app domain.App, selected bool) string {
	name := app.DisplayName()
	if selected {
		text := fmt.Sprintf("%9d  %-13s %s  %s", app.ID, "["+app.Type.String()+"]", name, app.Platforms)
		return styles.RowSelected.Render(text)
	}

	nameStyle := styles.RowName
	if !app.HasName() {
		nameStyle = styles.RowUnnamed
	}
	return fmt.Sprintf("%s  %s %s  %s",
		styles.RowID.Render(strconv.Itoa(app.ID)),
		styles.TypeBadge(app.Type),
		nameStyle.Render(name),
		styles.RowPlatforms.Render(app.Platforms.String()),
	)
}

// RenderAppDetail renders the labelled fields of one app
func RenderAppDetail(app domain.App) string {
	name := "(none)"
	if app.HasName() {
		name = *app.Name
	}
	lines := []string{
		RenderLabelValue("Name", name),
		RenderLabelValue("Type", app.Type.String()),
		RenderLabelValue("Platforms", app.Platforms.String()),
		RenderLabelValue("Store", app.StoreURI()),
	}
	return strings.Join(lines, "\n")
}

// ViewBuilder helps construct view output with consistent formatting
type ViewBuilder struct {
	b strings.Builder
}

// NewViewBuilder creates a new view builder
func NewViewBuilder() *ViewBuilder {
	return &ViewBuilder{}
}

// Title adds a title section
func (v *ViewBuilder) Title(title string) *ViewBuilder {
	v.b.WriteString(styles.Title.Render(title))
	v.b.WriteString("\n")
	return v
}

// Subtitle adds a subtitle section
func (v *ViewBuilder) Subtitle(subtitle string) *ViewBuilder {
	v.b.WriteString(styles.Subtitle.Render(subtitle))
	v.b.WriteString("\n\n")
	return v
}

// Section adds a section heading
func (v *ViewBuilder) Section(label string) *ViewBuilder {
	v.b.WriteString(styles.InputLabel.Render(label))
	v.b.WriteString("\n")
	return v
}

// Line adds a line of text
func (v *ViewBuilder) Line(text string) *ViewBuilder {
	v.b.WriteString(text)
	v.b.WriteString("\n")
	return v
}

// BlankLine adds a blank line
func (v *ViewBuilder) BlankLine() *ViewBuilder {
	v.b.WriteString("\n")
	return v
}

// Muted adds muted text followed by a newline
func (v *ViewBuilder) Muted(text string) *ViewBuilder {
	v.b.WriteString(styles.MutedText.Render(text))
	v.b.WriteString("\n")
	return v
}

// Message adds a message if non-empty, with appropriate error/success styling
func (v *ViewBuilder) Message(message string, isError bool) *ViewBuilder {
	if message == "" {
		return v
	}
	v.b.WriteString("\n")
	v.b.WriteString(RenderMessage(message, isError))
	v.b.WriteString("\n")
	return v
}

// Help adds a help line with key bindings
func (v *ViewBuilder) Help(bindings ...key.Binding) *ViewBuilder {
	v.b.WriteString("\n")
	v.b.WriteString(RenderHelpLine(bindings...))
	return v
}

// Raw adds raw text without any formatting
func (v *ViewBuilder) Raw(text string) *ViewBuilder {
	v.b.WriteString(text)
	return v
}

// String returns the built view string wrapped in the app style
func (v *ViewBuilder) String() string {
	return styles.App.Render(v.b.String())
}
