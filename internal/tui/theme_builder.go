package tui

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/wethinkt/go-palettepro/internal/i18n"
	"github.com/wethinkt/go-palettepro/internal/theme"
	"github.com/wethinkt/go-palettepro/internal/tui/colorpicker"
)

// colorField is one editable theme color.
type colorField struct {
	Name string
	Get  func(*theme.Theme) *string
}

var themeFields = []colorField{
	{"Primary", func(t *theme.Theme) *string { return &t.Primary }},
	{"Secondary", func(t *theme.Theme) *string { return &t.Secondary }},
	{"Accent", func(t *theme.Theme) *string { return &t.Accent }},
	{"Background", func(t *theme.Theme) *string { return &t.Background }},
	{"Surface", func(t *theme.Theme) *string { return &t.Surface }},
	{"Text", func(t *theme.Theme) *string { return &t.Text }},
}

// ThemeBuilderModel is the model for the theme builder TUI.
type ThemeBuilderModel struct {
	theme     theme.Theme
	themeName string
	selected  int
	editing   bool
	origColor string
	picker    colorpicker.Model
	preview   viewport.Model
	width     int
	height    int
	ready     bool
	dirty     bool
	message   string
	isError   bool

	save func(string, theme.Theme) error
}

// NewThemeBuilderModel creates a theme builder for themeName, starting from
// that theme when it exists and from the default otherwise.
func NewThemeBuilderModel(themeName string) ThemeBuilderModel {
	t, err := theme.LoadByName(themeName)
	if err != nil {
		t = theme.DefaultTheme()
		t.Description = ""
	}
	t.Name = themeName

	return ThemeBuilderModel{
		theme:     t,
		themeName: themeName,
		picker:    colorpicker.New("#000000"),
		save:      theme.Save,
	}
}

// Theme returns the theme being edited.
func (m ThemeBuilderModel) Theme() theme.Theme { return m.theme }

func (m ThemeBuilderModel) Init() tea.Cmd {
	return nil
}

func (m ThemeBuilderModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.preview = viewport.New()
			m.ready = true
		}
		previewWidth := m.width * 55 / 100
		m.preview.SetWidth(previewWidth - 4)
		m.preview.SetHeight(m.height - 6)
		m.updatePreview()
		return m, nil

	case tea.KeyPressMsg:
		m.message = ""
		key := msg.String()

		if m.editing {
			m.picker.HandleKey(key)
			field := themeFields[m.selected].Get(&m.theme)
			*field = m.picker.Value()
			switch {
			case m.picker.Confirmed:
				m.editing = false
				m.dirty = m.dirty || *field != m.origColor
			case m.picker.Cancelled:
				*field = m.origColor
				m.editing = false
			}
			m.updatePreview()
			return m, nil
		}

		switch key {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}
		case "down", "j":
			if m.selected < len(themeFields)-1 {
				m.selected++
			}
		case "enter", "e":
			m.startEditing()
		case "ctrl+s":
			m.saveTheme()
		}
	}

	var cmd tea.Cmd
	m.preview, cmd = m.preview.Update(msg)
	return m, cmd
}

func (m *ThemeBuilderModel) startEditing() {
	f := themeFields[m.selected]
	m.origColor = *f.Get(&m.theme)
	m.picker = colorpicker.New(m.origColor)
	m.picker.Title = i18n.Tf("tui.builder.editing", "Editing %s", f.Name)
	m.picker.AccentColor = m.theme.Accent
	m.picker.MutedColor = m.theme.Secondary
	m.editing = true
}

func (m *ThemeBuilderModel) saveTheme() {
	if err := m.save(m.themeName, m.theme); err != nil {
		m.message = i18n.Tf("tui.builder.saveError", "Error saving: %v", err)
		m.isError = true
		return
	}
	m.dirty = false
	m.isError = false
	m.message = i18n.Tf("tui.builder.saved", "Theme '%s' saved!", m.themeName)
}

func (m *ThemeBuilderModel) updatePreview() {
	if !m.ready {
		return
	}
	m.preview.SetContent(renderThemePreview(m.theme, m.preview.Width()))
}

func (m ThemeBuilderModel) View() tea.View {
	if !m.ready {
		v := tea.NewView(i18n.T("common.loading", "Loading..."))
		v.AltScreen = true
		return v
	}

	listWidth := m.width * 45 / 100
	previewWidth := m.width - listWidth - 3
	accent := lipgloss.Color(m.theme.Accent)

	left := m.renderFieldList()
	if m.editing {
		left = m.picker.View()
	}

	listTitle := lipgloss.NewStyle().Bold(true).Foreground(accent).Render(i18n.Tf("tui.builder.title", "Theme: %s", m.themeName))
	if m.dirty {
		listTitle += lipgloss.NewStyle().Foreground(lipgloss.Color("#ff5555")).Render(" *")
	}
	previewTitle := lipgloss.NewStyle().Bold(true).Foreground(accent).Render(i18n.T("tui.preview", "Preview"))
	header := listTitle + strings.Repeat(" ", max(0, listWidth-lipgloss.Width(listTitle)+3)) + previewTitle

	listPane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accent).
		Width(listWidth).
		Height(m.height - 6).
		Render(left)
	previewPane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Surface)).
		Width(previewWidth).
		Height(m.height - 6).
		Render(m.preview.View())

	helpText := ""
	if !m.editing {
		helpText = i18n.T("tui.builder.help", "↑/↓: select • enter: edit • ctrl+s: save • esc/q: quit")
	}
	footer := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Secondary)).Render(helpText)

	v := tea.NewView(header + "\n" + lipgloss.JoinHorizontal(lipgloss.Top, listPane, " ", previewPane) + "\n" + footer)
	v.AltScreen = true
	return v
}

func (m ThemeBuilderModel) renderFieldList() string {
	var b strings.Builder
	mutedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Secondary))

	for i, f := range themeFields {
		prefix := "  "
		nameStyle := lipgloss.NewStyle().Width(12)
		if i == m.selected {
			prefix = "▸ "
			nameStyle = nameStyle.Bold(true).Foreground(lipgloss.Color(m.theme.Accent))
		}
		hex := *f.Get(&m.theme)
		swatch := lipgloss.NewStyle().Background(lipgloss.Color(hex)).Render("  ")
		b.WriteString(prefix + nameStyle.Render(f.Name) + " " + swatch + " " + mutedStyle.Render(hex) + "\n")
	}

	if m.message != "" {
		color := "#50fa7b"
		if m.isError {
			color = "#ff5555"
		}
		b.WriteString("\n" + lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(m.message) + "\n")
	}
	return b.String()
}

// RunThemeBuilder runs the theme builder TUI.
func RunThemeBuilder(themeName string) error {
	p := tea.NewProgram(NewThemeBuilderModel(themeName), termSizeOpts()...)
	_, err := p.Run()
	if err != nil {
		return fmt.Errorf("run theme builder: %w", err)
	}
	return nil
}
