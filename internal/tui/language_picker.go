package tui

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/wethinkt/go-palettepro/internal/cli"
	"github.com/wethinkt/go-palettepro/internal/i18n"
	"github.com/wethinkt/go-palettepro/internal/theme"
)

// LanguagePickerModel lets the user choose a UI language while previewing
// the browser's strings in it.
type LanguagePickerModel struct {
	picker
	tags     []string
	styles   Styles
	selected string
}

// NewLanguagePickerModel starts with the cursor on activeTag.
func NewLanguagePickerModel(activeTag string) LanguagePickerModel {
	var items []pickItem
	var tags []string
	for _, l := range i18n.AvailableLanguages(activeTag) {
		note := l.Tag
		if l.EnglishName != l.Name {
			note += " · " + l.EnglishName
		}
		items = append(items, pickItem{name: l.Name, note: note, active: l.Active})
		tags = append(tags, l.Tag)
	}
	return LanguagePickerModel{
		picker: newPicker(items),
		tags:   tags,
		styles: buildStyles(theme.Current()),
	}
}

// Selected returns the chosen tag, or "" if the picker was cancelled.
func (m LanguagePickerModel) Selected() string { return m.selected }

func (m LanguagePickerModel) Init() tea.Cmd { return nil }

func (m LanguagePickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg)
	case tea.KeyPressMsg:
		switch m.handle(msg) {
		case pickCancel:
			return m, tea.Quit
		case pickChosen:
			m.selected = m.tags[m.cursor]
			return m, tea.Quit
		}
	}
	return m, nil
}

// languagePreview shows the preview strings of tag above a sample palette.
func (m LanguagePickerModel) languagePreview(tag string) string {
	msgs := i18n.PreviewStrings(tag)
	s := m.styles

	var b strings.Builder
	b.WriteString("\n" + s.Title.Render(msgs["gallery.title.all"]) + "\n\n")
	sample := samplePalettes[0]
	b.WriteString("  " + sample.Name + "\n  " + cli.SwatchRow(sample.Colors, 6) + "\n\n")
	b.WriteString(s.Muted.Render(msgs["gallery.empty.hintAll"]) + "\n")
	b.WriteString(s.Status.Render(msgs["common.loading"]) + "  " + s.Muted.Render(msgs["common.time.justNow"]) + "\n\n")
	b.WriteString(s.Help.Render(strings.Join([]string{
		"/: " + msgs["tui.help.search"],
		"r: " + msgs["tui.help.regenerate"],
		"q: " + msgs["tui.help.quit"],
	}, " • ")))
	return b.String()
}

func (m LanguagePickerModel) View() tea.View {
	if !m.ready() {
		return altView(i18n.T("common.loading", "Loading..."))
	}
	preview := ""
	if len(m.tags) > 0 {
		preview = m.languagePreview(m.tags[m.cursor])
	}
	return altView(m.view(m.styles,
		i18n.T("tui.languages.title", "Languages"),
		i18n.T("tui.preview", "Preview"),
		preview,
		i18n.T("tui.languages.help", "↑/↓: navigate • enter: select • q/esc: cancel"),
	))
}

// RunLanguagePicker returns the chosen tag, or "" if the user cancelled.
func RunLanguagePicker(activeTag string) (string, error) {
	final, err := tea.NewProgram(NewLanguagePickerModel(activeTag), termSizeOpts()...).Run()
	if err != nil {
		return "", err
	}
	if m, ok := final.(LanguagePickerModel); ok {
		return m.selected, nil
	}
	return "", nil
}
