package tui

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/wethinkt/go-palettepro/internal/i18n"
	"github.com/wethinkt/go-palettepro/internal/theme"
)

// ThemeBrowserModel lists the available themes and previews the browser
// drawn in the one under the cursor.
type ThemeBrowserModel struct {
	picker
	themes []theme.Theme
	names  []string

	selected string // activate this theme
	edit     string // open the builder on this theme
	create   bool   // open the builder on a new theme
}

// NewThemeBrowserModel loads every available theme. Themes that fail to
// load preview as the default.
func NewThemeBrowserModel() ThemeBrowserModel {
	metas, _ := theme.ListAvailable()
	active := theme.ActiveName()

	m := ThemeBrowserModel{}
	var items []pickItem
	for _, meta := range metas {
		t, err := theme.LoadByName(meta.Name)
		if err != nil {
			t = theme.DefaultTheme()
		}
		items = append(items, pickItem{name: meta.Name, note: meta.Description, active: meta.Name == active})
		m.themes = append(m.themes, t)
		m.names = append(m.names, meta.Name)
	}
	m.picker = newPicker(items)
	return m
}

// Selected returns the theme chosen with enter, or "".
func (m ThemeBrowserModel) Selected() string { return m.selected }

func (m ThemeBrowserModel) Init() tea.Cmd { return nil }

func (m ThemeBrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg)
	case tea.KeyPressMsg:
		switch msg.String() {
		case "e":
			if len(m.names) > 0 {
				m.edit = m.names[m.cursor]
				return m, tea.Quit
			}
		case "n":
			m.create = true
			return m, tea.Quit
		}
		switch m.handle(msg) {
		case pickCancel:
			return m, tea.Quit
		case pickChosen:
			m.selected = m.names[m.cursor]
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m ThemeBrowserModel) View() tea.View {
	if !m.ready() {
		return altView(i18n.T("common.loading", "Loading..."))
	}
	t := theme.DefaultTheme()
	if len(m.themes) > 0 {
		t = m.themes[m.cursor]
	}
	return altView(m.view(buildStyles(t),
		i18n.T("tui.themes.title", "Themes"),
		i18n.T("tui.preview", "Preview"),
		renderThemePreview(t, m.previewWidth()-2),
		i18n.T("tui.themes.help", "↑/↓: navigate • enter: activate • e: edit • n: new theme • q/esc: cancel"),
	))
}

// RunThemeBrowser runs the browser and applies what the user chose.
func RunThemeBrowser() error {
	final, err := tea.NewProgram(NewThemeBrowserModel(), termSizeOpts()...).Run()
	if err != nil {
		return err
	}
	m, ok := final.(ThemeBrowserModel)
	if !ok {
		return nil
	}

	switch {
	case m.selected != "":
		if err := theme.SetActive(m.selected); err != nil {
			return fmt.Errorf("set theme: %w", err)
		}
		fmt.Println(i18n.Tf("cmd.theme.set", "Theme set to: %s", m.selected))
	case m.edit != "":
		return RunThemeBuilder(m.edit)
	case m.create:
		fmt.Print(i18n.T("cmd.theme.newPrompt", "New theme name: "))
		line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
		if name := strings.TrimSpace(line); name != "" {
			return RunThemeBuilder(name)
		}
	}
	return nil
}
