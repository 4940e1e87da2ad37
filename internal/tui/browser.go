package tui

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/textinput"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/wethinkt/go-palettepro/internal/cli"
	"github.com/wethinkt/go-palettepro/internal/colorspace"
	"github.com/wethinkt/go-palettepro/internal/gallery"
	"github.com/wethinkt/go-palettepro/internal/i18n"
	"github.com/wethinkt/go-palettepro/internal/palette"
	"github.com/wethinkt/go-palettepro/internal/search"
	"github.com/wethinkt/go-palettepro/internal/theme"
	"github.com/wethinkt/go-palettepro/internal/tui/colorpicker"
	"github.com/wethinkt/go-palettepro/internal/tuilog"
)

// Options configures the palette browser.
type Options struct {
	Category palette.Category
	Search   string
	// Delay is the simulated generation latency before a batch is shown.
	Delay time.Duration
	// Theme colors the browser; zero uses the active theme.
	Theme theme.Theme
}

type browserMode int

const (
	modeBrowse browserMode = iota
	modeSearch
	modePicker
	modeDetail
)

// galleryMsg delivers a generated batch. seq identifies the request that
// produced it; batches from superseded requests are dropped.
type galleryMsg struct {
	seq      int
	req      gallery.Request
	palettes []palette.Palette
	err      error
}

// BrowserModel is the interactive palette gallery.
type BrowserModel struct {
	builder *gallery.Builder
	buildMu *sync.Mutex
	delay   time.Duration

	categories []palette.Category
	catIdx     int
	term       string

	palettes []palette.Palette
	cursor   int
	colorIdx int
	offset   int

	seq     int
	loading bool
	err     error
	status  string

	mode    browserMode
	input   textinput.Model
	picker  colorpicker.Model
	detail  viewport.Model
	spinner spinner.Model

	keys   browserKeyMap
	theme  theme.Theme
	styles Styles

	width  int
	height int

	copyText func(string) error
}

// NewBrowserModel creates a browser over b. The first batch is requested by
// Init.
func NewBrowserModel(b *gallery.Builder, opts Options) BrowserModel {
	if b == nil {
		b = gallery.NewBuilder(nil, nil)
	}
	t := opts.Theme
	if t.Primary == "" {
		t = theme.Current()
	}

	cats := b.Generator().Registry().Categories()
	catIdx := 0
	for i, c := range cats {
		if strings.EqualFold(string(c), string(opts.Category)) {
			catIdx = i
		}
	}

	input := textinput.New()
	input.Prompt = "/ "
	input.Placeholder = i18n.T("tui.search.placeholder", "color name or hex")
	input.CharLimit = 32

	styles := buildStyles(t)
	return BrowserModel{
		builder:    b,
		buildMu:    &sync.Mutex{},
		delay:      opts.Delay,
		categories: cats,
		catIdx:     catIdx,
		term:       strings.TrimSpace(opts.Search),
		seq:        1,
		loading:    true,
		input:      input,
		detail:     viewport.New(),
		spinner:    spinner.New(spinner.WithSpinner(spinner.MiniDot), spinner.WithStyle(styles.Status)),
		keys:       defaultBrowserKeyMap(),
		theme:      t,
		styles:     styles,
		copyText:   cli.CopyText,
	}
}

// Category returns the selected category.
func (m BrowserModel) Category() palette.Category { return m.categories[m.catIdx] }

// Search returns the active search term.
func (m BrowserModel) Search() string { return m.term }

// Palettes returns the batch currently shown.
func (m BrowserModel) Palettes() []palette.Palette { return m.palettes }

// Loading reports whether a batch is pending.
func (m BrowserModel) Loading() bool { return m.loading }

func (m BrowserModel) request() gallery.Request {
	return gallery.Request{Category: m.Category(), Search: m.term}
}

func (m BrowserModel) loadCmd() tea.Cmd {
	seq, req := m.seq, m.request()
	b, mu, delay := m.builder, m.buildMu, m.delay
	return func() tea.Msg {
		if delay > 0 {
			time.Sleep(delay)
		}
		mu.Lock()
		ps, err := b.Gallery(req)
		mu.Unlock()
		return galleryMsg{seq: seq, req: req, palettes: ps, err: err}
	}
}

// reload supersedes any pending batch with a new request.
func (m *BrowserModel) reload() tea.Cmd {
	m.seq++
	m.loading = true
	m.err = nil
	m.status = ""
	tuilog.Log.Debug("Gallery requested", "seq", m.seq, "category", m.Category(), "search", m.term)
	return tea.Batch(m.loadCmd(), m.spinner.Tick)
}

func (m BrowserModel) Init() tea.Cmd {
	return tea.Batch(m.loadCmd(), m.spinner.Tick)
}

func (m BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.detail.SetWidth(max(msg.Width-4, 10))
		m.detail.SetHeight(max(msg.Height-5, 3))
		return m, nil

	case galleryMsg:
		if msg.seq != m.seq {
			tuilog.Log.Debug("Dropping superseded gallery", "seq", msg.seq, "current", m.seq)
			return m, nil
		}
		m.loading = false
		m.err = msg.err
		m.palettes = msg.palettes
		m.cursor, m.colorIdx, m.offset = 0, 0, 0
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyPressMsg:
		switch m.mode {
		case modeSearch:
			return m.updateSearch(msg)
		case modePicker:
			return m.updatePicker(msg)
		case modeDetail:
			return m.updateDetail(msg)
		}
		return m.updateBrowse(msg)
	}

	if m.mode == modeSearch {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m BrowserModel) updateBrowse(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Back):
		if m.term == "" {
			return m, nil
		}
		m.term = ""
		return m, m.reload()

	case key.Matches(msg, m.keys.PrevCategory):
		m.catIdx = (m.catIdx + len(m.categories) - 1) % len(m.categories)
		return m, m.reload()

	case key.Matches(msg, m.keys.NextCategory):
		m.catIdx = (m.catIdx + 1) % len(m.categories)
		return m, m.reload()

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
			m.colorIdx = 0
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.palettes)-1 {
			m.cursor++
			m.colorIdx = 0
		}

	case key.Matches(msg, m.keys.PrevColor):
		if m.colorIdx > 0 {
			m.colorIdx--
		}

	case key.Matches(msg, m.keys.NextColor):
		if p, ok := m.current(); ok && m.colorIdx < len(p.Colors)-1 {
			m.colorIdx++
		}

	case key.Matches(msg, m.keys.Search):
		m.mode = modeSearch
		m.input.SetValue(m.term)
		m.input.CursorEnd()
		return m, m.input.Focus()

	case key.Matches(msg, m.keys.Pick):
		start := "#808080"
		if c, ok := search.Suggest(m.term); ok {
			start = c
		} else if p, ok := m.current(); ok {
			start = p.Colors[m.colorIdx]
		}
		m.picker = colorpicker.New(start)
		m.picker.AccentColor = m.theme.Accent
		m.picker.MutedColor = m.theme.Secondary
		m.mode = modePicker

	case key.Matches(msg, m.keys.Regenerate):
		return m, m.reload()

	case key.Matches(msg, m.keys.Detail):
		if p, ok := m.current(); ok {
			var b strings.Builder
			d := cli.NewPaletteDisplay(&b, m.theme)
			d.Palette(p)
			b.WriteString("\n")
			d.Detail(p.Colors)
			m.detail.SetContent(b.String())
			m.detail.GotoTop()
			m.mode = modeDetail
		}

	case key.Matches(msg, m.keys.CopyPalette):
		if p, ok := m.current(); ok {
			m.copy(p.String())
		}

	case key.Matches(msg, m.keys.CopyColor):
		if p, ok := m.current(); ok {
			m.copy(p.Colors[m.colorIdx])
		}
	}
	return m, nil
}

func (m BrowserModel) updateSearch(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.mode = modeBrowse
		m.input.Blur()
		m.term = strings.TrimSpace(m.input.Value())
		return m, m.reload()
	case "esc":
		m.mode = modeBrowse
		m.input.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m BrowserModel) updatePicker(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	m.picker.HandleKey(msg.String())
	switch {
	case m.picker.Confirmed:
		m.mode = modeBrowse
		m.term = m.picker.Value()
		return m, m.reload()
	case m.picker.Cancelled:
		m.mode = modeBrowse
	}
	return m, nil
}

func (m BrowserModel) updateDetail(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Detail):
		m.mode = modeBrowse
		return m, nil
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.detail, cmd = m.detail.Update(msg)
	return m, cmd
}

func (m BrowserModel) current() (palette.Palette, bool) {
	if m.cursor < 0 || m.cursor >= len(m.palettes) {
		return palette.Palette{}, false
	}
	return m.palettes[m.cursor], true
}

func (m *BrowserModel) copy(text string) {
	if err := m.copyText(text); err != nil {
		tuilog.Log.Warn("Copy failed", "error", err)
		m.status = i18n.T("tui.status.copyFailed", "Clipboard unavailable")
		return
	}
	m.status = i18n.Tf("tui.status.copied", "Copied %s", text)
}

func (m BrowserModel) View() tea.View {
	var content string
	switch m.mode {
	case modePicker:
		content = m.picker.View()
	case modeDetail:
		content = m.viewDetail()
	default:
		content = m.viewGallery()
	}
	v := tea.NewView(content)
	v.AltScreen = true
	return v
}

func (m BrowserModel) viewTabs() string {
	tabs := make([]string, 0, len(m.categories))
	for i, c := range m.categories {
		style := m.styles.Tab
		if i == m.catIdx {
			style = m.styles.ActiveTab
		}
		tabs = append(tabs, style.Render(string(c)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// visibleRows is how many palettes fit between header and footer.
func (m BrowserModel) visibleRows() int {
	if m.height == 0 {
		return len(m.palettes)
	}
	return max((m.height-7)/3, 1)
}

func (m BrowserModel) viewGallery() string {
	var b strings.Builder
	b.WriteString(m.viewTabs() + "\n\n")

	title := m.styles.Title.Render(gallery.Title(m.Category(), m.term))
	if m.loading {
		title += "  " + m.spinner.View() + " " + m.styles.Muted.Render(i18n.T("common.loading", "Loading..."))
	}
	b.WriteString(title + "\n")
	if m.mode == modeSearch {
		b.WriteString(m.input.View() + "\n")
	}
	b.WriteString("\n")

	switch {
	case m.err != nil:
		b.WriteString(m.styles.Error.Render(m.err.Error()) + "\n")
	case !m.loading && len(m.palettes) == 0:
		msg, hint := gallery.EmptyMessage(m.Category(), m.term)
		b.WriteString(msg + "\n" + m.styles.Muted.Render(hint) + "\n")
	default:
		rows := m.visibleRows()
		offset := m.offset
		if m.cursor < offset {
			offset = m.cursor
		}
		if m.cursor >= offset+rows {
			offset = m.cursor - rows + 1
		}
		end := min(offset+rows, len(m.palettes))
		for i := offset; i < end; i++ {
			b.WriteString(m.viewPalette(i) + "\n")
		}
	}

	if m.status != "" {
		b.WriteString("\n" + m.styles.Status.Render(m.status))
	}
	b.WriteString("\n" + m.styles.Help.Render(helpLine(
		m.keys.NextCategory, m.keys.Search, m.keys.Pick, m.keys.Regenerate,
		m.keys.Detail, m.keys.CopyPalette, m.keys.CopyColor, m.keys.Quit,
	)))
	return b.String()
}

func (m BrowserModel) viewPalette(i int) string {
	p := m.palettes[i]
	prefix := "  "
	name := p.Name
	if i == m.cursor {
		prefix = m.styles.Cursor.Render("▸ ")
		name = m.styles.Cursor.Render(name)
	}
	if p.Category != "" && !strings.HasPrefix(p.Name, p.Category) {
		name += " " + m.styles.Muted.Render("["+p.Category+"]")
	}

	cells := make([]string, 0, len(p.Colors))
	for j, c := range p.Colors {
		label := c
		if i == m.cursor && j == m.colorIdx {
			label = "[" + c + "]"
		}
		cells = append(cells, lipgloss.NewStyle().
			Width(cli.SwatchWidth+2).
			Align(lipgloss.Center).
			Background(lipgloss.Color(c)).
			Foreground(lipgloss.Color(colorspace.ContrastColor(c))).
			Render(label))
	}
	return prefix + name + "\n  " + lipgloss.JoinHorizontal(lipgloss.Top, cells...) + "\n"
}

func (m BrowserModel) viewDetail() string {
	header := m.styles.Title.Render(i18n.T("tui.detail.title", "Palette Detail"))
	if p, ok := m.current(); ok {
		header += "  " + m.styles.Muted.Render(p.Name)
	}
	frame := m.styles.ActiveFrame
	if m.width > 0 {
		frame = frame.Width(m.width - 2)
	}
	footer := m.styles.Help.Render(fmt.Sprintf("%s • %s",
		helpLine(m.keys.Up, m.keys.Down, m.keys.Back), helpLine(m.keys.Quit)))
	return header + "\n" + frame.Render(m.detail.View()) + "\n" + footer
}
