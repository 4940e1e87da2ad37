package tui

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

// pickItem is one row of a picker list.
type pickItem struct {
	name   string
	note   string // shown under the row while the cursor is on it
	active bool   // the current setting, marked with *
}

// picker is the list half of a two-pane chooser: a cursor list on the
// left and a caller-drawn preview on the right.
type picker struct {
	items  []pickItem
	cursor int
	width  int
	height int
}

// pickKey is the picker's reading of a key press.
type pickKey int

const (
	pickNone pickKey = iota
	pickMoved
	pickChosen
	pickCancel
)

func newPicker(items []pickItem) picker {
	p := picker{items: items}
	for i, it := range items {
		if it.active {
			p.cursor = i
		}
	}
	return p
}

func (p *picker) resize(msg tea.WindowSizeMsg) {
	p.width, p.height = msg.Width, msg.Height
}

func (p picker) ready() bool { return p.width > 0 && p.height > 0 }

// handle moves the cursor or reports a choice.
func (p *picker) handle(msg tea.KeyPressMsg) pickKey {
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		return pickCancel
	case "enter":
		if len(p.items) == 0 {
			return pickCancel
		}
		return pickChosen
	case "up", "k":
		if p.cursor > 0 {
			p.cursor--
			return pickMoved
		}
	case "down", "j":
		if p.cursor < len(p.items)-1 {
			p.cursor++
			return pickMoved
		}
	case "home", "g":
		p.cursor = 0
		return pickMoved
	case "end", "G":
		p.cursor = max(len(p.items)-1, 0)
		return pickMoved
	}
	return pickNone
}

func (p picker) listWidth() int    { return p.width * 35 / 100 }
func (p picker) previewWidth() int { return max(p.width-p.listWidth()-3, 10) }

// view lays out titles, both panes and the help line in s.
func (p picker) view(s Styles, listTitle, previewTitle, preview, help string) string {
	paneHeight := max(p.height-4, 3)

	var list strings.Builder
	for i, it := range p.items {
		name := it.name
		if it.active {
			name += " *"
		}
		if i != p.cursor {
			list.WriteString("  " + name + "\n")
			continue
		}
		list.WriteString(s.Cursor.Render("▸ "+name) + "\n")
		if it.note != "" {
			list.WriteString("    " + s.Muted.Render(it.note) + "\n")
		}
	}

	lt := s.Title.Render(listTitle)
	header := lt + strings.Repeat(" ", max(p.listWidth()-lipgloss.Width(lt)+3, 1)) + s.Title.Render(previewTitle)
	left := s.ActiveFrame.Width(p.listWidth()).Height(paneHeight).Render(list.String())
	right := s.Frame.Width(p.previewWidth()).Height(paneHeight).Render(preview)

	return header + "\n" + lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right) + "\n" + s.Help.Render(help)
}

// altView wraps content in an alt-screen view.
func altView(content string) tea.View {
	v := tea.NewView(content)
	v.AltScreen = true
	return v
}
