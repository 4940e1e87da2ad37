package tui

import (
	"charm.land/bubbles/v2/key"

	"github.com/wethinkt/go-palettepro/internal/i18n"
)

// browserKeyMap defines key bindings for the palette browser
type browserKeyMap struct {
	PrevCategory key.Binding
	NextCategory key.Binding
	Up           key.Binding
	Down         key.Binding
	PrevColor    key.Binding
	NextColor    key.Binding
	Search       key.Binding
	Pick         key.Binding
	Regenerate   key.Binding
	Detail       key.Binding
	CopyPalette  key.Binding
	CopyColor    key.Binding
	Back         key.Binding
	Quit         key.Binding
}

// defaultBrowserKeyMap returns the default key bindings for the browser
func defaultBrowserKeyMap() browserKeyMap {
	return browserKeyMap{
		PrevCategory: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←", i18n.T("tui.help.prevCategory", "prev category")),
		),
		NextCategory: key.NewBinding(
			key.WithKeys("right", "l", "tab"),
			key.WithHelp("→", i18n.T("tui.help.nextCategory", "next category")),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", i18n.T("tui.help.up", "up")),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", i18n.T("tui.help.down", "down")),
		),
		PrevColor: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", i18n.T("tui.help.prevColor", "prev color")),
		),
		NextColor: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", i18n.T("tui.help.nextColor", "next color")),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", i18n.T("tui.help.search", "search")),
		),
		Pick: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", i18n.T("tui.help.pick", "pick color")),
		),
		Regenerate: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", i18n.T("tui.help.regenerate", "regenerate")),
		),
		Detail: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", i18n.T("tui.help.detail", "detail")),
		),
		CopyPalette: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", i18n.T("tui.help.copyPalette", "copy palette")),
		),
		CopyColor: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", i18n.T("tui.help.copyColor", "copy color")),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", i18n.T("tui.help.back", "back")),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", i18n.T("tui.help.quit", "quit")),
		),
	}
}

// helpLine renders bindings as "key: desc" pairs.
func helpLine(bindings ...key.Binding) string {
	var out string
	for i, b := range bindings {
		if i > 0 {
			out += " • "
		}
		h := b.Help()
		out += h.Key + ": " + h.Desc
	}
	return out
}
