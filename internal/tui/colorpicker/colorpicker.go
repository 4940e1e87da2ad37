// Package colorpicker provides an interactive terminal color picker component.
//
// The picker works in HSL, the space palettes are generated in, and has
// three modes:
//   - Sliders: hue, saturation and lightness sliders
//   - Hex: direct hex input
//   - Names: quick selection from the searchable color names
//
// Example usage in a bubbletea Update function:
//
//	case tea.KeyPressMsg:
//	    m.picker.HandleKey(msg.String())
//	    if m.picker.Confirmed {
//	        color := m.picker.Value()
//	    }
package colorpicker

import (
	"fmt"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/wethinkt/go-palettepro/internal/colorspace"
	"github.com/wethinkt/go-palettepro/internal/search"
)

// Mode represents the current picker mode
type Mode int

const (
	ModeSliders Mode = iota // HSL slider mode
	ModeHex                 // Hex input mode
	ModeNames               // Named color selection mode
)

// Channel represents an HSL channel
type Channel int

const (
	ChannelH Channel = iota
	ChannelS
	ChannelL
)

// gridColumns is the width of the names grid.
const gridColumns = 6

// Model is the color picker model.
type Model struct {
	// Current color
	H, S, L int

	orig string

	// UI state
	Mode      Mode
	Channel   Channel // Selected channel in slider mode
	HexInput  string  // Current hex input string
	HexCursor int     // Cursor position in hex input
	NameIndex int     // Selected entry in names mode

	names []search.NameEntry

	// Styling
	Title       string
	AccentColor string
	MutedColor  string

	// Result state
	Confirmed bool
	Cancelled bool
}

// New creates a new color picker with the given initial color. Invalid
// input starts from mid gray.
func New(hexColor string) Model {
	hex, err := colorspace.Parse(hexColor)
	if err != nil {
		hex = "#808080"
	}
	m := Model{
		orig:        hex,
		Mode:        ModeSliders,
		names:       search.Names(),
		Title:       "Pick a search color",
		AccentColor: "#8B5CF6",
		MutedColor:  "#6B7280",
	}
	m.SetColor(hex)
	return m
}

// Value returns the current color as an uppercase hex string.
func (m Model) Value() string {
	return colorspace.HSLToHex(float64(m.H), float64(m.S), float64(m.L))
}

// Reset restores the picker to its original color.
func (m *Model) Reset() {
	m.SetColor(m.orig)
}

// SetColor sets the current color from a hex string.
func (m *Model) SetColor(hex string) {
	hsl := colorspace.HexToHSL(hex)
	m.H = int(hsl.H + 0.5)
	m.S = int(hsl.S + 0.5)
	m.L = int(hsl.L + 0.5)
	m.HexInput = colorspace.Normalize(hex)
}

// HandleKey processes a key press and returns true if the key was handled.
func (m *Model) HandleKey(key string) bool {
	switch key {
	case "enter":
		m.Confirmed = true
		return true
	case "esc":
		m.Cancelled = true
		return true
	case "tab":
		m.Mode = (m.Mode + 1) % 3
		if m.Mode == ModeHex {
			m.HexInput = m.Value()
			m.HexCursor = len(m.HexInput)
		}
		return true
	}

	switch m.Mode {
	case ModeSliders:
		return m.handleSliderKey(key)
	case ModeHex:
		return m.handleHexKey(key)
	case ModeNames:
		return m.handleNamesKey(key)
	}
	return false
}

func (m *Model) handleSliderKey(key string) bool {
	switch key {
	case "r":
		m.Reset()
	case "up", "k":
		if m.Channel > ChannelH {
			m.Channel--
		}
	case "down", "j":
		if m.Channel < ChannelL {
			m.Channel++
		}
	case "left", "h":
		m.adjustChannel(-5)
	case "right", "l":
		m.adjustChannel(5)
	case "H":
		m.adjustChannel(-1)
	case "L":
		m.adjustChannel(1)
	case "0", "1", "2", "3", "4", "5", "6", "7", "8", "9":
		n, _ := strconv.Atoi(key)
		m.setChannel(n * m.channelMax() / 9)
	default:
		return false
	}
	return true
}

func (m *Model) channelMax() int {
	if m.Channel == ChannelH {
		return 359
	}
	return 100
}

func (m *Model) adjustChannel(delta int) {
	val := m.getChannel() + delta
	if m.Channel == ChannelH {
		val = (val + 360) % 360
	}
	m.setChannel(val)
}

func (m *Model) getChannel() int {
	switch m.Channel {
	case ChannelH:
		return m.H
	case ChannelS:
		return m.S
	}
	return m.L
}

func (m *Model) setChannel(val int) {
	val = colorspace.Clamp(val, 0, m.channelMax())
	switch m.Channel {
	case ChannelH:
		m.H = val
	case ChannelS:
		m.S = val
	case ChannelL:
		m.L = val
	}
	m.HexInput = m.Value()
}

func (m *Model) handleHexKey(key string) bool {
	switch key {
	case "left":
		if m.HexCursor > 0 {
			m.HexCursor--
		}
	case "right":
		if m.HexCursor < len(m.HexInput) {
			m.HexCursor++
		}
	case "backspace":
		if m.HexCursor > 0 {
			m.HexInput = m.HexInput[:m.HexCursor-1] + m.HexInput[m.HexCursor:]
			m.HexCursor--
			m.tryParseHex()
		}
	case "delete":
		if m.HexCursor < len(m.HexInput) {
			m.HexInput = m.HexInput[:m.HexCursor] + m.HexInput[m.HexCursor+1:]
			m.tryParseHex()
		}
	default:
		switch {
		case len(key) == 1 && isHexChar(key[0]) && len(m.HexInput) < 7:
			m.HexInput = m.HexInput[:m.HexCursor] + strings.ToUpper(key) + m.HexInput[m.HexCursor:]
			m.HexCursor++
			m.tryParseHex()
		case key == "#" && m.HexCursor == 0 && !strings.HasPrefix(m.HexInput, "#"):
			m.HexInput = "#" + m.HexInput
			m.HexCursor++
		default:
			return false
		}
	}
	return true
}

func (m *Model) tryParseHex() {
	if hex, err := colorspace.Parse(m.HexInput); err == nil {
		input, cursor := m.HexInput, m.HexCursor
		m.SetColor(hex)
		m.HexInput, m.HexCursor = input, cursor
	}
}

func (m *Model) handleNamesKey(key string) bool {
	last := len(m.names) - 1
	switch key {
	case "up", "k":
		if m.NameIndex >= gridColumns {
			m.NameIndex -= gridColumns
		}
	case "down", "j":
		if m.NameIndex+gridColumns <= last {
			m.NameIndex += gridColumns
		}
	case "left", "h":
		if m.NameIndex > 0 {
			m.NameIndex--
		}
	case "right", "l":
		if m.NameIndex < last {
			m.NameIndex++
		}
	case " ":
		m.SetColor(m.names[m.NameIndex].Representative)
	default:
		return false
	}
	return true
}

// View renders the color picker.
func (m Model) View() string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.AccentColor))
	b.WriteString(titleStyle.Render(m.Title) + "\n\n")

	current := m.Value()
	preview := lipgloss.NewStyle().
		Background(lipgloss.Color(current)).
		Foreground(lipgloss.Color(colorspace.ContrastColor(current))).
		Padding(0, 4).
		Render(current)
	origPreview := lipgloss.NewStyle().
		Background(lipgloss.Color(m.orig)).
		Foreground(lipgloss.Color(colorspace.ContrastColor(m.orig))).
		Padding(0, 2).
		Render("orig")
	nearest, _ := search.Nearest(current)
	b.WriteString(preview + "  " + origPreview + "  ~" + nearest.Name + "\n\n")

	b.WriteString(m.renderModeTabs() + "\n\n")

	switch m.Mode {
	case ModeSliders:
		b.WriteString(m.renderSliders())
	case ModeHex:
		b.WriteString(m.renderHexInput())
	case ModeNames:
		b.WriteString(m.renderNames())
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.MutedColor))
	b.WriteString(helpStyle.Render(m.help()))

	return b.String()
}

func (m Model) renderModeTabs() string {
	tabs := []string{"Sliders", "Hex", "Names"}
	parts := make([]string, 0, len(tabs))
	for i, tab := range tabs {
		style := lipgloss.NewStyle().Padding(0, 1)
		if Mode(i) == m.Mode {
			style = style.Bold(true).
				Foreground(lipgloss.Color(colorspace.ContrastColor(m.AccentColor))).
				Background(lipgloss.Color(m.AccentColor))
		} else {
			style = style.Foreground(lipgloss.Color(m.MutedColor))
		}
		parts = append(parts, style.Render(tab))
	}
	return strings.Join(parts, " ")
}

func (m Model) renderSliders() string {
	var b strings.Builder
	const sliderWidth = 24

	channels := []struct {
		name string
		ch   Channel
		val  int
		max  int
		fill func(v int) string
	}{
		{"H", ChannelH, m.H, 359, func(v int) string { return colorspace.HSLToHex(float64(v), 100, 50) }},
		{"S", ChannelS, m.S, 100, func(v int) string { return colorspace.HSLToHex(float64(m.H), float64(v), 50) }},
		{"L", ChannelL, m.L, 100, func(v int) string { return colorspace.HSLToHex(float64(m.H), float64(m.S), float64(v)) }},
	}

	for _, c := range channels {
		indicator := " "
		if m.Channel == c.ch {
			indicator = "▸"
		}

		// Each cell shows the color the channel would have at that position.
		var slider strings.Builder
		filled := c.val * sliderWidth / c.max
		for i := range sliderWidth {
			cell := lipgloss.NewStyle().Background(lipgloss.Color(c.fill(i * c.max / (sliderWidth - 1))))
			mark := " "
			if i == min(filled, sliderWidth-1) {
				mark = "│"
			}
			slider.WriteString(cell.Render(mark))
		}

		valStyle := lipgloss.NewStyle()
		if m.Channel == c.ch {
			valStyle = valStyle.Bold(true).Foreground(lipgloss.Color(m.AccentColor))
		}

		fmt.Fprintf(&b, "%s %s: %s %s\n", indicator, c.name, slider.String(), valStyle.Render(fmt.Sprintf("%3d", c.val)))
	}
	return b.String()
}

func (m Model) renderHexInput() string {
	var b strings.Builder
	b.WriteString("Enter hex color:\n\n")

	inputStyle := lipgloss.NewStyle().Background(lipgloss.Color("#333333")).Padding(0, 1)
	cursorStyle := lipgloss.NewStyle().
		Background(lipgloss.Color(m.AccentColor)).
		Foreground(lipgloss.Color(colorspace.ContrastColor(m.AccentColor)))

	var input strings.Builder
	for i, ch := range m.HexInput {
		if i == m.HexCursor {
			input.WriteString(cursorStyle.Render(string(ch)))
		} else {
			input.WriteRune(ch)
		}
	}
	if m.HexCursor >= len(m.HexInput) {
		input.WriteString(cursorStyle.Render(" "))
	}
	b.WriteString(inputStyle.Render(input.String()) + "\n\n")

	if colorspace.IsValidHex(m.HexInput) {
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("#50fa7b")).Render("✓ Valid hex color"))
	} else {
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("#ff5555")).Render("Format: #RRGGBB"))
	}
	return b.String()
}

func (m Model) renderNames() string {
	var b strings.Builder
	for i, e := range m.names {
		style := lipgloss.NewStyle().
			Background(lipgloss.Color(e.Representative)).
			Foreground(lipgloss.Color(colorspace.ContrastColor(e.Representative))).
			Width(10).
			Align(lipgloss.Center)
		label := e.Name
		if i == m.NameIndex {
			style = style.Bold(true).Underline(true)
			label = "▸" + label
		}
		b.WriteString(style.Render(label))
		if (i+1)%gridColumns == 0 || i == len(m.names)-1 {
			b.WriteString("\n")
		} else {
			b.WriteString(" ")
		}
	}

	selected := m.names[m.NameIndex]
	infoStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.MutedColor))
	b.WriteString("\n" + infoStyle.Render(fmt.Sprintf("Selected: %s %s (space to apply)", selected.Name, selected.Representative)))
	return b.String()
}

func (m Model) help() string {
	switch m.Mode {
	case ModeSliders:
		return "↑/↓: channel • h/l: ±5 • H/L: ±1 • 0-9: set • r: reset • tab: mode • enter: ok • esc: cancel"
	case ModeHex:
		return "type hex • ←/→: cursor • tab: mode • enter: ok • esc: cancel"
	case ModeNames:
		return "↑/↓/←/→: select • space: apply • tab: mode • enter: ok • esc: cancel"
	}
	return ""
}

func isHexChar(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
