// Package picker provides an interactive picker over the entries of a
// choice set.
package picker

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/zjrosen/choicekit/internal/choices"
	"github.com/zjrosen/choicekit/internal/keys"
)

var (
	titleColor     = lipgloss.AdaptiveColor{Light: "#3C3C3C", Dark: "#C9C9C9"}
	borderColor    = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#8C8C8C"}
	indicatorColor = lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7D56F4"}
	mutedColor     = lipgloss.AdaptiveColor{Light: "#9B9B9B", Dark: "#6C6C6C"}

	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(titleColor).PaddingLeft(1)
	indicatorStyle = lipgloss.NewStyle().Bold(true).Foreground(indicatorColor)
	valueStyle     = lipgloss.NewStyle().Foreground(mutedColor)
	dividerStyle   = lipgloss.NewStyle().Foreground(borderColor)
)

const defaultBoxWidth = 40

// chrome is the number of rows around the option list: borders, title,
// divider and help line.
const chrome = 5

// Option is one selectable row. Empty marks the set's empty label.
type Option struct {
	Label string
	Value string
	Entry choices.DescribedEntry
	Empty bool
}

// OptionsFor lists a set's entries as options, with the empty label first
// when the set has one.
func OptionsFor(d choices.Descriptor) []Option {
	options := make([]Option, 0, len(d.Entries)+1)
	if d.HasEmpty {
		options = append(options, Option{Label: d.EmptyLabel, Empty: true})
	}
	for _, e := range d.Entries {
		options = append(options, Option{Label: e.Label, Value: e.ValueText, Entry: e})
	}
	return options
}

// Model holds the picker state.
type Model struct {
	title     string
	options   []Option
	selected  int
	offset    int
	height    int // visible option rows; 0 shows all
	maxRows   int // cap requested by SetHeight; 0 means fit the terminal
	boxWidth  int
	keys      keys.PickerKeyMap
	help      help.Model
	done      bool
	cancelled bool
}

// New creates a new picker with the given title and options.
func New(title string, options []Option) Model {
	return Model{
		title:   title,
		options: options,
		keys:    keys.Picker,
		help:    help.New(),
	}
}

// SetBoxWidth sets the width of the picker box itself.
func (m Model) SetBoxWidth(width int) Model {
	m.boxWidth = width
	return m
}

// SetHeight limits how many options are visible at once.
func (m Model) SetHeight(rows int) Model {
	m.maxRows = max(rows, 0)
	m.height = m.maxRows
	m.scroll()
	return m
}

// SetSelected sets the initially selected index.
func (m Model) SetSelected(index int) Model {
	if index >= 0 && index < len(m.options) {
		m.selected = index
		m.scroll()
	}
	return m
}

// Selected returns the currently selected option.
func (m Model) Selected() Option {
	if m.selected >= 0 && m.selected < len(m.options) {
		return m.options[m.selected]
	}
	return Option{}
}

// Done reports whether an option was chosen.
func (m Model) Done() bool { return m.done }

// Cancelled reports whether the picker was dismissed.
func (m Model) Cancelled() bool { return m.cancelled }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = max(msg.Height-chrome, 1)
		if m.maxRows > 0 {
			m.height = min(m.maxRows, m.height)
		}
		if m.boxWidth == 0 || m.boxWidth > msg.Width-2 {
			m.boxWidth = max(msg.Width-2, 10)
		}
		m.help.Width = m.width()
		m.scroll()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Down):
			if m.selected < len(m.options)-1 {
				m.selected++
			}
		case key.Matches(msg, m.keys.Up):
			if m.selected > 0 {
				m.selected--
			}
		case key.Matches(msg, m.keys.Top):
			m.selected = 0
		case key.Matches(msg, m.keys.Bottom):
			m.selected = max(len(m.options)-1, 0)
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		case key.Matches(msg, m.keys.Select):
			if len(m.options) > 0 {
				m.done = true
				return m, tea.Quit
			}
		case key.Matches(msg, m.keys.Cancel):
			m.cancelled = true
			return m, tea.Quit
		}
		m.scroll()
	}
	return m, nil
}

// scroll keeps the selection inside the visible window.
func (m *Model) scroll() {
	if m.height == 0 {
		m.offset = 0
		return
	}
	if m.selected < m.offset {
		m.offset = m.selected
	}
	if m.selected >= m.offset+m.height {
		m.offset = m.selected - m.height + 1
	}
}

func (m Model) width() int {
	if m.boxWidth == 0 {
		return defaultBoxWidth
	}
	return m.boxWidth
}

// View renders the picker box.
func (m Model) View() string {
	if m.done || m.cancelled {
		return ""
	}
	width := m.width()

	end := len(m.options)
	if m.height > 0 {
		end = min(m.offset+m.height, end)
	}

	var options strings.Builder
	for i := m.offset; i < end; i++ {
		opt := m.options[i]
		label := opt.Label
		if opt.Value != "" && opt.Value != opt.Label {
			label += " " + valueStyle.Render("("+opt.Value+")")
		}
		label = ansi.Truncate(label, width-2, "…")

		if i == m.selected {
			options.WriteString(indicatorStyle.Render(">") + lipgloss.NewStyle().Bold(true).Render(label))
		} else {
			options.WriteString(" " + label)
		}
		if i < end-1 {
			options.WriteString("\n")
		}
	}

	title := m.title
	if m.height > 0 && len(m.options) > m.height {
		title += valueStyle.Render(" " + position(m.selected+1, len(m.options)))
	}

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Width(width)

	content := titleStyle.Render(ansi.Truncate(title, width-1, "…")) + "\n" +
		dividerStyle.Render(strings.Repeat("─", width)) + "\n" +
		options.String()

	return boxStyle.Render(content) + "\n" + m.help.View(m.keys)
}

func position(n, total int) string {
	return fmt.Sprintf("[%d/%d]", n, total)
}

// FindIndexByValue returns the index of the option with the given value.
func FindIndexByValue(options []Option, value string) int {
	for i, opt := range options {
		if !opt.Empty && opt.Value == value {
			return i
		}
	}
	return 0
}
