package presentation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mattn/go-runewidth"
	"gopkg.in/yaml.v3"
)

// Format selects the output encoding.
type Format string

const (
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatText     Format = "text"
	FormatTable    Format = "table"
	FormatMarkdown Format = "markdown"
)

// ErrUnknownFormat is returned by ParseFormat.
var ErrUnknownFormat = errors.New("unknown output format")

// Formats lists the accepted format names.
func Formats() []string {
	return []string{
		string(FormatText), string(FormatTable), string(FormatJSON),
		string(FormatYAML), string(FormatMarkdown),
	}
}

// ParseFormat converts a flag value into a Format. "" means text.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case "":
		return FormatText, nil
	case FormatJSON, FormatYAML, FormatText, FormatTable, FormatMarkdown:
		return f, nil
	default:
		return "", fmt.Errorf("%w %q (want %s)", ErrUnknownFormat, s, strings.Join(Formats(), ", "))
	}
}

// section is one titled grid of cells, the common shape of every
// human-readable output.
type section struct {
	title  string
	header []string
	rows   [][]string
}

// Formatter handles output formatting
type Formatter struct {
	writer        io.Writer
	format        Format
	width         int
	markdownStyle string
}

// Option configures a Formatter.
type Option func(*Formatter)

// WithWidth sets the word-wrap width for markdown output.
func WithWidth(width int) Option {
	return func(f *Formatter) { f.width = width }
}

// WithMarkdownStyle selects a glamour standard style ("dark", "light",
// "notty", "ascii"...). The default detects the terminal background.
func WithMarkdownStyle(style string) Option {
	return func(f *Formatter) { f.markdownStyle = style }
}

// NewFormatter creates a new formatter
func NewFormatter(writer io.Writer, format Format, opts ...Option) *Formatter {
	f := &Formatter{
		writer: writer,
		format: format,
		width:  100,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// FormatSetSummaries writes one line per set: name, kind, entry count and
// empty label.
func (f *Formatter) FormatSetSummaries(sets []ChoiceSetDTO) error {
	s := section{header: []string{"SET", "KIND", "ENTRIES", "EMPTY"}}
	for _, set := range sets {
		empty := ""
		if set.EmptyLabel != nil {
			empty = *set.EmptyLabel
		}
		s.rows = append(s.rows, []string{set.Name, set.Kind, strconv.Itoa(len(set.Entries)), empty})
	}
	return f.write(sets, s)
}

// FormatSet writes a set with all of its entries. The empty label, if any,
// is listed first with no name or value, as offered in a selection list.
func (f *Formatter) FormatSet(set ChoiceSetDTO) error {
	s := section{
		title:  fmt.Sprintf("%s (%s)", set.Name, set.Kind),
		header: []string{"NAME", "VALUE", "LABEL"},
	}
	if set.EmptyLabel != nil {
		s.rows = append(s.rows, []string{"", "", *set.EmptyLabel})
	}
	for _, e := range set.Entries {
		s.rows = append(s.rows, []string{e.Name, valueText(e.Value), e.Label})
	}
	return f.write(set, s)
}

// FormatEntry writes a single entry of the named set.
func (f *Formatter) FormatEntry(set string, entry EntryDTO) error {
	s := section{
		title:  set,
		header: []string{"NAME", "VALUE", "LABEL"},
		rows:   [][]string{{entry.Name, valueText(entry.Value), entry.Label}},
	}
	return f.write(entry, s)
}

// FormatProfile writes one profile, one field per row.
func (f *Formatter) FormatProfile(p ProfileDTO) error {
	s := section{
		title:  "Profile " + p.GUID,
		header: []string{"FIELD", "VALUE", "LABEL"},
	}
	for _, field := range p.Fields {
		s.rows = append(s.rows, []string{field.Name, valueText(field.Value), field.Label})
	}
	s.rows = append(s.rows,
		[]string{"created_at", p.CreatedAt, ""},
		[]string{"updated_at", p.UpdatedAt, ""},
	)
	return f.write(p, s)
}

// FormatProfiles writes one profile per row with field labels as cells.
func (f *Formatter) FormatProfiles(ps []ProfileDTO) error {
	s := section{header: []string{"GUID"}}
	if len(ps) > 0 {
		for _, field := range ps[0].Fields {
			s.header = append(s.header, strings.ToUpper(field.Name))
		}
	}
	for _, p := range ps {
		row := []string{p.GUID}
		for _, field := range p.Fields {
			row = append(row, field.Label)
		}
		s.rows = append(s.rows, row)
	}
	return f.write(ps, s)
}

// FormatResult writes a generic result. Human-readable formats print it
// with %v.
func (f *Formatter) FormatResult(result any) error {
	switch f.format {
	case FormatJSON:
		return f.writeJSON(result)
	case FormatYAML:
		return f.writeYAML(result)
	default:
		_, err := fmt.Fprintln(f.writer, result)
		return err
	}
}

func (f *Formatter) write(data any, s section) error {
	switch f.format {
	case FormatJSON:
		return f.writeJSON(data)
	case FormatYAML:
		return f.writeYAML(data)
	case FormatTable:
		return f.writeTable(s)
	case FormatMarkdown:
		return f.writeMarkdown(s)
	case FormatText, "":
		return f.writeText(s)
	default:
		return fmt.Errorf("%w %q", ErrUnknownFormat, f.format)
	}
}

func (f *Formatter) writeJSON(data any) error {
	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

func (f *Formatter) writeYAML(data any) error {
	encoder := yaml.NewEncoder(f.writer)
	encoder.SetIndent(2)
	if err := encoder.Encode(data); err != nil {
		return err
	}
	return encoder.Close()
}

// writeText aligns columns by display width; labels may hold wide (CJK)
// characters.
func (f *Formatter) writeText(s section) error {
	widths := make([]int, len(s.header))
	for i, h := range s.header {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range s.rows {
		for i, cell := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], runewidth.StringWidth(cell))
			}
		}
	}

	var b strings.Builder
	if s.title != "" {
		b.WriteString(s.title)
		b.WriteString("\n")
	}
	line := func(cells []string) {
		parts := make([]string, len(cells))
		for i, cell := range cells {
			parts[i] = runewidth.FillRight(cell, widths[i])
		}
		b.WriteString(strings.TrimRight(strings.Join(parts, "  "), " "))
		b.WriteString("\n")
	}
	line(s.header)
	for _, row := range s.rows {
		line(row)
	}
	_, err := io.WriteString(f.writer, b.String())
	return err
}

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

func (f *Formatter) writeTable(s section) error {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(s.header...).
		Rows(s.rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	var b strings.Builder
	if s.title != "" {
		b.WriteString(s.title)
		b.WriteString("\n")
	}
	b.WriteString(t.Render())
	b.WriteString("\n")
	_, err := io.WriteString(f.writer, b.String())
	return err
}

func (f *Formatter) writeMarkdown(s section) error {
	r, err := newMarkdownRenderer(f.width, f.markdownStyle)
	if err != nil {
		return fmt.Errorf("create markdown renderer: %w", err)
	}
	out, err := r.Render(toMarkdown(s))
	if err != nil {
		return fmt.Errorf("render markdown: %w", err)
	}
	_, err = io.WriteString(f.writer, out)
	return err
}

// toMarkdown renders a section as a GitHub-flavored markdown table.
func toMarkdown(s section) string {
	var b strings.Builder
	if s.title != "" {
		fmt.Fprintf(&b, "## %s\n\n", escapeMarkdown(s.title))
	}
	row := func(cells []string) {
		b.WriteString("|")
		for _, cell := range cells {
			b.WriteString(" ")
			b.WriteString(escapeMarkdown(cell))
			b.WriteString(" |")
		}
		b.WriteString("\n")
	}
	row(s.header)
	b.WriteString("|")
	for range s.header {
		b.WriteString(" --- |")
	}
	b.WriteString("\n")
	for _, r := range s.rows {
		row(r)
	}
	return b.String()
}

var markdownEscaper = strings.NewReplacer("|", `\|`, "*", `\*`, "_", `\_`, "`", "\\`")

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}

// valueText renders a stored value; NULL is shown as "-".
func valueText(v any) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprint(v)
}
