package picker

import (
	"context"
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/choicekit/internal/choices"
	"github.com/zjrosen/choicekit/internal/log"
)

// ErrCancelled is returned by Run when the user dismisses the picker.
var ErrCancelled = errors.New("selection cancelled")

// Result is the outcome of a pick. Empty is set when the set's empty label
// was chosen; Entry is then the zero value.
type Result struct {
	Entry choices.DescribedEntry
	Empty bool
}

type runConfig struct {
	input    io.Reader
	output   io.Writer
	selected string
	height   int
}

// RunOption configures Run.
type RunOption func(*runConfig)

// WithInput reads keys from r instead of the terminal.
func WithInput(r io.Reader) RunOption {
	return func(c *runConfig) { c.input = r }
}

// WithOutput renders to w instead of the terminal.
func WithOutput(w io.Writer) RunOption {
	return func(c *runConfig) { c.output = w }
}

// WithSelectedValue starts on the entry whose value text is v.
func WithSelectedValue(v string) RunOption {
	return func(c *runConfig) { c.selected = v }
}

// WithHeight limits the number of visible rows.
func WithHeight(rows int) RunOption {
	return func(c *runConfig) { c.height = rows }
}

// Run shows a picker over d and blocks until the user chooses an entry,
// cancels, or ctx is done.
func Run(ctx context.Context, d choices.Descriptor, opts ...RunOption) (Result, error) {
	var cfg runConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	options := OptionsFor(d)
	m := New(d.Name, options).SetHeight(cfg.height)
	if cfg.selected != "" {
		m = m.SetSelected(FindIndexByValue(options, cfg.selected))
	}

	progOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	if cfg.input != nil {
		progOpts = append(progOpts, tea.WithInput(cfg.input))
	}
	if cfg.output != nil {
		progOpts = append(progOpts, tea.WithOutput(cfg.output))
	}

	final, err := tea.NewProgram(m, progOpts...).Run()
	if err != nil {
		return Result{}, fmt.Errorf("run picker: %w", err)
	}

	fm, ok := final.(Model)
	if !ok || !fm.Done() {
		log.Debug(log.CatUI, "Picker cancelled", "set", d.Name)
		return Result{}, ErrCancelled
	}

	opt := fm.Selected()
	log.Debug(log.CatUI, "Picker selected", "set", d.Name, "value", opt.Value, "empty", opt.Empty)
	if opt.Empty {
		return Result{Empty: true}, nil
	}
	return Result{Entry: opt.Entry}, nil
}
