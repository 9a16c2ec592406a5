package presentation

import (
	"github.com/charmbracelet/glamour"
)

// noMarginStyle removes the document margins glamour adds by default.
const noMarginStyle = `{
	"document": {
		"margin": 0,
		"block_prefix": "",
		"block_suffix": ""
	}
}`

// newMarkdownRenderer returns a glamour renderer wrapping at width. An empty
// style detects the terminal background.
func newMarkdownRenderer(width int, style string) (*glamour.TermRenderer, error) {
	styleOpt := glamour.WithAutoStyle()
	if style != "" {
		styleOpt = glamour.WithStandardStyle(style)
	}
	return glamour.NewTermRenderer(
		styleOpt,
		glamour.WithStylesFromJSONBytes([]byte(noMarginStyle)),
		glamour.WithWordWrap(width),
	)
}
