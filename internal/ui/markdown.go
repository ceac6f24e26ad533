package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/glamour/styles"
)

// recordMargin is the left margin of a rendered record.
const recordMargin uint = 2

// RenderMarkdown renders a decision record for terminal display, wrapped to
// width columns.
func RenderMarkdown(content string, width int) (string, error) {
	if width <= 0 {
		width = DefaultTermWidth
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStyles(recordStyle()),
		glamour.WithWordWrap(width-int(recordMargin)),
	)
	if err != nil {
		return "", err
	}

	rendered, err := r.Render(content)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(rendered, "\n") + "\n", nil
}

// recordStyle is glamour's dark theme with headings and links in the accent
// colour and without the theme's heading backgrounds.
func recordStyle() ansi.StyleConfig {
	s := styles.DarkStyleConfig
	accent := accentHex
	bold := true
	margin := recordMargin

	s.Document.Margin = &margin
	s.Heading.Color = &accent
	s.Heading.Bold = &bold
	s.H1.BackgroundColor = nil
	s.H1.Color = &accent
	s.H1.Prefix = "# "
	s.H1.Suffix = ""
	s.LinkText.Color = &accent
	return s
}
