package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

// ColorHeadings bolds the section headings of a cobra usage template.
func ColorHeadings(tpl string) string {
	for _, h := range []string{"Usage:", "Aliases:", "Examples:", "Available Commands:", "Flags:", "Global Flags:", "Additional help topics:"} {
		tpl = strings.ReplaceAll(tpl, h, headingStyle.Render(h))
	}
	return tpl
}

// Verified renders a repository's verified status.
func Verified(v bool) string {
	if v {
		return okStyle.Render("verified")
	}
	return warnStyle.Render("unverified")
}

// NewTable returns a writer with the house style for list output.
func NewTable(headers ...any) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.Style().Format.Header = text.FormatUpper
	t.AppendHeader(table.Row(headers))
	return t
}
