package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorOK     = lipgloss.Color("#10B981") // Emerald
	colorError  = lipgloss.Color("#EF4444") // Red
	colorMuted  = lipgloss.Color("#94A3B8") // Slate 400
	colorAccent = lipgloss.Color("#F59E0B") // Amber
)

type styles struct {
	file     lipgloss.Style
	ok       lipgloss.Style
	failed   lipgloss.Style
	position lipgloss.Style
	code     lipgloss.Style
	message  lipgloss.Style
	total    lipgloss.Style
}

func newStyles(color bool) styles {
	s := styles{
		file:     lipgloss.NewStyle(),
		ok:       lipgloss.NewStyle(),
		failed:   lipgloss.NewStyle(),
		position: lipgloss.NewStyle().Width(8),
		code:     lipgloss.NewStyle().Width(5),
		message:  lipgloss.NewStyle(),
		total:    lipgloss.NewStyle(),
	}

	if !color {
		return s
	}

	s.file = s.file.Bold(true)
	s.ok = s.ok.Foreground(colorOK)
	s.failed = s.failed.Foreground(colorError).Bold(true)
	s.position = s.position.Foreground(colorMuted)
	s.code = s.code.Foreground(colorAccent)
	s.total = s.total.Bold(true).MarginTop(1)

	return s
}

// Summary renders one block per file followed by the totals:
//
//	prog.pas: 2 diagnostics
//	  3:3     104  имя не описано
//	  5:10    328  несоответствие типов
func Summary(r *Report, color bool) string {
	s := newStyles(color)

	var b strings.Builder

	for _, file := range r.Files {
		b.WriteString(s.file.Render(file.File) + ": ")

		if len(file.Diagnostics) == 0 {
			b.WriteString(s.ok.Render("ok") + "\n")
			continue
		}

		b.WriteString(s.failed.Render(plural(len(file.Diagnostics), "diagnostic")) + "\n")

		for _, e := range file.Diagnostics {
			position := fmt.Sprintf("%d:%d", e.Line, e.Column)

			b.WriteString("  ")
			b.WriteString(s.position.Render(position))
			b.WriteString(s.code.Render(fmt.Sprint(e.Code)))
			b.WriteString(s.message.Render(e.Message))
			b.WriteString("\n")
		}
	}

	totals := plural(len(r.Files), "file") + ", " + plural(r.Total, "diagnostic")
	b.WriteString(s.total.Render(totals) + "\n")

	return b.String()
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}

	return fmt.Sprintf("%d %ss", n, noun)
}
