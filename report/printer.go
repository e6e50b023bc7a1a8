package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
)

// Printer writes diagnostics for humans, with the offending source lines
// underlined. Colors are only used when w is a terminal.
type Printer struct {
	w         io.Writer
	errStyle  lipgloss.Style
	warnStyle lipgloss.Style
	gutter    lipgloss.Style
	bold      lipgloss.Style
	help      lipgloss.Style
}

func NewPrinter(w io.Writer) *Printer {
	r := lipgloss.NewRenderer(w)
	return &Printer{
		w:         w,
		errStyle:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
		warnStyle: r.NewStyle().Bold(true).Foreground(lipgloss.Color("11")),
		gutter:    r.NewStyle().Foreground(lipgloss.Color("12")),
		bold:      r.NewStyle().Bold(true),
		help:      r.NewStyle().Foreground(lipgloss.Color("14")),
	}
}

// Print writes every entry. file is only used for the location header.
func (p *Printer) Print(file, source string, entries []Entry) error {
	lines := NewLineIndex(source)
	for _, e := range entries {
		if err := p.printEntry(file, lines, e); err != nil {
			return err
		}
	}
	return nil
}

func (p *Printer) printEntry(file string, lines *LineIndex, e Entry) error {
	style := p.errStyle
	if e.Severity == SeverityWarning {
		style = p.warnStyle
	}

	var b strings.Builder
	b.WriteString(style.Render(e.Severity.String()))
	if code := e.Diagnostic.Code(); code != "" {
		b.WriteString(style.Render("[" + code + "]"))
	}
	b.WriteString(p.bold.Render(": " + e.Diagnostic.Error()))
	b.WriteByte('\n')

	labels := e.Diagnostic.Labels()
	if len(labels) > 0 {
		line, col := lines.Position(labels[0].Span.Start)
		loc := fmt.Sprintf("%d:%d", line+1, col+1)
		if file != "" {
			loc = file + ":" + loc
		}
		width := len(strconv.Itoa(lines.LineCount()))
		pad := strings.Repeat(" ", width)
		fmt.Fprintf(&b, "%s %s\n", p.gutter.Render(pad+"-->"), loc)

		for _, group := range groupByLine(lines, labels) {
			text := lines.Line(group.line)
			fmt.Fprintf(&b, "%s %s\n", p.gutter.Render(fmt.Sprintf("%*d |", width, group.line+1)), text)
			for _, l := range group.labels {
				fmt.Fprintf(&b, "%s %s\n", p.gutter.Render(pad+" |"), style.Render(underline(text, lines, l)))
			}
		}
	}

	if help := e.Diagnostic.Help(); help != "" {
		fmt.Fprintf(&b, "  %s %s\n", p.help.Render("help:"), help)
	}

	_, err := io.WriteString(p.w, b.String())
	return err
}

type lineLabels struct {
	line   int
	labels []Label
}

func groupByLine(lines *LineIndex, labels []Label) []lineLabels {
	var groups []lineLabels
	for _, l := range labels {
		line, _ := lines.Position(l.Span.Start)
		if n := len(groups); n > 0 && groups[n-1].line == line {
			groups[n-1].labels = append(groups[n-1].labels, l)
			continue
		}
		groups = append(groups, lineLabels{line: line, labels: []Label{l}})
	}
	return groups
}

// underline builds the "   ^^^ message" row under a source line. Spans
// running past the end of the line are cut there.
func underline(text string, lines *LineIndex, l Label) string {
	_, startCol := lines.Position(l.Span.Start)
	endCol := startCol + l.Span.Len()
	startCol = min(startCol, len(text))
	endCol = min(endCol, len(text))

	lead := utf8.RuneCountInString(text[:startCol])
	marks := max(utf8.RuneCountInString(text[startCol:endCol]), 1)

	row := strings.Repeat(" ", lead) + strings.Repeat("^", marks)
	if l.Message != "" {
		row += " " + l.Message
	}
	return row
}
