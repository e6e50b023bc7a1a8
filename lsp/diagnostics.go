package lsp

import (
	"github.com/dhamidi/cook/report"
	"github.com/dhamidi/cook/span"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// Diagnostics converts report entries into LSP diagnostics. Each
// diagnostic covers its first label; the other labels go into the
// message.
func Diagnostics(source string, entries []report.Entry) []protocol.Diagnostic {
	lines := report.NewLineIndex(source)
	diagnostics := make([]protocol.Diagnostic, 0, len(entries))
	for _, e := range entries {
		d := e.Diagnostic

		severity := protocol.DiagnosticSeverityError
		if e.Severity == report.SeverityWarning {
			severity = protocol.DiagnosticSeverityWarning
		}

		message := d.Error()
		var rng protocol.Range
		for i, l := range d.Labels() {
			if i == 0 {
				rng = spanRange(lines, l.Span)
				if l.Message != "" {
					message += ": " + l.Message
				}
				continue
			}
			if l.Message != "" {
				message += "; " + l.Message
			}
		}
		if help := d.Help(); help != "" {
			message += "\nhelp: " + help
		}

		diagnostics = append(diagnostics, protocol.Diagnostic{
			Range:    rng,
			Severity: &severity,
			Code:     &protocol.IntegerOrString{Value: d.Code()},
			Source:   strPtr(lsName),
			Message:  message,
		})
	}
	return diagnostics
}

func spanRange(lines *report.LineIndex, s span.Span) protocol.Range {
	return protocol.Range{Start: position(lines, s.Start), End: position(lines, s.End)}
}

func position(lines *report.LineIndex, offset int) protocol.Position {
	line, col := lines.UTF16Position(offset)
	return protocol.Position{Line: protocol.UInteger(line), Character: protocol.UInteger(col)}
}
