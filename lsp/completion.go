package lsp

import (
	"github.com/dhamidi/cook/report"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

type componentKind int

const (
	noComponent componentKind = iota
	ingredientComponent
	cookwareComponent
)

// componentAt finds the component marker the cursor is completing a
// name for, looking back on the cursor's line. line and character are
// LSP coordinates.
func componentAt(content string, line, character int) componentKind {
	offset := report.NewLineIndex(content).Offset(line, character)
	for i := offset - 1; i >= 0; i-- {
		switch content[i] {
		case '@', '#':
			if i > 0 && content[i-1] == '\\' {
				return noComponent
			}
			if content[i] == '@' {
				return ingredientComponent
			}
			return cookwareComponent
		case '\n', '{', '}', '~', '(', ')':
			return noComponent
		}
	}
	return noComponent
}

func completionItems(names []string, kind protocol.CompletionItemKind, detail string) []protocol.CompletionItem {
	items := make([]protocol.CompletionItem, 0, len(names))
	for _, name := range names {
		items = append(items, protocol.CompletionItem{
			Label:      name,
			Kind:       &kind,
			Detail:     strPtr(detail),
			InsertText: strPtr(name + "{}"),
		})
	}
	return items
}
