// Package lsp serves recipe diagnostics and completions to editors.
package lsp

import (
	"net/url"
	"path/filepath"
	"strings"

	"github.com/dhamidi/cook/collection"
	"github.com/dhamidi/cook/parser"
	"github.com/dhamidi/cook/report"
	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"
)

const lsName = "cook"

var log = commonlog.GetLogger("cook.lsp")

type Server struct {
	collection *collection.Collection
	extensions parser.Extensions
	handler    protocol.Handler
	server     *server.Server
	version    string
}

func NewServer(version string, ext parser.Extensions) *Server {
	ls := &Server{
		version:    version,
		extensions: ext,
		collection: collection.New(".", ext),
	}

	ls.handler = protocol.Handler{
		Initialize:             ls.initialize,
		Initialized:            ls.initialized,
		Shutdown:               ls.shutdown,
		SetTrace:               ls.setTrace,
		TextDocumentDidOpen:    ls.textDocumentDidOpen,
		TextDocumentDidChange:  ls.textDocumentDidChange,
		TextDocumentDidClose:   ls.textDocumentDidClose,
		TextDocumentDidSave:    ls.textDocumentDidSave,
		TextDocumentCompletion: ls.textDocumentCompletion,
		TextDocumentHover:      ls.textDocumentHover,
		TextDocumentDefinition: ls.textDocumentDefinition,
	}

	ls.server = server.NewServer(&ls.handler, lsName, false)

	return ls
}

func (ls *Server) RunStdio() error {
	return ls.server.RunStdio()
}

func (ls *Server) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	rootDir := "."
	if params.RootPath != nil && *params.RootPath != "" {
		rootDir = *params.RootPath
	} else if params.RootURI != nil && *params.RootURI != "" {
		if path, err := uriToPath(*params.RootURI); err == nil {
			rootDir = path
		}
	}

	ls.collection = collection.New(rootDir, ls.extensions)

	capabilities := ls.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindFull),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}

	capabilities.CompletionProvider = &protocol.CompletionOptions{
		TriggerCharacters: []string{"@", "#"},
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &ls.version,
		},
	}, nil
}

func (ls *Server) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	if err := ls.collection.ScanAll(); err != nil {
		log.Errorf("scan %s: %s", ls.collection.RootDir(), err)
	}
	return nil
}

func (ls *Server) shutdown(ctx *glsp.Context) error {
	return nil
}

func (ls *Server) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (ls *Server) update(ctx *glsp.Context, uri protocol.DocumentUri, content string) {
	path, err := uriToPath(uri)
	if err != nil {
		return
	}
	f := ls.collection.UpdateFile(path, []byte(content))
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: Diagnostics(content, f.Result.Diagnostics()),
	})
}

func (ls *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	ls.update(ctx, params.TextDocument.URI, params.TextDocument.Text)
	return nil
}

func (ls *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) > 0 {
		change := params.ContentChanges[len(params.ContentChanges)-1]
		if textChange, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
			ls.update(ctx, params.TextDocument.URI, textChange.Text)
		}
	}
	return nil
}

func (ls *Server) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	return nil
}

func (ls *Server) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	if params.Text != nil {
		ls.update(ctx, params.TextDocument.URI, *params.Text)
	}
	return nil
}

func (ls *Server) fileAt(uri protocol.DocumentUri) *collection.File {
	path, err := uriToPath(uri)
	if err != nil {
		return nil
	}
	return ls.collection.GetFile(path)
}

func (ls *Server) textDocumentCompletion(ctx *glsp.Context, params *protocol.CompletionParams) (any, error) {
	file := ls.fileAt(params.TextDocument.URI)
	if file == nil {
		return nil, nil
	}

	switch componentAt(string(file.Content), int(params.Position.Line), int(params.Position.Character)) {
	case ingredientComponent:
		return completionItems(ls.collection.IngredientNames(), protocol.CompletionItemKindVariable, "ingredient"), nil
	case cookwareComponent:
		return completionItems(ls.collection.CookwareNames(), protocol.CompletionItemKindField, "cookware"), nil
	}
	return nil, nil
}

// componentAtPosition finds the component under an LSP position.
func (ls *Server) componentAtPosition(params protocol.TextDocumentPositionParams) (component, *report.LineIndex, bool) {
	file := ls.fileAt(params.TextDocument.URI)
	if file == nil {
		return component{}, nil, false
	}
	lines := report.NewLineIndex(string(file.Content))
	offset := lines.Offset(int(params.Position.Line), int(params.Position.Character))
	c, ok := componentUnder(file.Recipe(), offset)
	return c, lines, ok
}

func (ls *Server) textDocumentHover(ctx *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	c, lines, ok := ls.componentAtPosition(params.TextDocumentPositionParams)
	if !ok {
		return nil, nil
	}
	rng := spanRange(lines, c.span)
	return &protocol.Hover{
		Contents: protocol.MarkupContent{Kind: protocol.MarkupKindMarkdown, Value: c.markdown()},
		Range:    &rng,
	}, nil
}

// textDocumentDefinition jumps from an ingredient reference to the
// ingredient it refers to.
func (ls *Server) textDocumentDefinition(ctx *glsp.Context, params *protocol.DefinitionParams) (any, error) {
	c, lines, ok := ls.componentAtPosition(params.TextDocumentPositionParams)
	if !ok || c.definition == nil {
		return nil, nil
	}
	return protocol.Location{
		URI:   params.TextDocument.URI,
		Range: spanRange(lines, *c.definition),
	}, nil
}

func uriToPath(uri string) (string, error) {
	if strings.HasPrefix(uri, "file://") {
		parsed, err := url.Parse(uri)
		if err != nil {
			return "", err
		}
		return filepath.Clean(parsed.Path), nil
	}
	return uri, nil
}

func boolPtr(b bool) *bool {
	return &b
}

func strPtr(s string) *string {
	return &s
}

func syncKindPtr(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
