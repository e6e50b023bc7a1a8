package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/cook/ast"
	"github.com/dhamidi/cook/quantity"
	"github.com/dhamidi/cook/span"
)

type ASTJSONEncoder struct {
	w io.Writer
}

func NewASTJSONEncoder(w io.Writer) *ASTJSONEncoder {
	return &ASTJSONEncoder{w: w}
}

func (e *ASTJSONEncoder) Encode(tree *ast.Ast) error {
	text, err := e.MarshalText(tree)
	if err != nil {
		return err
	}
	_, err = e.w.Write(append(text, '\n'))
	return err
}

func (e *ASTJSONEncoder) MarshalText(tree *ast.Ast) ([]byte, error) {
	root := &astJSONNode{Kind: "recipe"}
	for _, b := range tree.Blocks {
		root.Children = append(root.Children, blockToJSON(b))
	}
	return json.MarshalIndent(root, "", "  ")
}

type astJSONNode struct {
	Kind     string         `json:"kind"`
	Span     *astJSONSpan   `json:"span,omitempty"`
	Text     string         `json:"text,omitempty"`
	Children []*astJSONNode `json:"children,omitempty"`
}

type astJSONSpan struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

func jsonSpan(s span.Span) *astJSONSpan {
	return &astJSONSpan{Start: s.Start, End: s.End}
}

func textNode(kind string, t ast.Text) *astJSONNode {
	return &astJSONNode{Kind: kind, Span: jsonSpan(t.Span()), Text: t.String()}
}

func optionalText(parent *astJSONNode, kind string, t *ast.Text) {
	if t != nil {
		parent.Children = append(parent.Children, textNode(kind, *t))
	}
}

func blockToJSON(b ast.Block) *astJSONNode {
	switch b := b.(type) {
	case *ast.Metadata:
		return &astJSONNode{
			Kind:     "metadata",
			Span:     jsonSpan(b.Key.Span().Cover(b.Value.Span())),
			Children: []*astJSONNode{textNode("key", b.Key), textNode("value", b.Value)},
		}
	case *ast.Section:
		n := &astJSONNode{Kind: "section"}
		optionalText(n, "name", b.Name)
		return n
	case *ast.Step:
		n := &astJSONNode{Kind: "step"}
		if b.IsText {
			n.Kind = "textStep"
		}
		for _, item := range b.Items {
			n.Children = append(n.Children, itemToJSON(item))
		}
		return n
	}
	panic("unknown block, this is a bug")
}

func itemToJSON(item ast.Item) *astJSONNode {
	switch item := item.(type) {
	case *ast.TextItem:
		return textNode("text", item.Text)
	case *ast.IngredientItem:
		igr := item.Ingredient.Value
		n := &astJSONNode{Kind: "ingredient", Span: jsonSpan(item.Ingredient.Span)}
		modifiersToJSON(n, igr.Modifiers)
		n.Children = append(n.Children, textNode("name", igr.Name))
		optionalText(n, "alias", igr.Alias)
		if igr.Quantity != nil {
			n.Children = append(n.Children, quantityToJSON(igr.Quantity.Value.Value, igr.Quantity.Value.Unit, igr.Quantity.Span))
		}
		optionalText(n, "note", igr.Note)
		return n
	case *ast.CookwareItem:
		cw := item.Cookware.Value
		n := &astJSONNode{Kind: "cookware", Span: jsonSpan(item.Cookware.Span)}
		modifiersToJSON(n, cw.Modifiers)
		n.Children = append(n.Children, textNode("name", cw.Name))
		optionalText(n, "alias", cw.Alias)
		if cw.Quantity != nil {
			n.Children = append(n.Children, quantityToJSON(cw.Quantity.Value, nil, cw.Quantity.Span))
		}
		optionalText(n, "note", cw.Note)
		return n
	case *ast.TimerItem:
		tm := item.Timer.Value
		n := &astJSONNode{Kind: "timer", Span: jsonSpan(item.Timer.Span)}
		optionalText(n, "name", tm.Name)
		if tm.Quantity != nil {
			n.Children = append(n.Children, quantityToJSON(tm.Quantity.Value.Value, tm.Quantity.Value.Unit, tm.Quantity.Span))
		}
		return n
	}
	panic("unknown item, this is a bug")
}

func modifiersToJSON(parent *astJSONNode, mods span.Located[ast.Modifiers]) {
	if mods.Value.IsEmpty() {
		return
	}
	parent.Children = append(parent.Children, &astJSONNode{
		Kind: "modifiers",
		Span: jsonSpan(mods.Span),
		Text: mods.Value.String(),
	})
}

func quantityToJSON(value ast.QuantityValue, unit *ast.Text, at span.Span) *astJSONNode {
	n := &astJSONNode{Kind: "quantity", Span: jsonSpan(at)}
	for _, v := range value.Values() {
		n.Children = append(n.Children, &astJSONNode{Kind: valueKind(v.Value), Span: jsonSpan(v.Span), Text: v.Value.String()})
	}
	if single, ok := value.(ast.Single); ok && single.AutoScale != nil {
		n.Children = append(n.Children, &astJSONNode{Kind: "autoScale", Span: jsonSpan(*single.AutoScale)})
	}
	optionalText(n, "unit", unit)
	return n
}

func valueKind(v quantity.Value) string {
	switch v.(type) {
	case quantity.Number:
		return "number"
	case quantity.Range:
		return "range"
	}
	return "textValue"
}
