package format

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dhamidi/cook/ast"
	"github.com/dhamidi/cook/quantity"
	"github.com/dhamidi/cook/recipe"
	"github.com/muesli/reflow/ansi"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
)

const stepIndent = 4

// TextEncoder writes a recipe for reading in a terminal. Steps are
// wrapped at the configured width; a width of 0 disables wrapping.
// Styles are dropped when the writer is not a terminal.
type TextEncoder struct {
	w      io.Writer
	width  int
	recipe *recipe.ScaledRecipe

	title      lipgloss.Style
	heading    lipgloss.Style
	ingredient lipgloss.Style
	cookware   lipgloss.Style
	timer      lipgloss.Style
	dim        lipgloss.Style
	warn       lipgloss.Style
}

func NewTextEncoder(w io.Writer, width int) *TextEncoder {
	r := lipgloss.NewRenderer(w)
	return &TextEncoder{
		w:          w,
		width:      width,
		title:      r.NewStyle().Bold(true).Underline(true),
		heading:    r.NewStyle().Bold(true),
		ingredient: r.NewStyle().Foreground(lipgloss.Color("10")),
		cookware:   r.NewStyle().Foreground(lipgloss.Color("12")),
		timer:      r.NewStyle().Foreground(lipgloss.Color("13")),
		dim:        r.NewStyle().Faint(true),
		warn:       r.NewStyle().Foreground(lipgloss.Color("11")),
	}
}

func (e *TextEncoder) Encode(r *recipe.ScaledRecipe) error {
	e.recipe = r
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *TextEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	e.writeHeader(&sb)
	e.writeIngredients(&sb)
	e.writeCookware(&sb)
	e.writeSteps(&sb)
	return []byte(sb.String()), nil
}

func (e *TextEncoder) writeHeader(sb *strings.Builder) {
	r := e.recipe
	title, ok := r.Metadata.Get("title")
	if !ok {
		title = r.Name
	}
	if title != "" {
		sb.WriteString(e.title.Render(title))
		sb.WriteString("\n\n")
	}

	if data := r.ScaledData(); data != nil && len(r.Metadata.Servings) > 0 {
		line := "servings: " + strconv.FormatUint(uint64(data.Target.Target()), 10)
		if data.Target.Factor() != 1 {
			line += e.dim.Render(fmt.Sprintf(" (scaled from %d)", data.Target.Base()))
		}
		sb.WriteString(line + "\n")
	}
	wrote := false
	for _, m := range r.Metadata.Entries {
		if strings.EqualFold(m.Key, "title") || strings.EqualFold(m.Key, "servings") {
			continue
		}
		fmt.Fprintf(sb, "%s %s\n", e.dim.Render(m.Key+":"), m.Value)
		wrote = true
	}
	if wrote || len(r.Metadata.Servings) > 0 {
		sb.WriteString("\n")
	}
}

type listRow struct {
	name   string
	detail string
	note   string
}

func (e *TextEncoder) writeList(sb *strings.Builder, heading string, style lipgloss.Style, rows []listRow) {
	if len(rows) == 0 {
		return
	}
	sb.WriteString(e.heading.Render(heading) + "\n")
	nameWidth := 0
	for _, row := range rows {
		nameWidth = max(nameWidth, ansi.PrintableRuneWidth(row.name))
	}
	for _, row := range rows {
		pad := strings.Repeat(" ", nameWidth-ansi.PrintableRuneWidth(row.name))
		line := "  " + style.Render(row.name) + pad
		if row.detail != "" {
			line += "  " + row.detail
		}
		if row.note != "" {
			line += "  " + row.note
		}
		sb.WriteString(strings.TrimRight(line, " ") + "\n")
	}
	sb.WriteString("\n")
}

func (e *TextEncoder) outcome(outcomes func(*recipe.ScaledData) []recipe.ScaleOutcome, i int) string {
	data := e.recipe.ScaledData()
	if data == nil {
		return ""
	}
	if o := outcomes(data)[i]; o.Kind == recipe.Failed {
		return e.warn.Render("(not scaled: " + o.Err.Error() + ")")
	}
	return ""
}

func (e *TextEncoder) writeIngredients(sb *strings.Builder) {
	var rows []listRow
	for i, igr := range e.recipe.Ingredients {
		if igr.IsReference() || igr.Modifiers.Has(ast.ModHidden) {
			continue
		}
		row := listRow{name: igr.DisplayName(), detail: quantityText(igr.Quantity)}
		var notes []string
		if igr.Modifiers.Has(ast.ModOpt) {
			notes = append(notes, e.dim.Render("(optional)"))
		}
		if igr.Note != "" {
			notes = append(notes, e.dim.Render("("+igr.Note+")"))
		}
		if s := e.outcome(func(d *recipe.ScaledData) []recipe.ScaleOutcome { return d.Ingredients }, i); s != "" {
			notes = append(notes, s)
		}
		row.note = strings.Join(notes, " ")
		rows = append(rows, row)
	}
	e.writeList(sb, "Ingredients:", e.ingredient, rows)
}

func (e *TextEncoder) writeCookware(sb *strings.Builder) {
	var rows []listRow
	for i, cw := range e.recipe.Cookware {
		if cw.Modifiers.Has(ast.ModHidden) || cw.Modifiers.Has(ast.ModRef) {
			continue
		}
		row := listRow{name: cw.DisplayName(), detail: quantityText(cw.Quantity)}
		row.note = e.outcome(func(d *recipe.ScaledData) []recipe.ScaleOutcome { return d.Cookware }, i)
		rows = append(rows, row)
	}
	e.writeList(sb, "Cookware:", e.cookware, rows)
}

func (e *TextEncoder) writeSteps(sb *strings.Builder) {
	r := e.recipe
	if len(r.Sections) == 0 {
		return
	}
	sb.WriteString(e.heading.Render("Steps:") + "\n")
	for i, sec := range r.Sections {
		if sec.Name != "" {
			if i > 0 {
				sb.WriteString("\n")
			}
			sb.WriteString(e.heading.Render("= "+sec.Name) + "\n")
		}
		for _, st := range sec.Steps {
			e.writeStep(sb, st)
		}
	}
}

func (e *TextEncoder) writeStep(sb *strings.Builder, st recipe.Step) {
	r := e.recipe
	var body strings.Builder
	var used []string
	for _, item := range st.Items {
		switch item := item.(type) {
		case recipe.TextItem:
			body.WriteString(item.Value)
		case recipe.IngredientRef:
			igr := r.Ingredients[item.Index]
			body.WriteString(e.ingredient.Render(igr.DisplayName()))
			if q := quantityText(igr.Quantity); q != "" {
				used = append(used, igr.DisplayName()+": "+q)
			}
		case recipe.CookwareRef:
			body.WriteString(e.cookware.Render(r.Cookware[item.Index].DisplayName()))
		case recipe.TimerRef:
			tm := r.Timers[item.Index]
			label := quantityText(tm.Quantity)
			if label == "" {
				label = tm.Name
			}
			body.WriteString(e.timer.Render(label))
		}
	}

	text := strings.TrimSpace(body.String())
	if e.width > stepIndent {
		text = wordwrap.String(text, e.width-stepIndent)
	}
	text = indent.String(text, stepIndent)
	if !st.IsText && strings.HasPrefix(text, strings.Repeat(" ", stepIndent)) {
		// the number goes into the indentation
		text = fmt.Sprintf("%*d. ", stepIndent-2, st.Number) + text[stepIndent:]
	}
	sb.WriteString(text + "\n")
	if len(used) > 0 {
		sb.WriteString(indent.String(e.dim.Render("["+strings.Join(used, "; ")+"]"), stepIndent) + "\n")
	}
}

func quantityText(q *quantity.Quantity) string {
	if q == nil {
		return ""
	}
	return q.String()
}
