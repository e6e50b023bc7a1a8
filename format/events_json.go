package format

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dhamidi/cook/parser"
	"github.com/dhamidi/cook/report"
)

// EventJSONEncoder writes parser events as JSON lines, one object per
// event.
type EventJSONEncoder struct {
	enc *json.Encoder
}

func NewEventJSONEncoder(w io.Writer) *EventJSONEncoder {
	return &EventJSONEncoder{enc: json.NewEncoder(w)}
}

type eventJSON struct {
	Type    string       `json:"type"`
	Span    *astJSONSpan `json:"span,omitempty"`
	Key     string       `json:"key,omitempty"`
	Value   string       `json:"value,omitempty"`
	Name    *string      `json:"name,omitempty"`
	IsText  bool         `json:"isText,omitempty"`
	Message string       `json:"message,omitempty"`
	Labels  []labelJSON  `json:"labels,omitempty"`
	Help    string       `json:"help,omitempty"`
}

type labelJSON struct {
	Span    astJSONSpan `json:"span"`
	Message string      `json:"message,omitempty"`
}

func (e *EventJSONEncoder) Encode(ev parser.Event) error {
	return e.enc.Encode(eventToJSON(ev))
}

func eventToJSON(ev parser.Event) eventJSON {
	switch ev := ev.(type) {
	case parser.Metadata:
		return eventJSON{Type: "metadata", Span: jsonSpan(ev.Key.Span().Cover(ev.Value.Span())), Key: ev.Key.Trimmed(), Value: ev.Value.Trimmed()}
	case parser.Section:
		out := eventJSON{Type: "section"}
		if ev.Name != nil {
			name := ev.Name.String()
			out.Name = &name
			out.Span = jsonSpan(ev.Name.Span())
		}
		return out
	case parser.StartStep:
		return eventJSON{Type: "startStep", IsText: ev.IsText}
	case parser.EndStep:
		return eventJSON{Type: "endStep", IsText: ev.IsText}
	case parser.Text:
		return eventJSON{Type: "text", Span: jsonSpan(ev.Value.Span()), Value: ev.Value.String()}
	case parser.Ingredient:
		name := ev.Value.Name.String()
		return eventJSON{Type: "ingredient", Span: jsonSpan(ev.Span), Name: &name}
	case parser.Cookware:
		name := ev.Value.Name.String()
		return eventJSON{Type: "cookware", Span: jsonSpan(ev.Span), Name: &name}
	case parser.Timer:
		out := eventJSON{Type: "timer", Span: jsonSpan(ev.Span)}
		if ev.Value.Name != nil {
			name := ev.Value.Name.String()
			out.Name = &name
		}
		return out
	case parser.ErrorEvent:
		return diagnosticToJSON("error", ev.Err)
	case parser.WarningEvent:
		return diagnosticToJSON("warning", ev.Warn)
	}
	panic(fmt.Sprintf("unknown event %T, this is a bug", ev))
}

func diagnosticToJSON(kind string, d report.Diagnostic) eventJSON {
	out := eventJSON{Type: kind, Message: d.Error(), Help: d.Help()}
	for _, l := range d.Labels() {
		out.Labels = append(out.Labels, labelJSON{Span: *jsonSpan(l.Span), Message: l.Message})
	}
	return out
}
