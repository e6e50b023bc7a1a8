package ui

import (
	"encoding/json"
	"html/template"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dhamidi/cook/collection"
	"github.com/dhamidi/cook/parser"
)

const pancakes = `>> title: Pancakes
>> servings: 2|4

Mix @flour{200*%g} with @milk{1|2%l} in a #bowl.
Rest for ~{10%min}.
`

func newTestServer(t *testing.T) *Server {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "pancakes.cook"), []byte(pancakes), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "toast.cook"), []byte("Toast @bread{2}."), 0o644); err != nil {
		t.Fatal(err)
	}
	c := collection.New(dir, parser.All)
	if err := c.ScanAll(); err != nil {
		t.Fatal(err)
	}
	s, err := NewServer(c)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func get(t *testing.T, s *Server, target string, header ...string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func TestIndex(t *testing.T) {
	s := newTestServer(t)

	rec := get(t, s, "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{`href="/r/pancakes"`, `href="/r/toast"`} {
		if !strings.Contains(body, want) {
			t.Errorf("index missing %s", want)
		}
	}

	rec = get(t, s, "/?q=PAN")
	body = rec.Body.String()
	if !strings.Contains(body, `href="/r/pancakes"`) || strings.Contains(body, `href="/r/toast"`) {
		t.Errorf("search did not filter:\n%s", body)
	}
}

func TestRecipePage(t *testing.T) {
	s := newTestServer(t)

	rec := get(t, s, "/r/pancakes?servings=4")
	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("got content type %s", ct)
	}
	body := rec.Body.String()
	for _, want := range []string{
		"<h1>Pancakes</h1>",
		`<span class="quantity">400 g</span>`,
		`<span class="quantity">2 l</span>`,
		`<span class="cookware">bowl</span>`,
		`<span class="timer">10 min</span>`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("recipe page missing %s", want)
		}
	}
}

func TestRecipeJSON(t *testing.T) {
	s := newTestServer(t)

	rec := get(t, s, "/r/pancakes?servings=4", "Accept", "application/json")
	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200", rec.Code)
	}
	var got struct {
		Name  string `json:"name"`
		Scale struct {
			Base   uint32 `json:"base"`
			Target uint32 `json:"target"`
		} `json:"scale"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got.Name != "pancakes" || got.Scale.Base != 2 || got.Scale.Target != 4 {
		t.Errorf("got %+v", got)
	}
}

func TestRecipeErrors(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		target string
		want   int
	}{
		{"/r/missing", http.StatusNotFound},
		{"/r/pancakes?servings=zero", http.StatusBadRequest},
		{"/r/pancakes?servings=0", http.StatusBadRequest},
		{"/r/toast", http.StatusOK},
	}
	for _, tt := range tests {
		if rec := get(t, s, tt.target); rec.Code != tt.want {
			t.Errorf("%s: got status %d, want %d", tt.target, rec.Code, tt.want)
		}
	}
}

func TestStatic(t *testing.T) {
	s := newTestServer(t)
	rec := get(t, s, "/static/style.css")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), ".ingredient") {
		t.Errorf("got status %d", rec.Code)
	}
}

func TestLayers(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "style.css"), []byte("override"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "extra.css"), []byte("extra"), 0o644); err != nil {
		t.Fatal(err)
	}
	fsys := overlayFS(dir, mustSub(embeddedFS, "static"))

	data, err := fs.ReadFile(fsys, "style.css")
	if err != nil || string(data) != "override" {
		t.Errorf("got %q %v, want the override", data, err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	if got := strings.Join(names, ","); got != "extra.css,style.css" {
		t.Errorf("got %s", got)
	}
}

func TestEmbeddedTemplates(t *testing.T) {
	entries, err := fs.ReadDir(embeddedFS, "templates")
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	if got := strings.Join(names, ","); got != "index.html,layout.html,recipe.html" {
		t.Errorf("got embedded templates %s", got)
	}

	s := newTestServer(t)
	for _, name := range []string{"header", "footer"} {
		if s.templates.Lookup(name) == nil {
			t.Errorf("template %s not defined", name)
		}
	}
}

func TestRenderError(t *testing.T) {
	s := &Server{templates: template.Must(template.New("broken.html").Parse(`<p>partial</p>{{template "missing"}}`))}

	rec := httptest.NewRecorder()
	s.render(rec, "broken.html", nil)
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("got status %d, want 500", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "partial") {
		t.Errorf("partial page written:\n%s", rec.Body.String())
	}
}
