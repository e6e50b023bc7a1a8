// Package ui serves a collection of recipes over HTTP.
package ui

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/dhamidi/cook/collection"
	"github.com/dhamidi/cook/format"
	"github.com/dhamidi/cook/recipe"
	"github.com/tliron/commonlog"
)

//go:embed static templates
var embeddedFS embed.FS

var log = commonlog.GetLogger("cook.ui")

type Server struct {
	collection *collection.Collection
	templates  *template.Template
	mux        *http.ServeMux
}

// NewServer serves the recipes of c. Templates and static files are
// read from ui/templates and ui/static below the working directory when
// they exist there, so they can be edited without a rebuild.
func NewServer(c *collection.Collection) (*Server, error) {
	staticFS := overlayFS("ui/static", mustSub(embeddedFS, "static"))
	templateFS := overlayFS("ui/templates", mustSub(embeddedFS, "templates"))

	tmpl, err := template.New("").ParseFS(templateFS, "*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	s := &Server{
		collection: c,
		templates:  tmpl,
		mux:        http.NewServeMux(),
	}

	s.mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))
	s.mux.HandleFunc("GET /r/{name...}", s.handleRecipe)
	s.mux.HandleFunc("GET /{$}", s.handleIndex)

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) render(w http.ResponseWriter, name string, data any) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		log.Errorf("render %s: %s", name, err)
		http.Error(w, "render "+name+": "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := buf.WriteTo(w); err != nil {
		log.Errorf("write %s: %s", name, err)
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	query := strings.ToLower(r.URL.Query().Get("q"))

	var names []string
	for _, name := range s.collection.Names() {
		if query == "" || strings.Contains(strings.ToLower(name), query) {
			names = append(names, name)
		}
	}

	data := struct {
		Names []string
		Query string
	}{
		Names: names,
		Query: r.URL.Query().Get("q"),
	}
	s.render(w, "index.html", data)
}

func (s *Server) handleRecipe(w http.ResponseWriter, r *http.Request) {
	f, err := s.collection.Get(r.PathValue("name"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	scaled, err := scaleFor(f.Recipe(), r.URL.Query().Get("servings"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if r.Header.Get("Accept") == "application/json" {
		w.Header().Set("Content-Type", "application/json")
		if err := format.NewJSONEncoder(w).Encode(scaled); err != nil {
			log.Errorf("encode %s: %s", f.Name, err)
		}
		return
	}

	s.render(w, "recipe.html", newRecipeView(f, scaled))
}

// scaleFor scales to the requested servings, or to the first declared
// serving count when none are requested.
func scaleFor(r *recipe.Recipe, servings string) (*recipe.ScaledRecipe, error) {
	if servings == "" {
		if len(r.Metadata.Servings) == 0 {
			return r.SkipScaling(), nil
		}
		return r.Scale(r.TargetFor(r.Metadata.Servings[0])), nil
	}
	n, err := strconv.ParseUint(servings, 10, 32)
	if err != nil || n == 0 {
		return nil, fmt.Errorf("invalid servings %q", servings)
	}
	return r.Scale(r.TargetFor(uint32(n))), nil
}

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}

// layers is a file system made of others: a file is read from the first
// layer that has it, and directories list the files of every layer.
type layers []fs.FS

func overlayFS(dir string, embedded fs.FS) fs.FS {
	return layers{os.DirFS(dir), embedded}
}

func (l layers) Open(name string) (fs.File, error) {
	var firstErr error
	for _, fsys := range l {
		f, err := fsys.Open(name)
		if err == nil {
			return f, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return nil, firstErr
}

func (l layers) ReadDir(name string) ([]fs.DirEntry, error) {
	var entries []fs.DirEntry
	seen := make(map[string]bool)
	for _, fsys := range l {
		list, err := fs.ReadDir(fsys, name)
		if err != nil {
			continue
		}
		for _, e := range list {
			if !seen[e.Name()] {
				seen[e.Name()] = true
				entries = append(entries, e)
			}
		}
	}
	slices.SortFunc(entries, func(a, b fs.DirEntry) int {
		return strings.Compare(a.Name(), b.Name())
	})
	return entries, nil
}
