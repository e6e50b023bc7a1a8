// Package collection keeps a directory of recipe files parsed in memory.
package collection

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/dhamidi/cook/parser"
	"github.com/dhamidi/cook/recipe"
	"github.com/dhamidi/cook/report"
	"github.com/tliron/commonlog"
)

// Ext is the extension of recipe files.
const Ext = ".cook"

var log = commonlog.GetLogger("cook.collection")

var ErrNotFound = errors.New("recipe not found")

type Collection struct {
	mu         sync.RWMutex
	rootDir    string
	extensions parser.Extensions
	files      map[string]*File
}

type File struct {
	Path string
	// Name is the path relative to the root, without extension and with
	// forward slashes: "soups/tomato".
	Name    string
	Content []byte
	Result  report.Result[*recipe.Recipe]
}

// Recipe returns the parsed recipe. It is never nil, even when the file
// has errors.
func (f *File) Recipe() *recipe.Recipe {
	return f.Result.Output
}

func New(rootDir string, ext parser.Extensions) *Collection {
	return &Collection{
		rootDir:    rootDir,
		extensions: ext,
		files:      make(map[string]*File),
	}
}

func (c *Collection) RootDir() string {
	return c.rootDir
}

func (c *Collection) Extensions() parser.Extensions {
	return c.extensions
}

// ScanAll parses every recipe below the root. Hidden directories are
// skipped.
func (c *Collection) ScanAll() error {
	return walkRecipes(c.rootDir, func(path string, _ time.Time) {
		if err := c.ScanFile(path); err != nil {
			log.Errorf("%s", err)
		}
	})
}

// walkRecipes calls fn for every recipe file below root, skipping hidden
// directories. Unreadable entries are skipped too.
func walkRecipes(root string, fn func(path string, modTime time.Time)) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			return nil
		}
		if d.IsDir() {
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != Ext {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		fn(path, info.ModTime())
		return nil
	})
}

func (c *Collection) ScanFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("scan recipe: %w", err)
	}
	c.UpdateFile(path, content)
	return nil
}

// UpdateFile parses content as the recipe at path, replacing what was
// known about it.
func (c *Collection) UpdateFile(path string, content []byte) *File {
	name := c.nameOf(path)
	result := recipe.Parse(string(content), c.extensions)
	result.Output.Name = filepath.Base(name)
	f := &File{
		Path:    path,
		Name:    name,
		Content: content,
		Result:  result,
	}
	log.Debugf("updated %s: %d errors, %d warnings", name, len(result.Errors), len(result.Warnings))

	c.mu.Lock()
	defer c.mu.Unlock()
	c.files[path] = f
	return f
}

func (c *Collection) nameOf(path string) string {
	rel, err := filepath.Rel(c.rootDir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		rel = filepath.Base(path)
	}
	return filepath.ToSlash(strings.TrimSuffix(rel, filepath.Ext(rel)))
}

func (c *Collection) RemoveFile(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.files, path)
}

// GetFile returns the file at path, or nil.
func (c *Collection) GetFile(path string) *File {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.files[path]
}

// Files returns every known file, sorted by path.
func (c *Collection) Files() []*File {
	c.mu.RLock()
	defer c.mu.RUnlock()
	files := make([]*File, 0, len(c.files))
	for _, f := range c.files {
		files = append(files, f)
	}
	slices.SortFunc(files, func(a, b *File) int {
		return strings.Compare(a.Path, b.Path)
	})
	return files
}

// Get finds a recipe by name.
func (c *Collection) Get(name string) (*File, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, f := range c.files {
		if f.Name == name {
			return f, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
}

// Names returns the names of all recipes, sorted.
func (c *Collection) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, 0, len(c.files))
	for _, f := range c.files {
		names = append(names, f.Name)
	}
	slices.Sort(names)
	return names
}

// IngredientNames returns every ingredient name used in the collection,
// sorted and without duplicates.
func (c *Collection) IngredientNames() []string {
	return c.names(func(r *recipe.Recipe) []string {
		var names []string
		for _, igr := range r.Ingredients {
			names = append(names, igr.Name)
		}
		return names
	})
}

func (c *Collection) CookwareNames() []string {
	return c.names(func(r *recipe.Recipe) []string {
		var names []string
		for _, cw := range r.Cookware {
			names = append(names, cw.Name)
		}
		return names
	})
}

func (c *Collection) names(of func(*recipe.Recipe) []string) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	seen := make(map[string]bool)
	var names []string
	for _, f := range c.files {
		for _, name := range of(f.Recipe()) {
			if name == "" || seen[name] {
				continue
			}
			seen[name] = true
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}
