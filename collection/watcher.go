package collection

import (
	"context"
	"slices"
	"strings"
	"time"
)

// Change is a recipe file that a scan found added, modified or removed.
type Change struct {
	Path    string
	Removed bool
}

// Watcher keeps a collection in sync with its directory by polling
// modification times.
type Watcher struct {
	collection *Collection
	interval   time.Duration
	seen       map[string]time.Time

	// OnChange is called after every scan that changed the collection.
	OnChange func([]Change)

	cancel context.CancelFunc
	done   chan struct{}
}

func NewWatcher(c *Collection, interval time.Duration) *Watcher {
	if interval <= 0 {
		interval = time.Second
	}
	return &Watcher{
		collection: c,
		interval:   interval,
		seen:       make(map[string]time.Time),
	}
}

// Start runs the watcher in the background until Stop is called.
func (w *Watcher) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	w.cancel = cancel
	w.done = make(chan struct{})
	go func() {
		defer close(w.done)
		w.Run(ctx)
	}()
}

// Stop ends a watcher started with Start and waits for it to finish.
func (w *Watcher) Stop() {
	if w.cancel == nil {
		return
	}
	w.cancel()
	<-w.done
	w.cancel = nil
}

// Run scans once, then again on every tick until ctx is done.
func (w *Watcher) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		if changes := w.Scan(); len(changes) > 0 && w.OnChange != nil {
			w.OnChange(changes)
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// Scan re-parses recipes that are new or modified since the last scan
// and forgets the ones that are gone. Changes are sorted by path.
func (w *Watcher) Scan() []Change {
	found := make(map[string]time.Time)
	err := walkRecipes(w.collection.RootDir(), func(path string, modTime time.Time) {
		found[path] = modTime
	})
	if err != nil {
		log.Errorf("watch %s: %s", w.collection.RootDir(), err)
		return nil
	}

	var changes []Change
	for path, modTime := range found {
		if last, known := w.seen[path]; known && !modTime.After(last) {
			continue
		}
		if err := w.collection.ScanFile(path); err != nil {
			log.Errorf("%s", err)
			// keep the last good version; retried on the next scan
			if last, known := w.seen[path]; known {
				found[path] = last
			} else {
				delete(found, path)
			}
			continue
		}
		changes = append(changes, Change{Path: path})
	}
	for path := range w.seen {
		if _, ok := found[path]; !ok {
			w.collection.RemoveFile(path)
			changes = append(changes, Change{Path: path, Removed: true})
		}
	}
	w.seen = found

	slices.SortFunc(changes, func(a, b Change) int {
		return strings.Compare(a.Path, b.Path)
	})
	if len(changes) > 0 {
		log.Debugf("%d recipes changed", len(changes))
	}
	return changes
}
