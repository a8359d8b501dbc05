// Package watcher reloads the catalog file when it changes on disk.
package watcher

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/gnana997/showcase/pkg/catalog"
)

const defaultDebounce = 200 * time.Millisecond

// Replacer receives reloaded catalogs. *store.Store satisfies it.
type Replacer interface {
	ReplaceCatalog(cat *catalog.Catalog)
}

// Options configures a CatalogWatcher.
type Options struct {
	// Debounce groups bursts of writes into one reload. Zero means 200ms.
	Debounce time.Duration
	// Load reads the catalog. Defaults to catalog.LoadFromFile.
	Load func(path string) (*catalog.Catalog, error)
	// OnReload is called after every reload attempt with its error, if any.
	OnReload func(err error)
}

// CatalogWatcher watches one catalog file and hands every successfully
// parsed version to a Replacer. Invalid edits are logged and skipped, so the
// last good catalog stays active.
//
// The parent directory is watched rather than the file so that editors
// which save by rename are still seen.
type CatalogWatcher struct {
	path    string
	target  Replacer
	opts    Options
	logger  *slog.Logger
	watcher *fsnotify.Watcher

	timerMu sync.Mutex
	timer   *time.Timer

	// reloadMu serialises reloads so an older Load never lands after a
	// newer one. Stop takes it to wait for a reload in flight.
	reloadMu sync.Mutex

	mu       sync.Mutex
	started  bool
	stopped  bool
	stopChan chan struct{}
	done     chan struct{}
}

// New creates a CatalogWatcher for path.
func New(path string, target Replacer, opts Options, logger *slog.Logger) (*CatalogWatcher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Debounce <= 0 {
		opts.Debounce = defaultDebounce
	}
	if opts.Load == nil {
		opts.Load = catalog.LoadFromFile
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve catalog path: %w", err)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	return &CatalogWatcher{
		path:     abs,
		target:   target,
		opts:     opts,
		logger:   logger,
		watcher:  w,
		stopChan: make(chan struct{}),
		done:     make(chan struct{}),
	}, nil
}

// Path returns the absolute path being watched.
func (cw *CatalogWatcher) Path() string {
	return cw.path
}

// Start begins watching in a background goroutine.
func (cw *CatalogWatcher) Start() error {
	cw.mu.Lock()
	defer cw.mu.Unlock()
	if cw.stopped {
		return fmt.Errorf("watcher already stopped")
	}
	if cw.started {
		return fmt.Errorf("watcher already started")
	}

	dir := filepath.Dir(cw.path)
	if err := cw.watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	cw.started = true
	go cw.eventLoop()

	cw.logger.Info("catalog watcher started", "path", cw.path, "debounce", cw.opts.Debounce)
	return nil
}

// Stop ends watching. It is safe to call more than once.
func (cw *CatalogWatcher) Stop() error {
	cw.mu.Lock()
	if cw.stopped {
		cw.mu.Unlock()
		return nil
	}
	cw.stopped = true
	started := cw.started
	close(cw.stopChan)
	cw.mu.Unlock()

	cw.timerMu.Lock()
	if cw.timer != nil {
		cw.timer.Stop()
		cw.timer = nil
	}
	cw.timerMu.Unlock()

	err := cw.watcher.Close()
	if started {
		<-cw.done
	}
	cw.reloadMu.Lock()
	cw.reloadMu.Unlock()
	cw.logger.Info("catalog watcher stopped", "path", cw.path)
	return err
}

func (cw *CatalogWatcher) eventLoop() {
	defer close(cw.done)
	for {
		select {
		case <-cw.stopChan:
			return

		case event, ok := <-cw.watcher.Events:
			if !ok {
				return
			}
			cw.handleEvent(event)

		case err, ok := <-cw.watcher.Errors:
			if !ok {
				return
			}
			cw.logger.Error("catalog watcher error", "error", err)
		}
	}
}

func (cw *CatalogWatcher) handleEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != cw.path {
		return
	}
	cw.logger.Debug("catalog file event", "op", event.Op.String())

	switch {
	case event.Has(fsnotify.Write), event.Has(fsnotify.Create):
		cw.debounceReload()
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		// A rename-save is followed by a Create; until then keep the
		// current catalog.
		cw.logger.Debug("catalog file moved away, keeping current catalog")
	}
}

// debounceReload restarts the reload timer on every event.
func (cw *CatalogWatcher) debounceReload() {
	cw.timerMu.Lock()
	defer cw.timerMu.Unlock()

	if cw.timer != nil {
		cw.timer.Stop()
	}
	cw.timer = time.AfterFunc(cw.opts.Debounce, cw.Reload)
}

// Reload reads the catalog file now and, if it is valid, replaces the
// target's catalog. Reloads never overlap, and none runs after Stop returns.
func (cw *CatalogWatcher) Reload() {
	cw.reloadMu.Lock()
	defer cw.reloadMu.Unlock()

	cw.mu.Lock()
	stopped := cw.stopped
	cw.mu.Unlock()
	if stopped {
		return
	}

	cat, err := cw.opts.Load(cw.path)
	if err != nil {
		cw.logger.Warn("catalog reload failed, keeping current catalog", "path", cw.path, "error", err)
	} else {
		cw.target.ReplaceCatalog(cat)
		cw.logger.Info("catalog reloaded", "path", cw.path, "entries", cat.Len())
	}
	if cw.opts.OnReload != nil {
		cw.opts.OnReload(err)
	}
}
