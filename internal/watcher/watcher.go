package watcher

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/rickgao/futures-data/internal/catalog"
	"github.com/rickgao/futures-data/internal/layout"
	"github.com/rickgao/futures-data/internal/model"
)

const (
	// eventChannelBuffer is the size of the output event channel.
	eventChannelBuffer = 256

	// DefaultDebounce is used when Config.Debounce is zero.
	DefaultDebounce = 500 * time.Millisecond
)

// Invalidator clears the cached plan of a request.
type Invalidator interface {
	Invalidate(req model.DataRequest) bool
}

// Operation is the kind of change observed.
type Operation string

const (
	OpCreate Operation = "create"
	OpModify Operation = "modify"
	OpDelete Operation = "delete"
)

// Event is one debounced data file change.
type Event struct {
	Request   model.DataRequest
	Path      string // Absolute or root-joined file path
	Operation Operation
	Cleared   bool // A cached plan existed for Request
}

// Config configures a Watcher.
type Config struct {
	Debounce time.Duration

	// RefYear anchors year decoding of file names. Zero means the current
	// year at the time of each change.
	RefYear int
}

// Watcher maps file changes under a data root to plan invalidations. It
// works on the host filesystem only, since fsnotify watches OS paths.
type Watcher struct {
	cfg     Config
	root    string
	inv     Invalidator
	watcher *fsnotify.Watcher
	logger  *slog.Logger

	kinds map[string]model.SourceKind

	pendingMu sync.Mutex
	pending   map[string]fsnotify.Op

	events chan Event
	done   chan struct{}

	started       atomic.Bool
	droppedEvents atomic.Int64
}

// New creates a Watcher for root. Call Start to begin watching.
func New(cfg Config, root string, inv Invalidator, logger *slog.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}

	kinds := make(map[string]model.SourceKind)
	for kind, sub := range layout.SubRoots() {
		kinds[sub] = kind
	}

	return &Watcher{
		cfg:     cfg,
		root:    root,
		inv:     inv,
		watcher: fsw,
		logger:  logger,
		kinds:   kinds,
		pending: make(map[string]fsnotify.Op),
		events:  make(chan Event, eventChannelBuffer),
		done:    make(chan struct{}),
	}, nil
}

// Events returns the channel of change events. It is closed after Stop.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Start creates the source sub-roots if needed, adds watches and begins
// processing events.
func (w *Watcher) Start(ctx context.Context) error {
	for sub := range w.kinds {
		dir := filepath.Join(w.root, sub)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
		if err := w.watcher.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}

		symbols, err := os.ReadDir(dir)
		if err != nil {
			return fmt.Errorf("list %s: %w", dir, err)
		}
		for _, s := range symbols {
			if s.IsDir() {
				w.addWatch(filepath.Join(dir, s.Name()))
			}
		}
	}

	w.started.Store(true)
	go w.processEvents(ctx)

	w.logger.Info("data watcher started",
		"root", w.root,
		"debounce", w.cfg.Debounce,
	)
	return nil
}

// Stop closes the underlying watcher and waits for the event loop to exit.
func (w *Watcher) Stop() error {
	err := w.watcher.Close()
	if w.started.Load() {
		<-w.done
	}
	return err
}

// DroppedEvents returns the number of events dropped due to channel overflow.
func (w *Watcher) DroppedEvents() int64 {
	return w.droppedEvents.Load()
}

func (w *Watcher) addWatch(dir string) {
	if err := w.watcher.Add(dir); err != nil {
		w.logger.Warn("failed to watch directory", "path", dir, "error", err)
		return
	}
	w.logger.Debug("watching directory", "path", dir)
}

// processEvents handles fsnotify events with debouncing.
func (w *Watcher) processEvents(ctx context.Context) {
	defer close(w.done)
	defer close(w.events)

	ticker := time.NewTicker(w.cfg.Debounce)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleFSEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("watcher error", "error", err)

		case <-ticker.C:
			w.flushPending(ctx)
		}
	}
}

// rel splits path under root into its components.
func (w *Watcher) rel(path string) []string {
	r, err := filepath.Rel(w.root, path)
	if err != nil || r == "." || strings.HasPrefix(r, "..") {
		return nil
	}
	return strings.Split(filepath.ToSlash(r), "/")
}

// handleFSEvent records a .csv change or watches a new symbol directory.
func (w *Watcher) handleFSEvent(event fsnotify.Event) {
	parts := w.rel(event.Name)
	if len(parts) == 0 {
		return
	}
	if _, ok := w.kinds[parts[0]]; !ok {
		return
	}

	if len(parts) == 2 && event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			w.addWatch(event.Name)
		}
		return
	}
	if len(parts) != 3 || !strings.EqualFold(filepath.Ext(event.Name), ".csv") {
		return
	}

	w.pendingMu.Lock()
	w.pending[event.Name] |= event.Op
	w.pendingMu.Unlock()
}

// flushPending invalidates plans for accumulated changes.
func (w *Watcher) flushPending(ctx context.Context) {
	w.pendingMu.Lock()
	if len(w.pending) == 0 {
		w.pendingMu.Unlock()
		return
	}
	toProcess := w.pending
	w.pending = make(map[string]fsnotify.Op)
	w.pendingMu.Unlock()

	refYear := w.cfg.RefYear
	if refYear == 0 {
		refYear = time.Now().Year()
	}

	for path, op := range toProcess {
		select {
		case <-ctx.Done():
			return
		default:
		}

		parts := w.rel(path)
		req, err := catalog.ParseFileName(w.kinds[parts[0]], parts[1], parts[2], refYear)
		if err != nil {
			w.logger.Debug("ignoring unrecognised data file", "path", path, "error", err)
			continue
		}

		event := Event{Request: req, Path: path, Operation: w.operation(path, op)}
		event.Cleared = w.inv.Invalidate(req)
		w.sendEvent(event)
	}
}

func (w *Watcher) operation(path string, op fsnotify.Op) Operation {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return OpDelete
	}
	if op.Has(fsnotify.Create) {
		return OpCreate
	}
	if op.Has(fsnotify.Remove) || op.Has(fsnotify.Rename) {
		// Removed then recreated within one debounce window.
		return OpCreate
	}
	return OpModify
}

// sendEvent sends an event to the output channel without blocking.
func (w *Watcher) sendEvent(event Event) {
	select {
	case w.events <- event:
		w.logger.Debug("data file changed",
			"request", event.Request,
			"op", event.Operation,
			"cleared", event.Cleared)
	default:
		dropped := w.droppedEvents.Add(1)
		w.logger.Warn("event channel full, dropping event",
			"path", event.Path,
			"total_dropped", dropped)
	}
}
