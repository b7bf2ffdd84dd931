package planner

import (
	"log/slog"
	"maps"
	"slices"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/rickgao/futures-data/internal/fsys"
	"github.com/rickgao/futures-data/internal/metrics"
	"github.com/rickgao/futures-data/internal/model"
	"github.com/rickgao/futures-data/internal/resolver"
)

// Stats is a point-in-time view of the planner.
type Stats struct {
	Resolvers int   `json:"resolvers"` // Requests that have resolved at least once
	Cached    int   `json:"cached"`    // Resolvers holding a plan
	Hits      int64 `json:"hits"`      // Plans served from cache
	Misses    int64 `json:"misses"`    // Calls that consulted the filesystem
	Failures  int64 `json:"failures"`  // Misses that returned an error
}

// Option configures a Planner.
type Option func(*Planner)

// WithLogger sets the logger for the planner and its resolvers.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Planner) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithMetrics records resolutions on m.
func WithMetrics(m *metrics.Resolver) Option {
	return func(p *Planner) {
		p.metrics = m
	}
}

// entry serializes one resolver. cached mirrors the resolver state so
// Stats and Cached never wait on a resolution in progress.
type entry struct {
	mu     sync.Mutex
	r      *resolver.Resolver
	cached atomic.Bool
}

// Planner maps requests to resolvers. The map lock is never held during
// filesystem I/O; each resolver has its own lock. Only resolvers that have
// resolved at least once stay in the map.
type Planner struct {
	specs resolver.SpecProvider
	dirs  resolver.DirProvider
	names resolver.NameProvider
	fs    fsys.FileSystem

	logger  *slog.Logger
	metrics *metrics.Resolver

	mu        sync.Mutex
	resolvers map[model.DataRequest]*entry

	hits     atomic.Int64
	misses   atomic.Int64
	failures atomic.Int64
}

// New creates an empty Planner.
func New(specs resolver.SpecProvider, dirs resolver.DirProvider, names resolver.NameProvider, fs fsys.FileSystem, opts ...Option) *Planner {
	p := &Planner{
		specs:     specs,
		dirs:      dirs,
		names:     names,
		fs:        fs,
		logger:    slog.Default(),
		resolvers: make(map[model.DataRequest]*entry),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Plan resolves req, creating its resolver on first use. A resolver whose
// resolution fails is dropped again.
func (p *Planner) Plan(req model.DataRequest) (model.ReadPlan, error) {
	e := p.entry(req)

	e.mu.Lock()
	if e.r.State() == resolver.StateResolved {
		p.hits.Add(1)
	} else {
		p.misses.Add(1)
	}
	plan, err := e.r.Resolve()
	e.cached.Store(e.r.State() == resolver.StateResolved)
	e.mu.Unlock()

	p.mu.Lock()
	defer p.mu.Unlock()
	if err != nil {
		p.failures.Add(1)
		if p.resolvers[req] == e && !e.cached.Load() {
			delete(p.resolvers, req)
		}
		return model.ReadPlan{}, err
	}
	if _, ok := p.resolvers[req]; !ok {
		p.resolvers[req] = e
	}
	return plan, nil
}

func (p *Planner) entry(req model.DataRequest) *entry {
	p.mu.Lock()
	defer p.mu.Unlock()

	e, ok := p.resolvers[req]
	if !ok {
		e = &entry{r: resolver.New(req, p.specs, p.dirs, p.names, p.fs,
			resolver.WithLogger(p.logger),
			resolver.WithMetrics(p.metrics),
		)}
		p.resolvers[req] = e
	}
	return e
}

func (e *entry) clear() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.r.ClearCache()
	e.cached.Store(false)
}

// snapshot copies the map under the lock.
func (p *Planner) snapshot() map[model.DataRequest]*entry {
	p.mu.Lock()
	defer p.mu.Unlock()
	return maps.Clone(p.resolvers)
}

// Invalidate clears the cached plan for req. It reports whether req had a
// resolver.
func (p *Planner) Invalidate(req model.DataRequest) bool {
	p.mu.Lock()
	e, ok := p.resolvers[req]
	p.mu.Unlock()
	if !ok {
		return false
	}
	e.clear()
	p.logger.Debug("plan invalidated", "request", req)
	return true
}

// InvalidateAll clears every cached plan and returns how many resolvers
// were cleared.
func (p *Planner) InvalidateAll() int {
	entries := p.snapshot()
	for _, e := range entries {
		e.clear()
	}
	p.logger.Info("all plans invalidated", "resolvers", len(entries))
	return len(entries)
}

// Cached returns the requests currently holding a plan, sorted by their
// string form.
func (p *Planner) Cached() []model.DataRequest {
	entries := p.snapshot()

	out := make([]model.DataRequest, 0, len(entries))
	for req, e := range entries {
		if e.cached.Load() {
			out = append(out, req)
		}
	}
	slices.SortFunc(out, func(a, b model.DataRequest) int {
		return strings.Compare(a.String(), b.String())
	})
	return out
}

// Stats returns current counters.
func (p *Planner) Stats() Stats {
	entries := p.snapshot()

	s := Stats{
		Resolvers: len(entries),
		Hits:      p.hits.Load(),
		Misses:    p.misses.Load(),
		Failures:  p.failures.Load(),
	}
	for _, e := range entries {
		if e.cached.Load() {
			s.Cached++
		}
	}
	return s
}
