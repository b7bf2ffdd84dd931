package resolver

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/rickgao/futures-data/internal/fsys"
	"github.com/rickgao/futures-data/internal/metrics"
	"github.com/rickgao/futures-data/internal/model"
)

// SpecProvider supplies the parse spec for a source kind.
type SpecProvider interface {
	Resolve(kind model.SourceKind) (model.ParseSpec, error)
}

// DirProvider supplies the data directory for a request.
type DirProvider interface {
	FileDir(req model.DataRequest) (string, error)
}

// NameProvider supplies the file name for a request.
type NameProvider interface {
	FileName(req model.DataRequest) (string, error)
}

// State is the cache state of a Resolver.
type State int

const (
	StateEmpty State = iota
	StateResolved
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateResolved:
		return "resolved"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

type slot struct {
	state State
	plan  model.ReadPlan
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithMetrics records resolutions on m.
func WithMetrics(m *metrics.Resolver) Option {
	return func(r *Resolver) {
		r.metrics = m
	}
}

// Resolver resolves one DataRequest into a cached ReadPlan.
type Resolver struct {
	req   model.DataRequest
	specs SpecProvider
	dirs  DirProvider
	names NameProvider
	fs    fsys.FileSystem

	cache   slot
	logger  *slog.Logger
	metrics *metrics.Resolver
}

// New creates a Resolver in StateEmpty. It performs no I/O.
func New(req model.DataRequest, specs SpecProvider, dirs DirProvider, names NameProvider, fs fsys.FileSystem, opts ...Option) *Resolver {
	r := &Resolver{
		req:    req,
		specs:  specs,
		dirs:   dirs,
		names:  names,
		fs:     fs,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Request returns the request this resolver is bound to.
func (r *Resolver) Request() model.DataRequest { return r.req }

// State returns the current cache state.
func (r *Resolver) State() State { return r.cache.state }

// Resolve returns the read plan for the bound request.
func (r *Resolver) Resolve() (model.ReadPlan, error) {
	if r.cache.state == StateResolved {
		r.metrics.ObserveHit(r.req.Source())
		return r.cache.plan.Clone(), nil
	}

	start := time.Now()
	plan, err := r.resolve()
	r.metrics.ObserveResolve(r.req.Source(), outcome(err), time.Since(start))
	if err != nil {
		return model.ReadPlan{}, err
	}

	r.cache = slot{state: StateResolved, plan: plan}
	r.logger.Debug("read plan resolved", "request", r.req, "path", plan.Path())
	return plan.Clone(), nil
}

func (r *Resolver) resolve() (model.ReadPlan, error) {
	dir, err := r.dirs.FileDir(r.req)
	if err != nil {
		return model.ReadPlan{}, fmt.Errorf("resolve dir for %s: %w", r.req, err)
	}
	name, err := r.names.FileName(r.req)
	if err != nil {
		return model.ReadPlan{}, fmt.Errorf("resolve name for %s: %w", r.req, err)
	}

	path := r.fs.BuildPath(dir, name)
	if !r.fs.Exists(path) {
		r.logger.Debug("data file missing", "request", r.req, "path", path)
		return model.ReadPlan{}, &model.FileNotFoundError{Path: path}
	}

	spec, err := r.specs.Resolve(r.req.Source())
	if err != nil {
		return model.ReadPlan{}, fmt.Errorf("resolve spec for %s: %w", r.req, err)
	}

	plan, err := model.NewReadPlan(path, spec)
	if err != nil {
		return model.ReadPlan{}, fmt.Errorf("build read plan for %s: %w", r.req, err)
	}
	return plan, nil
}

// ClearCache discards any cached plan. The next Resolve reads the
// filesystem again.
func (r *Resolver) ClearCache() {
	r.cache = slot{state: StateEmpty}
	r.metrics.ObserveCacheClear()
}

func outcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeResolved
	case errors.Is(err, model.ErrFileNotFound):
		return metrics.OutcomeNotFound
	default:
		return metrics.OutcomeError
	}
}
