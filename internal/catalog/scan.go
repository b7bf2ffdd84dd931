package catalog

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/rickgao/futures-data/internal/layout"
	"github.com/rickgao/futures-data/internal/model"
)

// Entry is one contract file found on disk.
type Entry struct {
	Request model.DataRequest `json:"request"`
	Path    string            `json:"path"`
	Size    int64             `json:"size"`
	ModTime time.Time         `json:"mod_time"`
}

// Pattern matches every candidate data file below the root.
func Pattern() string {
	subs := make([]string, 0, 2)
	for _, sub := range layout.SubRoots() {
		subs = append(subs, sub)
	}
	slices.Sort(subs)
	return "{" + strings.Join(subs, ",") + "}/*/*.csv"
}

// ScanOption configures Scan.
type ScanOption func(*scanner)

// WithLogger sets the logger used to report skipped files.
func WithLogger(logger *slog.Logger) ScanOption {
	return func(s *scanner) {
		if logger != nil {
			s.logger = logger
		}
	}
}

type scanner struct {
	logger *slog.Logger
	kinds  map[string]model.SourceKind
}

// Scan lists the contract files under root, sorted by path. Files whose
// names do not decode are skipped.
func Scan(root string, refYear int, opts ...ScanOption) ([]Entry, error) {
	entries, err := ScanFS(os.DirFS(root), refYear, opts...)
	if err != nil {
		return nil, err
	}
	for i := range entries {
		entries[i].Path = filepath.Join(root, filepath.FromSlash(entries[i].Path))
	}
	return entries, nil
}

// ScanFS is Scan over an fs.FS. Entry paths are slash-separated and
// relative to fsys.
func ScanFS(fsys fs.FS, refYear int, opts ...ScanOption) ([]Entry, error) {
	s := &scanner{logger: slog.Default(), kinds: make(map[string]model.SourceKind)}
	for kind, sub := range layout.SubRoots() {
		s.kinds[sub] = kind
	}
	for _, opt := range opts {
		opt(s)
	}

	matches, err := doublestar.Glob(fsys, Pattern())
	if err != nil {
		return nil, fmt.Errorf("glob data files: %w", err)
	}

	entries := make([]Entry, 0, len(matches))
	for _, m := range matches {
		e, err := s.entry(fsys, m, refYear)
		if err != nil {
			s.logger.Debug("skipping data file", "path", m, "error", err)
			continue
		}
		entries = append(entries, e)
	}

	slices.SortFunc(entries, func(a, b Entry) int {
		return strings.Compare(a.Path, b.Path)
	})
	return entries, nil
}

func (s *scanner) entry(fsys fs.FS, p string, refYear int) (Entry, error) {
	parts := strings.Split(p, "/")
	if len(parts) != 3 {
		return Entry{}, fmt.Errorf("unexpected depth %d", len(parts))
	}
	kind, ok := s.kinds[parts[0]]
	if !ok {
		return Entry{}, &model.UnregisteredSourceError{Kind: model.SourceKind(parts[0]), Component: "file dir"}
	}

	req, err := ParseFileName(kind, parts[1], parts[2], refYear)
	if err != nil {
		return Entry{}, err
	}

	info, err := fs.Stat(fsys, p)
	if err != nil {
		return Entry{}, fmt.Errorf("stat: %w", err)
	}
	if info.IsDir() {
		return Entry{}, fmt.Errorf("%s is a directory", path.Base(p))
	}

	return Entry{Request: req, Path: p, Size: info.Size(), ModTime: info.ModTime()}, nil
}

// Requests returns the requests of entries in order.
func Requests(entries []Entry) []model.DataRequest {
	out := make([]model.DataRequest, len(entries))
	for i, e := range entries {
		out[i] = e.Request
	}
	return out
}
