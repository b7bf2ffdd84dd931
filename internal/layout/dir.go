package layout

import (
	"fmt"

	"github.com/rickgao/futures-data/internal/fsys"
	"github.com/rickgao/futures-data/internal/model"
)

// Sub-roots under the data root, one per source kind.
const (
	QuikSubRoot  = "quik_data"
	DailySubRoot = "daily_data"
)

// SubRoots maps each built-in source kind to its directory under the root.
func SubRoots() map[model.SourceKind]string {
	return map[model.SourceKind]string{
		model.SourceQuik:  QuikSubRoot,
		model.SourceDaily: DailySubRoot,
	}
}

// Dirs computes per-request data directories under a root.
type Dirs struct {
	fs       fsys.FileSystem
	root     string
	subRoots map[model.SourceKind]string
}

// NewDirs returns a Dirs rooted at root.
func NewDirs(fs fsys.FileSystem, root string) *Dirs {
	return &Dirs{fs: fs, root: root, subRoots: SubRoots()}
}

// Root returns the data root.
func (d *Dirs) Root() string { return d.root }

// FileDir returns root/{sub-root}/{symbol}. It never creates directories.
func (d *Dirs) FileDir(req model.DataRequest) (string, error) {
	sub, ok := d.subRoots[req.Source()]
	if !ok {
		return "", &model.UnregisteredSourceError{Kind: req.Source(), Component: "file dir"}
	}
	return d.fs.BuildPath(d.root, sub, req.Symbol().String()), nil
}

// Provision creates the data directory for req and returns it. An existing
// directory is not an error.
func Provision(d *Dirs, fs fsys.FileSystem, req model.DataRequest) (string, error) {
	dir, err := d.FileDir(req)
	if err != nil {
		return "", err
	}
	if err := fs.Mkdir(dir, true); err != nil {
		return "", fmt.Errorf("provision %s: %w", req, err)
	}
	return dir, nil
}
