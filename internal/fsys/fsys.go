// Package fsys is the filesystem port used by path resolution.
//
// The resolver only calls Exists and BuildPath. Mkdir is for provisioning
// code that prepares directories before files are downloaded.
package fsys

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileSystem is the port the engine consumes.
type FileSystem interface {
	// Exists reports whether path exists.
	Exists(path string) bool

	// BuildPath joins root and parts per host OS conventions.
	BuildPath(root string, parts ...string) string

	// Mkdir creates path and any missing parents. With existOK false an
	// existing path is an error wrapping fs.ErrExist.
	Mkdir(path string, existOK bool) error
}

// OS implements FileSystem on the host filesystem.
type OS struct{}

var _ FileSystem = OS{}

// Exists reports whether path can be stat'ed. Permission errors count as absent.
func (OS) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// BuildPath joins root and parts with filepath.Join.
func (OS) BuildPath(root string, parts ...string) string {
	return filepath.Join(append([]string{root}, parts...)...)
}

// Mkdir creates path with mode 0755.
func (OS) Mkdir(path string, existOK bool) error {
	if !existOK {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("mkdir %s: %w", path, fs.ErrExist)
		}
	}
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", path, err)
	}
	return nil
}
