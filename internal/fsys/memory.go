package fsys

import (
	"fmt"
	"io/fs"
	"path"
	"sync"
)

// Memory is an in-memory FileSystem with slash-separated paths. It counts
// Exists calls so callers can observe caching.
type Memory struct {
	mu     sync.Mutex
	files  map[string]struct{}
	dirs   map[string]struct{}
	exists int
}

var _ FileSystem = (*Memory)(nil)

// NewMemory returns a Memory holding the given files.
func NewMemory(files ...string) *Memory {
	m := &Memory{
		files: make(map[string]struct{}),
		dirs:  make(map[string]struct{}),
	}
	for _, f := range files {
		m.AddFile(f)
	}
	return m
}

// AddFile records a file and its parent directories.
func (m *Memory) AddFile(p string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p = path.Clean(p)
	m.files[p] = struct{}{}
	m.addDirsLocked(path.Dir(p))
}

// RemoveFile forgets a file.
func (m *Memory) RemoveFile(p string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.files, path.Clean(p))
}

// ExistsCalls returns how many times Exists has been called.
func (m *Memory) ExistsCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.exists
}

func (m *Memory) Exists(p string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.exists++
	p = path.Clean(p)
	_, isFile := m.files[p]
	_, isDir := m.dirs[p]
	return isFile || isDir
}

func (m *Memory) BuildPath(root string, parts ...string) string {
	return path.Join(append([]string{root}, parts...)...)
}

func (m *Memory) Mkdir(p string, existOK bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	p = path.Clean(p)
	if _, ok := m.dirs[p]; ok && !existOK {
		return fmt.Errorf("mkdir %s: %w", p, fs.ErrExist)
	}
	if _, ok := m.files[p]; ok {
		return fmt.Errorf("mkdir %s: %w", p, fs.ErrExist)
	}
	m.addDirsLocked(p)
	return nil
}

func (m *Memory) addDirsLocked(dir string) {
	for dir != "." && dir != "/" {
		m.dirs[dir] = struct{}{}
		dir = path.Dir(dir)
	}
}
