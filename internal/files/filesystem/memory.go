package filesystem

import (
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// memoryFileInfo implements fs.FileInfo for in-memory files.
type memoryFileInfo struct {
	name    string
	size    int64
	mode    fs.FileMode
	modTime time.Time
	isDir   bool
}

func (f *memoryFileInfo) Name() string       { return f.name }
func (f *memoryFileInfo) Size() int64        { return f.size }
func (f *memoryFileInfo) Mode() fs.FileMode  { return f.mode }
func (f *memoryFileInfo) ModTime() time.Time { return f.modTime }
func (f *memoryFileInfo) IsDir() bool        { return f.isDir }
func (f *memoryFileInfo) Sys() interface{}   { return nil }

// memoryFile implements File for in-memory files.
type memoryFile struct {
	absPath string
	relPath string
	content []byte
	info    fs.FileInfo
}

func (f *memoryFile) Path() string         { return f.absPath }
func (f *memoryFile) RelativePath() string { return f.relPath }
func (f *memoryFile) Info() FileInfo       { return f.info }

func (f *memoryFile) ReadContent() ([]byte, error) {
	return f.content, nil
}

// memoryDirectory implements Directory over a MemoryFileSystem.
type memoryDirectory struct {
	absPath string
	fs      *MemoryFileSystem
}

func (d *memoryDirectory) Path() string { return d.absPath }

func (d *memoryDirectory) Walk(fn func(File, error) error) error {
	var entries []*memoryFile
	prefix := d.absPath + "/"
	for p, f := range d.fs.files {
		if p == d.absPath || strings.HasPrefix(p, prefix) {
			rel, err := filepath.Rel(d.absPath, p)
			if err != nil {
				return fmt.Errorf("failed to get relative path: %w", err)
			}
			entries = append(entries, &memoryFile{
				absPath: p,
				relPath: rel,
				content: f.content,
				info:    f.info,
			})
		}
	}

	// Lexicographic order matches filepath.Walk on the OS filesystem.
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].absPath < entries[j].absPath
	})

	for _, entry := range entries {
		if err := fn(entry, nil); err != nil {
			return err
		}
	}
	return nil
}

// MemoryFileSystem implements Provider for in-memory testing.
type MemoryFileSystem struct {
	files map[string]*memoryFile // absolute slash-path -> file
	root  string
}

// NewMemoryFileSystem creates a new in-memory filesystem rooted at root.
func NewMemoryFileSystem(root string) *MemoryFileSystem {
	root = path.Clean(filepath.ToSlash(root))

	mfs := &MemoryFileSystem{
		files: make(map[string]*memoryFile),
		root:  root,
	}
	mfs.addDir(root)
	return mfs
}

func (m *MemoryFileSystem) addDir(absPath string) {
	if _, ok := m.files[absPath]; ok {
		return
	}
	m.files[absPath] = &memoryFile{
		absPath: absPath,
		relPath: ".",
		info: &memoryFileInfo{
			name:    path.Base(absPath),
			mode:    0755 | fs.ModeDir,
			modTime: time.Now(),
			isDir:   true,
		},
	}
}

// AddFile adds a file at a path relative to the filesystem root, creating
// parent directory entries as needed.
func (m *MemoryFileSystem) AddFile(relPath, content string) {
	relPath = filepath.ToSlash(relPath)
	absPath := path.Join(m.root, relPath)

	// Create intermediate directories.
	for dir := path.Dir(absPath); dir != "/" && dir != "." && dir != m.root; dir = path.Dir(dir) {
		m.addDir(dir)
	}

	m.files[absPath] = &memoryFile{
		absPath: absPath,
		content: []byte(content),
		info: &memoryFileInfo{
			name:    path.Base(absPath),
			size:    int64(len(content)),
			mode:    0644,
			modTime: time.Now(),
		},
	}
}

func (m *MemoryFileSystem) Open(p string) (Directory, error) {
	p = path.Clean(filepath.ToSlash(p))
	f, ok := m.files[p]
	if !ok {
		return nil, fmt.Errorf("failed to access path: %s: %w", p, fs.ErrNotExist)
	}
	if !f.info.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", p)
	}
	return &memoryDirectory{absPath: p, fs: m}, nil
}

func (m *MemoryFileSystem) ReadFile(p string) ([]byte, error) {
	p = path.Clean(filepath.ToSlash(p))
	f, ok := m.files[p]
	if !ok || f.info.IsDir() {
		return nil, fmt.Errorf("failed to read file: %s: %w", p, fs.ErrNotExist)
	}
	return f.content, nil
}

func (m *MemoryFileSystem) Stat(p string) (FileInfo, error) {
	p = path.Clean(filepath.ToSlash(p))
	f, ok := m.files[p]
	if !ok {
		return nil, fmt.Errorf("stat %s: %w", p, fs.ErrNotExist)
	}
	return f.info, nil
}
