package modular

import (
	"fmt"
	"io"
	"io/fs"
	"time"
)

// File is the result of a module file lookup: either an embedded resource
// or a not-found marker. It satisfies fs.FileInfo in both cases.
type File struct {
	name       string
	resourceID string
	size       int64
	modTime    time.Time
	exists     bool
	store      ResourceStore
}

func notFound(name string) *File {
	return &File{name: name}
}

func (f *File) Name() string       { return f.name }
func (f *File) Size() int64        { return f.size }
func (f *File) ModTime() time.Time { return f.modTime }
func (f *File) IsDir() bool        { return false }
func (f *File) Sys() any           { return nil }

func (f *File) Mode() fs.FileMode {
	if !f.exists {
		return 0
	}
	return 0o444
}

// Exists is false for not-found results.
func (f *File) Exists() bool { return f.exists }

// ResourceID is the namespaced identifier the file was resolved from.
func (f *File) ResourceID() string { return f.resourceID }

// Open streams the resource content. Store errors propagate unchanged.
func (f *File) Open() (io.ReadCloser, error) {
	if !f.exists {
		return nil, fmt.Errorf("open %s: %w", f.name, fs.ErrNotExist)
	}
	return f.store.Open(f.resourceID)
}

var _ fs.FileInfo = (*File)(nil)
