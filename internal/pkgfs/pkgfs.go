// Package pkgfs serves packages from an fs.FS tree: one directory per
// package, holding an optional manifest and the package's resources.
//
//	<root>/Demo.App/module.toml
//	<root>/Demo.Blog/module.toml
//	<root>/Demo.Blog/wwwroot/site.css   -> resource "Demo.Blog.wwwroot>site.css"
//
// The tree may come from os.DirFS or from an embed.FS.
package pkgfs

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/danmuck/modhost/internal/manifest"
	"github.com/danmuck/modhost/internal/modular"
)

// Environment implements modular.Environment over an fs.FS.
type Environment struct {
	application string
	fsys        fs.FS
}

var _ modular.Environment = (*Environment)(nil)

func New(fsys fs.FS, application string) *Environment {
	return &Environment{application: application, fsys: fsys}
}

// NewDir serves packages from a directory on disk.
func NewDir(dir, application string) *Environment {
	return New(os.DirFS(dir), application)
}

func (e *Environment) ApplicationName() string {
	return e.application
}

func (e *Environment) LoadPackage(name string) (modular.Package, error) {
	if err := manifest.ValidateName(name); err != nil {
		return nil, fmt.Errorf("%w: %w", modular.ErrPackageNotFound, err)
	}
	info, err := fs.Stat(e.fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", modular.ErrPackageNotFound, name)
		}
		return nil, fmt.Errorf("package %s: %w", name, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", modular.ErrPackageNotFound, name)
	}

	m, _, err := manifest.Load(e.fsys, name)
	if err != nil {
		return nil, fmt.Errorf("package %s: %w", name, err)
	}
	sub, err := fs.Sub(e.fsys, name)
	if err != nil {
		return nil, fmt.Errorf("package %s: %w", name, err)
	}
	return &Package{
		name:      name,
		manifest:  m,
		resources: &Resources{prefix: name + ".", fsys: sub},
	}, nil
}

// Package is one directory of the tree.
type Package struct {
	name      string
	manifest  manifest.Manifest
	resources *Resources
}

func (p *Package) Name() string                     { return p.name }
func (p *Package) Manifest() manifest.Manifest      { return p.manifest }
func (p *Package) Resources() modular.ResourceStore { return p.resources }

// Resources maps namespaced resource ids onto paths under a package root.
type Resources struct {
	prefix string
	fsys   fs.FS
}

// Path converts a resource id into a slash path inside the package.
func (r *Resources) Path(id string) (string, bool) {
	rest, ok := strings.CutPrefix(id, r.prefix)
	if !ok || rest == "" {
		return "", false
	}
	p := strings.ReplaceAll(rest, ">", "/")
	if !fs.ValidPath(p) {
		return "", false
	}
	return p, true
}

func (r *Resources) Stat(id string) (fs.FileInfo, error) {
	p, ok := r.Path(id)
	if !ok {
		return nil, &fs.PathError{Op: "stat", Path: id, Err: fs.ErrNotExist}
	}
	info, err := fs.Stat(r.fsys, p)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, &fs.PathError{Op: "stat", Path: id, Err: fs.ErrNotExist}
	}
	return info, nil
}

func (r *Resources) Open(id string) (io.ReadCloser, error) {
	p, ok := r.Path(id)
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: id, Err: fs.ErrNotExist}
	}
	return r.fsys.Open(p)
}
