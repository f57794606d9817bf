package modular

import (
	"errors"
	"io"
	"io/fs"

	"github.com/danmuck/modhost/internal/manifest"
)

var ErrPackageNotFound = errors.New("modular: package not found")

// Environment is the hosting runtime the registry reads from.
type Environment interface {
	// ApplicationName is the name of the package that declares the modules.
	ApplicationName() string
	// LoadPackage returns the named package. A missing package is reported
	// with an error wrapping ErrPackageNotFound.
	LoadPackage(name string) (Package, error)
}

// Package is one loaded application or module bundle.
type Package interface {
	Name() string
	Manifest() manifest.Manifest
	Resources() ResourceStore
}

// ResourceStore serves the embedded resources of a package by namespaced
// identifier ("<package>.<segment>><segment>"). Absent resources report an
// error wrapping fs.ErrNotExist.
type ResourceStore interface {
	Stat(id string) (fs.FileInfo, error)
	Open(id string) (io.ReadCloser, error)
}
