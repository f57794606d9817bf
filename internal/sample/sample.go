// Package sample bundles a small application with two modules. modhost
// serves it when no packages directory is configured; tests of the HTTP
// layer use it too.
package sample

import (
	"embed"
	"io/fs"

	"github.com/danmuck/modhost/internal/pkgfs"
)

// ApplicationName is the application package inside Packages.
const ApplicationName = "Demo.App"

//go:embed packages
var packages embed.FS

// Packages returns the package tree rooted at the package directories.
func Packages() fs.FS {
	sub, err := fs.Sub(packages, "packages")
	if err != nil {
		panic(err)
	}
	return sub
}

// Environment serves the bundled packages.
func Environment() *pkgfs.Environment {
	return pkgfs.New(Packages(), ApplicationName)
}
