package modular

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/danmuck/modhost/internal/manifest"
	"github.com/rs/zerolog/log"
)

const (
	ContentPath = "wwwroot"
	ContentRoot = ContentPath + "/"

	resourceSeparator = ">"
)

// Module is one pluggable unit. The empty-named Module is the "no such
// module" sentinel returned for undeclared names.
type Module struct {
	Name    string
	SubPath string
	Root    string
	Package Package
	Assets  []manifest.Asset
	Info    manifest.ModuleInfo

	assetPaths    map[string]struct{}
	baseNamespace string
	lastModified  time.Time
	obs           Observer

	// files maps requested subpath -> *File for declared subpaths only.
	files   sync.Map
	filesMu sync.Mutex
	cached  atomic.Int64
}

func emptyModule(now time.Time) *Module {
	return &Module{
		assetPaths:    map[string]struct{}{},
		baseNamespace: ".",
		lastModified:  now,
		obs:           noopObserver{},
	}
}

func newModule(name string, pkg Package, now time.Time, obs Observer) *Module {
	m := pkg.Manifest()
	subPath := ModulesRoot + name
	root := subPath + "/"

	assets := m.AssetList()
	assetPaths := make(map[string]struct{}, len(assets))
	for _, a := range assets {
		if a.ModulePath == "" {
			continue
		}
		p := a.ModulePath
		if !strings.HasPrefix(p, ModulesRoot) {
			p = root + strings.TrimPrefix(p, "/")
		}
		assetPaths[p] = struct{}{}
	}

	info := manifest.ModuleInfo{Name: name}
	if m.Module != nil {
		info = *m.Module
	}
	info.Features = append(append([]manifest.FeatureInfo(nil), info.Features...), m.Features...)
	info.ID = name

	return &Module{
		Name:          name,
		SubPath:       subPath,
		Root:          root,
		Package:       pkg,
		Assets:        assets,
		Info:          info,
		assetPaths:    assetPaths,
		baseNamespace: name + ".",
		lastModified:  now,
		obs:           obs,
	}
}

// Exists is false for the sentinel module.
func (m *Module) Exists() bool { return m.Name != "" }

// LastModified is fixed at construction and shared by every resolved file.
func (m *Module) LastModified() time.Time { return m.lastModified }

// HasAsset reports whether the full module path (Root + subpath) is declared.
func (m *Module) HasAsset(modulePath string) bool {
	_, ok := m.assetPaths[modulePath]
	return ok
}

// AssetPaths returns the declared module paths.
func (m *Module) AssetPaths() []string {
	out := make([]string, 0, len(m.assetPaths))
	for p := range m.assetPaths {
		out = append(out, p)
	}
	return out
}

// CachedFiles is the number of subpaths with a cached lookup result.
func (m *Module) CachedFiles() int {
	return int(m.cached.Load())
}

// File resolves subpath against the module's embedded resources. Results for
// declared subpaths are cached, including not-found; undeclared subpaths
// always get a fresh not-found and never touch the cache.
func (m *Module) File(subpath string) (*File, error) {
	if f, ok := m.files.Load(subpath); ok {
		m.obs.FileLookup(m.Name, LookupHit)
		return f.(*File), nil
	}

	if !m.HasAsset(m.Root + subpath) {
		m.obs.FileLookup(m.Name, LookupUndeclared)
		return notFound(subpath), nil
	}

	m.filesMu.Lock()
	defer m.filesMu.Unlock()

	if f, ok := m.files.Load(subpath); ok {
		m.obs.FileLookup(m.Name, LookupHit)
		return f.(*File), nil
	}

	resourceID := m.baseNamespace + strings.ReplaceAll(subpath, "/", resourceSeparator)
	fileName := path.Base(subpath)

	store := m.Package.Resources()
	info, err := store.Stat(resourceID)
	if errors.Is(err, fs.ErrNotExist) {
		f := notFound(fileName)
		m.store(subpath, f)
		m.obs.FileLookup(m.Name, LookupAbsent)
		log.Debug().
			Str("module", m.Name).
			Str("subpath", subpath).
			Str("resource", resourceID).
			Msg("declared asset has no embedded resource")
		return f, nil
	}
	if err != nil {
		return nil, fmt.Errorf("module %s: stat %s: %w", m.Name, resourceID, err)
	}

	f := &File{
		name:       fileName,
		resourceID: resourceID,
		size:       info.Size(),
		modTime:    m.lastModified,
		exists:     true,
		store:      store,
	}
	m.store(subpath, f)
	m.obs.FileLookup(m.Name, LookupResolved)
	return f, nil
}

func (m *Module) store(subpath string, f *File) {
	m.files.Store(subpath, f)
	m.cached.Add(1)
}
