package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

var ErrInvalidManifest = errors.New("invalid manifest")

// FileNames lists the manifest files probed in a package root, in order.
var FileNames = []string{"module.toml", "module.yaml", "module.yml"}

// FeatureInfo describes one capability a module contributes to the host.
type FeatureInfo struct {
	ID           string   `toml:"id" yaml:"id" json:"id"`
	Name         string   `toml:"name" yaml:"name" json:"name"`
	Description  string   `toml:"description" yaml:"description" json:"description,omitempty"`
	Category     string   `toml:"category" yaml:"category" json:"category,omitempty"`
	Priority     int      `toml:"priority" yaml:"priority" json:"priority,omitempty"`
	Dependencies []string `toml:"dependencies" yaml:"dependencies" json:"dependencies,omitempty"`
}

// ModuleInfo is the module-level descriptor. Features is filled at module
// construction from the package's feature list and is not read from the
// module section itself.
type ModuleInfo struct {
	ID          string        `toml:"id" yaml:"id" json:"id"`
	Name        string        `toml:"name" yaml:"name" json:"name"`
	Description string        `toml:"description" yaml:"description" json:"description,omitempty"`
	Author      string        `toml:"author" yaml:"author" json:"author,omitempty"`
	Website     string        `toml:"website" yaml:"website" json:"website,omitempty"`
	Version     string        `toml:"version" yaml:"version" json:"version,omitempty"`
	Category    string        `toml:"category" yaml:"category" json:"category,omitempty"`
	Tags        []string      `toml:"tags" yaml:"tags" json:"tags,omitempty"`
	Features    []FeatureInfo `toml:"-" yaml:"-" json:"features"`
}

// Manifest is the declarative metadata shipped with a package. An
// application package sets Modules; a module package sets Module, Features
// and Assets. Both lists use the semicolon-delimited wire format.
type Manifest struct {
	Modules  string        `toml:"modules" yaml:"modules"`
	Assets   string        `toml:"assets" yaml:"assets"`
	Module   *ModuleInfo   `toml:"module" yaml:"module"`
	Features []FeatureInfo `toml:"features" yaml:"features"`
}

// ModuleNames returns the declared module names in declaration order.
func (m Manifest) ModuleNames() []string {
	return SplitList(m.Modules)
}

// AssetList returns the parsed asset declarations.
func (m Manifest) AssetList() []Asset {
	return ParseAssets(m.Assets)
}

// Decode parses manifest bytes, choosing the format from the file name.
func Decode(name string, data []byte) (Manifest, error) {
	var m Manifest
	switch strings.ToLower(path.Ext(name)) {
	case ".toml":
		if _, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&m); err != nil {
			return Manifest{}, fmt.Errorf("%w: %s: %v", ErrInvalidManifest, name, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &m); err != nil {
			return Manifest{}, fmt.Errorf("%w: %s: %v", ErrInvalidManifest, name, err)
		}
	default:
		return Manifest{}, fmt.Errorf("%w: unsupported manifest format %q", ErrInvalidManifest, name)
	}
	return m, nil
}

// Load reads the first manifest file found in dir. A package without a
// manifest has no declarations and yields the zero Manifest.
func Load(fsys fs.FS, dir string) (Manifest, string, error) {
	for _, name := range FileNames {
		p := path.Join(dir, name)
		data, err := fs.ReadFile(fsys, p)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return Manifest{}, "", fmt.Errorf("manifest read failed (%s): %w", p, err)
		}
		m, err := Decode(p, data)
		if err != nil {
			return Manifest{}, "", err
		}
		return m, p, nil
	}
	return Manifest{}, "", nil
}
