package manifest

import "strings"

const (
	assetSeparator = "|"
	listSeparator  = ";"
)

// Asset maps a path inside a module's asset namespace to the project path it
// was built from.
type Asset struct {
	ModulePath  string `json:"module_path"`
	ProjectPath string `json:"project_path"`
}

// ParseAsset reads one "module-path|project-path" declaration. A declaration
// without a separator yields an empty Asset, which never matches a lookup.
func ParseAsset(raw string) Asset {
	raw = strings.ReplaceAll(raw, `\`, "/")
	modulePath, projectPath, ok := strings.Cut(raw, assetSeparator)
	if !ok {
		return Asset{}
	}
	return Asset{ModulePath: modulePath, ProjectPath: projectPath}
}

// ParseAssets parses a semicolon-delimited asset list. Empty entries are dropped.
func ParseAssets(raw string) []Asset {
	entries := SplitList(raw)
	assets := make([]Asset, 0, len(entries))
	for _, entry := range entries {
		assets = append(assets, ParseAsset(entry))
	}
	return assets
}

// SplitList splits a semicolon-delimited declaration, dropping empty entries.
func SplitList(raw string) []string {
	parts := strings.Split(raw, listSeparator)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

// IsZero reports whether the declaration was malformed.
func (a Asset) IsZero() bool {
	return a.ModulePath == "" && a.ProjectPath == ""
}
