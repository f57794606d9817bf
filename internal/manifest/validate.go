package manifest

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidName = errors.New("invalid package name")

// ValidateName checks a module or application name. Names are dotted
// identifiers such as "Demo.Blog"; separators may not lead, trail or repeat.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidName)
	}
	if !isValidName(name) {
		return fmt.Errorf("%w: invalid name format %q", ErrInvalidName, name)
	}
	return nil
}

// Validate checks declared names and features. Malformed asset entries are
// tolerated and only counted, since they never match a lookup.
func (m Manifest) Validate() (malformedAssets int, err error) {
	for _, name := range m.ModuleNames() {
		if err := ValidateName(name); err != nil {
			return 0, fmt.Errorf("%w: modules: %w", ErrInvalidManifest, err)
		}
	}
	seen := make(map[string]struct{}, len(m.Features))
	for i, f := range m.Features {
		id := strings.TrimSpace(f.ID)
		if id == "" {
			return 0, fmt.Errorf("%w: features[%d]: id is required", ErrInvalidManifest, i)
		}
		if _, ok := seen[id]; ok {
			return 0, fmt.Errorf("%w: features[%d]: duplicate id %q", ErrInvalidManifest, i, id)
		}
		seen[id] = struct{}{}
	}
	for _, a := range m.AssetList() {
		if a.IsZero() {
			malformedAssets++
		}
	}
	return malformedAssets, nil
}

func isValidName(name string) bool {
	lastSep := false
	for i := 0; i < len(name); i++ {
		c := name[i]
		isAlpha := (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
		isDigit := c >= '0' && c <= '9'
		isSep := c == '.' || c == '-' || c == '_'
		if !(isAlpha || isDigit || isSep) {
			return false
		}
		if i == 0 || i == len(name)-1 {
			if isSep {
				return false
			}
		}
		if isSep && lastSep {
			return false
		}
		lastSep = isSep
	}
	return true
}
