package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/danmuck/modhost/internal/logging"
	"github.com/danmuck/modhost/internal/manifest"
)

var ErrInvalidConfig = errors.New("invalid host config")

// HostConfig configures one modhost process.
type HostConfig struct {
	Name        string
	Addr        string
	Application string
	// PackagesDir is the directory holding one subdirectory per package.
	// Empty serves the embedded sample bundle.
	PackagesDir string
	CorsOrigins []string
	// AdminToken enables the /admin endpoints when set.
	AdminToken string
	LogLevel   string
}

// hostFile is the modhost.toml key mapping.
type hostFile struct {
	Name        string   `toml:"name"`
	Addr        string   `toml:"addr"`
	Application string   `toml:"application"`
	PackagesDir string   `toml:"packages_dir"`
	CorsOrigins []string `toml:"cors_origins"`
	AdminToken  string   `toml:"admin_token"`
	LogLevel    string   `toml:"log_level"`
}

func DefaultHostConfig() HostConfig {
	return HostConfig{
		Name:        "modhost",
		Addr:        ":9000",
		Application: "Demo.App",
		CorsOrigins: []string{"http://localhost:3000"},
		LogLevel:    "info",
	}
}

// LoadHostConfig overlays the keys defined in path onto DefaultHostConfig.
func LoadHostConfig(path string) (HostConfig, error) {
	cfg := DefaultHostConfig()

	var raw hostFile
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return HostConfig{}, fmt.Errorf("config load failed (%s): %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return HostConfig{}, fmt.Errorf("%w: unknown key %q in %s", ErrInvalidConfig, undecoded[0].String(), path)
	}

	if meta.IsDefined("name") {
		cfg.Name = strings.TrimSpace(raw.Name)
	}
	if meta.IsDefined("addr") {
		cfg.Addr = strings.TrimSpace(raw.Addr)
	}
	if meta.IsDefined("application") {
		cfg.Application = strings.TrimSpace(raw.Application)
	}
	if meta.IsDefined("packages_dir") {
		cfg.PackagesDir = strings.TrimSpace(raw.PackagesDir)
	}
	if meta.IsDefined("cors_origins") {
		cfg.CorsOrigins = raw.CorsOrigins
	}
	if meta.IsDefined("admin_token") {
		cfg.AdminToken = strings.TrimSpace(raw.AdminToken)
	}
	if meta.IsDefined("log_level") {
		cfg.LogLevel = strings.TrimSpace(raw.LogLevel)
	}

	if err := ValidateHostConfig(cfg); err != nil {
		return HostConfig{}, err
	}
	return cfg, nil
}

func ValidateHostConfig(cfg HostConfig) error {
	if strings.TrimSpace(cfg.Name) == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidConfig)
	}
	if strings.TrimSpace(cfg.Addr) == "" {
		return fmt.Errorf("%w: missing addr", ErrInvalidConfig)
	}
	if err := manifest.ValidateName(cfg.Application); err != nil {
		return fmt.Errorf("%w: application: %w", ErrInvalidConfig, err)
	}
	if _, ok := logging.ParseLevel(cfg.LogLevel); !ok {
		return fmt.Errorf("%w: unknown log_level %q", ErrInvalidConfig, cfg.LogLevel)
	}
	for i, origin := range cfg.CorsOrigins {
		if strings.TrimSpace(origin) == "" {
			return fmt.Errorf("%w: cors_origins[%d] is empty", ErrInvalidConfig, i)
		}
		if origin != "*" && !strings.HasPrefix(origin, "http://") && !strings.HasPrefix(origin, "https://") {
			return fmt.Errorf("%w: cors_origins[%d] %q must be \"*\" or an http(s) origin", ErrInvalidConfig, i, origin)
		}
	}
	return nil
}
