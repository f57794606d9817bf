package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/danmuck/modhost/internal/manifest"
	"github.com/danmuck/modhost/internal/testutil/testlog"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "modhost.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadHostConfigDefaultsAndOverrides(t *testing.T) {
	testlog.Start(t)
	path := writeConfig(t, `
addr = "127.0.0.1:9443"
application = "Acme.Cms"
packages_dir = " /srv/packages "
admin_token = "tok"
log_level = "debug"
`)
	cfg, err := LoadHostConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Name != "modhost" {
		t.Fatalf("expected default name, got %q", cfg.Name)
	}
	if cfg.Addr != "127.0.0.1:9443" || cfg.Application != "Acme.Cms" {
		t.Fatalf("unexpected overrides: %+v", cfg)
	}
	if cfg.PackagesDir != "/srv/packages" || cfg.AdminToken != "tok" || cfg.LogLevel != "debug" {
		t.Fatalf("unexpected overrides: %+v", cfg)
	}
	if len(cfg.CorsOrigins) != 1 || cfg.CorsOrigins[0] != "http://localhost:3000" {
		t.Fatalf("expected default cors origins, got %v", cfg.CorsOrigins)
	}
}

func TestLoadHostConfigRejectsInvalid(t *testing.T) {
	testlog.Start(t)
	cases := []string{
		`addr = ""`,
		`application = "../escape"`,
		`log_level = "loud"`,
		`cors_origins = [""]`,
		`cors_origins = ["localhost:3000"]`,
		`unknown_key = 1`,
	}
	for _, content := range cases {
		if _, err := LoadHostConfig(writeConfig(t, content)); !errors.Is(err, ErrInvalidConfig) {
			t.Fatalf("expected ErrInvalidConfig for %q, got %v", content, err)
		}
	}
	if _, err := LoadHostConfig(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatalf("expected missing file error")
	}
}

func TestTemplatesLoad(t *testing.T) {
	testlog.Start(t)
	dir := t.TempDir()
	hostPath := filepath.Join(dir, "modhost.toml")
	if err := WriteTemplate(hostPath, "host", false); err != nil {
		t.Fatalf("write host template: %v", err)
	}
	if err := WriteTemplate(hostPath, "host", false); err == nil {
		t.Fatalf("expected existing config to be protected")
	}
	if _, err := LoadHostConfig(hostPath); err != nil {
		t.Fatalf("host template must load: %v", err)
	}

	tmpl, err := Template("module")
	if err != nil {
		t.Fatalf("module template: %v", err)
	}
	m, err := manifest.Decode("module.toml", []byte(tmpl))
	if err != nil {
		t.Fatalf("module template must decode: %v", err)
	}
	if malformed, err := m.Validate(); err != nil || malformed != 0 {
		t.Fatalf("module template must validate: malformed=%d err=%v", malformed, err)
	}
	if _, err := Template("mirage"); err == nil {
		t.Fatalf("expected unknown kind error")
	}
}
