package main

import (
	"fmt"
	"strings"

	"github.com/danmuck/modhost/internal/config"
	"github.com/danmuck/modhost/internal/logging"
	"github.com/danmuck/modhost/internal/modular"
	"github.com/danmuck/modhost/internal/observability"
	"github.com/danmuck/modhost/internal/pkgfs"
	"github.com/danmuck/modhost/internal/sample"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	configPath  string
	packagesDir string
	application string
	logLevel    string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "modhost",
		Short: "Serve module assets for a modular application",
		Long: `modhost loads an application package, resolves the modules it declares
and serves each module's embedded assets under /.Modules/<module>/<path>.

Without --packages (or packages_dir in the config file) the bundled
Demo.App sample is served.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "host config file (TOML)")
	cmd.PersistentFlags().StringVar(&opts.packagesDir, "packages", "", "directory holding one subdirectory per package")
	cmd.PersistentFlags().StringVar(&opts.application, "application", "", "application package name")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level (trace|debug|info|warn|error|off)")

	cmd.AddCommand(newServeCmd(opts))
	cmd.AddCommand(newModulesCmd(opts))
	cmd.AddCommand(newCatCmd(opts))
	return cmd
}

// hostConfig resolves the effective config: defaults, then file, then flags.
func (o *rootOptions) hostConfig() (config.HostConfig, error) {
	cfg := config.DefaultHostConfig()
	if o.configPath != "" {
		loaded, err := config.LoadHostConfig(o.configPath)
		if err != nil {
			return config.HostConfig{}, err
		}
		cfg = loaded
	}
	if v := strings.TrimSpace(o.packagesDir); v != "" {
		cfg.PackagesDir = v
	}
	if v := strings.TrimSpace(o.application); v != "" {
		cfg.Application = v
	}
	if v := strings.TrimSpace(o.logLevel); v != "" {
		cfg.LogLevel = v
	}
	if err := config.ValidateHostConfig(cfg); err != nil {
		return config.HostConfig{}, err
	}
	if !logging.SetLevel(cfg.LogLevel) {
		return config.HostConfig{}, fmt.Errorf("unknown log level %q", cfg.LogLevel)
	}
	return cfg, nil
}

func environment(cfg config.HostConfig) modular.Environment {
	if cfg.PackagesDir == "" {
		return pkgfs.New(sample.Packages(), cfg.Application)
	}
	return pkgfs.NewDir(cfg.PackagesDir, cfg.Application)
}

func (o *rootOptions) registry() (config.HostConfig, *modular.Registry, error) {
	cfg, err := o.hostConfig()
	if err != nil {
		return config.HostConfig{}, nil, err
	}
	reg := modular.NewRegistry(environment(cfg), modular.WithObserver(observability.RegistryObserver{}))
	return cfg, reg, nil
}
