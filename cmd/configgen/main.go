package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/danmuck/modhost/internal/config"
	"github.com/danmuck/modhost/internal/manifest"
)

func main() {
	kind := flag.String("kind", "host", "config kind: host|module")
	output := flag.String("output", "", "output path for config template")
	validate := flag.Bool("validate", false, "validate an existing config file")
	input := flag.String("input", "", "config path for validation (defaults to per-kind path)")
	force := flag.Bool("force", false, "overwrite existing config file")
	flag.Parse()

	if *validate {
		path := *input
		if path == "" {
			path = defaultPath(*kind)
		}

		switch *kind {
		case "host":
			if _, err := config.LoadHostConfig(path); err != nil {
				log.Fatal(err)
			}
		case "module":
			if err := validateManifest(path); err != nil {
				log.Fatal(err)
			}
		default:
			log.Fatalf("unknown kind: %s", *kind)
		}
		log.Printf("Validated %s config at %s", *kind, path)
		return
	}

	target := *output
	if target == "" {
		target = defaultPath(*kind)
	}

	if err := config.WriteTemplate(target, *kind, *force); err != nil {
		log.Fatal(err)
	}
	log.Printf("Wrote %s config template to %s", *kind, target)
}

func defaultPath(kind string) string {
	switch kind {
	case "host":
		return "modhost.toml"
	case "module":
		return "module.toml"
	default:
		log.Fatalf("unknown kind: %s", kind)
		return ""
	}
}

func validateManifest(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config load failed (%s): %w", path, err)
	}
	m, err := manifest.Decode(path, data)
	if err != nil {
		return err
	}
	malformed, err := m.Validate()
	if err != nil {
		return err
	}
	if malformed > 0 {
		log.Printf("warning: %d asset declaration(s) in %s lack a '|' separator and will never match", malformed, path)
	}
	return nil
}
