package config

import (
	"fmt"
	"os"
	"strings"
)

func Template(kind string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "host":
		return hostTemplate, nil
	case "module":
		return moduleTemplate, nil
	default:
		return "", fmt.Errorf("unknown config kind: %s", kind)
	}
}

func WriteTemplate(path, kind string, overwrite bool) error {
	template, err := Template(kind)
	if err != nil {
		return err
	}
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists: %s", path)
		}
	}
	return os.WriteFile(path, []byte(template), 0o600)
}

const hostTemplate = `name = "modhost"
addr = ":9000"
application = "Demo.App"
# packages_dir = "./packages"
cors_origins = ["http://localhost:3000"]
admin_token = "change-me"
log_level = "info"
`

const moduleTemplate = `assets = ".Modules/My.Module/wwwroot/site.css|Modules/My.Module/Assets/site.css"

[module]
name = "My Module"
description = ""
version = "0.1.0"

[[features]]
id = "My.Module"
name = "My Module"
`
