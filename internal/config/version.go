package config

import (
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
)

const fallbackVersion = "0.1.0"

// GetVersion returns the service version: APP_VERSION when set, then a
// VERSION file in the working directory or its parent, then the module
// version stamped into the binary.
func GetVersion() string {
	if envVersion := os.Getenv("APP_VERSION"); envVersion != "" {
		return envVersion
	}
	if v := versionFromFile("."); v != "" {
		return v
	}
	if v := versionFromFile(".."); v != "" {
		return v
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		v := strings.TrimPrefix(info.Main.Version, "v")
		if v != "" && v != "(devel)" {
			return v
		}
	}
	return fallbackVersion
}

func versionFromFile(dir string) string {
	content, err := os.ReadFile(filepath.Join(dir, "VERSION"))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(content))
}
