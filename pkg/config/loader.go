package config

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/githubnext/pkgvet/pkg/constants"
	"github.com/githubnext/pkgvet/pkg/logger"
)

// Loader resolves the effective configuration: defaults, then the project
// file, then an explicit file.
type Loader struct {
	logger *slog.Logger
}

// NewLoader creates a loader. A nil logger logs through the debug logger.
func NewLoader(l *slog.Logger) *Loader {
	if l == nil {
		l = logger.NewSlogLogger("config:loader")
	}
	return &Loader{logger: l}
}

// Load returns the merged, validated configuration. When explicitPath is
// set it must exist. Otherwise pkgvet.yaml is searched for from startDir up.
func (l *Loader) Load(startDir, explicitPath string) (*Config, error) {
	cfg := DefaultConfig()

	path := explicitPath
	if path == "" {
		path = FindProjectConfig(startDir)
	}
	if path != "" {
		fileCfg, err := LoadFromFile(path)
		if err != nil {
			if explicitPath != "" || !os.IsNotExist(err) {
				return nil, err
			}
		} else {
			l.logger.Debug("Loaded project config", slog.String("path", path))
			cfg.Merge(fileCfg)
		}
	} else {
		l.logger.Debug("No project config found", slog.String("start", startDir))
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FindProjectConfig searches dir and its parents for pkgvet.yaml and returns
// its path, or "".
func FindProjectConfig(dir string) string {
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return ""
		}
		dir = cwd
	}
	dir, err := filepath.Abs(dir)
	if err != nil {
		return ""
	}

	for {
		candidate := filepath.Join(dir, constants.ProjectConfigFilename)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}
