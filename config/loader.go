package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

const (
	// ProjectConfigFile is the name of the project-level config file
	ProjectConfigFile = "semowl.yaml"
	// UserConfigDir is the directory for user-level config
	UserConfigDir = ".config/semowl"
	// UserConfigFile is the name of the user-level config file
	UserConfigFile = "config.yaml"
)

// Environment variables applied after the config files.
const (
	EnvNATSURL     = "SEMOWL_NATS_URL"
	EnvStoragePath = "SEMOWL_STORAGE_PATH"
)

// Loader handles configuration loading with layered precedence
type Loader struct {
	logger *slog.Logger
	// workDir is where the project config search starts; empty means the
	// process working directory.
	workDir string
	// home overrides the user home directory when set.
	home string
}

// NewLoader creates a new configuration loader
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger}
}

// WithDirs returns a copy of the loader that searches for the project
// config from workDir and reads the user config below home.
func (l *Loader) WithDirs(workDir, home string) *Loader {
	c := *l
	c.workDir = workDir
	c.home = home
	return &c
}

// Load loads configuration with layered precedence:
// 1. Default config
// 2. User config (~/.config/semowl/config.yaml)
// 3. Project config (semowl.yaml in current or parent directories)
// 4. Environment variables
func (l *Loader) Load() (*Config, error) {
	config := DefaultConfig()

	userConfigPath := l.userConfigPath()
	if userConfigPath != "" {
		if userConfig, err := loadLayer(userConfigPath); err == nil {
			l.logger.Debug("Loaded user config", slog.String("path", userConfigPath))
			config.Merge(userConfig)
		} else if !errors.Is(err, fs.ErrNotExist) {
			l.logger.Warn("Failed to load user config", slog.String("path", userConfigPath), slog.String("error", err.Error()))
		}
	}

	projectConfigPath := l.findProjectConfig()
	if projectConfigPath != "" {
		if projectConfig, err := loadLayer(projectConfigPath); err == nil {
			l.logger.Debug("Loaded project config", slog.String("path", projectConfigPath))
			config.Merge(projectConfig)
		} else {
			l.logger.Warn("Failed to load project config", slog.String("path", projectConfigPath), slog.String("error", err.Error()))
		}
	} else {
		l.logger.Debug("No project config found")
	}

	l.applyEnv(config)

	if config.Watch.Root == "" {
		if gitRoot := l.detectGitRoot(); gitRoot != "" {
			config.Watch.Root = gitRoot
			l.logger.Debug("Auto-detected git root", slog.String("path", gitRoot))
		} else if dir := l.startDir(); dir != "" {
			config.Watch.Root = dir
			l.logger.Debug("Using current directory as watch root", slog.String("path", dir))
		}
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (l *Loader) applyEnv(config *Config) {
	if url := os.Getenv(EnvNATSURL); url != "" {
		config.NATS.URL = url
		l.logger.Debug("NATS URL from environment", slog.String("url", url))
	}
	if path := os.Getenv(EnvStoragePath); path != "" {
		config.Storage.Path = path
		l.logger.Debug("Storage path from environment", slog.String("path", path))
	}
}

// EnsureUserConfig creates the user config file with defaults if it doesn't exist
func (l *Loader) EnsureUserConfig() error {
	userConfigPath := l.userConfigPath()

	if _, err := os.Stat(userConfigPath); err == nil {
		return nil
	}

	config := DefaultConfig()
	if err := config.SaveToFile(userConfigPath); err != nil {
		return err
	}

	l.logger.Info("Created default user config", slog.String("path", userConfigPath))
	return nil
}

// userConfigPath returns the path to the user config file
func (l *Loader) userConfigPath() string {
	home := l.home
	if home == "" {
		h, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		home = h
	}
	return filepath.Join(home, UserConfigDir, UserConfigFile)
}

func (l *Loader) startDir() string {
	if l.workDir != "" {
		return l.workDir
	}
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}
	return cwd
}

// findProjectConfig searches for semowl.yaml in the start directory and its
// parents
func (l *Loader) findProjectConfig() string {
	dir := l.startDir()
	if dir == "" {
		return ""
	}

	for {
		configPath := filepath.Join(dir, ProjectConfigFile)
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

// detectGitRoot finds the git repository root from the start directory
func (l *Loader) detectGitRoot() string {
	cmd := exec.Command("git", "rev-parse", "--show-toplevel")
	cmd.Dir = l.workDir
	output, err := cmd.Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(output))
}
