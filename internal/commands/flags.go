package commands

import (
	"os"
	"path/filepath"

	"github.com/nexusdl/nexusdl/internal/core/config"
)

// Flags holds global flag values plus state shared across subcommands.
type Flags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string

	// Config is loaded in the Before hook and available to all commands.
	Config *config.Config
}

// DefaultConfigPath returns the default config file path using XDG_CONFIG_HOME.
func DefaultConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "nexusdl", "config.yaml")
}

// DefaultLogDir returns where per-run log files go when --log-file is not
// set.
func DefaultLogDir() string {
	return filepath.Join(os.TempDir(), "nexusdl")
}
