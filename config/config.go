// Package config holds the interpreter's ambient settings — execution
// limits, trace defaults, debugger preferences — loaded from an optional
// TOML file, the same way the teacher's ARM2 debugger configures itself.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"
)

// Config is the interpreter's full configuration surface.
type Config struct {
	Execution struct {
		MaxCycles   uint64 `toml:"max_cycles"`
		StackSize   uint   `toml:"stack_size"`
		Verbose     bool   `toml:"verbose"`
		EnableTrace bool   `toml:"enable_trace"`
	} `toml:"execution"`

	Debugger struct {
		HistorySize    int  `toml:"history_size"`
		AutoSaveBreaks bool `toml:"auto_save_breakpoints"`
	} `toml:"debugger"`

	Trace struct {
		OutputFile string `toml:"output_file"`
		MaxEntries int    `toml:"max_entries"`
	} `toml:"trace"`
}

// Default returns a configuration with the interpreter's built-in defaults.
func Default() *Config {
	cfg := &Config{}
	cfg.Execution.MaxCycles = 1_000_000
	cfg.Execution.StackSize = 4096
	cfg.Execution.Verbose = false
	cfg.Execution.EnableTrace = false

	cfg.Debugger.HistorySize = 1000
	cfg.Debugger.AutoSaveBreaks = true

	cfg.Trace.OutputFile = "trace.log"
	cfg.Trace.MaxEntries = 100_000
	return cfg
}

// Path returns the platform-specific config file location.
func Path() string {
	switch runtime.GOOS {
	case "windows":
		dir := os.Getenv("APPDATA")
		if dir == "" {
			dir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		return filepath.Join(dir, "rv64ic-emulator", "config.toml")
	default:
		home, err := os.UserHomeDir()
		if err != nil {
			return "config.toml"
		}
		return filepath.Join(home, ".config", "rv64ic-emulator", "config.toml")
	}
}

// Load reads the config file at path, falling back to Default() unchanged
// if the file does not exist.
func Load(path string) (*Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}
