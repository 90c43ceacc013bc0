package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/alnah/go-specmark/internal/config"
)

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string // SPECMARK_CONFIG: config file name or path
	InputDir   string // SPECMARK_INPUT_DIR: default input directory
	OutputDir  string // SPECMARK_OUTPUT_DIR: default output directory
	AssetPath  string // SPECMARK_ASSET_PATH: custom asset directory
	Addr       string // SPECMARK_ADDR: serve listen address
	Symbol     string // SPECMARK_PERMALINK_SYMBOL: permalink content
	Permalinks bool   // SPECMARK_PERMALINKS: enable permalinks
	Workers    int    // SPECMARK_WORKERS: parallel workers
}

// knownEnvVars lists valid SPECMARK_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"SPECMARK_CONFIG":           true,
	"SPECMARK_INPUT_DIR":        true,
	"SPECMARK_OUTPUT_DIR":       true,
	"SPECMARK_ASSET_PATH":       true,
	"SPECMARK_ADDR":             true,
	"SPECMARK_PERMALINK_SYMBOL": true,
	"SPECMARK_PERMALINKS":       true,
	"SPECMARK_WORKERS":          true,
	"SPECMARK_CONTAINER":        true,
}

// loadEnvConfig reads configuration from environment variables.
// Malformed numbers and booleans are ignored.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("SPECMARK_CONFIG"),
		InputDir:   os.Getenv("SPECMARK_INPUT_DIR"),
		OutputDir:  os.Getenv("SPECMARK_OUTPUT_DIR"),
		AssetPath:  os.Getenv("SPECMARK_ASSET_PATH"),
		Addr:       os.Getenv("SPECMARK_ADDR"),
		Symbol:     os.Getenv("SPECMARK_PERMALINK_SYMBOL"),
	}

	if v := os.Getenv("SPECMARK_PERMALINKS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Permalinks = b
		}
	}

	if workers := os.Getenv("SPECMARK_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized SPECMARK_* variables.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "SPECMARK_") {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig applies environment variable values to config.
// Only sets values if the env var is set AND the config value is empty/zero.
// This ensures: CLI flags > config file > env vars > defaults
// (CLI flags are applied later via the merge functions)
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.InputDir != "" && cfg.Input.DefaultDir == "" {
		cfg.Input.DefaultDir = env.InputDir
	}
	if env.OutputDir != "" && cfg.Output.DefaultDir == "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
	if env.AssetPath != "" && cfg.Assets.BasePath == "" {
		cfg.Assets.BasePath = env.AssetPath
	}

	// DefaultConfig fills server.addr, so the default counts as unset.
	if env.Addr != "" && (cfg.Server.Addr == "" || cfg.Server.Addr == config.DefaultServerAddr) {
		cfg.Server.Addr = env.Addr
	}

	if env.Permalinks && !cfg.IncludePermalinks {
		cfg.IncludePermalinks = true
	}
	if env.Symbol != "" && cfg.PermalinkSymbol == "" {
		cfg.PermalinkSymbol = env.Symbol
	}
}
