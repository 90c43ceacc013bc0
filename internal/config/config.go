package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-specmark/internal/fileutil"
	"github.com/alnah/go-specmark/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrFieldEmpty      = errors.New("field cannot be empty")
)

// Field length limits for multi-tenant safety.
const (
	MaxSymbolLength = 16   // "§", "¶", "&sect;"
	MaxURLLength    = 2048 // Browser limit
	MaxPathLength   = 4096 // PATH_MAX on Linux
	MaxAddrLength   = 256  // host:port
)

// DefaultServerAddr is the listen address used when server.addr is unset.
const DefaultServerAddr = ":8080"

// appDirName is the directory under the user config dir searched for named configs.
const appDirName = "go-specmark"

// Config holds all configuration for document generation.
type Config struct {
	PermalinksConfig `yaml:",inline"`

	Input       InputConfig  `yaml:"input"`
	Output      OutputConfig `yaml:"output"`
	Assets      AssetsConfig `yaml:"assets"`
	Stylesheets []string     `yaml:"stylesheets"` // hrefs linked from generated documents
	Server      ServerConfig `yaml:"server"`
}

// PermalinksConfig holds the permalink options. The keys sit at the top
// level of the file.
type PermalinksConfig struct {
	IncludePermalinks bool   `yaml:"includePermalinks"`
	PermalinkSymbol   string `yaml:"permalinkSymbol"` // empty = "§"
	PermalinkEdge     bool   `yaml:"permalinkEdge"`
	PermalinkHide     bool   `yaml:"permalinkHide"`
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default input directory (empty = must specify)
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default output directory (empty = same as source)
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded assets
}

// ServerConfig defines HTTP API options.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// Validate checks field lengths to prevent abuse in multi-tenant scenarios.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually (e.g., API adapters, library users).
func (c *Config) Validate() error {
	if err := validateFieldLength("permalinkSymbol", c.PermalinkSymbol, MaxSymbolLength); err != nil {
		return err
	}

	for i, href := range c.Stylesheets {
		field := fmt.Sprintf("stylesheets[%d]", i)
		if strings.TrimSpace(href) == "" {
			return fmt.Errorf("%w: %s", ErrFieldEmpty, field)
		}
		if err := validateFieldLength(field, href, MaxURLLength); err != nil {
			return err
		}
	}

	if err := validateFieldLength("input.defaultDir", c.Input.DefaultDir, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("output.defaultDir", c.Output.DefaultDir, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("assets.basePath", c.Assets.BasePath, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("server.addr", c.Server.Addr, MaxAddrLength); err != nil {
		return err
	}

	return nil
}

// ServerAddr returns server.addr or DefaultServerAddr.
func (c *Config) ServerAddr() string {
	if c.Server.Addr == "" {
		return DefaultServerAddr
	}
	return c.Server.Addr
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns a neutral configuration: permalinks off, embedded
// assets, no stylesheets.
func DefaultConfig() *Config {
	return &Config{
		PermalinksConfig: PermalinksConfig{IncludePermalinks: false},
		Input:            InputConfig{DefaultDir: ""},
		Output:           OutputConfig{DefaultDir: ""},
		Assets:           AssetsConfig{BasePath: ""},
		Server:           ServerConfig{Addr: DefaultServerAddr},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// SearchPaths lists the files resolveConfigPath tries for name, in order.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2) // 2 locations

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}

	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, appDirName, name+ext))
		}
	}

	return paths
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries the current directory, then ~/.config/go-specmark/, each with
// .yaml before .yml.
func resolveConfigPath(name string) (string, error) {
	tried := SearchPaths(name)
	for _, p := range tried {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}
