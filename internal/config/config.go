package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the advsearch service configuration.
type Config struct {
	HTTP         HTTPConfig         `yaml:"http"`
	Database     DatabaseConfig     `yaml:"database"`
	Storage      StorageConfig      `yaml:"storage"`
	Auth         AuthConfig         `yaml:"auth"`
	Logging      LoggingConfig      `yaml:"logging"`
	Search       SearchConfig       `yaml:"search"`
	Tooltips     TooltipsConfig     `yaml:"tooltips"`
	Integrations IntegrationsConfig `yaml:"integrations"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds shared secrets the host presents as Bearer tokens.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// DatabaseConfig holds the preference store connection settings.
type DatabaseConfig struct {
	Addrs            []string `yaml:"addrs"`
	Username         string   `yaml:"username"`
	Password         string   `yaml:"password"`
	DB               int      `yaml:"db"`
	Standalone       bool     `yaml:"standalone"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// StorageConfig holds key layout settings.
type StorageConfig struct {
	KeyPrefix string `yaml:"key_prefix"`
}

// SearchConfig mirrors the host's search settings handed to the client.
type SearchConfig struct {
	ContentLanguage     string            `yaml:"content_language"`
	Extensions          []string          `yaml:"file_extensions"`
	MimeOverrides       map[string]string `yaml:"mime_overrides"`
	Presets             map[string]any    `yaml:"namespace_presets"`
	DeepCategory        bool              `yaml:"deepcategory_enabled"`
	DefaultNamespaceIDs []int             `yaml:"default_namespaces"`
	Searchable          map[int]string    `yaml:"searchable_namespaces"`
	MainNamespaceLabel  string            `yaml:"main_namespace_label"`
}

// TooltipsConfig holds tooltip text overrides.
type TooltipsConfig struct {
	FallbackLang string                       `yaml:"fallback_lang"`
	Messages     map[string]map[string]string `yaml:"messages"`
}

// IntegrationsConfig toggles optional host integrations.
type IntegrationsConfig struct {
	Translate bool     `yaml:"translate"` // exposes the language-name catalog
	Languages []string `yaml:"languages"`
}

// NamespacePresets returns the configured presets verbatim.
func (s SearchConfig) NamespacePresets() map[string]any { return s.Presets }

// DeepCategoryEnabled reports the deep category search flag.
func (s SearchConfig) DeepCategoryEnabled() bool { return s.DeepCategory }

// FileExtensions returns the allowed upload extensions.
func (s SearchConfig) FileExtensions() []string { return s.Extensions }

// SearchableNamespaces returns the host's raw id -> name list.
func (s SearchConfig) SearchableNamespaces() map[int]string { return s.Searchable }

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	return Parse(data)
}

// Parse decodes YAML, expands ${VAR} references, applies defaults and validates.
func Parse(data []byte) (Config, error) {
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 5
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 5
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Database.ReadinessTimeout <= 0 {
		c.Database.ReadinessTimeout = 10
	}
	if c.Storage.KeyPrefix == "" {
		c.Storage.KeyPrefix = "advsearch:"
	}
	if c.Search.ContentLanguage == "" {
		c.Search.ContentLanguage = "en"
	}
	if c.Search.DefaultNamespaceIDs == nil {
		c.Search.DefaultNamespaceIDs = []int{0}
	}
	if c.Search.MainNamespaceLabel == "" {
		c.Search.MainNamespaceLabel = "(Main)"
	}
	if c.Search.Presets == nil {
		c.Search.Presets = map[string]any{}
	}
	if c.Tooltips.FallbackLang == "" {
		c.Tooltips.FallbackLang = "en"
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if len(c.Database.Addrs) == 0 {
		return fmt.Errorf("database.addrs is required")
	}
	for _, id := range c.Search.DefaultNamespaceIDs {
		if id < 0 {
			return fmt.Errorf("search.default_namespaces must be non-negative, got %d", id)
		}
	}
	if c.Integrations.Translate && len(c.Integrations.Languages) == 0 {
		return fmt.Errorf("integrations.languages is required when integrations.translate is enabled")
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
