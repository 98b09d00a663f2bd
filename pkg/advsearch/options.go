package advsearch

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	driver     string // "valkey" or "redis", informational only
	addrs      []string
	password   string
	standalone bool
	keyPrefix  string

	search       SearchSettings
	fallbackLang string
	messages     map[string]map[string]string
	languages    []string

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithValkey configures the client to connect to a Valkey instance.
func WithValkey(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = "valkey"
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithRedis configures the client to connect to a Redis instance.
func WithRedis(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = "redis"
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithStandalone disables cluster topology discovery.
func WithStandalone() Option {
	return optionFunc(func(c *clientConfig) {
		c.standalone = true
	})
}

// WithKeyPrefix sets the prefix of user option hashes. Default: "advsearch:".
func WithKeyPrefix(prefix string) Option {
	return optionFunc(func(c *clientConfig) {
		c.keyPrefix = prefix
	})
}

// WithSearch sets the host's search settings.
func WithSearch(s SearchSettings) Option {
	return optionFunc(func(c *clientConfig) {
		c.search = s
	})
}

// WithTooltips overrides tooltip messages per language.
// Keys missing for a language come from fallbackLang, then the built-in English text.
func WithTooltips(fallbackLang string, messages map[string]map[string]string) Option {
	return optionFunc(func(c *clientConfig) {
		c.fallbackLang = fallbackLang
		c.messages = messages
	})
}

// WithLanguages enables the language-name catalog for the given BCP-47 codes.
func WithLanguages(codes ...string) Option {
	return optionFunc(func(c *clientConfig) {
		c.languages = codes
	})
}

// WithLogger enables structured logging for client operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers client metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
