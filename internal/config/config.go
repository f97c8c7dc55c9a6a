package config

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/oshokin/molotov-go/internal/constants"
	"github.com/oshokin/molotov-go/internal/logger"
	"github.com/oshokin/molotov-go/internal/utils"
)

// Config holds all configuration settings.
type Config struct {
	// Verbosity controls request and response printing: 2 and above prints everything.
	Verbosity int `mapstructure:"verbosity" yaml:"verbosity"`
	// LogLevel specifies the logging verbosity level.
	LogLevel string `mapstructure:"log_level" yaml:"log_level"`
	// MetricsEnabled turns on request timings and status counters.
	MetricsEnabled bool `mapstructure:"metrics_enabled" yaml:"metrics_enabled"`
	// MetricsListen is the address of the Prometheus /metrics endpoint (e.g., ":9090").
	// Empty string keeps metrics in memory only.
	MetricsListen string `mapstructure:"metrics_listen" yaml:"metrics_listen"`
	// Hostname identifies this machine in metrics labels. Empty string means the OS host name.
	Hostname string `mapstructure:"hostname" yaml:"hostname"`
	// ConnectionPoolLimit caps concurrent connections per host. Zero means unbounded.
	ConnectionPoolLimit int `mapstructure:"connection_pool_limit" yaml:"connection_pool_limit"`
	// MaxPeekSize bounds how much of a response body is printed (e.g., "64KB"). Empty string or "0" is unbounded.
	MaxPeekSize string `mapstructure:"max_peek_size" yaml:"max_peek_size"`
	// RequestTimeout bounds the wait for response headers (e.g., "30s"). Empty string or "0" disables it.
	RequestTimeout string `mapstructure:"request_timeout" yaml:"request_timeout"`
	// DNSServer is a custom DNS server address ("host:port"). Empty string uses the system resolver.
	DNSServer string `mapstructure:"dns_server" yaml:"dns_server"`
	// DNSNetwork restricts resolution to "ip", "ip4" or "ip6".
	DNSNetwork string `mapstructure:"dns_network" yaml:"dns_network"`
	// DNSCacheSize is the number of resolved host names kept in memory. Zero disables caching.
	DNSCacheSize int `mapstructure:"dns_cache_size" yaml:"dns_cache_size"`
	// StaticHosts maps host names to fixed addresses, like /etc/hosts.
	StaticHosts map[string]string `mapstructure:"static_hosts" yaml:"static_hosts"`
	// DefaultHeaders are "Name: value" lines added to every request that lacks them.
	DefaultHeaders []string `mapstructure:"default_headers" yaml:"default_headers"`
	// Requests is the number of requests sent per URL.
	Requests int64 `mapstructure:"requests" yaml:"requests"`
	// Concurrency is the number of requests in flight at once.
	Concurrency int64 `mapstructure:"concurrency" yaml:"concurrency"`
	// ParsedLogLevel is the parsed zap log level.
	ParsedLogLevel zapcore.Level `mapstructure:"-" yaml:"-"`
	// ParsedMaxPeekSize is the parsed peek limit in bytes.
	ParsedMaxPeekSize int64 `mapstructure:"-" yaml:"-"`
	// ParsedRequestTimeout is the parsed response header timeout.
	ParsedRequestTimeout time.Duration `mapstructure:"-" yaml:"-"`
	// ParsedDefaultHeaders holds DefaultHeaders as an http.Header.
	ParsedDefaultHeaders http.Header `mapstructure:"-" yaml:"-"`
}

const (
	// DefaultConfigFilename is the default name of the configuration file.
	DefaultConfigFilename = ".molotov.yaml"

	// DefaultLogLevel is the default logging level.
	DefaultLogLevel = "info"
	// DefaultDNSNetwork is the default address family used for resolution.
	DefaultDNSNetwork = "ip4"
	// DefaultDNSCacheSize is the default number of cached host names.
	DefaultDNSCacheSize = 1024
	// DefaultRequestTimeout is the default response header timeout.
	DefaultRequestTimeout = "30s"
	// DefaultRequests is the default number of requests per URL.
	DefaultRequests = 1
	// DefaultConcurrency is the default number of requests in flight.
	DefaultConcurrency = 1

	// printVerbosity is the verbosity at which requests are printed.
	printVerbosity = 2
)

// Static error definitions for better error handling.
var (
	// ErrUnknownLogLevel indicates that the log level is not recognized.
	ErrUnknownLogLevel = errors.New("unknown log level")
	// ErrInvalidVerbosity indicates a negative verbosity.
	ErrInvalidVerbosity = errors.New("verbosity cannot be negative")
	// ErrInvalidPoolLimit indicates a negative connection pool limit.
	ErrInvalidPoolLimit = errors.New("connection_pool_limit cannot be negative")
	// ErrInvalidRequestTimeout indicates a negative request timeout.
	ErrInvalidRequestTimeout = errors.New("request_timeout cannot be negative")
	// ErrInvalidDNSCacheSize indicates a negative DNS cache size.
	ErrInvalidDNSCacheSize = errors.New("dns_cache_size cannot be negative")
	// ErrInvalidRequests indicates that the request count is invalid.
	ErrInvalidRequests = errors.New("requests must be a positive integer")
	// ErrInvalidConcurrency indicates that the concurrency is invalid.
	ErrInvalidConcurrency = errors.New("concurrency must be a positive integer")
	// ErrConfigExists indicates that WriteDefaultConfig would overwrite a file.
	ErrConfigExists = errors.New("configuration file already exists")
)

// setDefaults registers the default value of every setting.
func setDefaults(v *viper.Viper) {
	v.SetDefault("verbosity", 0)
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("metrics_enabled", false)
	v.SetDefault("metrics_listen", "")
	v.SetDefault("hostname", "")
	v.SetDefault("connection_pool_limit", 0)
	v.SetDefault("max_peek_size", "0")
	v.SetDefault("request_timeout", DefaultRequestTimeout)
	v.SetDefault("dns_server", "")
	v.SetDefault("dns_network", DefaultDNSNetwork)
	v.SetDefault("dns_cache_size", DefaultDNSCacheSize)
	v.SetDefault("static_hosts", map[string]string{})
	v.SetDefault("default_headers", []string{})
	v.SetDefault("requests", DefaultRequests)
	v.SetDefault("concurrency", DefaultConcurrency)
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	v := viper.New()
	setDefaults(v)

	var cfg Config
	// Defaults always decode.
	_ = v.Unmarshal(&cfg)

	return &cfg
}

// LoadConfig loads configuration settings from a YAML file.
// When configFilename is empty the default file is read if it exists,
// otherwise the defaults are returned.
func LoadConfig(configFilename string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configFilename == "" {
		exists, err := utils.IsFileExist(DefaultConfigFilename)
		if err != nil {
			return nil, fmt.Errorf("failed to check config file: %w", err)
		}

		if !exists {
			return Default(), nil
		}

		configFilename = DefaultConfigFilename
	}

	v.SetConfigFile(configFilename)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config from file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// ValidateConfig checks the configuration for validity and sets derived fields.
func ValidateConfig(cfg *Config) error {
	return validate(cfg, utils.NewOSHostnameProvider())
}

//nolint:cyclop // Validation functions naturally have high complexity due to sequential checks.
func validate(cfg *Config, hostnameProvider utils.HostnameProvider) error {
	if cfg.Verbosity < 0 {
		return ErrInvalidVerbosity
	}

	parsedLogLevel, isLogLevelCorrect := logger.ParseLogLevel(cfg.LogLevel)
	if !isLogLevelCorrect {
		return fmt.Errorf("%w: '%s'", ErrUnknownLogLevel, cfg.LogLevel)
	}

	cfg.ParsedLogLevel = parsedLogLevel

	if cfg.ConnectionPoolLimit < 0 {
		return ErrInvalidPoolLimit
	}

	var parsedMaxPeekSize uint64

	maxPeekSize := strings.TrimSpace(cfg.MaxPeekSize)
	if maxPeekSize != "" && maxPeekSize != "0" {
		var err error

		parsedMaxPeekSize, err = humanize.ParseBytes(maxPeekSize)
		if err != nil {
			return fmt.Errorf("failed to parse max peek size: %w", err)
		}
	}

	// io.LimitReader accepts only int64.
	cfg.ParsedMaxPeekSize = utils.SafeUint64ToInt64(parsedMaxPeekSize)

	cfg.ParsedRequestTimeout = 0

	requestTimeout := strings.TrimSpace(cfg.RequestTimeout)
	if requestTimeout != "" && requestTimeout != "0" {
		parsed, err := time.ParseDuration(requestTimeout)
		if err != nil {
			return fmt.Errorf("failed to parse request timeout: %w", err)
		}

		if parsed < 0 {
			return ErrInvalidRequestTimeout
		}

		cfg.ParsedRequestTimeout = parsed
	}

	if cfg.DNSCacheSize < 0 {
		return ErrInvalidDNSCacheSize
	}

	headers, err := utils.ParseHeaders(cfg.DefaultHeaders)
	if err != nil {
		return fmt.Errorf("failed to parse default headers: %w", err)
	}

	cfg.ParsedDefaultHeaders = headers

	if cfg.Requests <= 0 {
		return ErrInvalidRequests
	}

	if cfg.Concurrency <= 0 {
		return ErrInvalidConcurrency
	}

	cfg.Hostname = strings.TrimSpace(cfg.Hostname)
	if cfg.Hostname == "" {
		cfg.Hostname = hostnameProvider.GetHostname()
	}

	return nil
}

// PrintsRequests reports whether the configured verbosity prints requests and responses.
func (c *Config) PrintsRequests() bool {
	return c.Verbosity >= printVerbosity
}

// WriteDefaultConfig writes the default configuration as YAML to path.
// An existing file is never overwritten.
func WriteDefaultConfig(path string) error {
	if path == "" {
		path = DefaultConfigFilename
	}

	exists, err := utils.IsFileExist(path)
	if err != nil {
		return fmt.Errorf("failed to check config file: %w", err)
	}

	if exists {
		return fmt.Errorf("%w: %s", ErrConfigExists, path)
	}

	content, err := yaml.Marshal(Default())
	if err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err = os.MkdirAll(dir, constants.DefaultFolderPermissions); err != nil {
			return fmt.Errorf("failed to create config folder: %w", err)
		}
	}

	if err = os.WriteFile(path, content, constants.DefaultFilePermissions); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
