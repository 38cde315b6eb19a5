package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigPath = "/etc/secrets-api/config"
	ConfigFileName    = "secrets.yml"
)

// ValidLogLevels and ValidLogFormats list the accepted logging settings
var (
	ValidLogLevels  = []string{"debug", "info", "warn", "error"}
	ValidLogFormats = []string{"text", "json"}
)

// Config holds all secrets-api server settings
type Config struct {
	// BindAddress is the interface the HTTP server listens on
	BindAddress string `yaml:"bind_address" json:"bind_address"`

	// Port is the HTTP listen port
	Port int `yaml:"port" json:"port"`

	// CORSAllowedOrigins lists origins allowed to call the API. "*" allows any.
	CORSAllowedOrigins []string `yaml:"cors_allowed_origins" json:"cors_allowed_origins"`

	LogLevel  string `yaml:"log_level" json:"log_level"`
	LogFormat string `yaml:"log_format" json:"log_format"`

	// AuditEnabled turns audit events on or off
	AuditEnabled bool `yaml:"audit_enabled" json:"audit_enabled"`

	// MetricsEnabled exposes /metrics and instruments requests
	MetricsEnabled bool `yaml:"metrics_enabled" json:"metrics_enabled"`

	// Timeouts in seconds
	ReadTimeoutSeconds     int `yaml:"read_timeout" json:"read_timeout"`
	WriteTimeoutSeconds    int `yaml:"write_timeout" json:"write_timeout"`
	ShutdownTimeoutSeconds int `yaml:"shutdown_timeout" json:"shutdown_timeout"`

	// sources tracks where each value came from
	sources map[string]string

	// configFilePath is the path to the config file
	configFilePath string
}

// fileConfig mirrors Config for YAML decoding. Pointers distinguish an
// explicit false or zero from an absent key.
type fileConfig struct {
	BindAddress            string   `yaml:"bind_address"`
	Port                   int      `yaml:"port"`
	CORSAllowedOrigins     []string `yaml:"cors_allowed_origins"`
	LogLevel               string   `yaml:"log_level"`
	LogFormat              string   `yaml:"log_format"`
	AuditEnabled           *bool    `yaml:"audit_enabled"`
	MetricsEnabled         *bool    `yaml:"metrics_enabled"`
	ReadTimeoutSeconds     int      `yaml:"read_timeout"`
	WriteTimeoutSeconds    int      `yaml:"write_timeout"`
	ShutdownTimeoutSeconds int      `yaml:"shutdown_timeout"`
}

// Attribute represents a configuration attribute with its value and source
type Attribute struct {
	Name   string `json:"name" yaml:"name"`
	Value  string `json:"value" yaml:"value"`
	Source string `json:"source" yaml:"source"`
}

// Default returns a config with default values
func Default() *Config {
	return &Config{
		BindAddress:            "0.0.0.0",
		Port:                   8000,
		CORSAllowedOrigins:     []string{"*"},
		LogLevel:               "info",
		LogFormat:              "text",
		AuditEnabled:           true,
		MetricsEnabled:         true,
		ReadTimeoutSeconds:     15,
		WriteTimeoutSeconds:    15,
		ShutdownTimeoutSeconds: 10,
		sources:                make(map[string]string),
	}
}

// Path returns the config file location, honouring SECRETS_CONFIG_PATH
func Path() string {
	configPath := os.Getenv("SECRETS_CONFIG_PATH")
	if configPath == "" {
		configPath = DefaultConfigPath
	}
	return filepath.Join(configPath, ConfigFileName)
}

// Load loads configuration from file and environment variables.
// Environment variables take precedence over file values.
func Load() (*Config, error) {
	return LoadFile(Path())
}

// LoadFile is Load with an explicit config file path. A missing file is
// not an error.
func LoadFile(path string) (*Config, error) {
	config := Default()
	for _, name := range attributeNames() {
		config.sources[name] = "default"
	}
	config.configFilePath = path

	if data, err := os.ReadFile(path); err == nil {
		var file fileConfig
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
		config.applyFileConfig(&file)
	}

	config.applyEnvConfig()

	return config, nil
}

func attributeNames() []string {
	return []string{
		"bind_address", "port", "cors_allowed_origins",
		"log_level", "log_format", "audit_enabled", "metrics_enabled",
		"read_timeout", "write_timeout", "shutdown_timeout",
	}
}

func (c *Config) applyFileConfig(file *fileConfig) {
	if file.BindAddress != "" {
		c.BindAddress = file.BindAddress
		c.sources["bind_address"] = "file"
	}
	if file.Port != 0 {
		c.Port = file.Port
		c.sources["port"] = "file"
	}
	if len(file.CORSAllowedOrigins) > 0 {
		c.CORSAllowedOrigins = file.CORSAllowedOrigins
		c.sources["cors_allowed_origins"] = "file"
	}
	if file.LogLevel != "" {
		c.LogLevel = strings.ToLower(file.LogLevel)
		c.sources["log_level"] = "file"
	}
	if file.LogFormat != "" {
		c.LogFormat = strings.ToLower(file.LogFormat)
		c.sources["log_format"] = "file"
	}
	if file.AuditEnabled != nil {
		c.AuditEnabled = *file.AuditEnabled
		c.sources["audit_enabled"] = "file"
	}
	if file.MetricsEnabled != nil {
		c.MetricsEnabled = *file.MetricsEnabled
		c.sources["metrics_enabled"] = "file"
	}
	if file.ReadTimeoutSeconds != 0 {
		c.ReadTimeoutSeconds = file.ReadTimeoutSeconds
		c.sources["read_timeout"] = "file"
	}
	if file.WriteTimeoutSeconds != 0 {
		c.WriteTimeoutSeconds = file.WriteTimeoutSeconds
		c.sources["write_timeout"] = "file"
	}
	if file.ShutdownTimeoutSeconds != 0 {
		c.ShutdownTimeoutSeconds = file.ShutdownTimeoutSeconds
		c.sources["shutdown_timeout"] = "file"
	}
}

func (c *Config) applyEnvConfig() {
	if val := os.Getenv("SECRETS_BIND_ADDRESS"); val != "" {
		c.BindAddress = val
		c.sources["bind_address"] = "environment"
	}
	if val := os.Getenv("SECRETS_PORT"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			c.Port = i
			c.sources["port"] = "environment"
		}
	}
	if val := os.Getenv("SECRETS_CORS_ALLOWED_ORIGINS"); val != "" {
		c.CORSAllowedOrigins = splitAndTrim(val)
		c.sources["cors_allowed_origins"] = "environment"
	}
	if val := os.Getenv("SECRETS_LOG_LEVEL"); val != "" {
		c.LogLevel = strings.ToLower(val)
		c.sources["log_level"] = "environment"
	}
	if val := os.Getenv("SECRETS_LOG_FORMAT"); val != "" {
		c.LogFormat = strings.ToLower(val)
		c.sources["log_format"] = "environment"
	}
	if val := os.Getenv("SECRETS_AUDIT_ENABLED"); val != "" {
		c.AuditEnabled = val == "true" || val == "1"
		c.sources["audit_enabled"] = "environment"
	}
	if val := os.Getenv("SECRETS_METRICS_ENABLED"); val != "" {
		c.MetricsEnabled = val == "true" || val == "1"
		c.sources["metrics_enabled"] = "environment"
	}
	if val := os.Getenv("SECRETS_READ_TIMEOUT"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			c.ReadTimeoutSeconds = i
			c.sources["read_timeout"] = "environment"
		}
	}
	if val := os.Getenv("SECRETS_WRITE_TIMEOUT"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			c.WriteTimeoutSeconds = i
			c.sources["write_timeout"] = "environment"
		}
	}
	if val := os.Getenv("SECRETS_SHUTDOWN_TIMEOUT"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			c.ShutdownTimeoutSeconds = i
			c.sources["shutdown_timeout"] = "environment"
		}
	}
}

// ConfigFilePath returns the path to the config file
func (c *Config) ConfigFilePath() string {
	return c.configFilePath
}

// Source returns the source of a configuration attribute
func (c *Config) Source(name string) string {
	if c.sources == nil {
		return "default"
	}
	if s, ok := c.sources[name]; ok {
		return s
	}
	return "default"
}

// Address returns the host:port the server listens on
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.BindAddress, c.Port)
}

func (c *Config) ReadTimeout() time.Duration {
	return time.Duration(c.ReadTimeoutSeconds) * time.Second
}

func (c *Config) WriteTimeout() time.Duration {
	return time.Duration(c.WriteTimeoutSeconds) * time.Second
}

func (c *Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutSeconds) * time.Second
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	if !contains(ValidLogLevels, c.LogLevel) {
		return fmt.Errorf("invalid log_level: %s", c.LogLevel)
	}
	if !contains(ValidLogFormats, c.LogFormat) {
		return fmt.Errorf("invalid log_format: %s", c.LogFormat)
	}

	timeouts := map[string]int{
		"read_timeout":     c.ReadTimeoutSeconds,
		"write_timeout":    c.WriteTimeoutSeconds,
		"shutdown_timeout": c.ShutdownTimeoutSeconds,
	}
	for _, name := range []string{"read_timeout", "write_timeout", "shutdown_timeout"} {
		if timeouts[name] <= 0 {
			return fmt.Errorf("%s must be positive, got %d", name, timeouts[name])
		}
	}

	return nil
}

// Attributes returns all configuration attributes with their values and sources
func (c *Config) Attributes() []Attribute {
	return []Attribute{
		{Name: "bind_address", Value: c.BindAddress, Source: c.Source("bind_address")},
		{Name: "port", Value: strconv.Itoa(c.Port), Source: c.Source("port")},
		{Name: "cors_allowed_origins", Value: strings.Join(c.CORSAllowedOrigins, ","), Source: c.Source("cors_allowed_origins")},
		{Name: "log_level", Value: c.LogLevel, Source: c.Source("log_level")},
		{Name: "log_format", Value: c.LogFormat, Source: c.Source("log_format")},
		{Name: "audit_enabled", Value: strconv.FormatBool(c.AuditEnabled), Source: c.Source("audit_enabled")},
		{Name: "metrics_enabled", Value: strconv.FormatBool(c.MetricsEnabled), Source: c.Source("metrics_enabled")},
		{Name: "read_timeout", Value: strconv.Itoa(c.ReadTimeoutSeconds), Source: c.Source("read_timeout")},
		{Name: "write_timeout", Value: strconv.Itoa(c.WriteTimeoutSeconds), Source: c.Source("write_timeout")},
		{Name: "shutdown_timeout", Value: strconv.Itoa(c.ShutdownTimeoutSeconds), Source: c.Source("shutdown_timeout")},
	}
}

// FormatText returns a text representation of the configuration
func (c *Config) FormatText() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Config file: %s\n\n", c.configFilePath))
	sb.WriteString(fmt.Sprintf("%-25s %-30s %s\n", "NAME", "VALUE", "SOURCE"))
	sb.WriteString(fmt.Sprintf("%-25s %-30s %s\n", "----", "-----", "------"))

	for _, attr := range c.Attributes() {
		value := attr.Value
		if value == "" {
			value = "(not set)"
		}
		sb.WriteString(fmt.Sprintf("%-25s %-30s %s\n", attr.Name, value, attr.Source))
	}
	return sb.String()
}

// FormatJSON returns a JSON representation of the configuration
func (c *Config) FormatJSON() (string, error) {
	result := map[string]interface{}{
		"config_file": c.configFilePath,
		"attributes":  c.Attributes(),
	}
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}
