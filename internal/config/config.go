package config

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultFileName is the config file looked up in the working directory
	DefaultFileName = "primer.yml"

	// DefaultInstance is used when primer.yml omits the instance name
	DefaultInstance = "default"

	// DefaultRedisAddr is used when primer.yml omits redis.addr
	DefaultRedisAddr = "localhost:6379"

	// MaxInstanceNameLength keeps Redis keys readable
	MaxInstanceNameLength = 63
)

// InstanceNamePattern allows lowercase alphanumerics with inner hyphens.
var InstanceNamePattern = regexp.MustCompile(`^[a-z0-9]([-a-z0-9]*[a-z0-9])?$`)

// PrimerConfig represents the top-level primer.yml configuration
type PrimerConfig struct {
	Version  string       `yaml:"version"`
	Instance string       `yaml:"instance,omitempty"` // Namespace for all Redis keys (default: "default")
	Redis    *RedisConfig `yaml:"redis,omitempty"`
	Caller   string       `yaml:"caller,omitempty"` // Identity used when --as and PRIMER_AS are unset
}

// RedisConfig specifies how to reach the registry's Redis server
type RedisConfig struct {
	Addr     string `yaml:"addr,omitempty"`
	Password string `yaml:"password,omitempty"`
	DB       int    `yaml:"db,omitempty"`
}

// Default returns the configuration written by `primer init`.
func Default() *PrimerConfig {
	return &PrimerConfig{
		Version:  "1.0",
		Instance: DefaultInstance,
		Redis: &RedisConfig{
			Addr: DefaultRedisAddr,
		},
	}
}

// Validate performs strict validation on the configuration and fills in defaults
func (c *PrimerConfig) Validate() error {
	// Required: version
	if c.Version != "1.0" {
		return fmt.Errorf("unsupported version: %s (expected: 1.0)", c.Version)
	}

	if c.Instance == "" {
		c.Instance = DefaultInstance
	}
	if err := ValidateInstanceName(c.Instance); err != nil {
		return err
	}

	if c.Redis == nil {
		c.Redis = &RedisConfig{}
	}
	if c.Redis.Addr == "" {
		c.Redis.Addr = DefaultRedisAddr
	}
	if c.Redis.DB < 0 {
		return fmt.Errorf("redis.db must be >= 0, got %d", c.Redis.DB)
	}

	return nil
}

// ValidateInstanceName checks that name is usable as a key namespace.
func ValidateInstanceName(name string) error {
	if name == "" {
		return fmt.Errorf("instance name cannot be empty")
	}

	if len(name) > MaxInstanceNameLength {
		return fmt.Errorf("instance name too long: %d characters (max: %d)", len(name), MaxInstanceNameLength)
	}

	if !InstanceNamePattern.MatchString(name) {
		return fmt.Errorf("invalid instance name '%s': must be lowercase alphanumeric with hyphens (not at start/end)", name)
	}

	return nil
}

// Load reads and validates primer.yml from the specified path
func Load(path string) (*PrimerConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var config PrimerConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// LoadOrDefault behaves like Load but returns Default() when path does not exist.
func LoadOrDefault(path string) (*PrimerConfig, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}
	return Load(path)
}

// Write marshals the configuration to path. Existing files are only replaced
// when force is true.
func Write(path string, c *PrimerConfig, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return nil
}
