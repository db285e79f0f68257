package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/ssargent/itemcodec/pkg/buffer"
	"github.com/ssargent/itemcodec/pkg/codec"
	"github.com/ssargent/itemcodec/pkg/store"
)

// Config represents the itemcodec configuration
type Config struct {
	DataDir string  `yaml:"data_dir"`
	Port    int     `yaml:"port"`
	Bind    string  `yaml:"bind"`
	APIKey  string  `yaml:"api_key"`
	Codec   Codec   `yaml:"codec"`
	Logging Logging `yaml:"logging"`
}

// Codec controls item encoding and item file I/O
type Codec struct {
	Format          string `yaml:"format"`
	InitialCapacity int    `yaml:"initial_capacity"`
	ChunkSize       int    `yaml:"chunk_size"`
	PadToCapacity   bool   `yaml:"pad_to_capacity"`
}

// Logging contains logging configuration
type Logging struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		DataDir: "./data",
		Port:    8080,
		Bind:    "127.0.0.1",
		Codec: Codec{
			Format:          codec.FormatLegacy.String(),
			InitialCapacity: buffer.DefaultInitialCapacity,
			ChunkSize:       store.DefaultChunkSize,
		},
		Logging: Logging{
			Level:  "info",
			Format: "text",
		},
	}
}

// Validate checks that the configuration can be used
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data_dir must not be empty")
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	if _, err := codec.ParseFormat(c.Codec.Format); err != nil {
		return fmt.Errorf("invalid codec format: %w", err)
	}
	if c.Codec.InitialCapacity < 0 {
		return fmt.Errorf("initial_capacity must not be negative: %d", c.Codec.InitialCapacity)
	}
	if c.Codec.ChunkSize < 0 {
		return fmt.Errorf("chunk_size must not be negative: %d", c.Codec.ChunkSize)
	}
	if _, err := logrus.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("invalid logging level: %w", err)
	}
	switch c.Logging.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("invalid logging format: %q", c.Logging.Format)
	}
	return nil
}

// ItemFormat returns the parsed codec format
func (c *Config) ItemFormat() codec.Format {
	format, err := codec.ParseFormat(c.Codec.Format)
	if err != nil {
		return codec.FormatLegacy
	}
	return format
}

// CatalogPath returns the directory of the item catalog
func (c *Config) CatalogPath() string {
	return filepath.Join(c.DataDir, "catalog")
}

// LoadConfig loads configuration from the specified path. Missing fields keep
// their default values.
func LoadConfig(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	if !filepath.IsAbs(configPath) {
		absPath, err := filepath.Abs(configPath)
		if err != nil {
			return nil, fmt.Errorf("invalid config path: %w", err)
		}
		configPath = absPath
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// SaveConfig saves the configuration to the specified path with secure permissions
func SaveConfig(config *Config, configPath string) error {
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GenerateSecureKey generates a cryptographically secure random key
func GenerateSecureKey(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate secure key: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}

// BootstrapConfig writes a default configuration with a generated API key
func BootstrapConfig(configPath string, dataDir string) (*Config, error) {
	config := DefaultConfig()
	if dataDir != "" {
		config.DataDir = dataDir
	}

	apiKey, err := GenerateSecureKey(32) // 256 bits
	if err != nil {
		return nil, fmt.Errorf("failed to generate API key: %w", err)
	}
	config.APIKey = apiKey

	if err := SaveConfig(config, configPath); err != nil {
		return nil, fmt.Errorf("failed to save bootstrap config: %w", err)
	}

	return config, nil
}

// GetDefaultConfigPath returns the default configuration path for the current platform
func GetDefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "./itemcodec.yaml"
	}

	// For Linux/macOS, use ~/.config/itemcodec/config.yaml
	configDir := filepath.Join(homeDir, ".config", "itemcodec")
	return filepath.Join(configDir, "config.yaml")
}

// ConfigExists checks if a configuration file exists
func ConfigExists(configPath string) bool {
	_, err := os.Stat(configPath)
	return !os.IsNotExist(err)
}
