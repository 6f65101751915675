// Package config loads the YAML session profile cmd/sscpctl uses to stand
// up a Context without repeating serial port, bus address and key details
// on the command line every time.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is one reader session profile.
type Config struct {
	Serial SerialConfig `yaml:"serial"`
	Keys   KeysConfig   `yaml:"keys"`
}

// SerialConfig describes the physical link.
type SerialConfig struct {
	Port      string `yaml:"port"`
	Baudrate  int    `yaml:"baudrate"`
	Address   *int   `yaml:"address"`
	GuardTime *int   `yaml:"guard_time_ms,omitempty"`
}

// KeysConfig points at the authentication key file, if the reader has been
// rekeyed away from the factory default.
type KeysConfig struct {
	AuthKeyFile string `yaml:"auth_key_file,omitempty"`
}

// Load reads and validates a session profile from path. File paths inside
// the config (AuthKeyFile) are resolved relative to the config file's own
// directory, not the process's working directory.
func Load(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(content))
	dec.KnownFields(true)

	var cfg Config
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parse config yaml: %w", err)
	}
	cfg.resolvePaths(path)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that every required field is present and, where it names
// a file, that the file exists and is not a directory. File permissions are
// not checked.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Serial.Port) == "" {
		return fmt.Errorf("config.serial.port is required")
	}
	if c.Serial.Baudrate <= 0 {
		return fmt.Errorf("config.serial.baudrate must be positive")
	}
	if c.Serial.Address == nil {
		return fmt.Errorf("config.serial.address is required")
	}
	if *c.Serial.Address < 0 || *c.Serial.Address > 127 {
		return fmt.Errorf("config.serial.address must be between 0 and 127")
	}
	if c.Serial.GuardTime != nil && *c.Serial.GuardTime < 0 {
		return fmt.Errorf("config.serial.guard_time_ms must not be negative")
	}

	if strings.TrimSpace(c.Keys.AuthKeyFile) != "" {
		if err := validateReadableFile(c.Keys.AuthKeyFile, "config.keys.auth_key_file"); err != nil {
			return err
		}
	}

	return nil
}

func (c *Config) resolvePaths(configPath string) {
	configDir := filepath.Dir(configPath)
	c.Keys.AuthKeyFile = resolvePath(configDir, c.Keys.AuthKeyFile)
}

func resolvePath(baseDir, path string) string {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" || filepath.IsAbs(trimmed) {
		return trimmed
	}
	return filepath.Clean(filepath.Join(baseDir, trimmed))
}

func validateReadableFile(path, field string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%s: %w", field, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s must point to a file, got a directory", field)
	}
	return nil
}
