package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/mitchellh/go-homedir"
	toml "github.com/pelletier/go-toml/v2"
)

var (
	userHomeDir = homedir.Dir
)

type Config struct {
	Count int
	Debug bool
}

func NewConfig() *Config {
	return &Config{}
}

// LoadEnv fills fields that are still unset from CONTAINERS_RULE_* variables.
func (c *Config) LoadEnv() error {
	if c.Count == 0 {
		countStr := os.Getenv("CONTAINERS_RULE_COUNT")
		if countStr != "" {
			count, err := strconv.Atoi(countStr)
			if err != nil {
				return fmt.Errorf("incorrect value to count option from CONTAINERS_RULE_COUNT: %s: %w", countStr, err)
			}
			c.Count = count
		}
	}

	if !c.Debug {
		debugStr := os.Getenv("CONTAINERS_RULE_DEBUG")
		if debugStr != "" {
			debug, err := strconv.ParseBool(debugStr)
			if err != nil {
				return fmt.Errorf("incorrect value to debug option from CONTAINERS_RULE_DEBUG: %s: %w", debugStr, err)
			}
			c.Debug = debug
		}
	}

	return c.validate()
}

type runnerConfig struct {
	Count int
	Debug bool
}

type rootConfig struct {
	Runner runnerConfig
}

func (c *Config) LoadTOML(filename string) error {
	f, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	var cfg rootConfig

	err = toml.NewDecoder(f).DisallowUnknownFields().Decode(&cfg)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", filename, err)
	}

	runnerConfig := cfg.Runner

	if c.Count == 0 {
		c.Count = runnerConfig.Count
	}
	if !c.Debug {
		c.Debug = runnerConfig.Debug
	}

	return c.validate()
}

func (c *Config) validate() error {
	if c.Count < 0 {
		return fmt.Errorf("count must not be negative: %d", c.Count)
	}
	return nil
}

func LoadTOMLFilename(filename string) string {
	if filename != "" {
		return filename
	}

	homeDir, err := userHomeDir()
	if err == nil {
		tomlFile := filepath.Join(homeDir, ".containers_rule.toml")
		if fileExists(tomlFile) {
			return tomlFile
		}

		tomlFile = filepath.Join(homeDir, "/etc/containers_rule.toml")
		if fileExists(tomlFile) {
			return tomlFile
		}
	}

	tomlFile := "/etc/containers_rule.toml"
	if fileExists(tomlFile) {
		return tomlFile
	}

	return ""
}

func fileExists(filename string) bool {
	_, err := os.Stat(filename)

	return err == nil
}
