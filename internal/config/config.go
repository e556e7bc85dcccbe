package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config drives the demo run.
type Config struct {
	Capacity int  `yaml:"capacity"`
	Count    int  `yaml:"count"`
	Random   bool `yaml:"random"`
	Debug    bool `yaml:"debug"`
}

func Default() *Config {
	return &Config{Capacity: 150, Count: 100}
}

// Load reads a YAML file on top of the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Capacity < 0 {
		return fmt.Errorf("capacity must be >= 0, got %d", c.Capacity)
	}
	if c.Count < 0 {
		return fmt.Errorf("count must be >= 0, got %d", c.Count)
	}
	return nil
}
