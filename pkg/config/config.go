package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
		Output string `yaml:"output"`
	} `yaml:"logging"`
	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"`
	} `yaml:"metrics"`
	Cache struct {
		Backend    string        `yaml:"backend"` // none, memory, redis, layered
		TTL        time.Duration `yaml:"ttl"`
		MaxEntries int           `yaml:"max_entries"`
		Redis      struct {
			Host     string `yaml:"host"`
			Port     int    `yaml:"port"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
			Prefix   string `yaml:"prefix"`
		} `yaml:"redis"`
	} `yaml:"cache"`
	Data struct {
		Dir              string            `yaml:"dir"`
		Assets           map[string]string `yaml:"assets"` // asset id -> file name
		DefaultAsset     string            `yaml:"default_asset"`
		DefaultFrequency string            `yaml:"default_frequency"`
	} `yaml:"data"`
	Portfolio struct {
		Weights       map[string]float64 `yaml:"weights"`
		Benchmark     string             `yaml:"benchmark"`
		RebaseOnAlign bool               `yaml:"rebase_on_align"`
	} `yaml:"portfolio"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			c.Server.Port = p
		}
	}
	if v := os.Getenv("DATA_DIR"); v != "" {
		c.Data.Dir = v
	}
	if v := os.Getenv("CACHE_BACKEND"); v != "" {
		c.Cache.Backend = v
	}
	if v := os.Getenv("REDIS_HOST"); v != "" {
		c.Cache.Redis.Host = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		c.Cache.Redis.Password = v
	}
	if v := os.Getenv("BENCHMARK"); v != "" {
		c.Portfolio.Benchmark = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}

	return c, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Data.Dir == "" {
		return fmt.Errorf("data.dir is required")
	}
	if len(c.Data.Assets) == 0 {
		return fmt.Errorf("data.assets cannot be empty")
	}
	if c.Portfolio.Benchmark == "" {
		return fmt.Errorf("portfolio.benchmark is required")
	}
	if _, ok := c.Data.Assets[c.Portfolio.Benchmark]; !ok {
		return fmt.Errorf("portfolio.benchmark '%s' is not a configured asset", c.Portfolio.Benchmark)
	}
	if len(c.Portfolio.Weights) == 0 {
		return fmt.Errorf("portfolio.weights cannot be empty")
	}
	for id := range c.Portfolio.Weights {
		if _, ok := c.Data.Assets[id]; !ok {
			return fmt.Errorf("portfolio.weights references unknown asset '%s'", id)
		}
	}
	switch c.Cache.Backend {
	case "", "none", "memory", "redis", "layered":
	default:
		return fmt.Errorf("cache.backend must be one of none|memory|redis|layered, got '%s'", c.Cache.Backend)
	}
	if c.Data.DefaultAsset != "" {
		if _, ok := c.Data.Assets[c.Data.DefaultAsset]; !ok {
			return fmt.Errorf("data.default_asset '%s' is not a configured asset", c.Data.DefaultAsset)
		}
	}
	return nil
}

// Catalog resolves asset ids to absolute source file paths.
func (c *Config) Catalog() map[string]string {
	catalog := make(map[string]string, len(c.Data.Assets))
	for id, file := range c.Data.Assets {
		catalog[id] = filepath.Join(c.Data.Dir, file)
	}
	return catalog
}
