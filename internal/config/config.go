package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const DefaultConfigPath = "inventory.yaml"

// Snapshot backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendMySQL = "mysql"
)

// Config holds the inventory ledger configuration.
type Config struct {
	Snapshot  SnapshotConfig  `yaml:"snapshot"`
	Server    ServerConfig    `yaml:"server"`
	Inventory InventoryConfig `yaml:"inventory"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// SnapshotConfig selects where the inventory is persisted.
type SnapshotConfig struct {
	Backend   string `yaml:"backend"` // file, redis, mysql
	Path      string `yaml:"path"`
	Ledger    string `yaml:"ledger"`
	RedisAddr string `yaml:"redis_addr"`
	MySQLDSN  string `yaml:"mysql_dsn"`
	Timeout   string `yaml:"timeout"`
}

type ServerConfig struct {
	HTTPAddr        string `yaml:"http_addr"`
	GRPCAddr        string `yaml:"grpc_addr"`
	ShutdownTimeout string `yaml:"shutdown_timeout"`
}

type InventoryConfig struct {
	LowStockThreshold float64 `yaml:"low_stock_threshold"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // console, json
	File   string `yaml:"file"`   // empty means stderr
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Snapshot: SnapshotConfig{
			Backend:   BackendFile,
			Path:      "inventory.json",
			Ledger:    "default",
			RedisAddr: "localhost:6379",
			MySQLDSN:  "root:root@tcp(localhost:3306)/inventory?parseTime=true",
			Timeout:   "5s",
		},
		Server: ServerConfig{
			HTTPAddr:        ":8080",
			GRPCAddr:        ":50051",
			ShutdownTimeout: "5s",
		},
		Inventory: InventoryConfig{
			LowStockThreshold: 5,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults; environment overrides apply in both cases.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("INVENTORY_SNAPSHOT_BACKEND"); v != "" {
		c.Snapshot.Backend = v
	}
	if v := os.Getenv("INVENTORY_SNAPSHOT_PATH"); v != "" {
		c.Snapshot.Path = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Snapshot.RedisAddr = v
	}
	if v := os.Getenv("MYSQL_DSN"); v != "" {
		c.Snapshot.MySQLDSN = v
	}
	if v := os.Getenv("INVENTORY_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("INVENTORY_HTTP_ADDR"); v != "" {
		c.Server.HTTPAddr = v
	}
	if v := os.Getenv("INVENTORY_GRPC_ADDR"); v != "" {
		c.Server.GRPCAddr = v
	}
}

// Validate checks the configuration for values that cannot work.
func (c *Config) Validate() error {
	switch c.Snapshot.Backend {
	case BackendFile, BackendRedis, BackendMySQL:
	default:
		return fmt.Errorf("unknown snapshot backend %q", c.Snapshot.Backend)
	}
	if c.Inventory.LowStockThreshold < 0 {
		return fmt.Errorf("low_stock_threshold must be non-negative, got %v", c.Inventory.LowStockThreshold)
	}
	switch c.Logging.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("unknown logging format %q", c.Logging.Format)
	}
	for name, value := range map[string]string{
		"snapshot.timeout":        c.Snapshot.Timeout,
		"server.shutdown_timeout": c.Server.ShutdownTimeout,
	} {
		if value == "" {
			continue
		}
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("invalid %s: %w", name, err)
		}
	}
	return nil
}

// GetSnapshotTimeout returns the snapshot I/O timeout as a duration.
func (c *Config) GetSnapshotTimeout() time.Duration {
	return parseDurationOr(c.Snapshot.Timeout, 5*time.Second)
}

// GetShutdownTimeout returns the graceful shutdown timeout as a duration.
func (c *Config) GetShutdownTimeout() time.Duration {
	return parseDurationOr(c.Server.ShutdownTimeout, 5*time.Second)
}

func parseDurationOr(value string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return d
}
