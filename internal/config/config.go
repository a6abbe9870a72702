// Package config loads sqlb settings from defaults, an sqlb.yaml file and
// SQLB_* environment variables, in increasing order of precedence.
// Command-line flags are applied on top by the CLI.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/roach88/sqlb/internal/store"
)

const (
	maxWalkDepth = 25

	// EnvPrefix prefixes every environment override, e.g.
	// SQLB_DATABASE_DSN.
	EnvPrefix = "SQLB"
)

// Config represents the sqlb configuration from sqlb.yaml.
type Config struct {
	Database DatabaseConfig `mapstructure:"database" yaml:"database" json:"database"`
	Output   OutputConfig   `mapstructure:"output" yaml:"output" json:"output"`
}

// DatabaseConfig holds database connection settings. DSN, when set, is
// used verbatim; otherwise the mysql driver assembles one from the
// discrete fields and sqlite3 uses Path.
type DatabaseConfig struct {
	Driver   string        `mapstructure:"driver" yaml:"driver" json:"driver"`
	DSN      string        `mapstructure:"dsn" yaml:"dsn" json:"dsn"`
	Host     string        `mapstructure:"host" yaml:"host" json:"host"`
	Port     int           `mapstructure:"port" yaml:"port" json:"port"`
	Name     string        `mapstructure:"name" yaml:"name" json:"name"`
	User     string        `mapstructure:"user" yaml:"user" json:"user"`
	Password string        `mapstructure:"password" yaml:"password" json:"password"`
	Path     string        `mapstructure:"path" yaml:"path" json:"path"`
	Timeout  time.Duration `mapstructure:"timeout" yaml:"timeout" json:"timeout"`
}

// OutputConfig holds CLI output settings.
type OutputConfig struct {
	Format string `mapstructure:"format" yaml:"format" json:"format"`
}

// Load discovers and loads configuration with proper precedence:
// env > config file > defaults.
//
// Returns the loaded config, the path to the config file (empty if none found),
// and any error encountered.
func Load(explicitConfigPath string) (*Config, string, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	configPath, err := findConfigFile(explicitConfigPath)
	if err != nil {
		return nil, "", err
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, configPath, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, configPath, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, configPath, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("database.driver", store.DriverMySQL)
	v.SetDefault("database.dsn", "")
	v.SetDefault("database.host", "127.0.0.1")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.name", "")
	v.SetDefault("database.user", "")
	v.SetDefault("database.password", "")
	v.SetDefault("database.path", "")
	v.SetDefault("database.timeout", "10s")

	v.SetDefault("output.format", "text")
}

// findConfigFile finds the config file to use.
// If explicitPath is provided, it validates the file exists.
// Otherwise, it walks up from cwd looking for sqlb.yaml or sqlb.yml,
// stopping at a .git directory or after maxWalkDepth levels.
func findConfigFile(explicitPath string) (string, error) {
	if explicitPath != "" {
		if _, err := os.Stat(explicitPath); err != nil {
			return "", fmt.Errorf("config file not found: %s", explicitPath)
		}
		return explicitPath, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting cwd: %w", err)
	}

	dir := cwd
	for i := 0; i < maxWalkDepth; i++ {
		for _, name := range []string{"sqlb.yaml", "sqlb.yml"} {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				return path, nil
			}
		}

		// Stop at repo root
		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			break
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", nil
}

// StoreOptions converts the database section to store.Options.
func (c *Config) StoreOptions() store.Options {
	db := c.Database
	return store.Options{
		Driver:   db.Driver,
		DSN:      db.DSN,
		Host:     db.Host,
		Port:     db.Port,
		User:     db.User,
		Password: db.Password,
		Name:     db.Name,
		Path:     db.Path,
		Timeout:  db.Timeout,
	}
}

// Redacted returns a copy with the password and DSN masked, for display.
func (c Config) Redacted() Config {
	if c.Database.Password != "" {
		c.Database.Password = "****"
	}
	if c.Database.DSN != "" {
		c.Database.DSN = "****"
	}
	return c
}
