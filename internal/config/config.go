package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Server holds all configuration for the arena server.
type Server struct {
	// Network
	BindAddress string `yaml:"bind_address"`
	Port        int    `yaml:"port"`

	// Upstream catalog
	PokeAPI PokeAPIConfig `yaml:"pokeapi"`

	// Database
	Database DatabaseConfig `yaml:"database"`

	// Admin endpoints (disabled when token_hash is empty)
	Admin AdminConfig `yaml:"admin"`
}

// PokeAPIConfig holds catalog client parameters.
type PokeAPIConfig struct {
	BaseURL         string `yaml:"base_url"`
	TimeoutSeconds  int    `yaml:"timeout_seconds"`
	CacheTTLSeconds int    `yaml:"cache_ttl_seconds"`
}

// Timeout returns the upstream call bound as a duration.
func (p PokeAPIConfig) Timeout() time.Duration {
	return time.Duration(p.TimeoutSeconds) * time.Second
}

// CacheTTL returns the cache expiry window as a duration.
func (p PokeAPIConfig) CacheTTL() time.Duration {
	return time.Duration(p.CacheTTLSeconds) * time.Second
}

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// AdminConfig guards the admin endpoints with a bcrypt token hash.
type AdminConfig struct {
	TokenHash string `yaml:"token_hash"`
}

// DefaultServer returns Server config with sensible defaults.
func DefaultServer() Server {
	return Server{
		BindAddress: "0.0.0.0",
		Port:        8080,
		PokeAPI: PokeAPIConfig{
			BaseURL:         "https://pokeapi.co/api/v2",
			TimeoutSeconds:  10,
			CacheTTLSeconds: 3600,
		},
		Database: DatabaseConfig{
			Host:    "127.0.0.1",
			Port:    5432,
			User:    "arena",
			Password: "arena",
			DBName:  "arena",
			SSLMode: "disable",
		},
	}
}

// LoadServer loads server config from a YAML file.
// If the file doesn't exist, returns defaults.
func LoadServer(path string) (Server, error) {
	cfg := DefaultServer()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}
