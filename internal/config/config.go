package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultConfigPath is where the server looks for its YAML config when no
// -config flag is given. A missing file is fine: env vars and defaults apply.
const DefaultConfigPath = "config.yaml"

const (
	defaultPort     = 5000
	defaultDatabase = "estate"
)

// AppConfig holds runtime startup configuration loaded from YAML with
// environment overrides.
type AppConfig struct {
	Port           int         `yaml:"port"`
	Env            string      `yaml:"env"` // "development" | "production"
	Mongo          MongoConfig `yaml:"mongo"`
	JWTSecret      string      `yaml:"jwt_secret"`
	AllowedOrigins []string    `yaml:"allowed_origins"`
	Paths          PathsConfig `yaml:"paths"`
	S3             S3Config    `yaml:"s3"`
}

type MongoConfig struct {
	URI      string `yaml:"uri"`
	Database string `yaml:"database"`
}

// PathsConfig points at the on-disk directories the server serves.
// Frontend and Admin are optional; empty disables the mount.
type PathsConfig struct {
	Uploads  string `yaml:"uploads"`
	Frontend string `yaml:"frontend"`
	Admin    string `yaml:"admin"`
}

// S3Config switches uploads from local disk to an S3 bucket when enabled.
type S3Config struct {
	Enable          bool   `yaml:"enable"`
	Bucket          string `yaml:"bucket"`
	Region          string `yaml:"region"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
	Endpoint        string `yaml:"endpoint"`
	CustomDomain    string `yaml:"custom_domain"`
	PathStyleAccess bool   `yaml:"path_style_access"`
}

// Load reads the YAML file at path (if it exists), applies environment
// variable overrides, then fills defaults. It never touches global state.
func Load(path string) (*AppConfig, error) {
	cfg := &AppConfig{}

	if path != "" {
		raw, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(raw, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		case os.IsNotExist(err):
			// env-only setup
		default:
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	applyEnv(cfg)
	applyDefaults(cfg)
	return cfg, nil
}

// IsDev reports whether the app runs in development mode.
func (c *AppConfig) IsDev() bool {
	return !strings.EqualFold(strings.TrimSpace(c.Env), "production")
}

func applyEnv(cfg *AppConfig) {
	if v := envStr("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil && port > 0 {
			cfg.Port = port
		}
	}
	if v := envStr("ENV", "NODE_ENV"); v != "" {
		cfg.Env = v
	}
	if v := envStr("MONGODB_URI", "MONGO_URI"); v != "" {
		cfg.Mongo.URI = v
	}
	if v := envStr("MONGODB_DB"); v != "" {
		cfg.Mongo.Database = v
	}
	if v := envStr("JWT_SECRET"); v != "" {
		cfg.JWTSecret = v
	}
	if v := envStr("UPLOADS_DIR"); v != "" {
		cfg.Paths.Uploads = v
	}
	if v := envStr("ALLOWED_ORIGINS"); v != "" {
		cfg.AllowedOrigins = splitList(v)
	}
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Port <= 0 {
		cfg.Port = defaultPort
	}
	if cfg.Mongo.Database == "" {
		cfg.Mongo.Database = defaultDatabase
	}
	if cfg.Paths.Uploads == "" {
		cfg.Paths.Uploads = "uploads"
	}
}

// envStr returns the first non-empty value among the named variables.
func envStr(names ...string) string {
	for _, name := range names {
		if v := strings.TrimSpace(os.Getenv(name)); v != "" {
			return v
		}
	}
	return ""
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
