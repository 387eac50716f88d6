package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
)

type Config struct {
	App     AppConfig     `toml:"app"`
	Auth    AuthConfig    `toml:"auth"`
	SQLite  SQLiteConfig  `toml:"sqlite"`
	Uploads UploadsConfig `toml:"uploads"`
}

type AppConfig struct {
	Name    string `toml:"name"`
	Env     string `toml:"env"`
	Host    string `toml:"host"`
	Port    int    `toml:"port"`
	GinMode string `toml:"gin_mode"`
}

type AuthConfig struct {
	SessionSecret string `toml:"session_secret"`
	SessionName   string `toml:"session_name"`
}

type SQLiteConfig struct {
	Path string `toml:"path"`
}

type UploadsConfig struct {
	Dir          string `toml:"dir"`
	MaxUploadMiB int    `toml:"max_upload_mib"`
}

func Load() (*Config, error) {
	cfg := defaultConfig()

	configPath := getEnv("CONFIG_FILE", "configs/config.toml")
	if _, err := os.Stat(configPath); err == nil {
		if _, err := toml.DecodeFile(configPath, cfg); err != nil {
			return nil, fmt.Errorf("decode config file failed: %w", err)
		}
	}

	overrideByEnv(cfg)
	return cfg, nil
}

func (c *Config) HTTPAddr() string {
	return fmt.Sprintf("%s:%d", c.App.Host, c.App.Port)
}

// MaxUploadBytes is the request body cap applied to every request; uploads
// are the only payload that can get anywhere near it.
func (c *UploadsConfig) MaxUploadBytes() int64 {
	return int64(c.MaxUploadMiB) << 20
}

func defaultConfig() *Config {
	return &Config{
		App: AppConfig{
			Name:    "blogpost",
			Env:     "dev",
			Host:    "0.0.0.0",
			Port:    8080,
			GinMode: "debug",
		},
		Auth: AuthConfig{
			SessionSecret: "change-me-in-production",
			SessionName:   "blogsession",
		},
		SQLite: SQLiteConfig{
			Path: "BlogPost.db",
		},
		Uploads: UploadsConfig{
			Dir:          "static/uploads",
			MaxUploadMiB: 16,
		},
	}
}

func overrideByEnv(cfg *Config) {
	cfg.App.Name = getEnv("APP_NAME", cfg.App.Name)
	cfg.App.Env = getEnv("APP_ENV", cfg.App.Env)
	cfg.App.Host = getEnv("APP_HOST", cfg.App.Host)
	cfg.App.Port = getEnvAsInt("APP_PORT", cfg.App.Port)
	cfg.App.GinMode = getEnv("GIN_MODE", cfg.App.GinMode)

	cfg.Auth.SessionSecret = getEnv("SESSION_SECRET", cfg.Auth.SessionSecret)
	cfg.Auth.SessionName = getEnv("SESSION_NAME", cfg.Auth.SessionName)

	cfg.SQLite.Path = getEnv("SQLITE_PATH", cfg.SQLite.Path)

	cfg.Uploads.Dir = getEnv("UPLOADS_DIR", cfg.Uploads.Dir)
	cfg.Uploads.MaxUploadMiB = getEnvAsInt("MAX_UPLOAD_MIB", cfg.Uploads.MaxUploadMiB)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return parsed
}
