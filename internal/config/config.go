package config

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
)

type Config struct {
	Primary  Primary        `koanf:"primary"`
	Server   ServerConfig   `koanf:"server"`
	Yappy    YappyConfig    `koanf:"yappy"`
	Storage  StorageConfig  `koanf:"storage"`
	Database DatabaseConfig `koanf:"database"`
	Logger   LoggerConfig   `koanf:"logger"`
}

type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

type ServerConfig struct {
	Port         string        `koanf:"port" validate:"required"`
	ReadTimeout  time.Duration `koanf:"read_timeout" validate:"required"`
	WriteTimeout time.Duration `koanf:"write_timeout" validate:"required"`
	IdleTimeout  time.Duration `koanf:"idle_timeout" validate:"required"`
}

// YappyConfig holds the provider endpoints, the process credentials sent on
// every call and the device descriptor used when provisioning a session.
type YappyConfig struct {
	BaseURL        string        `koanf:"base_url" validate:"required"`
	SandboxBaseURL string        `koanf:"sandbox_base_url" validate:"required"`
	Sandbox        bool          `koanf:"sandbox"`
	APIKey         string        `koanf:"api_key" validate:"required"`
	SecretKey      string        `koanf:"secret_key" validate:"required"`
	IDDevice       string        `koanf:"id_device" validate:"required"`
	NameDevice     string        `koanf:"name_device" validate:"required"`
	UserDevice     string        `koanf:"user_device" validate:"required"`
	GroupID        string        `koanf:"group_id" validate:"required"`
	ConnTimeout    time.Duration `koanf:"conn_timeout" validate:"required"`
}

// ResolveBaseURL picks the sandbox or production endpoint.
func (c YappyConfig) ResolveBaseURL() string {
	if c.Sandbox {
		return c.SandboxBaseURL
	}
	return c.BaseURL
}

// StorageConfig selects the session store implementation.
type StorageConfig struct {
	Driver  string `koanf:"driver" validate:"required,oneof=jsonfile postgres"`
	DataDir string `koanf:"data_dir"`
}

// DatabaseConfig is only consulted when the postgres storage driver is
// selected, so its fields are not individually required.
type DatabaseConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	User            string        `koanf:"user"`
	Password        string        `koanf:"password"`
	Name            string        `koanf:"name"`
	SSLMode         string        `koanf:"ssl_mode"`
	MaxOpenConns    int           `koanf:"max_open_conns"`
	MaxIdleConns    int           `koanf:"max_idle_conns"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `koanf:"conn_max_idle_time"`
}

type LoggerConfig struct {
	Level string `koanf:"level"`
}

// NewLogger builds the process-wide slog logger at the configured level.
func (c LoggerConfig) NewLogger() *slog.Logger {
	var level slog.Level
	switch strings.ToLower(c.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
}

var defaults = map[string]any{
	"primary.env":          "development",
	"server.port":          "3000",
	"server.read_timeout":  "30s",
	"server.write_timeout": "30s",
	"server.idle_timeout":  "60s",
	"yappy.sandbox":        true,
	"yappy.conn_timeout":   "30s",
	"storage.driver":       "jsonfile",
	"storage.data_dir":     "./data",
	"logger.level":         "info",
}

func LoadConfig() (*Config, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		logger.Error("failed to load defaults", "error", err)
		return nil, err
	}

	err := k.Load(env.Provider("GATEWAY_", ".", func(s string) string {
		return strings.ReplaceAll(
			strings.ToLower(strings.TrimPrefix(s, "GATEWAY_")),
			"__",
			".",
		)
	}), nil)
	if err != nil {
		logger.Error("failed to load environment variables", "error", err)
		return nil, err
	}

	mainConfig := &Config{}

	err = k.Unmarshal("", mainConfig)
	if err != nil {
		logger.Error("could not unmarshal main config", "error", err)
		return nil, err
	}

	validate := validator.New()

	err = validate.Struct(mainConfig)
	if err != nil {
		logger.Error("config validation failed", "error", err)
		return nil, err
	}

	return mainConfig, nil
}
