package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Catalog   CatalogConfig   `mapstructure:"catalog"`
	Session   SessionConfig   `mapstructure:"session"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Tracing   TracingConfig   `mapstructure:"tracing"`
	Log       LogConfig       `mapstructure:"log"`
	CORS      CORSConfig      `mapstructure:"cors"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

type ServerConfig struct {
	Port string
	Mode string
}

// CatalogConfig 环境变量只给出秒数，Debounce 由 LoadConfig 换算
type CatalogConfig struct {
	Path            string        `mapstructure:"path"`
	Watch           bool          `mapstructure:"watch"`
	DebounceSeconds int           `mapstructure:"debounce_seconds"`
	Debounce        time.Duration `mapstructure:"-"`
}

type SessionConfig struct {
	MaxSessions  int           `mapstructure:"max_sessions"`
	TTLMinutes   int           `mapstructure:"ttl_minutes"`
	TTL          time.Duration `mapstructure:"-"`
	SecureCookie bool          `mapstructure:"secure_cookie"`
}

// StorageConfig 导出归档：每次下载的 xlsx 另存一份，type=none 时关闭
type StorageConfig struct {
	Type          string `mapstructure:"type"`
	Prefix        string `mapstructure:"prefix"`
	LocalPath     string `mapstructure:"local_path"`
	MinioEndpoint string `mapstructure:"minio_endpoint"`
	MinioAccessID string `mapstructure:"minio_access_key"`
	MinioSecret   string `mapstructure:"minio_secret_key"`
	MinioBucket   string `mapstructure:"minio_bucket"`
	MinioUseSSL   bool   `mapstructure:"minio_use_ssl"`
	OSSEndpoint   string `mapstructure:"oss_endpoint"`
	OSSAccessKey  string `mapstructure:"oss_access_key"`
	OSSSecretKey  string `mapstructure:"oss_secret_key"`
	OSSBucket     string `mapstructure:"oss_bucket"`
}

type TracingConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	CollectorEndpoint string `mapstructure:"collector_endpoint"`
	ServiceName       string `mapstructure:"service_name"`
}

type LogConfig struct {
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type RateLimitConfig struct {
	MaxRequests   int `mapstructure:"max_requests"`
	WindowMinutes int `mapstructure:"window_minutes"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "release")

	v.SetDefault("catalog.path", "configs/wesenselemente.json")
	v.SetDefault("catalog.watch", false)
	v.SetDefault("catalog.debounce_seconds", 1)

	v.SetDefault("session.max_sessions", 1000)
	v.SetDefault("session.ttl_minutes", 120)
	v.SetDefault("session.secure_cookie", false)

	v.SetDefault("storage.type", "none")
	v.SetDefault("storage.prefix", "exports")
	v.SetDefault("storage.local_path", "exports")

	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.service_name", "org-diagnostics")

	v.SetDefault("log.file", "logs/app.log")
	v.SetDefault("log.max_size_mb", 100)
	v.SetDefault("log.max_backups", 5)
	v.SetDefault("log.max_age_days", 30)

	v.SetDefault("rate_limit.max_requests", 600)
	v.SetDefault("rate_limit.window_minutes", 1)
}

func bindEnv(v *viper.Viper) {
	// Server
	v.BindEnv("server.port", "SERVER_PORT")
	v.BindEnv("server.mode", "SERVER_MODE")

	// Catalog
	v.BindEnv("catalog.path", "CATALOG_PATH")
	v.BindEnv("catalog.watch", "CATALOG_WATCH")
	v.BindEnv("catalog.debounce_seconds", "CATALOG_DEBOUNCE_SECONDS")

	// Session
	v.BindEnv("session.max_sessions", "SESSION_MAX")
	v.BindEnv("session.ttl_minutes", "SESSION_TTL_MINUTES")

	// Storage
	v.BindEnv("storage.type", "STORAGE_TYPE")
	v.BindEnv("storage.local_path", "STORAGE_LOCAL_PATH")
	v.BindEnv("storage.minio_endpoint", "MINIO_ENDPOINT")
	v.BindEnv("storage.minio_access_key", "MINIO_ACCESS_KEY")
	v.BindEnv("storage.minio_secret_key", "MINIO_SECRET_KEY")
	v.BindEnv("storage.minio_bucket", "MINIO_BUCKET")
	v.BindEnv("storage.oss_endpoint", "OSS_ENDPOINT")
	v.BindEnv("storage.oss_access_key", "OSS_ACCESS_KEY")
	v.BindEnv("storage.oss_secret_key", "OSS_SECRET_KEY")
	v.BindEnv("storage.oss_bucket", "OSS_BUCKET")

	// Tracing
	v.BindEnv("tracing.enabled", "TRACING_ENABLED")
	v.BindEnv("tracing.collector_endpoint", "TRACING_COLLECTOR_ENDPOINT")
}

// LoadConfig 读取 path 目录下的 config.yaml；文件不存在时只使用默认值与环境变量
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.SetEnvPrefix("MEIHEI")
	v.AutomaticEnv()

	setDefaults(v)
	bindEnv(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	cfg.Session.TTL = time.Duration(cfg.Session.TTLMinutes) * time.Minute
	cfg.Catalog.Debounce = time.Duration(cfg.Catalog.DebounceSeconds) * time.Second

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	if cfg.Storage.Type == "local" {
		if _, err := os.Stat(cfg.Storage.LocalPath); os.IsNotExist(err) {
			os.MkdirAll(cfg.Storage.LocalPath, 0755)
		}
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Catalog.Path == "" {
		return fmt.Errorf("catalog.path must be set")
	}
	if c.Session.MaxSessions <= 0 {
		return fmt.Errorf("session.max_sessions must be positive, got %d", c.Session.MaxSessions)
	}
	if c.Session.TTLMinutes <= 0 {
		return fmt.Errorf("session.ttl_minutes must be positive, got %d", c.Session.TTLMinutes)
	}
	if c.Catalog.DebounceSeconds < 0 {
		return fmt.Errorf("catalog.debounce_seconds must not be negative")
	}
	switch c.Storage.Type {
	case "none", "local", "minio", "oss":
	default:
		return fmt.Errorf("unknown storage.type %q", c.Storage.Type)
	}
	if c.RateLimit.MaxRequests <= 0 || c.RateLimit.WindowMinutes <= 0 {
		return fmt.Errorf("rate_limit.max_requests and rate_limit.window_minutes must be positive")
	}
	return nil
}
