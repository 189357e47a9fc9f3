package config

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration loaded from environment variables or config files.
type Config struct {
	AppEnv          string        `mapstructure:"APP_ENV" validate:"required,oneof=development staging production test"`
	HTTPAddr        string        `mapstructure:"HTTP_ADDR" validate:"required,hostname_port"`
	ShutdownTimeout time.Duration `mapstructure:"SHUTDOWN_TIMEOUT" validate:"required"`

	LogLevel  string `mapstructure:"LOG_LEVEL" validate:"required,oneof=debug info warn error dpanic panic fatal"`
	LogFormat string `mapstructure:"LOG_FORMAT" validate:"required,oneof=json console"`

	// Local file backend and upload fallback.
	DataDir   string `mapstructure:"DATA_DIR" validate:"required"`
	UploadDir string `mapstructure:"UPLOAD_DIR" validate:"required"`

	// Relational backend and object storage.
	DatabaseURL        string `mapstructure:"DATABASE_URL" validate:"omitempty,url|uri"`
	SupabaseURL        string `mapstructure:"SUPABASE_URL" validate:"omitempty,url"`
	SupabaseServiceKey string `mapstructure:"SUPABASE_SERVICE_ROLE_KEY"`
	SupabaseBucket     string `mapstructure:"SUPABASE_BUCKET" validate:"required"`

	// Remote key-value backend.
	KVURL    string `mapstructure:"KV_URL" validate:"omitempty,url"`
	KVToken  string `mapstructure:"KV_TOKEN"`
	KVPrefix string `mapstructure:"KV_PREFIX"`

	// Hosted is set on the deployment platform, where project writes need
	// the relational backend and local files do not persist.
	Hosted     bool `mapstructure:"HOSTED"`
	BuildPhase bool `mapstructure:"BUILD_PHASE"`

	ContentMode    string        `mapstructure:"CONTENT_MODE" validate:"required,oneof=auto direct http"`
	ContentTimeout time.Duration `mapstructure:"CONTENT_TIMEOUT" validate:"required"`
	SiteURL        string        `mapstructure:"SITE_URL" validate:"omitempty,url"`

	AdminPassword     string `mapstructure:"ADMIN_PASSWORD" validate:"required"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	AdminRequireToken bool   `mapstructure:"ADMIN_REQUIRE_TOKEN"`

	// CORSOrigins is a comma-separated allow list; "*" allows any origin.
	CORSOrigins string `mapstructure:"CORS_ORIGINS" validate:"required"`

	RateLimitRPS   float64 `mapstructure:"RATE_LIMIT_RPS" validate:"gt=0"`
	RateLimitBurst int     `mapstructure:"RATE_LIMIT_BURST" validate:"gte=1"`
	// TrustedProxyHops is how many reverse proxies in front of the API set
	// X-Forwarded-For. Zero limits by the connection's address.
	TrustedProxyHops int `mapstructure:"TRUSTED_PROXY_HOPS" validate:"gte=0,lte=16"`

	GoMaxProcs int `mapstructure:"GOMAXPROCS" validate:"gte=0,lte=4096"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

var keys = []string{
	"APP_ENV",
	"HTTP_ADDR",
	"SHUTDOWN_TIMEOUT",
	"LOG_LEVEL",
	"LOG_FORMAT",
	"DATA_DIR",
	"UPLOAD_DIR",
	"DATABASE_URL",
	"SUPABASE_URL",
	"SUPABASE_SERVICE_ROLE_KEY",
	"SUPABASE_BUCKET",
	"KV_URL",
	"KV_TOKEN",
	"KV_PREFIX",
	"HOSTED",
	"BUILD_PHASE",
	"CONTENT_MODE",
	"CONTENT_TIMEOUT",
	"SITE_URL",
	"ADMIN_PASSWORD",
	"JWT_SECRET",
	"ADMIN_REQUIRE_TOKEN",
	"CORS_ORIGINS",
	"RATE_LIMIT_RPS",
	"RATE_LIMIT_BURST",
	"TRUSTED_PROXY_HOPS",
	"GOMAXPROCS",
}

// Load initializes configuration using Viper. It loads from .env if present,
// applies defaults, binds env vars, and validates the result.
func Load() (*Config, error) {
	// Load .env if present (non-fatal)
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AutomaticEnv()

	v.SetDefault("APP_ENV", "development")
	v.SetDefault("HTTP_ADDR", "0.0.0.0:3000")
	v.SetDefault("SHUTDOWN_TIMEOUT", "15s")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("DATA_DIR", "data")
	v.SetDefault("UPLOAD_DIR", "public/uploads")
	v.SetDefault("SUPABASE_BUCKET", "uploads")
	v.SetDefault("CONTENT_MODE", "auto")
	v.SetDefault("CONTENT_TIMEOUT", "10s")
	v.SetDefault("ADMIN_PASSWORD", "admin123")
	v.SetDefault("CORS_ORIGINS", "*")
	v.SetDefault("RATE_LIMIT_RPS", 10)
	v.SetDefault("RATE_LIMIT_BURST", 20)
	v.SetDefault("TRUSTED_PROXY_HOPS", 0)
	v.SetDefault("GOMAXPROCS", 0)

	// Optional config file
	_ = v.ReadInConfig()

	for _, key := range keys {
		_ = v.BindEnv(key)
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("config unmarshal error: %w", err)
	}

	// Parse duration types that may come as string
	for key, dst := range map[string]*time.Duration{
		"SHUTDOWN_TIMEOUT": &c.ShutdownTimeout,
		"CONTENT_TIMEOUT":  &c.ContentTimeout,
	} {
		if s := v.GetString(key); s != "" {
			d, err := time.ParseDuration(s)
			if err != nil {
				return nil, fmt.Errorf("invalid %s: %w", key, err)
			}
			*dst = d
		}
	}

	if err := validate.Struct(&c); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if c.GoMaxProcs > 0 {
		runtime.GOMAXPROCS(c.GoMaxProcs)
	}
	return &c, nil
}

// MustLoad loads configuration or exits the process on failure.
func MustLoad() *Config {
	c, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	return c
}

// ObjectStorageEnabled reports whether uploads should go to Supabase Storage.
func (c *Config) ObjectStorageEnabled() bool {
	return c.SupabaseURL != "" && c.SupabaseServiceKey != ""
}
