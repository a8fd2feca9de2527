package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the API service.
type Config struct {
	AppName                string
	AppEnv                 string
	AppPort                string
	LogLevel               string
	DatabaseURL            string
	RedisURL               string
	NATSURL                string
	RealtimeChannel        string
	JWTSecret              string
	JWTTTL                 time.Duration
	CloudinaryCloudName    string
	CloudinaryAPIKey       string
	CloudinaryAPISecret    string
	CloudinaryUploadFolder string
	UploadMaxSizeMB        int
	DashboardCacheTTL      time.Duration
	Currency               string
	CORSAllowOrigins       string
	RateLimitMax           int
	RateLimitWindow        time.Duration
	SeedEnabled            bool
	SeedToken              string
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// IsProduction reports whether the service runs in production mode.
func (c Config) IsProduction() bool {
	return strings.EqualFold(c.AppEnv, "production")
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("DRIVEDESK")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "DriveDesk API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("realtime.channel", "drivedesk")
	v.SetDefault("jwt.ttl", "12h")
	v.SetDefault("cloudinary.folder", "drivedesk/documents")
	v.SetDefault("upload.max_size_mb", 10)
	v.SetDefault("dashboard.cache_ttl", "5m")
	v.SetDefault("currency", "DH")
	v.SetDefault("cors.allow_origins", "*")
	v.SetDefault("rate_limit.max", 120)
	v.SetDefault("rate_limit.window", "1m")
	v.SetDefault("seed.enabled", false)

	durations := map[string]time.Duration{}
	for _, key := range []string{"jwt.ttl", "dashboard.cache_ttl", "rate_limit.window"} {
		d, err := time.ParseDuration(v.GetString(key))
		if err != nil {
			return Config{}, fmt.Errorf("invalid duration for %s: %w", key, err)
		}
		if d <= 0 {
			return Config{}, fmt.Errorf("%s must be positive", key)
		}
		durations[key] = d
	}

	cfg := Config{
		AppName:                v.GetString("app.name"),
		AppEnv:                 v.GetString("app.env"),
		AppPort:                v.GetString("app.port"),
		LogLevel:               strings.ToLower(v.GetString("log.level")),
		DatabaseURL:            v.GetString("database.url"),
		RedisURL:               v.GetString("redis.url"),
		NATSURL:                v.GetString("nats.url"),
		RealtimeChannel:        v.GetString("realtime.channel"),
		JWTSecret:              v.GetString("jwt.secret"),
		JWTTTL:                 durations["jwt.ttl"],
		CloudinaryCloudName:    v.GetString("cloudinary.cloud_name"),
		CloudinaryAPIKey:       v.GetString("cloudinary.api_key"),
		CloudinaryAPISecret:    v.GetString("cloudinary.api_secret"),
		CloudinaryUploadFolder: v.GetString("cloudinary.folder"),
		UploadMaxSizeMB:        v.GetInt("upload.max_size_mb"),
		DashboardCacheTTL:      durations["dashboard.cache_ttl"],
		Currency:               v.GetString("currency"),
		CORSAllowOrigins:       v.GetString("cors.allow_origins"),
		RateLimitMax:           v.GetInt("rate_limit.max"),
		RateLimitWindow:        durations["rate_limit.window"],
		SeedEnabled:            v.GetBool("seed.enabled"),
		SeedToken:              v.GetString("seed.token"),
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("jwt secret must be provided")
	}

	if cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("database url must be provided")
	}

	if cfg.SeedEnabled && cfg.SeedToken == "" {
		return Config{}, fmt.Errorf("seed token must be provided when seeding is enabled")
	}

	if cfg.UploadMaxSizeMB <= 0 {
		cfg.UploadMaxSizeMB = 10
	}

	if cfg.RateLimitMax <= 0 {
		cfg.RateLimitMax = 120
	}

	return cfg, nil
}
