package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration (env + Viper).
type Config struct {
	Env            string
	Port           string
	APIBaseURL     string // base URL of the remote listing API
	RedisURL       string
	SessionSecret  string
	SessionTTL     time.Duration
	MaxUploadBytes int64 // per-file cap for listing media
	MaxImageCount  int   // cap on images per listing
	SearchDebounce time.Duration
}

// Load loads config from env and optional .env file.
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	port := viper.GetString("PORT")
	if port == "" {
		port = "3000"
	}
	env := viper.GetString("APP_ENV")
	if env == "" {
		env = "development"
	}

	apiBase := strings.TrimRight(viper.GetString("API_BASE_URL"), "/")
	if apiBase == "" {
		return nil, fmt.Errorf("config: API_BASE_URL is not set")
	}

	maxUpload := viper.GetInt64("MAX_UPLOAD_BYTES")
	if maxUpload <= 0 {
		maxUpload = 10 << 20
	}
	maxImages := viper.GetInt("MAX_IMAGE_COUNT")
	if maxImages <= 0 {
		maxImages = 10
	}
	debounceMs := viper.GetInt("SEARCH_DEBOUNCE_MS")
	if debounceMs <= 0 {
		debounceMs = 500
	}
	ttl := viper.GetDuration("SESSION_TTL")
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	return &Config{
		Env:            env,
		Port:           port,
		APIBaseURL:     apiBase,
		RedisURL:       viper.GetString("REDIS_URL"),
		SessionSecret:  viper.GetString("SESSION_SECRET"),
		SessionTTL:     ttl,
		MaxUploadBytes: maxUpload,
		MaxImageCount:  maxImages,
		SearchDebounce: time.Duration(debounceMs) * time.Millisecond,
	}, nil
}
