package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	// Server
	Port string `mapstructure:"PORT"`
	Env  string `mapstructure:"ENV"`

	// Database
	DatabaseURL string `mapstructure:"DATABASE_URL"`

	// Redis (optional; empty disables the analysis cache)
	RedisURL string `mapstructure:"REDIS_URL"`

	// CORS
	CorsOrigins []string `mapstructure:"CORS_ORIGINS"`

	// Rate limiting
	RateLimitRPS   float64 `mapstructure:"RATE_LIMIT_RPS"`
	RateLimitBurst int     `mapstructure:"RATE_LIMIT_BURST"`

	// Caching / background jobs
	AnalysisCacheTTL        time.Duration `mapstructure:"ANALYSIS_CACHE_TTL"`
	BaselineRefreshInterval string        `mapstructure:"BASELINE_REFRESH_INTERVAL"`
	EnableBackgroundJobs    bool          `mapstructure:"ENABLE_BACKGROUND_JOBS"`

	// Import limits
	MaxImportRows int `mapstructure:"MAX_IMPORT_ROWS"`

	// Analytics threshold overrides. The full set of tunables lives in
	// analytics.Thresholds; the ones most likely to need tuning per
	// deployment are surfaced through the environment here.
	IQRMultiplier            float64 `mapstructure:"ANALYTICS_IQR_MULTIPLIER"`
	OutlierMinSamples        int     `mapstructure:"ANALYTICS_OUTLIER_MIN_SAMPLES"`
	OverlapGapYards          float64 `mapstructure:"ANALYTICS_OVERLAP_GAP_YARDS"`
	CorrelationThreshold     float64 `mapstructure:"ANALYTICS_CORRELATION_THRESHOLD"`
	LateSessionFatigueRatio  float64 `mapstructure:"ANALYTICS_FATIGUE_RATIO"`
	DirectionStdDevThreshold float64 `mapstructure:"ANALYTICS_DIRECTION_STDDEV_THRESHOLD"`
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("DATABASE_URL", "range_sessions.db")
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("CORS_ORIGINS", "http://localhost:5173,http://localhost:3000")
	viper.SetDefault("RATE_LIMIT_RPS", 10.0)
	viper.SetDefault("RATE_LIMIT_BURST", 20)
	viper.SetDefault("ANALYSIS_CACHE_TTL", "10m")
	viper.SetDefault("BASELINE_REFRESH_INTERVAL", "1h")
	viper.SetDefault("ENABLE_BACKGROUND_JOBS", true)
	viper.SetDefault("MAX_IMPORT_ROWS", 5000)

	// Analytics defaults mirror analytics.DefaultThresholds
	viper.SetDefault("ANALYTICS_IQR_MULTIPLIER", 1.5)
	viper.SetDefault("ANALYTICS_OUTLIER_MIN_SAMPLES", 4)
	viper.SetDefault("ANALYTICS_OVERLAP_GAP_YARDS", 5.0)
	viper.SetDefault("ANALYTICS_CORRELATION_THRESHOLD", 0.55)
	viper.SetDefault("ANALYTICS_FATIGUE_RATIO", 1.2)
	viper.SetDefault("ANALYTICS_DIRECTION_STDDEV_THRESHOLD", 15.0)

	// Read from environment
	viper.AutomaticEnv()

	// Read config file if exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Parse CORS origins from comma-separated string
	if corsStr := viper.GetString("CORS_ORIGINS"); corsStr != "" {
		config.CorsOrigins = strings.Split(corsStr, ",")
	}

	return &config, nil
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
