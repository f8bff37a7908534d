package config

import (
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"github.com/ulule/limiter/v3"
)

const insecureJWTSecret = "a-very-secret-key-should-be-longer-and-random"

// Config holds application configuration.
type Config struct {
	DatabaseURL        string
	Port               string
	IsProduction       bool
	EnableDBCheck      bool
	JWTSecret          string
	MigrationsPath     string
	CORSAllowedOrigins []string
	ParseRateLimit     limiter.Rate

	// LLM
	LLMAPIKey      string
	LLMModel       string
	LLMTimeout     time.Duration
	LLMTemperature float32
	ParserVersion  string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	return fromViper(v), nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("PARSE_RATE_LIMIT", "30-M")
	v.SetDefault("LLM_API_KEY", "")
	v.SetDefault("LLM_MODEL", "gemini-2.0-flash")
	v.SetDefault("LLM_TIMEOUT", "30s")
	v.SetDefault("LLM_TEMPERATURE", 0.0)
	v.SetDefault("PARSER_VERSION", "gemini-v1")
}

func fromViper(v *viper.Viper) *Config {
	cfg := &Config{
		DatabaseURL:    v.GetString("PGSQL_URL"),
		Port:           v.GetString("PORT"),
		IsProduction:   v.GetBool("IS_PRODUCTION"),
		EnableDBCheck:  v.GetBool("ENABLE_DB_CHECK"),
		JWTSecret:      v.GetString("JWT_SECRET"),
		MigrationsPath: v.GetString("MIGRATIONS_PATH"),
		LLMAPIKey:      v.GetString("LLM_API_KEY"),
		LLMModel:       v.GetString("LLM_MODEL"),
		LLMTemperature: float32(v.GetFloat64("LLM_TEMPERATURE")),
		ParserVersion:  v.GetString("PARSER_VERSION"),
	}

	if cfg.DatabaseURL == "" {
		slog.Warn("PGSQL_URL environment variable not set")
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
		slog.Warn("PORT environment variable not set, using default", slog.String("port", cfg.Port))
	}
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = insecureJWTSecret // !! CHANGE IN PRODUCTION !!
		slog.Warn("JWT_SECRET environment variable not set. Using default insecure key.")
	}
	if cfg.LLMAPIKey == "" {
		slog.Warn("LLM_API_KEY not set; parsing will fail until it is configured")
	}

	for _, origin := range strings.Split(v.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		cfg.CORSAllowedOrigins = []string{"*"}
	}

	timeoutStr := v.GetString("LLM_TIMEOUT")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil || timeout <= 0 {
		timeout = 30 * time.Second
		slog.Warn("Invalid value for LLM_TIMEOUT, using default",
			slog.String("value", timeoutStr), slog.Duration("default", timeout))
	}
	cfg.LLMTimeout = timeout

	rateStr := v.GetString("PARSE_RATE_LIMIT")
	rate, err := limiter.NewRateFromFormatted(rateStr)
	if err != nil {
		rate = limiter.Rate{Period: time.Minute, Limit: 30}
		slog.Warn("Invalid value for PARSE_RATE_LIMIT, using default",
			slog.String("value", rateStr), slog.String("default", "30-M"))
	}
	cfg.ParseRateLimit = rate

	return cfg
}
