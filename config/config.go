package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr      string `mapstructure:"REDIS_ADDR"`
	RedisPassword  string `mapstructure:"REDIS_PASSWORD"`
	RedisSessionDB int    `mapstructure:"REDIS_SESSION_DB"`
	RedisQueueDB   int    `mapstructure:"REDIS_QUEUE_DB"`

	// Session memory.
	SessionTTLSeconds int `mapstructure:"SESSION_TTL_SECONDS"`
	SessionMaxTurns   int `mapstructure:"SESSION_MAX_TURNS"`

	// Local hotel index (SQLite).
	HotelDBPath string `mapstructure:"HOTEL_DB_PATH"`

	// TripAdvisor RapidAPI live search.
	RapidAPIKey  string `mapstructure:"RAPIDAPI_KEY"`
	RapidAPIHost string `mapstructure:"RAPIDAPI_HOST"`
	CurrencyCode string `mapstructure:"CURRENCY_CODE"`

	// Text generation providers.
	GeminiAPIKey     string `mapstructure:"GEMINI_API_KEY"`
	GeminiModel      string `mapstructure:"GEMINI_MODEL"`
	FallbackLLMURL   string `mapstructure:"FALLBACK_LLM_URL"`
	FallbackLLMKey   string `mapstructure:"FALLBACK_LLM_KEY"`
	FallbackLLMModel string `mapstructure:"FALLBACK_LLM_MODEL"`

	// Per-route latency budgets (milliseconds).
	LocalTargetMS      int `mapstructure:"LOCAL_TARGET_MS"`
	LiveTargetMinMS    int `mapstructure:"LIVE_TARGET_MIN_MS"`
	LiveTargetMaxMS    int `mapstructure:"LIVE_TARGET_MAX_MS"`
	EnrichmentBudgetMS int `mapstructure:"ENRICHMENT_BUDGET_MS"`
	SafetyMarginMS     int `mapstructure:"SAFETY_MARGIN_MS"`

	// Extraction pipeline.
	ClassifierWorkers int `mapstructure:"CLASSIFIER_WORKERS"`
	ClassifierWaitMS  int `mapstructure:"CLASSIFIER_WAIT_MS"`
	FollowupMaxWords  int `mapstructure:"FOLLOWUP_MAX_WORDS"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_SESSION_DB", 0)
	viper.SetDefault("REDIS_QUEUE_DB", 1)
	viper.SetDefault("SESSION_TTL_SECONDS", 1800)
	viper.SetDefault("SESSION_MAX_TURNS", 8)
	viper.SetDefault("HOTEL_DB_PATH", "data/hotels.db")
	viper.SetDefault("RAPIDAPI_KEY", "")
	viper.SetDefault("RAPIDAPI_HOST", "tripadvisor16.p.rapidapi.com")
	viper.SetDefault("CURRENCY_CODE", "LKR")
	viper.SetDefault("GEMINI_API_KEY", "")
	viper.SetDefault("GEMINI_MODEL", "models/gemini-1.5-pro")
	viper.SetDefault("FALLBACK_LLM_URL", "")
	viper.SetDefault("FALLBACK_LLM_KEY", "")
	viper.SetDefault("FALLBACK_LLM_MODEL", "gpt-4o-mini")
	viper.SetDefault("LOCAL_TARGET_MS", 1000)
	viper.SetDefault("LIVE_TARGET_MIN_MS", 2000)
	viper.SetDefault("LIVE_TARGET_MAX_MS", 6000)
	viper.SetDefault("ENRICHMENT_BUDGET_MS", 2500)
	viper.SetDefault("SAFETY_MARGIN_MS", 250)
	viper.SetDefault("CLASSIFIER_WORKERS", 4)
	viper.SetDefault("CLASSIFIER_WAIT_MS", 800)
	viper.SetDefault("FOLLOWUP_MAX_WORDS", 6)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
