package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type HTTPServer struct {
	Port string `mapstructure:"port"`
}

type DbServer struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Pass     string `mapstructure:"pass"`
	Name     string `mapstructure:"name"`
	MaxConns int32  `mapstructure:"max_conns"`
	Migrate  bool   `mapstructure:"migrate"`
}

func (config *DbServer) GetConnectionStr() string {
	return fmt.Sprintf(
		"user=%s password=%s host=%s port=%s dbname=%s sslmode=disable",
		config.User, config.Pass, config.Host, config.Port, config.Name,
	)
}

type HTTPClient struct {
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
}

type Cache struct {
	Backend    string `mapstructure:"backend"` // "memory" or "redis"
	TTLSeconds int    `mapstructure:"ttl_seconds"`
	MaxItems   int64  `mapstructure:"max_items"`
	RedisAddr  string `mapstructure:"redis_addr"`
	RedisPass  string `mapstructure:"redis_pass"`
	RedisDB    int    `mapstructure:"redis_db"`
	KeyPrefix  string `mapstructure:"key_prefix"`
}

type Provider struct {
	BaseURL string `mapstructure:"base_url"`
	APIKey  string `mapstructure:"api_key"`
}

type Providers struct {
	TimeoutSeconds  int      `mapstructure:"timeout_seconds"`
	ExchangeRateAPI Provider `mapstructure:"exchange_rate_api"`
	Fixer           Provider `mapstructure:"fixer"`
	Frankfurter     Provider `mapstructure:"frankfurter"`
}

type RefreshJob struct {
	Enabled         bool `mapstructure:"enabled"`
	IntervalSeconds int  `mapstructure:"interval_seconds"`
	Workers         int  `mapstructure:"workers"`
}

type RetentionJob struct {
	Enabled       bool `mapstructure:"enabled"`
	IntervalHours int  `mapstructure:"interval_hours"`
	MaxAgeDays    int  `mapstructure:"max_age_days"`
}

type Scheduler struct {
	Refresh   RefreshJob   `mapstructure:"refresh"`
	Retention RetentionJob `mapstructure:"retention"`
}

type RateLimit struct {
	Enabled           bool  `mapstructure:"enabled"`
	RequestsPerMinute int64 `mapstructure:"requests_per_minute"`
}

type Logging struct {
	Level string `mapstructure:"level"`
}

type AppConfig struct {
	HTTPServer HTTPServer `mapstructure:"http_server"`
	DbServer   DbServer   `mapstructure:"db_server"`
	HTTPClient HTTPClient `mapstructure:"http_client"`
	Cache      Cache      `mapstructure:"cache"`
	Providers  Providers  `mapstructure:"providers"`
	Scheduler  Scheduler  `mapstructure:"scheduler"`
	RateLimit  RateLimit  `mapstructure:"rate_limit"`
	Logging    Logging    `mapstructure:"logging"`
}

func Init() (*AppConfig, error) {
	var cfg AppConfig

	// .env is optional; env vars may come from the environment directly
	_ = godotenv.Load()

	viper.SetConfigFile("config.yaml")
	viper.SetConfigType("yaml")
	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	viper.SetDefault("http_server.port", "8080")
	viper.SetDefault("db_server.max_conns", 10)
	viper.SetDefault("db_server.migrate", true)
	viper.SetDefault("http_client.timeout_seconds", 10)
	viper.SetDefault("cache.backend", "memory")
	viper.SetDefault("cache.ttl_seconds", 60)
	viper.SetDefault("cache.max_items", 1024)
	viper.SetDefault("cache.key_prefix", "fx:quote:")
	viper.SetDefault("providers.timeout_seconds", 5)
	viper.SetDefault("scheduler.refresh.workers", 5)
	viper.SetDefault("scheduler.retention.max_age_days", 90)
	viper.SetDefault("rate_limit.requests_per_minute", 60)
	viper.SetDefault("logging.level", "info")

	// db server env vars
	_ = viper.BindEnv("db_server.host", "DB_HOST")
	_ = viper.BindEnv("db_server.port", "DB_PORT")
	_ = viper.BindEnv("db_server.user", "DB_USER")
	_ = viper.BindEnv("db_server.pass", "DB_PASS")
	_ = viper.BindEnv("db_server.name", "DB_NAME")
	_ = viper.BindEnv("db_server.max_conns", "DB_MAX_CONNS")

	// cache env vars
	_ = viper.BindEnv("cache.backend", "CACHE_BACKEND")
	_ = viper.BindEnv("cache.redis_addr", "REDIS_ADDR")
	_ = viper.BindEnv("cache.redis_pass", "REDIS_PASS")
	_ = viper.BindEnv("cache.redis_db", "REDIS_DB")

	// provider credentials are secrets and come from the environment only
	_ = viper.BindEnv("providers.exchange_rate_api.api_key", "EXCHANGE_RATE_API_KEY")
	_ = viper.BindEnv("providers.fixer.api_key", "FIXER_API_KEY")

	// http client env vars
	_ = viper.BindEnv("http_client.timeout_seconds", "HTTP_CLIENT_TIMEOUT_SECONDS")

	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	return &cfg, nil
}
