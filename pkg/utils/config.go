package utils

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Booking  BookingConfig
	Payment  PaymentConfig
	Redis    RedisConfig
	AMQP     AMQPConfig
	Tracing  TracingConfig
}

type AppConfig struct {
	Name    string
	Env     string
	Port    string
	Debug   bool
	LogPath string
	Storage string // postgres | memory
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	MaxConns int32
}

type JWTConfig struct {
	Secret      string
	ExpiryHours int
}

type BookingConfig struct {
	PendingTTL     time.Duration
	SweepInterval  time.Duration
	CancelLead     time.Duration
	RefundPercent  int64
	CheckInHour    int
	PaymentTimeout time.Duration
	Currency       string
}

type PaymentConfig struct {
	Provider       string // simulated | omise
	OmisePublicKey string
	OmiseSecretKey string
	SimulatedDelay time.Duration
}

type RedisConfig struct {
	URL      string
	CacheTTL time.Duration
}

type AMQPConfig struct {
	URL      string
	Exchange string
}

type TracingConfig struct {
	Endpoint string
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("APP_NAME", "hotel-booking")
	viper.SetDefault("ENV", "dev")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("STORAGE", "postgres")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("JWT_EXPIRY_HOURS", 24)
	viper.SetDefault("PENDING_TTL", "15m")
	viper.SetDefault("SWEEP_INTERVAL", "1m")
	viper.SetDefault("CANCEL_LEAD_HOURS", 2)
	viper.SetDefault("REFUND_PERCENT", 90)
	viper.SetDefault("CHECK_IN_HOUR", 14)
	viper.SetDefault("PAYMENT_TIMEOUT", "10s")
	viper.SetDefault("CURRENCY", "THB")
	viper.SetDefault("PAYMENT_PROVIDER", "simulated")
	viper.SetDefault("REDIS_CACHE_TTL", "5m")
	viper.SetDefault("AMQP_EXCHANGE", "hotel.events")

	// .env is optional, the process environment always wins
	if err := viper.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Env:     viper.GetString("ENV"),
			Port:    viper.GetString("PORT"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
			Storage: strings.ToLower(viper.GetString("STORAGE")),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			SSLMode:  viper.GetString("DB_SSLMODE"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		JWT: JWTConfig{
			Secret:      viper.GetString("JWT_SECRET"),
			ExpiryHours: viper.GetInt("JWT_EXPIRY_HOURS"),
		},
		Booking: BookingConfig{
			PendingTTL:     viper.GetDuration("PENDING_TTL"),
			SweepInterval:  viper.GetDuration("SWEEP_INTERVAL"),
			CancelLead:     time.Duration(viper.GetInt("CANCEL_LEAD_HOURS")) * time.Hour,
			RefundPercent:  viper.GetInt64("REFUND_PERCENT"),
			CheckInHour:    viper.GetInt("CHECK_IN_HOUR"),
			PaymentTimeout: viper.GetDuration("PAYMENT_TIMEOUT"),
			Currency:       strings.ToUpper(viper.GetString("CURRENCY")),
		},
		Payment: PaymentConfig{
			Provider:       strings.ToLower(viper.GetString("PAYMENT_PROVIDER")),
			OmisePublicKey: viper.GetString("OMISE_PUBLIC_KEY"),
			OmiseSecretKey: viper.GetString("OMISE_SECRET_KEY"),
			SimulatedDelay: viper.GetDuration("PAYMENT_SIMULATED_DELAY"),
		},
		Redis: RedisConfig{
			URL:      viper.GetString("REDIS_URL"),
			CacheTTL: viper.GetDuration("REDIS_CACHE_TTL"),
		},
		AMQP: AMQPConfig{
			URL:      viper.GetString("AMQP_URL"),
			Exchange: viper.GetString("AMQP_EXCHANGE"),
		},
		Tracing: TracingConfig{
			Endpoint: viper.GetString("OTEL_EXPORTER_OTLP_ENDPOINT"),
		},
	}

	return config, nil
}
