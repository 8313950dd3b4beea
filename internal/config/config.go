package config

import (
	"os"
	"strconv"
	"time"
)

// DatabaseConfig holds PostgreSQL database connection settings.
type DatabaseConfig struct {
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
	ConnMaxIdleTimeSec int
	ConnectTimeoutSec  int
}

// MinIOConfig holds object storage settings for MinIO.
type MinIOConfig struct {
	Endpoint         string
	AccessKey        string
	SecretKey        string
	Bucket           string
	UseSSL           bool
	PresignExpirySec int
}

// AuthConfig holds settings for verifying identity-provider session tokens.
type AuthConfig struct {
	JWTSecret  string
	CookieName string
	// TokenTTLSec only applies to tokens minted by the `token` command.
	TokenTTLSec int
}

// RazorpayConfig holds payment gateway credentials and the fixed price tier.
type RazorpayConfig struct {
	KeyID       string
	KeySecret   string
	BaseURL     string
	AmountPaise int64
	Currency    string
}

// RedisConfig holds the optional analytics cache connection. An empty Addr disables caching.
type RedisConfig struct {
	Addr     string
	Username string
	Password string
	DB       int
	TTLSec   int
}

// RateLimitConfig holds per-client limits for public endpoints.
type RateLimitConfig struct {
	RPS   float64
	Burst int
}

// PlanConfig holds the free and pro tier limits.
type PlanConfig struct {
	FreeMaxDocuments int
	FreeStorageBytes int64
	ProStorageBytes  int64
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppHost        string
	Port           string
	PublicURL      string
	Timezone       string
	LogLevel       string
	MaxUploadBytes int64
	Database       DatabaseConfig
	MinIO          MinIOConfig
	Auth           AuthConfig
	Razorpay       RazorpayConfig
	Redis          RedisConfig
	RateLimit      RateLimitConfig
	Plans          PlanConfig
}

// Location resolves the configured timezone, falling back to UTC.
func (c *AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		AppHost:        getEnv("APP_HOST", "localhost:8080"),
		Port:           getEnv("PORT", "8080"), // default only for non-sensitive value
		PublicURL:      getEnv("APP_URL", "http://localhost:8080"),
		Timezone:       getEnv("APP_TIMEZONE", "UTC"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		MaxUploadBytes: getEnvInt64("MAX_UPLOAD_BYTES", 50*1024*1024),
		Database: DatabaseConfig{
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", "5432"),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", ""),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
			ConnMaxIdleTimeSec: getEnvInt("DB_CONN_MAX_IDLE_TIME_SEC", 60),
			ConnectTimeoutSec:  getEnvInt("DB_CONNECT_TIMEOUT_SEC", 5),
		},
		MinIO: MinIOConfig{
			Endpoint:         getEnv("MINIO_ENDPOINT", ""),
			AccessKey:        getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey:        getEnv("MINIO_SECRET_KEY", ""),
			Bucket:           getEnv("MINIO_BUCKET", "pdfs"),
			UseSSL:           getEnvBool("MINIO_USE_SSL", false),
			PresignExpirySec: getEnvInt("PRESIGN_EXPIRY_SEC", 900),
		},
		Auth: AuthConfig{
			JWTSecret:   getEnv("AUTH_JWT_SECRET", ""),
			CookieName:  getEnv("AUTH_COOKIE_NAME", "sb-access-token"),
			TokenTTLSec: getEnvInt("AUTH_TOKEN_TTL_SEC", 3600),
		},
		Razorpay: RazorpayConfig{
			KeyID:       getEnv("RAZORPAY_KEY_ID", ""),
			KeySecret:   getEnv("RAZORPAY_KEY_SECRET", ""),
			BaseURL:     getEnv("RAZORPAY_BASE_URL", "https://api.razorpay.com/v1"),
			AmountPaise: getEnvInt64("RAZORPAY_AMOUNT_PAISE", 10000),
			Currency:    getEnv("RAZORPAY_CURRENCY", "INR"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Username: getEnv("REDIS_USER", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
			TTLSec:   getEnvInt("REDIS_ANALYTICS_TTL_SEC", 60),
		},
		RateLimit: RateLimitConfig{
			RPS:   getEnvFloat("RATE_LIMIT_RPS", 5),
			Burst: getEnvInt("RATE_LIMIT_BURST", 20),
		},
		Plans: PlanConfig{
			FreeMaxDocuments: getEnvInt("PLAN_FREE_MAX_DOCUMENTS", 5),
			FreeStorageBytes: getEnvInt64("PLAN_FREE_STORAGE_BYTES", 100*1024*1024),
			ProStorageBytes:  getEnvInt64("PLAN_PRO_STORAGE_BYTES", 10*1024*1024*1024),
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}

func getEnvInt64(key string, def int64) int64 {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.ParseInt(v, 10, 64)
		if err == nil {
			return i
		}
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err == nil {
			return f
		}
	}
	return def
}
