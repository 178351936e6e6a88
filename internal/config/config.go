package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store drivers accepted in STORE_DRIVER.
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
	StoreRedis    = "redis"
)

// Config holds all application configuration loaded from environment variables.
// It is the single source of truth for runtime parameters.
type Config struct {
	Port      string
	Env       string
	JWTSecret string
	JWTTTL    time.Duration

	Store   StoreConfig
	DB      DatabaseConfig
	Redis   RedisConfig
	Payment PaymentConfig
	S3      S3Config
	AWS     AWSConfig
	Review  ReviewConfig
	Worker  WorkerConfig

	CORSAllowedHosts []string
}

// StoreConfig selects the key-value backend.
type StoreConfig struct {
	Driver   string
	CacheTTL time.Duration // only used when postgres is fronted by redis
}

// DatabaseConfig contains PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// RedisConfig contains Redis connection parameters.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// Enabled reports whether a Redis host is configured.
func (r RedisConfig) Enabled() bool { return r.Host != "" }

// PaymentConfig contains credentials for the payments gateway that moves
// funds from buyer to seller. An empty BaseURL selects the dry-run transferer.
type PaymentConfig struct {
	BaseURL    string
	MerchantID string
	Secret     string
	Timeout    time.Duration
}

// S3Config contains AWS S3 configuration for product images.
type S3Config struct {
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
}

// AWSConfig contains AWS general configuration
type AWSConfig struct {
	RekognitionRegion string
	ModerationEnabled bool
	MinConfidence     float64
}

// ReviewConfig bounds the star rating.
type ReviewConfig struct {
	MinStar uint64
	MaxStar uint64
}

// WorkerConfig contains interval configuration for background workers.
type WorkerConfig struct {
	AuditInterval time.Duration
}

// Load reads configuration from environment variables. If a .env file exists
// in the working directory, it will be loaded first. It returns a populated
// Config or an error with a human-friendly message.
func Load() (*Config, error) {
	// Load .env if present; production relies on real environment variables.
	_ = godotenv.Load()

	cfg := &Config{}

	// Server
	cfg.Port = getEnv("PORT", "8080")
	cfg.Env = getEnv("ENV", "development")
	cfg.JWTSecret = getEnv("JWT_SECRET", "")
	cfg.CORSAllowedHosts = splitList(getEnv("CORS_ALLOWED_HOSTS", "localhost:3000,127.0.0.1:3000"))

	cfg.Store = StoreConfig{
		Driver: strings.ToLower(getEnv("STORE_DRIVER", StoreMemory)),
	}

	// Database
	cfg.DB = DatabaseConfig{
		Host:     getEnv("DB_HOST", ""),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", ""),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", ""),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}

	// Redis
	cfg.Redis = RedisConfig{
		Host:     getEnv("REDIS_HOST", ""),
		Port:     getEnv("REDIS_PORT", "6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       getEnvInt("REDIS_DB", 0),
	}

	cfg.Payment = PaymentConfig{
		BaseURL:    strings.TrimSuffix(getEnv("PAYMENT_BASE_URL", ""), "/"),
		MerchantID: getEnv("PAYMENT_MERCHANT_ID", ""),
		Secret:     getEnv("PAYMENT_SECRET", ""),
	}

	cfg.S3 = S3Config{
		Region:          getEnv("S3_REGION", "ap-southeast-3"),
		Bucket:          getEnv("S3_BUCKET", "paydii-products"),
		AccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
		SecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
	}

	cfg.AWS = AWSConfig{
		RekognitionRegion: getEnv("AWS_REKOGNITION_REGION", "ap-southeast-1"),
		ModerationEnabled: getEnvBool("IMAGE_MODERATION_ENABLED", false),
		MinConfidence:     getEnvFloat("IMAGE_MODERATION_MIN_CONFIDENCE", 80),
	}

	cfg.Review = ReviewConfig{
		MinStar: uint64(getEnvInt("REVIEW_MIN_STAR", 1)),
		MaxStar: uint64(getEnvInt("REVIEW_MAX_STAR", 5)),
	}

	// Durations
	var err error
	if cfg.JWTTTL, err = parseDurationEnv("JWT_TTL", "24h"); err != nil {
		return nil, fmt.Errorf("invalid JWT_TTL: %w", err)
	}
	if cfg.Store.CacheTTL, err = parseDurationEnv("CACHE_TTL", "10m"); err != nil {
		return nil, fmt.Errorf("invalid CACHE_TTL: %w", err)
	}
	if cfg.Payment.Timeout, err = parseDurationEnv("PAYMENT_TIMEOUT", "30s"); err != nil {
		return nil, fmt.Errorf("invalid PAYMENT_TIMEOUT: %w", err)
	}
	if cfg.Worker.AuditInterval, err = parseDurationEnv("AUDIT_INTERVAL", "15m"); err != nil {
		return nil, fmt.Errorf("invalid AUDIT_INTERVAL: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Store.Driver {
	case StoreMemory:
	case StorePostgres:
		if c.DB.Host == "" || c.DB.User == "" || c.DB.Name == "" {
			return errors.New("database configuration incomplete: ensure DB_HOST, DB_USER, and DB_NAME are set")
		}
	case StoreRedis:
		if !c.Redis.Enabled() {
			return errors.New("STORE_DRIVER=redis requires REDIS_HOST")
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q (want memory, postgres or redis)", c.Store.Driver)
	}

	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET must be set for authentication")
	}

	if c.Payment.BaseURL != "" && (c.Payment.MerchantID == "" || c.Payment.Secret == "") {
		return errors.New("PAYMENT_MERCHANT_ID and PAYMENT_SECRET are required when PAYMENT_BASE_URL is set")
	}

	if c.Worker.AuditInterval <= 0 {
		return errors.New("AUDIT_INTERVAL must be greater than zero")
	}

	if c.Review.MinStar > c.Review.MaxStar {
		return fmt.Errorf("REVIEW_MIN_STAR (%d) exceeds REVIEW_MAX_STAR (%d)", c.Review.MinStar, c.Review.MaxStar)
	}
	return nil
}

// getEnv returns the value of an environment variable or a default if empty.
func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// getEnvInt returns the value of an environment variable as an integer or a default if empty/invalid.
func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil || i < 0 {
		return def
	}
	return i
}

func getEnvBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func getEnvFloat(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, strings.ToLower(p))
		}
	}
	return out
}

// parseDurationEnv reads an environment variable and parses it as time.Duration.
// If the variable is empty, it falls back to the provided default value.
func parseDurationEnv(key, def string) (time.Duration, error) {
	raw := getEnv(key, def)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("duration must be >= 0")
	}
	return d, nil
}
