package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/phillip/hostel-fest-payments/store"
	"github.com/phillip/hostel-fest-payments/utils"
)

const (
	BackendFile     = "file"
	BackendMongo    = "mongo"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

type Config struct {
	Port string

	StoreBackend string // file | mongo | postgres | memory
	StoreKey     string
	DataDir      string

	MongoURI    string
	DBName      string
	MongoClient *mongo.Client // set by Connect for the mongo backend

	PostgresDSN string

	JWTSecret         []byte
	TokenTTL          time.Duration
	AdminPasswordHash string

	CORSOrigins []string

	PaymentDelay time.Duration
	ToastTTL     time.Duration

	LogLevel  string
	LogFormat string

	Cloudinary utils.CloudinaryConfig
	Email      utils.EmailConfig
}

// Load reads .env (if present) and the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from getenv, applying defaults and validating.
func FromEnv(getenv func(string) string) (*Config, error) {
	get := func(key, def string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return def
	}

	cfg := &Config{
		Port:              get("PORT", "8080"),
		StoreBackend:      strings.ToLower(get("STORE_BACKEND", BackendFile)),
		StoreKey:          get("STORE_KEY", store.DefaultKey),
		DataDir:           get("DATA_DIR", "data"),
		MongoURI:          get("MONGO_URI", ""),
		DBName:            get("DB_NAME", "hostel_fest"),
		PostgresDSN:       get("POSTGRES_DSN", ""),
		JWTSecret:         []byte(get("JWT_SECRET", "")),
		AdminPasswordHash: get("ADMIN_PASSWORD_HASH", ""),
		CORSOrigins:       splitList(get("CORS_ORIGINS", "http://localhost:3000,http://localhost:5173")),
		LogLevel:          get("LOG_LEVEL", "info"),
		LogFormat:         get("LOG_FORMAT", "text"),
		Cloudinary: utils.CloudinaryConfig{
			CloudName: get("CLOUDINARY_CLOUD_NAME", ""),
			APIKey:    get("CLOUDINARY_API_KEY", ""),
			APISecret: get("CLOUDINARY_API_SECRET", ""),
		},
		Email: utils.EmailConfig{
			APIURL: get("ZEPTO_API_URL", ""),
			APIKey: get("ZEPTO_API_KEY", ""),
			From:   get("EMAIL_FROM", ""),
		},
	}

	var err error
	if cfg.PaymentDelay, err = parseDuration(get("PAYMENT_DELAY", "3s")); err != nil {
		return nil, fmt.Errorf("PAYMENT_DELAY: %w", err)
	}
	if cfg.ToastTTL, err = parseDuration(get("TOAST_TTL", "4s")); err != nil {
		return nil, fmt.Errorf("TOAST_TTL: %w", err)
	}
	if cfg.TokenTTL, err = parseDuration(get("TOKEN_TTL", "12h")); err != nil {
		return nil, fmt.Errorf("TOKEN_TTL: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.StoreBackend {
	case BackendFile, BackendMemory:
	case BackendMongo:
		if c.MongoURI == "" {
			return errors.New("MONGO_URI is required for the mongo store backend")
		}
	case BackendPostgres:
		if c.PostgresDSN == "" {
			return errors.New("POSTGRES_DSN is required for the postgres store backend")
		}
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.StoreBackend)
	}
	if len(c.JWTSecret) == 0 {
		return errors.New("JWT_SECRET is required")
	}
	return nil
}

func parseDuration(s string) (time.Duration, error) {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("must not be negative, got %s", s)
	}
	return d, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
