package utils

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App        AppConfig
	Database   DatabaseConfig
	JWT        JWTConfig
	Cache      CacheConfig
	Redis      RedisConfig
	Pagination PaginationConfig
	HTTP       HTTPConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

type JWTConfig struct {
	Secret      string
	Issuer      string
	ExpiryHours int
}

// TTL returns the token lifetime.
func (c JWTConfig) TTL() time.Duration {
	return time.Duration(c.ExpiryHours) * time.Hour
}

type CacheConfig struct {
	Driver     string
	TTLSeconds int
	Capacity   int
}

// TTL returns how long a list page stays cached when nothing invalidates it.
func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type PaginationConfig struct {
	DefaultLimit int
	MaxLimit     int
}

type HTTPConfig struct {
	RateLimitPerMinute int
	CORSOrigins        []string
}

const (
	CacheDriverMemory = "memory"
	CacheDriverRedis  = "redis"
)

func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")

	// Set defaults
	v.SetDefault("APP_NAME", "bilemo-api")
	v.SetDefault("PORT", "8080")
	v.SetDefault("DEBUG", false)
	v.SetDefault("LOG_PATH", "logs/")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("JWT_ISSUER", "bilemo-api")
	v.SetDefault("JWT_EXPIRY_HOURS", 1)
	v.SetDefault("CACHE_DRIVER", CacheDriverMemory)
	v.SetDefault("CACHE_TTL_SECONDS", 3600)
	v.SetDefault("CACHE_CAPACITY", 10000)
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("PAGINATION_DEFAULT_LIMIT", 10)
	v.SetDefault("PAGINATION_MAX_LIMIT", 100)
	v.SetDefault("RATE_LIMIT_PER_MINUTE", 120)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")

	// .env is optional, the process environment still applies
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	v.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    v.GetString("APP_NAME"),
			Port:    v.GetString("PORT"),
			Debug:   v.GetBool("DEBUG"),
			LogPath: v.GetString("LOG_PATH"),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			Name:     v.GetString("DB_NAME"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASS"),
			MaxConns: v.GetInt32("DB_MAX_CONNS"),
		},
		JWT: JWTConfig{
			Secret:      v.GetString("JWT_SECRET"),
			Issuer:      v.GetString("JWT_ISSUER"),
			ExpiryHours: v.GetInt("JWT_EXPIRY_HOURS"),
		},
		Cache: CacheConfig{
			Driver:     strings.ToLower(v.GetString("CACHE_DRIVER")),
			TTLSeconds: v.GetInt("CACHE_TTL_SECONDS"),
			Capacity:   v.GetInt("CACHE_CAPACITY"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Pagination: PaginationConfig{
			DefaultLimit: v.GetInt("PAGINATION_DEFAULT_LIMIT"),
			MaxLimit:     v.GetInt("PAGINATION_MAX_LIMIT"),
		},
		HTTP: HTTPConfig{
			RateLimitPerMinute: v.GetInt("RATE_LIMIT_PER_MINUTE"),
			CORSOrigins:        ParseCSV(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.JWT.Secret) == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.JWT.ExpiryHours <= 0 {
		return errors.New("JWT_EXPIRY_HOURS must be greater than 0")
	}

	switch c.Cache.Driver {
	case CacheDriverMemory, CacheDriverRedis:
	default:
		return fmt.Errorf("unknown CACHE_DRIVER %q", c.Cache.Driver)
	}
	if c.Cache.TTLSeconds <= 0 {
		return errors.New("CACHE_TTL_SECONDS must be greater than 0")
	}

	if c.Pagination.DefaultLimit < 1 {
		return errors.New("PAGINATION_DEFAULT_LIMIT must be at least 1")
	}
	if c.Pagination.MaxLimit < c.Pagination.DefaultLimit {
		return errors.New("PAGINATION_MAX_LIMIT must not be lower than PAGINATION_DEFAULT_LIMIT")
	}

	return nil
}

func ParseCSV(input string) []string {
	var out []string
	for _, part := range strings.Split(input, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
