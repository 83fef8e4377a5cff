package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
)

type DatabaseConfig struct {
	Driver string
	URL    string
}

type AdminConfig struct {
	Username string
	Email    string
	Password string
}

type Config struct {
	Port               string
	Environment        string
	Database           DatabaseConfig
	JWTSecret          string
	JWTIssuer          string
	AllowOrigins       string
	RateLimitPerMinute int
	Admin              AdminConfig
}

// LoadConfig reads configuration from the environment. Call godotenv.Load
// first if a .env file should be honoured.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:               getEnv("PORT", "8080"),
		Environment:        getEnv("APP_ENV", "development"),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		JWTIssuer:          getEnv("JWT_ISSUER", "eventrsvp"),
		AllowOrigins:       getEnv("ALLOW_ORIGINS", "http://localhost:3000"),
		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 60),
	}

	cfg.Database.Driver = strings.ToLower(getEnv("DB_DRIVER", "postgres"))
	cfg.Database.URL = os.Getenv("DATABASE_URL")

	cfg.Admin.Username = os.Getenv("ADMIN_USERNAME")
	cfg.Admin.Email = os.Getenv("ADMIN_EMAIL")
	cfg.Admin.Password = os.Getenv("ADMIN_PASSWORD")

	var errs []error
	if cfg.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is not set"))
	}
	if cfg.Database.URL == "" {
		errs = append(errs, errors.New("DATABASE_URL is not set"))
	}
	if cfg.Database.Driver != "postgres" && cfg.Database.Driver != "sqlite" {
		errs = append(errs, errors.New("DB_DRIVER must be postgres or sqlite"))
	}
	if (cfg.Admin.Email == "") != (cfg.Admin.Password == "") {
		errs = append(errs, errors.New("ADMIN_EMAIL and ADMIN_PASSWORD must be set together"))
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}
