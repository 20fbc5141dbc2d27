// Package config loads and validates application configuration from
// environment variables at process start. The resulting AppConfig is
// immutable and passed by reference into each component's constructor;
// business logic never reads ambient process state. All load errors are
// collected and reported together so a misconfigured deployment fails fast
// with a complete picture.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// PoolConfig holds settings for the Postgres connection pool.
type PoolConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	MaxSize  int
}

// AuthConfig holds the server-wide secrets and work factors for credential
// handling: the pepper appended to every password before hashing, the bcrypt
// cost, the token signing secret, and the token lifetime.
type AuthConfig struct {
	Pepper      string
	BcryptCost  int
	TokenSecret string
	TokenTTL    time.Duration
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port string
}

// AppConfig is the top-level configuration for the service.
type AppConfig struct {
	Pool   *PoolConfig
	Auth   *AuthConfig
	Server *ServerConfig
}

func getRequiredEnv(key string, errs *[]string) string {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		*errs = append(*errs, fmt.Sprintf("missing required environment variable: %s", key))
		return ""
	}
	return value
}

func getOptionalEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getOptionalEnvInt(key string, defaultValue int, errs *[]string) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valueInt, err := strconv.Atoi(valueStr)
	if err != nil {
		*errs = append(*errs, fmt.Sprintf("invalid value for %s: expected integer, got '%s'", key, valueStr))
		return defaultValue
	}
	return valueInt
}

func getOptionalEnvDuration(key string, defaultValue time.Duration, errs *[]string) time.Duration {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valueDuration, err := time.ParseDuration(valueStr)
	if err != nil {
		*errs = append(*errs, fmt.Sprintf("invalid value for %s: expected duration string, got '%s'", key, valueStr))
		return defaultValue
	}
	return valueDuration
}

// parseBcryptCost validates the SALT_ROUNDS value. The cost must be an
// integer within bcrypt's supported range; anything else is a configuration
// error, never silently defaulted, since it controls the hashing work factor.
func parseBcryptCost(valueStr string, errs *[]string) int {
	if valueStr == "" {
		return 0 // missing value already reported by getRequiredEnv
	}
	cost, err := strconv.Atoi(valueStr)
	if err != nil {
		*errs = append(*errs, fmt.Sprintf("invalid value for SALT_ROUNDS: expected integer, got '%s'", valueStr))
		return 0
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		*errs = append(*errs, fmt.Sprintf("SALT_ROUNDS must be between %d and %d, got %d", bcrypt.MinCost, bcrypt.MaxCost, cost))
		return 0
	}
	return cost
}

// parsePoolSize clamps the connection pool bound to a sane range.
func parsePoolSize(size int, errs *[]string) int {
	if size < 1 {
		*errs = append(*errs, fmt.Sprintf("DB_POOL_SIZE must be positive, got %d", size))
		return 1
	}
	if size > 100 {
		*errs = append(*errs, fmt.Sprintf("DB_POOL_SIZE (%d) exceeds maximum 100", size))
		return 100
	}
	return size
}

// LoadConfig reads and validates all configuration from the environment. It
// returns a single aggregated error listing every problem found.
func LoadConfig() (*AppConfig, error) {
	var errs []string

	dbUser := getRequiredEnv("POSTGRES_USER", &errs)
	dbPassword := getRequiredEnv("POSTGRES_PASSWORD", &errs)
	dbName := getRequiredEnv("POSTGRES_DB", &errs)
	dbHost := getOptionalEnv("POSTGRES_HOST", "localhost")
	dbPort := getOptionalEnvInt("POSTGRES_PORT", 5432, &errs)
	poolSize := parsePoolSize(getOptionalEnvInt("DB_POOL_SIZE", 10, &errs), &errs)

	pool := &PoolConfig{
		Host:     dbHost,
		Port:     dbPort,
		User:     dbUser,
		Password: dbPassword,
		DBName:   dbName,
		MaxSize:  poolSize,
	}

	pepper := getRequiredEnv("BCRYPT_PASSWORD", &errs)
	cost := parseBcryptCost(getRequiredEnv("SALT_ROUNDS", &errs), &errs)
	tokenSecret := getRequiredEnv("TOKEN_SECRET", &errs)
	tokenTTL := getOptionalEnvDuration("TOKEN_TTL", 24*time.Hour, &errs)

	auth := &AuthConfig{
		Pepper:      pepper,
		BcryptCost:  cost,
		TokenSecret: tokenSecret,
		TokenTTL:    tokenTTL,
	}

	server := &ServerConfig{
		Port: getOptionalEnv("PORT", "3000"),
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("configuration errors:\n- %s", strings.Join(errs, "\n- "))
	}

	return &AppConfig{
		Pool:   pool,
		Auth:   auth,
		Server: server,
	}, nil
}
