// Package config provides configuration management for the load optimizer.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Cache backends.
const (
	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"
	CacheBackendNone   = "none"
)

// Config holds the complete application configuration.
type Config struct {
	Server    ServerConfig
	Optimizer OptimizerConfig
	Cache     CacheConfig
	Auth      AuthConfig
	Database  DatabaseConfig
	Log       LogConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port           string
	RateLimit      int
	RateWindow     time.Duration
	RequestTimeout time.Duration
	CORSOrigins    []string
	SwaggerUser    string
	SwaggerPass    string
}

// OptimizerConfig holds the request limits of the optimize endpoint.
type OptimizerConfig struct {
	MaxOrders       int
	MaxPayloadBytes int64
	Timeout         time.Duration
}

// CacheConfig holds result cache configuration.
type CacheConfig struct {
	Backend  string
	Size     int
	TTL      time.Duration
	Shards   int
	RedisURL string
}

// AuthConfig holds authentication configuration.
type AuthConfig struct {
	Enabled bool
	// APIKeys are accepted verbatim.
	APIKeys map[string]bool
	// APIKeyHashes are bcrypt hashes of accepted keys.
	APIKeyHashes  []string
	JWTSecretKey  string
	JWTIssuer     string
	TokenTTL      time.Duration
	RequiredScope string
}

// DatabaseConfig holds MongoDB configuration.
type DatabaseConfig struct {
	URI          string
	DatabaseName string
	LogsTTL      time.Duration
	Enabled      bool
	// CircuitBreaker configuration
	CircuitBreakerFailureThreshold int
	CircuitBreakerSuccessThreshold int
	CircuitBreakerTimeout          time.Duration
}

// LogConfig holds logger configuration.
type LogConfig struct {
	Level  string
	Pretty bool
}

// Load creates a Config from environment variables.
func Load() Config {
	return Config{
		Server: ServerConfig{
			Port:           getEnv("PORT", "8080"),
			RateLimit:      getEnvInt("RATE_LIMIT", 100),
			RateWindow:     getEnvDuration("RATE_WINDOW", time.Minute),
			RequestTimeout: getEnvDuration("REQUEST_TIMEOUT", 30*time.Second),
			CORSOrigins:    parseCORSOrigins(os.Getenv("CORS_ORIGINS")),
			SwaggerUser:    getEnv("SWAGGER_USER", ""),
			SwaggerPass:    getEnv("SWAGGER_PASS", ""),
		},
		Optimizer: OptimizerConfig{
			MaxOrders:       getEnvInt("MAX_ORDERS", 25),
			MaxPayloadBytes: getEnvInt64("MAX_PAYLOAD_BYTES", 1<<20),
			Timeout:         getEnvDuration("OPTIMIZE_TIMEOUT", 5*time.Second),
		},
		Cache: CacheConfig{
			Backend:  parseCacheBackend(os.Getenv("CACHE_BACKEND")),
			Size:     getEnvInt("CACHE_SIZE", 1000),
			TTL:      getEnvDuration("CACHE_TTL", 5*time.Minute),
			Shards:   getEnvInt("CACHE_SHARDS", 16),
			RedisURL: getEnv("REDIS_URL", "redis://localhost:6379/0"),
		},
		Auth: AuthConfig{
			Enabled:       getEnvBool("AUTH_ENABLED", false),
			APIKeys:       parseAPIKeys(os.Getenv("API_KEYS")),
			APIKeyHashes:  parseList(os.Getenv("API_KEY_HASHES")),
			JWTSecretKey:  getEnv("JWT_SECRET_KEY", ""),
			JWTIssuer:     getEnv("JWT_ISSUER", "load-optimizer"),
			TokenTTL:      getEnvDuration("JWT_TOKEN_TTL", time.Hour),
			RequiredScope: getEnv("JWT_REQUIRED_SCOPE", "loads:optimize"),
		},
		Database: DatabaseConfig{
			URI:                            getEnv("MONGODB_URI", "mongodb://localhost:27017"),
			DatabaseName:                   getEnv("MONGODB_DATABASE", "load_optimizer"),
			LogsTTL:                        getEnvDuration("MONGODB_LOGS_TTL", 30*24*time.Hour),
			Enabled:                        getEnvBool("MONGODB_ENABLED", false),
			CircuitBreakerFailureThreshold: getEnvInt("CIRCUIT_BREAKER_FAILURE_THRESHOLD", 5),
			CircuitBreakerSuccessThreshold: getEnvInt("CIRCUIT_BREAKER_SUCCESS_THRESHOLD", 2),
			CircuitBreakerTimeout:          getEnvDuration("CIRCUIT_BREAKER_TIMEOUT", 30*time.Second),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Pretty: getEnvBool("LOG_PRETTY", false),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.ParseInt(v, 10, 64); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultValue
}

func parseCacheBackend(s string) string {
	switch b := strings.ToLower(strings.TrimSpace(s)); b {
	case CacheBackendRedis, CacheBackendNone:
		return b
	default:
		return CacheBackendMemory
	}
}

func parseList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			result = append(result, p)
		}
	}
	return result
}

func parseAPIKeys(s string) map[string]bool {
	keys := parseList(s)
	if len(keys) == 0 {
		return nil
	}
	result := make(map[string]bool, len(keys))
	for _, k := range keys {
		result[k] = true
	}
	return result
}

func parseCORSOrigins(s string) []string {
	// Default origins for local development
	defaults := []string{
		"http://localhost:3000",
		"http://127.0.0.1:3000",
	}
	return append(defaults, parseList(s)...)
}
