package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"leave-tracker/internal/shared/connection"
)

const DefaultJWTSecret = "leave-tracker-secret-key-2024"

type Config struct {
	AppEnv string

	// Server
	Port         string
	CORSOrigins  []string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	// Document store
	MongoURI      string
	MongoDatabase string
	StoreTimeout  time.Duration

	// Relational store, used when MongoURI is empty
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Sessions
	JWTSecret string
	JWTTTL    time.Duration

	// Optional infrastructure
	RedisAddr        string
	RedisMaxRetries  int
	KafkaBroker      string
	KafkaMaxRetries  int
	KafkaGroupID     string
	AuthRateLimitRPS float64
	AuthRateBurst    int
	SessionRateRPS   float64
	SessionRateBurst int
}

func Load() *Config {
	return &Config{
		AppEnv: getEnv("APP_ENV", "development"),

		Port:         getEnv("PORT", "3000"),
		CORSOrigins:  splitList(getEnv("CORS_ORIGINS", "*")),
		ReadTimeout:  parseDuration(getEnv("HTTP_READ_TIMEOUT", "5s"), 5*time.Second),
		WriteTimeout: parseDuration(getEnv("HTTP_WRITE_TIMEOUT", "15s"), 15*time.Second),
		IdleTimeout:  parseDuration(getEnv("HTTP_IDLE_TIMEOUT", "60s"), 60*time.Second),

		MongoURI:      getEnv("MONGODB_URI", ""),
		MongoDatabase: getEnv("MONGODB_DATABASE", "leave_tracker"),
		StoreTimeout:  parseDuration(getEnv("STORE_TIMEOUT", "10s"), 10*time.Second),

		DBHost:     getEnv("DB_HOST", ""),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "leave_tracker"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		JWTSecret: getEnv("JWT_SECRET", DefaultJWTSecret),
		JWTTTL:    parseDuration(getEnv("JWT_TTL", "168h"), 7*24*time.Hour),

		RedisAddr:        getEnv("REDIS_ADDR", ""),
		RedisMaxRetries:  parseInt(getEnv("REDIS_MAX_RETRIES", "3"), 3),
		KafkaBroker:      getEnv("KAFKA_BROKER", ""),
		KafkaMaxRetries:  parseInt(getEnv("KAFKA_MAX_RETRIES", "3"), 3),
		KafkaGroupID:     getEnv("KAFKA_GROUP_ID", "leave-tracker-audit"),
		AuthRateLimitRPS: parseFloat(getEnv("AUTH_RATE_LIMIT_RPS", "0.5"), 0.5),
		AuthRateBurst:    parseInt(getEnv("AUTH_RATE_BURST", "10"), 10),
		SessionRateRPS:   parseFloat(getEnv("SESSION_RATE_LIMIT_RPS", "5"), 5),
		SessionRateBurst: parseInt(getEnv("SESSION_RATE_BURST", "20"), 20),
	}
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func (c *Config) Postgres() connection.PostgresConfig {
	return connection.PostgresConfig{
		Host:     c.DBHost,
		User:     c.DBUser,
		Password: c.DBPassword,
		DBName:   c.DBName,
		Port:     c.DBPort,
		SSLMode:  c.DBSSLMode,
		Timeout:  c.StoreTimeout,
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func parseInt(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return n
}

func parseFloat(s string, fallback float64) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fallback
	}
	return f
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
