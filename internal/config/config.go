package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

type RedisConfig struct {
	Addr string
	Pass string
	DB   int
	TTL  time.Duration
}

type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// Config holds everything a run needs besides the input file.
type Config struct {
	LogLevel     string
	LogFormat    string
	StoreBackend string
	Redis        RedisConfig
	Kafka        KafkaConfig
	DatabaseURL  string // snapshot export is skipped when empty
}

// Load reads an optional .env file and then the process environment.
func Load(envFiles ...string) (Config, error) {
	// a missing .env is fine, plain environment variables still apply
	_ = godotenv.Load(envFiles...)

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return Config{}, fmt.Errorf("REDIS_DB: %w", err)
	}

	ttl, err := time.ParseDuration(getEnv("REDIS_TTL", "1h"))
	if err != nil {
		return Config{}, fmt.Errorf("REDIS_TTL: %w", err)
	}

	cfg := Config{
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		LogFormat:    getEnv("LOG_FORMAT", "json"),
		StoreBackend: strings.ToLower(getEnv("STORE_BACKEND", BackendMemory)),
		Redis: RedisConfig{
			Addr: getEnv("REDIS_ADDR", "localhost:6379"),
			Pass: getEnv("REDIS_PASS", ""),
			DB:   redisDB,
			TTL:  ttl,
		},
		Kafka: KafkaConfig{
			Brokers: splitList(getEnv("KAFKA_BROKERS", "")),
			Topic:   getEnv("KAFKA_TOPIC", "ledger.transactions"),
		},
		DatabaseURL: getEnv("DATABASE_URL", ""),
	}

	switch cfg.StoreBackend {
	case BackendMemory, BackendRedis:
	default:
		return Config{}, fmt.Errorf("STORE_BACKEND: unknown backend %q", cfg.StoreBackend)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
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
