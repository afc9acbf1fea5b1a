package config

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StorageFile   = "file"
	StorageMemory = "memory"
	StorageRedis  = "redis"
	StorageSQLite = "sqlite"
)

type Config struct {
	Env      string
	Server   ServerConfig
	Sections SectionsConfig
	Storage  StorageConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Receipt  ReceiptConfig
	Log      LogConfig
	Metrics  MetricsConfig
}

type ServerConfig struct {
	HTTPPort        int
	GRpcPort        int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// SectionsConfig names the service sections. File, when set, wins over Names.
type SectionsConfig struct {
	Names []string
	File  string
}

type StorageConfig struct {
	Backend    string
	Codec      string
	FilePath   string
	SQLitePath string
	RedisKey   string
}

type RedisConfig struct {
	Addr         string
	Password     string
	DB           int
	MaxRetries   int
	PoolSize     int
	MinIdleConns int
}

type KafkaConfig struct {
	Brokers              []string
	ProducerRetryMax     int
	ProducerRequiredAcks int
	Enabled              bool
	ConsumerGroupID      string
}

type ReceiptConfig struct {
	Secret string
	Expiry time.Duration
}

type LogConfig struct {
	Level    string
	Mode     string
	Encoding string
}

type MetricsConfig struct {
	Enabled bool
	Path    string
}

var defaultSections = []string{"Bakery", "Butcher", "Fishmonger", "Deli", "Checkout"}

func Load() (*Config, error) {
	// Load .env file if exists
	_ = godotenv.Load()

	cfg := &Config{
		Env: getEnv("ENV", "development"),
		Server: ServerConfig{
			HTTPPort:        getEnvAsInt("SERVER_HTTP_PORT", 8080),
			GRpcPort:        getEnvAsInt("SERVER_GRPC_PORT", 50056),
			ReadTimeout:     getEnvAsDuration("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:    getEnvAsDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:     getEnvAsDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
			ShutdownTimeout: getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Sections: SectionsConfig{
			Names: getEnvAsSlice("SECTIONS", defaultSections),
			File:  getEnv("SECTIONS_FILE", ""),
		},
		Storage: StorageConfig{
			Backend:    strings.ToLower(getEnv("STORAGE_BACKEND", StorageFile)),
			Codec:      strings.ToLower(getEnv("STORAGE_CODEC", "json")),
			FilePath:   getEnv("STORAGE_FILE_PATH", "data/state.json"),
			SQLitePath: getEnv("STORAGE_SQLITE_PATH", "data/counters.db"),
			RedisKey:   getEnv("STORAGE_REDIS_KEY", "counters:state"),
		},
		Redis: RedisConfig{
			Addr:         getEnv("REDIS_ADDR", "localhost:6379"),
			Password:     getEnv("REDIS_PASSWORD", ""),
			DB:           getEnvAsInt("REDIS_DB", 0),
			MaxRetries:   getEnvAsInt("REDIS_MAX_RETRIES", 3),
			PoolSize:     getEnvAsInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: getEnvAsInt("REDIS_MIN_IDLE_CONNS", 5),
		},
		Kafka: KafkaConfig{
			Brokers:              getEnvAsSlice("KAFKA_BROKERS", []string{"localhost:9092"}),
			ProducerRetryMax:     getEnvAsInt("KAFKA_PRODUCER_RETRY_MAX", 3),
			ProducerRequiredAcks: getEnvAsInt("KAFKA_PRODUCER_REQUIRED_ACKS", 1),
			Enabled:              getEnvAsBool("KAFKA_ENABLED", false),
			ConsumerGroupID:      getEnv("KAFKA_CONSUMER_GROUP_ID", "counters-service"),
		},
		Receipt: ReceiptConfig{
			Secret: getEnv("RECEIPT_SECRET", "receipt-secret"),
			Expiry: getEnvAsDuration("RECEIPT_EXPIRY", 12*time.Hour),
		},
		Log: LogConfig{
			Level:    getEnv("LOG_LEVEL", "info"),
			Mode:     getEnv("LOG_MODE", "development"),
			Encoding: getEnv("LOG_ENCODING", "console"),
		},
		Metrics: MetricsConfig{
			Enabled: getEnvAsBool("METRICS_ENABLED", true),
			Path:    getEnv("METRICS_PATH", "/metrics"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("invalid http port: %d", c.Server.HTTPPort)
	}

	if c.Server.GRpcPort <= 0 || c.Server.GRpcPort > 65535 {
		return fmt.Errorf("invalid grpc port: %d", c.Server.GRpcPort)
	}

	if c.Server.HTTPPort == c.Server.GRpcPort {
		return fmt.Errorf("http and grpc ports must differ: %d", c.Server.HTTPPort)
	}

	if len(c.Sections.Names) == 0 && c.Sections.File == "" {
		return fmt.Errorf("at least one section is required")
	}

	backends := []string{StorageFile, StorageMemory, StorageRedis, StorageSQLite}
	if !slices.Contains(backends, c.Storage.Backend) {
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}

	if c.Storage.Codec != "json" && c.Storage.Codec != "cbor" {
		return fmt.Errorf("unknown storage codec %q", c.Storage.Codec)
	}

	if c.Storage.Backend == StorageRedis && c.Redis.Addr == "" {
		return fmt.Errorf("redis address is required")
	}

	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("kafka brokers are required when kafka is enabled")
	}

	if c.Receipt.Secret == "" || c.Receipt.Secret == "receipt-secret" {
		if c.Env == "production" {
			return fmt.Errorf("receipt secret must be set in production")
		}
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	var result []string
	for _, v := range strings.Split(valueStr, ",") {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			result = append(result, trimmed)
		}
	}

	if len(result) == 0 {
		return defaultValue
	}

	return result
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}
