package config

import (
	"context"
	"database/sql"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
)

type Config struct {
	Port string
	DB   DBConfig

	RedisAddr     string
	OrderCacheTTL time.Duration

	KafkaBroker string
	OrdersTopic string

	AdminToken    string
	PublicBaseURL string
	AutoMigrate   bool

	LogLevel  string
	LogFormat string

	APISvcURL       string
	AnalyticsSvcURL string
}

type DBConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
}

func (c DBConfig) ConnString() string {
	return "host=" + c.Host + " port=" + c.Port + " user=" + c.User +
		" password=" + c.Password + " dbname=" + c.Name + " sslmode=" + c.SSLMode
}

// Load reads the process environment, after merging a .env file when one is
// present in the working directory.
func Load(defaultPort string) Config {
	_ = godotenv.Load()

	cfg := Config{
		Port: getEnv("PORT", defaultPort),
		DB: DBConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			Name:     getEnv("DB_NAME", "food_delivery"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		OrderCacheTTL:   getDuration("ORDER_CACHE_TTL", 30*time.Second),
		KafkaBroker:     getEnv("KAFKA_BROKER", ""),
		OrdersTopic:     getEnv("ORDERS_TOPIC", "orders"),
		AdminToken:      getEnv("ADMIN_TOKEN", "admin123"),
		PublicBaseURL:   strings.TrimRight(getEnv("PUBLIC_BASE_URL", "http://localhost:5173"), "/"),
		AutoMigrate:     getBool("AUTO_MIGRATE", false),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFormat:       getEnv("LOG_FORMAT", "json"),
		APISvcURL:       getEnv("API_SVC_URL", "http://localhost:8081"),
		AnalyticsSvcURL: getEnv("ANALYTICS_SVC_URL", "http://localhost:8083"),
	}

	if host := os.Getenv("REDIS_HOST"); host != "" {
		cfg.RedisAddr = host + ":" + getEnv("REDIS_PORT", "6379")
	}

	return cfg
}

func MustInitPostgres(cfg DBConfig) *sql.DB {
	db, err := sql.Open("postgres", cfg.ConnString())
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err = db.Ping(); err != nil {
		log.Fatal("Failed to ping database:", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	return db
}

// MustInitRedis returns nil when no address is configured.
func MustInitRedis(addr string) *redis.Client {
	if addr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{Addr: addr})

	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	return client
}

func NewKafkaReader(broker, topic, groupID string) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers: []string{broker},
		Topic:   topic,
		GroupID: groupID,
	})
}

// NewKafkaWriter returns nil when no broker is configured. Messages are
// partitioned by key so events for one order stay ordered. Writes are
// flushed almost immediately since each request publishes a single event.
func NewKafkaWriter(broker, topic string) *kafka.Writer {
	if broker == "" {
		return nil
	}
	return &kafka.Writer{
		Addr:         kafka.TCP(broker),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		BatchTimeout: 5 * time.Millisecond,
		MaxAttempts:  3,
		WriteTimeout: time.Second,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(key)); err == nil && d > 0 {
		return d
	}
	return defaultValue
}

func getBool(key string, defaultValue bool) bool {
	if b, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return b
	}
	return defaultValue
}
