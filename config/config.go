package config

import (
	"context"
	"database/sql"
	"errors"
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

// minJWTSecretLen is the shortest HS256 secret accepted at startup.
const minJWTSecretLen = 16

var ErrWeakJWTSecret = errors.New("JWT_SECRET must be set to a random value of at least 16 bytes")

// placeholderSecrets are values copied from sample env files.
var placeholderSecrets = map[string]bool{"changeme": true, "secret": true, "jwt-secret": true}

type Config struct {
	Port string

	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string

	RedisHost string
	RedisPort string

	KafkaBroker string
	KafkaTopic  string

	JWTSecret string
	JWTTTL    time.Duration

	AdminPassword    string
	KitchenPassword  string
	DeliveryPassword string

	PhonePattern       string
	KitchenOpenDefault bool

	WSPingInterval time.Duration
	WSPongWait     time.Duration

	ReportTimezone string

	HubSvcURL       string
	AnalyticsSvcURL string
}

// Load reads an optional .env file and then the process environment.
func Load(defaultPort string) *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: failed to read .env file: %v", err)
	}

	return &Config{
		Port: GetEnv("PORT", defaultPort),

		DBHost:     GetEnv("DB_HOST", "localhost"),
		DBPort:     GetEnv("DB_PORT", "5432"),
		DBName:     GetEnv("DB_NAME", "restaurant"),
		DBUser:     GetEnv("DB_USER", "postgres"),
		DBPassword: os.Getenv("DB_PASSWORD"),

		RedisHost: GetEnv("REDIS_HOST", "localhost"),
		RedisPort: GetEnv("REDIS_PORT", "6379"),

		KafkaBroker: GetEnv("KAFKA_BROKER", "localhost:9092"),
		KafkaTopic:  GetEnv("KAFKA_TOPIC", "restaurant-events"),

		JWTSecret: os.Getenv("JWT_SECRET"),
		JWTTTL:    GetDuration("JWT_TTL", 12*time.Hour),

		AdminPassword:    os.Getenv("ADMIN_PASSWORD"),
		KitchenPassword:  os.Getenv("KITCHEN_PASSWORD"),
		DeliveryPassword: os.Getenv("DELIVERY_PASSWORD"),

		PhonePattern:       GetEnv("PHONE_PATTERN", `^[6-9]\d{9}$`),
		KitchenOpenDefault: GetBool("KITCHEN_OPEN_DEFAULT", true),

		WSPingInterval: GetDuration("WS_PING_INTERVAL", 25*time.Second),
		WSPongWait:     GetDuration("WS_PONG_WAIT", 60*time.Second),

		ReportTimezone: GetEnv("REPORT_TIMEZONE", "Asia/Kolkata"),

		HubSvcURL:       GetEnv("HUB_SVC_URL", "http://localhost:8081"),
		AnalyticsSvcURL: GetEnv("ANALYTICS_SVC_URL", "http://localhost:8083"),
	}
}

func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func GetDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("Warning: invalid duration %s=%q, using %s", key, value, defaultValue)
		return defaultValue
	}
	return d
}

func GetBool(key string, defaultValue bool) bool {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		log.Printf("Warning: invalid bool %s=%q, using %t", key, value, defaultValue)
		return defaultValue
	}
	return b
}

// CheckJWTSecret rejects an unset, placeholder or short token signing secret.
func (c *Config) CheckJWTSecret() error {
	secret := strings.TrimSpace(c.JWTSecret)
	if len(secret) < minJWTSecretLen || placeholderSecrets[strings.ToLower(secret)] {
		return ErrWeakJWTSecret
	}
	return nil
}

func (c *Config) PostgresDSN() string {
	return "host=" + c.DBHost + " port=" + c.DBPort + " user=" + c.DBUser +
		" password=" + c.DBPassword + " dbname=" + c.DBName + " sslmode=disable"
}

func MustInitPostgres(cfg *Config) *sql.DB {
	db, err := sql.Open("postgres", cfg.PostgresDSN())
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

func MustInitRedis(cfg *Config) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.RedisHost + ":" + cfg.RedisPort,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	return client
}

func NewKafkaReader(cfg *Config, groupID string) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers: []string{cfg.KafkaBroker},
		Topic:   cfg.KafkaTopic,
		GroupID: groupID,
	})
}

func NewKafkaWriter(cfg *Config) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(cfg.KafkaBroker),
		Topic:        cfg.KafkaTopic,
		Balancer:     &kafka.Hash{},
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
		Async:        true,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				log.Printf("Error delivering %d events: %v", len(messages), err)
			}
		},
	}
}
