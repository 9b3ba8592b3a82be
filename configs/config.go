package configs

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

var (
	SERVER_PORT string
	WORKER_POOL string

	DB_URI                   string
	DB_NAME                  string
	DB_MAXPOOLSIZE           uint64
	DB_MINPOOLSIZE           uint64
	DB_MAXIDLETIME_INMINUTES int

	JWT_SECRET string

	KAFKA_SERVER             string
	KAFKA_SECURITY_PROTOCOL  string
	KAFKA_SASL_MECHANISM     string
	KAFKA_SASL_USERNAME      string
	KAFKA_SASL_PASSWORD      string
	KAFKA_SESSION_TIMEOUT_MS int
	KAFKA_CLIENT_ID          string
	KAFKA_TOPIC              string
	KAFKA_RETRY_DURATION     int

	SFTP_USER             string
	SFTP_PASSWORD         string
	SFTP_HOST             string
	SFTP_PORT             string
	SFTP_REMOTE_FILE_PATH string

	BUCKET_NAME               string
	DIRECTORY_PATH            string
	REPORT_DESTINATION_FOLDER string
	REPORT_CHUNKS             int
	REPORT_EVERY_X_HOURS      int

	REPORT_CRON      string
	REMINDER_CRON    string
	KAFKA_RETRY_CRON string

	LOAN_NUMBER_PREFIX          string
	DASHBOARD_CACHE_TTL_MINUTES int
	SMS_SOURCE_ADDRESS          string

	SERVICE_NAME string
	OTEL_URL     string
	LOG_LEVEL    string

	REDIS_ADDR                    string
	REDIS_PASSWORD                string
	REDIS_DB                      int
	REDIS_ENABLE_TLS              bool
	REDIS_CONNECT_TIMEOUT_SECONDS int
	REDIS_CERT_CONTENT            string

	PROJECT_ID   string
	PUBSUB_TOPIC string
)

type RedisConfig struct {
	Addr           string        `yaml:"addr"`
	Password       string        `yaml:"password"`
	DB             int           `yaml:"db"`
	EnableTLS      bool          `yaml:"enable_tls"`
	ConnectTimeout time.Duration `yaml:"connect_timeout_seconds"`
	CertContent    string        `yaml:"cert_content"`
}

// LoadEnv loads the environment variables from a .env file
func LoadEnv() error {
	err := godotenv.Load("./../.env")
	if err != nil {
		log.Printf("Error loading .env file: %v", err)
	}

	LoadEnvValues()

	return nil
}

func LoadEnvValues() {
	SERVER_PORT = GetEnv("SERVER_PORT", "8080")
	WORKER_POOL = GetEnv("WORKER_POOL", "5")

	DB_URI = GetEnv("DB_URI", "mongodb://localhost:27017/?retryWrites=true&w=majority")
	DB_NAME = GetEnv("DB_NAME", "KaratGoldLoan")
	DB_MAXPOOLSIZE = envUint("DB_MAXPOOLSIZE", 100)
	DB_MINPOOLSIZE = envUint("DB_MINPOOLSIZE", 10)
	DB_MAXIDLETIME_INMINUTES = envInt("DB_MAXIDLETIME_INMINUTES", 5)

	JWT_SECRET = GetEnv("JWT_SECRET", "")

	KAFKA_SERVER = GetEnv("KAFKA_SERVER", "")
	KAFKA_SECURITY_PROTOCOL = GetEnv("KAFKA_SECURITY_PROTOCOL", "")
	KAFKA_SASL_MECHANISM = GetEnv("KAFKA_SASL_MECHANISM", "")
	KAFKA_SASL_USERNAME = GetEnv("KAFKA_SASL_USERNAME", "")
	KAFKA_SASL_PASSWORD = GetEnv("KAFKA_SASL_PASSWORD", "")
	KAFKA_SESSION_TIMEOUT_MS = envInt("KAFKA_SESSION_TIMEOUT_MS", 0)
	KAFKA_CLIENT_ID = GetEnv("KAFKA_CLIENT_ID", "")
	KAFKA_TOPIC = GetEnv("KAFKA_TOPIC", "")
	KAFKA_RETRY_DURATION = envInt("KAFKA_RETRY_DURATION", 12)

	SFTP_USER = GetEnv("SFTP_USER", "")
	SFTP_PASSWORD = GetEnv("SFTP_PASSWORD", "")
	SFTP_HOST = GetEnv("SFTP_HOST", "")
	SFTP_PORT = GetEnv("SFTP_PORT", "")
	SFTP_REMOTE_FILE_PATH = GetEnv("SFTP_REMOTE_FILE_PATH", "")

	BUCKET_NAME = GetEnv("BUCKET_NAME", "")
	DIRECTORY_PATH = GetEnv("DIRECTORY_PATH_FOR_COLLECTIONS_REPORT", "/collectionsReport")
	REPORT_DESTINATION_FOLDER = GetEnv("REPORT_DESTINATION_FOLDER", "collectionsReport")
	REPORT_CHUNKS = envInt("REPORT_CHUNKS", 4)
	REPORT_EVERY_X_HOURS = envInt("REPORT_EVERY_X_HOURS", 24)

	REPORT_CRON = GetEnv("REPORT_CRON", "0 30 1 * * *")
	REMINDER_CRON = GetEnv("REMINDER_CRON", "0 0 10 * * *")
	KAFKA_RETRY_CRON = GetEnv("KAFKA_RETRY_CRON", "0 15 2 * * *")

	LOAN_NUMBER_PREFIX = GetEnv("LOAN_NUMBER_PREFIX", "KGL")
	DASHBOARD_CACHE_TTL_MINUTES = envInt("DASHBOARD_CACHE_TTL_MINUTES", 15)
	SMS_SOURCE_ADDRESS = GetEnv("SMS_SOURCE_ADDRESS", "")

	SERVICE_NAME = GetEnv("SERVICE_NAME", "karatgoldloan")
	OTEL_URL = GetEnv("OTEL_URL", "")
	LOG_LEVEL = GetEnv("LOG_LEVEL", "INFO")

	REDIS_ADDR = GetEnv("REDIS_ADDR", "localhost:6379")
	REDIS_PASSWORD = GetEnv("REDIS_PASSWORD", "")
	REDIS_DB = envInt("REDIS_DB", 0)
	REDIS_ENABLE_TLS = envBool("REDIS_ENABLE_TLS", false)
	REDIS_CONNECT_TIMEOUT_SECONDS = envInt("REDIS_CONNECT_TIMEOUT_SECONDS", 5)
	REDIS_CERT_CONTENT = GetEnv("REDIS_CERT_CONTENT", "")

	PROJECT_ID = GetEnv("PROJECT_ID", "")
	PUBSUB_TOPIC = GetEnv("PUBSUB_TOPIC", "aurum-karat-d-notification-topic-krt-101")
}

// GetRedisConfig returns a RedisConfig struct populated from environment variables
func GetRedisConfig() RedisConfig {
	return RedisConfig{
		Addr:           REDIS_ADDR,
		Password:       REDIS_PASSWORD,
		DB:             REDIS_DB,
		EnableTLS:      REDIS_ENABLE_TLS,
		ConnectTimeout: time.Duration(REDIS_CONNECT_TIMEOUT_SECONDS) * time.Second,
		CertContent:    REDIS_CERT_CONTENT,
	}
}

// GetEnv fetches the value of an environment variable or returns a default value
func GetEnv(key, defaultValue string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	return value
}

func envInt(key string, fallback int) int {
	value, err := strconv.Atoi(GetEnv(key, ""))
	if err != nil {
		return fallback
	}
	return value
}

func envUint(key string, fallback uint64) uint64 {
	value, err := strconv.ParseUint(GetEnv(key, ""), 10, 64)
	if err != nil {
		return fallback
	}
	return value
}

func envBool(key string, fallback bool) bool {
	value, err := strconv.ParseBool(GetEnv(key, ""))
	if err != nil {
		return fallback
	}
	return value
}
