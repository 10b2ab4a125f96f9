package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	Environment string
	// MongoDB Configuration
	MongoURI        string
	MongoDatabase   string
	MongoCollection string
	// Vision backend Configuration
	VisionURL            string
	VisionToken          string
	VisionTimeoutSeconds int
	// Kafka Configuration
	KafkaBrokers    []string
	KafkaTopicItems string
	KafkaClientID   string
	KafkaRetries    int
	// Redis Configuration (idempotency store)
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
}

func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()

	// Parse Kafka brokers (comma-separated)
	kafkaBrokersStr := getEnv("KAFKA_BROKERS", "localhost:9093")
	kafkaBrokers := strings.Split(kafkaBrokersStr, ",")
	for i, broker := range kafkaBrokers {
		kafkaBrokers[i] = strings.TrimSpace(broker)
	}

	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		// MongoDB Configuration
		MongoURI:        getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase:   getEnv("MONGO_DB", "ber_stock_checker"),
		MongoCollection: getEnv("MONGO_COLLECTION", "items"),
		// Vision backend Configuration
		VisionURL:            getEnv("VISION_URL", "http://localhost:9000/infer"),
		VisionToken:          getEnv("VISION_TOKEN", ""),
		VisionTimeoutSeconds: getEnvAsInt("VISION_TIMEOUT_SECONDS", 60),
		// Kafka Configuration
		KafkaBrokers:    kafkaBrokers,
		KafkaTopicItems: getEnv("KAFKA_TOPIC_ITEMS", "stockchecker.items"),
		KafkaClientID:   getEnv("KAFKA_CLIENT_ID", "stockchecker-api"),
		KafkaRetries:    getEnvAsInt("KAFKA_RETRIES", 3),
		// Redis Configuration
		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),
	}
}

func getEnvAsInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	result, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return result
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
