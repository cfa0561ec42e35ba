package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	ServerPort string
	LogLevel   string

	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	// RabbitMQ
	RabbitMQHost     string
	RabbitMQPort     string
	RabbitMQUser     string
	RabbitMQPassword string

	// JWT
	JWTSecret string

	// AWS S3
	AWSRegion          string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	AWSEndpoint        string
	S3BucketName       string
	S3UseSSL           string
	MediaURLTTL        time.Duration

	// Feed composition
	Feed FeedConfig

	FollowCacheTTL time.Duration
}

// FeedConfig holds the tunables of the feed composition engine.
type FeedConfig struct {
	DefaultLimit        int
	MaxLimit            int
	FollowingOversample int
	DiscoveryOversample int
	MaxRounds           int
	Timeout             time.Duration
	MinimumAge          int
	AllowChainReposts   bool
	FollowedDamping     float64
	RepostBoost         float64
	ScoreGravity        float64
	DiversityMaxRun     int
}

func Load() (*Config, error) {
	// Try to load .env file, but don't fail if it doesn't exist
	_ = godotenv.Load()

	config := &Config{
		ServerPort: getEnv("SERVER_PORT", "8003"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBName:     getEnv("DB_NAME", "scrollfeed"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		RabbitMQHost:     getEnv("RABBITMQ_HOST", ""),
		RabbitMQPort:     getEnv("RABBITMQ_PORT", "5672"),
		RabbitMQUser:     getEnv("RABBITMQ_USER", "guest"),
		RabbitMQPassword: getEnv("RABBITMQ_PASSWORD", "guest"),

		JWTSecret: getEnv("JWT_SECRET", "your-secret-key-change-in-production"),

		AWSRegion:          getEnv("AWS_REGION", "us-east-1"),
		AWSAccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
		AWSEndpoint:        getEnv("AWS_ENDPOINT", ""),
		S3BucketName:       getEnv("S3_BUCKET_NAME", "scroll-feed-media"),
		S3UseSSL:           getEnv("S3_USE_SSL", "true"),
		MediaURLTTL:        getEnvDuration("MEDIA_URL_TTL", 15*time.Minute),

		Feed: FeedConfig{
			DefaultLimit:        getEnvInt("FEED_DEFAULT_LIMIT", 20),
			MaxLimit:            getEnvInt("FEED_MAX_LIMIT", 100),
			FollowingOversample: getEnvInt("FEED_FOLLOWING_OVERSAMPLE", 2),
			DiscoveryOversample: getEnvInt("FEED_DISCOVERY_OVERSAMPLE", 3),
			MaxRounds:           getEnvInt("FEED_MAX_ROUNDS", 4),
			Timeout:             getEnvDuration("FEED_TIMEOUT", 3*time.Second),
			MinimumAge:          getEnvInt("FEED_MINIMUM_AGE", 18),
			AllowChainReposts:   getEnvBool("FEED_ALLOW_CHAIN_REPOSTS", true),
			FollowedDamping:     getEnvFloat("FEED_FOLLOWED_DAMPING", 0.7),
			RepostBoost:         getEnvFloat("FEED_REPOST_BOOST", 1.2),
			ScoreGravity:        getEnvFloat("FEED_SCORE_GRAVITY", 1.8),
			DiversityMaxRun:     getEnvInt("FEED_DIVERSITY_MAX_RUN", 0),
		},

		FollowCacheTTL: getEnvDuration("FOLLOW_CACHE_TTL", time.Minute),
	}

	return config, nil
}

// DefaultFeedConfig returns the feed tunables with every env override ignored.
func DefaultFeedConfig() FeedConfig {
	return FeedConfig{
		DefaultLimit:        20,
		MaxLimit:            100,
		FollowingOversample: 2,
		DiscoveryOversample: 3,
		MaxRounds:           4,
		Timeout:             3 * time.Second,
		MinimumAge:          18,
		AllowChainReposts:   true,
		FollowedDamping:     0.7,
		RepostBoost:         1.2,
		ScoreGravity:        1.8,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
