package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration
type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	Redis       RedisConfig
	Groq        GroqConfig
	HuggingFace HuggingFaceConfig
	LiveKit     LiveKitConfig
	JWT         JWTConfig
	Storage     StorageConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string   `envconfig:"PORT" default:"8080"`
	Host            string   `envconfig:"HOST" default:"0.0.0.0"`
	Environment     string   `envconfig:"ENVIRONMENT" default:"development"`
	AllowedOrigins  []string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:3000"`
	ShutdownTimeout int      `envconfig:"SHUTDOWN_TIMEOUT" default:"10"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host        string `envconfig:"DB_HOST" default:"localhost"`
	Port        string `envconfig:"DB_PORT" default:"5432"`
	User        string `envconfig:"DB_USER" default:"postgres"`
	Password    string `envconfig:"DB_PASSWORD" default:"postgres"`
	Name        string `envconfig:"DB_NAME" default:"collabsphere"`
	SSLMode     string `envconfig:"DB_SSLMODE" default:"disable"`
	MaxConns    int    `envconfig:"DB_MAX_CONNS" default:"25"`
	MinConns    int    `envconfig:"DB_MIN_CONNS" default:"5"`
	AutoMigrate bool   `envconfig:"DB_AUTO_MIGRATE" default:"false"`
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string `envconfig:"REDIS_HOST" default:"localhost"`
	Port     string `envconfig:"REDIS_PORT" default:"6379"`
	Password string `envconfig:"REDIS_PASSWORD" default:""`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
	// TTL for the live transcript cache. The cache is non-durable;
	// conversation chunks in Postgres remain the source of truth.
	TranscriptTTL time.Duration `envconfig:"REDIS_TRANSCRIPT_TTL" default:"5m"`
}

// GroqConfig holds hosted chat-completion configuration
type GroqConfig struct {
	APIKey      string  `envconfig:"GROQ_API_KEY" default:""`
	BaseURL     string  `envconfig:"GROQ_API_URL" default:"https://api.groq.com"`
	Model       string  `envconfig:"GROQ_MODEL" default:"llama-3.1-70b-versatile"`
	Temperature float64 `envconfig:"GROQ_TEMPERATURE" default:"0.3"`
	MaxTokens   int     `envconfig:"GROQ_MAX_TOKENS" default:"8000"`
}

// HuggingFaceConfig holds hosted sentiment classifier and neural TTS configuration
type HuggingFaceConfig struct {
	APIKey       string `envconfig:"HF_API_KEY" default:""`
	SentimentURL string `envconfig:"HF_SENTIMENT_URL" default:"https://api-inference.huggingface.co/models/distilbert-base-uncased-finetuned-sst-2-english"`
	TTSURL       string `envconfig:"HF_TTS_URL" default:"https://api-inference.huggingface.co/models/facebook/mms-tts-eng"`
}

// LiveKitConfig holds LiveKit configuration
type LiveKitConfig struct {
	URL       string `envconfig:"LIVEKIT_URL" default:"ws://localhost:7880"`
	APIKey    string `envconfig:"LIVEKIT_API_KEY" default:""`
	APISecret string `envconfig:"LIVEKIT_API_SECRET" default:""`
	UseMock   bool   `envconfig:"LIVEKIT_USE_MOCK" default:"true"`
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	AccessSecret string        `envconfig:"JWT_ACCESS_SECRET" default:"your-access-secret-change-in-production"`
	AccessExpiry time.Duration `envconfig:"JWT_ACCESS_EXPIRY" default:"15m"`
}

// StorageConfig holds object storage configuration (synthesized audio cache)
type StorageConfig struct {
	Endpoint        string `envconfig:"STORAGE_ENDPOINT" default:"localhost:9000"`
	AccessKeyID     string `envconfig:"STORAGE_ACCESS_KEY" default:"minioadmin"`
	SecretAccessKey string `envconfig:"STORAGE_SECRET_KEY" default:"minioadmin"`
	BucketName      string `envconfig:"STORAGE_BUCKET" default:"collabsphere-speech"`
	UseSSL          bool   `envconfig:"STORAGE_USE_SSL" default:"false"`
	// Public URL rewrites presigned URLs when MinIO sits behind a reverse proxy
	PublicURL string `envconfig:"STORAGE_PUBLIC_URL" default:""`
	Enabled   bool   `envconfig:"STORAGE_ENABLED" default:"false"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables or defaults")
	}

	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return nil, fmt.Errorf("failed to process environment: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Environment == "production" && c.JWT.AccessSecret == "your-access-secret-change-in-production" {
		return fmt.Errorf("JWT_ACCESS_SECRET must be set in production")
	}
	if !c.LiveKit.UseMock && c.LiveKit.APIKey == "" {
		return fmt.Errorf("LIVEKIT_API_KEY is required when LIVEKIT_USE_MOCK is false")
	}
	return nil
}

// GetDatabaseDSN returns the database connection string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}
