package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	HttpPort string

	// LLM endpoint (OpenAI chat-completions format, local or remote)
	LLMBaseURL     string
	LLMModel       string
	LLMAPIKey      string
	LLMTimeout     time.Duration
	LLMMaxTokens   int
	LLMTemperature float64
	PromptsFile    string
	MaxInputChars  int

	// Redis (optional; memory-only without it)
	RedisURL      string
	RedisPassword string

	// S3/MinIO for shared exports (optional)
	BucketEndpoint  string
	BucketAccessID  string
	BucketAccessKey string
	BucketName      string
	BucketRegion    string
	UseSSL          bool   // MinIO: false, S3: true
	StorageType     string // "minio" or "s3", empty disables sharing
	ShareExpiry     time.Duration

	// sessions
	SessionTTL time.Duration
}

func LoadConfig() *Config {
	return &Config{
		HttpPort:        os.Getenv("PORT"),
		LLMBaseURL:      getEnv("LLM_BASE_URL", "http://localhost:11434/v1"),
		LLMModel:        getEnv("LLM_MODEL", "llama3"),
		LLMAPIKey:       os.Getenv("LLM_API_KEY"),
		LLMTimeout:      getEnvDuration("LLM_TIMEOUT", 60*time.Second),
		LLMMaxTokens:    getEnvInt("LLM_MAX_TOKENS", 2000),
		LLMTemperature:  getEnvFloat("LLM_TEMPERATURE", 0.7),
		PromptsFile:     os.Getenv("PROMPTS_FILE"),
		MaxInputChars:   getEnvInt("MAX_INPUT_CHARS", 8000),
		RedisURL:        os.Getenv("REDIS_URL"),
		RedisPassword:   os.Getenv("REDIS_PASSWORD"),
		BucketEndpoint:  os.Getenv("BUCKET_ENDPOINT"),
		BucketAccessID:  os.Getenv("BUCKET_ACCESS_ID"),
		BucketAccessKey: os.Getenv("BUCKET_ACCESS_KEY"),
		BucketName:      os.Getenv("BUCKET_NAME"),
		BucketRegion:    os.Getenv("BUCKET_REGION"),
		UseSSL:          os.Getenv("BUCKET_USE_SSL") == "true",
		StorageType:     os.Getenv("STORAGE_TYPE"),
		ShareExpiry:     getEnvDuration("SHARE_EXPIRY", 24*time.Hour),
		SessionTTL:      getEnvDuration("SESSION_TTL", 2*time.Hour),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func getEnvFloat(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
