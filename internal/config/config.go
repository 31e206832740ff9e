package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Session  SessionConfig
	Database DatabaseConfig
	Keys     APIKeys
	Ai       AIConfig
	Data     DataConfig
	Tracing  TracingConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string // sent to OpenRouter as HTTP-Referer
	Environment        string
	LogFilePath        string
	LLMLogFilePath     string
	CorsAllowedOrigins string
	NatsURL            string // empty disables activity forwarding
	RedisURL           string
	WebDir             string
}

type SessionConfig struct {
	Backend      string // "memory" or "redis"
	TTL          time.Duration
	Secret       string
	CookieName   string
	CookieSecure bool
}

type DatabaseConfig struct {
	Connection string
}

type APIKeys struct {
	OpenRouter    string
	GoogleGemini  string
	Jina          string
	ActivityTopic string // watermill topic for activity events
}

type AIConfig struct {
	EmbeddingProvider  string // "ollama", "gemini" or "jina"
	EmbeddingDimension int
	EmbeddingCacheTTL  time.Duration
	OllamaBaseURL      string
	OllamaModel        string
	LLMProvider        string // "openrouter" or "ollama"
	LLMModel           string
	LLMBaseURL         string
	LLMTemperature     float64
	LLMMaxTokens       int
	LLMTimeout         time.Duration
}

type DataConfig struct {
	IndexPath     string
	MetadataPath  string
	TopK          int
	VectorBackend string // "flat" or "pgvector"
}

type TracingConfig struct {
	Enabled     bool
	Endpoint    string
	SampleRatio float64
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "8000"),
			BaseURL:            getEnv("APP_URL", "http://localhost:8000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			LLMLogFilePath:     getEnv("LLM_LOG_FILE_PATH", "logs/llm.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:8000"),
			NatsURL:            getEnv("NATS_URL", ""),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			WebDir:             getEnv("WEB_DIR", "web"),
		},
		Session: SessionConfig{
			Backend:      getEnv("SESSION_BACKEND", "memory"),
			TTL:          getEnvAsDuration("SESSION_TTL", time.Hour),
			Secret:       getEnv("SESSION_SECRET", "change-me"),
			CookieName:   getEnv("SESSION_COOKIE_NAME", "sessionid"),
			CookieSecure: getEnvAsBool("SESSION_COOKIE_SECURE", false),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Keys: APIKeys{
			OpenRouter:    getEnv("OPENROUTER_API_KEY", ""),
			GoogleGemini:  getEnv("GOOGLE_GEMINI_API_KEY", ""),
			Jina:          getEnv("JINA_API_KEY", ""),
			ActivityTopic: getEnv("ACTIVITY_TOPIC_NAME", "RECIPE_ACTIVITY"),
		},
		Ai: AIConfig{
			EmbeddingProvider:  getEnv("EMBEDDING_PROVIDER", "ollama"),
			EmbeddingDimension: getEnvAsInt("EMBEDDING_DIMENSION", 384),
			EmbeddingCacheTTL:  getEnvAsDuration("EMBEDDING_CACHE_TTL", 15*time.Minute),
			OllamaBaseURL:      getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaModel:        getEnv("OLLAMA_EMBEDDING_MODEL", "all-minilm"),
			LLMProvider:        getEnv("LLM_PROVIDER", "openrouter"),
			LLMModel:           getEnv("LLM_MODEL", "mistralai/mistral-7b-instruct"),
			LLMBaseURL:         getEnv("LLM_BASE_URL", ""),
			LLMTemperature:     getEnvAsFloat("LLM_TEMPERATURE", 0.3),
			LLMMaxTokens:       getEnvAsInt("LLM_MAX_TOKENS", 2000),
			LLMTimeout:         getEnvAsDuration("LLM_TIMEOUT", 30*time.Second),
		},
		Data: DataConfig{
			IndexPath:     getEnv("RECIPE_INDEX_PATH", "data/faiss_index_recipe_embeddings.index"),
			MetadataPath:  getEnv("RECIPE_METADATA_PATH", "data/recipe_metadata.json"),
			TopK:          getEnvAsInt("SEARCH_TOP_K", 5),
			VectorBackend: getEnv("VECTOR_BACKEND", "flat"),
		},
		Tracing: TracingConfig{
			Enabled:     getEnvAsBool("OTEL_ENABLED", false),
			Endpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
			SampleRatio: getEnvAsFloat("OTEL_SAMPLE_RATIO", 1),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}

// getEnvAsDuration accepts Go duration strings ("90s", "1h").
func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
