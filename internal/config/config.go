package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Qdrant    QdrantConfig
	Embedding EmbeddingConfig
	LangCache LangCacheConfig
	Ai        AIConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	SyncLogFilePath    string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	SyncTopic          string
}

type DatabaseConfig struct {
	Connection string
}

type QdrantConfig struct {
	URL            string
	APIKey         string
	CollectionName string
}

type EmbeddingConfig struct {
	DenseURL        string
	SparseURL       string
	DenseModelName  string
	SparseModelName string
	DenseVectorSize int
}

type LangCacheConfig struct {
	ServerURL string
	CacheID   string
	APIKey    string
}

type AIConfig struct {
	LLMProvider     string // "groq" or "ollama"
	LLMModel        string
	GroqAPIKey      string
	GroqBaseURL     string
	OllamaBaseURL   string
	RerankModelName string
	JinaAPIKey      string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "8000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			SyncLogFilePath:    getEnv("SYNC_LOG_FILE_PATH", "sync.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_SERVER_URL", "redis://localhost:6379"),
			SyncTopic:          getEnv("SYNC_PRODUCT_TOPIC_NAME", "SYNC_PRODUCT"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Qdrant: QdrantConfig{
			URL:            getEnv("QDRANT_URL", "http://localhost:6333"),
			APIKey:         getEnv("QDRANT_API_KEY", ""),
			CollectionName: getEnv("COLLECTION_NAME", "products"),
		},
		Embedding: EmbeddingConfig{
			DenseURL:        getEnv("TEI_DENSE_URL", "http://localhost:8080"),
			SparseURL:       getEnv("TEI_SPARSE_URL", "http://localhost:8081"),
			DenseModelName:  getEnv("DENSE_MODEL_NAME", "BAAI/bge-small-en-v1.5"),
			SparseModelName: getEnv("SPARSE_MODEL_NAME", "prithivida/Splade_PP_en_v1"),
			DenseVectorSize: getEnvAsInt("DENSE_VECTOR_SIZE", 384),
		},
		LangCache: LangCacheConfig{
			ServerURL: getEnv("LANGCACHE_SERVER_URL", ""),
			CacheID:   getEnv("LANGCACHE_CACHE_ID", ""),
			APIKey:    getEnv("LANGCACHE_API_KEY", ""),
		},
		Ai: AIConfig{
			LLMProvider:     getEnv("LLM_PROVIDER", "groq"),
			LLMModel:        getEnv("LLM_MODEL_NAME", "llama-3.3-70b-versatile"),
			GroqAPIKey:      getEnv("GROQ_API_KEY", ""),
			GroqBaseURL:     getEnv("GROQ_BASE_URL", "https://api.groq.com/openai/v1"),
			OllamaBaseURL:   getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			RerankModelName: getEnv("RERANK_MODEL_NAME", "jina-reranker-v2-base-multilingual"),
			JinaAPIKey:      getEnv("JINA_API_KEY", ""),
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
