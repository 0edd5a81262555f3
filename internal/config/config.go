package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds settings for both the backend server and the conversation agent.
// Everything comes from the environment; a .env file in the working directory is
// loaded first if present.
type Config struct {
	Port        int
	LogLevel    string
	NatsURL     string
	NatsToken   string
	DatabaseURL string

	GeminiAPIKey string
	LowModel     string
	MidModel     string
	PowModel     string

	EmbedProvider string
	EmbedModel    string
	EmbedDims     int
	OpenAIAPIKey  string

	VectorTable       string
	RetrievalTopK     int
	ChunkSize         int
	ChunkOverlap      int
	WorkerConcurrency int

	// Agent side.
	BackendURL    string
	ControlPort   int
	PollInterval  time.Duration
	StagingDelay  time.Duration
	StatePath     string
	Headless      bool
	ChromeProfile string
	PageURL       string
}

func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:        envInt("LINKFLOW_PORT", 3000),
		LogLevel:    envStr("LOG_LEVEL", "info"),
		NatsURL:     envStr("NATS_URL", "nats://localhost:4222"),
		NatsToken:   envStr("NATS_TOKEN", ""),
		DatabaseURL: envStr("DATABASE_URL", ""),

		GeminiAPIKey: envStr("GEMINI_API_KEY", ""),
		LowModel:     envStr("LOW_MODEL", "gemini-2.0-flash-lite"),
		MidModel:     envStr("MID_MODEL", "gemini-2.0-flash"),
		PowModel:     envStr("POW_MODEL", "gemini-2.0-flash"),

		EmbedProvider: envStr("EMBED_PROVIDER", "gemini"),
		EmbedModel:    envStr("EMBED_MODEL", "gemini-embedding-001"),
		EmbedDims:     envInt("EMBED_DIMS", 3072),
		OpenAIAPIKey:  envStr("OPENAI_API_KEY", ""),

		VectorTable:       envStr("VECTOR_TABLE", "context_chunks"),
		RetrievalTopK:     envInt("RETRIEVAL_TOP_K", 5),
		ChunkSize:         envInt("CHUNK_SIZE", 200),
		ChunkOverlap:      envInt("CHUNK_OVERLAP", 10),
		WorkerConcurrency: envInt("WORKER_CONCURRENCY", 2),

		BackendURL:    envStr("LINKFLOW_BACKEND_URL", "http://localhost:3000"),
		ControlPort:   envInt("AGENT_CONTROL_PORT", 3100),
		PollInterval:  envDuration("AGENT_POLL_INTERVAL", 5*time.Second),
		StagingDelay:  envDuration("AGENT_STAGING_DELAY", 10*time.Second),
		StatePath:     envStr("AGENT_STATE_PATH", "~/.linkflow/agent-state.json"),
		Headless:      envBool("AGENT_HEADLESS", false),
		ChromeProfile: envStr("AGENT_CHROME_PROFILE", ""),
		PageURL:       envStr("AGENT_PAGE_URL", "https://www.linkedin.com/messaging/"),
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
