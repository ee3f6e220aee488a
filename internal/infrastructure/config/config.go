package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET, default=campus-ops-dev-secret"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	Mongo  MongoConfig
	Redis  RedisConfig
	Gemini GeminiConfig

	// ArchiveWorkers sizes the background pool that persists generation
	// records.
	ArchiveWorkers int `env:"ARCHIVE_WORKERS, default=4"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=campusops"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type GeminiConfig struct {
	// APIKey may be empty; AI endpoints then answer 503 while the rest of
	// the API keeps working.
	APIKey      string `env:"GEMINI_API_KEY"`
	Model       string `env:"GEMINI_MODEL,        default=gemini-2.0-flash"`
	VisionModel string `env:"GEMINI_VISION_MODEL, default=gemini-2.0-flash"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
