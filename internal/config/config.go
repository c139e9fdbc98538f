package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	MongoURI     string
	DBName       string
	JWTSecret    string
	JWTExpiresIn string
	Port         string
	GinMode      string
	CORSOrigins  []string
	MaxFileSize  int64
	BcryptCost   int
	SeedUsers    bool

	// Gemini Configuration
	GeminiAPIKey string
	GeminiModel  string
	GeminiRPM    int

	// Prompt budget for combined document content, 0 disables the cap
	MaxContextChars int

	// Redis Configuration (rate limiting on /ask)
	RedisURL        string
	RedisPassword   string
	RedisDB         int
	RateLimitReqs   int
	RateLimitWindow int

	// OpenTelemetry trace export, empty keeps the no-op provider
	OTelEndpoint    string
	OTelSampleRatio float64
}

func LoadConfig() (*Config, error) {
	// Load .env file if exists
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("error loading .env file: %v", err)
		}
	}

	cfg := &Config{
		MongoURI:     getEnv("MONGO_URI", "mongodb://localhost:27017/college_chatbot"),
		DBName:       getEnv("DB_NAME", "college_chatbot"),
		JWTSecret:    getEnv("JWT_SECRET", ""),
		JWTExpiresIn: getEnv("JWT_EXPIRES_IN", "24h"),
		Port:         getEnv("PORT", "5000"),
		GinMode:      getEnv("GIN_MODE", "debug"),
		CORSOrigins:  getEnvList("CORS_ORIGINS", "http://localhost:3000,http://localhost:5500"),
		MaxFileSize:  getEnvInt64("MAX_FILE_SIZE", 10485760), // 10MB
		BcryptCost:   getEnvInt("BCRYPT_COST", 10),
		SeedUsers:    getEnvBool("SEED_USERS", true),

		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-1.5-pro"),
		GeminiRPM:    getEnvInt("GEMINI_RPM", 60),

		MaxContextChars: getEnvInt("MAX_CONTEXT_CHARS", 120000),

		RedisURL:        getEnv("REDIS_URL", ""),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		RedisDB:         getEnvInt("REDIS_DB", 0),
		RateLimitReqs:   getEnvInt("RATE_LIMIT_REQUESTS", 30),
		RateLimitWindow: getEnvInt("RATE_LIMIT_WINDOW", 60),

		OTelEndpoint:    getEnv("OTEL_EXPORTER_ENDPOINT", ""),
		OTelSampleRatio: getEnvFloat("OTEL_SAMPLE_RATIO", 0.1),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks required fields and value ranges.
func (c *Config) Validate() error {
	if c.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required - set it in .env file")
	}

	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required - set it in .env file")
	}

	if _, err := time.ParseDuration(c.JWTExpiresIn); err != nil {
		return fmt.Errorf("JWT_EXPIRES_IN is not a valid duration: %v", err)
	}

	if c.MaxContextChars < 0 {
		return fmt.Errorf("MAX_CONTEXT_CHARS must not be negative")
	}

	return nil
}

// TokenTTL returns the parsed JWT lifetime, falling back to 24h.
func (c *Config) TokenTTL() time.Duration {
	d, err := time.ParseDuration(c.JWTExpiresIn)
	if err != nil || d <= 0 {
		return 24 * time.Hour
	}
	return d
}
