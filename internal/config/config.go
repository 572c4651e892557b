package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	LLMProvider    string // "openai" or "gemini"
	OpenAIAPIKey   string
	GeminiAPIKey   string
	ChatModel      string // empty means the provider's default
	DataDir        string // root holding patientinfo/ and timelineinfo/
	HTTPPort       string
	LogLevel       string
	LLMTimeoutSecs int
}

var AppConfig Config

func LoadConfig() {
	err := godotenv.Load() // Load .env file if it exists
	if err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	AppConfig = Config{
		LLMProvider:    getEnv("LLM_PROVIDER", "openai"),
		OpenAIAPIKey:   getEnv("OPENAI_API_KEY", ""),
		GeminiAPIKey:   getEnv("GOOGLE_GEMINI_API_KEY", ""),
		ChatModel:      getEnv("CHAT_MODEL", ""),
		DataDir:        getEnv("DATA_DIR", "."),
		HTTPPort:       getEnv("HTTP_PORT", "8000"),
		LogLevel:       getEnv("LOG_LEVEL", "INFO"),
		LLMTimeoutSecs: getEnvAsInt("LLM_TIMEOUT_SECONDS", 60),
	}

	switch AppConfig.LLMProvider {
	case "openai":
		if AppConfig.OpenAIAPIKey == "" {
			log.Fatal("OPENAI_API_KEY environment variable is required when LLM_PROVIDER=openai")
		}
	case "gemini":
		if AppConfig.GeminiAPIKey == "" {
			log.Fatal("GOOGLE_GEMINI_API_KEY environment variable is required when LLM_PROVIDER=gemini")
		}
	default:
		log.Fatalf("Unknown LLM_PROVIDER %q (expected \"openai\" or \"gemini\")", AppConfig.LLMProvider)
	}
}

func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}
