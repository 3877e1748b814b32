// Файл: pkg/config/config.go
package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

type SessionConfig struct {
	// Директория, где хранится файл с id текущего пользователя.
	StorageDir string
}

type UIConfig struct {
	PageSize int
	Debounce time.Duration
}

type LogConfig struct {
	FilePath string
}

type ExportConfig struct {
	Dir string
}

type Config struct {
	API     APIConfig
	Session SessionConfig
	UI      UIConfig
	Log     LogConfig
	Export  ExportConfig
}

func New() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Предупреждение: .env файл не найден или не удалось его загрузить.")
	}

	return &Config{
		API: APIConfig{
			BaseURL: getEnv("API_BASE_URL", "http://localhost:8080/api"),
			Timeout: getDuration("API_TIMEOUT", 20*time.Second),
		},
		Session: SessionConfig{
			StorageDir: getEnv("SESSION_DIR", "./.session"),
		},
		UI: UIConfig{
			PageSize: getInt("UI_PAGE_SIZE", 5),
			Debounce: getDuration("UI_DEBOUNCE", 500*time.Millisecond),
		},
		Log: LogConfig{
			FilePath: getEnv("LOG_FILE", "./logs/console.log"),
		},
		Export: ExportConfig{
			Dir: getEnv("EXPORT_DIR", "./exports"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
