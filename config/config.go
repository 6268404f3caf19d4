package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabasePath        string
	JWTSecret           string
	JWTExpiration       time.Duration
	ServerPort          string
	UploadDir           string
	WorkerImportFile    string
	SlackBotToken       string
	SlackOpsChannel     string
	FirebaseCredentials string
	HolidayCalendarURL  string
}

func Load() *Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found, using environment defaults")
	}

	return &Config{
		DatabasePath:        getEnv("DATABASE_PATH", "database.db"),
		JWTSecret:           getEnv("JWT_SECRET", "change-me-in-production"),
		JWTExpiration:       24 * time.Hour,
		ServerPort:          getEnv("SERVER_PORT", "8080"),
		UploadDir:           getEnv("UPLOAD_DIR", "uploads"),
		WorkerImportFile:    getEnv("WORKER_IMPORT_FILE", ""),
		SlackBotToken:       getEnv("SLACK_BOT_TOKEN", ""),
		SlackOpsChannel:     getEnv("SLACK_OPS_CHANNEL", "#field-ops"),
		FirebaseCredentials: getEnv("FIREBASE_CREDENTIALS", ""),
		HolidayCalendarURL:  getEnv("HOLIDAY_CALENDAR_URL", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
