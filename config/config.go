package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Env  string
	Port string

	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPath     string

	JWTSecret     string
	TokenTTLHours int

	CORSOrigins []string
	SiteURL     string

	GCSBucket          string
	GCSCredentialsFile string

	GeminiKey   string
	GeminiModel string

	GmailUser string
	GmailPass string
}

// LoadConfig reads the environment, optionally seeded from a local .env file.
func LoadConfig() Config {
	_ = godotenv.Load()

	return Config{
		Env:  getEnv("APP_ENV", "local"),
		Port: getEnv("PORT", "8080"),

		DBDriver:   getEnv("DB_DRIVER", "postgres"),
		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     os.Getenv("DB_PORT"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBPath:     getEnv("DB_PATH", "school.db"),

		JWTSecret:     os.Getenv("JWT_SECRET"),
		TokenTTLHours: getEnvInt("TOKEN_TTL_HOURS", 24),

		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "http://localhost:3000")),
		SiteURL:     strings.TrimRight(getEnv("SITE_URL", "http://localhost:3000"), "/"),

		GCSBucket:          os.Getenv("GCS_BUCKET"),
		GCSCredentialsFile: os.Getenv("GCS_CREDENTIALS_FILE"),

		GeminiKey:   os.Getenv("GEMINI_KEY"),
		GeminiModel: getEnv("GEMINI_MODEL", "gemini-2.5-flash"),

		GmailUser: os.Getenv("GMAIL_USER"),
		GmailPass: os.Getenv("GMAIL_APP_PASSWORD"),
	}
}

func (c Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=disable"
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
