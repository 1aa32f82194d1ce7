package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

type Config struct {
	AppEnv      string
	Port        string
	Serverless  bool
	DatabaseURL string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBSSLMode   string
	Migrations  string

	RedisURL      string
	RedisAddr     string
	RedisPassword string

	JWTSecret        string
	JWTExpiry        time.Duration
	JWTRefreshExpiry time.Duration

	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
	SMTPFrom string

	CloudinaryURL       string
	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string
	MaxUploadSize       int64

	OriginURL string

	AdminAutoCreate bool
	AdminPhone      string
	AdminPassword   string
	AdminName       string

	NotifyWorkers   int
	NotifyQueueSize int
	NotifyTimeout   time.Duration
}

var AppConfig *Config

func LoadConfig() *Config {
	if os.Getenv("VERCEL") == "" {
		if err := godotenv.Load(); err != nil {
			log.Warn("Warning: .env file not found, using system environment variables")
		}
	}

	AppConfig = &Config{
		AppEnv:      getEnv("APP_ENV", "development"),
		Port:        getEnv("APP_PORT", getEnv("PORT", "8080")),
		Serverless:  os.Getenv("VERCEL") != "",
		DatabaseURL: os.Getenv("DATABASE_URL"),
		DBHost:      getEnv("DB_HOST", "localhost"),
		DBPort:      getEnv("DB_PORT", "5432"),
		DBUser:      getEnv("DB_USER", "postgres"),
		DBPassword:  getEnv("DB_PASSWORD", "postgres"),
		DBName:      getEnv("DB_NAME", "food_delivery"),
		DBSSLMode:   getEnv("DB_SSLMODE", "disable"),
		Migrations:  getEnv("MIGRATIONS_DIR", "database/migration"),

		RedisURL:      os.Getenv("REDIS_URL"),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		JWTSecret:        getEnv("JWT_SECRET", "secret"),
		JWTExpiry:        getDuration("JWT_EXPIRY", 24*time.Hour),
		JWTRefreshExpiry: getDuration("JWT_REFRESH_EXPIRY", 7*24*time.Hour),

		SMTPHost: os.Getenv("SMTP_HOST"),
		SMTPPort: getInt("SMTP_PORT", 587),
		SMTPUser: os.Getenv("SMTP_USER"),
		SMTPPass: os.Getenv("SMTP_PASS"),
		SMTPFrom: getEnv("SMTP_FROM", os.Getenv("SMTP_USER")),

		CloudinaryURL:       os.Getenv("CLOUDINARY_URL"),
		CloudinaryCloudName: os.Getenv("CLOUDINARY_CLOUD_NAME"),
		CloudinaryAPIKey:    os.Getenv("CLOUDINARY_API_KEY"),
		CloudinaryAPISecret: os.Getenv("CLOUDINARY_API_SECRET"),
		MaxUploadSize:       int64(getInt("MAX_UPLOAD_SIZE", 5242880)),

		OriginURL: os.Getenv("ORIGIN_URL"),

		AdminAutoCreate: getBool("ADMIN_AUTO_CREATE", false),
		AdminPhone:      os.Getenv("ADMIN_PHONE"),
		AdminPassword:   os.Getenv("ADMIN_PASSWORD"),
		AdminName:       getEnv("ADMIN_NAME", "Administrator"),

		NotifyWorkers:   getInt("NOTIFY_WORKERS", 4),
		NotifyQueueSize: getInt("NOTIFY_QUEUE_SIZE", 256),
		NotifyTimeout:   getDuration("NOTIFY_TIMEOUT", 5*time.Second),
	}

	ConfigureLogger(AppConfig)

	log.Info("Configuration loaded successfully")
	log.WithFields(log.Fields{
		"env":  AppConfig.AppEnv,
		"port": AppConfig.Port,
	}).Info("Server settings")

	return AppConfig
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// ConfigureLogger switches logrus to JSON output outside development.
func ConfigureLogger(c *Config) {
	if c.IsProduction() || c.Serverless {
		log.SetFormatter(&log.JSONFormatter{})
		log.SetLevel(log.InfoLevel)
		return
	}
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	log.SetLevel(log.DebugLevel)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil || value <= 0 {
		return defaultValue
	}
	return value
}

func getBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil || value <= 0 {
		return defaultValue
	}
	return value
}
