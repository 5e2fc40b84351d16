// Package config loads runtime settings from the environment.
package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds runtime settings for the API process.
type Config struct {
	Port string // HTTP listen port

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	BcryptCost    int  // bcrypt work factor (0 = library default)
	RunMigrations bool // whether to run AutoMigrate at startup

	BootstrapAdminEnabled bool   // whether to create an initial admin at startup
	AdminName             string // initial admin display name
	AdminEmail            string // initial admin login email
	AdminPassword         string // initial admin password (generated when empty)

	LoginRateLimit  int           // allowed login attempts per client per window
	LoginRateWindow time.Duration // fixed window size for login throttling
}

// Load populates Config from environment variables with sane defaults.
// A .env file in the working directory is honored when present.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	return &Config{
		Port:                  getEnv("PORT", "8080"),
		DBHost:                getEnv("DB_HOST", "localhost"),
		DBPort:                getEnv("DB_PORT", "5432"),
		DBUser:                getEnv("DB_USER", "postgres"),
		DBPassword:            getEnv("DB_PASSWORD", "postgres"),
		DBName:                getEnv("DB_NAME", "accounts"),
		DBSSLMode:             getEnv("DB_SSLMODE", "disable"),
		RedisHost:             getEnv("REDIS_HOST", "localhost"),
		RedisPort:             getEnv("REDIS_PORT", "6379"),
		RedisPassword:         getEnv("REDIS_PASSWORD", ""),
		RedisDB:               getEnvAsInt("REDIS_DB", 0),
		BcryptCost:            getEnvAsInt("BCRYPT_COST", 0),
		RunMigrations:         getEnvAsBool("RUN_MIGRATIONS", false),
		BootstrapAdminEnabled: getEnvAsBool("BOOTSTRAP_ADMIN", true),
		AdminName:             getEnv("ADMIN_NAME", "admin"),
		AdminEmail:            getEnv("ADMIN_EMAIL", "admin@localhost"),
		AdminPassword:         getEnv("ADMIN_PASSWORD", ""),
		LoginRateLimit:        getEnvAsInt("LOGIN_RATE_LIMIT", 10),
		LoginRateWindow:       time.Duration(getEnvAsInt("LOGIN_RATE_WINDOW_SECONDS", 60)) * time.Second,
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvAsBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
