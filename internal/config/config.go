package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StorageMySQL  = "mysql"
	StorageMemory = "memory"
)

type Config struct {
	AppPort           string
	StorageDriver     string
	DbHost            string
	DbPort            string
	DbUser            string
	DbPassword        string
	DbName            string
	DbParams          string
	MigrationsDir     string
	MigrateOnStart    bool
	TrustedProxies    []string
	TranslationFolder string
	JWTSecret         string
	JWTIssuer         string
	JWTTTL            time.Duration
	BcryptCost        int
	AuthRateLimit     RateLimitConfig
	Bootstrap         BootstrapConfig
}

// RateLimitConfig is a per client IP token bucket. A zero PerSecond disables it.
type RateLimitConfig struct {
	PerSecond float64
	Burst     int
}

// BootstrapConfig describes the organization and owner account created on
// first start when they do not exist yet. An empty OwnerEmail disables it.
type BootstrapConfig struct {
	OrganizationName string
	OwnerEmail       string
	OwnerPassword    string
	OwnerName        string
}

func LoadConfig() *Config {
	_ = godotenv.Load(".env")

	return &Config{
		AppPort:           getEnv("APP_PORT", "8080"),
		StorageDriver:     strings.ToLower(getEnv("STORAGE_DRIVER", StorageMySQL)),
		DbHost:            getEnv("MYSQL_HOST", "db"),
		DbPort:            getEnv("MYSQL_PORT", "3306"),
		DbUser:            getEnv("MYSQL_USER", "taskboard"),
		DbPassword:        getEnv("MYSQL_PASSWORD", "taskboard"),
		DbName:            getEnv("MYSQL_DATABASE", "taskboard"),
		DbParams:          getEnv("MYSQL_PARAMS", "parseTime=true&multiStatements=true"),
		MigrationsDir:     getEnv("MIGRATIONS_DIR", "db/migrations"),
		MigrateOnStart:    getBool("MIGRATE_ON_START", true),
		TrustedProxies:    parseList(os.Getenv("TRUSTED_PROXIES")),
		TranslationFolder: getEnv("TRANSLATION_FOLDER", "pkg/translator/translation"),
		JWTSecret:         getEnv("JWT_SECRET", "change-me"),
		JWTIssuer:         getEnv("JWT_ISSUER", "taskboard"),
		JWTTTL:            getDuration("JWT_TTL", 24*time.Hour),
		BcryptCost:        getInt("BCRYPT_COST", 10),
		AuthRateLimit: RateLimitConfig{
			PerSecond: getFloat("AUTH_RATE_LIMIT_RPS", 5),
			Burst:     getInt("AUTH_RATE_LIMIT_BURST", 10),
		},
		Bootstrap: BootstrapConfig{
			OrganizationName: getEnv("BOOTSTRAP_ORG_NAME", "Default Organization"),
			OwnerEmail:       getEnv("BOOTSTRAP_ADMIN_EMAIL", ""),
			OwnerPassword:    getEnv("BOOTSTRAP_ADMIN_PASSWORD", ""),
			OwnerName:        getEnv("BOOTSTRAP_ADMIN_NAME", "Owner"),
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
	value, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return value
}

func getFloat(key string, fallback float64) float64 {
	value, err := strconv.ParseFloat(getEnv(key, ""), 64)
	if err != nil || value < 0 {
		return fallback
	}
	return value
}

func getBool(key string, fallback bool) bool {
	value, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return value
}

func getDuration(key string, fallback time.Duration) time.Duration {
	value, err := time.ParseDuration(getEnv(key, ""))
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}

func parseList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		items = append(items, item)
	}

	if len(items) == 0 {
		return nil
	}

	return items
}
