package config

import "os"

// Server configuration
var (
	Port      = getEnv("API_PORT", "8080")
	ClientUrl = getEnv("CLIENT_URL", "http://localhost:5173")
	JWTSecret = getEnv("JWT_SECRET", "dev-secret-change-me")
)

// Postgres configuration
var (
	PostgresHost     = getEnv("POSTGRES_HOST", "localhost")
	PostgresPort     = getEnv("POSTGRES_PORT", "5432")
	PostgresUser     = getEnv("POSTGRES_USER", "postgres")
	PostgresPassword = getEnv("POSTGRES_PASSWORD", "postgres")
	PostgresDB       = getEnv("POSTGRES_DB", "fanchallenge")
)

// Redis configuration
var (
	RedisHost     = getEnv("REDIS_HOST", "localhost")
	RedisPort     = getEnv("REDIS_PORT", "6379")
	RedisPassword = os.Getenv("REDIS_PASSWORD")
)

// Default admin operator password, used when seeding an empty database
var DefaultPassword = os.Getenv("DEFAULT_ADMIN_PASSWORD")

// External collaborators
var (
	// OracleUrl is the randomness oracle that serves block hash derived seeds
	OracleUrl = getEnv("ORACLE_URL", "http://localhost:9090")
	// TreasuryUrl is the payout/ledger service that executes fund transfers
	TreasuryUrl = getEnv("TREASURY_URL", "http://localhost:9091")
	// YoutubeStatsUrl proxies point-in-time video statistics lookups
	YoutubeStatsUrl = getEnv("YOUTUBE_STATS_URL", "http://localhost:9092")
)

// Mail configuration for winner notifications
var (
	MailHost     = getEnv("MAIL_HOST", "localhost")
	MailPort     = getEnv("MAIL_PORT", "587")
	MailUsername = os.Getenv("MAIL_USERNAME")
	MailPassword = os.Getenv("MAIL_PASSWORD")
)

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
