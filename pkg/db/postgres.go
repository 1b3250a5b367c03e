// Package db manages the PostgreSQL connection and schema for the
// progression store.
package db

import (
	"database/sql"
	"fmt"
	"os"
	"strconv"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// Config holds database connection settings.
type Config struct {
	Host            string
	Port            int
	Database        string
	User            string
	Password        string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// NewConfigFromEnv builds a Config from environment variables, falling back
// to local-development defaults for anything unset or malformed.
func NewConfigFromEnv() *Config {
	return &Config{
		Host:            getEnv("DB_HOST", "localhost"),
		Port:            getEnvAsInt("DB_PORT", 5432),
		Database:        getEnv("DB_NAME", "gestureflow"),
		User:            getEnv("DB_USER", "postgres"),
		Password:        getEnv("DB_PASSWORD", ""),
		SSLMode:         getEnv("DB_SSLMODE", "disable"),
		MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
		MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
		ConnMaxLifetime: time.Duration(getEnvAsInt("DB_CONN_MAX_LIFETIME", 300)) * time.Second,
		ConnMaxIdleTime: time.Duration(getEnvAsInt("DB_CONN_MAX_IDLE_TIME", 300)) * time.Second,
	}
}

// DSN renders the config as a lib/pq connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%d dbname=%s user=%s password=%s sslmode=%s",
		c.Host, c.Port, c.Database, c.User, c.Password, c.SSLMode)
}

// Connect opens a connection pool and verifies it with a ping.
func Connect(cfg *Config) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// Health checks the database connection.
func Health(db *sql.DB) error {
	if db == nil {
		return fmt.Errorf("database connection is nil")
	}
	return db.Ping()
}

// Migrate applies the progression schema. Statements are idempotent so the
// service can run them on every startup.
func Migrate(db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS user_stats (
			user_id VARCHAR(100) PRIMARY KEY,
			lessons_completed INT NOT NULL DEFAULT 0,
			current_streak INT NOT NULL DEFAULT 0,
			accuracy_sum DOUBLE PRECISION NOT NULL DEFAULT 0,
			accuracy_count INT NOT NULL DEFAULT 0,
			friend_count INT NOT NULL DEFAULT 0,
			last_practiced_at TIMESTAMP NULL,
			created_at TIMESTAMP NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMP NOT NULL DEFAULT NOW(),
			CONSTRAINT check_lessons_non_negative CHECK (lessons_completed >= 0),
			CONSTRAINT check_streak_non_negative CHECK (current_streak >= 0),
			CONSTRAINT check_friends_non_negative CHECK (friend_count >= 0)
		)`,
		`CREATE TABLE IF NOT EXISTS user_levels (
			user_id VARCHAR(100) PRIMARY KEY,
			current_level INT NOT NULL DEFAULT 1,
			experience_points INT NOT NULL DEFAULT 0,
			total_experience INT NOT NULL DEFAULT 0,
			created_at TIMESTAMP NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMP NOT NULL DEFAULT NOW(),
			CONSTRAINT check_level_positive CHECK (current_level >= 1),
			CONSTRAINT check_xp_non_negative CHECK (experience_points >= 0),
			CONSTRAINT check_total_non_negative CHECK (total_experience >= 0)
		)`,
		`CREATE TABLE IF NOT EXISTS user_achievements (
			id UUID PRIMARY KEY,
			user_id VARCHAR(100) NOT NULL,
			achievement_id VARCHAR(100) NOT NULL,
			earned_at TIMESTAMP NOT NULL DEFAULT NOW(),
			CONSTRAINT unique_user_achievement UNIQUE (user_id, achievement_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_user_achievements_user
			ON user_achievements(user_id)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}

	return nil
}

// getEnv retrieves an environment variable or returns a default.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default.
func getEnvAsInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}
