package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultAccountsURL is the base endpoint of the accounts API.
const DefaultAccountsURL = "https://api.fortnite.com/v1/accounts"

// ApiConfiguration holds the upstream accounts API settings.
type ApiConfiguration struct {
	AccountsURL string
	ListenAddr  string
}

// Redis configuration struct.
type RedisConfiguration struct {
	Host        string
	Port        string
	Password    string
	SnapshotTTL time.Duration
}

// DatabaseConfiguration holds the Postgres settings.
type DatabaseConfiguration struct {
	DSN            string
	Database       string
	MigrationsPath string
}

// BucketConfiguration holds the S3 compatible storage used for the logs.
type BucketConfiguration struct {
	Region       string
	Endpoint     string
	AccessKey    string
	AccessSecret string
	LogBucket    string
}

// SchedulerConfiguration holds the watch list job settings.
type SchedulerConfiguration struct {
	Usernames []string
	Interval  time.Duration
}

// Config is the full application configuration.
type Config struct {
	Api       ApiConfiguration
	Redis     RedisConfiguration
	Database  DatabaseConfiguration
	Bucket    BucketConfiguration
	Scheduler SchedulerConfiguration
}

// Load the variables.
// The .env file is only read when not running on Docker.
func Load() (*Config, error) {
	if os.Getenv("ENVIRONMENT") != "docker" {
		// A missing .env is fine, the environment may already be set.
		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("couldn't load .env file: %w", err)
		}
	}

	snapshotTTL, err := durationEnv("REDIS_SNAPSHOT_TTL", 24*time.Hour)
	if err != nil {
		return nil, err
	}

	interval, err := durationEnv("SCHEDULER_INTERVAL", time.Hour)
	if err != nil {
		return nil, err
	}

	return &Config{
		Api: ApiConfiguration{
			AccountsURL: stringEnv("ACCOUNTS_API_URL", DefaultAccountsURL),
			ListenAddr:  stringEnv("API_LISTEN_ADDR", ":8080"),
		},
		Redis: RedisConfiguration{
			Host:        stringEnv("REDIS_HOST", "localhost"),
			Port:        stringEnv("REDIS_PORT", "6379"),
			Password:    os.Getenv("REDIS_PASSWORD"),
			SnapshotTTL: snapshotTTL,
		},
		Database: DatabaseConfiguration{
			DSN:            os.Getenv("POSTGRES_DSN"),
			Database:       stringEnv("POSTGRES_DB", "fortstats"),
			MigrationsPath: stringEnv("MIGRATIONS_PATH", "migrations"),
		},
		Bucket: BucketConfiguration{
			Region:       os.Getenv("BUCKET_REGION"),
			Endpoint:     os.Getenv("BUCKET_ENDPOINT"),
			AccessKey:    os.Getenv("BUCKET_ACCESS_KEY"),
			AccessSecret: os.Getenv("BUCKET_ACCESS_SECRET"),
			LogBucket:    os.Getenv("BUCKET_LOG_BUCKET"),
		},
		Scheduler: SchedulerConfiguration{
			Usernames: listEnv("SCHEDULER_USERNAMES"),
			Interval:  interval,
		},
	}, nil
}

// stringEnv returns the variable value or the fallback when unset.
func stringEnv(key string, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// durationEnv parses a duration variable, accepting plain seconds too.
func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}

	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second, nil
	}

	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid duration on %s: %w", key, err)
	}
	return d, nil
}

// listEnv splits a comma separated variable, dropping empty entries.
func listEnv(key string) []string {
	var values []string
	for _, v := range strings.Split(os.Getenv(key), ",") {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}
	return values
}
