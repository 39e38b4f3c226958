package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	SMTP      SMTPConfig
	Resources ResourcesConfig
	Dispatch  DispatchConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string

	// WSAllowedOrigins lists browser origins allowed to open the notification
	// socket. Empty means same host only.
	WSAllowedOrigins []string
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	ConnectTimeout        time.Duration
	PoolMaxConns          int32
	PoolMinConns          int32
	PoolMaxConnLifetime   time.Duration
	PoolMaxConnIdleTime   time.Duration
	PoolHealthCheckPeriod time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	AccessSecret    string
	AccessExpiresIn time.Duration
}

// SMTPConfig is optional; an empty Host switches delivery to the log transport.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	FromName string
	From     string
}

func (c SMTPConfig) Enabled() bool {
	return c.Host != ""
}

type ResourcesConfig struct {
	FreshnessWindow time.Duration
}

type DispatchConfig struct {
	Workers     int
	QueueSize   int
	RatePerSec  int
	TaskTimeout time.Duration
}

const DefaultFreshnessWindow = 7 * 24 * time.Hour

var errMissingRequiredEnv = errors.New("missing required environment variables")

// Load reads configuration from the process environment. A .env file in the
// working directory is applied first when present; real env vars win.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{}

	var missing []string
	req := func(key string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	opt := func(key string) string {
		return strings.TrimSpace(os.Getenv(key))
	}

	cfg.App = AppConfig{
		AppName:     req("APP_NAME"),
		Environment: req("APP_ENV"),
		HTTPPort:    req("HTTP_PORT"),
	}
	for _, o := range strings.Split(opt("WS_ALLOWED_ORIGINS"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.App.WSAllowedOrigins = append(cfg.App.WSAllowedOrigins, o)
		}
	}

	cfg.Database = DatabaseConfig{
		DBHost:                opt("DB_HOST"),
		DBPort:                opt("DB_PORT"),
		DBName:                opt("DB_NAME"),
		DBUser:                opt("DB_USER"),
		DBPassword:            opt("DB_PASSWORD"),
		DBSSLMode:             opt("DB_SSL_MODE"),
		ConnectTimeout:        durationSeconds(opt("DB_CONNECT_TIMEOUT_SECONDS"), 5*time.Second),
		PoolMaxConns:          int32(intOr(opt("DB_POOL_MAX_CONNS"), 0)),
		PoolMinConns:          int32(intOr(opt("DB_POOL_MIN_CONNS"), 0)),
		PoolMaxConnLifetime:   durationSeconds(opt("DB_POOL_MAX_CONN_LIFETIME_SECONDS"), 0),
		PoolMaxConnIdleTime:   durationSeconds(opt("DB_POOL_MAX_CONN_IDLE_SECONDS"), 0),
		PoolHealthCheckPeriod: durationSeconds(opt("DB_POOL_HEALTH_CHECK_SECONDS"), 0),
	}

	cfg.Redis = RedisConfig{
		Host:     opt("REDIS_HOST"),
		Port:     opt("REDIS_PORT"),
		Password: opt("REDIS_PASSWORD"),
		DB:       intOr(opt("REDIS_DB"), 0),
	}

	cfg.JWT = JWTConfig{
		AccessSecret:    opt("JWT_ACCESS_SECRET"),
		AccessExpiresIn: durationSeconds(opt("JWT_ACCESS_EXPIRES_IN_SECONDS"), 15*time.Minute),
	}

	cfg.SMTP = SMTPConfig{
		Host:     opt("EMAIL_HOST"),
		Port:     intOr(opt("EMAIL_PORT"), 587),
		Username: opt("EMAIL_USER"),
		Password: opt("EMAIL_PASS"),
		FromName: opt("EMAIL_FROM_NAME"),
		From:     opt("EMAIL_FROM"),
	}
	if cfg.SMTP.FromName == "" {
		cfg.SMTP.FromName = "TalentHive"
	}
	if cfg.SMTP.From == "" {
		cfg.SMTP.From = cfg.SMTP.Username
	}

	cfg.Resources = ResourcesConfig{
		FreshnessWindow: durationHours(opt("RESOURCES_FRESHNESS_HOURS"), DefaultFreshnessWindow),
	}

	cfg.Dispatch = DispatchConfig{
		Workers:     intOr(opt("DISPATCH_WORKERS"), 4),
		QueueSize:   intOr(opt("DISPATCH_QUEUE_SIZE"), 256),
		RatePerSec:  intOr(opt("DISPATCH_RATE_PER_SEC"), 0),
		TaskTimeout: durationSeconds(opt("DISPATCH_TASK_TIMEOUT_SECONDS"), 30*time.Second),
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}

	return cfg, nil
}

func intOr(raw string, def int) int {
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return def
	}
	return v
}

func durationSeconds(raw string, def time.Duration) time.Duration {
	v := intOr(raw, -1)
	if v <= 0 {
		return def
	}
	return time.Duration(v) * time.Second
}

func durationHours(raw string, def time.Duration) time.Duration {
	v := intOr(raw, -1)
	if v <= 0 {
		return def
	}
	return time.Duration(v) * time.Hour
}
