package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/rahulgarg55/casino-games-backend/pkg/logger"
)

type Config struct {
	DB       *DBConfig
	App      *AppConfig
	Redis    *RedisConfig
	Worker   *WorkerConfig
	Auth     *AuthConfig
	Payout   *PayoutConfig
	Wallet   *WalletConfig
	Webhooks *WebhookConfig
}

type AppConfig struct {
	Name        string
	Env         string
	Port        string
	LogLevel    string
	LogFormat   string
	LogFilePath string
	BinFilePath string
}

type DBConfig struct {
	DBWrite     *DBConnConfig
	DBRead      *DBConnConfig
	DBPool      *DBPooling
	AutoMigrate bool
}

type DBConnConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type DBPooling struct {
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime int
	ConnMaxIdleTime int
}

type RedisConfig struct {
	Host         string
	Port         string
	Password     string
	DB           string
	PoolSize     int
	MinIdleConns int
}

type WorkerConfig struct {
	WorkerCount int
	Instance    string
}

type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

type PayoutConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

type WalletConfig struct {
	FeeCacheTTL              time.Duration
	WithdrawalPendingTimeout time.Duration
	IdempotencyKeyTTL        time.Duration
}

type WebhookConfig struct {
	GameServerSecret     string
	PaymentWebhookSecret string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		logger.Warn("No .env file found, using process environment")
	}

	cfg := &Config{
		DB:       LoadDBConfig(),
		App:      LoadAppConfig(),
		Redis:    LoadRedisConfig(),
		Worker:   LoadWorkerConfig(),
		Auth:     LoadAuthConfig(),
		Payout:   LoadPayoutConfig(),
		Wallet:   LoadWalletConfig(),
		Webhooks: LoadWebhookConfig(),
	}

	if cfg.Auth.JWTSecret == defaultJWTSecret {
		logger.Warn("JWT_SECRET is not set, using an insecure default")
	}
	return cfg
}

const defaultJWTSecret = "change-me"

func LoadAppConfig() *AppConfig {
	return &AppConfig{
		Name:        getEnv("APP_NAME", "casino-backend"),
		Env:         GetAppEnv(),
		Port:        GetAppPort(),
		LogLevel:    getEnv("APP_LOG_LEVEL", "info"),
		LogFormat:   getEnv("APP_LOG_FORMAT", "text"),
		LogFilePath: getEnv("APP_LOG_FILE", "logs/app.log"),
		BinFilePath: GetAppBinFile(),
	}
}

func LoadDBConfig() *DBConfig {
	dbWrite := &DBConnConfig{
		Host:     getEnv("DB_WRITE_HOST", "localhost"),
		Port:     getEnv("DB_WRITE_PORT", "5432"),
		User:     getEnv("DB_WRITE_USER", "postgres"),
		Password: getEnv("DB_WRITE_PASSWORD", "password"),
		Name:     getEnv("DB_WRITE_NAME", "casino"),
		SSLMode:  getEnv("DB_WRITE_SSL_MODE", "disable"),
	}

	// The read replica defaults to the write primary.
	dbRead := &DBConnConfig{
		Host:     getEnv("DB_READ_HOST", dbWrite.Host),
		Port:     getEnv("DB_READ_PORT", dbWrite.Port),
		User:     getEnv("DB_READ_USER", dbWrite.User),
		Password: getEnv("DB_READ_PASSWORD", dbWrite.Password),
		Name:     getEnv("DB_READ_NAME", dbWrite.Name),
		SSLMode:  getEnv("DB_READ_SSL_MODE", dbWrite.SSLMode),
	}

	dbPool := &DBPooling{
		MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 10),
		MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 100),
		ConnMaxLifetime: getEnvAsInt("DB_CONN_MAX_LIFETIME", 60),
		ConnMaxIdleTime: getEnvAsInt("DB_CONN_MAX_IDLE_TIME", 5),
	}

	return &DBConfig{
		DBWrite:     dbWrite,
		DBRead:      dbRead,
		DBPool:      dbPool,
		AutoMigrate: getEnvAsBool("DB_AUTO_MIGRATE", true),
	}
}

func LoadRedisConfig() *RedisConfig {
	return &RedisConfig{
		Host:         getEnv("REDIS_HOST", "localhost"),
		Port:         getEnv("REDIS_PORT", "6379"),
		Password:     getEnv("REDIS_PASSWORD", ""),
		DB:           getEnv("REDIS_DB", "0"),
		PoolSize:     getEnvAsInt("REDIS_POOL_SIZE", 100),
		MinIdleConns: getEnvAsInt("REDIS_MIN_IDLE_CONNS", 10),
	}
}

func LoadWorkerConfig() *WorkerConfig {
	host, _ := os.Hostname()
	return &WorkerConfig{
		WorkerCount: getEnvAsInt("WORKER_COUNT", 2),
		Instance:    getEnv("WORKER_INSTANCE", host),
	}
}

func LoadAuthConfig() *AuthConfig {
	return &AuthConfig{
		JWTSecret: getEnv("JWT_SECRET", defaultJWTSecret),
		TokenTTL:  time.Duration(getEnvAsInt("JWT_TTL_HOURS", 24)) * time.Hour,
	}
}

func LoadPayoutConfig() *PayoutConfig {
	return &PayoutConfig{
		BaseURL: getEnv("PAYOUT_API_URL", "http://localhost:4010"),
		APIKey:  getEnv("PAYOUT_API_KEY", ""),
		Timeout: time.Duration(getEnvAsInt("PAYOUT_TIMEOUT_SECONDS", 15)) * time.Second,
	}
}

func LoadWalletConfig() *WalletConfig {
	return &WalletConfig{
		FeeCacheTTL:              time.Duration(getEnvAsInt("FEE_CACHE_TTL_SECONDS", 300)) * time.Second,
		WithdrawalPendingTimeout: time.Duration(getEnvAsInt("WITHDRAWAL_PENDING_TIMEOUT_MINUTES", 30)) * time.Minute,
		IdempotencyKeyTTL:        time.Duration(getEnvAsInt("IDEMPOTENCY_KEY_TTL_SECONDS", 60)) * time.Second,
	}
}

func LoadWebhookConfig() *WebhookConfig {
	return &WebhookConfig{
		GameServerSecret:     getEnv("GAME_SERVER_SECRET", ""),
		PaymentWebhookSecret: getEnv("PAYMENT_WEBHOOK_SECRET", ""),
	}
}

// =========================================================

func GetAppPort() string {
	return getEnv("APP_PORT", "8080")
}

func GetAppEnv() string {
	return getEnv("APP_ENV", "development")
}

func GetAppBinFile() string {
	return getEnv("APP_BIN_FILE", "./bin/casino-api")
}

//============================================================

// getEnv returns the value of the environment variable or a default value if not set
func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// getEnvAsInt returns the value of the environment variable as an integer or a default value if not set
func getEnvAsInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
		logger.Warnf("invalid integer for %s=%q, using %d", key, val, defaultVal)
	}
	return defaultVal
}

func getEnvAsBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
		logger.Warnf("invalid boolean for %s=%q, using %t", key, val, defaultVal)
	}
	return defaultVal
}
