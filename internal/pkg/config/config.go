// internal/pkg/config/config.go
package config

import (
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Document store drivers
const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
	DriverMemory   = "memory"
)

// Config holds all application configuration
type Config struct {
	App            AppConfig
	Database       DatabaseConfig
	Documents      DocumentsConfig
	Mongo          MongoConfig
	Redis          RedisConfig
	Asynq          AsynqConfig
	AWS            AWSConfig
	FileProcessing FileProcessingConfig
	Inventory      InventoryConfig
	Notifications  NotificationsConfig
	Security       SecurityConfig
	Server         ServerConfig
}

type AppConfig struct {
	Name        string `validate:"required"`
	Environment string // development, staging, production
	Version     string
	LogLevel    string
	LogFormat   string // json, text
}

// DatabaseConfig configures the postgres document store
type DatabaseConfig struct {
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	MaxConnections     int32 `validate:"gtefield=MinConnections"`
	MinConnections     int32
	MaxConnLifetime    time.Duration
	MaxConnIdleTime    time.Duration
	HealthCheckPeriod  time.Duration
	ConnectTimeout     time.Duration
	StatementCacheMode string `validate:"omitempty,oneof=describe prepare exec"`
	EnableQueryLogging bool
	RunMigrations      bool
}

// DocumentsConfig selects the document store backend
type DocumentsConfig struct {
	Driver string `validate:"required"`
}

type MongoConfig struct {
	URI            string
	Database       string
	ConnectTimeout time.Duration
}

type RedisConfig struct {
	Host            string
	Port            string
	Password        string
	DB              int
	MaxRetries      int
	MinRetryBackoff time.Duration
	MaxRetryBackoff time.Duration
	DialTimeout     time.Duration
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	PoolSize        int `validate:"gt=0"`
	MinIdleConns    int
	MaxConnAge      time.Duration
	PoolTimeout     time.Duration
	IdleTimeout     time.Duration
	TTL             time.Duration
}

// AsynqConfig configures the background worker
type AsynqConfig struct {
	RedisAddr            string
	RedisPassword        string
	RedisDB              int
	Concurrency          int
	Queues               map[string]int // queue name -> priority
	StrictPriority       bool
	ShutdownTimeout      time.Duration
	HealthCheckInterval  time.Duration
	DelayedTaskCheckTime time.Duration
}

// AWSConfig configures S3 photo storage. An empty bucket selects local
// storage under FileProcessing.PhotoDir.
type AWSConfig struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	S3Bucket        string
	S3Endpoint      string // MinIO in development
	UsePathStyle    bool
	S3PublicURL     string
}

type FileProcessingConfig struct {
	ImportMaxSizeMB   int
	PhotoMaxSizeMB    int
	ImageMaxDimension int `validate:"gt=0"`
	ProcessingTimeout time.Duration
	TempDir           string `validate:"required"`
	TempFileMaxAge    time.Duration
	CleanupInterval   time.Duration
	PhotoDir          string
	PhotoBaseURL      string
}

// InventoryConfig holds warehouse rules
type InventoryConfig struct {
	OverstockThreshold int               `validate:"gt=0"`
	LocationPrefixes   map[string]string // category -> location prefix
	DashboardCacheTTL  time.Duration
	DashboardRefresh   time.Duration
}

// NotificationsConfig holds low-stock alert delivery settings. Alerts are
// only logged when SMTPHost is empty.
type NotificationsConfig struct {
	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	From         string
	AlertTo      []string
}

type SecurityConfig struct {
	RateLimitRequests int           `validate:"gt=0"`
	RateLimitDuration time.Duration `validate:"gt=0"`
	AllowedOrigins    []string      `validate:"min=1"`
	SecureHeaders     bool
}

type ServerConfig struct {
	Host              string
	Port              string `validate:"required"`
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	MaxHeaderBytes    int
	GracefulTimeout   time.Duration
	EnablePprof       bool
	EnableHealthCheck bool
	TLSEnabled        bool
	TLSCertFile       string
	TLSKeyFile        string
}

// defaults maps every setting to its fallback. Values are overridden by
// CONFIG_FILE and then by the environment.
func defaults(env string) map[string]any {
	dev := env == "development" || env == "local"
	return map[string]any{
		"APP_NAME":    "warehouse-api",
		"APP_VERSION": "dev",
		"LOG_LEVEL":   "debug",
		"LOG_FORMAT":  "json",

		"DOCUMENTS_DRIVER": DriverPostgres,

		"DB_HOST":                 "localhost",
		"DB_PORT":                 "5432",
		"DB_USER":                 "warehouse",
		"DB_PASSWORD":             "warehouse_dev",
		"DB_NAME":                 "warehouse",
		"DB_SSL_MODE":             "disable",
		"DB_MAX_CONNECTIONS":      25,
		"DB_MIN_CONNECTIONS":      5,
		"DB_CONNECTION_LIFETIME":  time.Hour,
		"DB_IDLE_TIME":            30 * time.Minute,
		"DB_HEALTH_CHECK_PERIOD":  time.Minute,
		"DB_CONNECT_TIMEOUT":      10 * time.Second,
		"DB_STATEMENT_CACHE_MODE": "describe",
		"DB_QUERY_LOGGING":        dev,
		"DB_RUN_MIGRATIONS":       true,

		"MONGO_URI":             "mongodb://localhost:27017",
		"MONGO_DATABASE":        "warehouse",
		"MONGO_CONNECT_TIMEOUT": 10 * time.Second,

		"REDIS_HOST":              "localhost",
		"REDIS_PORT":              "6379",
		"REDIS_DB":                0,
		"REDIS_MAX_RETRIES":       3,
		"REDIS_MIN_RETRY_BACKOFF": 8 * time.Millisecond,
		"REDIS_MAX_RETRY_BACKOFF": 512 * time.Millisecond,
		"REDIS_DIAL_TIMEOUT":      5 * time.Second,
		"REDIS_READ_TIMEOUT":      3 * time.Second,
		"REDIS_WRITE_TIMEOUT":     3 * time.Second,
		"REDIS_POOL_SIZE":         10,
		"REDIS_MIN_IDLE_CONNS":    2,
		"REDIS_MAX_CONN_AGE":      time.Duration(0),
		"REDIS_POOL_TIMEOUT":      4 * time.Second,
		"REDIS_IDLE_TIMEOUT":      5 * time.Minute,
		"REDIS_TTL":               time.Hour,

		"ASYNQ_REDIS_DB":              0,
		"ASYNQ_CONCURRENCY":           10,
		"ASYNQ_QUEUES":                "critical:6,default:3,low:1",
		"ASYNQ_STRICT_PRIORITY":       false,
		"ASYNQ_SHUTDOWN_TIMEOUT":      30 * time.Second,
		"ASYNQ_HEALTH_CHECK_INTERVAL": 15 * time.Second,
		"ASYNQ_DELAYED_TASK_CHECK":    5 * time.Second,

		"AWS_REGION":            "us-east-1",
		"AWS_ACCESS_KEY_ID":     "minioadmin",
		"AWS_SECRET_ACCESS_KEY": "minioadmin123",
		"AWS_S3_BUCKET":         "",
		"AWS_S3_PATH_STYLE":     dev,

		"IMPORT_MAX_SIZE_MB":  20,
		"PHOTO_MAX_SIZE_MB":   10,
		"IMAGE_MAX_DIMENSION": 1024,
		"PROCESSING_TIMEOUT":  5 * time.Minute,
		"TEMP_DIR":            os.TempDir(),
		"TEMP_FILE_MAX_AGE":   24 * time.Hour,
		"CLEANUP_INTERVAL":    time.Hour,
		"PHOTO_DIR":           "./data/photos",
		"PHOTO_BASE_URL":      "/photos",

		"OVERSTOCK_THRESHOLD":        200,
		"DASHBOARD_CACHE_TTL":        10 * time.Minute,
		"DASHBOARD_REFRESH_INTERVAL": 5 * time.Minute,

		"SMTP_PORT":  "587",
		"ALERT_FROM": "warehouse@localhost",

		"RATE_LIMIT_REQUESTS": 100,
		"RATE_LIMIT_DURATION": time.Minute,
		"ALLOWED_ORIGINS":     "*",
		"SECURE_HEADERS":      env == "production",

		"SERVER_HOST":             "0.0.0.0",
		"SERVER_PORT":             "8080",
		"SERVER_READ_TIMEOUT":     15 * time.Second,
		"SERVER_WRITE_TIMEOUT":    15 * time.Second,
		"SERVER_IDLE_TIMEOUT":     60 * time.Second,
		"SERVER_MAX_HEADER_BYTES": 1 << 20,
		"SERVER_GRACEFUL_TIMEOUT": 30 * time.Second,
		"ENABLE_PPROF":            dev,
		"ENABLE_HEALTH_CHECK":     true,
	}
}

// Load reads configuration from .env (development only), CONFIG_FILE and
// the environment, then applies secrets and validates the result.
func Load(logger *slog.Logger) (*Config, error) {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}

	if env == "development" || env == "local" {
		if err := godotenv.Load(); err != nil {
			logger.Debug("no .env file loaded", slog.String("error", err.Error()))
		}
	}

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, value := range defaults(env) {
		v.SetDefault(key, value)
	}
	if file := os.Getenv("CONFIG_FILE"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", file, err)
		}
		logger.Info("config file loaded", slog.String("file", file))
	}

	cfg := build(v, env)

	if err := applySecrets(cfg, logger); err != nil {
		return nil, fmt.Errorf("failed to load secrets: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func build(v *viper.Viper, env string) *Config {
	str := func(key string) string { return strings.TrimSpace(v.GetString(key)) }

	return &Config{
		App: AppConfig{
			Name:        str("APP_NAME"),
			Environment: env,
			Version:     str("APP_VERSION"),
			LogLevel:    str("LOG_LEVEL"),
			LogFormat:   str("LOG_FORMAT"),
		},
		Database: DatabaseConfig{
			Host:               str("DB_HOST"),
			Port:               str("DB_PORT"),
			User:               str("DB_USER"),
			Password:           v.GetString("DB_PASSWORD"),
			Name:               str("DB_NAME"),
			SSLMode:            str("DB_SSL_MODE"),
			MaxConnections:     v.GetInt32("DB_MAX_CONNECTIONS"),
			MinConnections:     v.GetInt32("DB_MIN_CONNECTIONS"),
			MaxConnLifetime:    v.GetDuration("DB_CONNECTION_LIFETIME"),
			MaxConnIdleTime:    v.GetDuration("DB_IDLE_TIME"),
			HealthCheckPeriod:  v.GetDuration("DB_HEALTH_CHECK_PERIOD"),
			ConnectTimeout:     v.GetDuration("DB_CONNECT_TIMEOUT"),
			StatementCacheMode: str("DB_STATEMENT_CACHE_MODE"),
			EnableQueryLogging: v.GetBool("DB_QUERY_LOGGING"),
			RunMigrations:      v.GetBool("DB_RUN_MIGRATIONS"),
		},
		Documents: DocumentsConfig{
			Driver: strings.ToLower(str("DOCUMENTS_DRIVER")),
		},
		Mongo: MongoConfig{
			URI:            str("MONGO_URI"),
			Database:       str("MONGO_DATABASE"),
			ConnectTimeout: v.GetDuration("MONGO_CONNECT_TIMEOUT"),
		},
		Redis: RedisConfig{
			Host:            str("REDIS_HOST"),
			Port:            str("REDIS_PORT"),
			Password:        v.GetString("REDIS_PASSWORD"),
			DB:              v.GetInt("REDIS_DB"),
			MaxRetries:      v.GetInt("REDIS_MAX_RETRIES"),
			MinRetryBackoff: v.GetDuration("REDIS_MIN_RETRY_BACKOFF"),
			MaxRetryBackoff: v.GetDuration("REDIS_MAX_RETRY_BACKOFF"),
			DialTimeout:     v.GetDuration("REDIS_DIAL_TIMEOUT"),
			ReadTimeout:     v.GetDuration("REDIS_READ_TIMEOUT"),
			WriteTimeout:    v.GetDuration("REDIS_WRITE_TIMEOUT"),
			PoolSize:        v.GetInt("REDIS_POOL_SIZE"),
			MinIdleConns:    v.GetInt("REDIS_MIN_IDLE_CONNS"),
			MaxConnAge:      v.GetDuration("REDIS_MAX_CONN_AGE"),
			PoolTimeout:     v.GetDuration("REDIS_POOL_TIMEOUT"),
			IdleTimeout:     v.GetDuration("REDIS_IDLE_TIMEOUT"),
			TTL:             v.GetDuration("REDIS_TTL"),
		},
		Asynq: AsynqConfig{
			RedisAddr:            net.JoinHostPort(str("REDIS_HOST"), str("REDIS_PORT")),
			RedisPassword:        v.GetString("REDIS_PASSWORD"),
			RedisDB:              v.GetInt("ASYNQ_REDIS_DB"),
			Concurrency:          v.GetInt("ASYNQ_CONCURRENCY"),
			Queues:               parseQueues(str("ASYNQ_QUEUES")),
			StrictPriority:       v.GetBool("ASYNQ_STRICT_PRIORITY"),
			ShutdownTimeout:      v.GetDuration("ASYNQ_SHUTDOWN_TIMEOUT"),
			HealthCheckInterval:  v.GetDuration("ASYNQ_HEALTH_CHECK_INTERVAL"),
			DelayedTaskCheckTime: v.GetDuration("ASYNQ_DELAYED_TASK_CHECK"),
		},
		AWS: AWSConfig{
			Region:          str("AWS_REGION"),
			AccessKeyID:     str("AWS_ACCESS_KEY_ID"),
			SecretAccessKey: v.GetString("AWS_SECRET_ACCESS_KEY"),
			S3Bucket:        str("AWS_S3_BUCKET"),
			S3Endpoint:      str("AWS_S3_ENDPOINT"),
			UsePathStyle:    v.GetBool("AWS_S3_PATH_STYLE"),
			S3PublicURL:     str("AWS_S3_PUBLIC_URL"),
		},
		FileProcessing: FileProcessingConfig{
			ImportMaxSizeMB:   v.GetInt("IMPORT_MAX_SIZE_MB"),
			PhotoMaxSizeMB:    v.GetInt("PHOTO_MAX_SIZE_MB"),
			ImageMaxDimension: v.GetInt("IMAGE_MAX_DIMENSION"),
			ProcessingTimeout: v.GetDuration("PROCESSING_TIMEOUT"),
			TempDir:           str("TEMP_DIR"),
			TempFileMaxAge:    v.GetDuration("TEMP_FILE_MAX_AGE"),
			CleanupInterval:   v.GetDuration("CLEANUP_INTERVAL"),
			PhotoDir:          str("PHOTO_DIR"),
			PhotoBaseURL:      str("PHOTO_BASE_URL"),
		},
		Inventory: InventoryConfig{
			OverstockThreshold: v.GetInt("OVERSTOCK_THRESHOLD"),
			LocationPrefixes:   parsePairs(str("LOCATION_PREFIXES")),
			DashboardCacheTTL:  v.GetDuration("DASHBOARD_CACHE_TTL"),
			DashboardRefresh:   v.GetDuration("DASHBOARD_REFRESH_INTERVAL"),
		},
		Notifications: NotificationsConfig{
			SMTPHost:     str("SMTP_HOST"),
			SMTPPort:     str("SMTP_PORT"),
			SMTPUsername: str("SMTP_USERNAME"),
			SMTPPassword: v.GetString("SMTP_PASSWORD"),
			From:         str("ALERT_FROM"),
			AlertTo:      splitList(str("ALERT_TO")),
		},
		Security: SecurityConfig{
			RateLimitRequests: v.GetInt("RATE_LIMIT_REQUESTS"),
			RateLimitDuration: v.GetDuration("RATE_LIMIT_DURATION"),
			AllowedOrigins:    splitList(str("ALLOWED_ORIGINS")),
			SecureHeaders:     v.GetBool("SECURE_HEADERS"),
		},
		Server: ServerConfig{
			Host:              str("SERVER_HOST"),
			Port:              str("SERVER_PORT"),
			ReadTimeout:       v.GetDuration("SERVER_READ_TIMEOUT"),
			WriteTimeout:      v.GetDuration("SERVER_WRITE_TIMEOUT"),
			IdleTimeout:       v.GetDuration("SERVER_IDLE_TIMEOUT"),
			MaxHeaderBytes:    v.GetInt("SERVER_MAX_HEADER_BYTES"),
			GracefulTimeout:   v.GetDuration("SERVER_GRACEFUL_TIMEOUT"),
			EnablePprof:       v.GetBool("ENABLE_PPROF"),
			EnableHealthCheck: v.GetBool("ENABLE_HEALTH_CHECK"),
			TLSEnabled:        v.GetBool("TLS_ENABLED"),
			TLSCertFile:       str("TLS_CERT_FILE"),
			TLSKeyFile:        str("TLS_KEY_FILE"),
		},
	}
}

// URL renders the settings as a postgres:// URL with escaped credentials
func (d DatabaseConfig) URL() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   net.JoinHostPort(d.Host, d.Port),
		Path:   "/" + d.Name,
	}
	q := url.Values{}
	if d.SSLMode != "" {
		q.Set("sslmode", d.SSLMode)
	}
	if d.ConnectTimeout > 0 {
		q.Set("connect_timeout", strconv.Itoa(int(d.ConnectTimeout.Seconds())))
	}
	u.RawQuery = q.Encode()
	return u.String()
}

func (c *Config) GetRedisAddress() string {
	return net.JoinHostPort(c.Redis.Host, c.Redis.Port)
}

func (c *Config) GetServerAddress() string {
	return net.JoinHostPort(c.Server.Host, c.Server.Port)
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development" || c.App.Environment == "local"
}

// splitList reads a comma separated list, dropping blank entries
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// parseQueues reads "name:priority" pairs, falling back to a single default
// queue
func parseQueues(s string) map[string]int {
	queues := make(map[string]int)
	for name, value := range parsePairs(s) {
		if priority, err := strconv.Atoi(value); err == nil && priority > 0 {
			queues[name] = priority
		}
	}
	if len(queues) == 0 {
		queues["default"] = 1
	}
	return queues
}

// parsePairs reads "key:value,key:value". Malformed pairs are skipped.
func parsePairs(s string) map[string]string {
	pairs := make(map[string]string)
	for _, pair := range splitList(s) {
		key, value, ok := strings.Cut(pair, ":")
		key, value = strings.TrimSpace(key), strings.TrimSpace(value)
		if !ok || key == "" || value == "" {
			continue
		}
		pairs[key] = value
	}
	return pairs
}
