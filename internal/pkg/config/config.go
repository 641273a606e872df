package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/piresc/tukang/internal/pkg/models"
)

// InitConfig builds the service configuration from the environment. Local
// runs first load configPath as a dotenv file.
func InitConfig(configPath string) *models.Config {
	if GetEnv("APP_ENV", "local") == "local" {
		if err := godotenv.Load(configPath); err != nil {
			log.Println("error loading config from file", err)
		}
	}

	configs := &models.Config{}
	loadApp(configs)
	loadStores(configs)
	loadMessaging(configs)
	loadObservability(configs)
	loadEngine(configs)
	return configs
}

func loadApp(c *models.Config) {
	c.App = models.AppConfig{
		Name:        GetEnv("APP_NAME", "booking-service"),
		Environment: GetEnv("APP_ENV", ""),
		Debug:       GetEnvAsBool("APP_DEBUG", true),
		Version:     GetEnv("APP_VERSION", ""),
	}
	c.Server = models.ServerConfig{
		Host:            GetEnv("SERVER_HOST", ""),
		Port:            GetEnvAsInt("SERVER_PORT", 9990),
		ReadTimeout:     GetEnvAsInt("SERVER_READ_TIMEOUT", 15),
		WriteTimeout:    GetEnvAsInt("SERVER_WRITE_TIMEOUT", 15),
		ShutdownTimeout: GetEnvAsInt("SERVER_SHUTDOWN_TIMEOUT", 10),
		RateLimit:       GetEnvAsInt("RATE_LIMIT_BOOKING_WRITES", 0),
		RateLimitPeriod: GetEnvAsDuration("RATE_LIMIT_PERIOD", time.Minute),
	}
	c.JWT = models.JWTConfig{
		Secret:     GetEnv("JWT_SECRET", ""),
		Expiration: GetEnvAsInt("JWT_EXPIRATION", 0),
		Issuer:     GetEnv("JWT_ISSUER", ""),
	}
}

// loadStores reads the authoritative store, Postgres and Redis settings
func loadStores(c *models.Config) {
	c.Store.Driver = GetEnv("STORE_DRIVER", "postgres")
	c.Database = models.DatabaseConfig{
		Driver:    GetEnv("DB_DRIVER", "pgx"),
		Host:      GetEnv("DB_HOST", ""),
		Port:      GetEnvAsInt("DB_PORT", 0),
		Username:  GetEnv("DB_USERNAME", ""),
		Password:  GetEnv("DB_PASSWORD", ""),
		Database:  GetEnv("DB_DATABASE", ""),
		SSLMode:   GetEnv("DB_SSL_MODE", ""),
		MaxConns:  GetEnvAsInt("DB_MAX_CONNS", 0),
		IdleConns: GetEnvAsInt("DB_IDLE_CONNS", 0),
	}
	c.Redis = models.RedisConfig{
		Host:     GetEnv("REDIS_HOST", ""),
		Port:     GetEnvAsInt("REDIS_PORT", 0),
		Password: GetEnv("REDIS_PASSWORD", ""),
		DB:       GetEnvAsInt("REDIS_DB", 0),
		PoolSize: GetEnvAsInt("REDIS_POOL_SIZE", 0),
	}
	c.Cache = models.CacheConfig{
		Driver:     GetEnv("CACHE_DRIVER", "memory"),
		TTL:        GetEnvAsDuration("CACHE_TTL", 60*time.Second),
		MaxEntries: GetEnvAsInt("CACHE_MAX_ENTRIES", 100),
		Broadcast:  GetEnvAsBool("CACHE_BROADCAST", false),
	}
}

func loadMessaging(c *models.Config) {
	c.NATS.URL = GetEnv("NATS_URL", "")
	c.Channel.Transport = GetEnv("CHANNEL_TRANSPORT", "nats")
}

func loadObservability(c *models.Config) {
	c.NewRelic = models.NewRelicConfig{
		LicenseKey:   GetEnv("NEW_RELIC_LICENSE_KEY", ""),
		AppName:      GetEnv("NEW_RELIC_APP_NAME", ""),
		Enabled:      GetEnvAsBool("NEW_RELIC_ENABLED", false),
		LogsEnabled:  GetEnvAsBool("NEW_RELIC_LOGS_ENABLED", false),
		LogsEndpoint: GetEnv("NEW_RELIC_LOGS_ENDPOINT", ""),
		LogsAPIKey:   GetEnv("NEW_RELIC_LOGS_API_KEY", ""),
		ForwardLogs:  GetEnvAsBool("NEW_RELIC_FORWARD_LOGS", false),
	}
	c.Logger = models.LoggerConfig{
		Level:      GetEnv("LOG_LEVEL", "info"),
		FilePath:   GetEnv("LOG_FILE_PATH", "logs/booking.log"),
		MaxSize:    GetEnvAsInt64("LOG_MAX_SIZE", 100),
		MaxAge:     GetEnvAsInt("LOG_MAX_AGE", 7),
		MaxBackups: GetEnvAsInt("LOG_MAX_BACKUPS", 3),
		Compress:   GetEnvAsBool("LOG_COMPRESS", true),
		Type:       GetEnv("LOG_TYPE", "console"),
	}
}

// loadEngine reads dispatch, reward and follow-up tuning
func loadEngine(c *models.Config) {
	c.Dispatch = models.DispatchConfig{
		TopN:           GetEnvAsInt("DISPATCH_TOP_N", 3),
		CandidateLimit: GetEnvAsInt("DISPATCH_CANDIDATE_LIMIT", 0),
		SynonymsFile:   GetEnv("CATEGORY_SYNONYMS_FILE", ""),
		Synonyms:       GetEnv("CATEGORY_SYNONYMS", ""),
	}
	c.Rewards = models.RewardsConfig{
		PointsPerUnit: GetEnvAsInt("REWARD_POINTS_PER_UNIT", 10),
		CurrencyUnit:  GetEnvAsFloat("REWARD_CURRENCY_UNIT", 100),
		WorkerBase:    GetEnvAsInt("REWARD_WORKER_BASE", 10),
	}
	c.FollowUp = models.FollowUpConfig{
		Workers:    GetEnvAsInt("FOLLOWUP_WORKERS", 8),
		QueueSize:  GetEnvAsInt("FOLLOWUP_QUEUE_SIZE", 256),
		MaxRetries: GetEnvAsInt("FOLLOWUP_MAX_RETRIES", 3),
	}
}

// GetEnv returns the variable or defaultValue when it is unset or empty
func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// parseEnv applies parse to a set variable. Unset variables and parse failures
// yield defaultValue; failures are logged.
func parseEnv[T any](key string, defaultValue T, parse func(string) (T, error)) T {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	value, err := parse(raw)
	if err != nil {
		log.Printf("Warning: invalid value %q for %s, using default: %v", raw, key, defaultValue)
		return defaultValue
	}
	return value
}

func GetEnvAsInt(key string, defaultValue int) int {
	return parseEnv(key, defaultValue, strconv.Atoi)
}

func GetEnvAsInt64(key string, defaultValue int64) int64 {
	return parseEnv(key, defaultValue, func(s string) (int64, error) {
		return strconv.ParseInt(s, 10, 64)
	})
}

func GetEnvAsBool(key string, defaultValue bool) bool {
	return parseEnv(key, defaultValue, strconv.ParseBool)
}

func GetEnvAsFloat(key string, defaultValue float64) float64 {
	return parseEnv(key, defaultValue, func(s string) (float64, error) {
		return strconv.ParseFloat(s, 64)
	})
}

// GetEnvAsDuration accepts Go duration strings ("90s") or plain seconds ("90")
func GetEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	return parseEnv(key, defaultValue, func(s string) (time.Duration, error) {
		if d, err := time.ParseDuration(s); err == nil {
			return d, nil
		}
		seconds, err := strconv.Atoi(s)
		return time.Duration(seconds) * time.Second, err
	})
}
