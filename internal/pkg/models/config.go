package models

import "time"

// Config represents application configuration
type Config struct {
	App      AppConfig
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	NATS     NATSConfig
	JWT      JWTConfig
	NewRelic NewRelicConfig
	Logger   LoggerConfig
	Dispatch DispatchConfig
	Cache    CacheConfig
	Rewards  RewardsConfig
	FollowUp FollowUpConfig
	Store    StoreConfig
	Channel  ChannelConfig
}

// AppConfig contains application-specific configuration
type AppConfig struct {
	Name        string
	Environment string
	Debug       bool
	Version     string
}

// ServerConfig contains HTTP server configuration. Timeouts are in seconds.
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     int
	WriteTimeout    int
	ShutdownTimeout int
	RateLimit       int // booking writes per caller per RateLimitPeriod; 0 disables
	RateLimitPeriod time.Duration
}

// DatabaseConfig contains database connection configuration
type DatabaseConfig struct {
	Driver    string
	Host      string
	Port      int
	Username  string
	Password  string
	Database  string
	SSLMode   string
	MaxConns  int
	IdleConns int
}

// RedisConfig contains Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	PoolSize int
}

// NATSConfig contains NATS connection configuration
type NATSConfig struct {
	URL string
}

// JWTConfig contains JWT authentication configuration
type JWTConfig struct {
	Secret     string
	Expiration int // in minutes
	Issuer     string
}

// NewRelicConfig contains New Relic APM configuration
type NewRelicConfig struct {
	LicenseKey   string
	AppName      string
	Enabled      bool
	LogsEnabled  bool
	LogsEndpoint string
	LogsAPIKey   string
	ForwardLogs  bool
}

// LoggerConfig contains log output configuration
type LoggerConfig struct {
	Level      string
	FilePath   string
	MaxSize    int64
	MaxAge     int
	MaxBackups int
	Compress   bool
	Type       string
}

// DispatchConfig tunes the dispatch planner
type DispatchConfig struct {
	TopN           int // workers notified individually for instant bookings
	CandidateLimit int // 0 means unlimited
	SynonymsFile   string
	Synonyms       string // inline "canonical=v1|v2;..."
}

// CacheConfig selects and tunes the worker bookings cache
type CacheConfig struct {
	Driver     string // memory, redis or none
	TTL        time.Duration
	MaxEntries int
	Broadcast  bool // publish invalidations over NATS
}

// RewardsConfig holds reward point rates
type RewardsConfig struct {
	PointsPerUnit int     // points credited per currency unit block
	CurrencyUnit  float64 // size of one block
	WorkerBase    int     // flat points credited to the worker per settlement
}

// FollowUpConfig tunes the best-effort follow-up queue
type FollowUpConfig struct {
	Workers    int
	QueueSize  int
	MaxRetries int
}

// StoreConfig selects the authoritative store
type StoreConfig struct {
	Driver string // postgres or memory
}

// ChannelConfig selects the real-time transport
type ChannelConfig struct {
	Transport string // nats or local
}
