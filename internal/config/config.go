package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

// Storage backends.
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// Config stores service settings.
type Config struct {
	Port      int
	Storage   string
	DB        DB
	Kafka     Kafka
	Notify    Notify
	RateLimit RateLimit
	Dispatch  Dispatch
	Settings  Settings
	Tracking  Tracking
	Log       Log
	Pprof     Pprof
}

// DB stores Postgres connection settings.
type DB struct {
	Host string
	Port string
	User string
	Pass string
	Name string
}

// DSN returns a pgx connection string.
func (d DB) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Pass),
		Host:     d.Host + ":" + d.Port,
		Path:     "/" + d.Name,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

// Kafka stores broker settings. Empty brokers disable Kafka.
type Kafka struct {
	Brokers            []string
	GroupID            string
	OrdersTopic        string
	NotificationsTopic string
}

// Enabled reports whether brokers are configured.
func (k Kafka) Enabled() bool { return len(k.Brokers) > 0 }

// Notify stores notification publisher settings.
type Notify struct {
	Timeout     time.Duration
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// RateLimit stores per-actor request limiting settings.
type RateLimit struct {
	Enabled    bool
	Rate       float64
	Burst      int
	TTL        time.Duration
	MaxBuckets int
}

// Dispatch stores engine and scheduler settings.
type Dispatch struct {
	OperationTimeout time.Duration
	ExpiryInterval   time.Duration
	PayoutInterval   time.Duration
}

// Settings stores platform settings provider options.
type Settings struct {
	CacheTTL  time.Duration
	ZonesFile string
}

// Tracking stores live tracking session options.
type Tracking struct {
	SessionTTL time.Duration
}

// Log stores logger options.
type Log struct {
	Level  string
	Format string
}

// Pprof stores debug server options. Empty Addr disables it.
type Pprof struct {
	Addr string
	User string
	Pass string
}

// Load reads configuration in order: .env (if present) → environment → flags.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: .env not loaded: %v", err)
	}

	cfg := Default()
	if err := fromEnv(cfg); err != nil {
		return nil, err
	}
	if err := fromFlags(cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Port:      DefaultPort(),
		Storage:   StoragePostgres,
		DB:        DefaultDB(),
		Kafka:     DefaultKafka(),
		Notify:    DefaultNotify(),
		RateLimit: DefaultRateLimit(),
		Dispatch:  DefaultDispatch(),
		Settings:  Settings{},
		Tracking:  DefaultTracking(),
		Log:       DefaultLog(),
	}
}

func fromEnv(cfg *Config) error {
	var errs []string
	setInt := func(key string, dst *int) {
		if v := os.Getenv(key); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, fmt.Sprintf("%s: %v", key, err))
				return
			}
			*dst = n
		}
	}
	setStr := func(key string, dst *string) {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			*dst = v
		}
	}
	setDur := func(key string, dst *time.Duration) {
		if v := os.Getenv(key); v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				errs = append(errs, fmt.Sprintf("%s: %v", key, err))
				return
			}
			*dst = d
		}
	}
	setFloat := func(key string, dst *float64) {
		if v := os.Getenv(key); v != "" {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				errs = append(errs, fmt.Sprintf("%s: %v", key, err))
				return
			}
			*dst = f
		}
	}
	setBool := func(key string, dst *bool) {
		if v := os.Getenv(key); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				errs = append(errs, fmt.Sprintf("%s: %v", key, err))
				return
			}
			*dst = b
		}
	}

	setInt("PORT", &cfg.Port)
	setStr("STORAGE", &cfg.Storage)

	setStr("POSTGRES_HOST", &cfg.DB.Host)
	setStr("POSTGRES_PORT", &cfg.DB.Port)
	setStr("POSTGRES_USER", &cfg.DB.User)
	setStr("POSTGRES_PASSWORD", &cfg.DB.Pass)
	setStr("POSTGRES_DB", &cfg.DB.Name)
	if _, err := strconv.Atoi(cfg.DB.Port); err != nil {
		errs = append(errs, fmt.Sprintf("POSTGRES_PORT: %v", err))
	}

	if v := strings.TrimSpace(os.Getenv("KAFKA_BROKERS")); v != "" {
		cfg.Kafka.Brokers = splitList(v)
	}
	setStr("KAFKA_GROUP_ID", &cfg.Kafka.GroupID)
	setStr("KAFKA_ORDERS_TOPIC", &cfg.Kafka.OrdersTopic)
	setStr("KAFKA_NOTIFICATIONS_TOPIC", &cfg.Kafka.NotificationsTopic)

	setDur("NOTIFY_TIMEOUT", &cfg.Notify.Timeout)
	setInt("NOTIFY_MAX_ATTEMPTS", &cfg.Notify.MaxAttempts)
	setDur("NOTIFY_BASE_DELAY", &cfg.Notify.BaseDelay)
	setDur("NOTIFY_MAX_DELAY", &cfg.Notify.MaxDelay)

	setBool("RATE_LIMIT_ENABLED", &cfg.RateLimit.Enabled)
	setFloat("RATE_LIMIT_RATE", &cfg.RateLimit.Rate)
	setInt("RATE_LIMIT_BURST", &cfg.RateLimit.Burst)
	setDur("RATE_LIMIT_TTL", &cfg.RateLimit.TTL)
	setInt("RATE_LIMIT_MAX_BUCKETS", &cfg.RateLimit.MaxBuckets)

	setDur("DISPATCH_OPERATION_TIMEOUT", &cfg.Dispatch.OperationTimeout)
	setDur("DISPATCH_EXPIRY_INTERVAL", &cfg.Dispatch.ExpiryInterval)
	setDur("PAYOUT_PROCESS_INTERVAL", &cfg.Dispatch.PayoutInterval)

	setDur("SETTINGS_CACHE_TTL", &cfg.Settings.CacheTTL)
	setStr("ZONES_FILE", &cfg.Settings.ZonesFile)

	setDur("TRACKING_SESSION_TTL", &cfg.Tracking.SessionTTL)

	setStr("LOG_LEVEL", &cfg.Log.Level)
	setStr("LOG_FORMAT", &cfg.Log.Format)

	setStr("PPROF_ADDR", &cfg.Pprof.Addr)
	setStr("PPROF_USER", &cfg.Pprof.User)
	setStr("PPROF_PASS", &cfg.Pprof.Pass)

	if len(errs) > 0 {
		return fmt.Errorf("invalid environment: %s", strings.Join(errs, "; "))
	}
	return nil
}

func fromFlags(cfg *Config) error {
	fs := pflag.CommandLine
	// go test and other wrappers pass their own flags
	fs.ParseErrorsWhitelist.UnknownFlags = true
	fs.IntVarP(&cfg.Port, "port", "p", cfg.Port, "port to listen on")
	fs.StringVar(&cfg.Storage, "storage", cfg.Storage, "storage backend: postgres or memory")
	fs.StringVar(&cfg.Log.Level, "log-level", cfg.Log.Level, "log level")
	fs.StringVar(&cfg.Settings.ZonesFile, "zones-file", cfg.Settings.ZonesFile, "YAML file with the zone table")

	if err := fs.Parse(os.Args[1:]); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}
	return nil
}

func (c *Config) validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	switch c.Storage {
	case StoragePostgres, StorageMemory:
	default:
		return fmt.Errorf("invalid storage: %q", c.Storage)
	}
	if c.Dispatch.OperationTimeout <= 0 {
		return fmt.Errorf("invalid dispatch operation timeout: %s", c.Dispatch.OperationTimeout)
	}
	if c.Settings.CacheTTL < 0 {
		return fmt.Errorf("invalid settings cache ttl: %s", c.Settings.CacheTTL)
	}
	return nil
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
