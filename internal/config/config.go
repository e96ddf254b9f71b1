package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds application level configuration. Precedence, lowest to
// highest: defaults, YAML config file, environment, flags.
type Config struct {
	RunAddress         string
	DatabaseURI        string
	JWTSecret          string
	MailServiceAddress string
	MailSender         string
	NotifyPollInterval time.Duration
	NotifyBatchSize    int
	WorkerPoolSize     int
	ShutdownTimeout    time.Duration
	DeliveryFee        float64
	FreeDeliveryOver   float64
}

const (
	defaultRunAddress         = ":8080"
	defaultJWTSecret          = "change-me-in-production"
	defaultMailSender         = "bestellung@speeti.de"
	defaultNotifyPollInterval = 5 * time.Second
	defaultNotifyBatchSize    = 16
	defaultWorkerPoolSize     = 2
	defaultShutdownTimeout    = 10 * time.Second
	defaultDeliveryFee        = 2.90
	defaultFreeDeliveryOver   = 39.0
)

// Load parses configuration from an optional .env file, a YAML config file,
// environment variables and flags.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

// fileConfig mirrors the YAML config file. Durations are strings so the file
// can use "5s" style values.
type fileConfig struct {
	RunAddress         string   `yaml:"run_address"`
	DatabaseURI        string   `yaml:"database_uri"`
	JWTSecret          string   `yaml:"jwt_secret"`
	MailServiceAddress string   `yaml:"mail_service_address"`
	MailSender         string   `yaml:"mail_sender"`
	NotifyPollInterval string   `yaml:"notify_poll_interval"`
	NotifyBatchSize    int      `yaml:"notify_batch_size"`
	WorkerPoolSize     int      `yaml:"worker_pool_size"`
	ShutdownTimeout    string   `yaml:"shutdown_timeout"`
	DeliveryFee        *float64 `yaml:"delivery_fee"`
	FreeDeliveryOver   *float64 `yaml:"free_delivery_over"`
}

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:         defaultRunAddress,
		JWTSecret:          defaultJWTSecret,
		MailSender:         defaultMailSender,
		NotifyPollInterval: defaultNotifyPollInterval,
		NotifyBatchSize:    defaultNotifyBatchSize,
		WorkerPoolSize:     defaultWorkerPoolSize,
		ShutdownTimeout:    defaultShutdownTimeout,
		DeliveryFee:        defaultDeliveryFee,
		FreeDeliveryOver:   defaultFreeDeliveryOver,
	}

	if path, ok := lookup("CONFIG_FILE"); ok && path != "" {
		if err := applyFile(cfg, path); err != nil {
			return nil, err
		}
	}

	cfg.RunAddress = getString(lookup, "RUN_ADDRESS", cfg.RunAddress)
	cfg.DatabaseURI = getString(lookup, "DATABASE_URI", cfg.DatabaseURI)
	cfg.JWTSecret = getString(lookup, "JWT_SECRET", cfg.JWTSecret)
	cfg.MailServiceAddress = getString(lookup, "MAIL_SERVICE_ADDRESS", cfg.MailServiceAddress)
	cfg.MailSender = getString(lookup, "MAIL_SENDER", cfg.MailSender)
	cfg.NotifyPollInterval = getDuration(lookup, "NOTIFY_POLL_INTERVAL", cfg.NotifyPollInterval)
	cfg.NotifyBatchSize = getInt(lookup, "NOTIFY_BATCH_SIZE", cfg.NotifyBatchSize)
	cfg.WorkerPoolSize = getInt(lookup, "WORKER_POOL_SIZE", cfg.WorkerPoolSize)
	cfg.ShutdownTimeout = getDuration(lookup, "SHUTDOWN_TIMEOUT", cfg.ShutdownTimeout)
	cfg.DeliveryFee = getFloat(lookup, "DELIVERY_FEE", cfg.DeliveryFee)
	cfg.FreeDeliveryOver = getFloat(lookup, "FREE_DELIVERY_OVER", cfg.FreeDeliveryOver)

	fs := flag.NewFlagSet("speeti", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		pollIntervalStr    = cfg.NotifyPollInterval.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.MailServiceAddress, "m", cfg.MailServiceAddress, "Transactional mail provider base URL")
	fs.StringVar(&cfg.MailSender, "mail-sender", cfg.MailSender, "Sender address for status mails")
	fs.StringVar(&cfg.JWTSecret, "jwt-secret", cfg.JWTSecret, "Secret for signing session tokens")
	fs.IntVar(&cfg.WorkerPoolSize, "worker-pool", cfg.WorkerPoolSize, "Number of concurrent notification workers")
	fs.StringVar(&pollIntervalStr, "notify-interval", pollIntervalStr, "Interval between notification polls")
	fs.IntVar(&cfg.NotifyBatchSize, "notify-batch", cfg.NotifyBatchSize, "Maximum orders per notification batch")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fs.Float64Var(&cfg.DeliveryFee, "delivery-fee", cfg.DeliveryFee, "Delivery fee applied at checkout")
	fs.Float64Var(&cfg.FreeDeliveryOver, "free-delivery-over", cfg.FreeDeliveryOver, "Order total above which delivery is free")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.NotifyPollInterval, err = time.ParseDuration(pollIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid notify interval: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if secretFile, ok := lookup("JWT_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read jwt secret file: %w", err)
		}
		cfg.JWTSecret = string(content)
	}

	if cfg.WorkerPoolSize <= 0 {
		cfg.WorkerPoolSize = defaultWorkerPoolSize
	}

	if cfg.NotifyBatchSize <= 0 {
		cfg.NotifyBatchSize = defaultNotifyBatchSize
	}

	if cfg.NotifyPollInterval <= 0 {
		cfg.NotifyPollInterval = defaultNotifyPollInterval
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.DeliveryFee < 0 {
		cfg.DeliveryFee = defaultDeliveryFee
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	return cfg, nil
}

func applyFile(cfg *Config, path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var file fileConfig
	if err := yaml.Unmarshal(content, &file); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}

	if file.RunAddress != "" {
		cfg.RunAddress = file.RunAddress
	}
	if file.DatabaseURI != "" {
		cfg.DatabaseURI = file.DatabaseURI
	}
	if file.JWTSecret != "" {
		cfg.JWTSecret = file.JWTSecret
	}
	if file.MailServiceAddress != "" {
		cfg.MailServiceAddress = file.MailServiceAddress
	}
	if file.MailSender != "" {
		cfg.MailSender = file.MailSender
	}
	if file.NotifyPollInterval != "" {
		d, err := time.ParseDuration(file.NotifyPollInterval)
		if err != nil {
			return fmt.Errorf("invalid notify_poll_interval in config file: %w", err)
		}
		cfg.NotifyPollInterval = d
	}
	if file.NotifyBatchSize > 0 {
		cfg.NotifyBatchSize = file.NotifyBatchSize
	}
	if file.WorkerPoolSize > 0 {
		cfg.WorkerPoolSize = file.WorkerPoolSize
	}
	if file.ShutdownTimeout != "" {
		d, err := time.ParseDuration(file.ShutdownTimeout)
		if err != nil {
			return fmt.Errorf("invalid shutdown_timeout in config file: %w", err)
		}
		cfg.ShutdownTimeout = d
	}
	if file.DeliveryFee != nil {
		cfg.DeliveryFee = *file.DeliveryFee
	}
	if file.FreeDeliveryOver != nil {
		cfg.FreeDeliveryOver = *file.FreeDeliveryOver
	}

	return nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getFloat(lookup envLookup, key string, def float64) float64 {
	if v, ok := lookup(key); ok && v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
