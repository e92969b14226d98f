package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress  string
	DatabaseURI string

	StripeSecretKey  string
	StripeBaseURL    string
	StripeSuccessURL string
	StripeCancelURL  string

	PayPalBaseURL      string
	PayPalClientID     string
	PayPalClientSecret string

	SheetsBaseURL       string
	SheetsAPIToken      string
	SheetsSpreadsheetID string

	BrevoBaseURL string
	BrevoAPIKey  string

	AMQPURL    string
	EmailQueue string

	SyncToken string

	MessagesDir   string
	DefaultLocale string

	SyncPollInterval time.Duration
	SyncBatchSize    int
	WorkerPoolSize   int
	ShutdownTimeout  time.Duration
	FollowUpDelay    time.Duration
}

const (
	defaultRunAddress       = ":8080"
	defaultStripeBaseURL    = "https://api.stripe.com"
	defaultStripeSuccessURL = "http://localhost:8080/es/checkout/success"
	defaultStripeCancelURL  = "http://localhost:8080/es/checkout/cancel"
	defaultPayPalBaseURL    = "https://api-m.sandbox.paypal.com"
	defaultSheetsBaseURL    = "https://sheets.googleapis.com"
	defaultBrevoBaseURL     = "https://api.brevo.com"
	defaultEmailQueue       = "storefront.emails"
	defaultMessagesDir      = "messages"
	defaultDefaultLocale    = "es"
	defaultSyncPollInterval = 30 * time.Second
	defaultSyncBatchSize    = 32
	defaultWorkerPoolSize   = 4
	defaultShutdownTimeout  = 10 * time.Second
	defaultFollowUpDelay    = 72 * time.Hour
)

// Load parses configuration from flags and environment variables.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:          getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:         getString(lookup, "DATABASE_URI", ""),
		StripeSecretKey:     getString(lookup, "STRIPE_SECRET_KEY", ""),
		StripeBaseURL:       getString(lookup, "STRIPE_BASE_URL", defaultStripeBaseURL),
		StripeSuccessURL:    getString(lookup, "STRIPE_SUCCESS_URL", defaultStripeSuccessURL),
		StripeCancelURL:     getString(lookup, "STRIPE_CANCEL_URL", defaultStripeCancelURL),
		PayPalBaseURL:       getString(lookup, "PAYPAL_BASE_URL", defaultPayPalBaseURL),
		PayPalClientID:      getString(lookup, "PAYPAL_CLIENT_ID", ""),
		PayPalClientSecret:  getString(lookup, "PAYPAL_CLIENT_SECRET", ""),
		SheetsBaseURL:       getString(lookup, "SHEETS_BASE_URL", defaultSheetsBaseURL),
		SheetsAPIToken:      getString(lookup, "SHEETS_API_TOKEN", ""),
		SheetsSpreadsheetID: getString(lookup, "SHEETS_SPREADSHEET_ID", ""),
		BrevoBaseURL:        getString(lookup, "BREVO_BASE_URL", defaultBrevoBaseURL),
		BrevoAPIKey:         getString(lookup, "BREVO_API_KEY", ""),
		AMQPURL:             getString(lookup, "AMQP_URL", ""),
		EmailQueue:          getString(lookup, "EMAIL_QUEUE", defaultEmailQueue),
		SyncToken:           getString(lookup, "SYNC_TOKEN", ""),
		MessagesDir:         getString(lookup, "MESSAGES_DIR", defaultMessagesDir),
		DefaultLocale:       getString(lookup, "DEFAULT_LOCALE", defaultDefaultLocale),
		SyncPollInterval:    getDuration(lookup, "SYNC_POLL_INTERVAL", defaultSyncPollInterval),
		SyncBatchSize:       getInt(lookup, "SYNC_BATCH_SIZE", defaultSyncBatchSize),
		WorkerPoolSize:      getInt(lookup, "WORKER_POOL_SIZE", defaultWorkerPoolSize),
		ShutdownTimeout:     getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		FollowUpDelay:       getDuration(lookup, "FOLLOW_UP_DELAY", defaultFollowUpDelay),
	}

	fs := flag.NewFlagSet("storefront", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		pollIntervalStr    = cfg.SyncPollInterval.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
		followUpDelayStr   = cfg.FollowUpDelay.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.AMQPURL, "q", cfg.AMQPURL, "AMQP broker URL for the email queue")
	fs.StringVar(&cfg.MessagesDir, "messages-dir", cfg.MessagesDir, "Directory with locale message bundles")
	fs.StringVar(&cfg.DefaultLocale, "default-locale", cfg.DefaultLocale, "Default storefront locale")
	fs.StringVar(&cfg.SyncToken, "sync-token", cfg.SyncToken, "Bearer token protecting sync endpoints")
	fs.IntVar(&cfg.WorkerPoolSize, "worker-pool", cfg.WorkerPoolSize, "Number of concurrent sync workers")
	fs.StringVar(&pollIntervalStr, "poll-interval", pollIntervalStr, "Interval between sync polls")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fs.StringVar(&followUpDelayStr, "follow-up-delay", followUpDelayStr, "Delay before the follow-up email is due")
	fs.IntVar(&cfg.SyncBatchSize, "sync-batch", cfg.SyncBatchSize, "Maximum orders per sync batch")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.SyncPollInterval, err = time.ParseDuration(pollIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid poll interval: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if cfg.FollowUpDelay, err = time.ParseDuration(followUpDelayStr); err != nil {
		return nil, fmt.Errorf("invalid follow-up delay: %w", err)
	}

	if tokenFile, ok := lookup("SYNC_TOKEN_FILE"); ok && tokenFile != "" {
		content, err := os.ReadFile(tokenFile)
		if err != nil {
			return nil, fmt.Errorf("read sync token file: %w", err)
		}
		cfg.SyncToken = string(content)
	}

	if cfg.WorkerPoolSize <= 0 {
		cfg.WorkerPoolSize = defaultWorkerPoolSize
	}

	if cfg.SyncBatchSize <= 0 {
		cfg.SyncBatchSize = defaultSyncBatchSize
	}

	if cfg.SyncPollInterval <= 0 {
		cfg.SyncPollInterval = defaultSyncPollInterval
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.FollowUpDelay <= 0 {
		cfg.FollowUpDelay = defaultFollowUpDelay
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	if cfg.AMQPURL == "" {
		return nil, fmt.Errorf("AMQP URL must be provided")
	}

	return cfg, nil
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

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
