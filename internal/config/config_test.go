package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func lookupFrom(env map[string]string) envLookup {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func baseEnv() map[string]string {
	return map[string]string{
		"DATABASE_URI": "postgres://localhost/storefront",
		"AMQP_URL":     "amqp://localhost",
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := load(nil, lookupFrom(baseEnv()))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.RunAddress != ":8080" {
		t.Errorf("unexpected run address %q", cfg.RunAddress)
	}
	if cfg.StripeBaseURL != "https://api.stripe.com" {
		t.Errorf("unexpected stripe base url %q", cfg.StripeBaseURL)
	}
	if cfg.PayPalBaseURL != "https://api-m.sandbox.paypal.com" {
		t.Errorf("unexpected paypal base url %q", cfg.PayPalBaseURL)
	}
	if cfg.DefaultLocale != "es" {
		t.Errorf("unexpected default locale %q", cfg.DefaultLocale)
	}
	if cfg.EmailQueue != "storefront.emails" {
		t.Errorf("unexpected queue %q", cfg.EmailQueue)
	}
	if cfg.SyncPollInterval != 30*time.Second {
		t.Errorf("unexpected poll interval %v", cfg.SyncPollInterval)
	}
	if cfg.SyncBatchSize != 32 || cfg.WorkerPoolSize != 4 {
		t.Errorf("unexpected batch/pool %d/%d", cfg.SyncBatchSize, cfg.WorkerPoolSize)
	}
	if cfg.FollowUpDelay != 72*time.Hour {
		t.Errorf("unexpected follow-up delay %v", cfg.FollowUpDelay)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	env := baseEnv()
	env["RUN_ADDRESS"] = ":9090"
	env["DEFAULT_LOCALE"] = "fr"
	env["SYNC_POLL_INTERVAL"] = "5s"
	env["WORKER_POOL_SIZE"] = "8"
	env["SYNC_TOKEN"] = "env-token"

	cfg, err := load(nil, lookupFrom(env))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.RunAddress != ":9090" || cfg.DefaultLocale != "fr" {
		t.Fatalf("env overrides not applied: %+v", cfg)
	}
	if cfg.SyncPollInterval != 5*time.Second || cfg.WorkerPoolSize != 8 {
		t.Fatalf("env overrides not applied: %+v", cfg)
	}
	if cfg.SyncToken != "env-token" {
		t.Fatalf("sync token not applied: %q", cfg.SyncToken)
	}
}

func TestLoadFlagsOverrideEnv(t *testing.T) {
	env := baseEnv()
	env["RUN_ADDRESS"] = ":9090"

	args := []string{
		"-a", ":7070",
		"-default-locale", "it",
		"-poll-interval", "1m",
		"-worker-pool", "2",
		"-follow-up-delay", "48h",
	}
	cfg, err := load(args, lookupFrom(env))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.RunAddress != ":7070" {
		t.Fatalf("flag must win over env, got %q", cfg.RunAddress)
	}
	if cfg.DefaultLocale != "it" || cfg.SyncPollInterval != time.Minute {
		t.Fatalf("flags not applied: %+v", cfg)
	}
	if cfg.WorkerPoolSize != 2 || cfg.FollowUpDelay != 48*time.Hour {
		t.Fatalf("flags not applied: %+v", cfg)
	}
}

func TestLoadSyncTokenFile(t *testing.T) {
	tokenFile := filepath.Join(t.TempDir(), "token")
	if err := os.WriteFile(tokenFile, []byte("file-token"), 0o600); err != nil {
		t.Fatalf("write token file: %v", err)
	}

	env := baseEnv()
	env["SYNC_TOKEN"] = "env-token"
	env["SYNC_TOKEN_FILE"] = tokenFile

	cfg, err := load(nil, lookupFrom(env))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.SyncToken != "file-token" {
		t.Fatalf("token file must win, got %q", cfg.SyncToken)
	}
}

func TestLoadSyncTokenFileMissing(t *testing.T) {
	env := baseEnv()
	env["SYNC_TOKEN_FILE"] = filepath.Join(t.TempDir(), "absent")

	if _, err := load(nil, lookupFrom(env)); err == nil {
		t.Fatal("expected error for missing token file")
	}
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		args []string
	}{
		{name: "missing database uri", env: map[string]string{"AMQP_URL": "amqp://localhost"}},
		{name: "missing amqp url", env: map[string]string{"DATABASE_URI": "postgres://localhost/db"}},
		{name: "bad poll interval flag", env: baseEnv(), args: []string{"-poll-interval", "soon"}},
		{name: "bad shutdown timeout flag", env: baseEnv(), args: []string{"-shutdown-timeout", "later"}},
		{name: "unknown flag", env: baseEnv(), args: []string{"-nope"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := load(tt.args, lookupFrom(tt.env)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestLoadNonPositiveFallBackToDefaults(t *testing.T) {
	env := baseEnv()
	env["WORKER_POOL_SIZE"] = "-1"
	env["SYNC_BATCH_SIZE"] = "0"

	cfg, err := load([]string{"-poll-interval", "-5s"}, lookupFrom(env))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.WorkerPoolSize != 4 || cfg.SyncBatchSize != 32 || cfg.SyncPollInterval != 30*time.Second {
		t.Fatalf("defaults not restored: %+v", cfg)
	}
}
