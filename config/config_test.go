package config

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phillip/hostel-fest-payments/logging"
	"github.com/phillip/hostel-fest-payments/store"
)

func envOf(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := FromEnv(envOf(map[string]string{"JWT_SECRET": "s"}))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, BackendFile, cfg.StoreBackend)
	assert.Equal(t, store.DefaultKey, cfg.StoreKey)
	assert.Equal(t, 3*time.Second, cfg.PaymentDelay)
	assert.Equal(t, 4*time.Second, cfg.ToastTTL)
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost:5173"}, cfg.CORSOrigins)
	assert.False(t, cfg.Cloudinary.Enabled())
	assert.False(t, cfg.Email.Enabled())
}

func TestFromEnv_Overrides(t *testing.T) {
	cfg, err := FromEnv(envOf(map[string]string{
		"JWT_SECRET":    "s",
		"STORE_BACKEND": "Postgres",
		"POSTGRES_DSN":  "postgres://localhost/fest",
		"PAYMENT_DELAY": "250ms",
		"CORS_ORIGINS":  " https://fest.example , ",
	}))
	require.NoError(t, err)
	assert.Equal(t, BackendPostgres, cfg.StoreBackend)
	assert.Equal(t, 250*time.Millisecond, cfg.PaymentDelay)
	assert.Equal(t, []string{"https://fest.example"}, cfg.CORSOrigins)
}

func TestFromEnv_Invalid(t *testing.T) {
	tests := map[string]map[string]string{
		"missing secret":    {},
		"unknown backend":   {"JWT_SECRET": "s", "STORE_BACKEND": "redis"},
		"mongo without uri": {"JWT_SECRET": "s", "STORE_BACKEND": "mongo"},
		"pg without dsn":    {"JWT_SECRET": "s", "STORE_BACKEND": "postgres"},
		"bad delay":         {"JWT_SECRET": "s", "PAYMENT_DELAY": "soon"},
		"negative ttl":      {"JWT_SECRET": "s", "TOAST_TTL": "-1s"},
	}
	for name, env := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := FromEnv(envOf(env))
			assert.Error(t, err)
		})
	}
}

func TestOpenPersister_FileAndMemory(t *testing.T) {
	ctx := context.Background()
	log := logging.Discard()

	p, closeFn, err := OpenPersister(ctx, &Config{StoreBackend: BackendFile, DataDir: t.TempDir()}, log)
	require.NoError(t, err)
	defer closeFn()
	assert.IsType(t, &store.FilePersister{}, p)

	p, closeFn, err = OpenPersister(ctx, &Config{StoreBackend: BackendMemory}, log)
	require.NoError(t, err)
	defer closeFn()
	assert.IsType(t, &store.MemoryPersister{}, p)
}
