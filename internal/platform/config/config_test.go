package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_MemoryDefaults(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "memory")
	t.Setenv("IS_PRODUCTION", "false")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", " http://a.test , ,http://b.test")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, StorageMemory, cfg.StorageBackend)
	assert.Equal(t, LockLocal, cfg.LockBackend)
	assert.NotEmpty(t, cfg.JWTSecret)
	assert.Equal(t, int32(10), cfg.DBMaxConns)
	assert.Equal(t, 5*time.Second, cfg.DBConnectTimeout)
	assert.Equal(t, 10*time.Second, cfg.BranchLockTTL)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSAllowedOrigins)
}

func TestLoadConfig_InvalidDurationFallsBack(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "memory")
	t.Setenv("BRANCH_LOCK_TTL", "soon")
	t.Setenv("DB_CONNECT_TIMEOUT", "2s")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 10*time.Second, cfg.BranchLockTTL)
	assert.Equal(t, 2*time.Second, cfg.DBConnectTimeout)
}

func TestLoadConfig_Rejects(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"postgres without url", map[string]string{"STORAGE_BACKEND": "postgres", "DATABASE_URL": ""}},
		{"unknown storage", map[string]string{"STORAGE_BACKEND": "sqlite"}},
		{"redis lock without address", map[string]string{"STORAGE_BACKEND": "memory", "LOCK_BACKEND": "redis", "REDIS_ADDRESS": ""}},
		{"unknown lock", map[string]string{"STORAGE_BACKEND": "memory", "LOCK_BACKEND": "etcd"}},
		{"production without secret", map[string]string{"STORAGE_BACKEND": "memory", "IS_PRODUCTION": "true", "JWT_SECRET": ""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := LoadConfig()
			assert.Error(t, err)
		})
	}
}
