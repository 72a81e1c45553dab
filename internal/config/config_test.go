package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	t.Setenv("DB_HOST", "test-host")
	t.Setenv("DB_MAX_OPEN_CONNS", "20")
	t.Setenv("MINIO_USE_SSL", "true")
	t.Setenv("STORE_BACKEND", "Redis")
	t.Setenv("REDIS_DB", "3")

	cfg := Load()

	assert.Equal(t, "test-host", cfg.Database.Host)
	assert.Equal(t, 20, cfg.Database.MaxOpenConns)
	assert.True(t, cfg.MinIO.UseSSL)
	assert.Equal(t, BackendRedis, cfg.Store.Backend)
	assert.Equal(t, 3, cfg.Redis.DB)
}

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"STORE_BACKEND", "STORE_KEY", "SQLITE_PATH", "APP_TIMEZONE"} {
		t.Setenv(k, "")
	}

	cfg := Load()

	assert.Equal(t, BackendSQLite, cfg.Store.Backend)
	assert.Equal(t, "cases", cfg.Store.Key)
	assert.Equal(t, "data/casevault.db", cfg.SQLite.Path)
	assert.Equal(t, "Local", cfg.Timezone)
}

func TestAppConfig_Location(t *testing.T) {
	assert.Equal(t, time.Local, (&AppConfig{Timezone: "Local"}).Location())
	assert.Equal(t, time.Local, (&AppConfig{}).Location())
	assert.Equal(t, time.Local, (&AppConfig{Timezone: "Not/AZone"}).Location())
	assert.Equal(t, "UTC", (&AppConfig{Timezone: "UTC"}).Location().String())
}

func TestGetEnv(t *testing.T) {
	key := "TEST_ENV_VAR"
	os.Setenv(key, "value")
	defer os.Unsetenv(key)

	assert.Equal(t, "value", getEnv(key, "default"))
	assert.Equal(t, "default", getEnv("NON_EXISTENT", "default"))
}

func TestGetEnvBool(t *testing.T) {
	key := "TEST_BOOL_VAR"

	os.Setenv(key, "true")
	assert.True(t, getEnvBool(key, false))

	os.Setenv(key, "false")
	assert.False(t, getEnvBool(key, true))

	os.Setenv(key, "invalid")
	assert.True(t, getEnvBool(key, true))

	os.Unsetenv(key)
	assert.True(t, getEnvBool(key, true))
}

func TestGetEnvInt(t *testing.T) {
	key := "TEST_INT_VAR"

	os.Setenv(key, "123")
	assert.Equal(t, 123, getEnvInt(key, 0))

	os.Setenv(key, "invalid")
	assert.Equal(t, 10, getEnvInt(key, 10))

	os.Unsetenv(key)
	assert.Equal(t, 10, getEnvInt(key, 10))
}
