package app

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"casevault/internal/config"
	"casevault/internal/service"
)

func testConfig(backend string) *config.AppConfig {
	return &config.AppConfig{
		Timezone: "UTC",
		Store:    config.StoreConfig{Backend: backend, Key: "cases"},
	}
}

func TestNew_Memory(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer

	a, err := New(ctx, testConfig(config.BackendMemory), zerolog.New(&buf), prometheus.NewRegistry())
	require.NoError(t, err)
	defer a.Close()

	assert.Contains(t, buf.String(), `"event":"store_opened"`)
	assert.Contains(t, buf.String(), `"backend":"memory"`)

	c, err := a.Service.CreateCase(ctx, service.CaseInput{Name: "Smith v. Jones"})
	require.NoError(t, err)

	cases, err := a.Service.ListCases(ctx)
	require.NoError(t, err)
	require.Len(t, cases, 1)
	assert.Equal(t, c.ID, cases[0].ID)
	assert.NoError(t, a.Store.Ping(ctx))
}

func TestNew_SQLitePersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(config.BackendSQLite)
	cfg.SQLite.Path = filepath.Join(t.TempDir(), "vault.db")

	a, err := New(ctx, cfg, zerolog.Nop(), nil)
	require.NoError(t, err)
	created, err := a.Service.CreateCase(ctx, service.CaseInput{Name: "Persisted"})
	require.NoError(t, err)
	require.NoError(t, a.Close())

	b, err := New(ctx, cfg, zerolog.Nop(), nil)
	require.NoError(t, err)
	defer b.Close()

	got, err := b.Service.GetCase(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Persisted", got.Name)
	assert.True(t, created.CreatedDate.Equal(got.CreatedDate))
}

func TestOpenStore_Errors(t *testing.T) {
	ctx := context.Background()

	_, _, err := OpenStore(ctx, testConfig("floppy"), zerolog.Nop(), nil)
	assert.EqualError(t, err, `unknown store backend "floppy"`)

	_, _, err = OpenStore(ctx, testConfig(config.BackendMinIO), zerolog.Nop(), nil)
	assert.ErrorContains(t, err, "init minio")

	cfg := testConfig(config.BackendRedis)
	_, _, err = OpenStore(ctx, cfg, zerolog.Nop(), nil)
	assert.ErrorContains(t, err, "redis address is required")

	_, _, err = OpenStore(ctx, testConfig(config.BackendPostgres), zerolog.Nop(), nil)
	assert.ErrorContains(t, err, "connect postgres")
}

func TestClose_NoStore(t *testing.T) {
	assert.NoError(t, (&App{}).Close())
}
