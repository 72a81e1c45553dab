package otel

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"casevault/internal/logging"
)

func lastLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[len(lines)-1]), &entry))
	return entry
}

func TestInit_Disabled(t *testing.T) {
	t.Setenv("OTEL_SDK_DISABLED", "true")
	var buf bytes.Buffer

	shutdown, err := Init(context.Background(), logging.New(&buf, "info", time.UTC))
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))

	entry := lastLine(t, &buf)
	assert.Equal(t, "tracing_configured", entry["event"])
	assert.Equal(t, false, entry["tracing_enabled"])
	assert.Equal(t, "tracing", entry["component"])
}

func TestInit_UnsupportedProtocolDegrades(t *testing.T) {
	t.Setenv("OTEL_SDK_DISABLED", "false")
	t.Setenv("OTEL_EXPORTER_OTLP_PROTOCOL", "carrier-pigeon")
	var buf bytes.Buffer

	shutdown, err := Init(context.Background(), logging.New(&buf, "info", time.UTC))
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))

	entry := lastLine(t, &buf)
	assert.Equal(t, "tracing_init_failed", entry["event"])
	assert.Contains(t, entry["error"], "carrier-pigeon")
}

func TestGetSampler(t *testing.T) {
	tests := []struct {
		name, arg  string
		wantPrefix string
	}{
		{"always_on", "", "AlwaysOnSampler"},
		{"always_off", "", "AlwaysOffSampler"},
		{"traceidratio", "0.25", "TraceIDRatioBased{0.25}"},
		{"traceidratio", "abc", "AlwaysOnSampler"},
		{"parentbased_always_off", "", "ParentBased{root:AlwaysOffSampler"},
		{"parentbased_traceidratio", "0.5", "ParentBased{root:TraceIDRatioBased{0.5}"},
		{"unknown", "", "ParentBased{root:AlwaysOnSampler"},
	}
	for _, tt := range tests {
		t.Run(tt.name+"/"+tt.arg, func(t *testing.T) {
			got := getSampler(tt.name, tt.arg).Description()
			assert.True(t, strings.HasPrefix(got, tt.wantPrefix), got)
		})
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("CASEVAULT_TEST_KEY", "")
	assert.Equal(t, "fallback", getEnv("CASEVAULT_TEST_KEY", "fallback"))
	t.Setenv("CASEVAULT_TEST_KEY", "set")
	assert.Equal(t, "set", getEnv("CASEVAULT_TEST_KEY", "fallback"))
}
