package httpx

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"items-crud/backend/internal/obs"
)

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := obs.Logger
	obs.Logger = slog.New(slog.NewJSONHandler(&buf, nil))
	t.Cleanup(func() { obs.Logger = prev })
	return &buf
}

func TestLoggingEmptyBodyBytes(t *testing.T) {
	s, _ := setupServer(t)
	buf := captureLogs(t)

	rr := do(s, http.MethodOptions, "/api/items", "")
	require.Equal(t, http.StatusNoContent, rr.Code)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "http_request", entry["msg"])
	assert.Equal(t, float64(http.StatusNoContent), entry["status"])
	assert.Equal(t, float64(0), entry["bytes"])
}

func TestLoggingBodyBytes(t *testing.T) {
	s, _ := setupServer(t)
	buf := captureLogs(t)

	rr := do(s, http.MethodGet, "/api/items", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, float64(rr.Body.Len()), entry["bytes"])
}
