package loki

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

type MockLogger struct{}

func (m *MockLogger) Error(msg string, args ...any) {
}

func Test_ConfigValidation(t *testing.T) {
	cfg := Config{}
	_, err := New(context.Background(), cfg, &MockLogger{})
	assert.Error(t, err)

	cfg.Url = "http://localhost:3100/loki/api/v1/push"
	pusher, err := New(context.Background(), cfg, &MockLogger{})
	require.NoError(t, err)
	defer pusher.Stop()

	assert.Equal(t, cfg.Url, pusher.config.Url)
	assert.Equal(t, 1000, pusher.config.BatchMaxSize)
	assert.Equal(t, 5*time.Second, pusher.config.BatchMaxWait)
	assert.Equal(t, 4096, pusher.config.BufferSize)
	assert.Equal(t, map[string]string{}, pusher.config.Labels)
}

func Test_Pusher_Stop_ShouldFlushQueuedEntries(t *testing.T) {

	var mu sync.Mutex
	var received pushRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gz, err := gzip.NewReader(r.Body)
		if assert.NoError(t, err) {
			mu.Lock()
			assert.NoError(t, json.NewDecoder(gz).Decode(&received))
			mu.Unlock()
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	pusher, err := New(context.Background(), Config{
		Url:          server.URL,
		BatchMaxWait: time.Hour,
		Labels:       map[string]string{"app": "ats"},
	}, &MockLogger{})
	require.NoError(t, err)

	assert.NoError(t, pusher.Push(LogEntry{Level: "info", Message: "first"}))
	assert.NoError(t, pusher.Push(LogEntry{Level: "error", Message: "second", ErrorType: "ws"}))
	pusher.Stop()

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, received.Streams, 1)
	assert.Equal(t, "ats", received.Streams[0].Stream["app"])
	assert.Len(t, received.Streams[0].Values, 2)

	assert.ErrorIs(t, pusher.Push(LogEntry{Message: "late"}), ErrStopped)
}
