package config

import (
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func Test_Config_EnvironmentOverrideWorksCorrect(t *testing.T) {
	viper.Reset()

	t.Setenv("PORT", "9191")
	t.Setenv("MODE", "debug")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("DB_CONNECTION_STRING", "newConnectionString")
	t.Setenv("SWEEP_INTERVAL", "45s")
	t.Setenv("WS_MAX_MESSAGES_PER_SECOND", "3.5")
	t.Setenv("WS_PATH", "/realtime")
	t.Setenv("ALLOWED_ORIGINS", "https://ats.example.com,https://admin.example.com")

	cfg, err := loadConfig("../../configs/config.yaml")
	require.NoError(t, err)

	assert.Equal(t, 9191, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.Mode)
	assert.Equal(t, LevelDebug, cfg.Logger.LogLevel)
	assert.Equal(t, "newConnectionString", cfg.DB.ConnectionString)
	assert.Equal(t, 45*time.Second, cfg.Realtime.SweepInterval)
	assert.Equal(t, float32(3.5), cfg.Realtime.MaxMessagesPerSecond)
	assert.Equal(t, "/realtime", cfg.Realtime.Path)
	assert.Equal(t, []string{"https://ats.example.com", "https://admin.example.com"}, cfg.Server.AllowedOrigins)
}

func Test_Config_WhenRealtimeSectionMissing_ShouldUseDefaults(t *testing.T) {
	viper.Reset()

	file := filepath.Join(t.TempDir(), "config.yaml")
	content := "logger:\n  log_level: INFO\n  output_file: ./logs/test.log\ndb:\n  connection_string: test.db\n"
	require.NoError(t, os.WriteFile(file, []byte(content), 0644))

	cfg, err := loadConfig(file)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "/ws", cfg.Realtime.Path)
	assert.Equal(t, 30*time.Second, cfg.Realtime.SweepInterval)
	assert.Equal(t, 64, cfg.Realtime.SendBuffer)
	assert.Equal(t, 10*time.Minute, cfg.Realtime.ApplicantsCacheTTL)
}

func Test_Config_WhenInvalid_ShouldJoinAllErrors(t *testing.T) {
	cfg := Config{
		Logger:   LoggerConfig{LogLevel: "LOUD"},
		Server:   ServerConfig{Port: 0, Mode: "release"},
		Realtime: RealtimeConfig{Path: "ws", SweepInterval: time.Second, SendBuffer: 1, MaxMessagesPerSecond: 1},
	}

	err := cfg.validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "DBConfig")
	assert.Contains(t, err.Error(), "ServerConfig")
	assert.Contains(t, err.Error(), "LoggerConfig")
	assert.Contains(t, err.Error(), "RealtimeConfig")
}
