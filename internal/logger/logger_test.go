package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/jwebster45206/adventure-engine/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupTo_Production(t *testing.T) {
	defer slog.SetDefault(slog.Default())

	var buf bytes.Buffer
	log := SetupTo(&buf, &config.Config{Environment: "production", LogLevel: slog.LevelInfo})
	WithGameID(log, "g1").Info("Game saved")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "Game saved", entry["msg"])
	assert.Equal(t, "g1", entry["game_id"])
}

func TestSetupTo_Development(t *testing.T) {
	defer slog.SetDefault(slog.Default())

	var buf bytes.Buffer
	log := SetupTo(&buf, &config.Config{Environment: "development", LogLevel: slog.LevelWarn})
	log.Info("hidden")
	WithError(log, errors.New("boom")).Warn("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.True(t, strings.Contains(out, "msg=shown"), out)
	assert.Contains(t, out, "error=boom")
	assert.Same(t, log, slog.Default())
}
