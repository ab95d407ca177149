package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	require.Equal(t, zerolog.DebugLevel, ParseLevel("DEBUG"))
	require.Equal(t, zerolog.WarnLevel, ParseLevel("warning"))
	require.Equal(t, zerolog.ErrorLevel, ParseLevel(" error "))
	require.Equal(t, zerolog.InfoLevel, ParseLevel("chatty"))
}

func TestInitJSONComponent(t *testing.T) {
	prev := Logger
	prevLevel := zerolog.GlobalLevel()
	t.Cleanup(func() {
		Logger = prev
		zerolog.SetGlobalLevel(prevLevel)
	})

	var buf bytes.Buffer
	Init(Config{Level: "info", Format: "json", Output: &buf})

	logger := WithAction(Component("actions"), "theme.dark")
	logger.Info().Msg("performed")
	logger.Debug().Msg("hidden")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	require.Equal(t, "actions", entry["component"])
	require.Equal(t, "theme.dark", entry["action_id"])
	require.Equal(t, "performed", entry["message"])
}

func TestFromContext(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).With().Str("k", "v").Logger()

	ctx := WithContext(context.Background(), logger)
	FromContext(ctx).Warn().Msg("x")
	require.Contains(t, buf.String(), `"k":"v"`)

	require.NotPanics(t, func() { _ = FromContext(context.TODO()) })
}
