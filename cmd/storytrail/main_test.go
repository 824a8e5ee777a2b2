package main

import (
	"flag"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func contextWithLogLevel(t *testing.T, level string) *cli.Context {
	t.Helper()

	set := flag.NewFlagSet("test", flag.ContinueOnError)
	set.String("log-level", "", "")
	require.NoError(t, set.Set("log-level", level))
	return cli.NewContext(&cli.App{}, set, nil)
}

func TestSetupLogger_ValidLevels(t *testing.T) {
	original := slog.Default()
	defer slog.SetDefault(original)

	tests := []struct {
		level string
		want  slog.Level
	}{
		{level: "debug", want: slog.LevelDebug},
		{level: "info", want: slog.LevelInfo},
		{level: "WARN", want: slog.LevelWarn},
		{level: "Error", want: slog.LevelError},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			err := setupLogger(contextWithLogLevel(t, tt.level))
			require.NoError(t, err)
			assert.True(t, slog.Default().Enabled(nil, tt.want))
			if tt.want > slog.LevelDebug {
				assert.False(t, slog.Default().Enabled(nil, tt.want-4))
			}
		})
	}
}

func TestSetupLogger_InvalidLevel(t *testing.T) {
	err := setupLogger(contextWithLogLevel(t, "verbose"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}
