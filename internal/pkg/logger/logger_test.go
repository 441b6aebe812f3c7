package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	testCases := []struct {
		in       string
		expected zapcore.Level
	}{
		{"", zapcore.InfoLevel},
		{"debug", zapcore.DebugLevel},
		{"WARN", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
	}

	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			lvl, err := parseLevel(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, lvl)
		})
	}

	t.Run("unknown level", func(t *testing.T) {
		_, err := parseLevel("loud")
		require.Error(t, err)
	})
}

func TestNew(t *testing.T) {
	log, sync, err := New("debug")
	require.NoError(t, err)
	require.NotNil(t, log)
	require.NotNil(t, sync)

	log.Debug("logger ready", "component", "test")
}
