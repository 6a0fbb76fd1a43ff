package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerAcceptsEachFormat(t *testing.T) {
	for _, format := range []string{"json", "text", "tint"} {
		t.Run(format, func(t *testing.T) {
			l, err := NewLogger("INFO", format)
			require.NoError(t, err)
			assert.NotNil(t, l)
		})
	}
}

func TestNewLoggerRejectsUnknownFormat(t *testing.T) {
	_, err := NewLogger("INFO", "xml")
	require.Error(t, err)
	require.ErrorIs(t, err, ErrLoggerInvalidLogFormat)
}

func TestNewLoggerRejectsUnknownLevel(t *testing.T) {
	_, err := NewLogger("VERBOSE", "json")
	require.Error(t, err)
	require.ErrorIs(t, err, ErrLoggerInvalidLogLevel)
}

func TestGetSlogLevelAcceptsEveryDocumentedLevel(t *testing.T) {
	for _, level := range []string{"INFO", "WARN", "ERROR", "DEBUG"} {
		_, err := getSlogLevel(level)
		require.NoError(t, err)
	}
}
