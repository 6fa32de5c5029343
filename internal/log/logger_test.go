package log

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestResolveLevel(t *testing.T) {
	require.Equal(t, zerolog.WarnLevel, resolveLevel("local", "warn"))
	require.Equal(t, zerolog.TraceLevel, resolveLevel("production", "trace"))

	// Empty or unparseable levels fall back to the environment default.
	require.Equal(t, zerolog.DebugLevel, resolveLevel("local", ""))
	require.Equal(t, zerolog.InfoLevel, resolveLevel("production", ""))
	require.Equal(t, zerolog.DebugLevel, resolveLevel("local", "loud"))
}

func TestNewScopesLevelToLogger(t *testing.T) {
	before := zerolog.GlobalLevel()

	logger := New("local", "error")
	require.Equal(t, zerolog.ErrorLevel, logger.GetLevel())

	// The global level is untouched.
	require.Equal(t, before, zerolog.GlobalLevel())
}
