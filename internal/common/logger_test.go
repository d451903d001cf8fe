package common

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLogger(t *testing.T) {
	require.NoError(t, SetupLogger(slog.LevelInfo, "console"))
	require.NoError(t, SetupLogger(slog.LevelDebug, "json"))

	err := SetupLogger(slog.LevelInfo, "xml")
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
