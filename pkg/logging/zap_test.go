package logging

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapLogger_KeyValues(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := NewZapLogger(zap.New(core)).With("component", "tas")

	log.Debug(context.Background(), "tas request", "method", "POST", "path", "/auth/login")
	log.Warn(context.Background(), "tas failure", "status", 401)

	entries := logs.All()
	require.Len(t, entries, 2)

	assert.Equal(t, "tas request", entries[0].Message)
	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	fields := entries[0].ContextMap()
	assert.Equal(t, "tas", fields["component"])
	assert.Equal(t, "POST", fields["method"])
	assert.Equal(t, "/auth/login", fields["path"])

	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.EqualValues(t, 401, entries[1].ContextMap()["status"])
}

func TestNewZapLoggerWithLevel(t *testing.T) {
	l, err := NewZapLoggerWithLevel("warn")
	require.NoError(t, err)
	require.NotNil(t, l)

	_, err = NewZapLoggerWithLevel("loud")
	require.Error(t, err)
}
