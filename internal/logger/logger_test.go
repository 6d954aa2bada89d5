package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestSetAndLog(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	Set(zap.New(core))
	t.Cleanup(func() { Set(nil) })

	Info("entry saved", zap.String("user_id", "u1"))
	Named("analysis").Warn("fallback used")

	entries := logs.All()
	assert.Len(t, entries, 2)
	assert.Equal(t, "entry saved", entries[0].Message)
	assert.Equal(t, "u1", entries[0].ContextMap()["user_id"])
	assert.Equal(t, "analysis", entries[1].LoggerName)
}

func TestSetNilFallsBackToNop(t *testing.T) {
	Set(nil)
	assert.NotPanics(t, func() { Error("ignored") })
}

func TestInitDevelopment(t *testing.T) {
	t.Setenv("ENV", "development")
	assert.NoError(t, Init())
	assert.NotNil(t, Get())
	Set(nil)
}
