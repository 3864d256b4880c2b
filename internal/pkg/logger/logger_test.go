package logger

import (
	"context"
	"testing"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	l, err := New("debug")
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zapcore.DebugLevel))

	l, err = New("warn")
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zapcore.InfoLevel))

	_, err = New("chatty")
	assert.Error(t, err)
}

func TestWithAction(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	ctx := ctxzap.ToContext(context.Background(), zap.New(core))

	ctx = WithAction(ctx, "ChatCompletion")
	ctxzap.Info(ctx, "hello")

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "ChatCompletion", logs.All()[0].ContextMap()["action"])
}

func TestWithRequestID(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	ctx := ctxzap.ToContext(context.Background(), zap.New(core))

	assert.Empty(t, RequestID(ctx))

	ctx = WithRequestID(ctx, "host/abc-000001")
	assert.Equal(t, "host/abc-000001", RequestID(ctx))

	ctxzap.Info(ctx, "hello")
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "host/abc-000001", logs.All()[0].ContextMap()["request_id"])
}
