package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/revoshop/pkg/logger"
)

func TestProductionLogsJSONAtInfo(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(&buf, "production")

	log.Debug("hidden")
	log.Info("cart updated", "op", "add")

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "cart updated", line["msg"])
	assert.Equal(t, "add", line["op"])
}

func TestDevelopmentLogsTextAtDebug(t *testing.T) {
	var buf bytes.Buffer
	logger.New(&buf, "local").Debug("visible", "k", 1)
	assert.Contains(t, buf.String(), "msg=visible")
}

func TestWithCtxFallsBackToBase(t *testing.T) {
	assert.Same(t, logger.L, logger.WithCtx(context.Background()))

	scoped := logger.L.With("request_id", "r1")
	ctx := logger.InjectLogger(context.Background(), scoped)
	assert.Same(t, scoped, logger.WithCtx(ctx))
}

func TestLevelFor(t *testing.T) {
	assert.Equal(t, slog.LevelInfo, logger.LevelFor(200))
	assert.Equal(t, slog.LevelWarn, logger.LevelFor(404))
	assert.Equal(t, slog.LevelError, logger.LevelFor(502))
}
