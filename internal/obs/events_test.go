package obs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/flaim/fantasy-mcp-gateway/internal/model"
)

func TestFromContext_GeneratesCorrelationIDWhenAbsent(t *testing.T) {
	cc := FromContext(context.Background())

	assert.NotEmpty(t, cc.CorrelationID)
}

func TestWithCorrelation_RoundTrips(t *testing.T) {
	ctx := WithCorrelation(context.Background(), model.CorrelationContext{CorrelationID: "fixed-id"})

	assert.Equal(t, "fixed-id", FromContext(ctx).CorrelationID)
}

func newObservedLogger() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return zap.New(core), logs
}

func TestToolStart_LogsAtDebugWithoutEvalContext(t *testing.T) {
	logger, logs := newObservedLogger()
	ctx := WithCorrelation(context.Background(), model.CorrelationContext{CorrelationID: "c1"})

	ToolStart(logger, ctx, "get_standings", "espn", "football", "1")

	entries := logs.All()
	assert.Len(t, entries, 1)
	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, "tool_start", entries[0].Message)
}

func TestToolStart_LogsAtInfoWithEvalContext(t *testing.T) {
	logger, logs := newObservedLogger()
	ctx := WithCorrelation(context.Background(), model.CorrelationContext{CorrelationID: "c1", EvalRunID: "run-1"})

	ToolStart(logger, ctx, "get_standings", "espn", "football", "1")

	entries := logs.All()
	assert.Len(t, entries, 1)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
}

func TestToolError_LogsAtErrorWithErrField(t *testing.T) {
	logger, logs := newObservedLogger()
	ctx := context.Background()

	ToolError(logger, ctx, "get_standings", "espn", "football", "1", time.Now(), errors.New("boom"))

	entries := logs.All()
	assert.Len(t, entries, 1)
	assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
	assert.Equal(t, "tool_error", entries[0].Message)
}

func TestDiscoveryProbe_LogsYearAndOutcome(t *testing.T) {
	logger, logs := newObservedLogger()

	DiscoveryProbe(logger, context.Background(), "league-1", 2019, "hit")

	entries := logs.All()
	assert.Len(t, entries, 1)
	m := entries[0].ContextMap()
	assert.Equal(t, "league-1", m["league_id"])
	assert.EqualValues(t, 2019, m["year"])
	assert.Equal(t, "hit", m["outcome"])
}
