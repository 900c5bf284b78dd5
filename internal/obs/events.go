// Package obs implements the observability plane: correlation/eval id
// propagation and structured event logging at phase boundaries. Every
// event is one zap call carrying a fixed field shape,
// never a formatted log line, so sinks can filter/aggregate on them.
package obs

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/flaim/fantasy-mcp-gateway/internal/model"
)

type ctxKey int

const correlationCtxKey ctxKey = iota

// WithCorrelation stores a CorrelationContext on ctx for downstream
// handlers and the logging helpers below to pick up.
func WithCorrelation(ctx context.Context, cc model.CorrelationContext) context.Context {
	return context.WithValue(ctx, correlationCtxKey, cc)
}

// FromContext returns the CorrelationContext on ctx, generating a fresh
// correlation id if none was set: always present, generated if absent.
func FromContext(ctx context.Context) model.CorrelationContext {
	if cc, ok := ctx.Value(correlationCtxKey).(model.CorrelationContext); ok {
		return cc
	}
	return model.CorrelationContext{CorrelationID: uuid.NewString()}
}

// NewLogger builds the process-wide structured logger. Production builds
// use zap's JSON encoder; FLAIM_ENV=development switches to the
// console-friendly encoder, matching the pack's convention of gating
// encoder choice on an environment flag rather than hardcoding one.
func NewLogger(development bool) (*zap.Logger, error) {
	if development {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// RequestStart logs the request_start event.
func RequestStart(logger *zap.Logger, ctx context.Context, service string) time.Time {
	cc := FromContext(ctx)
	start := time.Now()
	logger.Info("request_start", fields(cc, service, "request", 0, "in_progress", "")...)
	return start
}

// RequestEnd logs the request_end event.
func RequestEnd(logger *zap.Logger, ctx context.Context, service string, start time.Time, status string, message string) {
	cc := FromContext(ctx)
	dur := time.Since(start).Milliseconds()
	logger.Info("request_end", fields(cc, service, "request", dur, status, message)...)
}

// ToolStart logs the tool_start event. Purely operational calls (no eval
// context attached) log at Debug instead of Info: they still happen,
// they just don't crowd an Info-level sink.
func ToolStart(logger *zap.Logger, ctx context.Context, tool string, platform, sport, leagueID string) time.Time {
	cc := FromContext(ctx)
	start := time.Now()
	logAtLevel(logger, cc, "tool_start", toolFields(cc, tool, platform, sport, leagueID, 0, "in_progress", "", nil))
	return start
}

// ToolEnd logs the tool_end event.
func ToolEnd(logger *zap.Logger, ctx context.Context, tool string, platform, sport, leagueID string, start time.Time) {
	cc := FromContext(ctx)
	dur := time.Since(start).Milliseconds()
	logAtLevel(logger, cc, "tool_end", toolFields(cc, tool, platform, sport, leagueID, dur, "ok", "", nil))
}

func logAtLevel(logger *zap.Logger, cc model.CorrelationContext, msg string, f []zap.Field) {
	if hasEvalContext(cc) {
		logger.Info(msg, f...)
		return
	}
	logger.Debug(msg, f...)
}

func hasEvalContext(cc model.CorrelationContext) bool {
	return cc.EvalRunID != "" || cc.EvalTraceID != ""
}

// ToolError logs the tool_error event.
func ToolError(logger *zap.Logger, ctx context.Context, tool string, platform, sport, leagueID string, start time.Time, err error) {
	cc := FromContext(ctx)
	dur := time.Since(start).Milliseconds()
	logger.Error("tool_error", toolFields(cc, tool, platform, sport, leagueID, dur, "error", err.Error(), err)...)
}

// DiscoveryProbe logs one discovery_probe event per probed season year,
// the finer-grained sibling of tool_start/tool_end for the discovery
// engine.
func DiscoveryProbe(logger *zap.Logger, ctx context.Context, leagueID string, year int, outcome string) {
	cc := FromContext(ctx)
	logger.Info("discovery_probe",
		zap.String("correlation_id", cc.CorrelationID),
		zap.String("league_id", leagueID),
		zap.Int("year", year),
		zap.String("outcome", outcome),
	)
}

func fields(cc model.CorrelationContext, service, phase string, durationMs int64, status, message string) []zap.Field {
	f := []zap.Field{
		zap.String("service", service),
		zap.String("phase", phase),
		zap.String("correlation_id", cc.CorrelationID),
		zap.Int64("duration_ms", durationMs),
		zap.String("status", status),
	}
	if cc.EvalRunID != "" {
		f = append(f, zap.String("run_id", cc.EvalRunID))
	}
	if cc.EvalTraceID != "" {
		f = append(f, zap.String("trace_id", cc.EvalTraceID))
	}
	if message != "" {
		f = append(f, zap.String("message", message))
	}
	return f
}

func toolFields(cc model.CorrelationContext, tool, platform, sport, leagueID string, durationMs int64, status, message string, err error) []zap.Field {
	f := fields(cc, "adapter", "tool", durationMs, status, message)
	f = append(f, zap.String("tool", tool))
	if platform != "" {
		f = append(f, zap.String("platform", platform))
	}
	if sport != "" {
		f = append(f, zap.String("sport", sport))
	}
	if leagueID != "" {
		f = append(f, zap.String("league_id", leagueID))
	}
	if err != nil {
		f = append(f, zap.Error(err))
	}
	return f
}
