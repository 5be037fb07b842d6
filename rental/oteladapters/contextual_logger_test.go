package oteladapters_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/log"
	"go.opentelemetry.io/otel/log/embedded"
	"go.opentelemetry.io/otel/log/noop"

	"github.com/AntonStoeckl/gear-rental-go/rental/oteladapters"
)

func Test_SlogBridgeLogger_AllLevels(t *testing.T) {
	// arrange
	var buf bytes.Buffer
	logger := oteladapters.NewSlogBridgeLoggerWithHandler(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	ctx := context.Background()

	// act
	logger.DebugContext(ctx, "lock acquired", "item_id", "i-1")
	logger.InfoContext(ctx, "transaction committed", "duration_ms", 1.5)
	logger.WarnContext(ctx, "retrying", "attempt", 2)
	logger.Error("transaction failed", "error", "boom")

	// assert
	output := buf.String()
	assert.Contains(t, output, `"level":"DEBUG","msg":"lock acquired","item_id":"i-1"`)
	assert.Contains(t, output, `"msg":"transaction committed","duration_ms":1.5`)
	assert.Contains(t, output, `"level":"WARN","msg":"retrying","attempt":2`)
	assert.Contains(t, output, `"level":"ERROR","msg":"transaction failed","error":"boom"`)
}

func Test_SlogBridgeLogger_RespectsHandlerLevel(t *testing.T) {
	// arrange
	var buf bytes.Buffer
	logger := oteladapters.NewSlogBridgeLoggerWithHandler(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn}))

	// act
	logger.InfoContext(context.Background(), "hidden")
	logger.WarnContext(context.Background(), "shown")

	// assert
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func Test_NewSlogBridgeLogger_DoesNotPanicWithoutProvider(t *testing.T) {
	logger := oteladapters.NewSlogBridgeLogger("test")

	assert.NotPanics(t, func() {
		logger.InfoContext(context.Background(), "message", "key", "value")
	})
}

type recordingLogger struct {
	embedded.Logger

	records []log.Record
}

func (l *recordingLogger) Emit(_ context.Context, record log.Record) {
	l.records = append(l.records, record)
}

func (l *recordingLogger) Enabled(context.Context, log.EnabledParameters) bool {
	return true
}

func attributesOf(record log.Record) map[string]log.Value {
	attrs := make(map[string]log.Value)
	record.WalkAttributes(func(kv log.KeyValue) bool {
		attrs[kv.Key] = kv.Value
		return true
	})

	return attrs
}

func Test_OTelLogger_EmitsRecords(t *testing.T) {
	// arrange
	recorder := &recordingLogger{}
	logger := oteladapters.NewOTelLogger(recorder)

	// act
	logger.WarnContext(context.Background(), "return rejected",
		"quantity", 3,
		"item", "Tent",
		"error", errors.New("exceeds outstanding"),
		42, "dropped because the key is not a string",
		"dangling",
	)

	// assert
	require.Len(t, recorder.records, 1)
	record := recorder.records[0]
	assert.Equal(t, log.SeverityWarn, record.Severity())
	assert.Equal(t, "return rejected", record.Body().AsString())

	attrs := attributesOf(record)
	assert.Len(t, attrs, 3)
	assert.Equal(t, int64(3), attrs["quantity"].AsInt64())
	assert.Equal(t, "Tent", attrs["item"].AsString())
	assert.Equal(t, "exceeds outstanding", attrs["error"].AsString())
}

func Test_OTelLogger_WithNoopLogger(t *testing.T) {
	logger := oteladapters.NewOTelLogger(noop.NewLoggerProvider().Logger("test"))

	assert.NotPanics(t, func() {
		logger.DebugContext(context.Background(), "debug")
		logger.ErrorContext(context.Background(), "error", "key", "value")
	})
}
