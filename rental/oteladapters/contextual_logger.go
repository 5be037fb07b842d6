package oteladapters

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel/log"

	"github.com/AntonStoeckl/gear-rental-go/rental"
)

// SlogBridgeLogger implements rental.ContextualLogger and rental.Logger on top of log/slog.
// Built with NewSlogBridgeLogger it goes through the OpenTelemetry slog bridge, so records carry
// the trace and span ids of the context.
type SlogBridgeLogger struct {
	logger *slog.Logger
}

// NewSlogBridgeLogger creates a logger backed by the global OpenTelemetry LoggerProvider.
func NewSlogBridgeLogger(name string) *SlogBridgeLogger {
	return &SlogBridgeLogger{logger: otelslog.NewLogger(name)}
}

// NewSlogBridgeLoggerWithHandler creates a logger that writes to handler as-is, without trace correlation.
// The cmd binaries use it for plain JSON logs on stdout.
func NewSlogBridgeLoggerWithHandler(handler slog.Handler) *SlogBridgeLogger {
	return &SlogBridgeLogger{logger: slog.New(handler)}
}

func (l *SlogBridgeLogger) DebugContext(ctx context.Context, msg string, args ...any) {
	l.logger.DebugContext(ctx, msg, args...)
}

func (l *SlogBridgeLogger) InfoContext(ctx context.Context, msg string, args ...any) {
	l.logger.InfoContext(ctx, msg, args...)
}

func (l *SlogBridgeLogger) WarnContext(ctx context.Context, msg string, args ...any) {
	l.logger.WarnContext(ctx, msg, args...)
}

func (l *SlogBridgeLogger) ErrorContext(ctx context.Context, msg string, args ...any) {
	l.logger.ErrorContext(ctx, msg, args...)
}

func (l *SlogBridgeLogger) Debug(msg string, args ...any) { l.logger.Debug(msg, args...) }
func (l *SlogBridgeLogger) Info(msg string, args ...any)  { l.logger.Info(msg, args...) }
func (l *SlogBridgeLogger) Warn(msg string, args ...any)  { l.logger.Warn(msg, args...) }
func (l *SlogBridgeLogger) Error(msg string, args ...any) { l.logger.Error(msg, args...) }

var (
	_ rental.ContextualLogger = (*SlogBridgeLogger)(nil)
	_ rental.Logger           = (*SlogBridgeLogger)(nil)
)

// OTelLogger implements rental.ContextualLogger by emitting records through the OpenTelemetry logs API directly.
type OTelLogger struct {
	logger log.Logger
}

// NewOTelLogger creates a contextual logger that emits to the given OpenTelemetry logger.
func NewOTelLogger(logger log.Logger) *OTelLogger {
	return &OTelLogger{logger: logger}
}

func (l *OTelLogger) DebugContext(ctx context.Context, msg string, args ...any) {
	l.emit(ctx, log.SeverityDebug, msg, args...)
}

func (l *OTelLogger) InfoContext(ctx context.Context, msg string, args ...any) {
	l.emit(ctx, log.SeverityInfo, msg, args...)
}

func (l *OTelLogger) WarnContext(ctx context.Context, msg string, args ...any) {
	l.emit(ctx, log.SeverityWarn, msg, args...)
}

func (l *OTelLogger) ErrorContext(ctx context.Context, msg string, args ...any) {
	l.emit(ctx, log.SeverityError, msg, args...)
}

// emit converts slog-style key/value args into record attributes. A dangling key or a non-string key is dropped.
func (l *OTelLogger) emit(ctx context.Context, severity log.Severity, msg string, args ...any) {
	var record log.Record
	record.SetSeverity(severity)
	record.SetSeverityText(severity.String())
	record.SetBody(log.StringValue(msg))

	for i := 0; i+1 < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok {
			continue
		}

		record.AddAttributes(toLogKeyValue(key, args[i+1]))
	}

	l.logger.Emit(ctx, record)
}

func toLogKeyValue(key string, value any) log.KeyValue {
	switch v := value.(type) {
	case string:
		return log.String(key, v)
	case int:
		return log.Int(key, v)
	case int64:
		return log.Int64(key, v)
	case bool:
		return log.Bool(key, v)
	case float64:
		return log.Float64(key, v)
	case error:
		return log.String(key, v.Error())
	default:
		return log.String(key, slog.AnyValue(v).String())
	}
}

var _ rental.ContextualLogger = (*OTelLogger)(nil)
