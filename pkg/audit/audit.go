package audit

import (
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EventType represents the type of audited event
type EventType string

const (
	EventSubmissionAccepted EventType = "submission_accepted"
	EventSubmissionFailed   EventType = "submission_failed"
	EventValidationFailed   EventType = "validation_failed"
	EventGeoLookupFailed    EventType = "geo_lookup_failed"
	EventContentFallback    EventType = "content_fallback"
	EventRateLimitTriggered EventType = "rate_limit_triggered"
)

// Logger provides structured logging for diagnostic events that should
// survive log rotation and be queryable: form submissions, degraded
// enhancements, rate limiting.
type Logger struct {
	zapLogger   *zap.Logger
	serviceName string
	environment string
}

// NewLogger creates an audit logger writing JSON lines to stdout.
func NewLogger(serviceName string) *Logger {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "timestamp"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		zapcore.Lock(os.Stdout),
		zapcore.InfoLevel,
	)

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}

	return &Logger{
		zapLogger:   zap.New(core),
		serviceName: serviceName,
		environment: env,
	}
}

// Event records a single audited event with optional detail fields.
func (l *Logger) Event(event EventType, ip, requestID string, details map[string]interface{}) {
	if l == nil || l.zapLogger == nil {
		return
	}

	fields := []zap.Field{
		zap.Time("at", time.Now().UTC()),
		zap.String("service", l.serviceName),
		zap.String("env", l.environment),
		zap.String("event", string(event)),
	}
	if ip != "" {
		fields = append(fields, zap.String("ip", ip))
	}
	if requestID != "" {
		fields = append(fields, zap.String("request_id", requestID))
	}
	if len(details) > 0 {
		fields = append(fields, zap.Any("details", details))
	}

	l.zapLogger.Info("audit", fields...)
}

// Sync flushes buffered log entries. Call on shutdown.
func (l *Logger) Sync() {
	if l != nil && l.zapLogger != nil {
		_ = l.zapLogger.Sync()
	}
}
