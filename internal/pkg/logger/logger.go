package logger

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"aurum/karat_gold_loan/configs"
	"aurum/karat_gold_loan/internal/app/middleware"
	"aurum/karat_gold_loan/internal/pkg/models"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	log         *zap.Logger
	serviceName string
)

func init() {
	if err := configs.LoadEnv(); err != nil {
		fmt.Printf("error loading .env file : %v", err)
	}

	serviceName = configs.SERVICE_NAME
	if serviceName == "" {
		serviceName = "karatgoldloan"
	}

	encCfg := zapcore.EncoderConfig{
		TimeKey:     "timestamp",
		LevelKey:    "log_level",
		MessageKey:  "message",
		EncodeTime:  zapcore.ISO8601TimeEncoder,
		EncodeLevel: zapcore.CapitalLevelEncoder,
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encCfg),
		zapcore.Lock(os.Stdout),
		parseLevel(configs.LOG_LEVEL),
	)
	log = zap.New(core)
}

func parseLevel(s string) zapcore.Level {
	switch strings.ToLower(s) {
	case "debug":
		return zap.DebugLevel
	case "info":
		return zap.InfoLevel
	case "warn":
		return zap.WarnLevel
	case "error":
		return zap.ErrorLevel
	case "panic":
		return zap.PanicLevel
	}
	return zap.InfoLevel
}

func Info(args ...interface{}) {
	write(zap.InfoLevel, args)
}

func Debug(args ...interface{}) {
	write(zap.DebugLevel, args)
}

func Warn(args ...interface{}) {
	write(zap.WarnLevel, args)
}

func Error(args ...interface{}) {
	write(zap.ErrorLevel, args)
}

func Panic(args ...interface{}) {
	write(zap.PanicLevel, args)
}

// write accepts the loose calling conventions used across the service: an
// optional leading context, then either a printf-style message or a struct
// whose fields should be flattened into the entry.
func write(level zapcore.Level, args []interface{}) {
	var ctx context.Context
	var msg string
	var fields []zapcore.Field

	if len(args) > 0 {
		if c, ok := args[0].(context.Context); ok {
			ctx = c
			args = args[1:]
		}
	}

	if len(args) > 0 {
		if _, ok := args[0].(string); !ok && ctx != nil {
			fields = structFields(args[0])
			args = args[1:]
		}
		msg = sprintf(args)
	}

	fields = append(fields, requestFields(ctx)...)
	if level == zap.DebugLevel || log.Core().Enabled(zap.DebugLevel) {
		fields = append(fields, callerFields(3)...)
	}

	switch level {
	case zap.DebugLevel:
		log.Debug(msg, dedupe(fields)...)
	case zap.InfoLevel:
		log.Info(msg, dedupe(fields)...)
	case zap.WarnLevel:
		log.Warn(msg, dedupe(fields)...)
	case zap.ErrorLevel:
		log.Error(msg, dedupe(fields)...)
	case zap.PanicLevel:
		log.Panic(msg, dedupe(fields)...)
	}
}

func sprintf(args []interface{}) string {
	if len(args) == 0 {
		return ""
	}
	msg, ok := args[0].(string)
	if !ok {
		msg = fmt.Sprintf("%v", args[0])
	}
	if len(args) > 1 {
		msg = fmt.Sprintf(msg, args[1:]...)
	}
	return msg
}

// structFields flattens an arbitrary value into string fields by a JSON
// round-trip, so handlers can log whole request payloads in one call.
func structFields(v interface{}) []zapcore.Field {
	raw, err := json.Marshal(v)
	if err != nil {
		return []zapcore.Field{zap.String("error", fmt.Sprintf("failed to serialize struct: %v", err))}
	}

	var m map[string]interface{}
	if err := json.Unmarshal(raw, &m); err != nil {
		return []zapcore.Field{zap.String("error", fmt.Sprintf("failed to parse JSON: %v", err))}
	}

	fields := make([]zapcore.Field, 0, len(m))
	for k, v := range m {
		fields = append(fields, zap.String(k, fmt.Sprintf("%v", v)))
	}
	return fields
}

func requestFields(ctx context.Context) []zapcore.Field {
	if ctx == nil {
		return nil
	}

	var fields []zapcore.Field
	if details, ok := ctx.Value(middleware.LogDetailsKey).(models.RequestDetails); ok {
		fields = append(fields, zap.String("request_id", details.RequestID))
	}
	if sc := trace.SpanFromContext(ctx).SpanContext(); sc.HasTraceID() {
		fields = append(fields, zap.String("trace_id", sc.TraceID().String()))
	}
	return append(fields, zap.String("service_name", serviceName))
}

func callerFields(skip int) []zapcore.Field {
	pc, file, line, ok := runtime.Caller(skip)
	if !ok {
		return nil
	}
	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return nil
	}

	name := fn.Name()
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	return []zapcore.Field{
		zap.String("file_name", filepath.Base(file)),
		zap.Int("line_number", line),
		zap.String("function_name", name),
	}
}

func dedupe(fields []zapcore.Field) []zapcore.Field {
	seen := make(map[string]struct{}, len(fields))
	out := fields[:0]
	for _, f := range fields {
		if _, dup := seen[f.Key]; dup {
			continue
		}
		seen[f.Key] = struct{}{}
		out = append(out, f)
	}
	return out
}
