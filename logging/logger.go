package logging

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger wraps zap with the engine's sink/level configuration.
type Logger struct {
	zap          *zap.Logger
	config       *LoggerConfig
	atomicLevel  zap.AtomicLevel
	staticFields map[string]any
}

// New creates a new logger from configuration.
func New(config *LoggerConfig) (*Logger, error) {
	if config == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	applyDefaults(config)

	level := ParseSeverity(config.DefaultLevel).ToZapLevel()
	atomicLevel := zap.NewAtomicLevelAt(level)

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "severity",
		NameKey:        "logger",
		MessageKey:     "message",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    severityEncoder,
		EncodeTime:     zapcore.RFC3339NanoTimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	var cores []zapcore.Core
	for _, sinkConfig := range config.Sinks {
		core, err := buildCore(sinkConfig, encoderConfig, atomicLevel)
		if err != nil {
			return nil, fmt.Errorf("failed to build sink %s: %w", sinkConfig.Type, err)
		}
		cores = append(cores, core)
	}
	core := zapcore.NewTee(cores...)

	opts := []zap.Option{zap.AddCaller()}
	if config.EnableStacktrace {
		opts = append(opts, zap.AddStacktrace(zapcore.ErrorLevel))
	}

	if len(config.StaticFields) > 0 {
		fields := make([]zap.Field, 0, len(config.StaticFields))
		for k, v := range config.StaticFields {
			fields = append(fields, zap.Any(k, v))
		}
		opts = append(opts, zap.Fields(fields...))
	}

	opts = append(opts, zap.Fields(zap.String("service", config.Service)))
	if config.Environment != "" {
		opts = append(opts, zap.Fields(zap.String("environment", config.Environment)))
	}
	if config.Component != "" {
		opts = append(opts, zap.Fields(zap.String("component", config.Component)))
	}

	zapLogger := zap.New(core, opts...)

	return &Logger{
		zap:          zapLogger,
		config:       config,
		atomicLevel:  atomicLevel,
		staticFields: config.StaticFields,
	}, nil
}

// NewCLI creates a logger configured for the dedupctl workbench: stderr
// only, so stdout stays reserved for command output.
func NewCLI(serviceName string) (*Logger, error) {
	return New(&LoggerConfig{
		DefaultLevel: "INFO",
		Service:      serviceName,
		Environment:  "cli",
		Sinks: []SinkConfig{
			{
				Type:   "console",
				Format: "console",
				Console: &ConsoleSinkConfig{
					Stream:   "stderr",
					Colorize: true,
				},
			},
		},
		EnableStacktrace: true,
	})
}

func buildCore(sinkConfig SinkConfig, encoderConfig zapcore.EncoderConfig, defaultLevel zap.AtomicLevel) (zapcore.Core, error) {
	var encoder zapcore.Encoder
	switch sinkConfig.Format {
	case "json":
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	case "console", "text":
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	default:
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	}

	var writer zapcore.WriteSyncer
	switch sinkConfig.Type {
	case "console":
		writer = buildConsoleWriter()
	case "file":
		w, err := buildFileWriter(sinkConfig)
		if err != nil {
			return nil, err
		}
		writer = w
	default:
		return nil, fmt.Errorf("unsupported sink type: %s", sinkConfig.Type)
	}

	level := defaultLevel
	if sinkConfig.Level != "" {
		level = zap.NewAtomicLevelAt(ParseSeverity(sinkConfig.Level).ToZapLevel())
	}

	return zapcore.NewCore(encoder, writer, level), nil
}

func buildConsoleWriter() zapcore.WriteSyncer {
	return zapcore.AddSync(os.Stderr)
}

func buildFileWriter(sinkConfig SinkConfig) (zapcore.WriteSyncer, error) {
	if sinkConfig.File == nil {
		return nil, fmt.Errorf("file sink requires file configuration")
	}

	lumber := &lumberjack.Logger{
		Filename:   sinkConfig.File.Path,
		MaxSize:    sinkConfig.File.MaxSize,
		MaxAge:     sinkConfig.File.MaxAge,
		MaxBackups: sinkConfig.File.MaxBackups,
		Compress:   sinkConfig.File.Compress,
	}
	return zapcore.AddSync(lumber), nil
}

func severityEncoder(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	var severity string
	switch l {
	case zapcore.DebugLevel:
		severity = "DEBUG"
	case zapcore.InfoLevel:
		severity = "INFO"
	case zapcore.WarnLevel:
		severity = "WARN"
	case zapcore.ErrorLevel:
		severity = "ERROR"
	case zapcore.DPanicLevel, zapcore.PanicLevel, zapcore.FatalLevel:
		severity = "FATAL"
	default:
		severity = "INFO"
	}
	enc.AppendString(severity)
}

func (l *Logger) Debug(msg string, fields ...zap.Field) { l.zap.Debug(msg, fields...) }
func (l *Logger) Info(msg string, fields ...zap.Field)  { l.zap.Info(msg, fields...) }
func (l *Logger) Warn(msg string, fields ...zap.Field)  { l.zap.Warn(msg, fields...) }
func (l *Logger) Error(msg string, fields ...zap.Field) { l.zap.Error(msg, fields...) }
func (l *Logger) Fatal(msg string, fields ...zap.Field) { l.zap.Fatal(msg, fields...) }

// WithFields returns a logger with additional static fields attached.
func (l *Logger) WithFields(fields map[string]any) *Logger {
	zapFields := make([]zap.Field, 0, len(fields))
	for k, v := range fields {
		zapFields = append(zapFields, zap.Any(k, v))
	}
	return &Logger{
		zap:          l.zap.With(zapFields...),
		config:       l.config,
		atomicLevel:  l.atomicLevel,
		staticFields: l.staticFields,
	}
}

// WithError returns a logger with an error field attached.
func (l *Logger) WithError(err error) *Logger {
	return &Logger{
		zap:          l.zap.With(zap.Error(err)),
		config:       l.config,
		atomicLevel:  l.atomicLevel,
		staticFields: l.staticFields,
	}
}

// WithComponent returns a logger tagged with the given component name,
// e.g. "similarity", "grouping", "engine".
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{
		zap:          l.zap.With(zap.String("component", component)),
		config:       l.config,
		atomicLevel:  l.atomicLevel,
		staticFields: l.staticFields,
	}
}

// WithContext is a no-op hook for future trace propagation; kept so
// call sites can thread a context.Context through without churn if
// tracing is added later.
func (l *Logger) WithContext(ctx context.Context) *Logger {
	return l
}

// Sync flushes any buffered log entries.
func (l *Logger) Sync() error {
	return l.zap.Sync()
}

// SetLevel dynamically changes the log level.
func (l *Logger) SetLevel(severity Severity) {
	l.atomicLevel.SetLevel(severity.ToZapLevel())
}

// GetLevel returns the current log level.
func (l *Logger) GetLevel() Severity {
	switch l.atomicLevel.Level() {
	case zapcore.DebugLevel:
		return DEBUG
	case zapcore.InfoLevel:
		return INFO
	case zapcore.WarnLevel:
		return WARN
	case zapcore.ErrorLevel:
		return ERROR
	case zapcore.FatalLevel:
		return FATAL
	default:
		return INFO
	}
}

// Named returns a logger with the specified name.
func (l *Logger) Named(name string) *Logger {
	return &Logger{
		zap:          l.zap.Named(name),
		config:       l.config,
		atomicLevel:  l.atomicLevel,
		staticFields: l.staticFields,
	}
}
