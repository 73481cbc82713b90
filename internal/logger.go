package internal

import (
	"os"
	"time"

	"frisbee/entity"
	"frisbee/services"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger implements services.LogHandler on zap. Records go to stdout, to a
// rotating file when one is configured, and to the database sink when one is
// attached. A failing sink never fails the caller.
type Logger struct {
	module   string
	debug    bool
	zap      *zap.Logger
	database services.Database
}

func NewLogger(module string, debug bool, database services.Database) *Logger {
	level := zapcore.InfoLevel
	if debug {
		level = zapcore.DebugLevel
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.Lock(os.Stdout),
		level,
	)

	return &Logger{
		module:   module,
		debug:    debug,
		zap:      zap.New(core).Named(module),
		database: database,
	}
}

// WithFile adds a size-rotated file output next to stdout.
func (l *Logger) WithFile(path string, maxSizeMb int) *Logger {
	if path == "" {
		return l
	}
	level := zapcore.InfoLevel
	if l.debug {
		level = zapcore.DebugLevel
	}
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	fileCore := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(&lumberjack.Logger{
			Filename:   path,
			MaxSize:    maxSizeMb,
			MaxBackups: 3,
		}),
		level,
	)
	l.zap = l.zap.WithOptions(zap.WrapCore(func(core zapcore.Core) zapcore.Core {
		return zapcore.NewTee(core, fileCore)
	}))
	return l
}

func (l *Logger) Debug(message string) {
	l.zap.Debug(message)
	if l.debug {
		l.sink("debug", message, "")
	}
}

func (l *Logger) Info(message string) {
	l.zap.Info(message)
	l.sink("info", message, "")
}

func (l *Logger) Warn(message string) {
	l.zap.Warn(message)
	l.sink("warn", message, "")
}

func (l *Logger) Error(message string, err error) {
	errorText := ""
	if err != nil {
		errorText = err.Error()
	}
	l.zap.Error(message, zap.String("error", errorText))
	l.sink("error", message, errorText)
}

func (l *Logger) sink(level, text, errorText string) {
	if l.database == nil {
		return
	}
	record := &entity.LogMessage{
		Time:   time.Now(),
		Level:  level,
		Module: l.module,
		Text:   text,
		Error:  errorText,
	}
	_ = l.database.WriteLogMessage(record)
}
