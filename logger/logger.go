package logger

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// New builds the service logger. Development mode uses the colored console
// encoder; production uses JSON with ISO8601 timestamps. Two optional
// sinks can be teed in alongside stdout: a rotating file (LOG_FILE) and a
// CloudWatch Logs writer.
func New(env string, cloudWatchWriter io.Writer) (*zap.Logger, error) {
	var config zap.Config
	if env == "production" {
		config = zap.NewProductionConfig()
		config.EncoderConfig.TimeKey = "timestamp"
		config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	level := zap.NewAtomicLevelAt(config.Level.Level())

	var consoleEncoder zapcore.Encoder
	if env == "production" {
		consoleEncoder = zapcore.NewJSONEncoder(config.EncoderConfig)
	} else {
		consoleEncoder = zapcore.NewConsoleEncoder(config.EncoderConfig)
	}
	cores := []zapcore.Core{
		zapcore.NewCore(consoleEncoder, zapcore.AddSync(os.Stdout), level),
	}

	if logFile := os.Getenv("LOG_FILE"); logFile != "" {
		fileSyncer := zapcore.AddSync(&lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    100, // megabytes
			MaxBackups: 5,
			MaxAge:     30, // days
			Compress:   true,
		})
		jsonEncoder := zapcore.NewJSONEncoder(config.EncoderConfig)
		cores = append(cores, zapcore.NewCore(jsonEncoder, fileSyncer, level))
	}

	if cloudWatchWriter != nil {
		jsonEncoder := zapcore.NewJSONEncoder(config.EncoderConfig)
		cores = append(cores, zapcore.NewCore(jsonEncoder, zapcore.AddSync(cloudWatchWriter), level))
	}

	core := zapcore.NewTee(cores...)
	return zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)), nil
}
