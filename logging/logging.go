// Package logging configures the file-backed application logger. The TUI
// owns the terminal, so logs go to a rotated file under the user config
// directory instead of stdout.
package logging

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// New creates a zap logger writing JSON lines to dir/lawbot.log with
// rotation. An empty dir yields a no-op logger.
func New(dir string) (*zap.Logger, error) {
	if dir == "" {
		return zap.NewNop(), nil
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(&lumberjack.Logger{
			Filename: filepath.Join(dir, "lawbot.log"),
			MaxSize:  10, // megabytes
			MaxAge:   14, // days
			Compress: true,
		}),
		zap.InfoLevel,
	)
	return zap.New(core), nil
}
