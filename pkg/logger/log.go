package logger

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// NewLogger строит дублирующий логгер: консоль + файл.
func NewLogger(logFile string) *zap.Logger {
	if logFile == "" {
		logFile = "./logs/console.log"
	}
	if err := os.MkdirAll(filepath.Dir(logFile), 0o755); err != nil {
		panic(err)
	}

	dualConfig := zap.Config{
		Encoding:         "console",
		Level:            zap.NewAtomicLevelAt(zap.DebugLevel),
		OutputPaths:      []string{"stdout", logFile},
		ErrorOutputPaths: []string{"stderr"},
		EncoderConfig:    zap.NewProductionEncoderConfig(),
	}

	dualLogger, err := dualConfig.Build()
	if err != nil {
		panic(err)
	}

	return dualLogger
}
