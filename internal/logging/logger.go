// Package logging builds the logrus logger used by the fdemand command.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/filedemand/filedemand/internal/config"
)

// New configures a logger from cfg. Without a log file the logger writes to
// stderr so that command output on stdout stays clean. If the log file cannot
// be prepared the logger falls back to stderr and warns.
func New(cfg config.LogConfig) (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}

	output, outErr := buildOutput(cfg)

	logger := logrus.New()
	logger.SetLevel(level)
	logger.SetOutput(output)

	switch strings.ToLower(cfg.Format) {
	case "", "text":
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: time.RFC3339})
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339Nano})
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}

	if outErr != nil {
		logger.WithFields(BaseFields("logger_fallback", cfg.File)).Warn(outErr.Error())
	}

	return logger, nil
}

func buildOutput(cfg config.LogConfig) (io.Writer, error) {
	if cfg.File == "" {
		return os.Stderr, nil
	}

	if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
		return os.Stderr, fmt.Errorf("create log directory: %w", err)
	}

	return &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
		Compress:   cfg.Compress,
		LocalTime:  true,
	}, nil
}

// Close releases the rotated log file behind logger, if there is one.
func Close(logger *logrus.Logger) error {
	if rotator, ok := logger.Out.(*lumberjack.Logger); ok {
		return rotator.Close()
	}
	return nil
}
