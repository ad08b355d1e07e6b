package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

const serviceName = "task-manager"

// Logger is the process-wide logger. It writes to stderr until Init is called.
var Logger = logrus.New()

// Options controls where and how much the service logs.
type Options struct {
	Level string
	// File enables size-based rotation into the given path when non-empty.
	File string
}

// Init configures Logger. The returned closer flushes the rotating file, if any.
func Init(opts Options) (io.Closer, error) {
	level := logrus.InfoLevel
	if opts.Level != "" {
		parsed, err := logrus.ParseLevel(opts.Level)
		if err != nil {
			return nil, fmt.Errorf("parse log level: %w", err)
		}
		level = parsed
	}

	Logger.SetLevel(level)
	Logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
		DisableColors:   true,
	})

	if opts.File == "" {
		Logger.SetOutput(os.Stdout)
		return nopCloser{}, nil
	}

	if dir := filepath.Dir(opts.File); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("create log dir %q: %w", dir, err)
		}
	}

	logFile := &lumberjack.Logger{
		Filename:   opts.File,
		MaxSize:    10,
		MaxBackups: 3,
		MaxAge:     28,
		Compress:   true,
	}
	Logger.SetOutput(logFile)
	return logFile, nil
}

// WithComponent tags entries with the emitting component.
func WithComponent(name string) *logrus.Entry {
	return Logger.WithFields(logrus.Fields{
		"service":   serviceName,
		"component": name,
	})
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
