// Package log writes structured entries to a daily file. Nothing is written unless logs.write is enabled.
package log

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/crosswatch-cli/crosswatch/filesystem"
	"github.com/crosswatch-cli/crosswatch/key"
	"github.com/crosswatch-cli/crosswatch/where"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Fields is an alias so callers do not import logrus directly.
type Fields = logrus.Fields

var (
	logger  = newLogger(io.Discard)
	enabled bool
)

func newLogger(out io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(out)
	return l
}

// Setup opens today's log file and configures formatter and level from the config.
func Setup() error {
	enabled = viper.GetBool(key.LogsWrite)
	if !enabled {
		return nil
	}

	dir := where.Logs()
	if dir == "" {
		return errors.New("log directory path is empty")
	}

	path := filepath.Join(dir, time.Now().Format("2006-01-02")+".log")
	f, err := filesystem.API().OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o666)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	logger.SetOutput(f)

	if viper.GetBool(key.LogsJson) {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{DisableColors: true})
	}

	level, err := logrus.ParseLevel(viper.GetString(key.LogsLevel))
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	return nil
}

func emit(level logrus.Level, fields Fields, msg string) {
	if !enabled {
		return
	}

	logger.WithFields(fields).Log(level, msg)
}

// WithFields writes an info entry.
func WithFields(fields Fields, msg string) {
	emit(logrus.InfoLevel, fields, msg)
}

// Warning writes a warn entry.
func Warning(fields Fields, msg string) {
	emit(logrus.WarnLevel, fields, msg)
}

func Error(err error) {
	emit(logrus.ErrorLevel, nil, err.Error())
}

func Warnf(format string, args ...any) {
	emit(logrus.WarnLevel, nil, fmt.Sprintf(format, args...))
}

func Infof(format string, args ...any) {
	emit(logrus.InfoLevel, nil, fmt.Sprintf(format, args...))
}

func Debugf(format string, args ...any) {
	emit(logrus.DebugLevel, nil, fmt.Sprintf(format, args...))
}
