package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

type Fields = logrus.Fields

type logFunc func(format string, args ...interface{})

// Logger keeps the printf-style call sites used across the services while
// emitting structured JSON through logrus.
type Logger struct {
	entry *logrus.Entry
	info  logFunc
	warn  logFunc
	error logFunc
	debug logFunc
}

func New() *Logger {
	base := logrus.New()
	base.SetOutput(os.Stdout)
	base.SetFormatter(&logrus.JSONFormatter{})
	base.SetLevel(logrus.InfoLevel)
	return fromEntry(logrus.NewEntry(base))
}

// NewWithLevel parses level ("debug", "info", ...) and falls back to info.
func NewWithLevel(level string) *Logger {
	l := New()
	if parsed, err := logrus.ParseLevel(level); err == nil {
		l.entry.Logger.SetLevel(parsed)
	}
	return l
}

func fromEntry(entry *logrus.Entry) *Logger {
	return &Logger{
		entry: entry,
		info:  entry.Infof,
		warn:  entry.Warnf,
		error: entry.Errorf,
		debug: entry.Debugf,
	}
}

// With returns a child logger that attaches fields to every line.
func (l *Logger) With(fields Fields) *Logger {
	return fromEntry(l.entry.WithFields(fields))
}

func (l *Logger) Info(format string, args ...interface{}) {
	l.info(format, args...)
}

func (l *Logger) Warn(format string, args ...interface{}) {
	l.warn(format, args...)
}

func (l *Logger) Error(format string, args ...interface{}) {
	l.error(format, args...)
}

func (l *Logger) Debug(format string, args ...interface{}) {
	l.debug(format, args...)
}
