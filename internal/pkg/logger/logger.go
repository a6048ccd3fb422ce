// Package logger is a small leveled wrapper around the standard log
// package. DEBUG output is enabled in development only.
package logger

import (
	"fmt"
	"log"
	"os"
)

type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
	FATAL
)

var levelNames = map[Level]string{
	DEBUG: "DEBUG",
	INFO:  "INFO",
	WARN:  "WARN",
	ERROR: "ERROR",
	FATAL: "FATAL",
}

type Logger struct {
	level Level
	log   *log.Logger
}

func New(level Level) *Logger {
	return &Logger{
		level: level,
		log:   log.New(os.Stdout, "", log.LstdFlags),
	}
}

func (l *Logger) printf(level Level, format string, v ...interface{}) {
	if l.level > level {
		return
	}
	l.log.Printf("[%s] %s", levelNames[level], fmt.Sprintf(format, v...))
}

func (l *Logger) Debug(format string, v ...interface{}) { l.printf(DEBUG, format, v...) }
func (l *Logger) Info(format string, v ...interface{})  { l.printf(INFO, format, v...) }
func (l *Logger) Warn(format string, v ...interface{})  { l.printf(WARN, format, v...) }
func (l *Logger) Error(format string, v ...interface{}) { l.printf(ERROR, format, v...) }

func (l *Logger) Fatal(format string, v ...interface{}) {
	l.log.Fatalf("[%s] %s", levelNames[FATAL], fmt.Sprintf(format, v...))
}

func (l *Logger) SetLevel(level Level) {
	l.level = level
}

var defaultLogger = New(INFO)

func Debug(format string, v ...interface{}) { defaultLogger.Debug(format, v...) }
func Info(format string, v ...interface{})  { defaultLogger.Info(format, v...) }
func Warn(format string, v ...interface{})  { defaultLogger.Warn(format, v...) }
func Error(format string, v ...interface{}) { defaultLogger.Error(format, v...) }
func Fatal(format string, v ...interface{}) { defaultLogger.Fatal(format, v...) }

// SetGlobalLevel sets the level for the package-level logger.
func SetGlobalLevel(level Level) {
	defaultLogger.SetLevel(level)
}
