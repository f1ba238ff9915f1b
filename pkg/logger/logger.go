package logger

import (
	"log"
	"strings"
)

const (
	DEBUG int = iota
	INFO
	WARNING
	ERROR
	SILENCE
)

type Logger interface {
	Debugf(msg string, a ...any)
	Infof(msg string, a ...any)
	Warnf(msg string, a ...any)
	Errorf(msg string, a ...any)
}

type defaultLogger struct {
	level int
}

func NewLogger(level int) *defaultLogger {
	return &defaultLogger{level: level}
}

// NewLoggerByName creates a logger from a level name (DEBUG, INFO, WARNING,
// ERROR, SILENCE). Unknown names fall back to INFO.
func NewLoggerByName(name string) *defaultLogger {
	switch strings.ToUpper(name) {
	case "DEBUG":
		return NewLogger(DEBUG)
	case "WARNING", "WARN":
		return NewLogger(WARNING)
	case "ERROR":
		return NewLogger(ERROR)
	case "SILENCE":
		return NewLogger(SILENCE)
	default:
		return NewLogger(INFO)
	}
}

func (l *defaultLogger) Debugf(msg string, a ...any) {
	if l.level <= DEBUG {
		log.Printf(msg+"\n", a...)
	}
}

func (l *defaultLogger) Infof(msg string, a ...any) {
	if l.level <= INFO {
		log.Printf(msg+"\n", a...)
	}
}

func (l *defaultLogger) Warnf(msg string, a ...any) {
	if l.level <= WARNING {
		log.Printf(msg+"\n", a...)
	}
}

func (l *defaultLogger) Errorf(msg string, a ...any) {
	if l.level <= ERROR {
		log.Printf(msg+"\n", a...)
	}
}
