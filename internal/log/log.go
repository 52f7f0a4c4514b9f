// Package log configures apex/log for the debugdiff command
package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/apex/log"
)

// EnvVar names the environment variable holding the log level
const EnvVar = "DEBUGDIFF_LOG"

// InitLogger sets up Apex with a compact handler writing to stderr and a log
// level from the DEBUGDIFF_LOG env variable. Unknown levels & an unset
// variable log errors only
func InitLogger() {
	InitLoggerTo(os.Stderr, os.Getenv(EnvVar))
}

// InitLoggerTo sets up Apex writing to w at the named level
func InitLoggerTo(w io.Writer, level string) {
	log.SetHandler(&Handler{w: w})
	log.SetLevel(parseLevel(level))
}

func parseLevel(s string) log.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug", "trace":
		return log.DebugLevel
	case "info":
		return log.InfoLevel
	case "warn":
		return log.WarnLevel
	case "fatal":
		return log.FatalLevel
	}
	return log.ErrorLevel
}

// Handler formats log messages as "<time> <level> <message> key=value..."
type Handler struct {
	mu sync.Mutex
	w  io.Writer
}

// HandleLog implements the log.Handler interface
func (h *Handler) HandleLog(e *log.Entry) error {
	level := "?"
	switch e.Level {
	case log.DebugLevel:
		level = "D"
	case log.InfoLevel:
		level = "I"
	case log.WarnLevel:
		level = "W"
	case log.ErrorLevel:
		level = "E"
	case log.FatalLevel:
		level = "F"
	}

	buf := &strings.Builder{}
	fmt.Fprintf(buf, "%s %s %s", e.Timestamp.Format(time.TimeOnly), level, e.Message)
	for _, name := range e.Fields.Names() {
		fmt.Fprintf(buf, " %s=%v", name, e.Fields.Get(name))
	}
	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, buf.String())
	return err
}

// Debugf logs at Debug level.
func Debugf(format string, args ...interface{}) {
	log.Debugf(format, args...)
}

// Infof logs at Info level.
func Infof(format string, args ...interface{}) {
	log.Infof(format, args...)
}

// WithField returns an entry with a single field set
func WithField(key string, value interface{}) *log.Entry {
	return log.WithField(key, value)
}

// WithError returns an entry with error.
func WithError(err error) *log.Entry {
	return log.WithError(err)
}
