package logging

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

var state struct {
	sync.RWMutex
	logger zerolog.Logger
}

func init() {
	state.logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
}

// InitLogger configures the process logger. An empty file keeps output on
// stderr; otherwise a size-rotated file is used. Unknown levels fall back to
// info.
func InitLogger(file string, maxSizeMB, maxBackups, maxAgeDays int, compress bool, level string) {
	var w io.Writer = os.Stderr
	if file != "" {
		w = &lumberjack.Logger{
			Filename:   file,
			MaxSize:    maxSizeMB,
			MaxBackups: maxBackups,
			MaxAge:     maxAgeDays,
			Compress:   compress,
		}
	}

	state.Lock()
	state.logger = zerolog.New(w).With().Timestamp().Logger().Level(parseLevel(level))
	state.Unlock()
}

// SetLogLevel adjusts the level of the current logger without touching its
// output destination.
func SetLogLevel(level string) {
	state.Lock()
	state.logger = state.logger.Level(parseLevel(level))
	state.Unlock()
}

// SetLoggerForTest replaces the package logger. Tests only.
func SetLoggerForTest(l zerolog.Logger) {
	state.Lock()
	state.logger = l
	state.Unlock()
}

func parseLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

func current() zerolog.Logger {
	state.RLock()
	defer state.RUnlock()
	return state.logger
}

// withFields attaches alternating key/value pairs to the event. A trailing key
// without a value is dropped.
func withFields(e *zerolog.Event, kv []interface{}) *zerolog.Event {
	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			key = fmt.Sprint(kv[i])
		}
		e = e.Interface(key, kv[i+1])
	}
	return e
}

func Debug(msg string, kv ...interface{}) { withFields(current().Debug(), kv).Msg(msg) }

func Info(msg string, kv ...interface{}) { withFields(current().Info(), kv).Msg(msg) }

func Warn(msg string, kv ...interface{}) { withFields(current().Warn(), kv).Msg(msg) }

func Error(msg string, kv ...interface{}) { withFields(current().Error(), kv).Msg(msg) }
