package logging

import (
	"path/filepath"
	"testing"
)

func TestInitLoggerAndLevelFallback(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "pdf2jpg.log")
	InitLogger(logFile, 1, 1, 1, false, "invalid")
	SetLogLevel("invalid")
	Info("hello", "k", "v")
	Warn("warn")
	Error("error")
}
