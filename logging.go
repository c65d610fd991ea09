package gridlist

import (
	"log/slog"
	"os"
	"sync"
)

var (
	loggerMu sync.RWMutex
	logger   = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
)

// SetLogger replaces the package logger. Passing nil restores the default
// stderr logger at warn level.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	}
	loggerMu.Lock()
	logger = l
	loggerMu.Unlock()
}

// Logger returns the package logger. Image loads log from worker goroutines,
// so access is locked.
func Logger() *slog.Logger {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	return logger
}
