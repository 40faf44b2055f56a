package ehrenfest

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/lukaszgryglicki/ehrenfest/internal/logging"
)

var (
	logMu  sync.RWMutex
	logger = slog.New(slog.NewTextHandler(io.Discard, nil))
)

// SetLogger installs the logger used by the package log helpers. A nil logger
// silences the package.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	logMu.Lock()
	logger = l
	logMu.Unlock()
}

// Logger returns the currently installed logger.
func Logger() *slog.Logger {
	logMu.RLock()
	defer logMu.RUnlock()
	return logger
}

func DebugLog(format string, args ...interface{}) {
	Logger().Debug(fmt.Sprintf(format, args...))
}

// TraceLog logs below debug level (per fit iteration, per frame).
func TraceLog(format string, args ...interface{}) {
	l := Logger()
	if !l.Enabled(context.Background(), logging.LevelTrace) {
		return
	}
	l.Log(context.Background(), logging.LevelTrace, fmt.Sprintf(format, args...))
}
