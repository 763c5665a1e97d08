package logger

import (
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/lmittmann/tint"
	"golang.org/x/term"
)

var (
	log  *slog.Logger
	once sync.Once
)

const DateTimeMilli = "2006-01-02 15:04:05.000"

// Init sets up the global logger at the given level.
// level: debug|info|warn|error
func Init(level string) {
	lvl := slog.LevelInfo
	logLevelStr := strings.ToLower(strings.TrimSpace(level))

	switch logLevelStr {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	}

	handler := tint.NewHandler(os.Stdout, &tint.Options{
		AddSource:  logLevelStr == "debug",
		Level:      lvl,
		NoColor:    os.Getenv("NO_COLOR") != "" || !isTerminalColorSupported(),
		TimeFormat: DateTimeMilli,
	})

	log = slog.New(handler)
}

// isTerminalColorSupported checks if terminal supports color output
func isTerminalColorSupported() bool {
	fd := os.Stdout.Fd()
	// Ensure the file descriptor is within the valid int range
	if fd > uintptr(^uint(0)>>1) {
		return false // File descriptor too large, assume not a terminal
	}
	return term.IsTerminal(int(fd))
}

// ensure initializes the default logger on first access if Init was never
// called explicitly.
func ensure() {
	once.Do(func() {
		if log == nil {
			Init("info")
		}
	})
}

// Log returns the global logger.
func Log() *slog.Logger {
	ensure()
	return log
}

// Helper wrappers
func Debug(msg string, args ...any) { Log().Debug(msg, args...) }
func Info(msg string, args ...any)  { Log().Info(msg, args...) }
func Warn(msg string, args ...any)  { Log().Warn(msg, args...) }
func Error(msg string, args ...any) { Log().Error(msg, args...) }
