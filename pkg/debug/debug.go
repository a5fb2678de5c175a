// Package debug provides conditional debug logging for gv.
//
// Debug logging is enabled by setting the GV_DEBUG environment variable.
// GV_DEBUG=1 writes to stderr; any other value is treated as a file path,
// which is the useful form while the TUI owns the terminal:
//
//	GV_DEBUG=/tmp/gv.log gv graph.json
//
// When disabled (default), all debug functions are no-ops.
package debug

import (
	"log"
	"os"
	"time"
)

var (
	enabled bool
	logger  *log.Logger
)

func init() {
	target := os.Getenv("GV_DEBUG")
	if target == "" {
		return
	}
	out := os.Stderr
	if target != "1" {
		f, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return
		}
		out = f
	}
	enabled = true
	logger = log.New(out, "[GV_DEBUG] ", log.Ltime|log.Lmicroseconds)
}

// Enabled returns whether debug logging is enabled.
func Enabled() bool {
	return enabled
}

// SetEnabled allows programmatic control of debug logging.
func SetEnabled(e bool) {
	enabled = e
	if e && logger == nil {
		logger = log.New(os.Stderr, "[GV_DEBUG] ", log.Ltime|log.Lmicroseconds)
	}
}

// Log writes a debug message if debug logging is enabled.
// Uses printf-style formatting.
func Log(format string, args ...any) {
	if !enabled {
		return
	}
	logger.Printf(format, args...)
}

// LogTiming writes a timing message if debug logging is enabled.
func LogTiming(name string, d time.Duration) {
	if !enabled {
		return
	}
	logger.Printf("%s took %v", name, d)
}
