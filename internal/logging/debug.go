package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"
	"sync/atomic"
)

var (
	mu     sync.Mutex
	out    io.Writer = os.Stderr
	logger           = log.New(os.Stderr, "cc: ", log.LstdFlags)
)

var verbose atomic.Bool

// SetOutput redirects debug, info and error output. Tests use it to capture lines.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	out = w
	logger.SetOutput(w)
}

// SetVerbose turns debug output on regardless of CC_DEBUG
func SetVerbose(on bool) {
	verbose.Store(on)
}

// DebugEnabled returns true if debug mode is enabled via SetVerbose or the CC_DEBUG environment variable
func DebugEnabled() bool {
	return verbose.Load() || os.Getenv("CC_DEBUG") != ""
}

// Debugf prints a formatted debug message only if debug mode is enabled
func Debugf(format string, args ...interface{}) {
	if DebugEnabled() {
		mu.Lock()
		defer mu.Unlock()
		fmt.Fprintf(out, format, args...)
	}
}

// Debugln prints a debug message followed by a newline only if debug mode is enabled
func Debugln(args ...interface{}) {
	if DebugEnabled() {
		mu.Lock()
		defer mu.Unlock()
		fmt.Fprintln(out, args...)
	}
}

// Infof logs an informational line with timestamp
func Infof(format string, args ...interface{}) {
	logger.Printf(format, args...)
}

// Errorf logs an error line with timestamp
func Errorf(format string, args ...interface{}) {
	logger.Printf("error: "+format, args...)
}
