package logging

import (
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
)

var (
	mu     sync.Mutex
	output io.Writer = os.Stderr
	forced atomic.Bool
)

// DebugEnabled returns true if debug mode is enabled via DL_DEBUG environment
// variable or SetDebug.
func DebugEnabled() bool {
	return forced.Load() || os.Getenv("DL_DEBUG") != ""
}

// SetDebug turns debug output on regardless of DL_DEBUG.
func SetDebug(on bool) {
	forced.Store(on)
}

// SetOutput redirects log output and returns the previous writer.
func SetOutput(w io.Writer) io.Writer {
	mu.Lock()
	defer mu.Unlock()
	prev := output
	output = w
	return prev
}

// Debugf prints a formatted debug message only if debug mode is enabled
func Debugf(format string, args ...interface{}) {
	if DebugEnabled() {
		write("debug: " + fmt.Sprintf(format, args...))
	}
}

// Debugln prints a debug message followed by a newline only if debug mode is enabled
func Debugln(args ...interface{}) {
	if DebugEnabled() {
		write("debug: " + fmt.Sprintln(args...))
	}
}

// Warnf prints a formatted warning regardless of debug mode.
func Warnf(format string, args ...interface{}) {
	write("warning: " + fmt.Sprintf(format, args...))
}

func write(line string) {
	if len(line) == 0 || line[len(line)-1] != '\n' {
		line += "\n"
	}
	mu.Lock()
	defer mu.Unlock()
	io.WriteString(output, line)
}
