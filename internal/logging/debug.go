package logging

import (
	"fmt"
	"io"
	"os"
)

// Output is where debug lines are written. Tests may swap it.
var Output io.Writer = os.Stderr

// DebugEnabled returns true if debug mode is enabled via TIM_DEBUG environment variable
func DebugEnabled() bool {
	return os.Getenv("TIM_DEBUG") != ""
}

// Debugf prints a formatted debug message only if debug mode is enabled
func Debugf(format string, args ...interface{}) {
	if DebugEnabled() {
		fmt.Fprintf(Output, "debug: "+format+"\n", args...)
	}
}

// Debugln prints a debug message followed by a newline only if debug mode is enabled
func Debugln(args ...interface{}) {
	if DebugEnabled() {
		fmt.Fprintln(Output, append([]interface{}{"debug:"}, args...)...)
	}
}

// Warnf prints a warning to stderr. Warnings are always shown.
func Warnf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Warning: "+format+"\n", args...)
}
