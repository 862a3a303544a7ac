// Package logger is the diagnostic log for the pls pipeline. Output goes to
// stderr and is meant for troubleshooting, not for the user-facing renderer:
// Debug, Info and Warn are suppressed unless verbose mode is on (the
// --verbose wiring driven by PLS_DEBUG), while Error always prints.
package logger

import (
	"fmt"
	"log"
	"sort"
	"strings"
)

// StdLogger writes leveled lines with key=value fields in stable key order.
type StdLogger struct {
	verbose bool
}

// NewStd creates a StdLogger.
func NewStd(verbose bool) *StdLogger {
	return &StdLogger{verbose: verbose}
}

func (l *StdLogger) Debug(msg string, fields map[string]interface{}) {
	if l.verbose {
		l.print("DEBUG", msg, fields)
	}
}

func (l *StdLogger) Info(msg string, fields map[string]interface{}) {
	if l.verbose {
		l.print("INFO", msg, fields)
	}
}

func (l *StdLogger) Warn(msg string, fields map[string]interface{}) {
	if l.verbose {
		l.print("WARN", msg, fields)
	}
}

func (l *StdLogger) Error(msg string, err error, fields map[string]interface{}) {
	if err != nil {
		msg = msg + ": " + err.Error()
	}
	l.print("ERROR", msg, fields)
}

func (l *StdLogger) print(level, msg string, fields map[string]interface{}) {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s", level, msg)

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, fields[k])
	}
	log.Print(b.String())
}
