package shared

import (
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// SetupLogger configures a charmbracelet logger writing to w. format is
// "text" or "json".
func SetupLogger(w io.Writer, debug bool, format string) *log.Logger {
	level := log.InfoLevel
	if debug {
		level = log.DebugLevel
	}

	opts := log.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
	}
	if format == "json" {
		opts.Formatter = log.JSONFormatter
		opts.TimeFormat = time.RFC3339Nano
	}
	return log.NewWithOptions(w, opts)
}

// SetupFileLogger logs to filename, for when the terminal belongs to the TUI.
func SetupFileLogger(filename string, debug bool, format string) (*log.Logger, io.Closer, error) {
	f, err := os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return SetupLogger(f, debug, format), f, nil
}
