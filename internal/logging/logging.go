// Package logging formats the timestamped log lines printed by the driver.
package logging

import (
	"fmt"
	"io"
	"time"
)

const (
	LevelInfo  = "INFO"
	LevelWarn  = "WARNING"
	LevelError = "ERROR"

	timeLayout = "2006-01-02 15:04:05"
)

// Format renders a log line as "[<timestamp>] [<level>] <text>".
func Format(level, text string) string {
	return FormatAt(time.Now(), level, text)
}

func FormatAt(t time.Time, level, text string) string {
	return fmt.Sprintf("[%s] [%s] %s", t.Format(timeLayout), level, text)
}

func Logf(w io.Writer, level, format string, args ...any) {
	fmt.Fprintln(w, Format(level, fmt.Sprintf(format, args...)))
}
