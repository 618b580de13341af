package relgen

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/dustin/go-humanize"
)

// Logger is a thin wrapper over the standard library's log.Logger:
// level-prefixed plain text to stderr, no structured logging framework.
type Logger struct {
	std *log.Logger
}

// NewLogger returns a Logger writing to stderr with no extra timestamp
// prefix (run timing is reported by Summary).
func NewLogger() *Logger {
	return &Logger{std: log.New(os.Stderr, "", 0)}
}

func (l *Logger) Infof(format string, args ...any) {
	l.std.Printf("INFO  "+format, args...)
}

func (l *Logger) Warnf(format string, args ...any) {
	l.std.Printf("WARN  "+format, args...)
}

func (l *Logger) Errorf(format string, args ...any) {
	l.std.Printf("ERROR "+format, args...)
}

// Summary logs a one-line run summary using humanized counts and the
// elapsed time rounded to the millisecond.
func (l *Logger) Summary(tableCount, rowCount int, elapsed time.Duration) {
	l.Infof("generated %s row(s) across %s table(s) in %s",
		humanize.Comma(int64(rowCount)), humanize.Comma(int64(tableCount)), elapsed.Round(time.Millisecond))
}

func (l *Logger) SeedChosen(seed uint32) {
	l.Infof("no seed provided, auto-selected seed %d", seed)
}

func (l *Logger) CheckIgnored(table, expr string) {
	l.Warnf("table %s: CHECK (%s) is not a recognized pattern and will not be enforced", table, fmt.Sprint(expr))
}
