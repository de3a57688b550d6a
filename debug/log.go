package debug

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/log"
)

var logger atomic.Pointer[log.Logger]

func init() {
	SetOutput(os.Stderr)
}

func newLogger(w io.Writer) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           log.DebugLevel,
		Prefix:          "jsondoc",
	})
}

// SetOutput redirects debug output, mostly for tests.
func SetOutput(w io.Writer) {
	logger.Store(newLogger(w))
}

func Logger() *log.Logger {
	return logger.Load()
}

// Logf logs at debug level. Callers check the relevant switch first, so
// Logf itself always writes.
func Logf(msg string, args ...any) {
	Logger().Debug(strings.TrimRight(fmt.Sprintf(msg, args...), "\n"))
}

// Warnf is for conditions a caller opted in to hearing about, such as
// recoverable parse errors.
func Warnf(msg string, args ...any) {
	Logger().Warn(strings.TrimRight(fmt.Sprintf(msg, args...), "\n"))
}
