// ABOUTME: Component loggers built on charmbracelet/log
// ABOUTME: Every logger carries a component prefix like the [Storage] tags of older log lines
package logging

import (
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/log"
)

var (
	mu     sync.Mutex
	output io.Writer = os.Stderr
	level            = log.InfoLevel
)

// New returns a logger for the named component
func New(component string) *log.Logger {
	mu.Lock()
	defer mu.Unlock()

	return log.NewWithOptions(output, log.Options{
		Prefix:          component,
		Level:           level,
		ReportTimestamp: true,
	})
}

// SetLevel sets the level for loggers created afterwards.
// Accepts debug, info, warn, error; anything else is an error.
func SetLevel(name string) error {
	lvl, err := log.ParseLevel(name)
	if err != nil {
		return err
	}
	mu.Lock()
	level = lvl
	mu.Unlock()
	return nil
}

// SetOutput redirects loggers created afterwards
func SetOutput(w io.Writer) {
	mu.Lock()
	output = w
	mu.Unlock()
}

// Discard returns a logger that drops everything, for tests and quiet mode
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}
