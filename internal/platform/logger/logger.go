package logger

import (
	"log"
	"os"
)

// New returns a basic stdout logger; swap in structured logging when needed.
// Callers must route any profile-bearing payload through pkg/phi before
// handing it to the logger.
func New() *log.Logger {
	return log.New(os.Stdout, "", log.LstdFlags)
}
