package cmdapi

import (
	"io"
	"log/slog"

	"github.com/charmbracelet/log"
)

// newLogger returns a slog logger backed by a charmbracelet handler.
func newLogger(w io.Writer, level string) (*slog.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	h := log.NewWithOptions(w, log.Options{
		Level:           lvl,
		Prefix:          "aon",
		ReportTimestamp: false,
	})
	return slog.New(h), nil
}
