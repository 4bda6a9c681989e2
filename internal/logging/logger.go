package logging

import (
	"log/slog"
	"os"
)

// NewLogger returns a slog logger writing JSON lines tagged with the service name.
func NewLogger(service string) *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{AddSource: true})
	return slog.New(handler).With(slog.String("service", service))
}
