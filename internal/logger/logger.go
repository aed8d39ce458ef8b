// Package logger provides structured logging for the board
// using the Uber zap library, plus the HTTP access-log middleware
// of the command surface.
package logger

import (
	"errors"
	"net/http"
	"os"
	"time"

	"go.uber.org/zap"
)

// Log is the global SugaredLogger instance. It must be initialized via
// Init() before first use.
var Log *zap.SugaredLogger = zap.NewNop().Sugar()

// Init configures the global logger with the given level.
func Init(level string) error {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return err
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.Level = lvl
	zl, err := cfg.Build()
	if err != nil {
		return err
	}
	Log = zl.Sugar()

	return nil
}

// Sync flushes buffered log entries; call it on shutdown.
func Sync() error {
	if err := Log.Sync(); err != nil && !errors.Is(err, os.ErrInvalid) {
		return err
	}

	return nil
}

type capturedResponse struct {
	status int
	size   int
}

type capturingResponseWriter struct {
	http.ResponseWriter
	captured *capturedResponse
}

func (w *capturingResponseWriter) Write(b []byte) (int, error) {
	size, err := w.ResponseWriter.Write(b)
	w.captured.size += size
	return size, err
}

func (w *capturingResponseWriter) WriteHeader(statusCode int) {
	w.ResponseWriter.WriteHeader(statusCode)
	w.captured.status = statusCode
}

// WithLoggingHTTPMiddleware logs method, URI, status, duration and
// response size of every handled request.
func WithLoggingHTTPMiddleware(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		captured := &capturedResponse{}
		h.ServeHTTP(&capturingResponseWriter{ResponseWriter: w, captured: captured}, r)

		Log.Infoln(
			"uri", r.RequestURI,
			"method", r.Method,
			"status", captured.status,
			"duration", time.Since(start),
			"size", captured.size,
		)
	})
}
