// Package middleware holds the HTTP middleware of the command surface:
// gzip response compression and per-request identifiers.
package middleware

import (
	"compress/gzip"
	"net/http"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// RequestIDHeader carries the request identifier assigned by WithRequestID.
const RequestIDHeader = "X-Request-Id"

// WithRequestID assigns a fresh UUID to every request lacking one and
// echoes it in the response headers.
func WithRequestID(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
			r.Header.Set(RequestIDHeader, requestID)
		}
		w.Header().Set(RequestIDHeader, requestID)

		h.ServeHTTP(w, r)
	})
}

var gzipWriterPool = sync.Pool{
	New: func() interface{} {
		w, _ := gzip.NewWriterLevel(nil, gzip.BestSpeed)
		return w
	},
}

type gzippedResponseWriter struct {
	w  http.ResponseWriter
	zw *gzip.Writer
}

func (g *gzippedResponseWriter) Header() http.Header {
	return g.w.Header()
}

func (g *gzippedResponseWriter) WriteHeader(statusCode int) {
	g.w.WriteHeader(statusCode)
}

func (g *gzippedResponseWriter) Write(p []byte) (int, error) {
	return g.zw.Write(p)
}

func (g *gzippedResponseWriter) close() error {
	err := g.zw.Close()
	if err != nil {
		return err
	}
	gzipWriterPool.Put(g.zw)
	return nil
}

// GzipResponse compresses the response body for clients announcing gzip
// support in Accept-Encoding.
func GzipResponse(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.Header.Get("Accept-Encoding"), "gzip") {
			h.ServeHTTP(w, r)
			return
		}

		zw := gzipWriterPool.Get().(*gzip.Writer)
		zw.Reset(w)

		// The body goes through the compressor whatever the status is,
		// so the encoding header is set up front.
		w.Header().Set("Content-Encoding", "gzip")

		gzipped := &gzippedResponseWriter{w: w, zw: zw}
		defer gzipped.close()

		h.ServeHTTP(gzipped, r)
	})
}
