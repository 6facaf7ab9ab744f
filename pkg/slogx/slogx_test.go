package slogx_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rutsatz/algamoney-api/pkg/slogx"
	"github.com/stretchr/testify/require"
)

func newBufferedLogger(t *testing.T) (*slog.Logger, *bytes.Buffer) {
	t.Helper()

	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	logger := slogx.New(slogx.Config{
		Service: "algamoney-api",
		Version: "test",
		Env:     "test",
		Level:   "debug",
		Format:  "json",
		Output:  &buf,
	})
	return logger, &buf
}

func lastLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	var line map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[len(lines)-1]), &line))
	return line
}

func TestHTTPMiddleware(t *testing.T) {
	logger, buf := newBufferedLogger(t)

	var scoped bool
	mux := http.NewServeMux()
	mux.HandleFunc("GET /categorias/{codigo}", func(w http.ResponseWriter, r *http.Request) {
		scoped = slogx.FromContext(r.Context()) != logger
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short and stout"))
	})
	h := slogx.HTTPMiddleware(logger)(mux)

	req := httptest.NewRequest(http.MethodGet, "/categorias/3", nil)
	req.Header.Set(slogx.RequestIDHeader, "req-42")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.True(t, scoped, "handler should see the request scoped logger")
	require.Equal(t, "req-42", rec.Header().Get(slogx.RequestIDHeader))

	line := lastLine(t, buf)
	require.Equal(t, "http_request", line["msg"])
	require.Equal(t, "WARN", line["level"])
	require.Equal(t, "req-42", line["req_id"])
	require.Equal(t, "GET /categorias/{codigo}", line["route"])
	require.EqualValues(t, http.StatusTeapot, line["status"])
	require.EqualValues(t, len("short and stout"), line["bytes"])

	app, ok := line["app"].(map[string]any)
	require.True(t, ok, "app group missing: %v", line)
	require.Equal(t, "algamoney-api", app["service"])
}

func TestHTTPMiddlewareRequestID(t *testing.T) {
	logger, _ := newBufferedLogger(t)
	h := slogx.HTTPMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	for name, incoming := range map[string]string{
		"missing":      "",
		"too long":     strings.Repeat("a", 65),
		"control char": "abc\x01def",
		"space":        "abc def",
	} {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if incoming != "" {
				req.Header.Set(slogx.RequestIDHeader, incoming)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			got := rec.Header().Get(slogx.RequestIDHeader)
			require.Len(t, got, 26)
			require.NotEqual(t, incoming, got)
		})
	}
}

func TestHTTPMiddlewareServerErrorLevel(t *testing.T) {
	logger, buf := newBufferedLogger(t)
	h := slogx.HTTPMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	line := lastLine(t, buf)
	require.Equal(t, "ERROR", line["level"])
	require.NotContains(t, line, "route")
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"loud":    slog.LevelInfo,
	}
	for in, want := range tests {
		require.Equal(t, want, slogx.ParseLevel(in), "input %q", in)
	}
}

func TestFromContextDefault(t *testing.T) {
	require.Equal(t, slog.Default(), slogx.FromContext(context.Background()))
}
