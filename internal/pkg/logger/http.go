package logger

import (
	"bytes"
	"io"
	log "log/slog"
	"net/http"
	"time"
)

const (
	httpBodyLimit     = 1000
	httpSlowThreshold = 5 * time.Second
)

// HTTPTransport logs outbound calls to external services, wraps Transport (nil = http.DefaultTransport)
type HTTPTransport struct {
	Transport http.RoundTripper
	Service   string
}

func (t *HTTPTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	next := t.Transport
	if next == nil {
		next = http.DefaultTransport
	}

	start := time.Now()
	resp, err := next.RoundTrip(req)
	elapsed := time.Since(start)

	fields := []any{
		log.String("service", t.Service),
		log.String("method", req.Method),
		log.String("url", req.URL.String()),
		log.Duration("latency", elapsed),
	}

	if err != nil {
		log.ErrorContext(req.Context(), "HTTP_CALL_ERROR", append(fields, log.Any("err", err))...)
		return nil, err
	}

	fields = append(fields, log.Int("status", resp.StatusCode))

	if resp.StatusCode >= http.StatusBadRequest && resp.Body != nil {
		body, _ := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		resp.Body = io.NopCloser(bytes.NewBuffer(body))
		log.WarnContext(req.Context(), "HTTP_CALL_FAILED", append(fields, log.String("res_body", truncate(string(body), httpBodyLimit)))...)
		return resp, nil
	}

	if elapsed > httpSlowThreshold {
		log.WarnContext(req.Context(), "HTTP_CALL_SLOW", fields...)
	} else {
		log.InfoContext(req.Context(), "HTTP_CALL", fields...)
	}
	return resp, nil
}
