package podpointclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const DefaultTimeout = 10 * time.Second

// ErrorKind selects which error type the wrapper raises when a response falls
// outside the accepted status window.
type ErrorKind int

const (
	ErrorKindAPI ErrorKind = iota
	ErrorKindAuth
	ErrorKindSession
)

// StatusWindow is the inclusive range of status codes a call site accepts.
type StatusWindow struct {
	Min int
	Max int
}

func (w StatusWindow) contains(status int) bool {
	return status >= w.Min && status <= w.Max
}

// DefaultStatusWindow matches the historical 200-204 acceptance range.
var DefaultStatusWindow = StatusWindow{Min: http.StatusOK, Max: http.StatusNoContent}

// StatusOnly narrows the accepted window to a single status code.
func StatusOnly(status int) StatusWindow {
	return StatusWindow{Min: status, Max: status}
}

// APIResponse is a fully-read response: status plus body bytes.
type APIResponse struct {
	StatusCode int
	Body       []byte
}

func (r *APIResponse) JSON(v any) error {
	return json.Unmarshal(r.Body, v)
}

// APIWrapper issues exactly one HTTP call per invocation and classifies
// failures into the client's error taxonomy. It never retries.
type APIWrapper struct {
	client  *http.Client
	timeout time.Duration
	logger  zerolog.Logger
}

func NewAPIWrapper(client *http.Client, timeout time.Duration, logger zerolog.Logger) *APIWrapper {
	if client == nil {
		client = &http.Client{}
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &APIWrapper{client: client, timeout: timeout, logger: logger}
}

func (w *APIWrapper) Get(ctx context.Context, rawURL string, params url.Values, headers http.Header, kind ErrorKind, window StatusWindow) (*APIResponse, error) {
	return w.do(ctx, http.MethodGet, rawURL, params, nil, headers, kind, window)
}

func (w *APIWrapper) Put(ctx context.Context, rawURL string, params url.Values, body []byte, headers http.Header, kind ErrorKind, window StatusWindow) (*APIResponse, error) {
	return w.do(ctx, http.MethodPut, rawURL, params, body, headers, kind, window)
}

func (w *APIWrapper) Post(ctx context.Context, rawURL string, params url.Values, body []byte, headers http.Header, kind ErrorKind, window StatusWindow) (*APIResponse, error) {
	return w.do(ctx, http.MethodPost, rawURL, params, body, headers, kind, window)
}

func (w *APIWrapper) Delete(ctx context.Context, rawURL string, params url.Values, headers http.Header, kind ErrorKind, window StatusWindow) (*APIResponse, error) {
	return w.do(ctx, http.MethodDelete, rawURL, params, nil, headers, kind, window)
}

func (w *APIWrapper) do(ctx context.Context, method string, rawURL string, params url.Values, body []byte, headers http.Header, kind ErrorKind, window StatusWindow) (*APIResponse, error) {
	target := rawURL
	if len(params) > 0 {
		sep := "?"
		if strings.Contains(rawURL, "?") {
			sep = "&"
		}
		target = rawURL + sep + params.Encode()
	}

	ctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, &ConnectionError{URL: target, Cause: err}
	}
	for key, values := range headers {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}

	start := time.Now()
	w.logger.Debug().
		Str("method", method).
		Str("url", target).
		Str("params", params.Encode()).
		Bytes("body", body).
		Msg("pod point request")

	resp, err := w.client.Do(req)
	if err != nil {
		return nil, classifyTransportError(target, err)
	}
	if resp == nil {
		return nil, &APIError{Message: "Unexpected error from Pod Point API. Received a nil response when querying."}
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, classifyTransportError(target, err)
	}

	w.logger.Debug().
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("pod point response")

	if !window.contains(resp.StatusCode) {
		return nil, newStatusError(kind, resp.StatusCode, string(responseBody))
	}

	return &APIResponse{StatusCode: resp.StatusCode, Body: responseBody}, nil
}

func newStatusError(kind ErrorKind, status int, body string) error {
	switch kind {
	case ErrorKindAuth:
		return &AuthError{Status: status, Body: body}
	case ErrorKindSession:
		return &SessionError{Status: status, Body: body}
	default:
		return &APIError{Message: fmt.Sprintf("API Error (%d) - %s", status, body)}
	}
}

func classifyTransportError(target string, err error) error {
	var netErr net.Error
	timeout := errors.Is(err, context.DeadlineExceeded) ||
		(errors.As(err, &netErr) && netErr.Timeout())
	return &ConnectionError{URL: target, Cause: err, Timeout: timeout}
}
