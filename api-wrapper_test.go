package podpointclient

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWrapper(timeout time.Duration) *APIWrapper {
	return NewAPIWrapper(nil, timeout, zerolog.Nop())
}

func TestAPIWrapperAcceptsStatusInsideWindow(t *testing.T) {
	b := newTestBackend(t)
	b.respond(http.MethodGet, "/api/thing", http.StatusNoContent, "")

	resp, err := newTestWrapper(0).Get(context.Background(), b.server.URL+"/api/thing", nil, defaultHeaders(), ErrorKindAPI, DefaultStatusWindow)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Empty(t, resp.Body)
}

func TestAPIWrapperRejectsStatusOutsideWindow(t *testing.T) {
	b := newTestBackend(t)
	b.respond(http.MethodPost, "/google/verifyPassword", http.StatusUnauthorized, "foo error")

	_, err := newTestWrapper(0).Post(context.Background(), b.server.URL+"/google/verifyPassword", nil, []byte(`{}`), defaultHeaders(), ErrorKindAuth, StatusOnly(http.StatusOK))
	require.Error(t, err)

	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, http.StatusUnauthorized, authErr.Status)
	assert.Contains(t, err.Error(), "(401) - foo error")
}

func TestAPIWrapperErrorKindSelectsType(t *testing.T) {
	b := newTestBackend(t)
	b.respond(http.MethodPost, "/api/sessions", http.StatusForbidden, "denied")
	b.respond(http.MethodGet, "/api/pods", http.StatusInternalServerError, "boom")

	w := newTestWrapper(0)

	_, err := w.Post(context.Background(), b.server.URL+"/api/sessions", nil, nil, defaultHeaders(), ErrorKindSession, DefaultStatusWindow)
	var sessionErr *SessionError
	require.ErrorAs(t, err, &sessionErr)
	assert.Equal(t, http.StatusForbidden, sessionErr.Status)
	assert.Contains(t, err.Error(), "Session Error (403) - denied")

	_, err = w.Get(context.Background(), b.server.URL+"/api/pods", nil, defaultHeaders(), ErrorKindAPI, DefaultStatusWindow)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Contains(t, err.Error(), "API Error (500) - boom")
}

func TestAPIWrapperTimeout(t *testing.T) {
	b := newTestBackend(t)
	b.handle(http.MethodGet, "/api/slow", func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
	})

	target := b.server.URL + "/api/slow"
	_, err := newTestWrapper(50*time.Millisecond).Get(context.Background(), target, nil, defaultHeaders(), ErrorKindAPI, DefaultStatusWindow)
	require.Error(t, err)

	var connErr *ConnectionError
	require.ErrorAs(t, err, &connErr)
	assert.True(t, connErr.Timeout)
	assert.Contains(t, err.Error(), target)
}

func TestAPIWrapperTransportFailure(t *testing.T) {
	b := newTestBackend(t)
	target := b.server.URL + "/api/gone"
	b.server.Close()

	_, err := newTestWrapper(0).Get(context.Background(), target, nil, defaultHeaders(), ErrorKindAPI, DefaultStatusWindow)
	require.Error(t, err)

	var connErr *ConnectionError
	require.ErrorAs(t, err, &connErr)
	assert.Contains(t, err.Error(), target)
}

func TestAPIWrapperForwardsHeadersAndParams(t *testing.T) {
	b := newTestBackend(t)
	b.handle(http.MethodGet, "/api/pods", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer token-1", r.Header.Get("Authorization"))
		assert.Equal(t, jsonContentType, r.Header.Get("Content-Type"))
		assert.Equal(t, "5", r.URL.Query().Get("perpage"))
		w.Write([]byte(`{}`))
	})

	params := map[string][]string{"perpage": {"5"}}
	_, err := newTestWrapper(0).Get(context.Background(), b.server.URL+"/api/pods", params, authHeaders("token-1"), ErrorKindAPI, DefaultStatusWindow)
	require.NoError(t, err)
}
