package podpointclient

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/mux"
)

const (
	TestEmail    = "test@example.com"
	TestPassword = "pw"
)

type MockTime struct {
	CurTime time.Time
}

func (m *MockTime) UTCNow() time.Time {
	return m.CurTime
}

func NewMockTime() *MockTime {
	return &MockTime{CurTime: time.Now().UTC()}
}

// testBackend hosts the Google identity fixtures and the Pod Point API
// fixtures on a single httptest server, split by path prefix.
type testBackend struct {
	router *mux.Router
	server *httptest.Server
}

func newTestBackend(t *testing.T) *testBackend {
	t.Helper()
	router := mux.NewRouter()
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return &testBackend{router: router, server: server}
}

func (b *testBackend) endpoints() Endpoints {
	return Endpoints{
		APIBase:         b.server.URL + "/api",
		GoogleBase:      b.server.URL + "/google",
		GoogleTokenBase: b.server.URL + "/securetoken",
	}
}

// respond registers a fixed JSON response for method+path and returns a call
// counter.
func (b *testBackend) respond(method string, path string, status int, body string) *int32 {
	calls := new(int32)
	b.router.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(calls, 1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		io.WriteString(w, body)
	}).Methods(method)
	return calls
}

// handle registers an arbitrary handler for method+path and returns a call
// counter.
func (b *testBackend) handle(method string, path string, handler http.HandlerFunc) *int32 {
	calls := new(int32)
	b.router.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(calls, 1)
		handler(w, r)
	}).Methods(method)
	return calls
}

type authCounters struct {
	auth    *int32
	session *int32
}

// stubHappyAuth wires the password grant and the session exchange with the
// canonical fixtures: token "T", refresh token "R", 100s TTL, session "S"
// for user "U".
func (b *testBackend) stubHappyAuth() authCounters {
	return authCounters{
		auth:    b.respond(http.MethodPost, "/google/verifyPassword", http.StatusOK, `{"idToken":"T","refreshToken":"R","expiresIn":"100"}`),
		session: b.respond(http.MethodPost, "/api/sessions", http.StatusOK, `{"sessions":{"id":"S","user_id":"U"}}`),
	}
}

func newTestClient(b *testBackend, clock Time, opts ...Option) *PodPointClient {
	base := []Option{WithEndpoints(b.endpoints()), WithClock(clock)}
	return NewPodPointClient(TestEmail, TestPassword, append(base, opts...)...)
}

func calls(counter *int32) int {
	return int(atomic.LoadInt32(counter))
}
