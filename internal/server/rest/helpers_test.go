package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/taskflow/internal/logging"
	"github.com/dmitrijs2005/taskflow/internal/server/auth"
	"github.com/dmitrijs2005/taskflow/internal/server/config"
	"github.com/dmitrijs2005/taskflow/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/taskflow/internal/server/services"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testOrigin = "http://localhost:5173"

type testClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

type fixture struct {
	server *Server
	ts     *httptest.Server
	clock  *testClock
	tokens *auth.TokenService
}

func testConfig() *config.Config {
	c := &config.Config{}
	c.LoadDefaults()
	c.StorageDriver = config.DriverMemory
	c.SecretKey = "test-secret-test-secret-test-secret"
	c.CORSAllowedOrigins = []string{testOrigin}
	c.Environment = "test"
	return c
}

// newFixture runs the full stack over the in-memory backend.
func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()

	clock := &testClock{t: time.Now()}
	tokens, err := auth.NewTokenService("test-secret-test-secret-test-secret", time.Hour, auth.WithClock(clock.Now))
	require.NoError(t, err)

	m := repomanager.NewInMemoryRepositoryManager()
	users := services.NewUserService(m, auth.NewBcryptHasher(bcrypt.MinCost))
	tasks := services.NewTaskService(m)

	s := NewServer(testConfig(), logging.NewNopLogger(), users, tasks, tokens, m, opts...)
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)

	return &fixture{server: s, ts: ts, clock: clock, tokens: tokens}
}

type response struct {
	status int
	header http.Header
	body   []byte
}

func (r response) decode(t *testing.T, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(r.body, v), "body: %s", r.body)
}

func (f *fixture) do(t *testing.T, method, path, token string, body any) response {
	t.Helper()

	var rdr io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		rdr = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		rdr = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(context.Background(), method, f.ts.URL+path, rdr)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := f.ts.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return response{status: resp.StatusCode, header: resp.Header, body: raw}
}

// register creates an account and returns its token.
func (f *fixture) register(t *testing.T, name string) string {
	t.Helper()
	resp := f.do(t, http.MethodPost, "/auth/register", "", map[string]string{
		"username": name,
		"email":    name + "@example.com",
		"password": "pw123456",
	})
	require.Equal(t, http.StatusOK, resp.status, "body: %s", resp.body)

	var tok tokenResponse
	resp.decode(t, &tok)
	require.NotEmpty(t, tok.Token)
	return tok.Token
}

func (f *fixture) login(t *testing.T, name string) string {
	t.Helper()
	resp := f.do(t, http.MethodPost, "/auth/login", "", map[string]string{
		"email":    name + "@example.com",
		"password": "pw123456",
	})
	require.Equal(t, http.StatusOK, resp.status, "body: %s", resp.body)

	var tok tokenResponse
	resp.decode(t, &tok)
	return tok.Token
}
