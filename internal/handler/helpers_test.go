package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/PrathamSatpute/SkillSwap-Hackthon/internal/apperror"
	"github.com/PrathamSatpute/SkillSwap-Hackthon/internal/handler"
	"github.com/PrathamSatpute/SkillSwap-Hackthon/internal/metrics"
	"github.com/PrathamSatpute/SkillSwap-Hackthon/internal/repository/memory"
	"github.com/PrathamSatpute/SkillSwap-Hackthon/internal/service"
	"github.com/PrathamSatpute/SkillSwap-Hackthon/internal/store"
)

const (
	testJWTSecret = "test-secret-for-handler-tests-32-chars"
	testPassword  = "Secret1!pass"
)

type testEnv struct {
	srv   *httptest.Server
	store *store.Store
	deps  handler.Deps
}

func newTestEnv(t *testing.T, opts ...func(*handler.Deps)) *testEnv {
	t.Helper()
	st := store.New(memory.New(), store.WithHasher(store.NewBcryptHasher(bcrypt.MinCost)))
	require.NoError(t, st.Load(context.Background()))

	m := metrics.New()
	deps := handler.Deps{
		Auth:       service.NewAuthService(st, testJWTSecret, m),
		Directory:  service.NewDirectoryService(st),
		Swaps:      service.NewSwapService(st, m),
		Ratings:    service.NewRatingService(st),
		Admin:      service.NewAdminService(st),
		Broadcasts: service.NewBroadcaster(st, m),
		Errors:     apperror.NewHandler(nil, 0),
		Metrics:    m,
	}
	for _, opt := range opts {
		opt(&deps)
	}
	t.Cleanup(deps.Directory.Close)
	t.Cleanup(deps.Broadcasts.Close)

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, deps)
	srv := httptest.NewServer(handler.SecurityHeaders(mux))
	t.Cleanup(srv.Close)

	return &testEnv{srv: srv, store: st, deps: deps}
}

func newClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{Jar: jar}
}

// do sends body as JSON and decodes a JSON response into out when out is non-nil.
func (e *testEnv) do(t *testing.T, c *http.Client, method, path string, body, out any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(buf)
	}
	req, err := http.NewRequest(method, e.srv.URL+path, r)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

type userResponse struct {
	User handler.UserDTO `json:"user"`
}

type errorBody struct {
	Error string `json:"error"`
	Type  string `json:"type"`
	Code  string `json:"code"`
	Field string `json:"field"`
}

func registration(name, email string, offered ...map[string]any) map[string]any {
	if offered == nil {
		offered = []map[string]any{}
	}
	return map[string]any{
		"name":            name,
		"email":           email,
		"password":        testPassword,
		"confirmPassword": testPassword,
		"location":        "Berlin",
		"skillsOffered":   offered,
		"skillsWanted":    []map[string]any{},
		"availability":    []string{"Weekends Morning"},
	}
}

func skillJSON(name, category string) map[string]any {
	return map[string]any{
		"name":        name,
		"description": name + " lessons for every level",
		"level":       "Intermediate",
		"category":    category,
	}
}

// register signs up a member on a fresh client and returns both.
func (e *testEnv) register(t *testing.T, name, email string, offered ...map[string]any) (*http.Client, handler.UserDTO) {
	t.Helper()
	c := newClient(t)
	var out userResponse
	resp := e.do(t, c, http.MethodPost, "/api/auth/register", registration(name, email, offered...), &out)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return c, out.User
}

func (e *testEnv) loginAdmin(t *testing.T) *http.Client {
	t.Helper()
	c := newClient(t)
	resp := e.do(t, c, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    store.AdminEmail,
		"password": store.AdminPassword,
	}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	return c
}
