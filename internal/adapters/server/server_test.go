package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	postsrepo "github.com/bnema/stockboard-cli/internal/adapters/repo/posts"
	filestore "github.com/bnema/stockboard-cli/internal/adapters/storage/file"
	"github.com/bnema/stockboard-cli/internal/application"
	"github.com/bnema/stockboard-cli/internal/domain"
	"github.com/bnema/stockboard-cli/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, cfg Config) *Server {
	t.Helper()

	store, err := filestore.NewStore(filepath.Join(t.TempDir(), "storage.toml"))
	require.NoError(t, err)
	repo := postsrepo.NewRepository(store, postsrepo.DefaultKey, nil)

	if cfg.Rate == 0 {
		cfg.Rate = 100
	}
	if cfg.Burst == 0 {
		cfg.Burst = 100
	}

	return New(application.NewBoardService(repo, nil), cfg, nil)
}

func serve(s *Server, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func formPost(username, content string) *http.Request {
	form := url.Values{}
	form.Set("username", username)
	form.Set("post-content", content)
	req := httptest.NewRequest(http.MethodPost, "/posts", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func jsonPost(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/posts", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestIndexRendersEmptyBoardWithForm(t *testing.T) {
	s := newTestServer(t, Config{})

	rec := serve(s, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `id="discussion-form"`)
	assert.Contains(t, rec.Body.String(), `name="post-content"`)
	assert.NotContains(t, rec.Body.String(), `class="post"`)
}

func TestFormPostRedirectsAndPersists(t *testing.T) {
	s := newTestServer(t, Config{})

	rec := serve(s, formPost(" alice ", "AAPL to the moon"))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	rec = serve(s, formPost("bob", "<b>careful</b>"))
	require.Equal(t, http.StatusSeeOther, rec.Code)

	rec = serve(s, httptest.NewRequest(http.MethodGet, "/", nil))
	body := rec.Body.String()
	assert.Contains(t, body, "<h3>alice</h3>")
	assert.Contains(t, body, "&lt;b&gt;careful&lt;/b&gt;")
	assert.Less(t, strings.Index(body, "alice"), strings.Index(body, "bob"))
}

func TestFormPostValidationKeepsInput(t *testing.T) {
	s := newTestServer(t, Config{})

	rec := serve(s, formPost("alice", "   "))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), application.ValidationAlert)
	assert.Contains(t, rec.Body.String(), `value="alice"`)

	rec = serve(s, httptest.NewRequest(http.MethodGet, "/api/posts", nil))
	assert.JSONEq(t, `{"posts":[]}`, rec.Body.String())
}

func TestAPIPostsRoundTrip(t *testing.T) {
	s := newTestServer(t, Config{})

	rec := serve(s, jsonPost(`{"username":"alice","content":"first"}`))
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"username":"alice","content":"first"}`, rec.Body.String())

	rec = serve(s, jsonPost(`{"username":"bob","content":"second"}`))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = serve(s, httptest.NewRequest(http.MethodGet, "/api/posts", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var got postsJSON
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, []postJSON{
		{Username: "alice", Content: "first"},
		{Username: "bob", Content: "second"},
	}, got.Posts)
}

func TestAPIPostValidationError(t *testing.T) {
	s := newTestServer(t, Config{})

	rec := serve(s, jsonPost(`{"username":"","content":"x"}`))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.JSONEq(t, `{"error":"Please fill out both fields before submitting."}`, rec.Body.String())
}

func TestAPIPostRejectsMalformedJSON(t *testing.T) {
	s := newTestServer(t, Config{})

	rec := serve(s, jsonPost(`{"username":`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStorageFailureSurfacesAsServerError(t *testing.T) {
	repo := mocks.NewMockPostRepository(t)
	repo.EXPECT().List(mock.Anything).Return(nil, nil)
	repo.EXPECT().Append(mock.Anything, mock.Anything).Return(errors.New("quota exceeded"))
	s := New(application.NewBoardService(repo, nil), Config{Rate: 100, Burst: 100}, nil)

	rec := serve(s, formPost("alice", "hello"))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Your post could not be saved.")

	rec = serve(s, jsonPost(`{"username":"alice","content":"hello"}`))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "quota exceeded")
}

func TestCorruptStoreFailsIndex(t *testing.T) {
	repo := mocks.NewMockPostRepository(t)
	repo.EXPECT().List(mock.Anything).Return(nil, domain.ErrCorruptStore)
	s := New(application.NewBoardService(repo, nil), Config{Rate: 100, Burst: 100}, nil)

	rec := serve(s, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, Config{})

	rec := serve(s, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, rec.Body.String())
}

func TestPostRoutesAreRateLimited(t *testing.T) {
	s := newTestServer(t, Config{Rate: 1, Burst: 1})

	first := serve(s, jsonPost(`{"username":"a","content":"b"}`))
	assert.Equal(t, http.StatusCreated, first.Code)

	second := serve(s, jsonPost(`{"username":"a","content":"c"}`))
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Equal(t, "1", second.Header().Get("Retry-After"))

	reads := serve(s, httptest.NewRequest(http.MethodGet, "/api/posts", nil))
	assert.Equal(t, http.StatusOK, reads.Code, "reads are not limited")
}

func TestRateLimiterSweepDropsIdleClients(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	rl.getLimiter("1.2.3.4")
	now = now.Add(10 * time.Minute)
	rl.getLimiter("5.6.7.8")

	assert.Equal(t, 1, rl.Sweep(5*time.Minute))
}

func TestRunStopsOnContextCancel(t *testing.T) {
	s := newTestServer(t, Config{Listen: "127.0.0.1:0"})
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	require.Eventually(t, func() bool { return s.echo.ListenerAddr() != nil }, 5*time.Second, 10*time.Millisecond)

	resp, err := http.Get("http://" + s.echo.ListenerAddr().String() + "/health")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
