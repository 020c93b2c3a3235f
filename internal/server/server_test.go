package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandeepkv93/daygrid/internal/session"
	"github.com/sandeepkv93/daygrid/internal/storage"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	repo, err := storage.OpenSQLite(filepath.Join(t.TempDir(), "server.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })

	srv := New(repo, session.Tokens{"tok-alice": "alice", "tok-bob": "bob"}, zerolog.Nop())
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func call(t *testing.T, ts *httptest.Server, method, path, token string, body any) (*http.Response, []byte) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, ts.URL+path, &buf)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	var out bytes.Buffer
	_, err = out.ReadFrom(resp.Body)
	require.NoError(t, err)
	return resp, out.Bytes()
}

func TestHealthzNeedsNoToken(t *testing.T) {
	ts := newTestServer(t)
	resp, body := call(t, ts, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok"}`, string(body))
	assert.NotEmpty(t, resp.Header.Get("X-Request-Id"))
}

func TestAPIRejectsMissingOrUnknownToken(t *testing.T) {
	ts := newTestServer(t)
	for _, token := range []string{"", "tok-mallory"} {
		resp, body := call(t, ts, http.MethodGet, "/api/tasks", token, nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.JSONEq(t, `{"error":"unauthorized"}`, string(body))
	}
}

func TestInsertListAndDeleteDay(t *testing.T) {
	ts := newTestServer(t)

	resp, body := call(t, ts, http.MethodPost, "/api/tasks", "tok-alice", []storage.Row{
		{Title: "one", Date: "2024-06-10"},
		{Title: "two", Date: "2024-06-10", Completed: true},
		{Title: "three", Date: "2024-06-11"},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var inserted []storage.Row
	require.NoError(t, json.Unmarshal(body, &inserted))
	require.Len(t, inserted, 3)
	assert.Equal(t, "alice", inserted[0].UserID)
	assert.Positive(t, inserted[0].ID)

	resp, body = call(t, ts, http.MethodGet, "/api/tasks?date=2024-06-10", "tok-alice", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var day []storage.Row
	require.NoError(t, json.Unmarshal(body, &day))
	assert.Len(t, day, 2)

	resp, body = call(t, ts, http.MethodGet, "/api/tasks", "tok-bob", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `[]`, string(body))

	resp, body = call(t, ts, http.MethodDelete, "/api/tasks?date=2024-06-10", "tok-alice", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"deleted":2}`, string(body))

	resp, _ = call(t, ts, http.MethodDelete, "/api/tasks", "tok-alice", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetTaskScopedToOwner(t *testing.T) {
	ts := newTestServer(t)
	_, body := call(t, ts, http.MethodPost, "/api/tasks", "tok-alice", []storage.Row{{Title: "mine", Date: "2024-06-10"}})
	var inserted []storage.Row
	require.NoError(t, json.Unmarshal(body, &inserted))
	path := "/api/tasks/" + jsonNumber(inserted[0].ID)

	resp, _ := call(t, ts, http.MethodGet, path, "tok-alice", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = call(t, ts, http.MethodGet, path, "tok-bob", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = call(t, ts, http.MethodGet, "/api/tasks/abc", "tok-alice", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestReplaceDayEndpoint(t *testing.T) {
	ts := newTestServer(t)
	call(t, ts, http.MethodPost, "/api/tasks", "tok-alice", []storage.Row{
		{Title: "a", Date: "2024-06-10"},
		{Title: "b", Date: "2024-06-10"},
		{Title: "c", Date: "2024-06-10"},
	})

	resp, body := call(t, ts, http.MethodPut, "/api/days/2024-06-10", "tok-alice", []storage.Row{{Title: "only"}})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	resp, body = call(t, ts, http.MethodPut, "/api/days/2024-06-10", "tok-alice", []storage.Row{})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	assert.JSONEq(t, `[]`, string(body))

	_, body = call(t, ts, http.MethodGet, "/api/tasks?date=2024-06-10", "tok-alice", nil)
	assert.JSONEq(t, `[]`, string(body))
}

func TestRejectsInvalidRows(t *testing.T) {
	ts := newTestServer(t)
	cases := []struct {
		method, path string
		body         any
	}{
		{http.MethodPost, "/api/tasks", []storage.Row{{Title: " ", Date: "2024-06-10"}}},
		{http.MethodPost, "/api/tasks", []storage.Row{{Title: "x", Date: "tomorrow"}}},
		{http.MethodPost, "/api/tasks", map[string]any{"title": "not a list"}},
		{http.MethodPut, "/api/days/2024-06-10", []storage.Row{{Title: "x", Date: "2024-06-11"}}},
		{http.MethodPut, "/api/days/2024-13-40", []storage.Row{}},
		{http.MethodGet, "/api/tasks?date=junk", nil},
	}
	for _, tc := range cases {
		resp, body := call(t, ts, tc.method, tc.path, "tok-alice", tc.body)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "%s %s: %s", tc.method, tc.path, body)
	}
}

func TestInsertConflictingIDIs409(t *testing.T) {
	ts := newTestServer(t)
	_, body := call(t, ts, http.MethodPost, "/api/tasks", "tok-alice", []storage.Row{{Title: "a", Date: "2024-06-10"}})
	var inserted []storage.Row
	require.NoError(t, json.Unmarshal(body, &inserted))

	resp, _ := call(t, ts, http.MethodPost, "/api/tasks", "tok-bob", []storage.Row{{ID: inserted[0].ID, Title: "steal", Date: "2024-06-10"}})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestBearerToken(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "bearer  abc ")
	assert.Equal(t, "abc", bearerToken(r))

	r.Header.Set("Authorization", "Basic abc")
	assert.Equal(t, "", bearerToken(r))
}

func jsonNumber(n int64) string {
	b, _ := json.Marshal(n)
	return string(b)
}

type panickingStore struct {
	Store
}

func (panickingStore) SelectByOwner(context.Context, string, storage.RowFilter) ([]storage.Row, error) {
	panic("boom")
}

func TestPanicIsRecoveredAndAccessLogged(t *testing.T) {
	var logs bytes.Buffer
	srv := New(panickingStore{}, session.Tokens{"tok-alice": "alice"}, zerolog.New(&logs))

	req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
	req.Header.Set("Authorization", "Bearer tok-alice")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, logs.String(), `"message":"panic recovered"`)

	var access map[string]any
	for _, line := range bytes.Split(bytes.TrimSpace(logs.Bytes()), []byte("\n")) {
		var entry map[string]any
		require.NoError(t, json.Unmarshal(line, &entry))
		if entry["message"] == "http request" {
			access = entry
		}
	}
	require.NotNil(t, access, "expected an access log line")
	assert.EqualValues(t, http.StatusInternalServerError, access["status"])
	assert.Equal(t, "/api/tasks", access["path"])
}
