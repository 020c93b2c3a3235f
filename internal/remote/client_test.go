package remote

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandeepkv93/daygrid/internal/calendar"
	"github.com/sandeepkv93/daygrid/internal/model"
	"github.com/sandeepkv93/daygrid/internal/server"
	"github.com/sandeepkv93/daygrid/internal/session"
	"github.com/sandeepkv93/daygrid/internal/storage"
	"github.com/sandeepkv93/daygrid/internal/tasks"
)

func newClient(t *testing.T, token string) *Client {
	t.Helper()
	repo, err := storage.OpenSQLite(filepath.Join(t.TempDir(), "remote.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })

	ts := httptest.NewServer(server.New(repo, session.Tokens{"tok": "alice"}, zerolog.Nop()).Handler())
	t.Cleanup(ts.Close)

	c, err := New(ts.URL+"/", token, WithHTTPClient(ts.Client()))
	require.NoError(t, err)
	return c
}

func TestClientRowsRoundTrip(t *testing.T) {
	ctx := context.Background()
	c := newClient(t, "tok")
	require.NoError(t, c.Health(ctx))

	inserted, err := c.BulkInsert(ctx, "ignored", []storage.Row{
		{Title: "a", Date: "2024-06-10"},
		{Title: "b", Date: "2024-06-11", Description: "notes"},
	})
	require.NoError(t, err)
	require.Len(t, inserted, 2)

	got, err := c.GetRow(ctx, "", inserted[1].ID)
	require.NoError(t, err)
	assert.Equal(t, "notes", got.Description)

	day, err := c.SelectByOwner(ctx, "", storage.RowFilter{Date: "2024-06-10"})
	require.NoError(t, err)
	assert.Len(t, day, 1)

	n, err := c.DeleteByOwnerAndDate(ctx, "", "2024-06-10")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	replaced, err := c.ReplaceDay(ctx, "", "2024-06-11", nil)
	require.NoError(t, err)
	assert.Empty(t, replaced)

	all, err := c.SelectByOwner(ctx, "", storage.RowFilter{})
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestClientMapsStatusErrors(t *testing.T) {
	ctx := context.Background()

	_, err := newClient(t, "wrong").SelectByOwner(ctx, "", storage.RowFilter{})
	var serr *StatusError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, http.StatusUnauthorized, serr.Code)
	assert.Equal(t, "unauthorized", serr.Message)

	_, err = newClient(t, "tok").GetRow(ctx, "", 999)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestNewRejectsBadURL(t *testing.T) {
	_, err := New("ftp://example.com", "tok")
	assert.Error(t, err)
	_, err = New("://", "tok")
	assert.Error(t, err)
}

func TestStoreOverRemoteClient(t *testing.T) {
	ctx := context.Background()
	c := newClient(t, "tok")
	store := tasks.NewStore(tasks.NewRowBackend(c, zerolog.Nop()), session.Static{User: "alice"}, zerolog.Nop())
	key := calendar.Key("2024-06-10")

	require.NoError(t, store.Load(ctx))
	task, err := store.Add(key, "remote task", "")
	require.NoError(t, err)
	require.True(t, task.ID.IsPending())
	require.NoError(t, store.Commit(ctx, key))

	day := store.Day(key)
	require.Len(t, day, 1)
	assert.False(t, day[0].ID.IsPending())

	_, err = store.Toggle(key, day[0].ID)
	require.NoError(t, err)
	require.NoError(t, store.Commit(ctx, key))

	after := store.Day(key)
	require.Len(t, after, 1)
	assert.True(t, after[0].Completed)
	assert.Equal(t, day[0].ID, after[0].ID)

	require.NoError(t, store.ReplaceDay(ctx, key, []model.Task{}))
	assert.Empty(t, store.Day(key))
}
