package session

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retailpulse/retailpulse/internal/aggregate"
)

func newRedisStore(t *testing.T) *SelectionStore {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewSelectionStore(client, "rp_session", time.Hour, false)
}

func TestSaveAndLoadSelection(t *testing.T) {
	store := newRedisStore(t)
	ctx := context.Background()

	filter := aggregate.Filter{States: []string{"CA", "TX"}, Products: []string{"Books"}}
	require.NoError(t, store.Save(ctx, "abc", filter))

	loaded, err := store.Load(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, filter, loaded)
}

func TestLoadMissingSelectionIsUnrestricted(t *testing.T) {
	store := newRedisStore(t)
	loaded, err := store.Load(context.Background(), "nope")
	require.NoError(t, err)
	assert.Equal(t, aggregate.Filter{}, loaded)
}

func TestMemoryFallback(t *testing.T) {
	store := NewSelectionStore(nil, "rp_session", time.Hour, false)
	ctx := context.Background()

	filter := aggregate.Filter{Quarters: []string{"2019Q1"}}
	require.NoError(t, store.Save(ctx, "abc", filter))
	loaded, err := store.Load(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, filter, loaded)
}

func TestSessionIDSetsCookieOnce(t *testing.T) {
	store := newRedisStore(t)

	rr := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/", nil)
	id := store.SessionID(rr, req)
	require.NotEmpty(t, id)
	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "rp_session", cookies[0].Name)
	assert.Equal(t, id, cookies[0].Value)

	// A request carrying the cookie keeps its id.
	req2 := httptest.NewRequest("GET", "/", nil)
	req2.AddCookie(cookies[0])
	rr2 := httptest.NewRecorder()
	assert.Equal(t, id, store.SessionID(rr2, req2))
	assert.Empty(t, rr2.Result().Cookies())
}
