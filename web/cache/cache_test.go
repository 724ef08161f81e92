package cache

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	gorillasessions "github.com/gorilla/sessions"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedRedisIncr(t *testing.T) {
	ctx := context.Background()
	require.NoError(t, InitRedis(ctx, ""))
	defer Close()
	assert.True(t, IsEmbedded())

	for i := int64(1); i <= 3; i++ {
		n, err := Incr(ctx, "login:127.0.0.1", time.Minute)
		require.NoError(t, err)
		assert.Equal(t, i, n)
	}
	ttl, err := TTL(ctx, "login:127.0.0.1")
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
	assert.LessOrEqual(t, ttl, time.Minute)
}

func TestIncrWithoutClient(t *testing.T) {
	require.NoError(t, Close())
	_, err := Incr(context.Background(), "x", time.Minute)
	assert.Error(t, err)
}

func TestExternalRedisUnreachable(t *testing.T) {
	err := InitRedis(context.Background(), "127.0.0.1:1")
	assert.Error(t, err)
	assert.Nil(t, GetClient())
}

func TestRedisStoreRoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	rc := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rc.Close()
	store := NewRedisStore(rc, []byte("0123456789abcdef0123456789abcdef"))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	sess, err := store.New(req, "tienda")
	require.NoError(t, err)
	assert.True(t, sess.IsNew)
	sess.Values["username"] = "ana"

	rec := httptest.NewRecorder()
	require.NoError(t, store.Save(req, rec, sess))
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.True(t, mr.Exists(sessionPrefix+sess.ID))

	next := httptest.NewRequest(http.MethodGet, "/", nil)
	next.AddCookie(cookies[0])
	loaded, err := store.New(next, "tienda")
	require.NoError(t, err)
	assert.False(t, loaded.IsNew)
	assert.Equal(t, "ana", loaded.Values["username"])

	loaded.Options = &gorillasessions.Options{Path: "/", MaxAge: -1}
	require.NoError(t, store.Save(next, httptest.NewRecorder(), loaded))
	assert.False(t, mr.Exists(sessionPrefix+sess.ID))
}

func TestRedisStoreIgnoresForgedCookie(t *testing.T) {
	mr := miniredis.RunT(t)
	rc := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rc.Close()
	store := NewRedisStore(rc, []byte("0123456789abcdef0123456789abcdef"))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "tienda", Value: "forged"})
	sess, err := store.New(req, "tienda")
	require.NoError(t, err)
	assert.True(t, sess.IsNew)
	assert.Empty(t, sess.Values)
}
