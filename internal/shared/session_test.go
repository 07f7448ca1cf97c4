package shared

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) *SessionManager {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewSessionManager(client, "stockpilot_session", "test-secret", time.Hour, false)
}

func TestSessionRoundTrip(t *testing.T) {
	sm := newTestManager(t)
	ctx := context.Background()

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	sess, err := sm.Load(ctx, r)
	require.NoError(t, err)
	require.True(t, sess.isNew)

	sess.Set("greeting", "hello")
	w := httptest.NewRecorder()
	require.NoError(t, sm.Commit(ctx, w, r, sess))

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, "stockpilot_session", cookies[0].Name)

	r2 := httptest.NewRequest(http.MethodGet, "/", nil)
	r2.AddCookie(cookies[0])
	loaded, err := sm.Load(ctx, r2)
	require.NoError(t, err)
	require.False(t, loaded.isNew)
	require.Equal(t, "hello", loaded.Get("greeting"))
}

func TestFlashIsDeliveredOnce(t *testing.T) {
	sm := newTestManager(t)
	ctx := context.Background()

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	sess, err := sm.Load(ctx, r)
	require.NoError(t, err)

	sess.AddFlash(FlashMessage{Kind: "success", Message: "Product created"})
	w := httptest.NewRecorder()
	require.NoError(t, sm.Commit(ctx, w, r, sess))
	cookie := w.Result().Cookies()[0]

	r2 := httptest.NewRequest(http.MethodGet, "/", nil)
	r2.AddCookie(cookie)
	loaded, err := sm.Load(ctx, r2)
	require.NoError(t, err)
	flash := loaded.PopFlash()
	require.NotNil(t, flash)
	require.Equal(t, "Product created", flash.Message)

	w2 := httptest.NewRecorder()
	require.NoError(t, sm.Commit(ctx, w2, r2, loaded))

	r3 := httptest.NewRequest(http.MethodGet, "/", nil)
	r3.AddCookie(cookie)
	again, err := sm.Load(ctx, r3)
	require.NoError(t, err)
	require.Nil(t, again.PopFlash())
}

func TestDestroyClearsSession(t *testing.T) {
	sm := newTestManager(t)
	ctx := context.Background()

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	sess, err := sm.Load(ctx, r)
	require.NoError(t, err)
	sess.Set("k", "v")
	w := httptest.NewRecorder()
	require.NoError(t, sm.Commit(ctx, w, r, sess))
	cookie := w.Result().Cookies()[0]

	sm.Destroy(sess)
	w2 := httptest.NewRecorder()
	require.NoError(t, sm.Commit(ctx, w2, r, sess))

	r2 := httptest.NewRequest(http.MethodGet, "/", nil)
	r2.AddCookie(cookie)
	fresh, err := sm.Load(ctx, r2)
	require.NoError(t, err)
	require.Empty(t, fresh.Get("k"))
}

func TestCSRFTokenLifecycle(t *testing.T) {
	sm := newTestManager(t)
	csrf := NewCSRFManager("csrf-secret")
	ctx := context.Background()

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	sess, err := sm.Load(ctx, r)
	require.NoError(t, err)

	token, err := csrf.EnsureToken(ctx, sess)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	// Stable per session.
	second, err := csrf.EnsureToken(ctx, sess)
	require.NoError(t, err)
	require.Equal(t, token, second)

	require.NoError(t, csrf.VerifyToken(ctx, sess, token))
	require.ErrorIs(t, csrf.VerifyToken(ctx, sess, "forged"), ErrCSRFTokenMismatch)
	require.ErrorIs(t, csrf.VerifyToken(ctx, sess, ""), ErrCSRFTokenMissing)
}
