package session

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/inventory-service/internal/config"
	"github.com/tuanvumaihuynh/inventory-service/internal/model"
)

func testConfig() config.Session {
	return config.Session{
		Secret:     "test-secret",
		CookieName: "inv_session",
		TTL:        time.Hour,
	}
}

// requestWith replays the cookies set on rec onto a fresh request.
func requestWith(rec *httptest.ResponseRecorder) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	for _, c := range rec.Result().Cookies() {
		r.AddCookie(c)
	}
	return r
}

type failingStore struct{ err error }

func (f failingStore) Save(context.Context, model.Session) error { return f.err }
func (f failingStore) Get(context.Context, string) (model.Session, error) {
	return model.Session{}, f.err
}

func TestManager(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("Should resolve an established session to the same user", func(t *testing.T) {
		m := NewManager(testConfig(), NewMemoryStore())
		rec := httptest.NewRecorder()

		sess, err := m.Establish(ctx, rec, userID)
		require.NoError(t, err)
		assert.Equal(t, userID, sess.UserID)

		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, "inv_session", cookies[0].Name)
		assert.True(t, cookies[0].HttpOnly)
		assert.True(t, strings.HasPrefix(cookies[0].Value, sess.ID+"."))

		got, ok, err := m.Resolve(ctx, requestWith(rec))
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, userID, got)
	})

	t.Run("Should issue distinct sessions per login", func(t *testing.T) {
		m := NewManager(testConfig(), NewMemoryStore())

		a, err := m.Establish(ctx, httptest.NewRecorder(), userID)
		require.NoError(t, err)
		b, err := m.Establish(ctx, httptest.NewRecorder(), userID)
		require.NoError(t, err)

		assert.NotEqual(t, a.ID, b.ID)
	})

	t.Run("Should treat a request without cookie as anonymous", func(t *testing.T) {
		m := NewManager(testConfig(), NewMemoryStore())

		_, ok, err := m.Resolve(ctx, httptest.NewRequest(http.MethodGet, "/", nil))
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("Should reject a tampered cookie", func(t *testing.T) {
		m := NewManager(testConfig(), NewMemoryStore())
		rec := httptest.NewRecorder()
		sess, err := m.Establish(ctx, rec, userID)
		require.NoError(t, err)

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: "inv_session", Value: sess.ID + ".Zm9yZ2Vk"})

		_, ok, err := m.Resolve(ctx, r)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("Should reject a cookie signed with another secret", func(t *testing.T) {
		store := NewMemoryStore()
		other := testConfig()
		other.Secret = "other-secret"
		rec := httptest.NewRecorder()
		_, err := NewManager(other, store).Establish(ctx, rec, userID)
		require.NoError(t, err)

		_, ok, err := NewManager(testConfig(), store).Resolve(ctx, requestWith(rec))
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("Should treat an expired session as anonymous", func(t *testing.T) {
		m := NewManager(testConfig(), NewMemoryStore())
		rec := httptest.NewRecorder()
		_, err := m.Establish(ctx, rec, userID)
		require.NoError(t, err)

		m.now = func() time.Time { return time.Now().Add(2 * time.Hour) }

		_, ok, err := m.Resolve(ctx, requestWith(rec))
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("Should propagate store failures", func(t *testing.T) {
		storeErr := errors.New("store down")
		good := NewManager(testConfig(), NewMemoryStore())
		rec := httptest.NewRecorder()
		_, err := good.Establish(ctx, rec, userID)
		require.NoError(t, err)

		m := NewManager(testConfig(), failingStore{err: storeErr})

		_, ok, err := m.Resolve(ctx, requestWith(rec))
		assert.ErrorIs(t, err, storeErr)
		assert.False(t, ok)

		_, err = m.Establish(ctx, httptest.NewRecorder(), userID)
		assert.ErrorIs(t, err, storeErr)
	})
}

func TestUserIDContext(t *testing.T) {
	t.Run("Should round trip the user id", func(t *testing.T) {
		id := uuid.New()

		got, ok := UserIDFromContext(NewContext(context.Background(), id))
		assert.True(t, ok)
		assert.Equal(t, id, got)
	})

	t.Run("Should report absence", func(t *testing.T) {
		_, ok := UserIDFromContext(context.Background())
		assert.False(t, ok)
	})
}
