package session

import (
	"encoding/base64"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrilearn/agrilearn/internal/storage"
)

func newTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.NewStore(filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func makeJWT(t *testing.T, payload string) string {
	t.Helper()
	enc := base64.RawURLEncoding.EncodeToString
	return enc([]byte(`{"alg":"HS256"}`)) + "." + enc([]byte(payload)) + ".sig"
}

func TestFreshSessionIsLoggedOut(t *testing.T) {
	sess, err := Load(newTestStore(t))
	require.NoError(t, err)

	assert.False(t, sess.IsLoggedIn())
	assert.False(t, sess.IsAdmin())
	assert.Empty(t, sess.Token())
}

func TestLoginLogout(t *testing.T) {
	sess, err := Load(newTestStore(t))
	require.NoError(t, err)

	user := storage.User{ID: "1", Name: "Budi", Role: "user"}
	require.NoError(t, sess.Login("tok-123", user))

	assert.True(t, sess.IsLoggedIn())
	assert.False(t, sess.IsAdmin())
	assert.Equal(t, "tok-123", sess.Token())
	assert.Equal(t, "Budi", sess.User().Name)

	require.NoError(t, sess.Logout())
	assert.False(t, sess.IsLoggedIn())
	assert.Empty(t, sess.Token())
}

func TestAdminRole(t *testing.T) {
	sess, err := Load(newTestStore(t))
	require.NoError(t, err)

	require.NoError(t, sess.Login("tok", storage.User{ID: "1", Role: "admin"}))
	assert.True(t, sess.IsAdmin())
}

func TestSessionSurvivesRestart(t *testing.T) {
	store := newTestStore(t)

	sess, err := Load(store)
	require.NoError(t, err)
	require.NoError(t, sess.Login("tok-persist", storage.User{ID: "9", Name: "Sari", Role: "admin"}))

	restored, err := Load(store)
	require.NoError(t, err)
	assert.True(t, restored.IsLoggedIn())
	assert.True(t, restored.IsAdmin())
	assert.Equal(t, "tok-persist", restored.Token())
	assert.Equal(t, "Sari", restored.User().Name)
}

func TestCorruptSessionTreatedAsLoggedOut(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.SaveSession([]byte("not json")))

	sess, err := Load(store)
	require.NoError(t, err)
	assert.False(t, sess.IsLoggedIn())
}

func TestLoginDecodesClaimsWhenUserMissing(t *testing.T) {
	sess, err := Load(newTestStore(t))
	require.NoError(t, err)

	token := makeJWT(t, `{"id":5,"name":"Wati","email":"wati@agrilearn.id","role":"admin"}`)
	require.NoError(t, sess.Login(token, storage.User{}))

	assert.Equal(t, "Wati", sess.User().Name)
	assert.Equal(t, "5", sess.User().ID)
	assert.True(t, sess.IsAdmin())
}

func TestDecodeClaims(t *testing.T) {
	t.Run("valid token", func(t *testing.T) {
		token := makeJWT(t, `{"id":"3","name":"Tono","role":"user"}`)
		user, err := DecodeClaims(token)
		require.NoError(t, err)
		assert.Equal(t, "Tono", user.Name)
		assert.False(t, user.IsAdmin())
	})

	t.Run("not a JWT", func(t *testing.T) {
		_, err := DecodeClaims("opaque-token")
		assert.Error(t, err)
	})

	t.Run("bad payload encoding", func(t *testing.T) {
		_, err := DecodeClaims("a.!!!.c")
		assert.Error(t, err)
	})
}
