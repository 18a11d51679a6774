package credentials_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-fotoware-picker/credentials"
)

func newTestStore(t *testing.T, now time.Time) (*credentials.Store, *credentials.MemoryKV, *credentials.MemoryKV) {
	t.Helper()
	durable := credentials.NewMemoryKV(0)
	transient := credentials.NewMemoryKV(0)
	store := credentials.NewStore(durable, transient, credentials.WithNowTime(func() time.Time { return now }))
	return store, durable, transient
}

func TestStoreToken(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("round trip", func(t *testing.T) {
		store, _, _ := newTestStore(t, now)
		token := credentials.StoredToken{AccessToken: "abc", ExpiresAt: now.Add(time.Hour).UnixMilli()}
		require.NoError(t, store.SaveToken(token))

		loaded := store.LoadToken()
		require.NotNil(t, loaded)
		require.Equal(t, token, *loaded)
	})

	t.Run("expired token is deleted on read", func(t *testing.T) {
		store, durable, _ := newTestStore(t, now)
		token := credentials.StoredToken{AccessToken: "abc", ExpiresAt: now.Add(-time.Minute).UnixMilli()}
		require.NoError(t, store.SaveToken(token))

		require.Nil(t, store.LoadToken())
		_, err := durable.Get("fotoware_auth")
		require.Error(t, err, "expired blob should have been removed")
	})

	t.Run("expiry at exactly now is expired", func(t *testing.T) {
		store, _, _ := newTestStore(t, now)
		token := credentials.StoredToken{AccessToken: "abc", ExpiresAt: now.UnixMilli()}
		require.NoError(t, store.SaveToken(token))
		require.Nil(t, store.LoadToken())
	})

	t.Run("corrupt blob reads as absent and self-heals", func(t *testing.T) {
		store, durable, _ := newTestStore(t, now)
		require.NoError(t, durable.Set("fotoware_auth", []byte("{not json")))

		require.Nil(t, store.LoadToken())
		_, err := durable.Get("fotoware_auth")
		require.Error(t, err)
	})

	t.Run("missing mandatory fields read as absent", func(t *testing.T) {
		store, durable, _ := newTestStore(t, now)
		require.NoError(t, durable.Set("fotoware_auth", []byte(`{"accessToken":""}`)))
		require.Nil(t, store.LoadToken())
	})

	t.Run("clear", func(t *testing.T) {
		store, _, _ := newTestStore(t, now)
		token := credentials.StoredToken{AccessToken: "abc", ExpiresAt: now.Add(time.Hour).UnixMilli()}
		require.NoError(t, store.SaveToken(token))
		store.ClearToken()
		require.Nil(t, store.LoadToken())
	})
}

func TestStorePkce(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("round trip without delete on read", func(t *testing.T) {
		store, _, _ := newTestStore(t, now)
		pkce := credentials.StoredPkce{CodeVerifier: "verifier", State: "state-1"}
		require.NoError(t, store.SavePkce(pkce))

		require.Equal(t, &pkce, store.LoadPkce())
		require.Equal(t, &pkce, store.LoadPkce(), "load must not consume the challenge by itself")
	})

	t.Run("save replaces the previous challenge", func(t *testing.T) {
		store, _, _ := newTestStore(t, now)
		require.NoError(t, store.SavePkce(credentials.StoredPkce{CodeVerifier: "old", State: "old"}))
		require.NoError(t, store.SavePkce(credentials.StoredPkce{CodeVerifier: "new", State: "new"}))

		loaded := store.LoadPkce()
		require.NotNil(t, loaded)
		require.Equal(t, "new", loaded.State)
	})

	t.Run("corrupt blob reads as absent", func(t *testing.T) {
		store, _, transient := newTestStore(t, now)
		require.NoError(t, transient.Set("fotoware_pkce", []byte("][")))
		require.Nil(t, store.LoadPkce())
	})

	t.Run("clear", func(t *testing.T) {
		store, _, _ := newTestStore(t, now)
		require.NoError(t, store.SavePkce(credentials.StoredPkce{CodeVerifier: "v", State: "s"}))
		store.ClearPkce()
		require.Nil(t, store.LoadPkce())
	})
}

func TestMemoryKVExpiry(t *testing.T) {
	kv := credentials.NewMemoryKV(10 * time.Millisecond)
	require.NoError(t, kv.Set("k", []byte("v")))

	data, err := kv.Get("k")
	require.NoError(t, err)
	require.Equal(t, []byte("v"), data)

	time.Sleep(20 * time.Millisecond)
	_, err = kv.Get("k")
	require.Error(t, err, "entry should age out with the session TTL")
}
