package boltkv_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-fotoware-picker/credentials/boltkv"
	apperrors "github.com/jrsteele09/go-fotoware-picker/internal/errors"
)

func TestStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.db")

	store, err := boltkv.Open(path)
	require.NoError(t, err)
	defer store.Close()

	t.Run("missing key", func(t *testing.T) {
		_, err := store.Get("absent")
		require.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("set get delete", func(t *testing.T) {
		require.NoError(t, store.Set("fotoware_auth", []byte(`{"accessToken":"abc"}`)))

		data, err := store.Get("fotoware_auth")
		require.NoError(t, err)
		require.JSONEq(t, `{"accessToken":"abc"}`, string(data))

		require.NoError(t, store.Delete("fotoware_auth"))
		_, err = store.Get("fotoware_auth")
		require.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("delete on empty bucket is a no-op", func(t *testing.T) {
		fresh, err := boltkv.Open(filepath.Join(t.TempDir(), "fresh.db"))
		require.NoError(t, err)
		defer fresh.Close()
		require.NoError(t, fresh.Delete("anything"))
	})

	t.Run("values survive reopen", func(t *testing.T) {
		reopenPath := filepath.Join(t.TempDir(), "reopen.db")
		first, err := boltkv.Open(reopenPath)
		require.NoError(t, err)
		require.NoError(t, first.Set("k", []byte("v")))
		require.NoError(t, first.Close())

		second, err := boltkv.Open(reopenPath)
		require.NoError(t, err)
		defer second.Close()
		data, err := second.Get("k")
		require.NoError(t, err)
		require.Equal(t, []byte("v"), data)
	})
}
