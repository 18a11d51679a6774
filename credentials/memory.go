package credentials

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	apperrors "github.com/jrsteele09/go-fotoware-picker/internal/errors"
)

// MemoryKV is a process-lifetime key-value store backed by an expiring cache.
// It stands in for session-scoped storage: an abandoned PKCE challenge that is
// never consumed simply ages out with the TTL. A zero TTL disables expiry,
// which also makes MemoryKV the test double for the durable store.
type MemoryKV struct {
	cache *gocache.Cache
}

var _ KV = (*MemoryKV)(nil)

// NewMemoryKV creates an in-memory store whose entries expire after ttl.
func NewMemoryKV(ttl time.Duration) *MemoryKV {
	expiration := ttl
	if ttl <= 0 {
		expiration = gocache.NoExpiration
	}
	return &MemoryKV{cache: gocache.New(expiration, 10*time.Minute)}
}

func (m *MemoryKV) Get(key string) ([]byte, error) {
	v, ok := m.cache.Get(key)
	if !ok {
		return nil, apperrors.Wrapf(apperrors.ErrNotFound, "%s", key)
	}
	data, ok := v.([]byte)
	if !ok {
		return nil, apperrors.Wrapf(apperrors.ErrNotFound, "%s", key)
	}
	return data, nil
}

func (m *MemoryKV) Set(key string, value []byte) error {
	m.cache.SetDefault(key, value)
	return nil
}

func (m *MemoryKV) Delete(key string) error {
	m.cache.Delete(key)
	return nil
}
