// Package credentials persists the two artifacts the authorization flow needs
// across a redirect: the cached access token (durable) and the in-flight
// PKCE/state pair (session-scoped).
package credentials

import (
	"encoding/json"
	"time"
)

// Storage keys, one JSON blob per concern.
const (
	tokenKey = "fotoware_auth"
	pkceKey  = "fotoware_pkce"
)

// StoredToken is the durable cache of a successful token exchange.
type StoredToken struct {
	AccessToken string `json:"accessToken"`
	ExpiresAt   int64  `json:"expiresAt"` // epoch milliseconds
}

// Expired reports whether the token is no longer usable at the given instant.
func (t StoredToken) Expired(now time.Time) bool {
	return t.ExpiresAt <= now.UnixMilli()
}

// StoredPkce is the one-shot challenge of an authorization attempt.
type StoredPkce struct {
	CodeVerifier string `json:"codeVerifier"`
	State        string `json:"state"`
}

// Store is a facade over the two scoped key-value stores. All loads are
// resilient: corrupt or missing content reads as absent, never as an error,
// and an expired token is deleted on read.
type Store struct {
	durable   KV
	transient KV
	nowTime   func() time.Time
}

// StoreOption modifies a Store.
type StoreOption func(*Store)

// WithNowTime sets the now time function (primarily for testing).
func WithNowTime(nowFunc func() time.Time) StoreOption {
	return func(s *Store) {
		s.nowTime = nowFunc
	}
}

// NewStore creates a credential store over a durable and a transient KV.
func NewStore(durable, transient KV, options ...StoreOption) *Store {
	s := &Store{
		durable:   durable,
		transient: transient,
		nowTime:   time.Now,
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

// SaveToken writes the token blob to the durable store.
func (s *Store) SaveToken(token StoredToken) error {
	data, err := json.Marshal(token)
	if err != nil {
		return err
	}
	return s.durable.Set(tokenKey, data)
}

// LoadToken returns the cached token, or nil when it is absent, unparsable or
// expired. Reading an expired or corrupt blob deletes it.
func (s *Store) LoadToken() *StoredToken {
	data, err := s.durable.Get(tokenKey)
	if err != nil {
		return nil
	}
	var token StoredToken
	if err := json.Unmarshal(data, &token); err != nil || token.AccessToken == "" || token.ExpiresAt == 0 {
		_ = s.durable.Delete(tokenKey)
		return nil
	}
	if token.Expired(s.nowTime()) {
		_ = s.durable.Delete(tokenKey)
		return nil
	}
	return &token
}

// ClearToken removes the cached token.
func (s *Store) ClearToken() {
	_ = s.durable.Delete(tokenKey)
}

// SavePkce writes the in-flight challenge, replacing any previous one. At most
// one challenge is live at a time; a new login invalidates an abandoned attempt.
func (s *Store) SavePkce(pkce StoredPkce) error {
	data, err := json.Marshal(pkce)
	if err != nil {
		return err
	}
	return s.transient.Set(pkceKey, data)
}

// LoadPkce returns the in-flight challenge, or nil when absent or unparsable.
// It does not delete on read; consuming the challenge is the caller's move.
func (s *Store) LoadPkce() *StoredPkce {
	data, err := s.transient.Get(pkceKey)
	if err != nil {
		return nil
	}
	var pkce StoredPkce
	if err := json.Unmarshal(data, &pkce); err != nil {
		return nil
	}
	return &pkce
}

// ClearPkce removes the in-flight challenge.
func (s *Store) ClearPkce() {
	_ = s.transient.Delete(pkceKey)
}
