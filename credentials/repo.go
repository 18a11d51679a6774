package credentials

import (
	apperrors "github.com/jrsteele09/go-fotoware-picker/internal/errors"
)

// ErrNotFound is returned by KV implementations for absent keys.
var ErrNotFound = apperrors.ErrNotFound

// KV is the narrow key-value surface both scoped stores provide. Implementations
// must return ErrNotFound (wrapped or not) for absent keys so the facade can
// treat missing and corrupt content identically.
type KV interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Delete(key string) error
}
