// Package boltkv provides a bbolt-backed durable key-value store so the cached
// access token survives process restarts and is shared across embeddings
// pointed at the same database file.
package boltkv

import (
	"fmt"

	bolt "go.etcd.io/bbolt"

	"github.com/jrsteele09/go-fotoware-picker/credentials"
	apperrors "github.com/jrsteele09/go-fotoware-picker/internal/errors"
)

var bucketName = []byte("credentials")

// Store implements credentials.KV backed by a bbolt database.
type Store struct {
	db *bolt.DB
}

var _ credentials.KV = (*Store)(nil)

// Open opens (or creates) a bbolt database at the given path.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("opening bbolt db: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Get(key string) ([]byte, error) {
	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketName)
		if b == nil {
			return apperrors.Wrapf(apperrors.ErrNotFound, "%s", key)
		}
		v := b.Get([]byte(key))
		if v == nil {
			return apperrors.Wrapf(apperrors.ErrNotFound, "%s", key)
		}
		data = append([]byte(nil), v...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (s *Store) Set(key string, value []byte) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(bucketName)
		if err != nil {
			return err
		}
		return b.Put([]byte(key), value)
	})
}

func (s *Store) Delete(key string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketName)
		if b == nil {
			return nil
		}
		return b.Delete([]byte(key))
	})
}
