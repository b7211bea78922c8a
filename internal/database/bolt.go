// Package database provides persistent key-value storage for fetched github records.
package database

import (
	"bytes"
	"fmt"
	"time"

	"go.etcd.io/bbolt"
)

// BoltKVStore provides simple kv store interface based on boltdb.
type BoltKVStore struct {
	db         *bbolt.DB
	bucketName []byte
}

// NewBoltKVStore creates new BoltKVStore instance.
// Waits at most openTimeout for other processes holding the database file, 0 means forever.
func NewBoltKVStore(dbPath string, bucketName string, openTimeout time.Duration) (*BoltKVStore, error) {
	db, err := bbolt.Open(dbPath, 0666, &bbolt.Options{Timeout: openTimeout})
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketName))
		return err
	}); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating database bucket: %w", err)
	}

	return &BoltKVStore{
		db:         db,
		bucketName: []byte(bucketName),
	}, nil
}

// ReadKey returns data saved for given key. Returns nil if there's no data stored.
// Returned slice is a copy, valid after the transaction ends.
func (s *BoltKVStore) ReadKey(key []byte) ([]byte, error) {
	var data []byte
	if err := s.db.View(func(tx *bbolt.Tx) error {
		if v := tx.Bucket(s.bucketName).Get(key); v != nil {
			data = append([]byte{}, v...)
		}
		return nil
	}); err != nil {
		return nil, fmt.Errorf("reading from db: %w", err)
	}

	return data, nil
}

// UpdateKey stores given data under given key.
func (s *BoltKVStore) UpdateKey(key []byte, data []byte) error {
	if err := s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(s.bucketName).Put(key, data)
	}); err != nil {
		return fmt.Errorf("writing to db: %w", err)
	}

	return nil
}

// Keys returns all stored keys starting with prefix, in byte order.
func (s *BoltKVStore) Keys(prefix []byte) ([]string, error) {
	var keys []string
	if err := s.db.View(func(tx *bbolt.Tx) error {
		c := tx.Bucket(s.bucketName).Cursor()
		for k, _ := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, _ = c.Next() {
			keys = append(keys, string(k))
		}
		return nil
	}); err != nil {
		return nil, fmt.Errorf("listing db keys: %w", err)
	}

	return keys, nil
}

// Close closes database.
func (s *BoltKVStore) Close() error {
	return s.db.Close()
}
