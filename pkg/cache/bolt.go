package cache

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

var boltBucket = []byte("entries")

// BoltCache keeps entries in one bbolt database file. Only one process
// can hold the file open at a time.
type BoltCache struct {
	db *bolt.DB
}

// NewBoltCache opens or creates the database at path.
func NewBoltCache(path string) (Cache, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0644, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(boltBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &BoltCache{db: db}, nil
}

// Get retrieves a value. Expired entries are removed.
func (c *BoltCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var raw []byte
	err := c.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(boltBucket).Get([]byte(key)); v != nil {
			raw = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil || raw == nil {
		return nil, false, err
	}

	var e entry
	if err := json.Unmarshal(raw, &e); err != nil || e.expired(time.Now()) {
		return nil, false, c.Delete(ctx, key)
	}
	return e.Data, true, nil
}

// Set stores a value; ttl <= 0 keeps it forever.
func (c *BoltCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	raw, err := json.Marshal(newEntry(data, ttl))
	if err != nil {
		return err
	}
	return c.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(boltBucket).Put([]byte(key), raw)
	})
}

// Delete removes a value.
func (c *BoltCache) Delete(ctx context.Context, key string) error {
	return c.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(boltBucket).Delete([]byte(key))
	})
}

// Clear drops every entry and returns how many there were.
func (c *BoltCache) Clear(ctx context.Context) (int, error) {
	count := 0
	err := c.db.Update(func(tx *bolt.Tx) error {
		count = tx.Bucket(boltBucket).Stats().KeyN
		if err := tx.DeleteBucket(boltBucket); err != nil {
			return err
		}
		_, err := tx.CreateBucket(boltBucket)
		return err
	})
	return count, err
}

// Close releases the database file.
func (c *BoltCache) Close() error {
	return c.db.Close()
}

var _ Cache = (*BoltCache)(nil)
