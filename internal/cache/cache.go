// Package cache provides an on-disk, content-addressed cache for analysis
// results, keyed by fingerprint (see fbas.FBAS.Fingerprint). A fingerprint
// covers an FBAS's standard form, which leaves out unsatisfiable nodes and
// NodeId numbering: the minimal-quorum, blocking-set and splitting-set
// families have the same sizes for every FBAS sharing a fingerprint, while
// the NodeIds and whole-FBAS node sets inside a cached value are those of
// the FBAS it was first stored for. It behaves like a build cache, not like
// persisted application state.
package cache

import (
	"errors"
	"fmt"
	"time"

	"github.com/fxamacker/cbor/v2"
	bolt "go.etcd.io/bbolt"

	"github.com/fbas-go/analyzer/internal/logger"
)

var log = logger.New("fbas/cache")

var bucketName = []byte("results")

var errNotFound = errors.New("cache entry not found")

// Cache is a bbolt-backed key-value store keyed by FBAS fingerprint,
// CBOR-encoding whatever value is stored.
type Cache struct {
	db *bolt.DB
}

// Open opens (creating if necessary) the bbolt database at path.
func Open(path string) (*Cache, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 3 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open result cache: %w", err)
	}
	c := &Cache{db: db}
	if err := c.db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	}); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize result cache: %w", err)
	}
	return c, nil
}

// Get decodes the value stored under key into v, reporting whether an entry
// was found at all.
func (c *Cache) Get(key [32]byte, v any) (bool, error) {
	var data []byte
	err := c.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketName).Get(key[:])
		if b == nil {
			return errNotFound
		}
		data = append([]byte(nil), b...)
		return nil
	})
	if errors.Is(err, errNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("result cache read failed: %w", err)
	}
	if err := cbor.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("result cache decode failed: %w", err)
	}
	return true, nil
}

// Put stores v under key, overwriting any existing entry.
func (c *Cache) Put(key [32]byte, v any) error {
	data, err := cbor.Marshal(v)
	if err != nil {
		return fmt.Errorf("result cache encode failed: %w", err)
	}
	if err := c.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketName).Put(key[:], data)
	}); err != nil {
		return fmt.Errorf("result cache write failed: %w", err)
	}
	log.Debug("cached analysis result under fingerprint %x", key)
	return nil
}

// Close releases the underlying database file.
func (c *Cache) Close() error {
	return c.db.Close()
}
