package cache

import (
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/onnwee/quickcache/internal/cacheerr"
)

var boltSnapshotKey = []byte("snapshot")

// BoltBackend persists the same whole-cache or whole-metrics document as
// FileManager, but into a single bucket/key of an embedded bbolt database
// file instead of a loose file. It is still a whole-snapshot write on every
// call, never a per-key write-ahead log: Write replaces the one key's value
// entirely.
type BoltBackend struct {
	db     *bolt.DB
	bucket []byte
}

// OpenBoltBackend opens (creating if absent) the bbolt file at path and
// ensures bucket exists.
func OpenBoltBackend(path, bucket string) (*BoltBackend, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, cacheerr.Persistence("bolt_open", err)
	}
	b := []byte(bucket)
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(b)
		return err
	}); err != nil {
		_ = db.Close()
		return nil, cacheerr.Persistence("bolt_create_bucket", err)
	}
	return &BoltBackend{db: db, bucket: b}, nil
}

// Write overwrites the snapshot key's value wholesale in a single transaction.
func (b *BoltBackend) Write(payload []byte) error {
	err := b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(b.bucket).Put(boltSnapshotKey, payload)
	})
	if err != nil {
		return cacheerr.Persistence("bolt_write", err)
	}
	return nil
}

// Read returns the snapshot key's current value.
func (b *BoltBackend) Read() ([]byte, error) {
	var out []byte
	err := b.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(b.bucket).Get(boltSnapshotKey)
		if v == nil {
			return cacheerr.New(cacheerr.CodePersistence, "no snapshot stored")
		}
		out = append([]byte(nil), v...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Close closes the underlying bbolt database.
func (b *BoltBackend) Close() error {
	if b == nil || b.db == nil {
		return nil
	}
	return b.db.Close()
}
