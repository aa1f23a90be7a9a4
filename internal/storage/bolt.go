package storage

import (
	"path/filepath"

	"go.etcd.io/bbolt"
)

var boltBucket = []byte("Collections")

// Bolt stores collections in a single bbolt bucket. It is the pure-Go
// alternative to the sqlite backend.
type Bolt struct {
	db *bbolt.DB
}

// OpenBolt opens (or creates) studydesk.bolt in dir.
func OpenBolt(dir string) (*Bolt, error) {
	db, err := bbolt.Open(filepath.Join(dir, "studydesk.bolt"), 0600, nil)
	if err != nil {
		return nil, err
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(boltBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Bolt{db: db}, nil
}

func (b *Bolt) Load(key string) ([]byte, error) {
	var value []byte
	err := b.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket(boltBucket).Get([]byte(key))
		if v != nil {
			// v is only valid inside the transaction
			value = append([]byte(nil), v...)
		}
		return nil
	})
	return value, err
}

func (b *Bolt) Store(key string, value []byte) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(boltBucket).Put([]byte(key), value)
	})
}

func (b *Bolt) Close() error {
	return b.db.Close()
}
