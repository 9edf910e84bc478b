package state

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/boltdb/bolt"
	"github.com/pkg/errors"
)

var (
	stateBucket     = []byte("state")
	keyCSVText      = []byte("csvText")
	keyItemsPerPage = []byte("itemsPerPage")
)

// Bolt is a bolt database backed Store.
type Bolt struct {
	db *bolt.DB
}

// OpenBolt creates or opens the database at path.
func OpenBolt(path string) (*Bolt, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errors.Wrap(err, "create state dir")
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, errors.Wrapf(err, "open state db %s", path)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(stateBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, errors.Wrap(err, "create state bucket")
	}
	return &Bolt{db: db}, nil
}

// Load see Store
func (b *Bolt) Load() (Snapshot, error) {
	var snap Snapshot
	err := b.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(stateBucket)
		if bucket == nil {
			return nil
		}
		snap.CSVText = string(bucket.Get(keyCSVText))
		if v := bucket.Get(keyItemsPerPage); v != nil {
			n, err := strconv.Atoi(string(v))
			if err != nil || n < 1 {
				return nil
			}
			snap.ItemsPerPage = n
		}
		return nil
	})
	if err != nil {
		return Snapshot{}, errors.Wrap(err, "read state")
	}
	return snap, nil
}

// SaveCSV see Store
func (b *Bolt) SaveCSV(text string) error {
	return b.put(keyCSVText, []byte(text))
}

// ClearCSV see Store
func (b *Bolt) ClearCSV() error {
	err := b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(stateBucket).Delete(keyCSVText)
	})
	return errors.Wrap(err, "clear csv")
}

// SavePageSize see Store
func (b *Bolt) SavePageSize(n int) error {
	if n < 1 {
		return errors.Errorf("invalid page size %d", n)
	}
	return b.put(keyItemsPerPage, []byte(strconv.Itoa(n)))
}

// Close database
func (b *Bolt) Close() error {
	return b.db.Close()
}

func (b *Bolt) put(key, value []byte) error {
	err := b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(stateBucket).Put(key, value)
	})
	return errors.Wrapf(err, "write %s", key)
}
