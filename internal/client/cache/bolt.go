package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

const (
	boltCacheBucket = "todo-cache"
	boltSnapshotKey = "snapshot"
)

// BoltPersister keeps the cache snapshot in a single bbolt key.
type BoltPersister struct {
	db *bolt.DB
}

var _ Persister = (*BoltPersister)(nil)

func NewBoltPersister(path string) (*BoltPersister, error) {
	if path == "" {
		return nil, errors.New("cache: required bolt path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("cache: create bolt dir: %w", err)
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("cache: opening bolt: %w", err)
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, berr := tx.CreateBucketIfNotExists([]byte(boltCacheBucket))
		return berr
	}); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("cache: cant init bucket: %w", err)
	}
	return &BoltPersister{db: db}, nil
}

func (p *BoltPersister) Close() error {
	if p.db == nil {
		return nil
	}
	return p.db.Close()
}

func (p *BoltPersister) Load() (Snapshot, bool, error) {
	var (
		snap  Snapshot
		found bool
	)
	err := p.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(boltCacheBucket))
		if b == nil {
			return errors.New("cache: bucket miss")
		}
		raw := b.Get([]byte(boltSnapshotKey))
		if raw == nil {
			return nil
		}
		found = true
		return json.Unmarshal(raw, &snap)
	})
	if err != nil {
		return Snapshot{}, false, fmt.Errorf("cache: load snapshot: %w", err)
	}
	return snap, found, nil
}

func (p *BoltPersister) Save(snap Snapshot) error {
	raw, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("cache: cant marshal snapshot: %w", err)
	}
	return p.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(boltCacheBucket))
		if b == nil {
			return errors.New("cache: bucket miss")
		}
		return b.Put([]byte(boltSnapshotKey), raw)
	})
}
