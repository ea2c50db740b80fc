package slots

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"go.etcd.io/bbolt"
)

var slotsBucket = []byte("slots")

// Bolt stores slots in a single bbolt bucket, one key per slot.
type Bolt struct {
	db *bbolt.DB
}

// OpenBolt opens (or creates) the bbolt file at path.
func OpenBolt(path string) (*Bolt, error) {
	if path == "" {
		path = "tujitume.db"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("create dirs: %w", err)
	}
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bolt: %w", err)
	}
	if err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(slotsBucket)
		return err
	}); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create bucket: %w", err)
	}
	return &Bolt{db: db}, nil
}

func (s *Bolt) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	var out []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(slotsBucket)
		if bucket == nil {
			return nil
		}
		// bbolt values are only valid for the life of the transaction.
		if v := bucket.Get([]byte(key)); v != nil {
			out = slices.Clone(v)
		}
		return nil
	})
	if err != nil {
		return nil, false, mapBoltErr(err)
	}
	return out, out != nil, nil
}

func (s *Bolt) Put(ctx context.Context, key string, value []byte) error {
	return s.Apply(ctx, NewBatch().Put(key, value))
}

func (s *Bolt) Delete(ctx context.Context, key string) error {
	return s.Apply(ctx, NewBatch().Delete(key))
}

func (s *Bolt) Apply(ctx context.Context, b *Batch) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := b.validate(); err != nil {
		return err
	}
	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists(slotsBucket)
		if err != nil {
			return err
		}
		for _, op := range b.Ops() {
			if op.Delete {
				err = bucket.Delete([]byte(op.Key))
			} else {
				// bbolt treats a nil value as missing; store empty values as empty.
				v := op.Value
				if v == nil {
					v = []byte{}
				}
				err = bucket.Put([]byte(op.Key), v)
			}
			if err != nil {
				return fmt.Errorf("%s: %w", op.Key, err)
			}
		}
		return nil
	})
	return mapBoltErr(err)
}

func (s *Bolt) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return mapBoltErr(s.db.View(func(*bbolt.Tx) error { return nil }))
}

func (s *Bolt) Close() error { return s.db.Close() }

// Path returns the database file path.
func (s *Bolt) Path() string { return s.db.Path() }

func mapBoltErr(err error) error {
	if errors.Is(err, bbolt.ErrDatabaseNotOpen) {
		return ErrClosed
	}
	return err
}

var _ Store = (*Bolt)(nil)
