package testutil

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/dalemusser/tujitume/internal/app/store/slots"
)

// TestContext returns a context with a timeout suitable for tests.
func TestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 10*time.Second)
}

// SetupTestSlots returns an empty in-memory slot store closed at test end.
func SetupTestSlots(t *testing.T) *slots.Memory {
	t.Helper()
	s := slots.NewMemory()
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// SetupBoltSlots returns a bbolt slot store in a temp dir along with its path,
// so tests can reopen the same file.
func SetupBoltSlots(t *testing.T) (*slots.Bolt, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "slots.db")
	s, err := slots.OpenBolt(path)
	if err != nil {
		t.Fatalf("OpenBolt: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s, path
}

// ErrInjected is returned by FlakySlots while failing.
var ErrInjected = errors.New("injected slot failure")

// FlakySlots wraps a slot store and fails reads and/or writes on demand.
type FlakySlots struct {
	slots.Store

	mu         sync.Mutex
	failReads  bool
	failWrites bool
	writes     int
}

// NewFlakySlots wraps inner.
func NewFlakySlots(inner slots.Store) *FlakySlots {
	return &FlakySlots{Store: inner}
}

// FailReads toggles read failures.
func (f *FlakySlots) FailReads(on bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failReads = on
}

// FailWrites toggles write failures.
func (f *FlakySlots) FailWrites(on bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failWrites = on
}

// Writes returns the number of successful write calls.
func (f *FlakySlots) Writes() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.writes
}

func (f *FlakySlots) Get(ctx context.Context, key string) ([]byte, bool, error) {
	f.mu.Lock()
	fail := f.failReads
	f.mu.Unlock()
	if fail {
		return nil, false, ErrInjected
	}
	return f.Store.Get(ctx, key)
}

func (f *FlakySlots) Put(ctx context.Context, key string, value []byte) error {
	return f.Apply(ctx, slots.NewBatch().Put(key, value))
}

func (f *FlakySlots) Delete(ctx context.Context, key string) error {
	return f.Apply(ctx, slots.NewBatch().Delete(key))
}

func (f *FlakySlots) Apply(ctx context.Context, b *slots.Batch) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWrites {
		return ErrInjected
	}
	if err := f.Store.Apply(ctx, b); err != nil {
		return err
	}
	f.writes++
	return nil
}
