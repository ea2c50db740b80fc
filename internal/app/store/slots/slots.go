// internal/app/store/slots/slots.go
package slots

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Well-known slot keys.
const (
	KeyContent     = "tujitume-data"
	KeyExperts     = "tujitume-experts"
	KeyAdminUser   = "tujitume-admin-user"
	KeyAdminToken  = "tujitume-admin-token"
	KeySubmissions = "tujitume-form-submissions"
	KeyAudit       = "tujitume-audit"
)

var (
	// ErrClosed is returned by operations on a store after Close.
	ErrClosed = errors.New("slots: store closed")
	// ErrEmptyKey is returned when a key is blank.
	ErrEmptyKey = errors.New("slots: empty key")
)

// Store is a durable string-keyed slot store. Every Put overwrites the whole
// value; there is no merge and no versioning, so concurrent writers of the
// same key resolve as last-writer-wins.
type Store interface {
	// Get returns the value stored under key. ok is false if the key is absent.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	// Apply performs every operation in b, or none of them.
	Apply(ctx context.Context, b *Batch) error
	Ping(ctx context.Context) error
	Close() error
}

// Op is a single put or delete inside a Batch.
type Op struct {
	Key    string
	Value  []byte
	Delete bool
}

// Batch collects puts and deletes to be applied together.
type Batch struct {
	ops []Op
}

// NewBatch returns an empty batch.
func NewBatch() *Batch { return &Batch{} }

// Put queues a write of value under key.
func (b *Batch) Put(key string, value []byte) *Batch {
	b.ops = append(b.ops, Op{Key: key, Value: value})
	return b
}

// Delete queues removal of key.
func (b *Batch) Delete(key string) *Batch {
	b.ops = append(b.ops, Op{Key: key, Delete: true})
	return b
}

// Ops returns the queued operations in order.
func (b *Batch) Ops() []Op {
	if b == nil {
		return nil
	}
	return b.ops
}

// Len returns the number of queued operations.
func (b *Batch) Len() int { return len(b.Ops()) }

func (b *Batch) validate() error {
	for _, op := range b.Ops() {
		if err := checkKey(op.Key); err != nil {
			return err
		}
	}
	return nil
}

func checkKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return ErrEmptyKey
	}
	return nil
}

// Backend names accepted by Open.
const (
	BackendMemory   = "memory"
	BackendBolt     = "bolt"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendMongo    = "mongo"
)

// Backends lists the supported backend names.
var Backends = []string{BackendMemory, BackendBolt, BackendSQLite, BackendPostgres, BackendMongo}

// Config selects and parameterizes a backend.
type Config struct {
	Backend       string
	BoltPath      string
	SQLitePath    string
	PostgresDSN   string
	MongoURI      string
	MongoDatabase string
}

// Open connects to the configured backend, creating any bucket, table or
// collection it needs.
func Open(ctx context.Context, cfg Config, logger *zap.Logger) (Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	var (
		s   Store
		err error
	)
	switch strings.ToLower(strings.TrimSpace(cfg.Backend)) {
	case BackendMemory:
		s = NewMemory()
	case BackendBolt, "":
		s, err = OpenBolt(cfg.BoltPath)
	case BackendSQLite:
		s, err = OpenSQLite(ctx, cfg.SQLitePath)
	case BackendPostgres:
		s, err = OpenPostgres(ctx, cfg.PostgresDSN)
	case BackendMongo:
		s, err = OpenMongo(ctx, cfg.MongoURI, cfg.MongoDatabase)
	default:
		return nil, fmt.Errorf("slots: unknown backend %q", cfg.Backend)
	}
	if err != nil {
		return nil, err
	}
	logger.Info("slot store opened", zap.String("backend", cfg.Backend))
	return s, nil
}
