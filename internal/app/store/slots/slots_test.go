package slots

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type factory func(t *testing.T) Store

func backends(t *testing.T) map[string]factory {
	t.Helper()
	fs := map[string]factory{
		BackendMemory: func(t *testing.T) Store { return NewMemory() },
		BackendBolt: func(t *testing.T) Store {
			s, err := OpenBolt(filepath.Join(t.TempDir(), "slots.db"))
			require.NoError(t, err)
			return s
		},
		BackendSQLite: func(t *testing.T) Store {
			s, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "slots.sqlite"))
			require.NoError(t, err)
			return s
		},
	}
	if dsn := os.Getenv("TUJITUME_TEST_POSTGRES_DSN"); dsn != "" {
		fs[BackendPostgres] = func(t *testing.T) Store {
			s, err := OpenPostgres(context.Background(), dsn)
			require.NoError(t, err)
			_, err = s.DB().Exec(`DELETE FROM slots`)
			require.NoError(t, err)
			return s
		}
	}
	if uri := os.Getenv("TUJITUME_TEST_MONGO_URI"); uri != "" {
		fs[BackendMongo] = func(t *testing.T) Store {
			s, err := OpenMongo(context.Background(), uri, "tujitume_test")
			require.NoError(t, err)
			_, err = s.c.DeleteMany(context.Background(), map[string]any{})
			require.NoError(t, err)
			return s
		}
	}
	return fs
}

func TestStoreContract(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			s := open(t)
			t.Cleanup(func() { _ = s.Close() })

			require.NoError(t, s.Ping(ctx))

			_, ok, err := s.Get(ctx, "missing")
			require.NoError(t, err)
			require.False(t, ok)

			require.NoError(t, s.Put(ctx, "k", []byte(`{"a":1}`)))
			v, ok, err := s.Get(ctx, "k")
			require.NoError(t, err)
			require.True(t, ok)
			require.JSONEq(t, `{"a":1}`, string(v))

			// whole-value overwrite
			require.NoError(t, s.Put(ctx, "k", []byte(`{"b":2}`)))
			v, _, err = s.Get(ctx, "k")
			require.NoError(t, err)
			require.JSONEq(t, `{"b":2}`, string(v))

			require.NoError(t, s.Delete(ctx, "k"))
			_, ok, err = s.Get(ctx, "k")
			require.NoError(t, err)
			require.False(t, ok)

			// deleting an absent key is not an error
			require.NoError(t, s.Delete(ctx, "k"))
		})
	}
}

func TestStoreApplyBatch(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			s := open(t)
			t.Cleanup(func() { _ = s.Close() })

			require.NoError(t, s.Put(ctx, "stale", []byte("x")))
			b := NewBatch().
				Put(KeyAdminUser, []byte(`{"id":"1"}`)).
				Put(KeyAdminToken, []byte("token")).
				Delete("stale")
			require.Equal(t, 3, b.Len())
			require.NoError(t, s.Apply(ctx, b))

			for _, key := range []string{KeyAdminUser, KeyAdminToken} {
				_, ok, err := s.Get(ctx, key)
				require.NoError(t, err)
				require.True(t, ok, key)
			}
			_, ok, err := s.Get(ctx, "stale")
			require.NoError(t, err)
			require.False(t, ok)
		})
	}
}

func TestApplyRejectsEmptyKey(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			s := open(t)
			t.Cleanup(func() { _ = s.Close() })

			err := s.Apply(ctx, NewBatch().Put("ok", []byte("1")).Put(" ", []byte("2")))
			require.ErrorIs(t, err, ErrEmptyKey)

			// nothing from the rejected batch was written
			_, ok, err := s.Get(ctx, "ok")
			require.NoError(t, err)
			require.False(t, ok)
		})
	}
}

func TestBoltPersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "slots.db")

	s, err := OpenBolt(path)
	require.NoError(t, err)
	require.NoError(t, s.Put(ctx, KeyContent, []byte(`{"teamMembers":[]}`)))
	require.NoError(t, s.Close())

	s, err = OpenBolt(path)
	require.NoError(t, err)
	defer s.Close()
	v, ok, err := s.Get(ctx, KeyContent)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, `{"teamMembers":[]}`, string(v))
}

func TestSQLitePersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "slots.sqlite")

	s, err := OpenSQLite(ctx, path)
	require.NoError(t, err)
	require.NoError(t, s.Put(ctx, KeyExperts, []byte(`[]`)))
	require.NoError(t, s.Close())

	s, err = OpenSQLite(ctx, path)
	require.NoError(t, err)
	defer s.Close()
	v, ok, err := s.Get(ctx, KeyExperts)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, `[]`, string(v))
}

func TestMemoryClosed(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()
	require.NoError(t, s.Close())

	require.ErrorIs(t, s.Put(ctx, "k", nil), ErrClosed)
	_, _, err := s.Get(ctx, "k")
	require.ErrorIs(t, err, ErrClosed)
	require.ErrorIs(t, s.Ping(ctx), ErrClosed)
}

func TestMemoryCopiesValues(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()
	in := []byte("abc")
	require.NoError(t, s.Put(ctx, "k", in))
	in[0] = 'z'

	v, _, err := s.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, "abc", string(v))
	v[1] = 'z'

	v2, _, _ := s.Get(ctx, "k")
	require.Equal(t, "abc", string(v2))
	require.Equal(t, []string{"k"}, s.Keys())
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"memory", Config{Backend: "memory"}, false},
		{"bolt", Config{Backend: "bolt", BoltPath: filepath.Join(t.TempDir(), "a.db")}, false},
		{"sqlite upper case", Config{Backend: "SQLite", SQLitePath: filepath.Join(t.TempDir(), "a.sqlite")}, false},
		{"unknown", Config{Backend: "redis"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Open(ctx, tt.cfg, zap.NewNop())
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.NoError(t, s.Ping(ctx))
			require.NoError(t, s.Close())
		})
	}
}
