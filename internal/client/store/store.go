// Package store is the client's durable key/value port. The catalog backup
// and the admin session flag are both stored through it.
//
// Two implementations are provided:
//   - SQLiteStore: a "kv" table in a local SQLite database, created by the
//     embedded goose migrations (see InitDatabase).
//   - FileStore: one file per key on an afero.Fs; afero.NewMemMapFs makes it
//     a drop-in in-memory fake for tests.
//
// Get returns (nil, nil) for a missing key.
package store

import "context"

type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	// SetMany writes all pairs together; SQLiteStore does it in one
	// transaction.
	SetMany(ctx context.Context, values map[string][]byte) error
	Delete(ctx context.Context, key string) error
}
