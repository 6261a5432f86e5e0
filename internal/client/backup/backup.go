// Package backup persists the last known catalog snapshot so the storefront
// can keep showing products while the backend is unreachable.
package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dmitrijs2005/diamondstore/internal/client/models"
	"github.com/dmitrijs2005/diamondstore/internal/client/store"
	"github.com/dmitrijs2005/diamondstore/internal/common"
)

type Cache struct {
	store store.Store
	now   func() time.Time
}

func New(s store.Store) *Cache {
	return &Cache{store: s, now: time.Now}
}

// Save overwrites the snapshot and its saved_at timestamp in one write.
func (c *Cache) Save(ctx context.Context, snap models.Snapshot) error {
	snap = models.NewSnapshot(snap.Categories, snap.Products)

	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	savedAt := []byte(c.now().UTC().Format(time.RFC3339Nano))

	if err := c.store.SetMany(ctx, map[string][]byte{
		common.CatalogBackupKey:        data,
		common.CatalogBackupSavedAtKey: savedAt,
	}); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

// Load returns the stored snapshot, or (nil, nil) when none was saved.
// Unparseable data yields a *common.CacheCorruptError.
func (c *Cache) Load(ctx context.Context) (*models.Snapshot, error) {
	data, err := c.store.Get(ctx, common.CatalogBackupKey)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	if data == nil {
		return nil, nil
	}

	var snap models.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, &common.CacheCorruptError{Key: common.CatalogBackupKey, Err: err}
	}
	return &snap, nil
}

// SavedAt returns when the snapshot was last saved; ok is false if never.
func (c *Cache) SavedAt(ctx context.Context) (t time.Time, ok bool, err error) {
	data, err := c.store.Get(ctx, common.CatalogBackupSavedAtKey)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("load saved_at: %w", err)
	}
	if data == nil {
		return time.Time{}, false, nil
	}
	t, err = time.Parse(time.RFC3339Nano, string(data))
	if err != nil {
		return time.Time{}, false, &common.CacheCorruptError{Key: common.CatalogBackupSavedAtKey, Err: err}
	}
	return t, true, nil
}

// Clear removes the snapshot and its timestamp.
func (c *Cache) Clear(ctx context.Context) error {
	for _, k := range []string{common.CatalogBackupKey, common.CatalogBackupSavedAtKey} {
		if err := c.store.Delete(ctx, k); err != nil {
			return err
		}
	}
	return nil
}
