package models

import "slices"

// Snapshot is the backup of the catalog kept in durable storage.
//
// After decoding, a nil slice means the key was absent (or null) in the
// stored JSON, while a non-nil empty slice means it was stored as [].
type Snapshot struct {
	Categories []Category `json:"categories"`
	Products   []Product  `json:"products"`
}

// NewSnapshot copies both collections so the snapshot never aliases live
// state; nil inputs become empty slices so they encode as [].
func NewSnapshot(categories []Category, products []Product) Snapshot {
	s := Snapshot{
		Categories: slices.Clone(categories),
		Products:   slices.Clone(products),
	}
	if s.Categories == nil {
		s.Categories = []Category{}
	}
	if s.Products == nil {
		s.Products = []Product{}
	}
	return s
}
