// Package models defines the catalog types seen by the storefront, the
// wire shapes exchanged with the backend, and the backup snapshot.
//
// Client types (Category, Product) are what the rest of the client works
// with. Backend types (BackendCategory, BackendProduct) carry the extra
// server fields: the opaque _id, the denormalized category name, the
// isActive soft-delete flag and createdAt. Only active backend records are
// ever turned into client types.
//
// Prices are decimal.Decimal and are encoded as bare JSON numbers, which is
// what the backend sends and expects. Importing this package sets
// decimal.MarshalJSONWithoutQuotes for the whole process: every decimal this
// binary marshals is a backend price or amount, so the setting is global on
// purpose. Decoding accepts both numbers and quoted strings either way.
package models

import "github.com/shopspring/decimal"

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}
