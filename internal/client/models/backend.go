package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// UnknownCategoryName is sent as categoryName when a product references a
// category the client does not know.
const UnknownCategoryName = "Unknown"

type BackendCategory struct {
	ObjectID    string     `json:"_id,omitempty"`
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Badge       string     `json:"badge"`
	IsActive    bool       `json:"isActive"`
	CreatedAt   *time.Time `json:"createdAt,omitempty"`
}

type BackendProduct struct {
	ObjectID     string          `json:"_id,omitempty"`
	ID           string          `json:"id"`
	CategoryID   string          `json:"categoryId"`
	CategoryName string          `json:"categoryName,omitempty"`
	Name         string          `json:"name"`
	Diamonds     int             `json:"diamonds"`
	Price        decimal.Decimal `json:"price"`
	Bonus        string          `json:"bonus"`
	Tag          string          `json:"tag"`
	IsActive     bool            `json:"isActive"`
	CreatedAt    *time.Time      `json:"createdAt,omitempty"`
}

func (b BackendCategory) Category() Category {
	return Category{ID: b.ID, Name: b.Name, Description: b.Description, Badge: b.Badge}
}

func (b BackendProduct) Product() Product {
	return Product{
		ID:         b.ID,
		CategoryID: b.CategoryID,
		Name:       b.Name,
		Diamonds:   b.Diamonds,
		Price:      b.Price,
		Bonus:      b.Bonus,
		Tag:        b.Tag,
	}
}

// ActiveCategories keeps only isActive records and maps them to Category.
func ActiveCategories(in []BackendCategory) []Category {
	out := make([]Category, 0, len(in))
	for _, b := range in {
		if b.IsActive {
			out = append(out, b.Category())
		}
	}
	return out
}

// ActiveProducts keeps only isActive records and maps them to Product.
func ActiveProducts(in []BackendProduct) []Product {
	out := make([]Product, 0, len(in))
	for _, b := range in {
		if b.IsActive {
			out = append(out, b.Product())
		}
	}
	return out
}

// NewBackendCategory is the create body for c: active, with empty strings
// for unset optional fields.
func NewBackendCategory(c Category) BackendCategory {
	return BackendCategory{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Badge:       c.Badge,
		IsActive:    true,
	}
}

// NewBackendProduct is the create body for p with its denormalized
// category name.
func NewBackendProduct(p Product, categoryName string) BackendProduct {
	if categoryName == "" {
		categoryName = UnknownCategoryName
	}
	return BackendProduct{
		ID:           p.ID,
		CategoryID:   p.CategoryID,
		CategoryName: categoryName,
		Name:         p.Name,
		Diamonds:     p.Diamonds,
		Price:        p.Price,
		Bonus:        p.Bonus,
		Tag:          p.Tag,
		IsActive:     true,
	}
}
