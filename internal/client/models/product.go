package models

import (
	"cmp"
	"slices"
	"strings"

	"github.com/dmitrijs2005/diamondstore/internal/common"
	"github.com/shopspring/decimal"
)

type Product struct {
	ID         string          `json:"id"`
	CategoryID string          `json:"categoryId"`
	Name       string          `json:"name"`
	Diamonds   int             `json:"diamonds"`
	Price      decimal.Decimal `json:"price"`
	Bonus      string          `json:"bonus,omitempty"`
	Tag        string          `json:"tag,omitempty"`
}

// ProductInput is what an admin submits to create a product.
type ProductInput struct {
	CategoryID string
	Name       string
	Diamonds   int
	Price      decimal.Decimal
	Bonus      string
	Tag        string
}

func (in ProductInput) Normalize() ProductInput {
	in.CategoryID = strings.TrimSpace(in.CategoryID)
	in.Name = strings.TrimSpace(in.Name)
	in.Bonus = strings.TrimSpace(in.Bonus)
	in.Tag = strings.TrimSpace(in.Tag)
	return in
}

func (in ProductInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return &common.ValidationError{Field: "name", Reason: "product name is required"}
	}
	if strings.TrimSpace(in.CategoryID) == "" {
		return &common.ValidationError{Field: "categoryId", Reason: "category is required"}
	}
	if in.Diamonds < 0 {
		return &common.ValidationError{Field: "diamonds", Reason: "must not be negative"}
	}
	if !in.Price.IsPositive() {
		return &common.ValidationError{Field: "price", Reason: "must be greater than zero"}
	}
	return nil
}

// ProductPatch is a partial update; nil fields are left untouched. It is
// also the PUT body sent to the backend.
type ProductPatch struct {
	CategoryID *string          `json:"categoryId,omitempty"`
	Name       *string          `json:"name,omitempty"`
	Diamonds   *int             `json:"diamonds,omitempty"`
	Price      *decimal.Decimal `json:"price,omitempty"`
	Bonus      *string          `json:"bonus,omitempty"`
	Tag        *string          `json:"tag,omitempty"`
}

func (p ProductPatch) Validate() error {
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return &common.ValidationError{Field: "name", Reason: "product name is required"}
	}
	if p.CategoryID != nil && strings.TrimSpace(*p.CategoryID) == "" {
		return &common.ValidationError{Field: "categoryId", Reason: "category is required"}
	}
	if p.Diamonds != nil && *p.Diamonds < 0 {
		return &common.ValidationError{Field: "diamonds", Reason: "must not be negative"}
	}
	if p.Price != nil && !p.Price.IsPositive() {
		return &common.ValidationError{Field: "price", Reason: "must be greater than zero"}
	}
	return nil
}

func (p ProductPatch) IsEmpty() bool {
	return p.CategoryID == nil && p.Name == nil && p.Diamonds == nil &&
		p.Price == nil && p.Bonus == nil && p.Tag == nil
}

func (p ProductPatch) Apply(pr Product) Product {
	if p.CategoryID != nil {
		pr.CategoryID = *p.CategoryID
	}
	if p.Name != nil {
		pr.Name = *p.Name
	}
	if p.Diamonds != nil {
		pr.Diamonds = *p.Diamonds
	}
	if p.Price != nil {
		pr.Price = *p.Price
	}
	if p.Bonus != nil {
		pr.Bonus = *p.Bonus
	}
	if p.Tag != nil {
		pr.Tag = *p.Tag
	}
	return pr
}

// FindProduct returns the product with id, if present.
func FindProduct(products []Product, id string) (Product, bool) {
	for _, p := range products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

// InCategory returns the products whose CategoryID is categoryID.
func InCategory(products []Product, categoryID string) []Product {
	out := make([]Product, 0, len(products))
	for _, p := range products {
		if p.CategoryID == categoryID {
			out = append(out, p)
		}
	}
	return out
}

// SortedByDiamonds returns a copy ordered by diamonds ascending, then name.
func SortedByDiamonds(products []Product) []Product {
	out := slices.Clone(products)
	slices.SortStableFunc(out, func(a, b Product) int {
		return cmp.Or(cmp.Compare(a.Diamonds, b.Diamonds), strings.Compare(a.Name, b.Name))
	})
	return out
}
