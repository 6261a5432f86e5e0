package models

import (
	"strings"

	"github.com/dmitrijs2005/diamondstore/internal/common"
)

type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Badge       string `json:"badge,omitempty"`
}

// CategoryInput is what an admin submits to create a category.
type CategoryInput struct {
	Name        string
	Description string
	Badge       string
}

// Normalize trims every field.
func (in CategoryInput) Normalize() CategoryInput {
	return CategoryInput{
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		Badge:       strings.TrimSpace(in.Badge),
	}
}

func (in CategoryInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return &common.ValidationError{Field: "name", Reason: "category name is required"}
	}
	return nil
}

// CategoryPatch is a partial update; nil fields are left untouched. It is
// also the PUT body sent to the backend.
type CategoryPatch struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Badge       *string `json:"badge,omitempty"`
}

func (p CategoryPatch) Validate() error {
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return &common.ValidationError{Field: "name", Reason: "category name is required"}
	}
	return nil
}

func (p CategoryPatch) IsEmpty() bool {
	return p.Name == nil && p.Description == nil && p.Badge == nil
}

func (p CategoryPatch) Apply(c Category) Category {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Description != nil {
		c.Description = *p.Description
	}
	if p.Badge != nil {
		c.Badge = *p.Badge
	}
	return c
}

// FindCategory returns the category with id, if present.
func FindCategory(categories []Category, id string) (Category, bool) {
	for _, c := range categories {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}
