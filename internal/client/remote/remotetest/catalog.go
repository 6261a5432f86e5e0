package remotetest

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrijs2005/diamondstore/internal/client/models"
)

func (b *Backend) categoryIndex(id string) int {
	for i, c := range b.categories {
		if c.ID == id {
			return i
		}
	}
	return -1
}

func (b *Backend) productIndex(id string) int {
	for i, p := range b.products {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func (b *Backend) listCategories(w http.ResponseWriter, _ *http.Request, _ []byte) {
	writeList(w, b.categories)
}

func (b *Backend) createCategory(w http.ResponseWriter, _ *http.Request, body []byte) {
	var c models.BackendCategory
	if err := json.Unmarshal(body, &c); err != nil {
		writeFail(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if c.ID == "" || strings.TrimSpace(c.Name) == "" {
		writeFail(w, http.StatusBadRequest, "id and name are required")
		return
	}
	if b.categoryIndex(c.ID) >= 0 {
		writeFail(w, http.StatusConflict, "duplicate")
		return
	}
	c.ObjectID = newObjectID()
	c.CreatedAt = b.stamp()
	b.categories = append(b.categories, c)
	writeOK(w, http.StatusCreated, c)
}

func (b *Backend) updateCategory(w http.ResponseWriter, r *http.Request, body []byte) {
	i := b.categoryIndex(chi.URLParam(r, "id"))
	if i < 0 {
		writeFail(w, http.StatusNotFound, "category not found")
		return
	}
	var patch models.CategoryPatch
	if err := json.Unmarshal(body, &patch); err != nil {
		writeFail(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	c := b.categories[i]
	if patch.Name != nil {
		c.Name = *patch.Name
	}
	if patch.Description != nil {
		c.Description = *patch.Description
	}
	if patch.Badge != nil {
		c.Badge = *patch.Badge
	}
	b.categories[i] = c
	writeOK(w, http.StatusOK, c)
}

func (b *Backend) deleteCategory(w http.ResponseWriter, r *http.Request, _ []byte) {
	id := chi.URLParam(r, "id")
	i := b.categoryIndex(id)
	if i < 0 {
		writeFail(w, http.StatusNotFound, "category not found")
		return
	}
	b.categories[i].IsActive = false
	for j := range b.products {
		if b.products[j].CategoryID == id {
			b.products[j].IsActive = false
		}
	}
	writeJSON(w, http.StatusOK, models.Envelope[any]{Success: true, Message: "category deleted"})
}

func (b *Backend) listProducts(w http.ResponseWriter, _ *http.Request, _ []byte) {
	writeList(w, b.products)
}

func (b *Backend) listProductsByCategory(w http.ResponseWriter, r *http.Request, _ []byte) {
	id := chi.URLParam(r, "categoryId")
	var out []models.BackendProduct
	for _, p := range b.products {
		if p.CategoryID == id && p.IsActive {
			out = append(out, p)
		}
	}
	writeList(w, out)
}

func (b *Backend) getProduct(w http.ResponseWriter, r *http.Request, _ []byte) {
	i := b.productIndex(chi.URLParam(r, "id"))
	if i < 0 {
		writeFail(w, http.StatusNotFound, "product not found")
		return
	}
	writeOK(w, http.StatusOK, b.products[i])
}

func (b *Backend) createProduct(w http.ResponseWriter, _ *http.Request, body []byte) {
	var p models.BackendProduct
	if err := json.Unmarshal(body, &p); err != nil {
		writeFail(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if p.ID == "" || strings.TrimSpace(p.Name) == "" || !p.Price.IsPositive() {
		writeFail(w, http.StatusBadRequest, "id, name and a positive price are required")
		return
	}
	if b.productIndex(p.ID) >= 0 {
		writeFail(w, http.StatusConflict, "duplicate")
		return
	}
	if p.CategoryName == "" {
		p.CategoryName = models.UnknownCategoryName
		if i := b.categoryIndex(p.CategoryID); i >= 0 {
			p.CategoryName = b.categories[i].Name
		}
	}
	p.ObjectID = newObjectID()
	p.CreatedAt = b.stamp()
	b.products = append(b.products, p)
	writeOK(w, http.StatusCreated, p)
}

func (b *Backend) updateProduct(w http.ResponseWriter, r *http.Request, body []byte) {
	i := b.productIndex(chi.URLParam(r, "id"))
	if i < 0 {
		writeFail(w, http.StatusNotFound, "product not found")
		return
	}
	var patch models.ProductPatch
	if err := json.Unmarshal(body, &patch); err != nil {
		writeFail(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	p := b.products[i]
	if patch.CategoryID != nil {
		p.CategoryID = *patch.CategoryID
	}
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Diamonds != nil {
		p.Diamonds = *patch.Diamonds
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.Bonus != nil {
		p.Bonus = *patch.Bonus
	}
	if patch.Tag != nil {
		p.Tag = *patch.Tag
	}
	b.products[i] = p
	writeOK(w, http.StatusOK, p)
}

func (b *Backend) deleteProduct(w http.ResponseWriter, r *http.Request, _ []byte) {
	i := b.productIndex(chi.URLParam(r, "id"))
	if i < 0 {
		writeFail(w, http.StatusNotFound, "product not found")
		return
	}
	b.products[i].IsActive = false
	writeJSON(w, http.StatusOK, models.Envelope[any]{Success: true, Message: "product deleted"})
}
