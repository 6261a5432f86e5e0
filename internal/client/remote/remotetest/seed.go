package remotetest

import (
	"errors"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/dmitrijs2005/diamondstore/internal/client/models"
)

func seedCategories() []models.BackendCategory {
	return []models.BackendCategory{
		{ID: "mlbb", Name: "Mobile Legends", Description: "Diamonds for Mobile Legends: Bang Bang", Badge: "HOT", IsActive: true},
		{ID: "ff", Name: "Free Fire", Description: "Free Fire diamond top-up", IsActive: true},
	}
}

func seedProducts() []models.BackendProduct {
	p := func(id, cat, catName, name string, diamonds int, price, bonus, tag string) models.BackendProduct {
		return models.BackendProduct{
			ID: id, CategoryID: cat, CategoryName: catName, Name: name,
			Diamonds: diamonds, Price: decimal.RequireFromString(price),
			Bonus: bonus, Tag: tag, IsActive: true,
		}
	}
	return []models.BackendProduct{
		p("mlbb-86", "mlbb", "Mobile Legends", "86 Diamonds", 86, "120", "", ""),
		p("mlbb-172", "mlbb", "Mobile Legends", "172 Diamonds", 172, "235", "+8 bonus", "POPULAR"),
		p("mlbb-wdp", "mlbb", "Mobile Legends", "Weekly Diamond Pass", 0, "160", "", "PASS"),
		p("ff-100", "ff", "Free Fire", "100 Diamonds", 100, "85", "", ""),
		p("ff-310", "ff", "Free Fire", "310 Diamonds", 310, "255", "+31 bonus", "BEST VALUE"),
	}
}

// ErrSeeded is returned by Seed when the backend already holds data.
var ErrSeeded = errors.New("database already seeded")

// Seed loads the sample catalog, as POST /products/seed does.
func (b *Backend) Seed() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.loadSample()
}

func (b *Backend) loadSample() error {
	if len(b.categories) > 0 || len(b.products) > 0 {
		return ErrSeeded
	}
	for _, c := range seedCategories() {
		c.ObjectID = newObjectID()
		c.CreatedAt = b.stamp()
		b.categories = append(b.categories, c)
	}
	for _, p := range seedProducts() {
		p.ObjectID = newObjectID()
		p.CreatedAt = b.stamp()
		b.products = append(b.products, p)
	}
	return nil
}

// seed loads sample data once; a second call fails.
func (b *Backend) seed(w http.ResponseWriter, _ *http.Request, _ []byte) {
	if err := b.loadSample(); err != nil {
		writeFail(w, http.StatusConflict, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, models.Envelope[any]{Success: true, Message: "database seeded"})
}
