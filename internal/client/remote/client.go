package remote

import (
	"context"

	"github.com/dmitrijs2005/diamondstore/internal/client/models"
)

// DefaultPaymentsLimit is used by ListPayments when limit <= 0.
const DefaultPaymentsLimit = 50

type Client interface {
	ListProducts(ctx context.Context) (*models.Envelope[[]models.BackendProduct], error)
	GetProduct(ctx context.Context, id string) (*models.Envelope[*models.BackendProduct], error)
	ListProductsByCategory(ctx context.Context, categoryID string) (*models.Envelope[[]models.BackendProduct], error)
	CreateProduct(ctx context.Context, p models.BackendProduct) (*models.Envelope[*models.BackendProduct], error)
	UpdateProduct(ctx context.Context, id string, patch models.ProductPatch) (*models.Envelope[*models.BackendProduct], error)
	DeleteProduct(ctx context.Context, id string) (*models.RawEnvelope, error)

	ListCategories(ctx context.Context) (*models.Envelope[[]models.BackendCategory], error)
	CreateCategory(ctx context.Context, c models.BackendCategory) (*models.Envelope[*models.BackendCategory], error)
	UpdateCategory(ctx context.Context, id string, patch models.CategoryPatch) (*models.Envelope[*models.BackendCategory], error)
	DeleteCategory(ctx context.Context, id string) (*models.RawEnvelope, error)

	VerifyPayment(ctx context.Context, p models.PaymentData) (*models.RawEnvelope, error)
	PaymentStatus(ctx context.Context, transactionID string) (*models.Envelope[*models.Payment], error)
	ListPayments(ctx context.Context, limit int) (*models.Envelope[[]models.Payment], error)

	Seed(ctx context.Context) (*models.RawEnvelope, error)
}
