package services

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/dmitrijs2005/diamondstore/internal/client/models"
	"github.com/dmitrijs2005/diamondstore/internal/client/remote"
)

// fakeClient is an in-memory remote.Client. Each operation returns the
// preset envelope/error; created records are captured for assertions.
type fakeClient struct {
	mu sync.Mutex

	products    *models.Envelope[[]models.BackendProduct]
	productsErr error

	categories    *models.Envelope[[]models.BackendCategory]
	categoriesErr error

	createResult models.RawEnvelope
	createErr    error
	updateResult models.RawEnvelope
	updateErr    error
	deleteResult models.RawEnvelope
	deleteErr    error
	verifyResult models.RawEnvelope
	verifyErr    error
	statusResult *models.Envelope[*models.Payment]
	paymentsList *models.Envelope[[]models.Payment]
	seedResult   models.RawEnvelope

	createdProducts   []models.BackendProduct
	createdCategories []models.BackendCategory
	verified          []models.PaymentData
	calls             map[string]int
}

var _ remote.Client = (*fakeClient)(nil)

var okEnvelope = models.RawEnvelope{Success: true}

func newFakeClient() *fakeClient {
	return &fakeClient{
		products:     &models.Envelope[[]models.BackendProduct]{Success: true, Data: []models.BackendProduct{}},
		categories:   &models.Envelope[[]models.BackendCategory]{Success: true, Data: []models.BackendCategory{}},
		createResult: okEnvelope,
		updateResult: okEnvelope,
		deleteResult: okEnvelope,
		verifyResult: okEnvelope,
		seedResult:   okEnvelope,
		calls:        map[string]int{},
	}
}

func (f *fakeClient) hit(op string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[op]++
}

func (f *fakeClient) count(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

func envOf[T any](raw models.RawEnvelope) *models.Envelope[T] {
	return &models.Envelope[T]{Success: raw.Success, Message: raw.Message}
}

func (f *fakeClient) ListProducts(context.Context) (*models.Envelope[[]models.BackendProduct], error) {
	f.hit("ListProducts")
	if f.productsErr != nil {
		return nil, f.productsErr
	}
	return f.products, nil
}

func (f *fakeClient) GetProduct(context.Context, string) (*models.Envelope[*models.BackendProduct], error) {
	return nil, errors.New("not used")
}

func (f *fakeClient) ListProductsByCategory(context.Context, string) (*models.Envelope[[]models.BackendProduct], error) {
	return nil, errors.New("not used")
}

func (f *fakeClient) CreateProduct(_ context.Context, p models.BackendProduct) (*models.Envelope[*models.BackendProduct], error) {
	f.hit("CreateProduct")
	f.mu.Lock()
	f.createdProducts = append(f.createdProducts, p)
	f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	return envOf[*models.BackendProduct](f.createResult), nil
}

func (f *fakeClient) UpdateProduct(context.Context, string, models.ProductPatch) (*models.Envelope[*models.BackendProduct], error) {
	f.hit("UpdateProduct")
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return envOf[*models.BackendProduct](f.updateResult), nil
}

func (f *fakeClient) DeleteProduct(context.Context, string) (*models.RawEnvelope, error) {
	f.hit("DeleteProduct")
	if f.deleteErr != nil {
		return nil, f.deleteErr
	}
	r := f.deleteResult
	return &r, nil
}

func (f *fakeClient) ListCategories(context.Context) (*models.Envelope[[]models.BackendCategory], error) {
	f.hit("ListCategories")
	if f.categoriesErr != nil {
		return nil, f.categoriesErr
	}
	return f.categories, nil
}

func (f *fakeClient) CreateCategory(_ context.Context, c models.BackendCategory) (*models.Envelope[*models.BackendCategory], error) {
	f.hit("CreateCategory")
	f.mu.Lock()
	f.createdCategories = append(f.createdCategories, c)
	f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	return envOf[*models.BackendCategory](f.createResult), nil
}

func (f *fakeClient) UpdateCategory(context.Context, string, models.CategoryPatch) (*models.Envelope[*models.BackendCategory], error) {
	f.hit("UpdateCategory")
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return envOf[*models.BackendCategory](f.updateResult), nil
}

func (f *fakeClient) DeleteCategory(context.Context, string) (*models.RawEnvelope, error) {
	f.hit("DeleteCategory")
	if f.deleteErr != nil {
		return nil, f.deleteErr
	}
	r := f.deleteResult
	return &r, nil
}

func (f *fakeClient) VerifyPayment(_ context.Context, p models.PaymentData) (*models.RawEnvelope, error) {
	f.hit("VerifyPayment")
	f.mu.Lock()
	f.verified = append(f.verified, p)
	f.mu.Unlock()
	if f.verifyErr != nil {
		return nil, f.verifyErr
	}
	r := f.verifyResult
	return &r, nil
}

func (f *fakeClient) PaymentStatus(context.Context, string) (*models.Envelope[*models.Payment], error) {
	f.hit("PaymentStatus")
	if f.statusResult == nil {
		return &models.Envelope[*models.Payment]{Success: false, Message: "payment not found"}, nil
	}
	return f.statusResult, nil
}

func (f *fakeClient) ListPayments(context.Context, int) (*models.Envelope[[]models.Payment], error) {
	f.hit("ListPayments")
	if f.paymentsList == nil {
		return &models.Envelope[[]models.Payment]{Success: true, Data: []models.Payment{}}, nil
	}
	return f.paymentsList, nil
}

func (f *fakeClient) Seed(context.Context) (*models.RawEnvelope, error) {
	f.hit("Seed")
	r := f.seedResult
	return &r, nil
}

// memBackup is a SnapshotStore that keeps the encoded snapshot in memory.
type memBackup struct {
	mu      sync.Mutex
	data    []byte
	saves   int
	saveErr error
	loadErr error
}

func (m *memBackup) Save(_ context.Context, snap models.Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves++
	if m.saveErr != nil {
		return m.saveErr
	}
	b, err := json.Marshal(models.NewSnapshot(snap.Categories, snap.Products))
	if err != nil {
		return err
	}
	m.data = b
	return nil
}

func (m *memBackup) Load(context.Context) (*models.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	if m.data == nil {
		return nil, nil
	}
	var s models.Snapshot
	if err := json.Unmarshal(m.data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (m *memBackup) snapshot() *models.Snapshot {
	s, _ := m.Load(context.Background())
	return s
}

func (m *memBackup) saveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}
