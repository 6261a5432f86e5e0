package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/diamondstore/internal/client/models"
	"github.com/dmitrijs2005/diamondstore/internal/client/remote"
	"github.com/dmitrijs2005/diamondstore/internal/common"
	"github.com/dmitrijs2005/diamondstore/internal/logging"
)

// SnapshotStore is the backup the catalog persists to. *backup.Cache
// implements it.
type SnapshotStore interface {
	Save(ctx context.Context, snap models.Snapshot) error
	Load(ctx context.Context) (*models.Snapshot, error)
}

// CatalogService is the single owner of the client-side catalog.
//
// Contract:
//   - Load/Refresh: fetch both collections; on any failure switch to
//     StatusDegraded and adopt whatever the backup holds.
//   - Add*/Update*/Delete*: call the backend first, then change local state
//     and persist the backup. Nothing local changes on failure, except
//     creates in WriteOptimistic mode.
//   - DeleteCategory also removes every product of that category.
//
// All methods are safe for concurrent use.
type CatalogService interface {
	Load(ctx context.Context) error
	Refresh(ctx context.Context) error
	State() State

	FindCategory(id string) (models.Category, bool)
	FindProduct(id string) (models.Product, bool)
	ProductsInCategory(categoryID string) []models.Product
	SortedProducts() []models.Product

	AddCategory(ctx context.Context, in models.CategoryInput) (models.Category, error)
	UpdateCategory(ctx context.Context, id string, patch models.CategoryPatch) (models.Category, error)
	DeleteCategory(ctx context.Context, id string) error

	AddProduct(ctx context.Context, in models.ProductInput) (models.Product, error)
	UpdateProduct(ctx context.Context, id string, patch models.ProductPatch) (models.Product, error)
	DeleteProduct(ctx context.Context, id string) error
}

type catalogService struct {
	client remote.Client
	backup SnapshotStore
	log    logging.Logger
	mode   WriteMode
	newID  func() string

	mu         sync.RWMutex
	categories []models.Category
	products   []models.Product
	loading    int
	status     Status
	err        error

	// persistMu orders snapshot writes so the last one holds the newest state.
	persistMu sync.Mutex
}

type CatalogOption func(*catalogService)

func WithWriteMode(m WriteMode) CatalogOption {
	return func(s *catalogService) { s.mode = m }
}

// WithIDGenerator replaces uuid.NewString for new records.
func WithIDGenerator(f func() string) CatalogOption {
	return func(s *catalogService) { s.newID = f }
}

// NewCatalogService returns an empty catalog in StatusLoading. Call Load to
// populate it.
func NewCatalogService(client remote.Client, backup SnapshotStore, log logging.Logger, opts ...CatalogOption) CatalogService {
	s := &catalogService{
		client:     client,
		backup:     backup,
		log:        log.With("component", "catalog"),
		mode:       WriteStrict,
		newID:      uuid.NewString,
		categories: []models.Category{},
		products:   []models.Product{},
		status:     StatusLoading,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *catalogService) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return State{
		Categories: slices.Clone(s.categories),
		Products:   slices.Clone(s.products),
		Loading:    s.loading > 0,
		Err:        s.err,
		Status:     s.status,
	}
}

func (s *catalogService) FindCategory(id string) (models.Category, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return models.FindCategory(s.categories, id)
}

func (s *catalogService) FindProduct(id string) (models.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return models.FindProduct(s.products, id)
}

// ProductsInCategory returns the category's products ordered by diamonds.
func (s *catalogService) ProductsInCategory(categoryID string) []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return models.SortedByDiamonds(models.InCategory(s.products, categoryID))
}

func (s *catalogService) SortedProducts() []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return models.SortedByDiamonds(s.products)
}

// Load fetches products and categories concurrently. Both must succeed for
// the result to be adopted; the backup is then written once.
//
// On failure the returned error is a *DegradedError and the state keeps
// any part of the backup that could be read. A corrupt backup is logged and
// ignored.
func (s *catalogService) Load(ctx context.Context) error {
	s.mu.Lock()
	s.loading++
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.loading--
		s.mu.Unlock()
	}()

	var (
		products   []models.BackendProduct
		categories []models.BackendCategory
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		res, err := s.client.ListProducts(gctx)
		if err != nil {
			return err
		}
		if !res.Success {
			return common.NewServerError(res.Message, "failed to load products")
		}
		if res.Data == nil {
			return common.NewServerError("", "products response has no data")
		}
		products = res.Data
		return nil
	})
	g.Go(func() error {
		res, err := s.client.ListCategories(gctx)
		if err != nil {
			return err
		}
		if !res.Success {
			return common.NewServerError(res.Message, "failed to load categories")
		}
		if res.Data == nil {
			return common.NewServerError("", "categories response has no data")
		}
		categories = res.Data
		return nil
	})

	if err := g.Wait(); err != nil {
		return s.fallback(ctx, err)
	}

	cats := models.ActiveCategories(categories)
	prods := models.ActiveProducts(products)

	s.mu.Lock()
	s.categories = cats
	s.products = prods
	s.status = StatusReady
	s.err = nil
	s.mu.Unlock()

	s.log.Info(ctx, "catalog loaded", "categories", len(cats), "products", len(prods))
	s.persist(ctx)
	return nil
}

func (s *catalogService) Refresh(ctx context.Context) error {
	return s.Load(ctx)
}

func (s *catalogService) fallback(ctx context.Context, cause error) error {
	derr := &DegradedError{Cause: cause}
	s.log.Warn(ctx, "catalog load failed, using backup", "error", cause)

	snap, err := s.backup.Load(ctx)
	if err != nil {
		var ce *common.CacheCorruptError
		if errors.As(err, &ce) {
			s.log.Warn(ctx, "backup is corrupt, ignoring it", "key", ce.Key, "error", ce.Err)
		} else {
			s.log.Error(ctx, "failed to read backup", "error", err)
		}
		snap = nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = StatusDegraded
	s.err = derr
	if snap != nil {
		if snap.Categories != nil {
			s.categories = snap.Categories
		}
		if snap.Products != nil {
			s.products = snap.Products
		}
	}
	return derr
}

// persist writes the current state to the backup. Failures are logged:
// the backup is a cache and the in-memory state is already correct.
func (s *catalogService) persist(ctx context.Context) {
	s.persistMu.Lock()
	defer s.persistMu.Unlock()

	s.mu.RLock()
	snap := models.NewSnapshot(s.categories, s.products)
	s.mu.RUnlock()

	if err := s.backup.Save(ctx, snap); err != nil {
		s.log.Error(ctx, "failed to save catalog backup", "error", err)
	}
}

// serverResult turns a success=false envelope into a *common.ServerError,
// using fallback when the server sent no message.
func serverResult(success bool, message, fallback string) error {
	if !success {
		return common.NewServerError(message, fallback)
	}
	return nil
}

func (s *catalogService) AddCategory(ctx context.Context, in models.CategoryInput) (models.Category, error) {
	in = in.Normalize()
	if err := in.Validate(); err != nil {
		return models.Category{}, err
	}

	cat := models.Category{ID: s.newID(), Name: in.Name, Description: in.Description, Badge: in.Badge}

	res, err := s.client.CreateCategory(ctx, models.NewBackendCategory(cat))
	if err == nil {
		err = serverResult(res.Success, res.Message, "failed to create category")
	}
	if err != nil {
		s.log.Warn(ctx, "create category failed", "id", cat.ID, "error", err)
		if s.mode != WriteOptimistic {
			return models.Category{}, err
		}
	}

	s.mu.Lock()
	s.categories = append(s.categories, cat)
	s.mu.Unlock()
	s.persist(ctx)

	return cat, err
}

func (s *catalogService) UpdateCategory(ctx context.Context, id string, patch models.CategoryPatch) (models.Category, error) {
	if err := patch.Validate(); err != nil {
		return models.Category{}, err
	}
	if _, ok := s.FindCategory(id); !ok {
		return models.Category{}, fmt.Errorf("category %s: %w", id, common.ErrNotFound)
	}

	res, err := s.client.UpdateCategory(ctx, id, patch)
	if err == nil {
		err = serverResult(res.Success, res.Message, "failed to update category")
	}
	if err != nil {
		s.log.Warn(ctx, "update category failed", "id", id, "error", err)
		return models.Category{}, err
	}

	var updated models.Category
	s.mu.Lock()
	next := slices.Clone(s.categories)
	for i, c := range next {
		if c.ID == id {
			next[i] = patch.Apply(c)
			updated = next[i]
		}
	}
	s.categories = next
	s.mu.Unlock()
	s.persist(ctx)

	return updated, nil
}

// DeleteCategory removes the category and, once the backend confirms,
// every local product that belongs to it.
func (s *catalogService) DeleteCategory(ctx context.Context, id string) error {
	if _, ok := s.FindCategory(id); !ok {
		return fmt.Errorf("category %s: %w", id, common.ErrNotFound)
	}

	res, err := s.client.DeleteCategory(ctx, id)
	if err == nil {
		err = serverResult(res.Success, res.Message, "failed to delete category")
	}
	if err != nil {
		s.log.Warn(ctx, "delete category failed", "id", id, "error", err)
		return err
	}

	s.mu.Lock()
	s.categories = slices.DeleteFunc(slices.Clone(s.categories), func(c models.Category) bool { return c.ID == id })
	s.products = slices.DeleteFunc(slices.Clone(s.products), func(p models.Product) bool { return p.CategoryID == id })
	s.mu.Unlock()
	s.persist(ctx)

	return nil
}

func (s *catalogService) AddProduct(ctx context.Context, in models.ProductInput) (models.Product, error) {
	in = in.Normalize()
	if err := in.Validate(); err != nil {
		return models.Product{}, err
	}

	categoryName := models.UnknownCategoryName
	if c, ok := s.FindCategory(in.CategoryID); ok {
		categoryName = c.Name
	}

	p := models.Product{
		ID:         s.newID(),
		CategoryID: in.CategoryID,
		Name:       in.Name,
		Diamonds:   in.Diamonds,
		Price:      in.Price,
		Bonus:      in.Bonus,
		Tag:        in.Tag,
	}

	res, err := s.client.CreateProduct(ctx, models.NewBackendProduct(p, categoryName))
	if err == nil {
		err = serverResult(res.Success, res.Message, "failed to create product")
	}
	if err != nil {
		s.log.Warn(ctx, "create product failed", "id", p.ID, "error", err)
		if s.mode != WriteOptimistic {
			return models.Product{}, err
		}
	}

	s.mu.Lock()
	s.products = append(s.products, p)
	s.mu.Unlock()
	s.persist(ctx)

	return p, err
}

func (s *catalogService) UpdateProduct(ctx context.Context, id string, patch models.ProductPatch) (models.Product, error) {
	if err := patch.Validate(); err != nil {
		return models.Product{}, err
	}
	if _, ok := s.FindProduct(id); !ok {
		return models.Product{}, fmt.Errorf("product %s: %w", id, common.ErrNotFound)
	}

	res, err := s.client.UpdateProduct(ctx, id, patch)
	if err == nil {
		err = serverResult(res.Success, res.Message, "failed to update product")
	}
	if err != nil {
		s.log.Warn(ctx, "update product failed", "id", id, "error", err)
		return models.Product{}, err
	}

	var updated models.Product
	s.mu.Lock()
	next := slices.Clone(s.products)
	for i, p := range next {
		if p.ID == id {
			next[i] = patch.Apply(p)
			updated = next[i]
		}
	}
	s.products = next
	s.mu.Unlock()
	s.persist(ctx)

	return updated, nil
}

func (s *catalogService) DeleteProduct(ctx context.Context, id string) error {
	if _, ok := s.FindProduct(id); !ok {
		return fmt.Errorf("product %s: %w", id, common.ErrNotFound)
	}

	res, err := s.client.DeleteProduct(ctx, id)
	if err == nil {
		err = serverResult(res.Success, res.Message, "failed to delete product")
	}
	if err != nil {
		s.log.Warn(ctx, "delete product failed", "id", id, "error", err)
		return err
	}

	s.mu.Lock()
	s.products = slices.DeleteFunc(slices.Clone(s.products), func(p models.Product) bool { return p.ID == id })
	s.mu.Unlock()
	s.persist(ctx)

	return nil
}
