package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/shopspring/decimal"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/diamondstore/internal/client/backup"
	"github.com/dmitrijs2005/diamondstore/internal/client/models"
	"github.com/dmitrijs2005/diamondstore/internal/client/remote"
	"github.com/dmitrijs2005/diamondstore/internal/client/remote/remotetest"
	"github.com/dmitrijs2005/diamondstore/internal/client/store"
	"github.com/dmitrijs2005/diamondstore/internal/common"
	"github.com/dmitrijs2005/diamondstore/internal/logging"
)

var cmpDecimal = cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) })

func seqIDs() func() string {
	var mu sync.Mutex
	n := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func newCatalog(t *testing.T, fc *fakeClient, mb *memBackup, opts ...CatalogOption) *catalogService {
	t.Helper()
	opts = append([]CatalogOption{WithIDGenerator(seqIDs())}, opts...)
	return NewCatalogService(fc, mb, logging.NewNop(), opts...).(*catalogService)
}

// seeded returns a catalog already holding categories and products.
func seeded(t *testing.T, fc *fakeClient, mb *memBackup, cats []models.Category, prods []models.Product, opts ...CatalogOption) *catalogService {
	t.Helper()
	s := newCatalog(t, fc, mb, opts...)
	s.categories = cats
	s.products = prods
	s.status = StatusReady
	return s
}

func TestCatalog_InitialState(t *testing.T) {
	s := newCatalog(t, newFakeClient(), &memBackup{})
	st := s.State()
	assert.Equal(t, StatusLoading, st.Status)
	assert.Empty(t, st.Categories)
	assert.Empty(t, st.Products)
	assert.NoError(t, st.Err)
}

func TestCatalog_LoadFiltersInactive(t *testing.T) {
	fc := newFakeClient()
	fc.categories.Data = []models.BackendCategory{
		{ID: "c1", Name: "ML", IsActive: true},
		{ID: "c2", Name: "Old", IsActive: false},
	}
	fc.products.Data = []models.BackendProduct{
		{ID: "p1", CategoryID: "c1", Name: "86", Diamonds: 86, Price: decimal.NewFromInt(45), IsActive: true},
		{ID: "p2", CategoryID: "c1", Name: "gone", Diamonds: 1, Price: decimal.NewFromInt(1), IsActive: false},
	}
	mb := &memBackup{}
	s := newCatalog(t, fc, mb)

	require.NoError(t, s.Load(context.Background()))

	st := s.State()
	assert.Equal(t, StatusReady, st.Status)
	assert.False(t, st.Loading)
	require.Len(t, st.Categories, 1)
	require.Len(t, st.Products, 1)
	assert.Equal(t, "c1", st.Categories[0].ID)
	assert.Equal(t, "p1", st.Products[0].ID)

	assert.Equal(t, 1, mb.saveCount(), "snapshot is written once per load")
	snap := mb.snapshot()
	require.NotNil(t, snap)
	assert.Len(t, snap.Categories, 1)
	assert.Len(t, snap.Products, 1)
}

func TestCatalog_LoadFailureFallsBackToSnapshot(t *testing.T) {
	cats := []models.Category{{ID: "c1", Name: "ML"}}
	prods := []models.Product{{ID: "p1", CategoryID: "c1", Name: "86", Diamonds: 86, Price: decimal.NewFromInt(45)}}

	tests := []struct {
		name    string
		breakIt func(*fakeClient)
	}{
		{"products transport error", func(f *fakeClient) {
			f.productsErr = &common.NetworkError{Op: "list products", Err: errors.New("refused")}
		}},
		{"categories success=false", func(f *fakeClient) {
			f.categories = &models.Envelope[[]models.BackendCategory]{Success: false, Message: "db down"}
		}},
		{"products without data", func(f *fakeClient) {
			f.products = &models.Envelope[[]models.BackendProduct]{Success: true}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mb := &memBackup{}
			require.NoError(t, mb.Save(context.Background(), models.NewSnapshot(cats, prods)))

			fc := newFakeClient()
			tt.breakIt(fc)
			s := newCatalog(t, fc, mb)

			err := s.Load(context.Background())
			require.Error(t, err)
			assert.ErrorIs(t, err, common.ErrBackendUnavailable)
			assert.Equal(t, "backend connection failed, using local backup", err.Error())

			st := s.State()
			assert.Equal(t, StatusDegraded, st.Status)
			assert.False(t, st.Loading)
			assert.Equal(t, err, st.Err)
			assert.Empty(t, cmp.Diff(cats, st.Categories))
			assert.Empty(t, cmp.Diff(prods, st.Products, cmpDecimal))
			assert.Equal(t, 1, mb.saveCount(), "fallback does not rewrite the backup")
		})
	}
}

func TestCatalog_DegradedErrorKeepsCause(t *testing.T) {
	cause := &common.NetworkError{Op: "list categories", Err: errors.New("timeout")}
	fc := newFakeClient()
	fc.categoriesErr = cause
	s := newCatalog(t, fc, &memBackup{})

	err := s.Load(context.Background())
	var ne *common.NetworkError
	require.ErrorAs(t, err, &ne)
	assert.Same(t, cause, ne)
}

func TestCatalog_FallbackAdoptsPartialSnapshot(t *testing.T) {
	mb := &memBackup{data: []byte(`{"products":[{"id":"p1","categoryId":"c1","name":"86","diamonds":86,"price":45}]}`)}
	fc := newFakeClient()
	fc.productsErr = errors.New("down")

	s := seeded(t, fc, mb, []models.Category{{ID: "keep", Name: "Kept"}}, nil)
	require.Error(t, s.Load(context.Background()))

	st := s.State()
	require.Len(t, st.Products, 1)
	assert.Equal(t, "p1", st.Products[0].ID)
	require.Len(t, st.Categories, 1, "absent categories leave the previous ones")
	assert.Equal(t, "keep", st.Categories[0].ID)
}

func TestCatalog_FallbackWithoutSnapshot(t *testing.T) {
	fc := newFakeClient()
	fc.productsErr = errors.New("down")
	s := newCatalog(t, fc, &memBackup{})

	require.Error(t, s.Load(context.Background()))
	st := s.State()
	assert.Equal(t, StatusDegraded, st.Status)
	assert.Empty(t, st.Products)
	assert.Empty(t, st.Categories)
}

func TestCatalog_FallbackCorruptSnapshotIsIgnored(t *testing.T) {
	mb := &memBackup{loadErr: &common.CacheCorruptError{Key: common.CatalogBackupKey, Err: errors.New("bad json")}}
	fc := newFakeClient()
	fc.categoriesErr = errors.New("down")

	prev := []models.Product{{ID: "p0", Name: "prev", Price: decimal.NewFromInt(1)}}
	s := seeded(t, fc, mb, nil, prev)

	err := s.Load(context.Background())
	require.Error(t, err)
	assert.False(t, common.IsValidation(err))

	st := s.State()
	assert.Equal(t, StatusDegraded, st.Status)
	require.Len(t, st.Products, 1)
	assert.Equal(t, "p0", st.Products[0].ID)
}

func TestCatalog_RecoversAfterDegraded(t *testing.T) {
	fc := newFakeClient()
	fc.productsErr = errors.New("down")
	s := newCatalog(t, fc, &memBackup{})

	require.Error(t, s.Load(context.Background()))
	fc.productsErr = nil
	require.NoError(t, s.Refresh(context.Background()))

	st := s.State()
	assert.Equal(t, StatusReady, st.Status)
	assert.NoError(t, st.Err)
}

func TestCatalog_ConcurrentLoads(t *testing.T) {
	fc := newFakeClient()
	fc.products.Data = []models.BackendProduct{{ID: "p1", Price: decimal.NewFromInt(1), IsActive: true}}
	s := newCatalog(t, fc, &memBackup{})

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Refresh(context.Background())
		}()
	}
	wg.Wait()

	st := s.State()
	assert.False(t, st.Loading)
	assert.Len(t, st.Products, 1)
	assert.Equal(t, 8, fc.count("ListProducts"))
}

func TestCatalog_AddProduct(t *testing.T) {
	fc := newFakeClient()
	mb := &memBackup{}
	s := seeded(t, fc, mb, []models.Category{{ID: "c1", Name: "Diamonds"}}, []models.Product{})

	p, err := s.AddProduct(context.Background(), models.ProductInput{
		CategoryID: "c1", Name: "50 Diamonds", Diamonds: 50, Price: decimal.NewFromInt(45),
	})
	require.NoError(t, err)
	assert.Equal(t, "id-1", p.ID)

	st := s.State()
	require.Len(t, st.Products, 1)
	assert.Empty(t, cmp.Diff(p, st.Products[0], cmpDecimal))

	require.Len(t, fc.createdProducts, 1)
	sent := fc.createdProducts[0]
	assert.Equal(t, "Diamonds", sent.CategoryName)
	assert.True(t, sent.IsActive)

	snap := mb.snapshot()
	require.NotNil(t, snap)
	require.Len(t, snap.Products, 1)
	assert.Equal(t, p.ID, snap.Products[0].ID)
}

func TestCatalog_AddProductUnknownCategory(t *testing.T) {
	fc := newFakeClient()
	s := seeded(t, fc, &memBackup{}, nil, nil)

	_, err := s.AddProduct(context.Background(), models.ProductInput{
		CategoryID: "ghost", Name: "X", Price: decimal.NewFromInt(1),
	})
	require.NoError(t, err)
	require.Len(t, fc.createdProducts, 1)
	assert.Equal(t, models.UnknownCategoryName, fc.createdProducts[0].CategoryName)
}

func TestCatalog_AddProductDuplicateStrict(t *testing.T) {
	fc := newFakeClient()
	fc.createResult = models.RawEnvelope{Success: false, Message: "duplicate"}
	mb := &memBackup{}
	s := seeded(t, fc, mb, []models.Category{{ID: "c1", Name: "Diamonds"}}, []models.Product{})

	_, err := s.AddProduct(context.Background(), models.ProductInput{
		CategoryID: "c1", Name: "50 Diamonds", Diamonds: 50, Price: decimal.NewFromInt(45),
	})
	require.Error(t, err)
	var se *common.ServerError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "duplicate", se.Message)

	assert.Empty(t, s.State().Products)
	assert.Zero(t, mb.saveCount())
}

func TestCatalog_AddProductOptimisticKeepsRecord(t *testing.T) {
	fc := newFakeClient()
	fc.createErr = &common.NetworkError{Op: "create product", Err: errors.New("refused")}
	mb := &memBackup{}
	s := seeded(t, fc, mb, nil, nil, WithWriteMode(WriteOptimistic))

	p, err := s.AddProduct(context.Background(), models.ProductInput{
		CategoryID: "c1", Name: "X", Price: decimal.NewFromInt(1),
	})
	require.Error(t, err)
	assert.True(t, common.IsNetwork(err))
	assert.Equal(t, "id-1", p.ID)

	require.Len(t, s.State().Products, 1)
	require.NotNil(t, mb.snapshot())
	assert.Len(t, mb.snapshot().Products, 1)
}

func TestCatalog_AddCategoryOptimisticKeepsRecord(t *testing.T) {
	fc := newFakeClient()
	fc.createErr = &common.NetworkError{Op: "create category", Err: errors.New("refused")}
	mb := &memBackup{}
	s := seeded(t, fc, mb, nil, nil, WithWriteMode(WriteOptimistic))

	c, err := s.AddCategory(context.Background(), models.CategoryInput{Name: "PUBG", Badge: "NEW"})
	require.Error(t, err)
	assert.True(t, common.IsNetwork(err))
	assert.Equal(t, models.Category{ID: "id-1", Name: "PUBG", Badge: "NEW"}, c)

	require.Len(t, s.State().Categories, 1)
	assert.Equal(t, c, s.State().Categories[0])
	require.NotNil(t, mb.snapshot())
	require.Len(t, mb.snapshot().Categories, 1)
	assert.Equal(t, c, mb.snapshot().Categories[0])
	assert.Equal(t, 1, fc.count("CreateCategory"))
}

func TestCatalog_AddProductValidationSkipsNetwork(t *testing.T) {
	fc := newFakeClient()
	s := seeded(t, fc, &memBackup{}, nil, nil)

	_, err := s.AddProduct(context.Background(), models.ProductInput{CategoryID: "c1", Name: "X"})
	assert.True(t, common.IsValidation(err))
	assert.Zero(t, fc.count("CreateProduct"))
}

func TestCatalog_AddCategory(t *testing.T) {
	fc := newFakeClient()
	mb := &memBackup{}
	s := seeded(t, fc, mb, nil, nil)

	c, err := s.AddCategory(context.Background(), models.CategoryInput{Name: "  Free Fire "})
	require.NoError(t, err)
	assert.Equal(t, models.Category{ID: "id-1", Name: "Free Fire"}, c)

	require.Len(t, fc.createdCategories, 1)
	assert.Equal(t, "", fc.createdCategories[0].Description)
	assert.True(t, fc.createdCategories[0].IsActive)
	assert.Len(t, mb.snapshot().Categories, 1)

	_, err = s.AddCategory(context.Background(), models.CategoryInput{Name: " "})
	assert.True(t, common.IsValidation(err))
	assert.Equal(t, 1, fc.count("CreateCategory"))
}

func TestCatalog_AddCategoryServerFailureFallbackMessage(t *testing.T) {
	fc := newFakeClient()
	fc.createResult = models.RawEnvelope{Success: false}
	s := seeded(t, fc, &memBackup{}, nil, nil)

	_, err := s.AddCategory(context.Background(), models.CategoryInput{Name: "ML"})
	require.EqualError(t, err, "failed to create category")
	assert.Empty(t, s.State().Categories)
}

func TestCatalog_UpdateCategory(t *testing.T) {
	fc := newFakeClient()
	mb := &memBackup{}
	s := seeded(t, fc, mb, []models.Category{{ID: "c1", Name: "ML"}}, nil)

	badge := "HOT"
	got, err := s.UpdateCategory(context.Background(), "c1", models.CategoryPatch{Badge: &badge})
	require.NoError(t, err)
	assert.Equal(t, models.Category{ID: "c1", Name: "ML", Badge: "HOT"}, got)
	assert.Equal(t, "HOT", s.State().Categories[0].Badge)
	assert.Equal(t, "HOT", mb.snapshot().Categories[0].Badge)

	_, err = s.UpdateCategory(context.Background(), "nope", models.CategoryPatch{Badge: &badge})
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestCatalog_UpdateProductFailureKeepsState(t *testing.T) {
	fc := newFakeClient()
	fc.updateResult = models.RawEnvelope{Success: false, Message: "locked"}
	prods := []models.Product{{ID: "p1", Name: "A", Price: decimal.NewFromInt(5)}}
	s := seeded(t, fc, &memBackup{}, nil, prods)

	price := decimal.NewFromInt(9)
	_, err := s.UpdateProduct(context.Background(), "p1", models.ProductPatch{Price: &price})
	require.EqualError(t, err, "locked")
	assert.True(t, s.State().Products[0].Price.Equal(decimal.NewFromInt(5)))
}

func TestCatalog_UpdateProduct(t *testing.T) {
	fc := newFakeClient()
	prods := []models.Product{{ID: "p1", Name: "A", Diamonds: 1, Price: decimal.NewFromInt(5)}}
	s := seeded(t, fc, &memBackup{}, nil, prods)

	d := 100
	got, err := s.UpdateProduct(context.Background(), "p1", models.ProductPatch{Diamonds: &d})
	require.NoError(t, err)
	assert.Equal(t, 100, got.Diamonds)
	assert.Equal(t, 100, s.State().Products[0].Diamonds)

	zero := decimal.Zero
	_, err = s.UpdateProduct(context.Background(), "p1", models.ProductPatch{Price: &zero})
	assert.True(t, common.IsValidation(err))
	assert.Equal(t, 1, fc.count("UpdateProduct"))
}

func TestCatalog_DeleteCategoryCascades(t *testing.T) {
	fc := newFakeClient()
	mb := &memBackup{}
	cats := []models.Category{{ID: "c1", Name: "ML"}, {ID: "c2", Name: "FF"}}
	prods := []models.Product{
		{ID: "p1", CategoryID: "c1", Price: decimal.NewFromInt(1)},
		{ID: "p2", CategoryID: "c2", Price: decimal.NewFromInt(1)},
		{ID: "p3", CategoryID: "c1", Price: decimal.NewFromInt(1)},
	}
	s := seeded(t, fc, mb, cats, prods)

	require.NoError(t, s.DeleteCategory(context.Background(), "c1"))

	st := s.State()
	require.Len(t, st.Categories, 1)
	assert.Equal(t, "c2", st.Categories[0].ID)
	for _, p := range st.Products {
		assert.NotEqual(t, "c1", p.CategoryID)
	}
	assert.Len(t, st.Products, 1)
	assert.Len(t, mb.snapshot().Products, 1)
}

func TestCatalog_DeleteFailureKeepsState(t *testing.T) {
	fc := newFakeClient()
	fc.deleteErr = &common.NetworkError{Op: "delete category", Err: errors.New("refused")}
	cats := []models.Category{{ID: "c1", Name: "ML"}}
	prods := []models.Product{{ID: "p1", CategoryID: "c1", Price: decimal.NewFromInt(1)}}
	s := seeded(t, fc, &memBackup{}, cats, prods)

	require.Error(t, s.DeleteCategory(context.Background(), "c1"))
	assert.Len(t, s.State().Categories, 1)
	assert.Len(t, s.State().Products, 1)

	require.Error(t, s.DeleteProduct(context.Background(), "p1"))
	assert.Len(t, s.State().Products, 1)

	assert.ErrorIs(t, s.DeleteProduct(context.Background(), "missing"), common.ErrNotFound)
}

func TestCatalog_DeleteProduct(t *testing.T) {
	fc := newFakeClient()
	prods := []models.Product{{ID: "p1", Price: decimal.NewFromInt(1)}, {ID: "p2", Price: decimal.NewFromInt(1)}}
	s := seeded(t, fc, &memBackup{}, nil, prods)

	require.NoError(t, s.DeleteProduct(context.Background(), "p1"))
	_, ok := s.FindProduct("p1")
	assert.False(t, ok)
	_, ok = s.FindProduct("p2")
	assert.True(t, ok)
}

func TestCatalog_SaveFailureIsNotFatal(t *testing.T) {
	fc := newFakeClient()
	s := seeded(t, fc, &memBackup{saveErr: errors.New("disk full")}, nil, nil)

	_, err := s.AddCategory(context.Background(), models.CategoryInput{Name: "ML"})
	require.NoError(t, err)
	assert.Len(t, s.State().Categories, 1)
}

func TestCatalog_Queries(t *testing.T) {
	prods := []models.Product{
		{ID: "a", CategoryID: "c1", Name: "big", Diamonds: 500},
		{ID: "b", CategoryID: "c2", Name: "mid", Diamonds: 100},
		{ID: "c", CategoryID: "c1", Name: "small", Diamonds: 10},
	}
	s := seeded(t, newFakeClient(), &memBackup{}, []models.Category{{ID: "c1", Name: "ML"}}, prods)

	in := s.ProductsInCategory("c1")
	require.Len(t, in, 2)
	assert.Equal(t, "c", in[0].ID)

	all := s.SortedProducts()
	assert.Equal(t, []string{"c", "b", "a"}, []string{all[0].ID, all[1].ID, all[2].ID})

	c, ok := s.FindCategory("c1")
	require.True(t, ok)
	assert.Equal(t, "ML", c.Name)
}

func TestCatalog_StateIsACopy(t *testing.T) {
	s := seeded(t, newFakeClient(), &memBackup{}, []models.Category{{ID: "c1", Name: "ML"}}, nil)
	st := s.State()
	st.Categories[0].Name = "changed"
	assert.Equal(t, "ML", s.State().Categories[0].Name)
}

// End to end over HTTP: the stub backend, the HTTP client and a file-backed
// backup on an in-memory filesystem.
func TestCatalog_EndToEndAgainstStubBackend(t *testing.T) {
	srv, backend := remotetest.NewServer(t)
	client, err := remote.NewHTTPClient(srv.URL, 0, logging.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	fs, err := store.NewFileStore(afero.NewMemMapFs(), "/data")
	require.NoError(t, err)
	cache := backup.New(fs)

	backend.PutCategory(models.BackendCategory{ID: "c1", Name: "Diamonds", IsActive: true})
	backend.PutCategory(models.BackendCategory{ID: "c0", Name: "Retired", IsActive: false})

	ctx := context.Background()
	svc := NewCatalogService(client, cache, logging.NewNop())
	require.NoError(t, svc.Load(ctx))
	require.Len(t, svc.State().Categories, 1)

	p, err := svc.AddProduct(ctx, models.ProductInput{
		CategoryID: "c1", Name: "50 Diamonds", Diamonds: 50, Price: decimal.NewFromInt(45),
	})
	require.NoError(t, err)

	snap, err := cache.Load(ctx)
	require.NoError(t, err)
	require.Len(t, snap.Products, 1)
	assert.Equal(t, p.ID, snap.Products[0].ID)

	// Backend goes away; a fresh service restores from the same backup.
	backend.Fail(remotetest.OpListProducts, remotetest.Failure{Message: "maintenance"})
	offline := NewCatalogService(client, cache, logging.NewNop())
	require.ErrorIs(t, offline.Load(ctx), common.ErrBackendUnavailable)

	st := offline.State()
	assert.Equal(t, StatusDegraded, st.Status)
	require.Len(t, st.Products, 1)
	assert.Empty(t, cmp.Diff(snap.Products, st.Products, cmpDecimal, cmpopts.EquateEmpty()))
}

func TestCatalog_LoadEmptyStubBackendIsReady(t *testing.T) {
	srv, _ := remotetest.NewServer(t)
	client, err := remote.NewHTTPClient(srv.URL, 0, logging.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	mb := &memBackup{}
	svc := NewCatalogService(client, mb, logging.NewNop())
	require.NoError(t, svc.Load(context.Background()))

	st := svc.State()
	assert.Equal(t, StatusReady, st.Status)
	assert.NoError(t, st.Err)
	assert.Empty(t, st.Categories)
	assert.Empty(t, st.Products)
	require.NotNil(t, mb.snapshot())
	assert.NotNil(t, mb.snapshot().Categories)
	assert.NotNil(t, mb.snapshot().Products)
}
