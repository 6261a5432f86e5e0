// Package remotetest provides an in-memory implementation of the storefront
// REST backend. Tests run it behind httptest; cmd/stubbackend serves it for
// local development.
//
// Deletes are soft: the record stays with isActive=false and is still
// returned by the list endpoints, as the real backend does.
package remotetest

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/dmitrijs2005/diamondstore/internal/client/models"
)

// Operation names accepted by Fail, Calls and LastBody.
const (
	OpListProducts           = "ListProducts"
	OpGetProduct             = "GetProduct"
	OpListProductsByCategory = "ListProductsByCategory"
	OpCreateProduct          = "CreateProduct"
	OpUpdateProduct          = "UpdateProduct"
	OpDeleteProduct          = "DeleteProduct"
	OpListCategories         = "ListCategories"
	OpCreateCategory         = "CreateCategory"
	OpUpdateCategory         = "UpdateCategory"
	OpDeleteCategory         = "DeleteCategory"
	OpVerifyPayment          = "VerifyPayment"
	OpPaymentStatus          = "PaymentStatus"
	OpListPayments           = "ListPayments"
	OpSeed                   = "Seed"
)

// Failure replaces the normal response of an operation. A non-empty Body is
// written verbatim; otherwise a success=false envelope carrying Message is
// sent.
type Failure struct {
	Status  int
	Message string
	Body    string
}

type Backend struct {
	mu         sync.Mutex
	categories []models.BackendCategory
	products   []models.BackendProduct
	payments   []models.Payment

	failures map[string]Failure
	calls    map[string]int
	bodies   map[string][]byte

	now    func() time.Time
	router chi.Router
}

// Option configures a Backend.
type Option func(*Backend)

// WithClock replaces time.Now for createdAt stamps.
func WithClock(now func() time.Time) Option {
	return func(b *Backend) { b.now = now }
}

func New(opts ...Option) *Backend {
	b := &Backend{
		failures: make(map[string]Failure),
		calls:    make(map[string]int),
		bodies:   make(map[string][]byte),
		now:      time.Now,
		router:   chi.NewRouter(),
	}
	for _, o := range opts {
		o(b)
	}
	b.routes()
	return b
}

func (b *Backend) routes() {
	r := b.router
	r.Use(middleware.Recoverer)

	r.Get("/products", b.handle(OpListProducts, b.listProducts))
	r.Post("/products", b.handle(OpCreateProduct, b.createProduct))
	r.Post("/products/seed", b.handle(OpSeed, b.seed))
	r.Get("/products/categories/all", b.handle(OpListCategories, b.listCategories))
	r.Post("/products/categories", b.handle(OpCreateCategory, b.createCategory))
	r.Put("/products/categories/{id}", b.handle(OpUpdateCategory, b.updateCategory))
	r.Delete("/products/categories/{id}", b.handle(OpDeleteCategory, b.deleteCategory))
	r.Get("/products/category/{categoryId}", b.handle(OpListProductsByCategory, b.listProductsByCategory))
	r.Get("/products/{id}", b.handle(OpGetProduct, b.getProduct))
	r.Put("/products/{id}", b.handle(OpUpdateProduct, b.updateProduct))
	r.Delete("/products/{id}", b.handle(OpDeleteProduct, b.deleteProduct))

	r.Post("/payments/verify", b.handle(OpVerifyPayment, b.verifyPayment))
	r.Get("/payments/status/{transactionId}", b.handle(OpPaymentStatus, b.paymentStatus))
	r.Get("/payments", b.handle(OpListPayments, b.listPayments))
}

func (b *Backend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.router.ServeHTTP(w, r)
}

// Fail makes op answer with f until ClearFailures is called.
func (b *Backend) Fail(op string, f Failure) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if f.Status == 0 {
		f.Status = http.StatusInternalServerError
	}
	b.failures[op] = f
}

func (b *Backend) ClearFailures() {
	b.mu.Lock()
	defer b.mu.Unlock()
	clear(b.failures)
}

// Calls returns how many requests op has received.
func (b *Backend) Calls(op string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls[op]
}

// LastBody returns the last request body received by op.
func (b *Backend) LastBody(op string) []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.bodies[op]
}

// PutCategory stores c as is, including inactive records.
func (b *Backend) PutCategory(c models.BackendCategory) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.categories = append(b.categories, c)
}

// PutProduct stores p as is, including inactive records.
func (b *Backend) PutProduct(p models.BackendProduct) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.products = append(b.products, p)
}

type handlerFunc func(w http.ResponseWriter, r *http.Request, body []byte)

// handle counts the call, records the body and applies any injected
// failure before dispatching to h with b.mu held.
func (b *Backend) handle(op string, h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)

		b.mu.Lock()
		defer b.mu.Unlock()

		b.calls[op]++
		b.bodies[op] = body

		if f, ok := b.failures[op]; ok {
			if f.Body != "" {
				w.WriteHeader(f.Status)
				_, _ = io.WriteString(w, f.Body)
				return
			}
			writeFail(w, f.Status, f.Message)
			return
		}
		h(w, r, body)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeOK(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, models.Envelope[any]{Success: true, Data: data})
}

func writeList[T any](w http.ResponseWriter, data []T) {
	n := len(data)
	if data == nil {
		data = []T{}
	}
	writeJSON(w, http.StatusOK, models.Envelope[[]T]{Success: true, Data: data, Count: &n})
}

func writeFail(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, models.Envelope[any]{Success: false, Message: msg})
}

func (b *Backend) stamp() *time.Time {
	t := b.now().UTC()
	return &t
}

func newObjectID() string {
	return uuid.NewString()
}

func limitParam(r *http.Request, def int) int {
	n, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || n <= 0 {
		return def
	}
	return n
}
