package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/diamondstore/internal/client/models"
	"github.com/dmitrijs2005/diamondstore/internal/common"
	"github.com/dmitrijs2005/diamondstore/internal/logging"
)

// maxBodySize caps how much of a response body is read.
const maxBodySize = 8 << 20

type HTTPClient struct {
	baseURL string
	http    *http.Client
	log     logging.Logger
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient returns a client for the API rooted at baseURL. A zero
// timeout means requests are bounded only by their context.
func NewHTTPClient(baseURL string, timeout time.Duration, log logging.Logger) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid backend url %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid backend url %q: scheme must be http or https", baseURL)
	}
	tr := http.DefaultTransport.(*http.Transport).Clone()
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Transport: tr, Timeout: timeout},
		log:     log,
	}, nil
}

// Close drops idle keep-alive connections.
func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

// call performs one request and decodes the envelope whatever the HTTP
// status; only transport and decode failures are returned as errors.
func call[T any](ctx context.Context, c *HTTPClient, op, method, path string, body any) (*models.Envelope[T], error) {
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("%s: encode request: %w", op, err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rdr)
	if err != nil {
		return nil, &common.NetworkError{Op: op, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug(ctx, "request failed", "op", op, "method", method, "path", path, "error", err)
		return nil, &common.NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	c.log.Debug(ctx, "request done", "op", op, "method", method, "path", path,
		"status", resp.StatusCode, "elapsed", time.Since(start))

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, &common.NetworkError{Op: op, Err: err}
	}

	var env models.Envelope[T]
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, &common.NetworkError{
			Op:  op,
			Err: fmt.Errorf("decode response (status %d): %w", resp.StatusCode, err),
		}
	}
	return &env, nil
}

func seg(s string) string { return url.PathEscape(s) }

func (c *HTTPClient) ListProducts(ctx context.Context) (*models.Envelope[[]models.BackendProduct], error) {
	return call[[]models.BackendProduct](ctx, c, "list products", http.MethodGet, "/products", nil)
}

func (c *HTTPClient) GetProduct(ctx context.Context, id string) (*models.Envelope[*models.BackendProduct], error) {
	return call[*models.BackendProduct](ctx, c, "get product", http.MethodGet, "/products/"+seg(id), nil)
}

func (c *HTTPClient) ListProductsByCategory(ctx context.Context, categoryID string) (*models.Envelope[[]models.BackendProduct], error) {
	return call[[]models.BackendProduct](ctx, c, "list products by category", http.MethodGet, "/products/category/"+seg(categoryID), nil)
}

func (c *HTTPClient) CreateProduct(ctx context.Context, p models.BackendProduct) (*models.Envelope[*models.BackendProduct], error) {
	return call[*models.BackendProduct](ctx, c, "create product", http.MethodPost, "/products", p)
}

func (c *HTTPClient) UpdateProduct(ctx context.Context, id string, patch models.ProductPatch) (*models.Envelope[*models.BackendProduct], error) {
	return call[*models.BackendProduct](ctx, c, "update product", http.MethodPut, "/products/"+seg(id), patch)
}

func (c *HTTPClient) DeleteProduct(ctx context.Context, id string) (*models.RawEnvelope, error) {
	return call[json.RawMessage](ctx, c, "delete product", http.MethodDelete, "/products/"+seg(id), nil)
}

func (c *HTTPClient) ListCategories(ctx context.Context) (*models.Envelope[[]models.BackendCategory], error) {
	return call[[]models.BackendCategory](ctx, c, "list categories", http.MethodGet, "/products/categories/all", nil)
}

func (c *HTTPClient) CreateCategory(ctx context.Context, cat models.BackendCategory) (*models.Envelope[*models.BackendCategory], error) {
	return call[*models.BackendCategory](ctx, c, "create category", http.MethodPost, "/products/categories", cat)
}

func (c *HTTPClient) UpdateCategory(ctx context.Context, id string, patch models.CategoryPatch) (*models.Envelope[*models.BackendCategory], error) {
	return call[*models.BackendCategory](ctx, c, "update category", http.MethodPut, "/products/categories/"+seg(id), patch)
}

func (c *HTTPClient) DeleteCategory(ctx context.Context, id string) (*models.RawEnvelope, error) {
	return call[json.RawMessage](ctx, c, "delete category", http.MethodDelete, "/products/categories/"+seg(id), nil)
}

func (c *HTTPClient) VerifyPayment(ctx context.Context, p models.PaymentData) (*models.RawEnvelope, error) {
	return call[json.RawMessage](ctx, c, "verify payment", http.MethodPost, "/payments/verify", p)
}

func (c *HTTPClient) PaymentStatus(ctx context.Context, transactionID string) (*models.Envelope[*models.Payment], error) {
	return call[*models.Payment](ctx, c, "payment status", http.MethodGet, "/payments/status/"+seg(transactionID), nil)
}

func (c *HTTPClient) ListPayments(ctx context.Context, limit int) (*models.Envelope[[]models.Payment], error) {
	if limit <= 0 {
		limit = DefaultPaymentsLimit
	}
	return call[[]models.Payment](ctx, c, "list payments", http.MethodGet, "/payments?limit="+strconv.Itoa(limit), nil)
}

func (c *HTTPClient) Seed(ctx context.Context) (*models.RawEnvelope, error) {
	return call[json.RawMessage](ctx, c, "seed", http.MethodPost, "/products/seed", nil)
}
