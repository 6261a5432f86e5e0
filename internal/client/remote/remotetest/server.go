package remotetest

import (
	"net/http/httptest"
	"testing"
)

// NewServer starts b behind an httptest.Server that is closed when t ends.
func NewServer(t testing.TB, opts ...Option) (*httptest.Server, *Backend) {
	t.Helper()
	b := New(opts...)
	srv := httptest.NewServer(b)
	t.Cleanup(srv.Close)
	return srv, b
}
