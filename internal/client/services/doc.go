// Package services contains the application services of the storefront
// client.
//
//   - CatalogService keeps the in-memory catalog in step with the backend,
//     persists a backup snapshot after every successful change and falls
//     back to that snapshot when the backend cannot be reached.
//   - SessionGate is the local admin login flag.
//   - CheckoutService validates payment references and forwards them.
//
// Every method that talks to the backend or to storage takes a
// context.Context and returns typed errors from package common.
package services
