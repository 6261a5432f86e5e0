// Package cli provides the storefront command-line client.
//
// It wires configuration, local storage, the backend client and the
// services into an App, and exposes it two ways:
//   - an interactive REPL (the root command) for browsing the catalog,
//     checking out and, after an admin login, managing the catalog;
//   - one-shot cobra subcommands (catalog, payments, seed) for scripting.
//
// The catalog is loaded once at start. When the backend cannot be reached
// the App keeps working from the local backup and the prompt shows an
// offline banner until a refresh succeeds.
package cli
