package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/dmitrijs2005/diamondstore/internal/client/backup"
	"github.com/dmitrijs2005/diamondstore/internal/client/config"
	"github.com/dmitrijs2005/diamondstore/internal/client/remote"
	"github.com/dmitrijs2005/diamondstore/internal/client/services"
	"github.com/dmitrijs2005/diamondstore/internal/client/store"
	"github.com/dmitrijs2005/diamondstore/internal/filex"
	"github.com/dmitrijs2005/diamondstore/internal/logging"
)

const (
	sqliteFile = "store.db"
	kvDir      = "kv"
)

type App struct {
	cfg      *config.Config
	log      logging.Logger
	catalog  services.CatalogService
	session  services.SessionGate
	checkout services.CheckoutService
	reader   *bufio.Reader
	out      io.Writer
	closers  []func() error
}

// NewApp opens local storage under cfg.DataDir and builds the services.
// The catalog is not loaded yet; see Run and LoadCatalog.
func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger, in io.Reader, out io.Writer) (*App, error) {
	mode, err := services.ParseWriteMode(cfg.WriteMode)
	if err != nil {
		return nil, err
	}

	kv, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	client, err := remote.NewHTTPClient(cfg.BackendURL, cfg.RequestTimeout, log.With("component", "remote"))
	if err != nil {
		_ = closeStore()
		return nil, err
	}

	a := &App{
		cfg:      cfg,
		log:      log,
		catalog:  services.NewCatalogService(client, backup.New(kv), log, services.WithWriteMode(mode)),
		session:  services.NewSessionGate(ctx, kv, services.Credentials{Username: cfg.AdminUsername, Password: cfg.AdminPassword}, log),
		checkout: services.NewCheckoutService(client, log),
		reader:   bufio.NewReader(in),
		out:      out,
		closers:  []func() error{client.Close, closeStore},
	}
	return a, nil
}

func openStore(ctx context.Context, cfg *config.Config) (store.Store, func() error, error) {
	dir, err := filex.EnsureDir(cfg.DataDir)
	if err != nil {
		return nil, nil, fmt.Errorf("prepare data dir: %w", err)
	}

	switch cfg.StorageBackend {
	case config.StorageFile:
		s, err := store.NewFileStore(afero.NewOsFs(), filepath.Join(dir, kvDir))
		if err != nil {
			return nil, nil, err
		}
		return s, func() error { return nil }, nil
	default:
		db, err := store.InitDatabase(ctx, filepath.Join(dir, sqliteFile))
		if err != nil {
			return nil, nil, fmt.Errorf("error initializing database: %w", err)
		}
		s := store.NewSQLiteStore(db)
		return s, s.Close, nil
	}
}

// Close releases the backend client and local storage.
func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c())
	}
	return errors.Join(errs...)
}

// LoadCatalog performs the initial load and prints the offline banner if
// the backend could not be reached.
func (a *App) LoadCatalog(ctx context.Context) {
	if err := a.catalog.Load(ctx); err != nil {
		fmt.Fprintln(a.out, userMessage(err))
	}
}

// Run loads the catalog and serves the REPL until the user exits or input
// ends.
func (a *App) Run(ctx context.Context) error {
	fmt.Fprintln(a.out, "Diamond Store CLI (type 'help' for commands)")
	a.LoadCatalog(ctx)
	runREPL(ctx, a, a.status, a.reader, a.out)
	return nil
}

func (a *App) isAdmin() bool {
	return a.session.IsAuthed()
}

// status is shown in the prompt: admin marker and offline banner.
func (a *App) status() string {
	var parts []string
	if a.isAdmin() {
		parts = append(parts, "admin")
	}
	st := a.catalog.State()
	if st.Status == services.StatusDegraded {
		parts = append(parts, "offline")
	}
	if len(parts) == 0 {
		return ""
	}
	s := "(" + parts[0]
	for _, p := range parts[1:] {
		s += " " + p
	}
	return s + ")"
}
