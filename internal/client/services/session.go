package services

import (
	"context"
	"crypto/subtle"
	"fmt"
	"sync/atomic"

	"github.com/dmitrijs2005/diamondstore/internal/client/store"
	"github.com/dmitrijs2005/diamondstore/internal/common"
	"github.com/dmitrijs2005/diamondstore/internal/logging"
)

// Credentials is the single admin account accepted by the SessionGate.
type Credentials struct {
	Username string
	Password string
}

// SessionGate guards the admin commands with a persisted login flag.
//
// Contract:
//   - Login: succeeds only for the configured credentials and persists the
//     flag; a failed attempt changes nothing.
//   - Logout: always clears the flag.
//   - IsAuthed: answered from memory; the stored flag is read once, when the
//     gate is created.
type SessionGate interface {
	Login(ctx context.Context, username string, password []byte) error
	Logout(ctx context.Context) error
	IsAuthed() bool
}

type sessionGate struct {
	store  store.Store
	creds  Credentials
	log    logging.Logger
	authed atomic.Bool
}

// NewSessionGate restores the login flag from s. A read failure is logged
// and treated as logged out.
func NewSessionGate(ctx context.Context, s store.Store, creds Credentials, log logging.Logger) SessionGate {
	g := &sessionGate{store: s, creds: creds, log: log.With("component", "session")}

	v, err := s.Get(ctx, common.AdminSessionKey)
	if err != nil {
		g.log.Warn(ctx, "failed to read session flag", "error", err)
		return g
	}
	g.authed.Store(string(v) == common.SessionActiveValue)
	return g
}

func (g *sessionGate) IsAuthed() bool {
	return g.authed.Load()
}

// Login returns common.ErrUnauthorized when the credentials do not match.
func (g *sessionGate) Login(ctx context.Context, username string, password []byte) error {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(g.creds.Username)) == 1
	passOK := subtle.ConstantTimeCompare(password, []byte(g.creds.Password)) == 1
	if !userOK || !passOK {
		g.log.Info(ctx, "admin login rejected", "username", username)
		return common.ErrUnauthorized
	}

	if err := g.store.Set(ctx, common.AdminSessionKey, []byte(common.SessionActiveValue)); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	g.authed.Store(true)
	g.log.Info(ctx, "admin logged in")
	return nil
}

// Logout clears the in-memory flag even if removing the stored one fails.
func (g *sessionGate) Logout(ctx context.Context) error {
	g.authed.Store(false)
	if err := g.store.Delete(ctx, common.AdminSessionKey); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	g.log.Info(ctx, "admin logged out")
	return nil
}
