package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/diamondstore/internal/common"
)

// Login prompts for the admin credentials. The password is wiped before
// returning.
func (a *App) Login(ctx context.Context) error {
	if a.isAdmin() {
		fmt.Fprintln(a.out, "Already logged in.")
		return nil
	}

	userName, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.session.Login(ctx, userName, password); err != nil {
		if errors.Is(err, common.ErrUnauthorized) {
			return errBadCredentials
		}
		return err
	}
	fmt.Fprintln(a.out, "Logged in as admin.")
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.session.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

func (a *App) requireAdmin() error {
	if !a.isAdmin() {
		return errAdminRequired
	}
	return nil
}
